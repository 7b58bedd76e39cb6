package types

// PendingTime marks a segment that has text but no place on the timeline yet.
// StartTime and EndTime always carry it together.
const PendingTime = -1

type AnimationType string

type BackgroundEffect string

type FontSize string

type Position string

type FontFamily string

// LyricStyle is the visual treatment of one lyric line.
//
// BackgroundEffect is the deprecated single-value predecessor of Effects.
// Readers must treat a non-"none" value as an implicit member of the
// effect set; writers that touch Effects reset it to "none".
type LyricStyle struct {
	Animation        AnimationType      `json:"animation"`
	Color            string             `json:"color"`
	FontSize         FontSize           `json:"fontSize"`
	Position         Position           `json:"position"`
	FontFamily       FontFamily         `json:"fontFamily"`
	Vertical         bool               `json:"vertical,omitempty"`
	Effects          []BackgroundEffect `json:"effects,omitempty"`
	BackgroundEffect BackgroundEffect   `json:"backgroundEffect,omitempty"`
}

// LyricSegment is one timed lyric line. ID is the sole cross-reference key
// and stays stable for the segment's lifetime.
type LyricSegment struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	StartTime float64    `json:"startTime"`
	EndTime   float64    `json:"endTime"`
	Style     LyricStyle `json:"style"`
}

func (s LyricSegment) Placed() bool { return s.StartTime >= 0 }

func (s LyricSegment) Pending() bool { return s.StartTime == PendingTime }

// MediaRef points at the audio/video the timeline is authored against.
type MediaRef struct {
	Path string `json:"path"`
	Kind string `json:"kind"` // "audio" | "video"
}

// ProjectData is the unit the persistence collaborator saves and restores.
type ProjectData struct {
	Segments []LyricSegment `json:"segments"`
	Media    *MediaRef      `json:"media,omitempty"`
}

// Transcript mirrors whisper.cpp JSON output.
type Transcript struct {
	Segments []TranscriptSegment `json:"segments"`
}

type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}
