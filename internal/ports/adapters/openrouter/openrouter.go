package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ksenko/lyrstage/internal/domain/mood"
	"github.com/ksenko/lyrstage/internal/domain/styles"
	"github.com/ksenko/lyrstage/internal/domain/timeline"
	"github.com/ksenko/lyrstage/internal/types"
)

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

const requestTimeout = 90 * time.Second

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = "anthropic/claude-3.5-sonnet"
	}
	baseURL = normalizeBaseURL(baseURL)
	return &Adapter{key: apiKey, model: model, baseURL: baseURL, client: &http.Client{Timeout: 5 * time.Minute}}
}

// AlignLyrics asks the model to reshape a raw transcript into lyric lines,
// preferring the wording of the user-supplied reference text when given.
// Any model failure degrades to a verbatim transcript mapping so the
// authoring flow keeps working offline.
func (a *Adapter) AlignLyrics(ctx context.Context, tr types.Transcript, referenceText string) ([]types.LyricSegment, error) {
	if len(tr.Segments) == 0 {
		return nil, nil
	}

	type seg struct {
		StartSec float64 `json:"start_sec"`
		EndSec   float64 `json:"end_sec"`
		Text     string  `json:"text"`
	}
	arr := make([]seg, 0, len(tr.Segments))
	for _, s := range tr.Segments {
		arr = append(arr, seg{StartSec: s.Start, EndSec: s.End, Text: s.Text})
	}

	prompt := map[string]any{
		"transcript":     arr,
		"referenceLines": timeline.SplitLyricLines(referenceText),
	}
	pb, err := json.Marshal(prompt)
	if err != nil {
		return nil, fmt.Errorf("marshal prompt: %w", err)
	}

	payload := map[string]any{
		"model":  a.model,
		"stream": false,
		"messages": []map[string]any{
			{"role": "user", "content": alignPrompt(pb)},
		},
		"response_format": jsonSchema("lyrstage_align", map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lines": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text":      map[string]any{"type": "string"},
							"start_sec": map[string]any{"type": "number"},
							"end_sec":   map[string]any{"type": "number"},
						},
						"required": []string{"text", "start_sec", "end_sec"},
					},
				},
			},
			"required": []string{"lines"},
		}),
	}

	content, err := a.complete(ctx, payload)
	if err != nil {
		return fallbackAlign(tr), nil
	}

	var out struct {
		Lines []struct {
			Text     string  `json:"text"`
			StartSec float64 `json:"start_sec"`
			EndSec   float64 `json:"end_sec"`
		} `json:"lines"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil || len(out.Lines) == 0 {
		return fallbackAlign(tr), nil
	}

	segs := make([]types.LyricSegment, 0, len(out.Lines))
	for _, ln := range out.Lines {
		text := timeline.CleanLyricLine(ln.Text)
		if text == "" {
			continue
		}
		segs = append(segs, types.LyricSegment{
			ID:        timeline.NewID(),
			Text:      text,
			StartTime: ln.StartSec,
			EndTime:   ln.EndSec,
			Style:     styles.Default(),
		})
	}
	if len(segs) == 0 {
		return fallbackAlign(tr), nil
	}
	return segs, nil
}

// SuggestStyles proposes one style delta per segment id. Unparseable model
// output falls back to the deterministic mood heuristic rather than erroring:
// a styling pass that sometimes does nothing is worse than one that always
// does something sane.
func (a *Adapter) SuggestStyles(ctx context.Context, segments []types.LyricSegment) (map[string]styles.Delta, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	type seg struct {
		ID       string  `json:"id"`
		StartSec float64 `json:"start_sec"`
		EndSec   float64 `json:"end_sec"`
		Text     string  `json:"text"`
	}
	arr := make([]seg, 0, len(segments))
	for _, s := range segments {
		arr = append(arr, seg{ID: s.ID, StartSec: s.StartTime, EndSec: s.EndTime, Text: s.Text})
	}
	pb, err := json.Marshal(map[string]any{"segments": arr})
	if err != nil {
		return nil, fmt.Errorf("marshal prompt: %w", err)
	}

	payload := map[string]any{
		"model":  a.model,
		"stream": false,
		"messages": []map[string]any{
			{"role": "user", "content": stylePrompt(pb)},
		},
		"response_format": jsonSchema("lyrstage_styles", map[string]any{
			"type": "object",
			"properties": map[string]any{
				"suggestions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":        map[string]any{"type": "string"},
							"animation": map[string]any{"type": "string"},
							"color":     map[string]any{"type": "string"},
							"fontSize":  map[string]any{"type": "string"},
							"position":  map[string]any{"type": "string"},
							"font":      map[string]any{"type": "string"},
							"effects":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						},
						"required": []string{"id"},
					},
				},
			},
			"required": []string{"suggestions"},
		}),
	}

	content, err := a.complete(ctx, payload)
	if err != nil {
		return fallbackStyles(segments), nil
	}

	var out struct {
		Suggestions []struct {
			ID        string   `json:"id"`
			Animation string   `json:"animation"`
			Color     string   `json:"color"`
			FontSize  string   `json:"fontSize"`
			Position  string   `json:"position"`
			Font      string   `json:"font"`
			Effects   []string `json:"effects"`
		} `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil || len(out.Suggestions) == 0 {
		return fallbackStyles(segments), nil
	}

	res := make(map[string]styles.Delta, len(out.Suggestions))
	for _, s := range out.Suggestions {
		if s.ID == "" {
			continue
		}
		var d styles.Delta
		if s.Animation != "" {
			a := styles.ParseAnimation(s.Animation)
			d.Animation = &a
		}
		if s.Color != "" {
			c := s.Color
			d.Color = &c
		}
		if s.FontSize != "" {
			fs := styles.ParseFontSize(s.FontSize)
			d.FontSize = &fs
		}
		if s.Position != "" {
			p := styles.ParsePosition(s.Position)
			d.Position = &p
		}
		if s.Font != "" {
			f := styles.ParseFontFamily(s.Font)
			d.FontFamily = &f
		}
		if s.Effects != nil {
			eff := make([]types.BackgroundEffect, 0, len(s.Effects))
			for _, e := range s.Effects {
				if parsed := styles.ParseEffect(e); parsed != styles.EffectNone {
					eff = append(eff, parsed)
				}
			}
			d.Effects = eff
		}
		if !d.IsZero() {
			res[s.ID] = d
		}
	}
	if len(res) == 0 {
		return fallbackStyles(segments), nil
	}
	return res, nil
}

// complete runs one chat completion and returns the extracted JSON object.
func (a *Adapter) complete(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	url := a.baseURL + "/api/v1/chat/completions"

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("openrouter timeout after %s (model=%s)", requestTimeout, a.model)
		}
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", fmt.Errorf("openrouter status %d and read body failed: %v", resp.StatusCode, readErr)
		}
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode, truncate(redactSecrets(string(rb), a.key), 400))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", errors.New("openrouter: no choices")
	}
	content, err := messageContentToString(raw.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}
	return extractJSONObject(content)
}

func alignPrompt(payload []byte) string {
	return "Turn this song transcript into display-ready lyric lines. " +
		"Return strictly valid JSON (no markdown, no code fences) matching the provided schema. " +
		"When referenceLines is non-empty, use its wording and line breaks and only take timing from the transcript. " +
		"Lines must be ordered by start_sec, with end_sec > start_sec, and must not overlap." +
		"\n\nInput JSON:\n" + string(payload)
}

func stylePrompt(payload []byte) string {
	return "Suggest a visual style per lyric line for a lyric video. " +
		"Return strictly valid JSON (no markdown, no code fences) matching the provided schema. " +
		"animation, fontSize, position, font and effects must come from the lyrstage preset names; " +
		"color is a hex string. Style the mood: energetic lines get impact entrances and chaos effects, " +
		"soft lines get fades and filters. Omit a field to keep the current value." +
		"\n\nSegments JSON:\n" + string(payload)
}

func jsonSchema(name string, schema map[string]any) map[string]any {
	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   name,
			"schema": schema,
		},
	}
}

// fallbackAlign maps transcript segments verbatim onto default-styled lyric
// segments.
func fallbackAlign(tr types.Transcript) []types.LyricSegment {
	out := make([]types.LyricSegment, 0, len(tr.Segments))
	for _, s := range tr.Segments {
		text := timeline.CleanLyricLine(s.Text)
		if text == "" {
			continue
		}
		out = append(out, types.LyricSegment{
			ID:        timeline.NewID(),
			Text:      text,
			StartTime: s.Start,
			EndTime:   s.End,
			Style:     styles.Default(),
		})
	}
	return out
}

// fallbackStyles derives deltas from the deterministic mood heuristic.
func fallbackStyles(segments []types.LyricSegment) map[string]styles.Delta {
	out := make(map[string]styles.Delta, len(segments))
	for _, seg := range segments {
		energy, calm := mood.Score(seg.Text)
		var d styles.Delta
		switch {
		case energy >= 3 && energy > calm:
			anim := styles.AnimSlam
			d.Animation = &anim
			d.Effects = []types.BackgroundEffect{styles.EffectShake}
		case calm >= 3:
			anim := styles.AnimFade
			d.Animation = &anim
			d.Effects = []types.BackgroundEffect{styles.EffectVignette}
		default:
			continue
		}
		out[seg.ID] = d
	}
	return out
}

func messageContentToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []any:
		// Some providers return an array of {type,text} parts.
		var b strings.Builder
		for _, it := range x {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := m["text"].(string); ok {
				b.WriteString(t)
			}
		}
		s := b.String()
		if strings.TrimSpace(s) == "" {
			return "", errors.New("openrouter: empty content")
		}
		return s, nil
	default:
		return "", fmt.Errorf("openrouter: unexpected content type %T", v)
	}
}

func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("openrouter: empty content")
	}

	// Strip markdown code fences.
	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	// Best-effort: take the first JSON object found.
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}

	return "", fmt.Errorf("openrouter: could not locate JSON object in: %q", truncate(t, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
