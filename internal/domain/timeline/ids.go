package timeline

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idSeq atomic.Uint64

// NewID returns a creation-time-keyed identifier. The counter suffix keeps
// ids unique when many segments are created within the same millisecond,
// e.g. bulk enqueue from pasted lyrics.
func NewID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixMilli(), idSeq.Add(1))
}
