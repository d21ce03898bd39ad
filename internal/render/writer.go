package render

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

// StreamWriter drains a channel of listings onto Out as NDJSON, one
// {"kind","data"} object per line, from a single goroutine.
type StreamWriter struct {
	Out    io.Writer
	Logger *slog.Logger
}

func (w *StreamWriter) Start(wg *sync.WaitGroup, input <-chan domain.Listing) {
	defer wg.Done()

	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	enc := json.NewEncoder(w.Out)

	written := 0
	for l := range input {
		if err := enc.Encode(l); err != nil {
			logger.Error("failed to write listing", "kind", l.Kind(), "error", err)
			continue
		}
		written++
	}
	logger.Debug("stream closed", "written", written)
}
