// Package export writes samples as JSON.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// WriteJSON writes one indented sample.
func WriteJSON(w io.Writer, s model.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding sample: %w", err)
	}
	return nil
}

// Stream writes one compact sample per line until samples closes or ctx is done.
func Stream(ctx context.Context, w io.Writer, samples <-chan model.Sample) error {
	enc := json.NewEncoder(w)
	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-samples:
			if !ok {
				return nil
			}
			if err := enc.Encode(s); err != nil {
				return fmt.Errorf("encoding sample: %w", err)
			}
		}
	}
}
