// Package speech converts recorded student audio into text.
package speech

import (
	"context"
	"io"
)

// Transcriber implementations return *apperror.GatewayError for upstream
// failures.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}
