// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("clipboard: no clipboard utility available")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Recorder is a Copier keeping the copied text in memory.
type Recorder struct {
	Copied []string
}

// Copy records text.
func (recorder *Recorder) Copy(text string) error {
	recorder.Copied = append(recorder.Copied, text)
	return nil
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = (*Recorder)(nil)
)
