// Package share copies the duel challenge to the system clipboard.
package share

import (
	"context"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

const (
	ChallengeText = "Join my Decision Duel on Astra Play → (demo link)"

	CopiedMessage   = "Challenge link copied!"
	FallbackMessage = "Copied placeholder challenge to your clipboard."
)

// Clipboard is the side effect behind a share.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard returns the OS clipboard.
func SystemClipboard() Clipboard { return systemClipboard{} }

// Sharer turns clipboard failures into a fallback message so they never
// reach the engine.
type Sharer struct {
	cb  Clipboard
	log *zap.Logger
}

func NewSharer(cb Clipboard, log *zap.Logger) *Sharer {
	if cb == nil {
		cb = SystemClipboard()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sharer{cb: cb, log: log}
}

// Result is what the presentation shows after a share.
type Result struct {
	Message string
	Copied  bool
}

// Challenge copies ChallengeText. It never returns an error; a failed copy
// is logged as a warning and reported through Result.
func (s *Sharer) Challenge(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		s.log.Warn("share skipped", zap.Error(err))
		return Result{Message: FallbackMessage}
	}
	if err := s.cb.WriteAll(ChallengeText); err != nil {
		s.log.Warn("clipboard write failed", zap.Error(err))
		return Result{Message: FallbackMessage}
	}
	s.log.Debug("challenge copied")
	return Result{Message: CopiedMessage, Copied: true}
}
