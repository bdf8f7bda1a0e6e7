package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"astraplay/internal/engine"
	"astraplay/internal/share"
)

func RunBoard(ctx context.Context, sess *engine.Session, sharer *share.Sharer, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newBoardModel(ctx, sess, sharer)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
