package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AlexZhen345/LifeOS/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, accountID string, out io.Writer) error {
	m := newBoardModel(ctx, svc, accountID)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
