package cli

import (
	"context"
	"fmt"
	"text/template"
)

var statusTmpl = template.Must(template.New("status").Parse(statusTemplate))

type statusView struct {
	Server        string
	Cursor        string
	Pending       int
	DaemonRunning bool
}

func (c *Cli) runStatus(ctx context.Context, server string) error {
	pending, err := c.syncService.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending notes: %w", err)
	}

	cursor, err := c.metadata.GetPullCursor(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pull cursor: %w", err)
	}

	view := statusView{
		Server:  server,
		Cursor:  cursor,
		Pending: pending,
	}

	// Блокировку держит демон-лидер. Эксклюзивный захват здесь помешал бы
	// стартующему демону стать лидером.
	running, err := c.locker.Held()
	if err != nil {
		c.logger.Debug("Failed to check sync daemon lock", "error", err)
	}
	view.DaemonRunning = running

	if err := statusTmpl.Execute(c.io, view); err != nil {
		return fmt.Errorf("failed to render status: %w", err)
	}

	if pending > 0 && !view.DaemonRunning {
		c.io.Println()
		c.io.Println("Run 'zennotes sync' or start 'zennotes daemon' to synchronize.")
	}
	return nil
}
