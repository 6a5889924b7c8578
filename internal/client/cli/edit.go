package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/zennotes/internal/client/data"
)

// EditOptions are the inputs of the edit command
type EditOptions struct {
	Title      string
	Content    string
	TitleSet   bool
	ContentSet bool
}

// editDebounce - CLI сохраняет правки одним Flush при закрытии редактора
const editDebounce = time.Second

func (c *Cli) runEdit(ctx context.Context, id string, opts EditOptions) error {
	note, err := c.resolve(ctx, id)
	if err != nil {
		return err
	}

	if !opts.TitleSet && !opts.ContentSet {
		content, err := c.readContent("", false)
		if err != nil {
			return err
		}
		opts.Content, opts.ContentSet = *content, true
	}

	editor, err := data.OpenEditor(ctx, c.dataService, note.ID, editDebounce, c.logger)
	if err != nil {
		return fmt.Errorf("failed to open note: %w", err)
	}

	if opts.TitleSet {
		editor.SetTitle(opts.Title)
	}
	if opts.ContentSet {
		editor.SetContent(opts.Content, data.PlainDocument(opts.Content))
	}

	if err := editor.Close(ctx); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}

	c.io.Printf("✓ Note updated: %s\n", note.ID)
	return nil
}
