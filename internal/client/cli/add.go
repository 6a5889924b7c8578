package cli

import (
	"context"
	"fmt"
)

// AddOptions are the inputs of the add command
type AddOptions struct {
	Title      string
	Content    string
	ContentSet bool // --content передан явно (в том числе пустой)
}

func (c *Cli) runAdd(ctx context.Context, opts AddOptions) error {
	title := opts.Title
	if title == "" && c.io.IsInteractive() {
		var err error
		title, err = c.io.ReadInput("Title: ")
		if err != nil {
			return fmt.Errorf("failed to read title: %w", err)
		}
	}

	content, err := c.readContent(opts.Content, opts.ContentSet)
	if err != nil {
		return err
	}

	note, err := c.dataService.Create(ctx, dataInput(&title, content))
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	c.io.Printf("✓ Note created: %s\n", note.ID)
	return nil
}
