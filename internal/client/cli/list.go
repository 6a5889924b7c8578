package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runList(ctx context.Context) error {
	notes, err := c.dataService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		c.io.Println("No notes found.")
		c.io.Println()
		c.io.Println("Use 'zennotes add' to create your first note.")
		return nil
	}

	for _, note := range notes {
		marker := " "
		if note.IsPending() {
			marker = "*"
		}
		title := note.Title
		if title == "" {
			title = "(untitled)"
		}
		c.io.Printf("%s %s  %s\n", marker, shortID(note.ID), title)
		if p := preview(note.ContentText); p != "" {
			c.io.Printf("           %s\n", p)
		}
	}

	c.io.Println()
	c.io.Printf("%d note(s); * = not yet synchronized\n", len(notes))
	return nil
}
