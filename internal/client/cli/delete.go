package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, id string) error {
	note, err := c.resolve(ctx, id)
	if err != nil {
		return err
	}

	if err := c.dataService.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	c.io.Printf("✓ Note deleted: %s\n", note.ID)
	return nil
}
