package cli

import (
	"context"
	"fmt"
)

// runSync выполняет один цикл синхронизации.
// Если демон уже лидер, цикл запрашивается у него.
func (c *Cli) runSync(ctx context.Context) error {
	ok, err := c.locker.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !ok {
		if c.poke == nil {
			return fmt.Errorf("sync daemon is running")
		}
		if err := c.poke(); err != nil {
			return fmt.Errorf("failed to notify sync daemon: %w", err)
		}
		c.io.Println("Sync daemon is running; synchronization requested.")
		return nil
	}
	defer func() {
		_ = c.locker.Unlock()
	}()

	c.io.Println("=== Synchronization ===")
	c.io.Println()

	result := c.syncService.SyncWithRemote(ctx)

	c.io.Printf("Pushed to server:   %d note(s)\n", result.Pushed)
	c.io.Printf("Pulled from server: %d note(s)\n", result.Pulled)
	if result.Conflicts > 0 {
		c.io.Printf("Conflicts resolved: %d\n", result.Conflicts)
	}
	c.io.Println()

	if !result.Success {
		return fmt.Errorf("synchronization incomplete; unsent changes stay queued")
	}

	c.io.Println("✓ Synchronization completed successfully!")
	return nil
}
