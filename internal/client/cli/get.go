package cli

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/iudanet/zennotes/internal/client/data"
	"github.com/iudanet/zennotes/internal/models"
	"github.com/iudanet/zennotes/internal/validation"
)

var noteTmpl = template.Must(template.New("note").Parse(noteTemplate))

func (c *Cli) runGet(ctx context.Context, id string) error {
	note, err := c.resolve(ctx, id)
	if err != nil {
		return err
	}

	if err := noteTmpl.Execute(c.io, note); err != nil {
		return fmt.Errorf("failed to render note: %w", err)
	}
	return nil
}

// resolve находит заметку по полному id или по уникальному префиксу
func (c *Cli) resolve(ctx context.Context, id string) (*models.LocalNote, error) {
	if err := validation.ValidateNoteID(id); err != nil {
		return nil, err
	}

	note, err := c.dataService.Get(ctx, id)
	if err == nil {
		return note, nil
	}
	if !data.IsNotFound(err) {
		return nil, err
	}

	notes, err := c.dataService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var found *models.LocalNote
	for _, n := range notes {
		if !strings.HasPrefix(n.ID, id) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("id prefix %q is ambiguous", id)
		}
		found = n
	}
	if found == nil {
		return nil, fmt.Errorf("note %s not found", id)
	}
	return found, nil
}
