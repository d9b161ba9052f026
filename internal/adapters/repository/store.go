// Package repository writes the output tables to their sinks.
package repository

import (
	"context"

	"github.com/okian/swimtab/internal/domain/model"
)

// Store persists a complete set of tables, replacing whatever a previous
// run wrote.
type Store interface {
	Save(ctx context.Context, t *model.Tables) error
}
