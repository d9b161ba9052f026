// Package finalize prepares the accumulated tables for output.
package finalize

import (
	"context"

	"github.com/okian/swimtab/internal/domain/dedupe"
	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/domain/types"
)

// Tables deduplicates athletes by id and clubs by code, keeping the first
// occurrence of each key in insertion order. Clubs without a code share one
// key. Competitions and results are passed through unchanged.
func Tables(ctx context.Context, t *model.Tables) *model.Tables {
	return &model.Tables{
		Competitions: t.Competitions,
		Clubs: dedupe.Unique(ctx, t.Clubs, func(c model.Club) types.Opt[string] {
			return c.Code
		}),
		Athletes: dedupe.Unique(ctx, t.Athletes, func(a model.Athlete) types.Opt[string] {
			return a.ID
		}),
		Results: t.Results,
	}
}
