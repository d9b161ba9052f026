package testmeets

import (
	"errors"
	"fmt"

	"github.com/okian/swimtab/internal/domain/model"
)

// Verify compares the per-table row counts of a conversion with the
// manifest and reports every mismatch.
func (m *Manifest) Verify(rows map[string]int) error {
	want := []struct {
		table string
		n     int
	}{
		{model.TableCompetitions, m.Meets},
		{model.TableClubs, m.Clubs},
		{model.TableAthletes, m.Athletes},
		{model.TableResults, m.Results},
	}
	var errs []error
	for _, w := range want {
		if got := rows[w.table]; got != w.n {
			errs = append(errs, fmt.Errorf("%w: %s has %d rows, want %d", ErrMismatch, w.table, got, w.n))
		}
	}
	return errors.Join(errs...)
}
