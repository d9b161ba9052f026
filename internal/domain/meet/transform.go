package meet

import (
	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/xmltree"
)

// firstCompetitionID is the id given to the first meet of a run.
const firstCompetitionID = 1

// Transformer converts documents into table rows. Competition ids continue
// across documents in the order they are transformed. A Transformer is not
// safe for concurrent use.
type Transformer struct {
	nextID int
	report Report
}

// NewTransformer returns a Transformer whose first competition gets id 1.
func NewTransformer() *Transformer {
	return &Transformer{nextID: firstCompetitionID}
}

// Transform converts every meet under the given document roots, in order.
// The roots are handled as one unit: on error nothing is returned and no
// competition id is consumed, so a failed file leaves no trace.
func (t *Transformer) Transform(roots ...*xmltree.Element) (*model.Tables, Report, error) {
	batch := &model.Tables{}
	var rep Report
	id := t.nextID
	for _, root := range roots {
		if root == nil {
			return nil, Report{}, ErrNoRoot
		}
		for _, m := range root.FindAll(pathMeets) {
			idx, err := BuildIndex(m)
			if err != nil {
				return nil, Report{}, err
			}
			batch.Competitions = append(batch.Competitions, ExtractCompetition(m, id))
			Flatten(m, id, idx, batch, &rep)
			rep.Meets++
			id++
		}
	}

	t.nextID = id
	t.report.Add(rep)
	return batch, rep, nil
}

// NextID returns the id the next competition will receive.
func (t *Transformer) NextID() int { return t.nextID }

// Report returns the totals over every successful Transform call.
func (t *Transformer) Report() Report { return t.report }
