package meet

import (
	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/domain/types"
	"github.com/okian/swimtab/internal/xmltree"
)

// Report counts what a transformation kept and dropped.
type Report struct {
	Meets            int
	Results          int
	UnresolvedEvents int
	RelayResults     int
}

// Add accumulates o into r.
func (r *Report) Add(o Report) {
	r.Meets += o.Meets
	r.Results += o.Results
	r.UnresolvedEvents += o.UnresolvedEvents
	r.RelayResults += o.RelayResults
}

// Flatten appends the clubs, athletes and result rows of meet to out.
// Results are resolved against idx; those referencing an unknown event or a
// relay event produce no rows.
func Flatten(meet *xmltree.Element, competitionID int, idx *Index, out *model.Tables, rep *Report) {
	for _, club := range meet.FindAll(pathClubs) {
		code := club.Attr("code")
		out.Clubs = append(out.Clubs, model.Club{
			Code:   code,
			Name:   club.Attr("name"),
			Nation: club.Attr("nation"),
		})

		for _, athlete := range club.FindAll(pathAthletes) {
			athleteID := athlete.Attr("athleteid")
			out.Athletes = append(out.Athletes, model.Athlete{
				ID:        athleteID,
				FirstName: athlete.Attr("firstname"),
				LastName:  athlete.Attr("lastname"),
				BirthDate: athlete.Attr("birthdate"),
				Gender:    athlete.Attr("gender"),
			})

			for _, result := range athlete.FindAll(pathResults) {
				row, ok := resolveResult(result, idx, rep)
				if !ok {
					continue
				}
				row.CompetitionID = competitionID
				row.AthleteID = athleteID
				row.ClubCode = code
				out.Results = append(out.Results, expandSplits(row, result.FindAll(pathSplits))...)
				rep.Results++
			}
		}
	}
}

// resolveResult fills the event, timing and outcome fields of a result row.
func resolveResult(result *xmltree.Element, idx *Index, rep *Report) (model.Result, bool) {
	eventID, ok := result.Attr("eventid").NonZero().Get()
	if !ok {
		rep.UnresolvedEvents++
		return model.Result{}, false
	}
	event, ok := idx.Event(eventID)
	if !ok {
		rep.UnresolvedEvents++
		return model.Result{}, false
	}
	if event.IsRelay() {
		rep.RelayResults++
		return model.Result{}, false
	}

	date, daytime := event.Date, event.Time
	if heatID, ok := result.Attr("heatid").NonZero().Get(); ok {
		if heat, ok := idx.Heat(heatID); ok {
			date, daytime = heat.Date, heat.Time
		}
	}

	return model.Result{
		Distance:     event.Distance,
		Stroke:       event.Stroke,
		Round:        event.Round,
		SwimTime:     result.Attr("swimtime"),
		Disqualified: result.Attr("status").NonZero().OrElse(model.NoDisqualification),
		Points:       result.Attr("points"),
		Date:         date,
		Time:         daytime,
	}, true
}

// expandSplits returns one row per split, or the row itself without split
// fields when there are none.
func expandSplits(row model.Result, splits []*xmltree.Element) []model.Result {
	if len(splits) == 0 {
		row.SplitDistance = types.None[string]()
		row.CumulativeTime = types.None[string]()
		return []model.Result{row}
	}
	rows := make([]model.Result, 0, len(splits))
	for _, split := range splits {
		r := row
		r.SplitDistance = split.Attr("distance")
		r.CumulativeTime = split.Attr("swimtime")
		rows = append(rows, r)
	}
	return rows
}
