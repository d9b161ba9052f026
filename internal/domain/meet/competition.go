// Package meet turns parsed meet-result documents into flat table rows.
package meet

import (
	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/domain/types"
	"github.com/okian/swimtab/internal/xmltree"
)

// Element paths relative to a MEET element.
const (
	pathMeets    = "MEETS/MEET"
	pathPool     = "POOL"
	pathSessions = "SESSIONS/SESSION"
	pathEvents   = "EVENTS/EVENT"
	pathStyle    = "SWIMSTYLE"
	pathHeats    = "HEATS/HEAT"
	pathClubs    = "CLUBS/CLUB"
	pathAthletes = "ATHLETES/ATHLETE"
	pathResults  = "RESULTS/RESULT"
	pathSplits   = "SPLITS/SPLIT"
)

// ExtractCompetition reads the competition record of a MEET element. Missing
// attributes stay absent; it never fails.
func ExtractCompetition(meet *xmltree.Element, id int) model.Competition {
	start, end := sessionDateRange(meet.FindAll(pathSessions))
	return model.Competition{
		ID:        id,
		Name:      meet.Attr("name"),
		City:      meet.Attr("city"),
		Course:    meet.Attr("course"),
		StartDate: start,
		EndDate:   end,
		Nation:    meet.Attr("nation"),
		Timing:    meet.Attr("timing"),
		Lanes:     meet.Find(pathPool).Attr("lanemax"),
	}
}

// sessionDateRange returns the earliest and latest non-empty session date.
// Dates are YYYY-MM-DD (or YYYYMMDD), so string order is chronological.
func sessionDateRange(sessions []*xmltree.Element) (types.Opt[string], types.Opt[string]) {
	var first, last string
	found := false
	for _, s := range sessions {
		d, ok := s.Attr("date").NonZero().Get()
		if !ok {
			continue
		}
		if !found || d < first {
			first = d
		}
		if !found || d > last {
			last = d
		}
		found = true
	}
	if !found {
		return types.None[string](), types.None[string]()
	}
	return types.Some(first), types.Some(last)
}
