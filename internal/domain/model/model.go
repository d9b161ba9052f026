// Package model contains domain models passed between layers.
package model

import "github.com/okian/swimtab/internal/domain/types"

// NoDisqualification marks a result that carries no status code.
const NoDisqualification = "No"

// Competition is one meet, identified by a surrogate id assigned in
// processing order.
type Competition struct {
	ID        int
	Name      types.Opt[string]
	City      types.Opt[string]
	Course    types.Opt[string]
	StartDate types.Opt[string]
	EndDate   types.Opt[string]
	Nation    types.Opt[string]
	Timing    types.Opt[string]
	Lanes     types.Opt[string]
}

// Club is keyed by its code.
type Club struct {
	Code   types.Opt[string]
	Name   types.Opt[string]
	Nation types.Opt[string]
}

// Athlete is keyed by the source athlete id.
type Athlete struct {
	ID        types.Opt[string]
	FirstName types.Opt[string]
	LastName  types.Opt[string]
	BirthDate types.Opt[string]
	Gender    types.Opt[string]
}

// Result is one output row: a whole swim, or a single split of it.
type Result struct {
	CompetitionID  int
	AthleteID      types.Opt[string]
	ClubCode       types.Opt[string]
	Distance       types.Opt[string]
	Stroke         types.Opt[string]
	Round          types.Opt[string]
	SwimTime       types.Opt[string]
	Disqualified   string
	Points         types.Opt[string]
	SplitDistance  types.Opt[string]
	CumulativeTime types.Opt[string]
	Date           types.Opt[string]
	Time           types.Opt[string]
}

// Event is a race definition scoped to a single meet.
type Event struct {
	ID         string
	Distance   types.Opt[string]
	Stroke     types.Opt[string]
	Round      types.Opt[string]
	RelayCount int
	Date       types.Opt[string]
	Time       types.Opt[string]
}

// IsRelay reports whether more than one swimmer races per entry.
func (e Event) IsRelay() bool { return e.RelayCount > 1 }

// Heat is a single run of an event, scoped to a single meet.
type Heat struct {
	ID   string
	Date types.Opt[string]
	Time types.Opt[string]
}

// Tables holds the four output collections.
type Tables struct {
	Competitions []Competition
	Clubs        []Club
	Athletes     []Athlete
	Results      []Result
}

// Append moves every row of b onto the end of t.
func (t *Tables) Append(b *Tables) {
	t.Competitions = append(t.Competitions, b.Competitions...)
	t.Clubs = append(t.Clubs, b.Clubs...)
	t.Athletes = append(t.Athletes, b.Athletes...)
	t.Results = append(t.Results, b.Results...)
}

// Counts returns the number of rows per table, keyed by table name.
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		TableCompetitions: len(t.Competitions),
		TableClubs:        len(t.Clubs),
		TableAthletes:     len(t.Athletes),
		TableResults:      len(t.Results),
	}
}

// Table names shared by sinks and metrics.
const (
	TableCompetitions = "competitions"
	TableClubs        = "clubs"
	TableAthletes     = "athletes"
	TableResults      = "results"
)
