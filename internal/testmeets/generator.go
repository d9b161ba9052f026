// Package testmeets writes synthetic LENEX meet files together with a
// manifest of what converting them must produce.
package testmeets

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// event is one race of the generated programme.
type event struct {
	id       string
	distance int
	stroke   string
	round    string
	relay    int
	session  int
	daytime  string
	pace     float64 // time factor relative to freestyle
}

// programme is run at every generated meet. Event 4 is a relay and must
// never produce result rows.
var programme = []event{ //nolint:gochecknoglobals // static fixture programme
	{id: "1", distance: 100, stroke: "FREE", round: "PRE", session: 0, daytime: "09:30", pace: 1.0},
	{id: "2", distance: 50, stroke: "BACK", round: "TIM", session: 0, daytime: "10:15", pace: 1.1},
	{id: "3", distance: 200, stroke: "MEDLEY", round: "FIN", session: 1, daytime: "17:00", pace: 1.12},
	{id: "4", distance: 100, stroke: "FREE", round: "FIN", relay: 4, session: 1, daytime: "18:30", pace: 1.0},
}

const (
	relayEventID  = "4"
	orphanEventID = "999"
	heatsPerEvent = 2
	splitEvery    = 50
)

//nolint:gochecknoglobals // name pools
var (
	firstNames = []string{"Ana", "Lucía", "Marta", "Irene", "José", "Álvaro", "Hugo", "Iñigo", "Nuria", "Pablo"}
	lastNames  = []string{"García", "Núñez", "López", "Martín", "Ibáñez", "Ruiz", "Peña", "Díaz", "Castaño", "Vidal"}
	cities     = []string{"Madrid", "Sevilla", "A Coruña", "Málaga", "Bilbao", "Castellón"}
	baseDate   = time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC)
)

type poolClub struct {
	code   string
	name   string
	nation string
}

type poolAthlete struct {
	id     string
	first  string
	last   string
	birth  string
	gender string
	club   int
	pace   int // centiseconds per 50m freestyle
}

// meetStats counts what one generated meet contributes to the manifest.
type meetStats struct {
	clubs    []string
	athletes []string
	results  int
	relays   int
	orphans  int
}

// Generator produces meets from a seeded random source, so the same Config
// always yields the same documents.
type Generator struct {
	cfg      Config
	rng      *rand.Rand
	clubs    []poolClub
	athletes []poolAthlete
}

// NewGenerator validates cfg and builds the club and athlete pools.
func NewGenerator(cfg Config) (*Generator, error) {
	switch {
	case cfg.Files < 0:
		return nil, fmt.Errorf("%w: files must not be negative", ErrInvalidConfig)
	case cfg.Athletes <= 0:
		return nil, fmt.Errorf("%w: athletes must be positive", ErrInvalidConfig)
	case cfg.Clubs <= 0:
		return nil, fmt.Errorf("%w: clubs must be positive", ErrInvalidConfig)
	case cfg.ArchiveEvery < 0:
		return nil, fmt.Errorf("%w: archive interval must not be negative", ErrInvalidConfig)
	}

	g := &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)), //nolint:gosec // fixtures, not secrets
	}
	for i := 0; i < cfg.Clubs; i++ {
		g.clubs = append(g.clubs, poolClub{
			code:   fmt.Sprintf("C%03d", i+1),
			name:   fmt.Sprintf("Club Natación %s %d", cities[i%len(cities)], i+1),
			nation: "ESP",
		})
	}
	for i := 0; i < cfg.Athletes; i++ {
		id, err := uuid.NewRandomFromReader(g.rng)
		if err != nil {
			return nil, fmt.Errorf("athlete id: %w", err)
		}
		gender := "F"
		if i%2 == 1 {
			gender = "M"
		}
		g.athletes = append(g.athletes, poolAthlete{
			id:     id.String(),
			first:  firstNames[g.rng.Intn(len(firstNames))],
			last:   lastNames[g.rng.Intn(len(lastNames))] + " " + lastNames[g.rng.Intn(len(lastNames))],
			birth:  baseDate.AddDate(-12-g.rng.Intn(10), 0, g.rng.Intn(365)).Format(time.DateOnly),
			gender: gender,
			club:   i % cfg.Clubs,
			pace:   2700 + g.rng.Intn(900),
		})
	}
	return g, nil
}

// meet builds the n-th meet (0-based).
func (g *Generator) meet(n int) (*lenexDoc, meetStats) {
	day := baseDate.AddDate(0, 0, 7*n)
	m := meetXML{
		Name:   fmt.Sprintf("Trofeo Sintético %d", n+1),
		City:   cities[g.rng.Intn(len(cities))],
		Nation: "ESP",
		Course: []string{"LCM", "SCM"}[g.rng.Intn(2)],
		Timing: "AUTOMATIC",
		Pool:   poolXML{LaneMax: 8 + 2*g.rng.Intn(2)},
	}
	for s := 0; s < 2; s++ {
		session := sessionXML{Number: s + 1, Date: day.AddDate(0, 0, s).Format(time.DateOnly)}
		for _, ev := range programme {
			if ev.session != s {
				continue
			}
			x := eventXML{
				EventID:   ev.id,
				Round:     ev.round,
				DayTime:   ev.daytime,
				SwimStyle: swimStyleXML{Distance: ev.distance, Stroke: ev.stroke, RelayCount: ev.relay},
			}
			for h := 0; h < heatsPerEvent; h++ {
				x.Heats = append(x.Heats, heatXML{HeatID: heatID(ev.id, h), DayTime: heatTime(ev.daytime, h)})
			}
			session.Events = append(session.Events, x)
		}
		m.Sessions = append(m.Sessions, session)
	}

	var st meetStats
	byClub := make([][]athleteXML, len(g.clubs))
	for i, a := range g.athletes {
		// Every meet has at least one athlete.
		forced := len(st.athletes) == 0 && i == len(g.athletes)-1
		if !forced && g.rng.Intn(2) != 0 {
			continue
		}
		x := athleteXML{
			AthleteID: a.id,
			FirstName: a.first,
			LastName:  a.last,
			BirthDate: a.birth,
			Gender:    a.gender,
		}
		x.Results = g.individualResults(a, &st)
		if len(byClub[a.club]) == 0 {
			x.Results = append(x.Results, resultXML{
				EventID:  relayEventID,
				HeatID:   heatID(relayEventID, 0),
				SwimTime: formatTime(4 * a.pace * 2),
			})
			st.relays++
		}
		if len(st.athletes) == 0 {
			x.Results = append(x.Results, resultXML{EventID: orphanEventID, SwimTime: formatTime(a.pace)})
			st.orphans++
		}
		byClub[a.club] = append(byClub[a.club], x)
		st.athletes = append(st.athletes, a.id)
	}
	for i, c := range g.clubs {
		if len(byClub[i]) == 0 {
			continue
		}
		m.Clubs = append(m.Clubs, clubXML{Code: c.code, Name: c.name, Nation: c.nation, Athletes: byClub[i]})
		st.clubs = append(st.clubs, c.code)
	}

	return &lenexDoc{Version: "3.0", Meets: []meetXML{m}}, st
}

func (g *Generator) individualResults(a poolAthlete, st *meetStats) []resultXML {
	var out []resultXML
	for _, ev := range programme {
		if ev.relay > 1 || g.rng.Intn(3) == 0 {
			continue
		}
		total := int(float64(a.pace*ev.distance/splitEvery)*ev.pace) + g.rng.Intn(200)
		r := resultXML{
			EventID:  ev.id,
			SwimTime: formatTime(total),
			Points:   300 + g.rng.Intn(600),
		}
		// A result without heat falls back to the event's date and time.
		if h := g.rng.Intn(heatsPerEvent + 1); h < heatsPerEvent {
			r.HeatID = heatID(ev.id, h)
		}
		if g.rng.Intn(20) == 0 {
			r.Status = "DSQ"
		}
		for d := splitEvery; d < ev.distance; d += splitEvery {
			r.Splits = append(r.Splits, splitXML{Distance: d, SwimTime: formatTime(total * d / ev.distance)})
		}
		out = append(out, r)
		st.results += max(1, len(r.Splits))
	}
	return out
}

func heatID(eventID string, h int) string {
	return eventID + strconv.Itoa(h+1)
}

func heatTime(daytime string, h int) string {
	t, err := time.Parse("15:04", daytime)
	if err != nil {
		return daytime
	}
	return t.Add(time.Duration(h) * 8 * time.Minute).Format("15:04")
}

// formatTime renders centiseconds as a LENEX swim time, HH:MM:SS.hh.
func formatTime(cs int) string {
	return fmt.Sprintf("%02d:%02d:%02d.%02d", cs/360000, cs/6000%60, cs/100%60, cs%100)
}
