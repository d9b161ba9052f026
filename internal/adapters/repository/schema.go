package repository

import (
	"strconv"

	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/domain/types"
)

// column is one output column: its header and its SQL storage type.
type column struct {
	name    string
	sqlType string
}

// table describes how one collection of model.Tables is laid out on disk.
type table struct {
	name    string
	file    string
	columns []column
	rows    func(t *model.Tables) [][]types.Opt[string]
}

func text(name string) column    { return column{name: name, sqlType: "TEXT"} }
func integer(name string) column { return column{name: name, sqlType: "INTEGER"} }

func idCell(id int) types.Opt[string] { return types.Some(strconv.Itoa(id)) }

// schema lists the tables in the order they are written.
var schema = []table{ //nolint:gochecknoglobals // static table layout
	{
		name: model.TableAthletes,
		file: "atletas.csv",
		columns: []column{
			text("ID"), text("NOMBRE"), text("APELLIDOS"), text("birthday"), text("género"),
		},
		rows: func(t *model.Tables) [][]types.Opt[string] {
			out := make([][]types.Opt[string], 0, len(t.Athletes))
			for _, a := range t.Athletes {
				out = append(out, []types.Opt[string]{a.ID, a.FirstName, a.LastName, a.BirthDate, a.Gender})
			}
			return out
		},
	},
	{
		name:    model.TableClubs,
		file:    "clubes.csv",
		columns: []column{text("club_code"), text("club_name"), text("club_nation")},
		rows: func(t *model.Tables) [][]types.Opt[string] {
			out := make([][]types.Opt[string], 0, len(t.Clubs))
			for _, c := range t.Clubs {
				out = append(out, []types.Opt[string]{c.Code, c.Name, c.Nation})
			}
			return out
		},
	},
	{
		name: model.TableCompetitions,
		file: "competiciones.csv",
		columns: []column{
			integer("ID"), text("nombre"), text("ciudad"), text("tipo_piscina"), text("fecha_inicio"),
			text("fecha_fin"), text("pais"), text("cronometraje"), text("numeroCalles"),
		},
		rows: func(t *model.Tables) [][]types.Opt[string] {
			out := make([][]types.Opt[string], 0, len(t.Competitions))
			for _, c := range t.Competitions {
				out = append(out, []types.Opt[string]{
					idCell(c.ID), c.Name, c.City, c.Course, c.StartDate,
					c.EndDate, c.Nation, c.Timing, c.Lanes,
				})
			}
			return out
		},
	},
	{
		name: model.TableResults,
		file: "resultados.csv",
		columns: []column{
			integer("id_competicion"), text("id_atleta"), text("club_code"), text("distancia"), text("estilo"),
			text("ronda"), text("tiempo_final"), text("descalificado?"), text("puntos"),
			text("distancia_parcial"), text("tiempo_acumulado"), text("fecha"), text("hora"),
		},
		rows: func(t *model.Tables) [][]types.Opt[string] {
			out := make([][]types.Opt[string], 0, len(t.Results))
			for _, r := range t.Results {
				out = append(out, []types.Opt[string]{
					idCell(r.CompetitionID), r.AthleteID, r.ClubCode, r.Distance, r.Stroke,
					r.Round, r.SwimTime, types.Some(r.Disqualified), r.Points,
					r.SplitDistance, r.CumulativeTime, r.Date, r.Time,
				})
			}
			return out
		},
	},
}

func (tb table) header() []string {
	h := make([]string, len(tb.columns))
	for i, c := range tb.columns {
		h[i] = c.name
	}
	return h
}

// Files returns the CSV file names written by CSVStore, keyed by table name.
func Files() map[string]string {
	out := make(map[string]string, len(schema))
	for _, tb := range schema {
		out[tb.name] = tb.file
	}
	return out
}
