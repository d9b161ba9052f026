package testmeets

import "encoding/xml"

// Wire shapes for the generated documents.

type lenexDoc struct {
	XMLName xml.Name  `xml:"LENEX"`
	Version string    `xml:"version,attr"`
	Meets   []meetXML `xml:"MEETS>MEET"`
}

type meetXML struct {
	Name     string       `xml:"name,attr"`
	City     string       `xml:"city,attr"`
	Nation   string       `xml:"nation,attr"`
	Course   string       `xml:"course,attr"`
	Timing   string       `xml:"timing,attr"`
	Pool     poolXML      `xml:"POOL"`
	Sessions []sessionXML `xml:"SESSIONS>SESSION"`
	Clubs    []clubXML    `xml:"CLUBS>CLUB"`
}

type poolXML struct {
	LaneMax int `xml:"lanemax,attr"`
}

type sessionXML struct {
	Number int        `xml:"number,attr"`
	Date   string     `xml:"date,attr"`
	Events []eventXML `xml:"EVENTS>EVENT"`
}

type eventXML struct {
	EventID   string       `xml:"eventid,attr"`
	Round     string       `xml:"round,attr"`
	DayTime   string       `xml:"daytime,attr"`
	SwimStyle swimStyleXML `xml:"SWIMSTYLE"`
	Heats     []heatXML    `xml:"HEATS>HEAT"`
}

type swimStyleXML struct {
	Distance   int    `xml:"distance,attr"`
	Stroke     string `xml:"stroke,attr"`
	RelayCount int    `xml:"relaycount,attr,omitempty"`
}

type heatXML struct {
	HeatID  string `xml:"heatid,attr"`
	DayTime string `xml:"daytime,attr"`
}

type clubXML struct {
	Code     string       `xml:"code,attr"`
	Name     string       `xml:"name,attr"`
	Nation   string       `xml:"nation,attr"`
	Athletes []athleteXML `xml:"ATHLETES>ATHLETE"`
}

type athleteXML struct {
	AthleteID string      `xml:"athleteid,attr"`
	FirstName string      `xml:"firstname,attr"`
	LastName  string      `xml:"lastname,attr"`
	BirthDate string      `xml:"birthdate,attr"`
	Gender    string      `xml:"gender,attr"`
	Results   []resultXML `xml:"RESULTS>RESULT"`
}

type resultXML struct {
	EventID  string     `xml:"eventid,attr"`
	HeatID   string     `xml:"heatid,attr,omitempty"`
	SwimTime string     `xml:"swimtime,attr"`
	Status   string     `xml:"status,attr,omitempty"`
	Points   int        `xml:"points,attr,omitempty"`
	Splits   []splitXML `xml:"SPLITS>SPLIT"`
}

type splitXML struct {
	Distance int    `xml:"distance,attr"`
	SwimTime string `xml:"swimtime,attr"`
}
