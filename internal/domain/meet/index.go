package meet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/xmltree"
)

// defaultRelayCount applies when an event has no swim style or the style
// has no relaycount attribute.
const defaultRelayCount = 1

// Index holds the event and heat lookups of a single meet.
type Index struct {
	events map[string]model.Event
	heats  map[string]model.Heat
}

// BuildIndex walks the sessions of meet and indexes every event and heat by
// id. A later duplicate id replaces the earlier entry. Events and heats
// without an id are not indexed since nothing can reference them.
func BuildIndex(meet *xmltree.Element) (*Index, error) {
	idx := &Index{
		events: make(map[string]model.Event),
		heats:  make(map[string]model.Heat),
	}

	for _, session := range meet.FindAll(pathSessions) {
		date := session.Attr("date")
		for _, ev := range session.FindAll(pathEvents) {
			event := model.Event{
				Round:      ev.Attr("round"),
				RelayCount: defaultRelayCount,
				Date:       date,
				Time:       ev.Attr("daytime"),
			}
			if style := ev.Find(pathStyle); style != nil {
				event.Distance = style.Attr("distance")
				event.Stroke = style.Attr("stroke")
				n, err := relayCount(style)
				if err != nil {
					return nil, err
				}
				event.RelayCount = n
			}
			if id, ok := ev.Attr("eventid").NonZero().Get(); ok {
				event.ID = id
				idx.events[id] = event
			}

			for _, heat := range ev.FindAll(pathHeats) {
				id, ok := heat.Attr("heatid").NonZero().Get()
				if !ok {
					continue
				}
				idx.heats[id] = model.Heat{
					ID:   id,
					Date: date,
					Time: heat.Attr("daytime"),
				}
			}
		}
	}
	return idx, nil
}

func relayCount(style *xmltree.Element) (int, error) {
	raw, ok := style.Attr("relaycount").Get()
	if !ok {
		return defaultRelayCount, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRelayCount, raw)
	}
	return n, nil
}

// Event looks up an event by id.
func (i *Index) Event(id string) (model.Event, bool) {
	ev, ok := i.events[id]
	return ev, ok
}

// Heat looks up a heat by id.
func (i *Index) Heat(id string) (model.Heat, bool) {
	h, ok := i.heats[id]
	return h, ok
}

// Len returns the number of indexed events and heats.
func (i *Index) Len() (events, heats int) {
	return len(i.events), len(i.heats)
}
