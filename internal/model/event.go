package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Event is a calendar event from the backend. Timestamps stay as wire
// strings; one malformed event must not poison a whole refetch, so
// parsing happens lazily at the point of use.
type Event struct {
	ID          int64
	Title       string
	Start       string
	End         string
	Location    string
	Description string
}

// The event keys also contain spaces, so the codec is explicit.
const (
	eventKeyID          = "id"
	eventKeyTitle       = "Titulo"
	eventKeyStart       = "Fecha de Inicio"
	eventKeyEnd         = "Fecha de Fin"
	eventKeyLocation    = "Ubicacion"
	eventKeyDescription = "Descripcion"
)

func (e *Event) MarshalJSON() ([]byte, error) {
	doc := map[string]any{
		eventKeyTitle:       e.Title,
		eventKeyStart:       e.Start,
		eventKeyLocation:    e.Location,
		eventKeyDescription: e.Description,
	}
	if e.End != "" {
		doc[eventKeyEnd] = e.End
	} else {
		doc[eventKeyEnd] = nil
	}
	if e.ID != 0 {
		doc[eventKeyID] = e.ID
	}
	return json.Marshal(doc)
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if v, ok := doc[eventKeyID].(float64); ok {
		e.ID = int64(v)
	}
	e.Title = stringify(doc[eventKeyTitle])
	e.Start = stringify(doc[eventKeyStart])
	e.End = stringify(doc[eventKeyEnd])
	e.Location = stringify(doc[eventKeyLocation])
	e.Description = stringify(doc[eventKeyDescription])
	return nil
}

// StartTime parses the start timestamp.
func (e *Event) StartTime() (time.Time, bool) {
	return parseTimestamp(e.Start)
}

// EndTime parses the optional end timestamp.
func (e *Event) EndTime() (time.Time, bool) {
	return parseTimestamp(e.End)
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
