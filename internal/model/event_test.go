package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestEventUnmarshal(t *testing.T) {
	raw := `{
		"id": 4,
		"Titulo": "Corte de red",
		"Fecha de Inicio": "2025-07-01T22:00:00Z",
		"Fecha de Fin": null,
		"Ubicacion": "Datacenter Norte",
		"Descripcion": "Ventana de mantenimiento"
	}`
	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatal(err)
	}
	if e.ID != 4 || e.Title != "Corte de red" || e.Location != "Datacenter Norte" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.End != "" {
		t.Errorf("null end should read as empty, got %q", e.End)
	}

	start, ok := e.StartTime()
	if !ok {
		t.Fatal("start should parse")
	}
	if start.UTC() != time.Date(2025, 7, 1, 22, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", start)
	}
	if _, ok := e.EndTime(); ok {
		t.Error("empty end should not parse")
	}
}

func TestEventMarshal(t *testing.T) {
	e := Event{Title: "Nuevo", Start: "2025-07-01T22:00:00Z"}
	data, err := json.Marshal(&e)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"Fecha de Inicio"`) || !strings.Contains(s, `"Titulo"`) {
		t.Errorf("wire keys missing: %s", s)
	}
	if strings.Contains(s, `"id"`) {
		t.Errorf("unsaved event should omit id: %s", s)
	}
	if !strings.Contains(s, `"Fecha de Fin":null`) {
		t.Errorf("empty end should marshal as null: %s", s)
	}

	e.ID = 4
	data, _ = json.Marshal(&e)
	if !strings.Contains(string(data), `"id":4`) {
		t.Errorf("saved event should carry id: %s", data)
	}
}

func TestEventTimestampLayouts(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-07-01T22:00:00Z", true},
		{"2025-07-01T22:00:00", true},
		{"2025-07-01T22:00", true},
		{"2025-07-01", true},
		{"mañana", false},
		{"", false},
	}
	for _, tc := range cases {
		e := Event{Start: tc.in}
		if _, ok := e.StartTime(); ok != tc.ok {
			t.Errorf("StartTime(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
	}
}
