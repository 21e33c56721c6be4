package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// ============================================================
// Field table
// ============================================================

func TestFieldsMasterOrder(t *testing.T) {
	p := Project{}
	fields := p.Fields()
	if len(fields) != len(projectFields) {
		t.Fatalf("fields = %d, want %d", len(fields), len(projectFields))
	}
	if fields[0].Name != FieldID || fields[1].Name != FieldName {
		t.Errorf("order starts %q, %q; want id then name", fields[0].Name, fields[1].Name)
	}
	if fields[len(fields)-1].Name != FieldCompute {
		t.Errorf("last field = %q, want %q", fields[len(fields)-1].Name, FieldCompute)
	}
}

func TestFieldGetSet(t *testing.T) {
	var p Project
	p.SetField(FieldName, "Migración AD")
	p.SetField("NTP", "OK")
	p.SetField(FieldID, "42")
	p.SetField("columna desconocida", "ignorada")

	if p.Name != "Migración AD" || p.NTP != "OK" || p.ID != 42 {
		t.Errorf("unexpected state after SetField: %+v", p)
	}
	if v, ok := p.Field(FieldName); !ok || v != "Migración AD" {
		t.Errorf("Field(Project) = %q, %v", v, ok)
	}
	if _, ok := p.Field("columna desconocida"); ok {
		t.Error("unknown field should not resolve")
	}
}

func TestFieldKindOf(t *testing.T) {
	cases := []struct {
		name string
		want FieldKind
	}{
		{FieldID, KindID},
		{FieldStatus, KindStatus},
		{FieldStart, KindDate},
		{"OBSERVACIONES", KindLongText},
		{"NTP", KindChecklist},
		{"CONTACTO", KindText},
		{"columna desconocida", KindText},
	}
	for _, tc := range cases {
		if got := FieldKindOf(tc.name); got != tc.want {
			t.Errorf("FieldKindOf(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSectionsCoverKnownFields(t *testing.T) {
	for _, section := range Sections() {
		for _, name := range section.Fields {
			if _, ok := fieldsByName[name]; !ok {
				t.Errorf("section %q names unknown field %q", section.Title, name)
			}
		}
	}
}

// ============================================================
// JSON codec
// ============================================================

func TestProjectUnmarshalSpacedKeys(t *testing.T) {
	raw := `{
		"Id Project": 7,
		"Project": "Migración DNS",
		"Estado": "En Curso",
		"Start": "2025-03-01",
		"CANTIDAD MAQUINAS": 12,
		"NTP": null,
		"CONECTIVIDAD AWX 172.18.90.250 (SOLO UNIX)": "OK",
		"Columna Vieja": "se descarta"
	}`
	var p Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != 7 || p.Name != "Migración DNS" || p.Status != "En Curso" {
		t.Errorf("unexpected project: %+v", p)
	}
	if p.MachineCount != "12" {
		t.Errorf("numeric value should stringify, got %q", p.MachineCount)
	}
	if p.NTP != "" {
		t.Errorf("null should read as empty, got %q", p.NTP)
	}
	if p.AWXConnectivity != "OK" {
		t.Errorf("awx = %q, want OK", p.AWXConnectivity)
	}
}

func TestProjectMarshalShape(t *testing.T) {
	p := Project{ID: 9, Name: "Proyecto X", NTP: "Pendiente"}
	data, err := json.Marshal(&p)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if id, ok := doc["Id Project"].(float64); !ok || id != 9 {
		t.Errorf("id = %v, want JSON number 9", doc["Id Project"])
	}
	if doc["Project"] != "Proyecto X" {
		t.Errorf("name = %v", doc["Project"])
	}
	// Every known wire key is present, even when empty.
	if _, ok := doc["Estado"]; !ok {
		t.Error("empty Estado missing from document")
	}
}

func TestProjectRoundTrip(t *testing.T) {
	p := Project{
		ID:     3,
		Name:   "Roundtrip",
		Status: "Suspendido",
		Start:  "2025-01-02",
		NTP:    "OK",
	}
	data, err := json.Marshal(&p)
	if err != nil {
		t.Fatal(err)
	}
	var got Project
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Errorf("roundtrip changed the project:\n got %+v\nwant %+v", got, p)
	}
}

// ============================================================
// Dates
// ============================================================

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want string
	}{
		{"2025-03-05", true, "2025-03-05"},
		{"2025-03-05T12:00:00", true, "2025-03-05"},
		{" 2025-03-05 ", true, "2025-03-05"},
		{"", false, ""},
		{"05/03/2025", false, ""},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
		}
	}
}

func TestVisibleColumnsAndAddFieldsResolve(t *testing.T) {
	for _, name := range VisibleColumns {
		if _, ok := fieldsByName[name]; !ok {
			t.Errorf("visible column %q is not a known field", name)
		}
	}
	for _, name := range AddFields {
		if _, ok := fieldsByName[name]; !ok {
			t.Errorf("add field %q is not a known field", name)
		}
	}
}

func TestStatusVocabulary(t *testing.T) {
	if DefaultStatus != "En Curso" {
		t.Errorf("default status = %q", DefaultStatus)
	}
	joined := strings.Join(StatusOptions, ",")
	if !strings.Contains(joined, "Finalizado") {
		t.Errorf("status options missing Finalizado: %v", StatusOptions)
	}
}
