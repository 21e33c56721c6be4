package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldKind drives how a project field is rendered and edited.
type FieldKind int

const (
	KindText FieldKind = iota
	KindLongText
	KindDate
	KindStatus
	KindChecklist
	KindID
)

// Vocabularies used by the edit form. Both are free text on the wire;
// the backend never validates them.
var (
	StatusOptions    = []string{"En Curso", "Finalizado", "Cerrado", "Suspendido"}
	ChecklistOptions = []string{"Pendiente", "En Curso", "OK", "N/A"}
)

// DefaultStatus is pre-filled when adding a new project.
const DefaultStatus = "En Curso"

// Project is the fixed schema behind the backend's loosely-typed JSON
// documents. The wire keys contain spaces, so (un)marshaling goes
// through the field table below instead of struct tags.
type Project struct {
	ID     int64
	Name   string
	RF     string
	Status string
	Phase  string // server-computed, read-only
	Start  string // ISO date, possibly with a time suffix
	Finish string

	Observations string
	Contact      string

	MachineCount string
	Hostname     string
	Platform     string
	OS           string
	Domain       string
	Service      string
	Compute      string

	WindowsLicense string
	NTP            string
	Antivirus      string
	Scan           string
	Database       string
	LoadBalancing  string
	Backup         string
	BackupPlatform string
	BackupConfig   string
	Provider       string
	SNMPCommunity  string
	NagiosMonitor  string
	ElasticMonitor string
	UCMDB          string
	AWXConnectivity string
	RT             string
	OLAChange      string
}

// FieldValue is one (wire name, value) pair of a project.
type FieldValue struct {
	Name  string
	Value string
	Kind  FieldKind
}

type fieldSpec struct {
	name string
	kind FieldKind
	get  func(*Project) string
	set  func(*Project, string)
}

func text(name string, f func(*Project) *string) fieldSpec {
	return fieldSpec{name: name, kind: KindText,
		get: func(p *Project) string { return *f(p) },
		set: func(p *Project, v string) { *f(p) = v },
	}
}

func kinded(spec fieldSpec, k FieldKind) fieldSpec {
	spec.kind = k
	return spec
}

// projectFields lists every field in master order. The order is what
// Fields() yields, which in turn fixes search scope, detail layout,
// and export column order.
var projectFields = []fieldSpec{
	{name: FieldID, kind: KindID,
		get: func(p *Project) string {
			if p.ID == 0 {
				return ""
			}
			return strconv.FormatInt(p.ID, 10)
		},
		set: func(p *Project, v string) {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err == nil {
				p.ID = n
			}
		}},
	text(FieldName, func(p *Project) *string { return &p.Name }),
	text("RF", func(p *Project) *string { return &p.RF }),
	kinded(text(FieldStatus, func(p *Project) *string { return &p.Status }), KindStatus),
	text(FieldPhase, func(p *Project) *string { return &p.Phase }),
	kinded(text(FieldStart, func(p *Project) *string { return &p.Start }), KindDate),
	kinded(text(FieldFinish, func(p *Project) *string { return &p.Finish }), KindDate),
	kinded(text("OBSERVACIONES", func(p *Project) *string { return &p.Observations }), KindLongText),
	text("CONTACTO", func(p *Project) *string { return &p.Contact }),
	text("CANTIDAD MAQUINAS", func(p *Project) *string { return &p.MachineCount }),
	text("COD SERV_HOSTNAME", func(p *Project) *string { return &p.Hostname }),
	text("PLATAFORMA", func(p *Project) *string { return &p.Platform }),
	text("SO", func(p *Project) *string { return &p.OS }),
	kinded(text("WINDOWS LICENCIA ACTIVADA", func(p *Project) *string { return &p.WindowsLicense }), KindChecklist),
	text("DOMINIO", func(p *Project) *string { return &p.Domain }),
	kinded(text("NTP", func(p *Project) *string { return &p.NTP }), KindChecklist),
	kinded(text("Antivirus", func(p *Project) *string { return &p.Antivirus }), KindChecklist),
	kinded(text("SCAN", func(p *Project) *string { return &p.Scan }), KindChecklist),
	text("Base de Datos", func(p *Project) *string { return &p.Database }),
	text("Balanceo", func(p *Project) *string { return &p.LoadBalancing }),
	text("Backup", func(p *Project) *string { return &p.Backup }),
	text("PLATAFORMA BACKUP", func(p *Project) *string { return &p.BackupPlatform }),
	kinded(text("CONFIG BACKUP", func(p *Project) *string { return &p.BackupConfig }), KindChecklist),
	text("PROVEEDOR", func(p *Project) *string { return &p.Provider }),
	text("COMUNIDAD SNMP", func(p *Project) *string { return &p.SNMPCommunity }),
	kinded(text("MONITOREO NAGIOS", func(p *Project) *string { return &p.NagiosMonitor }), KindChecklist),
	kinded(text("MONITOREO ELASTIC", func(p *Project) *string { return &p.ElasticMonitor }), KindChecklist),
	kinded(text("UCMDB", func(p *Project) *string { return &p.UCMDB }), KindChecklist),
	kinded(text(FieldAWX, func(p *Project) *string { return &p.AWXConnectivity }), KindChecklist),
	text("RT", func(p *Project) *string { return &p.RT }),
	text("SERVICIO", func(p *Project) *string { return &p.Service }),
	text(FieldOLA, func(p *Project) *string { return &p.OLAChange }),
	kinded(text(FieldCompute, func(p *Project) *string { return &p.Compute }), KindLongText),
}

// Wire names referenced from more than one place.
const (
	FieldID      = "Id Project"
	FieldName    = "Project"
	FieldStatus  = "Estado"
	FieldPhase   = "Fase"
	FieldStart   = "Start"
	FieldFinish  = "Finish"
	FieldCompute = "Computo"
	FieldAWX     = "CONECTIVIDAD AWX 172.18.90.250 (SOLO UNIX)"
	FieldOLA     = "CAMBIO PASO OPERACIÓN (OLA)"
)

var fieldsByName = func() map[string]*fieldSpec {
	m := make(map[string]*fieldSpec, len(projectFields))
	for i := range projectFields {
		m[projectFields[i].name] = &projectFields[i]
	}
	return m
}()

// Fields returns every field of p in master order.
func (p *Project) Fields() []FieldValue {
	out := make([]FieldValue, len(projectFields))
	for i, f := range projectFields {
		out[i] = FieldValue{Name: f.name, Value: f.get(p), Kind: f.kind}
	}
	return out
}

// Field returns the value of the named field.
func (p *Project) Field(name string) (string, bool) {
	f, ok := fieldsByName[name]
	if !ok {
		return "", false
	}
	return f.get(p), true
}

// SetField assigns the named field from its string form. Unknown names
// are ignored, mirroring how the backend drops columns it doesn't know.
func (p *Project) SetField(name, value string) {
	if f, ok := fieldsByName[name]; ok {
		f.set(p, value)
	}
}

// FieldKindOf reports the kind of a wire field name.
func FieldKindOf(name string) FieldKind {
	if f, ok := fieldsByName[name]; ok {
		return f.kind
	}
	return KindText
}

// MarshalJSON emits the backend's document shape: every field under its
// wire key, the identifier as a JSON number.
func (p *Project) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(projectFields))
	for _, f := range projectFields {
		if f.kind == KindID {
			doc[f.name] = p.ID
			continue
		}
		doc[f.name] = f.get(p)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON accepts the backend's documents, which may carry
// numbers, strings or nulls in any field, plus columns this client
// doesn't model (spreadsheet leftovers); those are dropped.
func (p *Project) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	for name, raw := range doc {
		f, ok := fieldsByName[name]
		if !ok {
			continue
		}
		if f.kind == KindID {
			switch v := raw.(type) {
			case float64:
				p.ID = int64(v)
			case string:
				f.set(p, v)
			}
			continue
		}
		f.set(p, stringify(raw))
	}
	return nil
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Section is one of the three fixed groups of project fields.
type Section struct {
	Title  string
	Fields []string
}

// Sections returns the fixed detail/edit grouping. Fase is deliberately
// absent: the backend computes it from the phase history.
func Sections() []Section {
	return []Section{
		{
			Title: "Detalles del Proyecto",
			Fields: []string{
				FieldID, FieldName, "RF", FieldStatus, FieldStart,
				FieldFinish, "OBSERVACIONES", "CONTACTO",
			},
		},
		{
			Title: "Detalles de Cómputo",
			Fields: []string{
				"CANTIDAD MAQUINAS", "COD SERV_HOSTNAME", "PLATAFORMA",
				"SO", "DOMINIO", "SERVICIO", FieldCompute,
			},
		},
		{
			Title: "Requisitos para Paso a Operación",
			Fields: []string{
				"WINDOWS LICENCIA ACTIVADA", "NTP", "Antivirus", "SCAN",
				"CONFIG BACKUP", "MONITOREO NAGIOS", "MONITOREO ELASTIC",
				"UCMDB", FieldAWX,
			},
		},
	}
}

// VisibleColumns are the seven table columns.
var VisibleColumns = []string{
	FieldID, FieldName, FieldStatus, FieldPhase, FieldStart, FieldFinish, "RF",
}

// AddFields is the reduced field set of the add form.
var AddFields = []string{
	FieldID, FieldName, FieldStatus, FieldStart, FieldFinish,
	"RF", "CONTACTO", "OBSERVACIONES",
}

// ParseDate reads an ISO date, tolerating a time suffix.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
