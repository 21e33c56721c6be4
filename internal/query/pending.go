package query

import (
	"sort"
	"strings"

	"github.com/jcvera/migrapanel/internal/model"
)

// Mark is the state of one pending-summary cell. Pendiente outranks
// En Curso when a column groups several underlying fields.
type Mark int

const (
	MarkNone Mark = iota
	MarkInProgress
	MarkPending
)

// PendingRow is one qualifying project in the cross-tab.
type PendingRow struct {
	ProjectID   int64
	ProjectName string
	Marks       map[string]Mark // keyed by column title
}

// PendingSummary is the dynamic cross-tab of non-finished projects
// against the checklist columns currently holding a pending or
// in-progress value somewhere.
type PendingSummary struct {
	Columns []string // sorted normalized titles
	Rows    []PendingRow
}

// Administrative fields never scanned for pending markers.
var pendingExcluded = map[string]bool{
	model.FieldID:      true,
	model.FieldName:    true,
	model.FieldStatus:  true,
	model.FieldPhase:   true,
	model.FieldStart:   true,
	model.FieldFinish:  true,
	"RF":               true,
	model.FieldCompute: true,
}

// columnTitle collapses variant field names into shared columns. The
// UCMDB rule covers the legacy spreadsheet's per-site columns.
func columnTitle(field string) string {
	if strings.HasPrefix(field, "UCMDB Triara") {
		return "UCMDB"
	}
	if field == model.FieldOLA {
		return "Cambio"
	}
	return field
}

// FieldForColumn maps a normalized column title back to the wire field
// it updates. The inverse of columnTitle for the fields this client
// models.
func FieldForColumn(title string) string {
	if title == "Cambio" {
		return model.FieldOLA
	}
	return title
}

// BuildPending scans every non-finished project for fields holding
// "pendiente" or "en curso" (case-insensitive, trimmed) and builds the
// summary. A project appears as a row iff it has at least one hit.
func BuildPending(projects []model.Project) PendingSummary {
	titles := make(map[string]bool)
	var rows []PendingRow

	for _, p := range projects {
		if IsFinished(&p) {
			continue
		}
		var marks map[string]Mark
		for _, fv := range p.Fields() {
			if pendingExcluded[fv.Name] {
				continue
			}
			var m Mark
			switch strings.ToLower(strings.TrimSpace(fv.Value)) {
			case "pendiente":
				m = MarkPending
			case "en curso":
				m = MarkInProgress
			default:
				continue
			}
			title := columnTitle(fv.Name)
			titles[title] = true
			if marks == nil {
				marks = make(map[string]Mark)
			}
			if m > marks[title] {
				marks[title] = m
			}
		}
		if marks != nil {
			rows = append(rows, PendingRow{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Marks:       marks,
			})
		}
	}

	cols := make([]string, 0, len(titles))
	for t := range titles {
		cols = append(cols, t)
	}
	sort.Strings(cols)
	return PendingSummary{Columns: cols, Rows: rows}
}
