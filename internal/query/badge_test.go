package query

import (
	"testing"
	"time"
)

func TestBadgeFor(t *testing.T) {
	cases := []struct {
		value string
		want  Badge
	}{
		{"Finalizado", BadgeSuccess},
		{"  FINALIZADO ", BadgeSuccess},
		{"Suspendido", BadgeWarning},
		{"Pendiente", BadgeDanger},
		{"pendiente cliente", BadgeDanger},
		{"Riesgo a mitigar", BadgeDanger},
		{"En Curso", BadgeInfo},
		{"migración en curso", BadgeInfo},
		{"Cancelado", BadgeNeutral},
		{"cancelado por RT", BadgeNeutral},
		{"OK", BadgeNone},
		{"", BadgeNone},
		{"2025-01-01", BadgeNone},
	}
	for _, tc := range cases {
		if got := BadgeFor(tc.value); got != tc.want {
			t.Errorf("BadgeFor(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestBadgeExactBeforeSubstring(t *testing.T) {
	// "suspendido pendiente" is not an exact match for suspendido, so
	// the pendiente substring rule wins.
	if got := BadgeFor("suspendido pendiente"); got != BadgeDanger {
		t.Errorf("got %v, want BadgeDanger", got)
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		finish string
		want   bool
	}{
		{"2025-06-14", true},
		{"2025-06-15", false}, // today is not overdue
		{"2025-06-16", false},
		{"2024-01-01", true},
		{"2025-06-14T23:59:00", true}, // time suffix tolerated
		{"", false},
		{"no es fecha", false},
	}
	for _, tc := range cases {
		if got := Overdue(tc.finish, now); got != tc.want {
			t.Errorf("Overdue(%q) = %v, want %v", tc.finish, got, tc.want)
		}
	}
}
