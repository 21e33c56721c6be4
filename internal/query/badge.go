package query

import (
	"strings"
	"time"

	"github.com/jcvera/migrapanel/internal/model"
)

// Badge is the visual category of a status-like cell value.
type Badge int

const (
	BadgeNone Badge = iota
	BadgeSuccess
	BadgeWarning
	BadgeDanger
	BadgeInfo
	BadgeNeutral
)

// BadgeFor classifies a cell value. Exact matches are checked before
// substring matches, in the original dashboard's order.
func BadgeFor(value string) Badge {
	s := strings.ToLower(strings.TrimSpace(value))
	switch {
	case s == "finalizado":
		return BadgeSuccess
	case s == "suspendido":
		return BadgeWarning
	case strings.Contains(s, "pendiente"), strings.Contains(s, "mitigar"):
		return BadgeDanger
	case strings.Contains(s, "en curso"):
		return BadgeInfo
	case strings.Contains(s, "cancelado"):
		return BadgeNeutral
	default:
		return BadgeNone
	}
}

// Overdue reports whether a finish date is strictly before today,
// comparing dates only. Callers apply it only when no badge matched.
func Overdue(finish string, now time.Time) bool {
	t, ok := model.ParseDate(finish)
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.Before(today)
}
