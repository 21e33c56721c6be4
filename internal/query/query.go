// Package query derives the visible project set from the in-memory
// snapshot and the current filter state. Everything here is pure: the
// TUI owns the state, this package only computes views of it.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/jcvera/migrapanel/internal/model"
)

// PageSize is the fixed table page size.
const PageSize = 10

// StatusFilter is the three-way finished/not-finished filter.
type StatusFilter int

const (
	StatusNotFinished StatusFilter = iota
	StatusFinished
	StatusAll
)

func (s StatusFilter) String() string {
	switch s {
	case StatusNotFinished:
		return "no finalizados"
	case StatusFinished:
		return "finalizados"
	default:
		return "todos"
	}
}

// Next cycles not-finished -> finished -> all.
func (s StatusFilter) Next() StatusFilter {
	return (s + 1) % 3
}

// Filters is the serializable view state the table depends on. The
// zero value is the startup state: all years, no month, not-finished
// filter active, page 1 implied.
type Filters struct {
	Year   int        // 0 = all years
	Month  time.Month // 0 = no month filter; set via chart bar click
	Status StatusFilter
	Search string
	Page   int // 1-based; callers reset it to 1 on any other change
}

// Result is everything Apply derives in one pass.
type Result struct {
	// Visible is the fully filtered, id-sorted set (all pages).
	Visible []model.Project
	// VisibleIDs is the id sequence backing detail-modal navigation.
	VisibleIDs []int64
	// Finished and NotFinished are counted over the year/month-filtered
	// set, before the status stage, so both stay visible regardless of
	// which status filter is active.
	Finished    int
	NotFinished int
	// TotalPages is ceil(len(Visible) / PageSize); 0 when empty.
	TotalPages int
}

// Apply runs the filter pipeline in fixed order: year, month, status,
// search, then an ascending sort by identifier.
func Apply(projects []model.Project, f Filters) Result {
	pool := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if f.Year != 0 {
			y, ok := startYear(&p)
			if !ok || y != f.Year {
				continue
			}
		}
		if f.Month != 0 {
			m, ok := startMonth(&p)
			if !ok || m != f.Month {
				continue
			}
		}
		pool = append(pool, p)
	}

	var res Result
	for _, p := range pool {
		if IsFinished(&p) {
			res.Finished++
		} else {
			res.NotFinished++
		}
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range pool {
		switch f.Status {
		case StatusNotFinished:
			if IsFinished(&p) {
				continue
			}
		case StatusFinished:
			if !IsFinished(&p) {
				continue
			}
		}
		if term != "" && !matches(&p, term) {
			continue
		}
		res.Visible = append(res.Visible, p)
	}

	sort.SliceStable(res.Visible, func(i, j int) bool {
		return res.Visible[i].ID < res.Visible[j].ID
	})

	res.VisibleIDs = make([]int64, len(res.Visible))
	for i := range res.Visible {
		res.VisibleIDs[i] = res.Visible[i].ID
	}
	res.TotalPages = (len(res.Visible) + PageSize - 1) / PageSize
	return res
}

// IsFinished reports whether the project's status, trimmed and
// lowercased, is exactly "finalizado". Projects with no status count
// as not finished.
func IsFinished(p *model.Project) bool {
	return strings.ToLower(strings.TrimSpace(p.Status)) == "finalizado"
}

// matches reports whether any field's string form contains term.
func matches(p *model.Project, term string) bool {
	for _, fv := range p.Fields() {
		if fv.Value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(fv.Value), term) {
			return true
		}
	}
	return false
}

// ClampPage forces page into [1, totalPages]. With zero pages it
// returns 1; the renderer shows "Página 0 de 0" in that case.
func ClampPage(page, totalPages int) int {
	if totalPages == 0 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageSlice returns the rows of one 1-based page.
func PageSlice(visible []model.Project, page int) []model.Project {
	start := (page - 1) * PageSize
	if start < 0 || start >= len(visible) {
		return nil
	}
	end := start + PageSize
	if end > len(visible) {
		end = len(visible)
	}
	return visible[start:end]
}

// Years lists the distinct start-date years in the snapshot, newest
// first, for the year selector.
func Years(projects []model.Project) []int {
	seen := make(map[int]bool)
	var years []int
	for _, p := range projects {
		if y, ok := startYear(&p); ok && !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func startYear(p *model.Project) (int, bool) {
	t, ok := model.ParseDate(p.Start)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

func startMonth(p *model.Project) (time.Month, bool) {
	t, ok := model.ParseDate(p.Start)
	if !ok {
		return 0, false
	}
	return t.Month(), true
}
