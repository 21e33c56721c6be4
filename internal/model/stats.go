package model

// Stats is the monthly project-start aggregation: twelve entries,
// January first.
type Stats struct {
	Labels     []string  `json:"labels"`
	FullLabels []string  `json:"full_labels"`
	Data       []float64 `json:"data"`
}
