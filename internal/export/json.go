package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jcvera/migrapanel/internal/model"
)

type jsonExport struct {
	ExportedAt string           `json:"exported_at"`
	Count      int              `json:"count"`
	Projects   []*model.Project `json:"projects"`
}

// ToJSON writes the given projects to a JSON file under their wire
// field names, with a small export envelope.
func ToJSON(projects []model.Project, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(projects),
		Projects:   make([]*model.Project, len(projects)),
	}
	for i := range projects {
		out.Projects[i] = &projects[i]
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
