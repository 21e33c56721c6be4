package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jcvera/migrapanel/internal/model"
)

// ToCSV writes the given projects to a CSV file, one column per field
// in master order. The caller passes the currently filtered rows, so
// the export mirrors what the table shows.
func ToCSV(projects []model.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	var empty model.Project
	var header []string
	for _, fv := range empty.Fields() {
		header = append(header, fv.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range projects {
		row := make([]string, 0, len(header))
		for _, fv := range projects[i].Fields() {
			row = append(row, fv.Value)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
