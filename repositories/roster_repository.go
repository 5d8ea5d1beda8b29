package repositories

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Roster is the read-only list of player names eligible for team setup. It
// is loaded once at startup; team editors offer it as suggestions, but
// schedule validation does not require membership.
type Roster struct {
	names []string
}

// LoadRoster reads player names from a CSV file, one per record, first
// column. A header row named "name" and blank or duplicate entries are
// skipped.
func LoadRoster(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse roster file %s: %w", path, err)
	}

	seen := make(map[string]bool, len(records))
	names := make([]string, 0, len(records))
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" || seen[name] {
			continue
		}
		if i == 0 && strings.EqualFold(name, "name") {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return &Roster{names: names}, nil
}

// Names returns the loaded player names in file order.
func (r *Roster) Names() []string {
	return append([]string(nil), r.names...)
}
