package categories

import (
	"encoding/json"
	"os"

	"gastos/logging"
)

const DefaultCategory = "Otros"

// Load reads the ordered category list from the given JSON file.
// A missing, unreadable or malformed file falls back to the single
// default category; the caller always gets a usable, non-empty list.
func Load(path string) []string {
	if path == "" {
		path = "data/categories.json"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logging.Logger.Warnf("failed to read categories file '%s', using fallback: %v", path, err)
		return []string{DefaultCategory}
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		logging.Logger.Warnf("malformed categories file '%s', using fallback: %v", path, err)
		return []string{DefaultCategory}
	}
	if len(names) == 0 {
		return []string{DefaultCategory}
	}
	return names
}
