package csvio

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LoadAllowList reads allowed identifiers from the named column of a CSV file.
// Values are trimmed and blanks skipped. A missing file is not an error: it
// logs a warning and returns nil, which leaves filtering disabled.
func LoadAllowList(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Allow-list file not found, no filtering will be applied", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("open allow-list %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("parse allow-list %s: %w", path, err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row[column])
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}

	slog.Info("Loaded allow-list", "path", path, "count", len(ids))
	return ids, nil
}
