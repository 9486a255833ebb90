package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanRecords scans a single JSONB records column. A NULL column yields an
// empty collection.
func scanRecords(row scannable) ([]model.Record, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

func decodeRecords(raw []byte) ([]model.Record, error) {
	if len(raw) == 0 {
		return []model.Record{}, nil
	}
	var records []model.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}
