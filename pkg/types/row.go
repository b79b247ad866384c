package types

// Row is a single store record keyed by column name. Business columns are
// carried opaquely; the export core only interprets key and reference fields.
type Row map[string]any

// Clone returns a shallow copy of the row. Column values are shared, which is
// safe because the export pipeline never mutates values in place.
func (r Row) Clone() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// String returns the named column as a string. Returns "" when the column is
// absent, NULL, or not a string.
func (r Row) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Batch is the ordered result set emitted for one entity type.
type Batch struct {
	Entity string `json:"entity"`
	Rows   []Row  `json:"rows"`
}
