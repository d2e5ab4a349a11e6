package models

// CandidateRecord is one flat persisted row. Header and Values always have the
// same length and the same column order.
type CandidateRecord struct {
	Header []string
	Values []string
}

// Value returns the cell under column, or "" if the column is absent.
func (r CandidateRecord) Value(column string) string {
	for i, h := range r.Header {
		if h == column && i < len(r.Values) {
			return r.Values[i]
		}
	}
	return ""
}

// Map flattens the record for JSON responses.
func (r CandidateRecord) Map() map[string]string {
	out := make(map[string]string, len(r.Header))
	for i, h := range r.Header {
		if i < len(r.Values) {
			out[h] = r.Values[i]
		} else {
			out[h] = ""
		}
	}
	return out
}
