// Package serialize normalizes values returned by the backend client into
// transport-safe plain data before they cross the API boundary.
package serialize

import "encoding/json"

// Clean returns a deep, plain copy of v: maps, slices, strings, numbers,
// booleans and nulls only. The copy is produced by a JSON round trip, which
// drops anything that is not data (unexported state, channels, functions).
// It never panics; values that cannot be marshaled come back as nil.
func Clean(v any) any {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
