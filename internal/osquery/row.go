package osquery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Row is one record returned by the engine. osqueryi renders every column
// as a string, but values are kept loosely typed so other engines can be
// plugged in behind Querier.
type Row map[string]any

// Result is the ordered set of rows produced by one query. It is empty
// whenever the query failed.
type Result []Row

// String returns the field as text. Numbers are formatted; nil and
// composite values are reported as missing.
func (r Row) String(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// Int returns the field as an integer. Surrounding whitespace is ignored;
// anything that is not a whole number is reported as missing.
func (r Row) Int(field string) (int64, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}

	switch val := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		if val != float64(int64(val)) {
			return 0, false
		}
		return int64(val), true
	case int:
		return int64(val), true
	case int64:
		return val, true
	default:
		return 0, false
	}
}

// decodeResult parses engine stdout. The engine must print a JSON array of
// objects; blank output is an empty result.
func decodeResult(data []byte) (Result, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Result{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to parse engine output: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to parse engine output: trailing data after JSON array")
	}

	if rows == nil {
		rows = []Row{}
	}
	return Result(rows), nil
}
