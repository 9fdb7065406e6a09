package forecast

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/steadysun/steadysun-go/api"
)

// ErrMalformedTable indicates the forecast payload shape is inconsistent
var ErrMalformedTable = errors.New("malformed forecast table")

// millisThreshold separates second and millisecond timestamps when the unit
// was not requested explicitly. 1e11 seconds is past the year 5000.
const millisThreshold = 1e11

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// Table is a time-indexed forecast: Data[i][j] is the value of Columns[j] at
// Index[i]. Missing values are NaN.
type Table struct {
	Index   []time.Time
	Columns []string
	Data    [][]float64
}

type tablePayload struct {
	Data    [][]*float64 `json:"data"`
	Index   []any        `json:"index"`
	Columns []string     `json:"columns"`
}

// newTable builds a Table from the API's split-orientation payload.
func newTable(obj api.Object, unit *TimeStampUnit) (*Table, error) {
	var payload tablePayload
	if err := obj.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if len(payload.Data) != len(payload.Index) {
		return nil, fmt.Errorf("%w: %d rows for %d index entries", ErrMalformedTable, len(payload.Data), len(payload.Index))
	}

	index := make([]time.Time, len(payload.Index))
	for i, raw := range payload.Index {
		ts, err := parseIndex(raw, unit)
		if err != nil {
			return nil, fmt.Errorf("%w: index %d: %v", ErrMalformedTable, i, err)
		}
		index[i] = ts
	}

	data := make([][]float64, len(payload.Data))
	for i, row := range payload.Data {
		if len(row) != len(payload.Columns) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d columns", ErrMalformedTable, i, len(row), len(payload.Columns))
		}
		data[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				data[i][j] = math.NaN()
				continue
			}
			data[i][j] = *v
		}
	}

	return &Table{Index: index, Columns: payload.Columns, Data: data}, nil
}

func parseIndex(raw any, unit *TimeStampUnit) (time.Time, error) {
	switch v := raw.(type) {
	case float64:
		millis := v >= millisThreshold
		if unit != nil {
			millis = *unit == TimeStampUnitMillis
		}
		if millis {
			return time.UnixMilli(int64(v)).UTC(), nil
		}
		return time.Unix(int64(v), 0).UTC(), nil
	case string:
		for _, layout := range isoLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised date %q", v)
	default:
		return time.Time{}, fmt.Errorf("unexpected index value %v (%T)", raw, raw)
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Index)
}

// Column returns a copy of the values of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	j := slices.Index(t.Columns, name)
	if j < 0 {
		return nil, false
	}
	values := make([]float64, len(t.Data))
	for i, row := range t.Data {
		values[i] = row[j]
	}
	return values, true
}

// Value returns the value of column at row i.
func (t *Table) Value(i int, column string) (float64, bool) {
	j := slices.Index(t.Columns, column)
	if j < 0 || i < 0 || i >= len(t.Data) {
		return 0, false
	}
	return t.Data[i][j], true
}
