package params

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Values is the flat wire form of a parameter model: one scalar per field,
// lists already joined with commas.
type Values map[string]any

// Query renders the values as URL query parameters.
func (v Values) Query() url.Values {
	query := make(url.Values, len(v))
	for key, value := range v {
		s, err := cast.ToStringE(value)
		if err != nil {
			s = fmt.Sprint(value)
		}
		query.Set(key, s)
	}
	return query
}

// FromQuery builds Values from URL query parameters, keeping the last value of each key.
func FromQuery(query url.Values) Values {
	values := make(Values, len(query))
	for key, list := range query {
		if len(list) > 0 {
			values[key] = list[len(list)-1]
		}
	}
	return values
}

func joinList(list []string) string {
	return strings.Join(list, ",")
}

// splitList is the inverse of joinList. The empty string maps to an empty,
// non-nil list so "present but empty" survives a round trip.
func splitList(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return []string{}, nil
		}
		return strings.Split(v, ","), nil
	case []string:
		return v, nil
	case []any:
		for _, item := range v {
			if _, ok := item.(string); !ok {
				return nil, fmt.Errorf("list item %v (%T) is not a string", item, item)
			}
		}
		return cast.ToStringSliceE(v)
	default:
		return nil, fmt.Errorf("expected a comma-separated string or a list of strings, got %T", value)
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case bool:
		return 0, fmt.Errorf("expected an integer, got bool")
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("expected an integer, got %v", v)
		}
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, fmt.Errorf("expected an integer, got %v", v)
		}
	case string:
		// decimal only: cast would read "010" as octal
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("expected a decimal integer, got %q", v)
		}
		return n, nil
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("expected an integer: %w", err)
	}
	return n, nil
}

func toString(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", value)
	}
	return s, nil
}
