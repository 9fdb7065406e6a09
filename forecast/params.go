package forecast

import (
	"fmt"
	"strings"

	"github.com/steadysun/steadysun-go/params"
)

// DateTimeFormat selects how the forecast index is encoded
type DateTimeFormat string

const (
	// DateTimeFormatTimestamp encodes the index as Unix timestamps
	DateTimeFormatTimestamp DateTimeFormat = "time_stamp"
	// DateTimeFormatISO8601 encodes the index as ISO 8601 strings
	DateTimeFormatISO8601 DateTimeFormat = "iso_8601"
)

// TimeStampUnit is the unit of timestamps when DateTimeFormatTimestamp is used
type TimeStampUnit string

const (
	// TimeStampUnitMillis is milliseconds since the epoch
	TimeStampUnitMillis TimeStampUnit = "ms"
	// TimeStampUnitSeconds is seconds since the epoch
	TimeStampUnitSeconds TimeStampUnit = "s"
)

// Params are the query parameters of a forecast request. Nil fields are left
// to the server defaults. A nil Fields requests every available field.
type Params struct {
	TimeStep       *int // minutes
	Horizon        *int // minutes
	Precision      *int // maximal number of decimal places
	Fields         []string
	DateTimeFormat *DateTimeFormat
	TimeStampUnit  *TimeStampUnit
}

var paramsSchema = params.NewSchema(
	params.OptionalInt("time_step", func(p *Params) **int { return &p.TimeStep }),
	params.OptionalInt("horizon", func(p *Params) **int { return &p.Horizon }),
	params.OptionalInt("precision", func(p *Params) **int { return &p.Precision }),
	params.StringList("fields", func(p *Params) *[]string { return &p.Fields }),
	params.OptionalChoice("date_time_format", func(p *Params) **DateTimeFormat { return &p.DateTimeFormat },
		DateTimeFormatTimestamp, DateTimeFormatISO8601),
	params.OptionalChoice("time_stamp_unit", func(p *Params) **TimeStampUnit { return &p.TimeStampUnit },
		TimeStampUnitMillis, TimeStampUnitSeconds),
).WithValidator(func(p *Params) error {
	p.Fields = normalizeFields(p.Fields)
	return p.Validate()
})

// ParseFields splits a comma-separated field list. Surrounding brackets are
// accepted, so "[ghi,t2m]" and "ghi,t2m" are equivalent.
func ParseFields(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if s == "" {
		return []string{}
	}
	return normalizeFields(strings.Split(s, ","))
}

func normalizeFields(fields []string) []string {
	if fields == nil {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = normalizeField(f)
	}
	return out
}

func normalizeField(f string) string {
	return strings.TrimSpace(strings.Trim(f, "[]"))
}

// UseTimestampFormat requests the index as timestamps in unit.
func (p *Params) UseTimestampFormat(unit TimeStampUnit) {
	format := DateTimeFormatTimestamp
	p.DateTimeFormat = &format
	if unit != "" {
		p.TimeStampUnit = &unit
	}
}

// Validate checks the parameters without contacting the API.
func (p Params) Validate() error {
	if p.Fields != nil && len(p.Fields) == 0 {
		return &params.ValidationError{
			Field:  "fields",
			Reason: "fields can't be an empty list (leave it nil to get all available fields)",
		}
	}
	for _, f := range p.Fields {
		if strings.TrimSpace(f) == "" || strings.Contains(f, ",") {
			return &params.ValidationError{Field: "fields", Reason: "field names must be non-empty and must not contain commas"}
		}
		if normalizeField(f) != f {
			return &params.ValidationError{Field: "fields", Reason: fmt.Sprintf("field name %q has surrounding spaces or brackets", f)}
		}
	}
	if p.TimeStep != nil && *p.TimeStep <= 0 {
		return &params.ValidationError{Field: "time_step", Reason: "must be positive"}
	}
	if p.Horizon != nil && *p.Horizon <= 0 {
		return &params.ValidationError{Field: "horizon", Reason: "must be positive"}
	}
	if p.Precision != nil && *p.Precision < 0 {
		return &params.ValidationError{Field: "precision", Reason: "must not be negative"}
	}
	if p.DateTimeFormat != nil && *p.DateTimeFormat != DateTimeFormatTimestamp && *p.DateTimeFormat != DateTimeFormatISO8601 {
		return &params.ValidationError{Field: "date_time_format", Reason: "must be time_stamp or iso_8601"}
	}
	if p.TimeStampUnit != nil && *p.TimeStampUnit != TimeStampUnitMillis && *p.TimeStampUnit != TimeStampUnitSeconds {
		return &params.ValidationError{Field: "time_stamp_unit", Reason: "must be ms or s"}
	}
	return nil
}

// ToParams validates p and returns its wire form.
func (p Params) ToParams() (params.Values, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return paramsSchema.ToParams(&p), nil
}

// ParamsFromValues builds Params from wire values.
func ParamsFromValues(values params.Values) (*Params, error) {
	return paramsSchema.FromParams(values)
}
