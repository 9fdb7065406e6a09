// Package pvsystem manages PV system configurations on the Steadysun API.
package pvsystem

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/steadysun/steadysun-go/api"
)

// Endpoint returns the resource path of one PV system
func Endpoint(id uuid.UUID) string {
	return fmt.Sprintf("%s%s/", collectionEndpoint, id)
}

// PVSystem is a photovoltaic installation. On the wire the expert parameters
// are flattened into the same object as the general fields.
type PVSystem struct {
	UUID            uuid.UUID    `json:"uuid"`
	Title           string       `json:"title"`
	Name            string       `json:"name"`
	Location        Point        `json:"location"`
	Altitude        float64      `json:"altitude"` // m
	PVType          PVType       `json:"pv_type"`
	RequestedFields []int        `json:"requested_fields"`
	ExpertParams    ExpertParams `json:"-"`
}

// pvSystemFields drops the JSON methods of PVSystem so it can be embedded
// next to ExpertParams.
type pvSystemFields PVSystem

var requiredKeys = []string{"uuid", "title", "name", "location", "requested_fields", "installation_date", "arrays"}

// MarshalJSON writes the flat configuration expected by the API
func (s PVSystem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		pvSystemFields
		ExpertParams
	}{pvSystemFields(s), s.ExpertParams})
}

// UnmarshalJSON reads a flat configuration. A missing pv_type means fixed.
func (s *PVSystem) UnmarshalJSON(data []byte) error {
	*s = PVSystem{PVType: PVTypeFixed}
	aux := struct {
		*pvSystemFields
		*ExpertParams
	}{(*pvSystemFields)(s), &s.ExpertParams}
	return json.Unmarshal(data, &aux)
}

// FromConfig builds a PVSystem from the flat configuration returned by the
// API, splitting the expert parameters out.
func FromConfig(config api.Object) (*PVSystem, error) {
	for _, key := range requiredKeys {
		if _, ok := config[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	var s PVSystem
	if err := config.Decode(&s); err != nil {
		return nil, fmt.Errorf("invalid PV system configuration: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Config returns the flat configuration of s, as sent on save.
func (s *PVSystem) Config() (api.Object, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode PV system: %w", err)
	}
	var config api.Object
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode PV system: %w", err)
	}
	return config, nil
}

// Validate checks the local state of s without contacting the API
func (s *PVSystem) Validate() error {
	if s.UUID == uuid.Nil {
		return &ValidationError{Field: "uuid", Reason: "must be set"}
	}
	if math.IsNaN(s.Altitude) || s.Altitude < 0 {
		return &ValidationError{Field: "altitude", Reason: "must be a non-negative number"}
	}
	if !s.PVType.Valid() {
		return &ValidationError{Field: "pv_type", Reason: fmt.Sprintf("unknown value %d", s.PVType)}
	}
	if err := s.Location.Validate(); err != nil {
		return err
	}
	return s.ExpertParams.Validate()
}

// PeakPower returns the summed module power of the system, in W
func (s *PVSystem) PeakPower() float64 {
	return s.ExpertParams.PeakPower()
}

// SaveChanges sends the full local configuration of s to the API.
func (s *PVSystem) SaveChanges(ctx context.Context, client api.API) (api.Object, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	resp, err := client.Patch(ctx, Endpoint(s.UUID), s)
	if err != nil {
		return nil, fmt.Errorf("failed to save PV system %s: %w", s.UUID, err)
	}
	return resp, nil
}

// Delete removes s from the API. This cannot be undone.
func (s *PVSystem) Delete(ctx context.Context, client api.API) (api.Object, error) {
	return Delete(ctx, client, s.UUID)
}
