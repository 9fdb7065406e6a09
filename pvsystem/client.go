package pvsystem

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/steadysun/steadysun-go/api"
)

const (
	collectionEndpoint = "pvsystem/"

	// uuidsPageLimit is the page size used when listing every system
	uuidsPageLimit = 100

	// DefaultOrientation faces the modules south
	DefaultOrientation = 180.0
	// DefaultInclination is the tilt of new arrays, in degrees
	DefaultInclination = 30.0
)

// defaultRequestedFields are the forecast fields enabled on new systems
var defaultRequestedFields = []int{1, 13}

// now is replaced in tests
var now = time.Now

// List returns the PV systems of the account. With allPages every page is
// fetched, otherwise only the first pageLimit systems.
func List(ctx context.Context, client api.API, pageLimit int, allPages bool) ([]PVSystem, error) {
	resp, err := client.GetList(ctx, collectionEndpoint, nil, pageLimit, allPages)
	if err != nil {
		return nil, fmt.Errorf("failed to list PV systems: %w", err)
	}

	var page struct {
		Results []PVSystem `json:"results"`
	}
	if err := resp.Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode PV systems: %w", err)
	}
	return page.Results, nil
}

// UUIDs returns the name of every PV system keyed by UUID.
func UUIDs(ctx context.Context, client api.API) (map[string]string, error) {
	resp, err := client.GetList(ctx, collectionEndpoint, nil, uuidsPageLimit, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list PV systems: %w", err)
	}

	var page struct {
		Results []struct {
			UUID string `json:"uuid"`
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := resp.Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode PV systems: %w", err)
	}

	names := make(map[string]string, len(page.Results))
	for _, r := range page.Results {
		names[r.UUID] = r.Name
	}
	return names, nil
}

// Get fetches one PV system
func Get(ctx context.Context, client api.API, id uuid.UUID) (*PVSystem, error) {
	resp, err := client.Get(ctx, Endpoint(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get PV system %s: %w", id, err)
	}
	return FromConfig(resp)
}

// CreateOption customises the array of a new PV system
type CreateOption func(*createOptions)

type createOptions struct {
	orientation float64
	inclination float64
}

// WithOrientation sets the azimuth of the array in degrees
func WithOrientation(degrees float64) CreateOption {
	return func(o *createOptions) {
		o.orientation = degrees
	}
}

// WithInclination sets the tilt of the array in degrees
func WithInclination(degrees float64) CreateOption {
	return func(o *createOptions) {
		o.inclination = degrees
	}
}

type newArray struct {
	PVModulesPdc0 float64 `json:"pvmodules_pdc0"`
	Orientation   float64 `json:"orientation"`
	Inclination   float64 `json:"inclination"`
}

type createRequest struct {
	Title            string     `json:"title"`
	Name             string     `json:"name"`
	Location         Point      `json:"location"`
	InstallationDate string     `json:"installation_date"`
	PVType           PVType     `json:"pv_type"`
	Arrays           []newArray `json:"arrays"`
	RequestedFields  []int      `json:"requested_fields"`
}

// Create registers a new single-array PV system. pdc0 is the peak power in W.
// The server fills every other parameter with its defaults.
func Create(ctx context.Context, client api.API, name string, location Point, pdc0 float64, opts ...CreateOption) (*PVSystem, error) {
	o := createOptions{orientation: DefaultOrientation, inclination: DefaultInclination}
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}
	for field, v := range map[string]float64{"pdc0": pdc0, "orientation": o.orientation, "inclination": o.inclination} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, &ValidationError{Field: field, Reason: "must be a finite non-negative number"}
		}
	}

	req := createRequest{
		Title:            name,
		Name:             name,
		Location:         location,
		InstallationDate: now().Format(time.DateOnly),
		PVType:           PVTypeSingleAxis,
		Arrays: []newArray{{
			PVModulesPdc0: pdc0,
			Orientation:   o.orientation,
			Inclination:   o.inclination,
		}},
		RequestedFields: defaultRequestedFields,
	}

	resp, err := client.Post(ctx, collectionEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create PV system %q: %w", name, err)
	}
	return FromConfig(resp)
}

// Patch sends a partial configuration update and returns the server's answer.
func Patch(ctx context.Context, client api.API, id uuid.UUID, fields map[string]any) (api.Object, error) {
	if len(fields) == 0 {
		return nil, &ValidationError{Field: "fields", Reason: "nothing to update"}
	}
	resp, err := client.Patch(ctx, Endpoint(id), fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update PV system %s: %w", id, err)
	}
	return resp, nil
}

// Delete removes a PV system. This cannot be undone.
func Delete(ctx context.Context, client api.API, id uuid.UUID) (api.Object, error) {
	resp, err := client.Delete(ctx, Endpoint(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete PV system %s: %w", id, err)
	}
	return resp, nil
}
