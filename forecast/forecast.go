// Package forecast fetches forecasts from the Steadysun API as time-indexed tables.
package forecast

import (
	"context"
	"fmt"

	"github.com/steadysun/steadysun-go/api"
)

// ObjectType is the kind of component a forecast is computed for
type ObjectType string

// ObjectTypePVSystem requests the forecast of a PV system
const ObjectTypePVSystem ObjectType = "pvsystem"

// Endpoint returns the forecast endpoint for a component.
func Endpoint(objectType ObjectType, componentUUID string) string {
	return fmt.Sprintf("forecast/%s/%s/", objectType, componentUUID)
}

// Get fetches the forecast of a component. Parameters are validated before
// any request is made.
func Get(ctx context.Context, client api.API, objectType ObjectType, componentUUID string, p Params) (*Table, error) {
	if componentUUID == "" {
		return nil, fmt.Errorf("component UUID is required")
	}

	values, err := p.ToParams()
	if err != nil {
		return nil, fmt.Errorf("invalid forecast parameters: %w", err)
	}

	obj, err := client.Get(ctx, Endpoint(objectType, componentUUID), values.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}

	table, err := newTable(obj, p.TimeStampUnit)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// GetPVSystem fetches the forecast of a PV system.
func GetPVSystem(ctx context.Context, client api.API, systemUUID string, p Params) (*Table, error) {
	return Get(ctx, client, ObjectTypePVSystem, systemUUID, p)
}
