package pvsystem

import (
	"fmt"
	"math"
)

// Point is a GeoJSON point. Coordinates are longitude, latitude and an
// optional altitude.
type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewPoint returns the point at lon, lat
func NewPoint(lon, lat float64) Point {
	return Point{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Lon returns the longitude, or 0 for an empty point
func (p Point) Lon() float64 {
	if len(p.Coordinates) < 1 {
		return 0
	}
	return p.Coordinates[0]
}

// Lat returns the latitude, or 0 for an empty point
func (p Point) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Validate checks the point is a finite GeoJSON position
func (p Point) Validate() error {
	if p.Type != "Point" {
		return &ValidationError{Field: "location", Reason: fmt.Sprintf("expected a GeoJSON Point, got type %q", p.Type)}
	}
	if len(p.Coordinates) < 2 || len(p.Coordinates) > 3 {
		return &ValidationError{Field: "location", Reason: fmt.Sprintf("expected 2 or 3 coordinates, got %d", len(p.Coordinates))}
	}
	for _, c := range p.Coordinates {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return &ValidationError{Field: "location", Reason: "coordinates must be finite"}
		}
	}
	if lon, lat := p.Lon(), p.Lat(); lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return &ValidationError{Field: "location", Reason: fmt.Sprintf("position (%g, %g) is out of range", lon, lat)}
	}
	return nil
}

// Array is a group of identical modules sharing an orientation
type Array struct {
	ID               int              `json:"id"`
	PVModulesPdc0    float64          `json:"pvmodules_pdc0"` // W
	Orientation      float64          `json:"orientation"`    // degrees, 180 is south
	Inclination      float64          `json:"inclination"`    // degrees from horizontal
	ModuleTechnology ModuleTechnology `json:"module_technology"`
	ModuleMaterial   ModuleMaterial   `json:"module_material"`
	Racking          Racking          `json:"racking"`
	ModuleType       ModuleType       `json:"module_type"`
	PowerTempCoeff   float64          `json:"power_temp_coeff"`
}

// Validate checks every enum of the array is set to a known member
func (a Array) Validate() error {
	switch {
	case !a.ModuleTechnology.Valid():
		return &ValidationError{Field: "module_technology", Reason: fmt.Sprintf("unknown value %d", a.ModuleTechnology)}
	case !a.ModuleMaterial.Valid():
		return &ValidationError{Field: "module_material", Reason: fmt.Sprintf("unknown value %d", a.ModuleMaterial)}
	case !a.Racking.Valid():
		return &ValidationError{Field: "racking", Reason: fmt.Sprintf("unknown value %d", a.Racking)}
	case !a.ModuleType.Valid():
		return &ValidationError{Field: "module_type", Reason: fmt.Sprintf("unknown value %d", a.ModuleType)}
	}
	return nil
}

// TrackerConfig configures single or double axis trackers
type TrackerConfig struct {
	MaxAngle     float64 `json:"max_angle"`
	Backtrack    bool    `json:"backtrack"`
	GCR          float64 `json:"gcr"`
	SlopeAzimuth float64 `json:"slope_azimuth"`
	SlopeTilt    float64 `json:"slope_tilt"`
}

// BifacialConfig configures the rear side gain of bifacial modules
type BifacialConfig struct {
	Bifaciality float64 `json:"bifaciality"`
	GCR         float64 `json:"gcr"`
	PVRowHeight float64 `json:"pvrow_height"`
	PVRowWidth  float64 `json:"pvrow_width"`
}

// InverterParameters describes the inverter
type InverterParameters struct {
	Pdc0      float64 `json:"pdc0"`
	EtaInvNom float64 `json:"eta_inv_nom"`
}

// Irradiances selects the irradiance models
type Irradiances struct {
	TimestampInterval  TimestampInterval  `json:"timestamp_interval"`
	DecompositionModel DecompositionModel `json:"decomposition_model"`
	TranspositionModel TranspositionModel `json:"transposition_model"`
	SpectralModel      SpectralModel      `json:"spectral_model"`
	AoiModel           AoiModel           `json:"aoi_model"`
	Albedo             float64            `json:"albedo"`
	SelfShading        bool               `json:"self_shading"`
}

// LossesParameters lists the loss factors applied to the production
type LossesParameters struct {
	Wiring           float64 `json:"wiring"`
	LID              float64 `json:"lid"`
	NameplateRating  float64 `json:"nameplate_rating"`
	Mismatch         float64 `json:"mismatch"`
	Soiling          float64 `json:"soiling"`
	Snow             float64 `json:"snow"`
	Shading          float64 `json:"shading"`
	Availability     float64 `json:"availability"`
	Connections      float64 `json:"connections"`
	Age              float64 `json:"age"`
	Aging            float64 `json:"aging"`
	AgingAutoCompute bool    `json:"aging_auto_compute"`
}

// ExpertParams holds the advanced configuration of a PV system. On the wire
// these keys sit at the top level of the system object.
type ExpertParams struct {
	InstallationDate   string              `json:"installation_date"`
	Arrays             []Array             `json:"arrays"`
	TrackerConfig      *TrackerConfig      `json:"tracker_config,omitempty"`
	BifacialConfig     *BifacialConfig     `json:"bifacial_config,omitempty"`
	InverterParameters *InverterParameters `json:"inverter_parameters,omitempty"`
	Irradiances        *Irradiances        `json:"irradiances,omitempty"`
	LossesParameters   *LossesParameters   `json:"losses_parameters,omitempty"`
}

// Validate checks the arrays and the enum-valued sub-configurations
func (e ExpertParams) Validate() error {
	for i, a := range e.Arrays {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("arrays[%d]: %w", i, err)
		}
	}
	if irr := e.Irradiances; irr != nil {
		switch {
		case !irr.TimestampInterval.Valid():
			return &ValidationError{Field: "timestamp_interval", Reason: fmt.Sprintf("unknown value %d", irr.TimestampInterval)}
		case !irr.DecompositionModel.Valid():
			return &ValidationError{Field: "decomposition_model", Reason: fmt.Sprintf("unknown value %d", irr.DecompositionModel)}
		case !irr.TranspositionModel.Valid():
			return &ValidationError{Field: "transposition_model", Reason: fmt.Sprintf("unknown value %d", irr.TranspositionModel)}
		case !irr.SpectralModel.Valid():
			return &ValidationError{Field: "spectral_model", Reason: fmt.Sprintf("unknown value %d", irr.SpectralModel)}
		case !irr.AoiModel.Valid():
			return &ValidationError{Field: "aoi_model", Reason: fmt.Sprintf("unknown value %d", irr.AoiModel)}
		}
	}
	return nil
}

// PeakPower returns the summed module power of every array, in W
func (e ExpertParams) PeakPower() float64 {
	var total float64
	for _, a := range e.Arrays {
		total += a.PVModulesPdc0
	}
	return total
}
