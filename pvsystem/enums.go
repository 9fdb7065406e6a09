package pvsystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidEnum is returned when a value does not name a member of an enum
var ErrInvalidEnum = errors.New("invalid enum value")

// enumNames maps a member value to its name. Index 0 is unused because every
// enum starts at 1 on the wire.
type enumNames []string

func (n enumNames) name(v int) string {
	if v <= 0 || v >= len(n) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return n[v]
}

func (n enumNames) valid(v int) bool {
	return v > 0 && v < len(n)
}

// parse accepts a member value, a member name or a JSON number.
func (n enumNames) parse(typeName string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		if n.valid(v) {
			return v, nil
		}
	case int64:
		if n.valid(int(v)) {
			return int(v), nil
		}
	case float64:
		if v == math.Trunc(v) && n.valid(int(v)) {
			return int(v), nil
		}
	case string:
		for i := 1; i < len(n); i++ {
			if n[i] == v {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w '%v' for %s", ErrInvalidEnum, value, typeName)
}

func (n enumNames) unmarshal(typeName string, data []byte) (int, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, err
	}
	return n.parse(typeName, raw)
}

// ModuleTechnology is the PV module technology
type ModuleTechnology int

const (
	ModuleTechnologyStandard ModuleTechnology = iota + 1
	ModuleTechnologyBifacial
)

var moduleTechnologyNames = enumNames{"", "standard", "bifacial"}

// ParseModuleTechnology converts a value or a name to a ModuleTechnology
func ParseModuleTechnology(value any) (ModuleTechnology, error) {
	if e, ok := value.(ModuleTechnology); ok {
		value = int(e)
	}
	v, err := moduleTechnologyNames.parse("ModuleTechnology", value)
	return ModuleTechnology(v), err
}

func (e ModuleTechnology) String() string { return moduleTechnologyNames.name(int(e)) }
func (e ModuleTechnology) Int() int       { return int(e) }
func (e ModuleTechnology) Valid() bool    { return moduleTechnologyNames.valid(int(e)) }

func (e ModuleTechnology) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *ModuleTechnology) UnmarshalJSON(data []byte) error {
	v, err := moduleTechnologyNames.unmarshal("ModuleTechnology", data)
	if err != nil {
		return err
	}
	*e = ModuleTechnology(v)
	return nil
}

// ModuleMaterial is the PV cell material
type ModuleMaterial int

const (
	ModuleMaterialMonoSi ModuleMaterial = iota + 1
	ModuleMaterialCIGS
	ModuleMaterialASi
	ModuleMaterialCdTe
	ModuleMaterialXSi
	ModuleMaterialMultiSi
	ModuleMaterialPolySi
)

var moduleMaterialNames = enumNames{"", "monosi", "cigs", "asi", "cdte", "xsi", "multisi", "polysi"}

// ParseModuleMaterial converts a value or a name to a ModuleMaterial
func ParseModuleMaterial(value any) (ModuleMaterial, error) {
	if e, ok := value.(ModuleMaterial); ok {
		value = int(e)
	}
	v, err := moduleMaterialNames.parse("ModuleMaterial", value)
	return ModuleMaterial(v), err
}

func (e ModuleMaterial) String() string { return moduleMaterialNames.name(int(e)) }
func (e ModuleMaterial) Int() int       { return int(e) }
func (e ModuleMaterial) Valid() bool    { return moduleMaterialNames.valid(int(e)) }

func (e ModuleMaterial) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *ModuleMaterial) UnmarshalJSON(data []byte) error {
	v, err := moduleMaterialNames.unmarshal("ModuleMaterial", data)
	if err != nil {
		return err
	}
	*e = ModuleMaterial(v)
	return nil
}

// Racking is how the modules are mounted
type Racking int

const (
	RackingOpenRack Racking = iota + 1
	RackingCloseMount
	RackingInsulatedBack
)

var rackingNames = enumNames{"", "open_rack", "close_mount", "insulated_back"}

// ParseRacking converts a value or a name to a Racking
func ParseRacking(value any) (Racking, error) {
	if e, ok := value.(Racking); ok {
		value = int(e)
	}
	v, err := rackingNames.parse("Racking", value)
	return Racking(v), err
}

func (e Racking) String() string { return rackingNames.name(int(e)) }
func (e Racking) Int() int       { return int(e) }
func (e Racking) Valid() bool    { return rackingNames.valid(int(e)) }

func (e Racking) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *Racking) UnmarshalJSON(data []byte) error {
	v, err := rackingNames.unmarshal("Racking", data)
	if err != nil {
		return err
	}
	*e = Racking(v)
	return nil
}

// PVType is the tracking mode of a PV system
type PVType int

const (
	PVTypeFixed PVType = iota + 1
	PVTypeSingleAxis
	PVTypeDoubleAxis
)

var pvTypeNames = enumNames{"", "fixed", "single_axis", "double_axis"}

// ParsePVType converts a value or a name to a PVType
func ParsePVType(value any) (PVType, error) {
	if e, ok := value.(PVType); ok {
		value = int(e)
	}
	v, err := pvTypeNames.parse("PVType", value)
	return PVType(v), err
}

func (e PVType) String() string { return pvTypeNames.name(int(e)) }
func (e PVType) Int() int       { return int(e) }
func (e PVType) Valid() bool    { return pvTypeNames.valid(int(e)) }

func (e PVType) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *PVType) UnmarshalJSON(data []byte) error {
	v, err := pvTypeNames.unmarshal("PVType", data)
	if err != nil {
		return err
	}
	*e = PVType(v)
	return nil
}

// ModuleType is the module encapsulation
type ModuleType int

const (
	ModuleTypeGlassPolymer ModuleType = iota + 1
	ModuleTypeGlassGlass
)

var moduleTypeNames = enumNames{"", "glass_polymer", "glass_glass"}

// ParseModuleType converts a value or a name to a ModuleType
func ParseModuleType(value any) (ModuleType, error) {
	if e, ok := value.(ModuleType); ok {
		value = int(e)
	}
	v, err := moduleTypeNames.parse("ModuleType", value)
	return ModuleType(v), err
}

func (e ModuleType) String() string { return moduleTypeNames.name(int(e)) }
func (e ModuleType) Int() int       { return int(e) }
func (e ModuleType) Valid() bool    { return moduleTypeNames.valid(int(e)) }

func (e ModuleType) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *ModuleType) UnmarshalJSON(data []byte) error {
	v, err := moduleTypeNames.unmarshal("ModuleType", data)
	if err != nil {
		return err
	}
	*e = ModuleType(v)
	return nil
}

// TimestampInterval is where a measurement timestamp sits in its interval
type TimestampInterval int

const (
	TimestampIntervalLeft TimestampInterval = iota + 1
	TimestampIntervalRight
	TimestampIntervalCentered
)

var timestampIntervalNames = enumNames{"", "left", "right", "centered"}

// ParseTimestampInterval converts a value or a name to a TimestampInterval
func ParseTimestampInterval(value any) (TimestampInterval, error) {
	if e, ok := value.(TimestampInterval); ok {
		value = int(e)
	}
	v, err := timestampIntervalNames.parse("TimestampInterval", value)
	return TimestampInterval(v), err
}

func (e TimestampInterval) String() string { return timestampIntervalNames.name(int(e)) }
func (e TimestampInterval) Int() int       { return int(e) }
func (e TimestampInterval) Valid() bool    { return timestampIntervalNames.valid(int(e)) }

func (e TimestampInterval) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *TimestampInterval) UnmarshalJSON(data []byte) error {
	v, err := timestampIntervalNames.unmarshal("TimestampInterval", data)
	if err != nil {
		return err
	}
	*e = TimestampInterval(v)
	return nil
}

// DecompositionModel splits global irradiance into direct and diffuse parts
type DecompositionModel int

const (
	DecompositionModelDISC DecompositionModel = iota + 1
	DecompositionModelDIRINDEX
	DecompositionModelEngerer2
)

var decompositionModelNames = enumNames{"", "disc", "dirindex", "engerer2"}

// ParseDecompositionModel converts a value or a name to a DecompositionModel
func ParseDecompositionModel(value any) (DecompositionModel, error) {
	if e, ok := value.(DecompositionModel); ok {
		value = int(e)
	}
	v, err := decompositionModelNames.parse("DecompositionModel", value)
	return DecompositionModel(v), err
}

func (e DecompositionModel) String() string { return decompositionModelNames.name(int(e)) }
func (e DecompositionModel) Int() int       { return int(e) }
func (e DecompositionModel) Valid() bool    { return decompositionModelNames.valid(int(e)) }

func (e DecompositionModel) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *DecompositionModel) UnmarshalJSON(data []byte) error {
	v, err := decompositionModelNames.unmarshal("DecompositionModel", data)
	if err != nil {
		return err
	}
	*e = DecompositionModel(v)
	return nil
}

// TranspositionModel projects irradiance onto the plane of array
type TranspositionModel int

const (
	TranspositionModelHayDavies TranspositionModel = iota + 1
)

var transpositionModelNames = enumNames{"", "haydavies"}

// ParseTranspositionModel converts a value or a name to a TranspositionModel
func ParseTranspositionModel(value any) (TranspositionModel, error) {
	if e, ok := value.(TranspositionModel); ok {
		value = int(e)
	}
	v, err := transpositionModelNames.parse("TranspositionModel", value)
	return TranspositionModel(v), err
}

func (e TranspositionModel) String() string { return transpositionModelNames.name(int(e)) }
func (e TranspositionModel) Int() int       { return int(e) }
func (e TranspositionModel) Valid() bool    { return transpositionModelNames.valid(int(e)) }

func (e TranspositionModel) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *TranspositionModel) UnmarshalJSON(data []byte) error {
	v, err := transpositionModelNames.unmarshal("TranspositionModel", data)
	if err != nil {
		return err
	}
	*e = TranspositionModel(v)
	return nil
}

// SpectralModel toggles spectral correction
type SpectralModel int

const (
	SpectralModelYes SpectralModel = iota + 1
	SpectralModelNo
)

var spectralModelNames = enumNames{"", "yes", "no"}

// ParseSpectralModel converts a value or a name to a SpectralModel
func ParseSpectralModel(value any) (SpectralModel, error) {
	if e, ok := value.(SpectralModel); ok {
		value = int(e)
	}
	v, err := spectralModelNames.parse("SpectralModel", value)
	return SpectralModel(v), err
}

func (e SpectralModel) String() string { return spectralModelNames.name(int(e)) }
func (e SpectralModel) Int() int       { return int(e) }
func (e SpectralModel) Valid() bool    { return spectralModelNames.valid(int(e)) }

func (e SpectralModel) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *SpectralModel) UnmarshalJSON(data []byte) error {
	v, err := spectralModelNames.unmarshal("SpectralModel", data)
	if err != nil {
		return err
	}
	*e = SpectralModel(v)
	return nil
}

// AoiModel is the angle-of-incidence loss model
type AoiModel int

const (
	AoiModelASHRAE AoiModel = iota + 1
	AoiModelSAPM
)

var aoiModelNames = enumNames{"", "ashrae", "sapm"}

// ParseAoiModel converts a value or a name to an AoiModel
func ParseAoiModel(value any) (AoiModel, error) {
	if e, ok := value.(AoiModel); ok {
		value = int(e)
	}
	v, err := aoiModelNames.parse("AoiModel", value)
	return AoiModel(v), err
}

func (e AoiModel) String() string { return aoiModelNames.name(int(e)) }
func (e AoiModel) Int() int       { return int(e) }
func (e AoiModel) Valid() bool    { return aoiModelNames.valid(int(e)) }

func (e AoiModel) MarshalJSON() ([]byte, error) { return json.Marshal(int(e)) }

func (e *AoiModel) UnmarshalJSON(data []byte) error {
	v, err := aoiModelNames.unmarshal("AoiModel", data)
	if err != nil {
		return err
	}
	*e = AoiModel(v)
	return nil
}
