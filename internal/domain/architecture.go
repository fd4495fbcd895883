package domain

import (
	"fmt"
	"strings"
)

// ArchitectureType identifies a structural style and selects its StructureMetadata.
type ArchitectureType string

const (
	ArchHexagonalSingle        ArchitectureType = "hexagonal-single"
	ArchHexagonalMulti         ArchitectureType = "hexagonal-multi"
	ArchHexagonalMultiGranular ArchitectureType = "hexagonal-multi-granular"
	ArchOnionSingle            ArchitectureType = "onion-single"
	ArchOnionMulti             ArchitectureType = "onion-multi"
	ArchClean                  ArchitectureType = "clean"
	ArchLayered                ArchitectureType = "layered"
)

// ValidArchitectures enumerates all recognized architecture types.
var ValidArchitectures = []ArchitectureType{
	ArchHexagonalSingle,
	ArchHexagonalMulti,
	ArchHexagonalMultiGranular,
	ArchOnionSingle,
	ArchOnionMulti,
	ArchClean,
	ArchLayered,
}

// ParseArchitectureType matches s case-insensitively against the enumeration.
func ParseArchitectureType(s string) (ArchitectureType, error) {
	for _, a := range ValidArchitectures {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return "", &UnknownArchitectureError{Value: s}
}

// Valid reports whether a is a member of the enumeration.
func (a ArchitectureType) Valid() bool {
	for _, v := range ValidArchitectures {
		if a == v {
			return true
		}
	}
	return false
}

// IsMultiModule reports whether the style splits the project into build modules.
func (a ArchitectureType) IsMultiModule() bool {
	switch a {
	case ArchHexagonalMulti, ArchHexagonalMultiGranular, ArchOnionMulti:
		return true
	}
	return false
}

// Framework is the target service framework. It only steers template selection.
type Framework string

const (
	FrameworkSpring  Framework = "spring"
	FrameworkQuarkus Framework = "quarkus"
)

var ValidFrameworks = []Framework{FrameworkSpring, FrameworkQuarkus}

func ParseFramework(s string) (Framework, error) {
	for _, f := range ValidFrameworks {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown framework %q (valid: spring, quarkus)", s)
}

// Paradigm selects reactive or imperative template variants.
type Paradigm string

const (
	ParadigmReactive   Paradigm = "reactive"
	ParadigmImperative Paradigm = "imperative"
)

var ValidParadigms = []Paradigm{ParadigmReactive, ParadigmImperative}

func ParseParadigm(s string) (Paradigm, error) {
	for _, p := range ValidParadigms {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown paradigm %q (valid: reactive, imperative)", s)
}

// AdapterDirection is the role of an adapter relative to the domain core.
type AdapterDirection string

const (
	// Driven adapters are called by the core to reach external systems.
	Driven AdapterDirection = "driven"
	// Driving adapters call into the core in response to external stimuli.
	Driving AdapterDirection = "driving"
)

// Direction keys for non-adapter components resolved through the same path templates.
const (
	DirectionUseCase = "usecase"
	DirectionModel   = "model"
	DirectionPort    = "port"
)

func ParseAdapterDirection(s string) (AdapterDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "driven", "out", "output", "secondary":
		return Driven, nil
	case "driving", "in", "input", "primary", "entry-point":
		return Driving, nil
	}
	return "", fmt.Errorf("unknown adapter direction %q (valid: driven, driving)", s)
}
