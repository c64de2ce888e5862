package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	// finite rejects NaN and ±Inf, which slip through numeric comparisons
	if err := validate.RegisterValidation("finite", isFinite); err != nil {
		panic(fmt.Sprintf("validation: register finite: %v", err))
	}
}

func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NodeSpec describes a substation at creation time.
// A node may not be created already overloaded.
type NodeSpec struct {
	Name        string  `json:"name" yaml:"name"`
	Load        float64 `json:"load" yaml:"load" validate:"finite,gte=0,ltefield=MaxCapacity"`
	MaxCapacity float64 `json:"maxCapacity" yaml:"max_capacity" validate:"finite,gt=0"`
}

// EdgeSpec describes the electrical values of a transmission line.
// CurrentLoad may exceed Capacity: lines are allowed to start overloaded.
type EdgeSpec struct {
	Capacity    float64 `json:"capacity" yaml:"capacity" validate:"finite,gt=0"`
	CurrentLoad float64 `json:"currentLoad" yaml:"load" validate:"finite,gte=0"`
}

// SimulationRequest is the input of a load-scaling run
type SimulationRequest struct {
	Percent float64 `json:"percent" yaml:"percent" validate:"finite,gte=0"`
}

// ValidateNodeSpec validates a node creation request
func ValidateNodeSpec(spec *NodeSpec) error {
	if spec == nil {
		return errors.New("node spec cannot be nil")
	}
	if err := validate.Struct(spec); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateEdgeSpec validates the capacity and load of an edge creation request
func ValidateEdgeSpec(spec *EdgeSpec) error {
	if spec == nil {
		return errors.New("edge spec cannot be nil")
	}
	if err := validate.Struct(spec); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateSimulationRequest validates a load increase percentage
func ValidateSimulationRequest(req *SimulationRequest) error {
	if req == nil {
		return errors.New("simulation request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateIndex checks that idx addresses one of n slots
func ValidateIndex(idx, n int) error {
	if idx < 0 || idx >= n {
		return fmt.Errorf("index %d outside [0, %d)", idx, n)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failing field only
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "finite":
			return fmt.Errorf("%s: must be a finite number, got %v", field, e.Value())
		case "gt":
			return fmt.Errorf("%s: must be greater than %s, got %v", field, param, e.Value())
		case "gte":
			return fmt.Errorf("%s: must be at least %s, got %v", field, param, e.Value())
		case "ltefield":
			return fmt.Errorf("%s: must not exceed %s, got %v", field, param, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
