package projection

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aristath/horizon/internal/modules/universe"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateParameters rejects a request before any sampling happens and returns
// the normalized weights of a valid one.
func validateParameters(v *validator.Validate, params Parameters, maxSimulations int) (Weights, error) {
	if err := v.Struct(params); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Weights{}, fieldError(fieldErrs[0])
		}
		return Weights{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	if math.IsInf(params.InitialInvestment, 0) {
		return Weights{}, invalid("initial_investment", "must be finite")
	}
	if math.IsInf(params.MonthlyContribution, 0) {
		return Weights{}, invalid("monthly_contribution", "must be finite")
	}
	if maxSimulations > 0 && params.Simulations > maxSimulations {
		return Weights{}, invalid("simulations", "must be at most %d", maxSimulations)
	}

	return params.Allocation.Normalize()
}

func fieldError(fe validator.FieldError) error {
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		if fe.Kind() == reflect.Map {
			reason = "must contain at least one asset class"
		} else {
			reason = "must be at least " + fe.Param()
		}
	case "gte":
		reason = "must be at least " + fe.Param()
	case "lte":
		reason = "must be at most " + fe.Param()
	default:
		reason = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &ValidationError{Field: fe.Field(), Reason: reason}
}

// Weights is a normalized allocation in canonical asset order, with the list
// of asset indices that carry a non-zero weight.
type Weights struct {
	values [universe.NumAssetClasses]float64
	active []int
}

// At returns the normalized weight of an asset class.
func (w Weights) At(a universe.AssetClass) float64 {
	return w.values[a]
}

// Active returns the indices of assets with a non-zero weight.
func (w Weights) Active() []int {
	return w.active
}

// Slice returns the weights as a vector in canonical order.
func (w Weights) Slice() []float64 {
	s := make([]float64, universe.NumAssetClasses)
	copy(s, w.values[:])
	return s
}

// Normalize scales the allocation so its weights sum to 1. Negative, NaN or
// infinite weights, unknown asset classes and an all-zero allocation are rejected.
func (a Allocation) Normalize() (Weights, error) {
	var w Weights
	if len(a) == 0 {
		return w, invalid("allocation", "must contain at least one asset class")
	}

	var total float64
	for asset, pct := range a {
		if !asset.Valid() {
			return w, invalid("allocation", "unknown asset class %d", int(asset))
		}
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			return w, invalid("allocation", "weight for %s must be a finite number", asset)
		}
		if pct < 0 {
			return w, invalid("allocation", "weight for %s must not be negative (got %v)", asset, pct)
		}
		total += pct
	}
	if total <= 0 {
		return w, invalid("allocation", "weights must sum to more than zero")
	}

	for _, asset := range universe.Order {
		pct := a[asset]
		if pct == 0 {
			continue
		}
		w.values[asset] = pct / total
		w.active = append(w.active, int(asset))
	}
	return w, nil
}

// key is a canonical representation used for caching.
func (w Weights) key() string {
	var b strings.Builder
	for _, i := range w.active {
		fmt.Fprintf(&b, "%s=%.12g;", universe.AssetClass(i).Key(), w.values[i])
	}
	return b.String()
}
