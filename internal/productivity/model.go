// Package productivity models how productive an hour of work on a task is
// and how much a planned block of work is worth in total.
package productivity

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateModel is returned when c1·e + c2·b + c3 evaluates to zero.
	ErrDegenerateModel = errors.New("decay-rate denominator is zero")
	// ErrNonPositiveParams is returned when normalized effort or enjoyability is not positive.
	ErrNonPositiveParams = errors.New("normalized effort and enjoyability must be positive")
	// ErrNegativeDuration is returned when a duration below zero is integrated.
	ErrNegativeDuration = errors.New("duration must not be negative")
	// ErrNonFiniteValue is returned when the curve or its integral overflows,
	// which happens when a small negative τ makes exp(-s/τ) explode.
	ErrNonFiniteValue = errors.New("productivity is not a finite number")
)

// degenerateThreshold is the magnitude below which a decay rate counts as zero.
const degenerateThreshold = 1e-12

// Constants shape the decay rate τ = C1·e + C2·b + C3.
type Constants struct {
	C1 float64 `json:"c1" yaml:"c1"`
	C2 float64 `json:"c2" yaml:"c2"`
	C3 float64 `json:"c3" yaml:"c3"`
}

// DefaultConstants returns the tuned defaults c1=0.5, c2=-0.3, c3=0.2.
func DefaultConstants() Constants {
	return Constants{C1: 0.5, C2: -0.3, C3: 0.2}
}

// Params are the normalized task attributes fed into the model.
type Params struct {
	Effort       float64
	Enjoyability float64
}

// Normalize maps raw effort and enjoyability ratings onto the model's domain.
func Normalize(rawEffort, rawEnjoyability float64) (Params, error) {
	p := Params{
		Effort:       (4.0/9.0)*rawEffort + 5.0/9.0,
		Enjoyability: (1.0/9.0)*rawEnjoyability + 8.0/9.0,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks that both parameters are finite and positive.
func (p Params) Validate() error {
	if !(p.Effort > 0) || !(p.Enjoyability > 0) || math.IsInf(p.Effort, 0) || math.IsInf(p.Enjoyability, 0) {
		return fmt.Errorf("%w: e=%g b=%g", ErrNonPositiveParams, p.Effort, p.Enjoyability)
	}
	return nil
}

// DecayRate returns τ = c1·e + c2·b + c3, failing when it is zero.
func DecayRate(p Params, c Constants) (float64, error) {
	tau := c.C1*p.Effort + c.C2*p.Enjoyability + c.C3
	if math.Abs(tau) < degenerateThreshold || math.IsNaN(tau) {
		return 0, fmt.Errorf("%w: e=%g b=%g", ErrDegenerateModel, p.Effort, p.Enjoyability)
	}
	return tau, nil
}

// curve holds the precomputed coefficients of p(s) = base + slope·s·exp(-s/tau).
type curve struct {
	base  float64
	slope float64
	tau   float64
}

func newCurve(p Params, c Constants) (curve, error) {
	if err := p.Validate(); err != nil {
		return curve{}, err
	}
	tau, err := DecayRate(p, c)
	if err != nil {
		return curve{}, err
	}
	b2 := p.Enjoyability * p.Enjoyability
	return curve{
		base:  b2 / (p.Effort * p.Effort),
		slope: b2 + b2*math.Log(p.Effort),
		tau:   tau,
	}, nil
}

func (cv curve) at(s float64) float64 {
	return cv.base + cv.slope*s*math.Exp(-s/cv.tau)
}

func finite(v, t float64, cv curve) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %g at %g hours (tau=%g)", ErrNonFiniteValue, v, t, cv.tau)
	}
	return v, nil
}

// Instantaneous returns the productivity of working on a task at time s.
func Instantaneous(s float64, p Params, c Constants) (float64, error) {
	cv, err := newCurve(p, c)
	if err != nil {
		return 0, err
	}
	return finite(cv.at(s), s, cv)
}

// Integrated returns ∫₀ᵗ Instantaneous(s) ds using adaptive quadrature.
func Integrated(t float64, p Params, c Constants) (float64, error) {
	return Quadrature{Tolerance: DefaultTolerance}.Integrate(t, p, c)
}

// ClosedForm evaluates the integral analytically:
// base·t + slope·τ²·(1 − exp(−t/τ)·(1 + t/τ)).
func ClosedForm(t float64, p Params, c Constants) (float64, error) {
	if t < 0 || math.IsNaN(t) {
		return 0, fmt.Errorf("%w: %g", ErrNegativeDuration, t)
	}
	cv, err := newCurve(p, c)
	if err != nil {
		return 0, err
	}
	if t == 0 {
		return 0, nil
	}
	r := t / cv.tau
	// -expm1(-r) - r·exp(-r) keeps precision when t is small relative to τ.
	return finite(cv.base*t+cv.slope*cv.tau*cv.tau*(-math.Expm1(-r)-r*math.Exp(-r)), t, cv)
}
