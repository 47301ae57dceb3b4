package productivity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// DefaultTolerance is the relative error target of the adaptive quadrature.
	DefaultTolerance = 1e-9

	// panelPoints is the Gauss-Legendre order used on each panel.
	panelPoints = 10
	maxDepth    = 16
)

// Integrator computes the integral of the productivity curve over [0, t].
type Integrator interface {
	Integrate(t float64, p Params, c Constants) (float64, error)
}

// IntegratorFunc adapts a plain function to the Integrator interface.
type IntegratorFunc func(t float64, p Params, c Constants) (float64, error)

// Integrate calls f.
func (f IntegratorFunc) Integrate(t float64, p Params, c Constants) (float64, error) {
	return f(t, p, c)
}

// Analytic integrates with the closed-form antiderivative.
var Analytic Integrator = IntegratorFunc(ClosedForm)

// Quadrature integrates numerically by recursively bisecting panels until
// the Gauss-Legendre estimate on a panel agrees with the sum of its halves.
type Quadrature struct {
	Tolerance float64
}

// Integrate implements Integrator.
func (q Quadrature) Integrate(t float64, p Params, c Constants) (float64, error) {
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
	tol := q.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	// With τ < 0 the curve grows monotonically, so the endpoint is its maximum.
	if _, err := finite(cv.at(t), t, cv); err != nil {
		return 0, err
	}
	whole := panel(cv.at, 0, t)
	return finite(adapt(cv.at, 0, t, whole, tol, maxDepth), t, cv)
}

func panel(f func(float64) float64, a, b float64) float64 {
	return quad.Fixed(f, a, b, panelPoints, quad.Legendre{}, 0)
}

func adapt(f func(float64) float64, a, b, whole, tol float64, depth int) float64 {
	mid := a + (b-a)/2
	left := panel(f, a, mid)
	right := panel(f, mid, b)
	sum := left + right
	if depth <= 0 || math.Abs(sum-whole) <= tol*math.Max(math.Abs(sum), 1e-300) {
		return sum
	}
	return adapt(f, a, mid, left, tol, depth-1) + adapt(f, mid, b, right, tol, depth-1)
}

// Model bundles the tunable constants with the integrator used to evaluate them.
type Model struct {
	Constants  Constants
	Integrator Integrator
}

// NewModel returns a Model using adaptive quadrature with the given tolerance.
func NewModel(c Constants, tolerance float64) Model {
	return Model{Constants: c, Integrator: Quadrature{Tolerance: tolerance}}
}

// Rate is the instantaneous productivity at s.
func (m Model) Rate(s float64, p Params) (float64, error) {
	return Instantaneous(s, p, m.Constants)
}

// Value is the integrated productivity of working t hours.
func (m Model) Value(t float64, p Params) (float64, error) {
	integrator := m.Integrator
	if integrator == nil {
		integrator = Quadrature{Tolerance: DefaultTolerance}
	}
	return integrator.Integrate(t, p, m.Constants)
}

// DecayRate returns τ for p under the model's constants.
func (m Model) DecayRate(p Params) (float64, error) {
	return DecayRate(p, m.Constants)
}
