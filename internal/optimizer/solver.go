package optimizer

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConverged is wrapped by every solver failure.
var ErrNotConverged = errors.New("solver did not converge")

// Problem describes minimize f(x) subject to Lower ≤ x ≤ Upper and Σx ≤ Budget.
type Problem struct {
	// Objective returns f(x).
	Objective func(x []float64) (float64, error)
	// Gradient writes ∇f(x) into grad.
	Gradient func(grad, x []float64) error

	Lower  []float64
	Upper  []float64
	Budget float64
}

// Dim returns the number of variables.
func (p Problem) Dim() int {
	return len(p.Lower)
}

func (p Problem) check(x0 []float64) error {
	n := len(p.Lower)
	if len(p.Upper) != n || len(x0) != n {
		return fmt.Errorf("dimension mismatch: lower=%d upper=%d x0=%d", n, len(p.Upper), len(x0))
	}
	if p.Objective == nil || p.Gradient == nil {
		return errors.New("objective and gradient are required")
	}
	lowSum := 0.0
	for i := range p.Lower {
		if p.Lower[i] > p.Upper[i] {
			return fmt.Errorf("empty bounds for variable %d: [%g, %g]", i, p.Lower[i], p.Upper[i])
		}
		lowSum += p.Lower[i]
	}
	if lowSum > p.Budget {
		return fmt.Errorf("infeasible: lower bounds sum to %g, budget is %g", lowSum, p.Budget)
	}
	return nil
}

// Result is the outcome of a solver run.
type Result struct {
	X          []float64
	F          float64
	Iterations int
	Converged  bool
	Message    string
}

// Solver finds a local minimum of a Problem starting from x0.
// A failed run returns an error wrapping ErrNotConverged together with the
// partial Result so callers can report diagnostics.
type Solver interface {
	Solve(ctx context.Context, p Problem, x0 []float64) (Result, error)
}
