package optimizer

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Solver defaults.
const (
	DefaultMaxIterations = 2000
	DefaultTolerance     = 1e-8
	DefaultTimeout       = 5 * time.Second
)

const (
	armijo          = 1e-4
	minStep         = 1e-14
	maxStep         = 1e6
	bisectionRounds = 200

	// objectiveSlack absorbs integration round-off in the sufficient
	// decrease test, relative to 1+|f|.
	objectiveSlack = 1e-12
)

// ProjectedGradient minimizes by projected gradient descent with Armijo
// backtracking. Every iterate is feasible. It uses no randomness, so equal
// inputs always produce equal results.
type ProjectedGradient struct {
	MaxIterations int
	// Tolerance bounds the sup-norm of the projected gradient step at a
	// stationary point, scaled by 1+‖x‖∞.
	Tolerance   float64
	Timeout     time.Duration
	InitialStep float64
}

// NewProjectedGradient returns a solver with the given limits.
func NewProjectedGradient(maxIterations int, tolerance float64, timeout time.Duration) *ProjectedGradient {
	return &ProjectedGradient{
		MaxIterations: maxIterations,
		Tolerance:     tolerance,
		Timeout:       timeout,
		InitialStep:   1,
	}
}

// Solve implements Solver.
func (s *ProjectedGradient) Solve(ctx context.Context, p Problem, x0 []float64) (Result, error) {
	if err := p.check(x0); err != nil {
		return Result{Message: err.Error()}, fmt.Errorf("%w: %v", ErrNotConverged, err)
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	n := p.Dim()
	x := make([]float64, n)
	Project(x, x0, p.Lower, p.Upper, p.Budget)
	f, err := p.Objective(x)
	if err != nil {
		return Result{X: x, Message: err.Error()}, fmt.Errorf("%w: evaluate objective: %v", ErrNotConverged, err)
	}

	step := s.InitialStep
	if step <= 0 {
		step = 1
	}
	grad := make([]float64, n)
	trial := make([]float64, n)
	res := Result{X: x, F: f}

	fail := func(msg string) (Result, error) {
		res.Message = msg
		return res, fmt.Errorf("%w: %s", ErrNotConverged, msg)
	}

	for iter := 0; iter < s.MaxIterations; iter++ {
		res.Iterations = iter
		if err := ctx.Err(); err != nil {
			return fail(fmt.Sprintf("%v after %d iterations", err, iter))
		}
		if err := p.Gradient(grad, x); err != nil {
			return fail(fmt.Sprintf("evaluate gradient: %v", err))
		}

		floats.AddScaledTo(trial, x, -1, grad)
		Project(trial, trial, p.Lower, p.Upper, p.Budget)
		if floats.Distance(trial, x, math.Inf(1)) <= s.Tolerance*(1+floats.Norm(x, math.Inf(1))) {
			res.Converged = true
			res.Message = fmt.Sprintf("converged after %d iterations", iter)
			return res, nil
		}

		var ft float64
		for {
			floats.AddScaledTo(trial, x, -step, grad)
			Project(trial, trial, p.Lower, p.Upper, p.Budget)
			ft, err = p.Objective(trial)
			if err != nil {
				return fail(fmt.Sprintf("evaluate objective: %v", err))
			}
			decrease := floats.Dot(grad, trial) - floats.Dot(grad, x)
			if ft <= f+armijo*decrease+objectiveSlack*(1+math.Abs(f)) {
				break
			}
			step /= 2
			if step < minStep {
				return fail(fmt.Sprintf("line search failed after %d iterations", iter))
			}
		}

		copy(x, trial)
		f = ft
		res.F = f
		step = math.Min(step*2, maxStep)
	}

	res.Iterations = s.MaxIterations
	return fail(fmt.Sprintf("iteration limit %d reached", s.MaxIterations))
}

// Project writes into dst the Euclidean projection of y onto
// {lower ≤ x ≤ upper, Σx ≤ budget}. dst and y may alias. The budget set
// must be non-empty (Σlower ≤ budget).
func Project(dst, y, lower, upper []float64, budget float64) {
	clip := func(lambda float64) float64 {
		sum := 0.0
		for i, v := range y {
			sum += math.Min(math.Max(v-lambda, lower[i]), upper[i])
		}
		return sum
	}

	if clip(0) <= budget {
		for i, v := range y {
			dst[i] = math.Min(math.Max(v, lower[i]), upper[i])
		}
		return
	}

	// Σ clip(y - λ) is non-increasing in λ and reaches Σlower at λ = max(y - lower).
	lo, hi := 0.0, 0.0
	for i, v := range y {
		hi = math.Max(hi, v-lower[i])
	}
	for round := 0; round < bisectionRounds; round++ {
		mid := lo + (hi-lo)/2
		if mid <= lo || mid >= hi {
			break
		}
		if clip(mid) > budget {
			lo = mid
		} else {
			hi = mid
		}
	}
	for i, v := range y {
		dst[i] = math.Min(math.Max(v-hi, lower[i]), upper[i])
	}
}
