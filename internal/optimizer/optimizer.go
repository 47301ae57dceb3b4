// Package optimizer splits a daily time budget across tasks so that the
// summed integrated productivity is as large as the solver can make it.
//
// The search is local: the objective is not concave in general, so the
// result is a stationary point rather than a guaranteed global maximum.
// Identical inputs and solver settings always yield the same allocation.
package optimizer

import (
	"context"
	"fmt"

	apperrors "zenith/internal/errors"
	"zenith/internal/productivity"
)

// Task is one Auto task as seen by the optimizer.
type Task struct {
	ID     string
	Params productivity.Params
}

// Allocation is the per-task duration vector in hours, in input order.
type Allocation struct {
	Durations         []float64
	TotalProductivity float64
	UsedHours         float64
	Iterations        int
}

// Optimizer maximizes Σ Value(tᵢ) under 0 ≤ tᵢ ≤ MaxDuration and Σtᵢ ≤ TotalTime.
type Optimizer struct {
	Model       productivity.Model
	Solver      Solver
	MaxDuration float64
	TotalTime   float64
}

// New returns an Optimizer. A nil solver selects ProjectedGradient with defaults.
func New(model productivity.Model, solver Solver, maxDuration, totalTime float64) *Optimizer {
	if solver == nil {
		solver = NewProjectedGradient(DefaultMaxIterations, DefaultTolerance, DefaultTimeout)
	}
	return &Optimizer{
		Model:       model,
		Solver:      solver,
		MaxDuration: maxDuration,
		TotalTime:   totalTime,
	}
}

// Allocate computes durations for tasks. An empty task list returns an empty
// allocation without running the solver.
func (o *Optimizer) Allocate(ctx context.Context, tasks []Task) (Allocation, error) {
	n := len(tasks)
	if n == 0 {
		return Allocation{Durations: []float64{}}, nil
	}
	if o.MaxDuration < 0 || o.TotalTime < 0 {
		return Allocation{}, apperrors.NewInvalidInputError("limits",
			fmt.Sprintf("max=%g total=%g", o.MaxDuration, o.TotalTime), "must not be negative")
	}

	for _, task := range tasks {
		if err := task.Params.Validate(); err != nil {
			return Allocation{}, apperrors.NewInvalidInputError("params", task.ID, err.Error())
		}
		if _, err := o.Model.DecayRate(task.Params); err != nil {
			return Allocation{}, apperrors.NewDegenerateModelError(task.ID, err)
		}
		// Value and rate peak at MaxDuration when τ < 0; an overflow there
		// would otherwise surface as a failed line search.
		if _, err := o.Model.Value(o.MaxDuration, task.Params); err != nil {
			return Allocation{}, apperrors.NewDegenerateModelError(task.ID, err)
		}
		if _, err := o.Model.Rate(o.MaxDuration, task.Params); err != nil {
			return Allocation{}, apperrors.NewDegenerateModelError(task.ID, err)
		}
	}

	lower := make([]float64, n)
	upper := make([]float64, n)
	x0 := make([]float64, n)
	for i := range tasks {
		upper[i] = o.MaxDuration
		x0[i] = o.MaxDuration / float64(n)
	}

	problem := Problem{
		Objective: func(x []float64) (float64, error) {
			total := 0.0
			for i, t := range x {
				v, err := o.Model.Value(t, tasks[i].Params)
				if err != nil {
					return 0, err
				}
				total += v
			}
			return -total, nil
		},
		Gradient: func(grad, x []float64) error {
			for i, t := range x {
				rate, err := o.Model.Rate(t, tasks[i].Params)
				if err != nil {
					return err
				}
				grad[i] = -rate
			}
			return nil
		},
		Lower:  lower,
		Upper:  upper,
		Budget: o.TotalTime,
	}

	res, err := o.Solver.Solve(ctx, problem, x0)
	if err != nil {
		return Allocation{}, apperrors.NewOptimizationFailureError(res.Message, err)
	}

	used := 0.0
	for _, t := range res.X {
		used += t
	}
	return Allocation{
		Durations:         res.X,
		TotalProductivity: -res.F,
		UsedHours:         used,
		Iterations:        res.Iterations,
	}, nil
}
