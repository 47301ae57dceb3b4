package cli

import (
	"context"
	"fmt"
)

// DefaultRunsLimit is how many runs `runs` lists without --limit.
const DefaultRunsLimit = 20

// RunsCommand lists recent planning runs from the run log.
type RunsCommand struct {
	app    *App
	format string
	limit  int
}

// NewRunsCommand creates a new runs command handler
func NewRunsCommand(app *App, format string, limit int) *RunsCommand {
	return &RunsCommand{app: app, format: format, limit: limit}
}

// Execute prints the most recent runs, newest first.
func (c *RunsCommand) Execute(ctx context.Context, args []string) error {
	if err := checkFormat(c.format); err != nil {
		return err
	}
	if c.limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", c.limit)
	}

	runs, err := c.app.api.ListRuns(ctx, c.limit)
	if err != nil {
		return NewErrorHandler().Handle("list runs", err)
	}

	r := NewRenderer(c.app.out)
	if c.format == FormatJSON {
		return r.JSON(runs)
	}
	return r.Runs(runs, timeNow())
}

// ShowRunCommand prints a single run.
type ShowRunCommand struct {
	app    *App
	format string
}

// NewShowRunCommand creates a new run detail handler
func NewShowRunCommand(app *App, format string) *ShowRunCommand {
	return &ShowRunCommand{app: app, format: format}
}

// Execute prints the run named by args[0].
func (c *ShowRunCommand) Execute(ctx context.Context, args []string) error {
	if err := checkFormat(c.format); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one run id")
	}

	run, err := c.app.api.GetRun(ctx, args[0])
	if err != nil {
		eh := NewErrorHandler()
		if eh.IsNotFoundError(err) {
			return fmt.Errorf("no run with id %q; list recent runs with 'zenith runs'", args[0])
		}
		return eh.Handle("show run", err)
	}

	r := NewRenderer(c.app.out)
	if c.format == FormatJSON {
		return r.JSON(run)
	}
	return r.Run(*run, timeNow())
}
