package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"zenith/internal/api"
	"zenith/internal/domain"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

func checkFormat(format string) error {
	if format != FormatTable && format != FormatJSON {
		return fmt.Errorf("unsupported format %q (use %s or %s)", format, FormatTable, FormatJSON)
	}
	return nil
}

// Renderer writes responses either as styled tables or as indented JSON.
// Styles are resolved against the destination writer, so output captured in
// a buffer or piped to a file carries no escape codes.
type Renderer struct {
	out    io.Writer
	header lipgloss.Style
	cell   lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	border lipgloss.Style
}

// NewRenderer creates a renderer for w.
func NewRenderer(w io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		out:    w,
		header: lr.NewStyle().Bold(true).Padding(0, 1),
		cell:   lr.NewStyle().Padding(0, 1),
		muted:  lr.NewStyle().Faint(true),
		warn:   lr.NewStyle().Foreground(lipgloss.Color("3")),
		border: lr.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// JSON writes v as indented JSON followed by a newline.
func (r *Renderer) JSON(v interface{}) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		})
}

// Schedule writes the timeline, then the totals and any warnings.
func (r *Renderer) Schedule(resp *api.ScheduleResponse) error {
	if len(resp.Tasks) == 0 {
		if _, err := fmt.Fprintln(r.out, "No tasks to schedule."); err != nil {
			return err
		}
	} else {
		t := r.newTable("START", "END", "TYPE", "TASK", "DURATION", "BREAK", "NOTE")
		for _, task := range resp.Tasks {
			note := ""
			if task.Overrun {
				note = "overrun"
			}
			t.Row(
				task.StartTime,
				task.EndTime,
				kindName(task.Type),
				task.Title,
				formatHoursPtr(task.Duration),
				formatHoursPtr(task.BreakDuration),
				note,
			)
		}
		if _, err := fmt.Fprintln(r.out, t.Render()); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("Planned %s of %s, productivity %.3f",
		formatHours(resp.UsedTime), formatHours(resp.TotalAvailableTime), resp.TotalProductivity)
	if _, err := fmt.Fprintln(r.out, r.muted.Render(summary)); err != nil {
		return err
	}
	for _, w := range resp.Warnings {
		if _, err := fmt.Fprintln(r.out, r.warn.Render("warning: "+w)); err != nil {
			return err
		}
	}
	return nil
}

// Runs writes one row per run, newest first as given. Creation times are
// shown relative to now.
func (r *Renderer) Runs(runs []api.RunResponse, now time.Time) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(r.out, "No runs recorded.")
		return err
	}

	t := r.newTable("ID", "CREATED", "STATUS", "AUTO", "MANUAL", "USED", "PRODUCTIVITY", "ELAPSED")
	for _, run := range runs {
		t.Row(
			run.ID,
			relativeTime(run.CreatedAt, now),
			runStatus(run),
			strconv.Itoa(run.AutoTasks),
			strconv.Itoa(run.ManualTasks),
			formatHours(run.UsedTime),
			fmt.Sprintf("%.3f", run.TotalProductivity),
			formatElapsed(run.ElapsedMS),
		)
	}
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

// Run writes the details of a single run as a two-column table.
func (r *Renderer) Run(run api.RunResponse, now time.Time) error {
	t := r.newTable("FIELD", "VALUE").
		Row("id", run.ID).
		Row("created", fmt.Sprintf("%s (%s)", run.CreatedAt, relativeTime(run.CreatedAt, now))).
		Row("status", runStatus(run)).
		Row("auto tasks", strconv.Itoa(run.AutoTasks)).
		Row("manual tasks", strconv.Itoa(run.ManualTasks)).
		Row("used time", formatHours(run.UsedTime)).
		Row("available time", formatHours(run.TotalAvailableTime)).
		Row("productivity", fmt.Sprintf("%.3f", run.TotalProductivity)).
		Row("iterations", humanize.Comma(int64(run.Iterations))).
		Row("elapsed", formatElapsed(run.ElapsedMS))
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

func kindName(code string) string {
	kind, err := domain.ParseTaskKind(code)
	if err != nil {
		return code
	}
	return kind.String()
}

func runStatus(run api.RunResponse) string {
	if run.ErrorCode != "" {
		return run.Status + " (" + run.ErrorCode + ")"
	}
	return run.Status
}

func relativeTime(createdAt string, now time.Time) string {
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}
	return humanize.RelTime(ts, now, "ago", "from now")
}

// formatHours renders fractional hours as 1h30m, rounded to the minute.
func formatHours(hours float64) string {
	d := domain.HoursToDuration(hours).Round(time.Minute)
	return fmt.Sprintf("%dh%02dm", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

func formatHoursPtr(hours *float64) string {
	if hours == nil {
		return "-"
	}
	return formatHours(*hours)
}

func formatElapsed(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return (time.Duration(ms) * time.Millisecond).Round(10 * time.Millisecond).String()
}
