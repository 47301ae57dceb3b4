package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenith/internal/domain"
)

func autoTask(id string) domain.Task {
	return domain.NewAutoTask(id, id, 5, 5)
}

func noBreaks() MergeOptions {
	opts := DefaultMergeOptions()
	opts.Breaks = false
	return opts
}

type window struct {
	id    string
	start string
	end   string
}

func windows(tasks []domain.ScheduledTask) []window {
	out := make([]window, len(tasks))
	for i, st := range tasks {
		out[i] = window{id: st.Task.ID, start: st.Start.String(), end: st.End.String()}
	}
	return out
}

func TestMerge_OnlyManual(t *testing.T) {
	manual := manualTask("m", "09:00", "10:00")

	got, warnings, err := Merge(nil, nil, []domain.Task{manual}, DefaultMergeOptions())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, got, 1)
	assert.Equal(t, manual, got[0].Task)
	assert.Equal(t, manual.Start, got[0].Start)
	assert.Equal(t, manual.End, got[0].End)
	assert.Zero(t, got[0].Duration)
	assert.Zero(t, got[0].Break)
}

func TestMerge_SingleAutoStartsAtDayStart(t *testing.T) {
	got, warnings, err := Merge([]domain.Task{autoTask("a")}, []float64{3}, nil, DefaultMergeOptions())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, got, 1)

	assert.Equal(t, domain.Clock(8, 0), got[0].Start)
	assert.Equal(t, domain.Clock(11, 0), got[0].End)
	assert.Equal(t, 3.0, got[0].Duration)
	assert.InDelta(t, 0.25, got[0].Break, 1e-12)
}

func TestMerge_AutoDeferredPastManual(t *testing.T) {
	got, _, err := Merge(
		[]domain.Task{autoTask("a")}, []float64{1},
		[]domain.Task{manualTask("m", "08:30", "09:00")},
		DefaultMergeOptions(),
	)
	require.NoError(t, err)

	assert.Equal(t, []window{
		{"m", "08:30", "09:00"},
		{"a", "09:00", "10:00"},
	}, windows(got))
}

func TestMerge_GapFilling(t *testing.T) {
	auto := []domain.Task{autoTask("a1"), autoTask("a2"), autoTask("a3")}
	manual := []domain.Task{manualTask("m2", "12:00", "13:00"), manualTask("m1", "09:00", "10:00")}
	durations := []float64{0.5, 2, 1}

	t.Run("without breaks", func(t *testing.T) {
		got, _, err := Merge(auto, durations, manual, noBreaks())
		require.NoError(t, err)
		assert.Equal(t, []window{
			{"a1", "08:00", "08:30"},
			{"m1", "09:00", "10:00"},
			{"a2", "10:00", "12:00"},
			{"m2", "12:00", "13:00"},
			{"a3", "13:00", "14:00"},
		}, windows(got))
	})

	t.Run("with breaks", func(t *testing.T) {
		got, _, err := Merge(auto, durations, manual, DefaultMergeOptions())
		require.NoError(t, err)
		assert.Equal(t, []window{
			{"a1", "08:00", "08:30"},
			{"m1", "09:00", "10:00"},
			{"a2", "10:00", "12:00"},
			{"m2", "12:00", "13:00"},
			{"a3", "13:00", "14:00"},
		}, windows(got))
		assert.InDelta(t, 5.0/60.0, got[0].Break, 1e-12)
		assert.InDelta(t, 0.2, got[2].Break, 1e-12)
	})
}

func TestMerge_BreaksSeparateConsecutiveAutoTasks(t *testing.T) {
	got, _, err := Merge(
		[]domain.Task{autoTask("a"), autoTask("b")}, []float64{1, 1},
		nil, DefaultMergeOptions(),
	)
	require.NoError(t, err)

	assert.Equal(t, []window{
		{"a", "08:00", "09:00"},
		{"b", "09:06", "10:06"},
	}, windows(got))
}

func TestMerge_KeepsAutoOrder(t *testing.T) {
	// a2 would fit before m but must wait behind a1.
	got, _, err := Merge(
		[]domain.Task{autoTask("a1"), autoTask("a2")}, []float64{2, 0.5},
		[]domain.Task{manualTask("m", "09:00", "10:00")},
		noBreaks(),
	)
	require.NoError(t, err)

	assert.Equal(t, []window{
		{"m", "09:00", "10:00"},
		{"a1", "10:00", "12:00"},
		{"a2", "12:00", "12:30"},
	}, windows(got))
}

func TestMerge_ManualBeforeDayStart(t *testing.T) {
	got, _, err := Merge(
		[]domain.Task{autoTask("a")}, []float64{1},
		[]domain.Task{manualTask("early", "06:00", "07:00")},
		noBreaks(),
	)
	require.NoError(t, err)

	assert.Equal(t, []window{
		{"early", "06:00", "07:00"},
		{"a", "08:00", "09:00"},
	}, windows(got))
}

func TestMerge_Overrun(t *testing.T) {
	auto := make([]domain.Task, 5)
	durations := make([]float64, 5)
	for i := range auto {
		auto[i] = autoTask(string(rune('a' + i)))
		durations[i] = 3
	}

	got, warnings, err := Merge(auto, durations, nil, noBreaks())
	require.NoError(t, err)
	require.Len(t, got, 5)

	for _, st := range got[:4] {
		assert.False(t, st.Overrun, st.Task.ID)
	}
	assert.True(t, got[4].Overrun)
	assert.Equal(t, "23:00", got[4].End.String())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "task e ends at 23:00")
}

func TestMerge_OverrunPastMidnight(t *testing.T) {
	got, warnings, err := Merge([]domain.Task{autoTask("a"), autoTask("b")}, []float64{10, 7}, nil, noBreaks())
	require.NoError(t, err)

	assert.Equal(t, []window{
		{"a", "08:00", "18:00"},
		{"b", "18:00", "25:00"},
	}, windows(got))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "task b ends at 25:00")
}

func TestMerge_OverrunCheckDisabled(t *testing.T) {
	opts := noBreaks()
	opts.DayEnd = 0

	got, warnings, err := Merge([]domain.Task{autoTask("a")}, []float64{20}, nil, opts)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.False(t, got[0].Overrun)
}

func TestMerge_LengthMismatch(t *testing.T) {
	_, _, err := Merge([]domain.Task{autoTask("a")}, nil, nil, DefaultMergeOptions())
	assert.Error(t, err)
}

func TestMerge_Invariants(t *testing.T) {
	cases := []struct {
		name      string
		durations []float64
		manual    []domain.Task
	}{
		{name: "empty"},
		{name: "auto only", durations: []float64{1, 2, 0.25, 0}},
		{
			name:      "dense manual",
			durations: []float64{0.75, 1.5, 3, 0.1, 2.2},
			manual: []domain.Task{
				manualTask("m1", "08:15", "08:45"),
				manualTask("m2", "09:00", "09:30"),
				manualTask("m3", "09:30", "11:00"),
				manualTask("m4", "14:00", "14:10"),
			},
		},
		{
			name:      "late manual",
			durations: []float64{3, 3, 3},
			manual:    []domain.Task{manualTask("m", "21:00", "23:30")},
		},
	}

	for _, tc := range cases {
		for _, breaks := range []bool{false, true} {
			auto := make([]domain.Task, len(tc.durations))
			for i := range auto {
				auto[i] = autoTask(string(rune('a' + i)))
			}
			opts := DefaultMergeOptions()
			opts.Breaks = breaks

			got, _, err := Merge(auto, tc.durations, tc.manual, opts)
			require.NoError(t, err, tc.name)
			require.Len(t, got, len(auto)+len(tc.manual), tc.name)

			seen := map[string]int{}
			for i, st := range got {
				seen[st.Task.ID]++
				assert.LessOrEqual(t, st.Start, st.End, tc.name)
				if i > 0 {
					assert.LessOrEqual(t, got[i-1].Start, st.Start, "%s: sorted by start", tc.name)
					assert.LessOrEqual(t, got[i-1].End, st.Start, "%s: no overlap between %s and %s", tc.name, got[i-1].Task.ID, st.Task.ID)
				}
				if st.Task.IsManual() {
					assert.Equal(t, st.Task.Start, st.Start, tc.name)
					assert.Equal(t, st.Task.End, st.End, tc.name)
				}
			}
			for _, task := range append(append([]domain.Task{}, auto...), tc.manual...) {
				assert.Equal(t, 1, seen[task.ID], "%s: %s appears once", tc.name, task.ID)
			}
		}
	}
}
