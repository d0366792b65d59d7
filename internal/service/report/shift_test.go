package report

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(id int, userID string, typ attendance.EventType, at time.Time) attendance.Event {
	return attendance.Event{
		ID:        fmt.Sprintf("%08d", id),
		UserID:    userID,
		Type:      typ,
		CreatedAt: at,
	}
}

func TestReconstructShiftsSimplePair(t *testing.T) {
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckIn, start),
		eventAt(2, "u1", attendance.CheckOut, start.Add(8*time.Hour)),
	}

	shifts := ReconstructShifts(events, ShiftOptions{})

	require.Len(t, shifts, 1)
	assert.Equal(t, "u1", shifts[0].UserID)
	assert.Equal(t, start, shifts[0].Start)
	assert.Equal(t, 8*time.Hour, shifts[0].Duration)
	assert.False(t, shifts[0].Open)
}

func TestReconstructShiftsDanglingCheckInIgnored(t *testing.T) {
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckIn, time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)),
	}

	shifts := ReconstructShifts(events, ShiftOptions{})

	assert.Empty(t, shifts)
}

func TestReconstructShiftsOpenShift(t *testing.T) {
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	now := start.Add(3 * time.Hour)
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckIn, start),
	}

	shifts := ReconstructShifts(events, ShiftOptions{IncludeOpen: true, Now: now})

	require.Len(t, shifts, 1)
	assert.True(t, shifts[0].Open)
	assert.Equal(t, 3*time.Hour, shifts[0].Duration)
	assert.Equal(t, now, shifts[0].End)
}

func TestReconstructShiftsOpenShiftRequiresNowAfterStart(t *testing.T) {
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckIn, start),
	}

	shifts := ReconstructShifts(events, ShiftOptions{IncludeOpen: true, Now: start})
	assert.Empty(t, shifts)

	shifts = ReconstructShifts(events, ShiftOptions{IncludeOpen: true, Now: start.Add(-time.Hour)})
	assert.Empty(t, shifts)
}

func TestReconstructShiftsPendingCheckInReplaced(t *testing.T) {
	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckIn, base.Add(8*time.Hour)),
		eventAt(2, "u1", attendance.CheckIn, base.Add(9*time.Hour)),
		eventAt(3, "u1", attendance.CheckOut, base.Add(17*time.Hour)),
	}

	shifts := ReconstructShifts(events, ShiftOptions{})

	require.Len(t, shifts, 1)
	assert.Equal(t, base.Add(9*time.Hour), shifts[0].Start, "later check-in replaces the pending one")
	assert.Equal(t, 8*time.Hour, shifts[0].Duration)
}

func TestReconstructShiftsOrphanCheckOutDropped(t *testing.T) {
	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckOut, base.Add(7*time.Hour)),
		eventAt(2, "u1", attendance.CheckIn, base.Add(9*time.Hour)),
		eventAt(3, "u1", attendance.CheckOut, base.Add(17*time.Hour)),
	}

	shifts := ReconstructShifts(events, ShiftOptions{})

	require.Len(t, shifts, 1)
	assert.Equal(t, 8*time.Hour, shifts[0].Duration)
}

func TestReconstructShiftsNonPositiveDurationDropped(t *testing.T) {
	at := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckIn, at),
		eventAt(2, "u1", attendance.CheckOut, at),
	}

	shifts := ReconstructShifts(events, ShiftOptions{})

	assert.Empty(t, shifts)
}

func TestReconstructShiftsZeroTimestampDropped(t *testing.T) {
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckIn, time.Time{}),
		eventAt(2, "u1", attendance.CheckIn, start),
		eventAt(3, "u1", attendance.CheckOut, start.Add(time.Hour)),
	}

	shifts := ReconstructShifts(events, ShiftOptions{})

	require.Len(t, shifts, 1)
	assert.Equal(t, start, shifts[0].Start)
}

func TestReconstructShiftsOrderIndependent(t *testing.T) {
	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(1, "u1", attendance.CheckIn, base.Add(9*time.Hour)),
		eventAt(2, "u1", attendance.CheckOut, base.Add(12*time.Hour)),
		eventAt(3, "u1", attendance.CheckIn, base.Add(13*time.Hour)),
		eventAt(4, "u1", attendance.CheckOut, base.Add(17*time.Hour)),
	}

	want := ReconstructShifts(events, ShiftOptions{})
	require.Len(t, want, 2)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]attendance.Event, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, want, ReconstructShifts(shuffled, ShiftOptions{}))
	}
}

func TestReconstructShiftsDoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		eventAt(2, "u1", attendance.CheckOut, base.Add(17*time.Hour)),
		eventAt(1, "u1", attendance.CheckIn, base.Add(9*time.Hour)),
	}
	original := make([]attendance.Event, len(events))
	copy(original, events)

	ReconstructShifts(events, ShiftOptions{})

	assert.Equal(t, original, events)
}
