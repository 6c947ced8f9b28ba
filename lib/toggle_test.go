package lib

import (
	"context"
	"testing"
	"time"

	"github.com/devanshm/bunkmate/lib/clock"
	"github.com/devanshm/bunkmate/lib/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAttendance_SwitchWithinDay(t *testing.T) {
	svc := newTestService(t, newTestDB(t), clock.Fixed{Time: testDay})
	ctx := context.Background()
	user := registerTestUser(t, svc, "asha@example.com")
	subs := declareTestSubjects(t, svc, user.ID, "Maths")

	// attended then missed from (0,0,0) lands on missed with (0,1,1).
	subj, err := svc.ToggleAttendance(ctx, user.ID, subs[0].ID, models.ButtonAttended)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, []int{subj.Attended, subj.Missed, subj.Total})
	assert.Equal(t, "attended", subj.LastChange)

	subj, err = svc.ToggleAttendance(ctx, user.ID, subs[0].ID, models.ButtonMissed)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, []int{subj.Attended, subj.Missed, subj.Total})
	assert.Equal(t, "missed", subj.LastChange)
	assert.Equal(t, "2024-05-06", subj.LastUpdated)
}

func TestToggleAttendance_DeselectRestoresCounters(t *testing.T) {
	svc := newTestService(t, newTestDB(t), clock.Fixed{Time: testDay})
	ctx := context.Background()
	user := registerTestUser(t, svc, "asha@example.com")
	subs := declareTestSubjects(t, svc, user.ID, "Maths")

	_, err := svc.EditSubject(ctx, user.ID, subs[0].ID, 5, 1)
	require.NoError(t, err)

	// The edit raised attended, so the attended button is active today;
	// pressing it again deselects and returns to the pre-press counters.
	subj, err := svc.ToggleAttendance(ctx, user.ID, subs[0].ID, models.ButtonAttended)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 1, 5}, []int{subj.Attended, subj.Missed, subj.Total})
	assert.Empty(t, subj.LastChange)

	subj, err = svc.ToggleAttendance(ctx, user.ID, subs[0].ID, models.ButtonAttended)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 1, 6}, []int{subj.Attended, subj.Missed, subj.Total})
	assert.Equal(t, "attended", subj.LastChange)
}

func TestToggleAttendance_NoClass(t *testing.T) {
	svc := newTestService(t, newTestDB(t), clock.Fixed{Time: testDay})
	ctx := context.Background()
	user := registerTestUser(t, svc, "asha@example.com")
	subs := declareTestSubjects(t, svc, user.ID, "Maths")

	subj, err := svc.ToggleAttendance(ctx, user.ID, subs[0].ID, models.ButtonNoClass)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, []int{subj.Attended, subj.Missed, subj.Total})
	assert.Equal(t, "noClass", subj.LastChange)

	// Moving from noClass to attended counts exactly one event.
	subj, err = svc.ToggleAttendance(ctx, user.ID, subs[0].ID, models.ButtonAttended)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, []int{subj.Attended, subj.Missed, subj.Total})
}

func TestToggleAttendance_NewDayStartsAtNone(t *testing.T) {
	db := newTestDB(t)
	monday := newTestService(t, db, clock.Fixed{Time: testDay})
	ctx := context.Background()
	user := registerTestUser(t, monday, "asha@example.com")
	subs := declareTestSubjects(t, monday, user.ID, "Maths")

	subj, err := monday.ToggleAttendance(ctx, user.ID, subs[0].ID, models.ButtonAttended)
	require.NoError(t, err)
	assert.Equal(t, 1, subj.Attended)

	// The next day the toggle resets to none, the counters do not: a
	// fresh press counts a second event instead of deselecting.
	tuesday := newTestService(t, db, clock.Fixed{Time: testDay.Add(24 * time.Hour)})
	subj, err = tuesday.ToggleAttendance(ctx, user.ID, subs[0].ID, models.ButtonAttended)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 2}, []int{subj.Attended, subj.Missed, subj.Total})
	assert.Equal(t, "2024-05-07", subj.LastUpdated)
}

func TestToggleAttendance_Validation(t *testing.T) {
	svc := newTestService(t, newTestDB(t), clock.Fixed{Time: testDay})
	ctx := context.Background()
	user := registerTestUser(t, svc, "asha@example.com")
	other := registerTestUser(t, svc, "ravi@example.com")
	subs := declareTestSubjects(t, svc, user.ID, "Maths")

	_, err := svc.ToggleAttendance(ctx, user.ID, subs[0].ID, "skip")
	assert.ErrorIs(t, err, ErrUnknownButton)

	_, err = svc.ToggleAttendance(ctx, other.ID, subs[0].ID, models.ButtonAttended)
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}
