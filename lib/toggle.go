package lib

import (
	"context"
	"errors"

	"github.com/devanshm/bunkmate/lib/clock"
	"github.com/devanshm/bunkmate/lib/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type toggles struct {
	log   *zap.Logger
	db    *gorm.DB
	clock clock.Clock
}

// ToggleAttendance applies one button press to the subject's state for
// today and persists the outcome. The counter mutation is written as a
// single conditional increment-by-delta, guarded on the toggle state the
// press was computed from, so an overlapping write cannot be silently
// lost.
func (svc *toggles) ToggleAttendance(ctx context.Context, userID, subjectID uint, button models.Button) (*models.Subject, error) {
	if _, ok := models.ParseButton(string(button)); !ok {
		return nil, ErrUnknownButton
	}

	subj := &models.Subject{}
	tx := svc.db.WithContext(ctx).Where("user_id = ?", userID).First(subj, subjectID)
	if err := tx.Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubjectNotFound
	} else if err != nil {
		return nil, err
	}

	today := clock.LocalDate(svc.clock)
	transition := subj.DayState(today).Press(button, today)

	tx = svc.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("id = ? AND user_id = ?", subj.ID, userID).
		Where("last_change = ? AND last_updated = ?", subj.LastChange, subj.LastUpdated).
		Updates(map[string]any{
			"attended":     gorm.Expr("attended + ?", transition.AttendedDelta),
			"missed":       gorm.Expr("missed + ?", transition.MissedDelta),
			"total":        gorm.Expr("attended + missed + ?", transition.AttendedDelta+transition.MissedDelta),
			"last_change":  string(transition.State.Button),
			"last_updated": today,
		})
	if err := tx.Error; err != nil {
		return nil, err
	}
	if tx.RowsAffected == 0 {
		return nil, ErrStaleToggle
	}

	if err := svc.db.WithContext(ctx).First(subj, subj.ID).Error; err != nil {
		return nil, err
	}

	svc.log.Sugar().Infow("Applied toggle",
		"user_id", userID,
		"subject_id", subj.ID,
		"button", button,
		"state", subj.LastChange,
		"counts", []int{subj.Attended, subj.Missed, subj.Total},
	)
	return subj, nil
}
