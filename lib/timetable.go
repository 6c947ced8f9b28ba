package lib

import (
	"context"
	"errors"

	"github.com/devanshm/bunkmate/lib/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type timetable struct {
	log *zap.Logger
	db  *gorm.DB
}

var weekdays = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

// AssignDay replaces the user's timetable entry for one weekday with the
// given subject selection. The whole operation is rejected, leaving any
// existing entry untouched, if the selection contains duplicates or a
// subject the user does not own.
func (svc *timetable) AssignDay(ctx context.Context, userID uint, day string, subjectIDs []uint) (*models.TimetableEntry, error) {
	if !weekdays[day] {
		return nil, ErrUnknownDay
	}

	seen := make(map[uint]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		if seen[id] {
			return nil, ErrDuplicateSelection
		}
		seen[id] = true
	}

	subs := models.Subjects{}
	if len(subjectIDs) > 0 {
		tx := svc.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Where("id IN ?", subjectIDs).
			Find(&subs)
		if err := tx.Error; err != nil {
			return nil, err
		}
		if len(subs) != len(subjectIDs) {
			return nil, ErrSubjectNotOwned
		}
	}

	entry := &models.TimetableEntry{UserID: userID, Day: day, Subjects: subs}
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := models.TimetableEntry{}
		err := tx.Where("user_id = ? AND day = ?", userID, day).First(&existing).Error
		if err == nil {
			if err := tx.Model(&existing).Association("Subjects").Clear(); err != nil {
				return err
			}
			// Hard delete so the unique (owner, day) index frees the slot.
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	svc.log.Sugar().Infow("Assigned timetable day", "user_id", userID, "day", day, "subjects", len(subs))
	return entry, nil
}

// SubjectsDueOn resolves the subjects assigned to the given weekday.
// A day with no timetable entry at all reports ErrTimetableNotDefined;
// a day whose entry holds zero subjects returns an empty, non-nil list.
// Callers render the two differently.
func (svc *timetable) SubjectsDueOn(ctx context.Context, userID uint, day string) (models.Subjects, error) {
	if !weekdays[day] {
		return nil, ErrUnknownDay
	}

	entry := models.TimetableEntry{}
	tx := svc.db.WithContext(ctx).
		Preload("Subjects").
		Where("user_id = ? AND day = ?", userID, day).
		First(&entry)
	if err := tx.Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTimetableNotDefined
	} else if err != nil {
		return nil, err
	}

	if entry.Subjects == nil {
		entry.Subjects = models.Subjects{}
	}
	return entry.Subjects, nil
}
