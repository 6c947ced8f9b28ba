package lib

import (
	"context"
	"errors"

	"github.com/devanshm/bunkmate/lib/clock"
	"github.com/devanshm/bunkmate/lib/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type subjects struct {
	log   *zap.Logger
	db    *gorm.DB
	clock clock.Clock
}

func (svc *subjects) ListSubjects(ctx context.Context, userID uint) (models.Subjects, error) {
	subs := models.Subjects{}
	tx := svc.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs)
	if err := tx.Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (svc *subjects) DeclareSubjects(ctx context.Context, userID uint, names []string) (models.Subjects, error) {
	created := models.Subjects{}
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			subj := models.Subject{UserID: userID, Name: name}
			if err := tx.Create(&subj).Error; errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSubject
			} else if err != nil {
				return err
			}
			created = append(created, subj)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReplaceSubjects reconciles the user's stored subjects against the
// submitted name list: names no longer present are removed, new names are
// created with fresh counters, surviving subjects keep their counters.
// Returns the resulting full list.
func (svc *subjects) ReplaceSubjects(ctx context.Context, userID uint, names []string) (models.Subjects, error) {
	result := models.Subjects{}
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current := models.Subjects{}
		if err := tx.Where("user_id = ?", userID).Find(&current).Error; err != nil {
			return err
		}

		wanted := make(map[string]bool, len(names))
		for _, name := range names {
			wanted[name] = true
		}

		existing := make(map[string]bool, len(current))
		for _, subj := range current {
			existing[subj.Name] = true
			if wanted[subj.Name] {
				result = append(result, subj)
				continue
			}
			// Hard delete so the unique (owner, name) index frees the slot
			// for a later re-declaration.
			if err := tx.Unscoped().Delete(&subj).Error; err != nil {
				return err
			}
		}

		for _, name := range names {
			if existing[name] {
				continue
			}
			subj := models.Subject{UserID: userID, Name: name}
			if err := tx.Create(&subj).Error; err != nil {
				return err
			}
			result = append(result, subj)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	svc.log.Sugar().Infow("Replaced subject list", "user_id", userID, "count", len(result))
	return result, nil
}

// EditSubject overwrites a subject's counters with a user-entered pair.
// Total is re-derived from the pair; a caller-supplied total is never
// trusted. The change is classified so the day's toggle reflects the edit:
// a raised attended counter marks the attended button active, a raised
// missed counter the missed button, and an unchanged pair noClass. When
// both counters decrease the previous classification is kept.
func (svc *subjects) EditSubject(ctx context.Context, userID, subjectID uint, attended, missed int) (*models.Subject, error) {
	subj := &models.Subject{}
	tx := svc.db.WithContext(ctx).Where("user_id = ?", userID).First(subj, subjectID)
	if err := tx.Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubjectNotFound
	} else if err != nil {
		return nil, err
	}

	switch {
	case attended > subj.Attended:
		subj.LastChange = string(models.ButtonAttended)
	case missed > subj.Missed:
		subj.LastChange = string(models.ButtonMissed)
	case attended == subj.Attended && missed == subj.Missed:
		subj.LastChange = string(models.ButtonNoClass)
	}

	subj.Attended = attended
	subj.Missed = missed
	subj.Total = attended + missed
	subj.LastUpdated = clock.LocalDate(svc.clock)

	if err := svc.db.WithContext(ctx).Save(subj).Error; err != nil {
		return nil, err
	}
	return subj, nil
}
