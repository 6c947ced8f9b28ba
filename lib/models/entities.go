package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Password  string `json:"-"` // bcrypt hash, never serialized

	Subjects  []Subject        `json:"-"`
	Timetable []TimetableEntry `json:"-"`
}

type Subject struct {
	gorm.Model
	UserID   uint   `json:"-" gorm:"uniqueIndex:idx_owner_name"`
	Name     string `json:"name" gorm:"uniqueIndex:idx_owner_name"`
	Attended int    `json:"attended"`
	Missed   int    `json:"missed"`
	Total    int    `json:"total"` // always attended + missed, re-derived on every write

	// Local calendar date (YYYY-MM-DD) of the most recent toggle or edit,
	// empty until the subject is first updated.
	LastUpdated string `json:"lastUpdatedDate"`
	// Button active on LastUpdated: attended, missed or noClass.
	LastChange string `json:"lastChange"`
}

type Subjects []Subject

// DayState resolves the subject's toggle state for the given local date.
// A LastUpdated before today means no button is active; the counters are
// untouched by the day rollover.
func (s *Subject) DayState(today string) DayState {
	if s.LastUpdated != today {
		return DayState{}
	}
	button, ok := ParseButton(s.LastChange)
	if !ok {
		return DayState{}
	}
	return DayState{Button: button, Date: s.LastUpdated}
}

type TimetableEntry struct {
	gorm.Model
	UserID uint   `json:"-" gorm:"uniqueIndex:idx_owner_day"`
	Day    string `json:"day" gorm:"uniqueIndex:idx_owner_day"`

	Subjects Subjects `json:"subjects" gorm:"many2many:timetable_subjects"`
}
