package app

import (
	"github.com/devanshm/bunkmate/lib/models"
)

// SubjectView is a subject record plus its derived metrics. Metrics are
// computed per response and never stored.
type SubjectView struct {
	models.Subject
	Metrics models.Metrics `json:"metrics"`
}

func (view SubjectView) From(entity models.Subject) SubjectView {
	return SubjectView{
		Subject: entity,
		Metrics: models.ComputeMetrics(entity.Attended, entity.Missed, entity.Total),
	}
}

// DayView is the daily home payload: which weekday the server considers
// "today", and the subjects due on it. Defined distinguishes "no timetable
// set up for this day" from "set up with zero subjects".
type DayView struct {
	Day      string        `json:"day"`
	Defined  bool          `json:"defined"`
	Subjects []SubjectView `json:"subjects"`
}

type UserView struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (view UserView) From(entity *models.User) UserView {
	return UserView{
		ID:        entity.ID,
		FirstName: entity.FirstName,
		LastName:  entity.LastName,
		Email:     entity.Email,
	}
}

func subjectViews(subs models.Subjects) []SubjectView {
	out := make([]SubjectView, len(subs))
	for i, s := range subs {
		out[i] = SubjectView{}.From(s)
	}
	return out
}
