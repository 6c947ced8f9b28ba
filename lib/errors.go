package lib

import "errors"

// Domain errors, mapped onto HTTP statuses by the app package.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("account with given email already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrSubjectNotFound  = errors.New("subject not found")
	ErrSubjectNotOwned  = errors.New("one or more subjects are invalid or not owned by the user")
	ErrDuplicateSubject = errors.New("subject already exists")

	ErrDuplicateSelection  = errors.New("duplicate subjects in selection")
	ErrUnknownDay          = errors.New("unknown weekday")
	ErrTimetableNotDefined = errors.New("timetable not defined for the specified day")

	ErrUnknownButton = errors.New("unknown toggle button")
	ErrStaleToggle   = errors.New("subject was updated concurrently, reload and retry")
)
