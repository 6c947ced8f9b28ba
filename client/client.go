// Package client is the sync layer a front end drives: it fetches the
// signed-in user's display name and the subjects due today, and pushes
// toggle and edit results back. The session token lives on the Client
// value and is passed per request; there is no ambient credential state.
package client

import (
	"context"
	"net/http"

	"github.com/carlmjohnson/requests"
)

type Client struct {
	base  string
	token string
	http  *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{base: baseURL, token: token, http: http.DefaultClient}
}

// NewSession logs in and returns a client holding the issued token.
func NewSession(ctx context.Context, baseURL, email, password string) (*Client, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := requests.URL(baseURL).
		Path("/login").
		BodyJSON(map[string]string{"email": email, "password": password}).
		ToJSON(&resp).
		Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return New(baseURL, resp.Token), nil
}

type UserRecord struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type MetricsRecord struct {
	Percentage   int  `json:"percentage"`
	AboveTarget  bool `json:"aboveTarget"`
	CanMiss      int  `json:"canMiss"`
	NeedToAttend int  `json:"needToAttend"`
}

type SubjectRecord struct {
	ID          uint          `json:"ID"`
	Name        string        `json:"name"`
	Attended    int           `json:"attended"`
	Missed      int           `json:"missed"`
	Total       int           `json:"total"`
	LastUpdated string        `json:"lastUpdatedDate"`
	LastChange  string        `json:"lastChange"`
	Metrics     MetricsRecord `json:"metrics"`
}

// DaySummary reports the lectures due on one weekday. Defined false means
// no timetable has been set up for the day, which the UI words differently
// from a day with zero lectures.
type DaySummary struct {
	Day      string          `json:"day"`
	Defined  bool            `json:"defined"`
	Subjects []SubjectRecord `json:"subjects"`
}

func (c *Client) Me(ctx context.Context) (*UserRecord, error) {
	user := &UserRecord{}
	err := c.get(ctx, "/api/me", user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Today fetches the server's view of the current day and its due subjects.
func (c *Client) Today(ctx context.Context) (*DaySummary, error) {
	day := &DaySummary{}
	err := c.get(ctx, "/api/today", day)
	if err != nil {
		return nil, err
	}
	return day, nil
}

// DueOn fetches the subjects assigned to an explicit weekday. A day with
// no timetable entry is not an error: it reports Defined false with zero
// lectures.
func (c *Client) DueOn(ctx context.Context, day string) (*DaySummary, error) {
	subs := []SubjectRecord{}
	err := requests.URL(c.base).
		Path("/api/timetable/" + day).
		Bearer(c.token).
		Client(c.http).
		ToJSON(&subs).
		Fetch(ctx)
	if requests.HasStatusErr(err, http.StatusNotFound) {
		return &DaySummary{Day: day, Defined: false, Subjects: []SubjectRecord{}}, nil
	} else if err != nil {
		return nil, err
	}
	return &DaySummary{Day: day, Defined: true, Subjects: subs}, nil
}

// Toggle presses one attendance button for a subject. On failure the
// server's current record is re-fetched so the caller's local state never
// drifts from what was actually persisted; the returned record is the
// server truth in both cases.
func (c *Client) Toggle(ctx context.Context, subjectID uint, button string) (*SubjectRecord, error) {
	subj := &SubjectRecord{}
	err := requests.URL(c.base).
		Pathf("/api/subjects/%d/toggle", subjectID).
		Bearer(c.token).
		Client(c.http).
		BodyJSON(map[string]string{"button": button}).
		ToJSON(subj).
		Fetch(ctx)
	if err != nil {
		if current, ferr := c.Subject(ctx, subjectID); ferr == nil {
			return current, err
		}
		return nil, err
	}
	return subj, nil
}

// Edit overwrites a subject's counters with a user-entered pair.
func (c *Client) Edit(ctx context.Context, subjectID uint, attended, missed int) (*SubjectRecord, error) {
	subj := &SubjectRecord{}
	err := requests.URL(c.base).
		Pathf("/api/subjects/%d", subjectID).
		Bearer(c.token).
		Client(c.http).
		Put().
		BodyJSON(map[string]int{"attended": attended, "missed": missed}).
		ToJSON(subj).
		Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return subj, nil
}

func (c *Client) Subject(ctx context.Context, subjectID uint) (*SubjectRecord, error) {
	subj := &SubjectRecord{}
	err := requests.URL(c.base).
		Pathf("/api/subjects/%d", subjectID).
		Bearer(c.token).
		Client(c.http).
		ToJSON(subj).
		Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return subj, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return requests.URL(c.base).
		Path(path).
		Bearer(c.token).
		Client(c.http).
		ToJSON(out).
		Fetch(ctx)
}
