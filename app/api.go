package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/devanshm/bunkmate/config"
	"github.com/devanshm/bunkmate/lib"
	libclock "github.com/devanshm/bunkmate/lib/clock"
	"github.com/devanshm/bunkmate/lib/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, svc *lib.Service, clk libclock.Clock) *http.Server {
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	srv := &http.Server{Addr: addr, Handler: Router(cfg, log, svc, clk)}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go srv.ListenAndServe()
			return nil
		},
		OnStop: srv.Shutdown,
	})

	return srv
}

func Router(cfg *config.Config, log *zap.Logger, svc *lib.Service, clk libclock.Clock) http.Handler {
	ctrl := &controller{log, svc, clk}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to attendance tracker!"))
	})

	r.Post("/register", ctrl.register)
	r.Post("/login", ctrl.login)

	r.Route("/api", func(r chi.Router) {
		r.Use(authenticate(cfg))

		r.Get("/me", ctrl.me)
		r.Get("/today", ctrl.today)

		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", ctrl.listSubjects)
			r.Post("/", ctrl.declareSubjects)
			r.Put("/", ctrl.replaceSubjects)
			r.Get("/{subject_id}", ctrl.getSubject)
			r.Put("/{subject_id}", ctrl.editSubject)
			r.Post("/{subject_id}/toggle", ctrl.toggleSubject)
		})

		r.Route("/timetable", func(r chi.Router) {
			r.Put("/", ctrl.assignDay)
			r.Get("/{day}", ctrl.subjectsDueOn)
		})
	})

	return r
}

type controller struct {
	log   *zap.Logger
	svc   *lib.Service
	clock libclock.Clock
}

func (ctrl *controller) reject(w http.ResponseWriter, status int, err error) {
	if err != nil {
		http.Error(w, err.Error(), status)
	} else {
		w.WriteHeader(status)
	}
}

func (ctrl *controller) resolve(w http.ResponseWriter, status int, body any) {
	if b, err := json.Marshal(body); err != nil {
		ctrl.reject(w, http.StatusInternalServerError, err)
		ctrl.log.Sugar().Errorw("Request failed", "error", err)
		return
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(b)
	}
}

// fail maps domain errors onto the HTTP taxonomy: validation 400,
// ownership 403, missing resources 404, duplicate registration 409,
// everything else a generic 500.
func (ctrl *controller) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lib.ErrInvalidCredentials),
		errors.Is(err, lib.ErrDuplicateSelection),
		errors.Is(err, lib.ErrUnknownDay),
		errors.Is(err, lib.ErrUnknownButton):
		ctrl.reject(w, http.StatusBadRequest, err)
	case errors.Is(err, lib.ErrSubjectNotOwned):
		ctrl.reject(w, http.StatusForbidden, err)
	case errors.Is(err, lib.ErrSubjectNotFound),
		errors.Is(err, lib.ErrUserNotFound),
		errors.Is(err, lib.ErrTimetableNotDefined):
		ctrl.reject(w, http.StatusNotFound, err)
	case errors.Is(err, lib.ErrEmailTaken),
		errors.Is(err, lib.ErrDuplicateSubject),
		errors.Is(err, lib.ErrStaleToggle):
		ctrl.reject(w, http.StatusConflict, err)
	default:
		ctrl.log.Sugar().Errorw("Request failed", "error", err)
		ctrl.reject(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

func (ctrl *controller) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctrl.reject(w, http.StatusBadRequest, err)
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		ctrl.reject(w, http.StatusBadRequest, errors.New("firstName, lastName, email and password are required"))
		return
	}

	user, err := ctrl.svc.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusCreated, UserView{}.From(user))
}

func (ctrl *controller) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctrl.reject(w, http.StatusBadRequest, err)
		return
	}

	token, err := ctrl.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, map[string]string{"token": token})
}

func (ctrl *controller) me(w http.ResponseWriter, r *http.Request) {
	user, err := ctrl.svc.UserByID(r.Context(), requestUserID(r))
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, UserView{}.From(user))
}

// today resolves the clock's weekday against the caller's timetable. An
// undefined day is a normal outcome here, not an error: the client renders
// "set up your timetable" instead of a lecture list.
func (ctrl *controller) today(w http.ResponseWriter, r *http.Request) {
	day := libclock.Weekday(ctrl.clock)

	subs, err := ctrl.svc.SubjectsDueOn(r.Context(), requestUserID(r), day)
	if errors.Is(err, lib.ErrTimetableNotDefined) {
		ctrl.resolve(w, http.StatusOK, DayView{Day: day, Defined: false, Subjects: []SubjectView{}})
		return
	} else if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, DayView{Day: day, Defined: true, Subjects: subjectViews(subs)})
}

func (ctrl *controller) listSubjects(w http.ResponseWriter, r *http.Request) {
	subs, err := ctrl.svc.ListSubjects(r.Context(), requestUserID(r))
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, subjectViews(subs))
}

func (ctrl *controller) getSubject(w http.ResponseWriter, r *http.Request) {
	// Reuse the list query scoped by owner; a miss is a 404.
	subs, err := ctrl.svc.ListSubjects(r.Context(), requestUserID(r))
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	id := parseID(chi.URLParam(r, "subject_id"))
	for _, subj := range subs {
		if subj.ID == id {
			ctrl.resolve(w, http.StatusOK, SubjectView{}.From(subj))
			return
		}
	}
	ctrl.fail(w, lib.ErrSubjectNotFound)
}

func (ctrl *controller) declareSubjects(w http.ResponseWriter, r *http.Request) {
	names, err := decodeNames(r)
	if err != nil {
		ctrl.reject(w, http.StatusBadRequest, err)
		return
	}

	subs, err := ctrl.svc.DeclareSubjects(r.Context(), requestUserID(r), names)
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusCreated, subjectViews(subs))
}

func (ctrl *controller) replaceSubjects(w http.ResponseWriter, r *http.Request) {
	names, err := decodeNames(r)
	if err != nil {
		ctrl.reject(w, http.StatusBadRequest, err)
		return
	}

	subs, err := ctrl.svc.ReplaceSubjects(r.Context(), requestUserID(r), names)
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, subjectViews(subs))
}

func (ctrl *controller) editSubject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Attended *int `json:"attended"`
		Missed   *int `json:"missed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctrl.reject(w, http.StatusBadRequest, err)
		return
	}
	if req.Attended == nil || req.Missed == nil {
		ctrl.reject(w, http.StatusBadRequest, errors.New("attended and missed are required"))
		return
	}
	if *req.Attended < 0 || *req.Missed < 0 {
		ctrl.reject(w, http.StatusBadRequest, errors.New("attended and missed must be non-negative"))
		return
	}

	subj, err := ctrl.svc.EditSubject(
		r.Context(), requestUserID(r), parseID(chi.URLParam(r, "subject_id")),
		*req.Attended, *req.Missed,
	)
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, SubjectView{}.From(*subj))
}

func (ctrl *controller) toggleSubject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Button string `json:"button"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctrl.reject(w, http.StatusBadRequest, err)
		return
	}

	subj, err := ctrl.svc.ToggleAttendance(
		r.Context(), requestUserID(r), parseID(chi.URLParam(r, "subject_id")),
		models.Button(req.Button),
	)
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, SubjectView{}.From(*subj))
}

func (ctrl *controller) assignDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day      string `json:"day"`
		Subjects []uint `json:"subjects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctrl.reject(w, http.StatusBadRequest, err)
		return
	}

	entry, err := ctrl.svc.AssignDay(r.Context(), requestUserID(r), req.Day, req.Subjects)
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, entry)
}

func (ctrl *controller) subjectsDueOn(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")

	subs, err := ctrl.svc.SubjectsDueOn(r.Context(), requestUserID(r), day)
	if err != nil {
		ctrl.fail(w, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, subjectViews(subs))
}

func decodeNames(r *http.Request) ([]string, error) {
	var req struct {
		Subjects []string `json:"subjects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	for _, name := range req.Subjects {
		if name == "" {
			return nil, errors.New("subject names must be non-empty")
		}
	}
	return req.Subjects, nil
}

func parseID(s string) uint {
	u, _ := strconv.ParseUint(s, 10, 64)
	return uint(u)
}
