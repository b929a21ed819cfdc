// Package httpapi exposes the tracker to a local web front end as JSON.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/abhisek/bibletrack/internal/nested"
	"github.com/abhisek/bibletrack/internal/refdata"
	"github.com/abhisek/bibletrack/internal/state"
	"github.com/abhisek/bibletrack/internal/tracker"
	"github.com/abhisek/bibletrack/internal/views"
)

// Server serves the tracker API.
type Server struct {
	svc *tracker.Service
	log hclog.Logger
}

// New creates a Server over svc.
func New(svc *tracker.Service, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Server{svc: svc, log: logger}
}

// Handler returns the router with every route registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/share", s.handleShare)

		r.Route("/books/{book}", func(r chi.Router) {
			r.Get("/", s.handleBook)
			r.Post("/chapters/{chapter}/toggle", s.handleToggleChapter)
			r.Post("/complete", s.bookAction(s.svc.BulkCompleteBook))
			r.Post("/unread", s.bookAction(s.svc.BulkUnreadBook))
			r.Post("/uncount", s.bookAction(s.svc.DecreaseCompletionsForBook))
			r.Post("/reset", s.bookAction(s.svc.ResetChapters))
		})

		r.Post("/conclude", s.handleConclude)
		r.Post("/puzzle/dismiss", s.handleDismissPuzzle)

		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", s.handleAddProfile)
			r.Delete("/{id}", s.handleRemoveProfile)
			r.Post("/{id}/activate", s.handleSwitchProfile)
			r.Put("/{id}/name", s.handleRenameProfile)
			r.Post("/{id}/puzzle", s.handleChangePuzzle)
		})

		r.Put("/preferences/{name}", s.handleSetPreference)
		r.Put("/private/{name}", s.handleSetPrivate)
		r.Put("/version", s.handleChangeVersion)
		r.Post("/offline-open", s.handleOfflineOpen)
		r.Put("/tab", s.handleSelectTab)
	})
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeError maps tracker errors to status codes. Anything unexpected is
// logged and reported as a generic failure.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var valueErr *nested.ValueError
	switch {
	case errors.Is(err, tracker.ErrUnknownBook),
		errors.Is(err, tracker.ErrUnknownChapter),
		errors.Is(err, tracker.ErrUnknownProfile):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tracker.ErrLastProfile):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, tracker.ErrEmptyName),
		errors.Is(err, tracker.ErrUnknownPreference),
		errors.As(err, &valueErr):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, refdata.ErrUnavailable):
		writeMessage(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.log.Error("request failed", "method", r.Method, "route", chi.RouteContext(r.Context()).RoutePattern(),
			"request_id", middleware.GetReqID(r.Context()), "error", err)
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
	}
}

// decode reads a JSON body into v, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) writeSummary(w http.ResponseWriter, code int) {
	var sum views.Summary
	s.svc.Read(func(st *state.State) { sum = views.Summarize(st, s.svc.Canon()) })
	writeJSON(w, code, sum)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writeSummary(w, http.StatusOK)
}

type shareResponse struct {
	Key     string             `json:"key"`
	Summary views.ShareSummary `json:"summary"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var sum views.ShareSummary
	s.svc.Read(func(st *state.State) {
		if p := st.Active(); p != nil {
			sum = views.Share(st, s.svc.Canon(), p)
		}
	})
	key, err := sum.Key()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{Key: key, Summary: sum})
}

type chapterView struct {
	Chapter int    `json:"chapter"`
	Title   string `json:"title,omitempty"`
	Read    bool   `json:"read"`
}

type bookResponse struct {
	views.BookSummary
	Chapters []chapterView `json:"chapters"`
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	canon := s.svc.Canon()
	id, ok := canon.Resolve(chi.URLParam(r, "book"))
	if !ok {
		s.writeError(w, r, tracker.ErrUnknownBook)
		return
	}

	var resp bookResponse
	found := false
	s.svc.Read(func(st *state.State) {
		p := st.Active()
		if p == nil {
			return
		}
		found = true
		resp.BookSummary = views.BookSummary{
			ID:          id,
			Name:        views.BookName(st, canon, id),
			Done:        p.DoneBooks[id],
			Completions: p.CompletionsBooks[id],
			Progress:    views.BookProgress(p, id),
			Badge:       views.BookBadge(st, p, id),
		}
		for ch := 1; ch <= canon.Chapters(id); ch++ {
			resp.Chapters = append(resp.Chapters, chapterView{
				Chapter: ch,
				Title:   st.Tmp.ChapterTitles[id][ch],
				Read:    p.DoneChapters[id][ch],
			})
		}
	})
	if !found {
		s.writeError(w, r, tracker.ErrUnknownProfile)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleChapter(w http.ResponseWriter, r *http.Request) {
	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil {
		s.writeError(w, r, tracker.ErrUnknownChapter)
		return
	}
	if err := s.svc.ToggleChapterRead(chi.URLParam(r, "book"), chapter); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}

func (s *Server) bookAction(action func(book string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := action(chi.URLParam(r, "book")); err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeSummary(w, http.StatusOK)
	}
}

func (s *Server) handleConclude(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResetChapters bool `json:"reset_chapters"`
	}
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if err := s.svc.ConcludeBibleCompletion(req.ResetChapters); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}

func (s *Server) handleDismissPuzzle(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DismissCompletedPuzzle(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}
