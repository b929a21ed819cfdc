package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAddProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if _, err := s.svc.AddProfile(req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusCreated)
}

func (s *Server) handleRemoveProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveProfile(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}

func (s *Server) handleSwitchProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SwitchProfile(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}

func (s *Server) handleRenameProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.svc.RenameProfile(chi.URLParam(r, "id"), req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}

func (s *Server) handleChangePuzzle(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.ChangePuzzle(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}

type valueRequest struct {
	Value json.RawMessage `json:"value"`
}

func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.svc.SetPreference(chi.URLParam(r, "name"), req.Value); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}

func (s *Server) handleSetPrivate(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.svc.SetPrivate(chi.URLParam(r, "name"), req.Value); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangeVersion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Version string `json:"version"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.svc.ChangeReadingVersion(r.Context(), req.Version); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSummary(w, http.StatusOK)
}

func (s *Server) handleOfflineOpen(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RecordOfflineOpen(); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tab int `json:"tab"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.svc.SetSelectedTab(req.Tab)
	w.WriteHeader(http.StatusNoContent)
}
