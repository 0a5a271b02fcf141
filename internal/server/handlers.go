package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/tafuta/internal/models"
	"github.com/hyperjump/tafuta/internal/session"
	"github.com/hyperjump/tafuta/internal/storage"
	"go.uber.org/zap"
)

const maxItemsBody = 32 << 20

type ctxKey struct{}

// withSession resolves {id} to a session or answers 404.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(chi.URLParam(r, "id"))
		if errors.Is(err, session.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "session not found")
			return
		}
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(ctxKey{}).(*session.Session)
}

type sessionResponse struct {
	ID      string               `json:"id"`
	Filters models.SearchFilters `json:"filters"`
}

type queryRequest struct {
	Query string `json:"query" validate:"max=500"`
}

type searchRequest struct {
	Query    string `json:"query" validate:"max=500"`
	Remember bool   `json:"remember"`
}

type resultsResponse struct {
	Query     string                `json:"query"`
	Searching bool                  `json:"searching"`
	Count     int                   `json:"count"`
	Results   []models.SearchResult `json:"results"`
}

func (s *Server) results(sess *session.Session) resultsResponse {
	results := sess.Results()
	return resultsResponse{
		Query:     sess.Query(),
		Searching: sess.IsSearching(),
		Count:     len(results),
		Results:   results,
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	s.respondJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID(), Filters: sess.Filters()})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(id); err != nil {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

func (s *Server) handleSetQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := sessionFrom(r)
	sess.SetQuery(req.Query)
	s.respondJSON(w, http.StatusOK, map[string]string{"query": sess.Query()})
}

func (s *Server) handlePerformSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := sessionFrom(r)
	sess.SetQuery(req.Query)
	if err := sess.PerformSearch(r.Context(), req.Query); err != nil {
		s.logger.Debug("search aborted", zap.String("session", sess.ID()), zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if req.Remember {
		sess.AddRecentSearch(req.Query)
	}
	s.respondJSON(w, http.StatusOK, s.results(sess))
}

func (s *Server) handleClearSearch(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.ClearSearch()
	s.respondJSON(w, http.StatusOK, s.results(sess))
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.results(sessionFrom(r)))
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string][]string{"recent": sessionFrom(r).RecentSearches()})
}

func (s *Server) handleAddRecent(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := sessionFrom(r)
	sess.AddRecentSearch(req.Query)
	s.respondJSON(w, http.StatusOK, map[string][]string{"recent": sess.RecentSearches()})
}

func (s *Server) handleGetFilters(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, sessionFrom(r).Filters())
}

func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if !s.decode(w, r, &req) {
		return
	}
	f, err := req.toFilters()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess := sessionFrom(r)
	sess.SetFilters(f)
	s.respondJSON(w, http.StatusOK, sess.Filters())
}

func (s *Server) handleApplyFilters(w http.ResponseWriter, r *http.Request) {
	t, err := models.ParseEntityType(chi.URLParam(r, "type"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxItemsBody))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	items, err := models.DecodeItemsJSON(t, body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	filtered := sessionFrom(r).ApplyFilters(items)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"type":  t,
		"count": len(filtered),
		"items": filtered,
	})
}

type statelessSearchRequest struct {
	Query   string          `json:"query" validate:"required,max=500"`
	Filters *filtersRequest `json:"filters,omitempty"`
}

// handleSearch runs one search outside any session.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req statelessSearchRequest
	if !s.decode(w, r, &req) {
		return
	}
	filters := models.DefaultFilters()
	if req.Filters != nil {
		f, err := req.Filters.toFilters()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filters = f
	}
	s.logger.Debug("search request", zap.String("query", req.Query))
	results, err := s.engine.Search(r.Context(), req.Query, filters)
	if err != nil {
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, resultsResponse{Query: req.Query, Count: len(results), Results: results})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sourceStatus struct {
	Name string            `json:"name"`
	Type models.EntityType `json:"type"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := map[string]any{}

	var sources []sourceStatus
	for _, src := range s.engine.Sources() {
		sources = append(sources, sourceStatus{Name: src.Name(), Type: src.Type()})
	}
	resp["sources"] = sources
	resp["sessions"] = s.sessions.Len()

	if s.storage != nil {
		counts := map[models.EntityType]int64{}
		for _, t := range []models.EntityType{models.EntityCustomer, models.EntityProduct, models.EntityOrder} {
			n, err := s.storage.Count(ctx, t)
			if err != nil {
				s.logger.Error("status: count failed", zap.String("type", string(t)), zap.Error(err))
				s.respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			counts[t] = n
		}
		resp["counts"] = counts
	}

	if s.config != nil {
		resp["config"] = map[string]any{
			"database_path":          s.config.Storage.DatabasePath,
			"history_size":           s.config.Search.HistorySize,
			"max_concurrent_sources": s.config.Search.MaxConcurrentSources,
			"watch_enabled":          s.config.Watch.Enabled,
		}
		if diskBytes, err := storage.DiskUsageBytes(storage.DatabaseFiles(s.config.Storage.DatabasePath)...); err == nil {
			resp["disk_usage_bytes"] = diskBytes
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body into v and validates it, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.respondError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
