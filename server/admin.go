package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sentiscope/sentiscope/pkg/aggregate"
	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/scheduler"
)

const (
	defaultBackfillDays = 90
	defaultSampleDays   = 30
	maxDays             = 365
)

type jobResponse struct {
	Success bool          `json:"success"`
	Data    scheduler.Job `json:"data"`
}

type backfillRequest struct {
	DaysBack int `json:"daysBack"`
}

type recomputeRequest struct {
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Subreddits []string `json:"subreddits"`
}

type sampleRequest struct {
	Days int `json:"days"`
}

type sampleResult struct {
	Inserted  int                       `json:"inserted"`
	Recompute aggregate.RecomputeResult `json:"recompute"`
}

// adminAuth requires "Authorization: Bearer <token>" when an admin token is configured
func (s *Server) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.config.GetAdminToken()
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := r.Header.Get("Authorization")
		if subtle.ConstantTimeCompare([]byte(got), []byte("Bearer "+token)) != 1 {
			renderError(w, r, errors.New("unauthorized"), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// pollHandler starts an on-demand poll of all tracked subreddits
func (s *Server) pollHandler(w http.ResponseWriter, r *http.Request) {
	if s.ingestor == nil {
		renderError(w, r, errors.New("ingestion is not configured"), http.StatusServiceUnavailable)
		return
	}
	job := s.jobs.Start("poll", func(ctx context.Context, _ aggregate.ProgressFunc) (any, error) {
		defer s.InvalidateCache()
		return s.ingestor.Poll(ctx)
	})
	renderJSON(w, r, http.StatusAccepted, jobResponse{Success: true, Data: job})
}

// backfillHandler starts a backfill of daysBack days, 90 when not given
func (s *Server) backfillHandler(w http.ResponseWriter, r *http.Request) {
	if s.ingestor == nil {
		renderError(w, r, errors.New("ingestion is not configured"), http.StatusServiceUnavailable)
		return
	}
	var req backfillRequest
	if err := decodeBody(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.DaysBack == 0 {
		req.DaysBack = defaultBackfillDays
	}
	if req.DaysBack < 0 || req.DaysBack > maxDays {
		renderError(w, r, fmt.Errorf("daysBack must be within 1..%d", maxDays), http.StatusBadRequest)
		return
	}

	job := s.jobs.Start("backfill", func(ctx context.Context, progress aggregate.ProgressFunc) (any, error) {
		defer s.InvalidateCache()
		return s.ingestor.Backfill(ctx, req.DaysBack, progress)
	})
	renderJSON(w, r, http.StatusAccepted, jobResponse{Success: true, Data: job})
}

// recomputeHandler validates the window and starts recomputing it in the background
func (s *Server) recomputeHandler(w http.ResponseWriter, r *http.Request) {
	var req recomputeRequest
	if err := decodeBody(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	subs, err := s.validateRecompute(req)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	job := s.jobs.Start("recompute", func(ctx context.Context, progress aggregate.ProgressFunc) (any, error) {
		defer s.InvalidateCache()
		res, err := s.agg.RecomputeRange(ctx, req.Start, req.End, subs, progress)
		if err != nil {
			return res, err
		}
		if err := s.store.SetSetting(ctx, domain.SettingLastUpdated, s.now().UTC().Format(time.RFC3339)); err != nil {
			log.Printf("[WARN] failed to mark aggregates update: %v", err)
		}
		return res, nil
	})
	renderJSON(w, r, http.StatusAccepted, jobResponse{Success: true, Data: job})
}

// jobHandler returns the progress snapshot of a job
func (s *Server) jobHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(r.PathValue("id"))
	if !ok {
		renderError(w, r, errors.New("job not found"), http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, jobResponse{Success: true, Data: job})
}

// clearHandler drops all items, aggregates and cached scores
func (s *Server) clearHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(r.Context()); err != nil {
		log.Printf("[ERROR] failed to clear data: %v", err)
		renderError(w, r, errors.New("failed to clear data"), http.StatusInternalServerError)
		return
	}
	s.InvalidateCache()
	log.Printf("[INFO] all data cleared")
	renderJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

// sampleDataHandler fills the store with synthetic data for the last days
func (s *Server) sampleDataHandler(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if err := decodeBody(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.Days == 0 {
		req.Days = defaultSampleDays
	}
	if req.Days < 0 || req.Days > maxDays {
		renderError(w, r, fmt.Errorf("days must be within 1..%d", maxDays), http.StatusBadRequest)
		return
	}

	now := s.now()
	inserted, rec, err := scheduler.SampleData(r.Context(), s.store, s.agg, req.Days, now, uint64(now.UnixNano())) //nolint:gosec // seed only
	s.InvalidateCache()
	if err != nil {
		log.Printf("[ERROR] failed to generate sample data: %v", err)
		renderError(w, r, errors.New("failed to generate sample data"), http.StatusInternalServerError)
		return
	}
	if err := s.store.SetSetting(r.Context(), domain.SettingLastUpdated, now.UTC().Format(time.RFC3339)); err != nil {
		log.Printf("[WARN] failed to mark aggregates update: %v", err)
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"success": true, "data": sampleResult{Inserted: inserted, Recompute: rec}})
}

// validateRecompute checks dates and subreddits, returning the subreddits to recompute.
// nil means all tracked.
func (s *Server) validateRecompute(req recomputeRequest) ([]string, error) {
	if req.Start == "" || req.End == "" {
		return nil, errors.New("start and end are required")
	}
	start, err := domain.ParseDay(req.Start)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDay(req.End)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end %s is before start %s", req.End, req.Start)
	}
	if end.Sub(start) > maxDays*24*time.Hour {
		return nil, fmt.Errorf("range can't exceed %d days", maxDays)
	}

	var subs []string
	for _, sub := range req.Subreddits {
		if sub == domain.SubredditAll {
			return nil, nil
		}
		if !s.agg.IsTracked(sub) {
			return nil, fmt.Errorf("unknown subreddit %q", sub)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// decodeBody reads an optional JSON body into v, an empty body leaves v untouched
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
