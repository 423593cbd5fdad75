package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/export"
	"github.com/sentiscope/sentiscope/pkg/metrics"
)

// drillDownLimit caps posts and comments returned for a day
const drillDownLimit = 50

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type responseMeta struct {
	LastUpdated string `json:"lastUpdated"`
	CacheHit    bool   `json:"cacheHit"`
}

type rangeData struct {
	Subreddit  string                  `json:"subreddit"`
	TimeRange  domain.TimeRange        `json:"timeRange"`
	Aggregates []domain.DailyAggregate `json:"aggregates"`
	Summary    domain.DashboardSummary `json:"summary"`
}

type rangeResponse struct {
	Success bool         `json:"success"`
	Data    rangeData    `json:"data"`
	Meta    responseMeta `json:"meta"`
}

// rangePayload is what the response cache keeps per (subreddit, range, end day)
type rangePayload struct {
	data        rangeData
	lastUpdated string
}

type drillDownResponse struct {
	Success bool             `json:"success"`
	Data    domain.DrillDown `json:"data"`
}

type samplesData struct {
	Subreddit  string          `json:"subreddit"`
	Date       string          `json:"date"`
	Samples    []domain.Sample `json:"samples"`
	TotalCount int             `json:"totalCount"`
}

type samplesResponse struct {
	Success bool         `json:"success"`
	Data    samplesData  `json:"data"`
	Meta    responseMeta `json:"meta"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":     "ok",
		"version":    s.version,
		"time":       time.Now().UTC(),
		"subreddits": s.agg.Subreddits(),
	}
	if count, err := s.store.CountItems(r.Context()); err == nil {
		status["items"] = count
	}
	if last, err := s.store.GetSetting(r.Context(), domain.SettingLastPoll); err == nil && last != "" {
		status["lastPoll"] = last
	}
	renderJSON(w, r, http.StatusOK, status)
}

// aggregateHandler serves the range series and summary for a subreddit, cached until data changes
func (s *Server) aggregateHandler(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subredditParam(r, false)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	tr, err := rangeParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	start, end := tr.Window(s.now())
	key := sub + "|" + string(tr) + "|" + end
	if p, ok := s.cache.Get(key); ok {
		metrics.RecordCacheLookup(true)
		renderJSON(w, r, http.StatusOK, rangeResponse{Success: true, Data: p.data,
			Meta: responseMeta{LastUpdated: p.lastUpdated, CacheHit: true}})
		return
	}
	metrics.RecordCacheLookup(false)

	aggs, err := s.agg.GetRange(r.Context(), sub, start, end)
	if err != nil {
		log.Printf("[ERROR] failed to get range %s %s..%s: %v", sub, start, end, err)
		renderError(w, r, errors.New("failed to fetch sentiment data"), http.StatusInternalServerError)
		return
	}
	if aggs == nil {
		aggs = []domain.DailyAggregate{}
	}

	p := rangePayload{
		data:        rangeData{Subreddit: sub, TimeRange: tr, Aggregates: aggs, Summary: s.agg.Summarize(aggs)},
		lastUpdated: s.lastUpdated(r.Context()),
	}
	s.cache.Add(key, p)
	renderJSON(w, r, http.StatusOK, rangeResponse{Success: true, Data: p.data, Meta: responseMeta{LastUpdated: p.lastUpdated}})
}

// drillDownHandler returns the top posts and comments by score for one day
func (s *Server) drillDownHandler(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r, true)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	sub, err := s.subredditParam(r, true)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	posts, err := s.topItems(r.Context(), sub, date, domain.ItemPost)
	if err != nil {
		log.Printf("[ERROR] failed to get top posts for %s/%s: %v", sub, date, err)
		renderError(w, r, errors.New("failed to fetch drill-down data"), http.StatusInternalServerError)
		return
	}
	comments, err := s.topItems(r.Context(), sub, date, domain.ItemComment)
	if err != nil {
		log.Printf("[ERROR] failed to get top comments for %s/%s: %v", sub, date, err)
		renderError(w, r, errors.New("failed to fetch drill-down data"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=300, stale-while-revalidate=600")
	renderJSON(w, r, http.StatusOK, drillDownResponse{Success: true,
		Data: domain.DrillDown{Date: date, Subreddit: sub, Posts: posts, Comments: comments}})
}

// samplesHandler returns content previews of the items scored on a day
func (s *Server) samplesHandler(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r, false)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	sub, err := s.subredditParam(r, false)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	samples := []domain.Sample{}
	for _, name := range s.expand(sub) {
		items, err := s.store.GetScoredItems(r.Context(), name, date)
		if err != nil {
			log.Printf("[ERROR] failed to get scored items for %s/%s: %v", name, date, err)
			renderError(w, r, errors.New("failed to fetch sample data"), http.StatusInternalServerError)
			return
		}
		for _, item := range items {
			samples = append(samples, domain.NewSample(item))
		}
	}

	renderJSON(w, r, http.StatusOK, samplesResponse{
		Success: true,
		Data:    samplesData{Subreddit: sub, Date: date, Samples: samples, TotalCount: len(samples)},
		Meta:    responseMeta{LastUpdated: s.now().UTC().Format(time.RFC3339)},
	})
}

// exportCSVHandler streams the range series of a subreddit as a csv attachment
func (s *Server) exportCSVHandler(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subredditParam(r, false)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	tr, err := rangeParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	start, end := tr.Window(s.now())
	aggs, err := s.agg.GetRange(r.Context(), sub, start, end)
	if err != nil {
		log.Printf("[ERROR] failed to get range for export %s %s..%s: %v", sub, start, end, err)
		renderError(w, r, errors.New("failed to export data"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(sub, tr)))
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, aggs); err != nil {
		log.Printf("[WARN] failed to write csv export: %v", err)
	}
}

// topItems returns up to drillDownLimit items of a type, merged across subreddits for "all"
func (s *Server) topItems(ctx context.Context, sub, date string, itemType domain.ItemType) ([]domain.ScoredItem, error) {
	res := []domain.ScoredItem{}
	for _, name := range s.expand(sub) {
		items, err := s.store.GetTopItems(ctx, name, date, itemType, drillDownLimit)
		if err != nil {
			return nil, err
		}
		res = append(res, items...)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Score > res[j].Score })
	if len(res) > drillDownLimit {
		res = res[:drillDownLimit]
	}
	return res, nil
}

// expand turns the "all" sentinel into the tracked subreddits
func (s *Server) expand(sub string) []string {
	if sub == domain.SubredditAll {
		return s.agg.Subreddits()
	}
	return []string{sub}
}

// lastUpdated returns the time aggregates were last written, or now if never
func (s *Server) lastUpdated(ctx context.Context) string {
	if v, err := s.store.GetSetting(ctx, domain.SettingLastUpdated); err == nil && v != "" {
		return v
	}
	return s.now().UTC().Format(time.RFC3339)
}

// subredditParam reads the subreddit query parameter, "all" when missing and not required
func (s *Server) subredditParam(r *http.Request, required bool) (string, error) {
	sub := r.URL.Query().Get("subreddit")
	if sub == "" {
		if required {
			return "", errors.New("missing required parameter: subreddit")
		}
		return domain.SubredditAll, nil
	}
	if !s.agg.IsTracked(sub) {
		return "", fmt.Errorf("unknown subreddit %q", sub)
	}
	return sub, nil
}

// dateParam reads the date query parameter, today when missing and not required
func (s *Server) dateParam(r *http.Request, required bool) (string, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		if required {
			return "", errors.New("missing required parameter: date")
		}
		return domain.DayOfTime(s.now()), nil
	}
	if _, err := domain.ParseDay(date); err != nil {
		return "", err
	}
	return date, nil
}

// rangeParam reads timeRange, falling back to range, default 30d
func rangeParam(r *http.Request) (domain.TimeRange, error) {
	v := r.URL.Query().Get("timeRange")
	if v == "" {
		v = r.URL.Query().Get("range")
	}
	return domain.ParseTimeRange(v)
}
