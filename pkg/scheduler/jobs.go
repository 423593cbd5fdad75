package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/sentiscope/sentiscope/pkg/aggregate"
)

// JobState is the lifecycle state of a background job
type JobState string

// job states
const (
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// Job is a snapshot of a background job
type Job struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	State      JobState   `json:"state"`
	Completed  int        `json:"completed"`
	Total      int        `json:"total"`
	Error      string     `json:"error,omitempty"`
	Result     any        `json:"result,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// JobFunc is the body of a job, it reports progress through the given func
type JobFunc func(ctx context.Context, progress aggregate.ProgressFunc) (any, error)

// Jobs runs long operations in the background and keeps their progress for polling
type Jobs struct {
	ctx   context.Context
	limit int

	mu    sync.RWMutex
	jobs  map[string]*Job
	order []string
	wg    sync.WaitGroup
}

// NewJobs makes a tracker. Jobs run under ctx, so canceling it stops them.
// At most limit finished jobs are remembered.
func NewJobs(ctx context.Context, limit int) *Jobs {
	if limit <= 0 {
		limit = 100
	}
	return &Jobs{ctx: ctx, limit: limit, jobs: map[string]*Job{}}
}

// Start launches fn in the background and returns the initial snapshot
func (j *Jobs) Start(kind string, fn JobFunc) Job {
	job := &Job{ID: uuid.NewString(), Kind: kind, State: JobRunning, StartedAt: time.Now().UTC()}

	j.mu.Lock()
	j.jobs[job.ID] = job
	j.order = append(j.order, job.ID)
	j.prune()
	snapshot := *job
	j.mu.Unlock()

	lgr.Printf("[INFO] job %s (%s) started", job.ID, kind)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		res, err := fn(j.ctx, func(completed, total int) { j.progress(job.ID, completed, total) })
		j.finish(job.ID, res, err)
	}()
	return snapshot
}

// Get returns a snapshot of the job
func (j *Jobs) Get(id string) (Job, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	job, ok := j.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// Wait blocks until all started jobs are finished
func (j *Jobs) Wait() {
	j.wg.Wait()
}

// progress never moves completed backwards
func (j *Jobs) progress(id string, completed, total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	job, ok := j.jobs[id]
	if !ok {
		return
	}
	if completed > job.Completed {
		job.Completed = completed
	}
	job.Total = total
}

func (j *Jobs) finish(id string, res any, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	job, ok := j.jobs[id]
	if !ok {
		return
	}
	now := time.Now().UTC()
	job.FinishedAt = &now
	job.Result = res
	job.State = JobDone
	if err != nil {
		job.State = JobFailed
		job.Error = err.Error()
		lgr.Printf("[WARN] job %s (%s) failed: %v", id, job.Kind, err)
		return
	}
	lgr.Printf("[INFO] job %s (%s) done in %v", id, job.Kind, now.Sub(job.StartedAt).Round(time.Millisecond))
}

// prune drops the oldest finished jobs above the limit, caller holds the lock
func (j *Jobs) prune() {
	if len(j.order) <= j.limit {
		return
	}
	kept := j.order[:0]
	excess := len(j.order) - j.limit
	for _, id := range j.order {
		if excess > 0 && j.jobs[id].State != JobRunning {
			delete(j.jobs, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	j.order = kept
}
