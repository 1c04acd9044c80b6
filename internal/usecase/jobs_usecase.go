package usecase

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"shortlist-console/internal/domain/recruiting"
	"shortlist-console/internal/infrastructure/recruitingapi"
	"shortlist-console/internal/pkg/validation"
	"shortlist-console/internal/repository"
	"shortlist-console/internal/ws"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrJobNotFound  = errors.New("job not found")
	ErrUpstream     = errors.New("recruiting api request failed")
)

const (
	DefaultShortlistTarget = 5
	summaryConcurrency     = 4
)

type JobSummary struct {
	Job              recruiting.Job
	ApplicantCount   int
	ShortlistedCount int
	ApplicationLink  string
}

type JobDetail struct {
	Job             recruiting.Job
	Applicants      []recruiting.Applicant
	ApplicationLink string
}

type CreateJobInput struct {
	Title        string `validate:"required,max=200"`
	Description  string `validate:"required"`
	NumShortlist int    `validate:"min=1,max=1000"`
}

type JobsUsecase interface {
	ListJobs(ctx context.Context, companyID string) []recruiting.Job
	ListJobSummaries(ctx context.Context, companyID string) []JobSummary
	JobDetail(ctx context.Context, companyID, jobID string) (JobDetail, error)
	CreateJob(ctx context.Context, companyID string, in CreateJobInput) (string, error)
	ApplicationLink(companyID, jobID string) string
}

type Jobs struct {
	api           recruitingapi.Client
	cache         JobsCache
	cacheTTL      time.Duration
	notifier      ws.Notifier
	activity      *Activity
	publicBaseURL string
	logger        *log.Logger
}

func NewJobsUsecase(api recruitingapi.Client, cache JobsCache, cacheTTL time.Duration, notifier ws.Notifier, activity *Activity, publicBaseURL string, logger *log.Logger) *Jobs {
	if notifier == nil {
		notifier = ws.NoopNotifier{}
	}
	return &Jobs{
		api:           api,
		cache:         cache,
		cacheTTL:      cacheTTL,
		notifier:      notifier,
		activity:      activity,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		logger:        logger,
	}
}

// ListJobs returns the company's jobs, served from cache when possible. Empty
// results are not cached because a failed fetch looks the same.
func (u *Jobs) ListJobs(ctx context.Context, companyID string) []recruiting.Job {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return []recruiting.Job{}
	}

	key := JobsCacheKey(companyID)
	if u.cache != nil {
		var cached []recruiting.Job
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.logf("[Jobs] Cache HIT: %s", key)
			return cached
		}
		u.logf("[Jobs] Cache MISS: %s", key)
	}

	jobs := u.api.ListJobs(ctx, companyID)
	if len(jobs) > 0 && u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, jobs, u.cacheTTL); err != nil {
			u.logf("[Jobs] Cache SET failed key=%s err=%v", key, err)
		}
	}
	return jobs
}

// ListJobSummaries attaches applicant counts to each job. Applicant lists are
// fetched concurrently with a bounded number of requests in flight. Jobs whose
// counts could not be fetched before ctx ended are listed with zero counts.
func (u *Jobs) ListJobSummaries(ctx context.Context, companyID string) []JobSummary {
	jobs := u.ListJobs(ctx, companyID)
	out := make([]JobSummary, len(jobs))
	for i, job := range jobs {
		out[i] = JobSummary{Job: job, ApplicationLink: u.ApplicationLink(companyID, job.ID)}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			applicants := u.api.ListApplicants(gctx, job.ID)
			shortlisted := 0
			for _, a := range applicants {
				if a.Shortlisted {
					shortlisted++
				}
			}
			out[i].ApplicantCount = len(applicants)
			out[i].ShortlistedCount = shortlisted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		u.logf("[Jobs] summaries incomplete company_id=%s err=%v", companyID, err)
	}
	return out
}

// JobDetail fetches the job and its applicants in parallel and joins them.
// Applicants are ranked by score.
func (u *Jobs) JobDetail(ctx context.Context, companyID, jobID string) (JobDetail, error) {
	companyID = strings.TrimSpace(companyID)
	jobID = strings.TrimSpace(jobID)
	if companyID == "" || jobID == "" {
		return JobDetail{}, ErrInvalidInput
	}

	var job recruiting.Job
	var applicants []recruiting.Applicant

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		j, err := u.api.GetJob(gctx, companyID, jobID)
		if err != nil {
			return err
		}
		job = j
		return nil
	})
	g.Go(func() error {
		applicants = u.api.ListApplicants(gctx, jobID)
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, recruitingapi.ErrJobNotFound) {
			return JobDetail{}, ErrJobNotFound
		}
		return JobDetail{}, ErrUpstream
	}

	return JobDetail{
		Job:             job,
		Applicants:      recruiting.RankByScore(applicants),
		ApplicationLink: u.ApplicationLink(companyID, job.ID),
	}, nil
}

// CreateJob posts a new job and returns the shareable link from the API.
func (u *Jobs) CreateJob(ctx context.Context, companyID string, in CreateJobInput) (string, error) {
	companyID = strings.TrimSpace(companyID)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if companyID == "" {
		return "", ErrInvalidInput
	}
	if err := validation.Struct(in); err != nil {
		return "", ErrInvalidInput
	}

	link, ok := u.api.CreateJob(ctx, recruitingapi.NewJob{
		CompanyID:    companyID,
		Title:        in.Title,
		Description:  in.Description,
		NumShortlist: in.NumShortlist,
	})
	if !ok {
		return "", ErrUpstream
	}

	if u.cache != nil {
		if err := u.cache.Delete(ctx, JobsCacheKey(companyID)); err != nil {
			u.logf("[Jobs] Cache invalidate failed company_id=%s err=%v", companyID, err)
		}
	}
	u.notifier.Notify(companyID, ws.EventJobCreated, "", in.Title)
	u.activity.Record(ctx, companyID, repository.EventJobCreated, in.Title, link)
	u.logf("[Jobs] created company_id=%s title=%q", companyID, in.Title)
	return link, nil
}

// ApplicationLink builds the public application URL for a job. Without a
// configured base URL the link is relative.
func (u *Jobs) ApplicationLink(companyID, jobID string) string {
	return u.publicBaseURL + "/application?id=" + url.QueryEscape(jobID) + "&companyId=" + url.QueryEscape(companyID)
}

func (u *Jobs) logf(format string, args ...any) {
	if u != nil && u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

var _ JobsUsecase = (*Jobs)(nil)
