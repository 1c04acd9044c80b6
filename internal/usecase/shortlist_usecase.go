package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"shortlist-console/internal/domain/recruiting"
	"shortlist-console/internal/infrastructure/recruitingapi"
)

type ShortlistView struct {
	Job        recruiting.Job
	Applicants []recruiting.Applicant
	Limit      int
}

type ShortlistUsecase interface {
	Shortlist(ctx context.Context, companyID, jobID string) (ShortlistView, error)
}

type Shortlist struct {
	api    recruitingapi.Client
	logger *log.Logger
}

func NewShortlistUsecase(api recruitingapi.Client, logger *log.Logger) *Shortlist {
	return &Shortlist{api: api, logger: logger}
}

// Shortlist loads the job and the server-side shortlist in parallel. At most
// the job's target count is shown, highest score first. A job without a
// target shows the whole shortlist.
func (u *Shortlist) Shortlist(ctx context.Context, companyID, jobID string) (ShortlistView, error) {
	companyID = strings.TrimSpace(companyID)
	jobID = strings.TrimSpace(jobID)
	if companyID == "" || jobID == "" {
		return ShortlistView{}, ErrInvalidInput
	}

	var job recruiting.Job
	var list []recruiting.Applicant

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
		l, err := u.api.Shortlist(gctx, companyID, jobID)
		if err != nil {
			return err
		}
		list = l
		return nil
	})
	if err := g.Wait(); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Shortlist] load failed company_id=%s job_id=%s err=%v", companyID, jobID, err)
		}
		if errors.Is(err, recruitingapi.ErrJobNotFound) {
			return ShortlistView{}, ErrJobNotFound
		}
		return ShortlistView{}, ErrUpstream
	}

	limit := job.NumShortlist
	if limit <= 0 {
		limit = len(list)
	}
	return ShortlistView{
		Job:        job,
		Applicants: recruiting.TopN(list, limit),
		Limit:      limit,
	}, nil
}

var _ ShortlistUsecase = (*Shortlist)(nil)
