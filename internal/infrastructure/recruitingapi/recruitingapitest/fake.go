// Package recruitingapitest provides an in-memory recruiting API client.
package recruitingapitest

import (
	"context"
	"sync"

	"shortlist-console/internal/domain/recruiting"
	"shortlist-console/internal/infrastructure/recruitingapi"
)

// Fake is a concurrency-safe recruitingapi.Client backed by maps. Every call
// is counted so tests can assert that no request was made.
type Fake struct {
	mu sync.Mutex

	Passwords   map[string]string
	Jobs        map[string][]recruiting.Job
	Applicants  map[string][]recruiting.Applicant
	Shortlists  map[string][]recruiting.Applicant
	CreatedLink string

	FailJobs      bool
	FailShortlist bool
	FailSubmit    bool
	FailCreate    bool

	Submissions []recruitingapi.Submission
	CreatedJobs []recruitingapi.NewJob
	calls       map[string]int
}

func New() *Fake {
	return &Fake{
		Passwords:  map[string]string{},
		Jobs:       map[string][]recruiting.Job{},
		Applicants: map[string][]recruiting.Applicant{},
		Shortlists: map[string][]recruiting.Applicant{},
		calls:      map[string]int{},
	}
}

func (f *Fake) count(name string) {
	f.calls[name]++
}

func (f *Fake) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *Fake) Login(_ context.Context, email, password string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Login")
	want, ok := f.Passwords[email]
	return ok && want == password
}

func (f *Fake) ListJobs(_ context.Context, companyID string) []recruiting.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListJobs")
	if f.FailJobs {
		return []recruiting.Job{}
	}
	out := make([]recruiting.Job, len(f.Jobs[companyID]))
	copy(out, f.Jobs[companyID])
	return out
}

func (f *Fake) GetJob(_ context.Context, companyID, jobID string) (recruiting.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GetJob")
	if f.FailJobs {
		return recruiting.Job{}, &recruitingapi.StatusError{StatusCode: 502}
	}
	job, ok := recruiting.FindJob(f.Jobs[companyID], jobID)
	if !ok {
		return recruiting.Job{}, recruitingapi.ErrJobNotFound
	}
	return job, nil
}

func (f *Fake) ListApplicants(_ context.Context, jobID string) []recruiting.Applicant {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListApplicants")
	out := make([]recruiting.Applicant, len(f.Applicants[jobID]))
	copy(out, f.Applicants[jobID])
	return out
}

func (f *Fake) Shortlist(_ context.Context, _ string, jobID string) ([]recruiting.Applicant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Shortlist")
	if f.FailShortlist {
		return nil, &recruitingapi.StatusError{StatusCode: 500}
	}
	out := make([]recruiting.Applicant, len(f.Shortlists[jobID]))
	copy(out, f.Shortlists[jobID])
	return out, nil
}

func (f *Fake) SubmitApplication(_ context.Context, sub recruitingapi.Submission) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("SubmitApplication")
	if f.FailSubmit {
		return false
	}
	f.Submissions = append(f.Submissions, sub)
	return true
}

func (f *Fake) CreateJob(_ context.Context, in recruitingapi.NewJob) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateJob")
	if f.FailCreate {
		return "", false
	}
	f.CreatedJobs = append(f.CreatedJobs, in)
	link := f.CreatedLink
	if link == "" {
		link = "https://jobs.example/apply/new"
	}
	return link, true
}

var _ recruitingapi.Client = (*Fake)(nil)
