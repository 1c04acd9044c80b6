package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"shortlist-console/internal/domain/recruiting"
	"shortlist-console/internal/infrastructure/recruitingapi/recruitingapitest"
	"shortlist-console/internal/pkg/jwt"
	"shortlist-console/internal/repository"
	"shortlist-console/internal/session"
	ucauth "shortlist-console/internal/usecase/auth"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type memEvents struct {
	mu     sync.Mutex
	events []repository.ConsoleEvent
}

func (m *memEvents) Record(_ context.Context, ev repository.ConsoleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *memEvents) ListRecent(_ context.Context, companyID string, limit int) ([]repository.ConsoleEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []repository.ConsoleEvent{}
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		if m.events[i].CompanyID == companyID {
			out = append(out, m.events[i])
		}
	}
	return out, nil
}

type capturedNotify struct {
	mu     sync.Mutex
	events []string
}

func (c *capturedNotify) Notify(companyID, eventType, _, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, companyID+":"+eventType)
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func scoredApplicant(id string, score int) recruiting.Applicant {
	return recruiting.Applicant{ID: id, Name: id, Score: recruiting.NewScore(float64(score))}
}

func seededAPI() *recruitingapitest.Fake {
	api := recruitingapitest.New()
	api.Jobs["acme"] = []recruiting.Job{
		{ID: "42", Title: "Backend", NumShortlist: 3, CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "43", Title: "Frontend", Status: recruiting.JobStatusClosed, CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
	api.Applicants["42"] = []recruiting.Applicant{
		scoredApplicant("a", 55),
		scoredApplicant("b", 91),
		{ID: "c"},
	}
	api.Applicants["43"] = []recruiting.Applicant{{ID: "d", Shortlisted: true}}
	return api
}

func TestJobs_ListJobs_CachesNonEmpty(t *testing.T) {
	api := seededAPI()
	cache := newMemCache()
	uc := NewJobsUsecase(api, cache, time.Minute, nil, nil, "", quietLogger())

	first := uc.ListJobs(context.Background(), "acme")
	second := uc.ListJobs(context.Background(), "acme")
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 jobs, got %d and %d", len(first), len(second))
	}
	if n := api.Calls("ListJobs"); n != 1 {
		t.Fatalf("expected one API call, got %d", n)
	}

	empty := uc.ListJobs(context.Background(), "nobody")
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty list")
	}
	if _, ok := cache.data[JobsCacheKey("nobody")]; ok {
		t.Fatalf("empty results must not be cached")
	}
}

func TestJobs_ListJobSummaries(t *testing.T) {
	uc := NewJobsUsecase(seededAPI(), nil, 0, nil, nil, "https://console.example/", quietLogger())

	got := uc.ListJobSummaries(context.Background(), "acme")
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].Job.ID != "42" || got[0].ApplicantCount != 3 {
		t.Fatalf("unexpected first summary: %+v", got[0])
	}
	if got[1].ShortlistedCount != 1 {
		t.Fatalf("expected 1 shortlisted, got %d", got[1].ShortlistedCount)
	}
	want := "https://console.example/application?id=42&companyId=acme"
	if got[0].ApplicationLink != want {
		t.Fatalf("expected link %s, got %s", want, got[0].ApplicationLink)
	}
}

func TestJobs_ListJobSummariesCancelled(t *testing.T) {
	api := seededAPI()
	uc := NewJobsUsecase(api, nil, 0, nil, nil, "https://console.example", quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := uc.ListJobSummaries(ctx, "acme")
	if len(got) != 2 || got[0].Job.ID != "42" || got[1].Job.ID != "43" {
		t.Fatalf("expected both jobs listed, got %+v", got)
	}
	if got[0].ApplicantCount != 0 || got[0].ApplicationLink == "" {
		t.Fatalf("unexpected summary after cancel: %+v", got[0])
	}
	if n := api.Calls("ListApplicants"); n != 0 {
		t.Fatalf("expected no applicant fetches after cancel, got %d", n)
	}
}

func TestJobs_JobDetail(t *testing.T) {
	api := seededAPI()
	uc := NewJobsUsecase(api, nil, 0, nil, nil, "", quietLogger())

	d, err := uc.JobDetail(context.Background(), "acme", "42")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Job.Title != "Backend" || len(d.Applicants) != 3 {
		t.Fatalf("unexpected detail: %+v", d)
	}
	if d.Applicants[0].ID != "b" || d.Applicants[2].ID != "c" {
		t.Fatalf("expected ranked applicants, got %+v", d.Applicants)
	}
	if api.Calls("GetJob") != 1 || api.Calls("ListApplicants") != 1 {
		t.Fatalf("expected one job and one applicants fetch")
	}

	if _, err := uc.JobDetail(context.Background(), "acme", "404"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	api.FailJobs = true
	if _, err := uc.JobDetail(context.Background(), "acme", "42"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestJobs_CreateJob(t *testing.T) {
	api := seededAPI()
	cache := newMemCache()
	notify := &capturedNotify{}
	events := &memEvents{}
	uc := NewJobsUsecase(api, cache, time.Minute, notify, NewActivity(events, nil), "", quietLogger())

	_ = uc.ListJobs(context.Background(), "acme")
	if _, ok := cache.data[JobsCacheKey("acme")]; !ok {
		t.Fatalf("expected cached jobs")
	}

	if _, err := uc.CreateJob(context.Background(), "acme", CreateJobInput{Title: " ", Description: "d", NumShortlist: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.CreateJob(context.Background(), "acme", CreateJobInput{Title: "t", Description: "d", NumShortlist: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero target, got %v", err)
	}
	if api.Calls("CreateJob") != 0 {
		t.Fatalf("invalid input must not reach the API")
	}

	api.CreatedLink = "https://jobs.example/apply/99"
	link, err := uc.CreateJob(context.Background(), "acme", CreateJobInput{Title: "SRE", Description: "Keep it up", NumShortlist: 4})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if link != "https://jobs.example/apply/99" {
		t.Fatalf("unexpected link: %s", link)
	}
	if api.CreatedJobs[0].NumShortlist != 4 || api.CreatedJobs[0].CompanyID != "acme" {
		t.Fatalf("unexpected payload: %+v", api.CreatedJobs[0])
	}
	if _, ok := cache.data[JobsCacheKey("acme")]; ok {
		t.Fatalf("expected cache invalidation")
	}
	if len(notify.events) != 1 || !strings.HasSuffix(notify.events[0], "job_created") {
		t.Fatalf("expected job_created notification, got %v", notify.events)
	}
	if len(events.events) != 1 || events.events[0].Kind != repository.EventJobCreated {
		t.Fatalf("expected recorded event, got %+v", events.events)
	}

	api.FailCreate = true
	if _, err := uc.CreateJob(context.Background(), "acme", CreateJobInput{Title: "x", Description: "y", NumShortlist: 1}); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestShortlist_TopNDescending(t *testing.T) {
	api := seededAPI()
	api.Shortlists["42"] = []recruiting.Applicant{
		scoredApplicant("s1", 60),
		scoredApplicant("s2", 95),
		scoredApplicant("s3", 72),
		scoredApplicant("s4", 88),
		scoredApplicant("s5", 40),
	}
	uc := NewShortlistUsecase(api, quietLogger())

	view, err := uc.Shortlist(context.Background(), "acme", "42")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if view.Limit != 3 || len(view.Applicants) != 3 {
		t.Fatalf("expected 3 applicants, got %d (limit %d)", len(view.Applicants), view.Limit)
	}
	for i, id := range []string{"s2", "s4", "s3"} {
		if view.Applicants[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, view.Applicants[i].ID)
		}
	}

	if _, err := uc.Shortlist(context.Background(), "acme", "missing"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	api.FailShortlist = true
	if _, err := uc.Shortlist(context.Background(), "acme", "42"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestDashboard_Totals(t *testing.T) {
	events := &memEvents{}
	activity := NewActivity(events, nil)
	activity.Record(context.Background(), "acme", repository.EventLogin, "alice@acme.com", "")
	jobs := NewJobsUsecase(seededAPI(), nil, 0, nil, activity, "", quietLogger())
	uc := NewDashboardUsecase(jobs, activity)

	stats := uc.Dashboard(context.Background(), "acme")
	if stats.TotalJobs != 2 || stats.OpenJobs != 1 || stats.TotalApplicants != 4 || stats.Shortlisted != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.RecentJobs[0].Job.ID != "43" {
		t.Fatalf("expected newest job first, got %s", stats.RecentJobs[0].Job.ID)
	}
	if len(stats.Activity) != 1 {
		t.Fatalf("expected one activity entry, got %d", len(stats.Activity))
	}
}

func TestAuth_LoginAndLogout(t *testing.T) {
	api := recruitingapitest.New()
	api.Passwords["alice@acme.com"] = "pw"
	tokens := jwt.NewHMACService("a", "r", time.Hour, 24*time.Hour)
	sessions := session.NewManager(tokens, nil, time.Hour, 24*time.Hour, quietLogger())
	events := &memEvents{}
	uc := NewAuthUsecase(api, sessions, NewActivity(events, nil), quietLogger())
	st := session.NewMemoryStorage()

	if _, err := uc.Login(context.Background(), st, ucauth.LoginInput{Email: "alice@acme.com", Password: "nope"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := uc.Login(context.Background(), st, ucauth.LoginInput{Email: "alice", Password: "pw"}); !errors.Is(err, ucauth.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if api.Calls("Login") != 1 {
		t.Fatalf("malformed email must not reach the API")
	}

	state, err := uc.Login(context.Background(), st, ucauth.LoginInput{Email: "alice@acme.com", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if state.CompanyID != "alice" {
		t.Fatalf("expected company id alice, got %q", state.CompanyID)
	}
	if _, ok := st.Get(session.AccessCookie); !ok {
		t.Fatalf("expected access token to be stored")
	}

	after := uc.Logout(context.Background(), st, state)
	if after.Authenticated {
		t.Fatalf("expected anonymous after logout")
	}
	if len(events.events) != 2 || events.events[1].Kind != repository.EventLogout {
		t.Fatalf("expected login and logout events, got %+v", events.events)
	}
}
