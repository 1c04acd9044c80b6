package recruitingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shortlist-console/internal/domain/recruiting"
)

const (
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 8 << 20
)

var ErrJobNotFound = errors.New("job not found")

// Client talks to the remote recruiting API. Each call is a single round trip
// with no retries.
type Client interface {
	Login(ctx context.Context, email, password string) bool
	ListJobs(ctx context.Context, companyID string) []recruiting.Job
	GetJob(ctx context.Context, companyID, jobID string) (recruiting.Job, error)
	ListApplicants(ctx context.Context, jobID string) []recruiting.Applicant
	Shortlist(ctx context.Context, companyID, jobID string) ([]recruiting.Applicant, error)
	SubmitApplication(ctx context.Context, sub Submission) bool
	CreateJob(ctx context.Context, in NewJob) (string, bool)
}

type Submission struct {
	JobID          string `json:"jobId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	ResumeBase64   string `json:"resumeBase64"`
	ResumeName     string `json:"resumeName"`
	ResumeType     string `json:"resumeType"`
}

type NewJob struct {
	CompanyID    string `json:"companyId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	NumShortlist int    `json:"numShortlist"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recruiting api: status=%d body=%s", e.StatusCode, e.Body)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) Login(ctx context.Context, email, password string) bool {
	path := "/company/login/" + url.PathEscape(email) + "?password=" + url.QueryEscape(password)
	if _, err := c.do(ctx, http.MethodGet, path, nil); err != nil {
		c.logger.Printf("[RecruitingAPI] Login error email=%q err=%v", email, err)
		return false
	}
	return true
}

func (c *httpClient) ListJobs(ctx context.Context, companyID string) []recruiting.Job {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		c.logger.Printf("[RecruitingAPI] ListJobs skipped: empty company id")
		return []recruiting.Job{}
	}

	body, err := c.do(ctx, http.MethodGet, "/company/"+url.PathEscape(companyID)+"/jobs", nil)
	if err != nil {
		c.logger.Printf("[RecruitingAPI] ListJobs error company_id=%s err=%v", companyID, err)
		return []recruiting.Job{}
	}

	items, err := decodeList[wireJob](body, "jobs", "data", "items")
	if err != nil {
		c.logger.Printf("[RecruitingAPI] ListJobs decode error company_id=%s err=%v", companyID, err)
		return []recruiting.Job{}
	}
	return jobsToDomain(items)
}

func (c *httpClient) GetJob(ctx context.Context, companyID, jobID string) (recruiting.Job, error) {
	companyID = strings.TrimSpace(companyID)
	jobID = strings.TrimSpace(jobID)
	if companyID == "" || jobID == "" {
		return recruiting.Job{}, ErrJobNotFound
	}

	path := "/job/" + url.PathEscape(companyID) + "/" + url.PathEscape(jobID)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		c.logger.Printf("[RecruitingAPI] GetJob error company_id=%s job_id=%s err=%v", companyID, jobID, err)
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return recruiting.Job{}, ErrJobNotFound
		}
		return recruiting.Job{}, err
	}

	job, err := decodeJob(body, jobID)
	if err != nil {
		c.logger.Printf("[RecruitingAPI] GetJob decode error company_id=%s job_id=%s err=%v", companyID, jobID, err)
		return recruiting.Job{}, err
	}
	if job.ID == "" {
		job.ID = jobID
	}
	if job.CompanyID == "" {
		job.CompanyID = companyID
	}
	return job, nil
}

func (c *httpClient) ListApplicants(ctx context.Context, jobID string) []recruiting.Applicant {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return []recruiting.Applicant{}
	}

	body, err := c.do(ctx, http.MethodGet, "/job/"+url.PathEscape(jobID)+"/applications", nil)
	if err != nil {
		c.logger.Printf("[RecruitingAPI] ListApplicants error job_id=%s err=%v", jobID, err)
		return []recruiting.Applicant{}
	}

	items, err := decodeList[wireApplicant](body, "applications", "applicants", "data")
	if err != nil {
		c.logger.Printf("[RecruitingAPI] ListApplicants decode error job_id=%s err=%v", jobID, err)
		return []recruiting.Applicant{}
	}
	return withJobID(applicantsToDomain(items), jobID)
}

func (c *httpClient) Shortlist(ctx context.Context, companyID, jobID string) ([]recruiting.Applicant, error) {
	companyID = strings.TrimSpace(companyID)
	jobID = strings.TrimSpace(jobID)
	if companyID == "" || jobID == "" {
		return nil, ErrJobNotFound
	}

	path := "/job/" + url.PathEscape(jobID) + "/shortlist/" + url.PathEscape(companyID)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		c.logger.Printf("[RecruitingAPI] Shortlist error company_id=%s job_id=%s err=%v", companyID, jobID, err)
		return nil, err
	}

	items, err := decodeList[wireApplicant](body, "shortlist", "applications", "data")
	if err != nil {
		c.logger.Printf("[RecruitingAPI] Shortlist decode error company_id=%s job_id=%s err=%v", companyID, jobID, err)
		return nil, err
	}
	return withJobID(applicantsToDomain(items), jobID), nil
}

func (c *httpClient) SubmitApplication(ctx context.Context, sub Submission) bool {
	if _, err := c.do(ctx, http.MethodPost, "/application", sub); err != nil {
		c.logger.Printf("[RecruitingAPI] SubmitApplication error job_id=%s err=%v", sub.JobID, err)
		return false
	}
	return true
}

func (c *httpClient) CreateJob(ctx context.Context, in NewJob) (string, bool) {
	body, err := c.do(ctx, http.MethodPost, "/job", in)
	if err != nil {
		c.logger.Printf("[RecruitingAPI] CreateJob error company_id=%s err=%v", in.CompanyID, err)
		return "", false
	}

	link, err := decodeLink(body)
	if err != nil {
		c.logger.Printf("[RecruitingAPI] CreateJob decode error company_id=%s err=%v", in.CompanyID, err)
		return "", false
	}
	return link, true
}

func (c *httpClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil recruiting client")
	}
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(rb))}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// decodeJob accepts a single job (bare or under "job") or a job list (bare or
// under "jobs") from which jobID is picked.
func decodeJob(body []byte, jobID string) (recruiting.Job, error) {
	if items, err := decodeList[wireJob](body, "jobs"); err == nil {
		job, ok := recruiting.FindJob(jobsToDomain(items), jobID)
		if !ok {
			return recruiting.Job{}, ErrJobNotFound
		}
		return job, nil
	}

	w, err := decodeObject[wireJob](body, "job", "data")
	if err != nil {
		return recruiting.Job{}, err
	}
	return w.toDomain(), nil
}

func withJobID(in []recruiting.Applicant, jobID string) []recruiting.Applicant {
	for i := range in {
		if in[i].JobID == "" {
			in[i].JobID = jobID
		}
	}
	return in
}

var _ Client = (*httpClient)(nil)
