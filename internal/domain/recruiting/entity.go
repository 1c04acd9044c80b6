package recruiting

import (
	"strings"
	"time"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// ParseJobStatus maps backend status strings onto JobStatus. The backend does
// not reliably send a status, so anything other than "closed" is open.
func ParseJobStatus(s string) JobStatus {
	if strings.EqualFold(strings.TrimSpace(s), string(JobStatusClosed)) {
		return JobStatusClosed
	}
	return JobStatusOpen
}

type Job struct {
	ID           string
	Title        string
	Description  string
	CreatedAt    time.Time
	CompanyID    string
	NumShortlist int
	Status       JobStatus
}

func (j Job) IsOpen() bool {
	return j.Status != JobStatusClosed
}

type Applicant struct {
	ID          string
	JobID       string
	Name        string
	Email       string
	ResumeURL   string
	Score       Score
	AppliedAt   time.Time
	Shortlisted bool
}

func FindJob(jobs []Job, id string) (Job, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Job{}, false
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}
