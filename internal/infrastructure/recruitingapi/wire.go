package recruitingapi

import (
	"strconv"
	"strings"
	"time"

	"shortlist-console/internal/domain/recruiting"
)

// wireJob carries every field name the recruiting API has used for a job.
type wireJob struct {
	JobID          flexString `json:"jobId"`
	ID             flexString `json:"id"`
	Title          flexString `json:"title"`
	Description    flexString `json:"description"`
	CreatedAt      flexString `json:"createdAt"`
	CompanyID      flexString `json:"companyId"`
	NumShortlist   flexNumber `json:"numShortlist"`
	NumToShortlist flexNumber `json:"numToShortlist"`
	Status         flexString `json:"status"`
}

func (w wireJob) toDomain() recruiting.Job {
	n := 0
	switch {
	case w.NumShortlist.Valid:
		n = int(w.NumShortlist.Value)
	case w.NumToShortlist.Valid:
		n = int(w.NumToShortlist.Value)
	}
	if n < 0 {
		n = 0
	}

	return recruiting.Job{
		ID:           firstNonEmpty(string(w.JobID), string(w.ID)),
		Title:        strings.TrimSpace(string(w.Title)),
		Description:  strings.TrimSpace(string(w.Description)),
		CreatedAt:    parseTime(string(w.CreatedAt)),
		CompanyID:    strings.TrimSpace(string(w.CompanyID)),
		NumShortlist: n,
		Status:       recruiting.ParseJobStatus(string(w.Status)),
	}
}

// wireApplicant carries every field name the recruiting API has used for an
// application.
type wireApplicant struct {
	ApplicationID  flexString `json:"applicationId"`
	ID             flexString `json:"id"`
	JobID          flexString `json:"jobId"`
	CandidateName  flexString `json:"candidateName"`
	Name           flexString `json:"name"`
	CandidateEmail flexString `json:"candidateEmail"`
	Email          flexString `json:"email"`
	ResumeURL      flexString `json:"resumeUrl"`
	ResumeLink     flexString `json:"resumeLink"`
	MatchScore     flexNumber `json:"matchScore"`
	AppliedAt      flexString `json:"appliedAt"`
	IsShortlisted  flexBool   `json:"isShortlisted"`
}

func (w wireApplicant) toDomain() recruiting.Applicant {
	score := recruiting.Score{}
	if w.MatchScore.Valid {
		score = recruiting.NewScore(w.MatchScore.Value)
	}

	return recruiting.Applicant{
		ID:          firstNonEmpty(string(w.ApplicationID), string(w.ID)),
		JobID:       strings.TrimSpace(string(w.JobID)),
		Name:        firstNonEmpty(string(w.CandidateName), string(w.Name)),
		Email:       firstNonEmpty(string(w.CandidateEmail), string(w.Email)),
		ResumeURL:   firstNonEmpty(string(w.ResumeURL), string(w.ResumeLink)),
		Score:       score,
		AppliedAt:   parseTime(string(w.AppliedAt)),
		Shortlisted: bool(w.IsShortlisted),
	}
}

func jobsToDomain(in []wireJob) []recruiting.Job {
	out := make([]recruiting.Job, 0, len(in))
	for _, w := range in {
		j := w.toDomain()
		if j.ID == "" {
			continue
		}
		out = append(out, j)
	}
	return out
}

func applicantsToDomain(in []wireApplicant) []recruiting.Applicant {
	out := make([]recruiting.Applicant, 0, len(in))
	for _, w := range in {
		out = append(out, w.toDomain())
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime understands the timestamp formats seen from the API, including
// epoch seconds and milliseconds. Unparseable values become the zero time.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
		if n > 1e12 {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}
	return time.Time{}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
