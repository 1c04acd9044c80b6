package application

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"shortlist-console/internal/domain/recruiting"
	"shortlist-console/internal/infrastructure/recruitingapi"
	"shortlist-console/internal/pkg/validation"
	"shortlist-console/internal/repository"
	"shortlist-console/internal/ws"
)

const (
	MaxResumeBytes = 5 * 1024 * 1024
	PDFMimeType    = "application/pdf"

	appliedMarkerPrefix = "applied_"
)

var (
	ErrAlreadyApplied = errors.New("already applied")
	ErrInvalidJobID   = errors.New("invalid job id")
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrNotPDF         = errors.New("resume is not a pdf")
	ErrTooLarge       = errors.New("resume too large")
	ErrJobClosed      = errors.New("job closed")
	ErrSubmitFailed   = errors.New("submit failed")
)

var messages = map[error]string{
	ErrAlreadyApplied: "You have already submitted an application for this position.",
	ErrInvalidJobID:   "Invalid application ID.",
	ErrMissingFields:  "Please fill in all fields and upload your resume.",
	ErrInvalidEmail:   "Please enter a valid email address.",
	ErrNotPDF:         "Please upload a PDF file",
	ErrTooLarge:       "File size must be less than 5MB",
	ErrJobClosed:      "This position is no longer accepting applications.",
	ErrSubmitFailed:   "Failed to submit application. Please try again.",
}

// Message returns the text shown to the candidate for err.
func Message(err error) string {
	for target, msg := range messages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return messages[ErrSubmitFailed]
}

// AppliedMarkerKey is the browser key recording a successful application.
func AppliedMarkerKey(jobID string) string {
	return appliedMarkerPrefix + strings.TrimSpace(jobID)
}

type Resume struct {
	Name         string
	DeclaredType string
	Size         int64
	Data         []byte
}

type Input struct {
	JobID          string
	CompanyID      string
	Name           string
	Email          string
	Resume         *Resume
	AlreadyApplied bool
}

// Validate applies the form rules in order. It performs no I/O.
func Validate(in Input) error {
	if in.AlreadyApplied {
		return ErrAlreadyApplied
	}
	if strings.TrimSpace(in.JobID) == "" {
		return ErrInvalidJobID
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Resume == nil || in.Resume.Size == 0 {
		return ErrMissingFields
	}
	if !validation.Email(in.Email) {
		return ErrInvalidEmail
	}
	if !isPDF(in.Resume) {
		return ErrNotPDF
	}
	if in.Resume.Size > MaxResumeBytes || int64(len(in.Resume.Data)) > MaxResumeBytes {
		return ErrTooLarge
	}
	return nil
}

func isPDF(r *Resume) bool {
	declared := strings.ToLower(strings.TrimSpace(r.DeclaredType))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != PDFMimeType {
		return false
	}
	return mimetype.Detect(r.Data).Is(PDFMimeType)
}

type Recorder interface {
	Record(ctx context.Context, companyID string, kind repository.ConsoleEventKind, subject, detail string)
}

type Service struct {
	api      recruitingapi.Client
	notifier ws.Notifier
	recorder Recorder
	logger   *log.Logger
}

func NewService(api recruitingapi.Client, notifier ws.Notifier, recorder Recorder, logger *log.Logger) *Service {
	if notifier == nil {
		notifier = ws.NoopNotifier{}
	}
	return &Service{api: api, notifier: notifier, recorder: recorder, logger: logger}
}

// ResolveJob looks the job up when the company is known. ok is false when the
// job could not be resolved; the form stays usable in that case.
func (s *Service) ResolveJob(ctx context.Context, companyID, jobID string) (recruiting.Job, bool) {
	companyID = strings.TrimSpace(companyID)
	jobID = strings.TrimSpace(jobID)
	if companyID == "" || jobID == "" {
		return recruiting.Job{}, false
	}
	job, err := s.api.GetJob(ctx, companyID, jobID)
	if err != nil {
		return recruiting.Job{}, false
	}
	return job, true
}

// Submit validates the input, rejects closed jobs and sends the application.
func (s *Service) Submit(ctx context.Context, in Input) error {
	if err := Validate(in); err != nil {
		return err
	}

	jobID := strings.TrimSpace(in.JobID)
	if job, ok := s.ResolveJob(ctx, in.CompanyID, jobID); ok && !job.IsOpen() {
		return ErrJobClosed
	}

	ok := s.api.SubmitApplication(ctx, recruitingapi.Submission{
		JobID:          jobID,
		CandidateName:  strings.TrimSpace(in.Name),
		CandidateEmail: strings.TrimSpace(in.Email),
		ResumeBase64:   base64.StdEncoding.EncodeToString(in.Resume.Data),
		ResumeName:     in.Resume.Name,
		ResumeType:     PDFMimeType,
	})
	if !ok {
		return ErrSubmitFailed
	}

	if s.logger != nil {
		s.logger.Printf("[Application] submitted job_id=%s company_id=%s", jobID, in.CompanyID)
	}
	if in.CompanyID != "" {
		s.notifier.Notify(in.CompanyID, ws.EventApplicationSubmitted, jobID, strings.TrimSpace(in.Name))
		if s.recorder != nil {
			s.recorder.Record(ctx, in.CompanyID, repository.EventApplicationSubmitted, strings.TrimSpace(in.Name), jobID)
		}
	}
	return nil
}
