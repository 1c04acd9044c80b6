package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/delivery/http/view"
	"shortlist-console/internal/domain/recruiting"
	"shortlist-console/internal/usecase/application"
)

const (
	appliedMarkerValue = "true"
	appliedMarkerTTL   = 365 * 24 * time.Hour

	msgApplied = "Application submitted successfully!"
)

// ApplicationService is what the public form needs from the application
// usecase.
type ApplicationService interface {
	ResolveJob(ctx context.Context, companyID, jobID string) (recruiting.Job, bool)
	Submit(ctx context.Context, in application.Input) error
}

// ApplyHandler serves the public candidate form in both URL shapes:
// /apply/:jobId?companyId= and /application?id=&companyId=.
type ApplyHandler struct {
	appName string
	svc     ApplicationService
	secure  bool
}

type applyData struct {
	JobID          string
	CompanyID      string
	Job            recruiting.Job
	JobKnown       bool
	Name           string
	Email          string
	AlreadyApplied bool
	Submitted      bool
	Action         string
}

func NewApplyHandler(appName string, svc ApplicationService, secureCookies bool) *ApplyHandler {
	return &ApplyHandler{appName: appName, svc: svc, secure: secureCookies}
}

func (h *ApplyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/application", h.ApplicationForm)
	r.Post("/application", h.ApplicationSubmit)
	r.Get("/apply/:jobId", h.ApplyForm)
	r.Post("/apply/:jobId", h.ApplySubmit)
	r.Get("/apply/:jobId/success", h.Success)
	r.Get("/apply/:jobId/closed", h.Closed)
}

func (h *ApplyHandler) ApplyForm(c fiber.Ctx) error {
	data := h.formData(c, param(c, "jobId"), c.Query("companyId"), pathAction)
	if !data.AlreadyApplied && data.JobKnown && !data.Job.IsOpen() {
		return redirect(c, closedPath(data.JobID))
	}
	return h.renderForm(c, fiber.StatusOK, data, "", "")
}

func (h *ApplyHandler) ApplySubmit(c fiber.Ctx) error {
	jobID := param(c, "jobId")
	in, err := h.readInput(c, jobID, firstNonEmpty(c.Query("companyId"), c.FormValue("companyId")))
	if err == nil {
		err = h.svc.Submit(c.Context(), in)
	}
	if err != nil {
		if errors.Is(err, application.ErrJobClosed) {
			return redirect(c, closedPath(jobID))
		}
		return h.rejected(c, in, pathAction, err)
	}

	h.markApplied(c, jobID)
	return redirect(c, "/apply/"+url.PathEscape(strings.TrimSpace(jobID))+"/success")
}

func (h *ApplyHandler) ApplicationForm(c fiber.Ctx) error {
	data := h.formData(c, c.Query("id"), c.Query("companyId"), queryAction)
	if strings.TrimSpace(data.JobID) == "" {
		return h.renderForm(c, fiber.StatusBadRequest, data, "", application.Message(application.ErrInvalidJobID))
	}
	if !data.AlreadyApplied && data.JobKnown && !data.Job.IsOpen() {
		return h.renderClosed(c, data.JobID)
	}
	return h.renderForm(c, fiber.StatusOK, data, "", "")
}

func (h *ApplyHandler) ApplicationSubmit(c fiber.Ctx) error {
	jobID := firstNonEmpty(c.Query("id"), c.FormValue("id"))
	companyID := firstNonEmpty(c.Query("companyId"), c.FormValue("companyId"))
	in, err := h.readInput(c, jobID, companyID)
	if err == nil {
		err = h.svc.Submit(c.Context(), in)
	}
	if err != nil {
		if errors.Is(err, application.ErrJobClosed) {
			return h.renderClosed(c, jobID)
		}
		return h.rejected(c, in, queryAction, err)
	}

	h.markApplied(c, jobID)
	data := applyData{JobID: strings.TrimSpace(jobID), CompanyID: strings.TrimSpace(companyID), Submitted: true, AlreadyApplied: true}
	data.Action = queryAction(data.JobID, data.CompanyID)
	return h.renderForm(c, fiber.StatusOK, data, msgApplied, "")
}

func (h *ApplyHandler) Success(c fiber.Ctx) error {
	return render(c, fiber.StatusOK, "apply_success", view.Page{
		Title:   "Application received",
		AppName: h.appName,
		Flash:   msgApplied,
		Data:    applyData{JobID: param(c, "jobId")},
	})
}

func (h *ApplyHandler) Closed(c fiber.Ctx) error {
	return h.renderClosed(c, param(c, "jobId"))
}

func (h *ApplyHandler) renderClosed(c fiber.Ctx, jobID string) error {
	return render(c, fiber.StatusOK, "apply_closed", view.Page{
		Title:   "Position closed",
		AppName: h.appName,
		Error:   application.Message(application.ErrJobClosed),
		Data:    applyData{JobID: jobID},
	})
}

// formData builds the form state for a GET. The job is only looked up when
// the candidate has not applied yet.
func (h *ApplyHandler) formData(c fiber.Ctx, jobID, companyID string, action func(string, string) string) applyData {
	data := applyData{
		JobID:     strings.TrimSpace(jobID),
		CompanyID: strings.TrimSpace(companyID),
	}
	data.Action = action(data.JobID, data.CompanyID)
	data.AlreadyApplied = h.alreadyApplied(c, data.JobID)
	if !data.AlreadyApplied && data.JobID != "" {
		data.Job, data.JobKnown = h.svc.ResolveJob(c.Context(), data.CompanyID, data.JobID)
	}
	return data
}

func (h *ApplyHandler) rejected(c fiber.Ctx, in application.Input, action func(string, string) string, err error) error {
	data := applyData{
		JobID:          strings.TrimSpace(in.JobID),
		CompanyID:      strings.TrimSpace(in.CompanyID),
		Name:           in.Name,
		Email:          in.Email,
		AlreadyApplied: in.AlreadyApplied,
	}
	data.Action = action(data.JobID, data.CompanyID)

	status := fiber.StatusBadRequest
	switch {
	case errors.Is(err, application.ErrAlreadyApplied):
		status = fiber.StatusConflict
	case errors.Is(err, application.ErrTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	case errors.Is(err, application.ErrSubmitFailed):
		status = fiber.StatusBadGateway
	}
	return h.renderForm(c, status, data, "", application.Message(err))
}

func (h *ApplyHandler) renderForm(c fiber.Ctx, status int, data applyData, flash, errMsg string) error {
	title := "Apply"
	if data.JobKnown && data.Job.Title != "" {
		title = "Apply for " + data.Job.Title
	}
	return render(c, status, "apply", view.Page{
		Title:   title,
		AppName: h.appName,
		Flash:   flash,
		Error:   errMsg,
		Data:    data,
	})
}

func (h *ApplyHandler) readInput(c fiber.Ctx, jobID, companyID string) (application.Input, error) {
	in := application.Input{
		JobID:          jobID,
		CompanyID:      strings.TrimSpace(companyID),
		Name:           c.FormValue("name"),
		Email:          c.FormValue("email"),
		AlreadyApplied: h.alreadyApplied(c, jobID),
	}
	if in.AlreadyApplied {
		return in, nil
	}

	fh, err := c.FormFile("resume")
	if err != nil || fh == nil {
		return in, nil
	}
	resume, err := readResume(fh)
	if err != nil {
		return in, application.ErrMissingFields
	}
	in.Resume = resume
	return in, nil
}

// readResume reads at most one byte past the limit so oversized uploads are
// detected without buffering them whole.
func readResume(fh *multipart.FileHeader) (*application.Resume, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, application.MaxResumeBytes+1))
	if err != nil {
		return nil, err
	}
	return &application.Resume{
		Name:         fh.Filename,
		DeclaredType: fh.Header.Get(fiber.HeaderContentType),
		Size:         fh.Size,
		Data:         data,
	}, nil
}

func (h *ApplyHandler) alreadyApplied(c fiber.Ctx, jobID string) bool {
	if strings.TrimSpace(jobID) == "" {
		return false
	}
	return c.Cookies(application.AppliedMarkerKey(jobID)) == appliedMarkerValue
}

func (h *ApplyHandler) markApplied(c fiber.Ctx, jobID string) {
	c.Cookie(&fiber.Cookie{
		Name:     application.AppliedMarkerKey(jobID),
		Value:    appliedMarkerValue,
		Path:     "/",
		Expires:  time.Now().Add(appliedMarkerTTL),
		MaxAge:   int(appliedMarkerTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func pathAction(jobID, companyID string) string {
	action := "/apply/" + url.PathEscape(jobID)
	if companyID != "" {
		action += "?companyId=" + url.QueryEscape(companyID)
	}
	return action
}

func queryAction(jobID, companyID string) string {
	action := "/application?id=" + url.QueryEscape(jobID)
	if companyID != "" {
		action += "&companyId=" + url.QueryEscape(companyID)
	}
	return action
}

func closedPath(jobID string) string {
	return "/apply/" + url.PathEscape(strings.TrimSpace(jobID)) + "/closed"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
