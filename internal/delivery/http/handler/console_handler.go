package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/delivery/http/middleware"
	"shortlist-console/internal/delivery/http/view"
	"shortlist-console/internal/usecase"
	"shortlist-console/internal/ws"
)

const (
	msgCreateInvalid = "Please enter a title, a description and a shortlist size of at least 1."
	msgCreateFailed  = "Failed to create job. Please try again."
	msgShortlist     = "Failed to load the shortlist. Please try again."
	msgJobDetail     = "Failed to load this job. Please try again."
)

// ConsoleHandler serves the signed-in company pages.
type ConsoleHandler struct {
	appName   string
	jobs      usecase.JobsUsecase
	dashboard usecase.DashboardUsecase
	shortlist usecase.ShortlistUsecase
	ws        *ws.Handler
}

type newJobData struct {
	Title        string
	Description  string
	NumShortlist int
	Link         string
}

type settingsData struct {
	CompanyID string
	Email     string
}

func NewConsoleHandler(appName string, jobs usecase.JobsUsecase, dashboard usecase.DashboardUsecase, shortlist usecase.ShortlistUsecase, wsHandler *ws.Handler) *ConsoleHandler {
	return &ConsoleHandler{appName: appName, jobs: jobs, dashboard: dashboard, shortlist: shortlist, ws: wsHandler}
}

func (h *ConsoleHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	guard := middleware.RequireAuth()
	r.Get("/dashboard", guard, h.Dashboard)
	r.Get("/jobs", guard, h.Jobs)
	r.Post("/jobs", guard, h.CreateJob)
	r.Get("/jobs/new", guard, h.NewJob)
	r.Get("/jobs/:jobId", guard, h.JobDetail)
	r.Get("/jobs/:jobId/shortlist", guard, h.Shortlist)
	r.Get("/settings", guard, h.Settings)
	r.Get("/ws", guard, h.Socket)
}

func (h *ConsoleHandler) page(title string, data any) view.Page {
	return view.Page{Title: title, AppName: h.appName, Data: data}
}

func (h *ConsoleHandler) Dashboard(c fiber.Ctx) error {
	companyID := middleware.SessionFrom(c).CompanyID
	stats := h.dashboard.Dashboard(c.Context(), companyID)
	return render(c, fiber.StatusOK, "dashboard", h.page("Dashboard", stats))
}

func (h *ConsoleHandler) Jobs(c fiber.Ctx) error {
	companyID := middleware.SessionFrom(c).CompanyID
	summaries := h.jobs.ListJobSummaries(c.Context(), companyID)
	return render(c, fiber.StatusOK, "jobs", h.page("Jobs", summaries))
}

func (h *ConsoleHandler) JobDetail(c fiber.Ctx) error {
	companyID := middleware.SessionFrom(c).CompanyID
	detail, err := h.jobs.JobDetail(c.Context(), companyID, param(c, "jobId"))
	if err != nil {
		if errors.Is(err, usecase.ErrJobNotFound) || errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", err)
		}
		page := h.page("Job", nil)
		page.Error = msgJobDetail
		return render(c, fiber.StatusBadGateway, "job_detail", page)
	}
	return render(c, fiber.StatusOK, "job_detail", h.page(detail.Job.Title, detail))
}

func (h *ConsoleHandler) NewJob(c fiber.Ctx) error {
	return render(c, fiber.StatusOK, "job_new", h.page("New job", newJobData{NumShortlist: usecase.DefaultShortlistTarget}))
}

func (h *ConsoleHandler) CreateJob(c fiber.Ctx) error {
	form := newJobData{
		Title:        strings.TrimSpace(c.FormValue("title")),
		Description:  strings.TrimSpace(c.FormValue("description")),
		NumShortlist: parseShortlistSize(c.FormValue("numShortlist")),
	}

	companyID := middleware.SessionFrom(c).CompanyID
	link, err := h.jobs.CreateJob(c.Context(), companyID, usecase.CreateJobInput{
		Title:        form.Title,
		Description:  form.Description,
		NumShortlist: form.NumShortlist,
	})
	if err != nil {
		page := h.page("New job", form)
		status := fiber.StatusBadGateway
		page.Error = msgCreateFailed
		if errors.Is(err, usecase.ErrInvalidInput) {
			status = fiber.StatusBadRequest
			page.Error = msgCreateInvalid
		}
		return render(c, status, "job_new", page)
	}

	page := h.page("Job created", newJobData{NumShortlist: usecase.DefaultShortlistTarget, Link: link})
	page.Flash = "Job created. Share the link below with candidates."
	return render(c, fiber.StatusOK, "job_new", page)
}

func (h *ConsoleHandler) Shortlist(c fiber.Ctx) error {
	companyID := middleware.SessionFrom(c).CompanyID
	result, err := h.shortlist.Shortlist(c.Context(), companyID, param(c, "jobId"))
	if err != nil {
		if errors.Is(err, usecase.ErrJobNotFound) || errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", err)
		}
		page := h.page("Shortlist", nil)
		page.Error = msgShortlist
		return render(c, fiber.StatusBadGateway, "shortlist", page)
	}
	return render(c, fiber.StatusOK, "shortlist", h.page("Shortlist", result))
}

func (h *ConsoleHandler) Settings(c fiber.Ctx) error {
	state := middleware.SessionFrom(c)
	return render(c, fiber.StatusOK, "settings", h.page("Settings", settingsData{CompanyID: state.CompanyID, Email: state.Email}))
}

func (h *ConsoleHandler) Socket(c fiber.Ctx) error {
	return h.ws.HandleDashboardWS(c, middleware.SessionFrom(c).CompanyID)
}

// parseShortlistSize defaults an empty field to the standard target. Anything
// unparsable becomes 0 and fails validation.
func parseShortlistSize(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return usecase.DefaultShortlistTarget
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
