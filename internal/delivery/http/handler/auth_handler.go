package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/delivery/http/middleware"
	"shortlist-console/internal/delivery/http/view"
	"shortlist-console/internal/usecase"
	ucauth "shortlist-console/internal/usecase/auth"
)

type AuthHandler struct {
	uc      usecase.AuthUsecase
	appName string
}

type loginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginData struct {
	Email string
}

func NewAuthHandler(uc usecase.AuthUsecase, appName string) *AuthHandler {
	return &AuthHandler{uc: uc, appName: appName}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/login", middleware.RedirectIfAuthenticated(), h.LoginPage)
	r.Post("/login", middleware.RedirectIfAuthenticated(), h.Login)
	r.Post("/logout", middleware.RequireAuth(), h.Logout)
}

func (h *AuthHandler) LoginPage(c fiber.Ctx) error {
	return render(c, fiber.StatusOK, "login", view.Page{Title: "Sign in", AppName: h.appName, Data: loginData{}})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		req = loginRequest{}
	}

	state, err := h.uc.Login(c.Context(), middleware.StorageFrom(c), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return h.loginFailed(c, req.Email, err)
	}

	middleware.SetSession(c, state)
	return redirect(c, middleware.DashboardPath)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	state := h.uc.Logout(c.Context(), middleware.StorageFrom(c), middleware.SessionFrom(c))
	middleware.SetSession(c, state)
	return redirect(c, middleware.LoginPath)
}

func (h *AuthHandler) loginFailed(c fiber.Ctx, email string, err error) error {
	status := fiber.StatusUnauthorized
	msg := ucauth.Message(err)
	switch {
	case errors.Is(err, ucauth.ErrMissingFields), errors.Is(err, ucauth.ErrInvalidEmail):
		status = fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrInternal):
		status = fiber.StatusInternalServerError
		msg = "Sign in is unavailable right now. Please try again."
	}
	return render(c, status, "login", view.Page{
		Title:   "Sign in",
		AppName: h.appName,
		Error:   msg,
		Data:    loginData{Email: email},
	})
}
