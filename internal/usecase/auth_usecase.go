package usecase

import (
	"context"
	"errors"
	"log"

	"shortlist-console/internal/repository"
	"shortlist-console/internal/session"
	ucauth "shortlist-console/internal/usecase/auth"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

type AuthUsecase interface {
	Login(ctx context.Context, st session.Storage, in ucauth.LoginInput) (session.State, error)
	Logout(ctx context.Context, st session.Storage, current session.State) session.State
}

type Auth struct {
	authSvc  *ucauth.Service
	sessions *session.Manager
	activity *Activity
	logger   *log.Logger
}

func NewAuthUsecase(api ucauth.Authenticator, sessions *session.Manager, activity *Activity, logger *log.Logger) *Auth {
	return &Auth{authSvc: ucauth.NewService(api), sessions: sessions, activity: activity, logger: logger}
}

func (u *Auth) Login(ctx context.Context, st session.Storage, in ucauth.LoginInput) (session.State, error) {
	email, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return session.Anonymous(), err
	}

	state, err := u.sessions.Login(ctx, st, email)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Auth] session issue failed email=%q err=%v", email, err)
		}
		if errors.Is(err, session.ErrInvalidEmail) {
			return session.Anonymous(), ucauth.ErrInvalidEmail
		}
		return session.Anonymous(), ErrInternal
	}

	if u.logger != nil {
		u.logger.Printf("[Auth] login company_id=%s", state.CompanyID)
	}
	u.activity.Record(ctx, state.CompanyID, repository.EventLogin, email, "")
	return state, nil
}

func (u *Auth) Logout(ctx context.Context, st session.Storage, current session.State) session.State {
	if current.Authenticated {
		u.activity.Record(ctx, current.CompanyID, repository.EventLogout, current.Email, "")
		if u.logger != nil {
			u.logger.Printf("[Auth] logout company_id=%s", current.CompanyID)
		}
	}
	return u.sessions.Logout(ctx, st)
}
