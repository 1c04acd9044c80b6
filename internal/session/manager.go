package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"shortlist-console/internal/pkg/jwt"
)

var ErrInvalidEmail = errors.New("invalid email")

// RotationGrace is how long a rotated refresh token keeps working for
// requests that were already in flight with it.
const RotationGrace = 10 * time.Second

// Manager issues, restores and revokes console sessions.
type Manager struct {
	tokens     jwt.Service
	denylist   Denylist
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *log.Logger
	now        func() time.Time
}

func NewManager(tokens jwt.Service, denylist Denylist, accessTTL, refreshTTL time.Duration, logger *log.Logger) *Manager {
	if denylist == nil {
		denylist = NoopDenylist{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		tokens:     tokens,
		denylist:   denylist,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Initialize restores the session from storage. Legacy keys are dropped. An
// expired access token is replaced when the refresh token is still valid.
func (m *Manager) Initialize(ctx context.Context, st Storage) State {
	m.dropLegacy(st)

	if raw, ok := st.Get(AccessCookie); ok {
		claims, err := m.tokens.ValidateToken(raw)
		if err == nil && !m.tokens.IsRefreshToken(claims) && !m.revoked(ctx, claims) {
			return stateFrom(claims)
		}
		if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
			m.logger.Printf("[Session] discarding access token err=%v", err)
		}
	}

	raw, ok := st.Get(RefreshCookie)
	if !ok {
		m.clear(st)
		return Anonymous()
	}
	claims, err := m.tokens.ValidateToken(raw)
	if err != nil || !m.tokens.IsRefreshToken(claims) || m.revoked(ctx, claims) {
		m.clear(st)
		return Anonymous()
	}

	m.rotate(ctx, claims)
	state, err := m.issue(st, claims.CompanyID, claims.Email)
	if err != nil {
		m.logger.Printf("[Session] refresh failed company_id=%s err=%v", claims.CompanyID, err)
		m.clear(st)
		return Anonymous()
	}
	m.logger.Printf("[Session] refreshed company_id=%s", claims.CompanyID)
	return state
}

// Login persists a new session for email. Callers verify credentials first.
func (m *Manager) Login(ctx context.Context, st Storage, email string) (State, error) {
	email = strings.TrimSpace(email)
	companyID := DeriveCompanyID(email)
	if companyID == "" {
		return Anonymous(), ErrInvalidEmail
	}

	m.revokeStored(ctx, st)
	m.dropLegacy(st)

	state, err := m.issue(st, companyID, email)
	if err != nil {
		return Anonymous(), err
	}
	return state, nil
}

// Logout revokes the stored tokens and clears every session key.
func (m *Manager) Logout(ctx context.Context, st Storage) State {
	m.revokeStored(ctx, st)
	m.clear(st)
	m.dropLegacy(st)
	return Anonymous()
}

func (m *Manager) issue(st Storage, companyID, email string) (State, error) {
	access, ac, err := m.tokens.GenerateAccessToken(companyID, email)
	if err != nil {
		return Anonymous(), err
	}
	refresh, _, err := m.tokens.GenerateRefreshToken(companyID, email)
	if err != nil {
		return Anonymous(), err
	}

	st.Set(AccessCookie, access, m.accessTTL)
	st.Set(RefreshCookie, refresh, m.refreshTTL)
	return stateFrom(ac), nil
}

func (m *Manager) revokeStored(ctx context.Context, st Storage) {
	for _, key := range []string{AccessCookie, RefreshCookie} {
		raw, ok := st.Get(key)
		if !ok {
			continue
		}
		claims, err := m.tokens.ValidateToken(raw)
		if err != nil {
			continue
		}
		m.revoke(ctx, claims)
	}
}

func (m *Manager) revoke(ctx context.Context, claims jwt.Claims) {
	ttl := claims.ExpiredAt.Sub(m.now())
	if ttl <= 0 {
		return
	}
	if err := m.denylist.Revoke(ctx, claims.TokenID(), ttl); err != nil {
		m.logger.Printf("[Session] revoke failed company_id=%s err=%v", claims.CompanyID, err)
	}
}

func (m *Manager) rotate(ctx context.Context, claims jwt.Claims) {
	ttl := claims.ExpiredAt.Sub(m.now())
	if ttl <= 0 {
		return
	}
	if err := m.denylist.Rotate(ctx, claims.TokenID(), RotationGrace, ttl); err != nil {
		m.logger.Printf("[Session] rotate failed company_id=%s err=%v", claims.CompanyID, err)
	}
}

func (m *Manager) revoked(ctx context.Context, claims jwt.Claims) bool {
	ok, err := m.denylist.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		m.logger.Printf("[Session] denylist lookup failed err=%v", err)
		return false
	}
	return ok
}

func (m *Manager) clear(st Storage) {
	for _, key := range []string{AccessCookie, RefreshCookie} {
		if _, ok := st.Get(key); ok {
			st.Delete(key)
		}
	}
}

func (m *Manager) dropLegacy(st Storage) {
	for _, key := range LegacyKeys {
		if _, ok := st.Get(key); ok {
			st.Delete(key)
		}
	}
}

func stateFrom(c jwt.Claims) State {
	return State{
		Authenticated: true,
		CompanyID:     c.CompanyID,
		Email:         c.Email,
		ExpiresAt:     c.ExpiredAt,
	}
}
