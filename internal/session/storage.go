package session

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Storage is the browser-side key/value store a session persists into.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration)
	Delete(key string)
}

// CookieStorage persists keys as cookies on the current request. Writes are
// visible to later reads in the same request.
type CookieStorage struct {
	c      fiber.Ctx
	secure bool

	written map[string]*string
}

func NewCookieStorage(c fiber.Ctx, secure bool) *CookieStorage {
	return &CookieStorage{c: c, secure: secure, written: map[string]*string{}}
}

func (s *CookieStorage) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	v := strings.TrimSpace(s.c.Cookies(key))
	if v == "" {
		return "", false
	}
	return v, true
}

func (s *CookieStorage) Set(key, value string, ttl time.Duration) {
	ck := &fiber.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if ttl > 0 {
		ck.Expires = time.Now().Add(ttl)
		ck.MaxAge = int(ttl / time.Second)
	}
	s.c.Cookie(ck)
	v := value
	s.written[key] = &v
}

func (s *CookieStorage) Delete(key string) {
	s.c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(1, 0),
		MaxAge:   -1,
	})
	s.written[key] = nil
}

// MemoryStorage is a Storage backed by a map.
type MemoryStorage struct {
	Values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Values: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	v, ok := m.Values[key]
	return v, ok && v != ""
}

func (m *MemoryStorage) Set(key, value string, _ time.Duration) {
	m.Values[key] = value
}

func (m *MemoryStorage) Delete(key string) {
	delete(m.Values, key)
}
