package middleware

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func newBodyLimitApp(limit int) *fiber.App {
	app := fiber.New(fiber.Config{BodyLimit: limit, StreamRequestBody: true})
	app.Use(NewErrorMiddleware("Shortlist", log.New(io.Discard, "", 0)).Middleware())
	app.Use(NewBodyLimitMiddleware(limit).Middleware())
	app.Post("/echo", func(c fiber.Ctx) error {
		return c.SendString(c.FormValue("v"))
	})
	return app
}

func TestBodyLimit_RejectsLargeForm(t *testing.T) {
	app := newBodyLimitApp(64)

	body := "v=" + strings.Repeat("x", 200)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.StatusCode)
	}
	out := decode(t, resp)
	if out.Message != "Request body too large" {
		t.Fatalf("unexpected message %q", out.Message)
	}
}

func TestBodyLimit_SmallFormPasses(t *testing.T) {
	app := newBodyLimitApp(64)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("v=ok"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	got, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(got) != "ok" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, got)
	}
}

func TestBodyLimit_MultipartIsLeftToHandler(t *testing.T) {
	app := newBodyLimitApp(64)

	var buf bytes.Buffer
	buf.WriteString("--b\r\nContent-Disposition: form-data; name=\"v\"\r\n\r\n")
	buf.WriteString(strings.Repeat("y", 200))
	buf.WriteString("\r\n--b--\r\n")
	req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	got, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || len(got) != 200 {
		t.Fatalf("unexpected response %d len=%d", resp.StatusCode, len(got))
	}
}
