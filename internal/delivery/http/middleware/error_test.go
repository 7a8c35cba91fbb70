package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

type body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newErrorApp(routes func(app *fiber.App)) *fiber.App {
	errMw := NewErrorMiddleware(nil)
	app := fiber.New(fiber.Config{ErrorHandler: errMw.Handler})
	app.Use(errMw.Middleware())
	routes(app)
	return app
}

func call(t *testing.T, app *fiber.App, path string) (int, body) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()
	var b body
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode, b
}

func TestErrorMiddleware_Envelope(t *testing.T) {
	app := newErrorApp(func(app *fiber.App) {
		app.Get("/coded", func(c fiber.Ctx) error {
			return NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, nil).WithCode("FILE_TOO_LARGE")
		})
		app.Get("/internal", func(c fiber.Ctx) error {
			return NewAppError(fiber.StatusInternalServerError, "pq: relation missing", nil, errors.New("db"))
		})
		app.Get("/plain", func(c fiber.Ctx) error { return errors.New("connection reset") })
		app.Get("/panic", func(c fiber.Ctx) error { panic("boom") })
	})

	status, b := call(t, app, "/coded")
	if status != fiber.StatusRequestEntityTooLarge || b.Error != "FILE_TOO_LARGE" || b.Success {
		t.Fatalf("unexpected coded response: %d %+v", status, b)
	}

	for _, path := range []string{"/internal", "/plain", "/panic"} {
		status, b := call(t, app, path)
		if status != fiber.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, status)
		}
		if b.Message != "internal server error" {
			t.Fatalf("%s: 5xx detail leaked: %q", path, b.Message)
		}
	}
}

type denyAfter struct{ n int }

func (d *denyAfter) Allow(context.Context, string, int, time.Duration) bool {
	d.n--
	return d.n >= 0
}

func TestRateLimit(t *testing.T) {
	app := newErrorApp(func(app *fiber.App) {
		app.Get("/limited", RateLimit(&denyAfter{n: 1}, "t", 1, time.Minute, "slow down"), func(c fiber.Ctx) error {
			return c.SendString(`{"success":true}`)
		})
		app.Get("/open", RateLimit(nil, "t", 1, time.Minute, ""), func(c fiber.Ctx) error {
			return c.SendString(`{"success":true}`)
		})
	})

	if status, _ := call(t, app, "/limited"); status != fiber.StatusOK {
		t.Fatalf("first request should pass, got %d", status)
	}
	status, b := call(t, app, "/limited")
	if status != fiber.StatusTooManyRequests || b.Message != "slow down" {
		t.Fatalf("expected 429 with message, got %d %+v", status, b)
	}
	for i := 0; i < 3; i++ {
		if status, _ := call(t, app, "/open"); status != fiber.StatusOK {
			t.Fatalf("nil limiter must not block, got %d", status)
		}
	}
}
