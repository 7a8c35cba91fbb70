package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AccessLogMiddleware struct {
	logger *log.Logger
	skip   map[string]struct{}
}

// NewAccessLogMiddleware logs one line per request. Paths in skip (exact match) are not logged.
func NewAccessLogMiddleware(logger *log.Logger, skip ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	m := &AccessLogMiddleware{logger: logger, skip: make(map[string]struct{}, len(skip))}
	for _, p := range skip {
		m.skip[p] = struct{}{}
	}
	return m
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, rid)

		err := c.Next()

		if _, ok := m.skip[c.Path()]; ok {
			return err
		}

		// The error middleware sits outside this one, so a returned error has
		// not been written to the response yet.
		status := c.Response().StatusCode()
		if err != nil {
			status, _, _, _ = normalizeError(err)
		}

		actor := "-"
		if usr, ok := CurrentUser(c); ok {
			actor = usr.Username
		}

		m.logger.Printf(
			"[HTTP] access | rid=%s ip=%s method=%s path=%s status=%d latency=%s user=%s resp_bytes=%d ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), status, time.Since(start), actor,
			len(c.Response().Body()), c.Get(fiber.HeaderUserAgent),
		)

		return err
	}
}
