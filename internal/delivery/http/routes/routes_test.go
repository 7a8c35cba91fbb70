package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"hr-recruitment/internal/config"
	"hr-recruitment/internal/delivery/http/handler"
	"hr-recruitment/internal/delivery/http/middleware"
	"hr-recruitment/internal/domain/hruser"
	"hr-recruitment/internal/infrastructure/export"
	"hr-recruitment/internal/infrastructure/storage"
	"hr-recruitment/internal/pkg/validator"
	"hr-recruitment/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hrToken    = "hr-token"
	adminToken = "admin-token"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app     *fiber.App
	store   *memStore
	limiter *countingLimiter
	hr      hruser.User
	admin   hruser.User
	uploads string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		store:   newMemStore(),
		limiter: &countingLimiter{},
		hr:      hruser.User{ID: uuid.New(), Username: "hr", Role: hruser.RoleHR, IsActive: true},
		admin:   hruser.User{ID: uuid.New(), Username: "admin", Role: hruser.RoleAdmin, IsActive: true},
		uploads: t.TempDir(),
	}
	auth := stubAuth{tokens: map[string]hruser.User{hrToken: s.hr, adminToken: s.admin}}

	submitUC := usecase.NewApplicationSubmitUsecase(s.store, newMemWriter, nil)
	queryUC := usecase.NewApplicationQueryUsecase(s.store, nil)
	statusUC := usecase.NewApplicationStatusUsecase(s.store, nil, usecase.OnboardingHook{})
	exportUC := usecase.NewApplicationExportUsecase(s.store, nil, export.NewXLSXRenderer(), export.NewCSVRenderer())

	blobs, err := storage.NewLocal(s.uploads, "/uploads")
	require.NoError(t, err)
	uploadUC := usecase.NewUploadUsecase(blobs, usecase.UploadLimits{CVMaxBytes: 64, ImageMaxBytes: 64}, nil)

	errMw := middleware.NewErrorMiddleware(nil)
	app := fiber.New(fiber.Config{ErrorHandler: errMw.Handler})
	app.Use(errMw.Middleware())

	reg := &Registry{
		Health:       handler.NewHealthHandler(nil, "hr-recruitment"),
		Applications: handler.NewApplicationHandler(submitUC, queryUC, statusUC, exportUC, validator.New()),
		Auth:         handler.NewAuthHandler(auth, handler.CookieOptions{Name: "authToken"}),
		JobTitles:    handler.NewJobTitleHandler(newStubJobTitles()),
		Uploads:      handler.NewUploadHandler(uploadUC),
		AuthMW:       middleware.NewAuthMiddleware(auth, "authToken"),
		Limiter:      s.limiter,
		RateLimit:    config.RateLimitConfig{APIPerWindow: 1000, SubmitPerMinute: 100, LoginPerMinute: 2},
		UploadDir:    s.uploads,
	}
	reg.Register(app)

	s.app = app
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func TestApplications_EndToEnd(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPost, "/api/applications/submit", "", map[string]any{
		"jobTitle":     "Engineer",
		"personalInfo": map[string]any{"name": "Ali", "hasVehicle": "yes"},
		"experiences":  []map[string]any{{"company": "X", "role": "Dev"}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	var submitted struct {
		ApplicationID uuid.UUID `json:"applicationId"`
		Status        string    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submitted))
	assert.Equal(t, "pending", submitted.Status)

	resp, env = s.do(t, http.MethodGet, "/api/applications/"+submitted.ApplicationID.String(), hrToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got struct {
		Application struct {
			ApplicationID uuid.UUID `json:"applicationId"`
			PersonalInfo  struct {
				Name       string `json:"name"`
				HasVehicle bool   `json:"hasVehicle"`
			} `json:"personalInfo"`
			Experiences []json.RawMessage `json:"experiences"`
			Education   []json.RawMessage `json:"education"`
		} `json:"application"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	details := got.Application
	assert.Equal(t, submitted.ApplicationID, details.ApplicationID)
	assert.True(t, details.PersonalInfo.HasVehicle)
	assert.Len(t, details.Experiences, 1)
	assert.NotNil(t, details.Education)

	resp, env = s.do(t, http.MethodPut, "/api/applications/"+submitted.ApplicationID.String()+"/status", hrToken,
		map[string]string{"status": "accepted"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var change struct {
		Status         string `json:"status"`
		PreviousStatus string `json:"previousStatus"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &change))
	assert.Equal(t, "accepted", change.Status)
	assert.Equal(t, "pending", change.PreviousStatus)

	resp, env = s.do(t, http.MethodGet, "/api/applications/stats", hrToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stats struct {
		TotalApplications int            `json:"totalApplications"`
		ByStatus          map[string]int `json:"byStatus"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalApplications)
	assert.GreaterOrEqual(t, stats.ByStatus["accepted"], 1)
}

func TestApplications_SubmitValidation(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPost, "/api/applications/submit", "", map[string]any{
		"personalInfo": map[string]any{"name": "Ali"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Job title is required", env.Message)

	resp, _ = s.do(t, http.MethodPost, "/api/applications/submit", "", `{"jobTitle": "X", "personalInfo": {"name": "A", "hasVehicle": "maybe"}}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = s.do(t, http.MethodPost, "/api/applications/submit", "", map[string]any{
		"appliedJob":  map[string]string{"jobTitle": "Driver"},
		"experiences": []map[string]any{{"company": "", "role": "Dev"}},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(env.Data), "experiences[0].company")

	assert.Empty(t, s.store.items)
}

func TestApplications_SubmitRejectsOverlongFlexibleFields(t *testing.T) {
	s := newTestServer(t)
	long := strings.Repeat("9", 51)

	resp, env := s.do(t, http.MethodPost, "/api/applications/submit", "", map[string]any{
		"jobTitle":     "Engineer",
		"personalInfo": map[string]any{"name": "Ali", "whatsappNumber": long},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, string(env.Data), "personalInfo.whatsappNumber")

	resp, env = s.do(t, http.MethodPost, "/api/applications/submit", "",
		`{"jobTitle": "Engineer", "education": [{"institution": "Uni", "grade": `+long+`}]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(env.Data), "education[0].grade")

	assert.Empty(t, s.store.items)

	resp, _ = s.do(t, http.MethodPost, "/api/applications/submit", "",
		`{"jobTitle": "Engineer", "personalInfo": {"name": "Ali", "age": 1e300}}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, s.store.items)

	resp, _ = s.do(t, http.MethodPost, "/api/applications/submit", "", map[string]any{
		"jobTitle":     "Engineer",
		"personalInfo": map[string]any{"name": "Ali", "whatsappNumber": "  " + strings.Repeat("9", 50) + "  "},
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestApplications_RequiresStaff(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodGet, "/api/applications", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = s.do(t, http.MethodGet, "/api/applications", "bogus", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/applications", hrToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestApplications_ListExcludesAcceptedToJoin(t *testing.T) {
	s := newTestServer(t)

	ids := make([]string, 0, 3)
	for _, name := range []string{"A", "B", "C"} {
		_, env := s.do(t, http.MethodPost, "/api/applications/submit", "", map[string]any{
			"jobTitle": "Cashier", "personalInfo": map[string]any{"name": name},
		})
		var res struct {
			ApplicationID string `json:"applicationId"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &res))
		ids = append(ids, res.ApplicationID)
	}
	resp, _ := s.do(t, http.MethodPut, "/api/applications/"+ids[0]+"/status", hrToken, map[string]string{"status": "accepted_to_join"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page struct {
		Applications []struct {
			ApplicationID string `json:"applicationId"`
		} `json:"applications"`
		Pagination usecase.Pagination `json:"pagination"`
	}

	_, env := s.do(t, http.MethodGet, "/api/applications?page=1&limit=1", hrToken, nil)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Applications, 1)
	assert.Equal(t, 2, page.Pagination.TotalCount)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage)
	assert.False(t, page.Pagination.HasPrevPage)

	_, env = s.do(t, http.MethodGet, "/api/applications/accepted-to-join", hrToken, nil)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Applications, 1)
	assert.Equal(t, ids[0], page.Applications[0].ApplicationID)

	resp, _ = s.do(t, http.MethodGet, "/api/applications?page=abc", hrToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, "/api/applications?limit=0", hrToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, "/api/applications?status=archived", hrToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestApplications_StatusErrors(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodPut, "/api/applications/"+uuid.NewString()+"/status", hrToken, map[string]string{"status": "accepted"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, env := s.do(t, http.MethodPut, "/api/applications/"+uuid.NewString()+"/status", hrToken, map[string]string{"status": "hired"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "accepted_to_join")

	resp, _ = s.do(t, http.MethodGet, "/api/applications/not-a-uuid", hrToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestApplications_Export(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodGet, "/api/applications/export/excel", hrToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No applications found to export", env.Message)

	_, _ = s.do(t, http.MethodPost, "/api/applications/submit", "", map[string]any{
		"jobTitle": "Engineer", "personalInfo": map[string]any{"name": "Ali"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/applications/export/excel?format=csv", nil)
	req.Header.Set("Authorization", "Bearer "+hrToken)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "HR_Applications_Summary_")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Ali")
	assert.Contains(t, string(body), "Engineer")

	resp, _ = s.do(t, http.MethodGet, "/api/applications/export/excel?format=pdf", hrToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuth_LoginCookieAndRoles(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "secret1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "authToken" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, adminToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: adminToken})
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, env = s.do(t, http.MethodGet, "/api/auth/roles", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var roles struct {
		Roles map[string]struct {
			UserType    string   `json:"userType"`
			Permissions []string `json:"permissions"`
		} `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	assert.Equal(t, "admin", roles.Roles["Admin"].UserType)
	assert.Equal(t, "hr", roles.Roles["HR"].UserType)

	resp, _ = s.do(t, http.MethodGet, "/api/auth/roles", hrToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, "/api/auth/hr-users/"+s.admin.ID.String(), adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuth_LoginRateLimited(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 2; i++ {
		resp, _ := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "x", "password": "y"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
	resp, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "x", "password": "y"})
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, env.Message, "Too many login attempts")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestJobTitles_PublicListAndStaffWrites(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodPost, "/api/jobs/", "", map[string]any{"title": "Driver"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env := s.do(t, http.MethodPost, "/api/jobs/", hrToken, map[string]any{"title": "Driver", "isActive": false})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, _ = s.do(t, http.MethodPost, "/api/jobs/", hrToken, map[string]any{"title": "driver"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, env = s.do(t, http.MethodGet, "/api/jobs/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(env.Data))

	resp, _ = s.do(t, http.MethodPatch, "/api/jobs/"+created.ID+"/status", hrToken, map[string]any{"isActive": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, env = s.do(t, http.MethodGet, "/api/jobs/", "", nil)
	var active []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &active))
	assert.Len(t, active, 1)

	resp, _ = s.do(t, http.MethodDelete, "/api/jobs/"+uuid.NewString(), hrToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func (s *testServer) upload(t *testing.T, path, field, filename, contentType string, content []byte) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := s.app.Test(req)
	require.NoError(t, err)

	var env envelope
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestUploads_CVStoredAndServed(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.upload(t, "/api/uploads/cv", "cv", "resume.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	var res struct {
		FilePath string `json:"filePath"`
		MimeType string `json:"mimeType"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, strings.HasPrefix(res.FilePath, "/uploads/cv/cv-"), res.FilePath)
	assert.Equal(t, "application/pdf", res.MimeType)

	got, err := s.app.Test(httptest.NewRequest(http.MethodGet, res.FilePath, nil))
	require.NoError(t, err)
	defer got.Body.Close()
	body, _ := io.ReadAll(got.Body)
	assert.Equal(t, "%PDF-1.4", string(body))
}

func TestUploads_Rejections(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.upload(t, "/api/uploads/cv", "cv", "notes.txt", "text/plain", []byte("hi"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_FILE_TYPE", env.Error)

	resp, env = s.upload(t, "/api/uploads/profile-image", "profileImage", "me.png", "image/png", bytes.Repeat([]byte{1}, 65))
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error)

	resp, _ = s.upload(t, "/api/uploads/cv", "other", "resume.pdf", "application/pdf", []byte("x"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
