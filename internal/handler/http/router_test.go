package http

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kaamgar/kaamgar-backend-go/internal/config"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/middleware"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/jwt"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/storage"
	advanceService "github.com/kaamgar/kaamgar-backend-go/internal/service/advance"
	attendanceService "github.com/kaamgar/kaamgar-backend-go/internal/service/attendance"
	authService "github.com/kaamgar/kaamgar-backend-go/internal/service/auth"
	contractorService "github.com/kaamgar/kaamgar-backend-go/internal/service/contractor"
	holidayService "github.com/kaamgar/kaamgar-backend-go/internal/service/holiday"
	reportService "github.com/kaamgar/kaamgar-backend-go/internal/service/report"
	"github.com/kaamgar/kaamgar-backend-go/internal/service/servicetest"
	workerService "github.com/kaamgar/kaamgar-backend-go/internal/service/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

type testAPI struct {
	t        *testing.T
	handler  http.Handler
	accounts *servicetest.Accounts
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := servicetest.NewStore()
	accounts := servicetest.NewAccounts()
	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)
	photos, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	contractors := contractorService.NewContractorService(accounts)
	handlers := Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(accounts, accounts.Tokens(), jwtService), contractors),
		Worker:     NewWorkerHandler(workerService.NewWorkerService(store.Workers(), photos)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(store, store.Attendances(), store.Workers())),
		Advance:    NewAdvanceHandler(advanceService.NewAdvanceService(store.Advances(), store.Workers())),
		Holiday:    NewHolidayHandler(holidayService.NewHolidayService(store.Holidays())),
		Report:     NewReportHandler(reportService.NewReportService(store.Workers(), store.Attendances(), store.Advances(), store.Holidays())),
	}

	app := config.AppConfig{Env: "test", CORSOrigins: []string{"http://localhost:3000"}}
	router := NewRouter(app, jwtService, middleware.NewSubscriptionMiddleware(contractors), handlers)

	return &testAPI{t: t, handler: router, accounts: accounts}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

type registered struct {
	AccessToken string `json:"access_token"`
	Contractor  struct {
		ID          string `json:"id"`
		CompanyName string `json:"company_name"`
	} `json:"contractor"`
}

func (a *testAPI) register(email string) registered {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"company_name": "Sharma Builders",
		"email":        email,
		"password":     "password123",
		"phone":        "9876543210",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var out registered
	decode(a.t, rec, &out)
	require.NotEmpty(a.t, out.AccessToken)
	return out
}

func (a *testAPI) createWorker(token, name string) string {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/v1/workers", token, map[string]any{
		"name":            name,
		"age":             30,
		"daily_wage":      500,
		"work_start_time": "09:00",
		"work_end_time":   "18:00",
		"joining_date":    "2024-01-01",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		ID string `json:"id"`
	}
	decode(a.t, rec, &out)
	return out.ID
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler(t *testing.T) {
	api := newTestAPI(t)
	account := api.register("owner@builders.in")

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"company_name": "Other",
			"email":        "owner@builders.in",
			"password":     "password123",
			"phone":        "9876543210",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid register body is a validation error", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "nope"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		env := decode(t, rec, nil)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "company_name")
		assert.Contains(t, env.Error.Details, "email")
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "owner@builders.in",
			"password": "password123",
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "owner@builders.in",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("profile", func(t *testing.T) {
		rec := api.do(http.MethodPut, "/api/v1/auth/me", account.AccessToken, map[string]string{"address": "Pune"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = api.do(http.MethodGet, "/api/v1/auth/me", account.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var profile contractor.ContractorResponse
		decode(t, rec, &profile)
		assert.Equal(t, account.Contractor.ID, profile.ID)
		require.NotNil(t, profile.Address)
		assert.Equal(t, "Pune", *profile.Address)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/v1/auth/logout", account.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, api.accounts.Revoked(), 1)

		rec = api.do(http.MethodGet, "/api/v1/auth/me", account.AccessToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestWorkerHandler_TenantIsolation(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")
	other := api.register("other@builders.in")

	workerID := api.createWorker(owner.AccessToken, "Ramesh Kumar")

	rec := api.do(http.MethodGet, "/api/v1/workers/"+workerID, other.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/workers", other.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var workers []map[string]any
	decode(t, rec, &workers)
	assert.Empty(t, workers)

	rec = api.do(http.MethodPatch, "/api/v1/workers/"+workerID+"/toggle-status", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled struct {
		Status string `json:"status"`
	}
	decode(t, rec, &toggled)
	assert.Equal(t, "inactive", toggled.Status)

	rec = api.do(http.MethodGet, "/api/v1/workers?status=retired", owner.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/workers", owner.AccessToken, map[string]any{"name": "Too Young", "age": 12, "daily_wage": 300})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	assert.Contains(t, env.Error.Details, "age")
}

func TestAttendanceHandler(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")
	workerID := api.createWorker(owner.AccessToken, "Ramesh Kumar")

	mark := func(date, status string) *httptest.ResponseRecorder {
		return api.do(http.MethodPost, "/api/v1/attendance", owner.AccessToken, map[string]any{
			"worker_id": workerID,
			"date":      date,
			"status":    status,
		})
	}

	require.Equal(t, http.StatusOK, mark("2024-03-01", "absent").Code)
	require.Equal(t, http.StatusOK, mark("2024-03-01", "present").Code)

	rec := api.do(http.MethodGet, "/api/v1/attendance/date/2024-03-01", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "present", records[0].Status)

	rec = api.do(http.MethodPost, "/api/v1/attendance/bulk", owner.AccessToken, map[string]any{
		"records": []map[string]any{
			{"worker_id": workerID, "date": "2024-03-02", "status": "present"},
			{"worker_id": workerID, "date": "2024-04-01", "status": "leave"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/attendance?month=3&year=2024", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	assert.Len(t, records, 2)

	rec = api.do(http.MethodGet, "/api/v1/attendance?start_date=2024-03-02&end_date=2024-04-01&status=leave", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	assert.Len(t, records, 1)

	t.Run("bad query parameters", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/attendance?date=01-03-2024", owner.AccessToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = api.do(http.MethodGet, "/api/v1/attendance?month=13&year=2024", owner.AccessToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = api.do(http.MethodGet, "/api/v1/attendance?start_date=2024-03-05&end_date=2024-03-01", owner.AccessToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = api.do(http.MethodGet, "/api/v1/attendance/date/yesterday", owner.AccessToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("empty bulk", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/api/v1/attendance/bulk", owner.AccessToken, map[string]any{"records": []any{}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := api.do(http.MethodDelete, "/api/v1/attendance/"+records[0].ID, owner.AccessToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = api.do(http.MethodDelete, "/api/v1/attendance/"+records[0].ID, owner.AccessToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdvanceHandler(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")
	workerID := api.createWorker(owner.AccessToken, "Ramesh Kumar")

	create := func(amount int, date string) string {
		rec := api.do(http.MethodPost, "/api/v1/advances", owner.AccessToken, map[string]any{
			"worker_id": workerID,
			"amount":    amount,
			"date":      date,
			"reason":    "family function",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var out struct {
			ID string `json:"id"`
		}
		decode(t, rec, &out)
		return out.ID
	}

	create(100, "2024-03-02")
	cancelled := create(50, "2024-03-10")
	create(40, "2024-02-20")

	rec := api.do(http.MethodPatch, "/api/v1/advances/"+cancelled+"/cancel", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodPatch, "/api/v1/advances/"+cancelled+"/cancel", owner.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/advances/worker/"+workerID+"/monthly?month=3&year=2024", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var monthly struct {
		Total    string           `json:"total"`
		Advances []map[string]any `json:"advances"`
	}
	decode(t, rec, &monthly)
	assert.Equal(t, "100", monthly.Total)
	assert.Len(t, monthly.Advances, 1)

	rec = api.do(http.MethodGet, "/api/v1/advances?status=cancelled", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	decode(t, rec, &listed)
	assert.Len(t, listed, 1)

	rec = api.do(http.MethodPost, "/api/v1/advances", owner.AccessToken, map[string]any{
		"worker_id": workerID,
		"amount":    0,
		"date":      "2024-03-02",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHolidayHandler(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")

	body := map[string]string{"date": "2024-03-25", "name": "Holi"}
	rec := api.do(http.MethodPost, "/api/v1/holidays", owner.AccessToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/holidays", owner.AccessToken, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var holidays []map[string]any
	rec = api.do(http.MethodGet, "/api/v1/holidays?year=2024", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &holidays)
	assert.Len(t, holidays, 1)

	rec = api.do(http.MethodGet, "/api/v1/holidays?year=2025", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &holidays)
	assert.Empty(t, holidays)
}

func TestReportHandler(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")
	workerID := api.createWorker(owner.AccessToken, "Ramesh Kumar")

	rec := api.do(http.MethodPost, "/api/v1/attendance/bulk", owner.AccessToken, map[string]any{
		"records": []map[string]any{
			{"worker_id": workerID, "date": "2024-03-01", "status": "present"},
			{"worker_id": workerID, "date": "2024-03-04", "status": "present", "overtime_hours": 2},
			{"worker_id": workerID, "date": "2024-03-05", "status": "absent"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = api.do(http.MethodPost, "/api/v1/advances", owner.AccessToken, map[string]any{
		"worker_id": workerID,
		"amount":    100,
		"date":      "2024-03-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("monthly payroll", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/reports/payroll?month=3&year=2024", owner.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var report struct {
			WorkingDays int `json:"working_days"`
			Summary     struct {
				TotalNetSalary string `json:"total_net_salary"`
				Workers        []struct {
					PresentDays int    `json:"present_days"`
					NetSalary   string `json:"net_salary"`
				} `json:"workers"`
			} `json:"summary"`
		}
		decode(t, rec, &report)
		assert.Equal(t, 21, report.WorkingDays)
		require.Len(t, report.Summary.Workers, 1)
		assert.Equal(t, 2, report.Summary.Workers[0].PresentDays)
		assert.Equal(t, "1011.11", report.Summary.Workers[0].NetSalary)
		assert.Equal(t, "1011.11", report.Summary.TotalNetSalary)
	})

	t.Run("csv export", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/reports/payroll/export?month=3&year=2024", owner.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-2024-03.csv")
		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Worker Name,"))
		assert.Equal(t, "Ramesh Kumar,500.00,2,1,0,2,1000.00,111.11,1111.11,100.00,1011.11", lines[1])
	})

	t.Run("worker stats over all records", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/reports/workers/"+workerID+"/stats", owner.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var stats struct {
			Period string `json:"period"`
			Stats  struct {
				Present int `json:"present"`
				Absent  int `json:"absent"`
			} `json:"stats"`
		}
		decode(t, rec, &stats)
		assert.Equal(t, "all-time", stats.Period)
		assert.Equal(t, 2, stats.Stats.Present)
		assert.Equal(t, 1, stats.Stats.Absent)
	})

	t.Run("daily", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/reports/daily?date=2024-03-05", owner.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var daily struct {
			Absent    int `json:"absent"`
			NotMarked int `json:"not_marked"`
		}
		decode(t, rec, &daily)
		assert.Equal(t, 1, daily.Absent)
		assert.Equal(t, 0, daily.NotMarked)
	})

	t.Run("invalid month", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/reports/payroll?month=0&year=2024", owner.AccessToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("dashboard", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/reports/dashboard", owner.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var dashboard struct {
			ActiveWorkers int `json:"active_workers"`
		}
		decode(t, rec, &dashboard)
		assert.Equal(t, 1, dashboard.ActiveWorkers)
	})
}

func TestSubscriptionExpiredIsReadOnly(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")
	api.createWorker(owner.AccessToken, "Ramesh Kumar")

	api.accounts.SetStatus(owner.Contractor.ID, contractor.SubscriptionExpired)

	rec := api.do(http.MethodGet, "/api/v1/workers", owner.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/workers", owner.AccessToken, map[string]any{"name": "Suresh", "age": 30, "daily_wage": 400})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/auth/me", owner.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func (a *testAPI) uploadPhoto(token, workerID string, fields map[string]string, photo []byte) *httptest.ResponseRecorder {
	a.t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "site.png")
		require.NoError(a.t, err)
		_, err = part.Write(photo)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/workers/"+workerID+"/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestWorkerHandler_Photo(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")
	workerID := api.createWorker(owner.AccessToken, "Ramesh Kumar")

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 1000, 500))))

	rec := api.do(http.MethodGet, "/api/v1/workers/"+workerID+"/photo", owner.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.uploadPhoto(owner.AccessToken, workerID, map[string]string{"latitude": "19.0760"}, img.Bytes())
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	env := decode(t, rec, nil)
	assert.Contains(t, env.Error.Details, "location")

	rec = api.uploadPhoto(owner.AccessToken, workerID, map[string]string{"latitude": "19.0760", "longitude": "72.8777"}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	env = decode(t, rec, nil)
	assert.Contains(t, env.Error.Details, "photo")

	rec = api.uploadPhoto(owner.AccessToken, workerID, map[string]string{
		"latitude":  "19.0760",
		"longitude": "72.8777",
		"accuracy":  "8",
		"timestamp": "2024-03-01T10:00:00Z",
	}, img.Bytes())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var uploaded struct {
		PhotoURL      *string `json:"photo_url"`
		PhotoLocation *struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Accuracy  float64 `json:"accuracy"`
			Timestamp string  `json:"timestamp"`
		} `json:"photo_location"`
	}
	decode(t, rec, &uploaded)
	require.NotNil(t, uploaded.PhotoURL)
	assert.Equal(t, "/api/v1/workers/"+workerID+"/photo", *uploaded.PhotoURL)
	require.NotNil(t, uploaded.PhotoLocation)
	assert.Equal(t, 19.076, uploaded.PhotoLocation.Latitude)
	assert.Equal(t, 8.0, uploaded.PhotoLocation.Accuracy)
	assert.Equal(t, "2024-03-01T10:00:00Z", uploaded.PhotoLocation.Timestamp)

	rec = api.do(http.MethodGet, "/api/v1/workers/"+workerID+"/photo", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	cfg, err := jpeg.DecodeConfig(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height)

	other := api.register("other@builders.in")
	rec = api.do(http.MethodGet, "/api/v1/workers/"+workerID+"/photo", other.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodDelete, "/api/v1/workers/"+workerID+"/photo", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = api.do(http.MethodGet, "/api/v1/workers/"+workerID+"/photo", owner.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlers_MalformedIDs(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")

	for _, path := range []string{
		"/api/v1/workers/not-a-uuid",
		"/api/v1/workers/not-a-uuid/photo",
		"/api/v1/advances/worker/12345/monthly?month=3&year=2024",
		"/api/v1/attendance?worker_id=w-1",
	} {
		t.Run(path, func(t *testing.T) {
			rec := api.do(http.MethodGet, path, owner.AccessToken, nil)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			env := decode(t, rec, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		})
	}
}

func TestHandlers_ListMeta(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")

	rec := api.do(http.MethodGet, "/api/v1/workers", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec, nil)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 0, env.Meta.Total)
	assert.JSONEq(t, "[]", string(env.Data))

	api.createWorker(owner.AccessToken, "Ramesh Kumar")
	api.createWorker(owner.AccessToken, "Suresh Patil")

	rec = api.do(http.MethodGet, "/api/v1/workers", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var workers []map[string]any
	env = decode(t, rec, &workers)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Total)
	assert.Len(t, workers, 2)
}

func TestAdvanceHandler_AmountPrecision(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register("owner@builders.in")
	workerID := api.createWorker(owner.AccessToken, "Ramesh Kumar")

	rec := api.do(http.MethodPost, "/api/v1/advances", owner.AccessToken, map[string]any{
		"worker_id": workerID,
		"amount":    "0.001",
		"date":      "2024-03-02",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	env := decode(t, rec, nil)
	assert.Equal(t, "amount must have at most 2 decimal places", env.Error.Details["amount"])
}
