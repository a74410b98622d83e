package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickgig/internal/config"
	"quickgig/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	cfg := config.Default()
	cfg.JWT.Secret = "test-secret"
	cfg.Server.RateLimit.Burst = 100
	return &testAPI{t: t, router: SetupRouter(cfg, nil)}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func data(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	d, ok := decode(t, w)["data"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return d
}

// register возвращает токен и id нового пользователя
func (a *testAPI) register(name, phone, role string) (string, uint) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/register", "", map[string]interface{}{
		"name":     name,
		"phone":    phone,
		"password": "secret1",
		"role":     role,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(a.t, w)
	user := body["user"].(map[string]interface{})
	return body["token"].(string), uint(user["id"].(float64))
}

func shiftBody() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Бариста",
		"pay_per_hour": 120,
		"start_at":     "2030-01-10T08:00:00Z",
		"end_at":       "2030-01-10T16:00:00Z",
		"latitude":     50.45,
		"longitude":    30.52,
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/health", "/api/health"} {
		w := api.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","service":"quickgig-api"}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.do(http.MethodGet, "/api/health", "", nil)

	w := api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quickgig_http_requests_total")
}

func TestShiftLifecycle(t *testing.T) {
	api := newTestAPI(t)
	employerToken, employerID := api.register("Cafe", "380671112233", "employer")
	workerToken, workerID := api.register("Alex", "380673334455", "worker")

	// работник не может публиковать смены
	w := api.do(http.MethodPost, "/api/shifts", workerToken, shiftBody())
	assert.Equal(t, http.StatusForbidden, w.Code)

	// конец раньше начала
	bad := shiftBody()
	bad["end_at"] = "2030-01-10T07:00:00Z"
	w = api.do(http.MethodPost, "/api/shifts", employerToken, bad)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "end_at")

	w = api.do(http.MethodPost, "/api/shifts", employerToken, shiftBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	shift := data(t, w)
	shiftID := uint(shift["id"].(float64))
	assert.Equal(t, "offline", shift["work_format"])
	assert.EqualValues(t, 1, shift["required_workers"])
	assert.Equal(t, "open", shift["status"])

	// отклик без сообщения, повторный отклик возвращает тот же id
	applyPath := fmt.Sprintf("/api/shifts/%d/apply", shiftID)
	w = api.do(http.MethodPost, applyPath, workerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	app := data(t, w)
	assert.Equal(t, "pending", app["status"])
	appID := app["id"]

	w = api.do(http.MethodPost, applyPath, workerToken, map[string]interface{}{"message": "again"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, appID, data(t, w)["id"])
	assert.Nil(t, data(t, w)["message"])

	// работодатель не может откликнуться
	w = api.do(http.MethodPost, applyPath, employerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	statusPath := fmt.Sprintf("/api/applications/%v/status", appID)
	w = api.do(http.MethodPatch, statusPath, employerToken, map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", data(t, w)["status"])

	// карточка смены анонимно
	w = api.do(http.MethodGet, fmt.Sprintf("/api/shifts/%d", shiftID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)
	assert.Nil(t, view["my_application"])
	detail := view["data"].(map[string]interface{})
	apps := detail["applications"].([]interface{})
	require.Len(t, apps, 1)
	assert.Equal(t, "accepted", apps[0].(map[string]interface{})["status"])
	assert.EqualValues(t, employerID, detail["employer"].(map[string]interface{})["id"])

	// карточка смены с токеном работника
	w = api.do(http.MethodGet, fmt.Sprintf("/api/shifts/%d", shiftID), workerToken, nil)
	mine := decode(t, w)["my_application"].(map[string]interface{})
	assert.EqualValues(t, workerID, mine["worker_id"])

	w = api.do(http.MethodGet, "/api/my/applications", workerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "accepted", list[0].(map[string]interface{})["status"])

	w = api.do(http.MethodGet, "/api/my/shifts", employerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["shifts"])
	assert.EqualValues(t, 1, stats["accepted"])
	assert.EqualValues(t, 100, stats["acceptance_rate"])

	// закрытие не трогает остальные поля и убирает смену из ленты
	w = api.do(http.MethodPatch, fmt.Sprintf("/api/shifts/%d", shiftID), employerToken, map[string]interface{}{"status": "closed"})
	require.Equal(t, http.StatusOK, w.Code)
	closed := data(t, w)
	assert.Equal(t, "closed", closed["status"])
	assert.Equal(t, shift["title"], closed["title"])
	assert.Equal(t, shift["start_at"], closed["start_at"])

	w = api.do(http.MethodGet, "/api/shifts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["data"])
}

func TestForeignEmployerCannotChangeStatus(t *testing.T) {
	api := newTestAPI(t)
	ownerToken, _ := api.register("Owner", "380671110001", "employer")
	otherToken, _ := api.register("Other", "380671110002", "employer")
	workerToken, _ := api.register("Worker", "380671110003", "worker")

	w := api.do(http.MethodPost, "/api/shifts", ownerToken, shiftBody())
	shiftID := data(t, w)["id"]
	w = api.do(http.MethodPost, fmt.Sprintf("/api/shifts/%v/apply", shiftID), workerToken, nil)
	appID := data(t, w)["id"]

	for _, status := range []string{"accepted", "rejected", "pending"} {
		w = api.do(http.MethodPatch, fmt.Sprintf("/api/applications/%v/status", appID), otherToken, map[string]interface{}{"status": status})
		assert.Equal(t, http.StatusForbidden, w.Code, status)
	}

	w = api.do(http.MethodPatch, fmt.Sprintf("/api/shifts/%v", shiftID), otherToken, map[string]interface{}{"title": "Mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	api := newTestAPI(t)
	api.register("First", "380501234567", "worker")

	w := api.do(http.MethodPost, "/api/register", "", map[string]interface{}{
		"name":     "Second",
		"phone":    "380501234567",
		"password": "secret1",
		"role":     "worker",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "phone")
}

func TestRegisterEmptyBody(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/register", "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := decode(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "phone")
}

func TestLoginAndLogout(t *testing.T) {
	api := newTestAPI(t)
	api.register("Alex", "380673334455", "worker")

	login := func() string {
		w := api.do(http.MethodPost, "/api/login", "", map[string]interface{}{
			"phone":    "380673334455",
			"password": "secret1",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode(t, w)["token"].(string)
	}
	first, second := login(), login()

	w := api.do(http.MethodPost, "/api/login", "", map[string]interface{}{
		"phone":    "380673334455",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/logout", first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())

	w = api.do(http.MethodGet, "/api/me", first, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/api/me", second, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "Alex", user["name"])
	assert.EqualValues(t, 0, user["rating"])
}

func TestUnauthenticated(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthenticated."}`, w.Body.String())

	w = api.do(http.MethodPost, "/api/shifts", "garbage", shiftBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviews(t *testing.T) {
	api := newTestAPI(t)
	employerToken, employerID := api.register("Cafe", "380671112233", "employer")
	workerToken, workerID := api.register("Alex", "380673334455", "worker")

	w := api.do(http.MethodPost, "/api/reviews", workerToken, map[string]interface{}{
		"to_user_id": workerID,
		"rating":     5,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodPost, "/api/reviews", workerToken, map[string]interface{}{
		"to_user_id": employerID,
		"rating":     6,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "rating")

	for _, r := range []int{5, 3, 4} {
		w = api.do(http.MethodPost, "/api/reviews", workerToken, map[string]interface{}{
			"to_user_id": employerID,
			"rating":     r,
			"comment":    "ok",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	body := decode(t, w)
	assert.EqualValues(t, 4, body["target_rating"])
	assert.EqualValues(t, 3, body["target_reviews_count"])

	w = api.do(http.MethodGet, "/api/me", employerToken, nil)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.EqualValues(t, 4, user["rating"])
	assert.EqualValues(t, 3, user["reviews_count"])

	w = api.do(http.MethodGet, fmt.Sprintf("/api/users/%d", employerID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := data(t, w)
	assert.Equal(t, "Cafe", profile["name"])
	assert.NotContains(t, profile, "phone")
	assert.Len(t, profile["recent_reviews"], 3)
}

func TestShiftFeedFilters(t *testing.T) {
	api := newTestAPI(t)
	employerToken, _ := api.register("Cafe", "380671112233", "employer")

	cheap := shiftBody()
	cheap["pay_per_hour"] = 80
	api.do(http.MethodPost, "/api/shifts", employerToken, cheap)
	api.do(http.MethodPost, "/api/shifts", employerToken, shiftBody())

	w := api.do(http.MethodGet, "/api/shifts?min_pay=100", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = api.do(http.MethodGet, "/api/shifts?lat=50.45&lng=30.52&radius_km=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["data"].([]interface{})
	require.Len(t, items, 2)
	assert.EqualValues(t, 0, items[0].(map[string]interface{})["distance_km"])

	w = api.do(http.MethodGet, "/api/shifts?lat=50.45", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodGet, "/api/shifts?min_pay=abc", "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, "The min pay field must be an integer.", body["message"])
	assert.Contains(t, body["errors"], "min_pay")

	w = api.do(http.MethodGet, "/api/shifts?lat=x&lng=30.52", "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := decode(t, w)["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"The lat field must be a number."}, errs["lat"])

	w = api.do(http.MethodGet, "/api/shifts?date_from=2030-01-11", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["data"])
}

func TestMistypedBodyFields(t *testing.T) {
	api := newTestAPI(t)
	ownerToken, ownerID := api.register("Owner", "380671110001", "employer")
	otherToken, _ := api.register("Other", "380671110002", "employer")
	workerToken, _ := api.register("Worker", "380671110003", "worker")

	for _, rating := range []interface{}{4.5, "5"} {
		w := api.do(http.MethodPost, "/api/reviews", workerToken, map[string]interface{}{
			"to_user_id": ownerID,
			"rating":     rating,
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		errs := decode(t, w)["errors"].(map[string]interface{})
		assert.Equal(t, []interface{}{"The rating field must be an integer."}, errs["rating"])
	}

	badPay := shiftBody()
	badPay["pay_per_hour"] = 12.5
	w := api.do(http.MethodPost, "/api/shifts", ownerToken, badPay)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(t, "The pay per hour field must be an integer.", decode(t, w)["message"])

	badPay["pay_per_hour"] = "x"
	w = api.do(http.MethodPost, "/api/shifts", workerToken, badPay)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/shifts", ownerToken, shiftBody())
	shiftID := data(t, w)["id"]
	w = api.do(http.MethodPost, fmt.Sprintf("/api/shifts/%v/apply", shiftID), workerToken, nil)
	appID := data(t, w)["id"]

	statusPath := fmt.Sprintf("/api/applications/%v/status", appID)
	w = api.do(http.MethodPatch, statusPath, otherToken, map[string]interface{}{"status": 1})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = api.do(http.MethodPatch, statusPath, ownerToken, map[string]interface{}{"status": 1})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, decode(t, w)["errors"], "status")
}

func TestMalformedJSON(t *testing.T) {
	api := newTestAPI(t)
	workerToken, _ := api.register("Worker", "380671110003", "worker")

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte(`{"rating":`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+workerToken)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body.", decode(t, w)["message"])
}

func TestUnknownIDs(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/shifts/abc", "/api/shifts/999", "/api/users/0"} {
		w := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}
