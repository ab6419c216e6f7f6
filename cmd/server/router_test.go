package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studylab/internal/platform/config"
	"studylab/pkg/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	a, cleanup, err := buildApp(context.Background(), config.Server{}, logger, reg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return newRouter(a, reg, logger, 5*time.Second)
}

type studyBody struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	OwnerID        string     `json:"owner_id"`
	OpenedDateTime *time.Time `json:"opened_date_time"`
}

func TestRouter_StudyLifecycle(t *testing.T) {
	router := newTestRouter(t)

	testutil.Given(t, "a registered member", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members", map[string]string{"email": "test@test.com"}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		memberID := (*testutil.UnmarshalResponse[map[string]any](t, rr))["id"].(string)

		testutil.When(t, "the member creates a study", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members/"+memberID+"/studies",
				map[string]any{"limit_count": 10, "name": "java"}))
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
			created := testutil.UnmarshalResponse[studyBody](t, rr)

			testutil.Then(t, "the study is owned and can be opened", func(t *testing.T) {
				assert.Equal(t, memberID, created.OwnerID)
				assert.Equal(t, "DRAFT", created.Status)

				rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/study/"+created.ID+"/open", nil))
				require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
				opened := testutil.UnmarshalResponse[studyBody](t, rr)
				assert.Equal(t, "OPENED", opened.Status)
				assert.NotNil(t, opened.OpenedDateTime)

				rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/study/"+created.ID, nil))
				require.Equal(t, http.StatusOK, rr.Code)
				assert.Equal(t, "OPENED", testutil.UnmarshalResponse[studyBody](t, rr).Status)
			})
		})
	})

	testutil.Given(t, "an unknown member", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost,
			"/members/6f1c2d9e-0000-4000-8000-000000000009/studies", map[string]any{"limit_count": 1}))

		testutil.Then(t, "creating a study is not found", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
		})
	})
}

func TestRouter_Ambient(t *testing.T) {
	router := newTestRouter(t)

	t.Run("health", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("echo", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(http.MethodPost, "/test", `{"name":"kim","age":7}`))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"name":"kim","age":7}`, rr.Body.String())
	})

	t.Run("negative limit", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(http.MethodPost, "/study", `{"limit_count":-10,"name":"x"}`))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})

	t.Run("metrics expose route patterns", func(t *testing.T) {
		testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/study/6f1c2d9e-0000-4000-8000-000000000001", nil))
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.True(t, strings.Contains(body, `route="/study/{id}"`), body)
		assert.Contains(t, body, "studylab_study_operation_duration_seconds")
	})
}

func TestRouter_PanicKeepsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	reg := prometheus.NewRegistry()
	a, cleanup, err := buildApp(context.Background(), config.Server{}, logger, reg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	router := newRouter(a, reg, logger, 5*time.Second)
	router.(chi.Router).Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	req := testutil.NewJSONRequest(t, http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "req-panic-1")
	rr := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "req-panic-1", rr.Header().Get("X-Request-ID"))

	byMsg := map[string]map[string]any{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		byMsg[entry["msg"].(string)] = entry
	}

	require.Contains(t, byMsg, "panic recovered")
	assert.Equal(t, "req-panic-1", byMsg["panic recovered"]["request_id"])
	require.Contains(t, byMsg, "http request")
	assert.Equal(t, "req-panic-1", byMsg["http request"]["request_id"])
	assert.EqualValues(t, http.StatusInternalServerError, byMsg["http request"]["status"])
}
