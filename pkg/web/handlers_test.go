package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/pipeline"
	"github.com/kaljuvee/postwave/pkg/registry"
	"github.com/kaljuvee/postwave/pkg/web"
)

type stubFetcher struct {
	content string
	err     error
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return f.content, f.err
}

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, content string, platform models.Platform, _ string) (string, error) {
	return string(platform) + " draft: " + content, nil
}

type stubPublisher struct {
	fail map[models.Platform]error
}

func (p *stubPublisher) Publish(_ context.Context, platform models.Platform, _ string) (string, error) {
	if err, ok := p.fail[platform]; ok {
		return "", err
	}

	return string(platform) + "-1", nil
}

func setupTestApp(t *testing.T, fetcher *stubFetcher, publisher *stubPublisher) *fiber.App {
	t.Helper()

	if fetcher == nil {
		fetcher = &stubFetcher{content: "Hello world"}
	}

	if publisher == nil {
		publisher = &stubPublisher{}
	}

	engine := pipeline.NewEngine(fetcher, stubGenerator{}, publisher)
	validate := validator.New(validator.WithRequiredStructEnabled())
	registryInstance := registry.NewRegistry(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	app := fiber.New()
	web.NewAPIHandlers(engine, validate, registryInstance).Register(app)

	return app
}

func createRun(t *testing.T, app *fiber.App, platforms []string) web.RunResponse {
	t.Helper()

	body, err := json.Marshal(web.CreateRunRequest{
		URL:       "https://example.com/article",
		Platforms: platforms,
		Style:     "professional",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/runs", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var run web.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))

	return run
}

func TestCreateRun(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	run := createRun(t, app, []string{"twitter", "linkedin"})

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, models.RunStatusAwaitingApproval, run.Status)
	require.Len(t, run.Posts, 2)
	assert.Equal(t, models.PlatformTwitter, run.Posts[0].Platform)
	assert.Equal(t, models.PlatformLinkedIn, run.Posts[1].Platform)
	assert.Equal(t, 280, run.Posts[0].CharacterLimit)
	assert.False(t, run.Posts[0].OverLimit)
	assert.Empty(t, run.Errors)
}

func TestCreateRun_Validation(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{"platforms": ["twitter"]}`},
		{"empty platforms", `{"url": "https://example.com", "platforms": []}`},
		{"not a url", `{"url": "nope", "platforms": ["twitter"]}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/runs", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreateRun_FetchFailureReportedInBody(t *testing.T) {
	app := setupTestApp(t, &stubFetcher{err: errors.New("connection refused")}, nil)

	run := createRun(t, app, []string{"twitter"})

	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.Empty(t, run.Posts)
	require.Len(t, run.Errors, 1)
}

func TestGetRun(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter"})

	req := httptest.NewRequest(http.MethodGet, "/runs/"+run.ID, nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got web.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, run.ID, got.ID)
}

func TestGetRun_NotFound(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/runs/missing", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetRuns(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	createRun(t, app, []string{"twitter"})
	createRun(t, app, []string{"linkedin"})

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result struct {
		Runs       []web.RunResponse `json:"runs"`
		TotalCount int               `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, 2, result.TotalCount)
	assert.Len(t, result.Runs, 2)
}

func decide(t *testing.T, app *fiber.App, runID string, approve bool) *http.Response {
	t.Helper()

	body, err := json.Marshal(web.DecisionRequest{Approve: &approve})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/runs/"+runID+"/decision", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestDecideRun_Approve(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter", "linkedin"})

	resp := decide(t, app, run.ID, true)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got web.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, models.RunStatusCompleted, got.Status)

	for _, post := range got.Posts {
		assert.Equal(t, models.PostStatusPublished, post.Status)
		assert.NotEmpty(t, post.Metadata[models.MetadataPostID])
	}
}

func TestDecideRun_Reject(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter"})

	resp := decide(t, app, run.ID, false)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got web.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, models.RunStatusRejected, got.Status)
}

func TestDecideRun_Twice(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter"})

	first := decide(t, app, run.ID, true)
	_ = first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)

	second := decide(t, app, run.ID, true)
	defer func() { _ = second.Body.Close() }()

	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestDecideRun_MissingApproveField(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter"})

	req := httptest.NewRequest(http.MethodPost, "/runs/"+run.ID+"/decision", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCancelRun(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter"})

	req := httptest.NewRequest(http.MethodPost, "/runs/"+run.ID+"/cancel", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got web.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, models.RunStatusCancelled, got.Status)
}

func TestEditPost(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter"})

	body, err := json.Marshal(web.EditPostRequest{Content: "hand-written tweet"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/runs/"+run.ID+"/posts/"+run.Posts[0].ID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post web.PostResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(t, "hand-written tweet", post.Content)
	assert.Equal(t, len("hand-written tweet"), post.CharacterCount)
}

func TestApprovePost(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter"})

	req := httptest.NewRequest(http.MethodPost, "/runs/"+run.ID+"/posts/"+run.Posts[0].ID+"/approve", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post web.PostResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(t, models.PostStatusApproved, post.Status)
}

func TestRejectPost(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter", "linkedin"})

	req := httptest.NewRequest(http.MethodPost, "/runs/"+run.ID+"/posts/"+run.Posts[0].ID+"/reject", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post web.PostResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(t, models.PostStatusFailed, post.Status)
}

func TestRejectPost_Remove(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter", "linkedin"})

	req := httptest.NewRequest(
		http.MethodPost,
		"/runs/"+run.ID+"/posts/"+run.Posts[0].ID+"/reject",
		bytes.NewBufferString(`{"remove": true}`),
	)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getReq := httptest.NewRequest(http.MethodGet, "/runs/"+run.ID, nil)

	getResp, err := app.Test(getReq)
	require.NoError(t, err)

	defer func() { _ = getResp.Body.Close() }()

	var got web.RunResponse
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&got))
	assert.Len(t, got.Posts, 1)
}

func TestDeleteRun(t *testing.T) {
	app := setupTestApp(t, nil, nil)
	run := createRun(t, app, []string{"twitter"})

	req := httptest.NewRequest(http.MethodDelete, "/runs/"+run.ID, nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getReq := httptest.NewRequest(http.MethodGet, "/runs/"+run.ID, nil)

	getResp, err := app.Test(getReq)
	require.NoError(t, err)

	defer func() { _ = getResp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
