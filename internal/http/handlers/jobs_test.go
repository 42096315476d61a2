package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"showcase/internal/brief"
	"showcase/internal/domain"
	"showcase/internal/http/handlers"
	"showcase/internal/http/httpapi"
	"showcase/internal/middleware"
	"showcase/internal/orchestrator"
	"showcase/internal/providers/genai"
	"showcase/internal/providers/image"
	"showcase/internal/providers/vision"
	"showcase/internal/state"
	"showcase/internal/storage"
	"showcase/internal/verify"
)

// memoryTasks is an in-memory task registry standing in for the PostgreSQL
// one; the worker loop is simulated by drain.
type memoryTasks struct {
	mu     sync.Mutex
	nextID int64
	tasks  []*domain.Task
}

func (m *memoryTasks) Enqueue(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	task.ID = m.nextID
	task.Status = domain.TaskStatusQueued
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *memoryTasks) Claim(_ context.Context) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, task := range m.tasks {
		if task.Status == domain.TaskStatusQueued {
			task.Status = domain.TaskStatusRunning
			return task, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryTasks) Finish(_ context.Context, taskID int64, status domain.TaskStatus, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, task := range m.tasks {
		if task.ID == taskID {
			task.Status = status
			task.ErrorMessage = errMsg
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memoryTasks) LatestByJobID(_ context.Context, jobID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.tasks) - 1; i >= 0; i-- {
		if m.tasks[i].JobID == jobID {
			return m.tasks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type testStack struct {
	app    *handlers.App
	router http.Handler
	tasks  *memoryTasks
	orch   *orchestrator.Orchestrator
}

// newTestStack wires the full API against a keyless provider client, so
// image generation uses synthetic assets and every verification passes.
func newTestStack(t *testing.T) *testStack {
	t.Helper()
	dir := t.TempDir()
	logger := zerolog.Nop()

	states, err := state.NewStore(dir)
	if err != nil {
		t.Fatalf("state store: %v", err)
	}
	assets, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	client, err := genai.NewClient(genai.Options{Logger: &logger})
	if err != nil {
		t.Fatalf("genai client: %v", err)
	}
	analyzer := vision.NewGeminiAnalyzer(client)
	tasks := &memoryTasks{}

	orch := orchestrator.New(orchestrator.Options{
		Parser:     brief.NewParser(analyzer, logger),
		Analyzer:   analyzer,
		Generator:  image.NewGeminiGenerator(client),
		Verifier:   verify.New(analyzer),
		States:     states,
		Assets:     assets,
		Tasks:      tasks,
		Logger:     logger,
		MaxRetries: 1,
		Model:      "gemini-3-pro-image-preview",
	})

	app := handlers.NewApp(orch, states, assets, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:      logger,
		RateLimiter: middleware.NewMemoryLimitStore(100, time.Minute, 100),
	})
	return &testStack{app: app, router: router, tasks: tasks, orch: orch}
}

func (s *testStack) drain(t *testing.T) {
	t.Helper()
	for {
		task, err := s.tasks.Claim(context.Background())
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		if err != nil {
			t.Fatalf("claim: %v", err)
		}
		if err := s.orch.Dispatch(context.Background(), *task); err != nil {
			t.Fatalf("dispatch task %d (%s): %v", task.ID, task.Type, err)
		}
		if err := s.tasks.Finish(context.Background(), task.ID, domain.TaskStatusSucceeded, ""); err != nil {
			t.Fatalf("finish: %v", err)
		}
	}
}

func (s *testStack) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func createTextJob(t *testing.T, s *testStack, prompt string) string {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"prompt": prompt})
	rr := s.do(t, http.MethodPost, "/api/generate", bytes.NewReader(payload), "application/json")
	if rr.Code != http.StatusAccepted {
		t.Fatalf("generate: got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.JobID == "" {
		t.Fatalf("empty job_id")
	}
	return resp.JobID
}

func TestGenerateFlowThroughAPI(t *testing.T) {
	s := newTestStack(t)
	jobID := createTextJob(t, s, "Dual occupancy development in Balwyn North with dark brick")
	s.drain(t)

	rr := s.do(t, http.MethodGet, "/api/jobs/"+jobID+"/status", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var status state.Status
	if err := json.NewDecoder(rr.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.State != domain.StateComplete {
		t.Fatalf("job state = %s, want complete", status.State)
	}
	if status.Progress != 100 || status.TotalImages != 18 {
		t.Fatalf("progress=%d total=%d, want 100/18", status.Progress, status.TotalImages)
	}

	rr = s.do(t, http.MethodGet, "/api/jobs/"+jobID+"/manifest", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("manifest: got %d", rr.Code)
	}
	var manifest state.Manifest
	if err := json.NewDecoder(rr.Body).Decode(&manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(manifest.Images) != 18 {
		t.Fatalf("manifest has %d images, want 18", len(manifest.Images))
	}

	hero, ok := manifest.Hero()
	if !ok {
		t.Fatalf("manifest has no hero")
	}
	rr = s.do(t, http.MethodGet, fmt.Sprintf("/api/images/%s/%s", jobID, hero.Filename), nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("serve image: got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Fatalf("served image is empty")
	}

	rr = s.do(t, http.MethodGet, "/api/jobs/"+jobID+"/download", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("download: got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/zip" {
		t.Fatalf("download content type = %q", got)
	}
}

func TestGenerateValidation(t *testing.T) {
	s := newTestStack(t)

	rr := s.do(t, http.MethodPost, "/api/generate", bytes.NewReader([]byte(`{"prompt":"  "}`)), "application/json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("blank prompt: got %d, want 400", rr.Code)
	}

	rr = s.do(t, http.MethodPost, "/api/generate", bytes.NewReader([]byte(`{"prompt":"x","project_type":"castle"}`)), "application/json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad project type: got %d, want 400", rr.Code)
	}

	rr = s.do(t, http.MethodGet, "/api/jobs/missing-job/status", nil, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing job: got %d, want 404", rr.Code)
	}
}

func multipartInspiration(t *testing.T, prompt string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("image", "inspiration.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("not-a-real-png-but-bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if prompt != "" {
		if err := mw.WriteField("prompt", prompt); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	mw.Close()
	return buf, mw.FormDataContentType()
}

func TestInspirationFlowThroughAPI(t *testing.T) {
	s := newTestStack(t)

	body, contentType := multipartInspiration(t, "Townhouses in Kew")
	rr := s.do(t, http.MethodPost, "/api/generate-from-inspiration", body, contentType)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("upload: got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	s.drain(t)

	rr = s.do(t, http.MethodGet, "/api/jobs/"+resp.JobID+"/status", nil, "")
	var status state.Status
	if err := json.NewDecoder(rr.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.State != domain.StateAwaitingApprov {
		t.Fatalf("state = %s, want awaiting_approval", status.State)
	}
	if status.Hero == nil || status.Hero.Filename == "" {
		t.Fatalf("hero reference missing from status")
	}

	rr = s.do(t, http.MethodPost, "/api/jobs/"+resp.JobID+"/approve-hero", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("approve: got %d: %s", rr.Code, rr.Body.String())
	}
	s.drain(t)

	rr = s.do(t, http.MethodGet, "/api/jobs/"+resp.JobID+"/status", nil, "")
	if err := json.NewDecoder(rr.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.State != domain.StateComplete {
		t.Fatalf("state after approval = %s, want complete", status.State)
	}

	// The gate is closed once the job resumed.
	rr = s.do(t, http.MethodPost, "/api/jobs/"+resp.JobID+"/reject-hero", nil, "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("late reject: got %d, want 409", rr.Code)
	}
}

func TestInspirationUploadRequiresImage(t *testing.T) {
	s := newTestStack(t)

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	_ = mw.WriteField("prompt", "no image attached")
	mw.Close()

	rr := s.do(t, http.MethodPost, "/api/generate-from-inspiration", buf, mw.FormDataContentType())
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
}

func TestRegenerateImageEndpoint(t *testing.T) {
	s := newTestStack(t)
	jobID := createTextJob(t, s, "Dual occupancy in Balwyn")
	s.drain(t)

	rr := s.do(t, http.MethodPost, "/api/jobs/"+jobID+"/regenerate-image",
		bytes.NewReader([]byte(`{"variation_name":"hero_facade"}`)), "application/json")
	if rr.Code != http.StatusConflict {
		t.Fatalf("hero regeneration: got %d, want 409", rr.Code)
	}

	rr = s.do(t, http.MethodPost, "/api/jobs/"+jobID+"/regenerate-image",
		bytes.NewReader([]byte(`{"variation_name":"no_such_shot"}`)), "application/json")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown variation: got %d, want 404", rr.Code)
	}

	rr = s.do(t, http.MethodPost, "/api/jobs/"+jobID+"/regenerate-image",
		bytes.NewReader([]byte(`{"variation_name":"interior_kitchen"}`)), "application/json")
	if rr.Code != http.StatusOK {
		t.Fatalf("valid regeneration: got %d: %s", rr.Code, rr.Body.String())
	}
	s.drain(t)

	rr = s.do(t, http.MethodGet, "/api/jobs/"+jobID+"/manifest", nil, "")
	var manifest state.Manifest
	if err := json.NewDecoder(rr.Body).Decode(&manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(manifest.Images) != 18 {
		t.Fatalf("manifest has %d images after regeneration, want 18", len(manifest.Images))
	}
}

func TestServeImageRejectsTraversal(t *testing.T) {
	s := newTestStack(t)
	rr := s.do(t, http.MethodGet, "/api/images/job-1/..%2f..%2fetc%2fpasswd", nil, "")
	if rr.Code != http.StatusBadRequest && rr.Code != http.StatusNotFound {
		t.Fatalf("traversal: got %d, want 400 or 404", rr.Code)
	}
}
