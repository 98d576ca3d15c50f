package stubservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srinijamadireddy19/Blog-Digest/internal/clients"
	"github.com/srinijamadireddy19/Blog-Digest/internal/db"
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/processing"
)

type fakeProcessor struct {
	got processing.Submission
	err error
}

func (f *fakeProcessor) Process(ctx context.Context, sub processing.Submission) (*models.ResultBundle, error) {
	f.got = sub
	if f.err != nil {
		return nil, f.err
	}
	return models.NewResultBundle(models.SummaryRecord{Title: "T", Content: "C."}), nil
}

func newTestServer(t *testing.T, proc Processor) (*httptest.Server, *db.MemoryRepository) {
	t.Helper()
	repo := db.NewMemoryRepository(time.Hour)
	h := NewHandler(proc, repo, 1<<20)
	h.newID = func() string { return "fixed-id" }
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, repo
}

func form(t *testing.T, fields map[string]string, file *models.Blob) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + file.Name + `"`}
		h["Content-Type"] = []string{file.MediaType}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.Data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func post(t *testing.T, srv *httptest.Server, body *bytes.Buffer, contentType string) (int, models.ErrorResponse, models.ProcessResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/process", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	var e models.ErrorResponse
	var ok models.ProcessResponse
	_ = json.Unmarshal(raw, &e)
	_ = json.Unmarshal(raw, &ok)
	return resp.StatusCode, e, ok
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeProcessor{})
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, HealthResponse{Status: "healthy", Service: SERVICE_NAME}, body)
}

func TestProcessValidation(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		file    *models.Blob
		message string
	}{
		{name: "no action", fields: map[string]string{"inputValue": "x", "type": "text"}, message: "Action must be specified"},
		{name: "bad action", fields: map[string]string{"inputValue": "x", "type": "text", "action": "audio"}, message: "Invalid action: audio"},
		{name: "empty input", fields: map[string]string{"inputValue": "  ", "type": "text", "action": "summary"}, message: "Input cannot be empty"},
		{name: "bad type", fields: map[string]string{"inputValue": "x", "type": "video", "action": "summary"}, message: "Invalid input type: video"},
		{name: "bad url", fields: map[string]string{"inputValue": "ftp://example.com", "type": "link", "action": "summary"}, message: "Invalid URL format"},
		{
			name:    "not an image",
			fields:  map[string]string{"action": "summary"},
			file:    &models.Blob{Name: "notes.txt", MediaType: "text/plain", Data: []byte("hi")},
			message: "Uploaded file is not an image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := &fakeProcessor{}
			srv, _ := newTestServer(t, proc)
			body, ct := form(t, tt.fields, tt.file)

			status, e, _ := post(t, srv, body, ct)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "error", e.Status)
			assert.Equal(t, tt.message, e.Message)
			assert.Empty(t, proc.got.Kind, "processor must not run")
		})
	}
}

func TestProcessNotMultipart(t *testing.T) {
	srv, _ := newTestServer(t, &fakeProcessor{})
	status, e, _ := post(t, srv, bytes.NewBufferString(`{"input":"x"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Request must be multipart form data", e.Message)
}

func TestProcessStoresResult(t *testing.T) {
	proc := &fakeProcessor{}
	srv, repo := newTestServer(t, proc)
	body, ct := form(t, map[string]string{"inputValue": "https://blog.example.com/post?id=1", "type": "link", "action": "keywords"}, nil)

	status, _, ok := post(t, srv, body, ct)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ProcessResponse{ID: "fixed-id", Status: "success"}, ok)
	assert.Equal(t, processing.Submission{Kind: models.InputLink, Value: "https://blog.example.com/post?id=1", Action: models.FormatKeywords}, proc.got)

	stored, err := repo.Load(context.Background(), "fixed-id")
	require.NoError(t, err)
	assert.True(t, stored.Has(models.FormatSummary))
}

func TestProcessPicture(t *testing.T) {
	proc := &fakeProcessor{}
	srv, _ := newTestServer(t, proc)
	body, ct := form(t, map[string]string{"action": "summary"}, &models.Blob{Name: "cat.png", MediaType: "image/png", Data: []byte{1, 2, 3}})

	status, _, _ := post(t, srv, body, ct)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.InputPicture, proc.got.Kind)
	require.NotNil(t, proc.got.File)
	assert.Equal(t, []byte{1, 2, 3}, proc.got.File.Data)
}

func TestProcessFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "empty content", err: processing.ErrEmptyContent, status: http.StatusBadRequest},
		{name: "extraction", err: errors.New("link extraction failed: timeout"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, &fakeProcessor{err: tt.err})
			body, ct := form(t, map[string]string{"inputValue": "words", "type": "text", "action": "summary"}, nil)

			status, e, _ := post(t, srv, body, ct)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.err.Error(), e.Message)
		})
	}
}

func TestResultNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeProcessor{})
	resp, err := http.Get(srv.URL + "/result/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidURL(t *testing.T) {
	for _, u := range []string{"https://example.com", "http://localhost:5000/a", "HTTP://10.0.0.1/x?y=1", "https://sub.blog.io/"} {
		assert.True(t, ValidURL(u), u)
	}
	for _, u := range []string{"example.com", "https://", "https://exa mple.com", "mailto:a@b.co"} {
		assert.False(t, ValidURL(u), u)
	}
}

func TestClientRoundTrip(t *testing.T) {
	repo := db.NewMemoryRepository(time.Hour)
	srv := httptest.NewServer(NewRouter(NewHandler(processing.NewProcessor(nil, nil, nil), repo, 1<<20)))
	defer srv.Close()

	client := clients.NewProcessingClient(srv.URL, 10*time.Second)
	ctx := context.Background()
	assert.True(t, client.HealthCheck(ctx))

	text := strings.Repeat("Go makes building reliable network software simple. ", 5) +
		"Developers enjoy the fast compiler and the great standard library."
	ref, err := client.Submit(ctx, models.NewSubmissionRequest(models.TextPayload{Body: text}, models.FormatSentiment))
	require.NoError(t, err)
	assert.False(t, ref.IsZero())

	bundle, err := client.FetchResult(ctx, ref)
	require.NoError(t, err)
	for _, kind := range []models.FormatKind{models.FormatSummary, models.FormatPDF, models.FormatKeywords, models.FormatTopics, models.FormatSentiment} {
		assert.True(t, bundle.Has(kind), kind)
	}

	_, err = client.FetchResult(ctx, "missing")
	var statusErr *clients.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "result not found", statusErr.Message)
}
