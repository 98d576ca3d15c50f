package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srinijamadireddy19/Blog-Digest/internal/clients"
	"github.com/srinijamadireddy19/Blog-Digest/internal/dispatch"
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/results"
	"github.com/srinijamadireddy19/Blog-Digest/internal/view"
)

type recordingService struct {
	mu       sync.Mutex
	requests []string
	forms    []map[string]string
	result   func(w http.ResponseWriter, id string)
}

func (s *recordingService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/process":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.forms = append(s.forms, map[string]string{
			"inputValue": r.FormValue("inputValue"),
			"type":       r.FormValue("type"),
			"action":     r.FormValue("action"),
		})
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
	case r.Method == http.MethodGet && len(r.URL.Path) > len("/result/"):
		s.result(w, r.URL.Path[len("/result/"):])
	default:
		http.NotFound(w, r)
	}
}

func (s *recordingService) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *recordingService) form(i int) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forms[i]
}

func newNavigator(t *testing.T, svc *recordingService) *Navigator {
	t.Helper()
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)

	client := clients.NewProcessingClient(srv.URL, 5*time.Second)
	cache, err := results.NewBundleCache(8)
	require.NoError(t, err)
	return NewNavigator(client, client, cache)
}

func awaitSettled(t *testing.T, n *Navigator) results.RetrievalStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, ok := n.Await(ctx)
	require.True(t, ok)
	return st
}

func TestScenarioTextSummary(t *testing.T) {
	svc := &recordingService{result: func(w http.ResponseWriter, id string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","summary":{"title":"Summary","content":"A short digest."}}`))
	}}
	n := newNavigator(t, svc)

	require.NoError(t, n.Input().SelectMode(models.InputText))
	require.NoError(t, n.Input().SetLinkOrText("hello world"))
	require.NoError(t, n.Submit(context.Background(), models.FormatSummary))

	assert.Equal(t, ScreenResult, n.Screen())
	assert.Equal(t, models.ResultReference("abc123"), n.Reference())
	assert.Equal(t, models.FormatSummary, n.SelectedTab())

	st := awaitSettled(t, n)
	assert.Equal(t, results.PhaseReady, st.Phase)
	assert.Equal(t, []string{"POST /process", "GET /result/abc123"}, svc.seen())
	assert.Equal(t, map[string]string{"inputValue": "hello world", "type": "text", "action": "summary"}, svc.form(0))

	vs := n.View()
	require.Equal(t, view.ShowFormat, vs.Kind)
	assert.Equal(t, "A short digest.", vs.Record.(models.SummaryRecord).Content)

	require.True(t, n.SelectTab(models.FormatSentiment))
	assert.Equal(t, view.ShowNothingForTab, n.View().Kind)
	assert.Len(t, svc.seen(), 2, "switching tabs never fetches")
}

func TestScenarioEmptyTextMakesNoRequest(t *testing.T) {
	svc := &recordingService{}
	n := newNavigator(t, svc)

	require.NoError(t, n.Input().SelectMode(models.InputText))
	require.NoError(t, n.Input().SetLinkOrText("   "))

	err := n.Submit(context.Background(), models.FormatSummary)
	assert.ErrorIs(t, err, dispatch.ErrMissingInput)
	assert.Equal(t, ScreenInput, n.Screen())
	assert.True(t, n.Input().InputRequired())
	assert.Equal(t, models.InputText, n.Input().Mode())
	assert.Equal(t, models.TextPayload{Body: "   "}, n.Input().Payload())
	assert.Empty(t, svc.seen())
}

func TestScenarioResultServerError(t *testing.T) {
	svc := &recordingService{result: func(w http.ResponseWriter, id string) {
		w.WriteHeader(http.StatusInternalServerError)
	}}
	n := newNavigator(t, svc)

	n.OpenResult(context.Background(), NavigationState{Ref: "abc123", Tab: models.FormatTopics})
	st := awaitSettled(t, n)
	assert.Equal(t, results.PhaseFailed, st.Phase)

	vs := n.View()
	assert.Equal(t, view.ShowEmptyState, vs.Kind)
	assert.True(t, vs.CanGoBack)

	n.GoBack()
	assert.Equal(t, ScreenInput, n.Screen())
	assert.True(t, n.Reference().IsZero())
	assert.Equal(t, models.InputLink, n.Input().Mode())
}

func TestSubmitRejectedStaysOnInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"Invalid URL format"}`))
	}))
	defer srv.Close()
	client := clients.NewProcessingClient(srv.URL, time.Second)
	n := NewNavigator(client, client, nil)

	require.NoError(t, n.Input().SetLinkOrText("not-a-url"))
	err := n.Submit(context.Background(), models.FormatKeywords)

	var rej *dispatch.RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Invalid URL format", rej.Message)
	assert.Equal(t, ScreenInput, n.Screen())
	assert.Equal(t, models.LinkPayload{URL: "not-a-url"}, n.Input().Payload())
	assert.False(t, n.Input().InputRequired())
}

func TestOpenResultWithoutReference(t *testing.T) {
	svc := &recordingService{}
	n := newNavigator(t, svc)

	n.OpenResult(context.Background(), NavigationState{Tab: "bogus"})
	st := awaitSettled(t, n)
	assert.ErrorIs(t, st.Err, results.ErrNoReference)
	assert.Equal(t, models.FormatSummary, n.SelectedTab())
	assert.Equal(t, view.ShowEmptyState, n.View().Kind)
	assert.Empty(t, svc.seen())
}
