package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pitch-coach/internal/intel"
	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/pacing"
	"github.com/jonathan/pitch-coach/internal/types"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, url string) (*types.HackathonData, error)
}

func (s *stubResolver) Resolve(ctx context.Context, url string) (*types.HackathonData, error) {
	return s.resolveFn(ctx, url)
}

type stubCritic struct {
	critiqueFn func(ctx context.Context, media *llm.Media, data *types.HackathonData) (*types.AnalysisResult, error)
}

func (s *stubCritic) Critique(ctx context.Context, media *llm.Media, data *types.HackathonData) (*types.AnalysisResult, error) {
	return s.critiqueFn(ctx, media, data)
}

type stubLLM struct{}

func (stubLLM) GenerateText(context.Context, string, llm.ModelTier, int32) (string, error) {
	return "Keep this pace.", nil
}

func (stubLLM) GenerateStructured(context.Context, *llm.StructuredRequest) ([]byte, error) {
	return nil, &llm.NetworkError{Message: "not implemented in stub"}
}

func (stubLLM) GetModel(llm.ModelTier) string { return "stub-model" }

func (stubLLM) Close() error { return nil }

func newTestServer(t *testing.T, resolver EventResolver, critic DemoCritic) *Server {
	t.Helper()
	if resolver == nil {
		resolver = &stubResolver{resolveFn: func(context.Context, string) (*types.HackathonData, error) {
			return &types.HackathonData{Title: "Hack"}, nil
		}}
	}
	if critic == nil {
		critic = &stubCritic{critiqueFn: func(context.Context, *llm.Media, *types.HackathonData) (*types.AnalysisResult, error) {
			return &types.AnalysisResult{OverallScore: 70}, nil
		}}
	}
	s, err := New(Config{
		Port:   0,
		Intel:  resolver,
		Critic: critic,
		Coach:  pacing.NewCoach(stubLLM{}, time.Second),
	})
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestAnalyzeEvent(t *testing.T) {
	resolver := &stubResolver{resolveFn: func(_ context.Context, url string) (*types.HackathonData, error) {
		return &types.HackathonData{
			Title:  "AI Hack Night",
			URL:    url,
			Judges: []types.Judge{{Name: "Dana Wu"}},
		}, nil
	}}
	s := newTestServer(t, resolver, nil)

	body := strings.NewReader(`{"url": "https://example.com/hack"}`)
	rec := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/events", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var data types.HackathonData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "AI Hack Night", data.Title)
	assert.Equal(t, "https://example.com/hack", data.URL)
}

func TestAnalyzeEvent_BadRequests(t *testing.T) {
	s := newTestServer(t, nil, nil)

	tests := []struct {
		name         string
		body         string
		wantFragment string
	}{
		{name: "malformed JSON", body: `{"url":`, wantFragment: "invalid JSON body"},
		{name: "missing url", body: `{}`, wantFragment: "validation error: URL"},
		{name: "not a url", body: `{"url": "not a url"}`, wantFragment: "validation error: URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantFragment)
		})
	}
}

func TestAnalyzeEvent_UpstreamFailureIsBadGateway(t *testing.T) {
	resolver := &stubResolver{resolveFn: func(_ context.Context, url string) (*types.HackathonData, error) {
		return nil, &intel.ResolutionError{URL: url, Cause: &llm.NetworkError{Message: "unreachable"}}
	}}
	s := newTestServer(t, resolver, nil)

	body := strings.NewReader(`{"url": "https://example.com/hack"}`)
	rec := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/events", body))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func critiqueRequest(t *testing.T, withVideo, withEvent bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if withVideo {
		part, err := mw.CreateFormFile("video", "demo.webm")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake video bytes"))
		require.NoError(t, err)
	}
	if withEvent {
		event, err := json.Marshal(&types.HackathonData{
			Title:  "AI Hack Night",
			Judges: []types.Judge{{Name: "Dana Wu"}},
		})
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("event", string(event)))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/critiques", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCritique(t *testing.T) {
	var gotMedia *llm.Media
	var gotData *types.HackathonData
	critic := &stubCritic{critiqueFn: func(_ context.Context, media *llm.Media, data *types.HackathonData) (*types.AnalysisResult, error) {
		gotMedia, gotData = media, data
		return &types.AnalysisResult{
			OverallScore: 82,
			Strengths:    []string{"clear demo"},
			QAQuestions:  []types.QAQuestion{{Question: "How does it scale?"}},
		}, nil
	}}
	s := newTestServer(t, nil, critic)

	rec := doRequest(s, critiqueRequest(t, true, true))

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.InDelta(t, 82, result.OverallScore, 0.001)

	require.NotNil(t, gotMedia)
	assert.Equal(t, []byte("fake video bytes"), gotMedia.Data)
	require.NotNil(t, gotData)
	assert.Equal(t, "AI Hack Night", gotData.Title)
}

func TestCritique_BadRequests(t *testing.T) {
	s := newTestServer(t, nil, nil)

	t.Run("missing video", func(t *testing.T) {
		rec := doRequest(s, critiqueRequest(t, false, true))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing event", func(t *testing.T) {
		rec := doRequest(s, critiqueRequest(t, true, false))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/critiques", strings.NewReader("plain"))
		rec := doRequest(s, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRehearsalLifecycle(t *testing.T) {
	s := newTestServer(t, nil, nil)

	// Create
	rec := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/rehearsals", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// Observe
	obsBody := strings.NewReader(`{"wordCount": 20, "transcript": "twenty words of transcript"}`)
	rec = doRequest(s, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/rehearsals/%s/observations", created.ID), obsBody))
	require.Equal(t, http.StatusOK, rec.Code)
	var decision struct {
		WPM          int  `json:"wpm"`
		TipRequested bool `json:"tipRequested"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	// First observation only sets the baseline
	assert.Zero(t, decision.WPM)
	assert.False(t, decision.TipRequested)

	// Stop
	rec = doRequest(s, httptest.NewRequest(http.MethodDelete, "/api/rehearsals/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Gone after stop
	rec = doRequest(s, httptest.NewRequest(http.MethodDelete, "/api/rehearsals/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(s, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/rehearsals/%s/observations", created.ID), strings.NewReader(`{"wordCount": 5}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestObservation_BadRequests(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/rehearsals/unknown-id/observations", strings.NewReader(`{"wordCount": 5}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	created := s.rehearsals.Create(time.Now())
	defer s.rehearsals.Stop(created.ID)

	rec = doRequest(s, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/rehearsals/%s/observations", created.ID), strings.NewReader(`{"wordCount": -3}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error: WordCount")
}

func TestTipStream(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rehearsal := s.rehearsals.Create(time.Now())
	defer s.rehearsals.Stop(rehearsal.ID)
	rehearsal.deliver(types.CoachingTip{Text: "Slow down a touch.", WPM: 172})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/rehearsals/"+rehearsal.ID+"/tips", nil).WithContext(ctx)

	rec := doRequest(s, req)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: tip")
	assert.Contains(t, body, "Slow down a touch.")
	assert.Contains(t, body, `"wpm":172`)
}

func TestTipStream_UnknownSession(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/rehearsals/unknown-id/tips", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRehearsal_DeliverSupersedesUndeliveredTip(t *testing.T) {
	r := &Rehearsal{tips: make(chan types.CoachingTip, 1)}

	r.deliver(types.CoachingTip{Text: "first", WPM: 120})
	r.deliver(types.CoachingTip{Text: "second", WPM: 150})

	select {
	case tip := <-r.Tips():
		assert.Equal(t, "second", tip.Text)
	default:
		t.Fatal("expected a pending tip")
	}
	assert.Empty(t, r.tips)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
