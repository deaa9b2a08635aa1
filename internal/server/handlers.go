package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/server/ratelimit"
	"github.com/jonathan/pitch-coach/internal/types"
)

// maxVideoBytes caps critique uploads. Inline media attachments above this
// size are rejected by the inference service anyway.
const maxVideoBytes = 50 << 20

// analyzeRequest is the body of POST /api/events.
type analyzeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// observationRequest is the body of POST /api/rehearsals/{id}/observations.
type observationRequest struct {
	WordCount  int    `json:"wordCount" validate:"gte=0"`
	Transcript string `json:"transcript"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyzeEvent resolves a hackathon URL into judge/strategy intelligence.
func (s *Server) handleAnalyzeEvent(w http.ResponseWriter, r *http.Request) {
	if !s.rateLimiter.Allow(ratelimit.ClassResolve) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		verr := newValidationError(err)
		writeError(w, HTTPStatus(verr), verr.Error())
		return
	}

	data, err := s.intel.Resolve(r.Context(), req.URL)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, data)
}

// handleCritique analyzes an uploaded demo recording against the event's
// judge panel. Multipart fields: "video" (the recording) and "event" (the
// HackathonData JSON produced by analysis).
func (s *Server) handleCritique(w http.ResponseWriter, r *http.Request) {
	if !s.rateLimiter.Allow(ratelimit.ClassCritique) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	if err := r.ParseMultipartForm(maxVideoBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing video upload")
		return
	}
	defer func() { _ = file.Close() }()

	videoBytes, err := io.ReadAll(io.LimitReader(file, maxVideoBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read video upload")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "video/webm"
	}

	eventJSON := r.FormValue("event")
	if eventJSON == "" {
		writeError(w, http.StatusBadRequest, "missing event data")
		return
	}
	var data types.HackathonData
	if err := json.Unmarshal([]byte(eventJSON), &data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event data")
		return
	}

	result, err := s.critic.Critique(r.Context(), &llm.Media{MIMEType: mimeType, Data: videoBytes}, &data)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleCreateRehearsal starts a live coaching session.
func (s *Server) handleCreateRehearsal(w http.ResponseWriter, _ *http.Request) {
	r := s.rehearsals.Create(time.Now())
	writeJSON(w, http.StatusCreated, map[string]string{"id": r.ID})
}

// handleObservation feeds one transcript observation into a rehearsal.
func (s *Server) handleObservation(w http.ResponseWriter, r *http.Request) {
	if !s.rateLimiter.Allow(ratelimit.ClassTips) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	id := r.PathValue("id")
	rehearsal, ok := s.rehearsals.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, (&ErrSessionNotFound{ID: id}).Error())
		return
	}

	var req observationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		verr := newValidationError(err)
		writeError(w, HTTPStatus(verr), verr.Error())
		return
	}

	decision := rehearsal.Observe(req.WordCount, req.Transcript, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"wpm":          decision.WPM,
		"tipRequested": decision.RequestTip,
	})
}

// handleTipStream streams live coaching tips over SSE until the rehearsal
// stops or the client disconnects.
func (s *Server) handleTipStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rehearsal, ok := s.rehearsals.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, (&ErrSessionNotFound{ID: id}).Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for {
		select {
		case tip := <-rehearsal.Tips():
			if err := sse.WriteEvent("tip", tip); err != nil {
				return
			}
		case <-rehearsal.Done():
			_ = sse.WriteEvent("done", map[string]string{"id": id})
			return
		case <-r.Context().Done():
			return
		}
	}
}

// handleStopRehearsal terminates a rehearsal session.
func (s *Server) handleStopRehearsal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.rehearsals.Stop(id) {
		writeError(w, http.StatusNotFound, (&ErrSessionNotFound{ID: id}).Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
