package server

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/errs"
)

type youtubeRequest struct {
	URL string `json:"url"`
}

type podcastRequest struct {
	RSSURL       string `json:"rss_url"`
	EpisodeIndex int    `json:"episode_index"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type readingsRequest struct {
	Experts []string `json:"experts"`
	Topic   string   `json:"topic"`
}

// handleExtractFile accepts a multipart upload under the "file" field and
// returns the topics extracted from it.
func (s *Server) handleExtractFile(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.config.Limits.MaxUploadMB) * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "could not read file upload")
		return
	}

	topics, err := s.pipeline.ExtractFromFile(r.Context(), header.Filename, content)
	if err != nil {
		s.respondKindError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

func (s *Server) handleExtractYouTube(w http.ResponseWriter, r *http.Request) {
	var req youtubeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	topics, err := s.pipeline.ExtractFromYouTube(r.Context(), req.URL)
	if err != nil {
		s.respondKindError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

func (s *Server) handleExtractPodcast(w http.ResponseWriter, r *http.Request) {
	var req podcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	topics, err := s.pipeline.ExtractFromPodcast(r.Context(), req.RSSURL, req.EpisodeIndex)
	if err != nil {
		s.respondKindError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

func (s *Server) handleExtractURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	topics, err := s.pipeline.ExtractFromURL(r.Context(), req.URL)
	if err != nil {
		s.respondKindError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

// handleReadings fans out to every expert and always returns one entry per
// expert, annotated with an error where a lookup failed.
func (s *Server) handleReadings(w http.ResponseWriter, r *http.Request) {
	var req readingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Experts) == 0 {
		s.respondError(w, http.StatusBadRequest, "experts is required")
		return
	}
	if req.Topic == "" {
		s.respondError(w, http.StatusBadRequest, "topic is required")
		return
	}
	result := s.recommender.RecommendAll(r.Context(), req.Experts, req.Topic)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"readings": result})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondKindError maps the error taxonomy onto HTTP status codes: bad input
// 400, missing or unusable source content 404, a malformed upstream response
// 502, a timeout or network failure 504, anything else 500.
func (s *Server) respondKindError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindUnavailableContent:
		status = http.StatusNotFound
	case errs.KindMalformedResponse:
		status = http.StatusBadGateway
	case errs.KindTransientIO:
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.respondError(w, status, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
