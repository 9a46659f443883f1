// internal/api/handlers.go
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "nashville-eats/internal/common/errors"
	"nashville-eats/internal/common/validation"
	"nashville-eats/internal/models"
	fetchrecommendations "nashville-eats/internal/pipeline/fetch-recommendations"
	normalizeanswers "nashville-eats/internal/pipeline/normalize-answers"
	"nashville-eats/internal/share"
)

// RecommendationsResponse is the body of POST /api/recommendations.
type RecommendationsResponse struct {
	Data      []models.Restaurant        `json:"data"`
	IsLoading bool                       `json:"isLoading"`
	Error     *apperrors.StandardError   `json:"error"`
	Source    string                     `json:"source"`
	State     string                     `json:"state"`
	RequestID string                     `json:"requestId"`
	Degraded  bool                       `json:"degraded"`
	Stale     bool                       `json:"stale,omitempty"`
	Notices   []string                   `json:"notices"`
	Issues    []*apperrors.StandardError `json:"issues,omitempty"`
}

func (s *Server) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	body, stdErr := readBody(w, r, validation.ValidateRecommendationRequest)
	if stdErr != nil {
		writeError(w, stdErr)
		return
	}

	var input normalizeanswers.Input
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil {
		writeError(w, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	normalized, err := s.deps.Normalizer.Execute(r.Context(), &input)
	if err != nil {
		s.logger.Error("normalization failed", map[string]interface{}{"error": err.Error()})
		writeError(w, apperrors.NewInternalError(err))
		return
	}

	var out *fetchrecommendations.Output
	if id := r.Header.Get(SessionHeader); id != "" && s.deps.Sessions != nil {
		session := s.deps.Sessions.Get(id)
		w.Header().Set(SessionHeader, session.ID())
		out, err = session.Fetch(r.Context(), normalized.Params)
	} else {
		out, err = s.deps.Fetcher.Execute(r.Context(), &fetchrecommendations.Input{Params: normalized.Params})
	}
	if err != nil {
		s.logger.Error("fetch failed", map[string]interface{}{"error": err.Error()})
		writeError(w, apperrors.NewInternalError(err))
		return
	}

	writeJSON(w, http.StatusOK, toResponse(out, normalized.Issues))
}

func toResponse(out *fetchrecommendations.Output, issues []*apperrors.StandardError) RecommendationsResponse {
	notices := make([]string, 0, len(issues)+1)
	for _, issue := range issues {
		if issue.Notice != "" {
			notices = append(notices, issue.Notice)
		}
	}
	if out.Error != nil && out.Error.Notice != "" {
		notices = append(notices, out.Error.Notice)
	}

	data := out.Data
	if data == nil {
		data = []models.Restaurant{}
	}
	return RecommendationsResponse{
		Data:      data,
		IsLoading: out.IsLoading,
		Error:     out.Error,
		Source:    out.Source,
		State:     out.State,
		RequestID: out.RequestID,
		Degraded:  out.Degraded,
		Stale:     out.Stale,
		Notices:   notices,
		Issues:    issues,
	}
}

func (s *Server) shareHandler(w http.ResponseWriter, r *http.Request) {
	if s.deps.Share == nil {
		writeError(w, apperrors.NewShareFailedError("any", errors.New("sharing is not configured")))
		return
	}

	body, stdErr := readBody(w, r, validation.ValidateShareRequest)
	if stdErr != nil {
		writeError(w, stdErr)
		return
	}

	var input share.Input
	if err := json.Unmarshal(body, &input); err != nil {
		writeError(w, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	out, err := s.deps.Share.Send(r.Context(), &input)
	if err != nil {
		var se *apperrors.StandardError
		switch {
		case errors.As(err, &se):
			writeError(w, se)
		case errors.Is(err, share.ErrUnsupportedChannel), errors.Is(err, share.ErrNothingToShare):
			writeError(w, apperrors.NewInvalidRequestError(err.Error()))
		default:
			writeError(w, apperrors.NewInternalError(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// readBody reads a bounded request body and checks it against a JSON schema.
func readBody(w http.ResponseWriter, r *http.Request, validate func([]byte) (*validation.ValidationResult, error)) ([]byte, *apperrors.StandardError) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("read body: %v", err))
	}

	result, err := validate(body)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidRequestError(result.Summary()).
			WithMetadata("errors", result.Errors)
	}
	return body, nil
}
