package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evcraddock/studiodesk/internal/thread"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiThread returns a project's derived comment thread.
func (s *Server) apiThread(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		apiError(w, "invalid project ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	apiJSON(w, s.threads.View(ctx, id, s.viewerID(ctx)), http.StatusOK)
}

// apiAddComment creates a comment from a JSON body {"content": "..."}.
func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		apiError(w, "invalid project ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	created, err := s.threads.Create(r.Context(), id, req.Content)
	if err != nil {
		var vErr *thread.ValidationError
		switch {
		case errors.As(err, &vErr):
			apiError(w, vErr.Message, http.StatusBadRequest)
		case errors.Is(err, thread.ErrSubmissionPending):
			apiError(w, err.Error(), http.StatusConflict)
		default:
			apiError(w, err.Error(), http.StatusBadGateway)
		}
		return
	}

	apiJSON(w, created, http.StatusCreated)
}

// apiDeleteComment deletes a comment by ID.
func (s *Server) apiDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.threads.Delete(r.Context(), r.PathValue("commentID")); err != nil {
		apiError(w, err.Error(), http.StatusBadGateway)
		return
	}
	apiJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
