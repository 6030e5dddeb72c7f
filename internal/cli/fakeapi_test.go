package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/evcraddock/studiodesk/internal/comment"
)

const testUserID = "u1"

// fakeAPI is a minimal studio API backed by memory.
type fakeAPI struct {
	mu       sync.Mutex
	comments []*comment.Comment
	posts    int
	// failDelete makes DELETE answer 403 with a detail.
	failDelete bool
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")

	switch {
	case path == "/users/me":
		if r.Header.Get("Authorization") != "Bearer goodtoken" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(w, map[string]interface{}{"id": testUserID, "email": "ada@example.com", "full_name": "Ada Lovelace", "is_active": true})

	case path == "/login/access-token" && r.Method == http.MethodPost:
		if err := r.ParseForm(); err != nil || r.PostForm.Get("password") != "s3cretpass" {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, map[string]string{"access_token": "goodtoken", "token_type": "bearer"})

	case path == "/comments/" && r.Method == http.MethodPost:
		var req struct {
			Content   string `json:"content"`
			ProjectID string `json:"project_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		a.posts++
		c := &comment.Comment{ID: "c" + string(rune('0'+a.posts)), Content: req.Content, ProjectID: req.ProjectID, UserID: testUserID}
		a.comments = append(a.comments, c)
		writeJSON(w, c)

	case strings.HasPrefix(path, "/comments/") && r.Method == http.MethodGet:
		writeJSON(w, comment.List{Data: a.comments, Count: len(a.comments)})

	case strings.HasPrefix(path, "/comments/") && r.Method == http.MethodDelete:
		if a.failDelete {
			w.WriteHeader(http.StatusForbidden)
			writeJSON(w, map[string]string{"detail": "Not enough permissions"})
			return
		}
		writeJSON(w, map[string]string{"message": "Comment deleted successfully"})

	default:
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"detail": "Not Found"})
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	_ = json.NewEncoder(w).Encode(v)
}

func (a *fakeAPI) lastContent() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.comments) == 0 {
		return ""
	}
	return a.comments[len(a.comments)-1].Content
}

func (a *fakeAPI) postCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.posts
}

func (a *fakeAPI) setFailDelete(fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failDelete = fail
}
