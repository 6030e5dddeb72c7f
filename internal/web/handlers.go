package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/evcraddock/studiodesk/internal/activity"
	"github.com/evcraddock/studiodesk/internal/client"
	"github.com/evcraddock/studiodesk/internal/comment"
	"github.com/evcraddock/studiodesk/internal/project"
	"github.com/evcraddock/studiodesk/internal/thread"
)

// Banner messages shown after a redirect.
const (
	noticeAdded   = "Comment added successfully"
	noticeDeleted = "Comment deleted"
)

type indexData struct {
	Error string
}

type projectData struct {
	ProjectID string
	Project   *project.Project
	Galleries []*project.Gallery
	FileCount int
	Thread    *thread.Thread
	Notice    string
	Error     string
	Form      commentForm
}

// commentForm is the add-comment form as submitted, kept so a rejected
// submission can be shown again.
type commentForm struct {
	Kind         string
	Target       string
	Content      string
	ContentError string
	TargetError  string
}

// record builds the activity record the form describes.
func (f commentForm) record() activity.Record {
	switch activity.Kind(f.Kind) {
	case activity.KindPhoto:
		return activity.Photo(f.Target, f.Content)
	case activity.KindChangesRequested:
		return activity.ChangesRequested(f.Target, f.Content)
	default:
		return activity.Page(f.Content)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleIndex renders the project lookup page, or redirects to the project
// named in ?project=.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("project"))
	if raw == "" {
		s.render(w, http.StatusOK, "index.html", indexData{})
		return
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		s.render(w, http.StatusBadRequest, "index.html", indexData{Error: "Enter a valid project ID"})
		return
	}
	http.Redirect(w, r, "/projects/"+id.String(), http.StatusSeeOther)
}

// handleProject renders the project detail page with its comment thread.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	s.renderProject(w, r, id, http.StatusOK, projectData{
		Notice: q.Get("notice"),
		Error:  q.Get("error"),
		Form:   commentForm{Kind: string(activity.KindPage)},
	})
}

// handleCommentPost adds a comment from the project page form.
func (s *Server) handleCommentPost(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := commentForm{
		Kind:    r.FormValue("kind"),
		Target:  r.FormValue("target"),
		Content: r.FormValue("content"),
	}
	if !activity.Kind(form.Kind).Valid() {
		form.Kind = string(activity.KindPage)
	}

	if err := comment.ValidateContent(form.Content); err != nil {
		form.ContentError = thread.MsgRequired
		s.renderProject(w, r, id, http.StatusBadRequest, projectData{Form: form})
		return
	}

	content, err := activity.Compose(form.record())
	if err != nil {
		if form.Kind == string(activity.KindPage) {
			form.ContentError = err.Error()
		} else {
			form.TargetError = err.Error()
		}
		s.renderProject(w, r, id, http.StatusBadRequest, projectData{Form: form})
		return
	}

	if _, err := s.threads.Create(r.Context(), id, content); err != nil {
		var vErr *thread.ValidationError
		if errors.As(err, &vErr) {
			form.ContentError = vErr.Message
			s.renderProject(w, r, id, http.StatusBadRequest, projectData{Form: form})
			return
		}
		redirectProject(w, r, id, "error", err.Error())
		return
	}

	redirectProject(w, r, id, "notice", noticeAdded)
}

// handleCommentDelete removes a comment from the project page.
func (s *Server) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.threads.Delete(r.Context(), r.PathValue("commentID")); err != nil {
		redirectProject(w, r, id, "error", err.Error())
		return
	}

	redirectProject(w, r, id, "notice", noticeDeleted)
}

// renderProject loads the project, its galleries and the viewer together,
// then renders the detail page with data's banner and form state.
func (s *Server) renderProject(w http.ResponseWriter, r *http.Request, id string, status int, data projectData) {
	ctx := r.Context()

	var (
		p         *project.Project
		galleries = []*project.Gallery{}
		viewer    string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.api.GetProject(gctx, id)
		return err
	})
	g.Go(func() error {
		list, err := s.api.ListGalleries(gctx, id)
		if err != nil {
			s.logger.Warn("listing galleries failed", "project", id, "error", err)
			return nil
		}
		if list.Data != nil {
			galleries = list.Data
		}
		return nil
	})
	g.Go(func() error {
		viewer = s.viewerID(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.logger.Warn("loading project failed", "project", id, "error", err)
		http.Error(w, fmt.Sprintf("Error loading project: %v", err), http.StatusBadGateway)
		return
	}

	data.ProjectID = id
	data.Project = p
	data.Galleries = galleries
	data.FileCount = project.FileCount(galleries)
	data.Thread = s.threads.View(ctx, id, viewer)

	s.render(w, status, "project.html", data)
}

// viewerID returns the signed-in user's ID, or "" when it cannot be
// resolved. Failure only hides delete actions.
func (s *Server) viewerID(ctx context.Context) string {
	me, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.logger.Debug("resolving current user failed", "error", err)
		return ""
	}
	return me.ID
}

// render executes a full page template. Output is buffered so a template
// error still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("writing response failed", "error", err)
	}
}

// redirectProject sends the browser back to the project page with a
// one-shot banner message.
func redirectProject(w http.ResponseWriter, r *http.Request, id, key, msg string) {
	q := url.Values{}
	q.Set(key, msg)
	http.Redirect(w, r, "/projects/"+id+"?"+q.Encode(), http.StatusSeeOther)
}

// projectID reads and canonicalizes the {id} path value.
func projectID(r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
