// Package thread drives a project's comment thread: it lists, creates and
// deletes comments through a Store, caches each project's list until a
// mutation invalidates it or it outlives the max age, and derives what each
// entry shows.
package thread

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/evcraddock/studiodesk/internal/activity"
	"github.com/evcraddock/studiodesk/internal/client"
	"github.com/evcraddock/studiodesk/internal/comment"
)

// Store is the comments resource. *client.Client satisfies it.
type Store interface {
	ListComments(ctx context.Context, projectID string) (*comment.List, error)
	CreateComment(ctx context.Context, projectID, content string) (*comment.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithLocation sets the zone timestamps are displayed in. time.Local otherwise.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

// WithMaxAge bounds how long a fetched list is served from cache. Zero
// re-reads the store on every List; concurrent reads still share one fetch.
// Lists never expire otherwise.
func WithMaxAge(d time.Duration) Option {
	return func(c *Controller) { c.maxAge = d }
}

// cachedList is a fetched list and when it was fetched.
type cachedList struct {
	list *comment.List
	at   time.Time
}

// Controller coordinates comment operations for any number of projects.
// It is safe for concurrent use.
type Controller struct {
	store  Store
	logger *slog.Logger
	loc    *time.Location
	maxAge time.Duration // negative: never expires
	now    func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	lists   map[string]cachedList // by project ID
	owners  map[string]string     // comment ID -> project ID
	pending map[string]bool       // projects with a create in flight
	version uint64                // bumped on every invalidation
}

// New creates a controller backed by store.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		logger:  slog.Default(),
		loc:     time.Local,
		maxAge:  -1,
		now:     time.Now,
		lists:   make(map[string]cachedList),
		owners:  make(map[string]string),
		pending: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the project's comments in server order. A failed fetch
// yields an empty list and is logged, never returned; failures are not
// cached. The returned list is shared and must not be modified.
func (c *Controller) List(ctx context.Context, projectID string) *comment.List {
	c.mu.Lock()
	if cached, ok := c.lists[projectID]; ok && c.fresh(cached) {
		c.mu.Unlock()
		return cached.list
	}
	version := c.version
	c.mu.Unlock()

	// The version in the key keeps a read issued after an invalidation from
	// joining a fetch that started before it.
	key := projectID + "@" + strconv.FormatUint(version, 10)
	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		list, err := c.store.ListComments(ctx, projectID)
		if err != nil {
			c.logger.Warn("listing comments failed, showing none",
				"project", projectID, "error", err)
			return comment.Empty(), nil
		}
		if list.Data == nil {
			list.Data = []*comment.Comment{}
		}

		c.mu.Lock()
		if c.version == version {
			c.lists[projectID] = cachedList{list: list, at: c.now()}
			for _, cm := range list.Data {
				c.owners[cm.ID] = projectID
			}
		}
		c.mu.Unlock()
		return list, nil
	})
	return v.(*comment.List)
}

// fresh reports whether a cached list may still be served. c.mu is held.
func (c *Controller) fresh(cached cachedList) bool {
	if c.maxAge < 0 {
		return true
	}
	return c.now().Sub(cached.at) < c.maxAge
}

// Create validates content and posts it to the project. Empty content
// fails with a *ValidationError without contacting the store; a rejected
// write fails with a *SubmissionError.
func (c *Controller) Create(ctx context.Context, projectID, content string) (*comment.Comment, error) {
	if err := comment.ValidateContent(content); err != nil {
		return nil, &ValidationError{Field: "content", Message: MsgRequired}
	}

	c.mu.Lock()
	if c.pending[projectID] {
		c.mu.Unlock()
		return nil, ErrSubmissionPending
	}
	c.pending[projectID] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, projectID)
		c.mu.Unlock()
	}()

	created, err := c.store.CreateComment(ctx, projectID, content)
	if err != nil {
		c.logger.Warn("adding comment failed", "project", projectID, "error", err)
		return nil, &SubmissionError{Message: submissionMessage(err), Err: err}
	}

	c.Invalidate(projectID)
	c.logger.Info("comment added", "project", projectID, "comment", created.ID)
	return created, nil
}

// Delete removes a comment. Any failure is a *DeletionError. On success
// the owning project's list is invalidated, or every list when the owner
// was never seen.
func (c *Controller) Delete(ctx context.Context, commentID string) error {
	if err := c.store.DeleteComment(ctx, commentID); err != nil {
		c.logger.Warn("deleting comment failed", "comment", commentID, "error", err)
		return &DeletionError{Err: err}
	}

	c.mu.Lock()
	projectID, known := c.owners[commentID]
	delete(c.owners, commentID)
	c.mu.Unlock()

	if known {
		c.Invalidate(projectID)
	} else {
		c.InvalidateAll()
	}
	c.logger.Info("comment deleted", "comment", commentID)
	return nil
}

// Invalidate drops the cached list for a project.
func (c *Controller) Invalidate(projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, projectID)
	c.version++
}

// InvalidateAll drops every cached list.
func (c *Controller) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists = make(map[string]cachedList)
	c.version++
}

// Pending reports whether a create is in flight for the project.
func (c *Controller) Pending(projectID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[projectID]
}

// Entry is one rendered comment.
type Entry struct {
	Comment   *comment.Comment      `json:"comment"`
	Author    string                `json:"author"`
	Activity  activity.Record       `json:"activity"`
	Display   activity.Presentation `json:"display"`
	CreatedAt string                `json:"created_at"`
	Deletable bool                  `json:"deletable"`
}

// Thread is a project's comments ready for display.
type Thread struct {
	ProjectID string  `json:"project_id"`
	Entries   []Entry `json:"entries"`
	// Total is the server-reported count, which may exceed len(Entries)
	// when the server pages results.
	Total int `json:"total"`
}

// View lists the project's comments and derives each entry for viewerID.
// An empty viewerID never sees delete actions.
func (c *Controller) View(ctx context.Context, projectID, viewerID string) *Thread {
	list := c.List(ctx, projectID)

	entries := make([]Entry, 0, len(list.Data))
	for _, cm := range list.Data {
		entries = append(entries, c.entry(cm, viewerID))
	}
	return &Thread{ProjectID: projectID, Entries: entries, Total: list.Count}
}

func (c *Controller) entry(cm *comment.Comment, viewerID string) Entry {
	rec := activity.Classify(cm.Content)
	return Entry{
		Comment:   cm,
		Author:    cm.AuthorName(),
		Activity:  rec,
		Display:   activity.Present(rec),
		CreatedAt: cm.CreatedAt.Format(c.loc),
		Deletable: cm.DeletableBy(viewerID),
	}
}

// submissionMessage picks the server's detail when there is one.
func submissionMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return MsgAddFailed
}
