// Package comment provides the project comment model and the display rules
// that apply to it.
package comment

import (
	"fmt"
	"strings"

	"github.com/evcraddock/studiodesk/internal/apitime"
)

// UnknownAuthor is shown when a comment carries neither a name nor an email.
const UnknownAuthor = "Unknown User"

// Comment is a comment record as returned by the comments API.
type Comment struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	ProjectID string            `json:"project_id,omitempty"`
	CreatedAt apitime.Timestamp `json:"created_at"`
	UserID    string            `json:"user_id"`
	User      *User             `json:"user,omitempty"`
}

// User is the author summary embedded in a comment.
type User struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// List is a page of comments for a project.
type List struct {
	Data  []*Comment `json:"data"`
	Count int        `json:"count"`
}

// Empty returns a list with no comments. Data is non-nil so it encodes as [].
func Empty() *List {
	return &List{Data: []*Comment{}, Count: 0}
}

// AuthorName prefers the full name, then the email, then UnknownAuthor.
func (c *Comment) AuthorName() string {
	if c.User != nil {
		if c.User.FullName != "" {
			return c.User.FullName
		}
		if c.User.Email != "" {
			return c.User.Email
		}
	}
	return UnknownAuthor
}

// DeletableBy reports whether the viewer authored the comment. It only
// decides whether a delete action is offered; the server enforces the rule.
func (c *Comment) DeletableBy(viewerID string) bool {
	return viewerID != "" && viewerID == c.UserID
}

// ValidateContent checks submitted comment text before it is sent.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment is required")
	}
	return nil
}
