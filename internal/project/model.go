// Package project provides the project and gallery models shown on the
// project detail page.
package project

import (
	"strings"

	"github.com/evcraddock/studiodesk/internal/apitime"
)

// Status values used by the projects API.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusCompleted  = "completed"
	StatusPending    = "pending"
)

// Project is a client project as returned by GET /api/v1/projects/{id}.
type Project struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	ClientName     string            `json:"client_name"`
	ClientEmail    *string           `json:"client_email"`
	Description    *string           `json:"description"`
	Status         string            `json:"status"`
	Deadline       *string           `json:"deadline"`   // YYYY-MM-DD
	StartDate      *string           `json:"start_date"` // YYYY-MM-DD
	Budget         *string           `json:"budget"`
	Progress       int               `json:"progress"`
	CreatedAt      apitime.Timestamp `json:"created_at"`
	UpdatedAt      apitime.Timestamp `json:"updated_at"`
	OrganizationID string            `json:"organization_id"`
}

// Gallery is a photo gallery attached to a project.
type Gallery struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Date          *string           `json:"date"`
	PhotoCount    int               `json:"photo_count"`
	Photographer  *string           `json:"photographer"`
	Status        string            `json:"status"`
	CoverImageURL *string           `json:"cover_image_url"`
	CreatedAt     apitime.Timestamp `json:"created_at"`
	ProjectID     string            `json:"project_id"`
}

// GalleryList is a page of galleries.
type GalleryList struct {
	Data  []*Gallery `json:"data"`
	Count int        `json:"count"`
}

// StatusLabel title-cases a snake_case status: "in_progress" -> "In Progress".
func StatusLabel(status string) string {
	words := strings.Split(status, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FileCount sums photo counts across galleries.
func FileCount(galleries []*Gallery) int {
	total := 0
	for _, g := range galleries {
		total += g.PhotoCount
	}
	return total
}

// ProgressBand buckets completion for display.
func ProgressBand(progress int) string {
	switch {
	case progress >= 100:
		return "complete"
	case progress >= 50:
		return "on_track"
	default:
		return "behind"
	}
}
