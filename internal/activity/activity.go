// Package activity classifies comment text into display activities.
//
// Comments are stored as free text. Two bracket-tag prefixes mark comments
// that were left on a photo or that request changes to a gallery; anything
// else is a plain page comment.
package activity

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies what a comment is about.
type Kind string

const (
	KindPage             Kind = "page"
	KindPhoto            Kind = "photo"
	KindChangesRequested Kind = "changes_requested"
)

// Valid returns true if k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindPage, KindPhoto, KindChangesRequested:
		return true
	}
	return false
}

// Record is the classified form of a comment. It is derived at display
// time and never stored.
type Record struct {
	Kind Kind `json:"kind"`
	// Target is the photo name or gallery label. HasTarget distinguishes
	// "no target" from a tag whose label trimmed to nothing.
	Target    string `json:"target_label,omitempty"`
	HasTarget bool   `json:"-"`
	Body      string `json:"body"`
}

var (
	photoPattern   = regexp.MustCompile(`(?s)^\[Photo:\s*([^\]]+)\]\s*(.*)$`)
	changesPattern = regexp.MustCompile(`(?s)^\[Gallery:\s*([^\]]+)\]\s*Changes requested:\s*(.*)$`)
)

// Classify maps raw comment content to a Record. Photo tags win over
// gallery tags; untagged content is a page comment.
func Classify(content string) Record {
	if m := photoPattern.FindStringSubmatch(content); m != nil {
		return Record{
			Kind:      KindPhoto,
			Target:    strings.TrimSpace(m[1]),
			HasTarget: true,
			Body:      strings.TrimSpace(m[2]),
		}
	}

	if m := changesPattern.FindStringSubmatch(content); m != nil {
		return Record{
			Kind:      KindChangesRequested,
			Target:    strings.TrimSpace(m[1]),
			HasTarget: true,
			Body:      strings.TrimSpace(m[2]),
		}
	}

	return Record{Kind: KindPage, Body: strings.TrimSpace(content)}
}

// Page builds a plain comment record.
func Page(body string) Record {
	return Record{Kind: KindPage, Body: strings.TrimSpace(body)}
}

// Photo builds a comment record attached to a photo.
func Photo(name, body string) Record {
	return Record{
		Kind:      KindPhoto,
		Target:    strings.TrimSpace(name),
		HasTarget: true,
		Body:      strings.TrimSpace(body),
	}
}

// ChangesRequested builds a change request against a gallery.
func ChangesRequested(gallery, body string) Record {
	return Record{
		Kind:      KindChangesRequested,
		Target:    strings.TrimSpace(gallery),
		HasTarget: true,
		Body:      strings.TrimSpace(body),
	}
}

// Compose renders a record in the bracket-tag text convention so that
// Classify reads it back unchanged. Targets must be non-empty, single-line,
// and free of ']'.
func Compose(r Record) (string, error) {
	switch r.Kind {
	case KindPage:
		body := strings.TrimSpace(r.Body)
		// A page body that looks tagged would be misread on the way back.
		if Classify(body).Kind != KindPage {
			return "", fmt.Errorf("page comment cannot start with a photo or gallery tag")
		}
		return body, nil
	case KindPhoto:
		target, err := validTarget(r.Target)
		if err != nil {
			return "", fmt.Errorf("photo name: %w", err)
		}
		return joinNonEmpty(fmt.Sprintf("[Photo: %s]", target), r.Body), nil
	case KindChangesRequested:
		target, err := validTarget(r.Target)
		if err != nil {
			return "", fmt.Errorf("gallery name: %w", err)
		}
		return joinNonEmpty(fmt.Sprintf("[Gallery: %s] Changes requested:", target), r.Body), nil
	default:
		return "", fmt.Errorf("unknown activity kind %q", r.Kind)
	}
}

func validTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("is required")
	}
	if strings.ContainsAny(target, "]\r\n") {
		return "", fmt.Errorf("must be a single line without ']'")
	}
	return target, nil
}

func joinNonEmpty(prefix, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return prefix
	}
	return prefix + " " + body
}
