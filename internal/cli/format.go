package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/evcraddock/studiodesk/internal/activity"
	"github.com/evcraddock/studiodesk/internal/comment"
	"github.com/evcraddock/studiodesk/internal/project"
	"github.com/evcraddock/studiodesk/internal/thread"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// styles are bound to the output writer so colors are dropped when it is
// not a terminal.
type styles struct {
	heading lipgloss.Style
	author  lipgloss.Style
	verb    lipgloss.Style
	target  lipgloss.Style
	meta    lipgloss.Style
	body    lipgloss.Style
	alert   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true),
		author:  r.NewStyle().Bold(true),
		verb:    r.NewStyle().Foreground(lipgloss.Color("245")),
		target:  r.NewStyle().Foreground(lipgloss.Color("39")),
		meta:    r.NewStyle().Foreground(lipgloss.Color("241")),
		body:    r.NewStyle().PaddingLeft(4),
		alert:   r.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	}
}

// iconGlyph maps an entry indicator to a terminal glyph.
func iconGlyph(icon activity.Icon) string {
	switch icon {
	case activity.IconImage:
		return "▣"
	case activity.IconAlert:
		return "!"
	default:
		return "•"
	}
}

// printThread prints a project's comment thread in text format.
func printThread(w io.Writer, th *thread.Thread) {
	if len(th.Entries) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}

	st := newStyles(w)
	for _, e := range th.Entries {
		glyph := iconGlyph(e.Display.Icon)
		if e.Display.Icon == activity.IconAlert {
			glyph = st.alert.Render(glyph)
		}

		header := []string{glyph, st.author.Render(e.Author), st.verb.Render(e.Display.Verb)}
		if e.Display.Target != "" {
			header = append(header, st.target.Render(e.Display.Target))
		}
		meta := fmt.Sprintf("· %s #%s", e.CreatedAt, e.Comment.ID)
		if e.Deletable {
			meta += " [x]"
		}
		header = append(header, st.meta.Render(meta))

		fmt.Fprintln(w, strings.Join(header, " "))
		if e.Activity.Body != "" {
			fmt.Fprintln(w, st.body.Render(e.Activity.Body))
		}
		fmt.Fprintln(w)
	}

	if th.Total > len(th.Entries) {
		fmt.Fprintf(w, "Showing %d of %d comments\n", len(th.Entries), th.Total)
	}
}

// printCommentSingle prints a newly created comment in text format.
func printCommentSingle(w io.Writer, c *comment.Comment) {
	rec := activity.Classify(c.Content)
	p := activity.Present(rec)
	line := fmt.Sprintf("Comment #%s added", c.ID)
	if p.Target != "" {
		line += fmt.Sprintf(" (%s %s)", p.Verb, p.Target)
	}
	fmt.Fprintln(w, line+".")
	if rec.Body != "" {
		fmt.Fprintf(w, "  %s\n", rec.Body)
	}
}

// printProjectSummary prints project details in text format.
func printProjectSummary(w io.Writer, p *project.Project, loc *time.Location) {
	st := newStyles(w)
	fmt.Fprintln(w, st.heading.Render(p.Name))
	fmt.Fprintf(w, "  ID:        %s\n", p.ID)
	fmt.Fprintf(w, "  Client:    %s\n", p.ClientName)
	if p.ClientEmail != nil {
		fmt.Fprintf(w, "  Email:     %s\n", *p.ClientEmail)
	}
	fmt.Fprintf(w, "  Status:    %s\n", project.StatusLabel(p.Status))
	fmt.Fprintf(w, "  Progress:  %d%% (%s)\n", p.Progress, strings.ReplaceAll(project.ProgressBand(p.Progress), "_", " "))
	fmt.Fprintf(w, "  Start:     %s\n", formatStr(p.StartDate))
	fmt.Fprintf(w, "  Deadline:  %s\n", formatStr(p.Deadline))
	if p.Budget != nil {
		fmt.Fprintf(w, "  Budget:    %s\n", *p.Budget)
	}
	fmt.Fprintf(w, "  Created:   %s\n", p.CreatedAt.FormatDate(loc))
	if p.Description != nil && *p.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", *p.Description)
	}
}

// printGalleryTable prints galleries as a formatted table.
func printGalleryTable(w io.Writer, galleries []*project.Gallery) error {
	if len(galleries) == 0 {
		fmt.Fprintln(w, "No galleries.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "NAME\tSTATUS\tPHOTOS\tPHOTOGRAPHER"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "----\t------\t------\t------------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, g := range galleries {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			truncate(g.Name, 40), project.StatusLabel(g.Status), g.PhotoCount, formatStr(g.Photographer)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nFiles: %d\n", project.FileCount(galleries))
	return nil
}

func formatStr(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
