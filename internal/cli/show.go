package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/studiodesk/internal/project"
	"github.com/evcraddock/studiodesk/internal/thread"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show project details",
		Long:  "Show full details for a project, including its galleries and comment thread.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

type showResponse struct {
	Project   *project.Project   `json:"project"`
	Galleries []*project.Gallery `json:"galleries"`
	FileCount int                `json:"file_count"`
	Thread    *thread.Thread     `json:"thread"`
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID("project", args[0])
	if err != nil {
		return err
	}

	c := newAPIClient()
	ctrl, err := newController(c)
	if err != nil {
		return err
	}
	loc, err := getLocation()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p, err := c.GetProject(ctx, id)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}

	galleries := []*project.Gallery{}
	if list, err := c.ListGalleries(ctx, id); err != nil {
		slog.Warn("listing galleries failed", "project", id, "error", err)
	} else if list.Data != nil {
		galleries = list.Data
	}

	resp := showResponse{
		Project:   p,
		Galleries: galleries,
		FileCount: project.FileCount(galleries),
		Thread:    ctrl.View(ctx, id, viewerID(ctx, c)),
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, resp)
	}

	printProjectSummary(out, p, loc)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Galleries (%d):\n", len(galleries))
	if err := printGalleryTable(out, galleries); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Comments (%d):\n", resp.Thread.Total)
	printThread(out, resp.Thread)
	return nil
}
