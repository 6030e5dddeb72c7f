package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <project-id>",
		Short: "List comments for a project",
		Long:  "Show a project's comment thread in server order. Comments you wrote are marked [x] and can be removed with 'sd uncomment'.",
		Args:  cobra.ExactArgs(1),
		RunE:  runComments,
	}
}

func runComments(cmd *cobra.Command, args []string) error {
	id, err := parseID("project", args[0])
	if err != nil {
		return err
	}

	c := newAPIClient()
	ctrl, err := newController(c)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	th := ctrl.View(ctx, id, viewerID(ctx, c))

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, th)
	}

	fmt.Fprintf(out, "Comments for project %s:\n\n", id)
	printThread(out, th)
	return nil
}
