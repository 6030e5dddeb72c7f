package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUncommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uncomment <comment-id>",
		Short: "Delete one of your comments",
		Long:  "Delete a comment. The server only allows authors to delete their own comments.",
		Args:  cobra.ExactArgs(1),
		RunE:  runUncomment,
	}
}

func runUncomment(cmd *cobra.Command, args []string) error {
	id, err := parseID("comment", args[0])
	if err != nil {
		return err
	}

	c := newAPIClient()
	ctrl, err := newController(c)
	if err != nil {
		return err
	}

	if err := ctrl.Delete(cmd.Context(), id); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]string{"id": id, "status": "deleted"})
	}

	fmt.Fprintln(out, "Comment deleted.")
	return nil
}
