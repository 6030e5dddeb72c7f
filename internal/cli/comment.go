package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/studiodesk/internal/activity"
)

func newCommentCmd() *cobra.Command {
	var photo, gallery string

	cmd := &cobra.Command{
		Use:   `comment <project-id> "text"`,
		Short: "Add a comment to a project",
		Long: `Add a comment to a project.

With --photo the comment is attached to a photo; with --gallery it requests
changes to a gallery, and the text may be empty.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComment(cmd, args, photo, gallery)
		},
	}

	cmd.Flags().StringVar(&photo, "photo", "", "photo file name the comment is about")
	cmd.Flags().StringVar(&gallery, "gallery", "", "gallery to request changes on")
	cmd.MarkFlagsMutuallyExclusive("photo", "gallery")

	return cmd
}

func runComment(cmd *cobra.Command, args []string, photo, gallery string) error {
	id, err := parseID("project", args[0])
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	content, err := activity.Compose(commentRecord(text, photo, gallery))
	if err != nil {
		return err
	}

	c := newAPIClient()
	ctrl, err := newController(c)
	if err != nil {
		return err
	}

	comm, err := ctrl.Create(cmd.Context(), id, content)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, comm)
	}

	printCommentSingle(out, comm)
	return nil
}

// commentRecord picks the activity kind from the --photo and --gallery flags.
func commentRecord(text, photo, gallery string) activity.Record {
	switch {
	case photo != "":
		return activity.Photo(photo, text)
	case gallery != "":
		return activity.ChangesRequested(gallery, text)
	default:
		return activity.Page(text)
	}
}
