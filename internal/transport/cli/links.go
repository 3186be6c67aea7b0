package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/snipurl/snip-cli/internal/api"
	"github.com/snipurl/snip-cli/internal/constants"
	"github.com/snipurl/snip-cli/internal/processing/links"
	"github.com/spf13/cobra"
)

func newCreateCmd(app *App) *cobra.Command {
	var customSlug string

	cmd := &cobra.Command{
		Use:               "create <long-url>",
		Short:             "Shorten a URL",
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Links.Create(cmd.Context(), links.CreateInput{
				LongURL:    args[0],
				CustomSlug: customSlug,
			})
			switch {
			case errors.Is(err, links.ErrInvalidURL):
				return &Notice{Title: "Invalid URL", Description: "Provide an absolute http(s) URL."}
			case errors.Is(err, links.ErrInvalidSlug):
				return &Notice{Title: "Invalid slug", Description: "Slugs use letters, digits, '-' and '_' only."}
			case err != nil:
				return genericFailure("Could not create link", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), created.ShortURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&customSlug, "slug", "s", "", "custom slug instead of a generated one")
	return cmd
}

func newLinksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "links",
		Short:             "List and manage your short links",
		PersistentPreRunE: requireAuth(app),
	}
	cmd.AddCommand(newLinksListCmd(app), newLinksUpdateCmd(app), newLinksDeleteCmd(app))
	return cmd
}

func newLinksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your short links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.Links.List(cmd.Context())
			if err != nil {
				return genericFailure("Could not load links", err)
			}

			out := cmd.OutOrStdout()
			if len(page.Links) == 0 {
				fmt.Fprintln(out, "No links yet. Create one with `snip create <url>`.")
				return nil
			}
			renderLinkTable(out, page.Links)
			fmt.Fprintf(out, "page %d of %d, %d links total\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
}

func newLinksUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update <slug> <new-slug>",
		Short: "Rename a link's slug",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.Links.UpdateSlug(cmd.Context(), args[0], args[1])
			switch {
			case errors.Is(err, links.ErrNoChanges):
				return &Notice{Title: "Nothing to update", Description: constants.MsgNoChanges}
			case errors.Is(err, links.ErrEmptySlug):
				return &Notice{Title: "Missing slug", Description: "Both the current and the new slug are required."}
			case errors.Is(err, links.ErrInvalidSlug):
				return &Notice{Title: "Invalid slug", Description: "Slugs use letters, digits, '-' and '_' only."}
			case api.IsNotFound(err):
				return failure("Link not found", err, constants.MsgGenericError)
			case err != nil:
				return genericFailure("Could not update link", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], updated.Slug)
			return nil
		},
	}
}

func newLinksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := strings.TrimSpace(args[0])

			if !yes && !confirm(cmd, fmt.Sprintf("Delete %q? The short link stops working immediately. [y/N] ", slug)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			err := app.Links.Delete(cmd.Context(), slug)
			switch {
			case errors.Is(err, links.ErrEmptySlug):
				return &Notice{Title: "Missing slug", Description: "Tell me which slug to delete."}
			case api.IsNotFound(err):
				return failure("Link not found", err, constants.MsgGenericError)
			case err != nil:
				return genericFailure("Could not delete link", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", slug)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func renderLinkTable(w io.Writer, list []links.Link) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  SLUG\tCLICKS\tCREATED\tURL")
	for _, l := range list {
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\n", l.Slug, l.ClicksCount, l.CreatedAt, l.LongURL)
	}
	tw.Flush()
}
