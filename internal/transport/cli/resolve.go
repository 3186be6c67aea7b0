package cli

import (
	"fmt"

	"github.com/snipurl/snip-cli/internal/api"
	"github.com/snipurl/snip-cli/internal/constants"
	"github.com/spf13/cobra"
)

func newResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <slug>",
		Short: "Show where a short link redirects without following it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := app.API.ResolveTarget(cmd.Context(), args[0])
			switch {
			case api.IsNotFound(err):
				return failure("Link not found", err, constants.MsgGenericError)
			case err != nil:
				return genericFailure("Could not resolve link", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
}
