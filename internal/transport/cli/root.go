// Package cli is the terminal transport: a cobra command tree whose commands
// stand in for the routed views of the web client. Commands stay thin; they
// guard the session, fetch through the services and render, leaving all
// business rules to the processing packages.
package cli

import (
	"github.com/snipurl/snip-cli/internal/api"
	"github.com/snipurl/snip-cli/internal/processing/analytics"
	"github.com/snipurl/snip-cli/internal/processing/links"
	"github.com/snipurl/snip-cli/internal/session"
	"github.com/spf13/cobra"
)

// App carries the wired dependencies every command pulls from.
type App struct {
	Store     session.Store
	API       *api.Client
	Links     *links.Service
	Analytics *analytics.Service

	// ShortBase is the public base short links are served from, used to
	// compose ready-to-share URLs for slugs the server did not echo back.
	ShortBase string
	Version   string
}

// NewRootCmd assembles the full command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:     "snip",
		Short:   "Shorten URLs and inspect their click analytics",
		Version: app.Version,
		// Failures are rendered as notices by the caller, not by cobra.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newCreateCmd(app),
		newLinksCmd(app),
		newAnalyticsCmd(app),
		newQRCmd(app),
		newResolveCmd(app),
	)
	return root
}

// requireAuth is the protected commands' PersistentPreRunE: with no stored
// token the command never builds a request and the user is pointed to login.
func requireAuth(app *App) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := session.RequireAuth(app.Store); err != nil {
			return &Notice{
				Title:       "Not logged in",
				Description: "Run `snip login` to authenticate first.",
			}
		}
		return nil
	}
}

// requireAnon is the inverse guard for login and register.
func requireAnon(app *App) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := session.RequireAnon(app.Store); err != nil {
			return &Notice{
				Title:       "Already logged in",
				Description: "Run `snip dashboard`, or `snip logout` to switch accounts.",
			}
		}
		return nil
	}
}
