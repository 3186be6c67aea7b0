package cli

import (
	"fmt"

	"github.com/snipurl/snip-cli/internal/processing/analytics"
	"github.com/snipurl/snip-cli/internal/processing/links"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "dashboard",
		Short:             "Account overview: links plus global click analytics",
		Args:              cobra.NoArgs,
		PersistentPreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// The view needs both payloads; fetch them concurrently and join.
			type pageResult struct {
				page *links.Page
				err  error
			}
			pageCh := make(chan pageResult, 1)
			go func() {
				p, err := app.Links.List(ctx)
				pageCh <- pageResult{page: p, err: err}
			}()

			global, gerr := app.Analytics.Global(ctx)
			pr := <-pageCh

			if gerr != nil {
				return genericFailure("Could not load analytics", gerr)
			}
			if pr.err != nil {
				return genericFailure("Could not load links", pr.err)
			}

			out := cmd.OutOrStdout()
			user := app.Store.User()
			if user != nil {
				fmt.Fprintf(out, "Dashboard for %s\n", user.DisplayName())
			} else {
				fmt.Fprintln(out, "Dashboard")
			}
			fmt.Fprintf(out, "%d links, %d total clicks\n", global.TotalLinks, global.TotalClicks)

			renderTopLinks(out, analytics.TopN(global.TopLinks, 5))
			renderSeries(out, "Clicks by date", analytics.ToSeries(global.ClicksByDate))
			renderGeo(out, analytics.ToGeoSeries(global.Geo, global.TotalClicks))
			renderSummary(out, global.AISummary)

			if len(pr.page.Links) == 0 {
				fmt.Fprintln(out, "\nNo links yet. Create one with `snip create <url>`.")
			} else {
				fmt.Fprintln(out, "\nYour links")
				renderLinkTable(out, pr.page.Links)
			}
			return nil
		},
	}
}
