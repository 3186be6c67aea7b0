package cli

import (
	"fmt"

	"github.com/snipurl/snip-cli/internal/api"
	"github.com/snipurl/snip-cli/internal/constants"
	"github.com/snipurl/snip-cli/internal/processing/analytics"
	"github.com/spf13/cobra"
)

func newAnalyticsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "analytics [slug]",
		Short:             "Click analytics for one link, or the whole account",
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runGlobalAnalytics(app, cmd)
			}
			return runLinkAnalytics(app, cmd, args[0])
		},
	}
}

func runLinkAnalytics(app *App, cmd *cobra.Command, slug string) error {
	agg, err := app.Analytics.ForLink(cmd.Context(), slug)
	switch {
	case api.IsNotFound(err):
		return failure("Link not found", err, constants.MsgGenericError)
	case err != nil:
		return genericFailure("Could not load analytics", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s -> %s\n", agg.Slug, agg.LongURL)
	fmt.Fprintf(out, "%d total clicks\n", agg.TotalClicks)

	renderSeries(out, "Clicks by date", analytics.ToSeries(agg.ClicksByDate))
	renderSeries(out, "Browsers", analytics.ToSeries(agg.Browsers))
	renderSeries(out, "Referrers", analytics.ToSeries(agg.Referrers))
	renderGeo(out, analytics.ToGeoSeries(agg.Geo, agg.TotalClicks))
	renderSummary(out, agg.AISummary)
	return nil
}

func runGlobalAnalytics(app *App, cmd *cobra.Command) error {
	global, err := app.Analytics.Global(cmd.Context())
	if err != nil {
		return genericFailure("Could not load analytics", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d links, %d total clicks\n", global.TotalLinks, global.TotalClicks)

	renderTopLinks(out, analytics.TopN(global.TopLinks, 5))
	renderSeries(out, "Clicks by date", analytics.ToSeries(global.ClicksByDate))
	renderSeries(out, "Browsers", analytics.ToSeries(global.Browsers))
	renderSeries(out, "Referrers", analytics.ToSeries(global.Referrers))
	renderGeo(out, analytics.ToGeoSeries(global.Geo, global.TotalClicks))
	renderSummary(out, global.AISummary)
	return nil
}
