package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/snipurl/snip-cli/internal/api"
	"github.com/snipurl/snip-cli/internal/constants"
	"github.com/snipurl/snip-cli/internal/processing/analytics"
)

// Notice is a user-facing failure: a short title plus a readable description.
// Commands return these instead of raw errors so the terminal never shows a
// stack dump or a JSON blob.
type Notice struct {
	Title       string
	Description string
}

func (n *Notice) Error() string {
	return n.Title + ": " + n.Description
}

// failure wraps a remote or local error into a Notice, cleaning the message
// the same way the error is cleaned before reaching a toast.
func failure(title string, err error, fallback string) *Notice {
	return &Notice{Title: title, Description: api.CleanMessage(err, fallback)}
}

func genericFailure(title string, err error) *Notice {
	return failure(title, err, constants.MsgGenericError)
}

// RenderNotice writes err to w in the notice shape. Callers own the exit code.
func RenderNotice(w io.Writer, err error) {
	var n *Notice
	if e, ok := err.(*Notice); ok {
		n = e
	} else {
		n = genericFailure("Something went wrong", err)
	}
	fmt.Fprintf(w, "%s\n  %s\n", n.Title, n.Description)
}

const barWidth = 24

// bar renders value as a block-character bar scaled against max. Non-zero
// values always get at least one block so small slices stay visible.
func bar(value, max int64) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := int(float64(value) / float64(max) * barWidth)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// formatPct guards the zero-totalClicks case, where percentages come through
// as NaN.
func formatPct(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", p)
}

func maxValue(series []analytics.Point) int64 {
	var max int64
	for _, p := range series {
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}

// renderSeries prints one labeled chart section: label, count and a bar per
// row, in the series' own order.
func renderSeries(w io.Writer, title string, series []analytics.Point) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(series) == 0 {
		fmt.Fprintln(w, "  no data yet")
		return
	}
	max := maxValue(series)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, p := range series {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", p.Key, p.Value, bar(p.Value, max))
	}
	tw.Flush()
}

// renderGeo prints the per-country section with each country's share.
func renderGeo(w io.Writer, series []analytics.GeoPoint) {
	fmt.Fprintf(w, "\n%s\n", "Clicks by country")
	if len(series) == 0 {
		fmt.Fprintln(w, "  no data yet")
		return
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, p := range series {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", p.Country, p.Value, formatPct(p.Percentage))
	}
	tw.Flush()

	top := analytics.TopLocation(series)
	fmt.Fprintf(w, "  top location: %s (%d clicks)\n", top.Country, top.Value)
}

func renderTopLinks(w io.Writer, top []analytics.TopLink) {
	fmt.Fprintf(w, "\n%s\n", "Top links")
	if len(top) == 0 {
		fmt.Fprintln(w, "  no links yet")
		return
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, l := range top {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", l.Slug, l.Clicks, l.LongURL)
	}
	tw.Flush()
}

func renderSummary(w io.Writer, summary string) {
	// Server-generated text passes through untouched.
	if strings.TrimSpace(summary) == "" {
		return
	}
	fmt.Fprintf(w, "\nSummary\n  %s\n", summary)
}
