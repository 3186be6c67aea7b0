package cli

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

const (
	qrMinSize = 128
	qrMaxSize = 1024
)

func newQRCmd(app *App) *cobra.Command {
	var (
		output string
		size   int
		level  string
	)

	cmd := &cobra.Command{
		Use:               "qr <slug>",
		Short:             "Render a link's short URL as a QR code PNG",
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]

			if size < qrMinSize || size > qrMaxSize {
				return &Notice{
					Title:       "Invalid size",
					Description: fmt.Sprintf("Size must be between %d and %d pixels.", qrMinSize, qrMaxSize),
				}
			}
			recovery, err := parseQRLevel(level)
			if err != nil {
				return err
			}

			shortURL := app.ShortBase + "/" + slug
			if output == "" {
				output = slug + ".png"
			}

			if err := qrcode.WriteFile(shortURL, recovery, size, output); err != nil {
				return genericFailure("Could not write QR code", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", shortURL, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <slug>.png)")
	cmd.Flags().IntVar(&size, "size", 256, "image size in pixels")
	cmd.Flags().StringVar(&level, "level", "medium", "error correction: low, medium, high or highest")
	return cmd
}

func parseQRLevel(level string) (qrcode.RecoveryLevel, error) {
	switch level {
	case "low":
		return qrcode.Low, nil
	case "medium":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	default:
		return 0, &Notice{
			Title:       "Invalid level",
			Description: "Error correction level must be low, medium, high or highest.",
		}
	}
}
