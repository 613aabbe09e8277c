package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRenderCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <input.html|url>",
		Short: "Render a page to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			src, base, err := readSource(ctx, args[0])
			if err != nil {
				return err
			}
			pr, err := a.pageRenderer(base)
			if err != nil {
				return err
			}

			canvas, err := pr.Render(ctx, src, a.cfg.Viewport.Width, a.cfg.Viewport.Height)
			if err != nil {
				return err
			}
			if err := canvas.SavePNG(output); err != nil {
				return fmt.Errorf("save error: %w", err)
			}

			a.logger.Info("rendered",
				zap.String("input", args[0]),
				zap.String("output", output),
				zap.Int("width", canvas.Width),
				zap.Int("height", canvas.Height))
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s to %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "output.png", "output PNG file path")
	return cmd
}
