package main

import (
	"github.com/spf13/cobra"

	"tessera/pkg/layout"
	"tessera/pkg/render"
	"tessera/pkg/resource"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input.html|url>",
		Short: "Print the laid-out box tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			src, base, err := readSource(ctx, args[0])
			if err != nil {
				return err
			}

			loader := resource.NewLoader(resource.NewFetcher(base), a.logger.Named("loader"))
			loader.EnableScripts(a.cfg.Render.Scripts)
			page, err := loader.Load(ctx, src)
			if err != nil {
				return err
			}

			r, err := render.NewRenderer(a.cfg.Viewport.Width, a.cfg.Viewport.Height,
				render.WithUserAgentStyles(a.cfg.Render.UserAgent),
				render.WithLogger(a.logger.Named("render")))
			if err != nil {
				return err
			}
			box, err := r.Layout(page.Document.Root, page.Stylesheet)
			if err != nil {
				return err
			}
			return layout.Dump(cmd.OutOrStdout(), box)
		},
	}
}
