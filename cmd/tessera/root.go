package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tessera/internal/config"
	"tessera/internal/observability"
	"tessera/pkg/render"
	"tessera/pkg/resource"
	"tessera/pkg/text"
	stdnet "tessera/std/net"
)

// app carries the state shared by every subcommand once the root's
// PersistentPreRunE has run.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "tessera",
		Short:         "Render HTML and CSS to a pixel canvas",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml or toml)")
	flags.IntP("width", "W", 800, "viewport width in pixels")
	flags.IntP("height", "H", 600, "viewport height in pixels")
	flags.Float64("font-size", text.DefaultFontSize, "default font size in pixels")
	flags.String("font", "", "TrueType/OpenType font file (default: bundled Go Regular)")
	flags.Bool("user-agent", true, "apply the built-in user-agent stylesheet")
	flags.Bool("scripts", false, "run <script> blocks before styling")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	for key, name := range map[string]string{
		"viewport.width":    "width",
		"viewport.height":   "height",
		"font.size":         "font-size",
		"font.path":         "font",
		"render.user_agent": "user-agent",
		"render.scripts":    "scripts",
		"logger.level":      "log-level",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(newRenderCmd(a), newInspectCmd(a))
	return root
}

func (a *app) initialize() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.Initialize(cfg.Logger)
	return nil
}

// pageRenderer builds the loader and renderer options from configuration.
// base is where relative stylesheet links resolve.
func (a *app) pageRenderer(base string) (*resource.PageRenderer, error) {
	raster, err := text.NewFontRasterizer(text.FontConfig{Path: a.cfg.Font.Path, Size: a.cfg.Font.Size})
	if err != nil {
		return nil, err
	}

	loader := resource.NewLoader(resource.NewFetcher(base), a.logger.Named("loader"))
	loader.EnableScripts(a.cfg.Render.Scripts)

	return resource.NewPageRenderer(loader,
		render.WithRasterizer(raster),
		render.WithFontSize(a.cfg.Font.Size),
		render.WithUserAgentStyles(a.cfg.Render.UserAgent),
		render.WithLogger(a.logger.Named("render")),
	), nil
}

// readSource loads markup from a URL or a file and returns it with the
// base for resolving its links.
func readSource(ctx context.Context, input string) (src, base string, err error) {
	if stdnet.IsNetworkURL(input) {
		body, _, err := stdnet.Fetch(ctx, input)
		if err != nil {
			return "", "", err
		}
		return string(body), input, nil
	}

	body, err := os.ReadFile(input)
	if err != nil {
		return "", "", fmt.Errorf("reading input: %w", err)
	}
	return string(body), filepath.Dir(input), nil
}

func (a *app) context(parent context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Render.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, a.cfg.Render.Timeout)
}
