// Command chartgen renders declarative charts from CSV, JSON and SQLite
// datasets or from chart documents.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-chartgen/internal/config"
	"github.com/goliatone/go-chartgen/internal/prompt"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := newRootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by every command.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	envFiles   []string
	verbose    bool
	logLevel   string

	cfg    config.Config
	logger *zap.Logger

	// driver answers the interactive command. Nil means a survey driver.
	driver prompt.Driver
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, cfg: config.Default(), logger: zap.NewNop()}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "chartgen",
		Short: "Render declarative charts from tabular data",
		Long: `chartgen maps dataset columns onto visual channels and renders the
resulting figure as HTML, Plotly JSON, echarts HTML, PNG or SVG.

Charts can be described with flags (chartgen render), loaded from YAML or JSON
chart documents (chartgen doc) or built step by step (chartgen interactive).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{
				Path:     a.configPath,
				Required: cmd.Flags().Changed("config"),
				EnvFiles: a.envFiles,
			})
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.LogLevel = a.logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			a.cfg = cfg

			logger, err := buildLogger(cfg, a.verbose, a.errOut)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "chartgen.yaml", "Config file")
	flags.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "Dotenv files loaded before reading CHARTGEN_* variables")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newRenderCommand(a),
		newDocCommand(a),
		newKindsCommand(a),
		newRenderersCommand(a),
		newInteractiveCommand(a),
	)
	return root
}

func buildLogger(cfg config.Config, verbose bool, w io.Writer) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	if cfg.Development {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core).Named("chartgen"), nil
}
