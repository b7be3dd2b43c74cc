package commands

import (
	"context"
	"fmt"
	"hansard-scraper/internal/components/fetcher"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/render"
	"hansard-scraper/lib/serviceutil"
	otlp "hansard-scraper/lib/telemetry"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	dumpHttp   string
	output     string
)

// set up by the root command before any subcommand runs
var (
	config    Config
	format    render.Format
	sources   scrapers
	providers otlp.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "hansard-cli",
	Short: "hansard-cli scrapes sittings and members of the Kenyan parliament from mzalendo.",
	Long: `hansard-cli scrapes sittings and members of the Kenyan parliament from mzalendo.

The archive commands read the archived mirror at info.mzalendo.com, the current
commands read the live site at mzalendo.com.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := providers.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "warn", "The log level, one of off, error, warn, info, debug.")
	flags.StringVar(&configPath, "config", "", "The config file to use, defaults to searching for "+defaultConfigName+" upwards from the cwd.")
	flags.StringVar(&dumpHttp, "dump-http", "", "Writes every http request and response to a file in this directory.")
	flags.StringVarP(&output, "output", "o", "text", "The output format, one of text, json.")

	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(configCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	level, enabled, err := telemetry.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	telemetry.InitSlog(os.Stderr, level, enabled)

	format, err = render.ParseFormat(output)
	if err != nil {
		return err
	}

	config, err = loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	providers, err = otlp.Setup(cmd.Context(), "hansard-cli", config.Otlp)
	if err != nil {
		slog.Warn("failed to set up otlp exporters", "err", err)
	}
	if providers.MeterProvider != nil {
		otlp.RecordRuntimeStats(cmd.Context(), time.Second*30)
	}

	tel := telemetry.SlogAPI{}
	f, err := fetcher.NewRestyFetcher(config.fetcherOptions(dumpHttp), tel)
	if err != nil {
		return err
	}
	sources, err = newScrapers(config, f, tel)
	return err
}

// write renders `value` as json or calls `text` to render it as text.
func write(value any, text func()) error {
	if format == render.Json {
		return render.JSON(os.Stdout, value)
	}
	text()
	return nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		serviceutil.Fatal("hansard-cli", err)
	}
}
