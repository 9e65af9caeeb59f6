package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naka-gawa/self-reposcope/internal/chart"
	"github.com/naka-gawa/self-reposcope/internal/colors"
	"github.com/naka-gawa/self-reposcope/internal/gateway"
	"github.com/naka-gawa/self-reposcope/internal/report"
	"github.com/naka-gawa/self-reposcope/internal/usecase"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Aggregates your repositories' languages and writes SVG charts",
	Long: `Lists the repositories of the authenticated GitHub user, keeps the ones the
user owns (no forks, no organization repositories), sums their language byte
counts and writes a bar chart and a compact stacked chart as SVG files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

		palette, err := colors.Default()
		if err != nil {
			return fmt.Errorf("failed to load language colors: %w", err)
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, cfg.Rate, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		return generate(cmd.Context(), githubGateway, palette, cfg, cmd.OutOrStdout(), logger)
	},
}

// generate aggregates languages through fetcher and writes both charts.
// The bar chart is written even when the compact chart has nothing to show.
func generate(ctx context.Context, fetcher gateway.Fetcher, palette chart.Palette, cfg *Config, out io.Writer, logger *log.Logger) error {
	aggregator := usecase.NewAggregator(fetcher, logger, cfg.Concurrency)
	ranked, err := aggregator.Aggregate(ctx)
	if err != nil {
		return fmt.Errorf("failed to aggregate languages: %w", err)
	}

	if cfg.Summary {
		if err := report.Print(out, ranked); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	if err := chart.WriteFile(cfg.BarOutput, chart.RenderBars(ranked, palette)); err != nil {
		return err
	}
	logger.Info("Wrote bar chart", "path", cfg.BarOutput)

	doc, err := chart.RenderCompact(ranked, palette)
	if err != nil {
		return fmt.Errorf("failed to render compact chart: %w", err)
	}
	if err := chart.WriteFile(cfg.CompactOutput, doc); err != nil {
		return err
	}
	logger.Info("Wrote compact chart", "path", cfg.CompactOutput)
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("bar-output", DefaultBarOutput, "Path of the detailed bar chart SVG")
	renderCmd.Flags().String("compact-output", DefaultCompactOutput, "Path of the compact stacked chart SVG")
	renderCmd.Flags().IntP("concurrency", "c", DefaultConcurrency, "Number of repositories whose languages are fetched in parallel")
	renderCmd.Flags().Float64("rate", DefaultRate, "Maximum GitHub REST requests per second")
	renderCmd.Flags().Bool("summary", true, "Print the language ranking to standard output")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		panic(err)
	}
}
