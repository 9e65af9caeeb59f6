// Package report prints a ranked language distribution to the console.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/naka-gawa/self-reposcope/internal/domain"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

// Summary holds headline numbers for a ranking.
type Summary struct {
	Languages   int
	TotalBytes  int64
	MeanBytes   float64
	MedianBytes float64
}

// Summarize computes the Summary of dist. An empty dist yields a zero Summary.
func Summarize(dist domain.RankedDistribution) (Summary, error) {
	s := Summary{Languages: len(dist), TotalBytes: dist.Total()}
	if len(dist) == 0 {
		return s, nil
	}

	data := make(stats.Float64Data, len(dist))
	for i, e := range dist {
		data[i] = float64(e.Bytes)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	s.MeanBytes = mean
	s.MedianBytes = median
	return s, nil
}

// Print writes the ranking as a table followed by its summary line.
func Print(w io.Writer, dist domain.RankedDistribution) error {
	summary, err := Summarize(dist)
	if err != nil {
		return err
	}

	if _, err := titleColor.Fprintln(w, "=== Aggregated Language Usage ==="); err != nil {
		return err
	}
	if len(dist) == 0 {
		_, err := dimColor.Fprintln(w, "No languages found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Language", "Bytes", "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, e := range dist {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.Language,
			strconv.FormatInt(e.Bytes, 10),
			share(e.Bytes, summary.TotalBytes),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err = dimColor.Fprintf(w, "%d languages, %d bytes total (mean %.0f, median %.0f)\n",
		summary.Languages, summary.TotalBytes, summary.MeanBytes, summary.MedianBytes)
	return err
}

func share(bytes, total int64) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(bytes)/float64(total)*100)
}
