package engine

import (
	"fmt"
	"strings"

	"github.com/yourusername/leaguebook/internal/models"
)

// GenerateConsoleReport formats a run result for terminal output
func GenerateConsoleReport(result *RunResult) string {
	var builder strings.Builder
	builder.WriteString("Simulation Report\n")
	builder.WriteString("=================\n")
	builder.WriteString(fmt.Sprintf("Run: %s\n", result.Run.ID))
	builder.WriteString(fmt.Sprintf("Season %d, Week %d: %d trials, seed %d\n\n", result.Run.Season, result.Run.Week, result.Run.Trials, result.Run.Seed))

	builder.WriteString("Teams\n")
	builder.WriteString("-----\n")
	for _, o := range result.Outcomes {
		builder.WriteString(fmt.Sprintf("%-24s mean %7.2f  sd %6.2f  p10 %7.2f  median %7.2f  p90 %7.2f",
			o.TeamName, o.Mean, o.StdDev, o.Percentiles.P10, o.Percentiles.P50, o.Percentiles.P90))
		if len(o.UnfilledSlots) > 0 {
			builder.WriteString(fmt.Sprintf("  [unfilled: %s]", strings.Join(o.UnfilledSlots, ",")))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("\nMatchups\n")
	builder.WriteString("--------\n")
	for _, q := range result.Quotes {
		builder.WriteString(fmt.Sprintf("%s vs %s: %.1f%%/%.1f%%  ml %s/%s",
			q.HomeTeamID, q.AwayTeamID,
			q.HomeWinProb*100, q.AwayWinProb*100,
			models.FormatMoneyline(q.HomeMoneyline), models.FormatMoneyline(q.AwayMoneyline)))
		if q.TotalLine != nil {
			builder.WriteString(fmt.Sprintf("  o/u %.1f (%s/%s)",
				*q.TotalLine, models.FormatMoneyline(*q.OverPrice), models.FormatMoneyline(*q.UnderPrice)))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("\nMarket Facts\n")
	builder.WriteString("------------\n")
	for _, f := range result.Facts {
		builder.WriteString(fmt.Sprintf("%-15s %-12s %.1f%%  %s\n",
			f.Kind, f.TeamID, f.Probability*100, models.FormatMoneyline(f.Moneyline)))
	}

	return builder.String()
}
