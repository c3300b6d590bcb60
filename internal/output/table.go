// Package output provides terminal output utilities for playtime.
//
// This package includes:
//   - Table rendering functions for playtime reports, associations,
//     checksums and tracking statuses
//   - A spinner for long-running maintenance operations
//   - Human-readable formatting for durations and dates
//
// All table rendering functions use ASCII characters and ANSI color codes
// for terminal output.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/deckstats/playtime/internal/stats"
	"github.com/deckstats/playtime/internal/store"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderOverallTable renders the per-game overall report.
func RenderOverallTable(entries []stats.GamePlaytimeDetails) string {
	if len(entries) == 0 {
		return "No playtime recorded.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %-28s %-10s %-9s %s\n",
		"Game ID", "Name", "Total", "Sessions", "Last Played"))
	sb.WriteString(strings.Repeat("─", 76))
	sb.WriteString("\n")

	for _, entry := range entries {
		lastPlayed := "never"
		if entry.LastSession != nil {
			lastPlayed = formatSessionDate(entry.LastSession.Date)
		}
		sb.WriteString(fmt.Sprintf("%-12s %-28s %-10s %-9d %s\n",
			truncate(entry.Game.ID, 12),
			truncate(entry.Game.Name, 28),
			FormatDuration(entry.TotalTime),
			len(entry.Sessions),
			lastPlayed))
	}
	return sb.String()
}

// RenderRecentTable renders the flat last-two-weeks report.
func RenderRecentTable(reports []stats.GamePlaytimeReport) string {
	if len(reports) == 0 {
		return "No playtime in the last two weeks.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %-28s %-10s %-22s %s\n",
		"Game ID", "Name", "Total", "Last Played", "Aliases"))
	sb.WriteString(strings.Repeat("─", 94))
	sb.WriteString("\n")

	for _, report := range reports {
		aliases := report.AliasesID
		if aliases == "" {
			aliases = "—"
		}
		sb.WriteString(fmt.Sprintf("%-12s %-28s %-10s %-22s %s\n",
			truncate(report.Game.ID, 12),
			truncate(report.Game.Name, 28),
			FormatDuration(report.TotalTime),
			formatSessionDate(report.LastPlayedDate),
			aliases))
	}
	return sb.String()
}

// RenderDailyReport renders the day-bucketed report with pagination hints.
func RenderDailyReport(paged *stats.PagedDayStatistics) string {
	var sb strings.Builder

	for _, day := range paged.Data {
		if len(day.Games) == 0 {
			sb.WriteString(fmt.Sprintf("%s  %s\n", day.Date, colorize(colorGray, "no playtime")))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s  total %s\n", day.Date, colorize(colorGreen, FormatDuration(day.Total))))
		for _, game := range day.Games {
			sb.WriteString(fmt.Sprintf("    %-28s %-10s %d session(s)\n",
				truncate(game.Game.Name, 28),
				FormatDuration(game.TotalTime),
				len(game.Sessions)))
		}
	}

	if paged.HasPrev || paged.HasNext {
		var hints []string
		if paged.HasPrev {
			hints = append(hints, "older data available")
		}
		if paged.HasNext {
			hints = append(hints, "newer data available")
		}
		sb.WriteString(colorize(colorGray, strings.Join(hints, ", ")))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderAssociationTable renders all parent/child links.
func RenderAssociationTable(rows []store.AssociationRow) string {
	if len(rows) == 0 {
		return "No associations.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %-24s %-12s %-24s %s\n",
		"Parent", "Parent Name", "Child", "Child Name", "Created"))
	sb.WriteString(strings.Repeat("─", 92))
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-12s %-24s %-12s %-24s %s\n",
			truncate(row.ParentGameID, 12),
			truncate(row.ParentGameName, 24),
			truncate(row.ChildGameID, 12),
			truncate(row.ChildGameName, 24),
			row.CreatedAt))
	}
	return sb.String()
}

// RenderGamesTable renders the games dictionary: every known game with its
// overall total and registered checksums.
func RenderGamesTable(entries []store.GameDictEntry) string {
	if len(entries) == 0 {
		return "No games recorded.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %-28s %-10s %s\n",
		"Game ID", "Name", "Total", "Checksums"))
	sb.WriteString(strings.Repeat("─", 70))
	sb.WriteString("\n")

	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("%-12s %-28s %-10s %d\n",
			truncate(entry.ID, 12),
			truncate(entry.Name, 28),
			FormatDuration(entry.Seconds),
			len(entry.Checksums)))
		for _, c := range entry.Checksums {
			sb.WriteString(fmt.Sprintf("    %-10s %s\n", c.Algorithm, truncate(c.Checksum, 48)))
		}
	}
	return sb.String()
}

// RenderChecksumTable renders stored file checksums.
func RenderChecksumTable(rows []store.ChecksumRow) string {
	if len(rows) == 0 {
		return "No checksums stored.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %-24s %-10s %s\n",
		"Game ID", "Name", "Algorithm", "Checksum"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, row := range rows {
		name := row.GameName
		if name == "" {
			name = "[Unknown]"
		}
		sb.WriteString(fmt.Sprintf("%-12s %-24s %-10s %s\n",
			truncate(row.GameID, 12),
			truncate(name, 24),
			row.Algorithm,
			truncate(row.Checksum, 32)))
	}
	return sb.String()
}

// RenderTrackingTable renders all non-default tracking statuses.
func RenderTrackingTable(rows []store.TrackingRow) string {
	if len(rows) == 0 {
		return "All games use the default tracking status.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %-28s %s\n", "Game ID", "Name", "Status"))
	sb.WriteString(strings.Repeat("─", 50))
	sb.WriteString("\n")

	for _, row := range rows {
		name := row.GameName
		if name == "" {
			name = "[Unknown]"
		}
		sb.WriteString(fmt.Sprintf("%-12s %-28s %s\n",
			truncate(row.GameID, 12), truncate(name, 28), row.Status))
	}
	return sb.String()
}

// FormatDuration converts seconds to a compact human-readable duration.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		return "-" + FormatDuration(-seconds)
	}

	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// formatSessionDate renders a stored timestamp as a short date, falling
// back to the raw string when it does not parse.
func formatSessionDate(date string) string {
	if date == "" {
		return "never"
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Format("2006-01-02 15:04")
	}
	return date
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
