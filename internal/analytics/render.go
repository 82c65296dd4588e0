package analytics

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/anserk/bookmind/internal/model"
)

// RenderSummary prints the headline metrics for the library.
func RenderSummary(w io.Writer, r Report) error {
	if r.Metrics.Total == 0 {
		_, err := fmt.Fprintln(w, "No books yet. Add one with: bookmind add")
		return err
	}
	avg := "—"
	if r.Metrics.AvgRating != nil {
		avg = fmt.Sprintf("%.1f/5", *r.Metrics.AvgRating)
	}
	goal := "not set"
	if r.Settings.MonthlyGoal > 0 {
		goal = fmt.Sprintf("%d/%d this month", r.MonthlyRead, r.Settings.MonthlyGoal)
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Books: %d (%d read, %d in progress, %d unread)",
			r.Metrics.Total, r.Metrics.ReadCount, r.Metrics.InProgressCount, r.Metrics.UnreadCount),
		fmt.Sprintf("Pages read: %s", humanize.Comma(int64(r.Metrics.TotalPagesRead))),
		fmt.Sprintf("Avg rating: %s", avg),
		fmt.Sprintf("Streak: %d day(s)", r.Streak),
		fmt.Sprintf("Monthly goal: %s", goal),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderGenreTable prints the ranked genre share table.
func RenderGenreTable(w io.Writer, stats []model.GenreStat) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "No genres yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Genres"); err != nil {
		return err
	}
	headers := []string{"Genre", "Books", "Share"}
	rows := make([][]string, 0, len(stats))
	for _, row := range stats {
		rows = append(rows, []string{
			row.Label,
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%.1f%%", row.Pct),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderBadges prints the badge catalog with earned markers.
func RenderBadges(w io.Writer, badges []model.Badge) error {
	if _, err := fmt.Fprintln(w, "Badges"); err != nil {
		return err
	}
	for _, badge := range badges {
		mark := " "
		if badge.Earned {
			mark = "x"
		}
		if _, err := fmt.Fprintf(w, "[%s] %s %s\n", mark, badge.Icon, badge.Label); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderInsights prints the insight cards, one block per card.
func RenderInsights(w io.Writer, insights []model.Insight) error {
	if len(insights) == 0 {
		_, err := fmt.Fprintln(w, "Nothing to say yet — add some books first.")
		return err
	}
	for _, card := range insights {
		if _, err := fmt.Fprintf(w, "%s %s\n   %s\n", card.Icon, card.Title, card.Text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderAnalyst prints the persona, habit, motivation, and shelf sections.
func RenderAnalyst(w io.Writer, r Report, tip model.Habit) error {
	sections := []string{
		fmt.Sprintf("Reading personality: %s %s\n   %s", r.Persona.Icon, r.Persona.Name, r.Persona.Desc),
		fmt.Sprintf("%s %s", r.Motivation.Icon, r.Motivation.Text),
		fmt.Sprintf("%s %s", r.Habit.Icon, r.Habit.Text),
	}
	for _, section := range sections {
		if _, err := fmt.Fprintln(w, section); err != nil {
			return err
		}
	}
	genre, picks := Shelf(r.Books, r.Metrics)
	if len(picks) > 0 {
		if _, err := fmt.Fprintf(w, "Because you read %s:\n", genre); err != nil {
			return err
		}
		for _, pick := range picks {
			if _, err := fmt.Fprintf(w, " - %s — %s (%s)\n", pick.Title, pick.Author, pick.Reason); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%s Tip: %s\n", tip.Icon, tip.Text)
	return err
}
