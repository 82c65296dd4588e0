package analytics

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/anserk/bookmind/internal/model"
)

// maxInsights caps the generated card list; higher-priority rules win.
const maxInsights = 5

// tbrPileThreshold is the unstarted-book count above which the TBR card fires.
const tbrPileThreshold = 3

// BuildInsights assembles insight cards from independent rules in fixed
// priority order, truncated to maxInsights. Returns nil when there is
// nothing to say.
func BuildInsights(books []model.Book, metrics model.Metrics, settings model.Settings, streak, monthlyRead int) []model.Insight {
	if len(books) == 0 {
		return nil
	}
	var insights []model.Insight
	topGenres := sortGenresByCount(metrics.ReadGenreCounts)

	if settings.MonthlyGoal > 0 {
		insights = append(insights, goalCard(settings.MonthlyGoal, monthlyRead))
	}
	if len(topGenres) > 0 {
		top := topGenres[0]
		count := metrics.ReadGenreCounts[top]
		insights = append(insights, model.Insight{
			Icon:  "🔥",
			Title: fmt.Sprintf("You devour %s books", top),
			Text:  fmt.Sprintf("%s is your most-read genre with %d book%s. You clearly love it!", top, count, plural(count)),
		})
		rec := RecommendGenre(metrics.ReadGenreCounts)
		insights = append(insights, model.Insight{
			Icon:  "✨",
			Title: fmt.Sprintf("Try %s next", rec),
			Text:  fmt.Sprintf("Based on your reading history, %s books share a lot of what makes %s so compelling.", rec, top),
		})
	}
	if metrics.AvgRating != nil {
		insights = append(insights, ratingCard(*metrics.AvgRating))
	}
	if streak > 1 {
		insights = append(insights, streakCard(streak))
	}
	if metrics.TotalPagesRead > 0 {
		insights = append(insights, pagesCard(metrics.TotalPagesRead))
	}
	if card, ok := tbrCard(books); ok {
		insights = append(insights, card)
	}

	if len(insights) == 0 {
		return nil
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func goalCard(goal, monthlyRead int) model.Insight {
	pct := int(math.Round(float64(monthlyRead) / float64(goal) * 100))
	if pct > 100 {
		pct = 100
	}
	var tone string
	switch {
	case pct >= 100:
		tone = "Goal crushed! 🏆"
	case pct >= 75:
		tone = "Almost there — one more push!"
	case pct >= 50:
		tone = "Halfway there, keep it up!"
	default:
		tone = "You've got this!"
	}
	return model.Insight{
		Icon:  "🎯",
		Title: fmt.Sprintf("You're %d%% to your monthly goal!", pct),
		Text:  fmt.Sprintf("%d of %d books read this month. %s", monthlyRead, goal, tone),
	}
}

func ratingCard(avg float64) model.Insight {
	var text string
	switch {
	case avg >= 4.5:
		text = "Exceptionally high standards — and excellent taste."
	case avg >= 4:
		text = "You love most of what you read. Great picker!"
	case avg >= 3:
		text = "You're a balanced, honest reviewer."
	default:
		text = "Tough critic! Keep seeking your perfect read."
	}
	return model.Insight{
		Icon:  "⭐",
		Title: fmt.Sprintf("Your average rating is %.1f/5", avg),
		Text:  text,
	}
}

func streakCard(streak int) model.Insight {
	text := "You've been consistent. Keep the momentum going!"
	if streak >= 7 {
		text = "Over a week straight — serious dedication. Don't break the chain!"
	}
	return model.Insight{
		Icon:  "🔆",
		Title: fmt.Sprintf("%d-day reading streak!", streak),
		Text:  text,
	}
}

func pagesCard(totalPagesRead int) model.Insight {
	var text string
	switch {
	case totalPagesRead > 10000:
		text = "That's a mountain of words. You're an exceptional reader!"
	case totalPagesRead > 5000:
		text = "You've read enough to fill a small anthology. Impressive!"
	case totalPagesRead > 1000:
		text = "Your reading muscle is growing every day."
	default:
		text = "Every page counts. You're building a great habit."
	}
	return model.Insight{
		Icon:  "📄",
		Title: fmt.Sprintf("%s pages read total", humanize.Comma(int64(totalPagesRead))),
		Text:  text,
	}
}

// tbrCard suggests a starting point once the unstarted pile grows past the
// threshold: the shortest unstarted book by page count.
func tbrCard(books []model.Book) (model.Insight, bool) {
	var shortest *model.Book
	count := 0
	for i := range books {
		b := &books[i]
		if b.Read || b.PagesRead != 0 {
			continue
		}
		count++
		if shortest == nil || b.TotalPages < shortest.TotalPages {
			shortest = b
		}
	}
	if count <= tbrPileThreshold {
		return model.Insight{}, false
	}
	return model.Insight{
		Icon:  "📚",
		Title: fmt.Sprintf("%d books waiting in your TBR pile", count),
		Text:  fmt.Sprintf("Start with %q — only %s pages!", shortest.Title, humanize.Comma(int64(shortest.TotalPages))),
	}, true
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
