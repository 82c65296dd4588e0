package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/anserk/bookmind/internal/model"
)

// ReadingHabit reports one observation about how the user reads, picked
// from an ordered rule list: weekend/weekday balance, page-length
// preference, then genre spread.
func ReadingHabit(books []model.Book, metrics model.Metrics, loc *time.Location) model.Habit {
	weekday, weekend := 0, 0
	completed := 0
	for _, b := range books {
		if !b.Read || b.DateRead == "" {
			continue
		}
		day, err := time.ParseInLocation(model.DayFormat, b.DateRead, loc)
		if err != nil {
			continue
		}
		completed++
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend++
		} else {
			weekday++
		}
	}
	if completed == 0 {
		return model.Habit{Icon: "📖", Text: "Complete your first book to unlock reading habit analysis!"}
	}
	if weekend > weekday && weekend >= 2 {
		return model.Habit{Icon: "🌤️", Text: fmt.Sprintf("You read faster on weekends! %d completions vs %d on weekdays. Weekend warrior style.", weekend, weekday)}
	}
	if weekday > weekend*2 && weekday >= 3 {
		return model.Habit{Icon: "💼", Text: fmt.Sprintf("Weekdays are your power zone — %d completions vs %d on weekends. Impressive daily discipline!", weekday, weekend)}
	}
	readCount := metrics.ReadCount
	if readCount < 1 {
		readCount = 1
	}
	avg := float64(metrics.TotalPagesRead) / float64(readCount)
	if avg > 450 {
		return model.Habit{Icon: "🦅", Text: fmt.Sprintf("You average %d pages/book — you love long, immersive reads.", int(math.Round(avg)))}
	}
	if avg < 200 && metrics.ReadCount >= 3 {
		return model.Habit{Icon: "⚡", Text: fmt.Sprintf("You prefer shorter books (~%d pages). More finishes = more momentum. Smart strategy.", int(math.Round(avg)))}
	}
	if spread := len(metrics.ReadGenreCounts); spread >= 3 {
		return model.Habit{Icon: "🎨", Text: fmt.Sprintf("You've explored %d genres. Cross-genre readers develop stronger analytical thinking.", spread)}
	}
	return model.Habit{Icon: "📈", Text: fmt.Sprintf("%d book%s completed — %s pages absorbed.",
		metrics.ReadCount, plural(metrics.ReadCount), humanize.Comma(int64(metrics.TotalPagesRead)))}
}

// Motivate builds a goal-countdown message, falling back to streak and
// first-book encouragements when no goal is set.
func Motivate(books []model.Book, metrics model.Metrics, settings model.Settings, now time.Time) model.Motivation {
	monthly := CountMonthlyRead(books, now)
	goal := settings.MonthlyGoal
	if goal > 0 {
		left := goal - monthly
		switch {
		case left <= 0:
			return model.Motivation{Icon: "🏆", Tone: "gold", Text: fmt.Sprintf("Monthly goal smashed! %d/%d books done. Raise the bar!", monthly, goal)}
		case left == 1:
			return model.Motivation{Icon: "🎯", Tone: "hot", Text: fmt.Sprintf("Only 1 more book to hit your %d-book goal! So close.", goal)}
		case left <= 3:
			return model.Motivation{Icon: "🔥", Tone: "warm", Text: fmt.Sprintf("Only %d more books to reach your monthly goal of %d. You've got this!", left, goal)}
		default:
			pct := int(math.Round(float64(monthly) / float64(goal) * 100))
			return model.Motivation{Icon: "📊", Tone: "neutral", Text: fmt.Sprintf("%d%% toward your %d-book monthly goal. %d done, %d to go.", pct, goal, monthly, left)}
		}
	}
	if streak := ComputeStreak(books, now); streak >= 3 {
		return model.Motivation{Icon: "🔥", Tone: "warm", Text: fmt.Sprintf("%d-day reading streak! Set a monthly goal to channel this momentum.", streak)}
	}
	if metrics.ReadCount == 0 {
		return model.Motivation{Icon: "🌱", Tone: "neutral", Text: "Your reading journey starts with a single page. Mark your first book as read!"}
	}
	return model.Motivation{Icon: "🎯", Tone: "neutral", Text: fmt.Sprintf("%d books completed total. Set a monthly goal to push yourself further!", metrics.ReadCount)}
}
