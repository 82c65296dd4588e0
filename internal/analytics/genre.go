package analytics

import (
	"sort"

	"github.com/anserk/bookmind/internal/model"
)

// chartPalette cycles by rank for genre share rows.
var chartPalette = []string{
	"#e8975a", "#7aad6e", "#9b7fc4", "#5ba8c4",
	"#c47a7a", "#5ab89a", "#c4a05a", "#7a7ac4",
	"#c47aaa", "#5ac4b8",
}

// genreSuggestions is a hand-curated adjacency map: the genre most likely
// to appeal next, given a favorite. Covers every known genre.
var genreSuggestions = map[string]string{
	"Mystery":         "Thriller",
	"Thriller":        "Mystery",
	"Fiction":         "Science Fiction",
	"Science Fiction": "Fantasy",
	"Fantasy":         "Fiction",
	"Biography":       "History",
	"History":         "Biography",
	"Self-Help":       "Biography",
	"Romance":         "Fiction",
	"Horror":          "Thriller",
	"Poetry":          "Fiction",
	"Non-Fiction":     "Self-Help",
	"Other":           "Fiction",
}

func genreRank(label string) int {
	for i, g := range model.Genres {
		if g == label {
			return i
		}
	}
	return len(model.Genres)
}

// sortGenresByCount orders genre labels by count descending; equal counts
// fall back to canonical genre-list order.
func sortGenresByCount(counts map[string]int) []string {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] == counts[labels[j]] {
			return genreRank(labels[i]) < genreRank(labels[j])
		}
		return counts[labels[i]] > counts[labels[j]]
	})
	return labels
}

// BuildGenreStats ranks genres by count with percentage shares and a
// display color cycled from the palette by rank.
func BuildGenreStats(genreCounts map[string]int) []model.GenreStat {
	total := 0
	for _, count := range genreCounts {
		total += count
	}
	if total == 0 {
		return []model.GenreStat{}
	}
	labels := sortGenresByCount(genreCounts)
	out := make([]model.GenreStat, 0, len(labels))
	for i, label := range labels {
		count := genreCounts[label]
		out = append(out, model.GenreStat{
			Label: label,
			Count: count,
			Pct:   round1(float64(count) / float64(total) * 100),
			Color: chartPalette[i%len(chartPalette)],
		})
	}
	return out
}

// RecommendGenre suggests what to read next: the curated neighbor of the
// most-read genre when it differs, otherwise the first untried genre in
// canonical order, otherwise "Fantasy". An empty history yields "Fiction".
func RecommendGenre(readGenreCounts map[string]int) string {
	top := sortGenresByCount(readGenreCounts)
	if len(top) == 0 {
		return "Fiction"
	}
	if suggested, ok := genreSuggestions[top[0]]; ok && suggested != top[0] {
		return suggested
	}
	for _, g := range model.Genres {
		if readGenreCounts[g] == 0 {
			return g
		}
	}
	return "Fantasy"
}
