package analytics

import (
	"github.com/anserk/bookmind/internal/model"
)

// personas maps each genre to the reader personality it implies.
var personas = map[string]model.Persona{
	"Mystery":         {Name: "Mystery Sleuth", Icon: "🔍", Accent: "#5c8aaa", Desc: "You chase clues through every chapter. The twist is never obvious — to you, that's the whole point."},
	"Thriller":        {Name: "Edge-of-Seat Reader", Icon: "⚡", Accent: "#aa6060", Desc: "You thrive on adrenaline and tension. Slow chapters are just longer countdowns to the explosion."},
	"Fiction":         {Name: "Deep Feeler", Icon: "🌊", Accent: "#60aa90", Desc: "You read to understand people. Characters leave marks long after the last page."},
	"Science Fiction": {Name: "Future Thinker", Icon: "🚀", Accent: "#7a9060", Desc: "Big ideas energise you. You read sci-fi to rehearse possibilities the world hasn't caught up with yet."},
	"Fantasy":         {Name: "World Walker", Icon: "🗺️", Accent: "#8a60aa", Desc: "You live in multiple worlds simultaneously. The more immersive, the better."},
	"Biography":       {Name: "Life Collector", Icon: "🧬", Accent: "#aa9060", Desc: "Every biography adds a mentor you'll never meet. You read lives to learn from them."},
	"History":         {Name: "Time Traveller", Icon: "⏳", Accent: "#7060aa", Desc: "The past is your playground. You understand the present by excavating what came before."},
	"Self-Help":       {Name: "Growth Seeker", Icon: "🌱", Accent: "#7a9060", Desc: "You read with a highlighter in mind. Every book is a system upgrade waiting to be installed."},
	"Non-Fiction":     {Name: "Curious Generalist", Icon: "🔭", Accent: "#5c8aaa", Desc: "Your shelves span everything. Curiosity is your only filter."},
	"Romance":         {Name: "Heart-Led Reader", Icon: "💛", Accent: "#aa6060", Desc: "Emotional stakes matter most. You know love stories are really about vulnerability."},
	"Horror":          {Name: "Fear Connoisseur", Icon: "🕯️", Accent: "#703c2e", Desc: "You understand that horror, at its best, is about the human condition at its rawest."},
	"Poetry":          {Name: "Word Architect", Icon: "✒️", Accent: "#8a60aa", Desc: "You know that one line can carry more weight than a whole chapter of prose."},
	"Other":           {Name: "Eclectic Explorer", Icon: "🎲", Accent: "#aa9060", Desc: "Genre is just a label. You follow interest wherever it leads — the best kind of reader."},
}

var explorerPersona = model.Persona{
	Name: "Genre Explorer", Icon: "🧭", Accent: "#e8975a",
	Desc: "Four+ genres explored. Your reading life is wonderfully unpredictable — that's a strength.",
}

var newReaderPersona = model.Persona{
	Name: "New Reader", Icon: "📖", Accent: "#e8975a",
	Desc: "Every great reading life starts somewhere. Add your first book and discover your personality!",
}

// ReaderPersona derives a reading personality. Four or more read genres
// make an explorer; otherwise the top read genre decides, falling back to
// the most-added genre and finally a blank-slate persona.
func ReaderPersona(metrics model.Metrics) model.Persona {
	if len(metrics.ReadGenreCounts) >= 4 {
		return explorerPersona
	}
	if top := sortGenresByCount(metrics.ReadGenreCounts); len(top) > 0 {
		return personaFor(top[0])
	}
	if top := sortGenresByCount(metrics.GenreCounts); len(top) > 0 {
		return personaFor(top[0])
	}
	return newReaderPersona
}

func personaFor(genre string) model.Persona {
	if p, ok := personas[genre]; ok {
		return p
	}
	return personas["Other"]
}
