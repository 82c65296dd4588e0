package analytics

import (
	"math/rand"
	"strings"

	"github.com/anserk/bookmind/internal/model"
)

// shelves is the curated per-genre suggestion shelf.
var shelves = map[string][]model.Pick{
	"Mystery": {
		{Title: "The Name of the Rose", Author: "Umberto Eco", Reason: "A labyrinthine medieval murder mystery."},
		{Title: "Big Little Lies", Author: "Liane Moriarty", Reason: "Gripping domestic suspense with sharp twists."},
		{Title: "In the Woods", Author: "Tana French", Reason: "Atmospheric Dublin mystery, haunting and precise."},
	},
	"Thriller": {
		{Title: "Gone Girl", Author: "Gillian Flynn", Reason: "Unreliable narrators at their most unsettling."},
		{Title: "The Girl with the Dragon Tattoo", Author: "Stieg Larsson", Reason: "Complex investigation, unforgettable protagonist."},
		{Title: "I Am Pilgrim", Author: "Terry Hayes", Reason: "Espionage thriller spanning continents and decades."},
	},
	"Fiction": {
		{Title: "The Remains of the Day", Author: "Kazuo Ishiguro", Reason: "Quiet, devastating study of duty and regret."},
		{Title: "A Little Life", Author: "Hanya Yanagihara", Reason: "Profound and deeply human at its core."},
		{Title: "Normal People", Author: "Sally Rooney", Reason: "Precise dialogue, achingly real relationships."},
	},
	"Science Fiction": {
		{Title: "Project Hail Mary", Author: "Andy Weir", Reason: "Relentless problem-solving wrapped in pure wonder."},
		{Title: "Recursion", Author: "Blake Crouch", Reason: "Mind-bending time and memory thriller."},
		{Title: "A Fire Upon the Deep", Author: "Vernor Vinge", Reason: "Galaxy-spanning ideas, genuinely alien civilisations."},
	},
	"Fantasy": {
		{Title: "The Way of Kings", Author: "Brandon Sanderson", Reason: "Epic world-building with meticulous magic systems."},
		{Title: "The Night Circus", Author: "Erin Morgenstern", Reason: "Lush, dreamlike — a battle fought in beauty."},
		{Title: "Piranesi", Author: "Susanna Clarke", Reason: "Quietly surreal; unlike anything else you've read."},
	},
	"Biography": {
		{Title: "Educated", Author: "Tara Westover", Reason: "A memoir of self-invention against impossible odds."},
		{Title: "Leonardo da Vinci", Author: "Walter Isaacson", Reason: "The ultimate portrait of boundless curiosity."},
		{Title: "The Diary of a Young Girl", Author: "Anne Frank", Reason: "Courage and humanity in the darkest of times."},
	},
	"History": {
		{Title: "Sapiens", Author: "Yuval Noah Harari", Reason: "Humanity's full story told with provocative clarity."},
		{Title: "The Silk Roads", Author: "Peter Frankopan", Reason: "Rewrites world history from the centre outward."},
		{Title: "The Guns of August", Author: "Barbara Tuchman", Reason: "How the world stumbled into catastrophe in 1914."},
	},
	"Self-Help": {
		{Title: "Atomic Habits", Author: "James Clear", Reason: "Small changes, compound results — actually actionable."},
		{Title: "Deep Work", Author: "Cal Newport", Reason: "The case for focus in a distracted world."},
		{Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Reason: "How your two minds shape every decision."},
	},
	"Non-Fiction": {
		{Title: "The Body", Author: "Bill Bryson", Reason: "A joyful tour of human biology, funny and profound."},
		{Title: "Astrophysics for People in a Hurry", Author: "Neil deGrasse Tyson", Reason: "The cosmos in a single sitting."},
		{Title: "Longitude", Author: "Dava Sobel", Reason: "A tiny problem that changed history forever."},
	},
	"Romance": {
		{Title: "The Hating Game", Author: "Sally Thorne", Reason: "Sharp rivals-to-lovers banter done perfectly."},
		{Title: "Beach Read", Author: "Emily Henry", Reason: "Two writers, opposite genres — warm and witty."},
		{Title: "It Ends with Us", Author: "Colleen Hoover", Reason: "Emotionally honest; more than its genre suggests."},
	},
	"Horror": {
		{Title: "The Haunting of Hill House", Author: "Shirley Jackson", Reason: "The gold standard of psychological horror."},
		{Title: "Bird Box", Author: "Josh Malerman", Reason: "Tight, relentless — terror in the unseen."},
		{Title: "Mexican Gothic", Author: "Silvia Moreno-Garcia", Reason: "Gothic atmosphere soaked in sinister beauty."},
	},
	"Poetry": {
		{Title: "Milk and Honey", Author: "Rupi Kaur", Reason: "Raw, compressed emotion — reads in one breath."},
		{Title: "Leaves of Grass", Author: "Walt Whitman", Reason: "The original American epic — vast and alive."},
		{Title: "The Sun and Her Flowers", Author: "Rupi Kaur", Reason: "Growth and femininity in spare, striking verse."},
	},
	"Other": {
		{Title: "The Alchemist", Author: "Paulo Coelho", Reason: "A fable about following your own legend."},
		{Title: "Jonathan Livingston Seagull", Author: "Richard Bach", Reason: "Short, philosophical — reread every few years."},
		{Title: "The Little Prince", Author: "Antoine de Saint-Exupéry", Reason: "Ageless wisdom disguised as a children's book."},
	},
}

var tips = []model.Habit{
	{Icon: "🌅", Text: "Morning readers retain 23% more — even 15 pages before coffee compounds fast over a year."},
	{Icon: "📵", Text: "Leave your phone in another room. Readers who do this finish books 40% faster."},
	{Icon: "🎧", Text: "Ambient instrumental music extends average reading sessions by up to 30 minutes."},
	{Icon: "🛏️", Text: "Reading before sleep beats scrolling — you'll fall asleep faster and remember more."},
	{Icon: "📝", Text: "Write one sentence about what you read today. Simplest journal, highest completion rate."},
	{Icon: "⏱️", Text: "Try 25 min reading, 5 min off, repeat. The Pomodoro method works for books too."},
	{Icon: "📚", Text: "Having your next book ready before finishing the current one eliminates the reading gap."},
	{Icon: "🎯", Text: "Readers with monthly goals complete 2.4× more books than those without."},
}

var cheers = []string{
	"Another chapter of your life, written!",
	"Your library grows stronger!",
	"You're on a roll — what's next?",
	"Every book makes you a slightly different person.",
	"Reading streak still alive! 🔥",
	"Knowledge collected. Power gained. ✨",
}

// Shelf picks up to three curated suggestions for the user's dominant
// genre, filtering out titles already in the library. When filtering would
// leave fewer than three picks the full shelf is used instead.
func Shelf(books []model.Book, metrics model.Metrics) (string, []model.Pick) {
	genre := ""
	if top := sortGenresByCount(metrics.ReadGenreCounts); len(top) > 0 {
		genre = top[0]
	} else if top := sortGenresByCount(metrics.GenreCounts); len(top) > 0 {
		genre = top[0]
	}
	pool, ok := shelves[genre]
	if !ok {
		genre = "Fiction"
		pool = shelves[genre]
	}
	owned := make(map[string]struct{}, len(books))
	for _, b := range books {
		owned[strings.ToLower(b.Title)] = struct{}{}
	}
	avail := make([]model.Pick, 0, len(pool))
	for _, pick := range pool {
		if _, has := owned[strings.ToLower(pick.Title)]; has {
			continue
		}
		avail = append(avail, pick)
	}
	if len(avail) < 3 {
		avail = pool
	}
	if len(avail) > 3 {
		avail = avail[:3]
	}
	return genre, avail
}

// Tip returns a random reading tip; rnd is injected so callers stay
// deterministic in tests.
func Tip(rnd *rand.Rand) model.Habit {
	return tips[rnd.Intn(len(tips))]
}

// Cheer returns a random celebration line for a just-finished book.
func Cheer(rnd *rand.Rand) string {
	return cheers[rnd.Intn(len(cheers))]
}
