package catalog

// DefaultListID is enabled for new profiles.
const DefaultListID = "sight_words_k"

var builtinLists = []List{
	{
		ID:   "sight_words_k",
		Name: "Kindergarten Sight Words",
		Words: []string{
			"a", "am", "i", "an", "and", "as", "at", "can", "has",
			"him", "his", "in", "is", "it", "of", "on", "the", "to",
			"we", "you", "are", "do", "for", "go", "have", "he",
			"here", "me", "my", "no", "play", "said", "see", "she",
			"so", "up", "was", "with",
		},
	},
	{
		ID:   "sight_words_1",
		Name: "First Grade Sight Words",
		Words: []string{
			"after", "again", "an", "any", "ask", "by", "could", "every",
			"fly", "from", "give", "going", "had", "has", "her", "him",
			"his", "how", "just", "know", "let", "live", "may", "of",
			"old", "once", "open", "over", "put", "round", "some", "stop",
			"take", "thank", "them", "then", "think", "walk", "were", "when",
		},
	},
	{
		ID:   "dinosaurs",
		Name: "Dinosaurs (Fun)",
		Words: []string{
			"rex", "dino", "egg", "roar", "big", "run", "tail", "claw",
			"tooth", "bone", "fossil", "bird", "fly", "dig",
		},
	},
}
