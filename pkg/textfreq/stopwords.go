package textfreq

// standardWords is the curated English function-word list removed from every
// corpus. Content-bearing auxiliaries ("have", "must") are deliberately
// absent: filtering those is what the hand-curated second phase is for.
var standardWords = []string{
	"a", "about", "above", "across", "after", "again", "against", "all",
	"along", "already", "also", "although", "among", "an", "and", "another",
	"any", "anyone", "anything", "are", "aren't", "around", "as", "at",

	"back", "be", "because", "been", "before", "behind", "being", "below",
	"beside", "besides", "between", "beyond", "both", "but", "by",

	"can't", "down", "during",

	"each", "either", "else", "elsewhere", "enough", "etc", "even", "ever",
	"every", "everyone", "everything",

	"few", "for", "from", "further",

	"he", "hence", "her", "here", "hers", "herself", "him", "himself",
	"his", "how", "however",

	"i", "if", "in", "indeed", "into", "is", "isn't", "it", "it's", "its",
	"itself",

	"just",

	"latter", "least", "less", "like",

	"many", "may", "maybe", "me", "meanwhile", "mine", "more", "moreover",
	"most", "mostly", "much", "my", "myself",

	"neither", "never", "nevertheless", "next", "no", "nobody", "none",
	"nor", "not", "nothing", "now", "nowhere",

	"of", "off", "often", "on", "once", "one", "only", "onto", "or",
	"other", "others", "otherwise", "our", "ours", "ourselves", "out",
	"over", "own",

	"per", "perhaps",

	"rather",

	"same", "she", "since", "so", "some", "somehow", "someone",
	"something", "sometimes", "somewhere", "still", "such",

	"than", "that", "that's", "the", "their", "theirs", "them",
	"themselves", "then", "there", "thereafter", "thereby", "therefore",
	"these", "they", "this", "those", "through", "throughout", "thus",
	"to", "together", "too", "toward", "towards",

	"under", "until", "up", "upon", "us",

	"very", "via",

	"was", "wasn't", "we", "well", "were", "what", "whatever", "when",
	"whenever", "where", "whereas", "wherever", "whether", "which",
	"while", "who", "whoever", "whom", "whose", "why", "with", "within",
	"without", "won't",

	"yet", "you", "your", "yours", "yourself", "yourselves",
}

// Stopwords is a set of normalized words excluded from frequency counting.
type Stopwords map[string]struct{}

// NewStopwords builds a set from raw words. Each entry goes through the
// same normalization as corpus text, so "aren't" matches the token "arent"
// that punctuation stripping produces.
func NewStopwords(words []string) Stopwords {
	set := make(Stopwords, len(words))
	for _, w := range words {
		n := Normalize(w)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Contains reports whether word is in the set.
func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

var standard = NewStopwords(standardWords)

// IsStopword reports whether a word is on the standard English list.
func IsStopword(word string) bool {
	return standard.Contains(Normalize(word))
}
