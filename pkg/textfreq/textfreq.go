// Package textfreq normalizes free-text fields and computes ranked term
// frequency tables over a corpus.
//
// The workflow is two-phase on purpose: RawFrequencies applies only the
// standard English stopword list and its output is written out as an
// inspectable artifact; Frequencies re-runs the count with a hand-curated
// removal list derived from that inspection.
package textfreq

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/jmfield/postings-atlas/models"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	digits      = regexp.MustCompile(`\p{N}+`)
)

// Normalize applies the cleaning steps in order: collapse whitespace,
// lowercase, strip punctuation, strip digits. Removals can leave runs of
// spaces behind, so whitespace is collapsed once more at the end; the whole
// transform is a fixed point on its own output.
func Normalize(text string) string {
	text = whitespace.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = punctuation.ReplaceAllString(text, "")
	text = digits.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Pipeline computes term frequencies for one corpus configuration.
type Pipeline struct {
	custom   Stopwords
	detector lingua.LanguageDetector
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCustomStopwords supplies the hand-curated second-phase removal list.
func WithCustomStopwords(words []string) Option {
	return func(p *Pipeline) {
		p.custom = NewStopwords(words)
	}
}

// WithEnglishOnly drops documents whose detected language is not English
// before counting, so the English stopword list is not applied to text it
// cannot describe.
func WithEnglishOnly() Option {
	return func(p *Pipeline) {
		p.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Spanish).
			Build()
	}
}

// NewPipeline returns a Pipeline with the given options applied.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RawFrequencies is phase one: the ranked table with only the standard
// stopword list applied. Callers inspect this artifact to curate the
// second-phase removal list.
func (p *Pipeline) RawFrequencies(corpus []string) []models.TermFrequencyEntry {
	return p.count(corpus, nil)
}

// Frequencies is phase two: standard plus custom stopwords removed.
// Without a custom list it is identical to RawFrequencies.
func (p *Pipeline) Frequencies(corpus []string) []models.TermFrequencyEntry {
	return p.count(corpus, p.custom)
}

// count tokenizes the whole corpus, counts per distinct token, and ranks
// descending by frequency with ties broken by first-occurrence order.
func (p *Pipeline) count(corpus []string, custom Stopwords) []models.TermFrequencyEntry {
	frequencies := make(map[string]int)
	firstSeen := make(map[string]int)
	next := 0

	for _, doc := range corpus {
		if doc == "" {
			continue
		}
		if p.detector != nil && !p.isEnglish(doc) {
			continue
		}
		for _, token := range strings.Fields(Normalize(doc)) {
			if standard.Contains(token) {
				continue
			}
			if custom != nil && custom.Contains(token) {
				continue
			}
			if _, seen := frequencies[token]; !seen {
				firstSeen[token] = next
				next++
			}
			frequencies[token]++
		}
	}

	out := make([]models.TermFrequencyEntry, 0, len(frequencies))
	for word, freq := range frequencies {
		out = append(out, models.TermFrequencyEntry{Word: word, Frequency: freq})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return firstSeen[out[i].Word] < firstSeen[out[j].Word]
	})
	return out
}

func (p *Pipeline) isEnglish(doc string) bool {
	lang, ok := p.detector.DetectLanguageOf(doc)
	if !ok {
		// Undetectable text (too short, mixed) is kept rather than dropped.
		return true
	}
	return lang == lingua.English
}
