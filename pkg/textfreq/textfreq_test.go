package textfreq

import (
	"testing"

	"github.com/jmfield/postings-atlas/models"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "collapse whitespace", input: "foo\n\n bar\t baz", want: "foo bar baz"},
		{name: "lowercase", input: "Civil SERVICE Exam", want: "civil service exam"},
		{name: "strip punctuation", input: "self-motivated, detail-oriented.", want: "selfmotivated detailoriented"},
		{name: "strip digits", input: "5 years and 10 months", want: "years and months"},
		{name: "only noise", input: "42 ?! 7", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Must have 5 years experience!",
		"A  valid   NYS driver's license.",
		"baccalaureate degree from an accredited college",
	}
	for _, input := range inputs {
		once := Normalize(input)
		require.Equal(t, once, Normalize(once), "normalization must be a fixed point on its own output")
	}
}

func TestIsStopword(t *testing.T) {
	require.True(t, IsStopword("the"))
	require.True(t, IsStopword("And"))
	require.True(t, IsStopword("aren't"))
	// Content-bearing auxiliaries stay; they belong to the curated phase.
	require.False(t, IsStopword("have"))
	require.False(t, IsStopword("must"))
	require.False(t, IsStopword("experience"))
}

func TestRawFrequencies(t *testing.T) {
	corpus := []string{
		"Must have 5 years experience",
		"Must have valid license",
	}

	got := NewPipeline().RawFrequencies(corpus)
	want := []models.TermFrequencyEntry{
		{Word: "must", Frequency: 2},
		{Word: "have", Frequency: 2},
		{Word: "years", Frequency: 1},
		{Word: "experience", Frequency: 1},
		{Word: "valid", Frequency: 1},
		{Word: "license", Frequency: 1},
	}
	require.Equal(t, want, got)
}

func TestFrequenciesWithCustomStopwords(t *testing.T) {
	corpus := []string{
		"Must have 5 years experience",
		"Must have valid license",
	}

	p := NewPipeline(WithCustomStopwords([]string{"must", "years", "valid"}))
	got := p.Frequencies(corpus)
	want := []models.TermFrequencyEntry{
		{Word: "have", Frequency: 2},
		{Word: "experience", Frequency: 1},
		{Word: "license", Frequency: 1},
	}
	require.Equal(t, want, got)
}

func TestFrequenciesDeterministic(t *testing.T) {
	corpus := []string{
		"plumbing carpentry electrical plumbing",
		"carpentry welding plumbing",
		"masonry welding",
	}

	p := NewPipeline()
	first := p.Frequencies(corpus)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, p.Frequencies(corpus), "same corpus must rank identically on every run")
	}
}

func TestFrequenciesTieOrder(t *testing.T) {
	// zebra and apple tie; zebra occurred first in the corpus.
	got := NewPipeline().Frequencies([]string{"zebra apple", "apple zebra zebra apple"})
	require.Equal(t, "zebra", got[0].Word)
	require.Equal(t, "apple", got[1].Word)
}

func TestEmptyAndStopwordOnlyDocuments(t *testing.T) {
	p := NewPipeline()

	require.Empty(t, p.Frequencies(nil))
	require.Empty(t, p.Frequencies([]string{"", "   "}))
	require.Empty(t, p.Frequencies([]string{"the and of", "!!! 123"}))
}

func TestCustomStopwordsDoNotAffectRawPass(t *testing.T) {
	corpus := []string{"welding welding carpentry"}
	p := NewPipeline(WithCustomStopwords([]string{"welding"}))

	raw := p.RawFrequencies(corpus)
	require.Equal(t, "welding", raw[0].Word)

	filtered := p.Frequencies(corpus)
	require.Equal(t, []models.TermFrequencyEntry{{Word: "carpentry", Frequency: 1}}, filtered)
}

func TestEnglishOnlyFilter(t *testing.T) {
	corpus := []string{
		"Applicants need a baccalaureate degree from an accredited college and four years of experience",
		"Los solicitantes deben tener un título universitario y cuatro años de experiencia profesional en administración",
	}

	p := NewPipeline(WithEnglishOnly())
	got := p.Frequencies(corpus)

	words := make(map[string]bool, len(got))
	for _, e := range got {
		words[e.Word] = true
	}
	require.True(t, words["baccalaureate"])
	require.False(t, words["solicitantes"], "Spanish documents must be dropped before counting")
}
