// Package report writes the run's output artifacts to fixed paths under
// the output directory: agency rankings, term-frequency tables, run
// summary, and the map files.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jmfield/postings-atlas/models"
	"github.com/jmfield/postings-atlas/pkg/aggregate"
	"github.com/jmfield/postings-atlas/pkg/storage"
)

// Bracket names a salary-bracket corpus.
type Bracket string

const (
	BracketHigh Bracket = "high"
	BracketLow  Bracket = "low"
)

// Display-layer parameters. These shape the chart inputs only; the
// underlying frequency computation is not affected.
const (
	BarChartTerms    = 50
	WordCloudMinFreq = 100
	WordCloudCapHigh = 100
	WordCloudCapLow  = 200
	RawTableInspectN = 200
)

// Color returns the marker color used for the bracket on the map.
func (b Bracket) Color() string {
	if b == BracketHigh {
		return "red"
	}
	return "blue"
}

// wordCloudCap returns the bracket's maximum word-cloud entry count.
func (b Bracket) wordCloudCap() int {
	if b == BracketHigh {
		return WordCloudCapHigh
	}
	return WordCloudCapLow
}

// Writer owns the output directory and file naming.
type Writer struct {
	outDir string
	s      *storage.Storage
	now    func() time.Time
}

// NewWriter creates a Writer rooted at outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir: outDir,
		s:      &storage.Storage{},
		now:    time.Now,
	}
}

func (w *Writer) path(name string) string {
	return filepath.Join(w.outDir, name)
}

func (w *Writer) saveJSON(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling %s: %w", name, err)
	}
	p := w.path(name)
	if err := w.s.SaveFile(p, data); err != nil {
		return "", err
	}
	return p, nil
}

// AgencyReport is the chart-ready agency ranking artifact.
type AgencyReport struct {
	GeneratedAt string                 `json:"generated_at"`
	RankedBy    string                 `json:"ranked_by"`
	Ranked      []models.AgencySummary `json:"ranked"`
	Top         []models.AgencySummary `json:"top"`
	Bottom      []models.AgencySummary `json:"bottom"`
}

// WriteAgencyReports writes both agency rankings (by posting count and by
// total positions) with top/bottom slices of size n.
func (w *Writer) WriteAgencyReports(postings []models.Posting, n int) error {
	byCount := aggregate.CountByAgency(postings)
	if _, err := w.saveJSON("agencies-by-postings.json", AgencyReport{
		GeneratedAt: w.now().Format(time.RFC3339),
		RankedBy:    "posting_count",
		Ranked:      byCount,
		Top:         aggregate.TopN(byCount, n),
		Bottom:      aggregate.BottomN(byCount, n),
	}); err != nil {
		return err
	}

	byPositions := aggregate.SumPositionsByAgency(postings)
	_, err := w.saveJSON("agencies-by-positions.json", AgencyReport{
		GeneratedAt: w.now().Format(time.RFC3339),
		RankedBy:    "total_positions",
		Ranked:      byPositions,
		Top:         aggregate.TopN(byPositions, n),
		Bottom:      aggregate.BottomN(byPositions, n),
	})
	return err
}

// TermsReport is the chart-ready filtered term-frequency artifact: the
// bar-chart truncation plus the word-cloud input list.
type TermsReport struct {
	GeneratedAt string                      `json:"generated_at"`
	Bracket     Bracket                     `json:"bracket"`
	BarChart    []models.TermFrequencyEntry `json:"bar_chart"`
	WordCloud   []models.TermFrequencyEntry `json:"word_cloud"`
}

// RawTermsReport is the phase-one inspectable artifact: frequencies with
// only the standard stopword list applied, for curating the removal list.
type RawTermsReport struct {
	GeneratedAt string                      `json:"generated_at"`
	Bracket     Bracket                     `json:"bracket"`
	Terms       []models.TermFrequencyEntry `json:"terms"`
}

// WriteRawTerms writes the phase-one table for a bracket, truncated to the
// inspection window.
func (w *Writer) WriteRawTerms(bracket Bracket, terms []models.TermFrequencyEntry) (string, error) {
	return w.saveJSON(fmt.Sprintf("terms-%s-raw.json", bracket), RawTermsReport{
		GeneratedAt: w.now().Format(time.RFC3339),
		Bracket:     bracket,
		Terms:       truncate(terms, RawTableInspectN),
	})
}

// WriteTerms writes the phase-two filtered table for a bracket.
func (w *Writer) WriteTerms(bracket Bracket, terms []models.TermFrequencyEntry) (string, error) {
	return w.saveJSON(fmt.Sprintf("terms-%s.json", bracket), TermsReport{
		GeneratedAt: w.now().Format(time.RFC3339),
		Bracket:     bracket,
		BarChart:    truncate(terms, BarChartTerms),
		WordCloud:   wordCloud(terms, bracket.wordCloudCap()),
	})
}

// wordCloud applies the display floor and cap to a ranked table.
func wordCloud(terms []models.TermFrequencyEntry, limit int) []models.TermFrequencyEntry {
	out := make([]models.TermFrequencyEntry, 0, limit)
	for _, e := range terms {
		if e.Frequency < WordCloudMinFreq {
			break // table is ranked descending, nothing later qualifies
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func truncate(terms []models.TermFrequencyEntry, n int) []models.TermFrequencyEntry {
	if len(terms) > n {
		return terms[:n]
	}
	return terms
}

// RunSummary is the end-of-run manifest.
type RunSummary struct {
	GeneratedAt        string `json:"generated_at"`
	InputPath          string `json:"input_path"`
	TotalRows          int    `json:"total_rows"`
	ExcludedSalaryRows int    `json:"excluded_salary_rows"`
	HighBracketRows    int    `json:"high_bracket_rows"`
	LowBracketRows     int    `json:"low_bracket_rows"`
	GeocodeLookups     int    `json:"geocode_lookups"`
	GeocodeUnresolved  int    `json:"geocode_unresolved"`
}

// WriteRunSummary writes the run manifest and returns its path.
func (w *Writer) WriteRunSummary(summary RunSummary) (string, error) {
	summary.GeneratedAt = w.now().Format(time.RFC3339)
	return w.saveJSON("summary.json", summary)
}
