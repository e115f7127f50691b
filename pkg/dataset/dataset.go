// Package dataset loads the delimited job-postings table into memory.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmfield/postings-atlas/models"
	"github.com/jmfield/postings-atlas/pkg/salary"
)

// ErrMissingColumn marks a fatal input schema failure: a required column is
// absent from the header row. A malformed input file aborts the run.
var ErrMissingColumn = errors.New("required column missing")

// Required column headers of the fixed input schema.
const (
	colAgency        = "Agency"
	colBusinessTitle = "Business Title"
	colPositions     = "# Of Positions"
	colSalaryFrom    = "Salary Range From"
	colSalaryTo      = "Salary Range To"
	colSalaryFreq    = "Salary Frequency"
	colMinimumQuals  = "Minimum Qual Requirements"
	colWorkLocation  = "Work Location"
)

var requiredColumns = []string{
	colAgency, colBusinessTitle, colPositions,
	colSalaryFrom, colSalaryTo, colSalaryFreq,
	colMinimumQuals, colWorkLocation,
}

// Load reads the postings file at path. The normalized salary is appended
// once per row at load; rows with missing salary bounds keep a nil value
// and are excluded from salary-dependent computations downstream.
func Load(path string) ([]models.Posting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a postings table from r.
func Read(r io.Reader) ([]models.Posting, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are a data problem, not a parse failure

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var postings []models.Posting
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		p := models.Posting{
			Agency:                  field(record, index[colAgency]),
			BusinessTitle:           field(record, index[colBusinessTitle]),
			NumberOfPositions:       parseInt(field(record, index[colPositions])),
			SalaryFrom:              parseFloat(field(record, index[colSalaryFrom])),
			SalaryTo:                parseFloat(field(record, index[colSalaryTo])),
			SalaryFrequency:         models.Frequency(field(record, index[colSalaryFreq])),
			MinimumQualRequirements: field(record, index[colMinimumQuals]),
			WorkLocation:            field(record, index[colWorkLocation]),
		}
		p.NormalizedSalary = salary.NormalizePosting(&p)
		postings = append(postings, p)
	}
	return postings, nil
}

// columnIndex maps required headers to their positions, failing fast on any
// absent column.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return index, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseFloat returns nil for blank or unparseable numerics; callers treat
// nil as a missing value, not an error.
func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// HighSalary returns postings with a normalized salary at or above the
// threshold.
func HighSalary(postings []models.Posting, threshold float64) []models.Posting {
	var out []models.Posting
	for _, p := range postings {
		if p.HasSalary() && *p.NormalizedSalary >= threshold {
			out = append(out, p)
		}
	}
	return out
}

// LowSalary returns postings with a normalized salary at or below the
// threshold.
func LowSalary(postings []models.Posting, threshold float64) []models.Posting {
	var out []models.Posting
	for _, p := range postings {
		if p.HasSalary() && *p.NormalizedSalary <= threshold {
			out = append(out, p)
		}
	}
	return out
}

// Qualifications extracts the non-empty qualification texts of a posting
// subset, in input order.
func Qualifications(postings []models.Posting) []string {
	var out []string
	for _, p := range postings {
		if p.MinimumQualRequirements != "" {
			out = append(out, p.MinimumQualRequirements)
		}
	}
	return out
}
