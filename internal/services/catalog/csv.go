package catalog

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/leelawheel/internal/model"
)

// Delimiters tried when sniffing a CSV header, in preference order
var candidateDelimiters = []rune{',', ';', '\t', '|'}

var errEmptyCSV = errors.New("csv is empty")

// ImportCSV converts a spreadsheet export into quotes. The delimiter is
// sniffed from the header line; the "quote" and "date" columns are found by
// header name, falling back to the first and second columns. Rows with a
// blank quote are skipped.
func ImportCSV(r io.Reader) ([]model.Quote, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errEmptyCSV
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = DetectDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	quoteCol, dateCol := guessColumns(header)

	var quotes []model.Quote
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		quote := strings.TrimSpace(cell(record, quoteCol))
		if quote == "" {
			continue
		}
		quotes = append(quotes, model.Quote{
			Quote: quote,
			Date:  strings.TrimSpace(cell(record, dateCol)),
		})
	}
	return quotes, nil
}

// DetectDelimiter returns the candidate that splits the first non-blank line
// into the most fields. Comma wins ties.
func DetectDelimiter(raw []byte) rune {
	var first string
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), len(raw)+1)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			first = line
			break
		}
	}

	best, hits := candidateDelimiters[0], 0
	for _, d := range candidateDelimiters {
		if n := strings.Count(first, string(d)) + 1; n > hits {
			best, hits = d, n
		}
	}
	return best
}

func guessColumns(header []string) (quoteCol, dateCol int) {
	quoteCol, dateCol = -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "quote":
			if quoteCol < 0 {
				quoteCol = i
			}
		case "date":
			if dateCol < 0 {
				dateCol = i
			}
		}
	}
	if quoteCol < 0 {
		quoteCol = 0
	}
	if dateCol < 0 && len(header) > 1 {
		dateCol = 1
	}
	return quoteCol, dateCol
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
