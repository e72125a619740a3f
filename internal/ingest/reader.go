package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// LoadTitles reads book titles from the first column of a CSV with a header
// row. Blank rows and case-insensitive duplicates are dropped.
func LoadTitles(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTitles(f)
}

func ReadTitles(src io.Reader) ([]string, error) {
	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(src))
	r.FieldsPerRecord = -1

	var titles []string
	seen := make(map[string]struct{})
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Fail-Soft on malformed rows
			if _, ok := err.(*csv.ParseError); ok {
				continue
			}
			return titles, err
		}
		line++
		if line == 1 {
			continue // Skip header
		}
		if len(record) == 0 {
			continue
		}

		title := strings.Join(strings.Fields(record[0]), " ")
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
