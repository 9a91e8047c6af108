package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses delimited text with a header row into a Dataset.
//
// Rows shorter than the header are padded with missing cells; rows longer
// than the header are rejected.
func ReadCSV(r io.Reader, comma rune) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no columns to parse from file")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	names := normalizeHeader(header)

	raw := make([][]string, len(names))
	line := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		line++

		if len(record) > len(names) {
			return nil, fmt.Errorf("record on line %d has %d fields, expected %d", line, len(record), len(names))
		}
		for i := range names {
			if i < len(record) {
				raw[i] = append(raw[i], record[i])
			} else {
				raw[i] = append(raw[i], "")
			}
		}
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = inferColumn(name, raw[i])
	}

	return New(columns)
}

// normalizeHeader strips a byte order mark, names blank headers by position
// and disambiguates repeated names with a numeric suffix.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		if _, dup := seen[name]; dup {
			base := name
			for n := seen[base] + 1; ; n++ {
				candidate := base + "." + strconv.Itoa(n)
				if _, taken := seen[candidate]; !taken {
					seen[base] = n
					name = candidate
					break
				}
			}
		}
		seen[name] = 0
		names[i] = name
	}

	return names
}
