package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads the tabular source at path, choosing the parser from the file
// extension: .parquet/.pq as Parquet, .tsv as tab-separated text and anything
// else as comma-separated text.
func Load(path string) (*Dataset, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return LoadParquet(path)
	case ".tsv":
		return loadDelimited(path, '\t')
	default:
		return loadDelimited(path, ',')
	}
}

func loadDelimited(path string, comma rune) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadCSV(file, comma)
}
