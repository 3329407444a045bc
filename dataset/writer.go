package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Format is an output file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ResolveFormat returns explicit when set, otherwise infers the format from the
// extension of path; anything but ".parquet" is CSV.
func ResolveFormat(explicit, path string) (Format, error) {
	switch Format(strings.ToLower(explicit)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatParquet:
		return FormatParquet, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, explicit)
	}
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet, nil
	}
	return FormatCSV, nil
}

type tabular interface {
	csvHeader() []string
	csvRecord() []string
}

// WritePositions writes rows to path, creating its directory.
func WritePositions(path string, format Format, rows []PositionRow) error {
	return writeRows(path, format, rows)
}

// WriteEvaluations writes rows to path, creating its directory.
func WriteEvaluations(path string, format Format, rows []Evaluation) error {
	return writeRows(path, format, rows)
}

func writeRows[T tabular](path string, format Format, rows []T) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	switch format {
	case FormatCSV:
		return writeCSV(path, rows)
	case FormatParquet:
		if err := parquet.WriteFile(path, rows); err != nil {
			return fmt.Errorf("write parquet %s: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func writeCSV[T tabular](path string, rows []T) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	var zero T
	if err := w.Write(zero.csvHeader()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.csvRecord()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
