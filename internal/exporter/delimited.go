package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DelimitedWriter writes delimiter-separated text files. The ledger and the
// enriched export both use '|' as the delimiter.
type DelimitedWriter struct {
	delimiter rune
}

// NewDelimitedWriter creates a writer for the given delimiter
func NewDelimitedWriter(delimiter rune) *DelimitedWriter {
	return &DelimitedWriter{delimiter: delimiter}
}

// NewPipeWriter creates a writer for pipe-delimited files
func NewPipeWriter() *DelimitedWriter {
	return NewDelimitedWriter('|')
}

// WriteOptions configures a delimited write
type WriteOptions struct {
	Headers []string
	Records [][]string
	Append  bool
}

// WriteFile writes data to a delimited file with the given options. The
// destination directory is created if needed; a mid-write failure is caught
// and reported rather than left as a partial crash.
func (w *DelimitedWriter) WriteFile(filePath string, options WriteOptions) error {
	slog.Info("writing delimited file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = w.delimiter
	defer writer.Flush()

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
