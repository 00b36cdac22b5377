package files

import (
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	apperrors "salescli/internal/errors"
)

// Reader loads raw ledger lines from disk, tolerating legacy encodings.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a new ledger reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// fallbackEncodings are tried in order when the file is not valid UTF-8.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
}

// ReadSalesData reads the ledger file, skips the header row and drops lines
// that are empty after trimming. The raw bytes are used as-is when they are
// valid UTF-8; otherwise latin-1 and cp1252 decoding are attempted in turn.
func (r *Reader) ReadSalesData(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("ledger file not found", err).
				WithContext("path", path)
		}
		return nil, apperrors.NewStorageError("failed to read ledger file", err).
			WithContext("path", path)
	}

	text, enc := decode(data)
	r.logger.Info("ledger file read",
		slog.String("path", path),
		slog.String("encoding", enc),
		slog.Int("bytes", len(data)))

	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(rawLines) > 0 {
		rawLines = rawLines[1:] // header row
	}

	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// decode returns the file content as a string plus the encoding used.
func decode(data []byte) (string, string) {
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}
	for _, fb := range fallbackEncodings {
		decoded, err := fb.enc.NewDecoder().Bytes(data)
		if err == nil {
			return string(decoded), fb.name
		}
	}
	// Give the caller something rather than nothing; invalid sequences will
	// surface as parse-time drops.
	return string(data), "raw"
}
