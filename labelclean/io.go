package labelclean

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column headers of the input file and the two output files.
const (
	RawTextColumn = "raw_text"
	KeyColumn     = "key"
	CleanedColumn = "cleaned_text"
)

var (
	// ErrEmptyInput is returned when an input file holds no records.
	ErrEmptyInput = errors.New("input contains no records")
	// ErrColumnNotFound is returned when an explicit column cannot be matched.
	ErrColumnNotFound = errors.New("column not found")
)

// InputParseOptions controls how input files are read.
type InputParseOptions struct {
	// TextColumn is a header name or a 1-based "#N" index. Empty means
	// auto-detect.
	TextColumn string
	// Encoding is a WHATWG encoding label. Empty means UTF-8.
	Encoding string
}

// ParseInputRecords reads path into ordered raw records. CSV and TSV files are
// read as delimited data. Any other file is read as CSV when its first line
// names a text column, and as one record per non-blank line otherwise.
func ParseInputRecords(path string, opts InputParseOptions) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	r, err := decodeReader(f, opts.Encoding)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return ParseRecords(path, data, opts)
}

// ParseRecords reads UTF-8 data that came from the file name into ordered raw
// records, choosing the format the way ParseInputRecords does.
func ParseRecords(name string, data []byte, opts InputParseOptions) ([]RawRecord, error) {
	var records []RawRecord
	var err error
	if delim, ok := InputDelimiter(name, data, opts); ok {
		records, err = ReadDelimitedRecords(bytes.NewReader(data), delim, opts)
	} else {
		records, err = ReadPlainTextRecords(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(name), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(name), ErrEmptyInput)
	}
	return records, nil
}

// InputDelimiter reports the field delimiter for data read from name, and
// false when the data is plain text with one record per line. .csv and .tsv
// are always delimited; other files are CSV only when their first line names
// the text column.
func InputDelimiter(name string, data []byte, opts InputParseOptions) (rune, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ',', true
	case ".tsv":
		return '\t', true
	}
	if hasTextHeader(data, opts) {
		return ',', true
	}
	return 0, false
}

// ReadDelimitedRecords reads delimited rows from r. The first row is treated as
// a header when the text column is found in it by name. Rows whose text cell
// is empty or missing are kept with empty text.
func ReadDelimitedRecords(r io.Reader, delim rune, opts InputParseOptions) ([]RawRecord, error) {
	rows, err := ReadDelimitedRows(r, delim)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	col, hasHeader, err := ResolveTextColumn(rows[0], opts.TextColumn)
	if err != nil {
		return nil, err
	}
	return ColumnRecords(rows, col, hasHeader), nil
}

// ReadDelimitedRows reads every row of r. Rows may differ in length.
func ReadDelimitedRows(r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ColumnRecords turns column col of rows into records, one per row after the
// header. Rows whose cell is empty or missing become records with empty text.
func ColumnRecords(rows [][]string, col int, hasHeader bool) []RawRecord {
	start := 0
	if hasHeader && len(rows) > 0 {
		start = 1
	}
	records := make([]RawRecord, 0, len(rows)-start)
	for _, row := range rows[start:] {
		rec := RawRecord{Index: len(records)}
		if col >= 0 && col < len(row) {
			rec.Text = row[col]
		}
		records = append(records, rec)
	}
	return records
}

// ReadPlainTextRecords returns one record per non-blank line of r.
func ReadPlainTextRecords(r io.Reader) ([]RawRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	records := make([]RawRecord, 0)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, RawRecord{Index: len(records), Text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// hasTextHeader reports whether the first line of data looks like a CSV header
// that contains the text column.
func hasTextHeader(data []byte, opts InputParseOptions) bool {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	row, err := reader.Read()
	if err != nil {
		return false
	}
	header := make([]string, len(row))
	for i, cell := range row {
		header[i] = cleanCell(cell)
	}
	if explicit := strings.TrimSpace(opts.TextColumn); explicit != "" && !strings.HasPrefix(explicit, "#") {
		return findColumn(header, []string{explicit}) >= 0
	}
	return findColumn(header, getColumnCandidates().Text) >= 0
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

// ResolveTextColumn finds the text column in the first row. explicit is a
// header name or a 1-based "#N" index; empty means the column candidates are
// tried. It reports whether the first row is a header.
func ResolveTextColumn(firstRow []string, explicit string) (int, bool, error) {
	header := make([]string, len(firstRow))
	for i, cell := range firstRow {
		header[i] = cleanCell(cell)
	}
	trimmed := strings.TrimSpace(explicit)
	if trimmed != "" {
		return matchExplicitColumn(header, trimmed)
	}
	if col := findColumn(header, getColumnCandidates().Text); col >= 0 {
		return col, true, nil
	}
	if len(header) == 0 {
		return -1, false, fmt.Errorf("no usable text column: %w", ErrColumnNotFound)
	}
	return 0, false, nil
}

func matchExplicitColumn(header []string, explicit string) (int, bool, error) {
	for i, col := range header {
		if strings.EqualFold(col, explicit) {
			return i, true, nil
		}
	}
	if strings.HasPrefix(explicit, "#") {
		idx, err := parseColumnIndex(explicit)
		if err != nil {
			return -1, false, err
		}
		if idx >= len(header) {
			return -1, false, fmt.Errorf("column index %s is out of range", explicit)
		}
		return idx, false, nil
	}
	return -1, false, fmt.Errorf("column %q: %w", explicit, ErrColumnNotFound)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	if trimmed == "" {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}

// EnsureDir creates the parent directory of path when it is missing.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// WriteKeyFile writes the "key" column of results to path.
func WriteKeyFile(path string, results []ResultRecord) error {
	values := make([]string, len(results))
	for i, r := range results {
		values[i] = r.Key
	}
	return writeColumnFile(path, KeyColumn, values)
}

// WriteCleanedFile writes the "cleaned_text" column of results to path.
// Unresolved rows become empty fields.
func WriteCleanedFile(path string, results []ResultRecord) error {
	values := make([]string, len(results))
	for i, r := range results {
		if v, ok := r.Value(); ok {
			values[i] = v
		}
	}
	return writeColumnFile(path, CleanedColumn, values)
}

func writeColumnFile(path, header string, values []string) error {
	if err := EnsureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := WriteColumn(f, header, values); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteColumn writes a single-column CSV with a header row. An empty value is
// written as "" so that its line is not blank and survives a round trip.
func WriteColumn(w io.Writer, header string, values []string) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := cw.Write([]string{header}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, v := range values {
		if v != "" {
			if err := cw.Write([]string{v}); err != nil {
				return fmt.Errorf("write row %d: %w", i, err)
			}
			continue
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
		if _, err := bw.WriteString("\"\"\n"); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return bw.Flush()
}
