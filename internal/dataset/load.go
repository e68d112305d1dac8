package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrNotFound is returned when the dataset path does not exist.
	ErrNotFound = errors.New("dataset not found")
	// ErrParse is returned for malformed input: ragged rows, empty files, bad encoding.
	ErrParse = errors.New("malformed dataset")
)

var utf8BOM = []byte("\ufeff")

// DefaultNullValues are the cell tokens read as null.
var DefaultNullValues = []string{"", "NA", "NaN", "<nil>"}

// Options controls how a delimited file is read.
type Options struct {
	// Delimiter between fields. If 0, ',' is used ('\t' for .tsv paths).
	Delimiter rune
	// NullValues overrides DefaultNullValues when non-nil.
	NullValues []string
}

// Load reads a delimited file with a header row into a Table.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	t, err := Read(f, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// Read parses delimited text with a header row. Column kinds are inferred
// per column: all-integer columns become KindInt, numeric ones KindFloat,
// anything else KindString.
func Read(r io.Reader, opt Options) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrParse)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrParse)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	nulls := opt.NullValues
	if nulls == nil {
		nulls = DefaultNullValues
	}

	header, more, err := readHeader(data, delim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if !more {
		return headerOnly(header)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithDelimiter(delim),
		dataframe.NaNValues(nulls),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, df.Err)
	}

	t := &Table{index: make(map[string]int, df.Ncol()), rows: df.Nrow()}
	for _, name := range df.Names() {
		if err := t.AddColumn(fromSeries(df.Col(name))); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
	}
	return t, nil
}

// readHeader returns the header record and whether any data row follows it.
func readHeader(data []byte, delim rune) ([]string, bool, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, false, err
	}
	_, err = cr.Read()
	if errors.Is(err, io.EOF) {
		return header, false, nil
	}
	return header, true, nil
}

// headerOnly builds a zero-row table with one text column per header name.
func headerOnly(header []string) (*Table, error) {
	cols := make([]*Column, len(header))
	for i, name := range header {
		cols[i] = NewStringColumn(strings.TrimSpace(name), nil, nil)
	}
	t, err := New("", cols...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return t, nil
}

func fromSeries(s series.Series) *Column {
	name := strings.TrimSpace(s.Name)
	switch s.Type() {
	case series.Int:
		return NewNumericColumn(name, KindInt, s.Float())
	case series.Float:
		return NewNumericColumn(name, KindFloat, s.Float())
	default:
		return NewStringColumn(name, s.Records(), s.IsNaN())
	}
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
