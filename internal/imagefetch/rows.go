// Package imagefetch finds product image URLs for catalog CSV rows through
// image search APIs.
package imagefetch

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one CSV record keyed by header, with the header order kept for
// output.
type Row struct {
	columns []string
	values  map[string]string
}

func NewRow(columns []string, values map[string]string) Row {
	return Row{columns: columns, values: values}
}

func (r Row) Get(column string) string {
	return r.values[column]
}

// Query builds the search phrase: brand, then the best available name, then
// the category.
func (r Row) Query() string {
	name := firstNonEmpty(r.Get("search_name_en"), r.Get("search_description_en"), r.Get("sku"))
	parts := []string{r.Get("brand_effective"), name, r.Get("category_id")}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ReadCSV parses a CSV with a header row. Short records are padded with
// empty values; blank lines are skipped.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		values := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				values[col] = strings.TrimSpace(record[i])
			} else {
				values[col] = ""
			}
		}
		rows = append(rows, NewRow(columns, values))
	}
	return rows, nil
}

// Result is a row with the images found for it.
type Result struct {
	Row    Row
	Images []string
}

// MarshalJSON writes the row columns in CSV order followed by "images".
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, col := range r.Row.columns {
		if col == "images" {
			continue
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Row.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		buf.WriteByte(',')
	}
	images := r.Images
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"images":`)
	buf.Write(encoded)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteJSON writes the results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
