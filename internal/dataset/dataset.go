// Package dataset keeps the CSV of scraped companies, one row per LinkedIn
// URL. The file is read whole and rewritten whole on every upsert; there is
// no locking between processes.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"CrawlerLinkedinAbout/internal/company"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// PersistenceError is returned when the dataset can't be read back or
// written, typically because another program holds the file open. The record
// is not saved.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("não foi possível gravar %q (o arquivo está aberto?): %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type Table struct {
	Header []string
	Rows   [][]string
	// CRLF is set when the file on disk used CRLF line endings. encoding/csv
	// reads a quoted "\r\n" as "\n", so Encode writes CRLF back for such
	// files.
	CRLF bool
}

func (t Table) Records() []company.Record {
	out := make([]company.Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, company.RecordFromRow(t.Header, r))
	}
	return out
}

// Load reads the dataset at path. A missing file returns an error matching
// fs.ErrNotExist.
func Load(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	raw = bytes.TrimPrefix(raw, bom)

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("lendo %s: %w", path, err)
	}
	crlf := bytes.Contains(raw, []byte("\r\n"))
	if len(records) == 0 {
		return Table{CRLF: crlf}, nil
	}
	return Table{Header: records[0], Rows: records[1:], CRLF: crlf}, nil
}

// Upsert replaces any row with rec's LinkedIn URL by rec, appended at the
// end, and rewrites the file. Other rows keep their values and order.
func Upsert(path string, rec company.Record) (Table, error) {
	t, err := Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Table{}, &PersistenceError{Path: path, Err: err}
	}
	t = merge(t, rec)
	if err := Write(path, t); err != nil {
		return t, err
	}
	return t, nil
}

func merge(t Table, rec company.Record) Table {
	header := slices.Clone(t.Header)
	for _, c := range company.Columns {
		if !slices.Contains(header, c) {
			header = append(header, c)
		}
	}
	key := slices.Index(header, company.ColURL)

	rows := make([][]string, 0, len(t.Rows)+1)
	for _, r := range t.Rows {
		if len(r) < len(header) {
			r = append(slices.Clone(r), make([]string, len(header)-len(r))...)
		}
		if r[key] == rec.URL {
			continue
		}
		rows = append(rows, r)
	}
	rows = append(rows, rec.Row(header))
	return Table{Header: header, Rows: rows, CRLF: t.CRLF}
}

// Write replaces the file at path with t. The new content goes to a temp
// file in the same directory first, so a failed write leaves the old
// dataset untouched.
func Write(path string, t Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return &PersistenceError{Path: path, Err: err}
	}
	if err := Encode(tmp, t); err != nil {
		tmp.Close()
		return &PersistenceError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}

// Encode writes t as CSV with a UTF-8 BOM so spreadsheets pick the
// encoding up.
func Encode(w io.Writer, t Table) error {
	if _, err := w.Write(bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = t.CRLF
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
