// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package drugbank splits a DrugBank XML export into line-delimited JSON
// tables, one record per line, ready for conversion to CSV. The export is
// streamed one <drug> element at a time, so memory does not grow with the
// size of the file.
package drugbank

import (
	"bufio"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/json2csv/internal/apperr"
	"github.com/pdiddy/json2csv/pkg/types"
)

// Parse reads the export at cfg.Path and writes every table in Tables to
// cfg.OutputDir as <table>.json. Progress over the bytes read is drawn on w
// unless cfg.Quiet is set. Cancelling ctx stops the run between drugs.
func Parse(ctx context.Context, cfg types.ParseConfig, w io.Writer) (types.ParseResult, error) {
	result := types.ParseResult{Source: cfg.Path}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return result, apperr.IO("opening", cfg.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return result, apperr.IO("reading", cfg.Path, err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, apperr.IO("creating output directory", cfg.OutputDir, err)
	}
	set, err := openTables(cfg.OutputDir)
	if err != nil {
		return result, err
	}
	defer set.close()

	if cfg.Quiet {
		w = io.Discard
	}
	bar := progressbar.NewOptions64(info.Size(),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("parsing "+filepath.Base(cfg.Path)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)

	dec := xml.NewDecoder(io.TeeReader(f, bar))
	result.Drugs, err = decodeDrugs(ctx, dec, cfg.Path, set.write)
	if err != nil {
		bar.Exit()
		return result, err
	}
	bar.Finish()

	result.Tables, err = set.close()
	return result, err
}

// decodeDrugs walks the token stream and hands every <drug> child of the
// root element to fn. Drugs nested deeper, such as pathway members, are part
// of their parent and are not emitted on their own.
func decodeDrugs(ctx context.Context, dec *xml.Decoder, path string, fn emitFunc) (int, error) {
	n, depth := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, syntaxError(path, dec, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if depth != 1 || el.Name.Local != "drug" {
				depth++
				continue
			}
			if err := ctx.Err(); err != nil {
				return n, err
			}
			var d Drug
			if err := dec.DecodeElement(&d, &el); err != nil {
				return n, syntaxError(path, dec, err)
			}
			if err := d.emit(fn); err != nil {
				return n, err
			}
			n++
		case xml.EndElement:
			depth--
		}
	}
}

func syntaxError(path string, dec *xml.Decoder, err error) error {
	var serr *xml.SyntaxError
	if errors.As(err, &serr) {
		return apperr.Parse(path, serr.Line, errors.New(serr.Msg))
	}
	line, _ := dec.InputPos()
	return apperr.Parse(path, line, err)
}

type tableFile struct {
	name string
	path string
	f    *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
	rows int
}

// tableSet holds one open JSONL writer per table.
type tableSet struct {
	files  []*tableFile
	byName map[string]*tableFile
	closed bool
}

func openTables(dir string) (*tableSet, error) {
	s := &tableSet{byName: make(map[string]*tableFile, len(Tables))}
	for _, name := range Tables {
		path := filepath.Join(dir, name+".json")
		f, err := os.Create(path)
		if err != nil {
			s.close()
			return nil, apperr.IO("creating", path, err)
		}
		buf := bufio.NewWriter(f)
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		t := &tableFile{name: name, path: path, f: f, buf: buf, enc: enc}
		s.files = append(s.files, t)
		s.byName[name] = t
	}
	return s, nil
}

func (s *tableSet) write(table string, rec any) error {
	t, ok := s.byName[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	if err := t.enc.Encode(rec); err != nil {
		return apperr.IO("writing", t.path, err)
	}
	t.rows++
	return nil
}

// close flushes and closes every file and reports the row counts. Only the
// first call has any effect.
func (s *tableSet) close() ([]types.TableCount, error) {
	if s.closed {
		return nil, nil
	}
	s.closed = true

	var (
		counts []types.TableCount
		first  error
	)
	for _, t := range s.files {
		err := t.buf.Flush()
		if cerr := t.f.Close(); err == nil {
			err = cerr
		}
		if err != nil && first == nil {
			first = apperr.IO("writing", t.path, err)
		}
		counts = append(counts, types.TableCount{
			Name: t.name,
			Path: t.path,
			Rows: t.rows,
		})
	}
	return counts, first
}
