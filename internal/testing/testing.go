// package testing contains shared testing utilities
package testing

import (
	"archive/zip"
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/vvsong/internal/shared"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

const (
	presentationTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldIdLst>%s</p:sldIdLst></p:presentation>`

	relsTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">%s</Relationships>`

	slideTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>%s</p:spTree></p:cSld></p:sld>`

	slideRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// PPTXBytes builds a minimal .pptx archive. Each slide is a list of shapes;
// within a shape "\n" starts a new paragraph and "\v" inserts a soft break.
func PPTXBytes(slides [][]string) []byte {
	var ids, rels strings.Builder
	files := map[string]string{}
	for i, shapes := range slides {
		n := i + 1
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 255+n, n)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>`, n, slideRelType, n)

		var sp strings.Builder
		for j, shape := range shapes {
			fmt.Fprintf(&sp, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Text %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>`, j+2, j+1)
			for _, para := range strings.Split(shape, "\n") {
				sp.WriteString(`<a:p>`)
				for k, run := range strings.Split(para, "\v") {
					if k > 0 {
						sp.WriteString(`<a:br><a:rPr lang="en-US"/></a:br>`)
					}
					if run != "" {
						fmt.Fprintf(&sp, `<a:r><a:rPr lang="en-US"/><a:t>%s</a:t></a:r>`, html.EscapeString(run))
					}
				}
				sp.WriteString(`</a:p>`)
			}
			sp.WriteString(`</p:txBody></p:sp>`)
		}
		files[fmt.Sprintf("ppt/slides/slide%d.xml", n)] = fmt.Sprintf(slideTmpl, sp.String())
	}
	files["ppt/presentation.xml"] = fmt.Sprintf(presentationTmpl, ids.String())
	files["ppt/_rels/presentation.xml.rels"] = fmt.Sprintf(relsTmpl, rels.String())

	return ZipBytes(files)
}

// ZipBytes writes files into an in-memory zip archive.
func ZipBytes(files map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WritePPTX writes a presentation built by [PPTXBytes] to dir/name.
func WritePPTX(t *testing.T, dir, name string, slides [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, PPTXBytes(slides), 0o644); err != nil {
		t.Fatalf("Failed to write presentation %s: %v", path, err)
	}
	return path
}

// NewStore creates a file-backed song store with the sm table and returns
// its path together with an open handle closed at test cleanup.
func NewStore(t *testing.T) (string, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.db")
	db, err := shared.NewDatabase(path)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	if err := shared.EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return path, db
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
