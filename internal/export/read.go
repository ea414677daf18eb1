// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotBrief is returned when a document does not have the brief layout.
var ErrNotBrief = errors.New("document is not a content brief")

// Section is one titled section read back from a document.
type Section struct {
	Title string
	Text  string
}

// Document is the readable content of a rendered brief.
type Document struct {
	Title    string
	Info     [][2]string
	Sections []Section
}

// Read parses a .docx produced by Render. Paragraphs in a cell are joined
// with newlines, so section text round-trips line for line.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	tables, err := readTables(r, size)
	if err != nil {
		return nil, err
	}
	if len(tables) < 2 || len(tables[0]) != 1 || len(tables[0][0]) != 1 {
		return nil, ErrNotBrief
	}

	doc := &Document{Title: tables[0][0][0]}
	for _, row := range tables[1] {
		if len(row) != 2 {
			return nil, fmt.Errorf("%w: info row has %d cells", ErrNotBrief, len(row))
		}
		doc.Info = append(doc.Info, [2]string{row[0], row[1]})
	}
	for _, t := range tables[2:] {
		if len(t) != 2 || len(t[0]) != 1 || len(t[1]) != 1 {
			return nil, fmt.Errorf("%w: malformed section table", ErrNotBrief)
		}
		doc.Sections = append(doc.Sections, Section{Title: t[0][0], Text: t[1][0]})
	}
	return doc, nil
}

// ReadSections returns the ordered sections of a rendered brief.
func ReadSections(r io.ReaderAt, size int64) ([]Section, error) {
	doc, err := Read(r, size)
	if err != nil {
		return nil, err
	}
	return doc.Sections, nil
}

// readTables returns the text of every table cell in word/document.xml,
// indexed as table, row, cell.
func readTables(r io.ReaderAt, size int64) ([][][]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%w: no word/document.xml", ErrNotBrief)
	}
	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("opening document body: %w", err)
	}
	defer rc.Close()

	var (
		tables [][][]string
		paras  []string
		text   strings.Builder
		inCell bool
		inText bool
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tables = append(tables, nil)
			case "tr":
				if len(tables) > 0 {
					tables[len(tables)-1] = append(tables[len(tables)-1], nil)
				}
			case "tc":
				inCell, paras = true, nil
			case "p":
				text.Reset()
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inCell {
					paras = append(paras, text.String())
				}
			case "tc":
				inCell = false
				if len(tables) == 0 || len(tables[len(tables)-1]) == 0 {
					continue
				}
				tbl := tables[len(tables)-1]
				row := len(tbl) - 1
				tbl[row] = append(tbl[row], strings.Join(paras, "\n"))
			}
		}
	}
	return tables, nil
}
