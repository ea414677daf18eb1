// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders brief records as Word (.docx) documents. A
// document is a title table, an info table and one two-row table per
// section in types.SectionOrder.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/content-brief/pkg/types"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "output_briefs"

// Fixed palette.
const (
	colorHeaderFill  = "002060"
	colorSectionFill = "4472C4"
	colorContentFill = "F2F2F2"
	colorWhite       = "FFFFFF"
	colorBlack       = "000000"
)

const (
	titleSize = 16

	// Page width inside margins and the info table columns, in twips.
	fullWidth  = 9360
	labelWidth = 2160
	valueWidth = 7200
)

// Options control document styling. Zero fields take the defaults.
type Options struct {
	FontName    string
	BodySize    int
	HeadingSize int
}

// DefaultOptions returns Calibri with 11pt body text and 12pt headings.
func DefaultOptions() Options {
	return Options{FontName: "Calibri", BodySize: 11, HeadingSize: 12}
}

// OptionsFrom builds Options from the export configuration.
func OptionsFrom(cfg types.ExportConfig) Options {
	return Options{FontName: cfg.FontName, BodySize: cfg.BodySize, HeadingSize: cfg.HeadingSize}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.FontName == "" {
		o.FontName = d.FontName
	}
	if o.BodySize <= 0 {
		o.BodySize = d.BodySize
	}
	if o.HeadingSize <= 0 {
		o.HeadingSize = d.HeadingSize
	}
	return o
}

// Exporter renders records with one set of Options.
type Exporter struct {
	opts Options
	now  func() time.Time
}

// New returns an Exporter using opts.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts.withDefaults(), now: time.Now}
}

// Render writes rec as a .docx package to w.
func (e *Exporter) Render(w io.Writer, rec *types.BriefRecord) error {
	if rec == nil {
		return fmt.Errorf("rendering brief: nil record")
	}
	doc := e.model(rec)

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		tmpl *template.Template
		data any
	}{
		{"[Content_Types].xml", contentTypesXML, nil},
		{"_rels/.rels", rootRelsXML, nil},
		{"docProps/core.xml", coreXML, doc},
		{"word/_rels/document.xml.rels", documentRelsXML, nil},
		{"word/styles.xml", stylesXML, doc},
		{"word/document.xml", documentXML, doc},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if err := p.tmpl.Execute(f, p.data); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing document: %w", err)
	}
	return nil
}

// Bytes returns rec rendered in memory.
func (e *Exporter) Bytes(rec *types.BriefRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders rec into dir, creating dir if needed, and returns the
// path of the new file.
func (e *Exporter) WriteFile(dir string, rec *types.BriefRecord) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := e.Bytes(rec)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(rec, e.stamp(rec)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Info("brief exported", "path", path, "bytes", len(data))
	return path, nil
}

func (e *Exporter) stamp(rec *types.BriefRecord) time.Time {
	if rec.GeneratedAt.IsZero() {
		return e.now()
	}
	return rec.GeneratedAt
}

// FileName returns <Client_Name>_<Topic>_<YYYYMMDD_HHMMSS>.docx with the
// topic part cut to 30 characters.
func FileName(rec *types.BriefRecord, at time.Time) string {
	client := fileSafe(rec.ClientName)
	if client == "" {
		client = "Client"
	}
	topic := []rune(fileSafe(rec.Topic))
	if len(topic) > 30 {
		topic = topic[:30]
	}
	if len(topic) == 0 {
		topic = []rune("Topic")
	}
	return fmt.Sprintf("%s_%s_%s.docx", client, string(topic), at.Format("20060102_150405"))
}

var fileReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

func fileSafe(s string) string {
	return fileReplacer.Replace(strings.TrimSpace(s))
}

// --- document model ---

type run struct {
	Text  string
	Bold  bool
	Size  int // half-points
	Color string
}

// para is one paragraph. A nil Run is an empty paragraph.
type para struct {
	Center bool
	Run    *run
}

type cell struct {
	Width int
	Fill  string
	Paras []para
}

type table struct {
	Grid []int
	Rows [][]cell
}

type docModel struct {
	Font     string
	BodySize int // half-points
	Title    string
	Tables   []table
}

func (e *Exporter) model(rec *types.BriefRecord) docModel {
	o := e.opts
	title := fmt.Sprintf("%s - %s - Content Brief", rec.ClientName, rec.Topic)

	doc := docModel{Font: o.FontName, BodySize: o.BodySize * 2, Title: title}

	doc.Tables = append(doc.Tables, table{
		Grid: []int{fullWidth},
		Rows: [][]cell{{{
			Width: fullWidth,
			Fill:  colorHeaderFill,
			Paras: []para{{Center: true, Run: &run{Text: title, Bold: true, Size: titleSize * 2, Color: colorWhite}}},
		}}},
	})

	info := []struct{ label, value string }{
		{"Site:", rec.Site},
		{"Primary Keyword:", rec.PrimaryKW},
		{"Secondary Keywords:", rec.SecondaryKW},
		{"Date Generated:", e.stamp(rec).Format("02 January 2006")},
	}
	infoTable := table{Grid: []int{labelWidth, valueWidth}}
	for _, row := range info {
		infoTable.Rows = append(infoTable.Rows, []cell{
			{Width: labelWidth, Fill: colorContentFill, Paras: []para{{Run: &run{Text: row.label, Bold: true, Size: o.BodySize * 2}}}},
			{Width: valueWidth, Paras: []para{{Run: &run{Text: row.value, Size: o.BodySize * 2}}}},
		})
	}
	doc.Tables = append(doc.Tables, infoTable)

	for i, key := range types.SectionOrder {
		heading := fmt.Sprintf("%d. %s", i+1, key.Title())
		doc.Tables = append(doc.Tables, table{
			Grid: []int{fullWidth},
			Rows: [][]cell{
				{{Width: fullWidth, Fill: colorSectionFill, Paras: []para{{Run: &run{Text: heading, Bold: true, Size: o.HeadingSize * 2, Color: colorWhite}}}}},
				{{Width: fullWidth, Fill: colorContentFill, Paras: contentParas(rec.Section(key), o.BodySize*2)}},
			},
		})
	}
	return doc
}

// contentParas splits text into one paragraph per line. Blank lines stay
// as empty paragraphs.
func contentParas(text string, size int) []para {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]para, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, para{})
			continue
		}
		out = append(out, para{Run: &run{Text: line, Size: size, Color: colorBlack}})
	}
	return out
}
