package layoutcopy

import (
	"fmt"
	"os"
)

// fakeHost implements Host for tests. Documents are registered per path;
// SaveAs snapshots the document under the new path and writes its raw
// payload to disk, so the structural patch can run against real files.
type fakeHost struct {
	docs map[string]*fakeDocument

	styleCopyErr      map[string]error // style name -> forced error
	styleCopyCalls    int
	templateCopyCalls int
	// templateCopyPath records the snapshot path seen by the last
	// CopyStylesFromTemplate call, and whether the file existed then
	templateCopyPath   string
	templateCopyExists bool

	openErr    map[string]error
	released   bool
	releaseErr error
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		docs:         make(map[string]*fakeDocument),
		styleCopyErr: make(map[string]error),
		openErr:      make(map[string]error),
	}
}

func (h *fakeHost) register(path string, doc *fakeDocument) *fakeDocument {
	doc.host = h
	doc.path = path
	h.docs[path] = doc
	return doc
}

func (h *fakeHost) Open(path string, readOnly bool) (Document, error) {
	if err := h.openErr[path]; err != nil {
		return nil, err
	}
	doc, ok := h.docs[path]
	if !ok {
		return nil, fmt.Errorf("no such document: %s", path)
	}
	if payload, err := os.ReadFile(path); err == nil {
		doc.payload = payload
	}
	doc.closed = false
	return doc, nil
}

func (h *fakeHost) CopyStyleByName(sourcePath, destPath, name string) error {
	h.styleCopyCalls++
	if err := h.styleCopyErr[name]; err != nil {
		return err
	}
	if dst, ok := h.docs[destPath]; ok && !containsString(dst.styles, name) {
		dst.styles = append(dst.styles, name)
	}
	return nil
}

func (h *fakeHost) Release() error {
	h.released = true
	return h.releaseErr
}

type fakeDocument struct {
	host     *fakeHost
	path     string
	styles   []string
	sections []*fakeSection
	payload  []byte

	closed            bool
	saveErr           error
	saveAsErr         error
	saveAsTemplateErr error
	copyTemplateErr   error
	stylesErr         error
	sectionsErr       error
}

func (d *fakeDocument) Path() string { return d.path }

func (d *fakeDocument) Save() error {
	if d.saveErr != nil {
		return d.saveErr
	}
	if d.payload != nil {
		return os.WriteFile(d.path, d.payload, 0o644)
	}
	return nil
}

func (d *fakeDocument) SaveAs(path string) error {
	if d.saveAsErr != nil {
		return d.saveAsErr
	}
	d.host.register(path, d.clone())
	return os.WriteFile(path, d.payload, 0o644)
}

func (d *fakeDocument) SaveAsTemplate(path string) error {
	if d.saveAsTemplateErr != nil {
		return d.saveAsTemplateErr
	}
	return os.WriteFile(path, []byte("template snapshot"), 0o644)
}

func (d *fakeDocument) CopyStylesFromTemplate(templatePath string) error {
	d.host.templateCopyCalls++
	d.host.templateCopyPath = templatePath
	_, err := os.Stat(templatePath)
	d.host.templateCopyExists = err == nil
	return d.copyTemplateErr
}

func (d *fakeDocument) StyleNames() ([]string, error) {
	return d.styles, d.stylesErr
}

func (d *fakeDocument) Sections() ([]Section, error) {
	if d.sectionsErr != nil {
		return nil, d.sectionsErr
	}
	sections := make([]Section, len(d.sections))
	for i, s := range d.sections {
		sections[i] = s
	}
	return sections, nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

func (d *fakeDocument) clone() *fakeDocument {
	c := &fakeDocument{
		styles:            append([]string(nil), d.styles...),
		payload:           append([]byte(nil), d.payload...),
		saveErr:           d.saveErr,
		saveAsTemplateErr: d.saveAsTemplateErr,
		copyTemplateErr:   d.copyTemplateErr,
	}
	for _, s := range d.sections {
		c.sections = append(c.sections, s.clone())
	}
	return c
}

var pageSetupFieldNames = []string{
	"topMargin", "bottomMargin", "leftMargin", "rightMargin", "gutter",
	"headerDistance", "footerDistance", "pageWidth", "pageHeight",
	"orientation", "differentFirstPageHeaderFooter",
	"oddAndEvenPagesHeaderFooter", "mirrorMargins", "twoPagesOnOne",
}

type fakeSection struct {
	pageSetup PageSetup
	borders   Borders
	headers   map[HeaderFooterSlot]*fakeHeaderFooter
	footers   map[HeaderFooterSlot]*fakeHeaderFooter

	pageSetupErr    error // reading
	applyErr        error // forced apply failure
	unsupported     map[string]bool
	bordersErr      error
	headerFooterErr error
}

func newFakeSection() *fakeSection {
	s := &fakeSection{
		headers:     make(map[HeaderFooterSlot]*fakeHeaderFooter),
		footers:     make(map[HeaderFooterSlot]*fakeHeaderFooter),
		unsupported: make(map[string]bool),
	}
	for _, slot := range []HeaderFooterSlot{SlotPrimary, SlotFirstPage, SlotEvenPages} {
		s.headers[slot] = &fakeHeaderFooter{linked: true}
		s.footers[slot] = &fakeHeaderFooter{linked: true}
	}
	return s
}

func (s *fakeSection) PageSetup() (PageSetup, error) {
	return s.pageSetup, s.pageSetupErr
}

func (s *fakeSection) ApplyPageSetup(ps PageSetup) *Report {
	report := NewReport()
	if s.applyErr != nil {
		report.Failed("pageSetup", s.applyErr)
		return report
	}
	old := s.pageSetup
	s.pageSetup = ps
	for _, name := range pageSetupFieldNames {
		if s.unsupported[name] {
			report.Skipped(name)
			// unsupported fields keep their old value
			switch name {
			case "mirrorMargins":
				s.pageSetup.MirrorMargins = old.MirrorMargins
			case "twoPagesOnOne":
				s.pageSetup.TwoPagesOnOne = old.TwoPagesOnOne
			}
			continue
		}
		report.Applied(name)
	}
	return report
}

func (s *fakeSection) Borders() (Borders, error) {
	return s.borders, s.bordersErr
}

func (s *fakeSection) ApplyBorders(b Borders) *Report {
	report := NewReport()
	if s.applyErr != nil {
		report.Failed("borders", s.applyErr)
		return report
	}
	s.borders = b
	for _, name := range []string{"enabled", "distanceFrom", "surroundHeader",
		"surroundFooter", "joinBorders", "alwaysInFront", "artStyle", "artWidth"} {
		report.Applied(name)
	}
	for name, side := range map[string]*LineBorder{
		"top": b.Top, "left": b.Left, "bottom": b.Bottom, "right": b.Right,
	} {
		if side == nil {
			report.Skipped(name)
			continue
		}
		report.Applied(name)
	}
	return report
}

func (s *fakeSection) HeaderFooter(kind HeaderFooterKind, slot HeaderFooterSlot) (HeaderFooter, error) {
	if s.headerFooterErr != nil {
		return nil, s.headerFooterErr
	}
	if kind == HeaderKind {
		return s.headers[slot], nil
	}
	return s.footers[slot], nil
}

func (s *fakeSection) clone() *fakeSection {
	c := newFakeSection()
	c.pageSetup = s.pageSetup
	c.borders = s.borders
	c.pageSetupErr = s.pageSetupErr
	c.applyErr = s.applyErr
	for k, v := range s.unsupported {
		c.unsupported[k] = v
	}
	for slot, hf := range s.headers {
		copied := *hf
		c.headers[slot] = &copied
	}
	for slot, hf := range s.footers {
		copied := *hf
		c.footers[slot] = &copied
	}
	return c
}

type fakeHeaderFooter struct {
	text      string
	formatted string
	linked    bool

	unlinkErr error
	clearErr  error
	richErr   error
	textErr   error
}

func (f *fakeHeaderFooter) UnlinkFromPrevious() error {
	if f.unlinkErr != nil {
		return f.unlinkErr
	}
	f.linked = false
	return nil
}

func (f *fakeHeaderFooter) Clear() error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.text = ""
	f.formatted = ""
	return nil
}

func (f *fakeHeaderFooter) CopyFormattedFrom(src HeaderFooter) error {
	if f.richErr != nil {
		return f.richErr
	}
	s := src.(*fakeHeaderFooter)
	f.text = s.text
	f.formatted = s.formatted
	return nil
}

func (f *fakeHeaderFooter) CopyTextFrom(src HeaderFooter) error {
	if f.textErr != nil {
		return f.textErr
	}
	f.text = src.(*fakeHeaderFooter).text
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
