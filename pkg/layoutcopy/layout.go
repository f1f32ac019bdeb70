package layoutcopy

import (
	"errors"
	"fmt"
	"strings"
)

// SectionMapping selects how target sections pick their source section
type SectionMapping int

const (
	// Broadcast applies source section 1 to every target section
	Broadcast SectionMapping = iota
	// MapByIndex applies source section i to target section i. A target
	// section beyond the source's count falls back to source section 1 —
	// the first section, not the last, carries forward.
	MapByIndex
)

func (m SectionMapping) String() string {
	if m == MapByIndex {
		return "index"
	}
	return "broadcast"
}

// ParseSectionMapping parses a section mapping mode name
func ParseSectionMapping(s string) (SectionMapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "index", "indexmapped", "index-mapped":
		return MapByIndex, nil
	case "broadcast", "":
		return Broadcast, nil
	default:
		return Broadcast, errors.New("invalid section mapping: " + s)
	}
}

// SectionReport records the per-field outcomes for one target section
type SectionReport struct {
	TargetIndex    int // 1-based
	SourceIndex    int // 1-based
	PageSetup      *Report
	Borders        *Report
	HeadersFooters *Report
}

// LayoutReport summarizes a layout transfer across all target sections
type LayoutReport struct {
	Sections []SectionReport
}

// FailedCount returns the total number of failed outcomes across sections
func (r *LayoutReport) FailedCount() int {
	n := 0
	for _, s := range r.Sections {
		n += s.PageSetup.FailedCount() + s.Borders.FailedCount() + s.HeadersFooters.FailedCount()
	}
	return n
}

// copyLayout makes every section of the working document visually match its
// mapped source section: page setup, basic borders, then headers and
// footers. The three sub-copies are independent; a failure in one never
// blocks the others or the remaining sections.
func copyLayout(src, work Document, mapping SectionMapping, progress ProgressFunc, log *Logger) (*LayoutReport, error) {
	srcSections, err := src.Sections()
	if err != nil {
		return nil, NewHostError("enumerate source sections", err)
	}
	if len(srcSections) == 0 {
		return nil, NewHostError("enumerate source sections", errors.New("source document has no sections"))
	}

	workSections, err := work.Sections()
	if err != nil {
		return nil, NewHostError("enumerate output sections", err)
	}

	report := &LayoutReport{}
	for i, dst := range workSections {
		targetIdx := i + 1
		sourceIdx := 1
		if mapping == MapByIndex && targetIdx <= len(srcSections) {
			sourceIdx = targetIdx
		}

		progress(fmt.Sprintf("applying source section %d to output section %d", sourceIdx, targetIdx))
		sr := copySection(srcSections[sourceIdx-1], dst, log)
		sr.TargetIndex = targetIdx
		sr.SourceIndex = sourceIdx
		report.Sections = append(report.Sections, sr)
	}

	return report, nil
}

func copySection(src, dst Section, log *Logger) SectionReport {
	sr := SectionReport{
		PageSetup:      NewReport(),
		Borders:        NewReport(),
		HeadersFooters: NewReport(),
	}

	if ps, err := src.PageSetup(); err != nil {
		sr.PageSetup.Failed("pageSetup", err)
	} else {
		sr.PageSetup = dst.ApplyPageSetup(ps)
	}

	if b, err := src.Borders(); err != nil {
		sr.Borders.Failed("borders", err)
	} else {
		sr.Borders = dst.ApplyBorders(b)
	}

	for _, kind := range []HeaderFooterKind{HeaderKind, FooterKind} {
		for _, slot := range []HeaderFooterSlot{SlotPrimary, SlotFirstPage, SlotEvenPages} {
			sr.HeadersFooters.Merge(copyHeaderFooter(src, dst, kind, slot))
		}
	}

	for _, f := range sr.HeadersFooters.Failures() {
		log.Debug("header/footer copy %s failed: %v", f.Name, f.Err)
	}

	return sr
}

// copyHeaderFooter copies one header or footer slot: clear the destination,
// break its link to the previous section, then copy with rich formatting,
// falling back to plain text when the rich copy is unsupported.
func copyHeaderFooter(srcSec, dstSec Section, kind HeaderFooterKind, slot HeaderFooterSlot) *Report {
	report := NewReport()
	name := fmt.Sprintf("%s/%s", kind, slot)

	src, err := srcSec.HeaderFooter(kind, slot)
	if err != nil {
		report.Failed(name, err)
		return report
	}
	dst, err := dstSec.HeaderFooter(kind, slot)
	if err != nil {
		report.Failed(name, err)
		return report
	}

	if err := dst.Clear(); err != nil {
		report.Failed(name, err)
		return report
	}

	// Unlink failures are tolerated; a slot that was never linked has
	// nothing to unlink.
	_ = dst.UnlinkFromPrevious()

	if err := dst.CopyFormattedFrom(src); err != nil {
		if err := dst.CopyTextFrom(src); err != nil {
			report.Failed(name, err)
			return report
		}
	}

	report.Applied(name)
	return report
}
