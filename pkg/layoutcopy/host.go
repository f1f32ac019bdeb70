package layoutcopy

import (
	"errors"
	"fmt"
)

// Host is the narrow surface of the external document-editing application
// the transfer pipeline drives. A Host instance owns a single live editing
// process and is not safe for concurrent pipeline runs; callers must
// serialize runs against one Host or provision one Host per run.
//
// The real binding (e.g. Word through COM automation) is platform specific
// and supplied by the embedding application. Everything in this package is
// written against the interface so orchestrators and the pipeline can be
// tested with an in-memory fake.
type Host interface {
	// Open opens the document at path and returns a handle to it
	Open(path string, readOnly bool) (Document, error)

	// CopyStyleByName performs an organizer-style copy of the named style
	// from the document at sourcePath into the document at destPath,
	// creating it or overwriting an existing style of the same name.
	CopyStyleByName(sourcePath, destPath, name string) error

	// Release quits the host process. It must always be called, even after
	// earlier failures, so no live editing process is leaked.
	Release() error
}

// Document is an open host document handle
type Document interface {
	// Path returns the on-disk path the document was opened from
	Path() string

	// Save writes the document back to its own path
	Save() error

	// SaveAs writes the document to path. Implementations try an ordered
	// ladder of save mechanisms and return an error only once every
	// mechanism has failed.
	SaveAs(path string) error

	// SaveAsTemplate writes the document to path as a style template
	SaveAsTemplate(path string) error

	// CopyStylesFromTemplate copies every style from the template at path
	// into this document
	CopyStylesFromTemplate(templatePath string) error

	// StyleNames lists the display names of the document's styles. A style
	// whose name the host cannot determine appears as an empty string.
	StyleNames() ([]string, error)

	// Sections returns the document's sections in order
	Sections() ([]Section, error)

	// Close closes the handle without saving. Closing an already closed
	// document is a no-op.
	Close() error
}

// Section is one region of a document with its own page setup, borders and
// header/footer configuration.
type Section interface {
	// PageSetup reads the section's page setup
	PageSetup() (PageSetup, error)

	// ApplyPageSetup copies ps onto the section field by field. Fields the
	// host does not support are reported as skipped, not failed; a partial
	// apply is not an error.
	ApplyPageSetup(ps PageSetup) *Report

	// Borders reads the section's basic line borders
	Borders() (Borders, error)

	// ApplyBorders copies b onto the section, flag by flag and side by
	// side, reporting per-field outcomes.
	ApplyBorders(b Borders) *Report

	// HeaderFooter returns the given header or footer slot
	HeaderFooter(kind HeaderFooterKind, slot HeaderFooterSlot) (HeaderFooter, error)
}

// HeaderFooter is one header or footer slot of a section
type HeaderFooter interface {
	// UnlinkFromPrevious breaks the "same as previous section" link
	UnlinkFromPrevious() error

	// Clear deletes the slot's existing content
	Clear() error

	// CopyFormattedFrom copies src's content with rich formatting
	CopyFormattedFrom(src HeaderFooter) error

	// CopyTextFrom copies src's content as plain text. Used as the
	// fallback when a rich copy is unsupported.
	CopyTextFrom(src HeaderFooter) error
}

// HeaderFooterKind selects between the header and footer of a slot
type HeaderFooterKind int

const (
	HeaderKind HeaderFooterKind = iota
	FooterKind
)

func (k HeaderFooterKind) String() string {
	switch k {
	case HeaderKind:
		return "header"
	case FooterKind:
		return "footer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// HeaderFooterSlot identifies one of the three header/footer slots a
// section owns
type HeaderFooterSlot int

const (
	SlotPrimary HeaderFooterSlot = iota + 1
	SlotFirstPage
	SlotEvenPages
)

func (s HeaderFooterSlot) String() string {
	switch s {
	case SlotPrimary:
		return "primary"
	case SlotFirstPage:
		return "firstPage"
	case SlotEvenPages:
		return "evenPages"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Orientation is a page orientation
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// PageSetup is a section's page geometry, copied as a flat value set.
// Distances are in points.
type PageSetup struct {
	TopMargin      float64
	BottomMargin   float64
	LeftMargin     float64
	RightMargin    float64
	Gutter         float64
	HeaderDistance float64
	FooterDistance float64
	PageWidth      float64
	PageHeight     float64
	Orientation    Orientation

	DifferentFirstPageHeaderFooter bool
	OddAndEvenPagesHeaderFooter    bool
	MirrorMargins                  bool
	TwoPagesOnOne                  bool
}

// DistanceFrom says what border distances are measured from
type DistanceFrom int

const (
	DistanceFromText DistanceFrom = iota
	DistanceFromPageEdge
)

// LineBorder is one directional line border of a section
type LineBorder struct {
	Style int
	Width int
	Color uint32 // 0xRRGGBB

	DistanceFromTop    int
	DistanceFromBottom int
	DistanceFromLeft   int
	DistanceFromRight  int
}

// Borders is the coarse representation of a section's page borders. It is
// what the host object model can reproduce; decorative art patterns only
// round-trip through the structural patch (see PatchPageBorders).
type Borders struct {
	Enabled        bool
	DistanceFrom   DistanceFrom
	SurroundHeader bool
	SurroundFooter bool
	JoinBorders    bool
	AlwaysInFront  bool

	ArtStyle int
	ArtWidth int

	Top    *LineBorder
	Left   *LineBorder
	Bottom *LineBorder
	Right  *LineBorder
}

// ErrHostUnavailable is returned by DefaultHost on platforms without a
// document automation host.
var ErrHostUnavailable = errors.New("no document automation host is available on this platform")

// DefaultHost returns the platform's document host. There is no in-process
// implementation; embedding applications supply one (a COM binding on
// Windows, a fake in tests) through Options.Host.
func DefaultHost(showUI bool) (Host, error) {
	_ = showUI
	return nil, ErrHostUnavailable
}
