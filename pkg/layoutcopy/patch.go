package layoutcopy

import (
	"errors"

	"github.com/beevik/etree"
)

var errEmptyBody = errors.New("body part has no root element")

// wordMLNamespace is the WordprocessingML main namespace. Elements are
// matched by namespace URI plus local name, never by prefix.
const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Schema order of the section-properties container around pgBorders:
// the fragment sits after any member of the first group present and before
// any member of the second.
var (
	pgBordersAfterTags  = []string{"type", "pgSz", "pgMar", "paperSrc"}
	pgBordersBeforeTags = []string{"lnNumType", "pgNumType", "cols", "docGrid"}
)

// PatchPageBorders copies the page-borders fragment out of the packaged
// document at sourcePath and re-inserts it into every section-properties
// element of the package at targetPath, at its schema-valid position.
//
// The host object model cannot reproduce decorative art borders, so this
// operates on the raw archive: the target package is parsed, mutated in
// memory, and atomically rewritten. It returns false without touching the
// target when the source carries no fragment or the target has no
// section-properties elements. Archive and XML failures are fatal.
func PatchPageBorders(sourcePath, targetPath string) (bool, error) {
	frag, err := extractPageBorders(sourcePath)
	if err != nil {
		return false, err
	}
	if frag == nil {
		return false, nil
	}
	return applyPageBorders(targetPath, frag)
}

// extractPageBorders pulls the pgBorders fragment out of the source package.
// The last body-level section-properties element wins; the last
// paragraph-embedded one (mid-document section breaks) is the fallback.
// The trailing section governs the document's overall page-border intent,
// hence last, not first.
func extractPageBorders(path string) (*etree.Element, error) {
	doc, err := parseBodyPart(path, "source")
	if err != nil {
		return nil, err
	}

	bodyLevel, paraLevel := collectSectionProps(doc.Root())

	for i := len(bodyLevel) - 1; i >= 0; i-- {
		if pg := findWordChild(bodyLevel[i], "pgBorders"); pg != nil {
			return pg, nil
		}
	}
	for i := len(paraLevel) - 1; i >= 0; i-- {
		if pg := findWordChild(paraLevel[i], "pgBorders"); pg != nil {
			return pg, nil
		}
	}
	return nil, nil
}

// applyPageBorders inserts a copy of frag into every section-properties
// element of the package at path and rewrites the package.
func applyPageBorders(path string, frag *etree.Element) (bool, error) {
	doc, err := parseBodyPart(path, "target")
	if err != nil {
		return false, err
	}

	bodyLevel, paraLevel := collectSectionProps(doc.Root())
	if len(bodyLevel) == 0 && len(paraLevel) == 0 {
		return false, nil
	}

	for _, sectPr := range bodyLevel {
		insertPageBorders(sectPr, frag)
	}
	for _, sectPr := range paraLevel {
		insertPageBorders(sectPr, frag)
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return false, NewPatchError("serialize body part", path, err)
	}

	if err := rewritePackage(path, data); err != nil {
		return false, NewPatchError("rewrite package", path, err)
	}

	return true, nil
}

// insertPageBorders places a deep copy of frag inside sectPr at the
// schema-valid position: one past the last occurrence of any "after" group
// member, clamped to never exceed the first "before" group member. With
// neither group present the fragment lands at index 0. Any existing
// fragment is removed first, so repeated patching stays idempotent.
func insertPageBorders(sectPr, frag *etree.Element) {
	if existing := findWordChild(sectPr, "pgBorders"); existing != nil {
		sectPr.RemoveChild(existing)
	}

	children := sectPr.ChildElements()

	afterIdx := -1
	for i, ch := range children {
		if isAnyWordElement(ch, pgBordersAfterTags) {
			afterIdx = i
		}
	}

	beforeIdx := len(children)
	for i, ch := range children {
		if isAnyWordElement(ch, pgBordersBeforeTags) {
			beforeIdx = i
			break
		}
	}

	idx := afterIdx + 1
	if beforeIdx < idx {
		idx = beforeIdx
	}

	insertElementAt(sectPr, idx, frag.Copy())
}

// parseBodyPart reads the body XML part of the package at path into an
// element tree. role names the package in errors (source/target).
func parseBodyPart(path, role string) (*etree.Document, error) {
	pkg, err := OpenPackage(path)
	if err != nil {
		return nil, NewPatchError("read "+role+" package", path, err)
	}

	body, err := pkg.BodyXML()
	if err != nil {
		return nil, NewPatchError("read "+role+" body part", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, NewPatchError("parse "+role+" body part", path, err)
	}
	if doc.Root() == nil {
		return nil, NewPatchError("parse "+role+" body part", path, errEmptyBody)
	}

	return doc, nil
}

// collectSectionProps walks the tree in document order and gathers
// section-properties elements at both structural positions: direct children
// of the document body, and embedded in paragraph properties for
// mid-document section breaks (including paragraphs nested in tables).
func collectSectionProps(root *etree.Element) (bodyLevel, paraLevel []*etree.Element) {
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, ch := range e.ChildElements() {
			if isWordElement(ch, "sectPr") {
				switch {
				case isWordElement(e, "body"):
					bodyLevel = append(bodyLevel, ch)
				case isWordElement(e, "pPr") && isWordElement(parentElement(e), "p"):
					paraLevel = append(paraLevel, ch)
				}
				continue
			}
			walk(ch)
		}
	}
	walk(root)
	return bodyLevel, paraLevel
}

func isWordElement(e *etree.Element, local string) bool {
	return e != nil && e.Tag == local && e.NamespaceURI() == wordMLNamespace
}

func isAnyWordElement(e *etree.Element, locals []string) bool {
	for _, local := range locals {
		if isWordElement(e, local) {
			return true
		}
	}
	return false
}

func findWordChild(e *etree.Element, local string) *etree.Element {
	for _, ch := range e.ChildElements() {
		if isWordElement(ch, local) {
			return ch
		}
	}
	return nil
}

func parentElement(e *etree.Element) *etree.Element {
	if e == nil {
		return nil
	}
	return e.Parent()
}

// insertElementAt inserts child so it becomes the elemIdx-th child element
// of parent. elemIdx counts elements; the underlying token index may differ
// when text sits between elements.
func insertElementAt(parent *etree.Element, elemIdx int, child *etree.Element) {
	elems := parent.ChildElements()
	if elemIdx >= len(elems) {
		parent.AddChild(child)
		return
	}
	parent.InsertChildAt(elems[elemIdx].Index(), child)
}
