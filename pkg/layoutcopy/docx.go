package layoutcopy

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// bodyPartName is the archive entry holding the document body
const bodyPartName = "word/document.xml"

// PackageReader handles reading parts of a packaged (zip) document
type PackageReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewPackageReader creates a new package reader
func NewPackageReader(r io.ReaderAt, size int64) (*PackageReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	pr := &PackageReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		pr.Parts[file.Name] = file
	}

	// Check this is a valid packaged document by looking for the body part
	if _, ok := pr.Parts[bodyPartName]; !ok {
		return nil, fmt.Errorf("not a valid packaged document: missing %s", bodyPartName)
	}

	return pr, nil
}

// OpenPackage creates a PackageReader from a file path
func OpenPackage(path string) (*PackageReader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	reader := bytes.NewReader(content)
	return NewPackageReader(reader, int64(len(content)))
}

// Part retrieves the content of a specific part
func (pr *PackageReader) Part(name string) ([]byte, error) {
	file, ok := pr.Parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}

	return content, nil
}

// BodyXML retrieves the content of the document body part
func (pr *PackageReader) BodyXML() ([]byte, error) {
	return pr.Part(bodyPartName)
}

// PartNames returns a list of all part names in the package
func (pr *PackageReader) PartNames() []string {
	names := make([]string, 0, len(pr.Parts))
	for name := range pr.Parts {
		names = append(names, name)
	}
	return names
}

// rewritePackage rewrites the archive at path with the body part replaced by
// bodyXML. Every other entry is streamed through unchanged, in its original
// order. The new archive is written to a sibling temporary file which is
// renamed over the original, so the package is never observed half-written.
func rewritePackage(path string, bodyXML []byte) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read package: %w", err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return fmt.Errorf("failed to read package as zip: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".patch-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary package: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writePackage(tmp, zipReader, bodyXML); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary package: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace package: %w", err)
	}

	return nil
}

func writePackage(out io.Writer, zipReader *zip.Reader, bodyXML []byte) error {
	w := zip.NewWriter(out)

	for _, file := range zipReader.File {
		fw, err := w.Create(file.Name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file.Name, err)
		}

		if file.Name == bodyPartName {
			if _, err := fw.Write(bodyXML); err != nil {
				return fmt.Errorf("failed to write %s: %w", file.Name, err)
			}
			continue
		}

		fr, err := file.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", file.Name, err)
		}

		_, err = io.Copy(fw, fr)
		fr.Close()
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}

	return nil
}
