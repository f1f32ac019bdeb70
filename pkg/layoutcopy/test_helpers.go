// test_helpers.go contains functions that are exposed only for testing purposes.
// These should not be used in production code.

package layoutcopy

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
)

// buildDocumentXML wraps body content in a minimal WordprocessingML document
func buildDocumentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`
}

// createPackageBytes builds a minimal packaged document in memory with the
// given body part and any extra parts
func createPackageBytes(documentXML string, extraParts map[string]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	write := func(name, content string) {
		f, _ := w.Create(name)
		io.WriteString(f, content)
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	write(bodyPartName, documentXML)

	for name, content := range extraParts {
		write(name, content)
	}

	w.Close()
	return buf.Bytes()
}

// writePackageFile writes a minimal packaged document to path
func writePackageFile(path, documentXML string, extraParts map[string]string) error {
	return os.WriteFile(path, createPackageBytes(documentXML, extraParts), 0o644)
}
