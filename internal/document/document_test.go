package document

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Skills</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Python, AWS &amp; Docker</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Go</w:t></w:r><w:r><w:tab/><w:t>Kubernetes</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		data []byte
		want Kind
	}{
		{name: "pdf magic", file: "cv.bin", data: []byte("%PDF-1.7\n..."), want: KindPDF},
		{name: "pdf extension", file: "CV.PDF", data: []byte{0xff, 0x00}, want: KindPDF},
		{name: "docx", file: "cv.docx", data: []byte("PK\x03\x04rest"), want: KindDOCX},
		{name: "zip with other extension", file: "cv.xlsx", data: []byte("PK\x03\x04rest"), want: KindUnknown},
		{name: "text", file: "cv.txt", data: []byte("Skills\nGo"), want: KindText},
		{name: "binary", file: "cv.png", data: []byte{0x89, 'P', 'N', 'G', 0x00}, want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Detect(tt.file, tt.data))
		})
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	text, err := Extract("cv.txt", []byte("Skills\nGo, SQL"))
	require.NoError(t, err)
	assert.Equal(t, "Skills\nGo, SQL", text)
}

func TestExtractEmpty(t *testing.T) {
	t.Parallel()

	_, err := Extract("cv.txt", []byte("  \n\t "))
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestExtractUnsupported(t *testing.T) {
	t.Parallel()

	_, err := Extract("cv.png", []byte{0x89, 'P', 'N', 'G', 0x00})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractDOCX(t *testing.T) {
	t.Parallel()

	data := buildDocx(t, map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": relsXML,
	})

	text, err := Extract("cv.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Skills\nPython, AWS & Docker\nGo\tKubernetes", text)
}

func TestExtractDOCXMissingBody(t *testing.T) {
	t.Parallel()

	data := buildDocx(t, map[string]string{"word/styles.xml": "<w:styles/>"})

	_, err := Extract("cv.docx", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read docx")
}

func TestExtractMalformedPDF(t *testing.T) {
	t.Parallel()

	_, err := Extract("cv.pdf", []byte("%PDF-1.4\nthis is not a real pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read pdf")
}

func TestExtractFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Experience\nEngineer 2019 - 2021"), 0o600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Engineer")

	_, err = ExtractFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestXMLToText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb", xmlToText(`<w:p><w:r><w:t>a</w:t></w:r><w:br/><w:r><w:t>b</w:t></w:r></w:p>`))
	assert.Equal(t, `"quoted" <tag>`, xmlToText(`<w:t>&quot;quoted&quot; &lt;tag&gt;</w:t>`))
}
