package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadText reads resume content from path. PDF files are extracted to plain
// text, everything else is read verbatim. This is the only fatal failure
// point of profile construction: an unreadable source aborts the session.
func LoadText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading resume %q: %w", path, err)
	}
	return string(data), nil
}

func loadPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening resume pdf %q: %w", path, err)
	}
	defer file.Close()

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not abort the whole resume.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	content := strings.TrimSpace(builder.String())
	if content == "" {
		return "", fmt.Errorf("resume pdf %q contains no extractable text", path)
	}
	return content, nil
}
