package collaborator

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Hadi891/CareerCompass/internal/domain"
)

var urlPattern = regexp.MustCompile(`https?://[^\s)>\]"']+`)

// PDFExtractor pulls plain text and embedded hyperlinks out of PDF
// documents.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Extract(path string) (*domain.Extraction, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	raw, err := io.ReadAll(textReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document contains no extractable text", domain.ErrExtractionFailed)
	}

	return &domain.Extraction{
		Text:  text,
		Links: extractLinks(reader, text),
	}, nil
}

// extractLinks collects hyperlinks from page annotations and from URLs
// appearing literally in the text, deduplicated in encounter order.
func extractLinks(reader *pdf.Reader, text string) []string {
	seen := map[string]bool{}
	var links []string
	add := func(u string) {
		u = strings.TrimRight(u, ".,;")
		if u != "" && !seen[u] {
			seen[u] = true
			links = append(links, u)
		}
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		annots := page.V.Key("Annots")
		for j := 0; j < annots.Len(); j++ {
			uri := annots.Index(j).Key("A").Key("URI")
			if uri.Kind() == pdf.String {
				add(uri.RawString())
			}
		}
	}
	for _, u := range urlPattern.FindAllString(text, -1) {
		add(u)
	}
	return links
}
