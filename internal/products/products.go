package products

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// section headers, in the order they appear in Document.Text
const (
	headerTitle       = "PRODUCT TITLE:"
	headerPrice       = "PRICE:"
	headerDescription = "DESCRIPTION:"
	headerIngredients = "INGREDIENTS:"
	headerHowToUse    = "HOW TO USE:"
)

// converts a scraped record into a document.
// every section header is always written, with an empty body when the field is missing.
func BuildDocument(raw RawProduct, defaultTitle string) Document {
	title := strings.TrimSpace(raw.Title)
	price := strings.TrimSpace(raw.Price)
	url := strings.TrimSpace(raw.URL)

	var sb strings.Builder

	writeSection(&sb, headerTitle, title)
	writeSection(&sb, headerPrice, price)
	writeSection(&sb, headerDescription, strings.TrimSpace(raw.Description))
	writeSection(&sb, headerIngredients, strings.TrimSpace(raw.Ingredients))
	writeSection(&sb, headerHowToUse, strings.TrimSpace(raw.HowToUse))

	text := strings.TrimRight(sb.String(), "\n")

	metaTitle := title
	if metaTitle == "" {
		metaTitle = defaultTitle
	}

	return Document{
		ID:   documentID(url, text),
		Text: text,
		Metadata: Metadata{
			URL:        url,
			Title:      metaTitle,
			Price:      price,
			SourceType: SourceTypeProductPage,
		},
	}
}

// builds documents for every record, preserving input order
func BuildDocuments(raws []RawProduct, defaultTitle string) []Document {
	docs := make([]Document, 0, len(raws))

	for _, raw := range raws {
		docs = append(docs, BuildDocument(raw, defaultTitle))
	}

	return docs
}

// reads a scraper output file: a JSON array of product records
func LoadFile(path string) ([]RawProduct, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}

	var raws []RawProduct
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse products file %s: %w", path, err)
	}

	return raws, nil
}

func writeSection(sb *strings.Builder, header, body string) {
	sb.WriteString(header)

	if body != "" {
		sb.WriteString(" ")
		sb.WriteString(body)
	}

	sb.WriteString("\n\n")
}

// ids are stable across rebuilds: derived from the url, or from the text when there is none
func documentID(url, text string) string {
	if url != "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(text)).String()
}
