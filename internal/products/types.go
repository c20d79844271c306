package products

// source_type recorded on every scraped product document
const SourceTypeProductPage = "product_page"

// one product record as emitted by the scraper
type RawProduct struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Ingredients string `json:"ingredients"`
	HowToUse    string `json:"how_to_use"`
	URL         string `json:"url"`
}

// normalized, indexable form of a product page
type Document struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

type Metadata struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Price      string `json:"price,omitempty"`
	SourceType string `json:"source_type"`
}
