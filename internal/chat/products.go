package chat

import (
	"strings"

	"github.com/sushrutsadana/SalesChatAgent/internal/retriever"
)

// picks the products to return: parsed ones when present, retrieved ones otherwise.
// deduped by url in first-seen order and capped at limit.
func selectProducts(parsed []Product, nodes []retriever.Node, defaultTitle string, limit int) []Product {
	candidates := parsed

	if len(candidates) == 0 {
		candidates = make([]Product, 0, len(nodes))

		for _, node := range nodes {
			meta := node.Document.Metadata
			candidates = append(candidates, Product{
				URL:   meta.URL,
				Title: meta.Title,
				Price: meta.Price,
			})
		}
	}

	return dedupeProducts(candidates, defaultTitle, limit)
}

// a non-positive limit disables the cap
func dedupeProducts(candidates []Product, defaultTitle string, limit int) []Product {
	out := make([]Product, 0, len(candidates))
	seen := make(map[string]bool) // dedupe by product url

	for _, p := range candidates {
		if limit > 0 && len(out) >= limit {
			break
		}

		url := strings.TrimSpace(p.URL)
		if url == "" || seen[url] {
			continue
		}

		seen[url] = true

		if strings.TrimSpace(p.Title) == "" {
			p.Title = defaultTitle
		}

		p.URL = url
		out = append(out, p)
	}

	return out
}
