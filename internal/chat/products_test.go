package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushrutsadana/SalesChatAgent/internal/products"
	"github.com/sushrutsadana/SalesChatAgent/internal/retriever"
)

func node(url, title, price string) retriever.Node {
	return retriever.Node{Document: products.Document{
		Metadata: products.Metadata{URL: url, Title: title, Price: price},
	}}
}

func TestSelectProductsPrefersParsed(t *testing.T) {
	parsed := []Product{{URL: "https://x/parsed", Title: "Parsed"}}
	nodes := []retriever.Node{node("https://x/retrieved", "Retrieved", "")}

	out := selectProducts(parsed, nodes, "BOHECO Product", 3)

	assert.Equal(t, []Product{{URL: "https://x/parsed", Title: "Parsed"}}, out)
}

func TestSelectProductsFallsBackToRetrieval(t *testing.T) {
	nodes := []retriever.Node{
		node("https://x/a", "A", "₱100"),
		node("https://x/b", "", ""),
	}

	out := selectProducts(nil, nodes, "BOHECO Product", 3)

	assert.Equal(t, []Product{
		{URL: "https://x/a", Title: "A", Price: "₱100"},
		{URL: "https://x/b", Title: "BOHECO Product"},
	}, out)
}

func TestDedupeProducts(t *testing.T) {
	candidates := []Product{
		{URL: "https://x/a", Title: "first a"},
		{URL: "https://x/b", Title: "b"},
		{URL: "https://x/a", Title: "second a"},
		{URL: "", Title: "no url"},
		{URL: " https://x/b ", Title: "b again"},
		{URL: "https://x/c", Title: "c"},
		{URL: "https://x/d", Title: "d"},
	}

	out := dedupeProducts(candidates, "BOHECO Product", 3)

	assert.Equal(t, []Product{
		{URL: "https://x/a", Title: "first a"},
		{URL: "https://x/b", Title: "b"},
		{URL: "https://x/c", Title: "c"},
	}, out)
}

func TestDedupeProductsUniqueAndCapped(t *testing.T) {
	urls := []string{"a", "b", "a", "c", "b", "d", "a", "e"}

	for limit := 1; limit <= 6; limit++ {
		candidates := make([]Product, len(urls))
		for i, u := range urls {
			candidates[i] = Product{URL: u}
		}

		out := dedupeProducts(candidates, "t", limit)

		assert.LessOrEqual(t, len(out), limit)

		seen := make(map[string]bool)
		for _, p := range out {
			assert.False(t, seen[p.URL], "duplicate %s", p.URL)
			seen[p.URL] = true
		}

		want := []string{"a", "b", "c", "d", "e"}[:min(limit, 5)]
		got := make([]string, len(out))
		for i, p := range out {
			got[i] = p.URL
		}

		assert.Equal(t, want, got)
	}
}

func TestSelectProductsNeverNil(t *testing.T) {
	assert.NotNil(t, selectProducts(nil, nil, "t", 3))
}
