package retriever

import (
	"github.com/sushrutsadana/SalesChatAgent/internal/index"
)

const defaultTopK = 3

// orders hits, truncates to topK and assigns ranks
func rankHits(hits []index.Hit, topK int) []Node {
	index.SortHits(hits)

	if topK < len(hits) {
		hits = hits[:topK]
	}

	nodes := make([]Node, len(hits))
	for i, hit := range hits {
		nodes[i] = Node{
			Document: hit.Document,
			Score:    hit.Score,
			Rank:     i + 1,
		}
	}

	return nodes
}
