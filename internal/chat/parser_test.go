package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNonJSONFallsBack(t *testing.T) {
	resp := Parse("Try our Sleep Oil.")

	assert.Equal(t, Response{Message: "Try our Sleep Oil.", Products: []Product{}}, resp)
}

func TestParseStructured(t *testing.T) {
	raw := `{"message": "Our Sleep Oil helps.", "products": [` +
		`{"url": "https://x/sleep-oil", "title": "Sleep Oil", "price": "₱1,200"},` +
		`{"url": "https://x/tea", "title": "Tea", "price": 450}` +
		`]}`

	resp := Parse(raw)

	assert.Equal(t, "Our Sleep Oil helps.", resp.Message)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, Product{URL: "https://x/sleep-oil", Title: "Sleep Oil", Price: "₱1,200"}, resp.Products[0])
	assert.Equal(t, "450", resp.Products[1].Price)
}

func TestParseDropsMalformedProducts(t *testing.T) {
	raw := `{"message": "hi", "products": [{"title": "no url"}, "not an object", 7, {"url": "https://x/ok"}]}`

	resp, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "https://x/ok", resp.Products[0].URL)
}

func TestParseKeepsMessageWhenProductsIsNotAnArray(t *testing.T) {
	tests := []struct {
		name     string
		products string
	}{
		{name: "object", products: `{"url": "https://x/sleep-oil", "title": "Sleep Oil"}`},
		{name: "string", products: `"https://x/sleep-oil"`},
		{name: "number", products: `3`},
		{name: "null", products: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Parse(`{"message": "Try our Sleep Oil.", "products": ` + tt.products + `}`)

			assert.Equal(t, "Try our Sleep Oil.", resp.Message)
			assert.NotNil(t, resp.Products)
			assert.Empty(t, resp.Products)
		})
	}

	_, outcome := parse(`{"message": "Try our Sleep Oil.", "products": {"url": "https://x/sleep-oil"}}`)
	assert.Equal(t, outcomeStructured, outcome)
}

func TestParseStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"message\": \"fenced\", \"products\": []}\n```"

	resp, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "fenced", resp.Message)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose", "Try our Sleep Oil."},
		{"array", `[{"message": "x"}]`},
		{"truncated", `{"message": "x", "products": [`},
		{"missing message", `{"products": []}`},
		{"blank message", `{"message": "   "}`},
		{"message wrong type", `{"message": 5}`},
		{"trailing object", `{"message": "a"} {"message": "b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrResponseParse)
		})
	}
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"{",
		"}{",
		"null",
		`{"message": null}`,
		`{"message": "ok", "products": {"url": "x"}}`,
		"```",
		"``````",
		"\x00\xff garbage",
	}

	for _, raw := range inputs {
		resp := Parse(raw)
		assert.NotNil(t, resp.Products, "input %q", raw)
	}
}
