package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// wire shape expected from the model
type modelOutput struct {
	Message  *string         `json:"message"`
	Products json.RawMessage `json:"products"`
}

type modelProduct struct {
	URL   string          `json:"url"`
	Title string          `json:"title"`
	Price json.RawMessage `json:"price"`
}

// strictly decodes model output as {message, products}.
// malformed product entries are dropped rather than failing the decode.
func Decode(raw string) (Response, error) {
	body := stripCodeFence(strings.TrimSpace(raw))

	if !strings.HasPrefix(body, "{") {
		return Response{}, fmt.Errorf("%w: output is not a JSON object", ErrResponseParse)
	}

	var out modelOutput

	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&out); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrResponseParse, err)
	}

	if dec.More() {
		return Response{}, fmt.Errorf("%w: trailing data after JSON object", ErrResponseParse)
	}

	if out.Message == nil || strings.TrimSpace(*out.Message) == "" {
		return Response{}, fmt.Errorf("%w: message is missing", ErrResponseParse)
	}

	entries := productEntries(out.Products)
	products := make([]Product, 0, len(entries))

	for _, rawProduct := range entries {
		var p modelProduct
		if err := json.Unmarshal(rawProduct, &p); err != nil {
			continue
		}

		url := strings.TrimSpace(p.URL)
		if url == "" {
			continue
		}

		products = append(products, Product{
			URL:   url,
			Title: strings.TrimSpace(p.Title),
			Price: priceString(p.Price),
		})
	}

	return Response{
		Message:  strings.TrimSpace(*out.Message),
		Products: products,
	}, nil
}

// a products value that is not an array counts as no products
func productEntries(raw json.RawMessage) []json.RawMessage {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	return entries
}

// never fails: output that does not decode becomes the message verbatim
func Parse(raw string) Response {
	resp, _ := parse(raw)
	return resp
}

func parse(raw string) (Response, parseOutcome) {
	resp, err := Decode(raw)
	if err != nil {
		return Response{Message: strings.TrimSpace(raw), Products: []Product{}}, outcomeFallback
	}

	return resp, outcomeStructured
}

// removes a surrounding ``` or ```json fence
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}

	inner := s[3 : len(s)-3]

	if nl := strings.IndexByte(inner, '\n'); nl != -1 {
		lang := strings.TrimSpace(inner[:nl])
		if lang == "" || !strings.ContainsAny(lang, "{[\"") {
			inner = inner[nl+1:]
		}
	}

	return strings.TrimSpace(inner)
}

// accepts "₱1,200", 1200 or null
func priceString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}
