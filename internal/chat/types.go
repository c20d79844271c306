package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sushrutsadana/SalesChatAgent/internal/index"
	"github.com/sushrutsadana/SalesChatAgent/internal/llm"
	"github.com/sushrutsadana/SalesChatAgent/internal/prompt"
	"github.com/sushrutsadana/SalesChatAgent/internal/retriever"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrModelInvocation    = errors.New("model invocation failed")
	ErrResponseParse      = errors.New("response parse failed")
)

// client-caused failure; Reason is safe to show to the caller
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// loads the persisted index; (nil, nil) means there is nothing to load
type IndexLoader interface {
	Load(ctx context.Context) (index.Handle, error)
}

// interface for product retrieval
type Retriever interface {
	Query(ctx context.Context, handle index.Handle, text string) ([]retriever.Node, error)
}

// one chat turn from the client
type Request struct {
	Message string
	History []prompt.Turn
}

type Product struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Price string `json:"price,omitempty"`
}

// reply returned for every successful turn
type Response struct {
	Message  string    `json:"message"`
	Products []Product `json:"products"`
}

type Options struct {
	MaxProducts  int
	DefaultTitle string
	ModelTimeout time.Duration
	MaxHistory   int
}

// orchestrates retrieval-grounded chat turns over a lazily loaded index
type Service struct {
	loader    IndexLoader
	retriever Retriever
	assembler *prompt.Assembler
	generator llm.TextGenerator
	opts      Options

	mu     sync.RWMutex
	handle index.Handle
	group  singleflight.Group
}

// how the model output was interpreted
type parseOutcome string

const (
	outcomeStructured parseOutcome = "structured"
	outcomeFallback   parseOutcome = "fallback"
)
