package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sushrutsadana/SalesChatAgent/internal/index"
	"github.com/sushrutsadana/SalesChatAgent/internal/llm"
	"github.com/sushrutsadana/SalesChatAgent/internal/logger"
	"github.com/sushrutsadana/SalesChatAgent/internal/prompt"
)

const (
	defaultMaxProducts  = 3
	defaultMaxHistory   = 50
	defaultModelTimeout = 60 * time.Second
	indexFlightKey      = "index"
)

func NewService(loader IndexLoader, ret Retriever, assembler *prompt.Assembler, generator llm.TextGenerator, opts Options) *Service {
	if opts.MaxProducts <= 0 {
		opts.MaxProducts = defaultMaxProducts
	}

	if opts.MaxHistory <= 0 {
		opts.MaxHistory = defaultMaxHistory
	}

	if opts.ModelTimeout <= 0 {
		opts.ModelTimeout = defaultModelTimeout
	}

	return &Service{
		loader:    loader,
		retriever: ret,
		assembler: assembler,
		generator: generator,
		opts:      opts,
	}
}

// handles one chat turn: validate, ensure the index, retrieve, prompt, generate, parse
func (s *Service) Chat(ctx context.Context, req Request) (*Response, error) {
	message, history, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	handle, err := s.ensureIndex(ctx)
	if err != nil {
		return nil, err
	}

	nodes, err := s.retriever.Query(ctx, handle, s.assembler.Query(history, message))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	contextTexts := make([]string, len(nodes))
	for i, node := range nodes {
		contextTexts[i] = node.Document.Text
	}

	assembled := s.assembler.Assemble(history, message, contextTexts)

	raw, latency, err := s.generate(ctx, assembled)
	if err != nil {
		return nil, err
	}

	parsed, outcome := parse(raw)
	parsed.Products = selectProducts(parsed.Products, nodes, s.opts.DefaultTitle, s.opts.MaxProducts)

	logger.FromContext(ctx).Info("chat turn completed",
		"history_len", len(history),
		"retrieved", len(nodes),
		"parse_outcome", string(outcome),
		"model_latency_ms", latency.Milliseconds(),
		"products", len(parsed.Products),
	)

	return &parsed, nil
}

// trims the message, drops empty history entries and keeps the newest MaxHistory turns
func (s *Service) validate(req Request) (string, []prompt.Turn, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", nil, &InputError{Reason: "message cannot be empty"}
	}

	history := make([]prompt.Turn, 0, len(req.History))

	for i, turn := range req.History {
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}

		role := strings.ToLower(strings.TrimSpace(turn.Role))
		if role != prompt.RoleUser && role != prompt.RoleAssistant {
			return "", nil, &InputError{Reason: fmt.Sprintf("history[%d]: role must be user or assistant", i)}
		}

		history = append(history, prompt.Turn{Role: role, Content: turn.Content})
	}

	if len(history) > s.opts.MaxHistory {
		history = history[len(history)-s.opts.MaxHistory:]
	}

	return message, history, nil
}

// no lock is held while the model call is in flight
func (s *Service) generate(ctx context.Context, assembled string) (string, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ModelTimeout)
	defer cancel()

	start := time.Now()

	resp, err := s.generator.GenerateText(ctx, llm.TextGenerationRequest{
		Messages: []llm.Message{{Role: prompt.RoleUser, Content: assembled}},
	})

	latency := time.Since(start)

	if err != nil {
		return "", latency, fmt.Errorf("%w: %w", ErrModelInvocation, err)
	}

	return resp.Text, latency, nil
}

// returns the cached handle, loading it once if needed.
// concurrent first requests share a single load.
func (s *Service) ensureIndex(ctx context.Context) (index.Handle, error) {
	if h := s.cached(); h != nil {
		return h, nil
	}

	v, err, _ := s.group.Do(indexFlightKey, func() (any, error) {
		if h := s.cached(); h != nil {
			return h, nil
		}

		h, err := s.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.handle = h
		s.mu.Unlock()

		return h, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(index.Handle), nil //nolint:forcetypeassert
}

func (s *Service) load(ctx context.Context) (index.Handle, error) {
	if s.loader == nil {
		return nil, fmt.Errorf("%w: no index store configured", ErrServiceUnavailable)
	}

	h, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	if h == nil {
		return nil, fmt.Errorf("%w: no product index has been built", ErrServiceUnavailable)
	}

	return h, nil
}

func (s *Service) cached() index.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.handle
}

// replaces the cached handle with a fresh load from the store.
// an empty store drops the cached handle; a failed load keeps it.
func (s *Service) Reload(ctx context.Context) (int, error) {
	v, err, _ := s.group.Do(indexFlightKey, func() (any, error) {
		if s.loader == nil {
			return nil, fmt.Errorf("%w: no index store configured", ErrServiceUnavailable)
		}

		// chat requests may join this flight
		h, err := s.loader.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}

		s.mu.Lock()
		s.handle = h
		s.mu.Unlock()

		if h == nil {
			return nil, fmt.Errorf("%w: no product index has been built", ErrServiceUnavailable)
		}

		return h, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(index.Handle).Len(), nil //nolint:forcetypeassert
}

// loads the index ahead of the first chat turn; returns the document count
func (s *Service) Warm(ctx context.Context) (int, error) {
	h, err := s.ensureIndex(ctx)
	if err != nil {
		return 0, err
	}

	return h.Len(), nil
}

// reports whether an index is cached and how many documents it holds
func (s *Service) Status() (bool, int) {
	h := s.cached()
	if h == nil {
		return false, 0
	}

	return true, h.Len()
}

func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return nil
	}

	err := s.handle.Close()
	s.handle = nil

	return err
}
