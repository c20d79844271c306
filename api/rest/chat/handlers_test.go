package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatcore "github.com/sushrutsadana/SalesChatAgent/internal/chat"
	apierrors "github.com/sushrutsadana/SalesChatAgent/internal/errors"
	"github.com/sushrutsadana/SalesChatAgent/internal/index"
	"github.com/sushrutsadana/SalesChatAgent/internal/llm"
	"github.com/sushrutsadana/SalesChatAgent/internal/prompt"
	"github.com/sushrutsadana/SalesChatAgent/internal/retriever"
)

// implements Chatter for testing
type mockChatter struct {
	chatFunc func(ctx context.Context, req chatcore.Request) (*chatcore.Response, error)
	lastReq  chatcore.Request
}

func (m *mockChatter) Chat(ctx context.Context, req chatcore.Request) (*chatcore.Response, error) {
	m.lastReq = req
	return m.chatFunc(ctx, req)
}

func newRouter(svc Chatter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router, router.Group("/api/v1"), svc)

	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	return w
}

func TestHandlerSuccessOnBothRoutes(t *testing.T) {
	svc := &mockChatter{chatFunc: func(_ context.Context, _ chatcore.Request) (*chatcore.Response, error) {
		return &chatcore.Response{
			Message:  "Try our Sleep Oil.",
			Products: []chatcore.Product{{URL: "https://x/sleep-oil", Title: "Sleep Oil", Price: "₱1,200"}},
		}, nil
	}}

	router := newRouter(svc)

	for _, path := range []string{"/chat", "/api/v1/chat"} {
		w := post(router, path, `{"message":"What helps with sleep?","history":[{"role":"user","content":"hi"}]}`)
		require.Equal(t, http.StatusOK, w.Code, path)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "Try our Sleep Oil.", resp.Message)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "https://x/sleep-oil", resp.Products[0].URL)
	}

	assert.Equal(t, "What helps with sleep?", svc.lastReq.Message)
	require.Len(t, svc.lastReq.History, 1)
	assert.Equal(t, "user", svc.lastReq.History[0].Role)
}

func TestHandlerEmptyProductsIsArray(t *testing.T) {
	svc := &mockChatter{chatFunc: func(_ context.Context, _ chatcore.Request) (*chatcore.Response, error) {
		return &chatcore.Response{Message: "Hello!", Products: []chatcore.Product{}}, nil
	}}

	w := post(newRouter(svc), "/chat", `{"message":"hello"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello!","products":[]}`, w.Body.String())
}

func TestHandlerMalformedBody(t *testing.T) {
	svc := &mockChatter{chatFunc: func(_ context.Context, _ chatcore.Request) (*chatcore.Response, error) {
		t.Fatal("service should not be called")
		return nil, nil
	}}

	w := post(newRouter(svc), "/chat", `{"message":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.CodeValidationError, resp.Error)
}

func TestHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "input error",
			err:        &chatcore.InputError{Reason: "message cannot be empty"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeBadRequest,
			wantMsg:    "message cannot be empty",
		},
		{
			name:       "index missing",
			err:        fmt.Errorf("%w: no product index has been built", chatcore.ErrServiceUnavailable),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apierrors.CodeServiceUnavailable,
			wantMsg:    "product index is not ready",
		},
		{
			name:       "model failure",
			err:        fmt.Errorf("%w: %w", chatcore.ErrModelInvocation, errors.New("overloaded")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apierrors.CodeServerError,
			wantMsg:    "error processing chat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockChatter{chatFunc: func(_ context.Context, _ chatcore.Request) (*chatcore.Response, error) {
				return nil, tt.err
			}}

			w := post(newRouter(svc), "/api/v1/chat", `{"message":"x"}`)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp apierrors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

type unusedEmbedder struct{}

func (unusedEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("embedder should not be called")
}

type unusedGenerator struct{}

func (unusedGenerator) GenerateText(_ context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	return nil, errors.New("generator should not be called")
}

func (unusedGenerator) Model() string {
	return "unused"
}

func TestHandlerEmptySnapshotDirectory(t *testing.T) {
	svc := chatcore.NewService(
		index.NewSnapshotStore(t.TempDir()),
		retriever.NewClient(unusedEmbedder{}, 3),
		prompt.Default("Assistant"),
		unusedGenerator{},
		chatcore.Options{},
	)

	w := post(newRouter(svc), "/chat", `{"message":"What helps with sleep?"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, apierrors.CodeServiceUnavailable, resp.Error)
	assert.Equal(t, "product index is not ready", resp.Message)
}
