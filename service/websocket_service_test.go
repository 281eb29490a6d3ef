package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ocrlab/pdf-ocr-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsStubVision struct{}

func (wsStubVision) ExtractText(ctx context.Context, image []byte, pageNum int) (string, error) {
	return fmt.Sprintf("page %d", pageNum), nil
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(url, "http", "ws", 1)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func TestWebSocketProcessRun(t *testing.T) {
	registry := NewRegistryService()
	require.NoError(t, registry.Add("doc.pdf", []byte("pdf")))

	renderer := &fakeRenderer{pages: map[string]int{"pdf": 2}}
	writer := NewOutputService(filepath.Join(t.TempDir(), "md_docs"))
	extract := NewExtractService(renderer, wsStubVision{}, writer)
	wsService := NewWebSocketService(registry, extract)

	server := httptest.NewServer(http.HandlerFunc(wsService.HandleProcess))
	defer server.Close()

	conn := dialWS(t, server.URL)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(types.WebsocketRequest{Type: types.TypeWebsocketStart}))

	var sawProcessing, sawSummary bool
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && !sawSummary {
		var res types.WebSocketResponse
		require.NoError(t, conn.ReadJSON(&res))
		switch res.Type {
		case types.TypeWebsocketProcessing:
			sawProcessing = true
		case types.TypeWebsocketSummary:
			sawSummary = true
		case types.TypeWebsocketError:
			t.Fatalf("unexpected error event: %v", res.Payload)
		}
	}
	assert.True(t, sawProcessing, "expected at least one processing event")
	assert.True(t, sawSummary, "expected a final summary event")
}

func TestWebSocketPingPong(t *testing.T) {
	registry := NewRegistryService()
	extract := NewExtractService(&fakeRenderer{}, wsStubVision{},
		NewOutputService(t.TempDir()))
	wsService := NewWebSocketService(registry, extract)

	server := httptest.NewServer(http.HandlerFunc(wsService.HandleProcess))
	defer server.Close()

	conn := dialWS(t, server.URL)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(types.WebsocketRequest{Type: types.TypeWebsocketPing}))

	var res types.WebSocketResponse
	require.NoError(t, conn.ReadJSON(&res))
	assert.Equal(t, types.TypeWebsocketPong, res.Type)
}
