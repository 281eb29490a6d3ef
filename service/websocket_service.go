package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ocrlab/pdf-ocr-be/types"
)

// WebSocketService streams processing progress over a websocket. The client
// sends a "start" request; the server runs the pipeline and pushes one
// "processing" event per page, then a final "summary".
type WebSocketService struct {
	registry *RegistryService
	extract  *ExtractService
	upgrader websocket.Upgrader
}

func NewWebSocketService(registry *RegistryService, extract *ExtractService) *WebSocketService {
	return &WebSocketService{
		registry: registry,
		extract:  extract,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleProcess(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	// Set connection properties
	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			conn.WriteMessage(messageType, []byte("Error processing message"))
			log.Println("Unmarshal error:", err)
			continue
		}

		switch req.Type {
		case types.TypeWebsocketStart:
			s.runProcess(ctx, conn)
		case types.TypeWebsocketPing:
			pongRes := types.WebSocketResponse{
				Type: types.TypeWebsocketPong,
			}
			if err := conn.WriteJSON(pongRes); err != nil {
				log.Println("Write error:", err)
				return
			}
		default:
			conn.WriteJSON(types.WebSocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "unknown message type: " + req.Type,
			})
		}
	}
}

// runProcess drives one run and forwards every status event to the socket.
// A run takes minutes, so the read deadline is pushed out while it executes.
func (s *WebSocketService) runProcess(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadDeadline(time.Time{})
	defer conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	files := s.registry.List()
	statusChan := make(chan types.ProcessingStatus, 64)
	done := make(chan struct{})

	var summary *types.RunSummary
	var runErr error
	go func() {
		defer close(done)
		summary, runErr = s.extract.Process(ctx, files, statusChan)
		close(statusChan)
	}()

	for status := range statusChan {
		res := types.WebSocketResponse{
			Type:    types.TypeWebsocketProcessing,
			Payload: status,
		}
		if err := conn.WriteJSON(res); err != nil {
			log.Println("Write error:", err)
			return
		}
	}
	<-done

	if runErr != nil {
		conn.WriteJSON(types.WebSocketResponse{
			Type:    types.TypeWebsocketError,
			Payload: runErr.Error(),
		})
		return
	}
	if err := conn.WriteJSON(types.WebSocketResponse{
		Type:    types.TypeWebsocketSummary,
		Payload: summary,
	}); err != nil {
		log.Println("Write error:", err)
	}
}
