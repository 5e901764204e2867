package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"torchlint/internal/chat"
	"torchlint/internal/llm"
)

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// ChatRequest is one inbound frame. Only the "chat" command is handled;
// frames carrying any other command are ignored.
type ChatRequest struct {
	Command string             `json:"command"`
	Prompt  string             `json:"prompt,omitempty"`
	Files   []chat.FileContext `json:"files,omitempty"`
	Model   string             `json:"model,omitempty"`
}

// ChatHandler serves the chat protocol over a websocket. Every chat frame
// produces exactly one envelope; malformed frames produce an error envelope
// and the connection stays open.
type ChatHandler struct {
	registry *llm.Registry
	pongWait time.Duration
}

func NewChatHandler(registry *llm.Registry) *ChatHandler {
	return &ChatHandler{registry: registry, pongWait: chatWSPongWait}
}

func (h *ChatHandler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	writeCh := make(chan chat.Envelope, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(h.pongWait * 9 / 10)
		defer ticker.Stop()

		writeOut := func(out chat.Envelope) bool {
			if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
				return false
			}
			return conn.WriteJSON(out) == nil
		}

		for {
			select {
			case <-ctx.Done():
				// Flush envelopes queued before shutdown; a reply produced
				// just as the read side closes must still go out.
				for {
					select {
					case out := <-writeCh:
						if !writeOut(out) {
							return
						}
					default:
						return
					}
				}
			case out := <-writeCh:
				if !writeOut(out) {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		// A chat frame can block on the model call far longer than the pong
		// window, so the deadline is refreshed before every read rather than
		// relying on pongs alone.
		if err := conn.SetReadDeadline(time.Now().Add(h.pongWait)); err != nil {
			log.Printf("chat ws set read deadline failed: %v", err)
			cancel()
			<-writerDone
			return
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			cancel()
			<-writerDone
			return
		}

		var req ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			pushChatWS(ctx, writeCh, chat.Envelope{
				Type:    chat.TypeError,
				Content: "malformed request: " + err.Error(),
			})
			continue
		}
		if req.Command != "chat" {
			continue
		}
		pushChatWS(ctx, writeCh, h.handleChat(ctx, req))
	}
}

func (h *ChatHandler) handleChat(ctx context.Context, req ChatRequest) chat.Envelope {
	cli, err := h.registry.Resolve(ctx, req.Model)
	if err != nil {
		return chat.Envelope{
			Type:    chat.TypeError,
			Content: "model backend unavailable: " + err.Error(),
		}
	}
	return chat.BuildEnvelope(ctx, req.Prompt, req.Files, cli.Generate)
}

// pushChatWS blocks until the writer accepts the envelope or the connection
// is shutting down. Every chat frame owes exactly one envelope; dropping one
// is never an option.
func pushChatWS(ctx context.Context, ch chan<- chat.Envelope, out chat.Envelope) {
	select {
	case ch <- out:
	case <-ctx.Done():
	}
}
