package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/vocallq/vocallq/internal/providers/stt"
	"github.com/vocallq/vocallq/internal/services"
	"github.com/vocallq/vocallq/internal/utils"
)

type LiveWSHandler struct {
	webinars services.WebinarService
	stt      stt.Provider // optional; nil disables server-side audio captioning
	redis    *redis.Client
	upgrader websocket.Upgrader
}

func NewLiveWSHandler(webinars services.WebinarService, sttProvider stt.Provider, rdb *redis.Client) *LiveWSHandler {
	return &LiveWSHandler{
		webinars: webinars,
		stt:      sttProvider,
		redis:    rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type liveClientMsg struct {
	Type string `json:"type"`

	// caption fields
	TurnOrder           int64    `json:"turn_order"`
	Text                string   `json:"text"`
	IsFormatted         bool     `json:"is_formatted"`
	EndOfTurn           bool     `json:"end_of_turn"`
	EndOfTurnConfidence *float64 `json:"end_of_turn_confidence"`
	Timestamp           float64  `json:"timestamp"`

	// audio_chunk fields
	AudioBase64 string `json:"audio_base64"`
	Language    string `json:"language"`
}

type liveConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (h *LiveWSHandler) enqueueCaption(ctx context.Context, webinarID string, msg liveClientMsg) error {
	fields := map[string]any{
		"webinar_id":   webinarID,
		"turn_order":   strconv.FormatInt(msg.TurnOrder, 10),
		"text":         msg.Text,
		"is_formatted": strconv.FormatBool(msg.IsFormatted),
		"end_of_turn":  strconv.FormatBool(msg.EndOfTurn),
	}
	if msg.EndOfTurnConfidence != nil {
		fields["end_of_turn_confidence"] = strconv.FormatFloat(*msg.EndOfTurnConfidence, 'f', -1, 64)
	}
	if msg.Timestamp != 0 {
		fields["timestamp"] = strconv.FormatFloat(msg.Timestamp, 'f', -1, 64)
	}

	return h.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: "captions:stream",
		Values: fields,
	}).Err()
}

func (w *liveConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

// WebinarWS is the live caption socket. The presenter's client pushes caption
// turns in; persisted turns and pipeline status events flow back out through
// the webinar's Redis channels.
func (h *LiveWSHandler) WebinarWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	webinarID := c.Param("webinar_id")
	if webinarID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "LiveWSHandler.WebinarWS", "missing webinar_id", nil))
		return
	}

	// ownership check before the upgrade; the workers trust turns on the stream
	if _, err := h.webinars.Get(c.Request.Context(), webinarID, userID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &liveConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	captionCh := "webinar:" + webinarID + ":captions"
	statusCh := "webinar:" + webinarID + ":transcription"

	pubsub := h.redis.Subscribe(ctx, captionCh, statusCh)
	defer pubsub.Close()

	// reader: WS -> Redis Stream
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}

			var msg liveClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid json"}`))
				continue
			}

			switch msg.Type {
			case "caption":
				if msg.Text == "" {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"text is required"}`))
					continue
				}
				if msg.TurnOrder < 0 {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"turn_order must be >= 0"}`))
					continue
				}
				if err := h.enqueueCaption(ctx, webinarID, msg); err != nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"UNAVAILABLE","message":"failed to enqueue caption"}`))
					continue
				}

			case "audio_chunk":
				// server-side captioning for clients without a realtime vendor
				if h.stt == nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"UNAVAILABLE","message":"server-side captioning is disabled"}`))
					continue
				}
				if msg.AudioBase64 == "" {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"audio_base64 is required"}`))
					continue
				}
				raw := msg.AudioBase64
				if i := strings.Index(raw, ","); i >= 0 {
					raw = raw[i+1:] // strip data:...;base64,
				}
				audio, derr := base64.StdEncoding.DecodeString(raw)
				if derr != nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid audio_base64"}`))
					continue
				}

				text, conf, terr := h.stt.Transcribe(ctx, audio, msg.Language)
				if terr != nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"UNAVAILABLE","message":"transcription failed"}`))
					continue
				}
				if text == "" {
					continue
				}
				msg.Text = text
				msg.EndOfTurn = true
				msg.EndOfTurnConfidence = &conf
				if err := h.enqueueCaption(ctx, webinarID, msg); err != nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"UNAVAILABLE","message":"failed to enqueue caption"}`))
					continue
				}

			case "ping":
				_ = wc.writeText([]byte(`{"type":"pong"}`))

			default:
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"unknown message type"}`))
			}
		}
	}()

	// writer: Redis Pub/Sub -> WS
	forwardMessages(ctx, pubsub.Channel(), readDone, wc.writeText)
}

// forwardMessages relays pub/sub payloads to the socket until the reader
// exits, the context is cancelled, or a write fails. Receiving from the
// channel keeps the select responsive while no messages are arriving.
func forwardMessages(ctx context.Context, msgs <-chan *redis.Message, readDone <-chan struct{}, write func([]byte) error) {
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case m, ok := <-msgs:
			if !ok {
				return
			}
			// payload is already JSON produced by the workers
			if err := write([]byte(m.Payload)); err != nil {
				return
			}
		}
	}
}
