package sessions

import (
	"net/http"
	"time"

	"cat-breed-search/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	streamWriteTimeout = 5 * time.Second
	streamPongWait     = 60 * time.Second
	streamPingEvery    = 45 * time.Second
)

// El widget suele vivir en otro host; el handshake no valida Origin.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// streamHandler godoc
// @Summary Stream de estado (WebSocket)
// @Description Abre un WebSocket que recibe un snapshot JSON por cada cambio de la sesión, empezando por el estado actual.
// @Tags sessions
// @Param sessionID path string true "ID de la sesión"
// @Success 101 {object} snapshotResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/stream [get]
func streamHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade ya respondió con el error HTTP
			log.Warn("websocket upgrade failed", map[string]any{"session_id": sess.ID, "err": err})
			return
		}
		defer conn.Close()

		updates, unsubscribe := sess.Subscribe()
		defer unsubscribe()

		// Lector: solo para procesar control frames y detectar el cierre del cliente.
		gone := make(chan struct{})
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(streamPingEvery)
		defer ping.Stop()

		for {
			select {
			case <-gone:
				return
			case snap, ok := <-updates:
				if !ok {
					// sesión cerrada
					_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
				if err := conn.WriteJSON(toSnapshotResponse(snap)); err != nil {
					log.Debug("websocket write failed", map[string]any{"session_id": sess.ID, "err": err})
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
