package realtime

import (
	"context"
	"encoding/json"
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Reconciler is the board side of the protocol.
type Reconciler interface {
	Snapshot(ctx context.Context) ([]model.BoardDocument, error)
	Reconcile(ctx context.Context, docs []model.BoardDocument) ([]model.BoardDocument, error)
}

// Publisher forwards frames already broadcast locally to other processes.
type Publisher interface {
	Publish(ctx context.Context, frame []byte) error
}

// Gateway upgrades clients to WebSocket sessions and runs the full snapshot
// protocol: initial_data on connect, then each update_board is reconciled
// and the persisted result goes out as board_updated to every session but
// the sender. The sender gets no echo and no error; failures are only logged.
type Gateway struct {
	hub       *Hub
	boards    Reconciler
	publisher Publisher
	upgrader  websocket.Upgrader
}

func NewGateway(hub *Hub, boards Reconciler, allowedOrigins []string) *Gateway {
	return &Gateway{
		hub:    hub,
		boards: boards,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(allowedOrigins, origin)
			},
		},
	}
}

// WithPublisher makes the gateway forward every board_updated frame.
func (g *Gateway) WithPublisher(p Publisher) *Gateway {
	g.publisher = p
	return g
}

// Handle godoc
// @Summary      Realtime board channel
// @Description  Upgrades to a WebSocket. The server sends initial_data on connect and board_updated whenever another session commits; the client sends update_board with its full board collection.
// @Tags         Realtime
// @Param        token  query  string  false  "Session token"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /ws [get]
func (g *Gateway) Handle(c *gin.Context) {
	userID := ""
	if id, ok := middleware.UserID(c); ok {
		userID = id.String()
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	ctx := c.Request.Context()
	s := newSession(conn, userID)
	logger := log.WithFields(log.Fields{"session": s.ID, "user": s.UserID})

	g.hub.add(s)
	logger.Info("session connected")
	defer func() {
		g.hub.remove(s)
		s.close()
		logger.Info("session disconnected")
	}()

	go s.writePump()
	g.sendInitial(ctx, s, logger)

	err = s.readPump(func(message []byte) {
		g.handleMessage(ctx, s, message, logger)
	})
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		logger.WithError(err).Debug("session read failed")
	}
}

func (g *Gateway) sendInitial(ctx context.Context, s *Session, logger *log.Entry) {
	boards, err := g.boards.Snapshot(ctx)
	if err != nil {
		logger.WithError(err).Error("initial snapshot failed")
		return
	}
	frame, err := encodeFrame(EventInitialData, boards)
	if err != nil {
		logger.WithError(err).Error("encode initial snapshot")
		return
	}
	if !s.enqueue(frame) {
		logger.Warn("initial snapshot not queued")
	}
}

func (g *Gateway) handleMessage(ctx context.Context, s *Session, message []byte, logger *log.Entry) {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		logger.WithError(err).Warn("ignoring malformed frame")
		return
	}

	switch env.Event {
	case EventUpdateBoard:
		g.handleUpdate(ctx, s, env.Data, logger.WithField("event", env.Event))
	default:
		logger.WithField("event", env.Event).Debug("ignoring unknown event")
	}
}

func (g *Gateway) handleUpdate(ctx context.Context, s *Session, data json.RawMessage, logger *log.Entry) {
	var intent model.Snapshot
	if err := json.Unmarshal(data, &intent); err != nil {
		logger.WithError(err).Warn("ignoring malformed update")
		return
	}
	if len(intent.Boards) == 0 {
		logger.Warn("ignoring update without boards")
		return
	}

	saved, err := g.boards.Reconcile(ctx, intent.Boards)
	if err != nil {
		logger.WithError(err).Error("reconcile failed")
		return
	}
	if len(saved) == 0 {
		logger.Warn("no boards persisted from update")
		return
	}

	frame, err := encodeFrame(EventBoardUpdated, saved)
	if err != nil {
		logger.WithError(err).Error("encode board update")
		return
	}
	delivered := g.hub.Broadcast(frame, s)
	logger.WithFields(log.Fields{"boards": len(saved), "recipients": delivered}).Debug("board update broadcast")

	if g.publisher != nil {
		if err := g.publisher.Publish(ctx, frame); err != nil {
			logger.WithError(err).Error("relay publish failed")
		}
	}
}
