package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/fuel"
)

// LiveHub upgrades dashboard clients to websocket and forwards them the
// change feed, filtered to each client's scope. When a client's
// subscription falls behind it receives a resync notice and must refetch
// instead of trusting its local copy.
type LiveHub struct {
	mon      *fuel.Monitor
	upgrader websocket.Upgrader
}

func NewLiveHub(mon *fuel.Monitor) *LiveHub {
	return &LiveHub{
		mon: mon,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// scope enforcement happens per event, the origin does not gate it
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type liveMessage struct {
	Type  string            `json:"type"`
	Event *fuel.ChangeEvent `json:"event,omitempty"`
}

func (h *LiveHub) allowed(scope fuel.Scope, ev *fuel.ChangeEvent) bool {
	switch ev.Table {
	case fuel.TableStations:
		return ev.Station != nil && scope.AllowsStation(ev.Station)
	case fuel.TableAlerts:
		return ev.Alert != nil && scope.AllowsAlert(ev.Alert)
	}
	return false
}

func (h *LiveHub) serve(c *gin.Context, scope fuel.Scope) {
	logger := common.GetLoggerWith(common.LoggerNameLiveHub)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := h.mon.Bus.Subscribe(64)
	// sub is reassigned on resync, the deferred call must see the latest one
	defer func() { h.mon.Bus.Unsubscribe(sub) }()

	// drain the client side only to notice the close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-sub.Lost():
			// feed overflowed for this client: tell it to resync, then
			// start a fresh subscription
			if err := conn.WriteJSON(liveMessage{Type: "resync"}); err != nil {
				return
			}
			h.mon.Bus.Unsubscribe(sub)
			sub = h.mon.Bus.Subscribe(64)
		case ev := <-sub.C:
			if !h.allowed(scope, &ev) {
				continue
			}
			if err := conn.WriteJSON(liveMessage{Type: "change", Event: &ev}); err != nil {
				return
			}
		}
	}
}

func (rs *RestfulServer) LiveStream(c *gin.Context) {
	rs.Live.serve(c, scopeFrom(c))
}
