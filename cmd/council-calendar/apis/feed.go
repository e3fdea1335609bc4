package apis

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"council-calendar-backend/cmd/council-calendar/feed"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedAPI streams event changes to websocket clients. Each connection
// gets its own bus subscription, closed when the client goes away, so a
// dead client never receives callbacks or blocks the publisher.
type FeedAPI struct {
	bus *feed.Bus
}

func NewFeedAPI(bus *feed.Bus) *FeedAPI {

	return &FeedAPI{
		bus: bus,
	}
}

func (a *FeedAPI) Setup(g *echo.Group) {
	g.GET("/events/feed", a.streamChanges)
}

func (a *FeedAPI) streamChanges(c echo.Context) error {

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	sub := a.bus.Subscribe()

	go writePump(conn, sub)
	readPump(conn, sub)
	return nil
}

// readPump only watches for the connection dropping; clients do not send
// anything meaningful upstream.
func readPump(conn *websocket.Conn, sub *feed.Subscription) {
	defer func() {
		sub.Close()
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, sub *feed.Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case change, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(change)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
