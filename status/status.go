package status

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mogaika/w3x_skeleton_browser/pack/w3x"
)

const (
	INFO = iota
	ERROR
	PROGRESS
	DIAGNOSTIC
)

type status struct {
	Message  string
	Time     time.Time
	Type     int
	Progress float32
	Job      string `json:",omitempty"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

// readPump only drains control frames so close and pong are noticed.
func (c *client) readPump() {
	defer c.conn.Close()
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

// Hub fans status messages out to websocket clients.
type Hub struct {
	lock        sync.Mutex
	clients     map[*client]bool
	lastMessage []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

func (h *Hub) registerClient(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.clients[c] = true
	if h.lastMessage != nil {
		c.send <- h.lastMessage
	}
}

func (h *Hub) unregisterClient(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) ClientsCount() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

func (h *Hub) LastMessage() []byte {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.lastMessage
}

func (h *Hub) broadcast(s *status) {
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("[status] marshal error: %v", err)
		return
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	h.lastMessage = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("[status] client is too slow, message dropped")
		}
	}
}

func (h *Hub) Status(msg string, _type int, progress float32, job string) {
	if math.IsNaN(float64(progress)) || math.IsInf(float64(progress), 0) {
		progress = 0
	}
	h.broadcast(&status{
		Message:  msg,
		Time:     time.Now(),
		Type:     _type,
		Progress: progress,
		Job:      job,
	})
}

func (h *Hub) Info(format string, a ...interface{}) {
	h.Status(fmt.Sprintf(format, a...), INFO, 0.0, "")
}

func (h *Hub) Error(format string, a ...interface{}) {
	h.Status(fmt.Sprintf(format, a...), ERROR, 0.0, "")
}

func (h *Hub) Progress(progress float32, format string, a ...interface{}) {
	h.Status(fmt.Sprintf(format, a...), PROGRESS, progress, "")
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeWs upgrades the request and subscribes it to the hub.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[status] upgrade error: %v", err)
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, 32)}
	h.registerClient(c)
	go c.writePump()
	go c.readPump()
}

// Reporter forwards pivot diagnostics to the hub, tagged with a job id.
type Reporter struct {
	Hub *Hub
	Job string
}

func (r Reporter) Report(d w3x.Diagnostic) {
	r.Hub.Status(d.String(), DIAGNOSTIC, 0.0, r.Job)
}

var _ w3x.Reporter = Reporter{}
