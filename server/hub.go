package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/piston1d/model_problems/Piston1D"
)

// Snapshot is the wire form of one published flow field state
type Snapshot struct {
	Time float64   `json:"time"`
	X    []float64 `json:"x"`
	Rho  []float64 `json:"rho"`
	Vel  []float64 `json:"vel"`
	Pres []float64 `json:"pres"`
}

func NewSnapshot(x []float64, q *Piston1D.FlowField) *Snapshot {
	return &Snapshot{
		Time: q.Time,
		X:    x,
		Rho:  q.Rho,
		Vel:  q.Vel,
		Pres: q.Pres,
	}
}

// Hub maintains the set of connected monitoring clients and broadcasts each
// published snapshot to all of them. Clients are plotting front ends, they
// only listen; a client that falls behind or errors is dropped.
type Hub struct {
	addr     string
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub(addr string) *Hub {
	return &Hub{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]bool),
	}
}

// serveWs handles websocket requests from a monitoring peer
func (h *Hub) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorln("websocket upgrade:", err)
		return
	}
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
	log.Infof("monitor client connected from %s", r.RemoteAddr)
}

// Serve starts the listener in the background
func (h *Hub) Serve() {
	http.HandleFunc("/ws", h.serveWs)
	go func() {
		if err := http.ListenAndServe(h.addr, nil); err != nil {
			log.Fatalln("ListenAndServe:", err)
		}
	}()
	log.Infof("snapshot monitor listening on ws://%s/ws", h.addr)
}

// Broadcast sends one snapshot to every connected client
func (h *Hub) Broadcast(snap *Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(snap); err != nil {
			log.Warnln("dropping monitor client:", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ClientCount reports the number of connected monitors
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
