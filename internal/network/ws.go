package network

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkoval-dev/nightraid/internal/model"
)

// Peer is one websocket connection in the session. It implements Channel for
// outbound actions; writes are guarded by a mutex and a write deadline, and
// queued through a buffered channel drained by a writer pump so game code
// never blocks on the socket.
type Peer struct {
	id   string
	conn *websocket.Conn

	mu           sync.Mutex
	writeTimeout time.Duration

	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewPeer wraps an established websocket connection.
func NewPeer(conn *websocket.Conn, sendBuffer int, writeTimeout time.Duration) *Peer {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &Peer{
		id:           model.GenerateID(),
		conn:         conn,
		writeTimeout: writeTimeout,
		send:         make(chan []byte, sendBuffer),
		done:         make(chan struct{}),
	}
}

// ID returns the peer's session-unique identifier.
func (p *Peer) ID() string {
	return p.id
}

// Send implements Channel: marshals an envelope and enqueues it for the
// writer pump. Returns the generated action ID. A full queue drops the
// message — delivery is fire-and-forget and combat code never waits.
func (p *Peer) Send(action string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling %s payload: %w", action, err)
	}

	env := Envelope{
		Type:     action,
		ActionID: model.GenerateID(),
		Payload:  raw,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshaling %s envelope: %w", action, err)
	}

	select {
	case p.send <- data:
	case <-p.done:
		return env.ActionID, fmt.Errorf("peer %s closed", p.id)
	default:
		// Queue full: drop rather than stall the frame loop.
		slog.Warn("peer send queue full, dropping message",
			"peer", p.id,
			"action", action)
	}

	return env.ActionID, nil
}

// WritePump drains the outbound queue onto the socket. Runs on its own
// goroutine, one per peer. Returns when the peer is closed or a write fails.
func (p *Peer) WritePump() {
	for {
		select {
		case data := <-p.send:
			if err := p.writeMessage(data); err != nil {
				slog.Debug("peer write failed", "peer", p.id, "err", err)
				p.Close()
				return
			}
		case <-p.done:
			return
		}
	}
}

func (p *Peer) writeMessage(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.conn.SetWriteDeadline(time.Now().Add(p.writeTimeout)); err != nil {
		return err
	}
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

// Close shuts the peer down. Safe to call more than once.
func (p *Peer) Close() {
	p.once.Do(func() {
		close(p.done)
		p.conn.Close()
	})
}

// Done is closed when the peer shuts down.
func (p *Peer) Done() <-chan struct{} {
	return p.done
}
