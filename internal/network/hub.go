package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DamageHandler receives inbound damageEnemy notifications on the host.
// The host's own reconciliation of the reported hit is up to the handler —
// the hub is transport only.
type DamageHandler func(peerID string, actionID string, payload DamageEnemyPayload)

// Hub accepts websocket peers and dispatches their inbound actions.
// The host runs one; each peer connection doubles as the Channel clients use
// for outbound notifications.
type Hub struct {
	upgrader websocket.Upgrader

	writeTimeout time.Duration
	sendBuffer   int

	mu    sync.RWMutex
	peers map[string]*Peer

	damageHandler DamageHandler
}

// NewHub creates a Hub with the given per-peer write timeout and send buffer.
func NewHub(writeTimeout time.Duration, sendBuffer int) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Session peers connect from game clients, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		writeTimeout: writeTimeout,
		sendBuffer:   sendBuffer,
		peers:        make(map[string]*Peer),
	}
}

// SetDamageHandler sets the inbound damageEnemy dispatch target.
// Must be set before Run.
func (h *Hub) SetDamageHandler(fn DamageHandler) {
	h.damageHandler = fn
}

// PeerCount returns the number of connected peers.
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// ServeHTTP upgrades the request and runs the peer's pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	peer := NewPeer(conn, h.sendBuffer, h.writeTimeout)
	h.register(peer)
	defer h.unregister(peer)

	go peer.WritePump()
	h.readPump(peer)
}

func (h *Hub) register(p *Peer) {
	h.mu.Lock()
	h.peers[p.ID()] = p
	h.mu.Unlock()

	slog.Info("peer connected", "peer", p.ID())
}

func (h *Hub) unregister(p *Peer) {
	h.mu.Lock()
	delete(h.peers, p.ID())
	h.mu.Unlock()

	p.Close()
	slog.Info("peer disconnected", "peer", p.ID())
}

// readPump decodes inbound envelopes and dispatches them until the
// connection drops.
func (h *Hub) readPump(p *Peer) {
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		h.dispatch(p, data)
	}
}

func (h *Hub) dispatch(p *Peer, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("dropping malformed envelope", "peer", p.ID(), "err", err)
		return
	}

	switch env.Type {
	case ActionDamageEnemy:
		if h.damageHandler == nil {
			return
		}
		var payload DamageEnemyPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			slog.Warn("dropping malformed damageEnemy payload",
				"peer", p.ID(),
				"actionId", env.ActionID,
				"err", err)
			return
		}
		h.damageHandler(p.ID(), env.ActionID, payload)
	default:
		slog.Debug("ignoring unknown action", "peer", p.ID(), "type", env.Type)
	}
}

// Run serves the hub on addr until ctx is cancelled.
func (h *Hub) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("network hub listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("hub shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("hub listen on %s: %w", addr, err)
	}
}
