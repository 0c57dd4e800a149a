package main

import (
	"log"
	"net"
	"net/http"
	"net/url"
	"regexp"

	"github.com/gorilla/websocket"
)

var roomCodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetupRoutes configures HTTP routes
func SetupRoutes(hub *Hub, clientDir string) *http.ServeMux {
	mux := http.NewServeMux()

	if clientDir != "" {
		// Serve static files with no-cache so browsers always revalidate
		fs := http.FileServer(http.Dir(clientDir))
		mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-cache")
			fs.ServeHTTP(w, r)
		}))
	}

	// WebSocket endpoint; the room code rides in the connection URL
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		roomCode := r.URL.Query().Get("room")
		if !roomCodeRe.MatchString(roomCode) {
			http.Error(w, "missing or invalid room code", http.StatusBadRequest)
			return
		}

		ip := extractIP(r)
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade error: %v", err)
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, ip, roomCode)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	})

	return mux
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // Non-browser clients don't send Origin
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
