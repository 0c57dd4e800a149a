package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	clientDir := flag.String("client", "", "Path to client directory (empty: no static files)")
	dbPath := flag.String("db", "", "Path to match log SQLite database (empty: disabled)")
	flag.Parse()

	var matchLog *MatchLog
	if *dbPath != "" {
		db, err := OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("open match log db: %v", err)
		}
		defer db.Close()
		matchLog = NewMatchLog(db)
		defer matchLog.Close()
	}

	hub := NewHub(matchLog)
	go hub.Run()

	mux := SetupRoutes(hub, *clientDir)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Printf("Server starting on %s", *addr)
		if *clientDir != "" {
			log.Printf("Serving client files from %s", *clientDir)
		}
		if *dbPath != "" {
			log.Printf("Match log enabled at %s", *dbPath)
		}
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	server.Close()
}
