package main

import (
	"log"
	"net/http"
	"os"
)

func main() {
	// Serve the SPA bundle from the web/static directory
	fs := http.FileServer(http.Dir("web/static"))
	http.Handle("/", fs)

	port := os.Getenv("WEB_PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Web server starting on http://localhost:%s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
