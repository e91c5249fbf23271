package main

import (
	"fmt"
	"os"

	"github.com/yungbote/admitpath-backend/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	application.Start()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	application.Log.Info("Starting HTTP server", "addr", addr)
	if err := application.Run(addr); err != nil {
		application.Log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
