package main

import (
	"log"

	"ephemera/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ ephemera failed to start: %v", err)
	}
}
