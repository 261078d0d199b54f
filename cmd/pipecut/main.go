// Command pipecut plans pipe cutting jobs from the terminal.
//
// Build:
//
//	go build -o pipecut ./cmd/pipecut
//
// The inventory backend defaults to a local JSON file under ~/.pipecut.
// Set PIPECUT_BACKEND=postgres and PIPECUT_DATABASE_URL to share leftover
// stock between machines.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A .env in the working directory is optional.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
