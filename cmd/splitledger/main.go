package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/splitledger/splitledger/internal/commands"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
