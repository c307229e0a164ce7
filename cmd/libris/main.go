package main

import (
	"github.com/joho/godotenv"

	"github.com/libris-ai/libris/internal/adapters/driving/cli"
)

func main() {
	// OPENAI_API_KEY may live in a local .env during development.
	_ = godotenv.Load()

	cli.Execute()
}
