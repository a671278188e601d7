package main

import (
	"github.com/joho/godotenv"

	"molvec/internal/cli"
)

func main() {
	// environment overrides (MOLVEC_*) may come from a local .env file
	_ = godotenv.Load()

	cli.Execute()
}
