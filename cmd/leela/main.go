package main

import (
	"github.com/joho/godotenv"

	"github.com/mcoot/leelawheel/internal/cli"
)

func main() {
	// LEELA_* defaults may come from a local .env
	_ = godotenv.Load()
	cli.Execute()
}
