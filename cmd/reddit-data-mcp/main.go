package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rrajasek95/reddit-data-mcp/mcp"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	if err := mcp.RunMCPServer(); err != nil {
		log.Error().Err(err).Msg("MCP server exited with error")
		os.Exit(1)
	}
}
