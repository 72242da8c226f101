package main

import (
	"log/slog"

	"github.com/devilcove/piafwd/app/piafwd/cmd"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file to load", "error", err)
	}
	cmd.Execute()
}
