package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/agoralabs/agora/cmd/cli/commands"
)

func main() {
	// .env is optional; env vars may be set externally
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
