package main

import (
	"os"

	"github.com/bnema/twitch-chat-logger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
