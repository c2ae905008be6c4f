package main

import (
	"os"

	"github.com/sokojh/claude-code-tmux-hud/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
