package main

import (
	"log/slog"
	"os"

	"github.com/srinijamadireddy19/Blog-Digest/internal/commands"
)

func main() {
	if err := commands.NewApp().Run(os.Args); err != nil {
		slog.Error("[CLI] Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
