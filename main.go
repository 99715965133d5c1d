package main

import (
	"fmt"
	"os"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/internal/app"
)

func main() {
	// create and initialize the app
	app, err := app.NewApp(config.CONFIG_PATH, config.ENV_PATH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start folio: %v\n", err)
		os.Exit(1)
	}

	// serves until SIGINT or SIGTERM
	if err := app.Run(); err != nil {
		app.Logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
