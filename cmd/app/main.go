package main

import (
	"fmt"
	"log/slog"
	"os"

	"duobot/internal/app"
	_ "duobot/internal/logger"
)

func main() {
	a, err := app.New()
	if err == nil {
		err = a.Run()
	}
	if err != nil {
		slog.Error(fmt.Sprintf("error running app: %+v", err))
		os.Exit(1)
	}
}
