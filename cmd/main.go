package main

import (
	"log/slog"
	"os"
	"time"

	"gitlab.com/greyxor/slogor"

	"github.com/mkravets/gridact/cmd/gridact"
	"github.com/mkravets/gridact/logging"
)

func main() {
	slog.SetDefault(slog.New(
		logging.ContextHandler{
			Handler: slogor.NewHandler(os.Stderr,
				slogor.SetLevel(slog.LevelInfo),
				slogor.SetTimeFormat(time.DateTime)),
		}))

	gridact.Execute()
}
