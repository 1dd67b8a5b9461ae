package main

import (
	"os"

	"github.com/decred/slog"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var log = slog.NewBackend(os.Stderr).Logger("STAZ")

func setLogLevel() {
	if os.Getenv("STATZ_DEBUG") != "" {
		log.SetLevel(slog.LevelDebug)
		return
	}
	log.SetLevel(slog.LevelInfo)
}
