package main

import (
	"os"

	"github.com/decred/slog"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Diagnostics go to STDERR so that STDOUT carries nothing but digests.
var (
	backendLog = slog.NewBackend(os.Stderr)
	log        = backendLog.Logger("B2SM")
)

func setLogLevel() {
	switch {
	case pDebug:
		log.SetLevel(slog.LevelDebug)
	case pQuiet:
		log.SetLevel(slog.LevelOff)
	default:
		log.SetLevel(slog.LevelWarn)
	}
}
