//go:build windows

package main

import (
	. "golang.org/x/sys/windows"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* Formatting codes stay off unless both output handles accept VT sequences. */
func init() {
	for _, f := range [2]*os.File{os.Stdout, os.Stderr} {
		h := Handle(f.Fd())
		var mode uint32
		if err := GetConsoleMode(h, &mode); err != nil {
			noCodesDefault = true
			break
		}
		if mode&ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
			continue
		}
		if err := SetConsoleMode(h, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			noCodesDefault = true
			break
		}
	}
}
