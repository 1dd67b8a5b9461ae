package main

import (
	. "github.com/spf13/pflag"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pAlgorithm, pSalt, pPersonal = "blake2b", "", ""
var pLength uint
var pHelp, pBase64, pCheck, pKeyed, pNoCodes, pQuiet, pRaw, pStrict, pString, pTime, pDebug bool
var noCodesDefault = os.Getenv("NO_COLOR") != ""
var star, yell, purp, und, zero = "", "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	/* Formatting codes are decided before parsing so that the help menu itself obeys them. */
	pNoCodes = noCodesDefault
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true", "--raw", "--raw=true":
			pNoCodes = true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	StringVarP(&pAlgorithm, "algorithm", "a", pAlgorithm,
		purp+"hash function: blake2b, blake2s, or blake2bp"+zero)

	BoolVarP(&pBase64, "base64", "b", false,
		purp+"render digests in base64"+zero+" (default hex)")

	BoolVarP(&pCheck, "check", "c", false,
		purp+"read digests and paths from each LIST and verify them"+zero)

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	BoolVarP(&pKeyed, "keyed", "K", false,
		purp+"use STDIN, up to the algorithm's key size, as the key"+zero)

	UintVarP(&pLength, "length", "l", 0,
		purp+"set output digest length in bytes"+zero+" (default maximum)")

	BoolVar(&pNoCodes, "no-codes", pNoCodes,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	StringVar(&pPersonal, "personal", "",
		purp+"personalization string, in hex, of exactly the"+zero+
			n+purp+"algorithm's personalization width"+zero)

	BoolVar(&pQuiet, "quiet", false,
		purp+"suppress non-breaking errors and print ONLY digests"+zero+
			n+"(enables --no-codes)")

	BoolVar(&pRaw, "raw", false,
		purp+"sequentially return the unencoded, non-deliminated bytes"+zero+
			n+purp+"of each digest"+zero+" (enables --strict)")

	StringVar(&pSalt, "salt", "",
		purp+"salt, in hex, of exactly the algorithm's salt width"+zero)

	BoolVar(&pStrict, "strict", false,
		purp+"cause b2sum to panic on any error"+zero)

	BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as UTF-8 strings to be hashed"+zero)

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to read and hash each message"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
}

// parseFlags parses the command line and settles flags that imply one another.
func parseFlags() {
	Parse()
	pNoCodes = pNoCodes || pQuiet || pRaw
	pStrict = pStrict || pRaw || pDebug
}
