package main

import (
	"encoding/base64"
	"encoding/hex"
	. "fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/p7r0x7/blake2"
	"github.com/p7r0x7/vainpath"
	"github.com/pkg/errors"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var key []byte
var warnings = 0

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "b2sum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "BLAKE2b, BLAKE2s, and BLAKE2bp checksums and MACs.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bKt] [-a ALG] [-l <uint>] [--quiet|no-codes] [--strict|raw] -|PATH..."+n,
		spaces, "[-bKt] [-a ALG] [-l <uint>] [--quiet|no-codes] [--strict|raw] -s STRING..."+n,
		spaces, "[-K] [-a ALG] [--quiet] -c LIST..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

// hasher is the part of blake2.Digest and blake2.ParallelDigest that b2sum drives.
type hasher interface {
	io.Writer
	Finalize() (blake2.Hash, error)
}

// newHasher builds a hasher for the selected algorithm from the parsed flags. A size of 0
// selects the algorithm's longest digest.
func newHasher(size int) (hasher, error) {
	salt, err := hex.DecodeString(pSalt)
	if err != nil {
		return nil, errors.Wrap(err, "--salt")
	}
	personal, err := hex.DecodeString(pPersonal)
	if err != nil {
		return nil, errors.Wrap(err, "--personal")
	}

	var v blake2.Variant
	switch strings.ToLower(pAlgorithm) {
	case "blake2b", "b":
		v = blake2.BLAKE2b
	case "blake2s", "s":
		v = blake2.BLAKE2s
	case "blake2bp", "bp":
		if len(salt)+len(personal) > 0 {
			return nil, errors.New("blake2bp takes no salt or personalization")
		}
		if size == 0 {
			size = blake2.BLAKE2b.Size()
		}
		return blake2.NewParallel(size, key)
	default:
		return nil, errors.Errorf("unknown algorithm %q", pAlgorithm)
	}
	if size == 0 {
		size = v.Size()
	}
	return blake2.New(v, size,
		blake2.WithKey(key), blake2.WithSalt(salt), blake2.WithPersonal(personal))
}

// readKey consumes all of STDIN, which must not exceed the algorithm's key size.
func readKey() error {
	limit := blake2.BLAKE2b.KeySize()
	if alg := strings.ToLower(pAlgorithm); alg == "blake2s" || alg == "s" {
		limit = blake2.BLAKE2s.KeySize()
	}
	k, err := io.ReadAll(io.LimitReader(os.Stdin, int64(limit)+1))
	go os.Stdin.Close() /* STDIN should not be reused. */
	if err != nil {
		return errors.Wrap(err, "reading key")
	}
	if len(k) > limit {
		return errors.Errorf("key on STDIN is longer than %d bytes", limit)
	}
	key = k
	star = "(*)"
	return nil
}

// profile starts the CPU profile and returns a function that stops it and writes the rest.
func profile() func() {
	cf, err := os.Create("cpu.prof")
	if err != nil {
		log.Errorf("%v", errors.Wrap(err, "creating cpu.prof"))
		return func() {}
	}
	_ = pprof.StartCPUProfile(cf)
	return func() {
		pprof.StopCPUProfile()
		cf.Close()
		for _, name := range []string{"goroutine", "block", "allocs", "mutex"} {
			f, err := os.Create(name + ".prof")
			if err != nil {
				log.Errorf("%v", errors.Wrapf(err, "creating %s.prof", name))
				continue
			}
			_ = pprof.Lookup(name).WriteTo(f, 0)
			f.Close()
		}
	}
}

// This program is a command-line interface for the blake2 package: It handles various flags and an
// unlimited number of arguments, processing files as required by the command-line operator.
func program() int {
	parseFlags()
	setLogLevel()
	if pDebug {
		defer profile()()
	}

	if pHelp || NArg() == 0 {
		help()
		return success
	}
	if pKeyed {
		if err := readKey(); err != nil {
			log.Errorf("%v", err)
			return invalid
		}
	}
	/* Construct one hasher up front so that bad parameters fail before any I/O. */
	if _, err := newHasher(int(pLength)); err != nil {
		log.Errorf("%v", err)
		return invalid
	}
	log.Debugf("algorithm %s, length %d, keyed %v", pAlgorithm, pLength, len(key) > 0)

	if pCheck {
		return checkAll()
	}

	for _, target := range Args() {
		start, delta := time.Now(), ""
		d, _ := newHasher(int(pLength))

		if pString {
			/* hash.Hash does not implement (*Writer).WriteString. */
			if _, err := d.Write(strToBytes(target)); err != nil {
				warn(err)
				continue
			}
		} else if target == "-" || target == os.Stdin.Name() {
			if _, err := io.Copy(d, os.Stdin); err != nil {
				warn(errors.Wrap(err, "reading STDIN"))
				continue
			}
			go os.Stdin.Close() /* STDIN should not be reused. */
		} else if err := hashFile(d, target); err != nil {
			warn(err)
			continue
		}
		sum, err := d.Finalize()
		if err != nil {
			warn(err)
			continue
		}

		if pTime {
			took := time.Since(start)
			if took.Microseconds() > 99 {
				took = took.Truncate(10 * time.Microsecond)
			}
			delta = " (" + took.String() + ")"
		}

		if pRaw {
			os.Stdout.Write(sum.Bytes())
			continue
		}
		if !pQuiet {
			Print(star, yell)
		}
		if pBase64 {
			Print(base64.StdEncoding.EncodeToString(sum.Bytes()))
		} else {
			Print(sum.Hex())
		}

		if pQuiet {
			os.Stdout.WriteString(n)
		} else if pString {
			Print(zero, `  "`, target, `"`, zero, delta, n)
		} else if pNoCodes {
			Print(`  `, filepath.Clean(target), delta, n)
		} else {
			Print(zero, `  `, und, vainpath.Simplify(target), zero, delta, n)
		}
	}

	summarize("target is a directory or is otherwise inaccessible.",
		"targets are directories or are otherwise inaccessible.")
	if warnings > 0 {
		return failure
	}
	return success
}

func hashFile(d io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	_, err = io.Copy(d, file)
	go file.Close()
	return errors.Wrapf(err, "reading %s", path)
}

// checkAll verifies every digest list named on the command line.
func checkAll() int {
	open := func(path string) (io.ReadCloser, error) { return os.Open(path) }
	var total checkResult
	for _, target := range Args() {
		var list io.ReadCloser = os.Stdin
		if target != "-" && target != os.Stdin.Name() {
			f, err := os.Open(target)
			if err != nil {
				warn(err)
				continue
			}
			list = f
		}
		res, err := checkList(list, os.Stdout, newHasher, open)
		list.Close()
		if err != nil {
			warn(err)
		}
		total.failed += res.failed
		total.unreadable += res.unreadable
		total.malformed += res.malformed
	}

	if !pQuiet {
		for _, c := range []struct {
			count      int
			one, other string
		}{
			{total.malformed, "line is improperly formatted", "lines are improperly formatted"},
			{total.unreadable, "listed file could not be read", "listed files could not be read"},
			{total.failed, "computed checksum did NOT match", "computed checksums did NOT match"},
		} {
			if c.count == 1 {
				Fprint(os.Stderr, "1 ", purp, c.one, zero, n)
			} else if c.count > 1 {
				Fprint(os.Stderr, c.count, " ", purp, c.other, zero, n)
			}
		}
	}
	if warnings+total.failed+total.unreadable+total.malformed > 0 {
		return failure
	}
	return success
}

func summarize(one, many string) {
	if pQuiet || pRaw {
		return
	}
	if warnings == 1 {
		Fprint(os.Stderr, "1 ", purp, one, zero, n)
	} else if warnings > 1 {
		Fprint(os.Stderr, warnings, " ", purp, many, zero, n)
	}
}

// strToBytes converts any string into a byte slice without allocating memory; this is safe so
// long as the underlying memory is not modified during its lifetime.
func strToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func warn(err error) {
	if pStrict {
		panic(err)
	}
	log.Warnf("%v", err)
	warnings++
}
