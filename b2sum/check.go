package main

import (
	"bufio"
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type checkEntry struct {
	want []byte
	path string
}

// parseCheckLine splits one line of b2sum output, `<hex>  <path>` or `<hex> *<path>`.
func parseCheckLine(line string) (checkEntry, error) {
	sum, path, ok := strings.Cut(strings.TrimRight(line, "\r"), " ")
	if !ok || len(path) < 2 || (path[0] != ' ' && path[0] != '*') {
		return checkEntry{}, errors.New("improperly formatted line")
	}
	want, err := hex.DecodeString(sum)
	if err != nil {
		return checkEntry{}, errors.Wrap(err, "digest is not hex")
	}
	if len(want) == 0 {
		return checkEntry{}, errors.New("empty digest")
	}
	return checkEntry{want: want, path: path[1:]}, nil
}

type checkResult struct {
	failed, unreadable, malformed int
}

// checkList verifies every entry of list, writing `<path>: OK` or `<path>: FAILED` to out.
// newHasher is called once per entry with the digest length found on that line.
func checkList(list io.Reader, out io.Writer, newHasher func(size int) (hasher, error),
	open func(path string) (io.ReadCloser, error)) (res checkResult, err error) {
	scanner := bufio.NewScanner(list)
	for line := 1; scanner.Scan(); line++ {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		entry, err := parseCheckLine(scanner.Text())
		if err != nil {
			log.Warnf("line %d: %v", line, err)
			res.malformed++
			continue
		}

		d, err := newHasher(len(entry.want))
		if err != nil {
			/* A digest too long for the selected algorithm is a bad line, not a bad run. */
			log.Warnf("%v", errors.Wrapf(err, "line %d", line))
			res.malformed++
			continue
		}
		f, err := open(entry.path)
		if err != nil {
			log.Warnf("%v", errors.Wrapf(err, "line %d", line))
			io.WriteString(out, entry.path+": FAILED open or read"+n)
			res.unreadable++
			continue
		}
		_, err = io.Copy(d, f)
		f.Close()
		if err != nil {
			log.Warnf("%v", errors.Wrapf(err, "reading %s", entry.path))
			io.WriteString(out, entry.path+": FAILED open or read"+n)
			res.unreadable++
			continue
		}

		sum, err := d.Finalize()
		if err != nil {
			return res, errors.Wrapf(err, "line %d", line)
		}
		if sum.Verify(entry.want) {
			io.WriteString(out, entry.path+": OK"+n)
		} else {
			io.WriteString(out, entry.path+": FAILED"+n)
			res.failed++
		}
	}
	return res, errors.Wrap(scanner.Err(), "reading digest list")
}
