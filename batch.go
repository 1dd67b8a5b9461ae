package blake2

import (
	"golang.org/x/sync/errgroup"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Batch operations drive several independent hashers at once, one goroutine per hasher. The
// digests are exactly those of calling Update or Finalize on each hasher in turn.

func checkBatch(op Op, digests []*Digest) error {
	seen := make(map[*Digest]struct{}, len(digests))
	for _, d := range digests {
		if d == nil {
			return newError(op, InvalidParameter, "nil hasher in batch")
		}
		if _, dup := seen[d]; dup {
			return newError(op, InvalidParameter, "hasher appears twice in batch")
		}
		seen[d] = struct{}{}
		if d.done {
			return finalizedError(op)
		}
	}
	return nil
}

// UpdateAll absorbs inputs[i] into digests[i] for every i. Nothing is absorbed unless every
// hasher is distinct and unfinalized and the slices have equal length.
func UpdateAll(digests []*Digest, inputs [][]byte) error {
	const op Op = "update all"
	if len(digests) != len(inputs) {
		return newError(op, InvalidParameter, "hasher and input counts differ")
	}
	if err := checkBatch(op, digests); err != nil {
		return err
	}
	var g errgroup.Group
	for i, d := range digests {
		d, p := d, inputs[i]
		g.Go(func() error {
			d.eng.update(p)
			return nil
		})
	}
	return g.Wait()
}

// FinalizeAll finalizes every hasher and returns the digests in order.
func FinalizeAll(digests []*Digest) ([]Hash, error) {
	if err := checkBatch("finalize all", digests); err != nil {
		return nil, err
	}
	sums := make([]Hash, len(digests))
	var g errgroup.Group
	for i, d := range digests {
		i, d := i, d
		g.Go(func() (err error) {
			sums[i], err = d.Finalize()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sums, nil
}
