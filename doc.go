// Package blake2 implements the BLAKE2b and BLAKE2s hash functions of RFC 7693, with keyed
// hashing, salts, personalization, the full set of tree parameters, and BLAKE2bp.
//
// Both variants share one implementation that is generic over the word type; they differ only
// in constants. Digests are identical on every host word size and byte order.
//
//	d, err := blake2.New(blake2.BLAKE2s, 32, blake2.WithKey(key))
//	if err != nil {
//		return err
//	}
//	d.Write(msg)
//	mac, err := d.Finalize()
//
// A Digest may be finalized only once. Misuse and invalid parameters are reported as *Error
// values whose Kind can be tested with errors.Is.
package blake2
