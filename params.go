package blake2

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The parameter block folds every user-visible setting into the initial chaining value. Its
// byte layout, per variant:
//
//	offset  BLAKE2b            BLAKE2s
//	0       digest length      digest length
//	1       key length         key length
//	2       fanout             fanout
//	3       depth              depth
//	4-7     leaf length        leaf length
//	8-15    node offset        node offset (8-13)
//	16/14   node depth         node depth
//	17/15   inner length       inner length
//	18-31   reserved           -
//	32-47   salt               salt (16-23)
//	48-63   personalization    personalization (24-31)

// Option configures a hasher at construction time. Options are validated by New, never later.
type Option func(*params)

type params struct {
	size       int
	key        []byte
	salt       []byte
	personal   []byte
	fanout     uint8
	depth      uint8
	leafLength uint32
	nodeOffset uint64
	nodeDepth  uint8
	inner      uint8
	lastNode   bool
}

func defaultParams(size int) params {
	return params{size: size, fanout: 1, depth: 1}
}

// WithKey turns the hasher into a MAC. An empty key is the same as no key.
func WithKey(key []byte) Option {
	return func(p *params) { p.key = append(p.key[:0], key...) }
}

// WithSalt sets the salt, which must be exactly Variant.SaltSize bytes long; nil means zero.
func WithSalt(salt []byte) Option {
	return func(p *params) { p.salt = append(p.salt[:0], salt...) }
}

// WithPersonal sets the personalization string, which must be exactly Variant.PersonalSize
// bytes long; nil means zero.
func WithPersonal(personal []byte) Option {
	return func(p *params) { p.personal = append(p.personal[:0], personal...) }
}

// WithFanout sets the tree fanout. 0 means unlimited; the default is 1 (sequential mode).
func WithFanout(fanout uint8) Option { return func(p *params) { p.fanout = fanout } }

// WithMaxDepth sets the maximal tree depth, 1 to 255; the default is 1.
func WithMaxDepth(depth uint8) Option { return func(p *params) { p.depth = depth } }

// WithLeafLength sets the maximal byte length of leaves. 0 means unlimited.
func WithLeafLength(n uint32) Option { return func(p *params) { p.leafLength = n } }

// WithNodeOffset sets the node offset. BLAKE2s only has room for 48 bits.
func WithNodeOffset(offset uint64) Option { return func(p *params) { p.nodeOffset = offset } }

// WithNodeDepth sets the node depth; leaves are at depth 0.
func WithNodeDepth(depth uint8) Option { return func(p *params) { p.nodeDepth = depth } }

// WithInnerLength sets the digest length of inner tree nodes, 0 to Variant.Size.
func WithInnerLength(n uint8) Option { return func(p *params) { p.inner = n } }

// WithLastNode marks the hasher as the last node of its tree level.
func WithLastNode(last bool) Option { return func(p *params) { p.lastNode = last } }

func (p *params) validate(v Variant) error {
	const op Op = "new"
	switch limit := v.Size(); {
	case !v.valid():
		return newError(op, InvalidParameter, "unknown variant "+v.String())
	case p.size < 1:
		return newError(op, InvalidParameter, "digest length must be at least 1 byte")
	case p.size > limit:
		return newError(op, InvalidParameter, "digest length exceeds "+v.String()+" maximum")
	case len(p.key) > v.KeySize():
		return newError(op, InvalidParameter, "key length exceeds "+v.String()+" maximum")
	case len(p.salt) != 0 && len(p.salt) != v.SaltSize():
		return newError(op, InvalidParameter, "salt has the wrong width for "+v.String())
	case len(p.personal) != 0 && len(p.personal) != v.PersonalSize():
		return newError(op, InvalidParameter, "personalization has the wrong width for "+v.String())
	case p.depth == 0:
		return newError(op, InvalidParameter, "tree depth must be at least 1")
	case int(p.inner) > limit:
		return newError(op, InvalidParameter, "inner length exceeds "+v.String()+" maximum")
	case v == BLAKE2s && p.nodeOffset >= 1<<48:
		return newError(op, InvalidParameter, "node offset exceeds 48 bits")
	}
	return nil
}

// marshal packs p into its wire layout: 64 bytes for BLAKE2b, 32 for BLAKE2s.
func (p *params) marshal(v Variant) []byte {
	buf := make([]byte, v.pick(b2b.paramSize, b2s.paramSize))
	buf[0] = byte(p.size)
	buf[1] = byte(len(p.key))
	buf[2] = p.fanout
	buf[3] = p.depth
	buf[4] = byte(p.leafLength)
	buf[5] = byte(p.leafLength >> 8)
	buf[6] = byte(p.leafLength >> 16)
	buf[7] = byte(p.leafLength >> 24)

	offsetBytes := v.pick(8, 6)
	for i := 0; i < offsetBytes; i++ {
		buf[8+i] = byte(p.nodeOffset >> (8 * i))
	}
	tail := 8 + offsetBytes
	buf[tail] = p.nodeDepth
	buf[tail+1] = p.inner

	/* Reserved bytes stay zero. */
	saltAt := len(buf) / 2
	copy(buf[saltAt:], p.salt)
	copy(buf[saltAt+v.SaltSize():], p.personal)
	return buf
}

// initialState returns IV ⊕ parameter block, the chaining value before any data.
func initialState[W word](vp *variant[W], raw []byte) [8]W {
	var words [8]W
	loadWordsLE(words[:], raw)
	for i := range words {
		words[i] ^= vp.iv[i]
	}
	return words
}
