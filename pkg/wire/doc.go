// Package wire is the primitive layer of the record format: fixed-width
// little-endian scalars, 32-byte identities, length-prefixed byte strings,
// optional values and count-prefixed sequences. Nothing is padded or aligned.
//
// Encoders write into a caller-owned buffer and never allocate. Decoders
// return byte strings as views into the input buffer.
package wire
