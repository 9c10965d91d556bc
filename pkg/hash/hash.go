package hash

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/zeebo/blake3"
)

// Hash is the hash function we use for Fiat-Shamir challenges.
//
// Internally, this is a wrapper around blake3, whose extendable output lets the
// digest be used as a stream of random bytes.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash struct where the internal hash function is initialized with "PAILLIER".
func New() *Hash {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.Write([]byte("PAILLIER"))
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - *big.Int
//   - *saferith.Nat
//   - *saferith.Modulus
//   - hash.WriterToWithDomain
//
// This function will apply its own domain separation for the first types.
// The last type already suggests which domain to use, and this function respects it.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var toBeWritten WriterToWithDomain
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			toBeWritten = &BytesWithDomain{"[]byte", t}
		case *big.Int:
			if t == nil {
				return fmt.Errorf("hash.Hash: write *big.Int: nil")
			}
			b, _ := t.GobEncode()
			toBeWritten = &BytesWithDomain{"big.Int", b}
		case *saferith.Nat:
			if t == nil {
				return fmt.Errorf("hash.Hash: write *saferith.Nat: nil")
			}
			// the announced length is not part of the value, so only the true length is written
			toBeWritten = &BytesWithDomain{"saferith.Nat", append([]byte{}, t.Big().Bytes()...)}
		case *saferith.Modulus:
			if t == nil {
				return fmt.Errorf("hash.Hash: write *saferith.Modulus: nil")
			}
			toBeWritten = &BytesWithDomain{"saferith.Modulus", t.Bytes()}
		case WriterToWithDomain:
			toBeWritten = t
		default:
			panic("hash.Hash: unsupported type")
		}
		if err := writeWithDomain(hash.h, toBeWritten); err != nil {
			return fmt.Errorf("hash.Hash: write %T: %w", d, err)
		}
	}
	return nil
}

// writeWithDomain writes out a piece of data, using a domain string, and a length prefix.
//
// We write out the domain, the data, and then the length of both, to
// prevent ambiguities between different encodings.
func writeWithDomain(h io.Writer, data WriterToWithDomain) error {
	var buf bytes.Buffer
	if _, err := buf.WriteString(data.Domain()); err != nil {
		return err
	}
	domainLen := buf.Len()
	if _, err := data.WriteTo(&buf); err != nil {
		return err
	}
	dataLen := buf.Len() - domainLen

	var lengths [16]byte
	binary.BigEndian.PutUint64(lengths[:8], uint64(domainLen))
	binary.BigEndian.PutUint64(lengths[8:], uint64(dataLen))
	buf.Write(lengths[:])

	_, err := h.Write(buf.Bytes())
	return err
}
