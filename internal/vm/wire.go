package vm

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Compiled chunk file framing: magic + version, then one CBOR-encoded
// chunk. Canonical encoding keeps builds deterministic.
var chunkMagic = []byte("ORNC")

const wireVersion = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalChunk serializes a chunk to the compiled file format.
func MarshalChunk(c *Chunk) ([]byte, error) {
	body, err := cborEncMode.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("vm: marshal chunk: %w", err)
	}

	out := make([]byte, 0, len(chunkMagic)+1+len(body))
	out = append(out, chunkMagic...)
	out = append(out, wireVersion)
	out = append(out, body...)
	return out, nil
}

// UnmarshalChunk deserializes and validates a compiled chunk.
func UnmarshalChunk(data []byte) (*Chunk, error) {
	if len(data) < len(chunkMagic)+1 || !bytes.Equal(data[:len(chunkMagic)], chunkMagic) {
		return nil, fmt.Errorf("vm: not a compiled chunk (bad magic)")
	}
	if v := data[len(chunkMagic)]; v != wireVersion {
		return nil, fmt.Errorf("vm: unsupported chunk version %d (want %d)", v, wireVersion)
	}

	var c Chunk
	if err := cbor.Unmarshal(data[len(chunkMagic)+1:], &c); err != nil {
		return nil, fmt.Errorf("vm: unmarshal chunk: %w", err)
	}

	if err := validateChunk(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// validateChunk checks the structural invariants the engine relies on
// before it will fetch a single byte.
func validateChunk(c *Chunk) error {
	if len(c.Lines) != len(c.Code) {
		return fmt.Errorf("vm: line table length %d does not match code length %d", len(c.Lines), len(c.Code))
	}
	if len(c.Constants) > MaxConstants {
		return fmt.Errorf("vm: constant pool has %d entries (max %d)", len(c.Constants), MaxConstants)
	}
	for i, v := range c.Constants {
		switch v.Type {
		case ValNil, ValBool, ValNumber:
		default:
			return fmt.Errorf("vm: constant %d has unknown tag %d", i, v.Type)
		}
	}
	return nil
}
