package meta

import (
	"encoding/binary"
	"strings"
)

// maxSignatureParams bounds the arity of any dispatchable parameter list.
const maxSignatureParams = 256

// Parameter is one (type, qualifier) pair in an argument list.
type Parameter struct {
	Type       TypeID
	Qualifiers Qualifier
}

// Signature is the canonical byte encoding of a parameter list: the
// concatenation of packed (type_id: i32 little-endian, qualifier: u8) pairs.
// Two signatures are equal iff their underlying bytes are equal, which in Go
// falls straight out of comparing the string values.
type Signature string

const paramWidth = 5 // 4 bytes TypeID + 1 byte Qualifier

// PackSignature builds the Signature for an ordered parameter list.
func PackSignature(params []Parameter) (Signature, error) {
	if len(params) > maxSignatureParams {
		return "", raiser.tooManyParams(len(params))
	}
	buf := make([]byte, len(params)*paramWidth)
	for i, p := range params {
		off := i * paramWidth
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(int32(p.Type)))
		buf[off+4] = byte(p.Qualifiers)
	}
	return Signature(buf), nil
}

// Params decodes a Signature back into its parameter list.
func (s Signature) Params() []Parameter {
	n := len(s) / paramWidth
	out := make([]Parameter, n)
	for i := 0; i < n; i++ {
		off := i * paramWidth
		out[i] = Parameter{
			Type:       TypeID(int32(binary.LittleEndian.Uint32([]byte(s[off : off+4])))),
			Qualifiers: Qualifier(s[off+4]),
		}
	}
	return out
}

// Arity returns the number of parameters encoded by the signature.
func (s Signature) Arity() int {
	return len(s) / paramWidth
}

func (s Signature) String() string {
	params := s.Params()
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.String() + "/" + p.Qualifiers.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
