package meta

import (
	"fmt"

	"metareflect/internal/diag"
)

// Error represents a fatal invariant violation or resource exhaustion raised
// by the dynamic-value core. Registration failures are reported as plain
// booleans instead (see Registry.AddConstructor and friends). Error is
// surfaced via panic, matching the core's "fatal errors terminate the
// operation" propagation policy, except where PackSignature (and
// Span.Signature through it) returns a too-many-parameters Error as an
// ordinary error value.
type Error struct {
	Code    diag.Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("meta panic %s: %s", e.Code.ID(), e.Message)
}

// errorBuilder centralizes the core's panic sites so every caller raises a
// consistently worded, consistently coded Error.
type errorBuilder struct{}

var raiser errorBuilder

func (errorBuilder) make(code diag.Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (b errorBuilder) unknownType(id TypeID) *Error {
	return b.make(diag.RegUnknownType, "unknown type id %s", id)
}

func (b errorBuilder) tooManyBases(id TypeID) *Error {
	return b.make(diag.RegTooManyBases, "type %s exceeds the maximum base-set width", id)
}

func (b errorBuilder) missingConstructor(id TypeID, sig Signature) *Error {
	return b.make(diag.OpNoMatchingOverload, "type %s has no constructor for signature %q", id, sig)
}

func (b errorBuilder) missingDestructor(id TypeID) *Error {
	return b.make(diag.OpNoMatchingOverload, "type %s has no registered destructor", id)
}

func (b errorBuilder) missingAssigner(id TypeID, sig Signature) *Error {
	return b.make(diag.OpNoMatchingOverload, "type %s has no assigner for signature %q", id, sig)
}

func (b errorBuilder) unsupportedOperator(id TypeID, op string) *Error {
	return b.make(diag.OpUnsupportedOperator, "type %s does not support operator %s", id, op)
}

func (b errorBuilder) noConversionPath(from, to TypeID) *Error {
	return b.make(diag.OpNoConversionPath, "no converter or caster from %s to %s", from, to)
}

func (b errorBuilder) nullView() *Error {
	return b.make(diag.ValNullView, "operation attempted on an empty view")
}

func (b errorBuilder) typeMismatch(want TypeID, have TypeID) *Error {
	return b.make(diag.ValTypeMismatch, "expected type %s, view holds %s", want, have)
}

func (b errorBuilder) constViolation() *Error {
	return b.make(diag.ValConstViolation, "mutation attempted through a const qualifier")
}

func (b errorBuilder) notReference() *Error {
	return b.make(diag.ValNotReference, "operation requires a reference qualifier")
}

func (b errorBuilder) useAfterRelease(slot SlotIndex) *Error {
	return b.make(diag.ValUseAfterRelease, "slot %d used after its refcount reached zero", slot)
}

func (b errorBuilder) invalidSlot(slot SlotIndex) *Error {
	return b.make(diag.MemInvalidSlot, "slot %d is not owned by this pool", slot)
}

func (b errorBuilder) poolExhausted(id TypeID) *Error {
	return b.make(diag.MemPoolExhausted, "pool for type %s has reached its slot-count ceiling", id)
}

func (b errorBuilder) heapFragmented(id TypeID, n int) *Error {
	return b.make(diag.MemHeapFragmented, "heap for type %s has no free range of size %d", id, n)
}

func (b errorBuilder) heapOutOfRange(slot int) *Error {
	return b.make(diag.MemHeapOutOfRange, "slot %d falls outside the heap's allocated extent", slot)
}

func (b errorBuilder) spanOutOfBounds(i, n int) *Error {
	return b.make(diag.SpanOutOfBounds, "index %d out of bounds for span of length %d", i, n)
}

func (b errorBuilder) tooManyParams(n int) *Error {
	return b.make(diag.SpanTooManyParams, "signature has %d parameters, maximum is %d", n, maxSignatureParams)
}

func (b errorBuilder) arityMismatch(id TypeID, want, got int) *Error {
	return b.make(diag.OpArityMismatch, "type %s expects %d argument(s), got %d", id, want, got)
}
