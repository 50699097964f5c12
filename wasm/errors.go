package wasm

import (
	"fmt"

	liberrors "github.com/wippyai/wasm-embedded/errors"
	"github.com/wippyai/wasm-embedded/wasm/internal/binary"
)

// ParseErrorKind tags the specific way a module failed to decode.
type ParseErrorKind string

// Parse error kinds, per spec.
const (
	KindEndOfFile                  ParseErrorKind = "end_of_file"
	KindInvalidHeader               ParseErrorKind = "invalid_header"
	KindInvalidTypeHeader           ParseErrorKind = "invalid_type_header"
	KindInvalidSection              ParseErrorKind = "invalid_section"
	KindInvalidCode                 ParseErrorKind = "invalid_code"
	KindUnknownValType               ParseErrorKind = "unknown_val_type"
	KindUnknownRefType               ParseErrorKind = "unknown_ref_type"
	KindUnknownExportDescription     ParseErrorKind = "unknown_export_description"
	KindUnknownImportDescription     ParseErrorKind = "unknown_import_description"
	KindUnknownInstruction           ParseErrorKind = "unknown_instruction"
	KindUnknownExtendedInstruction   ParseErrorKind = "unknown_extended_instruction"
	KindUnknownVectorInstruction     ParseErrorKind = "unknown_vector_instruction"
	KindDuplicateElse                ParseErrorKind = "duplicate_else"
	KindInvalidLaneIndex             ParseErrorKind = "invalid_lane_index"
	KindInvalidUTF8                  ParseErrorKind = "invalid_utf8"
	KindIntegerOverflow               ParseErrorKind = "integer_overflow"
)

// ParseError is anchored at a byte offset in the original input and tagged
// with a Kind describing the specific decode failure.
type ParseError struct {
	Cause  *liberrors.Error
	Kind   ParseErrorKind
	Detail string
	Offset int
	Max    int // populated for KindInvalidLaneIndex
}

func (e *ParseError) Error() string {
	if e.Kind == KindInvalidLaneIndex {
		return fmt.Sprintf("wasm: at offset %d: %s (max %d)", e.Offset, e.Kind, e.Max)
	}
	if e.Detail != "" {
		return fmt.Sprintf("wasm: at offset %d: %s: %s", e.Offset, e.Kind, e.Detail)
	}
	return fmt.Sprintf("wasm: at offset %d: %s", e.Offset, e.Kind)
}

// Unwrap exposes the structured library error for errors.Is/As.
func (e *ParseError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// libKind maps a ParseErrorKind onto the shared library Kind taxonomy.
func libKind(k ParseErrorKind) liberrors.Kind {
	switch k {
	case KindEndOfFile:
		return liberrors.KindOutOfBounds
	case KindInvalidUTF8:
		return liberrors.KindInvalidUTF8
	case KindIntegerOverflow:
		return liberrors.KindOverflow
	case KindUnknownInstruction, KindUnknownExtendedInstruction, KindUnknownVectorInstruction,
		KindUnknownValType, KindUnknownRefType, KindUnknownExportDescription, KindUnknownImportDescription:
		return liberrors.KindUnsupported
	default:
		return liberrors.KindInvalidData
	}
}

// newParseError builds a ParseError anchored at mark, tagged with kind.
func newParseError(mark binary.Mark, kind ParseErrorKind, detail string) *ParseError {
	cause := liberrors.New(liberrors.PhaseDecode, libKind(kind)).Detail(detail).Build()
	return &ParseError{Kind: kind, Offset: mark.Offset, Detail: detail, Cause: cause}
}

// errAtReader anchors a ParseError at the reader's current position
// (r.Mark()); it does not shift back onto an already-consumed byte.
func errAtReader(r *binary.Reader, kind ParseErrorKind, detail string) *ParseError {
	return newParseError(r.Mark(), kind, detail)
}

// wrapReaderErr translates a binary.Reader error (EndOfFile, LEB128
// overflow, invalid UTF-8) into a ParseError anchored at the byte that
// caused it.
func wrapReaderErr(r *binary.Reader, err error) *ParseError {
	mark := r.MarkRelative(-1)
	switch e := err.(type) {
	case *binary.ErrOverflow:
		return newParseError(mark, KindIntegerOverflow, e.TypeName)
	default:
		if binary.IsInvalidUTF8(err) {
			return newParseError(mark, KindInvalidUTF8, "")
		}
		if err == binary.ErrEndOfFile {
			return newParseError(mark, KindEndOfFile, "")
		}
		return newParseError(mark, KindEndOfFile, err.Error())
	}
}
