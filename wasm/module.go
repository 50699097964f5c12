package wasm

import (
	"fmt"

	"github.com/wippyai/wasm-embedded/wasm/internal/binary"
)

// Module is the immutable, fully-decoded form of a Wasm binary: one
// ordered slice per section kind. It borrows the caller's input buffer —
// strings and data payloads are slices into that buffer, not copies.
type Module struct {
	Types     []FuncType
	Imports   []Import
	Functions []Function
	Tables    []Table
	Memories  []Memory
	Globals   []Global
	Exports   []Export
	Start     *FuncIdx
	Codes     []Code
	Datas     []Data
}

// Parse decodes a complete Wasm binary module. Each section kind may
// appear at most once; a duplicate section fails with InvalidSection.
func Parse(data []byte) (*Module, *ParseError) {
	r := binary.NewReader(data)

	magic, err := r.U32LE()
	if err != nil || magic != Magic {
		return nil, newParseError(r.MarkRelative(-4), KindInvalidHeader, "bad magic")
	}
	version, err := r.U32LE()
	if err != nil || version != Version {
		return nil, newParseError(r.MarkRelative(-4), KindInvalidHeader, "bad version")
	}

	m := &Module{}
	seen := map[byte]bool{}

	for r.Len() > 0 {
		secMark := r.Mark()
		id, err := r.Byte()
		if err != nil {
			return nil, newParseError(r.MarkRelative(-1), KindEndOfFile, "")
		}
		if id > SectionData {
			return nil, newParseError(secMark, KindInvalidSection, fmt.Sprintf("section id %d", id))
		}
		payload, err := r.LengthPrefixed()
		if err != nil {
			return nil, wrapReaderErr(r, err)
		}
		if id != SectionCustom {
			if seen[id] {
				return nil, newParseError(secMark, KindInvalidSection, fmt.Sprintf("duplicate section %d", id))
			}
			seen[id] = true
		}

		sub := binary.NewReader(payload)
		switch id {
		case SectionCustom:
			// ignored
		case SectionType:
			m.Types, err = decodeTypeSection(sub)
		case SectionImport:
			m.Imports, err = decodeImportSection(sub)
		case SectionFunction:
			m.Functions, err = decodeFunctionSection(sub)
		case SectionTable:
			m.Tables, err = decodeTableSection(sub)
		case SectionMemory:
			m.Memories, err = decodeMemorySection(sub)
		case SectionGlobal:
			m.Globals, err = decodeGlobalSection(sub)
		case SectionExport:
			m.Exports, err = decodeExportSection(sub)
		case SectionStart:
			d := &decoder{r: sub}
			var idx uint32
			idx, err = d.readU32()
			if err == nil {
				fi := FuncIdx(idx)
				m.Start = &fi
			}
		case SectionElement:
			// Element segments are out of this core's scope beyond what
			// table.init/elem.drop need at runtime; this core does not
			// decode the element section itself (see DESIGN.md).
		case SectionCode:
			m.Codes, err = decodeCodeSection(sub)
		case SectionData:
			m.Datas, err = decodeDataSection(sub)
		}
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				return nil, pe
			}
			return nil, newParseError(secMark, KindInvalidSection, err.Error())
		}
	}

	return m, nil
}

// CodeFor returns the code entry for funcIdx, accounting for imported
// functions occupying the lowest function indices.
func (m *Module) CodeFor(funcIdx FuncIdx) (*Code, bool) {
	n := uint32(len(m.importedFuncs()))
	idx := uint32(funcIdx)
	if idx < n {
		return nil, false
	}
	local := idx - n
	if int(local) >= len(m.Codes) {
		return nil, false
	}
	return &m.Codes[local], true
}

// ImportFor returns the import entry for funcIdx if it names an imported
// function, false otherwise.
func (m *Module) ImportFor(funcIdx FuncIdx) (*Import, bool) {
	imported := m.importedFuncs()
	idx := uint32(funcIdx)
	if int(idx) >= len(imported) {
		return nil, false
	}
	return imported[idx], true
}

// ExportByName scans the export vector for a matching name.
func (m *Module) ExportByName(name string) (*Export, bool) {
	for i := range m.Exports {
		if m.Exports[i].Name == name {
			return &m.Exports[i], true
		}
	}
	return nil, false
}

// TypeOf returns the signature of a function index, following through an
// import's declared type or a local function's declared type.
func (m *Module) TypeOf(funcIdx FuncIdx) (*FuncType, bool) {
	if imp, ok := m.ImportFor(funcIdx); ok {
		if int(imp.TypeIdx) >= len(m.Types) {
			return nil, false
		}
		return &m.Types[imp.TypeIdx], true
	}
	n := uint32(len(m.importedFuncs()))
	local := uint32(funcIdx) - n
	if int(local) >= len(m.Functions) {
		return nil, false
	}
	ti := m.Functions[local].TypeIdx
	if int(ti) >= len(m.Types) {
		return nil, false
	}
	return &m.Types[ti], true
}

func (m *Module) importedFuncs() []*Import {
	var out []*Import
	for i := range m.Imports {
		if m.Imports[i].Kind == KindFunc {
			out = append(out, &m.Imports[i])
		}
	}
	return out
}
