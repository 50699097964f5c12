package wasm

import (
	"fmt"

	"github.com/wippyai/wasm-embedded/wasm/internal/binary"
)

func decodeTypeSection(r *binary.Reader) ([]FuncType, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]FuncType, count)
	for i := range out {
		mark := d.r.Mark()
		b, err := d.r.Byte()
		if err != nil {
			return nil, wrapReaderErr(d.r, err)
		}
		if b != FuncTypeByte {
			return nil, newParseError(mark, KindInvalidTypeHeader, fmt.Sprintf("0x%02x", b))
		}
		params, err := decodeValTypeVec(d)
		if err != nil {
			return nil, err
		}
		results, err := decodeValTypeVec(d)
		if err != nil {
			return nil, err
		}
		out[i] = FuncType{Params: params, Results: results}
	}
	return out, nil
}

func decodeValTypeVec(d *decoder) ([]ValType, error) {
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]ValType, count)
	for i := range out {
		vt, err := d.readValType()
		if err != nil {
			return nil, err
		}
		out[i] = vt
	}
	return out, nil
}

func decodeImportSection(r *binary.Reader) ([]Import, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]Import, count)
	for i := range out {
		namespace, err := d.readName()
		if err != nil {
			return nil, err
		}
		name, err := d.readName()
		if err != nil {
			return nil, err
		}
		mark := d.r.Mark()
		kind, err := d.r.Byte()
		if err != nil {
			return nil, wrapReaderErr(d.r, err)
		}
		imp := Import{Namespace: namespace, Name: name, Kind: kind}
		switch kind {
		case KindFunc:
			idx, err := d.readU32()
			if err != nil {
				return nil, err
			}
			imp.TypeIdx = TypeIdx(idx)
		case KindTable:
			tt, err := d.readTableType()
			if err != nil {
				return nil, err
			}
			imp.Table = tt
		case KindMemory:
			mt, err := d.readMemoryType()
			if err != nil {
				return nil, err
			}
			imp.Memory = mt
		case KindGlobal:
			gt, err := d.readGlobalType()
			if err != nil {
				return nil, err
			}
			imp.Global = gt
		default:
			return nil, newParseError(mark, KindUnknownImportDescription, fmt.Sprintf("0x%02x", kind))
		}
		out[i] = imp
	}
	return out, nil
}

func decodeFunctionSection(r *binary.Reader) ([]Function, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]Function, count)
	for i := range out {
		idx, err := d.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = Function{TypeIdx: TypeIdx(idx)}
	}
	return out, nil
}

func decodeTableSection(r *binary.Reader) ([]Table, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]Table, count)
	for i := range out {
		tt, err := d.readTableType()
		if err != nil {
			return nil, err
		}
		out[i] = Table{Type: tt}
	}
	return out, nil
}

func decodeMemorySection(r *binary.Reader) ([]Memory, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]Memory, count)
	for i := range out {
		mt, err := d.readMemoryType()
		if err != nil {
			return nil, err
		}
		out[i] = Memory{Type: mt}
	}
	return out, nil
}

func decodeGlobalSection(r *binary.Reader) ([]Global, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]Global, count)
	for i := range out {
		gt, err := d.readGlobalType()
		if err != nil {
			return nil, err
		}
		init, err := DecodeExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = Global{Type: gt, Init: init}
	}
	return out, nil
}

func decodeExportSection(r *binary.Reader) ([]Export, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]Export, count)
	for i := range out {
		name, err := d.readName()
		if err != nil {
			return nil, err
		}
		mark := d.r.Mark()
		kind, err := d.r.Byte()
		if err != nil {
			return nil, wrapReaderErr(d.r, err)
		}
		switch kind {
		case KindFunc, KindTable, KindMemory, KindGlobal:
		default:
			return nil, newParseError(mark, KindUnknownExportDescription, fmt.Sprintf("0x%02x", kind))
		}
		idx, err := d.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = Export{Name: name, Kind: kind, Index: idx}
	}
	return out, nil
}

func decodeCodeSection(r *binary.Reader) ([]Code, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]Code, count)
	for i := range out {
		payload, err := d.readBytesVec()
		if err != nil {
			return nil, err
		}
		if len(payload) == 0 || payload[len(payload)-1] != OpEnd {
			return nil, newParseError(d.r.MarkRelative(-1), KindInvalidCode, "function body missing trailing 0x0B")
		}
		body := binary.NewReader(payload)
		bd := &decoder{r: body}
		locals, err := decodeLocalGroups(bd)
		if err != nil {
			return nil, err
		}
		instrs, err := DecodeExpr(body)
		if err != nil {
			return nil, err
		}
		out[i] = Code{Locals: locals, Body: instrs}
	}
	return out, nil
}

func decodeLocalGroups(d *decoder) ([]LocalGroup, error) {
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]LocalGroup, count)
	for i := range out {
		n, err := d.readU32()
		if err != nil {
			return nil, err
		}
		vt, err := d.readValType()
		if err != nil {
			return nil, err
		}
		out[i] = LocalGroup{Count: n, Type: vt}
	}
	return out, nil
}

func decodeDataSection(r *binary.Reader) ([]Data, error) {
	d := &decoder{r: r}
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]Data, count)
	for i := range out {
		mode, err := d.readU32()
		if err != nil {
			return nil, err
		}
		data := Data{Mode: byte(mode)}
		switch mode {
		case 0:
			offset, err := DecodeExpr(r)
			if err != nil {
				return nil, err
			}
			data.Offset = offset
		case 1:
			// passive; no memory index, no offset
		case 2:
			memIdx, err := d.readU32()
			if err != nil {
				return nil, err
			}
			data.MemIdx = MemIdx(memIdx)
			offset, err := DecodeExpr(r)
			if err != nil {
				return nil, err
			}
			data.Offset = offset
		default:
			return nil, newParseError(d.r.MarkRelative(-1), KindInvalidSection, fmt.Sprintf("data mode %d", mode))
		}
		payload, err := d.readBytesVec()
		if err != nil {
			return nil, err
		}
		data.Bytes = payload
		out[i] = data
	}
	return out, nil
}
