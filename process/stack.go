package process

func (p *Process) push(v Dynamic) { p.stack = append(p.stack, v) }

func (p *Process) popI32() int32    { return p.pop().AsI32() }
func (p *Process) popU32() uint32   { return p.pop().AsU32() }
func (p *Process) popI64() int64    { return p.pop().AsI64() }
func (p *Process) popU64() uint64   { return p.pop().AsU64() }
func (p *Process) popF32() float32  { return p.pop().AsF32() }
func (p *Process) popF64() float64  { return p.pop().AsF64() }

func (p *Process) pushI32(v int32)     { p.push(FromI32(v)) }
func (p *Process) pushU32(v uint32)    { p.push(FromI32(int32(v))) }
func (p *Process) pushI64(v int64)     { p.push(FromI64(v)) }
func (p *Process) pushU64(v uint64)    { p.push(FromI64(int64(v))) }
func (p *Process) pushF32(v float32)   { p.push(FromF32(v)) }
func (p *Process) pushF64(v float64)   { p.push(FromF64(v)) }
func (p *Process) pushBool(b bool) {
	if b {
		p.pushI32(1)
	} else {
		p.pushI32(0)
	}
}
