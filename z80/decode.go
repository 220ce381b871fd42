package z80

// opFunc executes one decoded instruction against the CPU.
type opFunc func(c *CPU)

// mainTable, cbTable, and edTable are built once at init() time by the
// register*() functions in the ops_*.go files, a generator-table-at-init-time
// pattern rather than a giant switch.
var (
	mainTable [256]opFunc
	cbTable   [256]opFunc
	edTable   [256]opFunc
	ddTable   [256]opFunc
	fdTable   [256]opFunc
)

// dispatch decodes and executes the instruction starting with the given
// opcode byte. Dispatch-by-prefix is the only table layout this core uses
// (base/CB/DD/ED/FD, with DDCB/FDCB folded into the DD/FD path as a
// displacement fetch ahead of a second opcode byte).
func (c *CPU) dispatch(op uint8) {
	switch op {
	case 0xCB:
		sub := c.fetch()
		c.reg.R = bumpR(c.reg.R)
		if fn := cbTable[sub]; fn != nil {
			fn(c)
		} else {
			logFault("unimplemented opcode CB %02X at PC=%04X", sub, c.prevPC)
		}
	case 0xED:
		sub := c.fetch()
		c.reg.R = bumpR(c.reg.R)
		if fn := edTable[sub]; fn != nil {
			fn(c)
		} else {
			logFault("unimplemented opcode ED %02X at PC=%04X", sub, c.prevPC)
			c.cycles += 8 // undocumented ED opcode behaves as a long NOP
		}
	case 0xDD:
		c.dispatchIndexed(&c.reg.IX, ddTable)
	case 0xFD:
		c.dispatchIndexed(&c.reg.IY, fdTable)
	default:
		if fn := mainTable[op]; fn != nil {
			fn(c)
		} else {
			logFault("unimplemented opcode %02X at PC=%04X", op, c.prevPC)
			c.cycles += 4 // undocumented main-table opcode behaves as a NOP
		}
	}
}

// dispatchIndexed handles the DD/FD prefix family, including the DDCB/FDCB
// sub-prefix whose displacement byte precedes the real opcode byte rather
// than following it.
func (c *CPU) dispatchIndexed(idx *uint16, table [256]opFunc) {
	op := c.fetch()
	c.reg.R = bumpR(c.reg.R)

	if op == 0xCB {
		disp := int8(c.fetch())
		sub := c.fetch()
		addr := uint16(int32(*idx) + int32(disp))
		dispatchIndexedCB(c, addr, sub)
		return
	}

	prev := c.idx
	c.idx = idx
	if fn := table[op]; fn != nil {
		fn(c)
	} else if fn := mainTable[op]; fn != nil {
		// DD/FD before an opcode that never references HL is documented to
		// behave exactly like the unprefixed form (just slower).
		fn(c)
		c.cycles += 4
	} else {
		c.cycles += 8
	}
	c.idx = prev
}
