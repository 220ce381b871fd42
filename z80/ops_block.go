package z80

// registerBlockOps builds the ED-prefixed block transfer, search, and I/O
// instructions: LDI/LDD/LDIR/LDDR, CPI/CPD/CPIR/CPDR, INI/IND/INIR/INDR,
// OUTI/OUTD/OTIR/OTDR.
func registerBlockOps() {
	edTable[0xA0] = func(c *CPU) { blockLD(c, 1); c.cycles += 16 }
	edTable[0xA8] = func(c *CPU) { blockLD(c, -1); c.cycles += 16 }
	edTable[0xB0] = func(c *CPU) {
		blockLD(c, 1)
		if c.reg.BC() != 0 {
			c.reg.PC -= 2
			c.cycles += 21
		} else {
			c.cycles += 16
		}
	}
	edTable[0xB8] = func(c *CPU) {
		blockLD(c, -1)
		if c.reg.BC() != 0 {
			c.reg.PC -= 2
			c.cycles += 21
		} else {
			c.cycles += 16
		}
	}

	edTable[0xA1] = func(c *CPU) { blockCP(c, 1); c.cycles += 16 }
	edTable[0xA9] = func(c *CPU) { blockCP(c, -1); c.cycles += 16 }
	edTable[0xB1] = func(c *CPU) {
		blockCP(c, 1)
		if c.reg.BC() != 0 && c.reg.F&flagZ == 0 {
			c.reg.PC -= 2
			c.cycles += 21
		} else {
			c.cycles += 16
		}
	}
	edTable[0xB9] = func(c *CPU) {
		blockCP(c, -1)
		if c.reg.BC() != 0 && c.reg.F&flagZ == 0 {
			c.reg.PC -= 2
			c.cycles += 21
		} else {
			c.cycles += 16
		}
	}

	edTable[0xA2] = func(c *CPU) { blockIN(c, 1); c.cycles += 16 }
	edTable[0xAA] = func(c *CPU) { blockIN(c, -1); c.cycles += 16 }
	edTable[0xB2] = func(c *CPU) {
		blockIN(c, 1)
		if c.reg.B != 0 {
			c.reg.PC -= 2
			c.cycles += 21
		} else {
			c.cycles += 16
		}
	}
	edTable[0xBA] = func(c *CPU) {
		blockIN(c, -1)
		if c.reg.B != 0 {
			c.reg.PC -= 2
			c.cycles += 21
		} else {
			c.cycles += 16
		}
	}

	edTable[0xA3] = func(c *CPU) { blockOUT(c, 1); c.cycles += 16 }
	edTable[0xAB] = func(c *CPU) { blockOUT(c, -1); c.cycles += 16 }
	edTable[0xB3] = func(c *CPU) {
		blockOUT(c, 1)
		if c.reg.B != 0 {
			c.reg.PC -= 2
			c.cycles += 21
		} else {
			c.cycles += 16
		}
	}
	edTable[0xBB] = func(c *CPU) {
		blockOUT(c, -1)
		if c.reg.B != 0 {
			c.reg.PC -= 2
			c.cycles += 21
		} else {
			c.cycles += 16
		}
	}
}

// blockLD implements one LDI/LDD step: copy (HL) to (DE), advance both by
// dir, decrement BC. Flags: H and N cleared, P/V set iff BC-1 != 0, C
// unaffected; X/Y come from A+transferred-byte per documented behavior.
func blockLD(c *CPU, dir int16) {
	hl, de := c.reg.HL(), c.reg.DE()
	val := c.readBus(hl)
	c.writeBus(de, val)
	c.reg.SetHL(uint16(int32(hl) + int32(dir)))
	c.reg.SetDE(uint16(int32(de) + int32(dir)))
	bc := c.reg.BC() - 1
	c.reg.SetBC(bc)

	f := c.reg.F & (flagS | flagZ | flagC)
	setFlag(&f, flagH, false)
	setFlag(&f, flagN, false)
	setFlag(&f, flagPV, bc != 0)
	n := val + c.reg.A
	setFlag(&f, flagY, n&0x02 != 0)
	setFlag(&f, flagX, n&0x08 != 0)
	c.reg.F = f
}

// blockCP implements one CPI/CPD step: compare A against (HL) without
// storing, advance HL by dir, decrement BC.
func blockCP(c *CPU, dir int16) {
	hl := c.reg.HL()
	val := c.readBus(hl)
	c.reg.SetHL(uint16(int32(hl) + int32(dir)))
	bc := c.reg.BC() - 1
	c.reg.SetBC(bc)

	result := c.reg.A - val
	f := c.reg.F & flagC
	setFlag(&f, flagS, result&0x80 != 0)
	setFlag(&f, flagZ, result == 0)
	setFlag(&f, flagH, c.reg.A&0xF < val&0xF)
	setFlag(&f, flagPV, bc != 0)
	setFlag(&f, flagN, true)
	n := result
	if f&flagH != 0 {
		n--
	}
	setFlag(&f, flagY, n&0x02 != 0)
	setFlag(&f, flagX, n&0x08 != 0)
	c.reg.F = f
}

// blockIN implements one INI/IND step: read port (BC) into (HL), advance HL
// by dir, decrement B.
func blockIN(c *CPU, dir int16) {
	val := c.in(c.reg.BC())
	hl := c.reg.HL()
	c.writeBus(hl, val)
	c.reg.SetHL(uint16(int32(hl) + int32(dir)))
	c.reg.B--

	f := uint8(0)
	setFlag(&f, flagZ, c.reg.B == 0)
	setFlag(&f, flagS, c.reg.B&0x80 != 0)
	setFlag(&f, flagN, val&0x80 != 0)
	c.reg.F = f
}

// blockOUT implements one OUTI/OUTD step: decrement B, write (HL) to port
// (BC) using the decremented B, advance HL by dir.
func blockOUT(c *CPU, dir int16) {
	hl := c.reg.HL()
	val := c.readBus(hl)
	c.reg.B--
	c.out(c.reg.BC(), val)
	c.reg.SetHL(uint16(int32(hl) + int32(dir)))

	f := uint8(0)
	setFlag(&f, flagZ, c.reg.B == 0)
	setFlag(&f, flagS, c.reg.B&0x80 != 0)
	setFlag(&f, flagN, val&0x80 != 0)
	c.reg.F = f
}
