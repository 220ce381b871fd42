package z80

func init() {
	registerED()
	registerBlockOps()
}

// registerED builds the ED-prefixed extended instruction set: 16-bit
// ADC/SBC against HL, memory-indirect loads of BC/DE/HL/SP, interrupt mode
// selection, the I/R transfer instructions, NEG, RETN/RETI, and the
// port-mapped IN r,(C)/OUT (C),r family. The documented opcodes are
// populated, along with the undocumented NEG, RETN and IM mirrors and the
// slot-6 IN (C)/OUT (C),0 forms; an ED byte with no table entry behaves as
// an 8-T-state NOP.
func registerED() {
	type rp struct {
		get func(c *CPU) uint16
		set func(c *CPU, v uint16)
	}
	pairs := [4]rp{
		{func(c *CPU) uint16 { return c.reg.BC() }, func(c *CPU, v uint16) { c.reg.SetBC(v) }},
		{func(c *CPU) uint16 { return c.reg.DE() }, func(c *CPU, v uint16) { c.reg.SetDE(v) }},
		{func(c *CPU) uint16 { return c.reg.HL() }, func(c *CPU, v uint16) { c.reg.SetHL(v) }},
		{func(c *CPU) uint16 { return c.reg.SP }, func(c *CPU, v uint16) { c.reg.SP = v }},
	}

	for pp := uint8(0); pp < 4; pp++ {
		get, set := pairs[pp].get, pairs[pp].set
		base := 0x40 | pp<<4

		edTable[base+0x02] = func(c *CPU) {
			hl := c.reg.HL()
			val := get(c)
			var cIn uint32
			if c.reg.F&flagC != 0 {
				cIn = 1
			}
			result := uint32(hl) - uint32(val) - cIn
			r16 := uint16(result)
			var f uint8
			setFlag(&f, flagS, r16&0x8000 != 0)
			setFlag(&f, flagZ, r16 == 0)
			setFlag(&f, flagH, (int32(hl&0xFFF) - int32(val&0xFFF) - int32(cIn)) < 0)
			setFlag(&f, flagPV, (hl^val)&0x8000 != 0 && (hl^r16)&0x8000 != 0)
			setFlag(&f, flagN, true)
			setFlag(&f, flagC, result > 0xFFFF)
			setFlag(&f, flagX, uint8(r16>>8)&0x08 != 0)
			setFlag(&f, flagY, uint8(r16>>8)&0x20 != 0)
			c.reg.F = f
			c.reg.SetHL(r16)
			c.cycles += 15
		}

		edTable[base+0x0A] = func(c *CPU) {
			hl := c.reg.HL()
			val := get(c)
			var cIn uint32
			if c.reg.F&flagC != 0 {
				cIn = 1
			}
			result := uint32(hl) + uint32(val) + cIn
			r16 := uint16(result)
			var f uint8
			setFlag(&f, flagS, r16&0x8000 != 0)
			setFlag(&f, flagZ, r16 == 0)
			setFlag(&f, flagH, (hl&0xFFF)+(val&0xFFF)+uint16(cIn) > 0xFFF)
			setFlag(&f, flagPV, (hl^val)&0x8000 == 0 && (hl^r16)&0x8000 != 0)
			setFlag(&f, flagN, false)
			setFlag(&f, flagC, result > 0xFFFF)
			setFlag(&f, flagX, uint8(r16>>8)&0x08 != 0)
			setFlag(&f, flagY, uint8(r16>>8)&0x20 != 0)
			c.reg.F = f
			c.reg.SetHL(r16)
			c.cycles += 15
		}

		edTable[base+0x03] = func(c *CPU) {
			addr := c.fetch16()
			c.write16(addr, get(c))
			c.cycles += 20
		}

		edTable[base+0x0B] = func(c *CPU) {
			addr := c.fetch16()
			set(c, c.read16(addr))
			c.cycles += 20
		}
	}

	for r := uint8(0); r < 8; r++ {
		reg := r
		edTable[0x40|reg<<3] = func(c *CPU) {
			val := c.in(c.reg.BC())
			if reg != 6 {
				c.writeReg8(reg, val)
			}
			f := c.reg.F & flagC
			setSZXY(&f, val)
			setFlag(&f, flagPV, parity(val))
			c.reg.F = f
			c.cycles += 12
		}
		edTable[0x41|reg<<3] = func(c *CPU) {
			var val uint8
			if reg != 6 {
				val = c.readReg8(reg)
			}
			c.out(c.reg.BC(), val)
			c.cycles += 12
		}
	}

	for _, op := range []uint8{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		edTable[op] = func(c *CPU) {
			val := c.reg.A
			c.reg.A = 0
			c.alu8(aluSUB, val)
			c.cycles += 8
		}
	}
	for _, op := range []uint8{0x45, 0x55, 0x65, 0x75} {
		edTable[op] = func(c *CPU) {
			c.reg.IFF1 = c.reg.IFF2
			c.reg.PC = c.pop()
			c.cycles += 14
		}
	}
	for _, op := range []uint8{0x4D, 0x5D, 0x6D, 0x7D} {
		edTable[op] = func(c *CPU) {
			c.reg.IFF1 = c.reg.IFF2
			c.reg.PC = c.pop()
			c.cycles += 14
		}
	}

	for _, op := range []uint8{0x46, 0x4E, 0x66, 0x6E} {
		edTable[op] = func(c *CPU) { c.reg.IM = 0; c.cycles += 8 }
	}
	edTable[0x56] = func(c *CPU) { c.reg.IM = 1; c.cycles += 8 }
	edTable[0x76] = func(c *CPU) { c.reg.IM = 1; c.cycles += 8 }
	edTable[0x5E] = func(c *CPU) { c.reg.IM = 2; c.cycles += 8 }
	edTable[0x7E] = func(c *CPU) { c.reg.IM = 2; c.cycles += 8 }

	edTable[0x47] = func(c *CPU) { c.reg.I = c.reg.A; c.cycles += 9 }
	edTable[0x4F] = func(c *CPU) { c.reg.R = c.reg.A; c.cycles += 9 }
	edTable[0x57] = func(c *CPU) {
		c.reg.A = c.reg.I
		f := c.reg.F & flagC
		setSZXY(&f, c.reg.A)
		setFlag(&f, flagPV, c.reg.IFF2)
		c.reg.F = f
		c.cycles += 9
	}
	edTable[0x5F] = func(c *CPU) {
		c.reg.A = c.reg.R
		f := c.reg.F & flagC
		setSZXY(&f, c.reg.A)
		setFlag(&f, flagPV, c.reg.IFF2)
		c.reg.F = f
		c.cycles += 9
	}

	edTable[0x67] = func(c *CPU) { // RRD
		addr := c.reg.HL()
		m := c.readBus(addr)
		a := c.reg.A
		c.reg.A = (a & 0xF0) | (m & 0x0F)
		c.writeBus(addr, (m>>4)|(a<<4))
		f := c.reg.F & flagC
		setSZXY(&f, c.reg.A)
		setFlag(&f, flagPV, parity(c.reg.A))
		c.reg.F = f
		c.cycles += 18
	}
	edTable[0x6F] = func(c *CPU) { // RLD
		addr := c.reg.HL()
		m := c.readBus(addr)
		a := c.reg.A
		c.reg.A = (a & 0xF0) | (m >> 4)
		c.writeBus(addr, (m<<4)|(a&0x0F))
		f := c.reg.F & flagC
		setSZXY(&f, c.reg.A)
		setFlag(&f, flagPV, parity(c.reg.A))
		c.reg.F = f
		c.cycles += 18
	}
}
