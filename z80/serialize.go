package z80

import (
	"encoding/binary"
	"errors"
)

// cpuSerializeVersion is incremented whenever the binary layout changes.
const cpuSerializeVersion = 1

// cpuSerializeSize is the number of bytes produced by CPU.Serialize.
const cpuSerializeSize = 50

// SerializeSize returns the number of bytes needed for Serialize.
func (c *CPU) SerializeSize() int { return cpuSerializeSize }

// Serialize writes the full CPU state into buf, which must be at least
// SerializeSize() bytes. Bus references are not included.
func (c *CPU) Serialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("z80: serialize buffer too small")
	}

	buf[0] = cpuSerializeVersion
	le := binary.LittleEndian
	off := 1

	buf[off] = c.reg.A
	buf[off+1] = c.reg.F
	buf[off+2] = c.reg.B
	buf[off+3] = c.reg.C
	buf[off+4] = c.reg.D
	buf[off+5] = c.reg.E
	buf[off+6] = c.reg.H
	buf[off+7] = c.reg.L
	off += 8

	buf[off] = c.reg.A2
	buf[off+1] = c.reg.F2
	buf[off+2] = c.reg.B2
	buf[off+3] = c.reg.C2
	buf[off+4] = c.reg.D2
	buf[off+5] = c.reg.E2
	buf[off+6] = c.reg.H2
	buf[off+7] = c.reg.L2
	off += 8

	le.PutUint16(buf[off:], c.reg.IX)
	off += 2
	le.PutUint16(buf[off:], c.reg.IY)
	off += 2
	le.PutUint16(buf[off:], c.reg.SP)
	off += 2
	le.PutUint16(buf[off:], c.reg.PC)
	off += 2

	buf[off] = c.reg.I
	buf[off+1] = c.reg.R
	off += 2

	buf[off] = boolByte(c.reg.IFF1)
	buf[off+1] = boolByte(c.reg.IFF2)
	buf[off+2] = c.reg.IM
	off += 3

	le.PutUint64(buf[off:], c.cycles)
	off += 8

	buf[off] = boolByte(c.halted)
	buf[off+1] = boolByte(c.stopped)
	buf[off+2] = boolByte(c.pendingNMI)
	buf[off+3] = boolByte(c.pendingINT)
	buf[off+4] = c.intVector
	buf[off+5] = boolByte(c.eiDelay)
	off += 6

	le.PutUint16(buf[off:], c.prevPC)
	off += 2

	le.PutUint32(buf[off:], uint32(int32(c.deficit)))
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Deserialize restores CPU state from buf, which must be at least
// SerializeSize() bytes. The bus, cycleBus, and io fields are left
// unchanged; idx is reset to nil since it is only ever non-nil mid-dispatch.
func (c *CPU) Deserialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("z80: deserialize buffer too small")
	}
	if buf[0] != cpuSerializeVersion {
		return errors.New("z80: unsupported serialize version")
	}

	le := binary.LittleEndian
	off := 1

	c.reg.A = buf[off]
	c.reg.F = buf[off+1]
	c.reg.B = buf[off+2]
	c.reg.C = buf[off+3]
	c.reg.D = buf[off+4]
	c.reg.E = buf[off+5]
	c.reg.H = buf[off+6]
	c.reg.L = buf[off+7]
	off += 8

	c.reg.A2 = buf[off]
	c.reg.F2 = buf[off+1]
	c.reg.B2 = buf[off+2]
	c.reg.C2 = buf[off+3]
	c.reg.D2 = buf[off+4]
	c.reg.E2 = buf[off+5]
	c.reg.H2 = buf[off+6]
	c.reg.L2 = buf[off+7]
	off += 8

	c.reg.IX = le.Uint16(buf[off:])
	off += 2
	c.reg.IY = le.Uint16(buf[off:])
	off += 2
	c.reg.SP = le.Uint16(buf[off:])
	off += 2
	c.reg.PC = le.Uint16(buf[off:])
	off += 2

	c.reg.I = buf[off]
	c.reg.R = buf[off+1]
	off += 2

	c.reg.IFF1 = buf[off] != 0
	c.reg.IFF2 = buf[off+1] != 0
	c.reg.IM = buf[off+2]
	off += 3

	c.cycles = le.Uint64(buf[off:])
	off += 8

	c.halted = buf[off] != 0
	c.stopped = buf[off+1] != 0
	c.pendingNMI = buf[off+2] != 0
	c.pendingINT = buf[off+3] != 0
	c.intVector = buf[off+4]
	c.eiDelay = buf[off+5] != 0
	off += 6

	c.prevPC = le.Uint16(buf[off:])
	off += 2

	c.deficit = int(int32(le.Uint32(buf[off:])))
	c.idx = nil
	return nil
}
