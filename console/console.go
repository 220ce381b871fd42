// Package console implements the single-threaded cooperative scheduling
// loop that ties the 68000 core, the Z80 core, and the memory-mapped bus
// into a running machine: one orchestration step runs the 68000 clock step,
// then the Z80 clock step if the bus is free, then the VDP clock step, then
// drains one pending signal.
package console

import (
	"github.com/user-none/go-chip-genesis/bus"
	"github.com/user-none/go-chip-genesis/m68k"
	"github.com/user-none/go-chip-genesis/z80"
)

// VDPDevice is the video display processor's clock step, consumed but not
// implemented by this module: the rendering pipeline is out of scope. Step
// advances the VDP by one tick and returns the master cycles it consumed.
type VDPDevice interface {
	Step() int
}

// Console owns the shared memory space and both CPU cores. Neither core
// holds a reference to the other; all cross-core communication passes
// through bus.MemoryBus and its signal queue.
type Console struct {
	bus *bus.MemoryBus
	cpu *m68k.CPU
	z80 *z80.CPU
	vdp VDPDevice

	breakpoints map[uint32]bool
	breakHit    bool
}

// New constructs a Console over rom. vdp, vdpPort, and ctrl may be nil; a
// nil vdp skips the VDP clock step, a nil vdpPort makes the VDP port range
// fault, and a nil ctrl makes the controller registers read as 0 (see
// bus.New).
func New(rom []byte, vdpPort bus.VDPPort, ctrl bus.ControllerPort, vdp VDPDevice) *Console {
	b := bus.New(rom, vdpPort, ctrl)
	c := &Console{
		bus:         b,
		cpu:         m68k.New(b.M68KView()),
		z80:         z80.New(b.Z80View(), nil),
		vdp:         vdp,
		breakpoints: make(map[uint32]bool),
	}
	return c
}

// CPU returns the 68000 core.
func (c *Console) CPU() *m68k.CPU { return c.cpu }

// Z80 returns the Z80 co-processor core.
func (c *Console) Z80() *z80.CPU { return c.z80 }

// Bus returns the shared memory space.
func (c *Console) Bus() *bus.MemoryBus { return c.bus }

// SetBreakpoint arms a breakpoint at a 68000 program-counter value.
func (c *Console) SetBreakpoint(pc uint32) {
	c.breakpoints[pc] = true
}

// ClearBreakpoint disarms a previously armed breakpoint.
func (c *Console) ClearBreakpoint(pc uint32) {
	delete(c.breakpoints, pc)
}

// BreakHit reports whether a breakpoint fired on the most recent Step, and
// clears the flag.
func (c *Console) BreakHit() bool {
	hit := c.breakHit
	c.breakHit = false
	return hit
}

// Step runs one orchestration tick: the 68000 clock step, the Z80 clock
// step if the bus is currently free, the VDP clock step, then drains at
// most one pending signal. It returns the number of master cycles the
// 68000 consumed.
func (c *Console) Step() int {
	cycles := c.cpu.Step()

	if !c.bus.Z80BusGranted() {
		c.z80.Step()
	}

	if c.vdp != nil {
		c.vdp.Step()
	}

	c.drainSignal()

	if c.breakpoints[c.cpu.Registers().PC] {
		c.breakHit = true
	}

	return cycles
}

// drainSignal pops and handles at most one pending signal, per the
// orchestration loop's contract: the queue is drained between steps, not
// exhausted in one pass.
func (c *Console) drainSignal() {
	s, ok := c.bus.Signals().Pop()
	if !ok {
		return
	}
	switch s {
	case bus.SignalVInterrupt:
		c.cpu.RequestInterrupt(6, nil)
	case bus.SignalHInterrupt:
		c.cpu.RequestInterrupt(4, nil)
	case bus.SignalZ80Reset:
		c.z80.Reset()
	case bus.SignalZ80BusRequest, bus.SignalZ80BusReleased, bus.SignalCPUHalt:
		// No further action: bus gating already reflects these via
		// MemoryBus.Z80BusGranted, and CPUHalt is observed through
		// (*m68k.CPU).Halted rather than acted on here.
	}
}
