// Command genesis-inspect loads a flat Genesis/Mega Drive ROM image, runs
// it for a fixed cycle budget, and dumps the final register state of both
// CPU cores. It does no mapper detection, trace output, or interactive
// breakpoints; it is a thin flag-parsed driver over the console package.
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/user-none/go-chip-genesis/console"
)

func main() {
	app := &cli.App{
		Name:    "genesis-inspect",
		Usage:   "run a Genesis/Mega Drive ROM for a fixed cycle budget and dump CPU state",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "rom",
				Aliases:  []string{"r"},
				Usage:    "flat ROM image to load",
				Required: true,
			},
			&cli.Int64Flag{
				Name:    "cycles",
				Aliases: []string{"c"},
				Usage:   "master cycle budget to run before dumping state",
				Value:   1_000_000,
			},
			&cli.UintFlag{
				Name:  "break",
				Usage: "68000 program counter to break on (0 disables)",
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	rom, err := os.ReadFile(c.String("rom"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading ROM: %v", err), 1)
	}

	budget := c.Int64("cycles")
	brk := c.Uint("break")

	m := console.New(rom, nil, nil, nil)
	if brk != 0 {
		m.SetBreakpoint(uint32(brk))
	}

	var spent int64
	for spent < budget {
		spent += int64(m.Step())
		if m.CPU().Halted() {
			fmt.Println("68000 halted (address error or double fault)")
			break
		}
		if m.BreakHit() {
			fmt.Printf("breakpoint hit at 0x%06X\n", brk)
			break
		}
	}

	dumpState(m)
	return nil
}

func dumpState(m *console.Console) {
	r := m.CPU().Registers()
	fmt.Println("== 68000 ==")
	for i, d := range r.D {
		fmt.Printf("D%d=%08X ", i, d)
	}
	fmt.Println()
	for i, a := range r.A {
		fmt.Printf("A%d=%08X ", i, a)
	}
	fmt.Println()
	fmt.Printf("PC=%08X SR=%04X cycles=%d\n", r.PC, r.SR, m.CPU().Cycles())

	z := m.Z80().Registers()
	fmt.Println("== Z80 ==")
	fmt.Printf("AF=%04X BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X PC=%04X cycles=%d\n",
		z.AF(), z.BC(), z.DE(), z.HL(), z.IX, z.IY, z.SP, z.PC, m.Z80().Cycles())
}
