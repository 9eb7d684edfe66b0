// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

// Command apexrun loads an APEX executable (SAV, BIN, or raw) and
// drives the CPU/APEX emulation loop to completion, optionally
// printing instruction-set introspection tables or run statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ericsmith/apex6502/apex"
	"github.com/ericsmith/apex6502/cpu"
	"github.com/ericsmith/apex6502/internal/config"
	"github.com/ericsmith/apex6502/internal/diag"
	"github.com/ericsmith/apex6502/internal/report"
	"github.com/ericsmith/apex6502/internal/stats"
)

const configFileName = ".apexrc.toml"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(configFileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var (
		cmos            bool
		binFormat       bool
		rawFormat       bool
		inputFn         string
		outputFn        string
		printerFn       string
		statsRequested  bool
		trace           bool
		memTrace        bool
		dumpFn          string
		hexTable        bool
		hexTableDetail  bool
		summaryTable    bool
	)

	flag.BoolVar(&cmos, "cmos", cfg.CMOS, "select CMOS R65C02 profile")
	flag.BoolVar(&cmos, "c", cfg.CMOS, "select CMOS R65C02 profile (shorthand)")
	flag.BoolVar(&binFormat, "bin", false, "executable is in APEX BIN format")
	flag.BoolVar(&binFormat, "b", false, "executable is in APEX BIN format (shorthand)")
	flag.BoolVar(&rawFormat, "raw", false, "executable is a raw binary")
	flag.BoolVar(&rawFormat, "r", false, "executable is a raw binary (shorthand)")
	flag.StringVar(&inputFn, "i", cfg.Input, "input file for the file byte device")
	flag.StringVar(&outputFn, "o", cfg.Output, "output file for the file byte device")
	flag.StringVar(&printerFn, "p", cfg.Printer, "output file for the printer device")
	flag.BoolVar(&statsRequested, "stats", cfg.Stats, "print run statistics on exit")
	flag.BoolVar(&statsRequested, "s", cfg.Stats, "print run statistics on exit (shorthand)")
	flag.BoolVar(&trace, "trace", cfg.Trace, "trace executed instructions")
	flag.BoolVar(&memTrace, "memtrace", cfg.MemTrace, "trace memory writes")
	flag.StringVar(&dumpFn, "dump", "", "dump the full memory image to this file on exit")
	flag.BoolVar(&hexTable, "hextable", false, "print the opcode matrix and exit")
	flag.BoolVar(&hexTableDetail, "hextabledetail", false, "print the opcode matrix with detail and exit")
	flag.BoolVar(&summaryTable, "summarytable", false, "print the mnemonic summary table and exit")
	flag.Parse()

	profile := cpu.CPU6502
	if cmos {
		profile = cpu.CPUR65C02
	}

	if hexTable || hexTableDetail {
		report.OpcodeMatrix(os.Stdout, cpu.GetInstructionSet(profile), hexTableDetail)
		fmt.Println()
	}
	if summaryTable {
		report.SummaryTable(os.Stdout, cpu.GetInstructionSet(profile))
		fmt.Println()
	}
	if hexTable || hexTableDetail || summaryTable {
		return 0
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "apexrun: exactly one executable path must be given")
		return 1
	}
	executableFn := args[0]

	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(profile, mem)
	ap := apex.New(mem)

	log := diag.New(os.Stderr)
	mem.SetLogger(log)
	c.SetLogger(log)
	ap.SetLogger(log)

	nullDev := apex.NewNull()
	if err := ap.InstallDevice(7, nullDev); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// The same console device is installed at both slot 0 and slot 1,
	// so reads and writes share one prevOutWasCR latch, matching the
	// reference runner's single ApexConsoleDevice shared across both
	// directions.
	console := apex.NewConsole(os.Stdin, os.Stdout)
	if err := ap.InstallDevice(0, console); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := ap.InstallDevice(1, console); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	printer := apex.NewPrinter(io.Discard)
	if printerFn != "" {
		f, err := os.Create(printerFn)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		printer = apex.NewPrinter(f)
	}
	if err := ap.InstallDevice(2, printer); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fileDev := apex.NewFile()
	if inputFn != "" {
		if err := fileDev.OpenInputFile(inputFn, false); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if outputFn != "" {
		if err := fileDev.OpenOutputFile(outputFn, false); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if err := ap.InstallDevice(3, fileDev); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Clear D explicitly before init, regardless of the reset default,
	// matching the reference runner's registers.clear(Flag::D) call
	// made just before apex_sp->init().
	c.Reg.Decimal = false

	ap.Init()
	switch {
	case binFormat:
		if err := mem.LoadApexBin(executableFn); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		c.SetPC(apex.SysPageAddress + apex.VStart)
	case rawFormat:
		const loadAddr = 0x0000
		const execAddr = 0x0400
		if _, err := mem.LoadRawBin(executableFn, loadAddr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		c.SetPC(execAddr)
	default:
		if err := mem.LoadApexSav(executableFn); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		c.SetPC(apex.SysPageAddress + apex.VStart)
	}

	c.SetTrace(trace)
	mem.SetTrace(memTrace)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	interrupted := make(chan struct{})
	go func() {
		<-sigc
		close(interrupted)
	}()

	var timer stats.Timer
	timer.Start()

	exitCode := 0
loop:
	for {
		select {
		case <-interrupted:
			break loop
		default:
		}

		var haltErr error
		if ap.InWindow(c.Reg.PC) {
			haltErr = ap.VectorExec(&c.Reg)
			c.SyntheticRTS()
		} else {
			haltErr = c.Step()
		}
		if haltErr != nil {
			fmt.Fprintf(os.Stderr, "halt: %v\n", haltErr)
			exitCode = 3
			break loop
		}
	}

	timer.Stop()

	if dumpFn != "" {
		if err := mem.DumpRawBin(dumpFn, 0, 64*1024); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = 1
		}
	}
	if statsRequested {
		stats.Report(os.Stderr, &timer, c.Instructions, c.Cycles)
	}

	return exitCode
}
