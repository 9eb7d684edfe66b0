// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

// Package report wraps the instruction set's introspection renderers
// with TTY awareness: a real terminal gets the full-width table, a
// redirected pipe gets a width that won't wrap mid-row.
package report

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ericsmith/apex6502/cpu"
)

// pipeWidth is the column budget assumed when w isn't a terminal.
const pipeWidth = 80

// Width reports the column width report output should target: the
// terminal's actual width when w is a terminal, or pipeWidth
// otherwise.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return pipeWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || !term.IsTerminal(int(f.Fd())) {
		return pipeWidth
	}
	return width
}

// detailWidth is the column count the detailed matrix needs: 16 cells
// of "MNEM/mode/cycles" at up to 12 characters each.
const detailWidth = 16 * 12

// OpcodeMatrix writes the per-profile opcode matrix to w. detail is
// downgraded to the plain mnemonic-only form when w is too narrow to
// hold the detailed columns, so a redirected pipe or a narrow terminal
// never receives a matrix that wraps mid-row.
func OpcodeMatrix(w io.Writer, set *cpu.InstructionSet, detail bool) {
	if detail && Width(w) < detailWidth {
		detail = false
	}
	set.PrintOpcodeMatrix(w, detail)
}

// SummaryTable writes the per-profile mnemonic summary table to w.
func SummaryTable(w io.Writer, set *cpu.InstructionSet) {
	set.PrintSummaryTable(w)
}
