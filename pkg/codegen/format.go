package codegen

import (
	"fmt"
	"strings"
)

// mnemonicWidth is the fixed left-pad width instruction bodies are rendered
// at, wide enough for the longest mnemonic ("SUSPEND").
const mnemonicWidth = 7

// Version is the compiler version banner stamped into Format's header.
const Version = "0.1.0"

// Format renders code as the plain-text program artifact: a three-line
// comment banner (tool name, source filename, version), then one line per
// instruction, each preceded by a "NAME:" label line when the instruction
// carries one.
func Format(code []Instruction, filename string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "; xinuc-compiler output\n")
	fmt.Fprintf(&b, "; source: %s\n", filename)
	fmt.Fprintf(&b, "; version: %s\n", Version)
	for _, instr := range code {
		if instr.Label != "" {
			fmt.Fprintf(&b, "%s:\n", instr.Label)
		}
		fmt.Fprintf(&b, "  %-*s %d", mnemonicWidth, instr.Op.String(), instr.Operand)
		if instr.Comment != "" {
			fmt.Fprintf(&b, " ; %s", instr.Comment)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
