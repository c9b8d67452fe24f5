package x86

import (
	"fmt"
	"strings"
)

// Writer accumulates AT&T-syntax assembly text through a small set of
// per-shape helper methods (Ins0/Ins1/Ins2/LabelDef/Directive) writing directly into
// a strings.Builder: the emitter runs to completion synchronously, so
// there is nothing to hand output off to.
type Writer struct {
	sb strings.Builder
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// WriteString appends s verbatim.
func (w *Writer) WriteString(s string) { w.sb.WriteString(s) }

// Line appends a single line, adding the trailing newline.
func (w *Writer) Line(format string, args ...interface{}) {
	fmt.Fprintf(&w.sb, format+"\n", args...)
}

// Comment appends a '#'-prefixed comment line.
func (w *Writer) Comment(text string) {
	w.sb.WriteString("\t# ")
	w.sb.WriteString(text)
	w.sb.WriteByte('\n')
}

// Ins0 emits a zero-operand instruction, e.g. "ret" or "cqto".
func (w *Writer) Ins0(op string) {
	fmt.Fprintf(&w.sb, "\t%s\n", op)
}

// Ins1 emits a one-operand instruction, e.g. "pushq %rbp".
func (w *Writer) Ins1(op, a string) {
	fmt.Fprintf(&w.sb, "\t%s %s\n", op, a)
}

// Ins2 emits a two-operand instruction, e.g. "movq %rax, -8(%rbp)".
func (w *Writer) Ins2(op, src, dst string) {
	fmt.Fprintf(&w.sb, "\t%s %s, %s\n", op, src, dst)
}

// LabelDef emits a label definition line.
func (w *Writer) LabelDef(name string) {
	fmt.Fprintf(&w.sb, "%s:\n", name)
}

// Directive emits a bare assembler directive line (no operand
// formatting applied, since directive shapes vary too much to template).
func (w *Writer) Directive(text string) {
	w.sb.WriteString(text)
	w.sb.WriteByte('\n')
}

// String returns the accumulated assembly text.
func (w *Writer) String() string { return w.sb.String() }
