package x86

// intrinsic emits inline assembly for one operator, reading its operands
// from args (already resolved to stack-slot references) and leaving the
// result in %rax; the caller copies %rax into the destination slot.
type intrinsic func(w *Writer, args []string)

// intrinsics is the fixed operator-name -> emitter table. A name present
// here is never emitted as a C-ABI call: emitCall dispatches through it
// before falling back to callq.
var intrinsics = map[string]intrinsic{
	"+": func(w *Writer, a []string) {
		w.Ins2("movq", a[0], "%rax")
		w.Ins2("addq", a[1], "%rax")
	},
	"-": func(w *Writer, a []string) {
		w.Ins2("movq", a[0], "%rax")
		w.Ins2("subq", a[1], "%rax")
	},
	"*": func(w *Writer, a []string) {
		w.Ins2("movq", a[0], "%rax")
		w.Ins2("imulq", a[1], "%rax")
	},
	"/": func(w *Writer, a []string) {
		w.Ins2("movq", a[0], "%rax")
		w.Ins0("cqto")
		w.Ins1("idivq", a[1])
	},
	"%": func(w *Writer, a []string) {
		w.Ins2("movq", a[0], "%rax")
		w.Ins0("cqto")
		w.Ins1("idivq", a[1])
		w.Ins2("movq", "%rdx", "%rax")
	},
	"<":  comparison("l"),
	"<=": comparison("le"),
	">":  comparison("g"),
	">=": comparison("ge"),
	"==": comparison("e"),
	"!=": comparison("ne"),
	"unary_-": func(w *Writer, a []string) {
		w.Ins2("movq", a[0], "%rax")
		w.Ins1("negq", "%rax")
	},
	"unary_not": func(w *Writer, a []string) {
		w.Ins2("movq", a[0], "%rax")
		w.Ins2("xorq", "$1", "%rax")
	},
}

func comparison(cc string) intrinsic {
	return func(w *Writer, a []string) {
		w.Ins2("xor", "%rax", "%rax")
		w.Ins2("movq", a[0], "%rdx")
		w.Ins2("cmpq", a[1], "%rdx")
		w.Ins1("set"+cc, "%al")
	}
}
