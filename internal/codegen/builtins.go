package codegen

import (
	"strings"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/semantic"
	"github.com/daver64/tp2cpp/internal/types"
)

// emitCall dispatches a call expression to either the builtin table or
// a mangled user-routine call.
func (g *Generator) emitCall(c *ast.CallExpression) string {
	ident, ok := c.Callee.(*ast.Identifier)
	if !ok {
		return g.emitExpr(c.Callee) + "(" + g.emitArgList(c.Arguments) + ")"
	}
	name := strings.ToLower(ident.Value)
	if semantic.IsBuiltin(name) {
		return g.emitBuiltinCall(name, c.Arguments)
	}
	return g.emitUserCall(ident.Value, c.Arguments)
}

func (g *Generator) emitArgList(args []ast.Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = g.emitExpr(a)
	}
	return strings.Join(parts, ", ")
}

// emitUserCall resolves the overload matching the call's argument
// types and emits the name-mangled C++ call, per spec.md §4.5 "name
// mangling for overloads" — call sites mangle identically to how the
// declaration's signature would mangle.
func (g *Generator) emitUserCall(name string, args []ast.Expression) string {
	candidates := g.Symbols.LookupFunction(name)
	argTypes := make([]types.DataType, len(args))
	for i, a := range args {
		argTypes[i], _ = typeNameOf(a)
	}
	sym := semantic.ResolveOverload(candidates, argTypes)

	mangled := sanitizeIdent(name)
	if sym != nil && needsMangling(candidates) {
		paramTypeNames := make([]string, len(sym.Parameters))
		for i, p := range sym.Parameters {
			if p.TypeName != "" {
				paramTypeNames[i] = p.TypeName
			} else {
				paramTypeNames[i] = p.DataType.String()
			}
		}
		mangled = MangleFunctionName(name, paramTypeNames)
	}
	return mangled + "(" + g.emitArgList(args) + ")"
}

// needsMangling reports whether name resolves to more than one
// overload; a parameterless or singly-declared routine keeps its
// plain name (spec.md §4.5 "parameterless routines are unmangled").
func needsMangling(candidates []*semantic.Symbol) bool {
	return len(candidates) > 1
}

// emitBuiltinCall is the exhaustive builtin dispatch table: I/O, math,
// string, conversion, character, date-time, system, memory, file, and
// CRT operations, grounded on cpp_generator.cpp's generateSystemFunctionCall
// and its surrounding builtin-call switch.
func (g *Generator) emitBuiltinCall(name string, args []ast.Expression) string {
	switch name {
	// I/O
	case "write":
		return g.emitWriteCall(args, false)
	case "writeln":
		return g.emitWriteCall(args, true)
	case "read", "readln":
		return g.emitReadCall(name, args)

	// Math
	case "abs":
		return "std::abs(" + g.arg(args, 0) + ")"
	case "sqr":
		a := g.arg(args, 0)
		return "(" + a + " * " + a + ")"
	case "sqrt":
		return "std::sqrt(" + g.arg(args, 0) + ")"
	case "sin":
		return "std::sin(" + g.arg(args, 0) + ")"
	case "cos":
		return "std::cos(" + g.arg(args, 0) + ")"
	case "arctan":
		return "std::atan(" + g.arg(args, 0) + ")"
	case "tan":
		return "std::tan(" + g.arg(args, 0) + ")"
	case "ln":
		return "std::log(" + g.arg(args, 0) + ")"
	case "exp":
		return "std::exp(" + g.arg(args, 0) + ")"
	case "round":
		return "static_cast<int>(std::lround(" + g.arg(args, 0) + "))"
	case "trunc":
		return "static_cast<int>(" + g.arg(args, 0) + ")"
	case "random":
		if len(args) == 0 {
			return "(static_cast<double>(std::rand()) / RAND_MAX)"
		}
		return "(std::rand() % static_cast<int>(" + g.arg(args, 0) + "))"
	case "randomize":
		return "std::srand(static_cast<unsigned>(std::time(nullptr)))"

	// Character / ordinal
	case "chr":
		return "static_cast<char>(" + g.arg(args, 0) + ")"
	case "ord":
		return "static_cast<int>(" + g.arg(args, 0) + ")"
	case "upcase":
		return "static_cast<char>(std::toupper(" + g.arg(args, 0) + "))"

	// Strings
	case "length":
		return "static_cast<int>(" + g.arg(args, 0) + ".length())"
	case "copy":
		return "(" + g.arg(args, 0) + ").substr(" + g.arg(args, 1) + " - 1, " + g.arg(args, 2) + ")"
	case "pos":
		return "pascal_pos(" + g.arg(args, 0) + ", " + g.arg(args, 1) + ")"
	case "concat":
		return g.emitConcatCall(args)
	case "delete":
		return "Delete(" + g.arg(args, 0) + ", " + g.arg(args, 1) + ", " + g.arg(args, 2) + ")"
	case "insert":
		return "Insert(" + g.arg(args, 0) + ", " + g.arg(args, 1) + ", " + g.arg(args, 2) + ")"
	case "uppercase":
		return "pascal_uppercase(" + g.arg(args, 0) + ")"
	case "lowercase":
		return "pascal_lowercase(" + g.arg(args, 0) + ")"
	case "trim":
		return "pascal_trim(" + g.arg(args, 0) + ")"
	case "trimleft":
		return "pascal_trimleft(" + g.arg(args, 0) + ")"
	case "trimright":
		return "pascal_trimright(" + g.arg(args, 0) + ")"
	case "leftstr":
		return "(" + g.arg(args, 0) + ").substr(0, " + g.arg(args, 1) + ")"
	case "rightstr":
		a := g.arg(args, 0)
		return "(" + a + ").substr((" + a + ").length() - " + g.arg(args, 1) + ")"
	case "stringofchar":
		return "std::string(" + g.arg(args, 1) + ", " + g.arg(args, 0) + ")"
	case "padleft":
		return "pascal_padleft(" + g.arg(args, 0) + ", " + g.arg(args, 1) + ")"
	case "padright":
		return "pascal_padright(" + g.arg(args, 0) + ", " + g.arg(args, 1) + ")"
	case "str":
		return "pascal_str(" + g.emitArgList(args) + ")"
	case "val":
		return "pascal_val(" + g.emitArgList(args) + ")"

	// Conversion
	case "inttostr":
		return "std::to_string(" + g.arg(args, 0) + ")"
	case "strtoint":
		return "std::stoi(" + g.arg(args, 0) + ")"
	case "floattostr":
		return "std::to_string(" + g.arg(args, 0) + ")"
	case "strtofloat":
		return "std::stod(" + g.arg(args, 0) + ")"
	case "datetostr":
		return "pascal_datetostr(" + g.arg(args, 0) + ")"
	case "timetostr":
		return "pascal_timetostr(" + g.arg(args, 0) + ")"

	// inc/dec: emitted as +=/-= or ++/-- (spec.md §4.5)
	case "inc":
		return g.emitIncDec(args, "+")
	case "dec":
		return g.emitIncDec(args, "-")

	// Memory/pointers
	case "new":
		return g.arg(args, 0) + " = new std::remove_pointer_t<decltype(" + g.arg(args, 0) + ")>()"
	case "dispose":
		return "delete " + g.arg(args, 0) + "; " + g.arg(args, 0) + " = nullptr"
	case "getmem":
		return g.arg(args, 0) + " = static_cast<decltype(" + g.arg(args, 0) + ")>(std::malloc(" + g.arg(args, 1) + "))"
	case "freemem":
		return "std::free(" + g.arg(args, 0) + ")"
	case "mark", "release":
		return "/* UNKNOWN_OP */"

	// System
	case "halt":
		if len(args) == 0 {
			return "std::exit(0)"
		}
		return "std::exit(" + g.arg(args, 0) + ")"
	case "ioresult":
		return "pascal_ioresult()"
	case "paramcount":
		return "(pascal_argc - 1)"
	case "paramstr":
		return "std::string(pascal_argv[" + g.arg(args, 0) + "])"
	case "getenv":
		return "pascal_getenv(" + g.arg(args, 0) + ")"
	case "getcurrentdir":
		return "std::filesystem::current_path().string()"
	case "setcurrentdir":
		return "std::filesystem::current_path(" + g.arg(args, 0) + ")"
	case "directoryexists":
		return "std::filesystem::is_directory(" + g.arg(args, 0) + ")"
	case "fileexists":
		return "std::filesystem::exists(" + g.arg(args, 0) + ")"
	case "mkdir":
		return "std::filesystem::create_directory(" + g.arg(args, 0) + ")"
	case "rmdir":
		return "std::filesystem::remove(" + g.arg(args, 0) + ")"
	case "delay":
		return "std::this_thread::sleep_for(std::chrono::milliseconds(" + g.arg(args, 0) + "))"
	case "keypressed":
		return "pascal_keypressed()"
	case "readkey":
		return "pascal_readkey()"
	case "exec":
		return "std::system(" + g.arg(args, 0) + ".c_str())"

	// File handling
	case "assign":
		return g.arg(args, 0) + ".assign(" + g.arg(args, 1) + ")"
	case "reset":
		return g.arg(args, 0) + ".reset()"
	case "rewrite":
		return g.arg(args, 0) + ".rewrite()"
	case "append":
		return g.arg(args, 0) + ".append()"
	case "close":
		return g.arg(args, 0) + ".close()"
	case "eof":
		return g.arg(args, 0) + ".eof()"
	case "blockread":
		return g.arg(args, 0) + ".read(" + g.arg(args, 1) + ")"
	case "blockwrite":
		return g.arg(args, 0) + ".write(" + g.arg(args, 1) + ")"
	case "filepos", "filesize", "seek", "findfirst", "findnext", "findclose":
		return "/* UNKNOWN_OP */"

	// Date/time
	case "dayofweek":
		return "pascal_dayofweek(" + g.arg(args, 0) + ")"
	case "getdate":
		return "pascal_getdate()"
	case "gettime":
		return "pascal_gettime()"
	case "getdatetime":
		return "pascal_getdatetime()"

	// CRT
	case "clrscr":
		return "pascal_clrscr()"
	case "clreol":
		return "pascal_clreol()"
	case "gotoxy":
		return "pascal_gotoxy(" + g.emitArgList(args) + ")"
	case "textcolor":
		return "pascal_textcolor(" + g.arg(args, 0) + ")"
	case "textbackground":
		return "pascal_textbackground(" + g.arg(args, 0) + ")"
	case "wherex":
		return "pascal_wherex()"
	case "wherey":
		return "pascal_wherey()"
	case "window":
		return "pascal_window(" + g.emitArgList(args) + ")"
	case "highvideo":
		return "pascal_highvideo()"
	case "lowvideo":
		return "pascal_lowvideo()"
	case "normvideo":
		return "pascal_normvideo()"
	case "cursoron":
		return "pascal_cursoron()"
	case "cursoroff":
		return "pascal_cursoroff()"
	case "sound":
		return "pascal_sound(" + g.arg(args, 0) + ")"
	case "nosound":
		return "pascal_nosound()"

	default:
		return "/* UNKNOWN_OP */"
	}
}

func (g *Generator) arg(args []ast.Expression, i int) string {
	if i >= len(args) {
		return "/* UNKNOWN_OP */"
	}
	return g.emitExpr(args[i])
}

// emitIncDec renders inc(x)/dec(x) as ++x/--x, and inc(x, n)/dec(x, n)
// as x += n / x -= n, exactly as cpp_generator.cpp's builtin dispatch
// does, since these are the only builtins shaped as statements rather
// than value-producing expressions.
func (g *Generator) emitIncDec(args []ast.Expression, sign string) string {
	target := g.arg(args, 0)
	if len(args) < 2 {
		if sign == "+" {
			return "++" + target
		}
		return "--" + target
	}
	return target + " " + sign + "= " + g.arg(args, 1)
}

func (g *Generator) emitConcatCall(args []ast.Expression) string {
	if len(args) == 0 {
		return "std::string()"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = g.emitExpr(a)
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

// emitWriteCall renders write/writeln as a chained operator<< sequence
// against std::cout, honoring FormattedExpression width/precision via
// std::setw/std::setprecision manipulators, ending the statement with
// std::endl for writeln.
func (g *Generator) emitWriteCall(args []ast.Expression, newline bool) string {
	var b strings.Builder
	b.WriteString("std::cout")
	for _, a := range args {
		b.WriteString(" << ")
		if fe, ok := a.(*ast.FormattedExpression); ok {
			if fe.Width != nil {
				b.WriteString("std::setw(" + g.emitExpr(fe.Width) + ") << ")
			}
			if fe.Precision != nil {
				b.WriteString("std::fixed << std::setprecision(" + g.emitExpr(fe.Precision) + ") << ")
			}
			b.WriteString(g.emitExpr(fe.Value))
			continue
		}
		b.WriteString(g.emitExpr(a))
	}
	if newline {
		b.WriteString(" << std::endl")
	}
	return b.String()
}

// emitReadCall renders read/readln as a chained operator>> sequence
// against std::cin. A bare readln() (no arguments) just consumes the
// rest of the line.
func (g *Generator) emitReadCall(name string, args []ast.Expression) string {
	if len(args) == 0 {
		return "std::cin.ignore(std::numeric_limits<std::streamsize>::max(), '\\n')"
	}
	var b strings.Builder
	b.WriteString("std::cin")
	for _, a := range args {
		b.WriteString(" >> ")
		b.WriteString(g.emitExpr(a))
	}
	return b.String()
}
