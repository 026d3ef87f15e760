// Package driver sequences the compilation pipeline — lexer, parser,
// symbol table, code generator — and fans out the optional diagnostics
// dumps once the pipeline has finished.
package driver

import (
	"golang.org/x/sync/errgroup"

	"go.xinuc.dev/pkg/ast"
	"go.xinuc.dev/pkg/codegen"
	"go.xinuc.dev/pkg/diag"
	"go.xinuc.dev/pkg/lexer"
	"go.xinuc.dev/pkg/parser"
	"go.xinuc.dev/pkg/symtab"
	"go.xinuc.dev/pkg/token"
)

// Options mirrors the external driver surface: which dumps to render, a
// parsed-but-unused optimize flag, a clamped warning level, and where the
// finished program text goes.
type Options struct {
	DumpTokens  bool
	DumpAST     bool
	DumpSymbols bool
	DumpCode    bool

	Optimize bool // parsed, never consulted

	WarningLevel int // clamped to [0, 3]
	OutputFile   string
}

// Clamp restricts WarningLevel to the valid [0, 3] range, in place.
func (o *Options) Clamp() {
	if o.WarningLevel < 0 {
		o.WarningLevel = 0
	}
	if o.WarningLevel > 3 {
		o.WarningLevel = 3
	}
}

// Result is everything the embedding front-end consumes after a run.
type Result struct {
	Success      bool
	ErrorCount   int
	WarningCount int
	LastError    string

	Code []codegen.Instruction

	TokensDump  string
	ASTDump     string
	SymbolsDump string
	CodeDump    string
}

// Run executes the pipeline over source (labelled filename for diagnostics)
// and renders whichever dumps opts requests. A failure in an earlier stage
// short-circuits the remaining stages; the dump fan-out only ever runs over
// the (possibly partial) artifacts the pipeline did manage to produce.
func Run(source, filename string, opts Options) Result {
	opts.Clamp()

	var res Result

	lex := lexer.New(source, filename)
	p := parser.New(lex, filename)
	program := p.Parse()

	errs := collectErrors(lex.Errors(), p.Errors())
	if p.HadError() || lex.HadError() {
		return finish(res, errs)
	}

	syms := symtab.New()
	symtab.Build(syms, program)
	errs = append(errs, syms.Errors()...)
	if syms.HadError() {
		return finish(res, errs)
	}

	gen := codegen.New(syms)
	gen.Generate(program)
	errs = append(errs, gen.Errors()...)
	res.Code = gen.Code()

	res.Success = !gen.HadError()

	renderDumps(&res, opts, source, filename, program, syms)

	return finish(res, errs)
}

func collectErrors(groups ...[]diag.CompileError) []diag.CompileError {
	var all []diag.CompileError
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

func finish(res Result, errs []diag.CompileError) Result {
	res.ErrorCount = len(errs)
	if len(errs) > 0 {
		res.Success = false
		res.LastError = errs[len(errs)-1].Error()
	}
	return res
}

// renderDumps re-lexes source to capture the full token slice (the Lexer
// itself doesn't retain tokens once the parser has consumed them), then
// renders the four dumps concurrently: none of them depends on another,
// and all of them read artifacts that are already finished by this point.
func renderDumps(res *Result, opts Options, source, filename string, program *ast.Node, syms *symtab.Table) {
	if !opts.DumpTokens && !opts.DumpAST && !opts.DumpSymbols && !opts.DumpCode {
		return
	}

	var g errgroup.Group

	if opts.DumpTokens {
		g.Go(func() error {
			res.TokensDump = renderTokens(collectTokens(source, filename))
			return nil
		})
	}
	if opts.DumpAST {
		g.Go(func() error {
			res.ASTDump = renderAST(program)
			return nil
		})
	}
	if opts.DumpSymbols {
		g.Go(func() error {
			res.SymbolsDump = renderSymbols(syms)
			return nil
		})
	}
	if opts.DumpCode {
		g.Go(func() error {
			res.CodeDump = codegen.Format(res.Code, filename)
			return nil
		})
	}

	_ = g.Wait() // every goroutine above is infallible; error is always nil
}

func collectTokens(src, filename string) []token.Token {
	l := lexer.New(src, filename)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.IsEOF() {
			break
		}
	}
	return toks
}
