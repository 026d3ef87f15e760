package main

import (
	"flag"
	"fmt"
	"os"

	"go.xinuc.dev/internal/driver"
	"go.xinuc.dev/pkg/codegen"
)

func main() {
	var opts driver.Options
	flag.BoolVar(&opts.DumpTokens, "dump-tokens", false, "print the token stream")
	flag.BoolVar(&opts.DumpAST, "dump-ast", false, "print the parsed AST")
	flag.BoolVar(&opts.DumpSymbols, "dump-symbols", false, "print the global symbol table")
	flag.BoolVar(&opts.DumpCode, "dump-code", false, "print the generated instruction stream")
	flag.BoolVar(&opts.Optimize, "optimize", false, "ignored, accepted for interface compatibility")
	flag.IntVar(&opts.WarningLevel, "warn", 1, "warning level, 0-3")
	flag.StringVar(&opts.OutputFile, "o", "", "output file (default stdout)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: compiler [flags] <source>")
		os.Exit(1)
	}

	filename := flag.Arg(0)
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	res := driver.Run(string(src), filename, opts)

	for _, dump := range []string{res.TokensDump, res.ASTDump, res.SymbolsDump, res.CodeDump} {
		if dump != "" {
			fmt.Print(dump)
		}
	}

	if !res.Success {
		fmt.Fprintln(os.Stderr, res.LastError)
		os.Exit(1)
	}

	out := os.Stdout
	if opts.OutputFile != "" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	fmt.Fprint(out, codegen.Format(res.Code, filename))

	fmt.Println("Ok")
}
