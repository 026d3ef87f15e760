// Package testutil generates random but lexically valid source snippets for
// the lexer benchmarks and the lexer idempotence test, in place of a fixed
// test corpus.
package testutil

import (
	"math/rand"
	"strconv"
	"strings"
)

// vocabulary samples the lexer's recognition rules: keywords (including the
// process/concurrency set), identifiers, integer/float/char/string literals,
// comments, and a subset of the operators and punctuation. Entries are
// separated by ';', so ';' itself never appears as a token (the ";;;" run
// yields empty entries).
const vocabulary = "process;func;void;int;char;create;resume;suspend;kill;sleep;yield;wait;signal;getpid;semaphore;if;else;while;for;return;break;continue;p;x;count;1;42;0x2A;0b101;3.14;'a';\"hi\";+;-;*;/;%;==;!=;<=;>=;&&;||;=;;;,;(;);{;};[;];//line comment\n;/* block comment */;\n"

// GetRandomTokens joins size random tokens from vocabulary with spaces.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

// GetRandomTokensWithSep joins size random tokens from vocabulary with sep.
func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(vocabulary, ";")

	toks := make([]string, 0, size)
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram builds a syntactically valid program with numFuncs
// functions, each containing a handful of statements drawn from the
// process/concurrency and arithmetic surface, for exercising the parser and
// code generator together.
func GetRandomProgram(numFuncs int) string {
	var b strings.Builder
	for i := 0; i < numFuncs; i++ {
		b.WriteString("void f")
		b.WriteString(strconv.Itoa(i))
		b.WriteString("() {\n")
		b.WriteString("  int x = 1 + 2 * 3;\n")
		b.WriteString("  if (x) { signal(1); } else { wait(2); }\n")
		b.WriteString("  while (x) { x = x - 1; if (x) { continue; } break; }\n")
		b.WriteString("  create(x);\n")
		b.WriteString("  return x;\n")
		b.WriteString("}\n")
	}
	return b.String()
}
