// Package parser implements a recursive-descent parser building an AST
// from the token stream produced by pkg/lexer.
package parser

import (
	"fmt"

	"go.xinuc.dev/pkg/ast"
	"go.xinuc.dev/pkg/diag"
	"go.xinuc.dev/pkg/lexer"
	"go.xinuc.dev/pkg/token"
	"go.xinuc.dev/pkg/types"
)

// Tokenizer is the interface the parser consumes, so tests can substitute a
// scripted fake in place of a real *lexer.Lexer.
type Tokenizer interface {
	Next() token.Token
	Peek() token.Token
	Unget(token.Token)
}

var _ Tokenizer = (*lexer.Lexer)(nil)

// syncKinds starts a fresh declaration or statement; synchronize stops
// advancing once one of these is next.
var syncKinds = map[token.Kind]bool{
	token.IF: true, token.WHILE: true, token.FOR: true, token.RETURN: true,
	token.INT: true, token.VOID: true, token.CHAR_TYPE: true, token.FLOAT_TYPE: true,
}

// Parser consumes tokens from a Tokenizer and builds an AST rooted at a
// Program node. No backtracking beyond the Tokenizer's one-token peek.
type Parser struct {
	filename string
	lex      Tokenizer

	previous  token.Token
	panicMode bool
	hadError  bool
	errs      []diag.CompileError
}

// New builds a Parser reading from lex, labelling diagnostics with filename.
func New(lex Tokenizer, filename string) *Parser {
	return &Parser{filename: filename, lex: lex}
}

// HadError reports whether any syntax error was recorded.
func (p *Parser) HadError() bool { return p.hadError }

// Errors returns every syntax diagnostic recorded so far.
func (p *Parser) Errors() []diag.CompileError { return p.errs }

func (p *Parser) peek() token.Token { return p.lex.Peek() }

func (p *Parser) next() token.Token {
	t := p.lex.Next()
	p.previous = t
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.next()
		return true
	}
	return false
}

// expect consumes the next token if it has kind k, else records a
// panic-mode syntax error naming construct and returns the offending
// token without consuming it.
func (p *Parser) expect(k token.Kind, construct string) token.Token {
	if p.check(k) {
		return p.next()
	}
	tok := p.peek()
	p.errorAt(tok, fmt.Sprintf("expected %s", construct))
	return tok
}

// errorAt records a syntax error at tok's position, suppressing further
// messages until synchronize clears panic mode (panic-mode recovery).
func (p *Parser) errorAt(tok token.Token, msg string) {
	p.hadError = true
	if p.panicMode {
		return
	}
	p.panicMode = true
	text := tok.Text
	if tok.Kind == token.EOF {
		text = "<eof>"
	}
	p.errs = append(p.errs, diag.NewSyntaxError(tok.Loc, msg, text))
}

// synchronize advances tokens until the previous one was ';' or the next
// one starts a fresh declaration/statement.
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.check(token.EOF) {
		if p.previous.Kind == token.SEMI {
			return
		}
		if syncKinds[p.peek().Kind] {
			return
		}
		p.next()
	}
}

// Parse builds the full Program node: program := declaration* EOF.
func (p *Parser) Parse() *ast.Node {
	prog := ast.New(ast.PROGRAM, p.peek().Loc)
	for !p.check(token.EOF) {
		decl := p.declaration()
		if decl != nil {
			prog.Children = append(prog.Children, decl)
		}
		if p.panicMode {
			p.synchronize()
		}
	}
	return prog
}

// declaration := [static|extern] type_specifier '*'* IDENT
//
//	(function_rest | var_rest)
//	| struct_or_union_decl | enum_decl | typedef_decl
func (p *Parser) declaration() *ast.Node {
	switch p.peek().Kind {
	case token.STRUCT, token.UNION:
		return p.aggregateDecl()
	case token.ENUM:
		return p.enumDecl()
	case token.TYPEDEF:
		return p.typedefDecl()
	}

	pos := p.peek().Loc
	var quals types.Qualifier
	if p.match(token.STATIC) {
		quals |= types.StaticQ
	} else if p.match(token.EXTERN) {
		quals |= types.ExternQ
	}

	base, isProcess := p.typeSpecifier()
	base.Qualifiers |= quals
	base = p.pointerWrap(base)

	nameTok := p.expect(token.IDENTIFIER, "identifier")

	if p.check(token.LPAREN) {
		return p.functionRest(pos, nameTok.Text, base, isProcess)
	}
	return p.varRest(pos, nameTok.Text, base)
}

// typeSpecifier := (void|char|short|int|long|float|double|process|semaphore)
//
//	(unsigned|signed)? const? volatile?
func (p *Parser) typeSpecifier() (*types.Info, bool) {
	isProcess := false
	var base types.BaseKind
	switch p.peek().Kind {
	case token.VOID:
		base = types.Void
	case token.CHAR_TYPE:
		base = types.Char
	case token.SHORT:
		base = types.Short
	case token.INT:
		base = types.Int
	case token.LONG:
		base = types.Long
	case token.FLOAT_TYPE:
		base = types.Float
	case token.DOUBLE:
		base = types.Double
	case token.PROCESS:
		base = types.Process
		isProcess = true
	case token.SEMAPHORE:
		base = types.Semaphore
	default:
		p.errorAt(p.peek(), "expected type specifier")
		return &types.Info{Base: types.Unknown}, false
	}
	p.next()

	t := &types.Info{Base: base}
	switch {
	case p.match(token.UNSIGNED):
		t.Qualifiers |= types.Unsigned
	case p.match(token.SIGNED):
		t.Qualifiers |= types.Signed
	}
	if p.match(token.CONST) {
		t.Qualifiers |= types.Const
	}
	if p.match(token.VOLATILE) {
		t.Qualifiers |= types.Volatile
	}
	return t, isProcess
}

// functionRest := '(' params? ')' (block | ';')
func (p *Parser) functionRest(pos token.Location, name string, ret *types.Info, isProcess bool) *ast.Node {
	kind := ast.FUNCTION
	if isProcess {
		kind = ast.PROCESS
	}
	n := ast.New(kind, pos)
	n.Name = name

	p.expect(token.LPAREN, "'('")
	var params []*ast.Node
	if !p.check(token.RPAREN) {
		params = append(params, p.param())
		for p.match(token.COMMA) {
			params = append(params, p.param())
		}
	}
	p.expect(token.RPAREN, "')'")

	fnType := &types.Info{Base: types.Function, Return: ret}
	for _, prm := range params {
		fnType.Params = append(fnType.Params, prm.Type)
	}
	n.Type = fnType
	n.Children = params

	if p.match(token.SEMI) {
		return n // prototype, no body
	}
	n.Right = p.block()
	return n
}

// param := type_specifier IDENT?
func (p *Parser) param() *ast.Node {
	pos := p.peek().Loc
	t, _ := p.typeSpecifier()
	t = p.pointerWrap(t)
	n := ast.New(ast.PARAM, pos)
	n.Type = t
	if p.check(token.IDENTIFIER) {
		n.Name = p.next().Text
	}
	return n
}

// varRest := ('[' NUMBER? ']')* ('=' assignment)? ';'
func (p *Parser) varRest(pos token.Location, name string, base *types.Info) *ast.Node {
	n := ast.New(ast.VAR_DECL, pos)
	n.Name = name

	if p.check(token.LBRACKET) {
		n.Kind = ast.ARRAY_DECL
		arr := &types.Info{Base: types.Array, Elem: base}
		for p.match(token.LBRACKET) {
			dim := -1
			if p.check(token.NUMBER) {
				dim = int(p.next().IntValue)
			}
			arr.ArrayDims = append(arr.ArrayDims, dim)
			p.expect(token.RBRACKET, "']'")
		}
		base = arr
	}
	n.Type = base

	if p.match(token.ASSIGN) {
		n.Right = p.assignment()
	}
	p.expect(token.SEMI, "';'")
	return n
}

// aggregateDecl handles struct/union declarations: accepted through parsing
// so downstream stages see a structurally valid program. Neither the
// symbol-table build nor codegen lowers them: at top level both skip them.
func (p *Parser) aggregateDecl() *ast.Node {
	pos := p.peek().Loc
	kind := ast.STRUCT_DECL
	if p.peek().Kind == token.UNION {
		kind = ast.UNION_DECL
	}
	p.next()

	n := ast.New(kind, pos)
	if p.check(token.IDENTIFIER) {
		n.Name = p.next().Text
	}
	if p.match(token.LBRACE) {
		for !p.check(token.RBRACE) && !p.check(token.EOF) {
			n.Children = append(n.Children, p.field())
		}
		p.expect(token.RBRACE, "'}'")
	}
	p.expect(token.SEMI, "';'")
	return n
}

func (p *Parser) field() *ast.Node {
	pos := p.peek().Loc
	t, _ := p.typeSpecifier()
	t = p.pointerWrap(t)
	nameTok := p.expect(token.IDENTIFIER, "field name")
	p.expect(token.SEMI, "';'")
	n := ast.New(ast.FIELD, pos)
	n.Name = nameTok.Text
	n.Type = t
	return n
}

// enumDecl := 'enum' IDENT? '{' IDENT (',' IDENT)* ','? '}' ';'
func (p *Parser) enumDecl() *ast.Node {
	pos := p.peek().Loc
	p.next() // 'enum'
	n := ast.New(ast.ENUM_DECL, pos)
	if p.check(token.IDENTIFIER) {
		n.Name = p.next().Text
	}
	if p.match(token.LBRACE) {
		for !p.check(token.RBRACE) && !p.check(token.EOF) {
			memberPos := p.peek().Loc
			nameTok := p.expect(token.IDENTIFIER, "enum member")
			member := ast.New(ast.FIELD, memberPos)
			member.Name = nameTok.Text
			n.Children = append(n.Children, member)
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RBRACE, "'}'")
	}
	p.expect(token.SEMI, "';'")
	return n
}

// typedefDecl := 'typedef' type_specifier '*'* IDENT ';'
func (p *Parser) typedefDecl() *ast.Node {
	pos := p.peek().Loc
	p.next() // 'typedef'
	t, _ := p.typeSpecifier()
	t = p.pointerWrap(t)
	nameTok := p.expect(token.IDENTIFIER, "typedef name")
	p.expect(token.SEMI, "';'")
	n := ast.New(ast.TYPEDEF, pos)
	n.Name = nameTok.Text
	n.Type = t
	return n
}

// block := '{' statement* '}'
func (p *Parser) block() *ast.Node {
	pos := p.peek().Loc
	p.expect(token.LBRACE, "'{'")
	n := ast.New(ast.BLOCK, pos)
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		n.Children = append(n.Children, p.statement())
		if p.panicMode {
			p.synchronize()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return n
}

// statement := block | if | while | do_while | for | return | break
//
//	| continue | process_stmt | local_decl | expr_stmt
func (p *Parser) statement() *ast.Node {
	switch p.peek().Kind {
	case token.LBRACE:
		return p.block()
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.DO:
		return p.doWhileStmt()
	case token.FOR:
		return p.forStmt()
	case token.RETURN:
		return p.returnStmt()
	case token.BREAK:
		pos := p.next().Loc
		p.expect(token.SEMI, "';'")
		return ast.New(ast.BREAK, pos)
	case token.CONTINUE:
		pos := p.next().Loc
		p.expect(token.SEMI, "';'")
		return ast.New(ast.CONTINUE, pos)
	case token.CREATE, token.RESUME, token.SUSPEND, token.KILL, token.SLEEP,
		token.WAIT, token.SIGNAL, token.YIELD:
		return p.processStmt()
	default:
		if p.peek().Kind.IsStorageClass() || p.peek().Kind.IsTypeKeyword() {
			return p.localDecl()
		}
		return p.exprStmt()
	}
}

// localDecl := [static|extern] type_specifier '*'* IDENT var_rest
//
// Function definitions never nest, so a declaration in statement position
// always continues as a variable or array.
func (p *Parser) localDecl() *ast.Node {
	pos := p.peek().Loc
	var quals types.Qualifier
	if p.match(token.STATIC) {
		quals |= types.StaticQ
	} else if p.match(token.EXTERN) {
		quals |= types.ExternQ
	}

	base, _ := p.typeSpecifier()
	base.Qualifiers |= quals
	base = p.pointerWrap(base)

	nameTok := p.expect(token.IDENTIFIER, "identifier")
	return p.varRest(pos, nameTok.Text, base)
}

// pointerWrap consumes any leading '*' declarator stars and, when at least
// one was present, wraps base in a pointer descriptor of that depth.
func (p *Parser) pointerWrap(base *types.Info) *types.Info {
	depth := 0
	for p.match(token.STAR) {
		depth++
	}
	if depth == 0 {
		return base
	}
	return &types.Info{Base: types.Pointer, PointerDepth: depth, Elem: base, Qualifiers: base.Qualifiers}
}

// ifStmt := 'if' '(' expression ')' statement ('else' statement)?
func (p *Parser) ifStmt() *ast.Node {
	pos := p.next().Loc
	n := ast.New(ast.IF, pos)
	p.expect(token.LPAREN, "'('")
	n.Left = p.expression()
	p.expect(token.RPAREN, "')'")
	n.Right = p.statement()
	if p.match(token.ELSE) {
		n.Extra = p.statement()
	}
	return n
}

// whileStmt := 'while' '(' expression ')' statement
func (p *Parser) whileStmt() *ast.Node {
	pos := p.next().Loc
	n := ast.New(ast.WHILE, pos)
	p.expect(token.LPAREN, "'('")
	n.Left = p.expression()
	p.expect(token.RPAREN, "')'")
	n.Right = p.statement()
	return n
}

// doWhileStmt := 'do' statement 'while' '(' expression ')' ';'
func (p *Parser) doWhileStmt() *ast.Node {
	pos := p.next().Loc
	n := ast.New(ast.DO_WHILE, pos)
	n.Left = p.statement() // body
	p.expect(token.WHILE, "'while'")
	p.expect(token.LPAREN, "'('")
	n.Right = p.expression() // condition
	p.expect(token.RPAREN, "')'")
	p.expect(token.SEMI, "';'")
	return n
}

// forStmt := 'for' '(' expr? ';' expr? ';' expr? ')' statement
func (p *Parser) forStmt() *ast.Node {
	pos := p.next().Loc
	n := ast.New(ast.FOR, pos)
	p.expect(token.LPAREN, "'('")
	if !p.check(token.SEMI) {
		n.Left = p.expression()
	}
	p.expect(token.SEMI, "';'")
	if !p.check(token.SEMI) {
		n.Right = p.expression()
	}
	p.expect(token.SEMI, "';'")
	if !p.check(token.RPAREN) {
		n.Extra = p.expression()
	}
	p.expect(token.RPAREN, "')'")
	n.Children = append(n.Children, p.statement())
	return n
}

// returnStmt := 'return' expression? ';'
func (p *Parser) returnStmt() *ast.Node {
	pos := p.next().Loc
	n := ast.New(ast.RETURN, pos)
	if !p.check(token.SEMI) {
		n.Left = p.expression()
	}
	p.expect(token.SEMI, "';'")
	return n
}

// processStmt covers the process/synchronization primitives, which the
// grammar treats as dedicated statement forms rather than ordinary calls:
// create/resume/suspend/kill/sleep/wait/signal '(' arg ')' ';', or bare
// 'yield' ';'.
func (p *Parser) processStmt() *ast.Node {
	tok := p.next()
	var kind ast.Kind
	switch tok.Kind {
	case token.CREATE:
		kind = ast.CREATE
	case token.RESUME:
		kind = ast.RESUME
	case token.SUSPEND:
		kind = ast.SUSPEND
	case token.KILL:
		kind = ast.KILL
	case token.SLEEP:
		kind = ast.SLEEP
	case token.WAIT:
		kind = ast.WAIT
	case token.SIGNAL:
		kind = ast.SIGNAL
	case token.YIELD:
		kind = ast.YIELD
	}
	n := ast.New(kind, tok.Loc)

	if kind == ast.YIELD && !p.check(token.LPAREN) {
		p.expect(token.SEMI, "';'")
		return n
	}

	p.expect(token.LPAREN, "'('")
	if kind == ast.CREATE {
		if !p.check(token.RPAREN) {
			n.Children = append(n.Children, p.assignment())
			for p.match(token.COMMA) {
				n.Children = append(n.Children, p.assignment())
			}
		}
	} else if !p.check(token.RPAREN) {
		n.Left = p.assignment()
	}
	p.expect(token.RPAREN, "')'")
	p.expect(token.SEMI, "';'")
	return n
}

// exprStmt := expression ';'
func (p *Parser) exprStmt() *ast.Node {
	pos := p.peek().Loc
	if p.match(token.SEMI) {
		return ast.New(ast.EMPTY, pos)
	}
	expr := p.expression()
	p.expect(token.SEMI, "';'")
	n := ast.New(ast.EXPR_STMT, pos)
	n.Left = expr
	return n
}

// expression := assignment (',' assignment)*  -- COMMA node
func (p *Parser) expression() *ast.Node {
	first := p.assignment()
	if !p.check(token.COMMA) {
		return first
	}
	n := ast.New(ast.COMMA, first.Loc)
	n.Children = append(n.Children, first)
	for p.match(token.COMMA) {
		n.Children = append(n.Children, p.assignment())
	}
	return n
}

// assignment := conditional ( assign_op assignment )?
func (p *Parser) assignment() *ast.Node {
	lhs := p.conditional()
	if !p.peek().Kind.IsAssignment() {
		return lhs
	}
	op := p.next()
	rhs := p.assignment()

	kind := ast.ASSIGN
	if op.Kind != token.ASSIGN {
		kind = ast.COMPOUND_ASSIGN
	}
	n := ast.New(kind, lhs.Loc)
	n.Op = op.Text
	n.Left = lhs
	n.Right = rhs
	return n
}

// conditional := logical_or ('?' expression ':' conditional)?
func (p *Parser) conditional() *ast.Node {
	cond := p.logicalOr()
	if !p.match(token.QUESTION) {
		return cond
	}
	n := ast.New(ast.TERNARY, cond.Loc)
	n.Left = cond
	n.Right = p.expression()
	p.expect(token.COLON, "':'")
	n.Extra = p.conditional()
	return n
}

func (p *Parser) binaryLevel(next func() *ast.Node, kinds ...token.Kind) *ast.Node {
	left := next()
	for {
		matched := false
		for _, k := range kinds {
			if p.check(k) {
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
		op := p.next()
		right := next()
		n := ast.New(ast.BINARY_OP, left.Loc)
		n.Op = op.Text
		n.Left = left
		n.Right = right
		left = n
	}
}

func (p *Parser) logicalOr() *ast.Node  { return p.binaryLevel(p.logicalAnd, token.OR_OR) }
func (p *Parser) logicalAnd() *ast.Node { return p.binaryLevel(p.bitOr, token.AND_AND) }
func (p *Parser) bitOr() *ast.Node      { return p.binaryLevel(p.bitXor, token.PIPE) }
func (p *Parser) bitXor() *ast.Node     { return p.binaryLevel(p.bitAnd, token.CARET) }
func (p *Parser) bitAnd() *ast.Node     { return p.binaryLevel(p.equality, token.AMP) }
func (p *Parser) equality() *ast.Node   { return p.binaryLevel(p.relational, token.EQ, token.NE) }
func (p *Parser) relational() *ast.Node {
	return p.binaryLevel(p.shift, token.LT, token.GT, token.LE, token.GE)
}
func (p *Parser) shift() *ast.Node { return p.binaryLevel(p.additive, token.SHL, token.SHR) }
func (p *Parser) additive() *ast.Node {
	return p.binaryLevel(p.multiplicative, token.PLUS, token.MINUS)
}
func (p *Parser) multiplicative() *ast.Node {
	return p.binaryLevel(p.unary, token.STAR, token.SLASH, token.PERCENT)
}

// unary := ('++'|'--'|'+'|'-'|'!'|'~'|'&'|'*'|'sizeof') unary
//
//	| 'sizeof' '(' expression ')'
//	| postfix
func (p *Parser) unary() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.INC, token.DEC:
		p.next()
		kind := ast.PRE_INC
		if tok.Kind == token.DEC {
			kind = ast.PRE_DEC
		}
		n := ast.New(kind, tok.Loc)
		n.Left = p.unary()
		return n
	case token.PLUS, token.MINUS, token.BANG, token.TILDE:
		p.next()
		n := ast.New(ast.UNARY_OP, tok.Loc)
		n.Op = tok.Text
		n.Left = p.unary()
		return n
	case token.AMP:
		p.next()
		n := ast.New(ast.ADDRESS_OF, tok.Loc)
		n.Left = p.unary()
		return n
	case token.STAR:
		p.next()
		n := ast.New(ast.DEREFERENCE, tok.Loc)
		n.Left = p.unary()
		n.IsLvalue = true
		return n
	case token.SIZEOF:
		p.next()
		n := ast.New(ast.SIZEOF, tok.Loc)
		if p.sizeofStartsType() {
			p.next() // '('
			t, _ := p.typeSpecifier()
			t = p.pointerWrap(t)
			p.expect(token.RPAREN, "')'")
			n.Type = t
		} else {
			n.Left = p.unary()
		}
		return n
	default:
		return p.postfix()
	}
}

// sizeofStartsType disambiguates 'sizeof (type)' from 'sizeof (expr)' by
// looking one token past a leading '(': a genuine single-token lookahead on
// both the lexer and the parser, with the '(' pushed back so the real parse
// below sees an unmodified stream. No token rollback is needed.
func (p *Parser) sizeofStartsType() bool {
	if !p.check(token.LPAREN) {
		return false
	}
	lparen := p.next()
	inner := p.peek().Kind.IsTypeKeyword()
	p.lex.Unget(lparen)
	return inner
}

// postfix := primary ( '(' args? ')' | '[' expression ']'
//
//	| '.' IDENT | '->' IDENT | '++' | '--' )*
func (p *Parser) postfix() *ast.Node {
	n := p.primary()
	for {
		switch p.peek().Kind {
		case token.LPAREN:
			pos := p.next().Loc
			call := ast.New(ast.CALL, pos)
			call.Left = n
			if !p.check(token.RPAREN) {
				call.Children = append(call.Children, p.assignment())
				for p.match(token.COMMA) {
					call.Children = append(call.Children, p.assignment())
				}
			}
			p.expect(token.RPAREN, "')'")
			n = call
		case token.LBRACKET:
			p.next()
			idx := ast.New(ast.ARRAY_ACCESS, n.Loc)
			idx.Left = n
			idx.Right = p.expression()
			idx.IsLvalue = true
			p.expect(token.RBRACKET, "']'")
			n = idx
		case token.DOT:
			p.next()
			nameTok := p.expect(token.IDENTIFIER, "member name")
			m := ast.New(ast.MEMBER_ACCESS, n.Loc)
			m.Left = n
			m.Name = nameTok.Text
			m.IsLvalue = true
			n = m
		case token.ARROW:
			p.next()
			nameTok := p.expect(token.IDENTIFIER, "member name")
			m := ast.New(ast.PTR_MEMBER, n.Loc)
			m.Left = n
			m.Name = nameTok.Text
			m.IsLvalue = true
			n = m
		case token.INC:
			p.next()
			m := ast.New(ast.POST_INC, n.Loc)
			m.Left = n
			n = m
		case token.DEC:
			p.next()
			m := ast.New(ast.POST_DEC, n.Loc)
			m.Left = n
			n = m
		default:
			return n
		}
	}
}

// primary := NUMBER | FLOAT | STRING | CHAR | IDENT
//
//	| 'true' | 'false' | 'null' | '(' expression ')'
//	| '{' assignment (',' assignment)* '}'
func (p *Parser) primary() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.NUMBER:
		p.next()
		n := ast.New(ast.NUMBER, tok.Loc)
		n.IntValue = tok.IntValue
		return n
	case token.FLOAT:
		p.next()
		n := ast.New(ast.FLOAT, tok.Loc)
		n.FloatValue = tok.FloatValue
		return n
	case token.STRING:
		p.next()
		n := ast.New(ast.STRING, tok.Loc)
		n.Name = tok.Text
		return n
	case token.CHAR:
		p.next()
		n := ast.New(ast.CHAR, tok.Loc)
		n.CharValue = tok.CharValue
		return n
	case token.IDENTIFIER:
		p.next()
		n := ast.New(ast.IDENTIFIER, tok.Loc)
		n.Name = tok.Text
		n.IsLvalue = true
		return n
	case token.TRUE:
		p.next()
		n := ast.New(ast.NUMBER, tok.Loc)
		n.IntValue = 1
		return n
	case token.FALSE:
		p.next()
		n := ast.New(ast.NUMBER, tok.Loc)
		n.IntValue = 0
		return n
	case token.NULL_LITERAL:
		p.next()
		n := ast.New(ast.NUMBER, tok.Loc)
		n.IntValue = 0
		return n
	case token.GETPID:
		p.next()
		if p.match(token.LPAREN) {
			p.expect(token.RPAREN, "')'")
		}
		return ast.New(ast.GETPID, tok.Loc)
	case token.LPAREN:
		p.next()
		n := p.expression()
		p.expect(token.RPAREN, "')'")
		return n
	case token.LBRACE:
		p.next()
		n := ast.New(ast.INIT_LIST, tok.Loc)
		if !p.check(token.RBRACE) {
			n.Children = append(n.Children, p.assignment())
			for p.match(token.COMMA) {
				n.Children = append(n.Children, p.assignment())
			}
		}
		p.expect(token.RBRACE, "'}'")
		return n
	default:
		p.errorAt(tok, "expected expression")
		p.next()
		return ast.New(ast.EMPTY, tok.Loc)
	}
}
