package typeexpr

import (
	"fmt"

	"github.com/funvibe/sable/internal/types"
)

// Resolver looks up named type definitions by name and arity. The
// scenario world implements it over the ambient universe plus declared
// types.
type Resolver interface {
	LookupType(name string, arity int) (*types.TypeDef, bool)
}

// Parser is a recursive-descent parser for type expressions, method
// signatures and type declarations.
type Parser struct {
	l     *Lexer
	cur   Token
	peek  Token
	res   Resolver
	scope map[string]*types.TypeParam
	self  *types.TypeDef
}

func newParser(input string, res Resolver) *Parser {
	p := &Parser{l: NewLexer(input), res: res, scope: map[string]*types.TypeParam{}}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if p.cur.Type != t {
		return Token{}, p.errorf("expected %s, got %q", t, p.cur.Literal)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("column %d: %s", p.cur.Column, fmt.Sprintf(format, args...))
}

// ParseType parses a single type expression like "List<int[]>" or
// "(int a, string b)?".
func ParseType(input string, res Resolver) (types.Type, error) {
	return ParseTypeWith(input, res, nil)
}

// ParseTypeWith parses a type expression with the given type parameters
// in scope.
func ParseTypeWith(input string, res Resolver, params []*types.TypeParam) (types.Type, error) {
	p := newParser(input, res)
	for _, tp := range params {
		p.scope[tp.Name] = tp
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != EOF {
		return nil, p.errorf("unexpected trailing %q", p.cur.Literal)
	}
	return t, nil
}

func (p *Parser) parseType() (types.Type, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case LBRACKET:
			p.next()
			rank := 1
			for p.cur.Type == COMMA {
				rank++
				p.next()
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			base = &types.Array{Elem: base, Rank: rank}
		case QUESTION:
			p.next()
			base = &types.Nullable{Elem: base}
		default:
			return base, nil
		}
	}
}

func (p *Parser) parsePrimary() (types.Type, error) {
	switch p.cur.Type {
	case LPAREN:
		return p.parseTuple()
	case IDENT:
		return p.parseNamed()
	default:
		return nil, p.errorf("expected a type, got %q", p.cur.Literal)
	}
}

func (p *Parser) parseTuple() (types.Type, error) {
	p.next() // (
	var elems []types.Type
	var names []string
	anyName := false
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name := ""
		if p.cur.Type == IDENT {
			name = p.cur.Literal
			anyName = true
			p.next()
		}
		elems = append(elems, t)
		names = append(names, name)
		if p.cur.Type != COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if len(elems) == 1 && !anyName {
		// Parenthesized type, not a tuple.
		return elems[0], nil
	}
	if !anyName {
		names = nil
	}
	return &types.Tuple{Elems: elems, Names: names}, nil
}

func (p *Parser) parseNamed() (types.Type, error) {
	name := p.cur.Literal
	p.next()
	if name == "dynamic" {
		return types.Dynamic, nil
	}
	var args []types.Type
	if p.cur.Type == LT {
		p.next()
		for {
			a, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.cur.Type != COMMA {
				break
			}
			p.next()
		}
		if _, err := p.expect(GT); err != nil {
			return nil, err
		}
	}
	if len(args) == 0 {
		if tp, ok := p.scope[name]; ok {
			return tp, nil
		}
	}
	if p.self != nil && name == p.self.Name && len(args) == len(p.self.Params) {
		return p.self.New(args...), nil
	}
	def, ok := p.res.LookupType(name, len(args))
	if !ok {
		return nil, fmt.Errorf("unknown type %s with %d type arguments", name, len(args))
	}
	return def.New(args...), nil
}

// ParseMethod parses a generic method signature of the form
//
//	M<T, U>(T first, Func<T, U> second) U
//
// with optional ref/out/in parameter prefixes and an optional return
// type (omitted means void).
func ParseMethod(input string, res Resolver) (*types.Method, error) {
	p := newParser(input, res)
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	m := &types.Method{Name: name.Literal}
	if p.cur.Type == LT {
		m.TypeParams, err = p.parseTypeParams()
		if err != nil {
			return nil, err
		}
		for _, tp := range m.TypeParams {
			p.scope[tp.Name] = tp
		}
	}
	m.Params, err = p.parseParams()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != EOF {
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		m.Return = ret
	} else {
		m.Return = types.Void
	}
	if p.cur.Type != EOF {
		return nil, p.errorf("unexpected trailing %q", p.cur.Literal)
	}
	return m, nil
}

func (p *Parser) parseTypeParams() ([]*types.TypeParam, error) {
	p.next() // <
	var out []*types.TypeParam
	for {
		variance := types.Invariant
		if p.cur.Type == IDENT && (p.cur.Literal == "in" || p.cur.Literal == "out") && p.peek.Type == IDENT {
			if p.cur.Literal == "in" {
				variance = types.Contravariant
			} else {
				variance = types.Covariant
			}
			p.next()
		}
		name, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		out = append(out, &types.TypeParam{Name: name.Literal, Ordinal: len(out), Variance: variance})
		if p.cur.Type != COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(GT); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parseParams() ([]types.Param, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var out []types.Param
	for p.cur.Type != RPAREN {
		var param types.Param
		if p.cur.Type == IDENT && p.peek.Type != COMMA && p.peek.Type != RPAREN {
			switch p.cur.Literal {
			case "ref":
				param.Ref = types.Ref
				p.next()
			case "out":
				param.Ref = types.Out
				p.next()
			case "in":
				param.Ref = types.In
				p.next()
			}
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		param.Type = t
		if p.cur.Type == IDENT {
			param.Name = p.cur.Literal
			p.next()
		}
		out = append(out, param)
		if p.cur.Type != COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseCall parses a simple call expression of the form
//
//	M(int, string, null)
//
// where each argument is a type expression standing for a typed
// expression of that type, or null. Null arguments come back as nil.
func ParseCall(input string, res Resolver) (string, []types.Type, error) {
	p := newParser(input, res)
	name, err := p.expect(IDENT)
	if err != nil {
		return "", nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return "", nil, err
	}
	var args []types.Type
	for p.cur.Type != RPAREN {
		if p.cur.Type == IDENT && p.cur.Literal == "null" {
			args = append(args, nil)
			p.next()
		} else {
			t, err := p.parseType()
			if err != nil {
				return "", nil, err
			}
			args = append(args, t)
		}
		if p.cur.Type != COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(RPAREN); err != nil {
		return "", nil, err
	}
	if p.cur.Type != EOF {
		return "", nil, p.errorf("unexpected trailing %q", p.cur.Literal)
	}
	return name.Literal, args, nil
}

// ParseTypeDecl parses a type declaration and returns the completed
// definition:
//
//	class Dog : Animal
//	interface IBox<out T> : IEnumerable<T>
//	struct Point
//	delegate Mapper<T, R>(T value) R
//
// The definition being declared is in scope for its own heritage and
// delegate signature.
func ParseTypeDecl(input string, res Resolver) (*types.TypeDef, error) {
	p := newParser(input, res)
	kindTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	var kind types.TypeKind
	switch kindTok.Literal {
	case "class":
		kind = types.Class
	case "struct":
		kind = types.Struct
	case "interface":
		kind = types.Interface
	case "delegate":
		kind = types.Delegate
	default:
		return nil, fmt.Errorf("unknown declaration kind %q", kindTok.Literal)
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	def := &types.TypeDef{Name: name.Literal, Kind: kind}
	if p.cur.Type == LT {
		def.Params, err = p.parseTypeParams()
		if err != nil {
			return nil, err
		}
		for _, tp := range def.Params {
			p.scope[tp.Name] = tp
		}
	}
	p.self = def

	if kind == types.Delegate {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		ret := types.Type(types.Void)
		if p.cur.Type != EOF {
			if ret, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		def.Invoke = &types.Signature{Params: params, Return: ret}
	} else if p.cur.Type == COLON {
		p.next()
		for {
			h, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if hn, ok := h.(*types.Named); ok && hn.Def.Kind == types.Class && kind == types.Class && def.Base == nil {
				def.Base = h
			} else {
				def.Interfaces = append(def.Interfaces, h)
			}
			if p.cur.Type != COMMA {
				break
			}
			p.next()
		}
	}
	if p.cur.Type != EOF {
		return nil, p.errorf("unexpected trailing %q", p.cur.Literal)
	}
	return def, nil
}
