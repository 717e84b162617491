package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-chartgen/pkg/filter"
)

// Evaluator is a small, dependency-free row filter.
//
// Supported operators:
//   - boolean checks: `active`
//   - comparisons: `continent == "Europe"`, `pop >= 1e6`, `date < "2020-01-01"`
//   - boolean composition: `a > 1 && b != "x"`, `a || !b`, parentheses
//
// Identifiers name columns; wrap names containing spaces or operators in
// backticks (`life exp` > 70). Parsed expressions are cached.
type Evaluator struct {
	cache sync.Map
}

var _ filter.Evaluator = (*Evaluator)(nil)

func New() *Evaluator { return &Evaluator{} }

// Compile parses expression without evaluating it, surfacing syntax errors.
func (e *Evaluator) Compile(expression string) error {
	_, err := e.compile(expression)
	return err
}

func (e *Evaluator) Eval(expression string, row filter.Row) (bool, error) {
	node, err := e.compile(expression)
	if err != nil {
		return false, err
	}
	if node == nil {
		return true, nil
	}
	return node.eval(row)
}

func (e *Evaluator) compile(expression string) (exprNode, error) {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return nil, nil
	}
	if cached, ok := e.cache.Load(trimmed); ok {
		return cached.(exprNode), nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	node, err := parseExpression(tokens)
	if err != nil {
		return nil, err
	}
	e.cache.Store(trimmed, node)
	return node, nil
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenLt
	tokenLte
	tokenGt
	tokenGte
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	next := func() byte {
		if i >= len(input) {
			return 0
		}
		return input[i]
	}

	consume := func() byte {
		if i >= len(input) {
			return 0
		}
		ch := input[i]
		i++
		return ch
	}

	for i < len(input) {
		ch := next()
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		switch ch {
		case '(':
			consume()
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			continue
		case ')':
			consume()
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			continue
		case '!':
			consume()
			if next() == '=' {
				consume()
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				continue
			}
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
			continue
		case '=':
			consume()
			if next() != '=' {
				return nil, fmt.Errorf("filter/expr: unexpected '='; use '=='")
			}
			consume()
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
			continue
		case '<', '>':
			consume()
			orEqual := next() == '='
			if orEqual {
				consume()
			}
			switch {
			case ch == '<' && orEqual:
				tokens = append(tokens, token{kind: tokenLte, raw: "<="})
			case ch == '<':
				tokens = append(tokens, token{kind: tokenLt, raw: "<"})
			case orEqual:
				tokens = append(tokens, token{kind: tokenGte, raw: ">="})
			default:
				tokens = append(tokens, token{kind: tokenGt, raw: ">"})
			}
			continue
		case '&':
			consume()
			if next() != '&' {
				return nil, fmt.Errorf("filter/expr: unexpected '&'; use '&&'")
			}
			consume()
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
			continue
		case '|':
			consume()
			if next() != '|' {
				return nil, fmt.Errorf("filter/expr: unexpected '|'; use '||'")
			}
			consume()
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
			continue
		case '`':
			consume()
			end := strings.IndexByte(input[i:], '`')
			if end < 0 {
				return nil, errors.New("filter/expr: unterminated quoted identifier")
			}
			tokens = append(tokens, token{kind: tokenIdentifier, raw: input[i : i+end]})
			i += end + 1
			continue
		case '"', '\'':
			quote := consume()
			start := i
			escaped := false
			closed := false
			for i < len(input) {
				c := consume()
				if escaped {
					escaped = false
					continue
				}
				if c == '\\' {
					escaped = true
					continue
				}
				if c == quote {
					body := input[start : i-1]
					if quote == '\'' {
						body = strings.ReplaceAll(body, `"`, `\"`)
						body = strings.ReplaceAll(body, `\'`, `'`)
					}
					value, err := strconv.Unquote(`"` + body + `"`)
					if err != nil {
						return nil, fmt.Errorf("filter/expr: invalid string literal: %w", err)
					}
					tokens = append(tokens, token{kind: tokenString, raw: value})
					closed = true
					break
				}
			}
			if !closed {
				return nil, errors.New("filter/expr: unterminated string literal")
			}
			continue
		}

		start := i
		for i < len(input) {
			c := input[i]
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '(' || c == ')' || c == '!' || c == '=' || c == '&' || c == '|' || c == '<' || c == '>' {
				break
			}
			i++
		}
		raw := strings.TrimSpace(input[start:i])
		if raw == "" {
			continue
		}
		switch strings.ToLower(raw) {
		case "true", "false":
			tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
		case "null", "nil":
			tokens = append(tokens, token{kind: tokenNull, raw: "null"})
		default:
			if looksLikeNumber(raw) {
				tokens = append(tokens, token{kind: tokenNumber, raw: raw})
			} else {
				tokens = append(tokens, token{kind: tokenIdentifier, raw: raw})
			}
		}
	}

	return tokens, nil
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+' || ch == '.'
}

type exprNode interface {
	eval(row filter.Row) (bool, error)
}

type exprOr struct {
	left  exprNode
	right exprNode
}

func (n exprOr) eval(row filter.Row) (bool, error) {
	ok, err := n.left.eval(row)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	return n.right.eval(row)
}

type exprAnd struct {
	left  exprNode
	right exprNode
}

func (n exprAnd) eval(row filter.Row) (bool, error) {
	ok, err := n.left.eval(row)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return n.right.eval(row)
}

type exprNot struct {
	inner exprNode
}

func (n exprNot) eval(row filter.Row) (bool, error) {
	ok, err := n.inner.eval(row)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
)

type literal struct {
	kind   literalKind
	raw    string
	number float64
}

type exprCompare struct {
	identifier string
	op         tokenKind
	literal    literal
}

func (n exprCompare) eval(row filter.Row) (bool, error) {
	value, ok := row.Lookup(n.identifier)
	if !ok {
		return false, fmt.Errorf("filter/expr: unknown column %q", n.identifier)
	}

	switch n.literal.kind {
	case litNull:
		isNull := value == nil
		switch n.op {
		case tokenEq:
			return isNull, nil
		case tokenNeq:
			return !isNull, nil
		}
		return false, fmt.Errorf("filter/expr: unsupported operator %q for null literal", n.opString())
	case litBool:
		want := n.literal.raw == "true"
		got, _ := coerceBool(value)
		switch n.op {
		case tokenEq:
			return value != nil && got == want, nil
		case tokenNeq:
			return value == nil || got != want, nil
		}
		return false, fmt.Errorf("filter/expr: unsupported operator %q for bool literal", n.opString())
	case litNumber:
		got, ok := coerceNumber(value)
		if !ok {
			return n.op == tokenNeq, nil
		}
		return compareOrdered(n.op, got, n.literal.number), nil
	case litString:
		if value == nil {
			return n.op == tokenNeq, nil
		}
		return compareOrdered(n.op, coerceString(value), n.literal.raw), nil
	default:
		return false, fmt.Errorf("filter/expr: unsupported literal")
	}
}

func compareOrdered[T float64 | string](op tokenKind, got, want T) bool {
	switch op {
	case tokenEq:
		return got == want
	case tokenNeq:
		return got != want
	case tokenLt:
		return got < want
	case tokenLte:
		return got <= want
	case tokenGt:
		return got > want
	case tokenGte:
		return got >= want
	default:
		return false
	}
}

func (n exprCompare) opString() string {
	return opString(n.op)
}

func opString(op tokenKind) string {
	switch op {
	case tokenEq:
		return "=="
	case tokenNeq:
		return "!="
	case tokenLt:
		return "<"
	case tokenLte:
		return "<="
	case tokenGt:
		return ">"
	case tokenGte:
		return ">="
	default:
		return "?"
	}
}

type exprTruthy struct {
	identifier string
}

func (n exprTruthy) eval(row filter.Row) (bool, error) {
	value, ok := row.Lookup(n.identifier)
	if !ok {
		return false, fmt.Errorf("filter/expr: unknown column %q", n.identifier)
	}
	return truthy(value), nil
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseExpression(tokens []token) (exprNode, error) {
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("filter/expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return node, nil
}

func parseOr(stream *tokenStream) (exprNode, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (exprNode, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parsePrimary(stream)
}

var comparisonOps = []tokenKind{tokenEq, tokenNeq, tokenLt, tokenLte, tokenGt, tokenGte}

func parsePrimary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("filter/expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := stream.consume(tokenIdentifier)
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("filter/expr: empty expression")
		}
		return nil, fmt.Errorf("filter/expr: expected identifier, got %q", stream.tokens[stream.pos].raw)
	}

	for _, op := range comparisonOps {
		if !stream.match(op) {
			continue
		}
		lit, err := stream.consumeLiteral()
		if err != nil {
			return nil, err
		}
		if op != tokenEq && op != tokenNeq && (lit.kind == litBool || lit.kind == litNull) {
			return nil, fmt.Errorf("filter/expr: operator %q requires a number or string", opString(op))
		}
		return exprCompare{identifier: ident.raw, op: op, literal: lit}, nil
	}

	return exprTruthy{identifier: ident.raw}, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) {
		return false
	}
	if s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) {
		return token{}, false
	}
	if s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) consumeLiteral() (literal, error) {
	if s.pos >= len(s.tokens) {
		return literal{}, errors.New("filter/expr: missing literal")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString:
		return literal{kind: litString, raw: tok.raw}, nil
	case tokenNumber:
		f, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return literal{}, fmt.Errorf("filter/expr: invalid number literal %q", tok.raw)
		}
		return literal{kind: litNumber, raw: tok.raw, number: f}, nil
	case tokenBool:
		return literal{kind: litBool, raw: tok.raw}, nil
	case tokenNull:
		return literal{kind: litNull, raw: "null"}, nil
	default:
		return literal{}, fmt.Errorf("filter/expr: expected literal, got %q", tok.raw)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return true
	}
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed, true
		}
		return strings.TrimSpace(v) != "", true
	case float64:
		return v != 0, true
	default:
		return truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
