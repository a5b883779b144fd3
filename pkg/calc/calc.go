// Package calc evaluates restricted arithmetic expressions.
//
// The grammar is deliberately closed: signed decimal numbers, the binary
// operators + - * /, and grouping parentheses. Anything else is rejected
// before evaluation, so untrusted query text can never reach a general
// evaluator.
package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluate parses and evaluates an arithmetic expression.
// Equal-precedence operators associate left to right; * and / bind
// tighter than + and -. Failures are reported as *EvalError.
func Evaluate(expression string) (float64, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens}
	value, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return 0, syntaxError(fmt.Sprintf("unexpected %q", tok.text))
	}
	return value, nil
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

type token struct {
	kind  tokenKind
	value float64
	text  string
}

// tokenize scans the expression, rejecting any character outside the
// whitelist [0-9+-*/(). ] up front.
func tokenize(expression string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(expression); {
		c := expression[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokenPlus, text: "+"})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokenMinus, text: "-"})
			i++
		case c == '*':
			tokens = append(tokens, token{kind: tokenStar, text: "*"})
			i++
		case c == '/':
			tokens = append(tokens, token{kind: tokenSlash, text: "/"})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "("})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")"})
			i++
		case isDigit(c) || c == '.':
			start := i
			dots := 0
			for i < len(expression) && (isDigit(expression[i]) || expression[i] == '.') {
				if expression[i] == '.' {
					dots++
				}
				i++
			}
			text := expression[start:i]
			if dots > 1 || text == "." {
				return nil, syntaxError(fmt.Sprintf("malformed number %q", text))
			}
			value, err := strconv.ParseFloat(strings.TrimSuffix(text, "."), 64)
			if err != nil {
				return nil, syntaxError(fmt.Sprintf("malformed number %q", text))
			}
			tokens = append(tokens, token{kind: tokenNumber, value: value, text: text})
		default:
			return nil, syntaxError(fmt.Sprintf("illegal character %q", string(c)))
		}
	}

	tokens = append(tokens, token{kind: tokenEOF, text: "end of expression"})
	return tokens, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parser is a recursive-descent parser that evaluates as it goes.
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

// parseSum handles + and -.
func (p *parser) parseSum() (float64, error) {
	left, err := p.parseProduct()
	if err != nil {
		return 0, err
	}

	for {
		switch p.peek().kind {
		case tokenPlus:
			p.next()
			right, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			left += right
		case tokenMinus:
			p.next()
			right, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

// parseProduct handles * and /.
func (p *parser) parseProduct() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for {
		switch p.peek().kind {
		case tokenStar:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			left *= right
		case tokenSlash:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, &EvalError{Reason: ReasonDivisionByZero, Detail: "division by zero"}
			}
			left /= right
		default:
			return left, nil
		}
	}
}

// parseUnary handles leading signs on a term.
func (p *parser) parseUnary() (float64, error) {
	switch p.peek().kind {
	case tokenPlus:
		p.next()
		return p.parseUnary()
	case tokenMinus:
		p.next()
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	return p.parsePrimary()
}

// parsePrimary handles numbers and parenthesized groups.
func (p *parser) parsePrimary() (float64, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		return tok.value, nil
	case tokenLParen:
		value, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return 0, syntaxError(fmt.Sprintf("expected ')', got %q", closing.text))
		}
		return value, nil
	default:
		return 0, syntaxError(fmt.Sprintf("unexpected %q", tok.text))
	}
}
