package contentstream

import (
	"errors"
	"fmt"
	"strconv"
)

// OperandKind tags the value held by an Operand.
type OperandKind int

const (
	OperandNumber OperandKind = iota
	OperandName
	OperandString
	OperandArray
)

// Operand is one parsed operand of a content-stream operator.
type Operand struct {
	Kind   OperandKind
	Number float64
	Name   string
	String []byte
	Array  []Operand
}

// Operation is an operator with its operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Float returns operand i as a number, or 0.
func (op Operation) Float(i int) float64 {
	if i < 0 || i >= len(op.Operands) || op.Operands[i].Kind != OperandNumber {
		return 0
	}
	return op.Operands[i].Number
}

// Parse splits a content stream into operations. Inline images and
// dictionaries are not supported.
func Parse(data []byte) ([]Operation, error) {
	s := &scanner{data: data}
	var ops []Operation
	var stack []Operand
	for {
		s.skipSpace()
		if s.eof() {
			break
		}
		operand, word, err := s.next()
		if err != nil {
			return nil, err
		}
		if word != "" {
			ops = append(ops, Operation{Operator: word, Operands: stack})
			stack = nil
			continue
		}
		stack = append(stack, operand)
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("dangling operands: %d", len(stack))
	}
	return ops, nil
}

type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) eof() bool { return s.pos >= len(s.data) }

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.data[s.pos] {
		case ' ', '\n', '\r', '\t', '\f', 0:
			s.pos++
		case '%':
			for !s.eof() && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\f', 0, '(', ')', '<', '>', '[', ']', '/', '%':
		return true
	}
	return false
}

// next returns either an operand or, when word is non-empty, an operator.
func (s *scanner) next() (Operand, string, error) {
	c := s.data[s.pos]
	switch {
	case c == '/':
		s.pos++
		start := s.pos
		for !s.eof() && !isDelimiter(s.data[s.pos]) {
			s.pos++
		}
		return Operand{Kind: OperandName, Name: string(s.data[start:s.pos])}, "", nil
	case c == '(':
		str, err := s.literal()
		return Operand{Kind: OperandString, String: str}, "", err
	case c == '<':
		str, err := s.hex()
		return Operand{Kind: OperandString, String: str}, "", err
	case c == '[':
		s.pos++
		var items []Operand
		for {
			s.skipSpace()
			if s.eof() {
				return Operand{}, "", errors.New("unterminated array")
			}
			if s.data[s.pos] == ']' {
				s.pos++
				return Operand{Kind: OperandArray, Array: items}, "", nil
			}
			item, word, err := s.next()
			if err != nil {
				return Operand{}, "", err
			}
			if word != "" {
				return Operand{}, "", fmt.Errorf("operator %q inside array", word)
			}
			items = append(items, item)
		}
	case c == ')' || c == '>' || c == ']':
		return Operand{}, "", fmt.Errorf("unexpected %q at offset %d", c, s.pos)
	}
	start := s.pos
	for !s.eof() && !isDelimiter(s.data[s.pos]) {
		s.pos++
	}
	tok := string(s.data[start:s.pos])
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Operand{Kind: OperandNumber, Number: f}, "", nil
	}
	return Operand{}, tok, nil
}

func (s *scanner) literal() ([]byte, error) {
	s.pos++
	depth := 1
	var out []byte
	for !s.eof() {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '\\':
			if s.eof() {
				return nil, errors.New("unterminated string")
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '0', '1', '2', '3', '4', '5', '6', '7':
				v := int(e - '0')
				for i := 0; i < 2 && !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
					v = v*8 + int(s.data[s.pos]-'0')
					s.pos++
				}
				out = append(out, byte(v))
			default:
				out = append(out, e)
			}
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out, nil
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return nil, errors.New("unterminated string")
}

func (s *scanner) hex() ([]byte, error) {
	s.pos++
	var digits []byte
	for !s.eof() {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			if len(digits)%2 == 1 {
				digits = append(digits, '0')
			}
			out := make([]byte, len(digits)/2)
			for i := range out {
				v, err := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
				if err != nil {
					return nil, err
				}
				out[i] = byte(v)
			}
			return out, nil
		}
		if c == ' ' || c == '\n' || c == '\r' || c == '\t' {
			continue
		}
		digits = append(digits, c)
	}
	return nil, errors.New("unterminated hex string")
}
