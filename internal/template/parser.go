package template

import (
	"strings"
	"unicode"
)

// Parser builds a Template from lexer tokens, pairing control statements
// into ForBlock and IfBlock nodes.
type Parser struct {
	tokens []Token
	pos    int
	file   string
}

// NewParser creates a parser over tokens produced by Lexer.Tokenize.
func NewParser(tokens []Token, file string) *Parser {
	return &Parser{tokens: tokens, file: file}
}

// ParseString lexes and parses a template.
func ParseString(input, file string) (*Template, error) {
	tokens, err := NewLexer(input, file).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens, file).Parse()
}

// Parse parses the whole token stream.
func (p *Parser) Parse() (*Template, error) {
	nodes, stop, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	if stop != nil {
		return nil, unmatchedBlock(stop.pos, stop.Kind)
	}
	return &Template{Nodes: nodes, File: p.file}, nil
}

func (p *Parser) next() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// parseNodes parses until EOF or a statement that ends the enclosing
// block (endfor, endif, elif, else). The terminating statement is
// consumed and returned; it is nil at EOF.
func (p *Parser) parseNodes() ([]Node, *StmtNode, error) {
	var nodes []Node
	for {
		tok := p.next()
		switch tok.Type {
		case TokenEOF:
			return nodes, nil, nil
		case TokenText:
			nodes = append(nodes, &TextNode{nodeBase: nodeBase{pos: tok.Pos, end: tok.End}, Text: tok.Value})
		case TokenExpr:
			if tok.Value == "" {
				return nil, nil, syntaxErrorf(tok.Pos, "empty expression")
			}
			nodes = append(nodes, &ExprNode{nodeBase: nodeBase{pos: tok.Pos, end: tok.End}, Expr: tok.Value})
		case TokenStmt:
			stmt, err := parseStatement(tok)
			if err != nil {
				return nil, nil, err
			}
			switch stmt.Kind {
			case StmtFor:
				block, err := p.parseFor(stmt)
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, block)
			case StmtIf:
				block, err := p.parseIf(stmt)
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, block)
			default:
				return nodes, stmt, nil
			}
		default:
			return nil, nil, syntaxErrorf(tok.Pos, "unexpected %s token", tok.Type)
		}
	}
}

func (p *Parser) parseFor(open *StmtNode) (*ForBlock, error) {
	body, stop, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	if stop == nil || stop.Kind != StmtEndFor {
		return nil, unmatchedBlock(open.pos, StmtFor)
	}
	return &ForBlock{
		nodeBase: nodeBase{pos: open.pos, end: stop.end},
		VarName:  open.VarName,
		IterExpr: open.Expr,
		Body:     body,
	}, nil
}

func (p *Parser) parseIf(open *StmtNode) (*IfBlock, error) {
	block := &IfBlock{
		nodeBase:  nodeBase{pos: open.pos},
		Condition: open.Expr,
		TagEnd:    open.end,
	}

	body, stop, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	block.Body = body

	for {
		if stop == nil {
			return nil, unmatchedBlock(open.pos, StmtIf)
		}
		switch stop.Kind {
		case StmtElif, StmtElse:
			if block.ElseTag != nil {
				return nil, syntaxErrorf(stop.pos, "'%s' after 'else'", stop.Kind)
			}
			body, next, err := p.parseNodes()
			if err != nil {
				return nil, err
			}
			branch := Branch{Condition: stop.Expr, Body: body, TagEnd: stop.end, pos: stop.pos}
			if stop.Kind == StmtElse {
				block.ElseTag = &branch
				block.Else = body
			} else {
				block.ElseIfs = append(block.ElseIfs, branch)
			}
			stop = next
		case StmtEndIf:
			block.EndTag = stop.pos
			block.end = stop.end
			return block, nil
		default:
			return nil, unmatchedBlock(open.pos, StmtIf)
		}
	}
}

// parseStatement classifies the content of a {* *} tag. A trailing colon
// is optional.
func parseStatement(tok Token) (*StmtNode, error) {
	s := strings.TrimSpace(strings.TrimSuffix(tok.Value, ":"))
	keyword, rest := s, ""
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		keyword, rest = s[:i], strings.TrimSpace(s[i:])
	}

	stmt := &StmtNode{nodeBase: nodeBase{pos: tok.Pos, end: tok.End}}
	switch keyword {
	case "for":
		name, iter, ok := strings.Cut(rest, " in ")
		name, iter = strings.TrimSpace(name), strings.TrimSpace(iter)
		if !ok || !isIdentifier(name) || iter == "" {
			return nil, syntaxErrorf(tok.Pos, "invalid for statement %q: expected 'for <name> in <expr>'", tok.Value)
		}
		stmt.Kind, stmt.VarName, stmt.Expr = StmtFor, name, iter
	case "if", "elif":
		if rest == "" {
			return nil, syntaxErrorf(tok.Pos, "'%s' requires a condition", keyword)
		}
		stmt.Kind, stmt.Expr = StmtIf, rest
		if keyword == "elif" {
			stmt.Kind = StmtElif
		}
	case "else", "endfor", "endif":
		if rest != "" {
			return nil, syntaxErrorf(tok.Pos, "unexpected %q after '%s'", rest, keyword)
		}
		stmt.Kind = map[string]StmtKind{"else": StmtElse, "endfor": StmtEndFor, "endif": StmtEndIf}[keyword]
	default:
		return nil, syntaxErrorf(tok.Pos, "unknown statement %q", keyword)
	}
	return stmt, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
