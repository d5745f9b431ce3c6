// Package template provides a template processor for SQL files with Starlark expressions.
// It supports {{ expr }} for expression evaluation and {* stmt *} for control flow.
//
// Rendering records a slice map relating every byte of output to the
// template source, so lint fixes on the rendered SQL can be written back.
package template

// Position tracks source location for error reporting.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int // 0-based byte offset
}

// Node is the interface for all template AST nodes.
type Node interface {
	Pos() Position
	End() int // byte offset just past the node in the source
	node()    // marker method to restrict implementation
}

// nodeBase provides common Position handling for all nodes.
type nodeBase struct {
	pos Position
	end int
}

func (n *nodeBase) Pos() Position { return n.pos }
func (n *nodeBase) End() int      { return n.end }
func (n *nodeBase) node()         {}

// TextNode represents literal SQL text (passed through unchanged).
type TextNode struct {
	nodeBase
	Text string
}

// ExprNode represents a {{ expr }} expression.
// The Expr field contains the Starlark expression source (without delimiters).
type ExprNode struct {
	nodeBase
	Expr string
}

// StmtKind identifies the type of control flow statement.
type StmtKind int

// StmtKind constants for control flow statement types.
const (
	StmtUnknown StmtKind = iota // Unknown/invalid statement
	StmtFor                     // {* for x in items: *}
	StmtEndFor                  // {* endfor *}
	StmtIf                      // {* if cond: *}
	StmtElif                    // {* elif cond: *}
	StmtElse                    // {* else: *}
	StmtEndIf                   // {* endif *}
)

func (k StmtKind) String() string {
	switch k {
	case StmtUnknown:
		return "unknown"
	case StmtFor:
		return "for"
	case StmtEndFor:
		return "endfor"
	case StmtIf:
		return "if"
	case StmtElif:
		return "elif"
	case StmtElse:
		return "else"
	case StmtEndIf:
		return "endif"
	default:
		return "unknown"
	}
}

// StmtNode represents a {* stmt *} statement (raw from lexer, before parsing into blocks).
type StmtNode struct {
	nodeBase
	Kind    StmtKind
	Expr    string // Condition (if/elif) or iterator expression (for)
	VarName string // Loop variable name (for loops only)
}

// ForBlock represents a complete for loop with its body.
// Created by the parser from StmtNode pairs.
type ForBlock struct {
	nodeBase
	VarName  string // Loop variable name
	IterExpr string // Iterator expression (evaluated by Starlark)
	Body     []Node // Nodes inside the loop
}

// IfBlock represents a complete if/elif/else conditional.
// Created by the parser from StmtNode sequences. The block spans from
// the if tag through the endif tag.
type IfBlock struct {
	nodeBase
	Condition string   // if condition expression
	Body      []Node   // Nodes for the if branch
	ElseIfs   []Branch // elif branches (may be empty)
	Else      []Node   // else branch (may be nil)

	TagEnd  int      // end of the if tag
	ElseTag *Branch  // else tag position, nil without else
	EndTag  Position // position of the endif tag
}

// Branch represents an elif branch, or the else tag of an IfBlock.
type Branch struct {
	Condition string
	Body      []Node
	TagEnd    int // end of the elif/else tag
	pos       Position
}

// Pos returns the position of the branch's tag.
func (b *Branch) Pos() Position { return b.pos }

// arm is one branch of an IfBlock in source order.
type arm struct {
	isElse  bool
	cond    string
	body    []Node
	pos     Position // position of the tag
	tagEnd  int
	bodyEnd int // start of the next tag
}

// arms returns the branches in source order with their source extents.
func (b *IfBlock) arms() []arm {
	arms := []arm{{cond: b.Condition, body: b.Body, pos: b.pos, tagEnd: b.TagEnd}}
	for i := range b.ElseIfs {
		e := &b.ElseIfs[i]
		arms = append(arms, arm{cond: e.Condition, body: e.Body, pos: e.pos, tagEnd: e.TagEnd})
	}
	if b.ElseTag != nil {
		arms = append(arms, arm{isElse: true, body: b.Else, pos: b.ElseTag.pos, tagEnd: b.ElseTag.TagEnd})
	}
	for i := range arms {
		if i+1 < len(arms) {
			arms[i].bodyEnd = arms[i+1].pos.Offset
		} else {
			arms[i].bodyEnd = b.EndTag.Offset
		}
	}
	return arms
}

// Template represents a complete parsed template.
type Template struct {
	Nodes []Node
	File  string // Source file path
}
