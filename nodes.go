package calculator

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text of a nodeNum or the operator of any other node.
	name string
	// val is the value of a nodeNum.
	val float64
	// pos is the column of the literal or operator.
	pos int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // val

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.name)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.name)
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		panic("calculator: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// binop returns the node kind for a binary operator.
func binop(text string) nodeKind {
	switch text {
	case "+":
		return nodeAdd
	case "-":
		return nodeSub
	case "*":
		return nodeMul
	case "/":
		return nodeDiv
	default:
		return nodeNone
	}
}
