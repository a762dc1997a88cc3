package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
// The children of a node are the instructions of its body, so only the
// definition forms with bodies have children.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	switch n := node.(type) {
	case *CircuitDefinition:
		for _, inst := range n.Body {
			Walk(v, inst)
		}
	case *Calibration:
		for _, inst := range n.Body {
			Walk(v, inst)
		}
	case *MeasureCalibration:
		for _, inst := range n.Body {
			Walk(v, inst)
		}
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			switch node := n.(type) {
			case *CircuitDefinition:
				for _, inst := range node.Body {
					if !visit(inst) {
						return false
					}
				}
			case *Calibration:
				for _, inst := range node.Body {
					if !visit(inst) {
						return false
					}
				}
			case *MeasureCalibration:
				for _, inst := range node.Body {
					if !visit(inst) {
						return false
					}
				}
			}
			return true
		}
		visit(root)
	}
}
