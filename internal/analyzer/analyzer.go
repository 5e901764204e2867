// Package analyzer flags common PyTorch mistakes in Python source text.
//
// Detection is purely syntactic: matchers look at node names and shapes, not
// at bindings or types. A user-defined allocator that happens to be called
// Tensor triggers the same finding as torch.Tensor. That trade-off keeps the
// pass to a single parse and a single tree walk.
package analyzer

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax reports source text that does not parse under the Python grammar.
var ErrSyntax = errors.New("analyzer: syntax error")

// Issue is one finding: a 1-based source line, a message and a suggested fix.
type Issue struct {
	Line    int
	Message string
	Fix     string
}

// deviceOps are the attribute names whose call marks a tensor as explicitly
// placed on a device.
var deviceOps = map[string]bool{
	"cuda": true,
	"to":   true,
	"cpu":  true,
}

// Analyze parses source as Python and returns issues in source order.
// An empty slice with a nil error means the source is clean.
func Analyze(source []byte) ([]Issue, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: source does not parse as Python", ErrSyntax)
	}

	w := &walker{source: source}
	w.visit(root)
	return w.issues, nil
}

type walker struct {
	source []byte
	issues []Issue
}

// visit dispatches one node to the matchers, then descends into every child
// left to right, so issues come out in source order.
func (w *walker) visit(n *sitter.Node) {
	switch n.Type() {
	case "assignment":
		w.checkAllocation(n)
	case "call":
		w.checkBackward(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		w.visit(n.Child(i))
	}
}

// checkAllocation flags an assignment whose right-hand side allocates a
// Tensor while nothing in the assignment subtree places it on a device.
func (w *walker) checkAllocation(n *sitter.Node) {
	rhs := n.ChildByFieldName("right")
	if rhs == nil || rhs.Type() != "call" {
		return
	}
	if callFinalName(rhs, w.source) != "Tensor" {
		return
	}
	if w.hasDeviceOp(n) {
		return
	}
	target := "tensor"
	if left := n.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
		target = w.text(left)
	}
	w.issues = append(w.issues, Issue{
		Line:    int(n.StartPoint().Row) + 1,
		Message: "Tensor created without device assignment",
		Fix:     target + ".to(device)",
	})
}

// checkBackward flags a .backward() call without a retain_graph keyword.
// The function must be an attribute; a bare backward() identifier call has
// no attribute name and cannot match.
func (w *walker) checkBackward(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Type() != "attribute" {
		return
	}
	attr := fn.ChildByFieldName("attribute")
	if attr == nil || w.text(attr) != "backward" {
		return
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			kw := args.NamedChild(i)
			if kw.Type() != "keyword_argument" {
				continue
			}
			if name := kw.ChildByFieldName("name"); name != nil && w.text(name) == "retain_graph" {
				return
			}
		}
	}
	w.issues = append(w.issues, Issue{
		Line:    int(n.StartPoint().Row) + 1,
		Message: "Missing retain_graph in backward()",
		Fix:     "retain_graph=True",
	})
}

// hasDeviceOp reports whether any call in the subtree rooted at n invokes
// one of the device-transfer attributes.
func (w *walker) hasDeviceOp(n *sitter.Node) bool {
	if n.Type() == "call" {
		if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "attribute" {
			if attr := fn.ChildByFieldName("attribute"); attr != nil && deviceOps[w.text(attr)] {
				return true
			}
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if w.hasDeviceOp(n.Child(i)) {
			return true
		}
	}
	return false
}

// callFinalName returns the rightmost name of a call's function: the
// attribute name for obj.Name(...), the identifier itself for Name(...).
func callFinalName(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return string(source[fn.StartByte():fn.EndByte()])
	case "attribute":
		if attr := fn.ChildByFieldName("attribute"); attr != nil {
			return string(source[attr.StartByte():attr.EndByte()])
		}
	}
	return ""
}

func (w *walker) text(n *sitter.Node) string {
	return string(w.source[n.StartByte():n.EndByte()])
}
