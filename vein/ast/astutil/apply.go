// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package astutil provides generic tree-walking and rewriting over the
// vein/ast node set, independent of any one downstream pass (resolver,
// printer, lowering).
package astutil

import (
	"fmt"
	"reflect"

	"github.com/veinlang/vein/vein/ast"
)

// A Cursor describes a node encountered during Apply. Replace changes
// that node without disrupting the ongoing Apply.
type Cursor interface {
	// Node returns the current node.
	Node() ast.Node

	// Parent returns the parent of the current node, or nil at the root.
	Parent() Cursor

	// Index reports the index >= 0 of the current node in the slice
	// that contains it, or a value < 0 if it is not part of a slice.
	Index() int

	// Replace replaces the current node with n. A replacement made from
	// pre is walked in place of the original node; one made from post is
	// not walked.
	Replace(n ast.Node)
}

type cursor struct {
	parent   Cursor
	node     ast.Node
	typ      interface{} // addressable slot holding node, for Replace
	index    int
	replaced bool
}

func newCursor(parent Cursor, n ast.Node, typ interface{}) *cursor {
	return &cursor{parent: parent, typ: typ, node: n, index: -1}
}

func (c *cursor) Parent() Cursor { return c.parent }
func (c *cursor) Index() int     { return c.index }
func (c *cursor) Node() ast.Node { return c.node }

func (c *cursor) Replace(n ast.Node) {
	reflect.ValueOf(n).Convert(reflect.TypeOf(c.typ).Elem())
	c.node = n
	c.replaced = true
}

// Apply traverses a tree recursively, starting at root, and calls pre
// before a node's children are visited and post after. If pre returns
// false the node's children are skipped and post is not called for it.
// post's return value is ignored: Apply does not stop early when post
// returns false. Either may be nil.
// Apply returns root, possibly with nodes replaced via Cursor.Replace.
func Apply(root ast.Node, pre, post func(Cursor) bool) ast.Node {
	v := &inspector{pre: pre, post: post}
	walk(v, nil, &root)
	return root
}

type visitor interface {
	before(Cursor) bool
	after(Cursor) bool
}

type inspector struct {
	pre, post func(Cursor) bool
}

func (f *inspector) before(c Cursor) bool {
	return f.pre == nil || f.pre(c)
}
func (f *inspector) after(c Cursor) bool {
	if f.post == nil {
		return true
	}
	return f.post(c)
}

func walk(v visitor, parent Cursor, nodePtr interface{}) {
	res := reflect.Indirect(reflect.ValueOf(nodePtr))
	n := res.Interface()
	node := n.(ast.Node)
	if node == nil || reflect.ValueOf(node).IsNil() {
		return
	}
	c := newCursor(parent, node, nodePtr)
	walkCursor(v, c)
	if node != c.node {
		res.Set(reflect.ValueOf(c.node))
	}
}

func walkList[T ast.Node](v visitor, parent Cursor, list []T) {
	for i := range list {
		var n ast.Node = list[i]
		c := newCursor(parent, n, &list[i])
		c.index = i
		walkCursor(v, c)
		if n != c.node {
			list[i] = c.node.(T)
		}
	}
}

func walkCursor(v visitor, c Cursor) {
	if !v.before(c) {
		return
	}
	node := c.Node()

	switch n := node.(type) {
	// Kinds
	case *ast.KindHole, *ast.KindType, *ast.KindRow:
		// leaves
	case *ast.KindArrow:
		walk(v, c, &n.From)
		walk(v, c, &n.To)

	// Shared
	case *ast.Ident:
		// leaf

	// Types
	case *ast.TypeHole, *ast.TypeBuiltin, *ast.TypeEmptyRow:
		// leaves
	case *ast.TypeIdent:
		if n.Kind != nil {
			walk(v, c, &n.Kind)
		}
	case *ast.TypeGeneric:
		if n.Kind != nil {
			walk(v, c, &n.Kind)
		}
	case *ast.TypeProjection:
		walkList[*ast.Ident](v, c, n.Path)
	case *ast.TypeApp:
		walk(v, c, &n.Head)
		walkList[ast.Type](v, c, n.Args)
	case *ast.TypeFunction:
		walk(v, c, &n.From)
		walk(v, c, &n.To)
	case *ast.TypeForall:
		walkList[*ast.Ident](v, c, n.Params)
		walk(v, c, &n.Body)
	case *ast.TypeRecord:
		walk(v, c, &n.Row)
	case *ast.TypeVariant:
		walk(v, c, &n.Row)
	case *ast.TypeEffect:
		walk(v, c, &n.Row)
	case *ast.TypeExtendRow:
		for i := range n.Types {
			walk(v, c, &n.Types[i].Value)
		}
		for i := range n.Fields {
			walk(v, c, &n.Fields[i].Value)
		}
		walk(v, c, &n.Rest)

	// Patterns
	case *ast.PatternIdent, *ast.PatternLiteral, *ast.PatternError:
		// leaves
	case *ast.PatternConstructor:
		walkList[ast.Pattern](v, c, n.Args)
	case *ast.PatternAs:
		walk(v, c, &n.Pat)
	case *ast.PatternTuple:
		walkList[ast.Pattern](v, c, n.Elems)
	case *ast.PatternRecord:
		for i := range n.Fields {
			walk(v, c, &n.Fields[i].Value)
		}

	// Expressions
	case *ast.ExprIdent, *ast.ExprLiteral:
		// leaves
	case *ast.ExprProjection:
		walk(v, c, &n.X)
	case *ast.ExprTuple:
		walkList[ast.Expr](v, c, n.Elems)
	case *ast.ExprArray:
		walkList[ast.Expr](v, c, n.Elems)
	case *ast.ExprRecord:
		for i := range n.Types {
			walk(v, c, &n.Types[i].Value)
		}
		for i := range n.Exprs {
			walk(v, c, &n.Exprs[i].Value)
		}
		if n.Base != nil {
			walk(v, c, &n.Base)
		}
	case *ast.ExprApp:
		walk(v, c, &n.Func)
		walkList[ast.Expr](v, c, n.ImplicitArgs)
		walkList[ast.Expr](v, c, n.Args)
	case *ast.ExprInfix:
		walk(v, c, &n.Lhs)
		walk(v, c, &n.Rhs)
		walkList[ast.Expr](v, c, n.ImplicitArgs)
	case *ast.ExprLambda:
		for i := range n.Args {
			walk(v, c, &n.Args[i].Pat)
		}
		walk(v, c, &n.Body)
	case *ast.ExprIfElse:
		walk(v, c, &n.Cond)
		walk(v, c, &n.Then)
		walk(v, c, &n.Else)
	case *ast.ExprMatch:
		walk(v, c, &n.Scrutinee)
		for i := range n.Arms {
			walk(v, c, &n.Arms[i].Pat)
			walk(v, c, &n.Arms[i].Body)
		}
	case *ast.ExprLetBindings:
		for _, b := range n.Bindings {
			walk(v, c, &b.Name)
			if b.TypeAnnotation != nil {
				walk(v, c, &b.TypeAnnotation)
			}
			walk(v, c, &b.Body)
		}
		walk(v, c, &n.Body)
	case *ast.ExprTypeBindings:
		for _, b := range n.Bindings {
			walk(v, c, &b.Alias.Body)
		}
		walk(v, c, &n.Body)
	case *ast.ExprDo:
		walk(v, c, &n.Bound)
		walk(v, c, &n.Body)
	case *ast.ExprBlock:
		walkList[ast.Expr](v, c, n.Exprs)
	case *ast.ExprError:
		if n.Payload != nil {
			walk(v, c, &n.Payload)
		}

	default:
		panic(fmt.Sprintf("astutil: unexpected node type %T", n))
	}

	v.after(c)
}
