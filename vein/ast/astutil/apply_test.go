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

package astutil

import (
	"testing"

	"github.com/veinlang/vein/vein/ast"
)

func ident(name ast.Id) *ast.ExprIdent { return &ast.ExprIdent{Name: name} }

func TestApplyVisitsEveryNode(t *testing.T) {
	tree := &ast.ExprTuple{Elems: []ast.Expr{ident(1), ident(2)}}

	var visited []ast.Node
	Apply(tree, func(c Cursor) bool {
		visited = append(visited, c.Node())
		return true
	}, nil)

	if len(visited) != 3 {
		t.Fatalf("Apply visited %d nodes, want 3 (tuple + 2 idents): %v", len(visited), visited)
	}
	if visited[0] != ast.Node(tree) {
		t.Fatalf("first visited node = %v, want the root tuple", visited[0])
	}
}

func TestApplyPreFalseSkipsChildren(t *testing.T) {
	tree := &ast.ExprTuple{Elems: []ast.Expr{ident(1), ident(2)}}

	var visited int
	Apply(tree, func(c Cursor) bool {
		visited++
		_, isTuple := c.Node().(*ast.ExprTuple)
		return !isTuple // skip descending into the tuple's children
	}, nil)

	if visited != 1 {
		t.Fatalf("Apply visited %d nodes after pre returned false, want 1", visited)
	}
}

func TestApplyReplaceRewritesTree(t *testing.T) {
	tree := &ast.ExprTuple{Elems: []ast.Expr{ident(1), ident(2)}}

	got := Apply(tree, nil, func(c Cursor) bool {
		if id, ok := c.Node().(*ast.ExprIdent); ok && id.Name == 1 {
			c.Replace(ident(99))
		}
		return true
	})

	tuple := got.(*ast.ExprTuple)
	if tuple.Elems[0].(*ast.ExprIdent).Name != 99 {
		t.Fatalf("Elems[0].Name = %d, want 99 after Replace", tuple.Elems[0].(*ast.ExprIdent).Name)
	}
	if tuple.Elems[1].(*ast.ExprIdent).Name != 2 {
		t.Fatal("Replace on one element mutated its sibling")
	}
}

func TestApplyWalksNestedRecord(t *testing.T) {
	rec := &ast.ExprRecord{
		Exprs: []ast.RecordField{{Name: 1, Value: ident(10)}},
		Base:  ident(20),
	}

	var idents []ast.Id
	Apply(rec, func(c Cursor) bool {
		if id, ok := c.Node().(*ast.ExprIdent); ok {
			idents = append(idents, id.Name)
		}
		return true
	}, nil)

	if len(idents) != 2 {
		t.Fatalf("visited %d idents, want 2: %v", len(idents), idents)
	}
}

func TestApplyPanicsOnUnknownNodeType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Apply over an unrecognized node type did not panic")
		}
	}()
	Apply(&unknownExpr{}, func(Cursor) bool { return true }, nil)
}

// unknownExpr satisfies ast.Expr but isn't one of walkCursor's known
// cases, exercising the default-case panic. It must be a pointer type
// so the reflect-based nil check in walk sees a nilable kind.
type unknownExpr struct{ ast.Span }

func (*unknownExpr) isExpr() {}
