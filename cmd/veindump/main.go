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

// Command veindump lexes and parses a single source file and prints
// its AST and any diagnostics, for debugging the grammar interactively
// the way cue's own debug subcommands dump an evaluated value.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/veinlang/vein/vein/arena"
	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/intern"
	"github.com/veinlang/vein/vein/lex"
	"github.com/veinlang/vein/vein/parser"
)

var traceFlag bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "veindump [file]",
		Short: "veindump parses a file and prints its AST and diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	cmd.Flags().BoolVar(&traceFlag, "trace", false, "enable parser production tracing")
	return cmd
}

// dumpYAML parses src and writes its AST and diagnostics to w as YAML,
// in the shape a downstream tool (or a human comparing golden files)
// can consume directly.
func dumpYAML(w io.Writer, src string, trace bool) error {
	l := lex.New(src)
	env := intern.New()
	a := arena.New()
	kinds := ast.NewSimpleKindCache()

	var opts []parser.Option
	if trace {
		opts = append(opts, parser.Trace)
	}
	p := parser.New(l, env, a, kinds, opts...)
	expr := p.TopExpr()

	out := struct {
		AST   ast.Expr `yaml:"ast"`
		Diags []string `yaml:"diagnostics,omitempty"`
	}{AST: expr}

	for _, e := range p.Errors() {
		out.Diags = append(out.Diags, e.Error())
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(out)
}

func runDump(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("veindump: %w", err)
	}
	return dumpYAML(cmd.OutOrStdout(), string(data), traceFlag)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// veindumpMain is the entry point testscript re-executes the test
// binary under when a script says "exec veindump ...", in place of a
// separately built binary.
func veindumpMain() int {
	if err := newRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}
