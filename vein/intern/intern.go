// Copyright 2020 CUE Authors
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

// Package intern implements the identifier environment: a StringIndexer
// that hands out a stable Id for every distinct spelling it sees.
// Interned identifiers outlive the parse that created them; the
// environment may be reused across parses as long as callers serialize
// their own appends, matching the single-writer discipline every other
// parser-owned structure uses.
package intern

import (
	"golang.org/x/text/unicode/norm"
)

// Id is an opaque interned symbol. The zero Id is never issued by
// FromStr; it is reserved for "no identifier".
type Id int32

// Environment interns identifier and label text. Two equal strings
// (after normalization) always map to the same Id.
type Environment struct {
	index map[string]Id
	names []string
}

// New returns an empty environment.
func New() *Environment {
	return &Environment{index: make(map[string]Id, 64)}
}

// FromStr interns s, normalizing it to NFC first so that visually
// identical identifiers typed with different Unicode decompositions
// always collide to the same Id.
func (e *Environment) FromStr(s string) Id {
	s = norm.NFC.String(s)
	if id, ok := e.index[s]; ok {
		return id
	}
	id := Id(len(e.names) + 1)
	e.names = append(e.names, s)
	e.index[s] = id
	return id
}

// String returns the spelling originally interned for id. It returns
// "" if id was not produced by this environment.
func (e *Environment) String(id Id) string {
	if id <= 0 || int(id) > len(e.names) {
		return ""
	}
	return e.names[id-1]
}

// EmptyId is an Id guaranteed to stringify to "", usable by any
// environment as the sentinel for a name that does not refer to user
// source. Because environments never intern the empty string under a
// different id (FromStr("") always returns the first slot an
// environment allocates for it), callers may compare against it safely
// within a single environment.
func (e *Environment) EmptyId() Id {
	return e.FromStr("")
}
