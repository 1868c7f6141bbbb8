/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package plan

import "github.com/nabeelbukhari/graphql-jit/graphql"

// pathSegmentKind distinguishes the three things a compiled response-path segment can stand for.
type pathSegmentKind uint8

const (
	// pathLiteral is a fixed field/response key known at compile time.
	pathLiteral pathSegmentKind = iota
	// pathVariable is a list index, known only once the plan is run; the actual value lives in the
	// run's indices slice, keyed by depth.
	pathVariable
	// pathMeta marks a segment inserted purely to thread compile-time bookkeeping (none currently
	// needs a meta segment of its own, but the kind is kept so a future one doesn't need a format
	// change to path resolution). Meta segments never appear in a resolved graphql.ResponsePath.
	pathMeta
)

// pathSegment is one link in the persistent, compile-time chain of response-path segments leading
// to a plan node. The chain is built once during compilation and shared: every node below an
// object field's slot points back through the same parent chain rather than copying it, so
// compiling a query with a path of depth N costs O(N) allocations total, not O(N) per leaf.
type pathSegment struct {
	parent *pathSegment
	kind   pathSegmentKind
	key    string
	depth  int
}

// rootPath is the empty path shared by every top-level field.
var rootPath *pathSegment

// literalPath appends a fixed field name to parent.
func literalPath(parent *pathSegment, key string) *pathSegment {
	return &pathSegment{parent: parent, kind: pathLiteral, key: key}
}

// variablePath appends a list-index placeholder to parent. depth identifies which slot of the
// run's indices array holds the index at execution time; it equals the list nesting depth at this
// point in the plan, so sibling fields under the same list element share one allocated segment.
func variablePath(parent *pathSegment, depth int) *pathSegment {
	return &pathSegment{parent: parent, kind: pathVariable, depth: depth}
}

// resolve turns the compile-time chain into a graphql.ResponsePath, substituting each pathVariable
// segment with the list index active for it in the current run (indices[seg.depth]). This is only
// ever called when an error or a ResolveInfo actually needs a concrete path, since walking the
// chain is O(depth) — cheap, but not free enough to do speculatively for every field.
func (seg *pathSegment) resolve(indices []int) graphql.ResponsePath {
	if seg == nil {
		return graphql.ResponsePath{}
	}

	var chain []*pathSegment
	for s := seg; s != nil; s = s.parent {
		if s.kind != pathMeta {
			chain = append(chain, s)
		}
	}

	var path graphql.ResponsePath
	for i := len(chain) - 1; i >= 0; i-- {
		s := chain[i]
		switch s.kind {
		case pathLiteral:
			path.AppendFieldName(s.key)
		case pathVariable:
			path.AppendIndex(indices[s.depth])
		}
	}
	return path
}
