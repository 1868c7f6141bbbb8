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

// trim implements "Errors and Non-Nullability" as a post-pass: once all deferred work has
// landed, each recorded non-null violation walks its parent links upward, nulling every
// Non-Null ancestor until a nullable one absorbs the failure (the root data node is nullable, so
// a chain of Non-Null ancestors all the way up nulls the whole response). Data built beneath a
// nulled ancestor is discarded with it. Each violation contributes exactly one reported error;
// nothing is deduplicated.
//
// Running this after execution, rather than nulling ancestors eagerly as errors land, keeps the
// synchronous pass free of ordering concerns: sibling subtrees keep executing and their errors
// keep their own positions, exactly as if the failure had not happened yet.
func (f *runFrame) trim() {
	for i := range f.nullErrors {
		violation := &f.nullErrors[i]
		f.errors.Append(violation.err)

		node := violation.node
		node.setNil()
		for node.IsNonNull() && node.Parent != nil {
			node = node.Parent
			node.setNil()
		}
	}
}
