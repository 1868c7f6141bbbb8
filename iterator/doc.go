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

// Package iterator holds the one piece every iterator in this module shares: the Done sentinel.
//
// There is no iterator interface to implement. Each iterable type exposes its own concretely-typed
// iterator with a single Next method, and Next reports end-of-iteration by returning
// iterator.Done as its error:
//
//	iter := tasks.Begin()
//	for {
//		task, err := iter.Next()
//		if err == iterator.Done {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		process(task)
//	}
//
// The convention follows the iterator guidelines of the Google Cloud client libraries for Go:
// concrete iterators keep call sites type-safe without a reflection-based abstraction, and a
// shared sentinel keeps the termination check uniform across them.
package iterator
