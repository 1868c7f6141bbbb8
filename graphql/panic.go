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

package graphql

import "fmt"

// PanicHandler converts a recovered panic value, observed while calling into a FieldResolver or a
// TypeResolver, into an error to report at the panicking field's position. Resolvers are arbitrary
// user code; a panic in one must not take down the whole response.
type PanicHandler func(recovered interface{}) error

// DefaultPanicHandler wraps the recovered value in an Error with ErrKindInternal.
func DefaultPanicHandler(recovered interface{}) error {
	if err, ok := recovered.(error); ok {
		return NewError("panic while resolving field", err, ErrKindInternal)
	}
	return NewError(fmt.Sprintf("panic while resolving field: %v", recovered), ErrKindInternal)
}
