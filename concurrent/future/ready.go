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

package future

import "errors"

// readyFuture resolves to its value on the first poll.
type readyFuture struct {
	value interface{}
}

// Poll implements Future.
func (f readyFuture) Poll(waker Waker) (PollResult, error) {
	return f.value, nil
}

// Ready wraps an already-computed value as a Future. It adapts synchronously-produced values to
// code that expects a Future, such as a resolver which sometimes has the result on hand and
// sometimes doesn't.
func Ready(value interface{}) Future {
	return readyFuture{value: value}
}

// errFuture fails with its error on the first poll.
type errFuture struct {
	err error
}

// Poll implements Future.
func (f errFuture) Poll(waker Waker) (PollResult, error) {
	return nil, f.err
}

// Err wraps an error as an already-failed Future. A nil err is replaced with an empty error so
// the result always counts as a failure.
func Err(err error) Future {
	if err == nil {
		err = errors.New("")
	}
	return errFuture{err: err}
}
