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

// A Waker is the handle a pending Future holds to tell its owner that polling again is
// worthwhile. An executor typically implements Wake by putting the future's task back on its
// ready queue.
//
// Wake may be called from any goroutine, including concurrently with Poll.
type Waker interface {
	Wake() error
}

// The WakerFunc type is an adapter to allow the use of ordinary functions as Waker.
type WakerFunc func() error

// Wake implements Waker by calling f.
func (f WakerFunc) Wake() error {
	return f()
}

// nopWaker backs NopWaker.
type nopWaker int

// Wake implements Waker. It does nothing.
func (nopWaker) Wake() error {
	return nil
}

// NopWaker is a Waker that does nothing. It serves as a non-nil initial value for waker slots
// that haven't been claimed by a real poller yet.
const NopWaker nopWaker = 0
