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

// Package future provides a poll-based one-shot asynchronous value, modeled after Rust's
// std::future rather than a completion-callback promise.
//
// A Future is inert on its own: whoever wants its value polls it. A future that isn't ready
// stashes the Waker it was polled with and arranges for Wake to fire when progress is possible,
// and only then is it polled again. The inversion is what makes a single-goroutine executor
// cheap — wakeups name exactly which task to revisit, so nothing scans the set of pending
// futures the way a select-over-everything loop would.
package future

// A Future is a value that may still be computing.
type Future interface {
	// Poll attempts to resolve the future. It returns one of:
	//
	//	(_, err)                  the future failed with err.
	//	(PollResultPending, nil)  not ready yet; waker fires when polling again is worthwhile.
	//	(value, nil)              the future finished with value.
	//
	// A pending future must retain only the most recent Waker it was polled with; earlier ones
	// are superseded. Poll must never block — work that takes a while belongs on another
	// goroutine (or an Executor), with the future as the rendezvous point.
	//
	// Polling a future again after it has finished is outside the contract.
	Poll(waker Waker) (PollResult, error)
}
