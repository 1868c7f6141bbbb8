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

// join aggregates its inputs; settled results park in results, pending slots hold the sentinel.
type join struct {
	inputs  []Future
	results []interface{}
}

// Poll implements Future. It polls every still-pending input with the caller's waker; the first
// input error fails the whole join immediately.
func (f *join) Poll(waker Waker) (PollResult, error) {
	ready := true

	for i, input := range f.inputs {
		if f.results[i] != PollResultPending {
			continue
		}

		result, err := input.Poll(waker)
		if err != nil {
			return nil, err
		}
		if result == PollResultPending {
			ready = false
			continue
		}
		f.results[i] = interface{}(result)
	}

	if !ready {
		return PollResultPending, nil
	}
	return f.results, nil
}

// Join combines a collection of Futures into one that resolves, once every input has resolved,
// to an []interface{} of their values in input order. Any input's error fails the join; callers
// that need per-input error isolation wrap each input to catch its error first.
func Join(f ...Future) Future {
	results := make([]interface{}, len(f))
	for i := range results {
		results[i] = PollResultPending
	}
	return &join{inputs: f, results: results}
}
