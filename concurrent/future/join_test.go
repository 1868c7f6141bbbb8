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

package future_test

import (
	"errors"

	"github.com/nabeelbukhari/graphql-jit/concurrent/future"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// manualFuture stays pending until settle is called, then resolves on its next poll.
type manualFuture struct {
	value   interface{}
	err     error
	waker   future.Waker
	settled bool
}

func (f *manualFuture) Poll(waker future.Waker) (future.PollResult, error) {
	if !f.settled {
		f.waker = waker
		return future.PollResultPending, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.value, nil
}

func (f *manualFuture) settle(value interface{}, err error) {
	f.settled = true
	f.value = value
	f.err = err
	if f.waker != nil {
		Expect(f.waker.Wake()).Should(Succeed())
	}
}

var _ = Describe("Join: aggregate a set of futures", func() {
	It("resolves an empty join to an empty result", func() {
		Expect(future.BlockOn(future.Join())).Should(BeEmpty())
	})

	It("collects input values in input order", func() {
		f := future.Join(future.Ready("a"), future.Ready("b"), future.Ready("c"))
		Expect(future.BlockOn(f)).Should(Equal([]interface{}{"a", "b", "c"}))
	})

	It("fails as soon as an input fails", func() {
		boom := errors.New("boom")
		f := future.Join(future.Ready(1), future.Err(boom))
		_, err := future.BlockOn(f)
		Expect(err).Should(MatchError(boom))
	})

	It("stays pending until the last input settles", func() {
		first := &manualFuture{}
		second := &manualFuture{}
		f := future.Join(first, second)

		Expect(f.Poll(future.NopWaker)).Should(Equal(future.PollResultPending))

		first.settle(1, nil)
		Expect(f.Poll(future.NopWaker)).Should(Equal(future.PollResultPending))

		second.settle(2, nil)
		Expect(f.Poll(future.NopWaker)).Should(Equal([]interface{}{1, 2}))
	})

	It("remembers inputs that settled on earlier polls", func() {
		first := &manualFuture{}
		second := &manualFuture{}
		f := future.Join(first, second)

		first.settle("kept", nil)
		Expect(f.Poll(future.NopWaker)).Should(Equal(future.PollResultPending))

		// Flip first's outcome after it has been recorded; the join must not re-poll it.
		first.value = "re-polled"
		second.settle("late", nil)
		Expect(f.Poll(future.NopWaker)).Should(Equal([]interface{}{"kept", "late"}))
	})
})
