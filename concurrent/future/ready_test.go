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

var _ = Describe("Ready and Err: pre-resolved futures", func() {
	It("yields the wrapped value on the first poll", func() {
		Expect(future.Ready("done").Poll(future.NopWaker)).Should(Equal("done"))
	})

	It("yields the wrapped error on the first poll", func() {
		boom := errors.New("boom")
		_, err := future.Err(boom).Poll(future.NopWaker)
		Expect(err).Should(MatchError(boom))
	})

	It("normalizes a nil error into an empty one", func() {
		_, err := future.Err(nil).Poll(future.NopWaker)
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(BeEmpty())
	})
})
