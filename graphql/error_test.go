/**
 * Copyright (c) 2018, The Artemis Authors.
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

package graphql_test

import (
	"encoding/json"
	"errors"

	"github.com/nabeelbukhari/graphql-jit/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func newError(message string, args ...interface{}) *graphql.Error {
	e, ok := graphql.NewError(message, args...).(*graphql.Error)
	Expect(ok).Should(BeTrue())
	return e
}

func expectSerializationResult(e error, expected string) {
	s, err := json.Marshal(e)
	Expect(err).ShouldNot(HaveOccurred())
	Expect(s).Should(MatchJSON(expected))
}

var _ = Describe("Error", func() {
	It("serializes a bare message", func() {
		expectSerializationResult(
			newError("msg"),
			`{"message":"msg"}`)
	})

	It("serializes locations", func() {
		expectSerializationResult(
			newError("msg", graphql.ErrorLocation{Line: 2, Column: 4}),
			`{"message":"msg","locations":[{"line":2,"column":4}]}`)
	})

	It("serializes a path of field names and list indices", func() {
		var path graphql.ResponsePath
		path.AppendFieldName("xs")
		path.AppendIndex(1)
		path.AppendFieldName("v")

		expectSerializationResult(
			newError("msg", path),
			`{"message":"msg","path":["xs",1,"v"]}`)
		Expect(path.String()).Should(Equal("xs[1].v"))
	})

	It("serializes extensions", func() {
		expectSerializationResult(
			newError("msg", graphql.ErrorExtensions{"code": "OOPS"}),
			`{"message":"msg","extensions":{"code":"OOPS"}}`)
	})

	It("propagates path and locations from a wrapped Error", func() {
		var path graphql.ResponsePath
		path.AppendFieldName("a")

		inner := newError("inner",
			path, graphql.ErrorLocation{Line: 1, Column: 3}, graphql.ErrKindExecution)
		outer := newError("outer", inner)

		Expect(outer.Path.String()).Should(Equal("a"))
		Expect(outer.Locations).Should(Equal([]graphql.ErrorLocation{{Line: 1, Column: 3}}))
		Expect(outer.Kind).Should(Equal(graphql.ErrKindExecution))
	})

	It("wraps ordinary errors", func() {
		cause := errors.New("root cause")
		e, ok := graphql.WrapError(cause, "wrapped").(*graphql.Error)
		Expect(ok).Should(BeTrue())
		Expect(e.Err).Should(Equal(cause))
		Expect(e.Error()).Should(ContainSubstring("wrapped"))
		Expect(e.Error()).Should(ContainSubstring("root cause"))
	})
})

var _ = Describe("Errors", func() {
	It("treats an empty list as no error", func() {
		errs := graphql.NoErrors()
		Expect(errs.HaveOccurred()).Should(BeFalse())
	})

	It("accumulates with Emplace and Append", func() {
		var errs graphql.Errors
		errs.Emplace("first")
		errs.Append(newError("second"))
		Expect(errs.HaveOccurred()).Should(BeTrue())
		Expect(errs.Errors).Should(HaveLen(2))
	})

	It("concatenates with AppendErrors", func() {
		a := graphql.ErrorsOf("one")
		b := graphql.ErrorsOf("two")
		a.AppendErrors(b)
		Expect(a.Errors).Should(HaveLen(2))
	})
})
