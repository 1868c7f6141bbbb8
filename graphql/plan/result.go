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

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/jsonwriter"
)

// ResultKind tags the value held by a ResultNode.
type ResultKind uint8

// Enumeration of ResultKind.
const (
	// ResultKindNil is a null value. Freshly allocated slots start here; a slot that is never
	// filled (its resolver errored, or an ancestor failed) serializes as null.
	ResultKindNil ResultKind = iota
	// ResultKindLeaf holds a serialized scalar or enum value in Value.
	ResultKindLeaf
	// ResultKindObject holds a *ObjectResult in Value.
	ResultKindObject
	// ResultKindList holds a []ResultNode in Value.
	ResultKindList
)

// ResultNode is one position in the response tree under construction. The tree mirrors the
// response shape exactly: object slots in selection order, list elements in iteration order.
// Parent links exist so that a non-null violation recorded at a node can later be walked upward
// to the nearest nullable ancestor by the trimmer.
type ResultNode struct {
	Parent *ResultNode
	Kind   ResultKind
	Value  interface{}

	// nonNull marks positions whose declared type is Non-Null; a null here must bubble.
	nonNull bool
}

// IsNil returns true if the node currently holds null.
func (node *ResultNode) IsNil() bool {
	return node.Kind == ResultKindNil
}

// IsNonNull returns true if the node sits at a Non-Null position.
func (node *ResultNode) IsNonNull() bool {
	return node.nonNull
}

// setNil resets the node to hold null, discarding any value built beneath it.
func (node *ResultNode) setNil() {
	node.Kind = ResultKindNil
	node.Value = nil
}

// ObjectResult is the value of a ResultKindObject node: response keys in selection order paired
// with the nodes holding each field's value. Keys are materialized per run (rather than shared
// from the plan) because @skip/@include can vary the included set between runs.
type ObjectResult struct {
	Keys   []string
	Fields []ResultNode
}

// ListValue returns the node's value as a list of element nodes.
func (node *ResultNode) ListValue() []ResultNode {
	return node.Value.([]ResultNode)
}

// ObjectValue returns the node's value as an ObjectResult.
func (node *ResultNode) ObjectValue() *ObjectResult {
	return node.Value.(*ObjectResult)
}

// Result is what one run of a CompiledQuery produces: the response data tree and the errors
// collected along the way. Data is nil (the pointer, not a null value) only when variable
// coercion failed before execution started, in which case the serialized response carries no
// "data" member at all.
type Result struct {
	Data   *ResultNode
	Errors graphql.Errors
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (result *Result) MarshalJSONTo(stream *jsonwriter.Stream) error {
	stream.WriteObjectStart()

	// Specification suggests placing "errors" first in the response to make it clear.
	if result.Errors.HaveOccurred() {
		encoded, err := jsoniter.Marshal(result.Errors.Errors)
		if err != nil {
			return err
		}
		stream.WriteObjectField("errors")
		stream.WriteRawString(string(encoded))
		if result.Data != nil {
			stream.WriteMore()
		}
	}

	if result.Data != nil {
		stream.WriteObjectField("data")
		stream.WriteValue(resultNodeMarshaler{result.Data})
	}

	stream.WriteObjectEnd()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (result *Result) MarshalJSON() ([]byte, error) {
	return jsonwriter.Marshal(result)
}

// resultNodeMarshaler implements jsonwriter.ValueMarshaler to encode a ResultNode tree to JSON
// without recursion: the stack holds nodes still to write interleaved with punctuation tasks.
type resultNodeMarshaler struct {
	node *ResultNode
}

type fieldKeyTask string

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (marshaler resultNodeMarshaler) MarshalJSONTo(stream *jsonwriter.Stream) error {
	var (
		objectEndTask interface{} = &struct{ int }{1}
		arrayEndTask  interface{} = &struct{ int }{2}
		moreTask      interface{} = &struct{ int }{3}
		stack                     = []interface{}{marshaler.node}
	)

	for len(stack) > 0 {
		var task interface{}
		task, stack = stack[len(stack)-1], stack[:len(stack)-1]

		if task == objectEndTask {
			stream.WriteObjectEnd()
			continue
		} else if task == arrayEndTask {
			stream.WriteArrayEnd()
			continue
		} else if task == moreTask {
			stream.WriteMore()
			continue
		} else if key, ok := task.(fieldKeyTask); ok {
			stream.WriteObjectField(string(key))
			continue
		}

		result := task.(*ResultNode)
		switch result.Kind {
		case ResultKindNil:
			stream.WriteNil()

		case ResultKindLeaf:
			stream.WriteInterface(result.Value)

		case ResultKindList:
			elements := result.ListValue()
			if len(elements) == 0 {
				stream.WriteEmptyArray()
				break
			}
			stream.WriteArrayStart()
			stack = append(stack, arrayEndTask)
			for i := len(elements) - 1; i >= 0; i-- {
				stack = append(stack, &elements[i], moreTask)
			}
			// Pop the moreTask at the top. Don't write "," before the first element.
			stack = stack[:len(stack)-1]

		case ResultKindObject:
			object := result.ObjectValue()
			if len(object.Fields) == 0 {
				stream.WriteEmptyObject()
				break
			}
			if len(object.Keys) != len(object.Fields) {
				return graphql.NewError("malformed object result value: mismatched length of " +
					"field values with response keys")
			}
			stream.WriteObjectStart()
			stack = append(stack, objectEndTask)
			for i := len(object.Keys) - 1; i >= 0; i-- {
				stack = append(stack, &object.Fields[i], fieldKeyTask(object.Keys[i]), moreTask)
			}
			// Pop the moreTask at the top. Don't write "," before the first field.
			stack = stack[:len(stack)-1]
		}
	}

	return nil
}

// MarshalJSON implements json.Marshaler for a ResultNode subtree.
func (node *ResultNode) MarshalJSON() ([]byte, error) {
	return jsonwriter.Marshal(resultNodeMarshaler{node})
}
