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

package graphql

import (
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"

	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// Op names the operation an error came from, usually package and method ("plan.Compile").
type Op string

// ErrKind classifies an Error.
type ErrKind uint8

// Enumeration of ErrKind.
const (
	ErrKindOther      ErrKind = iota // Unclassified; omitted when printing.
	ErrKindCoercion                  // Input or result value failed to coerce to its GraphQL type.
	ErrKindSyntax                    // Syntax error in the GraphQL source.
	ErrKindValidation                // Schema or document failed validation.
	ErrKindExecution                 // Error raised while executing a query.
	ErrKindInternal                  // Bug in this library or its embedder, not in the query.
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindCoercion:
		return "coercion error"
	case ErrKindSyntax:
		return "syntax error"
	case ErrKindValidation:
		return "validation error"
	case ErrKindExecution:
		return "execution error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ErrorExtensions is the "extensions" member of a serialized error: a place for
// vendor-specific data such as machine-readable error codes.
//
// Reference: https://github.com/facebook/graphql/pull/407
type ErrorExtensions map[string]interface{}

// ErrorLocation points at the start of the syntax element an error is about. Line and column are
// 1-based.
type ErrorLocation struct {
	Line   uint
	Column uint
}

// ErrorWithLocations lets a wrapped error contribute source locations: when NewError isn't given
// any explicitly, it asks the underlying error through this interface.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// ErrorWithASTNodes implements ErrorWithLocations over a list of AST nodes; embed it in an error
// type whose location is naturally "where these nodes are".
type ErrorWithASTNodes struct {
	Nodes []ast.Node
}

var _ ErrorWithLocations = ErrorWithASTNodes{}

// ErrorLocationOfASTNode reads an AST node's source position into an ErrorLocation.
func ErrorLocationOfASTNode(node ast.Node) ErrorLocation {
	loc := node.GetLocation()
	return ErrorLocation{
		Line:   loc.Line,
		Column: loc.Column,
	}
}

// Locations implements ErrorWithLocations.
func (err ErrorWithASTNodes) Locations() []ErrorLocation {
	if len(err.Nodes) == 0 {
		return nil
	}
	locations := make([]ErrorLocation, len(err.Nodes))
	for i, node := range err.Nodes {
		locations[i] = ErrorLocationOfASTNode(node)
	}
	return locations
}

// ResponsePath locates a field in the response: a sequence of keys, each either a field name
// (string) or a list index (int).
type ResponsePath struct {
	keys []interface{}
}

// Empty returns true if the path contains no keys.
func (path ResponsePath) Empty() bool {
	return len(path.keys) == 0
}

// AppendFieldName extends the path with a field name.
func (path *ResponsePath) AppendFieldName(name string) {
	path.keys = append(path.keys, name)
}

// AppendIndex extends the path with a list index.
func (path *ResponsePath) AppendIndex(index int) {
	path.keys = append(path.keys, index)
}

// Clone returns an independent copy of the path.
func (path ResponsePath) Clone() ResponsePath {
	if len(path.keys) == 0 {
		return ResponsePath{}
	}

	keys := make([]interface{}, len(path.keys))
	copy(keys, path.keys)
	return ResponsePath{keys}
}

// String renders the path in a compact human-readable form: field names joined with dots, list
// indices in brackets ("friends[1].name").
func (path ResponsePath) String() string {
	var b strings.Builder
	for _, key := range path.keys {
		switch key := key.(type) {
		case string:
			if b.Len() > 0 {
				b.WriteRune('.')
			}
			b.WriteString(key)

		case int:
			b.WriteRune('[')
			b.WriteString(strconv.FormatInt(int64(key), 10))
			b.WriteRune(']')
		}
	}
	return b.String()
}

// responsePathMarshaller implements jsoniter.ValEncoder, encoding a path as the specification's
// mixed array of strings and integers.
type responsePathMarshaller struct{}

var _ jsoniter.ValEncoder = responsePathMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (responsePathMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return len((*ResponsePath)(ptr).keys) == 0
}

// Encode implements jsoniter.ValEncoder.
func (responsePathMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	path := (*ResponsePath)(ptr)
	numPathKeys := len(path.keys)
	stream.WriteArrayStart()
	for i, key := range path.keys {
		switch key := key.(type) {
		case string:
			stream.WriteString(key)
		case int:
			stream.WriteInt(key)
		default:
			stream.Error = fmt.Errorf(`unsupported type "%T" of key in response path`, key)
			return
		}

		if i != numPathKeys-1 {
			stream.WriteMore()
		}
	}
	stream.WriteArrayEnd()
}

// MarshalJSON implements json.Marshaler.
func (path *ResponsePath) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(path)
}

// ErrorWithPath lets a wrapped error contribute a response path, the way ErrorWithLocations
// contributes locations.
type ErrorWithPath interface {
	Path() ResponsePath
}

// ErrorWithExtensions lets a wrapped error contribute extensions data.
type ErrorWithExtensions interface {
	Extensions() ErrorExtensions
}

// An Error is the structured error this module reports from parsing, validation and execution.
// It carries the members the specification's response format defines (message, locations, path,
// extensions) plus Op and Kind tags for programmers, and may wrap an underlying error.
//
// Errors wrap upward: intermediate layers either pass an Error through or wrap it with more
// context, and NewError pulls locations/path/extensions/kind up from wrapped Errors so context
// attached deep in execution survives to the response. The design follows upspin.io/errors.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Errors
type Error struct {
	// Message describes the problem. Required by the specification.
	Message string

	// Locations are the source positions this error is about. Validation errors may carry
	// several (e.g. two conflicting definitions); execution errors carry the field that failed.
	Locations []ErrorLocation

	// Path locates the response field that failed; set for execution errors.
	Path ResponsePath

	// Extensions carries vendor-specific data into the error response.
	Extensions ErrorExtensions

	// Err is the underlying error, if this one wraps another.
	Err error

	// Op names the operation that produced the error.
	Op Op

	// Kind classifies the error.
	Kind ErrKind
}

var _ error = (*Error)(nil)

// NewError builds an Error from a message plus any of: ErrorLocation / []ErrorLocation,
// ResponsePath, ErrorExtensions, an underlying error, Op, ErrKind — in any order. Context not
// given explicitly is pulled from the underlying error when it can provide it.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locations = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locations = arg

		case ResponsePath:
			e.Path = arg

		case ErrorExtensions:
			e.Extensions = arg

		case error:
			e.Err = arg

		case Op:
			e.Op = arg

		case ErrKind:
			e.Kind = arg

		default:
			_, file, line, _ := runtime.Caller(1)
			log.Printf("NewError: bad call from %s:%d: %v", file, line, args)
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	// Pull context the caller didn't supply up from the wrapped error.
	prev := e.Err
	if prev != nil {
		if len(e.Locations) == 0 {
			switch errWithLocations := prev.(type) {
			case ErrorWithLocations:
				e.Locations = errWithLocations.Locations()
			case *Error:
				if len(errWithLocations.Locations) > 0 {
					e.Locations = make([]ErrorLocation, len(errWithLocations.Locations))
					copy(e.Locations, errWithLocations.Locations)
				}
			}
		}

		if e.Path.Empty() {
			switch errWithPath := prev.(type) {
			case ErrorWithPath:
				e.Path = errWithPath.Path()
			case *Error:
				if !errWithPath.Path.Empty() {
					e.Path = errWithPath.Path.Clone()
				}
			}
		}

		if e.Extensions == nil {
			switch errWithExtensions := prev.(type) {
			case ErrorWithExtensions:
				e.Extensions = errWithExtensions.Extensions()
			case *Error:
				e.Extensions = errWithExtensions.Extensions
			}
		}

		if e.Kind == ErrKindOther {
			if prev, ok := prev.(*Error); ok {
				e.Kind = prev.Kind
			}
		}
	}

	return e
}

// WrapError builds an Error around an underlying error with a message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is WrapError with a format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

// printError renders e into b. nextErr is the Error one level further out in the chain (the one
// already printed); context it already showed is suppressed here so a wrapped chain doesn't
// repeat its kind, locations or path at every level.
func (e *Error) printError(b *strings.Builder, nextErr *Error) {
	initialLen := b.Len()

	// pad writes str only once something else has been written at this level.
	pad := func(str string) {
		if b.Len() == initialLen {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if e.Locations != nil {
		if nextErr == nil || !reflect.DeepEqual(nextErr.Locations, e.Locations) {
			if b.Len() == initialLen {
				b.WriteString("At ")
			} else {
				b.WriteString(" at ")
			}
			b.WriteString(fmt.Sprintf("%+v", e.Locations))
		}
	}

	if !e.Path.Empty() {
		if nextErr == nil || !reflect.DeepEqual(nextErr.Path, e.Path) {
			if b.Len() == initialLen {
				b.WriteString("For ")
			} else {
				b.WriteString(" for ")
			}
			b.WriteString("response field in the path ")
			b.WriteString(e.Path.String())
		}
	}

	if e.Kind != ErrKindOther {
		if nextErr == nil || nextErr.Kind != e.Kind {
			pad(": ")
			b.WriteString(e.Kind.String())
		}
	}

	if len(e.Extensions) > 0 {
		if nextErr == nil || !reflect.DeepEqual(nextErr.Extensions, e.Extensions) {
			pad(" (additional info: ")
			b.WriteString(fmt.Sprintf("%v)", e.Extensions))
		}
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			// Indent the next Error of the chain on its own line.
			pad(":\n  ")
			prev.printError(b, e)
		} else {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

// errorMarshaller implements jsoniter.ValEncoder, writing the specification's error shape:
// message, then locations/path/extensions when present. Op, Kind and the wrapped error are
// programmer-facing and stay out of responses.
type errorMarshaller struct{}

var _ jsoniter.ValEncoder = errorMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder.
func (errorMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	numLocations := len(err.Locations)
	if numLocations > 0 {
		stream.WriteMore()
		stream.WriteObjectField("locations")
		stream.WriteArrayStart()
		for i := range err.Locations {
			location := &err.Locations[i]
			stream.WriteObjectStart()
			stream.WriteObjectField("line")
			stream.WriteUint(location.Line)
			stream.WriteMore()
			stream.WriteObjectField("column")
			stream.WriteUint(location.Column)
			stream.WriteObjectEnd()
			if i != numLocations-1 {
				stream.WriteMore()
			}
		}
		stream.WriteArrayEnd()
	}

	if !err.Path.Empty() {
		stream.WriteMore()
		stream.WriteObjectField("path")
		stream.WriteVal(&err.Path)
	}

	numExtensions := len(err.Extensions)
	if numExtensions > 0 {
		stream.WriteMore()
		stream.WriteObjectField("extensions")
		stream.WriteObjectStart()
		for k, v := range err.Extensions {
			stream.WriteObjectField(k)
			stream.WriteVal(v)
			numExtensions--
			if numExtensions > 0 {
				stream.WriteMore()
			}
		}
		stream.WriteObjectEnd()
	}

	stream.WriteObjectEnd()
}

// Errors is a list of Error values. It is a struct rather than a bare slice so call sites check
// HaveOccurred() instead of comparing against nil — an allocated-but-empty list means no error
// too.
type Errors struct {
	Errors []*Error
}

// ErrorsOf builds an Errors value from either a list of *Error values, or NewError-style
// arguments (a message string followed by error context), or both. Handy in returns:
//
//	return graphql.ErrorsOf("something went wrong")
func ErrorsOf(args ...interface{}) Errors {
	var errs Errors
	for i, arg := range args {
		switch arg := arg.(type) {
		case error:
			errs.Append(arg)

		case string:
			errs.Emplace(arg, args[(i+1):]...)
			return errs

		default:
			panic("Errors.Emplace: bad call")
		}
	}
	return errs
}

// NoErrors is the empty Errors.
func NoErrors() Errors {
	return Errors{}
}

// Emplace constructs an Error from NewError-style arguments and appends it in place. It panics
// on argument types NewError doesn't accept.
func (errs *Errors) Emplace(message string, args ...interface{}) {
	errs.Append(NewError(message, args...))
}

// Append appends errors in place. Every argument must be a *graphql.Error underneath or Append
// panics.
func (errs *Errors) Append(e ...error) {
	for _, err := range e {
		errs.Errors = append(errs.Errors, err.(*Error))
	}
}

// AppendErrors concatenates other Errors lists onto errs in place.
func (errs *Errors) AppendErrors(e ...Errors) {
	size := len(errs.Errors)
	for _, err := range e {
		size += len(err.Errors)
	}

	merged := make([]*Error, size)
	copy(merged, errs.Errors)

	i := len(errs.Errors)
	for _, err := range e {
		copy(merged[i:], err.Errors)
		i += len(err.Errors)
	}

	errs.Errors = merged
}

// HaveOccurred returns true if the list contains any error. Use this rather than a nil check;
// an empty non-nil list is still "no errors".
func (errs Errors) HaveOccurred() bool {
	return len(errs.Errors) > 0
}

func init() {
	jsoniter.RegisterTypeEncoder("graphql.ResponsePath", responsePathMarshaller{})
	jsoniter.RegisterTypeEncoder("graphql.Error", errorMarshaller{})
}
