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
	"context"
	"fmt"
	"reflect"
	"unicode"

	"github.com/nabeelbukhari/graphql-jit/graphql"
)

// DefaultFieldResolver is used for a top-level field when its Field does not declare a resolver.
// It takes the property of the source object with the same name as the field and returns it as
// the result, or if the property is a function, returns the result of calling that function while
// passing along context and source.
type DefaultFieldResolver struct {
	// UnresolvedAsError reports a field error when no property matches; the default silently
	// resolves to null.
	UnresolvedAsError bool

	// ScanMethods also searches the source's method set for a method matching the exported form of
	// the field name.
	ScanMethods bool
}

var _ graphql.FieldResolver = (*DefaultFieldResolver)(nil)

// Resolve implements graphql.FieldResolver.
func (resolver *DefaultFieldResolver) Resolve(
	ctx context.Context,
	source interface{},
	info graphql.ResolveInfo) (interface{}, error) {

	value := reflect.ValueOf(source)
	if !value.IsValid() {
		return nil, resolver.unresolvedError(info)
	}

	if value.Kind() == reflect.Ptr {
		value = value.Elem()
		if !value.IsValid() {
			return nil, resolver.unresolvedError(info)
		}
	}

	switch value.Kind() {
	case reflect.Struct:
		return resolver.resolveFromStruct(ctx, source, value, info)
	case reflect.Map:
		return resolver.resolveFromMap(ctx, source, value, info)
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *DefaultFieldResolver) unresolvedError(info graphql.ResolveInfo) error {
	if !resolver.UnresolvedAsError {
		return nil
	}
	return graphql.NewError(fmt.Sprintf(`default resolver cannot resolve value for "%s.%s"`,
		info.Object().Name(), info.Field().Name()))
}

func (resolver *DefaultFieldResolver) resolveFromValueOrFunc(
	ctx context.Context,
	source interface{},
	value reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	if value.Kind() == reflect.Func {
		switch f := value.Interface().(type) {
		case func(ctx context.Context) (interface{}, error):
			return f(ctx)
		case func(ctx context.Context, source interface{}) (interface{}, error):
			return f(ctx, source)
		case func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error):
			return f(ctx, source, info)
		default:
			return nil, resolver.unresolvedError(info)
		}
	}
	return value.Interface(), nil
}

func (resolver *DefaultFieldResolver) resolveFromStruct(
	ctx context.Context,
	source interface{},
	sourceValue reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	name := exportedName(info.Field().Name())

	fieldValue := sourceValue.FieldByName(name)
	if fieldValue.IsValid() {
		return resolver.resolveFromValueOrFunc(ctx, source, fieldValue, info)
	}

	if resolver.ScanMethods {
		if sourceValue.CanAddr() {
			sourceValue = sourceValue.Addr()
		}
		method := sourceValue.MethodByName(name)
		if method.IsValid() {
			return resolver.resolveFromValueOrFunc(ctx, source, method, info)
		}
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *DefaultFieldResolver) resolveFromMap(
	ctx context.Context,
	source interface{},
	sourceValue reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	value := sourceValue.MapIndex(reflect.ValueOf(info.Field().Name()))
	if value.IsValid() {
		return resolver.resolveFromValueOrFunc(ctx, source, value, info)
	}
	return nil, resolver.unresolvedError(info)
}

// exportedName upper-cases the first rune of a field name to match Go's exported identifiers.
func exportedName(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// readSourceProperty is the synchronous property access used for inline (non-resolver) fields: a
// plain read of the named property off the source value, with no function invocation and no
// ResolveInfo. A miss resolves to null, which the type-directed completion then judges.
func readSourceProperty(source interface{}, fieldName string) interface{} {
	if m, ok := source.(map[string]interface{}); ok {
		return m[fieldName]
	}

	value := reflect.ValueOf(source)
	if !value.IsValid() {
		return nil
	}
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
		if !value.IsValid() {
			return nil
		}
	}

	switch value.Kind() {
	case reflect.Map:
		v := value.MapIndex(reflect.ValueOf(fieldName))
		if v.IsValid() {
			return v.Interface()
		}
	case reflect.Struct:
		v := value.FieldByName(exportedName(fieldName))
		if v.IsValid() {
			return v.Interface()
		}
	}
	return nil
}
