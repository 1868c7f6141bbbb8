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
	"math"
	"strconv"

	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// Built-in scalar types. The "internal value type" behind the interface{} returned by
// CoerceResultValue/CoerceVariableValue/CoerceArgumentValue is fixed for each one:
//
//   Int      int
//   Float    float64
//   String   string
//   Boolean  bool
//   ID       string

//===-----------------------------------------------------------------------------------------===//
// Int
//===-----------------------------------------------------------------------------------------===//
// The Int scalar type represents a signed 32-bit numeric non-fractional value as per spec.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Int

func coerceIntResult(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case int:
		if value > math.MaxInt32 || value < math.MinInt32 {
			return nil, NewError(fmt.Sprintf("Int cannot represent value too large for 32-bit signed integer: %v", value))
		}
		return value, nil
	case int32:
		return int(value), nil
	case int64:
		if value > math.MaxInt32 || value < math.MinInt32 {
			return nil, NewError(fmt.Sprintf("Int cannot represent value too large for 32-bit signed integer: %v", value))
		}
		return int(value), nil
	case float64:
		intValue := int32(value)
		if float64(intValue) != value {
			return nil, NewError(fmt.Sprintf("Int cannot represent non-integer value: %v", value))
		}
		return int(intValue), nil
	case bool:
		if value {
			return 1, nil
		}
		return 0, nil
	default:
		return nil, NewError(fmt.Sprintf("Int cannot represent non-integer value: %v", value))
	}
}

func coerceIntVariable(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case int, int32, int64:
		return coerceIntResult(value)
	case float64:
		return coerceIntResult(value)
	case string:
		val, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, NewError(fmt.Sprintf("Int cannot represent non-integer value: %s", strconv.Quote(value)))
		}
		return int(val), nil
	default:
		return nil, NewError(fmt.Sprintf("Int cannot represent non-integer value: %v", value))
	}
}

func coerceIntArgument(value ast.Value) (interface{}, error) {
	if v, ok := value.(ast.IntValue); ok {
		return coerceIntResult(v.Value)
	}
	return nil, NewError(fmt.Sprintf("Int cannot represent non-integer value: %v", value))
}

var intTypeInstance = MustNewScalar(&ScalarConfig{
	Name: "Int",
	Description: "The `Int` scalar type represents non-fractional signed whole numeric " +
		"values. Int can represent values between -(2^31) and 2^31 - 1.",
	ResultCoercer: CoerceScalarResultFunc(coerceIntResult),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceIntVariable,
		CoerceArgumentValueFunc: coerceIntArgument,
	},
})

// Int returns the GraphQL builtin Int type definition.
func Int() Scalar {
	return intTypeInstance
}

//===-----------------------------------------------------------------------------------------===//
// Float
//===-----------------------------------------------------------------------------------------===//
// The Float scalar type represents signed double-precision fractional values as specified by IEEE
// 754.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Float

func ensureFloatValue(value float64) (interface{}, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, NewError(fmt.Sprintf("Float cannot represent non numeric value: %v", value))
	}
	return value, nil
}

func coerceFloatResult(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case float64:
		return ensureFloatValue(value)
	case float32:
		return ensureFloatValue(float64(value))
	case int:
		return ensureFloatValue(float64(value))
	case int32:
		return ensureFloatValue(float64(value))
	case int64:
		return ensureFloatValue(float64(value))
	case bool:
		if value {
			return 1.0, nil
		}
		return 0.0, nil
	default:
		return nil, NewError(fmt.Sprintf("Float cannot represent non numeric value: %v", value))
	}
}

func coerceFloatVariable(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, NewError(fmt.Sprintf("Float cannot represent non numeric value: %s", strconv.Quote(value)))
		}
		return ensureFloatValue(f)
	default:
		return coerceFloatResult(value)
	}
}

func coerceFloatArgument(value ast.Value) (interface{}, error) {
	switch value := value.(type) {
	case ast.FloatValue:
		return ensureFloatValue(value.Value)
	case ast.IntValue:
		return ensureFloatValue(float64(value.Value))
	}
	return nil, NewError(fmt.Sprintf("Float cannot represent non numeric value: %v", value))
}

var floatTypeInstance = MustNewScalar(&ScalarConfig{
	Name: "Float",
	Description: "The `Float` scalar type represents signed double-precision fractional " +
		"values as specified by IEEE 754.",
	ResultCoercer: CoerceScalarResultFunc(coerceFloatResult),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceFloatVariable,
		CoerceArgumentValueFunc: coerceFloatArgument,
	},
})

// Float returns the GraphQL builtin Float type definition.
func Float() Scalar {
	return floatTypeInstance
}

//===-----------------------------------------------------------------------------------------===//
// String
//===-----------------------------------------------------------------------------------------===//
// Reference: https://facebook.github.io/graphql/June2018/#sec-String

func coerceStringResult(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case string:
		return value, nil
	case bool:
		if value {
			return "true", nil
		}
		return "false", nil
	case fmt.Stringer:
		return value.String(), nil
	default:
		return fmt.Sprintf("%v", value), nil
	}
}

func coerceStringVariable(value interface{}) (interface{}, error) {
	if value, ok := value.(string); ok {
		return value, nil
	}
	return nil, NewError(fmt.Sprintf("String cannot represent a non string value: %v", value))
}

func coerceStringArgument(value ast.Value) (interface{}, error) {
	if v, ok := value.(ast.StringValue); ok {
		return v.Value, nil
	}
	return nil, NewError(fmt.Sprintf("String cannot represent a non string value: %v", value))
}

var stringTypeInstance = MustNewScalar(&ScalarConfig{
	Name: "String",
	Description: "The `String` scalar type represents textual data, represented as UTF-8 " +
		"character sequences. The String type is most often used by GraphQL to represent " +
		"free-form human-readable text.",
	ResultCoercer: CoerceScalarResultFunc(coerceStringResult),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceStringVariable,
		CoerceArgumentValueFunc: coerceStringArgument,
	},
})

// String returns the GraphQL builtin String type definition.
func String() Scalar {
	return stringTypeInstance
}

//===-----------------------------------------------------------------------------------------===//
// Boolean
//===-----------------------------------------------------------------------------------------===//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Boolean

func coerceBooleanResult(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case bool:
		return value, nil
	case int:
		return value != 0, nil
	case int64:
		return value != 0, nil
	default:
		return nil, NewError(fmt.Sprintf("Boolean cannot represent a non boolean value: %v", value))
	}
}

func coerceBooleanVariable(value interface{}) (interface{}, error) {
	if value, ok := value.(bool); ok {
		return value, nil
	}
	return nil, NewError(fmt.Sprintf("Boolean cannot represent a non boolean value: %v", value))
}

func coerceBooleanArgument(value ast.Value) (interface{}, error) {
	if v, ok := value.(ast.BooleanValue); ok {
		return v.Value, nil
	}
	return nil, NewError(fmt.Sprintf("Boolean cannot represent a non boolean value: %v", value))
}

var booleanTypeInstance = MustNewScalar(&ScalarConfig{
	Name:          "Boolean",
	Description:   "The `Boolean` scalar type represents `true` or `false`.",
	ResultCoercer: CoerceScalarResultFunc(coerceBooleanResult),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceBooleanVariable,
		CoerceArgumentValueFunc: coerceBooleanArgument,
	},
})

// Boolean returns the GraphQL builtin Boolean type definition.
func Boolean() Scalar {
	return booleanTypeInstance
}

//===-----------------------------------------------------------------------------------------===//
// ID
//===-----------------------------------------------------------------------------------------===//
// Reference: https://facebook.github.io/graphql/June2018/#sec-ID

func coerceIDResult(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case string:
		return value, nil
	case int:
		return strconv.Itoa(value), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	default:
		return fmt.Sprintf("%v", value), nil
	}
}

func coerceIDVariable(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case string:
		return value, nil
	case int:
		return strconv.Itoa(value), nil
	default:
		return nil, NewError(fmt.Sprintf("ID cannot represent value: %v", value))
	}
}

func coerceIDArgument(value ast.Value) (interface{}, error) {
	switch value := value.(type) {
	case ast.StringValue:
		return value.Value, nil
	case ast.IntValue:
		return strconv.FormatInt(value.Value, 10), nil
	}
	return nil, NewError(fmt.Sprintf("ID cannot represent value: %v", value))
}

var idTypeInstance = MustNewScalar(&ScalarConfig{
	Name: "ID",
	Description: "The `ID` scalar type represents a unique identifier, often used to " +
		"refetch an object or as key for a cache. The ID type appears in a JSON response as a " +
		"String; however, it is not intended to be human-readable. When expected as an input " +
		"type, any string (such as `\"4\"`) or integer (such as `4`) input value will be " +
		"accepted as an ID.",
	ResultCoercer: CoerceScalarResultFunc(coerceIDResult),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceIDVariable,
		CoerceArgumentValueFunc: coerceIDArgument,
	},
})

// ID returns the GraphQL builtin ID type definition.
func ID() Scalar {
	return idTypeInstance
}
