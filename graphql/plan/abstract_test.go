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

package plan_test

import (
	"context"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type animal struct {
	kind  string
	sound string
}

func (a animal) GraphQLTypeName() string { return a.kind }

// petSchema builds a Cat|Dog union schema. isTypeOf switches the concrete types to IsTypeOf-based
// identification instead of relying on values naming their own type.
func petSchema(typeResolver graphql.TypeResolver, isTypeOf bool) graphql.Schema {
	catConfig := &graphql.ObjectConfig{
		Name: "Cat",
		Fields: graphql.Fields{
			"meow": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return source.(animal).sound, nil
				}),
			},
		},
	}
	dogConfig := &graphql.ObjectConfig{
		Name: "Dog",
		Fields: graphql.Fields{
			"bark": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return source.(animal).sound, nil
				}),
			},
		},
	}
	if isTypeOf {
		catConfig.IsTypeOf = func(ctx context.Context, value interface{}) bool {
			a, ok := value.(animal)
			return ok && a.kind == "Cat"
		}
		dogConfig.IsTypeOf = func(ctx context.Context, value interface{}) bool {
			a, ok := value.(animal)
			return ok && a.kind == "Dog"
		}
	}

	petUnion := graphql.MustNewUnion(&graphql.UnionConfig{
		Name:          "Pet",
		PossibleTypes: []graphql.ObjectTypeDefinition{catConfig, dogConfig},
		TypeResolver:  typeResolver,
	})

	return querySchema(graphql.Fields{
		"pet": {
			Type: graphql.T(petUnion),
			Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
				return source, nil
			}),
		},
	})
}

func petDocument() ast.Document {
	return queryDoc(field("pet",
		&ast.InlineFragment{
			TypeCondition: ast.NamedType{Name: ast.Name{Value: "Cat"}},
			SelectionSet:  ast.SelectionSet{field("meow")},
		},
		&ast.InlineFragment{
			TypeCondition: ast.NamedType{Name: ast.Name{Value: "Dog"}},
			SelectionSet:  ast.SelectionSet{field("bark")},
		},
	))
}

var _ = Describe("Run: abstract type resolution", func() {
	It("consults the abstract type's own resolver first", func() {
		var resolvedValue interface{}
		typeResolver := graphql.TypeResolverFunc(
			func(ctx context.Context, value interface{}, info graphql.ResolveInfo) (*graphql.Object, error) {
				resolvedValue = value
				return info.Schema().TypeMap().Lookup("Dog").(*graphql.Object), nil
			})

		schema := petSchema(typeResolver, false)
		query := mustCompile(schema, petDocument(), "")

		value := animal{kind: "would be Cat", sound: "woof"}
		Expect(runQuery(query, value, nil)).Should(MatchDataInJSON(`{
			"pet": { "bark": "woof" }
		}`))
		Expect(resolvedValue).Should(Equal(value))
	})

	It("falls back to the value's own type name", func() {
		schema := petSchema(nil, false)
		query := mustCompile(schema, petDocument(), "")

		Expect(runQuery(query, animal{kind: "Cat", sound: "meow"}, nil)).Should(MatchDataInJSON(`{
			"pet": { "meow": "meow" }
		}`))
	})

	It("identifies a type through IsTypeOf when the value names no type", func() {
		catConfig := &graphql.ObjectConfig{
			Name: "Cat",
			Fields: graphql.Fields{
				"meow": {Type: graphql.T(graphql.String())},
			},
			IsTypeOf: func(ctx context.Context, value interface{}) bool {
				m, ok := value.(map[string]interface{})
				if !ok {
					return false
				}
				_, hasMeow := m["meow"]
				return hasMeow
			},
		}
		dogConfig := &graphql.ObjectConfig{
			Name: "Dog",
			Fields: graphql.Fields{
				"bark": {Type: graphql.T(graphql.String())},
			},
			IsTypeOf: func(ctx context.Context, value interface{}) bool {
				m, ok := value.(map[string]interface{})
				if !ok {
					return false
				}
				_, hasBark := m["bark"]
				return hasBark
			},
		}
		petUnion := graphql.MustNewUnion(&graphql.UnionConfig{
			Name:          "Pet",
			PossibleTypes: []graphql.ObjectTypeDefinition{catConfig, dogConfig},
		})
		schema := querySchema(graphql.Fields{
			"pet": {
				Type:     graphql.T(petUnion),
				Resolver: constResolver(map[string]interface{}{"bark": "woof"}),
			},
		})
		query := mustCompile(schema, petDocument(), "")

		Expect(runQuery(query, nil, nil)).Should(MatchDataInJSON(`{
			"pet": { "bark": "woof" }
		}`))
	})

	It("reports an unknown concrete type name", func() {
		schema := petSchema(nil, false)
		query := mustCompile(schema, petDocument(), "")

		result := runQuery(query, animal{kind: "Hamster", sound: "squeak"}, nil)
		Expect(result).Should(MatchDataInJSON(`{ "pet": null }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Message).Should(
			ContainSubstring(`Runtime Object type "Hamster" is not a possible type for "Pet".`))
	})

	It("reports a value no strategy can type", func() {
		schema := petSchema(nil, false)
		query := mustCompile(schema, petDocument(), "")

		result := runQuery(query, animal{kind: "", sound: "?"}, nil)
		Expect(result).Should(MatchDataInJSON(`{ "pet": null }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Message).Should(
			ContainSubstring("Abstract type Pet must resolve to an Object type at runtime for field Query.pet."))
	})

	It("resolves interface positions through the interface's type resolver", func() {
		nodeIface := graphql.MustNewInterface(&graphql.InterfaceConfig{
			Name: "Named",
			Fields: graphql.Fields{
				"name": {Type: graphql.T(graphql.String())},
			},
			TypeResolver: graphql.TypeResolverFunc(
				func(ctx context.Context, value interface{}, info graphql.ResolveInfo) (*graphql.Object, error) {
					return info.Schema().TypeMap().Lookup("User").(*graphql.Object), nil
				}),
		})

		userType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name:       "User",
			Interfaces: []graphql.InterfaceTypeDefinition{graphql.I(nodeIface)},
			Fields: graphql.Fields{
				"name": {Type: graphql.T(graphql.String())},
			},
		})

		schema, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"me": {
						Type:     graphql.T(nodeIface),
						Resolver: constResolver(map[string]interface{}{"name": "ada"}),
					},
				},
			}),
			Types: []graphql.Type{userType},
		})
		Expect(err).ShouldNot(HaveOccurred())

		query := mustCompile(schema, queryDoc(field("me", field("name"))), "")
		Expect(runQuery(query, nil, nil)).Should(MatchDataInJSON(`{
			"me": { "name": "ada" }
		}`))
	})
})
