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

// Package graphql defines the GraphQL type-system surface the plan compiler consumes: type
// descriptors (Object, Scalar, Enum, Interface, Union, List, NonNull), field and argument
// schemas, Schema itself, plus the error and resolver contracts shared with executing code.
//
// Types are built through TypeDefinitions rather than from config structs directly. A
// TypeDefinition supplies its data through interface methods, and NewType pulls the data as the
// type is constructed; because the references live inside method bodies instead of global
// initializers, mutually-recursive and self-referential type graphs build without
// "initialization loop" gymnastics. Construction memoizes per TypeDefinition instance: the first
// NewType call (or any type referencing the definition) creates the Type, and every later
// reference resolves to that same instance — a definition edited after its type exists has no
// further effect.
//
// Schemas assembled from these types are immutable once NewSchema returns, which is what lets a
// compiled query plan hold direct references into the schema and be shared across concurrent
// executions.
package graphql
