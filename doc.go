/*
Package prism provides the in-memory secondary-index search core of a data
store: a query language, per-field indices, and an evaluator that turns
query text into document IDs.

# Overview

A schema maps field aliases to typed indices: TAG, TEXT, NUMERIC, and
VECTOR. Documents are added to a FieldIndices registry through a
DocumentAccessor; queries are parsed once by a SearchAlgorithm and
evaluated any number of times against a registry.

Posting lists are kept in a delta+varint CompressedSortedSet and merged by
the evaluator with standard sorted-set algebra. Vector fields support
exact k-nearest-neighbour search over an arbitrary filter expression.

# Quick Start

	schema, err := prism.NewSchema([]prism.FieldDef{
	    {Alias: "name", Identifier: "name", Type: prism.TagField},
	    {Alias: "body", Identifier: "body", Type: prism.TextField},
	    {Alias: "price", Identifier: "price", Type: prism.NumericField},
	    {Alias: "vec", Identifier: "vec", Type: prism.VectorField,
	        Options: []string{"FLAT", "6", "TYPE", "FLOAT32", "DIM", "2", "DISTANCE_METRIC", "L2"}},
	})
	if err != nil {
	    log.Fatal(err)
	}

	indices := prism.NewFieldIndices(schema)
	doc := prism.MapAccessor{
	    "name":  "phone,red",
	    "body":  "cheap red phone",
	    "price": 100.0,
	    "vec":   prism.EncodeVectorParam([]float32{0, 0}),
	}
	if err := indices.Add(1, doc); err != nil {
	    log.Fatal(err)
	}

	var algo prism.SearchAlgorithm
	if algo.Init(`@name:{red} @price:[50 200]`, nil) {
	    result := algo.Search(indices)
	    fmt.Println(result.DocIDs)
	}

# Query Language

Queries combine field-scoped expressions with implicit AND, '|' for OR and
'-' for negation:

	*                         match everything
	@name:{red | blue}        tag disjunction
	@price:[(200 1000]        numeric range, exclusive low bound
	@body:phone               text term under a field
	red                       unscoped term across all TEXT fields
	* => [KNN 5 @vec $q]      5 nearest to the vector bound under $q

# Concurrency

The core contains no locks: mutations and evaluations on one registry must
be serialized by the caller. Distinct registries are independent and may be
used in parallel.
*/
package prism
