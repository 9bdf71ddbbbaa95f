// Package prism: query evaluation.
//
// The evaluator walks an AST against a FieldIndices registry, merging
// per-field posting lists into one result. Intermediate results are always
// strictly ascending; only the top level may be unordered (KNN distance
// order). A reusable merge buffer and a reusable distance buffer keep
// allocation amortized across one evaluation.
package prism

import (
	"fmt"
	"sort"
)

// SearchResult is the outcome of evaluating one query: the matched DocIds
// and, when a KNN node was evaluated, a parallel slice of distances in the
// same order.
type SearchResult struct {
	DocIDs       []DocId
	KnnDistances []float32
}

// docIterator yields DocIds in strictly ascending order.
type docIterator interface {
	Next() (DocId, bool)
}

type sliceIterator struct {
	s []DocId
	i int
}

func (it *sliceIterator) Next() (DocId, bool) {
	if it.i >= len(it.s) {
		return 0, false
	}
	v := it.s[it.i]
	it.i++
	return v, true
}

// indexResult is an either owned or borrowed result set accessed
// transparently through docIterator. Leaf lookups that hit a CSS return it
// borrowed; merges always produce owned vectors.
type indexResult struct {
	vec   []DocId
	owned bool
	css   *CompressedSortedSet
}

func ownedResult(vec []DocId) indexResult {
	return indexResult{vec: vec, owned: true}
}

func borrowedSlice(vec []DocId) indexResult {
	return indexResult{vec: vec}
}

func cssResult(css *CompressedSortedSet) indexResult {
	if css == nil {
		return ownedResult(nil)
	}
	return indexResult{css: css}
}

func (r indexResult) size() int {
	if r.css != nil {
		return r.css.Size()
	}
	return len(r.vec)
}

func (r indexResult) iterator() docIterator {
	if r.css != nil {
		return r.css.Iterator()
	}
	return &sliceIterator{s: r.vec}
}

// take moves out an owned vector or copies a borrowed one.
func (r indexResult) take() []DocId {
	if r.owned {
		return r.vec
	}
	if r.css != nil {
		return r.css.Slice()
	}
	return append([]DocId(nil), r.vec...)
}

// knnDist pairs a computed distance with its document for partial sorting.
type knnDist struct {
	dist float32
	doc  DocId
}

// basicSearch is the per-evaluation state: the borrowed registry, the
// reusable merge buffer, and the KNN distance buffer.
type basicSearch struct {
	indices   *FieldIndices
	tmp       []DocId
	distances []knnDist
}

// tagIndex, textIndex, numericIndex and vectorIndex downcast the field's
// registered index. A missing field or a kind mismatch returns nil; the
// parser and schema rule these out, so the evaluator treats them as
// defensive empty results.
func (s *basicSearch) tagIndex(field string) *TagIndex {
	ix, _ := s.indices.GetIndex(field).(*TagIndex)
	return ix
}

func (s *basicSearch) textIndex(field string) *TextIndex {
	ix, _ := s.indices.GetIndex(field).(*TextIndex)
	return ix
}

func (s *basicSearch) numericIndex(field string) *NumericIndex {
	ix, _ := s.indices.GetIndex(field).(*NumericIndex)
	return ix
}

func (s *basicSearch) vectorIndex(field string) *VectorIndex {
	ix, _ := s.indices.GetIndex(field).(*VectorIndex)
	return ix
}

// merge folds matched into current under op. Both inputs are ascending and
// duplicate-free, so intersection and union are single linear passes. The
// merge buffer is recycled across calls; the previous owned backing of
// current becomes the next scratch.
func (s *basicSearch) merge(matched indexResult, current *indexResult, op LogicOp) {
	tmp := s.tmp[:0]
	a, b := matched.iterator(), current.iterator()
	av, aok := a.Next()
	bv, bok := b.Next()

	if op == AndOp {
		for aok && bok {
			switch {
			case av == bv:
				tmp = append(tmp, av)
				av, aok = a.Next()
				bv, bok = b.Next()
			case av < bv:
				av, aok = a.Next()
			default:
				bv, bok = b.Next()
			}
		}
	} else {
		for aok || bok {
			switch {
			case !bok || (aok && av < bv):
				tmp = append(tmp, av)
				av, aok = a.Next()
			case !aok || bv < av:
				tmp = append(tmp, bv)
				bv, bok = b.Next()
			default:
				tmp = append(tmp, av)
				av, aok = a.Next()
				bv, bok = b.Next()
			}
		}
	}

	if current.owned {
		s.tmp = current.vec[:0]
	} else {
		s.tmp = nil
	}
	*current = ownedResult(tmp)
}

// unifyResults reduces sub results under op, smallest first. AND only
// shrinks, so starting small keeps intermediates minimal; OR visits fewer
// elements on average.
func (s *basicSearch) unifyResults(subs []indexResult, op LogicOp) indexResult {
	if len(subs) == 0 {
		return ownedResult(nil)
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].size() < subs[j].size() })
	out := subs[0]
	for i := 1; i < len(subs); i++ {
		s.merge(subs[i], &out, op)
	}
	return out
}

// searchGeneric dispatches on the node type and evaluates it under the
// active field scope.
func (s *basicSearch) searchGeneric(node AstNode, activeField string) indexResult {
	switch n := node.(type) {
	case AstEmpty:
		return ownedResult(nil)

	case AstStar:
		return borrowedSlice(s.indices.GetAllDocs())

	case AstTerm:
		if activeField != "" {
			ix := s.textIndex(activeField)
			if ix == nil {
				return ownedResult(nil)
			}
			return cssResult(ix.Matching(n.Word))
		}
		texts := s.indices.GetAllTextIndices()
		subs := make([]indexResult, len(texts))
		for i, ix := range texts {
			subs[i] = cssResult(ix.Matching(n.Word))
		}
		return s.unifyResults(subs, OrOp)

	case AstRange:
		ix := s.numericIndex(activeField)
		if ix == nil {
			return ownedResult(nil)
		}
		return ownedResult(ix.Range(n.Lo, n.LoExcl, n.Hi, n.HiExcl))

	case AstNegate:
		matched := s.searchGeneric(n.Node, activeField).take()
		all := s.indices.GetAllDocs()
		out := make([]DocId, 0, len(all))
		i := 0
		for _, doc := range all {
			for i < len(matched) && matched[i] < doc {
				i++
			}
			if i < len(matched) && matched[i] == doc {
				continue
			}
			out = append(out, doc)
		}
		return ownedResult(out)

	case AstLogical:
		subs := make([]indexResult, len(n.Nodes))
		for i, child := range n.Nodes {
			subs[i] = s.searchGeneric(child, activeField)
		}
		return s.unifyResults(subs, n.Op)

	case AstField:
		return s.searchGeneric(n.Node, n.Field)

	case AstTags:
		ix := s.tagIndex(activeField)
		if ix == nil {
			return ownedResult(nil)
		}
		subs := make([]indexResult, len(n.Tags))
		for i, tag := range n.Tags {
			subs[i] = cssResult(ix.Matching(tag))
		}
		return s.unifyResults(subs, OrOp)

	case AstKnn:
		return s.searchKnn(n, activeField)
	}
	return ownedResult(nil)
}

// searchKnn evaluates the filter, measures the distance from the query
// vector to every candidate, and keeps the limit nearest. Ties break by
// ascending DocId. Candidates without a stored vector, and vectors whose
// dimension does not match the query, are skipped defensively.
func (s *basicSearch) searchKnn(knn AstKnn, activeField string) indexResult {
	sub := s.searchGeneric(knn.Filter, activeField)

	ix := s.vectorIndex(knn.Field)
	if ix == nil {
		return ownedResult(nil)
	}

	s.distances = s.distances[:0]
	it := sub.iterator()
	for doc, ok := it.Next(); ok; doc, ok = it.Next() {
		vec, stored := ix.Get(doc)
		if !stored || len(vec) != len(knn.Vector) {
			continue
		}
		s.distances = append(s.distances, knnDist{dist: ix.Distance(knn.Vector, vec), doc: doc})
	}

	sort.Slice(s.distances, func(i, j int) bool {
		if s.distances[i].dist != s.distances[j].dist {
			return s.distances[i].dist < s.distances[j].dist
		}
		return s.distances[i].doc < s.distances[j].doc
	})

	k := knn.Limit
	if k > len(s.distances) {
		k = len(s.distances)
	}
	out := make([]DocId, k)
	for i := range out {
		out[i] = s.distances[i].doc
	}
	return ownedResult(out)
}

// search evaluates the whole tree and assembles the final SearchResult.
func (s *basicSearch) search(query AstNode) *SearchResult {
	result := s.searchGeneric(query, "")
	ids := result.take()

	if len(s.distances) > 0 {
		dists := make([]float32, len(ids))
		for i := range dists {
			dists[i] = s.distances[i].dist
		}
		return &SearchResult{DocIDs: ids, KnnDistances: dists}
	}
	return &SearchResult{DocIDs: ids}
}

// SearchAlgorithm parses a query once and evaluates it against any number
// of registries.
type SearchAlgorithm struct {
	query AstNode
	err   error
}

// Init parses the query with the given parameter bindings. It returns true
// when the parse succeeded and produced a non-empty expression. On failure
// the reason is retained for LastError and no AST persists.
func (sa *SearchAlgorithm) Init(query string, params QueryParams) bool {
	ast, err := parseQuery(query, params)
	if err != nil {
		sa.query = AstEmpty{}
		sa.err = fmt.Errorf("failed to parse query %q: %w", query, err)
		return false
	}
	sa.query = ast
	sa.err = nil
	if _, empty := ast.(AstEmpty); empty {
		return false
	}
	return true
}

// LastError returns the reason the most recent Init failed, or nil.
func (sa *SearchAlgorithm) LastError() error {
	return sa.err
}

// Search evaluates the parsed query against a registry. Calling Search
// after a failed Init returns the empty result.
func (sa *SearchAlgorithm) Search(indices *FieldIndices) *SearchResult {
	if sa.query == nil {
		return &SearchResult{}
	}
	bs := &basicSearch{indices: indices}
	return bs.search(sa.query)
}

// HasKnn returns the limit of the top-level KNN node, if the parsed query
// has one. The surrounding command layer uses it to route cross-shard
// top-k merging.
func (sa *SearchAlgorithm) HasKnn() (int, bool) {
	if knn, ok := sa.query.(AstKnn); ok {
		return knn.Limit, true
	}
	return 0, false
}
