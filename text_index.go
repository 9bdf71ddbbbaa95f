// Package prism: text index.
//
// A text index is a classic inverted index: token -> posting list. Text is
// normalized (NFKC + case fold) and split on every codepoint that is not a
// letter or digit; see tokenize.go. The index stores no original text and
// no positions; term membership is all the query language needs.
package prism

// Compile-time check to ensure TextIndex implements FieldIndex.
var _ FieldIndex = (*TextIndex)(nil)

// TextIndex maps token -> compressed posting list.
type TextIndex struct {
	postings map[string]*CompressedSortedSet
}

// NewTextIndex returns a new empty text index.
func NewTextIndex() *TextIndex {
	return &TextIndex{postings: make(map[string]*CompressedSortedSet)}
}

// Add tokenizes the document's text and inserts doc into each token's
// posting list. Documents without the identifier are skipped; re-adding a
// document is a no-op because posting-list insertion is idempotent.
func (ix *TextIndex) Add(doc DocId, access DocumentAccessor, identifier string) error {
	text, ok := access.GetString(identifier)
	if !ok {
		return nil
	}
	for _, token := range tokenize(text) {
		list := ix.postings[token]
		if list == nil {
			list = NewCompressedSortedSet()
			ix.postings[token] = list
		}
		list.Insert(doc)
	}
	return nil
}

// Remove re-tokenizes the document's text to locate its posting lists and
// deletes doc from each. Lists that become empty are dropped.
func (ix *TextIndex) Remove(doc DocId, access DocumentAccessor, identifier string) {
	text, ok := access.GetString(identifier)
	if !ok {
		return
	}
	for _, token := range tokenize(text) {
		list := ix.postings[token]
		if list == nil {
			continue
		}
		list.Remove(doc)
		if list.Empty() {
			delete(ix.postings, token)
		}
	}
}

// Matching returns the posting list for a term, or nil when no document
// contains it. The term is normalized before lookup.
func (ix *TextIndex) Matching(term string) *CompressedSortedSet {
	return ix.postings[normalize(term)]
}
