// Package prism: tag index.
//
// A tag index maps exact tag literals to posting lists. The accessor
// yields a comma-separated string per document; the index splits on
// commas, trims surrounding whitespace, and case-folds each literal, so
// "phone, Red" and "phone,red" index identically.
package prism

// Compile-time check to ensure TagIndex implements FieldIndex.
var _ FieldIndex = (*TagIndex)(nil)

// TagIndex maps normalized tag literal -> compressed posting list.
type TagIndex struct {
	tags map[string]*CompressedSortedSet
}

// NewTagIndex returns a new empty tag index.
func NewTagIndex() *TagIndex {
	return &TagIndex{tags: make(map[string]*CompressedSortedSet)}
}

// Add splits the document's tag string and inserts doc into the posting
// list of every resulting tag. Documents without the identifier are
// skipped; re-adding a document is a no-op.
func (ix *TagIndex) Add(doc DocId, access DocumentAccessor, identifier string) error {
	value, ok := access.GetString(identifier)
	if !ok {
		return nil
	}
	for _, tag := range splitTags(value) {
		list := ix.tags[tag]
		if list == nil {
			list = NewCompressedSortedSet()
			ix.tags[tag] = list
		}
		list.Insert(doc)
	}
	return nil
}

// Remove deletes doc from the posting lists of the document's tags.
// Lists that become empty are dropped from the index.
func (ix *TagIndex) Remove(doc DocId, access DocumentAccessor, identifier string) {
	value, ok := access.GetString(identifier)
	if !ok {
		return
	}
	for _, tag := range splitTags(value) {
		list := ix.tags[tag]
		if list == nil {
			continue
		}
		list.Remove(doc)
		if list.Empty() {
			delete(ix.tags, tag)
		}
	}
}

// Matching returns the posting list for a tag literal, or nil when no
// document carries it. The literal is normalized the same way indexed tags
// are.
func (ix *TagIndex) Matching(tag string) *CompressedSortedSet {
	return ix.tags[normalizeTag(tag)]
}
