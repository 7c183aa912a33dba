package blaze

// ═══════════════════════════════════════════════════════════════════════════════
// SKIP LIST: Ordered Postings for One Term
// ═══════════════════════════════════════════════════════════════════════════════
// A skip list is a probabilistic data structure offering O(log n) search and
// insert - similar to a balanced tree, but without rotations.
//
// VISUAL REPRESENTATION:
// ----------------------
// Think of it as a linked list with "express lanes":
//
// Level 2: HEAD -------------------------------------> [30] -----------> nil
// Level 1: HEAD ----------------> [15] -------------> [30] -----------> nil
// Level 0: HEAD --> [5] -> [10] -> [15] -> [20] -> [25] -> [30] -> [35] -> nil
//
// - Level 0 (bottom): contains every element, in sorted order
// - Higher levels: contain progressively fewer elements (express lanes)
// - Searching: start at the highest level, drop down when needed
//
// This engine uses one SkipList per term, keyed by Position{DocumentID:
// ordinal, Offset: frequency} (see index.go's InvertedIndex.postings): the
// ordinal of every document containing the term, ordered ascending, each
// carrying how many times the term occurs in that document. There is no
// document-deletion operation anywhere in the engine, so the only postings
// mutation this engine ever needs is "insert, or bump the frequency of an
// existing entry" - AddPosting/incrementPosting in index.go do the bumping
// directly against the level-0 chain and only fall back to Insert for a
// genuinely new document ordinal.
// ═══════════════════════════════════════════════════════════════════════════════

const MaxHeight = 32 // Maximum tower height (supports billions of elements)

// Position identifies one term's frequency within one document.
//
// DocumentID is the document's internal ordinal (see Engine.ordinalFor);
// Offset is the number of times the term occurs in that document. Both are
// float64 purely so comparisons stay branch-free; SetPosting/AddPosting
// always store whole numbers, recovered via GetDocumentID/GetOffset.
//
// Within one term's skip list, positions are ordered by DocumentID alone -
// there is at most one Position per document ordinal.
type Position struct {
	DocumentID float64
	Offset     float64
}

// GetDocumentID returns the document ordinal as an int.
func (p *Position) GetDocumentID() int {
	return int(p.DocumentID)
}

// GetOffset returns the stored frequency as an int.
func (p *Position) GetOffset() int {
	return int(p.Offset)
}

// Equals reports whether two positions refer to the same document ordinal
// and carry the same frequency.
func (p *Position) Equals(other Position) bool {
	return p.DocumentID == other.DocumentID && p.Offset == other.Offset
}

// IsBefore reports whether p sorts before other. Positions compare by
// DocumentID only in practice (each term has at most one Position per
// document), but Offset breaks ties so Equals and IsBefore stay consistent
// with each other.
func (p *Position) IsBefore(other Position) bool {
	if p.DocumentID < other.DocumentID {
		return true
	}
	return p.DocumentID == other.DocumentID && p.Offset < other.Offset
}

// Node is one entry in a SkipList: a Position and a tower of forward
// pointers, one per level the node was promoted to.
type Node struct {
	Key   Position
	Tower [MaxHeight]*Node
}

// SkipList holds one term's postings, ordered by document ordinal.
type SkipList struct {
	Head   *Node // sentinel; carries no real Position
	Height int
}

// NewSkipList returns an empty skip list of height 1.
func NewSkipList() *SkipList {
	return &SkipList{
		Head:   &Node{},
		Height: 1,
	}
}

// Search walks down from the top level looking for key, returning the exact
// node if present (nil otherwise) and the journey: at each level, the last
// node visited before key - i.e. where a new node at that level would
// splice in. Insert uses the journey to link the new node in one pass
// instead of re-searching per level.
func (sl *SkipList) Search(key Position) (*Node, [MaxHeight]*Node) {
	var journey [MaxHeight]*Node
	current := sl.Head

	for level := sl.Height - 1; level >= 0; level-- {
		current = sl.traverseLevel(current, key, level)
		journey[level] = current
	}

	next := current.Tower[0]
	if next != nil && next.Key.Equals(key) {
		return next, journey
	}
	return nil, journey
}

// traverseLevel advances from start along level as far as possible while
// staying before target, returning the last node reached.
func (sl *SkipList) traverseLevel(start *Node, target Position, level int) *Node {
	current := start
	next := current.Tower[level]
	for next != nil && sl.shouldAdvance(next.Key, target) {
		current = next
		next = current.Tower[level]
	}
	return current
}

// shouldAdvance reports whether nodeKey sorts strictly before targetKey.
func (sl *SkipList) shouldAdvance(nodeKey, targetKey Position) bool {
	if nodeKey.Equals(targetKey) {
		return false
	}
	return nodeKey.IsBefore(targetKey)
}

// Insert adds key to the skip list, or overwrites the existing node's key if
// one with the same DocumentID (and Offset, per Equals) is already present.
// Note that index.go never reaches the overwrite branch for the same
// document ordinal with a changed Offset - incrementPosting mutates a found
// node's Offset directly - so in practice Insert only ever adds genuinely
// new document ordinals.
func (sl *SkipList) Insert(key Position) {
	found, journey := sl.Search(key)
	if found != nil {
		found.Key = key
		return
	}

	height := sl.randomHeight()
	newNode := &Node{Key: key}
	sl.linkNode(newNode, journey, height)

	if height > sl.Height {
		sl.Height = height
	}
}

// linkNode splices node into the skip list at every level up to height,
// using journey's predecessors (or Head, if a level had none).
func (sl *SkipList) linkNode(node *Node, journey [MaxHeight]*Node, height int) {
	for level := 0; level < height; level++ {
		predecessor := journey[level]
		if predecessor == nil {
			predecessor = sl.Head
		}
		node.Tower[level] = predecessor.Tower[level]
		predecessor.Tower[level] = node
	}
}

// randomHeight picks a node's tower height via repeated fair coin flips:
// height 1 with probability 1/2, height 2 with probability 1/4, and so on,
// capped at MaxHeight. This geometric distribution is what keeps Search
// logarithmic on average without any rebalancing.
func (sl *SkipList) randomHeight() int {
	height := 1
	rng := newSkipListRand()
	for rng.Float64() < 0.5 && height < MaxHeight {
		height++
	}
	return height
}
