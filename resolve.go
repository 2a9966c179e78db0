package wikicat

// DefaultMaxDepth bounds how many waves Resolve runs when the caller
// doesn't say.  It's a safety bound, not a promise of full closure.
const DefaultMaxDepth = 20

// A CategoryEdge says Child is filed under the category Parent.
//
// Edge sets may contain cycles, and a child may have several parents.
type CategoryEdge struct {
	Child  string
	Parent string
}

// A ResolvedEdge says Child is reachable from the top-level category
// Parent.  A child may resolve to several top-level categories.
type ResolvedEdge struct {
	Child  string
	Parent string
}

// A TopLevelSet is the set of categories Resolve resolves to.
type TopLevelSet map[string]struct{}

// NewTopLevelSet gets a set of the given titles.
func NewTopLevelSet(titles ...string) TopLevelSet {
	rv := make(TopLevelSet, len(titles))
	for _, t := range titles {
		rv[t] = struct{}{}
	}
	return rv
}

// Contains tells whether title is a top-level category.
func (s TopLevelSet) Contains(title string) bool {
	_, ok := s[title]
	return ok
}

// TopLevelFrom gets the direct children of root as a top-level set.
//
// Wikis usually gather their topic categories under one
// administrative category; this turns that category into the set.
func TopLevelFrom(edges []CategoryEdge, root string) TopLevelSet {
	rv := TopLevelSet{}
	for _, e := range edges {
		if e.Parent == root {
			rv[e.Child] = struct{}{}
		}
	}
	return rv
}

// Resolve links every descendant category to its top-level
// ancestors, running at most maxDepth waves (DefaultMaxDepth if
// maxDepth <= 0).
//
// The first wave is every edge whose parent is top-level.  Each
// following wave takes the remaining edges whose parent was a child
// in the previous wave and hands them that child's ancestor.  Once a
// child has been reached, its remaining edges leave the pool, so an
// edge is consumed at most once and cycles die out.
//
// Children that can't be reached within the bound are left out.  The
// result holds no duplicate pairs and is ordered by wave, then by
// input order.
func Resolve(edges []CategoryEdge, top TopLevelSet, maxDepth int) []ResolvedEdge {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var frontier []ResolvedEdge
	// pool edges indexed by parent, and by child for removal
	byParent := map[string][]int{}
	byChild := map[string][]int{}
	for i, e := range edges {
		switch {
		case top.Contains(e.Parent):
			frontier = append(frontier, ResolvedEdge(e))
		case !top.Contains(e.Child):
			byParent[e.Parent] = append(byParent[e.Parent], i)
			byChild[e.Child] = append(byChild[e.Child], i)
		}
	}
	consumed := make([]bool, len(edges))

	var waves [][]ResolvedEdge
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		waves = append(waves, frontier)

		var next []ResolvedEdge
		inWave := map[ResolvedEdge]bool{}
		for _, f := range frontier {
			for _, i := range byParent[f.Child] {
				r := ResolvedEdge{Child: edges[i].Child, Parent: f.Parent}
				if consumed[i] || inWave[r] {
					continue
				}
				inWave[r] = true
				next = append(next, r)
			}
		}
		for _, n := range next {
			for _, i := range byChild[n.Child] {
				consumed[i] = true
			}
		}
		frontier = next
	}

	return dedupe(waves)
}

func dedupe(waves [][]ResolvedEdge) []ResolvedEdge {
	seen := map[ResolvedEdge]bool{}
	var rv []ResolvedEdge
	for _, w := range waves {
		for _, e := range w {
			if seen[e] {
				continue
			}
			seen[e] = true
			rv = append(rv, e)
		}
	}
	return rv
}

// Ancestors groups resolved edges by child.
func Ancestors(resolved []ResolvedEdge) map[string][]string {
	rv := map[string][]string{}
	for _, e := range resolved {
		rv[e.Child] = append(rv[e.Child], e.Parent)
	}
	return rv
}
