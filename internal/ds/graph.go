package ds

import (
	"slices"

	"github.com/edwingeng/deque"
)

// Graph keeps the edges between a node and the nodes it reads from
// (precedents) together with the reverse edges (dependents). The dependents
// are only ever updated through Replace so both maps stay the exact
// transpose of each other.
type Graph[K comparable] struct {
	cmp        func(K, K) int
	precedents map[K][]K
	dependents map[K]map[K]struct{}
}

func NewGraph[K comparable](cmp func(K, K) int) *Graph[K] {
	return &Graph[K]{
		cmp:        cmp,
		precedents: make(map[K][]K),
		dependents: make(map[K]map[K]struct{}),
	}
}

// Replace sets the precedents of node, dropping the edges it had before.
func (g *Graph[K]) Replace(node K, precedents []K) {
	for _, p := range g.precedents[node] {
		set := g.dependents[p]
		delete(set, node)
		if len(set) == 0 {
			delete(g.dependents, p)
		}
	}
	list := slices.Clone(precedents)
	slices.SortFunc(list, g.cmp)
	list = slices.Compact(list)
	if len(list) == 0 {
		delete(g.precedents, node)
		return
	}
	g.precedents[node] = list
	for _, p := range list {
		set, ok := g.dependents[p]
		if !ok {
			set = make(map[K]struct{})
			g.dependents[p] = set
		}
		set[node] = struct{}{}
	}
}

func (g *Graph[K]) Precedents(node K) []K {
	return slices.Clone(g.precedents[node])
}

func (g *Graph[K]) Dependents(node K) []K {
	set := g.dependents[node]
	list := make([]K, 0, len(set))
	for k := range set {
		list = append(list, k)
	}
	slices.SortFunc(list, g.cmp)
	return list
}

// Closure lists every node depending directly or transitively on node, in
// breadth first order. The node itself is not part of the result, even when
// it belongs to a cycle.
func (g *Graph[K]) Closure(node K) []K {
	list := g.Reachable([]K{node})
	return slices.DeleteFunc(list, func(k K) bool {
		return k == node
	})
}

// Reachable lists the given nodes and every node depending on them, in
// breadth first order.
func (g *Graph[K]) Reachable(starts []K) []K {
	var (
		list  []K
		seen  = make(map[K]struct{})
		queue = deque.NewDeque()
	)
	for _, s := range starts {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		queue.PushBack(s)
	}
	for queue.Len() != 0 {
		curr := queue.Front().(K)
		queue.PopFront()
		list = append(list, curr)
		for _, d := range g.Dependents(curr) {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			queue.PushBack(d)
		}
	}
	return list
}

// PostOrder walks the precedents of start depth first, following only the
// nodes accepted by follow, and returns them so that every node comes after
// its precedents. start is always the last element.
func (g *Graph[K]) PostOrder(start K, follow func(K) bool) []K {
	type frame struct {
		node K
		next []K
		pos  int
	}
	var (
		list  []K
		seen  = map[K]struct{}{start: {}}
		stack = []frame{{node: start, next: g.precedents[start]}}
	)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos < len(top.next) {
			n := top.next[top.pos]
			top.pos++
			if _, ok := seen[n]; ok || !follow(n) {
				continue
			}
			seen[n] = struct{}{}
			stack = append(stack, frame{node: n, next: g.precedents[n]})
			continue
		}
		list = append(list, top.node)
		stack = stack[:len(stack)-1]
	}
	return list
}

// BreakCycles finds the cycles among nodes and selects, in each of them, its
// lowest node. Selected nodes are removed and the search starts again until
// no cycle remains. The selected nodes are returned in ascending order.
func (g *Graph[K]) BreakCycles(nodes []K) []K {
	var (
		broken []K
		skip   = make(map[K]struct{})
	)
	for {
		var found bool
		for _, comp := range g.components(nodes, skip) {
			if !g.cyclic(comp, skip) {
				continue
			}
			low := slices.MinFunc(comp, g.cmp)
			skip[low] = struct{}{}
			broken = append(broken, low)
			found = true
		}
		if !found {
			break
		}
	}
	slices.SortFunc(broken, g.cmp)
	return broken
}

func (g *Graph[K]) cyclic(comp []K, skip map[K]struct{}) bool {
	if len(comp) > 1 {
		return true
	}
	n := comp[0]
	if _, ok := skip[n]; ok {
		return false
	}
	_, ok := slices.BinarySearchFunc(g.precedents[n], n, g.cmp)
	return ok
}

// components computes the strongly connected components of the sub graph
// made of nodes minus skip, with Tarjan's algorithm written iteratively.
func (g *Graph[K]) components(nodes []K, skip map[K]struct{}) [][]K {
	inset := make(map[K]struct{})
	for _, n := range nodes {
		if _, ok := skip[n]; !ok {
			inset[n] = struct{}{}
		}
	}
	edges := func(n K) []K {
		var list []K
		for _, p := range g.precedents[n] {
			if _, ok := inset[p]; ok {
				list = append(list, p)
			}
		}
		return list
	}
	type frame struct {
		node K
		next []K
		pos  int
	}
	var (
		comps   [][]K
		index   = make(map[K]int)
		low     = make(map[K]int)
		onStack = make(map[K]bool)
		stack   []K
		counter int
	)
	visit := func(n K) frame {
		index[n] = counter
		low[n] = counter
		counter++
		stack = append(stack, n)
		onStack[n] = true
		return frame{node: n, next: edges(n)}
	}
	roots := slices.Collect(func(yield func(K) bool) {
		for n := range inset {
			if !yield(n) {
				return
			}
		}
	})
	slices.SortFunc(roots, g.cmp)
	for _, root := range roots {
		if _, ok := index[root]; ok {
			continue
		}
		calls := []frame{visit(root)}
		for len(calls) > 0 {
			top := &calls[len(calls)-1]
			if top.pos < len(top.next) {
				w := top.next[top.pos]
				top.pos++
				if _, ok := index[w]; !ok {
					calls = append(calls, visit(w))
				} else if onStack[w] {
					low[top.node] = min(low[top.node], index[w])
				}
				continue
			}
			v := top.node
			calls = calls[:len(calls)-1]
			if len(calls) > 0 {
				p := calls[len(calls)-1].node
				low[p] = min(low[p], low[v])
			}
			if low[v] != index[v] {
				continue
			}
			var comp []K
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}
