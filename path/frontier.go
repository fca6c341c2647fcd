package path

import "container/heap"

// frontierEntry is a snapshot of a node's scores at push time. Entries go
// stale when the node is relaxed again; stale entries are skipped on pop
// because the node is settled by then.
type frontierEntry struct {
	node int32
	f    int
	h    int
}

// frontier is a min-heap ordered by f, then by h.
type frontier []frontierEntry

func (p frontier) Len() int { return len(p) }

func (p frontier) Less(i, j int) bool {
	if p[i].f != p[j].f {
		return p[i].f < p[j].f
	}
	return p[i].h < p[j].h
}

func (p frontier) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p *frontier) Push(x any) { *p = append(*p, x.(frontierEntry)) }

func (p *frontier) Pop() any {
	old := *p
	n := len(old)
	e := old[n-1]
	*p = old[:n-1]
	return e
}

func (p *frontier) push(e frontierEntry) { heap.Push(p, e) }

func (p *frontier) pop() frontierEntry { return heap.Pop(p).(frontierEntry) }
