package quora

import "github.com/marshallshelly/pebble-quora/pkg/models"

// ThreadEntry is a reply placed in its discussion tree.
type ThreadEntry struct {
	Reply models.Reply
	Depth int
}

// Thread orders replies depth first: every reply is followed by its answers,
// siblings keep their input order. Replies whose parent is not in the slice
// are treated as roots. Replies caught in a parent cycle are unreachable from
// any root; each such cycle is entered at its first reply in input order.
func Thread(replies []models.Reply) []ThreadEntry {
	present := make(map[int64]bool, len(replies))
	for _, r := range replies {
		present[r.ID] = true
	}

	children := make(map[int64][]models.Reply)
	var roots []models.Reply
	for _, r := range replies {
		if r.ParentID == nil || !present[*r.ParentID] || *r.ParentID == r.ID {
			roots = append(roots, r)
			continue
		}
		children[*r.ParentID] = append(children[*r.ParentID], r)
	}

	out := make([]ThreadEntry, 0, len(replies))
	visited := make(map[int64]bool, len(replies))
	var walk func(r models.Reply, depth int)
	walk = func(r models.Reply, depth int) {
		if visited[r.ID] {
			return
		}
		visited[r.ID] = true
		out = append(out, ThreadEntry{Reply: r, Depth: depth})
		for _, c := range children[r.ID] {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	for _, r := range replies {
		walk(r, 0)
	}
	return out
}
