package automation

type NodeList []*Node

// Contains returns the index of n in the list, or -1.
func (h *NodeList) Contains(n *Node) int {
	for i := range *h {
		if n == (*h)[i] {
			return i
		}
	}
	return -1
}

func (h *NodeList) Remove(i int) *Node {
	if i < 0 {
		return nil
	}
	if i >= len(*h) {
		return nil
	}
	node := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return node
}

// InsertAt puts n at index i, shifting the rest right.
func (h *NodeList) InsertAt(i int, n *Node) {
	if i < 0 {
		return
	}
	if i >= len(*h) {
		*h = append(*h, n)
		return
	}
	*h = append((*h)[:i+1], (*h)[i:]...)
	(*h)[i] = n
}

func (h NodeList) Last() *Node {
	if len(h) == 0 {
		return nil
	}
	return h[len(h)-1]
}

func reversed(h NodeList) NodeList {
	out := make(NodeList, len(h))
	for i, n := range h {
		out[len(h)-1-i] = n
	}
	return out
}
