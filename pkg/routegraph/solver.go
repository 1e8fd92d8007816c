package routegraph

import (
	"errors"

	"github.com/boykefeng/sloperoute/pkg"
	"github.com/boykefeng/sloperoute/pkg/util"
)

const infWeight = pkg.INF_WEIGHT

// ErrNoRoute reports that source and destination both exist in the filtered
// graph but no directed path connects them.
var ErrNoRoute = errors.New("no directed path between source and destination in the filtered graph")

// ResolvedPath is the output of the path solver: the node sequence from
// source to destination, the length-minimal edge chosen for every hop, and
// the total length summed over those edges.
type ResolvedPath struct {
	Nodes []NodeID
	Edges []Edge

	// TotalLength in meters, sum of the chosen edge lengths. Not recomputed
	// from geometry.
	TotalLength float64
}

// ShortestPath runs a bidirectional dijkstra between source and destination,
// minimizing total edge length. The forward search relaxes out-edges from
// source, the backward search relaxes in-edges from destination; both stop
// once neither frontier can improve the best meeting cost.
func ShortestPath(g *RouteGraph, source, destination NodeID) (*ResolvedPath, error) {
	bs := newBidirectionalSearch(g)
	return bs.run(source, destination)
}

type bidirectionalSearch struct {
	g *RouteGraph

	forwardDist  []float64
	backwardDist []float64
	// forwardParent[v] is the predecessor of v on the forward tree,
	// backwardParent[v] the successor of v toward the destination.
	forwardParent  []NodeID
	backwardParent []NodeID
	forwardDone    []bool
	backwardDone   []bool

	forwardPq  *minHeap[NodeID]
	backwardPq *minHeap[NodeID]

	bestCost float64
	meetNode NodeID
}

func newBidirectionalSearch(g *RouteGraph) *bidirectionalSearch {
	n := g.NumberOfNodes()
	bs := &bidirectionalSearch{
		g:              g,
		forwardDist:    make([]float64, n),
		backwardDist:   make([]float64, n),
		forwardParent:  make([]NodeID, n),
		backwardParent: make([]NodeID, n),
		forwardDone:    make([]bool, n),
		backwardDone:   make([]bool, n),
		forwardPq:      newFourAryHeap[NodeID](),
		backwardPq:     newFourAryHeap[NodeID](),
		bestCost:       infWeight,
		meetNode:       INVALID_NODE_ID,
	}
	for i := 0; i < n; i++ {
		bs.forwardDist[i] = infWeight
		bs.backwardDist[i] = infWeight
		bs.forwardParent[i] = INVALID_NODE_ID
		bs.backwardParent[i] = INVALID_NODE_ID
	}
	return bs
}

func (bs *bidirectionalSearch) run(source, destination NodeID) (*ResolvedPath, error) {
	if source == destination {
		return &ResolvedPath{Nodes: []NodeID{source}}, nil
	}

	forwardHeapNodes := make([]*priorityQueueNode[NodeID], bs.g.NumberOfNodes())
	backwardHeapNodes := make([]*priorityQueueNode[NodeID], bs.g.NumberOfNodes())

	bs.forwardDist[source] = 0
	sNode := newPriorityQueueNode(0, source)
	forwardHeapNodes[source] = sNode
	bs.forwardPq.insert(sNode)

	bs.backwardDist[destination] = 0
	tNode := newPriorityQueueNode(0, destination)
	backwardHeapNodes[destination] = tNode
	bs.backwardPq.insert(tNode)

	// keep settling whichever frontier is cheaper until neither can still
	// beat the best meeting cost. with bestCost at infinity this degenerates
	// to two full dijkstras, which is the correct reachability check.
	for {
		fTop := bs.forwardPq.getMinRank()
		bTop := bs.backwardPq.getMinRank()
		if fTop >= bs.bestCost && bTop >= bs.bestCost {
			break
		}

		if fTop <= bTop {
			bs.settleForward(forwardHeapNodes)
		} else {
			bs.settleBackward(backwardHeapNodes)
		}
	}

	if bs.meetNode == INVALID_NODE_ID {
		return nil, ErrNoRoute
	}

	return bs.reconstruct(source, destination)
}

func (bs *bidirectionalSearch) settleForward(heapNodes []*priorityQueueNode[NodeID]) {
	node, err := bs.forwardPq.extractMin()
	if err != nil {
		return
	}
	u := node.GetItem()
	bs.forwardDone[u] = true

	if bs.backwardDone[u] && bs.forwardDist[u]+bs.backwardDist[u] < bs.bestCost {
		bs.bestCost = bs.forwardDist[u] + bs.backwardDist[u]
		bs.meetNode = u
	}

	bs.g.ForOutEdgesOf(u, func(e Edge) {
		v := e.GetTo()
		newDist := bs.forwardDist[u] + e.GetLength()
		if newDist >= bs.forwardDist[v] {
			return
		}

		bs.forwardDist[v] = newDist
		bs.forwardParent[v] = u
		if heapNodes[v] != nil && heapNodes[v].itemPos >= 0 {
			bs.forwardPq.decreaseKey(heapNodes[v], newDist)
		} else {
			heapNodes[v] = newPriorityQueueNode(newDist, v)
			bs.forwardPq.insert(heapNodes[v])
		}
	})
}

func (bs *bidirectionalSearch) settleBackward(heapNodes []*priorityQueueNode[NodeID]) {
	node, err := bs.backwardPq.extractMin()
	if err != nil {
		return
	}
	u := node.GetItem()
	bs.backwardDone[u] = true

	if bs.forwardDone[u] && bs.forwardDist[u]+bs.backwardDist[u] < bs.bestCost {
		bs.bestCost = bs.forwardDist[u] + bs.backwardDist[u]
		bs.meetNode = u
	}

	bs.g.ForInEdgesOf(u, func(e Edge) {
		v := e.GetFrom()
		newDist := bs.backwardDist[u] + e.GetLength()
		if newDist >= bs.backwardDist[v] {
			return
		}

		bs.backwardDist[v] = newDist
		bs.backwardParent[v] = u
		if heapNodes[v] != nil && heapNodes[v].itemPos >= 0 {
			bs.backwardPq.decreaseKey(heapNodes[v], newDist)
		} else {
			heapNodes[v] = newPriorityQueueNode(newDist, v)
			bs.backwardPq.insert(heapNodes[v])
		}
	})
}

// reconstruct walks the forward tree from the meeting node back to the
// source, the backward tree down to the destination, then re-selects the
// length-minimal edge for each hop.
func (bs *bidirectionalSearch) reconstruct(source, destination NodeID) (*ResolvedPath, error) {
	toSource := []NodeID{bs.meetNode}
	for cur := bs.meetNode; cur != source; {
		cur = bs.forwardParent[cur]
		toSource = append(toSource, cur)
	}
	nodes := util.ReverseG(toSource)

	for cur := bs.meetNode; cur != destination; {
		cur = bs.backwardParent[cur]
		nodes = append(nodes, cur)
	}

	path := &ResolvedPath{
		Nodes: nodes,
		Edges: make([]Edge, 0, len(nodes)-1),
	}
	for i := 0; i+1 < len(nodes); i++ {
		e, ok := bs.g.MinLengthEdge(nodes[i], nodes[i+1])
		if !ok {
			return nil, ErrNoRoute
		}
		path.Edges = append(path.Edges, e)
		path.TotalLength += e.GetLength()
	}
	return path, nil
}
