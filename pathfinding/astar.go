package pathfinding

import (
	"container/heap"
	"fmt"

	"isoedit/geometry"
)

// AStarNode represents a state in the A* search.
type AStarNode struct {
	Tile      geometry.Coords
	GCost     int // Cost from start
	HCost     int // Heuristic cost to goal
	FCost     int // GCost + HCost
	Parent    *AStarNode
	Direction Direction // Direction we entered this node from
	Index     int       // Index in the heap
}

// NodeQueue is a priority queue for A* nodes.
type NodeQueue []*AStarNode

func (nq NodeQueue) Len() int { return len(nq) }

func (nq NodeQueue) Less(i, j int) bool {
	if nq[i].FCost != nq[j].FCost {
		return nq[i].FCost < nq[j].FCost
	}
	// Prefer nodes closer to the goal, then a fixed position order so
	// equal cost walks are deterministic.
	if nq[i].HCost != nq[j].HCost {
		return nq[i].HCost < nq[j].HCost
	}
	a, b := nq[i].Tile, nq[j].Tile
	if a.X+a.Y != b.X+b.Y {
		return a.X+a.Y < b.X+b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func (nq NodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].Index = i
	nq[j].Index = j
}

func (nq *NodeQueue) Push(x interface{}) {
	node := x.(*AStarNode)
	node.Index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *NodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*nq = old[:n-1]
	return node
}

// AStarPathFinder finds least-cost 4-connected walks between two tiles
// inside a bounding rectangle.
type AStarPathFinder struct {
	costs    PathCost
	maxNodes int // Maximum nodes to explore (safety limit)
}

// NewAStarPathFinder creates a new A* path finder with the given cost model.
func NewAStarPathFinder(costs PathCost) *AStarPathFinder {
	return &AStarPathFinder{
		costs:    costs,
		maxNodes: 50000,
	}
}

// SetMaxNodes sets the maximum number of nodes to explore.
func (a *AStarPathFinder) SetMaxNodes(max int) {
	a.maxNodes = max
}

// nodeKey is a search state. Turn costs depend on the direction a tile was
// entered from, so the same tile entered two ways is two states.
type nodeKey struct {
	tile geometry.Coords
	dir  Direction
}

// FindPath returns the tiles from start to end, both included. Tiles
// outside bounds are never visited.
func (a *AStarPathFinder) FindPath(start, end geometry.Coords, bounds geometry.Rect) ([]geometry.Coords, error) {
	if start == end {
		return []geometry.Coords{start}, nil
	}
	if !bounds.Contains(start) || !bounds.Contains(end) {
		return nil, fmt.Errorf("walk from %v to %v leaves bounds %v", start, end, bounds)
	}

	openSet := &NodeQueue{}
	heap.Init(openSet)
	closedSet := make(map[nodeKey]bool)
	nodeMap := make(map[nodeKey]*AStarNode)

	startNode := &AStarNode{
		Tile:      start,
		HCost:     a.heuristic(start, end, DirNone),
		Direction: DirNone,
	}
	startNode.FCost = startNode.HCost
	heap.Push(openSet, startNode)
	nodeMap[nodeKey{start, DirNone}] = startNode

	explored := 0
	for openSet.Len() > 0 {
		explored++
		if explored > a.maxNodes {
			return nil, fmt.Errorf("pathfinding exceeded node limit")
		}

		current := heap.Pop(openSet).(*AStarNode)
		if current.Tile == end {
			return a.reconstructPath(current), nil
		}
		closedSet[nodeKey{current.Tile, current.Direction}] = true

		for _, neighbor := range neighborsTowards(current.Tile, end) {
			if !bounds.Contains(neighbor) {
				continue
			}
			dir := GetDirection(current.Tile, neighbor)
			key := nodeKey{neighbor, dir}
			if closedSet[key] {
				continue
			}
			tentativeGCost := a.calculateGCost(current, dir)

			existing, seen := nodeMap[key]
			if !seen {
				node := &AStarNode{
					Tile:      neighbor,
					GCost:     tentativeGCost,
					HCost:     a.heuristic(neighbor, end, dir),
					Parent:    current,
					Direction: dir,
				}
				node.FCost = node.GCost + node.HCost
				heap.Push(openSet, node)
				nodeMap[key] = node
			} else if tentativeGCost < existing.GCost {
				existing.GCost = tentativeGCost
				existing.FCost = existing.GCost + existing.HCost
				existing.Parent = current
				heap.Fix(openSet, existing.Index)
			}
		}
	}

	return nil, fmt.Errorf("no path found from %v to %v", start, end)
}

// heuristic is the Manhattan distance plus the one turn the walk still has
// to make when the goal is not straight ahead.
func (a *AStarPathFinder) heuristic(current, goal geometry.Coords, dir Direction) int {
	dx := goal.X - current.X
	dy := goal.Y - current.Y
	h := (geometry.Abs(dx) + geometry.Abs(dy)) * a.costs.StraightCost
	switch {
	case dx != 0 && dy != 0:
		h += a.costs.TurnCost
	case dir == DirNone, dx == 0 && dy == 0:
	case dir != GetDirection(current, goal):
		h += a.costs.TurnCost
	}
	return h
}

// calculateGCost calculates the cost to move from current in direction dir.
func (a *AStarPathFinder) calculateGCost(current *AStarNode, dir Direction) int {
	cost := a.costs.StraightCost
	if current.Direction != DirNone && current.Direction != dir {
		cost += a.costs.TurnCost
	}
	return current.GCost + cost
}

// reconstructPath builds the final tile list from the goal node.
func (a *AStarPathFinder) reconstructPath(goal *AStarNode) []geometry.Coords {
	var reversed []geometry.Coords
	for n := goal; n != nil; n = n.Parent {
		reversed = append(reversed, n.Tile)
	}
	tiles := make([]geometry.Coords, len(reversed))
	for i, t := range reversed {
		tiles[len(reversed)-1-i] = t
	}
	return tiles
}
