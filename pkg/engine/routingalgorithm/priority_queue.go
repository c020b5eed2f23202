package routingalgorithm

import "campusnav/indoornav/pkg/datastructure"

// pathLink node sudah dilewati, linked ke node sebelumnya. path so far tanpa copy slice tiap push.
type pathLink struct {
	node datastructure.Node
	prev *pathLink
}

type dijkstraEntry struct {
	link  *pathLink
	cost  float64 // preference weighted, queue order
	dist  float64 // physical distance
	seq   uint64
	index int
}

// priorityQueueDijkstra min-heap by cost, equal cost keeps insertion order (fifo).
type priorityQueueDijkstra []*dijkstraEntry

func (pq priorityQueueDijkstra) Len() int {
	return len(pq)
}

func (pq priorityQueueDijkstra) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueueDijkstra) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueueDijkstra) Push(x interface{}) {
	n := len(*pq)
	no := x.(*dijkstraEntry)
	no.index = n
	*pq = append(*pq, no)
}

func (pq *priorityQueueDijkstra) Pop() interface{} {
	old := *pq
	n := len(old)
	no := old[n-1]
	old[n-1] = nil
	no.index = -1
	*pq = old[0 : n-1]
	return no
}
