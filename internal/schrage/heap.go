package schrage

import (
	"container/heap"

	"rpq/internal/rpq"
)

// entry — задание с порядковым номером: seq задаёт разрешение равенств
// так же, как в линейном варианте.
type entry struct {
	job rpq.Job
	seq int
}

// releaseHeap — min-куча по (r, позиция во входе).
type releaseHeap []entry

func (h releaseHeap) Len() int { return len(h) }
func (h releaseHeap) Less(i, j int) bool {
	if h[i].job.Release != h[j].job.Release {
		return h[i].job.Release < h[j].job.Release
	}
	return h[i].seq < h[j].seq
}
func (h releaseHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *releaseHeap) Push(x any)   { *h = append(*h, x.(entry)) }
func (h *releaseHeap) Pop() any {
	old := *h
	e := old[len(old)-1]
	*h = old[:len(old)-1]
	return e
}

// readyHeap — max-куча по q; при равных q раньше выходит задание,
// попавшее в G первым.
type readyHeap []entry

func (h readyHeap) Len() int { return len(h) }
func (h readyHeap) Less(i, j int) bool {
	if h[i].job.Delivery != h[j].job.Delivery {
		return h[i].job.Delivery > h[j].job.Delivery
	}
	return h[i].seq < h[j].seq
}
func (h readyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *readyHeap) Push(x any)   { *h = append(*h, x.(entry)) }
func (h *readyHeap) Pop() any {
	old := *h
	e := old[len(old)-1]
	*h = old[:len(old)-1]
	return e
}

// Heap — вариант на кучах: O(log n) на вставку и извлечение в обоих множествах.
// Порядок и Cmax совпадают с List для любых входных данных.
func Heap(jobs []rpq.Job) ([]rpq.Job, int) {
	n := make(releaseHeap, len(jobs))
	for i, j := range jobs {
		n[i] = entry{job: j, seq: i}
	}
	heap.Init(&n)

	g := make(readyHeap, 0, len(jobs))
	order := make([]rpq.Job, 0, len(jobs))
	arrived := 0

	currentTime := 0
	cmax := 0

	for g.Len() > 0 || n.Len() > 0 {
		for n.Len() > 0 && n[0].job.Release <= currentTime {
			e := heap.Pop(&n).(entry)
			heap.Push(&g, entry{job: e.job, seq: arrived})
			arrived++
		}

		if g.Len() == 0 {
			currentTime = n[0].job.Release
			continue
		}

		job := heap.Pop(&g).(entry).job
		currentTime += job.Processing
		if currentTime+job.Delivery > cmax {
			cmax = currentTime + job.Delivery
		}
		order = append(order, job)
	}

	return order, cmax
}
