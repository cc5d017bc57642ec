// Implements the WaitQueue, which holds the processes blocked on a busy station.
// Processes are enqueued when their acquire request cannot be granted.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of processes waiting to acquire a station.
// Ties between requests are broken by request order only; there is no priority.
type WaitQueue struct {
	queue []Process // FIFO queue of pending acquisition requests
}

// Enqueue adds a process to the back of the wait queue.
func (wq *WaitQueue) Enqueue(p Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	wq.queue = append(wq.queue, p)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() Process {
	if len(wq.queue) == 0 {
		return nil
	}
	next := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return next
}
