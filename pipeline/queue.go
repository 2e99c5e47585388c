package pipeline

// Task is one unit of pipeline work, bound to a single record.
type Task func()

// Queue holds the per-record tasks of a run and executes them strictly in
// submission order, one at a time.
type Queue struct {
	tasks []Task
}

// NewQueue returns a queue sized for n tasks.
func NewQueue(n int) *Queue {
	return &Queue{tasks: make([]Task, 0, n)}
}

// Submit appends a task.
func (q *Queue) Submit(task Task) {
	q.tasks = append(q.tasks, task)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Drain runs every submitted task in order and empties the queue.
func (q *Queue) Drain() {
	for _, task := range q.tasks {
		task()
	}
	q.tasks = q.tasks[:0]
}
