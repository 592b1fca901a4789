package todo

// Task is one to-do entry.
type Task struct {
	// ID is assigned at creation and never changes.
	ID string
	// Text is the task's content. It is not unique.
	Text     string
	DueDate  DueDate
	Priority Priority
	// CreatedAt is a strictly increasing creation stamp in Unix milliseconds.
	// It is a stable rendering key and plays no part in ordering.
	CreatedAt int64
}
