// Package todo implements the Task Store: the authoritative in-memory
// collection of tasks, its mutation operations, the derived sort and search
// views, and the policy that keeps a storage slot in sync with it.
//
// The collection is always ordered by priority (High, then Medium, then Low)
// using a stable sort, so tasks of equal priority keep their insertion order.
// Every mutation replaces the collection, re-sorts it and writes the whole
// collection to the slot. The slot is read once, when the store is opened.
//
//	store := todo.Open(storage.NewFileSlot(afero.NewOsFs(), dir, "todos"))
//	if _, err := store.Add("Pay rent", todo.DueDate{}, todo.High); err != nil {
//	    return err
//	}
//	for _, t := range store.AllSorted() {
//	    fmt.Println(t.Priority, t.Text)
//	}
//
// # Lookup by text
//
// Edit, Delete and SetPriority select tasks by their text and affect every
// task with equal text. SetDueDate selects tasks by their current due date.
// These are best-effort conveniences kept for compatibility; each task also
// has an opaque ID assigned at creation, and the *ByID operations address
// exactly one task.
//
// Operations that match nothing are no-ops, not errors.
package todo
