package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// record is the stored form of a Task.
type record struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	DueDate   *string `json:"dueDate,omitempty"`
	Priority  string  `json:"priority"`
	CreatedAt int64   `json:"createdAt"`
}

// storedRecord accepts both the current record layout and the layout
// written by older versions of the app (todoText, numeric id).
type storedRecord struct {
	ID        json.RawMessage `json:"id"`
	Text      *string         `json:"text"`
	TodoText  *string         `json:"todoText"`
	DueDate   *string         `json:"dueDate"`
	Priority  string          `json:"priority"`
	CreatedAt int64           `json:"createdAt"`
}

// EncodeCollection serializes tasks as a JSON array of records. Absent due
// dates are omitted.
func EncodeCollection(tasks []Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		r := record{
			ID:        t.ID,
			Text:      t.Text,
			Priority:  string(t.Priority),
			CreatedAt: t.CreatedAt,
		}
		if t.DueDate.IsSet() {
			due := t.DueDate.String()
			r.DueDate = &due
		}
		records = append(records, r)
	}
	return json.MarshalIndent(records, "", "  ")
}

// DecodeCollection parses a stored collection. Legacy records are accepted:
// todoText is read as text, a numeric id becomes CreatedAt, and the
// NaN-NaN-NaN marker or an empty string is an Absent due date. Tasks decoded
// from legacy records have an empty ID; the Store assigns one on load.
//
// A record with an unknown priority, an unparseable due date or no text makes
// the whole payload malformed. A JSON null decodes to an empty collection.
func DecodeCollection(data []byte) ([]Task, error) {
	var raw []storedRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}

	tasks := make([]Task, 0, len(raw))
	for i, r := range raw {
		t, err := r.task()
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r storedRecord) task() (Task, error) {
	var t Task

	switch {
	case r.Text != nil:
		t.Text = *r.Text
	case r.TodoText != nil:
		t.Text = *r.TodoText
	default:
		return Task{}, fmt.Errorf("record has no text")
	}

	t.Priority = DefaultPriority
	if r.Priority != "" {
		t.Priority = Priority(r.Priority)
		if !t.Priority.Valid() {
			return Task{}, invalidPriority(r.Priority)
		}
	}

	if r.DueDate != nil {
		due, err := ParseDueDate(*r.DueDate)
		if err != nil {
			return Task{}, err
		}
		t.DueDate = due
	}

	t.CreatedAt = r.CreatedAt

	id := bytes.TrimSpace(r.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
	case id[0] == '"':
		if err := json.Unmarshal(id, &t.ID); err != nil {
			return Task{}, fmt.Errorf("record id: %w", err)
		}
	default:
		legacy, err := strconv.ParseFloat(string(id), 64)
		if err != nil {
			return Task{}, fmt.Errorf("record id: %w", err)
		}
		if t.CreatedAt == 0 {
			t.CreatedAt = int64(legacy)
		}
	}

	return t, nil
}
