package todo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/mustdo/internal/errors"
)

func TestEncodeCollection(t *testing.T) {
	tasks := []Task{
		{ID: "a", Text: "Pay rent", Priority: High, CreatedAt: 10},
		{ID: "b", Text: "Buy milk", Priority: Low, DueDate: NewDueDate(2030, time.January, 1), CreatedAt: 11},
	}

	data, err := EncodeCollection(tasks)
	if err != nil {
		t.Fatalf("EncodeCollection: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d records, want 2", len(decoded))
	}
	if _, ok := decoded[0]["dueDate"]; ok {
		t.Error("absent due date should be omitted")
	}
	if decoded[1]["dueDate"] != "01-01-2030" {
		t.Errorf("dueDate = %v, want 01-01-2030", decoded[1]["dueDate"])
	}
	if decoded[0]["text"] != "Pay rent" || decoded[0]["priority"] != "High" || decoded[0]["id"] != "a" {
		t.Errorf("record = %v", decoded[0])
	}
}

func TestEncodeCollection_Empty(t *testing.T) {
	for _, tasks := range [][]Task{nil, {}} {
		data, err := EncodeCollection(tasks)
		if err != nil {
			t.Fatalf("EncodeCollection: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("EncodeCollection(%v) = %s, want []", tasks, data)
		}
	}
}

func TestDecodeCollection(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []Task
		wantErr error
	}{
		{
			name: "current layout",
			data: `[{"id":"x","text":"Pay rent","dueDate":"05-06-2030","priority":"High","createdAt":42}]`,
			want: []Task{{ID: "x", Text: "Pay rent", DueDate: NewDueDate(2030, time.June, 5), Priority: High, CreatedAt: 42}},
		},
		{
			name: "legacy layout",
			data: `[{"id":1700000000000,"todoText":"Buy milk","dueDate":"NaN-NaN-NaN","priority":"Low"}]`,
			want: []Task{{Text: "Buy milk", Priority: Low, CreatedAt: 1700000000000}},
		},
		{
			name: "missing priority defaults to medium",
			data: `[{"text":"Call mom"}]`,
			want: []Task{{Text: "Call mom", Priority: Medium}},
		},
		{
			name: "numeric id does not override createdAt",
			data: `[{"id":5,"text":"a","createdAt":9}]`,
			want: []Task{{Text: "a", Priority: Medium, CreatedAt: 9}},
		},
		{
			name: "null",
			data: `null`,
			want: []Task{},
		},
		{
			name: "empty array",
			data: `[]`,
			want: []Task{},
		},
		{
			name:    "invalid priority",
			data:    `[{"text":"a","priority":"Urgent"}]`,
			wantErr: errors.ErrInvalidPriority,
		},
		{
			name:    "invalid due date",
			data:    `[{"text":"a","dueDate":"tomorrow"}]`,
			wantErr: errors.ErrInvalidDueDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCollection([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeCollection: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				g, w := got[i], tt.want[i]
				if g.ID != w.ID || g.Text != w.Text || g.Priority != w.Priority ||
					g.CreatedAt != w.CreatedAt || !g.DueDate.Equal(w.DueDate) {
					t.Errorf("task %d = %+v, want %+v", i, g, w)
				}
			}
		})
	}
}

func TestDecodeCollection_Malformed(t *testing.T) {
	inputs := []string{
		``,
		`{`,
		`{"text":"a"}`,
		`[{"priority":"High"}]`,
		`[{"id":true,"text":"a"}]`,
	}
	for _, in := range inputs {
		if _, err := DecodeCollection([]byte(in)); err == nil {
			t.Errorf("DecodeCollection(%q) succeeded, want error", in)
		}
	}
}

func TestEncodeDecode_PreservesOrder(t *testing.T) {
	var tasks []Task
	for i, text := range strings.Fields("one two three four") {
		tasks = append(tasks, Task{ID: text, Text: text, Priority: Low, CreatedAt: int64(i + 1)})
	}

	data, err := EncodeCollection(tasks)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeCollection(data)
	if err != nil {
		t.Fatal(err)
	}
	assertTexts(t, got, "one", "two", "three", "four")
}
