package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/mustdo/internal/errors"
)

func TestFileSlot_WriteRead(t *testing.T) {
	fs := afero.NewMemMapFs()
	slot := NewFileSlot(fs, "/data/mustdo", "todos")

	if slot.Name() != "todos" {
		t.Errorf("Name() = %q, want todos", slot.Name())
	}
	if slot.Path() != filepath.Join("/data/mustdo", "todos.json") {
		t.Errorf("Path() = %q", slot.Path())
	}

	if err := slot.Write([]byte(`[{"text":"a"}]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := slot.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != `[{"text":"a"}]` {
		t.Errorf("Read() = %q", data)
	}

	// Whole-value replacement
	if err := slot.Write([]byte(`[]`)); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	data, _ = slot.Read()
	if string(data) != `[]` {
		t.Errorf("Read() after overwrite = %q, want []", data)
	}
}

func TestFileSlot_ReadEmpty(t *testing.T) {
	slot := NewFileSlot(afero.NewMemMapFs(), "/data", "todos")

	_, err := slot.Read()
	if !errors.Is(err, errors.ErrSlotEmpty) {
		t.Errorf("Read() on missing file = %v, want ErrSlotEmpty", err)
	}
}

func TestFileSlot_AtomicWrite(t *testing.T) {
	dir := t.TempDir()
	slot := NewFileSlot(afero.NewOsFs(), dir, "todos")

	if err := slot.Write([]byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, err := os.Stat(slot.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be removed after atomic rename")
	}
	if _, err := os.Stat(slot.Path()); err != nil {
		t.Errorf("slot file missing: %v", err)
	}
}

func TestFileSlot_WriteReadOnlyFs(t *testing.T) {
	slot := NewFileSlot(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data", "todos")
	if err := slot.Write([]byte(`[]`)); err == nil {
		t.Error("Write on a read-only filesystem should fail")
	}
}

func TestFileSlot_Clear(t *testing.T) {
	fs := afero.NewMemMapFs()
	slot := NewFileSlot(fs, "/data", "todos")

	if err := slot.Clear(); err != nil {
		t.Errorf("Clear() on empty slot = %v, want nil", err)
	}

	_ = slot.Write([]byte(`[]`))
	if err := slot.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := slot.Read(); !errors.Is(err, errors.ErrSlotEmpty) {
		t.Errorf("Read() after Clear = %v, want ErrSlotEmpty", err)
	}
}

func TestMemorySlot(t *testing.T) {
	slot := NewMemorySlot("todos")

	if _, err := slot.Read(); !errors.Is(err, errors.ErrSlotEmpty) {
		t.Errorf("Read() on new slot = %v, want ErrSlotEmpty", err)
	}

	payload := []byte(`[1]`)
	if err := slot.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	payload[1] = '2'

	data, err := slot.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != `[1]` {
		t.Errorf("Read() = %q, stored value should not alias caller bytes", data)
	}
	if slot.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", slot.Writes())
	}

	_ = slot.Clear()
	if _, err := slot.Read(); !errors.Is(err, errors.ErrSlotEmpty) {
		t.Error("Read() after Clear should report empty")
	}
}

var _ Slot = (*FileSlot)(nil)
var _ Slot = (*MemorySlot)(nil)
