package ui

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lhhunghimself/taskman/internal/task"
)

func newTestStore(t *testing.T) *task.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return task.NewStore(path, task.WithLogger(log.New(io.Discard)))
}

func seedTasks(t *testing.T, store *task.Store, tasks ...task.Task) {
	t.Helper()
	if err := store.Save(&task.List{Tasks: tasks}); err != nil {
		t.Fatal(err)
	}
}

// runSession drives a scripted menu session and returns its output.
func runSession(t *testing.T, store *task.Store, input string, opts ...MenuOption) string {
	t.Helper()
	var out bytes.Buffer
	opts = append([]MenuOption{WithInput(strings.NewReader(input)), WithOutput(&out)}, opts...)
	menu := NewMenu(store, opts...)
	if err := menu.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestMenuExit(t *testing.T) {
	out := runSession(t, newTestStore(t), "5\n")

	want := "\n--- Task Manager ---\n" +
		"1. Add Task\n" +
		"2. View Tasks\n" +
		"3. Mark Task Complete\n" +
		"4. Delete Task\n" +
		"5. Exit\n\n" +
		"Enter choice (1-5): Goodbye!\n"
	if out != want {
		t.Errorf("session output:\ngot  %q\nwant %q", out, want)
	}
}

func TestMenuEndOfInput(t *testing.T) {
	out := runSession(t, newTestStore(t), "")

	if strings.Contains(out, "Goodbye!") {
		t.Errorf("end of input must quit without the exit message, got: %q", out)
	}
	if !strings.HasSuffix(out, "Enter choice (1-5): ") {
		t.Errorf("output should end at the prompt, got: %q", out)
	}
}

func TestMenuInvalidChoice(t *testing.T) {
	out := runSession(t, newTestStore(t), "9\n5\n")

	if !strings.Contains(out, "Invalid choice. Please enter 1-5.") {
		t.Errorf("missing invalid choice message: %q", out)
	}
}

func TestMenuAddTask(t *testing.T) {
	store := newTestStore(t)
	out := runSession(t, store, "1\nwrite tests\n5\n")

	if !strings.Contains(out, "Task added: 'write tests'") {
		t.Errorf("missing confirmation: %q", out)
	}

	list := store.Load()
	if list.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", list.Len())
	}
	got := list.Tasks[0]
	if got.ID != 1 || got.Title != "write tests" || got.Completed {
		t.Errorf("task: got %+v", got)
	}
}

func TestMenuAddEmptyTitleRetries(t *testing.T) {
	store := newTestStore(t)
	out := runSession(t, store, "1\n\n  \nreal task\n5\n")

	if n := strings.Count(out, "Task title cannot be empty. Please try again."); n != 2 {
		t.Errorf("empty-title message count: got %d, want 2\noutput: %q", n, out)
	}
	if !strings.Contains(out, "Task added: 'real task'") {
		t.Errorf("missing confirmation: %q", out)
	}
	if store.Load().Len() != 1 {
		t.Errorf("exactly one task should be saved")
	}
}

func TestMenuAddCancel(t *testing.T) {
	store := newTestStore(t)
	out := runSession(t, store, "1\nq\n5\n")

	if strings.Contains(out, "Task added") {
		t.Errorf("cancelled add must not confirm: %q", out)
	}
	if store.Load().Len() != 0 {
		t.Errorf("cancelled add must not save")
	}
}

func TestMenuViewEmpty(t *testing.T) {
	out := runSession(t, newTestStore(t), "2\n5\n")

	if !strings.Contains(out, "\nNo tasks yet!\n") {
		t.Errorf("missing empty message: %q", out)
	}
}

func TestMenuViewTasks(t *testing.T) {
	store := newTestStore(t)
	seedTasks(t, store,
		task.Task{ID: 1, Title: "done task", Completed: true},
		task.Task{ID: 2, Title: "open task", Completed: false},
	)

	out := runSession(t, store, "2\n5\n")

	if !strings.Contains(out, "Tasks (1 of 2 completed):") {
		t.Errorf("missing summary header: %q", out)
	}
	if !strings.Contains(out, "1. [x] done task\n2. [ ] open task\n") {
		t.Errorf("missing checkbox rows: %q", out)
	}
}

func TestMenuMarkComplete(t *testing.T) {
	store := newTestStore(t)
	seedTasks(t, store,
		task.Task{ID: 1, Title: "done task", Completed: true},
		task.Task{ID: 2, Title: "open task", Completed: false},
	)

	out := runSession(t, store, "3\n2\n5\n")

	if !strings.Contains(out, "Task marked complete: 'open task'") {
		t.Errorf("missing confirmation: %q", out)
	}
	list := store.Load()
	if !list.Tasks[1].Completed {
		t.Errorf("completion not persisted: %+v", list.Tasks)
	}
}

func TestMenuMarkCompleteValidation(t *testing.T) {
	store := newTestStore(t)
	seedTasks(t, store, task.Task{ID: 1, Title: "only task"})

	out := runSession(t, store, "3\nabc\n9\n1\n5\n")

	if !strings.Contains(out, "Invalid input. Please enter a number or 'q'.") {
		t.Errorf("missing non-numeric message: %q", out)
	}
	if !strings.Contains(out, "Invalid task number. Please enter 1-1.") {
		t.Errorf("missing out-of-range message: %q", out)
	}
	if !store.Load().Tasks[0].Completed {
		t.Errorf("valid retry should complete the task")
	}
}

func TestMenuMarkCompleteEmpty(t *testing.T) {
	out := runSession(t, newTestStore(t), "3\n5\n")

	if !strings.Contains(out, "No tasks to complete.") {
		t.Errorf("missing empty message: %q", out)
	}
}

func TestMenuDeleteConfirmed(t *testing.T) {
	store := newTestStore(t)
	seedTasks(t, store,
		task.Task{ID: 1, Title: "first"},
		task.Task{ID: 2, Title: "second"},
	)

	out := runSession(t, store, "4\n1\ny\n5\n")

	if !strings.Contains(out, "Delete 'first'? (y/N): ") {
		t.Errorf("missing confirmation prompt: %q", out)
	}
	if !strings.Contains(out, "Task deleted.") {
		t.Errorf("missing deletion message: %q", out)
	}
	list := store.Load()
	if list.Len() != 1 || list.Tasks[0].ID != 2 {
		t.Errorf("persisted tasks: got %+v", list.Tasks)
	}
}

func TestMenuDeleteDeclined(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{"n", "n\n"},
		{"empty default", "\n"},
		{"yes is not y", "yes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			seedTasks(t, store, task.Task{ID: 1, Title: "keep me"})

			out := runSession(t, store, "4\n1\n"+tt.answer+"5\n")

			if !strings.Contains(out, "Deletion cancelled.") {
				t.Errorf("missing cancel message: %q", out)
			}
			if store.Load().Len() != 1 {
				t.Errorf("declined delete must keep the task")
			}
		})
	}
}

func TestMenuDeleteWithoutConfirmation(t *testing.T) {
	store := newTestStore(t)
	seedTasks(t, store, task.Task{ID: 1, Title: "gone"})

	out := runSession(t, store, "4\n1\n5\n", WithConfirmDelete(false))

	if strings.Contains(out, "(y/N)") {
		t.Errorf("confirmation prompt should be skipped: %q", out)
	}
	if !strings.Contains(out, "Task deleted.") {
		t.Errorf("missing deletion message: %q", out)
	}
	if store.Load().Len() != 0 {
		t.Errorf("task should be deleted")
	}
}

func TestMenuDeleteEmpty(t *testing.T) {
	out := runSession(t, newTestStore(t), "4\n5\n")

	if !strings.Contains(out, "No tasks to delete.") {
		t.Errorf("missing empty message: %q", out)
	}
}

func TestMenuSaveErrorKeepsSession(t *testing.T) {
	// A directory at the tasks path makes every save fail.
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}
	store := task.NewStore(path, task.WithLogger(log.New(io.Discard)))

	out := runSession(t, store, "1\nunsaved\n2\n5\n")

	if !strings.Contains(out, "Error saving tasks: ") {
		t.Errorf("missing save error: %q", out)
	}
	// The in-memory list keeps working for the rest of the session.
	if !strings.Contains(out, "1. [ ] unsaved") {
		t.Errorf("list should still show the task: %q", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("session should continue to a clean exit: %q", out)
	}
}
