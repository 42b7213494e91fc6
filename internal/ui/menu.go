// Package ui provides the interactive terminal interfaces.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lhhunghimself/taskman/internal/task"
)

// Menu is the menu-driven session over a task store. Input and output
// are injected so sessions can be scripted in tests.
type Menu struct {
	store         *task.Store
	in            *bufio.Scanner
	out           io.Writer
	confirmDelete bool
}

// MenuOption configures the menu.
type MenuOption func(*Menu)

// WithInput sets the reader prompts are answered from.
func WithInput(r io.Reader) MenuOption {
	return func(m *Menu) {
		m.in = bufio.NewScanner(r)
	}
}

// WithOutput sets the writer the menu prints to.
func WithOutput(w io.Writer) MenuOption {
	return func(m *Menu) {
		m.out = w
	}
}

// WithConfirmDelete controls whether deletions ask for confirmation.
func WithConfirmDelete(enabled bool) MenuOption {
	return func(m *Menu) {
		m.confirmDelete = enabled
	}
}

// NewMenu creates a menu session bound to the given store.
func NewMenu(store *task.Store, opts ...MenuOption) *Menu {
	m := &Menu{
		store:         store,
		in:            bufio.NewScanner(os.Stdin),
		out:           os.Stdout,
		confirmDelete: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run loads the tasks once and drives the menu loop until the user
// exits or input ends. The in-memory list is saved after every change.
func (m *Menu) Run(ctx context.Context) error {
	list := m.store.Load()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, "\n--- Task Manager ---\n")
		fmt.Fprint(m.out, "1. Add Task\n")
		fmt.Fprint(m.out, "2. View Tasks\n")
		fmt.Fprint(m.out, "3. Mark Task Complete\n")
		fmt.Fprint(m.out, "4. Delete Task\n")
		fmt.Fprint(m.out, "5. Exit\n\n")

		choice, ok := m.prompt("Enter choice (1-5): ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			m.addTask(list)
		case "2":
			m.viewTasks(list)
		case "3":
			m.markComplete(list)
		case "4":
			m.deleteTask(list)
		case "5":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter 1-5.")
		}
	}
}

// prompt prints a label and reads one trimmed line. The second return
// is false when input has ended.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) addTask(list *task.List) {
	for {
		title, ok := m.prompt("Enter task title (or 'q' to cancel): ")
		if !ok || strings.EqualFold(title, "q") {
			return
		}
		added, err := list.Add(title)
		if err != nil {
			fmt.Fprintln(m.out, "Task title cannot be empty. Please try again.")
			continue
		}
		m.save(list)
		fmt.Fprintf(m.out, "Task added: '%s'\n", added.Title)
		return
	}
}

func (m *Menu) viewTasks(list *task.List) {
	if list.Len() == 0 {
		fmt.Fprintln(m.out, "\nNo tasks yet!")
		return
	}

	completed, total := list.Summary()
	fmt.Fprintf(m.out, "\nTasks (%d of %d completed):\n", completed, total)
	for i, t := range list.Tasks {
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		fmt.Fprintf(m.out, "%d. %s %s\n", i+1, checkbox, t.Title)
	}
	fmt.Fprintln(m.out)
}

func (m *Menu) markComplete(list *task.List) {
	if list.Len() == 0 {
		fmt.Fprintln(m.out, "No tasks to complete.")
		return
	}

	m.viewTasks(list)

	for {
		choice, ok := m.prompt("Enter task number to mark complete (or 'q' to cancel): ")
		if !ok || strings.EqualFold(choice, "q") {
			return
		}
		num, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid input. Please enter a number or 'q'.")
			continue
		}
		t, err := list.Complete(num)
		if err != nil {
			fmt.Fprintf(m.out, "Invalid task number. Please enter 1-%d.\n", list.Len())
			continue
		}
		m.save(list)
		fmt.Fprintf(m.out, "Task marked complete: '%s'\n", t.Title)
		return
	}
}

func (m *Menu) deleteTask(list *task.List) {
	if list.Len() == 0 {
		fmt.Fprintln(m.out, "No tasks to delete.")
		return
	}

	m.viewTasks(list)

	for {
		choice, ok := m.prompt("Enter task number to delete (or 'q' to cancel): ")
		if !ok || strings.EqualFold(choice, "q") {
			return
		}
		num, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid input. Please enter a number or 'q'.")
			continue
		}
		t, err := list.Get(num)
		if err != nil {
			fmt.Fprintf(m.out, "Invalid task number. Please enter 1-%d.\n", list.Len())
			continue
		}
		if m.confirmDelete {
			confirm, ok := m.prompt(fmt.Sprintf("Delete '%s'? (y/N): ", t.Title))
			if !ok {
				return
			}
			if !strings.EqualFold(confirm, "y") {
				fmt.Fprintln(m.out, "Deletion cancelled.")
				return
			}
		}
		if _, err := list.Remove(num); err != nil {
			fmt.Fprintf(m.out, "Invalid task number. Please enter 1-%d.\n", list.Len())
			continue
		}
		m.save(list)
		fmt.Fprintln(m.out, "Task deleted.")
		return
	}
}

// save persists the list; failures are reported but never abort the
// session, the in-memory list stays authoritative.
func (m *Menu) save(list *task.List) {
	if err := m.store.Save(list); err != nil {
		fmt.Fprintf(m.out, "Error saving tasks: %v\n", err)
	}
}
