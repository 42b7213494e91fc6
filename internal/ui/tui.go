package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lhhunghimself/taskman/internal/task"
)

// RunTUI starts the full-screen task browser. It requires an
// interactive terminal.
func RunTUI(ctx context.Context, store *task.Store, confirmDelete bool) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store, confirmDelete)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	store         *task.Store
	list          *task.List
	cursor        int
	confirmDelete bool
	confirming    bool
	notice        string
}

func newTUIModel(store *task.Store, confirmDelete bool) *tuiModel {
	return &tuiModel{
		store:         store,
		list:          task.NewList(),
		confirmDelete: confirmDelete,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.reload()
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	key := keyMsg.String()

	// An armed delete consumes the next key: y deletes, anything else
	// cancels.
	if m.confirming {
		m.confirming = false
		if key == "y" {
			m.deleteAtCursor()
		} else {
			m.notice = "Deletion cancelled."
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
	case "g":
		m.cursor = 0
	case "G":
		if m.list.Len() > 0 {
			m.cursor = m.list.Len() - 1
		}
	case "enter", " ":
		m.completeAtCursor()
	case "d":
		if m.list.Len() == 0 {
			return m, nil
		}
		if m.confirmDelete {
			m.confirming = true
			m.notice = ""
		} else {
			m.deleteAtCursor()
		}
	case "r":
		m.reload()
		m.notice = "Reloaded."
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Task Manager") + "\n")
	completed, total := m.list.Summary()
	b.WriteString(styleSubtle.Render(fmt.Sprintf("%d of %d completed", completed, total)) + "\n\n")

	if total == 0 {
		b.WriteString("No tasks yet!\n")
	}
	for i, t := range m.list.Tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = styleCursor.Render("> ")
		}
		checkbox := "[ ]"
		title := t.Title
		if t.Completed {
			checkbox = styleDone.Render("[x]")
			title = styleDone.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%d. %s %s\n", cursor, i+1, checkbox, title))
	}

	b.WriteString("\n")
	if m.confirming {
		if t, err := m.list.Get(m.cursor + 1); err == nil {
			b.WriteString(styleWarn.Render(fmt.Sprintf("Delete '%s'? (y/N)", t.Title)) + "\n")
		}
	} else if m.notice != "" {
		b.WriteString(m.notice + "\n")
	}
	b.WriteString(styleHelp.Render("enter/space complete | d delete | r reload | q quit") + "\n")

	return b.String()
}

// completeAtCursor marks the task under the cursor done and saves.
// Completion is one-way: a task that is already done stays done.
func (m *tuiModel) completeAtCursor() {
	t, err := m.list.Get(m.cursor + 1)
	if err != nil || t.Completed {
		return
	}
	if _, err := m.list.Complete(m.cursor + 1); err != nil {
		return
	}
	if m.saveList() {
		m.notice = fmt.Sprintf("Completed '%s'.", t.Title)
	}
}

func (m *tuiModel) deleteAtCursor() {
	removed, err := m.list.Remove(m.cursor + 1)
	if err != nil {
		return
	}
	if m.cursor >= m.list.Len() && m.cursor > 0 {
		m.cursor--
	}
	if m.saveList() {
		m.notice = fmt.Sprintf("Deleted '%s'.", removed.Title)
	}
}

func (m *tuiModel) reload() {
	m.list = m.store.Load()
	if m.cursor >= m.list.Len() {
		m.cursor = m.list.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// saveList persists the list, surfacing failures in the footer notice.
func (m *tuiModel) saveList() bool {
	if err := m.store.Save(m.list); err != nil {
		m.notice = fmt.Sprintf("Save failed: %v", err)
		return false
	}
	return true
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
