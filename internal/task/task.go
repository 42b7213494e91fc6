// Package task loads, mutates, and atomically saves the tasks file.
package task

import (
	"errors"
	"strings"
)

// Task represents a single task in the list.
type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// List is an ordered collection of tasks. Insertion order is display
// order; positions are 1-based and distinct from IDs.
type List struct {
	Tasks []Task
}

// NewList returns an empty list.
func NewList() *List {
	return &List{Tasks: []Task{}}
}

// Len returns the number of tasks in the list.
func (l *List) Len() int {
	return len(l.Tasks)
}

// NextID returns 1 for an empty list, otherwise max(ids)+1. IDs are
// never reused: deleting the highest task leaves a gap on the next add.
func (l *List) NextID() int {
	if len(l.Tasks) == 0 {
		return 1
	}
	max := l.Tasks[0].ID
	for _, t := range l.Tasks[1:] {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Add appends a new task with the next ID and returns it. The title
// must trim to non-empty text.
func (l *List) Add(title string) (Task, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return Task{}, &ValidationError{Field: "title", Err: errors.New("must not be empty")}
	}
	t := Task{ID: l.NextID(), Title: trimmed, Completed: false}
	l.Tasks = append(l.Tasks, t)
	return t, nil
}

// Get returns the task at the 1-based position.
func (l *List) Get(pos int) (Task, error) {
	if pos < 1 || pos > len(l.Tasks) {
		return Task{}, &OutOfRangeError{Position: pos, Length: len(l.Tasks)}
	}
	return l.Tasks[pos-1], nil
}

// Complete marks the task at the 1-based position as completed and
// returns it. Completing an already-completed task is a no-op.
func (l *List) Complete(pos int) (Task, error) {
	if pos < 1 || pos > len(l.Tasks) {
		return Task{}, &OutOfRangeError{Position: pos, Length: len(l.Tasks)}
	}
	l.Tasks[pos-1].Completed = true
	return l.Tasks[pos-1], nil
}

// Remove deletes the task at the 1-based position and returns it.
// Remaining tasks keep their IDs; positions after it shift down.
func (l *List) Remove(pos int) (Task, error) {
	if pos < 1 || pos > len(l.Tasks) {
		return Task{}, &OutOfRangeError{Position: pos, Length: len(l.Tasks)}
	}
	removed := l.Tasks[pos-1]
	l.Tasks = append(l.Tasks[:pos-1], l.Tasks[pos:]...)
	return removed, nil
}

// Summary returns the completed and total task counts.
func (l *List) Summary() (completed, total int) {
	for _, t := range l.Tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(l.Tasks)
}
