package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Store reads and writes the tasks file.
type Store struct {
	path   string
	logger *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load-time warnings.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store for the tasks file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:   path,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the tasks file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the tasks file and returns the sanitized list. It never
// fails: a missing file yields an empty list, and malformed content
// degrades to whatever well-formed records can be recovered, with a
// warning. A damaged file must not prevent the tool from starting.
func (s *Store) Load() *List {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cannot read tasks file, starting fresh", "path", s.path, "err", err)
		}
		return NewList()
	}

	if strings.TrimSpace(string(data)) == "" {
		s.logger.Warn("tasks file is empty, starting fresh", "path", s.path)
		return NewList()
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("tasks file is corrupt, starting fresh", "path", s.path, "err", err)
		return NewList()
	}

	items, ok := raw.([]any)
	if !ok {
		s.logger.Warn("tasks file is not a JSON array, starting fresh", "path", s.path)
		return NewList()
	}

	list := NewList()
	for _, item := range items {
		if t, ok := sanitize(item); ok {
			list.Tasks = append(list.Tasks, t)
		}
	}
	return list
}

// Save writes the full list to the tasks file, creating missing parent
// directories. The list is serialized to a colocated temp file first
// and renamed over the target, so a reader never observes a partial
// write and a crash mid-save leaves the previous version intact.
func (s *Store) Save(list *List) error {
	var tasks []Task
	if list != nil {
		tasks = list.Tasks
	}
	if tasks == nil {
		tasks = []Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create tasks dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace tasks file: %w", err)
	}
	return nil
}

// sanitize normalizes one decoded array element into a Task. Elements
// that are not objects, miss any of the three fields, carry an id that
// does not convert to an integer, or whose title trims to nothing are
// dropped.
func sanitize(item any) (Task, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Task{}, false
	}

	rawID, ok := obj["id"]
	if !ok {
		return Task{}, false
	}
	rawTitle, ok := obj["title"]
	if !ok {
		return Task{}, false
	}
	rawCompleted, ok := obj["completed"]
	if !ok {
		return Task{}, false
	}

	id, ok := toInt(rawID)
	if !ok {
		return Task{}, false
	}
	title, ok := rawTitle.(string)
	if !ok {
		return Task{}, false
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, false
	}

	return Task{ID: id, Title: title, Completed: toBool(rawCompleted)}, true
}

// toInt converts a decoded JSON value to an int. Numbers truncate
// toward zero; strings must trim to a base-10 integer.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// toBool coerces a decoded JSON value by truthiness: false, zero, the
// empty string, null, and empty containers are false; everything else
// is true, including the string "false".
func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b != ""
	case []any:
		return len(b) > 0
	case map[string]any:
		return len(b) > 0
	case nil:
		return false
	default:
		return true
	}
}
