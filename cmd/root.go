// Package cmd implements the CLI command structure for taskman.
package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/lhhunghimself/taskman/internal/config"
	"github.com/lhhunghimself/taskman/internal/logging"
	"github.com/lhhunghimself/taskman/internal/task"
	"github.com/lhhunghimself/taskman/internal/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Run executes the taskman CLI with the given arguments.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskman", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}

	// Global flags not owned by the config layer
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help (shorthand)")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version (shorthand)")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	if !cfg.Color {
		color.NoColor = true
	}

	// Determine the subcommand; the bare invocation opens the menu.
	subcommand := "menu"
	remaining := fs.Args()
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	store := task.NewStore(cfg.TasksFile, task.WithLogger(logger))

	switch subcommand {
	case "menu":
		if len(remaining) > 0 {
			return fmt.Errorf("unexpected arguments: %v", remaining)
		}
		return menuCommand(ctx, cfg, store)
	case "add":
		return addCommand(store, remaining)
	case "list", "ls":
		return listCommand(store, remaining)
	case "done":
		return doneCommand(store, remaining)
	case "rm":
		return rmCommand(cfg, store, remaining)
	case "tui":
		if len(remaining) > 0 {
			return fmt.Errorf("unexpected arguments: %v", remaining)
		}
		return ui.RunTUI(ctx, store, cfg.ConfirmDelete)
	case "doctor":
		return doctorCommand(cfg, store, remaining)
	case "version", "--version":
		return versionCommand()
	case "help", "--help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// A plain file argument opens the menu on that tasks file,
		// mirroring `taskman -file PATH`.
		if info, statErr := os.Stat(subcommand); statErr == nil && !info.IsDir() {
			cfg.TasksFile = subcommand
			store = task.NewStore(cfg.TasksFile, task.WithLogger(logger))
			return menuCommand(ctx, cfg, store)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// menuCommand runs the interactive numbered menu, the default command.
func menuCommand(ctx context.Context, cfg *config.Config, store *task.Store) error {
	menu := ui.NewMenu(store, ui.WithConfirmDelete(cfg.ConfirmDelete))
	return menu.Run(ctx)
}

// addCommand adds a single task from the command line and saves.
func addCommand(store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskman add", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	title := strings.Join(fs.Args(), " ")

	list := store.Load()
	added, err := list.Add(title)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	if err := store.Save(list); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	color.New(color.FgGreen).Fprintf(os.Stdout, "Task added: '%s'\n", added.Title)
	return nil
}

// listCommand prints the checkbox listing, optionally filtered by status.
func listCommand(store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskman list", flag.ContinueOnError)
	status := fs.String("status", "all", "Filter by status (all|open|done)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch *status {
	case "all", "open", "done":
	default:
		return fmt.Errorf("invalid status %q (expected all, open, or done)", *status)
	}

	list := store.Load()
	printTaskList(os.Stdout, list, *status)
	return nil
}

// printTaskList writes the summary line and one row per task. Filtered
// views keep the full-list positions so the numbers stay usable with
// done and rm.
func printTaskList(w io.Writer, list *task.List, status string) {
	if list.Len() == 0 {
		fmt.Fprintln(w, "No tasks yet!")
		return
	}
	completed, total := list.Summary()
	fmt.Fprintf(w, "Tasks (%d of %d completed):\n", completed, total)
	for i, t := range list.Tasks {
		if status == "open" && t.Completed {
			continue
		}
		if status == "done" && !t.Completed {
			continue
		}
		if t.Completed {
			color.New(color.FgGreen).Fprintf(w, "%d. [x] %s\n", i+1, t.Title)
		} else {
			fmt.Fprintf(w, "%d. [ ] %s\n", i+1, t.Title)
		}
	}
}

// doneCommand marks the task at a 1-based position complete and saves.
func doneCommand(store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskman done", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: taskman done <number>")
	}
	num, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid task number %q", fs.Arg(0))
	}

	list := store.Load()
	t, err := list.Complete(num)
	if err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	color.New(color.FgGreen).Fprintf(os.Stdout, "Task marked complete: '%s'\n", t.Title)
	return nil
}

// rmCommand deletes the task at a 1-based position, asking for
// confirmation unless -y is given or confirm_delete is off.
func rmCommand(cfg *config.Config, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskman rm", flag.ContinueOnError)
	yes := fs.Bool("y", false, "Delete without confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: taskman rm [-y] <number>")
	}
	num, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid task number %q", fs.Arg(0))
	}

	list := store.Load()
	t, err := list.Get(num)
	if err != nil {
		return err
	}
	if !*yes && cfg.ConfirmDelete {
		fmt.Printf("Delete '%s'? (y/N): ", t.Title)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}
	if _, err := list.Remove(num); err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	fmt.Println("Task deleted.")
	return nil
}

// doctorCommand checks the tasks file, its directory, and the effective
// configuration, reporting what it finds with status markers.
func doctorCommand(cfg *config.Config, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskman doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Taskman Doctor")
	fmt.Println("==============")
	fmt.Println()

	allOK := true
	userFile, projectFile := config.ConfigFiles()

	// Effective configuration
	fmt.Println("Config:")
	fmt.Printf("  Tasks file: %s\n", cfg.TasksFile)
	fmt.Printf("  Confirm delete: %v\n", cfg.ConfirmDelete)
	fmt.Printf("  Color: %v\n", cfg.Color)
	fmt.Printf("  Log: %s (%s)\n", cfg.LogLevel, cfg.LogFormat)
	if userFile != "" {
		fmt.Printf("  User config: %s\n", userFile)
	} else {
		fmt.Println("  User config: (none)")
	}
	if projectFile != "" {
		fmt.Printf("  Project config: %s\n", projectFile)
	} else {
		fmt.Println("  Project config: (none)")
	}
	fmt.Println()

	// Tasks file
	fmt.Printf("Tasks file: %s\n", store.Path())
	info, err := os.Stat(store.Path())
	if os.IsNotExist(err) {
		fmt.Println("  ⚠️  Not found (created on first save)")
	} else if err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ Found")
		checkTasksContent(store, *verbose)
	}
	fmt.Println()

	// Storage directory
	dir := filepath.Dir(store.Path())
	fmt.Printf("Storage directory: %s\n", dir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Println("  ⚠️  Not found (created on first save)")
	} else if err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else if probeErr := probeWritable(dir); probeErr != nil {
		fmt.Printf("  ❌ Not writable: %v\n", probeErr)
		allOK = false
	} else {
		fmt.Println("  ✅ Writable")
	}
	fmt.Println()

	if *verbose && userFile == "" && projectFile == "" {
		fmt.Println("No config file found. Example taskman.toml:")
		fmt.Println()
		fmt.Print(config.ExampleConfig())
		fmt.Println()
	}

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Taskman may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkTasksContent validates an existing tasks file against the strict
// schema and reports how the loader would treat it. Findings here are
// warnings: the loader tolerates all of them by starting fresh or
// dropping records.
func checkTasksContent(store *task.Store, verbose bool) {
	raw, err := os.ReadFile(store.Path())
	if err != nil {
		fmt.Printf("  ⚠️  Read error: %v\n", err)
		return
	}

	var rawItems []any
	if err := json.Unmarshal(raw, &rawItems); err != nil {
		fmt.Println("  ⚠️  Does not parse as a JSON array; taskman will start fresh")
		return
	}

	issues, err := task.CheckSchema(raw)
	if err != nil {
		fmt.Printf("  ⚠️  Schema check unavailable: %v\n", err)
	} else if len(issues) == 0 {
		fmt.Println("  ✅ Valid")
	} else {
		for _, issue := range issues {
			fmt.Printf("  ⚠️  %s\n", issue)
		}
	}

	list := store.Load()
	if dropped := len(rawItems) - list.Len(); dropped > 0 {
		fmt.Printf("  ⚠️  %d of %d records would be dropped on the next save\n", dropped, len(rawItems))
	}
	if verbose {
		completed, total := list.Summary()
		fmt.Printf("  Tasks: %d (%d completed)\n", total, completed)
		for i, t := range list.Tasks {
			indicator := "[ ]"
			if t.Completed {
				indicator = "[x]"
			}
			fmt.Printf("    %d. %s %s\n", i+1, indicator, t.Title)
		}
	}
}

// probeWritable creates and removes a temp file to verify the
// directory accepts the atomic-save temp file.
func probeWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".taskman-doctor-*")
	if err != nil {
		return err
	}
	probe.Close()
	return os.Remove(probe.Name())
}

func versionCommand() error {
	fmt.Printf("taskman version %s\n", Version)
	return nil
}

// printUsage prints the complete help text to w.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskman - Add, view, complete, and delete tasks saved to JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskman [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu           Interactive menu (default)")
	fmt.Fprintln(w, "  add <title>    Add a task")
	fmt.Fprintln(w, "  list           List tasks (alias: ls)")
	fmt.Fprintln(w, "  done <number>  Mark a task complete")
	fmt.Fprintln(w, "  rm <number>    Delete a task")
	fmt.Fprintln(w, "  tui            Full-screen task browser")
	fmt.Fprintln(w, "  doctor         Check tasks file and environment health")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (all|open|done)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rm Options (use with 'rm' command):")
	fmt.Fprintln(w, "  -y    Delete without confirmation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    Verbose output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks are stored in tasks.json next to the executable (or specify -file PATH)")
}
