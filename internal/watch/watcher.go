package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	errs "github.com/matzehuels/libsgen/pkg/errors"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc regenerates the libraries file. It is called once at start-up and
// again after every debounced change.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult summarises one regeneration for the status line.
type RunResult struct {
	Included   int    // Libraries written
	OutputPath string // Libraries file path
	Changed    bool   // Whether the file content changed
}

// Options configures the watch behaviour.
type Options struct {
	// Files are the files to watch, typically the root POM, its local
	// parents and the config file. Their directories are watched so that
	// atomic rename-on-save is noticed.
	Files []string

	// Debounce is the quiet period before triggering a rebuild.
	Debounce time.Duration

	// Logger receives watcher errors. Nil discards them.
	Logger *log.Logger

	// Out is the writer for user-facing status lines.
	Out io.Writer
}

// Run regenerates once, then watches opts.Files and regenerates on every
// change until ctx is cancelled. Regeneration errors are reported and do not
// stop the watcher.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if len(opts.Files) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "no files to watch")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "creating watcher")
	}
	defer watcher.Close()

	targets, err := addFiles(watcher, opts.Files)
	if err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", strings.Join(opts.Files, ", "), opts.Debounce)

	// Runs never overlap: a change arriving mid-run waits for the lock.
	var mu sync.Mutex
	run := func(trigger string) {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		doRun(ctx, opts.Out, runFn, trigger)
	}

	run("(initial)")

	debouncer := NewDebouncer(opts.Debounce, run)
	debouncer.onPanic = func(v any) { opts.Logger.Error("regeneration panicked", "error", v) }
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event, targets) {
				continue
			}
			opts.Logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Error("watcher error", "error", watchErr)
		}
	}
}

// doRun executes a single regeneration and prints the status line.
func doRun(ctx context.Context, out io.Writer, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	status := "unchanged"
	if result.Changed {
		status = "updated"
	}
	fmt.Fprintf(out, "[%s] %s → OK (%d libraries, %s %s)\n",
		now, filepath.Base(trigger), result.Included, result.OutputPath, status)
}

// addFiles watches the directory of every file and returns the set of
// absolute file paths events are matched against.
func addFiles(watcher *fsnotify.Watcher, files []string) (map[string]struct{}, error) {
	targets := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "resolving %q", f)
		}
		targets[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "watching %q", dir)
		}
		dirs[dir] = struct{}{}
	}
	return targets, nil
}

// isRelevant reports whether event touches one of the watched files.
func isRelevant(event fsnotify.Event, targets map[string]struct{}) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := targets[abs]
	return ok
}
