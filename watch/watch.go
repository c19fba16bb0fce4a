// Package watch re-solves a packet file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sambeau/distress/input"
	"github.com/sambeau/distress/pkg/packet/ast"
	"github.com/sambeau/distress/pkg/packet/packet"
	"github.com/sambeau/distress/pkg/packet/parser"
	"github.com/sambeau/distress/pkg/packet/solve"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	MaxDepth int              // 0 means unlimited
	Dividers []ast.Expression // nil means the default dividers
	Logger   packet.Logger    // status messages; nil means packet.DefaultLogger
	Trace    packet.Logger    // solver trace; nil discards it
}

// Result is the outcome of one run.
type Result struct {
	Seq    uint64 // 1 for the initial run, then one per change
	Path   string
	Text   string
	Report *solve.Report
	Err    error
}

// Handler receives every result. It is called from the watcher's goroutine.
type Handler func(Result)

// Watcher monitors one packet file and re-solves it after each change.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	opts    Options
	handle  Handler

	mu  sync.Mutex
	seq uint64
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, opts Options, handle Handler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = packet.DefaultLogger
	}
	if handle == nil {
		handle = func(Result) {}
	}
	return &Watcher{
		watcher: fsWatcher,
		path:    abs,
		opts:    opts,
		handle:  handle,
	}, nil
}

// Start solves the file once, then watches its directory until ctx is done.
// Editors often replace files rather than write them in place, so the
// directory is watched and events are filtered by name.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.opts.Logger.LogLine("watching:", w.path)

	w.handle(w.Reload())

	go w.eventLoop(ctx)
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Runs returns how many times the file has been solved.
func (w *Watcher) Runs() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq
}

// eventLoop waits for changes to settle for the debounce interval before
// re-solving, so a burst of writes produces a single run.
func (w *Watcher) eventLoop(ctx context.Context) {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				if !timer.Stop() && pending {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.opts.Debounce)
			}
			timerC = timer.C
			pending = true

		case <-timerC:
			pending = false
			timerC = nil
			w.opts.Logger.LogLine("changed:", w.path)
			w.handle(w.Reload())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.opts.Logger.LogLine("watcher error:", err)
		}
	}
}

// Reload reads, parses and solves the file once.
func (w *Watcher) Reload() Result {
	w.mu.Lock()
	w.seq++
	res := Result{Seq: w.seq, Path: w.path}
	w.mu.Unlock()

	text, err := input.ReadFile(w.path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Text = text

	packets, err := packet.Parse(text, parser.WithMaxDepth(w.opts.MaxDepth))
	if err != nil {
		res.Err = err
		return res
	}

	res.Report, res.Err = solve.Run(packets, solve.Options{
		Dividers: w.opts.Dividers,
		Logger:   w.opts.Trace,
	})
	return res
}
