package browser

import (
	"fmt"
	"sync"

	cron "github.com/robfig/cron/v3"

	"folderlist/internal/lister"
)

// cronLogger routes the scheduler's own messages, such as skipped runs, to
// the browser logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}

// Watcher refreshes a Browser on a cron schedule and reports listings that
// differ from the previous one.
type Watcher struct {
	browser  *Browser
	cron     *cron.Cron
	onChange func([]lister.FolderEntry)
	onError  func(error)

	mu       sync.Mutex
	last     []lister.FolderEntry
	hasLast  bool
	lastErr  string
	running  bool
	schedule string
}

// NewWatcher creates a watcher for b. schedule accepts standard cron specs
// and descriptors such as "@every 5s". A scheduled poll is skipped while the
// previous one is still running. onError may be nil.
func NewWatcher(b *Browser, schedule string, onChange func([]lister.FolderEntry), onError func(error)) (*Watcher, error) {
	w := &Watcher{
		browser:  b,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{}))),
		onChange: onChange,
		onError:  onError,
		schedule: schedule,
	}

	if _, err := w.cron.AddFunc(schedule, w.Poll); err != nil {
		return nil, fmt.Errorf("invalid watch schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start performs an immediate poll and then starts the schedule.
func (w *Watcher) Start() {
	w.Poll()

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		w.cron.Start()
		w.running = true
		logger.Info("Watching %q (%s)", w.browser.Root(), w.schedule)
	}
}

// Stop stops the schedule and waits for a running poll to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		<-w.cron.Stop().Done()
	}
}

// Poll refreshes the browser once. onChange fires for the first successful
// listing and whenever the listing differs from the last one. onError fires
// once per distinct error message.
func (w *Watcher) Poll() {
	entries, err := w.browser.Refresh()

	w.mu.Lock()
	if err != nil {
		repeat := err.Error() == w.lastErr
		w.lastErr = err.Error()
		w.mu.Unlock()
		if !repeat && w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.lastErr = ""

	changed := !w.hasLast || !sameEntries(w.last, entries)
	w.last = entries
	w.hasLast = true
	w.mu.Unlock()

	if changed {
		logger.Debug("Listing of %q changed (%d folders)", w.browser.Root(), len(entries))
		if w.onChange != nil {
			w.onChange(entries)
		}
	}
}

func sameEntries(a, b []lister.FolderEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
