package snippets

import (
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads user snippet pools when files in the pool directory
// change. Reload errors are reported through onErr; the provider keeps
// serving the last good pools.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching dir and reloading the provider on changes. The
// directory must exist. onErr may be nil.
func (p *Provider) Watch(dir string, onErr func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		if cerr := fw.Close(); cerr != nil {
			// Best-effort close on setup failure.
			_ = cerr
		}
		return nil, err
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(event.Name, ".txt") {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := p.LoadDir(dir); err != nil && onErr != nil {
					onErr(err)
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				if onErr != nil {
					onErr(err)
				}
			}
		}
	}()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
