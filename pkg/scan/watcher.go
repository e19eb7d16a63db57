package scan

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/easeltools/easel/logging"
	"github.com/easeltools/easel/pkg/bus"
)

// Watcher publishes a single bus refresh event for each burst of filesystem
// changes under the model roots. Bursts are collapsed by the debounce window
// so a bulk copy does not trigger a re-scan per file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	bus      *bus.Bus
	debounce time.Duration
	logger   *logrus.Entry

	mu         sync.Mutex
	lastChange time.Time
	done       chan struct{}
	closeOnce  sync.Once
}

// NewWatcher watches the given root directories. A zero debounce defaults to
// 500ms.
func NewWatcher(roots []string, b *bus.Bus, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if err := fw.Add(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		watcher:  fw,
		bus:      b,
		debounce: debounce,
		logger:   logging.NewLogger("scan-watcher"),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.WithField("op", ev.Op.String()).Debugf("fs event: %s", ev.Name)
			w.mu.Lock()
			w.lastChange = time.Now()
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}
			w.mu.Unlock()

		case <-fire:
			w.mu.Lock()
			timer = nil
			w.mu.Unlock()
			w.bus.Publish(bus.Event{Type: bus.EventItemsRefreshed})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("watch error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return w.watcher.Close()
}
