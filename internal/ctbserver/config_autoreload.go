package ctbserver

import (
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/x140y40/coolq-telegram-bot/pkg/bot"
	"github.com/x140y40/coolq-telegram-bot/pkg/config"
)

// installConfigAutoReload watches the config file and re-applies the
// webhook secret and API credentials when it changes. The parent directory
// is watched rather than the file itself so atomic rename-style rewrites
// (editors, configuration management) keep triggering.
func installConfigAutoReload(cfgPath string, cfg *config.Config, st *state, b *bot.Bot, mu *sync.Mutex) (io.Closer, error) {
	if !cfg.Reload.AutoReload.Enabled {
		return nil, nil
	}

	cfgPath = strings.TrimSpace(cfgPath)
	if cfgPath == "" {
		return nil, nil
	}
	debounce := time.Duration(cfg.Reload.AutoReload.DebounceMs) * time.Millisecond

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(cfgPath)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		defer close(doneCh)
		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		resetTimer := func() {
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			timerC = timer.C
		}
		runReload := func() {
			mu.Lock()
			err := reloadRuntime(cfgPath, st, b)
			mu.Unlock()
			if err != nil {
				log.Printf("reload failed (config auto): %v", err)
				return
			}
			log.Printf("reload ok (config auto): config=%q", cfgPath)
		}

		for {
			select {
			case <-stopCh:
				if timer != nil {
					timer.Stop()
				}
				return
			case <-timerC:
				timerC = nil
				runReload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config auto-reload watcher error: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if shouldTriggerConfigReload(evt, cfgPath) {
					resetTimer()
				}
			}
		}
	}()

	log.Printf(
		"config auto-reload enabled: file=%q debounce_ms=%d",
		cfgPath,
		cfg.Reload.AutoReload.DebounceMs,
	)
	return closerFunc(func() error {
		close(stopCh)
		_ = watcher.Close()
		<-doneCh
		return nil
	}), nil
}

func shouldTriggerConfigReload(evt fsnotify.Event, cfgPath string) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) == 0 {
		return false
	}
	return filepath.Base(evt.Name) == filepath.Base(cfgPath)
}
