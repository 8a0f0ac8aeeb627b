package ctbserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/net/proxy"

	"github.com/x140y40/coolq-telegram-bot/internal/logx"
	"github.com/x140y40/coolq-telegram-bot/pkg/api"
	"github.com/x140y40/coolq-telegram-bot/pkg/bot"
	"github.com/x140y40/coolq-telegram-bot/pkg/config"
)

// Run loads the config, wires the bot and serves the webhook until the
// process exits. configure, when non-nil, registers the application's
// handlers on the bot before the server starts accepting requests.
func Run(cfgPath string, configure func(*bot.Bot) error) error {
	startedAt := time.Now().Unix()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	accessLogger, accessClose, accessColor, err := openAccessLogger(cfg)
	if err != nil {
		return fmt.Errorf("init access log: %w", err)
	}
	if accessClose != nil {
		defer func() { _ = accessClose.Close() }()
	}

	pidCleanup, err := writePIDFile(cfg)
	if err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	if pidCleanup != nil {
		defer func() { _ = pidCleanup.Close() }()
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return fmt.Errorf("build api client: %w", err)
	}
	b := bot.New(client)
	if configure != nil {
		if err := configure(b); err != nil {
			return fmt.Errorf("configure bot: %w", err)
		}
	}

	st := &state{}
	st.SetSecret(cfg.Webhook.Secret)
	st.SetStartedAtUnix(startedAt)

	reloadMu := &sync.Mutex{}
	installReloadSignalHandler(cfgPath, st, b, reloadMu)
	autoReloadClose, err := installConfigAutoReload(cfgPath, cfg, st, b, reloadMu)
	if err != nil {
		return fmt.Errorf("init config auto reload: %w", err)
	}
	if autoReloadClose != nil {
		defer func() { _ = autoReloadClose.Close() }()
	}

	engine := NewRouter(cfg, st, b, accessLogger, accessColor)

	if client.Configured() {
		log.Printf("ctb bridging gateway %s, listening on %s", cfg.API.Root, cfg.Server.Listen)
	} else {
		log.Printf("ctb receive-only (no api.root configured), listening on %s", cfg.Server.Listen)
	}
	if err := engine.Run(cfg.Server.Listen); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// newAPIClient builds the outbound gateway client, optionally dialing
// through a SOCKS5 proxy.
func newAPIClient(cfg *config.Config) (*api.Client, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.API.TimeoutMs) * time.Millisecond,
	}
	if v := strings.TrimSpace(cfg.API.ProxyURL); v != "" {
		u, err := url.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("parse api.proxy_url %q: %w", v, err)
		}
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("proxy dialer for %q: %w", v, err)
		}
		tr := &http.Transport{}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			tr.DialContext = cd.DialContext
		} else {
			tr.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
		httpClient.Transport = tr
	}
	return api.New(cfg.API.Root, cfg.API.AccessToken, httpClient), nil
}

// reloadRuntime re-reads the config file and swaps the pieces that can
// change without a restart: the webhook secret and the API credentials.
// Listen address and webhook path changes still need a restart.
func reloadRuntime(cfgPath string, st *state, b *bot.Bot) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("reload config %q: %w", cfgPath, err)
	}
	client, err := newAPIClient(cfg)
	if err != nil {
		return fmt.Errorf("rebuild api client: %w", err)
	}
	st.SetSecret(cfg.Webhook.Secret)
	b.SetAPI(client)
	return nil
}

func installReloadSignalHandler(cfgPath string, st *state, b *bot.Bot, mu *sync.Mutex) {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGHUP)
	go func() {
		for range ch {
			mu.Lock()
			err := reloadRuntime(cfgPath, st, b)
			mu.Unlock()
			if err != nil {
				log.Printf("reload failed (signal): %v", err)
				continue
			}
			log.Printf("reload ok (signal): config=%q", cfgPath)
		}
	}()
}

func openAccessLogger(cfg *config.Config) (*log.Logger, io.Closer, bool, error) {
	if cfg == nil || !cfg.Logging.AccessLog {
		return nil, nil, false, nil
	}

	path := strings.TrimSpace(cfg.Logging.AccessLogPath)
	if path == "" {
		// default: stdout
		return log.New(os.Stdout, "", log.LstdFlags), nil, logx.ColorEnabled(), nil
	}

	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, false, err
		}
	}
	// #nosec G304 -- access_log_path comes from trusted config/env.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, false, err
	}
	return log.New(f, "", log.LstdFlags), f, false, nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

func writePIDFile(cfg *config.Config) (io.Closer, error) {
	path := strings.TrimSpace(cfg.Server.PidFile)
	if path == "" {
		return nil, nil
	}
	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	tmp := path + ".tmp"
	pid := strconv.Itoa(os.Getpid()) + "\n"
	// #nosec G304 -- pid_file comes from trusted config/env.
	if err := os.WriteFile(tmp, []byte(pid), 0o600); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	return closerFunc(func() error { return os.Remove(path) }), nil
}
