package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Listen         string `yaml:"listen"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
		PidFile        string `yaml:"pid_file"`
	} `yaml:"server"`

	// API configures the outbound connection to the CQHTTP gateway. An empty
	// root produces a no-op API client so the bridge can run receive-only.
	API struct {
		Root        string `yaml:"root"`
		AccessToken string `yaml:"access_token"`
		TimeoutMs   int    `yaml:"timeout_ms"`
		// ProxyURL routes outbound gateway calls through a SOCKS5 proxy
		// (e.g. "socks5://127.0.0.1:1080").
		ProxyURL string `yaml:"proxy_url"`
	} `yaml:"api"`

	Webhook struct {
		Path string `yaml:"path"`
		// Secret enables HMAC-SHA1 verification of the X-Signature header.
		// Empty disables the check.
		Secret string `yaml:"secret"`
	} `yaml:"webhook"`

	// Reload watches the config file and applies secret/API credential
	// changes at runtime; SIGHUP triggers the same reload path.
	Reload struct {
		AutoReload struct {
			Enabled    bool `yaml:"enabled"`
			DebounceMs int  `yaml:"debounce_ms"`
		} `yaml:"auto_reload"`
	} `yaml:"reload"`

	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	AccessLog     bool   `yaml:"access_log"`
	AccessLogPath string `yaml:"access_log_path"`

	accessLogSet bool `yaml:"-"`
}

// UnmarshalYAML tracks whether access_log was written explicitly, so an
// explicit false survives the default-true pass in applyDefaults.
func (c *LoggingConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawLogging struct {
		AccessLog     *bool  `yaml:"access_log"`
		AccessLogPath string `yaml:"access_log_path"`
	}
	var raw rawLogging
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.AccessLog != nil {
		c.AccessLog = *raw.AccessLog
		c.accessLogSet = true
	}
	c.AccessLogPath = raw.AccessLogPath
	return nil
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is provided by trusted config/flag.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = 60000
	}
	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = 60000
	}
	if strings.TrimSpace(cfg.Server.PidFile) == "" {
		cfg.Server.PidFile = "/var/run/ctb.pid"
	}
	if cfg.API.TimeoutMs <= 0 {
		cfg.API.TimeoutMs = 60000
	}
	cfg.API.Root = strings.TrimRight(strings.TrimSpace(cfg.API.Root), "/")
	if strings.TrimSpace(cfg.Webhook.Path) == "" {
		cfg.Webhook.Path = "/"
	}
	if cfg.Reload.AutoReload.DebounceMs <= 0 {
		cfg.Reload.AutoReload.DebounceMs = 300
	}
	// default true for local debugging
	if !cfg.Logging.accessLogSet {
		cfg.Logging.AccessLog = true
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("CTB_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if n, ok := envInt("CTB_READ_TIMEOUT_MS"); ok && n > 0 {
		cfg.Server.ReadTimeoutMs = n
	}
	if n, ok := envInt("CTB_WRITE_TIMEOUT_MS"); ok && n > 0 {
		cfg.Server.WriteTimeoutMs = n
	}
	if v := strings.TrimSpace(os.Getenv("CTB_PID_FILE")); v != "" {
		cfg.Server.PidFile = v
	}
	if v := strings.TrimSpace(os.Getenv("CTB_API_ROOT")); v != "" {
		cfg.API.Root = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("CTB_ACCESS_TOKEN")); v != "" {
		cfg.API.AccessToken = v
	}
	if n, ok := envInt("CTB_API_TIMEOUT_MS"); ok && n > 0 {
		cfg.API.TimeoutMs = n
	}
	if v := strings.TrimSpace(os.Getenv("CTB_API_PROXY_URL")); v != "" {
		cfg.API.ProxyURL = v
	}
	if v := strings.TrimSpace(os.Getenv("CTB_WEBHOOK_PATH")); v != "" {
		cfg.Webhook.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("CTB_SECRET")); v != "" {
		cfg.Webhook.Secret = v
	}
	cfg.Reload.AutoReload.Enabled = envBool("CTB_AUTO_RELOAD_ENABLED", cfg.Reload.AutoReload.Enabled)
	if n, ok := envInt("CTB_AUTO_RELOAD_DEBOUNCE_MS"); ok {
		cfg.Reload.AutoReload.DebounceMs = n
	}
	cfg.Logging.AccessLog = envBool("CTB_ACCESS_LOG", cfg.Logging.AccessLog)
	if v := strings.TrimSpace(os.Getenv("CTB_ACCESS_LOG_PATH")); v != "" {
		cfg.Logging.AccessLogPath = v
	}
}

func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.Webhook.Path, "/") {
		return errors.New("webhook.path must start with '/'")
	}
	if v := cfg.API.Root; v != "" && !strings.Contains(v, "://") {
		return errors.New("api.root must be a URL (e.g. http://127.0.0.1:5700)")
	}
	if v := strings.TrimSpace(cfg.API.ProxyURL); v != "" {
		if !strings.HasPrefix(strings.ToLower(v), "socks5://") {
			return errors.New("api.proxy_url must be a socks5:// URL")
		}
	}
	if cfg.Reload.AutoReload.Enabled && cfg.Reload.AutoReload.DebounceMs <= 0 {
		return errors.New("reload.auto_reload.debounce_ms must be > 0 when reload.auto_reload.enabled=true")
	}
	return nil
}

func envInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
