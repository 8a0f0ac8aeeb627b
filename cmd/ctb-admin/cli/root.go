// Package cli implements the ctb-admin command tree.
package cli

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/x140y40/coolq-telegram-bot/pkg/api"
	"github.com/x140y40/coolq-telegram-bot/pkg/config"
)

func Execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ctb-admin",
		Short:         "Admin tooling for a running ctb gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// newClientFromFlags resolves the gateway endpoint the same way the server
// does: config file first, then CTB_* env, then explicit flags on top.
func newClientFromFlags(cfgPath, root, token string, timeoutMs int) (*api.Client, error) {
	root = strings.TrimSpace(root)
	token = strings.TrimSpace(token)

	cfg, err := loadConfigIfExists(strings.TrimSpace(cfgPath))
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		if root == "" {
			root = strings.TrimSpace(cfg.API.Root)
		}
		if token == "" {
			token = strings.TrimSpace(cfg.API.AccessToken)
		}
		if timeoutMs <= 0 {
			timeoutMs = cfg.API.TimeoutMs
		}
	}
	if timeoutMs <= 0 {
		timeoutMs = 30000
	}

	httpClient := &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond}
	return api.New(root, token, httpClient), nil
}

func loadConfigIfExists(path string) (*config.Config, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, nil
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return config.Load(p)
}
