package main

import (
	"fmt"
	"os"

	"github.com/x140y40/coolq-telegram-bot/cmd/ctb-admin/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
