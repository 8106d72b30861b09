// Command studioctl is the operator CLI for the studio site: it reviews spam
// rejections, inspects and replays the notification outbox, lists form
// submissions, and runs migrations.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
