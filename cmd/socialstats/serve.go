package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/harvest"
)

// maxRequestSize bounds one request line on stdin.
const maxRequestSize = 1 << 20

// Run executes the serve command. Requests are read from stdin, one JSON
// object per line, and each gets one JSON response line on stdout.
func (c *ServeCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.FindSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	page, err := deps.Browser.Open(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}
	defer page.Close()

	sess := deps.newSession(page, settings)
	sess.Changes = page
	sess.Reorderer = page
	defer sess.Close()
	if err := sess.Start(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	handler := &harvest.Handler{Content: sess}
	enc := json.NewEncoder(deps.Stdout)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(deps.Stdin)
		sc.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-deps.Ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-deps.Ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading requests: %w", err)
					}
				default:
				}
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			var req harvest.Request
			resp := harvest.Response{Success: false, Message: "Invalid request."}
			if err := json.Unmarshal([]byte(line), &req); err == nil {
				resp = handler.Handle(deps.Ctx, req)
			}
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}
