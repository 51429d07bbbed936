package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quell/internal/runner"
	"quell/internal/ui"
)

type runOutcome struct {
	outcomes []runner.Outcome
	err      error
}

func runCasesWithUI(ctx context.Context, title string, paths []string, opts runner.Options) ([]runner.Outcome, error) {
	events := make(chan runner.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = runner.ChannelSink{Ch: events}
		res, err := runner.Run(ctx, paths, optsCopy)
		outcomeCh <- runOutcome{outcomes: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Keep draining so the runner never blocks on a full channel.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && ctx.Err() == nil {
		return outcome.outcomes, uiErr
	}
	return outcome.outcomes, outcome.err
}
