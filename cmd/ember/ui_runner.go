package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ember/internal/buildpipeline"
	"ember/internal/ui"
)

var errBuildAborted = errors.New("build aborted")

type buildOutcome struct {
	result buildpipeline.BuildResult
	err    error
}

func runBuildWithUI(ctx context.Context, title string, files []string, req *buildpipeline.BuildRequest) (buildpipeline.BuildResult, error) {
	if req == nil {
		return buildpipeline.BuildResult{}, fmt.Errorf("missing build request")
	}
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)
	// quitting the UI stops the build instead of leaving it blocked on events
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events, Done: ctx.Done()}
		res, err := buildpipeline.Build(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	final, uiErr := program.Run()
	cancel()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	if ui.Aborted(final) {
		return outcome.result, errBuildAborted
	}
	return outcome.result, outcome.err
}
