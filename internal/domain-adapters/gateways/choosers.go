package gateways

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ochairo/wokwikit/internal/domain/entities"
	"github.com/ochairo/wokwikit/internal/domain/services"
)

// AutoChooser picks the most recently built group without interaction.
type AutoChooser struct{}

// Choose applies the latest-modification tie-break rule.
func (AutoChooser) Choose(_ context.Context, groups []entities.FirmwareGroup) (*entities.FirmwareGroup, error) {
	g := services.Latest(groups)
	if g == nil {
		return nil, entities.ErrNoCompleteGroups
	}
	return g, nil
}

// IndexChooser picks a fixed 1-based index, for scripted callers.
type IndexChooser struct {
	Index int
}

// Choose validates the index against the candidate list.
func (c IndexChooser) Choose(_ context.Context, groups []entities.FirmwareGroup) (*entities.FirmwareGroup, error) {
	if c.Index < 1 || c.Index > len(groups) {
		return nil, fmt.Errorf("selection %d out of range 1-%d", c.Index, len(groups))
	}
	return &groups[c.Index-1], nil
}

// PromptChooser asks the user interactively. Empty input falls back to
// the automatic rule; EOF or context cancellation is a terminal failure,
// not a retry.
type PromptChooser struct {
	In  io.Reader
	Out io.Writer
}

// Choose presents the candidates and reads a validated numeric choice,
// re-prompting on out-of-range or non-numeric input.
func (c PromptChooser) Choose(ctx context.Context, groups []entities.FirmwareGroup) (*entities.FirmwareGroup, error) {
	fmt.Fprintf(c.Out, "\nFound %d firmware groups:\n", len(groups))
	for i, g := range groups {
		fmt.Fprintf(c.Out, "%d. %s (%s)\n", i+1, g.Base, g.Dir)
		fmt.Fprintf(c.Out, "   BIN: %s\n", g.Primary.Name())
		fmt.Fprintf(c.Out, "   ELF: %s\n\n", g.Debug.Name())
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.In)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprintf(c.Out, "Select firmware group (1-%d) or Enter for latest: ", len(groups))

		var line string
		select {
		case <-ctx.Done():
			return nil, entities.ErrSelectionCancelled
		case err := <-scanErr:
			if err != nil {
				return nil, fmt.Errorf("%w: %v", entities.ErrSelectionCancelled, err)
			}
			return nil, entities.ErrSelectionCancelled
		case line = <-lines:
		}

		choice := strings.TrimSpace(line)
		if choice == "" {
			return AutoChooser{}.Choose(ctx, groups)
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(groups) {
			fmt.Fprintf(c.Out, "Please select a number from 1 to %d\n", len(groups))
			continue
		}
		return &groups[n-1], nil
	}
}
