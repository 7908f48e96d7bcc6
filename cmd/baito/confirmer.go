package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"baito/internal/domain/service"
)

// stdinConfirmer asks the user on the terminal. Only an explicit "y" or "yes"
// counts as an affirmation; everything else, including EOF, dismisses.
type stdinConfirmer struct {
	reader *bufio.Reader
}

func newConfirmer() service.Confirmer {
	return &stdinConfirmer{reader: bufio.NewReader(os.Stdin)}
}

func (c *stdinConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)

	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		// EOF without input is a dismissal, not a failure.
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}
