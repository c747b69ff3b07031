// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConsoleConfirmer prompts on Out and reads one line from In. Only an
// explicit "n" declines; anything else, including EOF, proceeds.
type ConsoleConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer.
func (c ConsoleConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprint(c.Out, prompt)

	answer, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	return !IsDecline(answer), nil
}

// IsDecline reports whether answer is the explicit negative response.
func IsDecline(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "n"
}

// ScriptedConfirmer answers from a fixed list, for tests and non-interactive
// use. Once the script runs out it keeps proceeding.
type ScriptedConfirmer struct {
	Answers []string
	Asked   []string
}

// Confirm implements Confirmer.
func (s *ScriptedConfirmer) Confirm(prompt string) (bool, error) {
	s.Asked = append(s.Asked, prompt)
	if len(s.Answers) == 0 {
		return true, nil
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return !IsDecline(answer), nil
}
