package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/esimov/gnt"
	"github.com/esimov/gnt/utils"
)

// termOperator answers the exporter questions from the command line flags,
// prompting on the terminal when asked to.
type termOperator struct {
	append  bool
	policy  string
	in      *bufio.Reader
	out     io.Writer
	spinner *utils.Spinner
	prompt  bool
}

func newTermOperator(append bool, policy string, spinner *utils.Spinner) (*termOperator, error) {
	switch policy {
	case "skip", "abort", "ask":
	default:
		return nil, fmt.Errorf("invalid --on-error value %q: use skip, abort or ask", policy)
	}
	return &termOperator{
		append:  append,
		policy:  policy,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stderr,
		spinner: spinner,
		prompt:  utils.IsTerminal(os.Stdin),
	}, nil
}

func (o *termOperator) ConfirmAppend(dir string) bool {
	if o.append {
		return true
	}
	if !o.prompt {
		fmt.Fprintln(o.out, utils.DecorateText(
			fmt.Sprintf("The folder %s already exists, use --append to save the images into it.", dir),
			utils.ErrorMessage))
		return false
	}
	return o.ask(fmt.Sprintf("There is already a folder named %q.\nDo you still want to save the decoded images to it? [y/N] ", dir), false)
}

func (o *termOperator) OnFileError(path string, err error) gnt.Decision {
	return o.decide(fmt.Sprintf("Cannot decode %s: %v\nContinue decoding the remaining files? [Y/n] ", path, err))
}

func (o *termOperator) OnWriteError(path string, err error) gnt.Decision {
	return o.decide(fmt.Sprintf("Cannot save %s: %v\nContinue decoding? [Y/n] ", path, err))
}

func (o *termOperator) decide(question string) gnt.Decision {
	switch {
	case o.policy == "skip":
		return gnt.Continue
	case o.policy == "abort":
		return gnt.Abort
	case !o.prompt:
		return gnt.Continue
	}
	if o.ask(question, true) {
		return gnt.Continue
	}
	return gnt.Abort
}

// ask prints a yes/no question and reads the answer, pausing the progress indicator.
func (o *termOperator) ask(question string, def bool) bool {
	if o.spinner != nil {
		o.spinner.Stop()
		defer o.spinner.Start()
	}
	fmt.Fprint(o.out, "\n"+utils.DecorateText(question, utils.StatusMessage))

	answer, err := o.in.ReadString('\n')
	if err != nil {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return def
}
