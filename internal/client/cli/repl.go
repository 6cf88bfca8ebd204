package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUnclosedQuote = errors.New("unclosed quote")

// runShell reads command lines until EOF, "exit" or "quit" and runs each
// through a fresh command tree. A failing command prints its notification
// and the loop goes on.
func (a *App) runShell(ctx context.Context) error {
	fmt.Fprintln(a.out, "clinicadmin shell (type 'help' for commands, 'exit' to leave)")

	for {
		fmt.Fprint(a.out, "clinic> ")
		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		args, perr := splitLine(line)
		switch {
		case perr != nil:
			a.notify(perr)
		case len(args) == 0:
		case args[0] == "exit" || args[0] == "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		case args[0] == "shell":
			fmt.Fprintln(a.out, "Already in the shell")
		default:
			if err := a.Run(ctx, args); err != nil {
				a.notify(err)
			}
		}

		if eof {
			fmt.Fprintln(a.out)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// splitLine splits a shell line on whitespace. Single or double quotes keep
// spaces inside one argument, so name="Ann Lee" is a single assignment.
func splitLine(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		started bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			started = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if quote != 0 {
		return nil, errUnclosedQuote
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}
