package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const chatPrompt = "> "

func newChatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive question loop",
		Long:  "Reads one question per line until end of input or `exit`. Failed questions are reported inline and the loop continues.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, _, err := ctx.assistant(nil)
			if err != nil {
				return err
			}
			cfg, _ := ctx.ensureConfig()

			in := cmd.InOrStdin()
			out := cmd.OutOrStdout()
			interactive := isTerminal(in)

			scanner := bufio.NewScanner(in)
			for {
				if interactive {
					fmt.Fprint(out, chatPrompt)
				}
				if !scanner.Scan() {
					break
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					continue
				}
				if question == "exit" || question == "quit" {
					break
				}

				askCtx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
				answer, err := orch.HandleUserQuestion(askCtx, question)
				cancel()
				if err != nil {
					if cmd.Context().Err() != nil {
						return cmd.Context().Err()
					}
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				fmt.Fprintln(out, answer)
			}
			return scanner.Err()
		},
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
