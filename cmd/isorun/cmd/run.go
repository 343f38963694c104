package cmd

import (
	"fmt"
	"io"
	"strings"

	"isorun/pkg/isolate"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		code           string
		input          string
		settings       []string
		envPairs       []string
		redirectStderr bool
	)

	runCmd := &cobra.Command{
		Use:   "run [script] [-- args...]",
		Short: "Execute one snippet in an isolated interpreter process",
		Long: `Run executes a single unit of work in a fresh child interpreter process
and writes the captured stdout and stderr to this process's streams.

The code comes from --code, from a script file argument, or from stdin
when neither is given. With --input, the code is externalized to a
temporary file so the input can occupy the child's stdin.`,
		Args: func(cmd *cobra.Command, args []string) error {
			// At most one script path; everything after -- goes to the child.
			n := len(args)
			if at := cmd.ArgsLenAtDash(); at >= 0 {
				n = at
			}
			if n > 1 {
				return fmt.Errorf("accepts at most 1 script, received %d", n)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			script := ""
			jobArgs := args
			if at := cmd.ArgsLenAtDash(); at >= 0 {
				if at > 0 {
					script = args[0]
				}
				jobArgs = args[at:]
			} else if len(args) > 0 {
				script = args[0]
				jobArgs = nil
			}

			if script == "" && code == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					cmd.PrintErrf("Failed to read code from stdin: %v\n", err)
					return
				}
				code = string(data)
			}

			var source isolate.Source
			switch {
			case script != "":
				source = isolate.ScriptFile{Path: script, Input: input}
			case input != "":
				source = isolate.CodeWithInput{Code: code, Input: input}
			default:
				source = isolate.InlineCode{Code: code}
			}

			job := isolate.Job{
				Source:         source,
				Settings:       parseSettings(settings),
				Env:            parseEnv(envPairs),
				Args:           jobArgs,
				RedirectStderr: redirectStderr,
			}

			result, err := newRunner().Run(cmd.Context(), job)
			if err != nil {
				cmd.PrintErrf("Execution failed: %v\n", err)
				return
			}

			fmt.Fprint(cmd.OutOrStdout(), result.Stdout)
			if result.Stderr != "" {
				fmt.Fprint(cmd.ErrOrStderr(), result.Stderr)
			}
		},
	}

	runCmd.Flags().StringVarP(&code, "code", "c", "", "code to execute (default: read from stdin)")
	runCmd.Flags().StringVar(&input, "input", "", "data piped to the child's stdin instead of the code")
	runCmd.Flags().StringArrayVarP(&settings, "setting", "d", nil, "interpreter setting key=value (ordered, repeatable)")
	runCmd.Flags().StringArrayVarP(&envPairs, "env", "e", nil, "environment override key=value (repeatable)")
	runCmd.Flags().BoolVar(&redirectStderr, "redirect-stderr", false, "merge the child's stderr into stdout")

	return runCmd
}

// parseSettings splits repeated key=value flags, keeping flag order.
func parseSettings(pairs []string) []isolate.Setting {
	var settings []isolate.Setting
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		settings = append(settings, isolate.Setting{Key: key, Value: value})
	}
	return settings
}

func parseEnv(pairs []string) map[string]any {
	if len(pairs) == 0 {
		return nil
	}
	env := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		env[key] = value
	}
	return env
}
