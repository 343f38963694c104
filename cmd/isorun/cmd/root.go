package cmd

import (
	"fmt"
	"os"

	"isorun/pkg/isolate"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// NewRootCmd builds the full command tree. Tests build their own tree so
// flag state never leaks between runs.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "isorun",
		Short: "Isorun executes interpreter code snippets in isolated child processes",
		Long: `isorun runs snippets of interpreter code in freshly spawned child
interpreter processes and captures their output.

Each run gets a clean process: no shared globals, no leaked output
buffering, and settings that only take effect at interpreter startup.
A crash or fatal error in the executed code never takes down the caller.

Common workflows:

  Run inline code:
    isorun run --code 'echo "hello";'

  Run a script file with arguments:
    isorun run script.php -- --verbose input.txt

  Pipe data to code externalized to a temp file:
    isorun run --code 'echo stream_get_contents(STDIN);' --input 'data'

  Run many scripts concurrently:
    isorun batch tests/*.php --concurrency 4

Configuration:
  Set defaults via environment variables or a config file:
    ISORUN_INTERPRETER   interpreter binary (default: php)
    ISORUN_TEMP_DIR      directory for externalized code files`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.isorun.yaml)")

	rootCmd.PersistentFlags().String("interpreter", "php", "interpreter binary that executes jobs")
	viper.BindPFlag("interpreter", rootCmd.PersistentFlags().Lookup("interpreter"))

	rootCmd.PersistentFlags().String("file-flag", "-f", "flag preceding a script path (empty passes the bare path)")
	viper.BindPFlag("file_flag", rootCmd.PersistentFlags().Lookup("file-flag"))

	rootCmd.PersistentFlags().String("temp-dir", "", "directory for externalized code files")
	viper.BindPFlag("temp_dir", rootCmd.PersistentFlags().Lookup("temp-dir"))

	rootCmd.PersistentFlags().Bool("debugger", false, "treat the interpreter as a debugger front-end")
	viper.BindPFlag("debugger", rootCmd.PersistentFlags().Lookup("debugger"))

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newBatchCmd())

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// newRunner builds a runner from the resolved configuration.
func newRunner() *isolate.Runner {
	r := isolate.NewRunner(viper.GetString("interpreter"))
	r.Flags.File = viper.GetString("file_flag")
	r.Flags.DebuggerFrontEnd = viper.GetBool("debugger")
	r.TempDir = viper.GetString("temp_dir")
	return r
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".isorun"
		viper.AddConfigPath(home)
		viper.SetConfigName(".isorun")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "ISORUN_VARNAME"
	viper.SetEnvPrefix("ISORUN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
