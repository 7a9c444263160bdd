// Command crtseq sizes, generates, verifies and serves trial sequences for
// the continuous recognition memorability task.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Build variables - set by ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err == nil {
		log.Println("crtseq: loaded environment from .env")
	}

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the resolved configuration into subcommands.
type app struct {
	cfg        appConfig
	configPath string
	out        io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "crtseq",
		Short:         "Continuous recognition trial sequencer",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), a.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a.cfg = cfg

			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./"+defaultConfigFile+" when present)")
	registerFlags(root.PersistentFlags())

	root.AddCommand(
		a.countsCmd(),
		a.buildCmd(),
		a.verifyCmd(),
		a.manifestCmd(),
		a.serveCmd(),
	)

	return root
}
