package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/Rorical/RoriSQL/internal/cli"
	"github.com/Rorical/RoriSQL/internal/generator"
	"github.com/Rorical/RoriSQL/internal/logging"
)

const ArgOutput = "output"

// variable used to assign the output mode flag
var askOutputMode = cli.OutputTable

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Generate SQL for a single question",
	Long:  `Send one question to the active profile's generator and print the SQL and result table.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		logger := logging.New(os.Stderr, logLevel())

		gen, target, err := generator.FromConfig(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to create generator: %v", err)
		}
		logger.Debug("asking", "profile", cfg.ActiveProfile, "generator", target.Kind, "target", target.Endpoint)

		code := cli.Run(cmd.Context(), cli.Options{
			Generator:   gen,
			Question:    strings.Join(args, " "),
			Output:      askOutputMode,
			Stdout:      os.Stdout,
			Stderr:      os.Stderr,
			Interactive: isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stderr.Fd()),
			Logger:      logger,
		})
		os.Exit(code)
	},
}

func init() {
	askCmd.Flags().VarP(
		enumflag.New(&askOutputMode, ArgOutput, cli.OutputModeIds, enumflag.EnumCaseInsensitive),
		ArgOutput, "o",
		fmt.Sprintf("Output format; one of: %s", strings.Join(cli.FlagValues(), ", ")))

	rootCmd.AddCommand(askCmd)
}
