package cmd

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rorical/RoriSQL/internal/app"
	"github.com/Rorical/RoriSQL/internal/config"
	"github.com/Rorical/RoriSQL/internal/logging"
)

const (
	ArgProfile    = "profile"
	ArgBackendURL = "backend-url"
	ArgLogLevel   = "log-level"
	EnvPrefix     = "RORISQL"
)

var rootCmd = &cobra.Command{
	Use:   "rorisql",
	Short: "Turn questions into SQL from the terminal",
	Long:  `RoriSQL sends natural-language questions to a SQL generation service and shows the generated query and its result table.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runApp(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)

	flags := rootCmd.PersistentFlags()
	flags.String(ArgProfile, "", "Profile to use instead of the active one")
	flags.String(ArgBackendURL, "", "Backend base URL, overriding the profile")
	flags.String(ArgLogLevel, "off", "Log level: debug, info, warn, error or off")

	for _, name := range []string{ArgProfile, ArgBackendURL, ArgLogLevel} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			log.Fatalf("Failed to bind flag %s: %v", name, err)
		}
	}

	rootCmd.AddCommand(profileCmd)
}

// initEnv loads .env from the working directory and lets RORISQL_* variables back the flags
func initEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the profile file and applies flag and env overrides
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.ApplyOverrides(config.Overrides{
		Profile:    viper.GetString(ArgProfile),
		BackendURL: viper.GetString(ArgBackendURL),
	}); err != nil {
		log.Fatalf("Invalid override: %v", err)
	}
	return cfg
}

func logLevel() slog.Level {
	level, err := logging.ParseLevel(viper.GetString(ArgLogLevel))
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	return level
}

func runApp(cfg *config.Config) {
	dir, err := config.Dir()
	if err != nil {
		log.Fatalf("Failed to resolve config directory: %v", err)
	}

	// The TUI owns the terminal, so logs go to a file
	logger, closer, err := logging.NewFileLogger(dir, logLevel())
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeQuietly(closer)

	application, err := app.NewApplication(cfg, logger, isatty.IsTerminal(os.Stdout.Fd()))
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
