package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rorical/RoriSQL/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the query app",
	Long:  `Switch to the specified profile, save it as active and immediately start the query application.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if err := cfg.SwitchProfile(args[0]); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		// switching resolves the profile again, so the URL override is reapplied
		if err := cfg.ApplyOverrides(config.Overrides{BackendURL: viper.GetString(ArgBackendURL)}); err != nil {
			log.Fatalf("Invalid override: %v", err)
		}

		runApp(cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
