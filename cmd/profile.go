package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSQL/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage generator profiles",
	Long:  `Manage profiles that select the SQL generation backend and its settings.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadProfiles()

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			printProfile(cfg.Profiles[name], "    ")
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadProfiles()

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		printProfile(profile, "")
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadProfiles()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			var err error
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile := promptProfile(config.DefaultProfileValues())
		if err := cfg.AddProfile(profileName, profile); err != nil {
			log.Fatalf("Failed to add profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadProfiles()

		profileName := profileArgOrSelect(cfg, args, "Select profile to edit", false)
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		if err := cfg.UpdateProfile(profileName, promptProfile(profile)); err != nil {
			log.Fatalf("Failed to update profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadProfiles()

		profileName := profileArgOrSelect(cfg, args, "Select profile to delete", false)
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		if err := cfg.DeleteProfile(profileName); err != nil {
			log.Fatalf("Failed to delete profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadProfiles()

		profileName := profileArgOrSelect(cfg, args, "Select profile to switch to", true)
		if profileName == "" {
			fmt.Println("No other profiles available to switch to")
			return
		}

		if err := cfg.SwitchProfile(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

// mustLoadProfiles loads the file as saved; flag overrides never leak into it
func mustLoadProfiles() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// profileArgOrSelect returns the named profile or lets the user pick one. It returns ""
// when there is nothing to pick.
func profileArgOrSelect(cfg *config.Config, args []string, label string, skipActive bool) string {
	if len(args) > 0 {
		return args[0]
	}

	names := make([]string, 0, len(cfg.Profiles))
	for _, name := range cfg.ProfileNames() {
		if skipActive && name == cfg.ActiveProfile {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		if skipActive {
			return ""
		}
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func promptProfile(profile config.Profile) config.Profile {
	generators := []string{config.GeneratorHTTP, config.GeneratorOpenAI}
	cursor := 0
	if profile.Generator == config.GeneratorOpenAI {
		cursor = 1
	}
	generatorPrompt := promptui.Select{
		Label:     "Generator",
		Items:     generators,
		CursorPos: cursor,
	}
	_, generator, err := generatorPrompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	profile.Generator = generator

	switch generator {
	case config.GeneratorHTTP:
		profile.BackendURL = runPrompt(promptui.Prompt{
			Label:   "Backend URL",
			Default: firstNonEmpty(profile.BackendURL, config.DefaultBackendURL),
			Validate: func(s string) error {
				if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
					return fmt.Errorf("must start with http:// or https://")
				}
				return nil
			},
		})
		timeout := runPrompt(promptui.Prompt{
			Label:   "Timeout in seconds (0 for none)",
			Default: strconv.Itoa(profile.TimeoutSeconds),
			Validate: func(s string) error {
				n, err := strconv.Atoi(s)
				if err != nil || n < 0 {
					return fmt.Errorf("must be a non-negative integer")
				}
				return nil
			},
		})
		profile.TimeoutSeconds, _ = strconv.Atoi(timeout)
	case config.GeneratorOpenAI:
		profile.APIKey = runPrompt(promptui.Prompt{
			Label:   "API Key",
			Default: profile.APIKey,
			Mask:    '*',
		})
		profile.Model = runPrompt(promptui.Prompt{
			Label:   "Model",
			Default: firstNonEmpty(profile.Model, config.DefaultModel),
		})
		profile.BaseURL = runPrompt(promptui.Prompt{
			Label:   "Base URL (optional)",
			Default: profile.BaseURL,
		})
		profile.Schema = runPrompt(promptui.Prompt{
			Label:   "Schema description (optional)",
			Default: profile.Schema,
		})
	}
	return profile
}

func runPrompt(prompt promptui.Prompt) string {
	value, err := prompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return strings.TrimSpace(value)
}

func printProfile(profile config.Profile, indent string) {
	generator := firstNonEmpty(profile.Generator, config.GeneratorHTTP)
	fmt.Printf("%sGenerator: %s\n", indent, generator)
	if generator == config.GeneratorOpenAI {
		fmt.Printf("%sModel: %s\n", indent, firstNonEmpty(profile.Model, config.DefaultModel))
		if profile.BaseURL != "" {
			fmt.Printf("%sBase URL: %s\n", indent, profile.BaseURL)
		}
		hasKey := "Not set"
		if profile.APIKey != "" {
			hasKey = "Set (hidden for security)"
		}
		fmt.Printf("%sAPI Key: %s\n", indent, hasKey)
		if profile.Schema != "" {
			fmt.Printf("%sSchema: %s\n", indent, profile.Schema)
		}
		return
	}

	fmt.Printf("%sBackend URL: %s\n", indent, firstNonEmpty(profile.BackendURL, config.DefaultBackendURL))
	if profile.TimeoutSeconds > 0 {
		fmt.Printf("%sTimeout: %ds\n", indent, profile.TimeoutSeconds)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
