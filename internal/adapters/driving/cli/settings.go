package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the render policy, fetch timeout, and other options.

Use subcommands to change a single setting or run the interactive wizard.
Settings live in ~/.linkcard/config.toml and can also be edited by hand.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all preview settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsPolicyCmd = &cobra.Command{
	Use:   "policy [strict|loose]",
	Short: "Set the render policy",
	Long: `Set the render policy that decides when a card is shown.

Available policies:
  strict - Show a card only when a title or description was found
  loose  - Also show cards with only a link, using it as the title

Without an argument the current policy is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsPolicy,
}

var settingsTimeoutCmd = &cobra.Command{
	Use:   "timeout [duration]",
	Short: "Set the fetch timeout",
	Long:  `Set how long a fetch may take, e.g. "5s" or "1500ms".`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsTimeout,
}

var settingsAnimationCmd = &cobra.Command{
	Use:   "animation [on|off]",
	Short: "Toggle the card transition",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsAnimation,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsPolicyCmd)
	settingsCmd.AddCommand(settingsTimeoutCmd)
	settingsCmd.AddCommand(settingsAnimationCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Preview]")
	cmd.Printf("  Policy: %s\n", settings.Preview.Policy.Description())
	cmd.Printf("  Request timeout: %s\n", settings.Preview.RequestTimeout)
	cmd.Printf("  Animation: %s\n", onOff(settings.Preview.EnableAnimation))
	cmd.Println()

	cmd.Println("[Fetch]")
	cmd.Printf("  User agent: %s\n", valueOr(settings.Fetch.UserAgent, "(default)"))
	cmd.Printf("  Max body: %d bytes\n", settings.Fetch.MaxBodyBytes)
	cmd.Printf("  Rate: %d/s\n", settings.Fetch.RatePerSecond)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.History.Enabled))
	cmd.Printf("  Limit: %d\n", settings.History.Limit)
	cmd.Println()

	cmd.Println("[Enrich]")
	cmd.Printf("  GitHub: %s\n", onOff(settings.Enrich.GitHub))
	cmd.Printf("  GitHub token: %s\n", maskSecret(settings.Enrich.GitHubToken))
	cmd.Printf("  YouTube API key: %s\n", maskSecret(settings.Enrich.YouTubeAPIKey))
	cmd.Println()

	if configPath != "" {
		cmd.Printf("Config file: %s\n", configPath)
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'linkcard settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("linkcard Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Render policy
	cmd.Println("Step 1: Select Render Policy")
	cmd.Println("----------------------------")
	policies := domain.AllRenderPolicies()
	defaultPolicy := 1
	for i, policy := range policies {
		if policy == current.Preview.Policy {
			defaultPolicy = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, policy.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultPolicy)
	policy := policies[parseChoice(readLine(reader), len(policies), defaultPolicy)-1]
	if err := settingsService.SetPolicy(policy); err != nil {
		return fmt.Errorf("failed to set policy: %w", err)
	}
	cmd.Println()

	// Step 2: Timeout
	cmd.Println("Step 2: Request Timeout")
	cmd.Println("-----------------------")
	cmd.Printf("Enter timeout [%s]: ", current.Preview.RequestTimeout)
	if input := readLine(reader); input != "" {
		timeout, err := time.ParseDuration(input)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input, err)
		}
		if err := settingsService.SetRequestTimeout(timeout); err != nil {
			return fmt.Errorf("failed to set timeout: %w", err)
		}
	}
	cmd.Println()

	// Step 3: Animation
	cmd.Println("Step 3: Card Transition")
	cmd.Println("-----------------------")
	cmd.Printf("Animate new cards? (y/n) [%s]: ", yesNo(current.Preview.EnableAnimation)[:1])
	if input := strings.ToLower(readLine(reader)); input != "" {
		if err := settingsService.SetEnableAnimation(strings.HasPrefix(input, "y")); err != nil {
			return fmt.Errorf("failed to set animation: %w", err)
		}
	}
	cmd.Println()

	cmd.Println("Settings saved.")
	return nil
}

func runSettingsPolicy(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if len(args) == 0 {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cmd.Printf("Current policy: %s\n", settings.Preview.Policy)
		cmd.Println()
		cmd.Println("Available policies:")
		for _, p := range domain.AllRenderPolicies() {
			cmd.Printf("  %s\n", p.Description())
		}
		return nil
	}

	policy := domain.RenderPolicy(strings.ToLower(args[0]))
	if !policy.IsValid() {
		return fmt.Errorf("invalid policy %q (use strict or loose)", args[0])
	}
	if err := settingsService.SetPolicy(policy); err != nil {
		return fmt.Errorf("failed to set policy: %w", err)
	}

	cmd.Printf("Render policy set to %s\n", policy)
	return nil
}

func runSettingsTimeout(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	timeout, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", args[0], err)
	}
	if err := settingsService.SetRequestTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set timeout: %w", err)
	}

	cmd.Printf("Request timeout set to %s\n", timeout)
	return nil
}

func runSettingsAnimation(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		enabled = true
	case "off", "false", "no":
		enabled = false
	default:
		return fmt.Errorf("invalid value %q (use on or off)", args[0])
	}

	if err := settingsService.SetEnableAnimation(enabled); err != nil {
		return fmt.Errorf("failed to set animation: %w", err)
	}

	cmd.Printf("Animation %s\n", onOff(enabled))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// maskSecret shows only the last four characters of a credential.
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
