package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/keepmind9/wrtbot/internal/core"
	"github.com/spf13/cobra"
)

var validateJSON bool

var errInvalidConfig = errors.New("configuration is invalid")

// ValidationResult represents the validation result
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Config   string   `json:"config"`
	Bots     []string `json:"bots"`
	UbusPath string   `json:"ubus_path,omitempty"`
	LogFile  string   `json:"log_file,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate wrtbot configuration",
	Long: `Validate the wrtbot configuration without starting any bot.

This command checks:
  - YAML syntax and ${VAR} references
  - BOT_* environment overrides
  - At least one bot token with a non-empty allow list
  - Logging and ubus settings

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveConfigPath(configFile)
		result := validate(path)

		if err := outputValidationResult(cmd.OutOrStdout(), result, validateJSON); err != nil {
			return err
		}
		if !result.Valid {
			return errInvalidConfig
		}
		return nil
	},
}

func validate(path string) ValidationResult {
	display := path
	if display == "" {
		display = "(environment only)"
	}

	cfg, err := core.LoadConfig(path)
	if err != nil {
		return ValidationResult{
			Valid:  false,
			Config: display,
			Bots:   []string{},
			Errors: []string{err.Error()},
		}
	}

	return ValidationResult{
		Valid:    true,
		Config:   display,
		Bots:     cfg.EnabledBots(),
		UbusPath: cfg.Ubus.Path,
		LogFile:  cfg.Logging.File,
		Warnings: validateConfigDetails(cfg),
	}
}

// validateConfigDetails reports problems that do not stop the bots from
// starting.
func validateConfigDetails(cfg *core.Config) []string {
	var warnings []string

	if _, err := exec.LookPath(cfg.Ubus.Path); err != nil {
		warnings = append(warnings, fmt.Sprintf("ubus binary %q not found: router queries will fail", cfg.Ubus.Path))
	}

	return warnings
}

func outputValidationResult(out io.Writer, result ValidationResult, jsonFormat bool) error {
	if jsonFormat {
		output, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		fmt.Fprintln(out, string(output))
		return nil
	}

	if result.Valid {
		fmt.Fprintln(out, "✓ Configuration is valid")
		fmt.Fprintf(out, "  - Config: %s\n", result.Config)
		fmt.Fprintf(out, "  - Bots: %v\n", result.Bots)
		fmt.Fprintf(out, "  - Ubus: %s\n", result.UbusPath)
		fmt.Fprintf(out, "  - Log file: %s\n", result.LogFile)
	} else {
		fmt.Fprintln(out, "❌ Configuration validation failed:")
		fmt.Fprintf(out, "  - Config: %s\n", result.Config)
		if len(result.Errors) > 0 {
			fmt.Fprintln(out, "\nErrors:")
			for _, errMsg := range result.Errors {
				fmt.Fprintf(out, "  - %s\n", errMsg)
			}
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "\n⚠️  Warnings:")
		for _, warning := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", warning)
		}
	}
	return nil
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
}
