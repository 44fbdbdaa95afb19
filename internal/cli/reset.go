package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovumcalc/internal/config"
	"github.com/terraincognita07/ovumcalc/internal/db"
	"github.com/terraincognita07/ovumcalc/internal/security"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

const temporaryPinLength = 8

func newResetPinCommand() *cobra.Command {
	var (
		name   string
		dbPath string
		prompt bool
	)

	cmd := &cobra.Command{
		Use:   "reset-pin",
		Short: "Replace the PIN of a stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				dbPath = cfg.DBPath
			}

			pin := ""
			if prompt {
				fmt.Fprint(cmd.OutOrStdout(), "New PIN: ")
				entered, err := readPin(os.Stdin)
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return fmt.Errorf("read pin: %w", err)
				}
				if strings.TrimSpace(entered) == "" {
					return errors.New("pin must not be empty")
				}
				pin = entered
			}
			return RunResetPinCommand(dbPath, name, pin, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Profile name")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default DB_PATH)")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "Prompt for the new PIN instead of generating one")
	return cmd
}

// RunResetPinCommand stores pin for the named profile. An empty pin is
// replaced by a generated temporary one, which is printed.
func RunResetPinCommand(dbPath string, name string, pin string, out io.Writer) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("profile name is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	profileService := services.NewProfileService(db.NewRepositories(database).Profiles)
	profile, err := profileService.FindByName(name)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return fmt.Errorf("profile %q not found", strings.TrimSpace(name))
		}
		return fmt.Errorf("load profile: %w", err)
	}

	generated := pin == ""
	if generated {
		pin, err = security.TemporaryPin(temporaryPinLength)
		if err != nil {
			return fmt.Errorf("generate temporary pin: %w", err)
		}
	}

	if err := profileService.ResetPin(profile.ID, pin); err != nil {
		return fmt.Errorf("update profile pin: %w", err)
	}

	fmt.Fprintf(out, "PIN reset for profile %q\n", profile.Name)
	if generated {
		fmt.Fprintf(out, "Temporary PIN: %s\n", pin)
	}
	return nil
}
