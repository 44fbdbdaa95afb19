package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovumcalc/internal/i18n"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

type cycleFlags struct {
	lastPeriod string
	cycle      string
	period     string
}

func (flags *cycleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.lastPeriod, "last-period", "", "Start of the last period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.cycle, "cycle", "", "Cycle length in days (e.g. 28)")
	cmd.Flags().StringVar(&flags.period, "period", "", "Period length in days (e.g. 5)")
}

func (flags *cycleFlags) derive() (services.CycleWindows, error) {
	inputs, err := services.ParseCycleInputs(services.RawCycleInputs{
		LastPeriodStart: flags.lastPeriod,
		CycleLength:     flags.cycle,
		PeriodLength:    flags.period,
	})
	if err != nil {
		return services.CycleWindows{}, describeInputError(err)
	}
	return services.DeriveCycleWindows(inputs)
}

func describeInputError(err error) error {
	switch {
	case errors.Is(err, services.ErrCycleStartDateInvalid):
		return fmt.Errorf("--last-period must be a date in YYYY-MM-DD format: %w", err)
	case errors.Is(err, services.ErrInsufficientInput):
		return fmt.Errorf("--last-period, --cycle and --period are required and must be > 0: %w", err)
	default:
		return err
	}
}

func newWindowsCommand() *cobra.Command {
	var (
		flags  cycleFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Print the derived cycle windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, err := flags.derive()
			if err != nil {
				return err
			}
			if asJSON {
				return printWindowsJSON(cmd.OutOrStdout(), windows)
			}
			return printWindowsTable(cmd.OutOrStdout(), windows)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newPhaseCommand() *cobra.Command {
	var (
		flags    cycleFlags
		dateRaw  string
		language string
	)

	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Classify a date against the derived cycle windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, err := flags.derive()
			if err != nil {
				return err
			}

			day := services.DateAtLocation(time.Now(), time.Local)
			if strings.TrimSpace(dateRaw) != "" {
				day, err = services.ParseDay(strings.TrimSpace(dateRaw))
				if err != nil {
					return fmt.Errorf("--date must be a date in YYYY-MM-DD format: %w", err)
				}
			}

			manager, err := i18n.NewEmbeddedManager(i18n.LangEN)
			if err != nil {
				return err
			}
			return printPhase(cmd.OutOrStdout(), manager, manager.NormalizeLanguage(language), day, services.ClassifyDay(day, windows))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dateRaw, "date", "", "Date to classify (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&language, "lang", i18n.LangEN, "Output language (en, ru)")
	return cmd
}

type windowRow struct {
	key   string
	value time.Time
}

func windowRows(windows services.CycleWindows) []windowRow {
	return []windowRow{
		{key: "period_start", value: windows.PeriodStart},
		{key: "period_end", value: windows.PeriodEnd},
		{key: "ovulation_date", value: windows.OvulationDate},
		{key: "fertility_start", value: windows.FertilityStart},
		{key: "fertility_end", value: windows.FertilityEnd},
		{key: "pre_ovulation_start", value: windows.PreOvulationStart},
		{key: "pre_ovulation_end", value: windows.PreOvulationEnd},
		{key: "post_ovulation_start", value: windows.PostOvulationStart},
		{key: "post_ovulation_end", value: windows.PostOvulationEnd},
	}
}

func printWindowsTable(out io.Writer, windows services.CycleWindows) error {
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, row := range windowRows(windows) {
		if _, err := fmt.Fprintf(writer, "%s\t%s\n", row.key, services.FormatDay(row.value)); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func printWindowsJSON(out io.Writer, windows services.CycleWindows) error {
	payload := make(map[string]string, 9)
	for _, row := range windowRows(windows) {
		payload[row.key] = services.FormatDay(row.value)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func printPhase(out io.Writer, manager *i18n.Manager, language string, day time.Time, phase services.PhaseLabel) error {
	label := manager.Translate(language, phase.MessageKey())
	_, err := fmt.Fprintf(out, "%s: %s\n%s\n",
		services.FormatDay(day),
		label,
		manager.Translatef(language, "phase.description", label),
	)
	return err
}
