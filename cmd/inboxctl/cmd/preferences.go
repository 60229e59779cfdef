package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashinbox/internal/preference"
)

var darkModeCmd = &cobra.Command{
	Use:       "dark-mode [on|off|toggle]",
	Short:     "Show or change the dark mode preference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openPreferences(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		dm := preference.NewDarkMode(store)
		ctx := cmd.Context()

		var on bool
		switch {
		case len(args) == 0:
			on, err = dm.Enabled(ctx)
		case args[0] == "toggle":
			on, err = dm.Toggle(ctx)
		case args[0] == "on" || args[0] == "off":
			on = args[0] == "on"
			err = dm.Set(ctx, on)
		default:
			return fmt.Errorf("unknown argument %q", args[0])
		}
		if err != nil {
			return err
		}

		state := "off"
		if on {
			state = "on"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "dark mode %s\n", state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(darkModeCmd)
}
