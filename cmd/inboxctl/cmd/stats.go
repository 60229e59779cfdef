package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"dashinbox/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats <feed>",
	Short: "Print a statistics chart",
	Long:  "Print a statistics chart. Feeds: " + strings.Join(feedNames(), ", "),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feed, err := stats.Lookup(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := stats.NewClient(stats.ClientOptions{
			BaseURL:  cfg.API.BaseURL,
			APIToken: cfg.API.Token,
			Timeout:  cfg.API.Timeout,
		})
		charts, err := client.Fetch(cmd.Context(), feed)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, chart := range charts {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if err := stats.RenderText(out, chart); err != nil {
				return err
			}
		}
		return nil
	},
}

func feedNames() []string {
	names := make([]string, 0, len(stats.Feeds))
	for name := range stats.Feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
