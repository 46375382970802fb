package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/tmoller/trialscope/bungie"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search for a player by display name",
	Long: `Search for Destiny 2 players by display name. Without --platform the
search spans every platform.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Search defaults to all platforms unless one was named explicitly.
	platform := bungie.MembershipTypeAll
	if cmd.Flags().Changed("platform") {
		var err error
		platform, err = resolvePlatform(true)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()
	results, err := bungieClient.SearchPlayer(ctx, platform, args[0])
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No players found.")
		return nil
	}

	fmt.Printf("\nFound %d players:\n\n", len(results))

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("NAME", "PLATFORM", "MEMBERSHIP ID")

	for _, result := range results {
		name := result.DisplayName
		if result.BungieGlobalDisplayName != "" {
			name = result.BungieGlobalDisplayName
		}

		platformLabel := result.Platform().DisplayName()
		if platformLabel == "" {
			platformLabel = "?"
		}

		table.Append(name, platformLabel, result.MembershipID)
	}
	table.Render()

	return nil
}
