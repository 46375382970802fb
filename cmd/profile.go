package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile <membership-id>",
	Short: "Fetch a player's profile and character progressions",
	Long: `Fetch a player's Destiny 2 profile, including the account header and the
progression tracks of every character on the account.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	platform, err := resolvePlatform(false)
	if err != nil {
		return err
	}

	ctx := context.Background()
	profile, err := bungieClient.GetProfile(ctx, platform, args[0])
	if err != nil {
		return err
	}

	header := profile.Profile.Data
	fmt.Printf("\n%s [%s]\n", header.UserInfo.DisplayName, platform.DisplayName())
	if !header.DateLastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", header.DateLastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("CHARACTER", "TRACKS", "TOP LEVEL")

	for _, characterID := range header.CharacterIDs {
		progressions := profile.CharacterProgressions.Data[characterID]

		topLevel := 0
		for _, p := range progressions.Progressions {
			if p.Level > topLevel {
				topLevel = p.Level
			}
		}

		table.Append(
			characterID,
			strconv.Itoa(len(progressions.Progressions)),
			strconv.Itoa(topLevel),
		)
	}
	table.Render()

	return nil
}
