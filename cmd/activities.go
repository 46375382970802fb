package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tmoller/trialscope/bungie"
	"github.com/tmoller/trialscope/filter"
)

var filterExpr string

// activitiesCmd represents the activities command
var activitiesCmd = &cobra.Command{
	Use:   "activities <membership-id> <character-id>...",
	Short: "Fetch Trials of Osiris match history for one or more characters",
	Long: `Fetch the Trials of Osiris activity history of one or more characters on
an account. With more than one character, the histories are fetched
concurrently. An optional filter expression narrows the results, e.g.

  trialscope activities 4611686018467284386 2305843009301 --filter "victory && kills >= 10"
  trialscope activities 4611686018467284386 2305843009301 --filter "period > daysAgo(7)"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runActivities,
}

func init() {
	rootCmd.AddCommand(activitiesCmd)

	activitiesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
}

func runActivities(cmd *cobra.Command, args []string) error {
	platform, err := resolvePlatform(false)
	if err != nil {
		return err
	}

	// Compile the filter up front so a bad expression fails before any
	// network call.
	var activityFilter *filter.Filter
	if filterExpr != "" {
		activityFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	membershipID := args[0]
	characterIDs := args[1:]

	// Fetch each character's history concurrently. The client itself stays
	// single-call; fan-out is layered here.
	g, ctx := errgroup.WithContext(context.Background())

	var mu sync.Mutex
	byCharacter := make(map[string][]bungie.Activity, len(characterIDs))

	for _, characterID := range characterIDs {
		characterID := characterID
		g.Go(func() error {
			activities, err := bungieClient.GetActivityHistory(ctx, platform, membershipID, characterID)
			if err != nil {
				return fmt.Errorf("failed to get history for character %s: %w", characterID, err)
			}

			mu.Lock()
			byCharacter[characterID] = activities
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Flatten in the order the characters were given, newest first within
	// each character as the API returns them.
	var all []activityRow
	for _, characterID := range characterIDs {
		for _, activity := range byCharacter[characterID] {
			all = append(all, activityRow{characterID: characterID, activity: activity})
		}
	}

	if activityFilter != nil {
		filtered := all[:0]
		for _, row := range all {
			ok, err := activityFilter.Match(row.activity)
			if err != nil {
				return err
			}
			if ok {
				filtered = append(filtered, row)
			}
		}
		all = filtered
	}

	if len(all) == 0 {
		fmt.Println("No activities found matching the criteria.")
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].activity.Period.After(all[j].activity.Period)
	})

	fmt.Printf("\nFound %d activities:\n\n", len(all))
	printActivityTable(all)

	return nil
}

type activityRow struct {
	characterID string
	activity    bungie.Activity
}

func printActivityTable(rows []activityRow) {
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("DATE", "CHARACTER", "RESULT", "K", "D", "A", "K/D")

	for _, row := range rows {
		result := "Defeat"
		if row.activity.Victory() {
			result = "Victory"
		}

		table.Append(
			row.activity.Period.Format("2006-01-02 15:04"),
			row.characterID,
			result,
			strconv.Itoa(row.activity.Kills()),
			strconv.Itoa(row.activity.Deaths()),
			strconv.Itoa(row.activity.Assists()),
			fmt.Sprintf("%.2f", row.activity.KDRatio()),
		)
	}
	table.Render()
}
