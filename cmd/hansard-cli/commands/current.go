package commands

import (
	"context"
	"fmt"
	"hansard-scraper/internal/components/chrono"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/internal/render"
	"hansard-scraper/internal/scrapers/current"
	"hansard-scraper/internal/watch"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Scrapes the live site at mzalendo.com.",
}

var (
	currentPage        int
	currentAll         bool
	currentHouse       string
	currentSpeakers    bool
	currentMatch       string
	currentThreshold   float64
	currentAllActivity bool
	currentAllBills    bool
)

func init() {
	for _, cmd := range []*cobra.Command{currentListCmd, currentMembersCmd} {
		cmd.Flags().IntVar(&currentPage, "page", 1, "The page to fetch.")
		cmd.Flags().BoolVar(&currentAll, "all", false, "Fetch every page.")
		cmd.MarkFlagsMutuallyExclusive("page", "all")
	}
	currentListCmd.Flags().StringVar(&currentHouse, "house", "", "Only include sittings of this house (senate, national_assembly).")
	currentWatchCmd.Flags().StringVar(&currentHouse, "house", "", "Only include sittings of this house (senate, national_assembly).")
	currentWatchCmd.Flags().StringVar(&currentWatchSchedule, "schedule", "@every 30m", "When to poll, a cron spec evaluated in Nairobi time.")
	currentSittingCmd.Flags().BoolVar(&currentSpeakers, "fetch-speakers", false, "Resolve the profile of every speaker.")
	currentMembersCmd.Flags().StringVar(&currentMatch, "match", "", "Rank the members by how closely their name matches this.")
	currentMembersCmd.Flags().Float64Var(&currentThreshold, "threshold", 0.7, "The minimum similarity of a --match.")
	currentParliamentCmd.Flags().BoolVar(&currentAll, "all", false, "Fetch every page of both houses.")
	currentProfileCmd.Flags().BoolVar(&currentAllActivity, "all-activity", false, "Fetch every page of the member's activity.")
	currentProfileCmd.Flags().BoolVar(&currentAllBills, "all-bills", false, "Fetch every page of the member's bills.")

	currentCmd.AddCommand(currentListCmd)
	currentCmd.AddCommand(currentSittingCmd)
	currentCmd.AddCommand(currentMembersCmd)
	currentCmd.AddCommand(currentParliamentCmd)
	currentCmd.AddCommand(currentProfileCmd)
	currentCmd.AddCommand(currentWatchCmd)
}

var currentListCmd = &cobra.Command{
	Use:   "list [--page N | --all] [--house <house>]",
	Short: "Lists the sittings on the live site.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		house, err := parseHouseFlag(currentHouse)
		if err != nil {
			return fmt.Errorf("--house: %w", err)
		}

		var listings []hansard.Listing
		if currentAll {
			listings, err = sources.current.AllListings(cmd.Context(), house)
		} else {
			listings, err = sources.current.ListingsPage(cmd.Context(), currentPage, house)
		}
		if err != nil {
			return err
		}

		return write(listings, func() {
			render.Listings(os.Stdout, listings, currentAll)
		})
	},
}

var currentSittingCmd = &cobra.Command{
	Use:   "sitting <url-or-slug> [--fetch-speakers]",
	Short: "Prints the transcript of a sitting on the live site.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sitting, err := sources.current.Sitting(cmd.Context(), args[0], currentSpeakers)
		if err != nil {
			return err
		}
		return write(sitting, func() {
			render.Sitting(os.Stdout, sitting)
		})
	},
}

func printMembers(members []hansard.Member) error {
	if currentMatch != "" {
		ranked := current.RankMembers(members, currentMatch, currentThreshold)
		return write(ranked, func() {
			render.RankedMembers(os.Stdout, ranked)
		})
	}
	return write(members, func() {
		render.Members(os.Stdout, members)
	})
}

var currentMembersCmd = &cobra.Command{
	Use:   "members <house> <parliament> [--page N | --all] [--match <name>]",
	Short: "Lists the members of a house in a parliament (ex. 13th-parliament).",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		house, err := hansard.ParseHouse(args[0])
		if err != nil {
			return err
		}

		var members []hansard.Member
		if currentAll {
			members, err = sources.current.AllMembers(cmd.Context(), house, args[1])
		} else {
			members, err = sources.current.MembersPage(cmd.Context(), house, args[1], currentPage)
		}
		if err != nil {
			return err
		}
		return printMembers(members)
	},
}

var currentParliamentCmd = &cobra.Command{
	Use:   "parliament <parliament> [--all]",
	Short: "Lists the members of both houses of a parliament.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := sources.current.Parliament(cmd.Context(), args[0], currentAll)
		if err != nil {
			return err
		}
		return printMembers(members)
	},
}

var currentProfileCmd = &cobra.Command{
	Use:   "profile <url-or-slug> [--all-activity] [--all-bills]",
	Short: "Prints the profile of a member.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := sources.current.Profile(cmd.Context(), args[0], currentAllActivity, currentAllBills)
		if err != nil {
			return err
		}
		return write(profile, func() {
			render.Profile(os.Stdout, profile)
		})
	},
}

var currentWatchSchedule string

var currentWatchCmd = &cobra.Command{
	Use:   "watch [--schedule <cron spec>] [--house <house>]",
	Short: "Polls the first page of the hansard index and prints sittings as they are published, until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		house, err := parseHouseFlag(currentHouse)
		if err != nil {
			return fmt.Errorf("--house: %w", err)
		}

		tel := telemetry.SlogAPI{}
		w := watch.NewWatcher(func(ctx context.Context) ([]hansard.Listing, error) {
			return sources.current.ListingsPage(ctx, 1, house)
		}, tel)

		return watch.Run(cmd.Context(), chrono.NewStandardCron(tel), currentWatchSchedule, w, func(listings []hansard.Listing) {
			err := write(listings, func() {
				render.Listings(os.Stdout, listings, false)
			})
			if err != nil {
				slog.Warn("failed to write listings", "err", err)
			}
		})
	},
}
