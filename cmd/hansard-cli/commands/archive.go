package commands

import (
	"fmt"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/internal/render"
	"hansard-scraper/lib/timezone"
	"os"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Scrapes the archived mirror at info.mzalendo.com.",
}

var (
	archiveLimit     int
	archiveOffset    int
	archiveStartDate string
	archiveEndDate   string
	archiveHouse     string
	archiveSpeakers  bool
	archiveThisWeek  bool
)

func init() {
	flags := archiveListCmd.Flags()
	flags.IntVar(&archiveLimit, "limit", 0, "The maximum amount of listings to print.")
	flags.IntVar(&archiveOffset, "offset", 0, "The amount of listings to skip.")
	flags.StringVar(&archiveStartDate, "start-date", "", "Only include sittings on or after this date (YYYY-MM-DD).")
	flags.StringVar(&archiveEndDate, "end-date", "", "Only include sittings on or before this date (YYYY-MM-DD).")
	flags.BoolVar(&archiveThisWeek, "this-week", false, "Only include sittings of the current week (monday to sunday, Nairobi time).")
	flags.StringVar(&archiveHouse, "house", "", "Only include sittings of this house (senate, national_assembly).")

	archiveSittingCmd.Flags().BoolVar(&archiveSpeakers, "fetch-speakers", false, "Resolve the profile of every speaker.")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveSittingCmd)
	archiveCmd.AddCommand(archivePersonCmd)
}

func parseDateFlag(value string) (*hansard.Date, error) {
	if value == "" {
		return nil, nil
	}
	date, err := hansard.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func parseHouseFlag(value string) (*hansard.House, error) {
	if value == "" {
		return nil, nil
	}
	house, err := hansard.ParseHouse(value)
	if err != nil {
		return nil, err
	}
	return &house, nil
}

func listingFilter(cmd *cobra.Command) (hansard.ListingFilter, error) {
	var filter hansard.ListingFilter
	var err error

	filter.StartDate, err = parseDateFlag(archiveStartDate)
	if err != nil {
		return filter, fmt.Errorf("--start-date: %w", err)
	}
	filter.EndDate, err = parseDateFlag(archiveEndDate)
	if err != nil {
		return filter, fmt.Errorf("--end-date: %w", err)
	}
	if archiveThisWeek {
		if filter.StartDate != nil || filter.EndDate != nil {
			return filter, fmt.Errorf("--this-week can't be combined with --start-date or --end-date")
		}
		start, end := timezone.CurrentWeek(timezone.Now())
		startDate := hansard.DateOf(start)
		endDate := hansard.DateOf(end)
		filter.StartDate = &startDate
		filter.EndDate = &endDate
	}
	filter.House, err = parseHouseFlag(archiveHouse)
	if err != nil {
		return filter, fmt.Errorf("--house: %w", err)
	}
	if cmd.Flags().Changed("limit") {
		filter.Limit = &archiveLimit
	}
	if cmd.Flags().Changed("offset") {
		filter.Offset = &archiveOffset
	}
	return filter, filter.Validate()
}

var archiveListCmd = &cobra.Command{
	Use:   "list [--limit N] [--offset N] [--start-date YYYY-MM-DD] [--end-date YYYY-MM-DD] [--house <house>]",
	Short: "Lists the sittings in the archive.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := listingFilter(cmd)
		if err != nil {
			return err
		}

		listings, err := sources.archive.Listings(cmd.Context())
		if err != nil {
			return err
		}
		listings, err = filter.Apply(listings)
		if err != nil {
			return err
		}

		return write(listings, func() {
			render.Listings(os.Stdout, listings, true)
		})
	},
}

var archiveSittingCmd = &cobra.Command{
	Use:   "sitting <url> [--fetch-speakers]",
	Short: "Prints the transcript of a sitting in the archive.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sitting, err := sources.archive.Sitting(cmd.Context(), args[0], archiveSpeakers)
		if err != nil {
			return err
		}
		return write(sitting, func() {
			render.Sitting(os.Stdout, sitting)
		})
	},
}

var archivePersonCmd = &cobra.Command{
	Use:   "person <url>",
	Short: "Prints the details of a person in the archive.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := sources.archive.Person(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return write(profile, func() {
			render.Profile(os.Stdout, profile)
		})
	},
}
