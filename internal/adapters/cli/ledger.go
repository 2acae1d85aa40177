package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

const ruler = "─────────────────────────────────────────────────────────────────────────────"

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Resource ledger operations",
		Long: `View and analyze resource movements.

The ledger records every change to an owner's balances: automatic production,
harvests and their fees, investments in facilities and addons, upkeep, and
conversions between resources and tokens.

Examples:
  homestead ledger list --limit 20
  homestead ledger list --category INVESTMENT --house 3
  homestead ledger flow --start-date 2024-01-01 --end-date 2024-01-31`,
	}

	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerFlowCommand())

	return cmd
}

// newLedgerListCommand creates the ledger list subcommand
func newLedgerListCommand() *cobra.Command {
	var (
		owner     string
		startDate string
		endDate   string
		category  string
		entryType string
		house     string
		limit     int
		offset    int
		orderBy   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger entries",
		Long: `List ledger entries with optional filtering.

Entries are ordered by timestamp descending (newest first) by default.

Categories:
  PRODUCTION   - Automatic production and harvests
  INVESTMENT   - Facilities, addons, toolsheds and items
  MAINTENANCE  - Fees, repairs and fortification
  CONVERSION   - Lumber burnt or gathered, power bought with land token
  ADMIN        - Admin grants`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := ownerOrActor([]string{owner})
			if err != nil {
				return err
			}
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			query := &queries.GetEntriesQuery{
				Owner:     resolved,
				StartDate: start,
				EndDate:   end,
				Limit:     limit,
				Offset:    offset,
				OrderBy:   orderBy,
			}
			if category != "" {
				upper := strings.ToUpper(category)
				query.Category = &upper
			}
			if entryType != "" {
				upper := strings.ToUpper(entryType)
				query.EntryType = &upper
			}
			if house != "" {
				id, err := parseHouseID(house)
				if err != nil {
					return err
				}
				query.HouseID = &id
			}

			return dispatch(cmd, query, func(p *printer, response mediator.Response) {
				displayEntryList(p, response.(*queries.GetEntriesResponse))
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner to list (default: the acting address)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&entryType, "type", "", "Filter by entry type")
	cmd.Flags().StringVar(&house, "house", "", "Filter by house id")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of entries to skip")
	cmd.Flags().StringVar(&orderBy, "order-by", "timestamp DESC", "Sort order")

	return cmd
}

// newLedgerFlowCommand creates the resource flow report subcommand
func newLedgerFlowCommand() *cobra.Command {
	var (
		owner     string
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Generate a resource flow statement",
		Long: `Generate a resource flow statement grouped by category.

The statement shows, per category, what flowed in, what flowed out and the
net change of every resource kind, with the number of entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := ownerOrActor([]string{owner})
			if err != nil {
				return err
			}
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			query := &queries.GetResourceFlowQuery{Owner: resolved}
			if start != nil {
				query.StartDate = *start
			}
			if end != nil {
				query.EndDate = *end
			}
			return dispatch(cmd, query, func(p *printer, response mediator.Response) {
				displayResourceFlow(p, response.(*queries.GetResourceFlowResponse))
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner to report on (default: the acting address)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")

	return cmd
}

// parseDateRange parses optional YYYY-MM-DD bounds; the end date covers the whole day
func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date format: %w", err)
		}
		start = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date format: %w", err)
		}
		endOfDay := parsed.Add(24*time.Hour - time.Second)
		end = &endOfDay
	}
	return start, end, nil
}

// displayEntryList formats and displays ledger entries
func displayEntryList(p *printer, response *queries.GetEntriesResponse) {
	if len(response.Entries) == 0 {
		p.line("No ledger entries found")
		return
	}

	p.heading("\nLEDGER (Showing %d of %d total)", len(response.Entries), response.Total)
	p.line(ruler)

	w := p.table()
	fmt.Fprintln(w, "Timestamp\tHouse\tType\tCategory\tDelta")
	fmt.Fprintln(w, "─────────\t─────\t────\t────────\t─────")
	for _, e := range response.Entries {
		house := "-"
		if e.HouseID != nil {
			house = fmt.Sprintf("%d", *e.HouseID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			formatTime(e.Timestamp),
			house,
			e.Type,
			e.Category,
			formatSigned(e.Delta),
		)
	}
	w.Flush()

	p.line(ruler)
	p.line("Total: %d entries\n", response.Total)
}

// displayResourceFlow formats and displays the flow statement
func displayResourceFlow(p *printer, response *queries.GetResourceFlowResponse) {
	p.heading("\nRESOURCE FLOW STATEMENT (By Category)")
	p.line("Period: %s", response.Period)
	p.line(ruler)

	if len(response.Categories) == 0 {
		p.line("No ledger entries in this period")
		return
	}

	w := p.table()
	fmt.Fprintln(w, "Category\tInflow\tOutflow\tNet\tEntries")
	fmt.Fprintln(w, "────────\t──────\t───────\t───\t───────")
	total := 0
	for _, cat := range response.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			cat.Category,
			formatBundle(cat.Inflow),
			formatBundle(cat.Outflow),
			formatSigned(cat.Net),
			cat.Entries,
		)
		total += cat.Entries
	}
	fmt.Fprintln(w, "────────\t──────\t───────\t───\t───────")
	fmt.Fprintf(w, "TOTAL\t\t\t%s\t%d\n", formatSigned(response.Net), total)
	w.Flush()

	p.line(ruler)
}
