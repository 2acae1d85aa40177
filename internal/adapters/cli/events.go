package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/eventlog"
	"github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

// NewEventsCommand creates the events command with subcommands
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Read the game's event history",
		Long: `Read the game's event history.

Every operation that changes state records an event. 'list' reads the stored
history, 'archive' reads the compressed hourly event log files, and 'follow'
streams new events from a running server.

Examples:
  homestead events list --house 3 --limit 20
  homestead events archive --type Harvested
  homestead events follow --server http://localhost:8080 --actor alice`,
	}

	cmd.AddCommand(newEventsListCommand())
	cmd.AddCommand(newEventsArchiveCommand())
	cmd.AddCommand(newEventsFollowCommand())

	return cmd
}

// eventFilterFlags are the filters shared by the events subcommands
type eventFilterFlags struct {
	actor string
	house string
	typ   string
	since string
}

func (f *eventFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.actor, "actor-filter", "", "Only events caused by this address")
	cmd.Flags().StringVar(&f.house, "house", "", "Only events about this house")
	cmd.Flags().StringVar(&f.typ, "type", "", "Only events of this type, e.g. Harvested")
	cmd.Flags().StringVar(&f.since, "since", "", "Only events at or after this time (RFC3339 or YYYY-MM-DD)")
}

func (f *eventFilterFlags) filter() (event.Filter, error) {
	filter := event.Filter{Actor: f.actor, Type: event.Type(f.typ)}
	if f.house != "" {
		id, err := parseHouseID(f.house)
		if err != nil {
			return filter, err
		}
		filter.HouseID = &id
	}
	if f.since != "" {
		since, err := parseTimeFlag(f.since)
		if err != nil {
			return filter, err
		}
		filter.Since = &since
	}
	return filter, nil
}

func newEventsListCommand() *cobra.Command {
	var (
		flags  eventFilterFlags
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored events, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			query := &queries.ListEventsQuery{
				Actor:   filter.Actor,
				HouseID: filter.HouseID,
				Type:    string(filter.Type),
				Since:   filter.Since,
				Limit:   limit,
				Offset:  offset,
			}
			return dispatch(cmd, query, func(p *printer, response mediator.Response) {
				displayEvents(p, response.(*queries.ListEventsResponse).Events)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of events to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of events to skip")
	return cmd
}

func newEventsArchiveCommand() *cobra.Command {
	var (
		flags eventFilterFlags
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Read the compressed event log files",
		Long: `Read the compressed event log files written when game.event_log is enabled.

The directory defaults to game.event_log.dir from the configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = config.LoadConfigOrDefault(configPath).Game.EventLog.Dir
			}
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			all, err := eventlog.ReadDir(dir)
			if err != nil {
				return err
			}

			var matched []*event.Event
			for _, e := range all {
				if filter.Matches(e) {
					matched = append(matched, e)
				}
			}

			p := newPrinter(cmd.OutOrStdout())
			if jsonOutput {
				return p.json(matched)
			}
			displayEvents(p, matched)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dir, "dir", "", "Event log directory")
	return cmd
}

func newEventsFollowCommand() *cobra.Command {
	var (
		actor string
		house string
	)

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Stream events from a running server until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				return fmt.Errorf("follow needs a running server: pass --server or set HOMESTEAD_SERVER")
			}
			streamURL, err := eventStreamURL(serverURL, actor, house)
			if err != nil {
				return err
			}

			conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), streamURL, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", streamURL, err)
			}
			defer conn.Close()

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			defer signal.Stop(interrupt)
			go func() {
				<-interrupt
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				conn.Close()
			}()

			p := newPrinter(cmd.OutOrStdout())
			p.line("%s", styleSubtle.Sprintf("following %s (Ctrl+C to stop)", streamURL))
			for {
				var e event.Event
				if err := conn.ReadJSON(&e); err != nil {
					if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						return nil
					}
					if strings.Contains(err.Error(), "use of closed network connection") {
						return nil
					}
					return fmt.Errorf("event stream ended: %w", err)
				}
				if jsonOutput {
					b, _ := json.Marshal(e)
					p.line("%s", b)
					continue
				}
				p.line("%s", formatEventLine(&e))
			}
		},
	}

	cmd.Flags().StringVar(&actor, "actor-filter", "", "Only events caused by this address")
	cmd.Flags().StringVar(&house, "house", "", "Only events about this house")
	return cmd
}

// eventStreamURL turns the server's http(s) URL into the websocket stream URL
func eventStreamURL(server, actor, house string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", server, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/events/stream"

	q := url.Values{}
	if actor != "" {
		q.Set("actor", actor)
	}
	if house != "" {
		if _, err := strconv.ParseInt(house, 10, 64); err != nil {
			return "", fmt.Errorf("invalid house id %q", house)
		}
		q.Set("house", house)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func displayEvents(p *printer, events []*event.Event) {
	if len(events) == 0 {
		p.line("No events found")
		return
	}
	for _, e := range events {
		p.line("%s", formatEventLine(e))
	}
	p.line("%s", styleSubtle.Sprintf("%d events", len(events)))
}

func formatEventLine(e *event.Event) string {
	house := "     "
	if e.HouseID != nil {
		house = fmt.Sprintf("#%-4d", *e.HouseID)
	}
	line := fmt.Sprintf("%s  %s  %-26s %s", formatTime(e.At), house, styleHeading.Sprint(string(e.Type)), e.Actor)
	if len(e.Data) > 0 {
		b, err := json.Marshal(e.Data)
		if err == nil {
			line += "  " + styleSubtle.Sprint(string(b))
		}
	}
	return line
}

func parseTimeFlag(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC3339 or YYYY-MM-DD", raw)
	}
	return t, nil
}
