package cmd

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spond-community/spond-go/spond"
)

var (
	eventGroupID    string
	eventSubgroupID string
	eventScheduled  bool
	eventMax        int
	eventMinStart   string
	eventMaxStart   string
	eventMinEnd     string
	eventMaxEnd     string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events, optionally filtered by group and time window",
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		filter := spond.EventFilter{
			GroupID:          eventGroupID,
			SubgroupID:       eventSubgroupID,
			IncludeScheduled: eventScheduled,
			MaxEvents:        eventMax,
			MinStart:         parseTimeFlag("min-start", eventMinStart),
			MaxStart:         parseTimeFlag("max-start", eventMaxStart),
			MinEnd:           parseTimeFlag("min-end", eventMinEnd),
			MaxEnd:           parseTimeFlag("max-end", eventMaxEnd),
		}

		events, err := client.Events(cmdContext(), filter)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to fetch events")
		}
		printJSON(events)
	},
}

var eventCmd = &cobra.Command{
	Use:   "event <uid>",
	Short: "Look up a single event by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		event, err := client.Event(cmdContext(), args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to fetch event")
		}
		printJSON(event)
	},
}

func parseTimeFlag(name, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Fatal().Err(err).Str("flag", name).Msg("invalid timestamp, expected RFC 3339")
	}
	return &t
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(eventCmd)

	eventsCmd.Flags().StringVar(&eventGroupID, "group-id", "", "only events for this group")
	eventsCmd.Flags().StringVar(&eventSubgroupID, "subgroup-id", "", "only events for this subgroup")
	eventsCmd.Flags().BoolVar(&eventScheduled, "scheduled", false, "include scheduled events")
	eventsCmd.Flags().IntVar(&eventMax, "max", 100, "maximum number of events to fetch")
	eventsCmd.Flags().StringVar(&eventMinStart, "min-start", "", "earliest start time (RFC 3339)")
	eventsCmd.Flags().StringVar(&eventMaxStart, "max-start", "", "latest start time (RFC 3339)")
	eventsCmd.Flags().StringVar(&eventMinEnd, "min-end", "", "earliest end time (RFC 3339)")
	eventsCmd.Flags().StringVar(&eventMaxEnd, "max-end", "", "latest end time (RFC 3339)")
}
