package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spond-community/spond-go/spond"
)

var groupUID string

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List groups, or look up one group with --uid",
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()
		ctx := cmdContext()

		if groupUID != "" {
			group, err := client.Group(ctx, groupUID)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to fetch group")
			}
			printJSON(group)
			return
		}

		groups, err := client.Groups(ctx, spond.GroupFilter{})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to fetch groups")
		}
		printJSON(groups)
	},
}

var personCmd = &cobra.Command{
	Use:   "person <identifier>",
	Short: "Resolve a member or guardian by id, email, name or profile id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		person, err := client.Person(cmdContext(), args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to resolve person")
		}
		printJSON(person)
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(personCmd)
	groupsCmd.Flags().StringVar(&groupUID, "uid", "", "id of a single group to fetch")
}
