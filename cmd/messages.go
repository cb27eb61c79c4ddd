package cmd

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spond-community/spond-go/spond"
)

var (
	messageText     string
	messageUser     string
	messageGroupUID string
	messageChatID   string
	responsePayload string
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show the most recent chat conversations",
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		raw, err := client.Messages(cmdContext())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to fetch messages")
		}
		printRaw(raw)
	},
}

var sendMessageCmd = &cobra.Command{
	Use:   "send-message",
	Short: "Send a chat message to a person in a group, or continue an existing chat",
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		outcome, err := client.SendMessage(cmdContext(), spond.SendMessageOptions{
			Text:     messageText,
			User:     messageUser,
			GroupUID: messageGroupUID,
			ChatID:   messageChatID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to send message")
		}

		switch {
		case outcome.Usage != nil:
			printJSON(outcome.Usage)
		case outcome.Unresolved:
			log.Fatal().Str("user", messageUser).Msg("recipient did not match any member or guardian")
		default:
			printRaw(outcome.Response)
		}
	},
}

var respondCmd = &cobra.Command{
	Use:   "respond <event-uid> <user>",
	Short: "Set a user's response to an event",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		raw, err := client.ChangeResponse(cmdContext(), args[0], args[1],
			json.RawMessage(responsePayload))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to change response")
		}
		printRaw(raw)
	},
}

func init() {
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(sendMessageCmd)
	rootCmd.AddCommand(respondCmd)

	sendMessageCmd.Flags().StringVar(&messageText, "text", "", "message text")
	sendMessageCmd.Flags().StringVar(&messageUser, "user", "", "recipient id, email, name or profile id")
	sendMessageCmd.Flags().StringVar(&messageGroupUID, "group-uid", "", "group to message the recipient in")
	sendMessageCmd.Flags().StringVar(&messageChatID, "chat-id", "", "existing chat to continue")

	respondCmd.Flags().StringVar(&responsePayload, "payload", "{}", "response payload JSON")
}
