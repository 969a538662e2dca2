package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the concierge assistant about your documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			reply, err := a.client.Chat(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		}),
	}
}
