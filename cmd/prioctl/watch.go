package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bcenhabil/barangaylink-system/pkg/infra/redis"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream URGENT/HIGH alerts and forecast notifications from redis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Redis.Addr == "" {
				return fmt.Errorf("redis.addr is required")
			}

			pubsub, err := redis.NewPubSub(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Channel)
			if err != nil {
				return err
			}
			defer pubsub.Close()

			sub := pubsub.Subscribe(cmd.Context())
			defer sub.Close()

			fmt.Fprintf(cmd.ErrOrStderr(), "watching channel %s, Ctrl+C to stop\n", cfg.Redis.Channel)
			ch := sub.Channel()
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case msg, ok := <-ch:
					if !ok {
						return nil
					}
					fmt.Fprintln(cmd.OutOrStdout(), msg.Payload)
				}
			}
		},
	}
}
