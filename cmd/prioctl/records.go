package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/infra/mysql"
)

func newRecordsCmd(opts *rootOptions) *cobra.Command {
	var (
		requestID string
		priority  string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Query the triage audit table (requires mysql.dsn)",
		Example: `  prioctl records --config config/worker.yaml --request-id REQ-1738392012345678
  prioctl records --config config/worker.yaml --priority URGENT --limit 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.MySQL.DSN == "" {
				return fmt.Errorf("mysql.dsn is required")
			}

			dao, err := mysql.NewTriageRecordDAO(cfg.MySQL.DSN)
			if err != nil {
				return err
			}
			defer dao.Close()

			if requestID != "" {
				record, err := dao.GetByRequestID(cmd.Context(), requestID)
				if err != nil {
					return err
				}
				return printJSON(cmd, record)
			}

			records, err := dao.ListByPriority(cmd.Context(), model.Tier(strings.ToUpper(priority)), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		},
	}

	cmd.Flags().StringVar(&requestID, "request-id", "", "look up a single record by request_id")
	cmd.Flags().StringVar(&priority, "priority", string(model.TierUrgent), "list recent records of this tier")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum records to list")
	return cmd
}
