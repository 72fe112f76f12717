package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/lmstfy"
)

var enqueueActions = map[string]bool{
	model.ActionTriagePrioritize:      true,
	model.ActionTriagePrioritizeBatch: true,
	model.ActionResourceForecast:      true,
}

func newEnqueueCmd(opts *rootOptions) *cobra.Command {
	var (
		queue      string
		actionType string
		bizID      string
		orgID      string
		file       string
		delay      uint32
	)

	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Publish a job to the worker queue through lmstfy",
		Example: `  prioctl enqueue --config config/worker.yaml --queue triage_jobs \
    --action triage_prioritize --id HELP-1024 --file request.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := buildJob(cmd, actionType, bizID, orgID, file)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			client, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token,
				lmstfy.WithPublishTries(cfg.Lmstfy.PublishTries))
			if err != nil {
				return err
			}
			jobID, err := client.PublishJSON(queue, job, delay)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s to %s (job_id=%s request_id=%s)\n",
				job.Payload.Data.ActionType, queue, jobID, job.Payload.Data.RequestID)
			return nil
		},
	}

	cmd.Flags().StringVar(&queue, "queue", "triage_jobs", "lmstfy queue name")
	cmd.Flags().StringVar(&actionType, "action", model.ActionTriagePrioritize, "action type (triage_prioritize, triage_prioritize_batch, resource_forecast)")
	cmd.Flags().StringVar(&bizID, "id", "", "business id echoed back in the callback")
	cmd.Flags().StringVar(&orgID, "org", "", "organisation (barangay) id")
	cmd.Flags().StringVar(&file, "file", "-", "job data as JSON, or - for stdin")
	cmd.Flags().Uint32Var(&delay, "delay", 0, "delay in seconds before the job becomes visible")
	return cmd
}

// buildJob 组装 worker 可识别的任务消息
func buildJob(cmd *cobra.Command, actionType, bizID, orgID, file string) (*model.TriageJob, error) {
	if !enqueueActions[actionType] {
		return nil, fmt.Errorf("unknown action type: %s", actionType)
	}

	var data json.RawMessage
	if err := readInput(cmd, file, &data); err != nil {
		return nil, err
	}

	return &model.TriageJob{
		Payload: model.TriageJobPayload{
			Data: model.TriageJobData{
				RequestID:  uuid.New().String(),
				OrgID:      orgID,
				ActionType: actionType,
				ID:         bizID,
				Data:       data,
			},
		},
	}, nil
}
