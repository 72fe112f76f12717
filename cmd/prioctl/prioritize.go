package main

import (
	"github.com/spf13/cobra"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

func newPrioritizeCmd(opts *rootOptions) *cobra.Command {
	var (
		req      model.TriageRequest
		location string
		file     string
	)

	cmd := &cobra.Command{
		Use:   "prioritize",
		Short: "Score a single help request",
		Example: `  prioctl prioritize --title "flood rescue needed now" --category DISASTER
  echo '{"title":"sick child","category":"MEDICAL"}' | prioctl prioritize --file -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				if err := readInput(cmd, file, &req); err != nil {
					return err
				}
			} else if location != "" {
				req.Location = &location
			}

			service, err := opts.newService(cmd.Context())
			if err != nil {
				return err
			}
			breakdown, err := service.Prioritize(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, breakdown)
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "request title")
	cmd.Flags().StringVar(&req.Description, "description", "", "request description")
	cmd.Flags().StringVar(&req.Category, "category", "", "category (EMERGENCY, MEDICAL, FOOD, DISASTER, ...)")
	cmd.Flags().StringVar(&location, "location", "", "location")
	cmd.Flags().StringVar(&file, "file", "", "read the request as JSON from a file, or - for stdin")
	return cmd
}

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "batch",
		Short:   "Score a batch of requests and print them by descending score",
		Example: `  prioctl batch --file requests.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var batch model.BatchTriageRequest
			if err := readInput(cmd, file, &batch); err != nil {
				return err
			}

			service, err := opts.newService(cmd.Context())
			if err != nil {
				return err
			}
			results, err := service.PrioritizeBatch(cmd.Context(), batch.Requests)
			if err != nil {
				return err
			}
			return printJSON(cmd, results)
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", `JSON file with {"requests": [...]}, or - for stdin`)
	return cmd
}
