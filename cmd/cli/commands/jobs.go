package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agoralabs/agora/internal/db/models"
)

// jobOutput represents the filtered output for a job
type jobOutput struct {
	ID           uint   `json:"id"`
	OfferID      uint   `json:"offer_id"`
	Status       string `json:"status"`
	DeliveredURL string `json:"delivered_url,omitempty"`
}

func toJobOutput(job *models.Job) jobOutput {
	return jobOutput{
		ID:           job.ID,
		OfferID:      job.OfferID,
		Status:       job.Status.String(),
		DeliveredURL: job.DeliveredURL,
	}
}

func init() {
	jobsCmd.AddCommand(getJobCmd)
	jobsCmd.AddCommand(fundJobCmd)
	jobsCmd.AddCommand(startJobCmd)
	jobsCmd.AddCommand(deliverJobCmd)
	jobsCmd.AddCommand(completeJobCmd)
	jobsCmd.AddCommand(cancelJobCmd)

	for _, c := range []*cobra.Command{getJobCmd, fundJobCmd, startJobCmd, deliverJobCmd, completeJobCmd, cancelJobCmd} {
		c.Flags().UintP("id", "i", 0, "Job ID")
		_ = c.MarkFlagRequired("id")
	}

	fundJobCmd.Flags().StringP("escrow-address", "e", "", "Escrow address holding the funds")
	deliverJobCmd.Flags().StringP("url", "u", "", "URL of the delivered artifact")
	_ = deliverJobCmd.MarkFlagRequired("url")
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage jobs",
}

var getJobCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("id")

		job, err := apiClient.GetJob(context.Background(), jobID)
		if err != nil {
			return fmt.Errorf("error fetching job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var fundJobCmd = &cobra.Command{
	Use:   "fund",
	Short: "Mark a job as funded",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("id")
		escrow, _ := cmd.Flags().GetString("escrow-address")

		job, err := apiClient.FundJob(context.Background(), jobID, escrow)
		if err != nil {
			return fmt.Errorf("error funding job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var startJobCmd = &cobra.Command{
	Use:   "start",
	Short: "Mark a job as started",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("id")

		job, err := apiClient.StartJob(context.Background(), jobID)
		if err != nil {
			return fmt.Errorf("error starting job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var deliverJobCmd = &cobra.Command{
	Use:   "deliver",
	Short: "Deliver the work for a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("id")
		url, _ := cmd.Flags().GetString("url")

		resp, err := apiClient.DeliverJob(context.Background(), jobID, url)
		if err != nil {
			return fmt.Errorf("error delivering job: %w", err)
		}
		return printJSON(toJobOutput(resp.Job))
	},
}

var completeJobCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark a job as completed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("id")

		job, err := apiClient.CompleteJob(context.Background(), jobID)
		if err != nil {
			return fmt.Errorf("error completing job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

var cancelJobCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("id")

		job, err := apiClient.CancelJob(context.Background(), jobID)
		if err != nil {
			return fmt.Errorf("error cancelling job: %w", err)
		}
		return printJSON(toJobOutput(job))
	},
}

// GetJobsCmd returns the jobs command
func GetJobsCmd() *cobra.Command {
	return jobsCmd
}
