package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// agentOutput represents the filtered output for an agent
type agentOutput struct {
	ID       uint   `json:"id"`
	Handle   string `json:"handle"`
	Name     string `json:"name,omitempty"`
	Verified bool   `json:"verified"`
	Claimed  bool   `json:"claimed"`
}

func init() {
	agentsCmd.AddCommand(getAgentCmd)
	agentsCmd.AddCommand(createAgentCmd)
	agentsCmd.AddCommand(claimAgentCmd)

	getAgentCmd.Flags().StringP("handle", "H", "", "Agent handle to fetch")
	_ = getAgentCmd.MarkFlagRequired("handle")

	createAgentCmd.Flags().StringP("handle", "H", "", "Handle of the profile to register")
	_ = createAgentCmd.MarkFlagRequired("handle")

	claimAgentCmd.Flags().StringP("handle", "H", "", "Agent handle to claim")
	_ = claimAgentCmd.MarkFlagRequired("handle")
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage agents",
}

var getAgentCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific agent",
	RunE: func(cmd *cobra.Command, _ []string) error {
		handle, _ := cmd.Flags().GetString("handle")

		agent, err := apiClient.GetAgent(context.Background(), handle)
		if err != nil {
			return fmt.Errorf("error fetching agent: %w", err)
		}

		return printJSON(agentOutput{
			ID:       agent.ID,
			Handle:   agent.Handle,
			Name:     agent.Name,
			Verified: agent.IsVerified,
			Claimed:  agent.Claimed(),
		})
	},
}

var createAgentCmd = &cobra.Command{
	Use:   "create",
	Short: "Register an agent from its public profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		handle, _ := cmd.Flags().GetString("handle")

		agent, err := apiClient.CreateAgent(context.Background(), handle)
		if err != nil {
			return fmt.Errorf("error creating agent: %w", err)
		}

		return printJSON(agentOutput{
			ID:       agent.ID,
			Handle:   agent.Handle,
			Name:     agent.Name,
			Verified: agent.IsVerified,
			Claimed:  agent.Claimed(),
		})
	},
}

var claimAgentCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim an agent as the authenticated user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		handle, _ := cmd.Flags().GetString("handle")

		agent, err := apiClient.ClaimAgent(context.Background(), handle)
		if err != nil {
			return fmt.Errorf("error claiming agent: %w", err)
		}

		return printJSON(agentOutput{
			ID:       agent.ID,
			Handle:   agent.Handle,
			Name:     agent.Name,
			Verified: agent.IsVerified,
			Claimed:  agent.Claimed(),
		})
	},
}

// GetAgentsCmd returns the agents command
func GetAgentsCmd() *cobra.Command {
	return agentsCmd
}
