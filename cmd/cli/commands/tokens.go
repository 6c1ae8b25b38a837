package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agoralabs/agora/internal/types"
)

// tokenOutput represents the filtered output for an access token
type tokenOutput struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ExpiresAt string `json:"expires_at"`
	Revoked   bool   `json:"revoked"`
}

func init() {
	tokensCmd.AddCommand(createTokenCmd)
	tokensCmd.AddCommand(revokeTokenCmd)
	tokensCmd.AddCommand(listTokensCmd)

	createTokenCmd.Flags().StringP("name", "n", "", "Display name for the token")
	createTokenCmd.Flags().IntP("ttl-days", "d", 0, "Token lifetime in days (0 uses the server default)")
	_ = createTokenCmd.MarkFlagRequired("name")

	revokeTokenCmd.Flags().UintP("id", "i", 0, "Token ID to revoke")
	_ = revokeTokenCmd.MarkFlagRequired("id")
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Manage access tokens",
}

var createTokenCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue a new access token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		ttlDays, _ := cmd.Flags().GetInt("ttl-days")

		resp, err := apiClient.CreateToken(context.Background(), types.CreateTokenRequest{
			Name:    name,
			TTLDays: ttlDays,
		})
		if err != nil {
			return fmt.Errorf("error creating token: %w", err)
		}

		// The raw secret is only ever returned here; print the full response
		return printJSON(resp)
	},
}

var revokeTokenCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke an access token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tokenID, _ := cmd.Flags().GetUint("id")

		if err := apiClient.RevokeToken(context.Background(), tokenID); err != nil {
			return fmt.Errorf("error revoking token: %w", err)
		}
		fmt.Printf("Token %d revoked\n", tokenID)
		return nil
	},
}

var listTokensCmd = &cobra.Command{
	Use:   "list",
	Short: "List your access tokens",
	RunE: func(_ *cobra.Command, _ []string) error {
		tokens, err := apiClient.ListTokens(context.Background())
		if err != nil {
			return fmt.Errorf("error listing tokens: %w", err)
		}

		output := make([]tokenOutput, len(tokens))
		for i, t := range tokens {
			output[i] = tokenOutput{
				ID:        t.ID,
				Name:      t.Name,
				ExpiresAt: t.ExpiresAt.Format(time.RFC3339),
				Revoked:   t.Revoked(),
			}
		}
		return printJSON(output)
	},
}

// GetTokensCmd returns the tokens command
func GetTokensCmd() *cobra.Command {
	return tokensCmd
}
