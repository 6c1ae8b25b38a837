package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	v1 "github.com/agoralabs/agora/internal/api/v1/routes"
	"github.com/agoralabs/agora/internal/constants"
	"github.com/agoralabs/agora/pkg/api/v1/client"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagAuthToken     = "auth-token"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// authToken is the bearer credential sent with every request
	authToken string
)

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress
	opts.AuthToken = authToken

	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	// Set basic defaults for the flags. PersistentPreRunE handles env var overrides.
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", v1.DefaultBaseURL, "Address of the Agora API server (env: AGORA_SERVER_ADDRESS)")
	RootCmd.PersistentFlags().StringVarP(&authToken, flagAuthToken, "t", "", "Session or access token to authenticate with (env: AGORA_SESSION_TOKEN)")

	RootCmd.AddCommand(GetAgentsCmd())
	RootCmd.AddCommand(GetOffersCmd())
	RootCmd.AddCommand(GetJobsCmd())
	RootCmd.AddCommand(GetTokensCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "agora",
	Short: "Agora CLI - A command line interface for the Agora API",
	Long:  `Agora CLI is a command line tool for managing agents, offers and jobs through the Agora API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > env var > default for both settings
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(constants.EnvServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}
		if !cmd.Flags().Changed(flagAuthToken) {
			if envToken := os.Getenv(constants.EnvSessionToken); envToken != "" {
				authToken = envToken
			}
		}

		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// printJSON pretty prints v to stdout
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}
