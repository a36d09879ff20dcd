package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/truckline/bdm-console/internal/auth"
)

var (
	tokenRole string
	tokenBDM  string
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue a session token for testing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer,
			time.Duration(cfg.Auth.ExpirationHours)*time.Hour)
		if err != nil {
			return err
		}

		token, exp, err := mgr.Issue(args[0], auth.Role(tokenRole), tokenBDM)
		if err != nil {
			return err
		}
		fmt.Println(token)
		fmt.Printf("expires %s\n", exp.Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", "user", "token role (admin, manager, user)")
	tokenCmd.Flags().StringVar(&tokenBDM, "bdm", "", "BDM ID the token is scoped to")
	rootCmd.AddCommand(tokenCmd)
}
