package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hrportal/internal/domain/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		userID     string
		employeeID string
		role       string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadConfig()
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}
			if !auth.IsKnownRole(role) {
				return fmt.Errorf("unknown role %q", role)
			}
			if userID == "" {
				userID = uuid.NewString()
			}
			token, err := auth.GenerateToken(cfg.JWTSecret, auth.Claims{
				UserID:     userID,
				EmployeeID: employeeID,
				RoleName:   role,
			}, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id (random when empty)")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Employee id the user acts as")
	cmd.Flags().StringVar(&role, "role", auth.RoleHR, "Role: HR, Manager or Employee")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")
	return cmd
}
