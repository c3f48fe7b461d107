package main

import (
	"fmt"

	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/viewmodel"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

// loginCmd signs in and persists the token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Auth.Login(cmd.Context(), dto.LoginRequest{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err := check(cmd.ErrOrStderr(), env, "sign in"); err != nil {
			return err
		}

		profile := viewmodel.Profile(*env.Data)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\nSigned in as %s (%s)\n", env.Message, profile.DisplayName, profile.Role)
		return nil
	},
}

// logoutCmd ends the session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Auth.Logout(cmd.Context())
		if err := check(cmd.ErrOrStderr(), env, "sign out"); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), env.Message)
		return nil
	},
}

// whoamiCmd validates the stored session against the gateway
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Auth.ValidateSession(cmd.Context())
		if err := check(cmd.ErrOrStderr(), env, "validate the session"); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !env.Data.IsAuthenticated || env.Data.User == nil {
			fmt.Fprintln(out, "Not signed in")
			return nil
		}

		p := viewmodel.Profile(*env.Data.User)
		tw := newTable(out)
		fmt.Fprintf(tw, "Name\t%s\n", p.DisplayName)
		fmt.Fprintf(tw, "Email\t%s\n", p.Email)
		fmt.Fprintf(tw, "Role\t%s\n", p.Role)
		fmt.Fprintf(tw, "Position\t%s\n", p.Position)
		fmt.Fprintf(tw, "Department\t%s\n", p.Department)
		fmt.Fprintf(tw, "Joined\t%s\n", p.JoinDate)
		fmt.Fprintf(tw, "Gateway\t%s\n", app.API.BaseURL())
		return tw.Flush()
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
