package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"storefront/services"

	"github.com/spf13/cobra"
)

func loginCmd(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				password, err = readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			user, err := services.NewAuthService(a.client, a.session).Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			name := strings.TrimSpace(user.FirstName + " " + user.LastName)
			if name == "" {
				name = email
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := services.NewAuthService(a.client, a.session).Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the guest id and login state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			printSession(cmd.OutOrStdout(), a.session, time.Now())
			return nil
		},
	}
}

func printSession(w io.Writer, session *services.Session, now time.Time) {
	fmt.Fprintf(w, "Guest ID: %s\n", session.GuestID())
	fmt.Fprintf(w, "Mode:     %s\n", session.Mode())

	claims, err := session.Claims()
	if err != nil || claims == nil {
		return
	}
	fmt.Fprintf(w, "Email:    %s\n", claims.Email)
	fmt.Fprintf(w, "Role:     %s\n", claims.Role)
	if claims.ExpiresAt != nil {
		state := "valid"
		if session.Expired(now) {
			state = "expired"
		}
		fmt.Fprintf(w, "Expires:  %s (%s)\n", claims.ExpiresAt.Time.Format(time.RFC3339), state)
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
