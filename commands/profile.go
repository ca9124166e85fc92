package commands

import (
	"fmt"
	"io"

	"storefront/models"
	"storefront/services"

	"github.com/spf13/cobra"
)

func profileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the logged-in user's profile",
	}

	cmd.AddCommand(profileShowCmd(opts))
	cmd.AddCommand(profileUpdateCmd(opts))
	cmd.AddCommand(profilePasswordCmd(opts))
	return cmd
}

func profileShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			profile, err := services.NewProfileService(a.client, a.session, nil).Load(cmd.Context())
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), profile)
			return nil
		},
	}
}

func profileUpdateCmd(opts *rootOptions) *cobra.Command {
	var firstName, lastName, image string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change name and profile image",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := services.NewProfileService(a.client, a.session, a.uploader())
			current, err := svc.Load(cmd.Context())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("first-name") {
				firstName = current.FirstName
			}
			if !cmd.Flags().Changed("last-name") {
				lastName = current.LastName
			}

			updated, err := svc.Update(cmd.Context(), current, firstName, lastName, image)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			printProfile(cmd.OutOrStdout(), updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&image, "image", "", "Local image to upload as the profile picture")
	return cmd
}

func profilePasswordCmd(opts *rootOptions) *cobra.Command {
	var current, next, confirm string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			err = services.NewProfileService(a.client, a.session, nil).ChangePassword(cmd.Context(), current, next, confirm)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "New password again")
	_ = cmd.MarkFlagRequired("current")
	return cmd
}

func printProfile(out io.Writer, p *models.UserProfile) {
	fmt.Fprintf(out, "Name:  %s %s\n", p.FirstName, p.LastName)
	fmt.Fprintf(out, "Email: %s\n", p.Email)
	if p.Image != "" {
		fmt.Fprintf(out, "Image: %s\n", p.Image)
	}
}
