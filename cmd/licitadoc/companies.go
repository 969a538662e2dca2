package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	licitadoc "github.com/licitadoc/licitadoc-go"
	"github.com/licitadoc/licitadoc-go/api"
)

func newCompaniesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Manage the companies you act on behalf of",
	}
	cmd.AddCommand(
		newCompaniesListCmd(),
		newCompaniesSwitchCmd(),
		newCompaniesMembersCmd(),
		newCompaniesInviteCmd(),
	)
	return cmd
}

func newCompaniesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your companies",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			if err := a.session.LoadOrganizations(ctx); err != nil {
				return err
			}
			active, _ := a.session.ActiveOrganization()
			for _, org := range a.session.Organizations() {
				marker := " "
				if org.ID == active.ID {
					marker = "*"
				}
				fmt.Printf("%s %s  %s  %s  %s\n",
					marker, org.ID, org.DisplayName, org.TaxID, org.Role)
			}
			return nil
		}),
	}
}

func newCompaniesSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <company-id>",
		Short: "Make another company active",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			if err := a.session.LoadOrganizations(ctx); err != nil {
				return err
			}
			a.session.SwitchOrganization(ctx, args[0])
			org, ok := a.session.ActiveOrganization()
			if !ok || org.ID != args[0] {
				return fmt.Errorf("company %s is not in your list", args[0])
			}
			fmt.Printf("active company: %s (%s)\n", org.DisplayName, org.ID)
			return nil
		}),
	}
}

func newCompaniesMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <company-id>",
		Short: "List a company's team",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			members, err := a.client.Members(ctx, args[0])
			if err != nil {
				return err
			}
			for _, m := range members {
				fmt.Printf("%s  %s  %s  %s\n", m.UserID, m.Email, m.Name, m.Role)
			}
			return nil
		}),
	}
}

func newCompaniesInviteCmd() *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "invite <company-id>",
		Short: "Invite a member to a company",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			result, err := a.client.InviteMember(ctx, args[0], api.MemberInvite{
				Email: email,
				Role:  licitadoc.MembershipRole(role),
			})
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "member e-mail")
	cmd.Flags().StringVar(&role, "role", string(licitadoc.RoleViewer), "MASTER or VIEWER")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
