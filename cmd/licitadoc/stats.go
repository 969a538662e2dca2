package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var companyID string
	var admin bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			if admin {
				return printAdminStats(ctx, a)
			}
			if companyID == "" {
				if err := a.session.LoadOrganizations(ctx); err != nil {
					return err
				}
				if org, ok := a.session.ActiveOrganization(); ok {
					companyID = org.ID
				}
			}
			stats, err := a.client.ClientStats(ctx, companyID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", stats.CompanyName)
			fmt.Printf("documents: %d total, %d valid, %d expired\n",
				stats.TotalDocs, stats.DocsValid, stats.DocsExpired)
			for _, doc := range stats.RecentDocs {
				fmt.Printf("  recent: %s (%s)\n", doc.DisplayName(), doc.Status)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&companyID, "company", "", "company id (defaults to the active one)")
	cmd.Flags().BoolVar(&admin, "admin", false, "show the platform-wide admin view")
	return cmd
}

func printAdminStats(ctx context.Context, a *app) error {
	dashboard, err := a.client.AdminDashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("companies: %d  documents: %d  users: %d\n",
		dashboard.TotalCompanies, dashboard.TotalDocuments, dashboard.TotalUsers)

	stats, err := a.client.AdminStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("active: %d  pending approval: %d\n",
		stats.ActiveCompanies, stats.PendingApproval)

	queue, err := a.client.PendingQueue(ctx)
	if err != nil {
		return err
	}
	for _, action := range queue {
		fmt.Printf("  pending %-10s  %s  %s\n", action.Step, action.CompanyID, action.CompanyName)
	}
	return nil
}

func newOnboardingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Advance a company through onboarding",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "sign-contract <company-id>",
			Short: "Mark the service contract as signed",
			Args:  cobra.ExactArgs(1),
			RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
				company, err := a.client.SignContract(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("contract signed for %s\n", company.ID)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "activate-payment <company-id>",
			Short: "Mark the subscription payment as active",
			Args:  cobra.ExactArgs(1),
			RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
				company, err := a.client.ActivatePayment(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("payment active for %s\n", company.ID)
				return nil
			}),
		},
	)
	return cmd
}
