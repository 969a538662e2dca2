package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/licitadoc/licitadoc-go/api"
	"github.com/licitadoc/licitadoc-go/vault"
)

func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "List, upload and download compliance documents",
	}
	cmd.AddCommand(
		newDocsListCmd(),
		newDocsCatalogCmd(),
		newDocsUploadCmd(),
		newDocsDownloadCmd(),
	)
	return cmd
}

func newDocsListCmd() *cobra.Command {
	var companyID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			docs, err := a.client.Documents(ctx, companyID)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				expiry := "-"
				if doc.ExpirationDate != nil {
					expiry = doc.ExpirationDate.Format("2006-01-02")
				}
				fmt.Printf("%s  %-10s  %-12s  %s\n", doc.ID, doc.Status, expiry, doc.DisplayName())
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&companyID, "company", "", "filter by company id (admin)")
	return cmd
}

func newDocsCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the document type catalog",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			categories, err := a.client.Catalog(ctx)
			if err != nil {
				return err
			}
			for _, category := range categories {
				fmt.Printf("%s\n", category.Name)
				for _, typ := range category.Types {
					fmt.Printf("  %s  %s (validity %dd)\n", typ.ID, typ.Name, typ.ValidityDaysDefault)
				}
			}
			return nil
		}),
	}
}

func newDocsUploadCmd() *cobra.Command {
	var in api.UploadInput

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document for the active company",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if in.TargetCompanyID == "" {
				if err := a.session.LoadOrganizations(ctx); err != nil {
					return err
				}
				org, ok := a.session.ActiveOrganization()
				if !ok {
					return fmt.Errorf("no active company; pass --company")
				}
				in.TargetCompanyID = org.ID
			}
			in.Filename = filepath.Base(args[0])
			in.Content = f

			doc, err := a.client.Upload(ctx, in)
			if err != nil {
				return err
			}
			fmt.Printf("uploaded %s as %s\n", doc.DisplayName(), doc.ID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&in.TargetCompanyID, "company", "", "target company id (defaults to the active one)")
	cmd.Flags().StringVar(&in.Title, "title", "", "document title")
	cmd.Flags().StringVar(&in.TypeID, "type", "", "catalog type id")
	cmd.Flags().StringVar(&in.AuthenticationCode, "auth-code", "", "authentication code")
	cmd.Flags().StringVar(&in.ExpirationDate, "expires", "", "expiration date (YYYY-MM-DD)")
	return cmd
}

func newDocsDownloadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <document-id>",
		Short: "Download one document",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			data, err := a.client.Download(ctx, args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0]
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", len(data), output)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the document id)")
	return cmd
}

func newVaultCmd() *cobra.Command {
	var companyID string

	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Show documents grouped by bidding category",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			docs, err := a.client.Documents(ctx, companyID)
			if err != nil {
				return err
			}
			categorizer := vault.NewCategorizer()
			groups := categorizer.Categorize(docs)
			for _, category := range categorizer.Categories() {
				group := groups[category]
				fmt.Printf("%s (%d valid, %d expired)\n", category, len(group.Valid), len(group.Expired))
				for _, doc := range group.Valid {
					fmt.Printf("  [ok]      %s\n", doc.DisplayName())
				}
				for _, doc := range group.Expired {
					fmt.Printf("  [expired] %s\n", doc.DisplayName())
				}
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&companyID, "company", "", "filter by company id (admin)")
	return cmd
}
