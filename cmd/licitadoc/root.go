package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	licitadoc "github.com/licitadoc/licitadoc-go"
	"github.com/licitadoc/licitadoc-go/api"
	"github.com/licitadoc/licitadoc-go/notify"
	"github.com/licitadoc/licitadoc-go/state"
)

// app wires the session core for one CLI invocation. The session is
// rehydrated from the persisted state backend on every run, so a login
// survives across invocations when the redis backend is configured.
type app struct {
	cfg        licitadoc.Config
	log        *zap.Logger
	client     *api.Client
	session    *licitadoc.Session
	dispatcher *notify.Dispatcher
	rdb        *redis.Client
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := licitadoc.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := licitadoc.NewLogger(cfg.Logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: logger}

	var store state.Store
	switch cfg.State.Backend {
	case "redis":
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.State.RedisAddr,
			Password: cfg.State.RedisPassword,
			DB:       cfg.State.RedisDB,
		})
		store = state.NewRedisStore(a.rdb, cfg.State.Prefix, cfg.State.TTL)
	default:
		store = state.NewMemoryStore()
	}

	a.dispatcher = notify.NewDispatcher(notify.Config{
		Enabled:    cfg.Notify.Enabled,
		BufferSize: cfg.Notify.BufferSize,
		DropIfFull: cfg.Notify.DropIfFull,
	}, notify.NewJSONWriterNotifier(os.Stderr))

	metrics := licitadoc.NewMetrics(cfg.Metrics)

	a.client, err = api.NewClient(api.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		EntryRoute:    cfg.Routes.Entry,
		RedirectDelay: cfg.Routes.RedirectDelay,
		Store:         store,
		Notifier:      a.dispatcher,
		Navigator: api.NavigatorFunc(func(route string) {
			fmt.Fprintf(os.Stderr, "session ended, returning to %s\n", route)
		}),
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return nil, err
	}

	a.session, err = licitadoc.New().
		WithConfig(cfg).
		WithStateStore(store).
		WithAuthenticator(a.client).
		WithOrganizationFetcher(a.client).
		WithLogger(logger).
		WithMetrics(metrics).
		Build()
	if err != nil {
		return nil, err
	}

	if err := a.session.Initialize(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	a.dispatcher.Close()
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	_ = a.log.Sync()
}

// runWithApp builds the app for a command, runs it, and tears down.
func runWithApp(run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		return run(cmd.Context(), a, cmd, args)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "licitadoc",
		Short:         "LicitaDoc compliance client",
		Long:          "Command-line client for the LicitaDoc document-compliance platform.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newRegisterCmd(),
		newCompaniesCmd(),
		newDocsCmd(),
		newVaultCmd(),
		newStatsCmd(),
		newOnboardingCmd(),
		newChatCmd(),
	)
	return root
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			if err := a.session.SignIn(ctx, email, password); err != nil {
				return err
			}
			identity, _ := a.session.Identity()
			fmt.Printf("signed in as %s (%s)\n", identity.Subject, identity.Role)
			if org, ok := a.session.ActiveOrganization(); ok {
				fmt.Printf("active company: %s (%s)\n", org.DisplayName, org.ID)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "u", "", "login e-mail")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear persisted state",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			a.session.SignOut(ctx)
			fmt.Println("signed out")
			return nil
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity and active company",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			identity, ok := a.session.Identity()
			if !ok {
				fmt.Println("not signed in")
				return nil
			}
			fmt.Printf("subject: %s\nrole: %s\nuser id: %s\n",
				identity.Subject, identity.Role, identity.UserID)
			if org, ok := a.session.ActiveOrganization(); ok {
				fmt.Printf("active company: %s (%s)\n", org.DisplayName, org.ID)
			}
			return nil
		}),
	}
}

func newRegisterCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: runWithApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			if err := a.client.Register(ctx, api.RegisterInput{
				Email:    email,
				Password: password,
			}); err != nil {
				return err
			}
			fmt.Println("account created, you can sign in now")
			return nil
		}),
	}
	cmd.Flags().StringVarP(&email, "email", "u", "", "login e-mail")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
