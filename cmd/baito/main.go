package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"baito/config"
	"baito/internal/domain/service"
	"baito/internal/infra/api"
	"baito/internal/infra/auth"
	logs "baito/internal/infra/log"
	"baito/internal/infra/persistence/sqlite"
	"baito/internal/infra/qrcode"
	"baito/internal/infra/secret"
	"baito/internal/usecase/impl"

	"go.uber.org/fx"
)

// Supported subcommands:
// - login / logout / register / whoami: session management
// - offers:       browse available offers (worker) or list own offers (company)
// - apply:        apply to an offer
// - applications: list own applications (worker) or an offer's applicants (company)
// - respond:      accept or reject an application
// - jobs:         list contracted jobs, reconciled against the schedule
// - post-offer:   post a new offer
// - share-qr:     write an offer's share QR code PNG

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command, ok := commands[os.Args[1]]
	if !ok {
		printUsage()
		fmt.Fprintf(os.Stderr, "Error: unknown subcommand %q\n", os.Args[1])
		os.Exit(1)
	}

	var exitCode int
	app := fx.New(
		fx.NopLogger,
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, deps commandDeps) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						if err := command.run(context.Background(), &deps, os.Args[2:]); err != nil {
							fmt.Fprintf(os.Stderr, "Error: %v\n", err)
							exitCode = 1
						}
						_ = shutdowner.Shutdown()
					}()

					return nil
				},
			})
		}),
	)

	app.Run()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		sqlite.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewDeviceStore,
			sqlite.NewEntityCache,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newSealer,
			auth.NewTokenInspector,
			api.NewStoreTokenProvider,
			api.NewClient,
			newQRCodeService,
			newConfirmer,
			// The one client implements every backend surface.
			func(c *api.Client) service.AuthAPI { return c },
			func(c *api.Client) service.OfferAPI { return c },
			func(c *api.Client) service.ApplicationAPI { return c },
			func(c *api.Client) service.JobAPI { return c },
			func(c *api.Client) service.ProfileAPI { return c },
		),
	)
}

// newSealer creates the value sealer, keeping its key next to the store.
func newSealer(cfg *config.Config) (service.Sealer, error) {
	return secret.NewBoxSealer(filepath.Join(cfg.Storage.Dir, "store.key"))
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewApplicationService,
			impl.NewJobService,
			impl.NewOfferService,
			impl.NewProfileService,
		),
	)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: baito <command> [flags]

Session:
  register      Create an account and log in
  login         Log in with email and password
  logout        Log out and clear the device session
  whoami        Show the current session

Worker:
  offers        Browse available offers
  apply         Apply to an offer
  applications  List your applications
  cancel        Withdraw a pending application
  jobs          List your contracted jobs
  cancel-job    Cancel a pending or running job

Company:
  post-offer    Post a new offer
  my-offers     List your posted offers
  applicants    List an offer's applicants
  respond       Accept or reject an application
  share-qr      Write an offer's share QR code PNG

Run 'baito <command> -h' for the command's flags.
`)
}
