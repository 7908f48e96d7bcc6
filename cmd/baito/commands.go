package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"baito/internal/domain/entity"
	domainerrors "baito/internal/domain/errors"
	"baito/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// commandDeps bundles everything a subcommand may need.
type commandDeps struct {
	fx.In

	Session      usecase.SessionUsecase
	Offers       usecase.OfferUsecase
	Applications usecase.ApplicationUsecase
	Jobs         usecase.JobUsecase
	Profiles     usecase.ProfileUsecase
	Logger       *slog.Logger
}

type command struct {
	run func(ctx context.Context, deps *commandDeps, args []string) error
}

var commands = map[string]command{
	"register":     {run: runRegister},
	"login":        {run: runLogin},
	"logout":       {run: runLogout},
	"whoami":       {run: runWhoami},
	"offers":       {run: runOffers},
	"apply":        {run: runApply},
	"applications": {run: runApplications},
	"cancel":       {run: runCancelApplication},
	"jobs":         {run: runJobs},
	"cancel-job":   {run: runCancelJob},
	"post-offer":   {run: runPostOffer},
	"my-offers":    {run: runMyOffers},
	"applicants":   {run: runApplicants},
	"respond":      {run: runRespond},
	"share-qr":     {run: runShareQR},
}

func runRegister(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("register", flag.ExitOnError)
	email := cmd.String("email", "", "Account email")
	password := cmd.String("password", "", "Account password (min 8 characters)")
	userType := cmd.String("type", "worker", "Account type: worker or company")
	name := cmd.String("name", "", "Full name or company display name")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse register flags")
	}

	identity, err := deps.Session.Register(ctx, &usecase.RegisterInput{
		Email:    *email,
		Password: *password,
		UserType: entity.UserType(*userType),
		Name:     *name,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered and logged in as %s (%s, id %d)\n",
		identity.Email, identity.UserType.Label(), identity.UserID)

	return nil
}

func runLogin(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := cmd.String("email", "", "Account email")
	password := cmd.String("password", "", "Account password")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse login flags")
	}

	identity, err := deps.Session.Login(ctx, &usecase.LoginInput{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s, id %d)\n", identity.Email, identity.UserType.Label(), identity.UserID)

	return nil
}

func runLogout(ctx context.Context, deps *commandDeps, _ []string) error {
	if err := deps.Session.Logout(ctx); err != nil {
		return err
	}

	fmt.Println("Logged out.")

	return nil
}

// runWhoami runs the full session bootstrap: validate, refresh, or clear.
func runWhoami(ctx context.Context, deps *commandDeps, _ []string) error {
	output, err := deps.Session.Bootstrap(ctx)
	if err != nil {
		return err
	}

	switch output.State {
	case entity.BootstrapAuthenticated:
		fmt.Printf("Logged in as %s (%s, id %d)\n",
			output.Identity.Email, output.Identity.UserType.Label(), output.Identity.UserID)
	case entity.BootstrapOffline:
		fmt.Println("Could not reach the server; you have been logged out locally.")
	default:
		fmt.Println("Not logged in.")
	}

	return nil
}

func runOffers(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("offers", flag.ExitOnError)
	category := cmd.String("category", "", "Filter by category (events, catering, cleaning, delivery, other)")
	lon := cmd.Float64("lon", 0, "Longitude to sort by distance from")
	lat := cmd.Float64("lat", 0, "Latitude to sort by distance from")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse offers flags")
	}

	input := &usecase.BrowseInput{Category: *category}
	if *lon != 0 || *lat != 0 {
		input.Near = &orb.Point{*lon, *lat}
	}

	results, err := deps.Offers.Browse(ctx, input)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No offers available.")

		return nil
	}

	for _, result := range results {
		printOffer(result.Offer, result.Distance)
	}

	return nil
}

func runApply(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("apply", flag.ExitOnError)
	offerID := cmd.Int64("offer", 0, "Offer id to apply to")
	message := cmd.String("message", "", "Message to the company")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse apply flags")
	}

	application, err := deps.Applications.Apply(ctx, *offerID, *message)
	if err != nil {
		return err
	}

	fmt.Printf("Application %d submitted (%s).\n", application.ID, application.Status.Label())

	return nil
}

func runApplications(ctx context.Context, deps *commandDeps, _ []string) error {
	applications, err := deps.Applications.ListMine(ctx)
	if err != nil {
		return err
	}
	if len(applications) == 0 {
		fmt.Println("No applications yet.")

		return nil
	}

	for _, application := range applications {
		printApplication(application)
	}

	return nil
}

func runCancelApplication(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := cmd.Int64("id", 0, "Application id to withdraw")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse cancel flags")
	}

	if err := deps.Applications.Cancel(ctx, *id); err != nil {
		if errors.Is(err, domainerrors.ErrCancelled) {
			fmt.Println("Cancelled.")

			return nil
		}

		return err
	}

	fmt.Printf("Application %d withdrawn.\n", *id)

	return nil
}

func runJobs(ctx context.Context, deps *commandDeps, _ []string) error {
	views, err := deps.Jobs.ListMine(ctx)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		fmt.Println("No jobs yet.")

		return nil
	}

	for _, view := range views {
		printJob(view)
	}

	return nil
}

func runCancelJob(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("cancel-job", flag.ExitOnError)
	id := cmd.Int64("id", 0, "Job id to cancel")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse cancel-job flags")
	}

	if err := deps.Jobs.Cancel(ctx, *id); err != nil {
		if errors.Is(err, domainerrors.ErrCancelled) {
			fmt.Println("Cancelled.")

			return nil
		}

		return err
	}

	fmt.Printf("Job %d cancelled.\n", *id)

	return nil
}

func runPostOffer(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("post-offer", flag.ExitOnError)
	title := cmd.String("title", "", "Offer title")
	description := cmd.String("description", "", "Offer description")
	category := cmd.String("category", "other", "Category (events, catering, cleaning, delivery, other)")
	address := cmd.String("address", "", "Street address")
	city := cmd.String("city", "", "City")
	lon := cmd.Float64("lon", 0, "Longitude (optional)")
	lat := cmd.Float64("lat", 0, "Latitude (optional)")
	startDate := cmd.String("start", "", "Start date, YYYY-MM-DD")
	endDate := cmd.String("end", "", "End date, YYYY-MM-DD")
	startTime := cmd.String("from", "09:00", "Daily start time, HH:MM")
	endTime := cmd.String("to", "17:00", "Daily end time, HH:MM")
	workers := cmd.Int("workers", 1, "Number of workers needed")
	payMode := cmd.String("pay", "hourly", "Payment mode: hourly or fixed")
	hourlyRate := cmd.Float64("rate", 0, "Hourly rate (hourly mode)")
	totalPayment := cmd.Float64("total", 0, "Total payment (fixed mode)")
	experience := cmd.String("experience", "beginner", "Required experience (beginner, intermediate, advanced)")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse post-offer flags")
	}

	input := &usecase.CreateOfferInput{
		Title:        *title,
		Description:  *description,
		Category:     *category,
		Address:      *address,
		City:         *city,
		StartDate:    *startDate,
		EndDate:      *endDate,
		StartTime:    *startTime,
		EndTime:      *endTime,
		WorkersCount: *workers,
		PaymentMode:  *payMode,
		HourlyRate:   *hourlyRate,
		TotalPayment: *totalPayment,
		Experience:   *experience,
	}
	if *lon != 0 || *lat != 0 {
		input.Longitude, input.Latitude = lon, lat
	}

	offer, err := deps.Offers.Create(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("Offer %d posted: %s\n", offer.ID, offer.Title)

	return nil
}

func runMyOffers(ctx context.Context, deps *commandDeps, _ []string) error {
	offers, err := deps.Offers.ListMine(ctx)
	if err != nil {
		return err
	}
	if len(offers) == 0 {
		fmt.Println("No offers posted yet.")

		return nil
	}

	for _, offer := range offers {
		printOffer(offer, -1)
	}

	return nil
}

func runApplicants(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("applicants", flag.ExitOnError)
	offerID := cmd.Int64("offer", 0, "Offer id to list applicants for")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse applicants flags")
	}

	applications, err := deps.Applications.ListForOffer(ctx, *offerID)
	if err != nil {
		return err
	}
	if len(applications) == 0 {
		fmt.Println("No applicants yet.")

		return nil
	}

	for _, application := range applications {
		printApplication(application)
		// Enrich with the worker's profile; repeat lookups hit the cache.
		if worker, err := deps.Profiles.GetWorker(ctx, application.WorkerID); err == nil {
			fmt.Printf("    %s %s, %s\n", worker.FirstName, worker.LastName, worker.Experience.Label())
		}
	}

	return nil
}

func runRespond(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("respond", flag.ExitOnError)
	id := cmd.Int64("id", 0, "Application id")
	decision := cmd.String("decision", "", "accept or reject")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse respond flags")
	}

	output, err := deps.Applications.Respond(ctx, *id, usecase.Decision(*decision))
	if err != nil {
		// The partial outcome is a real divergence the company must hear
		// about; it is reported even though the accept itself landed.
		if output != nil && output.Outcome == usecase.RespondAcceptedJobFailed {
			fmt.Printf("Application %d accepted, but creating the job failed. Contact support.\n", *id)
		}

		return err
	}

	switch {
	case output.Job != nil:
		fmt.Printf("Application %d accepted; job %d created.\n", *id, output.Job.ID)
	default:
		fmt.Printf("Application %d %s.\n", *id, output.Application.Status.Label())
	}

	return nil
}

func runShareQR(ctx context.Context, deps *commandDeps, args []string) error {
	cmd := flag.NewFlagSet("share-qr", flag.ExitOnError)
	offerID := cmd.Int64("offer", 0, "Offer id to share")
	out := cmd.String("out", "offer.png", "Output PNG path")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse share-qr flags")
	}

	png, err := deps.Offers.ShareQR(ctx, *offerID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		return errors.Wrap(err, "failed to write QR code")
	}

	fmt.Printf("QR code for offer %d written to %s\n", *offerID, *out)

	return nil
}

func printOffer(offer *entity.JobOffer, distance float64) {
	line := fmt.Sprintf("#%d  %-28s %-10s %s  %s to %s",
		offer.ID, offer.Title, offer.Category.Label(), offer.Location.City,
		offer.StartDate.Format("2006-01-02"), offer.EndDate.Format("2006-01-02"))

	switch offer.Compensation.Mode {
	case entity.CompensationFixed:
		line += fmt.Sprintf("  %.2f total", offer.Compensation.TotalPayment)
	default:
		line += fmt.Sprintf("  %.2f/h", offer.Compensation.HourlyRate)
	}
	if distance >= 0 {
		line += fmt.Sprintf("  %.1f km away", distance/1000)
	}

	fmt.Println(line)
}

func printApplication(application *entity.Application) {
	line := fmt.Sprintf("#%d  offer %d  %s  applied %s",
		application.ID, application.JobOfferID,
		application.Status.Label(), application.AppliedAt.Format("2006-01-02"))
	if application.Response != "" {
		line += "  " + strings.TrimSpace(application.Response)
	}

	fmt.Println(line)
}

func printJob(view *usecase.JobView) {
	line := fmt.Sprintf("#%d  %-28s %s", view.Job.ID, view.Job.Title, view.Job.Status.Label())
	if view.Offer != nil {
		start, end := view.Offer.ScheduleWindow()
		line += fmt.Sprintf("  %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
		if view.Job.Status == entity.JobCompleted {
			line += fmt.Sprintf("  payout %.2f", view.Offer.Compensation.Total(workedHours(view.Offer)))
		}
	}

	fmt.Println(line)
}

// workedHours estimates the total worked duration of an offer: the daily
// shift length times the number of scheduled days, both boundaries included.
func workedHours(offer *entity.JobOffer) time.Duration {
	days := int(offer.EndDate.Sub(offer.StartDate).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	from, errFrom := time.Parse("15:04", offer.StartTime)
	to, errTo := time.Parse("15:04", offer.EndTime)
	if errFrom != nil || errTo != nil || !to.After(from) {
		return time.Duration(days) * 8 * time.Hour
	}

	return time.Duration(days) * to.Sub(from)
}
