package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"airclient/api"
	"airclient/internal/authtoken"
	"airclient/internal/domain"
	"airclient/internal/refresh"
	"airclient/internal/search"
	"airclient/internal/service/rebooking"
)

const timeLayout = "2006-01-02 15:04"

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)
	if *name == "" || *email == "" || *password == "" {
		return errors.New("-name, -email and -password are required")
	}

	if err := a.auth.Register(ctx, *name, *email, *password); err != nil {
		return err
	}
	fmt.Printf("registered %s, now run: airclient login -email %s\n", *email, *email)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return errors.New("-email and -password are required")
	}

	data, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", data.Email)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (a *app) cmdWhoami() error {
	data, err := a.auth.Current()
	if err != nil {
		return err
	}

	fmt.Printf("email: %s\n", data.Email)
	if data.UserID != "" {
		fmt.Printf("user id: %s\n", data.UserID)
	}
	switch {
	case authtoken.IsExpired(data.Token):
		fmt.Println("session: expired")
	case authtoken.IsExpiringSoon(data.Token):
		exp, _ := authtoken.ExpirationTime(data.Token)
		fmt.Printf("session: expiring soon (%s)\n", exp.Local().Format(timeLayout))
	default:
		fmt.Println("session: active")
	}
	return nil
}

func (a *app) cmdFlights(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("flights", flag.ExitOnError)
	searchTerm := fs.String("search", "", "match origin, destination or flight id")
	origin := fs.String("origin", "", "exact origin")
	destination := fs.String("destination", "", "exact destination")
	status := fs.String("status", "", "status filter")
	fs.Parse(args)

	all, err := a.flights.List(ctx)
	if err != nil {
		return err
	}

	// One-shot invocation, so the search commits without a debounce.
	engine := search.NewEngine(0)
	engine.SetSearch(*searchTerm)
	engine.SetOrigin(*origin)
	engine.SetDestination(*destination)
	engine.SetStatus(*status)

	matched := engine.Apply(all)
	if engine.HasActiveFilters() {
		fmt.Printf("%d of %d flights match\n", len(matched), len(all))
	}
	for _, f := range matched {
		printFlight(f)
	}
	return nil
}

func (a *app) cmdRoutes(ctx context.Context) error {
	all, err := a.flights.List(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("origins:      %s\n", strings.Join(search.UniqueOrigins(all), ", "))
	fmt.Printf("destinations: %s\n", strings.Join(search.UniqueDestinations(all), ", "))
	return nil
}

func (a *app) cmdBookings(ctx context.Context) error {
	list, err := a.bookings.My(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no bookings")
		return nil
	}
	for _, b := range list {
		printBooking(b)
	}
	for _, n := range a.rebooking.Notifications() {
		fmt.Printf("delay on booking %d: %s, departure moved %s -> %s (%d min)\n",
			n.BookingID, n.Reason,
			n.OriginalDepartureTime.Local().Format(timeLayout),
			n.NewDepartureTime.Local().Format(timeLayout),
			n.DelayMinutes())
	}
	return nil
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	flightID := fs.Int64("flight", 0, "flight id")
	fs.Parse(args)
	if *flightID == 0 {
		return errors.New("-flight is required")
	}

	booking, err := a.bookings.Book(ctx, *flightID)
	if err != nil {
		return err
	}
	fmt.Printf("booked: ")
	printBooking(*booking)
	return nil
}

func (a *app) cmdCancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	bookingID := fs.Int64("booking", 0, "booking id")
	fs.Parse(args)
	if *bookingID == 0 {
		return errors.New("-booking is required")
	}

	if err := a.bookings.Cancel(ctx, *bookingID); err != nil {
		return err
	}
	fmt.Printf("booking %d cancelled\n", *bookingID)
	return nil
}

func (a *app) cmdSimulateDelay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate-delay", flag.ExitOnError)
	bookingID := fs.Int64("booking", 0, "booking id")
	fs.Parse(args)
	if *bookingID == 0 {
		return errors.New("-booking is required")
	}

	if _, err := a.rebooking.SimulateDelay(ctx, *bookingID); err != nil {
		return err
	}
	printSuggestions(a.rebooking.Suggestions(*bookingID))
	return nil
}

func (a *app) cmdSuggestions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("suggestions", flag.ExitOnError)
	bookingID := fs.Int64("booking", 0, "booking id")
	fs.Parse(args)
	if *bookingID == 0 {
		return errors.New("-booking is required")
	}

	// The service only serves bookings with an active client-side delay;
	// fall back to the API directly so suggestions survive a restart.
	suggestions, err := a.rebooking.FetchSuggestions(ctx, *bookingID)
	if err != nil {
		suggestions, err = a.api.RebookingSuggestions(ctx, *bookingID)
	}
	if err != nil {
		return err
	}
	printSuggestions(suggestions)
	return nil
}

func (a *app) cmdRebook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rebook", flag.ExitOnError)
	bookingID := fs.Int64("booking", 0, "booking id")
	flightID := fs.Int64("flight", 0, "replacement flight id")
	fs.Parse(args)
	if *bookingID == 0 || *flightID == 0 {
		return errors.New("-booking and -flight are required")
	}

	booking, err := a.rebooking.Rebook(ctx, *bookingID, *flightID)
	if errors.Is(err, rebooking.ErrNoActiveDelay) {
		// No client-side delay state in this process; move the booking
		// directly.
		booking, err = a.api.UpdateBooking(ctx, *bookingID, *flightID)
	}
	if err != nil {
		return err
	}
	fmt.Printf("rebooked: ")
	printBooking(*booking)

	// Give the scheduled refresh broadcast a chance to run before exit.
	time.Sleep(a.cfg.Refresh.RebookDelay() + 100*time.Millisecond)
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", "", "new display name")
	email := fs.String("email", "", "new email address")
	fs.Parse(args)

	var profile *domain.Profile
	var err error
	if *name != "" || *email != "" {
		profile, err = a.api.UpdateProfile(ctx, api.UpdateProfileRequest{Name: *name, Email: *email})
	} else {
		profile, err = a.api.GetProfile(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Printf("id:    %s\nname:  %s\nemail: %s\n", profile.ID, profile.Name, profile.Email)
	return nil
}

func (a *app) cmdDeleteAccount(ctx context.Context) error {
	if err := a.api.DeleteAccount(ctx); err != nil {
		return err
	}
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("account deleted")
	return nil
}

// cmdWatch keeps the flight and booking views fresh: a periodic poll
// triggers the refresh broadcaster, and every broadcast reloads both
// lists. Runs until interrupted.
func (a *app) cmdWatch(ctx context.Context) error {
	unregister := a.broadcaster.Register(func() {
		if err := a.flights.Refresh(ctx); err != nil {
			log.Printf("refresh flights: %v", err)
			return
		}
		list, err := a.bookings.My(ctx)
		if err != nil {
			log.Printf("refresh bookings: %v", err)
			return
		}
		fmt.Printf("-- %s: %d bookings\n", time.Now().Format(timeLayout), len(list))
		for _, b := range list {
			printBooking(b)
		}
	})
	defer unregister()

	poller := refresh.NewPoller()
	poller.Apply(refresh.PollerConfig{
		Interval:  a.cfg.Refresh.PollInterval(),
		Enabled:   true,
		OnRefresh: a.broadcaster.TriggerNow,
	})
	defer poller.Stop()

	fmt.Printf("watching every %s, ctrl-c to stop\n", a.cfg.Refresh.PollInterval())
	a.broadcaster.TriggerNow()
	<-ctx.Done()
	return nil
}

func printFlight(f domain.Flight) {
	fmt.Printf("#%d  %s -> %s  dep %s  arr %s  seats %d  $%.2f\n",
		f.ID, f.Origin, f.Destination,
		f.DepartureTime.Local().Format(timeLayout),
		f.ArrivalTime.Local().Format(timeLayout),
		f.AvailableSeats, f.Price)
}

func printBooking(b domain.Booking) {
	if b.Flight != nil {
		fmt.Printf("booking #%d  [%s]  flight #%d  %s -> %s  dep %s\n",
			b.ID, b.Status, b.FlightID, b.Flight.Origin, b.Flight.Destination,
			b.Flight.DepartureTime.Local().Format(timeLayout))
		return
	}
	fmt.Printf("booking #%d  [%s]  flight #%d\n", b.ID, b.Status, b.FlightID)
}

func printSuggestions(suggestions []domain.RebookingSuggestion) {
	if len(suggestions) == 0 {
		fmt.Println("no rebooking options")
		return
	}
	for _, s := range suggestions {
		fmt.Printf("option %d: flight #%d  %s -> %s  dep %s  seats %d  $%.2f\n",
			s.Priority, s.FlightID, s.Origin, s.Destination,
			s.DepartureTime.Local().Format(timeLayout),
			s.AvailableSeats, s.Price)
	}
}

