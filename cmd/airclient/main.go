package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"airclient/api"
	"airclient/config"
	"airclient/internal/alert"
	"airclient/internal/cache"
	"airclient/internal/refresh"
	"airclient/internal/service/auth"
	"airclient/internal/service/bookings"
	"airclient/internal/service/flights"
	"airclient/internal/service/rebooking"
	"airclient/internal/session"
	"airclient/internal/transport"
)

// app bundles the client services the subcommands run against.
type app struct {
	cfg         *config.Config
	sessions    *session.Store
	api         *api.Client
	auth        *auth.AuthService
	flights     *flights.FlightService
	bookings    *bookings.BookingService
	rebooking   *rebooking.RebookingService
	broadcaster *refresh.Broadcaster
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg)
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func newApp(cfg *config.Config) *app {
	sessions := session.NewStore(sessionPath(cfg))
	alerts := alert.NewPrinter()

	httpClient := transport.NewClient(cfg.API.BaseURL, sessions, cfg.API.Timeout(),
		transport.WithAuthFailureHook(func() {
			alerts.Notify(alert.LevelError, "Session expired, please log in again")
		}),
	)
	apiClient := api.NewClient(httpClient)

	broadcaster := refresh.NewBroadcaster()
	flightCache := cache.NewFlightCache(cfg.Refresh.PollInterval())
	flightService := flights.NewFlightService(apiClient, flightCache)
	bookingService := bookings.NewBookingService(apiClient, flightService, broadcaster)
	rebookingService := rebooking.NewRebookingService(apiClient, apiClient, broadcaster,
		rebooking.WithAlertSink(alerts),
		rebooking.WithDelay(cfg.Delay.DelayReason(), cfg.Delay.Offset()),
		rebooking.WithRefreshDelay(cfg.Refresh.RebookDelay()),
	)

	return &app{
		cfg:         cfg,
		sessions:    sessions,
		api:         apiClient,
		auth:        auth.NewAuthService(apiClient, sessions),
		flights:     flightService,
		bookings:    bookingService,
		rebooking:   rebookingService,
		broadcaster: broadcaster,
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.cmdRegister(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami()
	case "flights":
		return a.cmdFlights(ctx, args)
	case "routes":
		return a.cmdRoutes(ctx)
	case "bookings":
		return a.cmdBookings(ctx)
	case "book":
		return a.cmdBook(ctx, args)
	case "cancel":
		return a.cmdCancel(ctx, args)
	case "simulate-delay":
		return a.cmdSimulateDelay(ctx, args)
	case "suggestions":
		return a.cmdSuggestions(ctx, args)
	case "rebook":
		return a.cmdRebook(ctx, args)
	case "profile":
		return a.cmdProfile(ctx, args)
	case "delete-account":
		return a.cmdDeleteAccount(ctx)
	case "watch":
		return a.cmdWatch(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func sessionPath(cfg *config.Config) string {
	if cfg.Session.StoragePath != "" {
		return cfg.Session.StoragePath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".airclient", "session.json")
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: airclient <command> [flags]

commands:
  register        create an account
  login           sign in and store the session
  logout          drop the stored session
  whoami          show the current session
  flights         list flights, optionally filtered
  routes          list known origins and destinations
  bookings        list my bookings and active delay notifications
  book            book a flight
  cancel          cancel a booking
  simulate-delay  report a synthetic delay for a booking
  suggestions     list rebooking options for a delayed booking
  rebook          move a delayed booking to another flight
  profile         show or update the profile
  delete-account  delete the account and log out
  watch           poll for changes until interrupted`)
}
