package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/lawdesk/lawdesk/internal/api"
	"github.com/lawdesk/lawdesk/internal/async"
	"github.com/lawdesk/lawdesk/internal/auth"
	"github.com/lawdesk/lawdesk/internal/config"
	"github.com/lawdesk/lawdesk/internal/guard"
	"github.com/lawdesk/lawdesk/internal/listing"
	"github.com/lawdesk/lawdesk/internal/logger"
	"github.com/lawdesk/lawdesk/internal/models"
	"github.com/lawdesk/lawdesk/internal/routing"
	"github.com/lawdesk/lawdesk/internal/session"
	"github.com/lawdesk/lawdesk/internal/validation"
)

var (
	version   string
	buildDate string
)

// shell is the interactive client. It plays the browser's part: it
// tracks the current location, performs forced navigation, and hosts
// the per-view controllers.
type shell struct {
	mu      sync.Mutex
	current string

	resolver   *auth.Resolver
	surface    *api.API
	logger     *zap.Logger
	clients    *listing.Controller
	clientsOut *async.Fetcher[listing.Params]

	login *async.Operation[models.LoginRequest, *models.LoginResponse]
}

// Current returns the current path plus query string.
func (s *shell) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Navigate switches the whole application to url.
func (s *shell) Navigate(url string) {
	s.mu.Lock()
	s.current = url
	s.mu.Unlock()
	fmt.Println("→", url)
}

// Toast prints a transient notification.
func (s *shell) Toast(n async.Notification) {
	if n.Title != "" {
		fmt.Printf("[%s] %s\n", n.Title, n.Message)
		return
	}
	fmt.Println(n.Message)
}

// open navigates to path after evaluating the route guards, exactly the
// way the browser router's loaders would.
func (s *shell) open(path string) {
	route, _ := routing.Match(path)
	if route == nil {
		s.Navigate(routing.NotFoundURL)
		return
	}

	if route.Roles == nil {
		if res := guard.AuthLayout(s.resolver); !res.Allow {
			s.Navigate(res.RedirectTo)
			return
		}
		s.Navigate(path)
		return
	}

	if res := guard.DashboardLayout(s.resolver); !res.Allow {
		s.Navigate(res.RedirectTo)
		return
	}
	if res := guard.Page(s.resolver, route.Roles); !res.Allow {
		s.Navigate(res.RedirectTo)
		return
	}
	s.Navigate(path)
}

// fetchClients is the abortable list fetch behind the clients view.
func (s *shell) fetchClients(ctx context.Context, params listing.Params) {
	resp, err := s.surface.Clients.List(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			// Superseded by a newer fetch.
			return
		}
		s.logger.Warn("clients fetch failed", zap.Error(err))
		return
	}

	s.clients.SetTotal(resp.Data.Pagination.TotalCount)
	s.clients.SetRowCount(len(resp.Data.Result))

	fmt.Printf("clients (page %d of %d, %d total):\n",
		params.Page, s.clients.TotalPages(), resp.Data.Pagination.TotalCount)
	for i, c := range resp.Data.Result {
		fmt.Printf("  [%d] %s  %s %s  %s\n", i, c.ID, c.Name, c.FamilyName, c.Email)
	}
	fmt.Println("  pages:", renderPages(s.clients.PageNumbers()))
}

func renderPages(entries []listing.PageEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Ellipsis {
			parts = append(parts, "...")
			continue
		}
		parts = append(parts, strconv.Itoa(e.Page))
	}
	return strings.Join(parts, " ")
}

func (s *shell) doLogin(email, password string) {
	form := validation.LoginForm{Email: email, Password: password}
	if errs := validation.Validate(form); len(errs) > 0 {
		for _, fe := range errs {
			fmt.Println(fe.Message)
		}
		return
	}

	resp, err := s.login.Execute(context.Background(), models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return
	}

	redirect := s.resolver.CompleteLogin(resp.Data.Token)
	fmt.Println("Login successful.")
	s.open(redirect)
}

func (s *shell) doLogout() {
	s.resolver.Logout()
	fmt.Println("You have been logged out.")
	s.open(routing.LoginURL)
}

func (s *shell) doWhoami() {
	snapshot := s.resolver.GetAuth(auth.Options{})
	if !snapshot.IsAuthenticated {
		fmt.Println("not authenticated")
		return
	}
	fmt.Printf("authenticated as role %q, landing %s\n", snapshot.Role, snapshot.RedirectURL)
}

func (s *shell) doExport(path string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Println("cannot create file:", err)
		return
	}
	defer f.Close()

	if err := s.surface.Visas.Export(context.Background(), f); err != nil {
		s.logger.Warn("visa export failed", zap.Error(err))
		return
	}
	fmt.Println("exported to", path)
}

func (s *shell) doBulkDelete(ids []string) {
	result := listing.BulkDelete(context.Background(), ids, func(ctx context.Context, id string) error {
		return s.surface.Clients.Delete(ctx, id)
	})
	fmt.Printf("deleted %d of %d\n", len(result.Deleted), len(ids))
	for id, err := range result.Failed {
		fmt.Printf("  %s: %v\n", id, err)
	}
	if len(result.Failed) == 0 {
		s.clientsOut.Fetch(context.Background(), s.clients.Params())
	}
}

func (s *shell) doVisas(clientID string) {
	resp, err := s.surface.Visas.ListByClient(context.Background(), clientID, listing.DefaultParams())
	if err != nil {
		s.logger.Warn("visas fetch failed", zap.String("client", clientID), zap.Error(err))
		return
	}
	for _, v := range resp.Data.Result {
		fmt.Printf("  %s  %s → %s\n", v.ID,
			models.VisaName(models.ExistingVisaOptions, v.ExistingVisa),
			models.VisaName(models.WishedVisaOptions, v.WishedVisa))
	}
}

func (s *shell) doProperties(clientID string) {
	resp, err := s.surface.Properties.ListByClient(context.Background(), clientID, listing.DefaultParams())
	if err != nil {
		s.logger.Warn("properties fetch failed", zap.String("client", clientID), zap.Error(err))
		return
	}
	for _, p := range resp.Data.Result {
		fmt.Printf("  %s  %s (%s)\n", p.ID, p.Address, p.Type)
	}
}

// repl runs the interactive loop, accepting commands to browse the
// dashboard data.
func (s *shell) repl() {
	defer s.clientsOut.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("lawdesk> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <email> <password>, logout, whoami,")
			fmt.Println("  open <path>, clients [page], search <term>, sort <column>,")
			fmt.Println("  client <id>, visas <clientID>, properties <clientID>,")
			fmt.Println("  delete <id ...>, export <file>, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			s.doLogin(args[1], args[2])
		case "logout":
			s.doLogout()
		case "whoami":
			s.doWhoami()
		case "open":
			if len(args) < 2 {
				fmt.Println("Usage: open <path>")
				continue
			}
			s.open(args[1])
		case "clients":
			if len(args) > 1 {
				if page, err := strconv.Atoi(args[1]); err == nil {
					s.clients.SetPage(page)
					continue
				}
			}
			s.clientsOut.Fetch(context.Background(), s.clients.Params())
		case "search":
			term := ""
			if len(args) > 1 {
				term = strings.Join(args[1:], " ")
			}
			s.clients.SetSearch(term)
		case "sort":
			if len(args) < 2 {
				fmt.Println("Usage: sort <column>")
				continue
			}
			s.clients.ToggleSort(args[1])
		case "client":
			if len(args) < 2 {
				fmt.Println("Usage: client <id>")
				continue
			}
			c, err := s.surface.Clients.Get(context.Background(), args[1])
			if err != nil {
				s.logger.Warn("client fetch failed", zap.String("id", args[1]), zap.Error(err))
				continue
			}
			fmt.Printf("  %s %s  %s  %s  %s\n", c.Name, c.FamilyName, c.Email, c.Nationality, c.DateOfBirth)
		case "visas":
			if len(args) < 2 {
				fmt.Println("Usage: visas <clientID>")
				continue
			}
			s.doVisas(args[1])
		case "properties":
			if len(args) < 2 {
				fmt.Println("Usage: properties <clientID>")
				continue
			}
			s.doProperties(args[1])
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id ...>")
				continue
			}
			s.doBulkDelete(args[1:])
		case "export":
			if len(args) < 2 {
				fmt.Println("Usage: export <file>")
				continue
			}
			s.doExport(args[1])
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main wires the session store, auth resolver, HTTP pipeline, and list
// controllers together and starts the shell.
func main() {
	var showVer bool
	flag.BoolVar(&showVer, "version", false, "show build version and date")

	opts := config.Parse()

	if showVer {
		fmt.Printf("LawDesk Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	zapLogger, err := logger.New(opts.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	store := session.NewFileStore(opts.StoragePath)

	s := &shell{
		logger:  zapLogger,
		current: routing.RootURL,
	}
	s.resolver = auth.NewResolver(store, s, nil)

	coordinator := session.NewCoordinator(store, s, zapLogger)
	client := api.NewClient(opts.APIURL, store, zapLogger,
		api.WithSessionExpiredHandler(coordinator.SessionExpired))
	s.surface = api.New(client)

	s.clients = listing.NewController(func(params listing.Params) {
		s.clientsOut.Fetch(context.Background(), params)
	})
	s.clientsOut = async.NewFetcher(s.fetchClients)

	s.login = async.NewOperation(
		func(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
			return s.surface.Auth.Login(ctx, req)
		},
		async.WithNotification(async.NotificationToast, "Login"),
		async.WithToaster(s),
	)

	zapLogger.Info("starting client shell",
		zap.String("api", opts.APIURL),
		zap.String("env", opts.Env),
	)

	snapshot := s.resolver.GetAuth(auth.Options{})
	s.open(snapshot.RedirectURL)
	s.repl()
}
