package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/client"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/config"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/credentials"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/repositories"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/services"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/session"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Session
	files   *services.FileService
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the credential database and wires the API client, services
// and session. Logs go to logOut; command output goes to stdout.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, logOut, c.Verbose)
	if err != nil {
		return nil, err
	}

	db, err := repositories.OpenDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := credentials.NewStore(db, logger)
	api := client.New(c.BaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithMiddleware(
			client.Logging(logger),
			client.RequestID(),
			client.PurgeOnUnauthorized(store, logger),
			client.BearerToken(store),
		),
	)

	auth := services.NewAuthService(api, store, logger)
	sess := session.New(auth,
		session.WithPurgeEvents(store),
		session.WithExpiryCheck(),
		session.WithLogger(logger),
	)

	return &App{
		config:  c,
		log:     logger,
		db:      db,
		session: sess,
		files:   services.NewFileService(api, logger),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Close releases the session subscription and the database.
func (a *App) Close() error {
	a.session.Teardown()
	return a.db.Close()
}

// Run resolves the session from stored credentials and serves commands until
// exit or end of input.
func (a *App) Run(ctx context.Context) {
	ctx = session.NewContext(ctx, a.session)

	st := a.session.Init(ctx)
	fmt.Fprintln(a.out, "Welcome to the file vault (type 'help' for commands)")
	if st.Authenticated() && st.User != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", st.User.DisplayName())
	}

	unsubscribe := a.session.Subscribe(func(s session.State) {
		if !s.Authenticated() {
			a.log.Info(ctx, "session ended")
		}
	})
	defer unsubscribe()

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) getStatus() string {
	st := a.session.State()
	if st.Authenticated() && st.User != nil {
		return fmt.Sprintf("(%s %s)", st.User.Email, st.Status)
	}
	return fmt.Sprintf("(%s)", st.Status)
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated()
}

// notify prints the single outcome line of a command.
func (a *App) notify(success bool, message, fallback string) {
	if message == "" {
		message = fallback
	}
	if success {
		fmt.Fprintln(a.out, "OK:", message)
		return
	}
	fmt.Fprintln(a.out, "Error:", message)
}
