package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/cli/plants"
	"github.com/julianstephens/plantpal/internal/cli/settings"
	"github.com/julianstephens/plantpal/internal/cli/system"
	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/engine"
	apperrors "github.com/julianstephens/plantpal/internal/errors"
	"github.com/julianstephens/plantpal/internal/events"
	"github.com/julianstephens/plantpal/internal/keyring"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/metrics"
	"github.com/julianstephens/plantpal/internal/storage"
	"github.com/julianstephens/plantpal/internal/storage/postgres"
	"github.com/julianstephens/plantpal/internal/storage/sqlite"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string   `help:"SQLite database path. Ignored when a PostgreSQL connection string is configured." type:"path" default:"${config_path}"`
	DatabaseURL  string   `help:"PostgreSQL connection string. Credentials must NOT be embedded; use the OS keyring or .pgpass instead." name:"database-url"`
	User         string   `help:"User whose plant to act on." env:"PLANTPAL_USER" default:"${default_user}"`
	Debug        bool     `help:"Enable debug logging."`
	KafkaBrokers []string `help:"Kafka brokers for reminder events. Events are only logged when unset." env:"PLANTPAL_KAFKA_BROKERS" sep:","`
	KafkaTopic   string   `help:"Kafka topic for reminder events." env:"PLANTPAL_KAFKA_TOPIC" default:"${kafka_topic}"`

	Init     system.InitCmd       `cmd:"" help:"Initialize plantpal storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Open the interactive garden." default:"1"`
	Daemon   system.DaemonCmd     `cmd:"" help:"Run scheduled neglect sweeps and serve metrics."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the database connection stored in the OS keyring."`
	Backup   system.BackupCmd     `cmd:"" help:"Manage SQLite database backups."`
	Plant    plants.PlantCmd      `cmd:"" help:"Create, show or delete your plant."`
	Journal  plants.JournalCmd    `cmd:"" help:"Write a journal entry to grow your plant."`
	Listen   plants.ListenCmd     `cmd:"" help:"Record a listening session."`
	Care     plants.CareCmd       `cmd:"" help:"Water, fertilize or give sunshine to your plant."`
	Mood     plants.MoodCmd       `cmd:"" help:"Preview mood analysis."`
	Neglect  plants.NeglectCmd    `cmd:"" help:"Run daily neglect checks."`
	Reminder plants.ReminderCmd   `cmd:"" help:"Show the reminder status of your plant."`
	History  plants.HistoryCmd    `cmd:"" help:"Browse, export or prune activity history."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

// Commands that open storage themselves or never touch it
var skipLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
	"backup":  true,
	"mood":    true,
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A virtual plant that grows with your mood"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":      constants.Version,
			"config_path":  constants.DefaultConfigPath,
			"default_user": constants.DefaultUserID,
			"kafka_topic":  constants.DefaultKafkaTopic,
		},
	)

	command := ""
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		command = fields[0]
	}

	store, configDir, err := openStore()
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Console:   command == "daemon",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	publisher, err := newPublisher()
	if err != nil {
		apperrors.Fatal(err)
	}
	defer publisher.Close()

	m := metrics.New()
	appCtx := &cli.Context{
		Store:     store,
		Publisher: publisher,
		Metrics:   m,
		UserID:    CLI.User,
		Engine: engine.New(store, engine.Options{
			Publisher: publisher,
			Metrics:   m,
		}),
	}

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		publisher.Close()
		apperrors.Fatal(err)
	}
}

// openStore picks PostgreSQL when a connection string resolves and SQLite otherwise
func openStore() (storage.Provider, string, error) {
	defaultDir := filepath.Dir(kong.ExpandPath(constants.DefaultConfigPath))

	if CLI.DatabaseURL != "" {
		if _, err := postgres.ValidateConnString(CLI.DatabaseURL); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("connection strings with embedded credentials are not allowed on the command line; use '%s keyring set' or .pgpass instead", constants.AppName)
			}
			return nil, "", err
		}
	}

	connStr, err := keyring.ResolveConnectionString(CLI.DatabaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve database connection: %w", err)
	}
	if connStr != "" {
		return postgres.New(connStr), defaultDir, nil
	}
	return sqlite.NewStore(CLI.Config), filepath.Dir(CLI.Config), nil
}

func newPublisher() (events.Publisher, error) {
	if len(CLI.KafkaBrokers) == 0 {
		return events.NewLogPublisher(), nil
	}
	p, err := events.NewKafkaPublisher(CLI.KafkaBrokers, CLI.KafkaTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to configure kafka: %w", err)
	}
	return p, nil
}
