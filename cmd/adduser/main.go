package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"golang.org/x/term"

	"TravelLedger/database/migration"
	"TravelLedger/database/postgres"
	"TravelLedger/database/sqlite"
	"TravelLedger/internal/api/auth"
	authRepository "TravelLedger/internal/api/auth/repository"
	"TravelLedger/internal/config"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/bcrypt"
	"TravelLedger/pkg/utils"
)

const minPasswordLength = 8

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address")
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbPath := fs.String("db", "", "Path to a sqlite database file (defaults to the configured database)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	for _, f := range []struct{ name, value string }{{"email", *email}, {"first", *first}, {"last", *last}} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> -first <first name> -last <last name> [-password <password>] [-db <sqlite path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)

	ctx := context.Background()
	users := authRepository.NewUsers(db, log)
	normalized := strings.ToLower(strings.TrimSpace(*email))

	if _, err := users.GetByEmail(ctx, normalized); err == nil {
		return fmt.Errorf("user %s already exists", normalized)
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.New().HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := utils.New().NewULIDFromTimestamp(time.Now())
	if err != nil {
		return fmt.Errorf("failed to generate id: %w", err)
	}

	user := entity.User{
		ID:        id,
		Email:     normalized,
		FirstName: strings.TrimSpace(*first),
		LastName:  strings.TrimSpace(*last),
		Password:  hash,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Email, user.ID)
	return nil
}

// openDatabase opens and migrates the sqlite file at path, or the database
// configured through the environment when path is empty.
func openDatabase(path string) (*sqlx.DB, error) {
	env := config.Load()
	if path != "" {
		env.DBDriver, env.SQLiteDBPath = config.DriverSQLite, path
	}

	var db *sqlx.DB
	var dsn string
	var err error
	switch env.DBDriver {
	case config.DriverPostgres:
		db, err = postgres.New(env.Postgres)
		dsn = env.Postgres.DSN()
	default:
		db, err = sqlite.New(env.SQLiteDBPath)
		dsn = sqlite.DSN(env.SQLiteDBPath)
	}
	if err != nil {
		return nil, err
	}

	if err := migration.Up(env.DBDriver, dsn); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
