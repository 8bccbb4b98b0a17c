package migrate

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/nekrodarkmoon/zen/db"
)

var Command = &cli.Command{
	Name:   "migrate",
	Usage:  "Run migrations manually",
	Action: run,
}

func run(*cli.Context) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return cli.Exit("$DATABASE_URL is not set.", 1)
	}

	if err := db.RunMigrations(url); err != nil {
		return cli.Exit(fmt.Sprintf("Running migrations: %v", err), 1)
	}

	fmt.Println("Successfully ran migrations!")
	return nil
}
