package command

import (
	"examplar-api/pkg/password"

	"github.com/urfave/cli/v2"
)

// NewApp builds the command line application. serve runs when no command
// is given.
func NewApp() *cli.App {
	serve := &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagEnvFile,
				Usage:   "dotenv file loaded before reading the environment",
				Value:   defaultEnvFile,
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Action: Serve,
	}

	return &cli.App{
		Name:  "examplar-api",
		Usage: "product and user catalogue API",
		Flags: serve.Flags,
		Commands: []*cli.Command{
			serve,
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for an AUTH_USERS entry",
				ArgsUsage: "[password]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  FlagCost,
						Usage: "bcrypt cost",
						Value: password.DefaultCost,
					},
				},
				Action: HashPassword,
			},
			{
				Name:   "policies",
				Usage:  "list route access policies",
				Action: Policies,
			},
		},
		Action: Serve,
	}
}
