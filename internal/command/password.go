package command

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"examplar-api/pkg/password"

	"github.com/urfave/cli/v2"
)

var errPasswordRequired = errors.New("a password argument or a line on stdin is required")

// HashPassword prints a bcrypt hash usable as the password field of an
// AUTH_USERS entry. The password is read from the first argument, or from
// stdin when no argument is given.
func HashPassword(c *cli.Context) error {
	plain := c.Args().First()
	if plain == "" {
		line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && line == "" {
			return errPasswordRequired
		}
		plain = strings.TrimRight(line, "\r\n")
	}
	if plain == "" {
		return errPasswordRequired
	}

	cost := c.Int(FlagCost)
	if err := password.ValidateCost(cost); err != nil {
		return err
	}

	hash, err := password.HashWithCost(plain, cost)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, hash)
	return err
}
