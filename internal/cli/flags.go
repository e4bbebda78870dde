package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// errUserRequired is returned when a command needs --user or --username.
var errUserRequired = errors.New("--user or --username is required")

// addUserFlags registers the identity flags shared by user-scoped commands.
func addUserFlags(cmd *cobra.Command, userID, username *string) {
	cmd.Flags().StringVarP(userID, "user", "u", "", "User identifier")
	cmd.Flags().StringVar(username, "username", "", "User handle (records are attributed to it when set)")
}

// requireUser validates that at least one identity flag is set.
func requireUser(userID, username string) error {
	if strings.TrimSpace(userID) == "" && strings.TrimSpace(username) == "" {
		return errUserRequired
	}
	return nil
}
