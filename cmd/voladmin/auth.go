package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/volops/voladmin/internal/domain/model"
)

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "username (prompted when omitted)")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	if *username == "" {
		if err := write(os.Stdout, "Username: "); err != nil {
			return err
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read username: %w", err)
		}
		*username = strings.TrimSpace(line)
	}
	if *password == "" {
		if err := write(os.Stdout, "Password: "); err != nil {
			return err
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}
	if *username == "" || *password == "" {
		return errors.New("username and password are required")
	}

	user, err := cmdCtx.App.Auth.Login(cmdCtx.Ctx, *username, *password)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Logged in as %s (%s)\n", user.DisplayName(), user.Role)
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	if err := cmdCtx.App.Auth.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	return writeln(os.Stdout, "Logged out")
}

func runWhoami(cmdCtx *commandContext, _ []string) error {
	sess, err := cmdCtx.App.Auth.Current(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	if !sess.LoggedIn() {
		return writeln(os.Stdout, "Not logged in")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "Username\t%s\n", sess.User.Username); err != nil {
		return err
	}
	if err := writef(w, "Name\t%s\n", sess.User.DisplayName()); err != nil {
		return err
	}
	if err := writef(w, "Email\t%s\n", sess.User.Email); err != nil {
		return err
	}
	if err := writef(w, "Role\t%s\n", sess.User.Role); err != nil {
		return err
	}
	return w.Flush()
}

func runProfile(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return profileShow(cmdCtx, nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "show":
		return profileShow(cmdCtx, rest)
	case "update":
		return profileUpdate(cmdCtx, rest)
	case "change-password":
		return profileChangePassword(cmdCtx, rest)
	default:
		return fmt.Errorf("unknown profile subcommand %q (show, update, change-password)", sub)
	}
}

func profileShow(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("profile show", flag.ContinueOnError)
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := cmdCtx.App.Auth.Profile(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return printResult(user, *query)
}

func profileUpdate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("profile update", flag.ContinueOnError)
	email := fs.String("email", "", "new email")
	firstName := fs.String("first-name", "", "new first name")
	lastName := fs.String("last-name", "", "new last name")
	phone := fs.String("phone", "", "new phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var patch model.UserUpdate
	if *email != "" {
		patch.Email = email
	}
	if *firstName != "" {
		patch.FirstName = firstName
	}
	if *lastName != "" {
		patch.LastName = lastName
	}
	if *phone != "" {
		patch.Phone = phone
	}

	user, err := cmdCtx.App.Auth.UpdateProfile(cmdCtx.Ctx, patch)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Profile updated for %s\n", user.Username)
}

func profileChangePassword(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("profile change-password", flag.ContinueOnError)
	oldPassword := fs.String("old", "", "current password")
	newPassword := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := cmdCtx.App.Auth.ChangePassword(cmdCtx.Ctx, model.PasswordChange{
		OldPassword: *oldPassword,
		NewPassword: *newPassword,
	})
	if err != nil {
		return err
	}
	return writeln(os.Stdout, "Password changed")
}
