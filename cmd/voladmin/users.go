package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/volops/voladmin/internal/domain/model"
)

func runUsers(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return usersList(cmdCtx, nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return usersList(cmdCtx, rest)
	case "get":
		return usersGet(cmdCtx, rest)
	case "create":
		return usersCreate(cmdCtx, rest)
	case "update":
		return usersUpdate(cmdCtx, rest)
	case "delete":
		return usersDelete(cmdCtx, rest)
	case "restore":
		return usersRestore(cmdCtx, rest)
	default:
		return fmt.Errorf("unknown users subcommand %q (list, get, create, update, delete, restore)", sub)
	}
}

func usersList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users list", flag.ContinueOnError)
	search := fs.String("search", "", "free-text search")
	role := fs.String("role", "", "filter by role (base, admin, superadmin)")
	active := fs.String("active", "", "filter by active-volunteer flag (true/false)")
	area := fs.Int("area", 0, "filter by work area id")
	query := fs.String("query", "", "JMESPath expression applied to the result")
	asTable := fs.Bool("table", false, "render as a table instead of JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := model.UserFilter{Search: *search, WorkAreaID: *area}
	if *role != "" {
		parsed, err := model.ParseRole(*role)
		if err != nil {
			return err
		}
		filter.Role = parsed
	}
	if *active != "" {
		v, err := strconv.ParseBool(*active)
		if err != nil {
			return fmt.Errorf("invalid -active value %q", *active)
		}
		filter.IsActiveVolunteer = &v
	}

	users, err := cmdCtx.App.UserAdmin.List(cmdCtx.Ctx, filter)
	if err != nil {
		return err
	}
	if *asTable {
		return printUserTable(users)
	}
	return printResult(users, *query)
}

func printUserTable(users []model.User) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tUsername\tName\tEmail\tRole\tActive"); err != nil {
		return err
	}
	for _, u := range users {
		if err := writef(w, "%d\t%s\t%s\t%s\t%s\t%t\n",
			u.ID, u.Username, u.DisplayName(), u.Email, u.Role, u.IsActiveVolunteer); err != nil {
			return err
		}
	}
	return w.Flush()
}

func usersGet(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users get", flag.ContinueOnError)
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs.Args())
	if err != nil {
		return err
	}
	user, err := cmdCtx.App.UserAdmin.Get(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}
	return printResult(user, *query)
}

func usersCreate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users create", flag.ContinueOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	role := fs.String("role", string(model.RoleBase), "role (base, admin, superadmin)")
	phone := fs.String("phone", "", "phone number")
	areas := fs.String("areas", "", "comma-separated work area ids")
	sendCredentials := fs.Bool("send-credentials", false, "mail the initial credentials to the new user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	parsedRole, err := model.ParseRole(*role)
	if err != nil {
		return err
	}
	areaIDs, err := parseIDList(*areas)
	if err != nil {
		return err
	}
	req := model.UserCreate{
		Username:    *username,
		Email:       *email,
		FirstName:   *firstName,
		LastName:    *lastName,
		Role:        parsedRole,
		Phone:       *phone,
		WorkAreaIDs: areaIDs,
	}

	if *sendCredentials {
		res, err := cmdCtx.App.UserAdmin.CreateAndSendCredentials(cmdCtx.Ctx, req)
		if err != nil {
			return err
		}
		if res.CredentialWarning != nil {
			if err := writef(os.Stderr, "warning: %v\n", res.CredentialWarning); err != nil {
				return err
			}
		}
		return writef(os.Stdout, "Created user %s (id %d)\n", res.User.Username, res.User.ID)
	}

	user, err := cmdCtx.App.UserAdmin.Create(cmdCtx.Ctx, req)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Created user %s (id %d)\n", user.Username, user.ID)
}

func usersUpdate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users update", flag.ContinueOnError)
	email := fs.String("email", "", "new email")
	firstName := fs.String("first-name", "", "new first name")
	lastName := fs.String("last-name", "", "new last name")
	role := fs.String("role", "", "new role")
	phone := fs.String("phone", "", "new phone number")
	active := fs.String("active", "", "set active-volunteer flag (true/false)")
	areas := fs.String("areas", "", "comma-separated work area ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs.Args())
	if err != nil {
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
	if *role != "" {
		parsed, parseErr := model.ParseRole(*role)
		if parseErr != nil {
			return parseErr
		}
		patch.Role = &parsed
	}
	if *active != "" {
		v, parseErr := strconv.ParseBool(*active)
		if parseErr != nil {
			return fmt.Errorf("invalid -active value %q", *active)
		}
		patch.IsActiveVolunteer = &v
	}
	if *areas != "" {
		ids, parseErr := parseIDList(*areas)
		if parseErr != nil {
			return parseErr
		}
		patch.WorkAreaIDs = ids
	}

	user, err := cmdCtx.App.UserAdmin.Update(cmdCtx.Ctx, id, patch)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Updated user %s (id %d)\n", user.Username, user.ID)
}

func usersDelete(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("users delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs.Args())
	if err != nil {
		return err
	}
	if err := confirmAction(fmt.Sprintf("This deletes user %d.", id), *yes); err != nil {
		return err
	}
	if err := cmdCtx.App.UserAdmin.Delete(cmdCtx.Ctx, id); err != nil {
		return err
	}
	return writef(os.Stdout, "Deleted user %d\n", id)
}

func usersRestore(cmdCtx *commandContext, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	if err := cmdCtx.App.UserAdmin.Restore(cmdCtx.Ctx, id); err != nil {
		return err
	}
	return writef(os.Stdout, "Restored user %d\n", id)
}

func runBulk(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("bulk", flag.ContinueOnError)
	action := fs.String("action", "", "bulk action (activate, deactivate, delete, assign_role, send_credentials)")
	ids := fs.String("ids", "", "comma-separated user ids")
	role := fs.String("role", "", "role for assign_role")
	yes := fs.Bool("yes", false, "skip the confirmation prompt for delete")
	if err := fs.Parse(args); err != nil {
		return err
	}

	userIDs, err := parseIDList(*ids)
	if err != nil {
		return err
	}
	cmdCtx.App.UserAdmin.Select(userIDs...)

	actionName := model.BulkActionName(*action)
	if actionName == model.BulkDelete {
		prompt := fmt.Sprintf("This deletes %d users.", len(userIDs))
		if err := confirmAction(prompt, *yes); err != nil {
			return err
		}
	}

	result, err := cmdCtx.App.UserAdmin.ApplyBulk(cmdCtx.Ctx, actionName, model.Role(*role))
	if err != nil {
		return err
	}
	if err := writeln(os.Stdout, result.Message); err != nil {
		return err
	}
	if actionName == model.BulkSendCredentials && result.FailedCount > 0 {
		return writef(os.Stdout, "Delivery failed for: %s\n", strings.Join(result.FailedEmails, ", "))
	}
	return nil
}

func runAreas(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("areas", flag.ContinueOnError)
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	areas, err := cmdCtx.App.UserAdmin.WorkAreas(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return printResult(areas, *query)
}

func argID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one id argument, got %d", len(args))
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func parseIDList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
