package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/volops/voladmin/internal/domain/model"
)

func runImport(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	file := fs.String("file", "", "path to the CSV file")
	sendCredentials := fs.Bool("send-credentials", false, "mail credentials to every created user")
	commit := fs.Bool("commit", false, "create the accounts when the preview is clean")
	yes := fs.Bool("yes", false, "skip the commit confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	importer := cmdCtx.App.Importer
	if err := importer.SelectFile(*file, *sendCredentials); err != nil {
		return err
	}

	preview, err := importer.Preview(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	if err := printPreview(preview); err != nil {
		return err
	}

	if len(preview.Errors) > 0 {
		return fmt.Errorf("%d rows failed validation, fix the file and retry", len(preview.Errors))
	}
	if !*commit {
		return writeln(os.Stdout, "Preview only. Re-run with -commit to create the accounts.")
	}

	prompt := fmt.Sprintf("This creates %d accounts.", len(preview.Rows))
	if err := confirmAction(prompt, *yes); err != nil {
		return err
	}

	result, err := importer.Commit(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	if err := writeln(os.Stdout, result.Message); err != nil {
		return err
	}
	if result.EmailFailedCount > 0 {
		return writef(os.Stdout, "Credential delivery failed for %d users: %v\n",
			result.EmailFailedCount, result.FailedEmails)
	}
	return nil
}

func printPreview(preview *model.ImportPreview) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Username\tEmail\tName\tRole\tAreas"); err != nil {
		return err
	}
	for _, row := range preview.Rows {
		if err := writef(w, "%s\t%s\t%s %s\t%s\t%v\n",
			row.Username, row.Email, row.FirstName, row.LastName, row.Role, row.WorkAreaCodes); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(preview.Errors) == 0 {
		return writef(os.Stdout, "\n%d rows ready to import\n", len(preview.Rows))
	}
	if err := writef(os.Stdout, "\n%d rows with errors:\n", len(preview.Errors)); err != nil {
		return err
	}
	for _, rowErr := range preview.Errors {
		if err := writef(os.Stdout, "  %s\n", rowErr); err != nil {
			return err
		}
	}
	return nil
}

func runExport(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	role := fs.String("role", "", "filter by role")
	active := fs.String("active", "", "filter by active-volunteer flag (true/false)")
	areas := fs.String("areas", "", "comma-separated work area ids")
	search := fs.String("search", "", "free-text search")
	outDir := fs.String("out", ".", "directory the CSV is written to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter model.ExportFilter
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
	if *areas != "" {
		ids, err := parseIDList(*areas)
		if err != nil {
			return err
		}
		filter.WorkAreaIDs = ids
	}
	filter.Search = *search

	path, err := cmdCtx.App.Importer.Export(cmdCtx.Ctx, filter, *outDir)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Exported to %s\n", path)
}
