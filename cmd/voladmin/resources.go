package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/service"
	"github.com/volops/voladmin/internal/util"
)

func runActivities(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return activitiesList(cmdCtx, nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return activitiesList(cmdCtx, rest)
	case "by-area":
		return activitiesByArea(cmdCtx, rest)
	case "create":
		return activitiesCreate(cmdCtx, rest)
	case "delete":
		return resourceDelete(cmdCtx, "activity", rest, cmdCtx.App.Activities.Remove)
	default:
		return fmt.Errorf("unknown activities subcommand %q (list, by-area, create, delete)", sub)
	}
}

func activitiesList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("activities list", flag.ContinueOnError)
	area := fs.String("area", "", "filter by work area code")
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := map[string]string{}
	if *area != "" {
		filter["area"] = *area
	}
	items, err := cmdCtx.App.Activities.FetchAll(cmdCtx.Ctx, filter)
	if err != nil {
		return err
	}
	return printResult(items, *query)
}

func activitiesByArea(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("activities by-area", flag.ContinueOnError)
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	grouped, err := cmdCtx.App.ActAPI.ByArea(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return printResult(grouped, *query)
}

func activitiesCreate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("activities create", flag.ContinueOnError)
	name := fs.String("name", "", "activity name")
	description := fs.String("description", "", "description")
	area := fs.String("area", "", "work area code")
	color := fs.String("color", "", "hex color")
	link := fs.String("link", "", "enrollment link")
	if err := fs.Parse(args); err != nil {
		return err
	}
	item, err := cmdCtx.App.Activities.Create(cmdCtx.Ctx, model.ActivityCreate{
		Name:           *name,
		Description:    *description,
		Area:           *area,
		ColorHex:       *color,
		EnrollmentLink: *link,
	})
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Created activity %s (id %d)\n", item.Name, item.ID)
}

func runShifts(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return shiftsList(cmdCtx, nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return shiftsList(cmdCtx, rest)
	case "calendar":
		return shiftsCalendar(cmdCtx, rest)
	case "upcoming":
		return shiftsUpcoming(cmdCtx, rest)
	case "today":
		return shiftsToday(cmdCtx, rest)
	case "create":
		return shiftsCreate(cmdCtx, rest)
	case "delete":
		return resourceDelete(cmdCtx, "shift", rest, cmdCtx.App.ShiftStore.Remove)
	default:
		return fmt.Errorf("unknown shifts subcommand %q (list, calendar, upcoming, today, create, delete)", sub)
	}
}

func shiftsList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("shifts list", flag.ContinueOnError)
	activity := fs.Int("activity", 0, "filter by activity id")
	upcoming := fs.Bool("upcoming", false, "only future shifts")
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := model.ShiftFilter{ActivityID: *activity, Upcoming: *upcoming}
	items, err := cmdCtx.App.ShiftStore.FetchAll(cmdCtx.Ctx, filter.Query())
	if err != nil {
		return err
	}
	return printResult(items, *query)
}

func shiftsCalendar(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("shifts calendar", flag.ContinueOnError)
	month := fs.String("month", "", "month as YYYY-MM (defaults to the current month)")
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	when := time.Now()
	if *month != "" {
		parsed, err := time.Parse("2006-01", *month)
		if err != nil {
			return fmt.Errorf("invalid -month %q (want YYYY-MM)", *month)
		}
		when = parsed
	}
	items, err := cmdCtx.App.Shifts.Calendar(cmdCtx.Ctx, when)
	if err != nil {
		return err
	}
	return printResult(items, *query)
}

func shiftsUpcoming(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("shifts upcoming", flag.ContinueOnError)
	limit := fs.Int("limit", 10, "maximum number of shifts")
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, err := cmdCtx.App.Shifts.Upcoming(cmdCtx.Ctx, *limit)
	if err != nil {
		return err
	}
	return printResult(items, *query)
}

func shiftsToday(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("shifts today", flag.ContinueOnError)
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, err := cmdCtx.App.Shifts.Today(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return printResult(items, *query)
}

func shiftsCreate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("shifts create", flag.ContinueOnError)
	activity := fs.Int("activity", 0, "activity id")
	title := fs.String("title", "", "shift title")
	date := fs.String("date", "", "date as YYYY-MM-DD")
	start := fs.String("start", "", "start time as HH:MM")
	end := fs.String("end", "", "end time as HH:MM")
	capacity := fs.Int("capacity", 0, "available slots")
	link := fs.String("link", "", "enrollment link")
	notes := fs.String("notes", "", "notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	day, err := model.ParseDate(*date)
	if err != nil {
		return err
	}
	item, err := cmdCtx.App.ShiftStore.Create(cmdCtx.Ctx, model.ShiftCreate{
		ActivityID:     *activity,
		Title:          *title,
		Date:           day,
		StartTime:      *start,
		EndTime:        *end,
		Capacity:       *capacity,
		EnrollmentLink: *link,
		Notes:          *notes,
	})
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Created shift %s (id %d)\n", item.Title, item.ID)
}

func runTodos(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return todosList(cmdCtx, nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return todosList(cmdCtx, rest)
	case "board":
		return todosBoard(cmdCtx, rest)
	case "mine":
		return todosMine(cmdCtx, rest)
	case "create":
		return todosCreate(cmdCtx, rest)
	case "done":
		return todosDone(cmdCtx, rest)
	case "delete":
		return resourceDelete(cmdCtx, "todo", rest, cmdCtx.App.TodoStore.Remove)
	default:
		return fmt.Errorf("unknown todos subcommand %q (list, board, mine, create, done, delete)", sub)
	}
}

func todosList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("todos list", flag.ContinueOnError)
	status := fs.String("status", "", "filter by status (todo, in_progress, done)")
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := map[string]string{}
	if *status != "" {
		filter["status"] = *status
	}
	items, err := cmdCtx.App.TodoStore.FetchAll(cmdCtx.Ctx, filter)
	if err != nil {
		return err
	}
	return printResult(items, *query)
}

func todosBoard(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("todos board", flag.ContinueOnError)
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	board, err := cmdCtx.App.Todos.Board(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return printResult(board, *query)
}

func todosMine(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("todos mine", flag.ContinueOnError)
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, err := cmdCtx.App.Todos.Mine(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	return printResult(items, *query)
}

func todosCreate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("todos create", flag.ContinueOnError)
	title := fs.String("title", "", "to-do title")
	description := fs.String("description", "", "description")
	priority := fs.String("priority", string(model.TodoPriorityMedium), "priority (low, medium, high)")
	assignee := fs.Int("assignee", 0, "assignee user id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	item, err := cmdCtx.App.TodoStore.Create(cmdCtx.Ctx, model.TodoCreate{
		Title:       *title,
		Description: *description,
		Priority:    model.TodoPriority(*priority),
		AssigneeID:  *assignee,
	})
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Created todo %q (id %d)\n", item.Title, item.ID)
}

func todosDone(cmdCtx *commandContext, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	item, err := cmdCtx.App.Todos.MarkDone(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Marked %q as done\n", item.Title)
}

func runDocs(cmdCtx *commandContext, args []string) error {
	if len(args) == 0 {
		return docsList(cmdCtx, nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return docsList(cmdCtx, rest)
	case "upload":
		return docsUpload(cmdCtx, rest)
	case "download":
		return docsDownload(cmdCtx, rest)
	case "delete":
		return resourceDelete(cmdCtx, "document", rest, cmdCtx.App.DocStore.Remove)
	default:
		return fmt.Errorf("unknown docs subcommand %q (list, upload, download, delete)", sub)
	}
}

func docsList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("docs list", flag.ContinueOnError)
	category := fs.String("category", "", "filter by category")
	query := fs.String("query", "", "JMESPath expression applied to the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := map[string]string{}
	if *category != "" {
		filter["categoria"] = *category
	}
	items, err := cmdCtx.App.DocStore.FetchAll(cmdCtx.Ctx, filter)
	if err != nil {
		return err
	}
	return printResult(items, *query)
}

func docsUpload(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("docs upload", flag.ContinueOnError)
	file := fs.String("file", "", "path to the file")
	title := fs.String("title", "", "document title")
	description := fs.String("description", "", "description")
	category := fs.String("category", string(model.DocumentOther), "category")
	visibility := fs.String("visibility", string(model.VisibilityAll), "visibility (tutti, admin, segreteria)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	meta := model.DocumentUpload{
		Title:       *title,
		Description: *description,
		Category:    model.DocumentCategory(*category),
		Visibility:  model.DocumentVisibility(*visibility),
	}
	if err := meta.Validate(); err != nil {
		return err
	}

	info, err := os.Stat(*file)
	if err != nil {
		return fmt.Errorf("stat document: %w", err)
	}
	if limit := cmdCtx.App.Config.Limits.DocumentMaxBytes; info.Size() > limit {
		return fmt.Errorf("file is %s, limit is %s",
			util.FormatBytes(info.Size()), util.FormatBytes(limit))
	}
	content, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	doc, err := cmdCtx.App.Documents.Upload(cmdCtx.Ctx, meta, filepath.Base(*file), content)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Uploaded %q (id %d)\n", doc.Title, doc.ID)
}

func docsDownload(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("docs download", flag.ContinueOnError)
	out := fs.String("out", "", "output path (defaults to the document title)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs.Args())
	if err != nil {
		return err
	}

	doc, err := cmdCtx.App.Documents.Get(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}
	content, err := cmdCtx.App.Documents.Download(cmdCtx.Ctx, id)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = doc.Title
		if doc.FileExt != "" {
			path += "." + doc.FileExt
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return writef(os.Stdout, "Downloaded to %s (%s)\n", path, util.FormatBytes(int64(len(content))))
}

func runWarmup(cmdCtx *commandContext, _ []string) error {
	res, err := service.Warmup(cmdCtx.Ctx, service.WarmupOptions{
		Directory:  cmdCtx.App.Users,
		Activities: cmdCtx.App.ActAPI,
		Shifts:     cmdCtx.App.Shifts,
		Todos:      cmdCtx.App.Todos,
		Logger:     cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Warmed up: %d areas, %d activities, %d upcoming shifts, %d todos\n",
		len(res.WorkAreas), len(res.Activities), len(res.Upcoming), len(res.Todos))
}

func resourceDelete(
	cmdCtx *commandContext,
	kind string,
	args []string,
	remove func(ctx context.Context, id int) error,
) error {
	fs := flag.NewFlagSet(kind+" delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs.Args())
	if err != nil {
		return err
	}
	if err := confirmAction(fmt.Sprintf("This deletes %s %d.", kind, id), *yes); err != nil {
		return err
	}
	if err := remove(cmdCtx.Ctx, id); err != nil {
		return err
	}
	return writef(os.Stdout, "Deleted %s %d\n", kind, id)
}
