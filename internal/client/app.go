package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/sqledu-client/internal/api"
	"github.com/MKhiriev/sqledu-client/internal/dispatcher"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/MKhiriev/sqledu-client/internal/service"
	"github.com/MKhiriev/sqledu-client/internal/validators"
	"github.com/MKhiriev/sqledu-client/models"
)

type App struct {
	session   service.ClientSessionService
	api       *api.API
	validator validators.Validator
	buildInfo models.AppBuildInfo
	out       io.Writer
	logger    *logger.Logger

	// copyToClipboard is swapped in tests.
	copyToClipboard func(string) error
}

func NewApp(
	services *service.ClientServices,
	endpoints *api.API,
	buildInfo models.AppBuildInfo,
	out io.Writer,
	log *logger.Logger,
) *App {
	return &App{
		session:         services.SessionService,
		api:             endpoints,
		validator:       validators.NewRequestValidator(),
		buildInfo:       buildInfo,
		out:             out,
		logger:          log,
		copyToClipboard: clipboard.WriteAll,
	}
}

// command is one CLI verb. authed commands require a stored access token;
// teacher commands additionally require the teacher role.
type command struct {
	usage   string
	authed  bool
	teacher bool
	run     func(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error
}

var commands = map[string]command{
	"login":            {usage: "login -u EMAIL_OR_USERNAME -p PASSWORD", run: runLogin},
	"register":         {usage: "register -email E -username U -password P -confirm P -code CODE [-invite CODE]", run: runRegister},
	"code":             {usage: "code -email EMAIL", run: runCode},
	"logout":           {usage: "logout", run: runLogout},
	"version":          {usage: "version", run: runVersion},
	"whoami":           {usage: "whoami", authed: true, run: runWhoami},
	"profile":          {usage: "profile [-username NEW_NAME]", authed: true, run: runProfile},
	"token":            {usage: "token [-copy]", authed: true, run: runToken},
	"questions":        {usage: "questions [-skip N] [-limit N]", authed: true, run: runQuestions},
	"question":         {usage: "question [-rate 1..10] ID", authed: true, run: runQuestion},
	"hint":             {usage: "hint -sql SQL", authed: true, run: runHint},
	"check":            {usage: "check -q QUESTION_ID -sql SQL [-lang L] [-challenge]", authed: true, run: runCheck},
	"submissions":      {usage: "submissions [-q QUESTION_ID] [-limit N] [-id SUBMISSION_ID]", authed: true, run: runSubmissions},
	"chat":             {usage: "chat -q QUESTION_ID (-m MESSAGE | -history | -clear) [-lang L]", authed: true, run: runChat},
	"knowledge-points": {usage: "knowledge-points", authed: true, teacher: true, run: runKnowledgePoints},
	"generate":         {usage: "generate -kp KNOWLEDGE_POINT_ID [-count N]", authed: true, teacher: true, run: runGenerate},
}

// Run executes one command. args[0] is the command name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		a.printUsage()
		return nil
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if cmd.authed && !a.session.EnsureAuthed(ctx) {
		return ErrNotLoggedIn
	}
	if cmd.teacher && !a.session.RequireTeacher(ctx) {
		return ErrTeacherOnly
	}

	a.logger.Debug().Str("func", "App.Run").Str("command", name).Msg("running command")

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := cmd.run(ctx, a, fs, args[1:]); err != nil {
		a.logger.Err(err).Str("func", "App.Run").Str("command", name).Msg("command failed")
		return err
	}
	return nil
}

func (a *App) printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("usage: sqledu [flags] COMMAND [ARGS]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", commands[name].usage)
	}
	fmt.Fprint(a.out, b.String())
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// parse parses command flags; parse errors become ErrUsage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// ReportError writes err to w unless the user has already been told about
// it through a notification.
func ReportError(w io.Writer, err error) {
	if ce, ok := dispatcher.AsClientError(err); ok {
		if alreadyNotified(ce) {
			return
		}
		fmt.Fprintf(w, "error: %s\n", ce.Message)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

func alreadyNotified(ce *dispatcher.ClientError) bool {
	switch ce.Kind {
	case dispatcher.KindTransport:
		return !errors.Is(ce, context.Canceled) && !errors.Is(ce, context.DeadlineExceeded)
	case dispatcher.KindAuthIrrecoverable, dispatcher.KindPermissionDenied:
		return true
	case dispatcher.KindApplication:
		return ce.StatusCode != 0
	default:
		return false
	}
}
