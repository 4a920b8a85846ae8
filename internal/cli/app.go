package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	errorvalues "github.com/limbo/stepdiary/internal/error_values"
	"github.com/limbo/stepdiary/internal/lifecycle"
	"github.com/limbo/stepdiary/internal/service"
)

// App is the interactive presentation layer: one UI session driving the
// lifecycle machine and invoking the core operations.
type App struct {
	users   service.UserServiceI
	steps   service.StepLogServiceI
	admin   service.AdminServiceI
	machine *lifecycle.Machine
	prompt  *prompter
	out     io.Writer
}

type AppOptions struct {
	UserService    service.UserServiceI
	StepLogService service.StepLogServiceI
	AdminService   service.AdminServiceI
	In             io.Reader
	Out            io.Writer
}

func NewApp(opts *AppOptions) *App {
	return &App{
		users:   opts.UserService,
		steps:   opts.StepLogService,
		admin:   opts.AdminService,
		machine: lifecycle.New(),
		prompt:  newPrompter(opts.In, opts.Out),
		out:     opts.Out,
	}
}

func (a *App) Run(ctx context.Context) error {
	if err := a.users.Init(ctx); err != nil {
		return errors.New("initializing directory error: " + err.Error())
	}
	fmt.Fprintln(a.out, "stepdiary — daily step tracker")
	for {
		switch a.machine.Phase() {
		case lifecycle.PhaseAnonymous:
			if quit := a.anonymousMenu(ctx); quit {
				return nil
			}
		case lifecycle.PhaseRegistering:
			a.registrationForm(ctx)
		case lifecycle.PhasePendingVerification:
			a.verificationForm(ctx)
		case lifecycle.PhaseAuthenticated:
			a.sessionMenu(ctx)
		}
	}
}

// anonymousMenu returns true when the user chose to quit.
func (a *App) anonymousMenu(ctx context.Context) bool {
	fmt.Fprintln(a.out, "\n[1] login  [2] register  [q] quit")
	switch a.prompt.readLine("> ") {
	case "1":
		a.loginForm(ctx)
	case "2":
		if err := a.machine.BeginRegistration(); err != nil {
			a.printError(err)
		}
	case "q", "quit", "":
		return true
	default:
		fmt.Fprintln(a.out, "unknown choice")
	}
	return false
}

func (a *App) loginForm(ctx context.Context) {
	username := a.prompt.readLine("username: ")
	credential := a.prompt.readSecret("password: ")
	account, err := a.users.Login(ctx, username, credential)
	if err != nil {
		a.printError(err)
		return
	}
	if err := a.machine.LoggedIn(account); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, "welcome, %s\n", account.Username)
}

func (a *App) registrationForm(ctx context.Context) {
	req := &service.RegisterRequest{
		Username:   a.prompt.readLine("username: "),
		Credential: a.prompt.readSecret("password: "),
		Email:      a.prompt.readLine("email (leave empty to skip): "),
	}
	if req.Username == "" {
		a.machine.CancelRegistration()
		return
	}
	account, err := a.users.Register(ctx, req)
	if err != nil {
		a.printError(err)
		a.machine.CancelRegistration()
		return
	}
	pending := account.PendingCode != ""
	if err := a.machine.RegistrationSubmitted(account.Username, pending); err != nil {
		a.printError(err)
		return
	}
	if pending {
		fmt.Fprintln(a.out, "registered — check your inbox for the verification code")
	} else {
		fmt.Fprintln(a.out, "registered — you can log in now")
	}
}

func (a *App) verificationForm(ctx context.Context) {
	code := a.prompt.readLine("verification code (empty to postpone): ")
	if code == "" {
		a.machine.CancelRegistration()
		return
	}
	if err := a.users.Verify(ctx, a.machine.PendingUsername(), code); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, "verified — you can log in now")
	if err := a.machine.VerificationCompleted(); err != nil {
		a.printError(err)
	}
}

func (a *App) printError(err error) {
	fmt.Fprintln(a.out, "error: "+shortMessage(err))
}

// shortMessage maps the error taxonomy onto the one-liners the user
// sees. Anything unknown is shown as-is.
func shortMessage(err error) string {
	switch {
	case errors.Is(err, errorvalues.ErrInvalidInput):
		return "a required field is empty or invalid"
	case errors.Is(err, errorvalues.ErrUserExists):
		return "this username is already taken"
	case errors.Is(err, errorvalues.ErrUserNotFound):
		return "no such user"
	case errors.Is(err, errorvalues.ErrUserNotVerified):
		return "verify your account first"
	case errors.Is(err, errorvalues.ErrWrongCredentials):
		return "wrong name or password"
	case errors.Is(err, errorvalues.ErrCodeMismatch):
		return "that code doesn't match"
	case errors.Is(err, errorvalues.ErrNoPendingCode):
		return "there is no verification pending"
	case errors.Is(err, errorvalues.ErrProtectedUser):
		return "the admin account can't be deleted"
	case errors.Is(err, errorvalues.ErrEntryNotFound):
		return "no such entry"
	case errors.Is(err, errorvalues.ErrNotConfirmed):
		return "cancelled"
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return "that isn't possible right now"
	}
	return err.Error()
}
