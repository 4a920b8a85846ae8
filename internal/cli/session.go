package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/limbo/stepdiary/internal/lifecycle"
	"github.com/limbo/stepdiary/internal/service"
	"github.com/limbo/stepdiary/pkg/entity"
)

func (a *App) sessionMenu(ctx context.Context) {
	username, role, ok := a.machine.Identity()
	if !ok {
		return
	}
	if role == entity.RoleAdmin {
		fmt.Fprintln(a.out, "\n[1] overview  [2] users  [3] delete user  [l] logout")
	} else {
		fmt.Fprintln(a.out, "\n[1] add  [2] list  [3] stats  [4] edit  [5] remove  [6] clear all  [7] settings  [l] logout")
	}
	choice := a.prompt.readLine("> ")
	// An empty choice also covers EOF on a closed input.
	if choice == "" || choice == "l" || choice == "logout" {
		if err := a.machine.Logout(); err != nil {
			a.printError(err)
		}
		return
	}
	if role == entity.RoleAdmin {
		a.adminAction(ctx, choice)
		return
	}
	a.userAction(ctx, username, choice)
}

func (a *App) userAction(ctx context.Context, username, choice string) {
	switch choice {
	case "1":
		a.addEntry(ctx, username)
	case "2":
		a.listEntries(ctx, username)
	case "3":
		a.showStats(ctx, username)
	case "4":
		a.editEntry(ctx, username)
	case "5":
		a.removeEntry(ctx, username)
	case "6":
		confirmed := a.prompt.confirm("really delete all entries?")
		if err := a.steps.Clear(ctx, username, confirmed); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintln(a.out, "all entries deleted")
	case "7":
		a.settingsFlow(ctx, username)
	default:
		fmt.Fprintln(a.out, "unknown choice")
	}
}

func (a *App) addEntry(ctx context.Context, username string) {
	today := time.Now().Format(service.DateLayout)
	date := a.prompt.readLine(fmt.Sprintf("date [%s]: ", today))
	if date == "" {
		date = today
	}
	steps := service.CoerceSteps(a.prompt.readLine("steps: "))
	entry, err := a.steps.UpsertForDate(ctx, username, date, steps)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, "saved %d steps for %s\n", entry.Steps, entry.Date)
}

// listEntries renders newest first; the stored log stays oldest first.
func (a *App) listEntries(ctx context.Context, username string) {
	entries, err := a.steps.Load(ctx, username)
	if err != nil {
		a.printError(err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "no entries yet")
		return
	}
	display := make([]entity.Entry, len(entries))
	copy(display, entries)
	sort.Slice(display, func(i, j int) bool {
		return display[i].Date > display[j].Date
	})
	for _, e := range display {
		fmt.Fprintf(a.out, "%s  %6d steps  (id %s)\n", e.Date, e.Steps, e.ID)
	}
}

func (a *App) showStats(ctx context.Context, username string) {
	entries, err := a.steps.Load(ctx, username)
	if err != nil {
		a.printError(err)
		return
	}
	stats := service.ComputeStats(entries)
	fmt.Fprintf(a.out, "days: %d  total: %d  average: %d\n", stats.Count, stats.TotalSteps, stats.AverageSteps)
}

func (a *App) editEntry(ctx context.Context, username string) {
	id := a.prompt.readLine("entry id: ")
	steps := service.CoerceSteps(a.prompt.readLine("steps: "))
	if err := a.steps.EditSteps(ctx, username, id, steps); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, "entry updated")
}

func (a *App) removeEntry(ctx context.Context, username string) {
	id := a.prompt.readLine("entry id: ")
	confirmed := a.prompt.confirm("delete this entry?")
	if err := a.steps.Remove(ctx, username, id, confirmed); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, "entry deleted")
}

// settingsFlow gates the new-password form behind the human check. The
// gate resets as soon as the settings view closes.
func (a *App) settingsFlow(ctx context.Context, username string) {
	if err := a.machine.OpenSettings(); err != nil {
		a.printError(err)
		return
	}
	defer a.machine.CloseSettings()
	for !a.machine.SettingsUnlocked() {
		answer := a.prompt.readLine(lifecycle.HumanCheckQuestion + " (empty to go back): ")
		if answer == "" {
			return
		}
		if !a.machine.AnswerHumanCheck(answer) {
			fmt.Fprintln(a.out, "try again")
		}
	}
	newCredential := a.prompt.readSecret("new password: ")
	if err := a.users.ChangePassword(ctx, username, newCredential); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, "password changed")
}

func (a *App) adminAction(ctx context.Context, choice string) {
	switch choice {
	case "1":
		a.adminOverview(ctx)
	case "2":
		a.adminUsers(ctx)
	case "3":
		username := a.prompt.readLine("username to delete: ")
		confirmed := a.prompt.confirm(fmt.Sprintf("delete %q and all their entries?", username))
		if err := a.users.DeleteUser(ctx, username, confirmed); err != nil {
			a.printError(err)
			return
		}
		fmt.Fprintln(a.out, "user deleted")
	default:
		fmt.Fprintln(a.out, "unknown choice")
	}
}

func (a *App) adminOverview(ctx context.Context) {
	aggregate, err := a.admin.AggregateAll(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	if len(aggregate) == 0 {
		fmt.Fprintln(a.out, "no entries yet")
		return
	}
	for _, e := range aggregate {
		fmt.Fprintf(a.out, "%-12s %s  %6d steps\n", e.Owner, e.Date, e.Steps)
	}
	stats, err := a.admin.OverviewStats(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, "entries: %d  total: %d  average: %d\n", stats.Count, stats.TotalSteps, stats.AverageSteps)
}

func (a *App) adminUsers(ctx context.Context) {
	accounts, err := a.users.ListAll(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	for _, account := range accounts {
		fmt.Fprintf(a.out, "%-12s role=%s state=%s\n", account.Username, account.Role, account.State)
	}
}
