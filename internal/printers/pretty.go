// Package printers renders tasks for the command line.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/projection"
)

// ShortIDLen is how much of a task id is shown
const ShortIDLen = 8

// PrettyPrint writes colored tables to Out
type PrettyPrint struct {
	Out io.Writer
	Now time.Time
}

// ShortID trims id for display. Any unique prefix is accepted back.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Out, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.Out, title)
	switch count {
	case 1:
		_, _ = c.Fprintf(pp.Out, " - %d task\n", count)
	default:
		_, _ = c.Fprintf(pp.Out, " - %d tasks\n", count)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.Out, " none\n\n")
}

// Tasks prints one row per task
func (pp *PrettyPrint) Tasks(tasks []models.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, t := range tasks {
		tbl.AddRow(y.Sprint(ShortID(t.ID)), mark(t), pp.title(t), Priority(t.Priority), projection.DueLabel(t.Due, pp.Now))
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	_, _ = fmt.Fprintln(pp.Out)
}

// Task prints a single task with its description
func (pp *PrettyPrint) Task(t models.Task) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), t.ID)
	tbl.AddRow(bold.Sprint("Title"), t.Title)
	tbl.AddRow(bold.Sprint("Status"), mark(t)+" "+string(t.Status))
	tbl.AddRow(bold.Sprint("Priority"), Priority(t.Priority))
	tbl.AddRow(bold.Sprint("Due"), projection.DueLabel(t.Due, pp.Now))
	if t.Description != "" {
		tbl.AddRow(bold.Sprint("Description"), t.Description)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

// Summary prints the counts and a text progress bar
func (pp *PrettyPrint) Summary(s projection.Summary) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Progress"), fmt.Sprintf("%s %d%%", bar(s.CompletionPercent, 20), s.CompletionPercent))
	tbl.AddRow(bold.Sprint("Pending"), s.Pending)
	tbl.AddRow(bold.Sprint("Completed"), color.GreenString("%d", s.Completed))
	tbl.AddRow(bold.Sprint("Urgent"), color.RedString("%d", s.Urgent))
	tbl.AddRow(bold.Sprint("Total"), s.Total)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

// Agenda prints each day group under its label
func (pp *PrettyPrint) Agenda(groups []projection.DayGroup) {
	for _, g := range groups {
		pp.TitleWithCount(g.Label, len(g.Tasks))
		pp.Tasks(g.Tasks)
	}
}

// User prints the signed-in identity
func (pp *PrettyPrint) User(user models.AuthUser, profile models.UserProfile) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), profile.FullName())
	tbl.AddRow(bold.Sprint("Email"), user.Email)
	tbl.AddRow(bold.Sprint("User ID"), user.ID)
	if profile.AvatarURL != "" {
		tbl.AddRow(bold.Sprint("Avatar"), profile.AvatarURL)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

func (pp *PrettyPrint) title(t models.Task) string {
	if t.Completed() {
		return color.New(color.Faint, color.CrossedOut).Sprint(t.Title)
	}
	return t.Title
}

func mark(t models.Task) string {
	if t.Completed() {
		return color.GreenString("✓")
	}
	return "•"
}

// Priority colors a priority name
func Priority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return color.New(color.FgRed, color.Bold).Sprint(p)
	case models.PriorityMedium:
		return color.YellowString(string(p))
	}
	return color.New(color.Faint).Sprint(p)
}

func bar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
