// Package nav tracks which page is showing and which task is being edited.
package nav

// View is a page of the app
type View int

const (
	ViewTasks View = iota
	ViewCalendar
	ViewSummary
	ViewProfile
	ViewEditTask
)

func (v View) String() string {
	switch v {
	case ViewTasks:
		return "tasks"
	case ViewCalendar:
		return "calendar"
	case ViewSummary:
		return "summary"
	case ViewProfile:
		return "profile"
	case ViewEditTask:
		return "edit-task"
	}
	return "unknown"
}

// State is the current page plus the task selected for editing
type State struct {
	view     View
	selected string
}

// Current returns the page to show. Edit without a selection falls back to
// the task list.
func (s *State) Current() View {
	if s.view == ViewEditTask && s.selected == "" {
		return ViewTasks
	}
	return s.view
}

// Selected returns the id of the task open for editing
func (s *State) Selected() (string, bool) {
	if s.view != ViewEditTask || s.selected == "" {
		return "", false
	}
	return s.selected, true
}

// Go switches to a page. Leaving the editor clears the selection.
func (s *State) Go(v View) {
	if v != ViewEditTask {
		s.selected = ""
	}
	s.view = v
}

// Edit opens the editor for a task
func (s *State) Edit(id string) {
	s.selected = id
	s.view = ViewEditTask
}

// Back returns to the task list
func (s *State) Back() {
	s.Go(ViewTasks)
}

// Reset returns to the default page with nothing selected
func (s *State) Reset() {
	*s = State{}
}

// TaskDeleted must be called after a task is removed. If that task was open
// in the editor the list is shown again.
func (s *State) TaskDeleted(id string) {
	if s.view == ViewEditTask && s.selected == id {
		s.Back()
	}
}
