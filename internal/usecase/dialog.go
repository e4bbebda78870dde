package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/hourlog/internal/domain"
)

// WelcomeText is sent in reply to /start.
const WelcomeText = "Hi 👋 I help you track the time you spend on projects.\n" +
	"— log how many hours you worked,\n" +
	"— review statistics per project.\n\n" +
	"Ready? Press a button!"

// DialogInput contains one inbound user event.
// Fields are ordered to minimize memory padding.
type DialogInput struct {
	UserID   string       // User identifier (required)
	Username string       // Handle, kept on the session for record attribution
	Event    domain.Event // What the user did
}

// DialogOutput describes the outcome of a turn.
// Fields are ordered to minimize memory padding.
type DialogOutput struct {
	Record   *domain.TimeRecord // Set when the turn saved a record
	SaveErr  error              // Set when saving failed (already reported to the user)
	State    domain.DialogState // State after the turn
	Terminal domain.DialogState // done or cancelled when the turn ended a dialog
}

// Dialog is the per-user conversation state machine. It collects a project,
// hours and a comment over several turns and writes the record on completion,
// and it drives the statistics menu.
type Dialog struct {
	sessions   domain.SessionStore
	projects   domain.ProjectRegistry
	logTime    *LogTime
	addProject *AddProject
	showStats  *ShowStats
	reportLink *ShowReportLink
	presenter  domain.Presenter
	logger     domain.Logger
}

// NewDialog creates a new Dialog use case.
func NewDialog(
	sessions domain.SessionStore,
	projects domain.ProjectRegistry,
	logTime *LogTime,
	addProject *AddProject,
	showStats *ShowStats,
	reportLink *ShowReportLink,
	presenter domain.Presenter,
	logger domain.Logger,
) *Dialog {
	return &Dialog{
		sessions:   sessions,
		projects:   projects,
		logTime:    logTime,
		addProject: addProject,
		showStats:  showStats,
		reportLink: reportLink,
		presenter:  presenter,
		logger:     logger,
	}
}

// Execute applies one event to the user's session. Turns of the same user are
// serialized by the session store. Validation problems, unexpected events and
// store failures are reported to the user and never returned; the error result
// only carries presenter failures.
func (uc *Dialog) Execute(ctx context.Context, in DialogInput) (*DialogOutput, error) {
	out := &DialogOutput{}
	err := uc.sessions.WithSession(in.UserID, func(s *domain.Session) error {
		if in.Username != "" {
			s.Username = in.Username
		}
		t := &turn{ctx: ctx, uc: uc, s: s, out: out, ev: in.Event}
		t.run()
		out.State = s.State
		return t.err
	})
	if err != nil {
		return out, fmt.Errorf("present reply: %w", err)
	}
	return out, nil
}

// turn carries the state of a single Execute call.
type turn struct {
	ctx context.Context
	err error
	uc  *Dialog
	s   *domain.Session
	out *DialogOutput
	ev  domain.Event
}

func (t *turn) run() {
	ev := t.ev
	if ev.Kind == domain.EventText {
		ev = domain.EventFromText(ev.Text)
		ev.Callback = t.ev.Callback
		t.ev = ev
	}

	// Terminal states never survive a turn; heal a session stuck in one.
	if t.s.State.IsTerminal() || !t.s.State.IsValid() {
		t.s.Reset()
	}

	switch ev.Kind {
	case domain.EventStart:
		t.s.Reset()
		t.say(domain.Reply{Text: WelcomeText})
		t.showMainMenu()
		return
	case domain.EventMenu:
		t.s.Reset()
		t.showMainMenu()
		return
	case domain.EventCancel:
		t.cancel()
		return
	case domain.EventAddTime:
		t.s.Reset()
		t.promptProjects()
		return
	case domain.EventStatistics:
		t.s.Reset()
		t.promptStatsMenu("📈 Time statistics\n\nChoose a period:")
		return
	}

	switch t.s.State {
	case domain.StateMenuIdle:
		t.invalidChoice()
	case domain.StateSelectProject:
		t.onSelectProject(ev)
	case domain.StateEnterProjectName:
		t.onEnterProjectName(ev)
	case domain.StateEnterHours:
		t.onEnterHours(ev)
	case domain.StateEnterComment:
		t.onEnterComment(ev)
	case domain.StateStatsMenu:
		t.onStatsMenu(ev)
	case domain.StateStatsSelectProject:
		t.onStatsSelectProject(ev)
	case domain.StateDone, domain.StateCancelled:
		t.showMainMenu()
	}
}

// say hands a reply to the presenter, keeping the first failure.
func (t *turn) say(reply domain.Reply) {
	if err := t.uc.presenter.Present(t.ctx, t.s.UserID, reply); err != nil && t.err == nil {
		t.err = err
	}
}

// moveTo changes state, logging transitions the table does not allow.
func (t *turn) moveTo(target domain.DialogState) {
	if !t.s.State.CanTransitionTo(target) {
		t.uc.logger.Warn(t.s.UserID, "dialog", fmt.Sprintf("unexpected transition %s -> %s", t.s.State, target))
	}
	t.uc.logger.Debug(t.s.UserID, "dialog", fmt.Sprintf("%s -> %s", t.s.State, target))
	t.s.State = target
}

// finish passes through a terminal state back to the main menu.
func (t *turn) finish(terminal domain.DialogState) {
	t.moveTo(terminal)
	t.out.Terminal = terminal
	t.moveTo(domain.StateMenuIdle)
}

func (t *turn) showMainMenu() {
	if t.ev.Callback {
		t.say(domain.Reply{Text: "⚙ Main menu\n\nChoose what to do next.", EditPrevious: true})
	}
	t.say(domain.Reply{
		Text:     "⚙ Main menu\n\nPress a button to start.",
		Keyboard: domain.KeyboardMenu,
		Buttons:  domain.MainMenuKeyboard(),
	})
}

func (t *turn) cancel() {
	t.s.ClearDraft()
	t.s.StatsFilter = ""
	t.finish(domain.StateCancelled)
	t.say(domain.Reply{Text: "❌ Cancelled.", Keyboard: domain.KeyboardRemove})
	t.showMainMenu()
}

// invalidChoice answers an event the current state does not expect and
// shows the current menu again.
func (t *turn) invalidChoice() {
	t.uc.logger.Warn(t.s.UserID, "dialog", fmt.Sprintf("unexpected event %q in state %s", t.ev.Data(), t.s.State))
	switch t.s.State {
	case domain.StateSelectProject:
		t.say(domain.Reply{Text: "❌ Invalid choice."})
		t.promptProjects()
	case domain.StateEnterProjectName:
		t.say(domain.Reply{Text: "❌ Invalid choice."})
		t.promptProjectName()
	case domain.StateEnterHours:
		t.say(domain.Reply{Text: "❌ Invalid choice. Enter the number of hours."})
	case domain.StateEnterComment:
		t.say(domain.Reply{Text: "❌ Invalid choice.", Keyboard: domain.KeyboardInline, Buttons: domain.CommentKeyboard()})
	case domain.StateStatsMenu:
		t.say(domain.Reply{Text: "❌ Invalid choice.", Keyboard: domain.KeyboardInline, Buttons: domain.StatsKeyboard(), EditPrevious: t.ev.Callback})
	case domain.StateStatsSelectProject:
		t.say(domain.Reply{Text: "❌ Invalid choice."})
		t.promptStatsProjects()
	default:
		t.say(domain.Reply{Text: "❌ Invalid choice."})
		t.showMainMenu()
	}
}

// --- Add time flow ---

func (t *turn) promptProjects() {
	projects, err := t.uc.projects.List()
	if err != nil {
		t.uc.logger.Error(t.s.UserID, "projects", fmt.Sprintf("list projects: %v", err))
		t.say(domain.Reply{Text: "❌ Could not load projects. Try again later."})
		t.s.Reset()
		t.showMainMenu()
		return
	}
	t.moveTo(domain.StateSelectProject)
	t.say(domain.Reply{
		Text:         "⬇ Step 1: choose a project\n\nor add a new one to log time:",
		Keyboard:     domain.KeyboardInline,
		Buttons:      domain.ProjectKeyboard(projects, false),
		EditPrevious: t.ev.Callback,
	})
}

func (t *turn) promptProjectName() {
	t.say(domain.Reply{
		Text:         "✍ Enter the name of the new project:",
		Keyboard:     domain.KeyboardInline,
		Buttons:      [][]domain.Button{{domain.EventButton("⬅ Back", domain.Event{Kind: domain.EventBackToProjects})}},
		EditPrevious: t.ev.Callback,
	})
}

func (t *turn) onSelectProject(ev domain.Event) {
	switch ev.Kind {
	case domain.EventChooseProject:
		project, err := t.uc.projects.Get(ev.ProjectID)
		if err != nil || project == nil {
			t.invalidChoice()
			return
		}
		t.s.Draft.ProjectID = project.ID
		t.s.Draft.ProjectName = project.Name
		t.moveTo(domain.StateEnterHours)
		t.say(domain.Reply{
			Text:         fmt.Sprintf("Selected project: %s\n\n⏳ Step 2: enter the time (e.g. '2' or '2.5'):", project.Name),
			EditPrevious: ev.Callback,
		})
		t.say(domain.Reply{
			Text:     "Enter the hours or press 'Cancel' to go back.",
			Keyboard: domain.KeyboardMenu,
			Buttons:  domain.CancelKeyboard(),
		})
	case domain.EventAddNewProject:
		t.moveTo(domain.StateEnterProjectName)
		t.promptProjectName()
	case domain.EventBackToProjects:
		t.promptProjects()
	default:
		t.invalidChoice()
	}
}

func (t *turn) onEnterProjectName(ev domain.Event) {
	switch ev.Kind {
	case domain.EventText:
		out, err := t.uc.addProject.Execute(t.ctx, AddProjectInput{Name: ev.Text})
		if err != nil {
			if domain.IsValidationError(err) {
				t.say(domain.Reply{Text: "❌ The project name cannot be empty. Enter a name:"})
				return
			}
			t.uc.logger.Error(t.s.UserID, "projects", err.Error())
			t.say(domain.Reply{Text: "❌ Could not add the project."})
			t.promptProjects()
			return
		}
		t.say(domain.Reply{Text: fmt.Sprintf("✅ Project «%s» added!", out.Project.Name)})
		t.promptProjects()
	case domain.EventBackToProjects:
		t.promptProjects()
	default:
		t.invalidChoice()
	}
}

func (t *turn) onEnterHours(ev domain.Event) {
	if ev.Kind != domain.EventText {
		t.invalidChoice()
		return
	}
	hours, err := domain.ParseHoursInput(ev.Text)
	switch {
	case errors.Is(err, domain.ErrNonPositiveHours):
		t.say(domain.Reply{Text: "❌ The time must be greater than zero."})
		return
	case err != nil:
		t.say(domain.Reply{Text: "❌ Invalid format. Enter a number (e.g. '4' or '1.5')."})
		return
	}
	t.s.Draft.Hours = hours
	t.moveTo(domain.StateEnterComment)
	t.say(domain.Reply{Text: "Accepted.", Keyboard: domain.KeyboardRemove})
	t.say(domain.Reply{
		Text:     "💬 Step 3: comment\n\nDescribe the work briefly or choose 'No comment':",
		Keyboard: domain.KeyboardInline,
		Buttons:  domain.CommentKeyboard(),
	})
}

func (t *turn) onEnterComment(ev domain.Event) {
	var comment string
	switch ev.Kind {
	case domain.EventText:
		comment = strings.TrimSpace(ev.Text)
		if comment == "" {
			t.say(domain.Reply{Text: "❌ The comment is empty. Type a comment or choose 'No comment'.", Keyboard: domain.KeyboardInline, Buttons: domain.CommentKeyboard()})
			return
		}
	case domain.EventNoComment:
		comment = domain.NoCommentText
	default:
		t.invalidChoice()
		return
	}
	t.s.Draft.Comment = comment

	draft := t.s.Draft
	if !draft.IsComplete() {
		// Only reachable if the session was tampered with; never write a partial record.
		t.uc.logger.Error(t.s.UserID, "dialog", fmt.Sprintf("incomplete draft %+v", draft))
		t.say(domain.Reply{Text: "❌ Something went wrong. Start again.", Keyboard: domain.KeyboardRemove})
		t.s.Reset()
		t.showMainMenu()
		return
	}

	out, err := t.uc.logTime.Execute(t.ctx, LogTimeInput{
		UserID:    t.s.UserID,
		Username:  t.s.Username,
		ProjectID: draft.ProjectID,
		Hours:     draft.Hours,
		Comment:   draft.Comment,
	})

	// The draft is dropped whether or not the write succeeded.
	t.s.ClearDraft()
	t.finish(domain.StateDone)

	status := "✅ Time added!"
	if err != nil {
		t.out.SaveErr = err
		status = "❌ Failed to save!"
	} else {
		t.out.Record = &out.Record
	}
	summary := fmt.Sprintf("%s\n\nProject: %s\nTime: %.2f h\nComment: %s", status, draft.ProjectName, draft.Hours, draft.Comment)

	if !ev.Callback {
		t.say(domain.Reply{Text: "Accepted.", Keyboard: domain.KeyboardRemove})
	}
	t.say(domain.Reply{
		Text:         summary,
		Keyboard:     domain.KeyboardInline,
		Buttons:      domain.BackToMenuKeyboard(),
		EditPrevious: ev.Callback,
	})
}

// --- Statistics flow ---

func (t *turn) promptStatsMenu(text string) {
	t.moveTo(domain.StateStatsMenu)
	t.say(domain.Reply{
		Text:         text,
		Keyboard:     domain.KeyboardInline,
		Buttons:      domain.StatsKeyboard(),
		EditPrevious: t.ev.Callback,
	})
}

func (t *turn) promptStatsProjects() {
	projects, err := t.uc.projects.List()
	if err != nil {
		t.uc.logger.Error(t.s.UserID, "projects", fmt.Sprintf("list projects: %v", err))
		t.promptStatsMenu("❌ Could not load projects.")
		return
	}
	t.moveTo(domain.StateStatsSelectProject)
	t.say(domain.Reply{
		Text:         "🔍 Choose a project to filter the statistics:",
		Keyboard:     domain.KeyboardInline,
		Buttons:      domain.ProjectKeyboard(projects, true),
		EditPrevious: t.ev.Callback,
	})
}

func (t *turn) onStatsMenu(ev domain.Event) {
	switch ev.Kind {
	case domain.EventChoosePeriod:
		t.showStatistics(ev.Period)
	case domain.EventStatsFilterProject:
		t.promptStatsProjects()
	case domain.EventStatsClearFilter:
		t.s.StatsFilter = ""
		t.promptStatsMenu("✅ Project filter cleared.")
	case domain.EventReportLink:
		t.sendReportLink()
	case domain.EventBackToStats:
		t.promptStatsMenu("📈 Time statistics\n\nChoose a period:")
	default:
		t.invalidChoice()
	}
}

func (t *turn) onStatsSelectProject(ev domain.Event) {
	switch ev.Kind {
	case domain.EventChooseProject:
		project, err := t.uc.projects.Get(ev.ProjectID)
		if err != nil || project == nil {
			t.invalidChoice()
			return
		}
		t.s.StatsFilter = project.Name
		t.promptStatsMenu(fmt.Sprintf("✅ Filter applied: %s\n\nChoose a period:", project.Name))
	case domain.EventStatsClearFilter:
		t.s.StatsFilter = ""
		t.promptStatsMenu("✅ Project filter cleared.")
	default:
		t.invalidChoice()
	}
}

func (t *turn) showStatistics(period domain.Period) {
	out, err := t.uc.showStats.Execute(t.ctx, ShowStatsInput{
		UserID:        t.s.UserID,
		Username:      t.s.Username,
		Period:        period,
		ProjectFilter: t.s.StatsFilter,
	})
	if err != nil {
		t.uc.logger.Error(t.s.UserID, "stats", err.Error())
		t.promptStatsMenu("❌ Could not load statistics. Try again later.")
		return
	}
	t.promptStatsMenu(out.SummaryText())
	if out.NoRecords || out.Chart == nil {
		return
	}
	t.say(domain.Reply{Text: "📷 Chart: " + out.ChartTitle(), Chart: out.Chart})
}

func (t *turn) sendReportLink() {
	out, err := t.uc.reportLink.Execute(t.ctx, ShowReportLinkInput{})
	if err != nil {
		t.uc.logger.Warn(t.s.UserID, "report", err.Error())
		t.promptStatsMenu("❌ The report spreadsheet is not available. Check the configuration.")
		return
	}
	t.say(domain.Reply{
		Text:     "📊 Report\n\n🔗 Open the spreadsheet to view and edit the statistics:",
		Keyboard: domain.KeyboardInline,
		Buttons: [][]domain.Button{
			{domain.LinkButton("📈 Open spreadsheet", out.URL)},
			{domain.EventButton("⬅ Back to statistics", domain.Event{Kind: domain.EventBackToStats})},
		},
		EditPrevious: t.ev.Callback,
	})
}
