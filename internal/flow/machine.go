package flow

import (
	"log/slog"
	"strings"

	"DrillReportBot/internal/report"
)

// Input is one user turn: either free text or a button selection, never
// both. The transport decides which constructor to use.
type Input struct {
	text     string
	choice   string
	isChoice bool
}

// TextInput wraps a plain text message.
func TextInput(text string) Input {
	return Input{text: strings.TrimSpace(text)}
}

// ChoiceInput wraps an inline-button callback token.
func ChoiceInput(token string) Input {
	return Input{choice: token, isChoice: true}
}

// Effects is everything one turn produces: the prompts to send back, and
// the finalized report when the conversation closed this turn. The caller
// owns delivery and export.
type Effects struct {
	Prompts []Prompt
	Report  *report.Report
}

func respond(prompts ...Prompt) Effects {
	return Effects{Prompts: prompts}
}

// Engine is the conversation state machine. All mutation of a session
// happens inside Handle under the session's own lock, so overlapping
// updates for one user are serialized.
type Engine struct {
	sessions *Store
	log      *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		sessions: newStore(),
		log:      logger.With(slog.String("component", "flow")),
	}
}

// Start begins a fresh report conversation, unconditionally replacing any
// live session of the user.
func (e *Engine) Start(userID int64) Effects {
	sess := newSession()
	e.sessions.put(userID, sess)
	e.log.Debug("session started", slog.Int64("user_id", userID))
	return respond(promptFor(sess))
}

// Cancel drops the user's session. It reports whether one existed.
func (e *Engine) Cancel(userID int64) bool {
	return e.sessions.delete(userID)
}

// Handle processes one user turn. Without an active session it only
// instructs the user to restart; nothing is mutated.
func (e *Engine) Handle(userID int64, in Input) Effects {
	sess, ok := e.sessions.get(userID)
	if !ok {
		return respond(textPrompt(msgNoSession))
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	eff := e.transition(sess, in)
	e.log.Debug("turn handled",
		slog.Int64("user_id", userID),
		slog.String("step", string(sess.Step)),
	)
	return eff
}

// ask re-renders the prompt for the session's current step.
func ask(sess *Session) Effects {
	return respond(promptFor(sess))
}

// reject surfaces a validation error without advancing or mutating.
func reject(msg string) Effects {
	return respond(textPrompt(msg))
}

// transition is the single place a (step, session, input) triple turns
// into the next step, the session mutation and the outgoing prompts.
func (e *Engine) transition(sess *Session, in Input) Effects {
	if sess.Step == StepDone {
		return respond(textPrompt(msgDone))
	}

	// Shape check: a button press on a text step is a stale keyboard and
	// mutates nothing; text on a choice step re-issues the keyboard.
	if sess.Step.expectsChoice() && !in.isChoice {
		return respond(textPrompt(msgUseButtons), promptFor(sess))
	}
	if !sess.Step.expectsChoice() && in.isChoice {
		return reject(msgInvalid)
	}

	switch sess.Step {
	case StepRegion:
		if in.text == "" {
			return reject(msgInvalid)
		}
		sess.Report.Region = in.text
		sess.Step = StepBorehole
		return ask(sess)

	case StepBorehole:
		if in.text == "" {
			return reject(msgInvalid)
		}
		sess.Report.Borehole = in.text
		sess.Step = StepRig
		return ask(sess)

	case StepRig:
		switch in.choice {
		case tokRigDB1200:
			sess.Report.Rig = report.RigDB1200
		case tokRigDBC:
			sess.Report.Rig = report.RigDBC
		default:
			return respond(textPrompt(msgInvalid), promptFor(sess))
		}
		sess.Step = StepAngle
		return ask(sess)

	case StepAngle:
		v, err := parseFloat(in.text)
		if err != nil {
			return reject(msgNotNumber)
		}
		sess.Report.AngleDeg = v
		sess.Step = StepDateYear
		return ask(sess)

	case StepDateYear:
		y, err := parseDigits(in.text)
		if err != nil {
			return reject(msgYearDigits)
		}
		if y < 1300 || y > 1500 {
			return reject(msgYearRange)
		}
		sess.Report.Date.Year = y
		sess.Step = StepDateMonth
		return ask(sess)

	case StepDateMonth:
		m, err := parseDigits(in.text)
		if err != nil {
			return reject(msgMonthDigits)
		}
		if m < 1 || m > 12 {
			return reject(msgMonthRange)
		}
		sess.Report.Date.Month = m
		sess.Step = StepDateDay
		return ask(sess)

	case StepDateDay:
		// Range-checked 1–31 only; no month-length cross-check. Accepted
		// limitation carried over from the original product.
		d, err := parseDigits(in.text)
		if err != nil {
			return reject(msgDayDigits)
		}
		if d < 1 || d > 31 {
			return reject(msgDayRange)
		}
		sess.Report.Date.Day = d
		sess.Step = StepChooseShift
		return respond(textPrompt(headerSummary(sess.Report)), promptFor(sess))

	case StepChooseShift:
		switch in.choice {
		case tokShiftDay:
			if sess.Report.Shift(report.ShiftDay).Populated() {
				return respond(textPrompt(msgInvalid), promptFor(sess))
			}
			sess.Current = report.ShiftDay
		case tokShiftNight:
			if sess.Report.Shift(report.ShiftNight).Populated() {
				return respond(textPrompt(msgInvalid), promptFor(sess))
			}
			sess.Current = report.ShiftNight
		default:
			return respond(textPrompt(msgInvalid), promptFor(sess))
		}
		sess.Step = StepSupervisors
		return ask(sess)

	case StepSupervisors:
		names := report.SplitNames(in.text)
		if len(names) == 0 {
			return reject(msgNamesEmpty)
		}
		sess.shift().Supervisors = names
		sess.Step = StepHelpers
		return ask(sess)

	case StepHelpers:
		names := report.SplitNames(in.text)
		if len(names) == 0 {
			return reject(msgNamesEmpty)
		}
		sess.shift().Helpers = names
		sess.Step = StepWorkshopBosses
		return ask(sess)

	case StepWorkshopBosses:
		names := report.SplitNames(in.text)
		if len(names) == 0 {
			return reject(msgNamesEmpty)
		}
		sess.shift().WorkshopBosses = names
		sess.Step = StepStartDepth
		return ask(sess)

	case StepStartDepth:
		v, err := parseFloat(in.text)
		if err != nil {
			return reject(msgNotNumber)
		}
		sess.shift().SetStartDepth(v)
		sess.Step = StepEndDepth
		return ask(sess)

	case StepEndDepth:
		// No end ≥ start constraint: a negative length is stored as entered.
		v, err := parseFloat(in.text)
		if err != nil {
			return reject(msgNotNumber)
		}
		sess.shift().SetEndDepth(v)
		sess.Step = StepSize
		return ask(sess)

	case StepSize:
		sz, ok := sizeForToken(in.choice)
		if !ok {
			return respond(textPrompt(msgInvalid), promptFor(sess))
		}
		sess.shift().Size = sz
		sess.Step = StepMud
		return ask(sess)

	case StepMud:
		if in.choice == tokMudDone {
			sess.Step = StepWater
			return ask(sess)
		}
		f, ok := fluidForToken(in.choice)
		if !ok {
			return respond(textPrompt(msgInvalid), promptFor(sess))
		}
		sess.shift().Fluids.Toggle(f)
		// Stay on the toggle: redisplay the updated selection.
		return ask(sess)

	case StepWater:
		v, err := parseFloat(in.text)
		if err != nil {
			return reject(msgNotNumber)
		}
		sess.shift().Water = &v
		sess.Step = StepDiesel
		return ask(sess)

	case StepDiesel:
		v, err := parseFloat(in.text)
		if err != nil {
			return reject(msgNotNumber)
		}
		sess.shift().Diesel = &v
		sess.Step = StepShiftReview
		return ask(sess)

	case StepShiftReview:
		switch in.choice {
		case tokReviewOK:
			// Personnel of every populated shift are known at this point;
			// the budget governs truncation of this shift's note.
			sess.NotesBudget = sess.Report.NotesBudget()
			sess.Step = StepNotes
			return ask(sess)
		case tokEditStart:
			sess.EditTarget = EditStartDepth
		case tokEditEnd:
			sess.EditTarget = EditEndDepth
		case tokEditWater:
			sess.EditTarget = EditWater
		case tokEditDiesel:
			sess.EditTarget = EditDiesel
		default:
			return respond(textPrompt(msgInvalid), promptFor(sess))
		}
		sess.Step = StepEditField
		return ask(sess)

	case StepEditField:
		v, err := parseFloat(in.text)
		if err != nil {
			return reject(msgNotNumber)
		}
		s := sess.shift()
		switch sess.EditTarget {
		case EditStartDepth:
			s.SetStartDepth(v)
		case EditEndDepth:
			s.SetEndDepth(v)
		case EditWater:
			s.Water = &v
		case EditDiesel:
			s.Diesel = &v
		default:
			return reject(msgInvalid)
		}
		sess.EditTarget = EditNone
		// Back to the review, not forward, so more corrections can follow.
		sess.Step = StepShiftReview
		return ask(sess)

	case StepNotes:
		warn, ok := e.storeNotes(sess, in.text)
		var lead []Prompt
		if !ok {
			lead = append(lead, textPrompt(warn))
		}
		if sess.Current == report.ShiftDay &&
			!sess.Report.Shift(report.ShiftNight).Populated() {
			sess.Step = StepAskNextShift
			return respond(append(lead, promptFor(sess))...)
		}
		return e.closeOut(sess, lead...)

	case StepAskNextShift:
		switch in.choice {
		case tokMoreYes:
			sess.Step = StepChooseShift // restricted to night by the prompt
			return ask(sess)
		case tokMoreNo:
			return e.closeOut(sess)
		default:
			return respond(textPrompt(msgInvalid), promptFor(sess))
		}
	}

	// Unmapped step: never crash the turn, never mutate.
	e.log.Warn("unmapped step", slog.String("step", string(sess.Step)))
	return reject(msgInvalid)
}

// storeNotes writes the shift note under the report-wide budget. It
// returns a warning message and ok=false when the note could not be
// stored verbatim.
func (e *Engine) storeNotes(sess *Session, text string) (string, bool) {
	runes := []rune(text)
	switch {
	case sess.NotesBudget == 0:
		sess.shift().Notes = ""
		return msgNotesNoRoom, false
	case len(runes) > sess.NotesBudget:
		sess.shift().Notes = string(runes[:sess.NotesBudget])
		return msgNotesTrimmed(len(runes), sess.NotesBudget), false
	default:
		sess.shift().Notes = text
		return "", true
	}
}

// closeOut finalizes the report: totals plus the full structured preview,
// and the report record for the exporter. An incomplete report is refused
// and never exported.
func (e *Engine) closeOut(sess *Session, lead ...Prompt) Effects {
	sess.Current = ""
	sess.Step = StepDone
	r := sess.Report
	if !r.Complete() {
		return respond(append(lead, textPrompt(msgIncomplete))...)
	}
	return Effects{
		Prompts: append(lead, textPrompt(reportSummary(r))),
		Report:  r,
	}
}

func sizeForToken(tok string) (report.BitSize, bool) {
	if !strings.HasPrefix(tok, tokSizePrefix) {
		return "", false
	}
	for _, sz := range report.Sizes {
		if strings.TrimPrefix(tok, tokSizePrefix) == strings.ToLower(string(sz)) {
			return sz, true
		}
	}
	return "", false
}

func fluidForToken(tok string) (report.Fluid, bool) {
	switch tok {
	case tokMudSupermix:
		return report.FluidSupermix, true
	case tokMudCMC:
		return report.FluidCMC, true
	case tokMudSawdust:
		return report.FluidSawdust, true
	case tokMudDiesel:
		return report.FluidDieselAdditive, true
	}
	return 0, false
}
