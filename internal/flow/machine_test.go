package flow

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"DrillReportBot/internal/report"
)

func newTestEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// drive feeds inputs in order and returns the effects of the last one.
func drive(t *testing.T, e *Engine, userID int64, inputs ...Input) Effects {
	t.Helper()
	var eff Effects
	for i, in := range inputs {
		eff = e.Handle(userID, in)
		if len(eff.Prompts) == 0 {
			t.Fatalf("input %d produced no prompts", i)
		}
	}
	return eff
}

// headerInputs walks a session from region up to the shift chooser.
func headerInputs() []Input {
	return []Input{
		TextInput("Zone7"),
		TextInput("BH-12"),
		ChoiceInput(tokRigDB1200),
		TextInput("45"),
		TextInput("1403"),
		TextInput("9"),
		TextInput("15"),
	}
}

// dayShiftInputs fills the day shift up to the review screen.
func dayShiftInputs() []Input {
	return []Input{
		ChoiceInput(tokShiftDay),
		TextInput("Ali, Reza"),
		TextInput("Hasan"),
		TextInput("Mohsen"),
		TextInput("100"),
		TextInput("142.5"),
		ChoiceInput("size_nq"),
		ChoiceInput(tokMudSupermix),
		ChoiceInput(tokMudCMC),
		ChoiceInput(tokMudDone),
		TextInput("500"),
		TextInput("80"),
	}
}

func (e *Engine) session(t *testing.T, userID int64) *Session {
	t.Helper()
	sess, ok := e.sessions.get(userID)
	if !ok {
		t.Fatal("no session for user")
	}
	return sess
}

func TestScenarioAFullDayShiftReport(t *testing.T) {
	e := newTestEngine()
	const user = int64(7)
	e.Start(user)

	eff := drive(t, e, user, headerInputs()...)
	summary := eff.Prompts[0].Text
	if !strings.Contains(summary, "15/09/1403") {
		t.Errorf("header summary missing date string: %q", summary)
	}
	if !strings.Contains(summary, "Zone7") || !strings.Contains(summary, "BH-12") {
		t.Errorf("header summary missing fields: %q", summary)
	}
	if got := e.session(t, user).Report.AngleDeg; got != 45.0 {
		t.Errorf("angle stored as %v, want 45.0", got)
	}

	drive(t, e, user, dayShiftInputs()...)

	sess := e.session(t, user)
	day := sess.Report.Shift(report.ShiftDay)
	if day.Length != 42.5 {
		t.Errorf("length = %v, want 42.5", day.Length)
	}
	if day.Size != report.SizeNQ {
		t.Errorf("size = %v, want NQ", day.Size)
	}
	if !day.Fluids.Has(report.FluidSupermix) || !day.Fluids.Has(report.FluidCMC) ||
		day.Fluids.Has(report.FluidSawdust) {
		t.Errorf("fluids = %q, want supermix+CMC", day.Fluids.String())
	}

	// confirm review with no edits, write a note, decline a second shift
	eff = drive(t, e, user,
		ChoiceInput(tokReviewOK),
		TextInput("بدون مشکل"),
		ChoiceInput(tokMoreNo),
	)

	if eff.Report == nil {
		t.Fatal("expected a finalized report")
	}
	totals := eff.Report.Totals()
	want := report.Totals{Length: 42.5, Water: 500, Diesel: 80}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}

	// scenario D: night shift never populated; exporter must see it unset
	if eff.Report.Shifts[report.ShiftNight].Populated() {
		t.Error("night shift should be unpopulated")
	}

	// session is done: further text only points at /start
	eff = e.Handle(user, TextInput("hello again"))
	if eff.Report != nil || len(eff.Prompts) != 1 || eff.Prompts[0].Text != msgDone {
		t.Errorf("done-state reply = %+v", eff)
	}
}

func TestScenarioBEditEndDepthRecomputesLength(t *testing.T) {
	e := newTestEngine()
	const user = int64(8)
	e.Start(user)
	drive(t, e, user, headerInputs()...)
	drive(t, e, user, dayShiftInputs()...)

	// edit end depth from the review, then confirm
	eff := drive(t, e, user,
		ChoiceInput(tokEditEnd),
		TextInput("150"),
	)
	// back on the review, with the corrected value
	if !strings.Contains(eff.Prompts[0].Text, "50 متر") {
		t.Errorf("review after edit does not show recomputed length: %q", eff.Prompts[0].Text)
	}
	day := e.session(t, user).Report.Shift(report.ShiftDay)
	if day.Length != 50.0 {
		t.Errorf("length after edit = %v, want 50.0", day.Length)
	}

	// several corrections in a row before confirming
	drive(t, e, user,
		ChoiceInput(tokEditStart),
		TextInput("110"),
		ChoiceInput(tokEditWater),
		TextInput("600"),
	)
	day = e.session(t, user).Report.Shift(report.ShiftDay)
	if day.Length != 40.0 {
		t.Errorf("length after second edit = %v, want 40.0", day.Length)
	}
	if day.Water == nil || *day.Water != 600 {
		t.Errorf("water after edit = %v, want 600", day.Water)
	}

	eff = drive(t, e, user,
		ChoiceInput(tokReviewOK),
		TextInput("ok"),
		ChoiceInput(tokMoreNo),
	)
	if eff.Report == nil {
		t.Fatal("expected a finalized report")
	}
	if got := eff.Report.Totals().Length; got != 40.0 {
		t.Errorf("total length = %v, want corrected 40.0", got)
	}
}

func TestScenarioCRejectedAngleLeavesStepUnchanged(t *testing.T) {
	e := newTestEngine()
	const user = int64(9)
	e.Start(user)
	drive(t, e, user,
		TextInput("Zone7"),
		TextInput("BH-12"),
		ChoiceInput(tokRigDB1200),
	)

	eff := e.Handle(user, TextInput("abc"))
	if eff.Prompts[0].Text != msgNotNumber {
		t.Errorf("rejection message = %q", eff.Prompts[0].Text)
	}
	sess := e.session(t, user)
	if sess.Step != StepAngle {
		t.Errorf("step advanced to %q on invalid input", sess.Step)
	}
	if sess.Report.AngleDeg != 0 {
		t.Errorf("angle written on invalid input: %v", sess.Report.AngleDeg)
	}

	e.Handle(user, TextInput("45.5"))
	sess = e.session(t, user)
	if sess.Report.AngleDeg != 45.5 {
		t.Errorf("angle = %v, want 45.5", sess.Report.AngleDeg)
	}
	if sess.Step != StepDateYear {
		t.Errorf("step = %q, want %q", sess.Step, StepDateYear)
	}
}

func TestTwoShiftReport(t *testing.T) {
	e := newTestEngine()
	const user = int64(10)
	e.Start(user)
	drive(t, e, user, headerInputs()...)
	drive(t, e, user, dayShiftInputs()...)
	eff := drive(t, e, user,
		ChoiceInput(tokReviewOK),
		TextInput("day note"),
		ChoiceInput(tokMoreYes),
	)

	// shift chooser is restricted to night now
	chooser := eff.Prompts[0]
	if len(chooser.Choices) != 1 || chooser.Choices[0][0].Data != tokShiftNight {
		t.Fatalf("second chooser not restricted to night: %+v", chooser.Choices)
	}
	// a stale day button mutates nothing
	eff = e.Handle(user, ChoiceInput(tokShiftDay))
	if eff.Prompts[0].Text != msgInvalid {
		t.Errorf("stale day press reply = %q", eff.Prompts[0].Text)
	}

	eff = drive(t, e, user,
		ChoiceInput(tokShiftNight),
		TextInput("Naser"),
		TextInput("Kamal"),
		TextInput("Behruz"),
		TextInput("142.5"),
		TextInput("160"),
		ChoiceInput("size_hq"),
		ChoiceInput(tokMudSawdust),
		ChoiceInput(tokMudDone),
		TextInput("300"),
		TextInput("40"),
		ChoiceInput(tokReviewOK),
		TextInput("night note"),
	)

	// night shift closes without a third-shift prompt
	if eff.Report == nil {
		t.Fatal("expected a finalized report after the night shift")
	}
	totals := eff.Report.Totals()
	want := report.Totals{Length: 60, Water: 800, Diesel: 120}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}
	if eff.Report.Shifts[report.ShiftNight].Notes != "night note" {
		t.Errorf("night note = %q", eff.Report.Shifts[report.ShiftNight].Notes)
	}
}

func TestMudToggleNeverAdvances(t *testing.T) {
	e := newTestEngine()
	const user = int64(11)
	e.Start(user)
	drive(t, e, user, headerInputs()...)
	drive(t, e, user,
		ChoiceInput(tokShiftDay),
		TextInput("A"),
		TextInput("B"),
		TextInput("C"),
		TextInput("10"),
		TextInput("20"),
		ChoiceInput("size_bq"),
	)

	for range 5 {
		e.Handle(user, ChoiceInput(tokMudSupermix))
	}
	sess := e.session(t, user)
	if sess.Step != StepMud {
		t.Errorf("fluid presses advanced the step to %q", sess.Step)
	}
	// odd number of toggles leaves it selected
	if !sess.Report.Shift(report.ShiftDay).Fluids.Has(report.FluidSupermix) {
		t.Error("supermix should be selected after five toggles")
	}

	e.Handle(user, ChoiceInput(tokMudDone))
	if e.session(t, user).Step != StepWater {
		t.Error("finish control did not advance to water")
	}
}

func TestNotesBudgetTruncation(t *testing.T) {
	longName := strings.Repeat("ن", report.MaxNotesChars)

	t.Run("zero budget stores empty with distinct message", func(t *testing.T) {
		e := newTestEngine()
		const user = int64(12)
		e.Start(user)
		drive(t, e, user, headerInputs()...)
		drive(t, e, user,
			ChoiceInput(tokShiftDay),
			TextInput(longName),
			TextInput("B"),
			TextInput("C"),
			TextInput("10"),
			TextInput("20"),
			ChoiceInput("size_bq"),
			ChoiceInput(tokMudDone),
			TextInput("1"),
			TextInput("2"),
			ChoiceInput(tokReviewOK),
		)
		if got := e.session(t, user).NotesBudget; got != 0 {
			t.Fatalf("budget = %d, want 0", got)
		}
		eff := e.Handle(user, TextInput("some note"))
		if eff.Prompts[0].Text != msgNotesNoRoom {
			t.Errorf("message = %q, want the no-room message", eff.Prompts[0].Text)
		}
		if eff.Report != nil {
			// day shift with no night data: next-shift question follows
			t.Error("report should not finalize before the next-shift question")
		}
		sess := e.session(t, user)
		if sess.Report.Shift(report.ShiftDay).Notes != "" {
			t.Error("note should be stored empty under a zero budget")
		}
	})

	t.Run("over-budget note trimmed to exactly the budget", func(t *testing.T) {
		e := newTestEngine()
		const user = int64(13)
		e.Start(user)
		drive(t, e, user, headerInputs()...)
		drive(t, e, user, dayShiftInputs()...)
		drive(t, e, user, ChoiceInput(tokReviewOK))

		sess := e.session(t, user)
		budget := sess.NotesBudget
		if budget <= 0 || budget >= report.MaxNotesChars {
			t.Fatalf("unexpected budget %d", budget)
		}
		note := strings.Repeat("x", budget+25)
		eff := e.Handle(user, TextInput(note))
		warn := eff.Prompts[0].Text
		if !strings.Contains(warn, "کوتاه شد") {
			t.Errorf("expected truncation warning, got %q", warn)
		}
		got := sess.Report.Shift(report.ShiftDay).Notes
		if len([]rune(got)) != budget {
			t.Errorf("stored note length = %d, want %d", len([]rune(got)), budget)
		}
	})
}

func TestNoActiveSession(t *testing.T) {
	e := newTestEngine()
	eff := e.Handle(42, TextInput("anything"))
	if len(eff.Prompts) != 1 || eff.Prompts[0].Text != msgNoSession {
		t.Errorf("no-session reply = %+v", eff)
	}
	if _, ok := e.sessions.get(42); ok {
		t.Error("handling without a session must not create one")
	}
}

func TestStartOverwritesSession(t *testing.T) {
	e := newTestEngine()
	const user = int64(14)
	e.Start(user)
	drive(t, e, user, headerInputs()...)

	e.Start(user)
	sess := e.session(t, user)
	if sess.Step != StepRegion {
		t.Errorf("restart left step at %q", sess.Step)
	}
	if sess.Report.Region != "" {
		t.Errorf("restart kept old region %q", sess.Report.Region)
	}
}

func TestInputShapeMismatch(t *testing.T) {
	e := newTestEngine()
	const user = int64(15)
	e.Start(user)
	drive(t, e, user, TextInput("Zone7"), TextInput("BH-12"))

	// text on a choice step re-issues the keyboard
	eff := e.Handle(user, TextInput("DB 1200"))
	if eff.Prompts[0].Text != msgUseButtons {
		t.Errorf("first prompt = %q, want button hint", eff.Prompts[0].Text)
	}
	if len(eff.Prompts) != 2 || len(eff.Prompts[1].Choices) == 0 {
		t.Error("keyboard was not re-issued")
	}
	if e.session(t, user).Step != StepRig {
		t.Error("step changed on shape mismatch")
	}

	// stale button press on a text step mutates nothing
	drive(t, e, user, ChoiceInput(tokRigDB1200))
	eff = e.Handle(user, ChoiceInput(tokRigDBC))
	if eff.Prompts[0].Text != msgInvalid {
		t.Errorf("stale button reply = %q", eff.Prompts[0].Text)
	}
	if e.session(t, user).Report.Rig != report.RigDB1200 {
		t.Error("stale button overwrote the rig")
	}
}
