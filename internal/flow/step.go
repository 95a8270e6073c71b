package flow

// Step identifies the user's position in the report conversation.
// Every legal transition is spelled out in Engine.transition; anything
// else is rejected without touching the session.
type Step string

const (
	StepRegion         Step = "region"
	StepBorehole       Step = "borehole"
	StepRig            Step = "rig"
	StepAngle          Step = "angle"
	StepDateYear       Step = "date_year"
	StepDateMonth      Step = "date_month"
	StepDateDay        Step = "date_day"
	StepChooseShift    Step = "choose_shift"
	StepSupervisors    Step = "supervisors"
	StepHelpers        Step = "helpers"
	StepWorkshopBosses Step = "workshop_bosses"
	StepStartDepth     Step = "start_depth"
	StepEndDepth       Step = "end_depth"
	StepSize           Step = "size"
	StepMud            Step = "mud"
	StepWater          Step = "water"
	StepDiesel         Step = "diesel"
	StepShiftReview    Step = "shift_review"
	StepEditField      Step = "edit_field"
	StepNotes          Step = "notes"
	StepAskNextShift   Step = "ask_next_shift"
	StepDone           Step = "done"
)

// expectsChoice reports whether the step is answered with a button press
// rather than free text.
func (s Step) expectsChoice() bool {
	switch s {
	case StepRig, StepChooseShift, StepSize, StepMud,
		StepShiftReview, StepAskNextShift:
		return true
	}
	return false
}

// EditTarget names the shift field being corrected from the review screen.
// Only the four numeric fields are editable.
type EditTarget string

const (
	EditNone       EditTarget = ""
	EditStartDepth EditTarget = "start"
	EditEndDepth   EditTarget = "end"
	EditWater      EditTarget = "water"
	EditDiesel     EditTarget = "diesel"
)

// Label returns the Persian field name shown in edit prompts.
func (t EditTarget) Label() string {
	switch t {
	case EditStartDepth:
		return "متراژ شروع"
	case EditEndDepth:
		return "متراژ پایان"
	case EditWater:
		return "آب مصرفی"
	case EditDiesel:
		return "گازوئیل مصرفی"
	}
	return ""
}
