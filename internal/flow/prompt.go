package flow

import (
	"fmt"
	"strconv"
	"strings"

	"DrillReportBot/internal/report"
)

// Choice is one selectable inline option. Data is the opaque token routed
// back through the transport when the button is pressed.
type Choice struct {
	Label string
	Data  string
}

// Prompt is one outgoing message: text plus optional rows of choices.
type Prompt struct {
	Text     string
	Markdown bool
	Choices  [][]Choice
}

func textPrompt(text string) Prompt {
	return Prompt{Text: text}
}

func markdownPrompt(text string) Prompt {
	return Prompt{Text: text, Markdown: true}
}

// Choice tokens, scoped to their step.
const (
	tokRigDB1200 = "rig_db1200"
	tokRigDBC    = "rig_dbc"

	tokShiftDay   = "shift_day"
	tokShiftNight = "shift_night"

	tokSizePrefix = "size_" // size_bq … size_pq

	tokMudSupermix = "mud_supermix"
	tokMudCMC      = "mud_cmc"
	tokMudSawdust  = "mud_sawdust"
	tokMudDiesel   = "mud_diesel"
	tokMudDone     = "mud_done"

	tokEditStart  = "edit_start"
	tokEditEnd    = "edit_end"
	tokEditWater  = "edit_water"
	tokEditDiesel = "edit_diesel"
	tokReviewOK   = "review_ok"

	tokMoreYes = "more_yes"
	tokMoreNo  = "more_no"
)

// promptFor renders the message (and choices) that ask the user for the
// session's current step. It is a pure function of (step, session) so a
// rejected input can re-issue the exact same prompt.
func promptFor(sess *Session) Prompt {
	switch sess.Step {
	case StepRegion:
		return markdownPrompt("🔸 لطفاً *منطقه* را وارد کنید:")
	case StepBorehole:
		return markdownPrompt("🔸 *شماره گمانه* را وارد کنید:")
	case StepRig:
		return Prompt{
			Text:     "🔸 *نوع دستگاه حفاری* را انتخاب کنید:",
			Markdown: true,
			Choices: [][]Choice{
				{{Label: string(report.RigDB1200), Data: tokRigDB1200}},
				{{Label: string(report.RigDBC), Data: tokRigDBC}},
			},
		}
	case StepAngle:
		return textPrompt("🔸 زاویه حفاری را وارد کنید (فقط عدد، مثلاً 45 یا 75.5):")
	case StepDateYear:
		return textPrompt("🔸 سال گزارش را وارد کنید (مثلاً 1404):")
	case StepDateMonth:
		return markdownPrompt("🔸 *ماه* را وارد کنید (عدد 1 تا 12):")
	case StepDateDay:
		return markdownPrompt("🔸 *روز* را وارد کنید (عدد 1 تا 31):")
	case StepChooseShift:
		return chooseShiftPrompt(sess)
	case StepSupervisors:
		return markdownPrompt("🔸 نام *مسئول شیفت* را وارد کنید (چند نفر را با ویرگول جدا کنید):")
	case StepHelpers:
		return markdownPrompt("🔸 نام *پرسنل کمکی* را وارد کنید (چند نفر را با ویرگول جدا کنید):")
	case StepWorkshopBosses:
		return markdownPrompt("🔸 نام *سرپرست کارگاه* را وارد کنید:")
	case StepStartDepth:
		return markdownPrompt("🔸 *متراژ شروع* شیفت را وارد کنید (متر، فقط عدد):")
	case StepEndDepth:
		return markdownPrompt("🔸 *متراژ پایان* شیفت را وارد کنید (متر، فقط عدد):")
	case StepSize:
		row := make([]Choice, 0, len(report.Sizes))
		for _, sz := range report.Sizes {
			row = append(row, Choice{
				Label: string(sz),
				Data:  tokSizePrefix + strings.ToLower(string(sz)),
			})
		}
		return Prompt{
			Text:     "🔸 *سایز حفاری* را انتخاب کنید:",
			Markdown: true,
			Choices:  [][]Choice{row},
		}
	case StepMud:
		return mudPrompt(sess)
	case StepWater:
		return markdownPrompt("🔸 *آب مصرفی* شیفت را وارد کنید (لیتر، فقط عدد):")
	case StepDiesel:
		return markdownPrompt("🔸 *گازوئیل مصرفی* شیفت را وارد کنید (لیتر، فقط عدد):")
	case StepShiftReview:
		return reviewPrompt(sess)
	case StepEditField:
		return textPrompt(fmt.Sprintf("🔸 مقدار جدید «%s» را وارد کنید (فقط عدد):",
			sess.EditTarget.Label()))
	case StepNotes:
		return textPrompt(fmt.Sprintf("🔸 توضیحات شیفت %s را بنویسید (حداکثر %d کاراکتر):",
			sess.Current.Label(), sess.NotesBudget))
	case StepAskNextShift:
		return Prompt{
			Text: "🔸 آیا شیفت دیگری هم دارید؟",
			Choices: [][]Choice{
				{{Label: "بله، شیفت شب", Data: tokMoreYes}},
				{{Label: "خیر، پایان گزارش", Data: tokMoreNo}},
			},
		}
	case StepDone:
		return textPrompt(msgDone)
	}
	return textPrompt(msgInvalid)
}

// chooseShiftPrompt offers both shifts on first entry and only the night
// shift once the day shift carries data.
func chooseShiftPrompt(sess *Session) Prompt {
	var rows [][]Choice
	if !sess.Report.Shift(report.ShiftDay).Populated() {
		rows = append(rows, []Choice{{Label: "شیفت روز", Data: tokShiftDay}})
	}
	if !sess.Report.Shift(report.ShiftNight).Populated() {
		rows = append(rows, []Choice{{Label: "شیفت شب", Data: tokShiftNight}})
	}
	return Prompt{
		Text:    "🔸 شیفت مورد نظر را انتخاب کنید:",
		Choices: rows,
	}
}

// mudPrompt shows the current selection and the toggle keyboard. Pressing
// a fluid never advances; only the finish button does.
func mudPrompt(sess *Session) Prompt {
	selected := sess.shift().Fluids.String()
	if selected == "" {
		selected = "—"
	}
	rows := make([][]Choice, 0, len(report.Fluids)+1)
	for _, f := range report.Fluids {
		label := f.Label()
		if sess.shift().Fluids.Has(f) {
			label = "✔️ " + label
		}
		rows = append(rows, []Choice{{Label: label, Data: mudToken(f)}})
	}
	rows = append(rows, []Choice{{Label: "✅ پایان انتخاب", Data: tokMudDone}})
	return Prompt{
		Text: fmt.Sprintf("🔸 نوع گل حفاری را انتخاب کنید (هر گزینه با لمس اضافه یا حذف می‌شود):\n"+
			"انتخاب فعلی: %s", selected),
		Choices: rows,
	}
}

func mudToken(f report.Fluid) string {
	switch f {
	case report.FluidSupermix:
		return tokMudSupermix
	case report.FluidCMC:
		return tokMudCMC
	case report.FluidSawdust:
		return tokMudSawdust
	case report.FluidDieselAdditive:
		return tokMudDiesel
	}
	return ""
}

// reviewPrompt presents the accumulated shift fields with edit controls for
// the four numeric fields and a confirm button labeled with the shift.
func reviewPrompt(sess *Session) Prompt {
	return Prompt{
		Text: shiftSummary(sess.Current, sess.shift()) +
			"\n\nدر صورت نیاز یکی از موارد را اصلاح کنید، یا شیفت را تایید کنید:",
		Choices: [][]Choice{
			{
				{Label: "✏️ متراژ شروع", Data: tokEditStart},
				{Label: "✏️ متراژ پایان", Data: tokEditEnd},
			},
			{
				{Label: "✏️ آب مصرفی", Data: tokEditWater},
				{Label: "✏️ گازوئیل", Data: tokEditDiesel},
			},
			{
				{Label: fmt.Sprintf("✅ تایید شیفت %s", sess.Current.Label()), Data: tokReviewOK},
			},
		},
	}
}

// ─── Summaries ────────────────────────────────────────────────────────────

// fmtNum prints a float the way the operator typed it: no trailing zeros.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtOptNum(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmtNum(*v)
}

func headerSummary(r *report.Report) string {
	return fmt.Sprintf("✅ اطلاعات هدر گزارش:\n"+
		"• منطقه: %s\n"+
		"• شماره گمانه: %s\n"+
		"• دستگاه حفاری: %s\n"+
		"• زاویه: %s درجه\n"+
		"• تاریخ: %s",
		r.Region, r.Borehole, r.Rig, fmtNum(r.AngleDeg), r.Date)
}

func shiftSummary(kind report.ShiftKind, s *report.ShiftRecord) string {
	fluids := s.Fluids.String()
	if fluids == "" {
		fluids = "-"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 خلاصه شیفت %s:\n", kind.Label())
	fmt.Fprintf(&b, "• مسئول شیفت: %s\n", joinOrDash(s.Supervisors))
	fmt.Fprintf(&b, "• پرسنل کمکی: %s\n", joinOrDash(s.Helpers))
	fmt.Fprintf(&b, "• سرپرست کارگاه: %s\n", joinOrDash(s.WorkshopBosses))
	fmt.Fprintf(&b, "• متراژ شروع: %s متر\n", fmtOptNum(s.StartDepth))
	fmt.Fprintf(&b, "• متراژ پایان: %s متر\n", fmtOptNum(s.EndDepth))
	fmt.Fprintf(&b, "• متراژ شیفت: %s متر\n", fmtNum(s.Length))
	fmt.Fprintf(&b, "• سایز حفاری: %s\n", string(s.Size))
	fmt.Fprintf(&b, "• گل حفاری: %s\n", fluids)
	fmt.Fprintf(&b, "• آب مصرفی: %s لیتر\n", fmtOptNum(s.Water))
	fmt.Fprintf(&b, "• گازوئیل: %s لیتر", fmtOptNum(s.Diesel))
	return b.String()
}

func reportSummary(r *report.Report) string {
	var b strings.Builder
	b.WriteString("✅ گزارش روزانه حفاری ثبت شد.\n\n")
	b.WriteString(headerSummary(r))
	for _, k := range report.Kinds {
		s := r.Shifts[k]
		if !s.Populated() {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(shiftSummary(k, s))
		if s.Notes != "" {
			fmt.Fprintf(&b, "\n• توضیحات: %s", s.Notes)
		}
	}
	t := r.Totals()
	fmt.Fprintf(&b, "\n\n📈 جمع کل گزارش:\n"+
		"• متراژ: %s متر\n"+
		"• آب مصرفی: %s لیتر\n"+
		"• گازوئیل: %s لیتر",
		fmtNum(t.Length), fmtNum(t.Water), fmtNum(t.Diesel))
	return b.String()
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "، ")
}

// User-visible rejection and status messages.
const (
	msgNoSession  = "برای شروع دستور /start را بزنید."
	msgDone       = "گزارش این جلسه بسته شده است. برای ثبت گزارش جدید /start را بزنید."
	msgInvalid    = "⛔ ورودی نامعتبر است."
	msgUseButtons = "⛔ لطفاً از دکمه‌های پیام بالا استفاده کنید."
	msgNotNumber  = "⛔ لطفاً فقط عدد وارد کنید (مثلاً 45 یا 75.5)."

	msgYearDigits  = "⛔ سال باید فقط عدد باشد. دوباره وارد کنید."
	msgYearRange   = "⛔ سال وارد شده نامعتبر است (باید بین 1300 و 1500 باشد). دوباره وارد کنید."
	msgMonthDigits = "⛔ ماه باید فقط عدد باشد. دوباره وارد کنید."
	msgMonthRange  = "⛔ ماه باید بین 1 و 12 باشد. دوباره وارد کنید."
	msgDayDigits   = "⛔ روز باید فقط عدد باشد. دوباره وارد کنید."
	msgDayRange    = "⛔ روز باید بین 1 و 31 باشد. دوباره وارد کنید."

	msgNamesEmpty = "⛔ حداقل یک نام وارد کنید."

	msgIncomplete = "⛔ گزارش ناقص است؛ هیچ شیفتی ثبت نشده. با /start دوباره شروع کنید."

	msgNotesNoRoom = "⚠️ جایی برای توضیحات باقی نمانده است (نام پرسنل تمام ظرفیت کادر را پر کرده)؛ توضیحات ذخیره نشد."
)

func msgNotesTrimmed(got, allowed int) string {
	return fmt.Sprintf("⚠️ توضیحات شما %d کاراکتر بود ولی فقط %d کاراکتر جا داشت؛ متن کوتاه شد.",
		got, allowed)
}
