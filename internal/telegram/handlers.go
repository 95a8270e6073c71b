package telegram

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"DrillReportBot/internal/flow"
	"DrillReportBot/internal/report"
	"DrillReportBot/internal/utils/logger/sl"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// ─── Command dispatcher ────────────────────────────────────────────────────

// commandHandler dispatches bot commands.
func (reportBot *Bot) commandHandler(ctx context.Context, update *models.Update) error {
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	switch commandText(update.Message) {
	case "start":
		return reportBot.handleStart(ctx, chatID, userID)
	case "help":
		return reportBot.handleHelp(ctx, chatID)
	case "cancel":
		return reportBot.handleCancel(ctx, chatID, userID)
	default:
		return reportBot.sendReply(ctx, chatID,
			fmt.Sprintf("❓ دستور ناشناخته: /%s\nبرای فهرست دستورها /help را بزنید.",
				commandText(update.Message)))
	}
}

// ─── /start ───────────────────────────────────────────────────────────────

// handleStart greets the user and begins a fresh report conversation,
// unconditionally replacing any session in progress.
func (reportBot *Bot) handleStart(ctx context.Context, chatID, userID int64) error {
	if err := reportBot.sendReply(ctx, chatID,
		"سلام. به ربات ثبت گزارش روزانه حفاری شرکت ژئوکان خوش آمدید 🌍"); err != nil {
		return err
	}
	reportBot.sendEffects(ctx, chatID, reportBot.engine.Start(userID))
	return nil
}

// ─── /help ────────────────────────────────────────────────────────────────

func (reportBot *Bot) handleHelp(ctx context.Context, chatID int64) error {
	p := &bot.SendMessageParams{
		ChatID: chatID,
		Text: `📋 *دستورهای ربات*

/start — شروع ثبت گزارش روزانه (گزارش قبلی همین جلسه کنار گذاشته می‌شود)
/cancel — لغو گزارش در حال ثبت
/help — همین راهنما

پس از /start سوال‌ها به ترتیب پرسیده می‌شود؛ در پایان، فایل PDF گزارش برای شما ارسال می‌گردد.`,
		ParseMode: models.ParseModeMarkdown,
	}
	_, err := reportBot.b.SendMessage(ctx, p)
	return err
}

// ─── /cancel ──────────────────────────────────────────────────────────────

func (reportBot *Bot) handleCancel(ctx context.Context, chatID, userID int64) error {
	if reportBot.engine.Cancel(userID) {
		return reportBot.sendReply(ctx, chatID,
			"✅ گزارش در حال ثبت لغو شد. برای شروع دوباره /start را بزنید.")
	}
	return reportBot.sendReply(ctx, chatID, "گزارشی در حال ثبت نیست.")
}

// ─── Free text ────────────────────────────────────────────────────────────

// handleText routes a plain text message into the conversation engine.
func (reportBot *Bot) handleText(ctx context.Context, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	eff := reportBot.engine.Handle(userID, flow.TextInput(update.Message.Text))
	reportBot.sendEffects(ctx, chatID, eff)
}

// ─── Report delivery ──────────────────────────────────────────────────────

// deliverReport renders the finalized report and sends it as a document.
func (reportBot *Bot) deliverReport(ctx context.Context, chatID int64, r *report.Report) {
	op := "telegram.deliverReport()"
	log := reportBot.log.With(slog.String("op", op))

	data, err := reportBot.exporter.Export(ctx, r)
	if err != nil {
		log.Error("failed to export report", sl.Err(err))
		if sendErr := reportBot.sendReply(ctx, chatID,
			"⛔ خطا در ساخت فایل گزارش. اطلاعات ثبت شده است؛ لطفاً بعداً دوباره تلاش کنید."); sendErr != nil {
			log.Error("failed to send export error", sl.Err(sendErr))
		}
		return
	}

	params := &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: reportFilename(r),
			Data:     bytes.NewReader(data),
		},
		Caption: "📄 فایل گزارش روزانه حفاری",
	}
	if _, err := reportBot.b.SendDocument(ctx, params); err != nil {
		log.Error("failed to send report document", sl.Err(err))
	}
}

// reportFilename builds a unique, date-stamped name for the document.
func reportFilename(r *report.Report) string {
	return fmt.Sprintf("drilling-report-%04d-%02d-%02d-%s.pdf",
		r.Date.Year, r.Date.Month, r.Date.Day, uuid.NewString()[:8])
}
