package telegram

import (
	"context"
	"log/slog"

	"DrillReportBot/internal/flow"
	"DrillReportBot/internal/utils/logger/sl"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleCallbackQuery routes an inline-keyboard press into the engine. The
// press is acknowledged first so the client stops its spinner even when the
// token turns out to be stale.
func (reportBot *Bot) handleCallbackQuery(ctx context.Context, update *models.Update) {
	op := "telegram.handleCallbackQuery()"
	log := reportBot.log.With(slog.String("op", op))

	cb := update.CallbackQuery

	if _, err := reportBot.b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
	}); err != nil {
		log.Error("failed to answer callback query", sl.Err(err))
	}

	if cb.Message.Message == nil {
		log.Warn("callback without accessible message", slog.String("data", cb.Data))
		return
	}
	chatID := cb.Message.Message.Chat.ID
	userID := cb.From.ID

	eff := reportBot.engine.Handle(userID, flow.ChoiceInput(cb.Data))
	reportBot.sendEffects(ctx, chatID, eff)
}
