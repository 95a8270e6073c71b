package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"DrillReportBot/internal/config"
	"DrillReportBot/internal/export"
	"DrillReportBot/internal/flow"
	"DrillReportBot/internal/utils/logger/sl"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Bot is the Telegram gateway for the drilling-report conversation. All
// conversation logic lives in flow.Engine; this layer only routes updates
// in and renders prompts, keyboards and the exported document out.
type Bot struct {
	b        *bot.Bot
	cfg      *config.Config
	engine   *flow.Engine
	exporter export.Exporter
	ctx      context.Context
	cancel   context.CancelFunc
	log      *slog.Logger
}

// New creates a new Bot instance.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	engine *flow.Engine,
	exporter export.Exporter,
) *Bot {
	op := "telegram.New()"
	log := logger.With(slog.String("op", op))

	ctx, cancel := context.WithCancel(context.Background())

	reportBot := &Bot{
		cfg:      cfg,
		engine:   engine,
		exporter: exporter,
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}

	b, err := bot.New(cfg.BotConfig.TgbotApiToken,
		bot.WithDefaultHandler(reportBot.defaultHandler),
	)
	if err != nil {
		log.Error("error auth telegram bot", sl.Err(err))
		cancel()
		return nil
	}

	reportBot.b = b

	log.Info("telegram bot created")
	return reportBot
}

// defaultHandler is the single entry point for all updates from go-telegram/bot.
func (reportBot *Bot) defaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	op := "telegram.defaultHandler()"
	log := reportBot.log.With(slog.String("op", op))

	if update.Message != nil && update.Message.From != nil {
		log.Info("input message",
			slog.String("user_id", strconv.FormatInt(update.Message.From.ID, 10)),
			slog.String("user_name", update.Message.From.Username),
			slog.String("text", update.Message.Text),
		)
	}
	if update.CallbackQuery != nil {
		log.Info("input callback",
			slog.String("user_id", strconv.FormatInt(update.CallbackQuery.From.ID, 10)),
			slog.String("user_name", update.CallbackQuery.From.Username),
			slog.String("data", update.CallbackQuery.Data),
		)
	}

	switch {
	case update.Message != nil && isCommand(update.Message):
		if err := reportBot.commandHandler(ctx, update); err != nil {
			log.Error("command handler error", sl.Err(err))
		}
	case update.CallbackQuery != nil:
		reportBot.handleCallbackQuery(ctx, update)
	case update.Message != nil:
		reportBot.handleText(ctx, update)
	}
}

// isCommand reports whether msg is a bot command.
func isCommand(msg *models.Message) bool {
	if msg == nil || len(msg.Entities) == 0 {
		return false
	}
	for _, e := range msg.Entities {
		if e.Type == models.MessageEntityTypeBotCommand && e.Offset == 0 {
			return true
		}
	}
	return false
}

// commandText extracts /command from a message (without @botname suffix).
func commandText(msg *models.Message) string {
	if msg == nil || len(msg.Entities) == 0 {
		return ""
	}
	for _, e := range msg.Entities {
		if e.Type == models.MessageEntityTypeBotCommand && e.Offset == 0 {
			raw := []rune(msg.Text)[e.Offset : e.Offset+e.Length]
			cmd := string(raw)
			// strip leading slash
			if len(cmd) > 0 && cmd[0] == '/' {
				cmd = cmd[1:]
			}
			// strip @botname if present
			for i, c := range cmd {
				if c == '@' {
					cmd = cmd[:i]
					break
				}
			}
			return cmd
		}
	}
	return ""
}

// Start begins polling for Telegram updates.
func (reportBot *Bot) Start(_ int) {
	reportBot.log.Info("starting telegram bot polling")
	reportBot.b.Start(reportBot.ctx)
	reportBot.log.Info("telegram bot polling stopped")
}

// sendReply sends a plain-text reply, chunked to Telegram's message limit.
func (reportBot *Bot) sendReply(ctx context.Context, chatID int64, text string) error {
	chunks := splitTextIntoChunks(text, 4096)
	for _, chunk := range chunks {
		p := &bot.SendMessageParams{
			ChatID: chatID,
			Text:   chunk,
		}
		if _, err := reportBot.b.SendMessage(ctx, p); err != nil {
			return fmt.Errorf("sendReply: %w", err)
		}
	}
	return nil
}

// sendPrompt renders one flow prompt: text, optional Markdown, optional
// inline keyboard.
func (reportBot *Bot) sendPrompt(ctx context.Context, chatID int64, p flow.Prompt) error {
	if len(p.Choices) == 0 && !p.Markdown {
		return reportBot.sendReply(ctx, chatID, p.Text)
	}
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   p.Text,
	}
	if p.Markdown {
		params.ParseMode = models.ParseModeMarkdown
	}
	if len(p.Choices) > 0 {
		params.ReplyMarkup = keyboardFor(p)
	}
	if _, err := reportBot.b.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("sendPrompt: %w", err)
	}
	return nil
}

// keyboardFor builds an inline keyboard from the prompt's choice rows.
func keyboardFor(p flow.Prompt) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(p.Choices))
	for _, row := range p.Choices {
		btns := make([]models.InlineKeyboardButton, 0, len(row))
		for _, c := range row {
			btns = append(btns, models.InlineKeyboardButton{
				Text:         c.Label,
				CallbackData: c.Data,
			})
		}
		rows = append(rows, btns)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// sendEffects delivers everything one turn produced, including the
// exported document when the report was finalized this turn.
func (reportBot *Bot) sendEffects(ctx context.Context, chatID int64, eff flow.Effects) {
	op := "telegram.sendEffects()"
	log := reportBot.log.With(slog.String("op", op))

	for _, p := range eff.Prompts {
		if err := reportBot.sendPrompt(ctx, chatID, p); err != nil {
			log.Error("failed to send prompt", sl.Err(err))
		}
	}
	if eff.Report != nil {
		reportBot.deliverReport(ctx, chatID, eff.Report)
	}
}

// splitTextIntoChunks splits text into chunks of the specified size.
func splitTextIntoChunks(text string, chunkSize int) []string {
	var chunks []string
	runes := []rune(text)
	for i := 0; i < len(runes); i += chunkSize {
		end := min(i+chunkSize, len(runes))
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}

// Shutdown gracefully stops the bot.
func (reportBot *Bot) Shutdown(_ context.Context) error {
	reportBot.cancel()
	return nil
}
