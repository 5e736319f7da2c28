// Package api provides handlers for external APIs and interfaces
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/abelzeko/fishing-bot/internal/config"
	"github.com/abelzeko/fishing-bot/internal/markup"
	"github.com/abelzeko/fishing-bot/internal/repository"
	"github.com/abelzeko/fishing-bot/internal/usecases"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// statsWindow is the period covered by /stats
const statsWindow = 7 * 24 * time.Hour

// messenger is the subset of the Telegram client used by the handlers
type messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	sender      messenger
	accountName string
	useCase     *usecases.FishingUseCase
	cfg         *config.Config

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// NewTelegramBot creates a new Telegram bot handler
func NewTelegramBot(cfg *config.Config, useCase *usecases.FishingUseCase) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %v", err)
	}

	t := newTelegramBot(bot, cfg, useCase)
	t.accountName = bot.Self.UserName
	return t, nil
}

func newTelegramBot(sender messenger, cfg *config.Config, useCase *usecases.FishingUseCase) *TelegramBot {
	return &TelegramBot{
		sender:  sender,
		useCase: useCase,
		cfg:     cfg,
		stop:    make(chan struct{}),
	}
}

// Start listens for updates until the context is canceled or an admin sends /stop.
// Each update is handled in its own goroutine; Start waits for them before returning.
func (t *TelegramBot) Start(ctx context.Context) {
	log.Printf("Authorized on Telegram account %s", t.accountName)
	t.setupMenuButton()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.sender.GetUpdatesChan(u)
	log.Println("Bot is now listening for messages...")

	// In-flight handlers finish their replies even after shutdown starts
	handlerCtx := context.WithoutCancel(ctx)

loop:
	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown requested, no longer accepting updates")
			break loop
		case <-t.stop:
			log.Println("Stop command received, no longer accepting updates")
			break loop
		case update, ok := <-updates:
			if !ok {
				break loop
			}
			t.wg.Add(1)
			go func() {
				defer t.wg.Done()
				t.handleUpdate(handlerCtx, update)
			}()
		}
	}

	t.sender.StopReceivingUpdates()
	t.wg.Wait()
	log.Println("Bot stopped")
}

// requestStop makes Start return; safe to call more than once
func (t *TelegramBot) requestStop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// setupMenuButton registers the chat menu button that opens the map web app
func (t *TelegramBot) setupMenuButton() {
	if t.cfg.MapURL == "" {
		return
	}

	params := tgbotapi.Params{}
	err := params.AddInterface("menu_button", menuButton{
		Type:   "web_app",
		Text:   "Open map",
		WebApp: webAppInfo{URL: t.cfg.MapURL},
	})
	if err != nil {
		log.Printf("Error encoding menu button: %v", err)
		return
	}

	if _, err := t.sender.MakeRequest("setChatMenuButton", params); err != nil {
		log.Printf("Warning: failed to set chat menu button: %v", err)
		return
	}
	log.Printf("Chat menu button points to %s", t.cfg.MapURL)
}

// handleUpdate dispatches a single Telegram update
func (t *TelegramBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	reqID := uuid.NewString()

	switch {
	case update.CallbackQuery != nil:
		log.Printf("[%s] Received callback '%s' from %s", reqID, update.CallbackQuery.Data, userName(update.CallbackQuery.From))
		t.handleCallback(ctx, reqID, update.CallbackQuery)
	case update.Message != nil:
		log.Printf("[%s] Received message from %s (chat %d): %s",
			reqID, userName(update.Message.From), update.Message.Chat.ID, update.Message.Text)
		t.handleMessage(ctx, reqID, update.Message)
	}
}

// handleMessage processes a Telegram message
func (t *TelegramBot) handleMessage(ctx context.Context, reqID string, message *tgbotapi.Message) {
	if message.IsCommand() {
		t.handleCommand(ctx, reqID, message)
		return
	}
	t.handleNonCommand(ctx, reqID, message)
}

// handleCommand processes commands like /start, /help, etc.
func (t *TelegramBot) handleCommand(ctx context.Context, reqID string, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		log.Printf("[%s] Handling /start command", reqID)
		keyboard := startKeyboard(t.cfg.MapURL)
		t.deliver(chatID, 0, "🎣 "+markup.Bold("Fishing guide")+"\nChoose an action:", &keyboard)

	case "help":
		log.Printf("[%s] Handling /help command", reqID)
		t.deliver(chatID, 0, helpText(), nil)

	case "spots":
		log.Printf("[%s] Handling /spots command", reqID)
		t.showMenu(chatID, 0)

	case "report":
		args := strings.TrimSpace(message.CommandArguments())
		log.Printf("[%s] Handling /report command with args '%s'", reqID, args)
		if args == "" {
			t.deliver(chatID, 0, "Please specify a water body. Example: /report "+markup.Escape(repository.WaterBodyNames()[0]), nil)
			return
		}
		t.showReport(ctx, chatID, 0, args)

	case "stats":
		if !t.authorizeAdmin(reqID, message) {
			return
		}
		log.Printf("[%s] Handling /stats command", reqID)
		t.deliver(chatID, 0, t.statsText(), nil)

	case "stop":
		if !t.authorizeAdmin(reqID, message) {
			return
		}
		log.Printf("[%s] Handling /stop command, shutting down", reqID)
		t.deliver(chatID, 0, "🛑 Bot is stopping.", nil)
		t.requestStop()

	default:
		log.Printf("[%s] Received unknown command /%s", reqID, message.Command())
		t.deliver(chatID, 0, "Unknown command. Use /help to see available commands.", nil)
	}
}

// handleNonCommand processes regular messages
func (t *TelegramBot) handleNonCommand(ctx context.Context, reqID string, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	result := t.useCase.InterpretQuery(ctx, message.Text)
	if result.WaterBody != "" {
		log.Printf("[%s] Free text resolved to %s", reqID, result.WaterBody)
		if result.Message != "" {
			t.deliver(chatID, 0, markup.Escape(result.Message), nil)
		}
		t.showReport(ctx, chatID, 0, result.WaterBody)
		return
	}

	text := "I don't understand. Choose a water body below or use /help."
	if result.Message != "" {
		text = markup.Escape(result.Message)
	}
	keyboard := menuKeyboard(t.useCase.ListWaterBodies())
	t.deliver(chatID, 0, text, &keyboard)
}

// handleCallback processes inline keyboard presses
func (t *TelegramBot) handleCallback(ctx context.Context, reqID string, query *tgbotapi.CallbackQuery) {
	if _, err := t.sender.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("[%s] Error answering callback: %v", reqID, err)
	}

	if query.Message == nil || query.Message.Chat == nil {
		log.Printf("[%s] Callback without a message, ignoring", reqID)
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch query.Data {
	case callbackBack, callbackMenu:
		t.showMenu(chatID, messageID)
	default:
		t.showReport(ctx, chatID, messageID, query.Data)
	}
}

// authorizeAdmin replies with a refusal when the sender is not the administrator
func (t *TelegramBot) authorizeAdmin(reqID string, message *tgbotapi.Message) bool {
	if message.From != nil && t.cfg.IsAdmin(message.From.ID) {
		return true
	}
	log.Printf("[%s] Denied /%s for %s", reqID, message.Command(), userName(message.From))
	t.deliver(message.Chat.ID, 0, "⛔ This command is only available to the administrator.", nil)
	return false
}

// showMenu sends (messageID == 0) or edits a message into the water body list
func (t *TelegramBot) showMenu(chatID int64, messageID int) {
	keyboard := menuKeyboard(t.useCase.ListWaterBodies())
	t.deliver(chatID, messageID, "🎣 "+markup.Bold("Fishing guide")+"\nChoose a water body:", &keyboard)
}

// showReport sends (messageID == 0) or edits a message into a water body report
func (t *TelegramBot) showReport(ctx context.Context, chatID int64, messageID int, name string) {
	report, err := t.useCase.GetReport(ctx, name)
	switch {
	case errors.Is(err, usecases.ErrUnknownWaterBody):
		keyboard := menuKeyboard(t.useCase.ListWaterBodies())
		t.deliver(chatID, messageID,
			fmt.Sprintf("No information found for water body '%s'. Choose one of the available water bodies:", markup.Escape(name)),
			&keyboard)
	case err != nil:
		// Cause is already logged by the use case
		keyboard := backKeyboard()
		t.deliver(chatID, messageID,
			fmt.Sprintf("⚠️ Could not retrieve conditions for %s. Please try again later.", markup.Bold(name)),
			&keyboard)
	default:
		photoURL := ""
		if wb, ok := repository.FindWaterBody(report.WaterBody); ok {
			photoURL = wb.PhotoURL
		}
		keyboard := reportKeyboard(photoURL)
		t.deliver(chatID, messageID, report.Text, &keyboard)
	}
}

// deliver sends a new message (messageID == 0) or edits an existing one using
// HTML markup, falling back to plain text if Telegram rejects the markup
func (t *TelegramBot) deliver(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	build := func(text, parseMode string) tgbotapi.Chattable {
		if messageID == 0 {
			msg := tgbotapi.NewMessage(chatID, text)
			msg.ParseMode = parseMode
			if keyboard != nil {
				msg.ReplyMarkup = *keyboard
			}
			return msg
		}
		edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
		edit.ParseMode = parseMode
		edit.ReplyMarkup = keyboard
		return edit
	}

	_, err := t.sender.Send(build(text, tgbotapi.ModeHTML))
	if err == nil {
		return
	}
	if strings.Contains(err.Error(), "message is not modified") {
		return
	}

	log.Printf("Error sending HTML message to chat %d, retrying as plain text: %v", chatID, err)
	if _, err := t.sender.Send(build(markup.PlainText(text), "")); err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

// statsText renders journal statistics for the administrator
func (t *TelegramBot) statsText() string {
	stats, err := t.useCase.GetStats(time.Now().Add(-statsWindow))
	if errors.Is(err, usecases.ErrJournalDisabled) {
		return "Report journal is disabled."
	}
	if err != nil {
		log.Printf("Error fetching report stats: %v", err)
		return "Error fetching report stats. Please try again later."
	}
	if len(stats) == 0 {
		return "No reports were requested in the last 7 days."
	}

	var result strings.Builder
	result.WriteString("📊 " + markup.Bold("Reports in the last 7 days") + "\n\n")
	for _, stat := range stats {
		result.WriteString(fmt.Sprintf("🌊 %s\n", markup.Bold(stat.WaterBody)))
		result.WriteString(fmt.Sprintf("✅ %d ❌ %d (total %d)\n", stat.Successes, stat.Failures, stat.Total))
		result.WriteString(fmt.Sprintf("🕒 Last request: %s\n\n", stat.LastRequest.Format("2006-01-02 15:04 MST")))
	}
	return strings.TrimRight(result.String(), "\n")
}

func helpText() string {
	return "Available commands:\n" +
		"/start - Start the bot\n" +
		"/spots - Show the list of water bodies\n" +
		"/report " + markup.Escape("<name>") + " - Show fishing conditions for a water body\n" +
		"/help - Show this help message\n\n" +
		"You can also just write the name of a lake."
}

func userName(u *tgbotapi.User) string {
	if u == nil {
		return "unknown"
	}
	if u.UserName != "" {
		return u.UserName
	}
	return fmt.Sprintf("id:%d", u.ID)
}
