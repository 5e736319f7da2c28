package api

import (
	"github.com/abelzeko/fishing-bot/internal/entities"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data values reserved for navigation
const (
	callbackBack = "back"
	callbackMenu = "menu"
)

// menuKeyboard lists one water body per row; the callback data is the name
func menuKeyboard(waterBodies []entities.WaterBody) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(waterBodies))
	for _, wb := range waterBodies {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(wb.Name, wb.Name),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func startKeyboard(mapURL string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if mapURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Open map", mapURL),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎣 Water bodies", callbackMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func reportKeyboard(photoURL string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if photoURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📷 Photo", photoURL),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", callbackBack),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return reportKeyboard("")
}

// menuButton is the payload of setChatMenuButton, which this version of the
// client library has no dedicated config for
type menuButton struct {
	Type   string     `json:"type"`
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type webAppInfo struct {
	URL string `json:"url"`
}
