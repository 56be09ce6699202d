package telegram

import (
	"strings"

	"github.com/2beens/gymbot/internal/gymstats/flow"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	storeFailureText = "Что-то пошло не так, попробуйте ещё раз."
	throttledText    = "Слишком часто, подождите немного."
	startCommand     = "start"
)

// inputFromUpdate maps a telegram update to a flow input. Updates the
// flow has no use for (edits, stickers, inline queries) are skipped.
func inputFromUpdate(update tgbotapi.Update) (flow.Input, bool) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil || cb.Message.Chat == nil {
			return flow.Input{}, false
		}
		return flow.MenuSelect(cb.Message.Chat.ID, cb.Data), true
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return flow.Input{}, false
	}
	if msg.IsCommand() {
		if msg.Command() == startCommand {
			return flow.StartCommand(msg.Chat.ID), true
		}
		return flow.Input{}, false
	}
	if strings.TrimSpace(msg.Text) == "" {
		return flow.Input{}, false
	}
	return flow.FreeText(msg.Chat.ID, msg.Text), true
}

func inlineKeyboard(menu [][]flow.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(menu) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu))
	for _, row := range menu {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

// renderMessage edits the message the keyboard belongs to when the flow
// asks for it, otherwise a new message is sent.
func renderMessage(chatID int64, messageID int, render flow.RenderInstruction) tgbotapi.Chattable {
	markup := inlineKeyboard(render.Menu)
	if render.EditExisting && messageID != 0 {
		if markup == nil {
			return tgbotapi.NewEditMessageText(chatID, messageID, render.Text)
		}
		return tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, render.Text, *markup)
	}

	msg := tgbotapi.NewMessage(chatID, render.Text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	return msg
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
