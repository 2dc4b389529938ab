package bot

import (
	"fmt"

	"astrobot/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type textKey string

const (
	txtWelcome       textKey = "welcome"
	txtHelp          textKey = "help"
	txtHelpManager   textKey = "help_manager"
	txtChooseSign    textKey = "choose_sign"
	txtChooseLang    textKey = "choose_lang"
	txtChooseTime    textKey = "choose_time"
	txtSignSaved     textKey = "sign_saved"
	txtLangSaved     textKey = "lang_saved"
	txtDailyOn       textKey = "daily_on"
	txtDailyOff      textKey = "daily_off"
	txtTimeOn        textKey = "time_on"
	txtTimeOff       textKey = "time_off"
	txtBadTime       textKey = "bad_time"
	txtBadSign       textKey = "bad_sign"
	txtBadLang       textKey = "bad_lang"
	txtNeedSign      textKey = "need_sign"
	txtTarotRepeat   textKey = "tarot_repeat"
	txtError         textKey = "error"
	txtUnknown       textKey = "unknown"
	txtStats         textKey = "stats"
	txtExportCaption textKey = "export_caption"

	btnToday      textKey = "btn_today"
	btnTarot      textKey = "btn_tarot"
	btnQuote      textKey = "btn_quote"
	btnSign       textKey = "btn_sign"
	btnReminder   textKey = "btn_reminder"
	btnLang       textKey = "btn_lang"
	btnReminderOf textKey = "btn_reminder_off"
)

var texts = map[model.Lang]map[textKey]string{
	model.LangEN: {
		txtWelcome:     "✨ Hi! I am AstroBot. Every day I can send you a horoscope, a tarot card and a quote.",
		txtHelp:        "Commands:\n/today — horoscope for today\n/tarot — tarot card\n/quote — quote of the day\n/sign — change sign\n/lang — change language\n/daily_on [HH:MM] — daily horoscope\n/daily_off — stop the daily horoscope\n/time — reminder status and time\n/help — this message",
		txtHelpManager: "Manager commands:\n/stats — usage numbers\n/export — subscribers spreadsheet",
		txtChooseSign:  "Choose your zodiac sign:",
		txtChooseLang:  "Choose a language:",
		txtChooseTime:  "When should I send the daily horoscope?",
		txtSignSaved:   "Saved: %s %s. Tap “%s” to read it.",
		txtLangSaved:   "Language saved.",
		txtDailyOn:     "🔔 Daily horoscope is on. I will write at %s (%s).",
		txtDailyOff:    "🔕 Daily horoscope is off.",
		txtTimeOn:      "⏰ Daily horoscope at %s (%s), on. Pick another time below or send /daily_on HH:MM.",
		txtTimeOff:     "⏰ Daily horoscope is off. Saved time: %s (%s). Pick a time below or send /daily_on HH:MM.",
		txtBadTime:     "Please send the time as HH:MM, for example /daily_on 08:30.",
		txtBadSign:     "Unknown sign, please pick one from the list.",
		txtBadLang:     "This language is not available.",
		txtNeedSign:    "Choose your zodiac sign first.",
		txtTarotRepeat: "You have already drawn this card. A new one will be available later.",
		txtError:       "Something went wrong, please try again later.",
		txtUnknown:     "I did not understand that. Send /help to see what I can do.",
		txtStats:       "📊 Users: %d\nWith sign: %d\nSubscribed: %d\nTarot draws: %d\nHoroscope days: %d",

		txtExportCaption: "Subscribers export",

		btnToday:      "📝 Today",
		btnTarot:      "🔮 Tarot",
		btnQuote:      "📜 Quote",
		btnSign:       "♻️ Change sign",
		btnReminder:   "🔔 Reminder",
		btnLang:       "🌐 Language",
		btnReminderOf: "🔕 Turn off",
	},
	model.LangRU: {
		txtWelcome:     "✨ Привет! Я AstroBot. Каждый день могу присылать гороскоп, карту таро и цитату.",
		txtHelp:        "Команды:\n/today — гороскоп на сегодня\n/tarot — карта таро\n/quote — цитата дня\n/sign — сменить знак\n/lang — сменить язык\n/daily_on [ЧЧ:ММ] — ежедневный гороскоп\n/daily_off — отключить рассылку\n/time — статус и время рассылки\n/help — это сообщение",
		txtHelpManager: "Команды менеджера:\n/stats — статистика\n/export — выгрузка подписчиков",
		txtChooseSign:  "Выберите свой знак зодиака:",
		txtChooseLang:  "Выберите язык:",
		txtChooseTime:  "Во сколько присылать гороскоп?",
		txtSignSaved:   "Сохранено: %s %s. Нажмите «%s», чтобы прочитать.",
		txtLangSaved:   "Язык сохранён.",
		txtDailyOn:     "🔔 Ежедневный гороскоп включён. Напишу в %s (%s).",
		txtDailyOff:    "🔕 Ежедневный гороскоп отключён.",
		txtTimeOn:      "⏰ Гороскоп приходит в %s (%s), рассылка включена. Выберите другое время ниже или отправьте /daily_on ЧЧ:ММ.",
		txtTimeOff:     "⏰ Рассылка отключена. Сохранённое время: %s (%s). Выберите время ниже или отправьте /daily_on ЧЧ:ММ.",
		txtBadTime:     "Укажите время в формате ЧЧ:ММ, например /daily_on 08:30.",
		txtBadSign:     "Неизвестный знак, выберите из списка.",
		txtBadLang:     "Этот язык недоступен.",
		txtNeedSign:    "Сначала выберите знак зодиака.",
		txtTarotRepeat: "Вы уже вытянули эту карту. Новая будет доступна позже.",
		txtError:       "Что-то пошло не так, попробуйте позже.",
		txtUnknown:     "Не понял. Отправьте /help, чтобы увидеть команды.",
		txtStats:       "📊 Пользователей: %d\nСо знаком: %d\nПодписаны: %d\nКарт таро: %d\nДней гороскопа: %d",

		txtExportCaption: "Выгрузка подписчиков",

		btnToday:      "📝 Гороскоп",
		btnTarot:      "🔮 Таро",
		btnQuote:      "📜 Цитата",
		btnSign:       "♻️ Сменить знак",
		btnReminder:   "🔔 Рассылка",
		btnLang:       "🌐 Язык",
		btnReminderOf: "🔕 Отключить",
	},
	model.LangES: {
		txtWelcome:     "✨ ¡Hola! Soy AstroBot. Cada día puedo enviarte un horóscopo, una carta del tarot y una cita.",
		txtHelp:        "Comandos:\n/today — horóscopo de hoy\n/tarot — carta del tarot\n/quote — cita del día\n/sign — cambiar signo\n/lang — cambiar idioma\n/daily_on [HH:MM] — horóscopo diario\n/daily_off — desactivar el horóscopo diario\n/time — estado y hora del recordatorio\n/help — este mensaje",
		txtHelpManager: "Comandos de gestor:\n/stats — estadísticas\n/export — hoja de suscriptores",
		txtChooseSign:  "Elige tu signo del zodiaco:",
		txtChooseLang:  "Elige un idioma:",
		txtChooseTime:  "¿A qué hora te envío el horóscopo?",
		txtSignSaved:   "Guardado: %s %s. Pulsa «%s» para leerlo.",
		txtLangSaved:   "Idioma guardado.",
		txtDailyOn:     "🔔 Horóscopo diario activado. Te escribiré a las %s (%s).",
		txtDailyOff:    "🔕 Horóscopo diario desactivado.",
		txtTimeOn:      "⏰ Horóscopo diario a las %s (%s), activado. Elige otra hora abajo o envía /daily_on HH:MM.",
		txtTimeOff:     "⏰ El horóscopo diario está desactivado. Hora guardada: %s (%s). Elige una hora abajo o envía /daily_on HH:MM.",
		txtBadTime:     "Envía la hora como HH:MM, por ejemplo /daily_on 08:30.",
		txtBadSign:     "Signo desconocido, elige uno de la lista.",
		txtBadLang:     "Este idioma no está disponible.",
		txtNeedSign:    "Primero elige tu signo del zodiaco.",
		txtTarotRepeat: "Ya has sacado esta carta. Habrá una nueva más adelante.",
		txtError:       "Algo salió mal, inténtalo más tarde.",
		txtUnknown:     "No lo he entendido. Envía /help para ver lo que puedo hacer.",
		txtStats:       "📊 Usuarios: %d\nCon signo: %d\nSuscritos: %d\nCartas de tarot: %d\nDías de horóscopo: %d",

		txtExportCaption: "Exportación de suscriptores",

		btnToday:      "📝 Hoy",
		btnTarot:      "🔮 Tarot",
		btnQuote:      "📜 Cita",
		btnSign:       "♻️ Cambiar signo",
		btnReminder:   "🔔 Recordatorio",
		btnLang:       "🌐 Idioma",
		btnReminderOf: "🔕 Desactivar",
	},
}

var langNames = map[model.Lang]string{
	model.LangEN: "🇬🇧 English",
	model.LangRU: "🇷🇺 Русский",
	model.LangES: "🇪🇸 Español",
}

func tr(lang model.Lang, key textKey) string {
	if s, ok := texts[lang][key]; ok {
		return s
	}
	return texts[model.LangEN][key]
}

func trf(lang model.Lang, key textKey, args ...any) string {
	return fmt.Sprintf(tr(lang, key), args...)
}

// buttonAction maps reply keyboard captions in every language to commands.
var buttonAction = func() map[string]string {
	actions := map[textKey]string{
		btnToday:    "/today",
		btnTarot:    "/tarot",
		btnQuote:    "/quote",
		btnSign:     "/sign",
		btnReminder: "/time",
		btnLang:     "/lang",
	}
	m := make(map[string]string)
	for _, set := range texts {
		for key, cmd := range actions {
			m[set[key]] = cmd
		}
	}
	return m
}()

func mainMenu(lang model.Lang) tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tr(lang, btnToday)),
			tgbotapi.NewKeyboardButton(tr(lang, btnTarot)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tr(lang, btnQuote)),
			tgbotapi.NewKeyboardButton(tr(lang, btnReminder)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tr(lang, btnSign)),
			tgbotapi.NewKeyboardButton(tr(lang, btnLang)),
		),
	)
}
