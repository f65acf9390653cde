// Package i18n holds the Uzbek and Russian texts of the bot. Buttons are
// identified by Intent codes; the chat layer shows their labels and maps the
// label a user pressed back to the Intent.
package i18n

import "github.com/dmitrijs2005/cargobot/internal/models"

// Intent is the stable code of a keyboard button.
type Intent string

const (
	IntentRegister Intent = "register"
	IntentLogin    Intent = "login"
	IntentContacts Intent = "contacts"
	IntentLanguage Intent = "language"
	IntentStatus   Intent = "status"

	IntentProfile   Intent = "profile"
	IntentMyParcels Intent = "my_parcels"
	IntentTrack     Intent = "track"
	IntentWarehouse Intent = "warehouse"
	IntentFeedback  Intent = "feedback"
	IntentLogout    Intent = "logout"

	IntentCancel  Intent = "cancel"
	IntentBack    Intent = "back"
	IntentConfirm Intent = "confirm"
	IntentYes     Intent = "yes"
	IntentNo      Intent = "no"

	IntentDocBiometric Intent = "doc_biometric"
	IntentDocBooklet   Intent = "doc_booklet"

	IntentLangUz Intent = "lang_uz"
	IntentLangRu Intent = "lang_ru"

	IntentAdminStats     Intent = "admin_stats"
	IntentAdminSearch    Intent = "admin_search"
	IntentAdminTrack     Intent = "admin_track"
	IntentAdminShipments Intent = "admin_shipments"
	IntentAdminImport    Intent = "admin_import"
	IntentAdminBroadcast Intent = "admin_broadcast"
	IntentAdminClear     Intent = "admin_clear"

	IntentApprove Intent = "approve"
	IntentReject  Intent = "reject"
	IntentReply   Intent = "reply"
)

var labels = map[models.Language]map[Intent]string{
	models.LanguageUz: {
		IntentRegister: "📝 Ro'yxatdan o'tish",
		IntentLogin:    "🔐 Kirish",
		IntentContacts: "📞 Kontaktlar",
		IntentLanguage: "🌐 Til",
		IntentStatus:   "⏳ Holatni tekshirish",

		IntentProfile:   "👤 Profil",
		IntentMyParcels: "📦 Mening yuklarim",
		IntentTrack:     "🔎 Trek kod bo'yicha qidirish",
		IntentWarehouse: "🇨🇳 Xitoy manzili",
		IntentFeedback:  "💬 Fikr bildirish",
		IntentLogout:    "🚪 Chiqish",

		IntentCancel:  "❌ Bekor qilish",
		IntentBack:    "⬅️ Orqaga",
		IntentConfirm: "✅ Tasdiqlash",
		IntentYes:     "✅ Ha",
		IntentNo:      "❌ Yo'q",

		IntentDocBiometric: "🪪 ID karta (biometrik)",
		IntentDocBooklet:   "📕 Kitobcha pasport",

		IntentLangUz: "🇺🇿 O'zbek",
		IntentLangRu: "🇷🇺 Русский",

		IntentAdminStats:     "📊 Statistika",
		IntentAdminSearch:    "🔍 Mijoz qidirish",
		IntentAdminTrack:     "🚚 Trek qidirish",
		IntentAdminShipments: "📥 Yuklar faylini yuklash",
		IntentAdminImport:    "👥 Mijozlarni import qilish",
		IntentAdminBroadcast: "📢 Xabar tarqatish",
		IntentAdminClear:     "🗑 Mijozlarni tozalash",

		IntentApprove: "✅ Tasdiqlash",
		IntentReject:  "❌ Rad etish",
		IntentReply:   "💬 Javob berish",
	},
	models.LanguageRu: {
		IntentRegister: "📝 Регистрация",
		IntentLogin:    "🔐 Вход",
		IntentContacts: "📞 Контакты",
		IntentLanguage: "🌐 Язык",
		IntentStatus:   "⏳ Проверить статус",

		IntentProfile:   "👤 Профиль",
		IntentMyParcels: "📦 Мои грузы",
		IntentTrack:     "🔎 Поиск по трек-коду",
		IntentWarehouse: "🇨🇳 Адрес в Китае",
		IntentFeedback:  "💬 Обратная связь",
		IntentLogout:    "🚪 Выход",

		IntentCancel:  "❌ Отмена",
		IntentBack:    "⬅️ Назад",
		IntentConfirm: "✅ Подтвердить",
		IntentYes:     "✅ Да",
		IntentNo:      "❌ Нет",

		IntentDocBiometric: "🪪 ID-карта (биометрическая)",
		IntentDocBooklet:   "📕 Паспорт-книжка",

		IntentLangUz: "🇺🇿 O'zbek",
		IntentLangRu: "🇷🇺 Русский",

		IntentAdminStats:     "📊 Статистика",
		IntentAdminSearch:    "🔍 Поиск клиента",
		IntentAdminTrack:     "🚚 Поиск трека",
		IntentAdminShipments: "📥 Загрузить файл грузов",
		IntentAdminImport:    "👥 Импорт клиентов",
		IntentAdminBroadcast: "📢 Рассылка",
		IntentAdminClear:     "🗑 Очистить клиентов",

		IntentApprove: "✅ Подтвердить",
		IntentReject:  "❌ Отклонить",
		IntentReply:   "💬 Ответить",
	},
}

// byLabel maps a label in any language back to its Intent. Labels shared by
// two intents (Confirm and Approve) resolve to the keyboard intent; inline
// buttons are matched by callback data instead.
var byLabel = func() map[string]Intent {
	m := make(map[string]Intent)
	for _, lang := range []models.Language{models.LanguageUz, models.LanguageRu} {
		for intent, label := range labels[lang] {
			switch intent {
			case IntentApprove, IntentReject, IntentReply:
				continue
			}
			m[label] = intent
		}
	}
	return m
}()

// Label returns the button text of intent in lang.
func Label(lang models.Language, intent Intent) string {
	if l, ok := labels[lang][intent]; ok {
		return l
	}
	return labels[models.LanguageUz][intent]
}

// IntentOf resolves a pressed button label in either language.
func IntentOf(text string) (Intent, bool) {
	intent, ok := byLabel[text]
	return intent, ok
}
