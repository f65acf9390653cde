package i18n

import (
	"fmt"

	"github.com/dmitrijs2005/cargobot/internal/models"
)

// Key names a message template. Templates use fmt verbs; callers pass the
// arguments in the order the template lists them.
type Key string

const (
	MsgWelcomeNew        Key = "welcome_new"
	MsgWelcomeRegistered Key = "welcome_registered"
	MsgStatusApproved    Key = "status_approved"
	MsgStatusPending     Key = "status_pending"
	MsgStatusRejected    Key = "status_rejected"
	MsgLabelPending      Key = "label_pending"
	MsgLabelApproved     Key = "label_approved"
	MsgLabelRejected     Key = "label_rejected"

	MsgChooseLanguage     Key = "choose_language"
	MsgLanguageChanged    Key = "language_changed"
	MsgOperationCancelled Key = "operation_cancelled"
	MsgBackToMain         Key = "back_to_main"
	MsgInvalidCommand     Key = "invalid_command"
	MsgUseButtons         Key = "use_buttons"
	MsgErrorGeneral       Key = "error_general"
	MsgErrorPhoto         Key = "error_photo"
	MsgNotApproved        Key = "not_approved"

	MsgEnterFullName         Key = "enter_full_name"
	MsgEnterPhone            Key = "enter_phone"
	MsgSelectDocumentType    Key = "select_document_type"
	MsgUploadFront           Key = "upload_front"
	MsgUploadBack            Key = "upload_back"
	MsgUploadBooklet         Key = "upload_booklet"
	MsgEnterDocumentNumber   Key = "enter_document_number"
	MsgDocumentTemplate      Key = "document_template"
	MsgEnterBirthDate        Key = "enter_birth_date"
	MsgPinflTemplate         Key = "pinfl_template"
	MsgEnterPinfl            Key = "enter_pinfl"
	MsgEnterAddress          Key = "enter_address"
	MsgConfirmRegistration   Key = "confirm_registration"
	MsgRegistrationSubmitted Key = "registration_submitted"
	MsgAlreadyRegistered     Key = "already_registered"
	MsgPassportExpired       Key = "passport_expired"
	MsgPassportExpiring      Key = "passport_expiring"

	MsgEnterClientCode  Key = "enter_client_code"
	MsgEnterPhoneVerify Key = "enter_phone_verify"
	MsgLoginSuccess     Key = "login_success"
	MsgLoginFailed      Key = "login_failed"

	MsgApprovedNotice Key = "approved_notice"
	MsgRejectedNotice Key = "rejected_notice"

	MsgProfile                 Key = "profile"
	MsgNoParcels               Key = "no_parcels"
	MsgParcel                  Key = "parcel"
	MsgEnterTrackingCode       Key = "enter_tracking_code"
	MsgTrackNotFound           Key = "track_not_found"
	MsgWarehouseAddress        Key = "warehouse_address"
	MsgWarehouseConfirm        Key = "warehouse_confirm"
	MsgAddressConfirmed        Key = "address_confirmed"
	MsgAddressAlreadyConfirmed Key = "address_already_confirmed"
	MsgAddressRecheck          Key = "address_recheck"
	MsgEnterFeedback           Key = "enter_feedback"
	MsgFeedbackSent            Key = "feedback_sent"
	MsgFeedbackReply           Key = "feedback_reply"
	MsgContacts                Key = "contacts"
	MsgLogoutConfirm           Key = "logout_confirm"
	MsgLogoutDone              Key = "logout_done"

	MsgStaffNewApplicant  Key = "staff_new_applicant"
	MsgStaffFront         Key = "staff_front"
	MsgStaffBack          Key = "staff_back"
	MsgStaffApprovedNote  Key = "staff_approved_note"
	MsgStaffRejectedNote  Key = "staff_rejected_note"
	MsgStaffEnterReason   Key = "staff_enter_reason"
	MsgStaffAlreadyDone   Key = "staff_already_done"
	MsgStaffUnknownEntry  Key = "staff_unknown_entry"
	MsgStaffNewFeedback   Key = "staff_new_feedback"
	MsgStaffEnterReply    Key = "staff_enter_reply"
	MsgStaffReplySent     Key = "staff_reply_sent"
	MsgStaffApprovedCard  Key = "staff_approved_card"
	MsgStaffDeliveryError Key = "staff_delivery_error"

	MsgAdminPanel             Key = "admin_panel"
	MsgAdminStats             Key = "admin_stats"
	MsgAdminEnterSearch       Key = "admin_enter_search"
	MsgAdminSearchEmpty       Key = "admin_search_empty"
	MsgAdminCustomerCard      Key = "admin_customer_card"
	MsgAdminSendShipments     Key = "admin_send_shipments"
	MsgAdminSendCustomers     Key = "admin_send_customers"
	MsgAdminWrongFile         Key = "admin_wrong_file"
	MsgAdminImportStarted     Key = "admin_import_started"
	MsgAdminShipmentsImported Key = "admin_shipments_imported"
	MsgAdminCustomersImported Key = "admin_customers_imported"
	MsgAdminImportFailed      Key = "admin_import_failed"
	MsgAdminMissingColumns    Key = "admin_missing_columns"
	MsgAdminFailedRows        Key = "admin_failed_rows"
	MsgAdminBackup            Key = "admin_backup"
	MsgAdminEnterBroadcast    Key = "admin_enter_broadcast"
	MsgAdminBroadcastStarted  Key = "admin_broadcast_started"
	MsgAdminBroadcastDone     Key = "admin_broadcast_done"
	MsgAdminClearConfirm      Key = "admin_clear_confirm"
	MsgAdminCleared           Key = "admin_cleared"
)

var messages = map[models.Language]map[Key]string{
	models.LanguageUz: {
		MsgWelcomeNew:        "👋 AKB Cargo botiga xush kelibsiz!\n\nXizmatlardan foydalanish uchun ro'yxatdan o'ting yoki mijoz kodingiz bilan kiring.",
		MsgWelcomeRegistered: "👋 Xush kelibsiz, %s!\n\n🆔 Mijoz kodi: %s\n📱 Telefon: %s\n📋 Holat: %s\n\n%s",
		MsgStatusApproved:    "✅ Hisobingiz tasdiqlangan. Barcha xizmatlar mavjud.",
		MsgStatusPending:     "⏳ Ma'lumotlaringiz tekshirilmoqda. Tasdiqlangach xabar beramiz.",
		MsgStatusRejected:    "❌ Ro'yxatdan o'tish rad etildi.\nSabab: %s\n\nQaytadan ro'yxatdan o'tishingiz mumkin.",
		MsgLabelPending:      "Kutilmoqda",
		MsgLabelApproved:     "Tasdiqlangan",
		MsgLabelRejected:     "Rad etilgan",

		MsgChooseLanguage:     "Iltimos, tilni tanlang / Пожалуйста, выберите язык:",
		MsgLanguageChanged:    "✅ Til o'zgartirildi: O'zbek",
		MsgOperationCancelled: "❌ Amal bekor qilindi.",
		MsgBackToMain:         "🏠 Asosiy menyu",
		MsgInvalidCommand:     "❗️ Noto'g'ri buyruq. Iltimos, tugmalardan foydalaning.",
		MsgUseButtons:         "Iltimos, quyidagi tugmalardan birini tanlang:",
		MsgErrorGeneral:       "⚠️ Xatolik yuz berdi. Iltimos, keyinroq qayta urinib ko'ring.",
		MsgErrorPhoto:         "📷 Iltimos, rasm yuboring.",
		MsgNotApproved:        "⏳ Bu bo'lim faqat tasdiqlangan mijozlar uchun.",

		MsgEnterFullName:         "👤 To'liq ismingizni kiriting (F.I.O):",
		MsgEnterPhone:            "📱 Telefon raqamingizni kiriting (masalan: 90 123 45 67):",
		MsgSelectDocumentType:    "🪪 Pasport turini tanlang:",
		MsgUploadFront:           "📸 ID kartaning old tomonini rasmga olib yuboring:",
		MsgUploadBack:            "📸 ID kartaning orqa tomonini rasmga olib yuboring:",
		MsgUploadBooklet:         "📸 Pasportingizning ma'lumotlar sahifasini rasmga olib yuboring:",
		MsgEnterDocumentNumber:   "🔢 Pasport seriyasi va raqamini kiriting (masalan: AA1234567):",
		MsgDocumentTemplate:      "📸 Pasport seriya va raqami SHU YERDA",
		MsgEnterBirthDate:        "📅 Tug'ilgan sanangizni kiriting (kk.oo.yyyy):",
		MsgPinflTemplate:         "📸 PINFL SHU YERDA",
		MsgEnterPinfl:            "🔢 JSHSHIR (PINFL) raqamini kiriting (14 ta raqam):",
		MsgEnterAddress:          "📍 Yashash manzilingizni kiriting:",
		MsgConfirmRegistration:   "📋 Ma'lumotlaringizni tekshiring:\n\n👤 F.I.O: %s\n📱 Telefon: %s\n🪪 Pasport: %s\n📅 Tug'ilgan sana: %s\n🔢 PINFL: %s\n📍 Manzil: %s\n\nHammasi to'g'rimi?",
		MsgRegistrationSubmitted: "✅ Arizangiz qabul qilindi!\n\nMa'lumotlaringiz tekshirilmoqda. Tasdiqlangach sizga xabar beramiz.",
		MsgAlreadyRegistered:     "ℹ️ Siz allaqachon ro'yxatdan o'tgansiz.",
		MsgPassportExpired:       "⛔️ Pasportingiz muddati tugagan (%s). Iltimos, pasportingizni almashtiring.",
		MsgPassportExpiring:      "⚠️ Pasportingiz muddati %s da tugaydi (%d oy qoldi). Almashtirishni unutmang.",

		MsgEnterClientCode:  "🆔 Mijoz kodingizni kiriting (masalan: AKB587):",
		MsgEnterPhoneVerify: "📱 Ro'yxatdan o'tgan telefon raqamingizni kiriting:",
		MsgLoginSuccess:     "✅ Xush kelibsiz, %s!",
		MsgLoginFailed:      "❌ Mijoz kodi yoki telefon raqami noto'g'ri.",

		MsgApprovedNotice: "🎉 Tabriklaymiz! Ro'yxatdan o'tishingiz tasdiqlandi.\n\n🆔 Mijoz kodingiz: %s",
		MsgRejectedNotice: "❌ Ro'yxatdan o'tishingiz rad etildi.\nSabab: %s\n\nMa'lumotlarni to'g'rilab qaytadan ro'yxatdan o'tishingiz mumkin.",

		MsgProfile:                 "👤 PROFIL\n\nF.I.O: %s\n🆔 Mijoz kodi: %s\n📱 Telefon: %s\n🪪 Pasport: %s\n📅 Tug'ilgan sana: %s\n🔢 PINFL: %s\n📍 Manzil: %s\n📋 Holat: %s\n🗓 Ro'yxatdan o'tgan: %s",
		MsgNoParcels:               "📭 Sizning kodingiz bo'yicha yuklar topilmadi.",
		MsgParcel:                  "📦 Trek kod: %s\n🏷 Nomi: %s\n📦 Paket: %s\n⚖️ Og'irligi: %.2f kg\n🔢 Soni: %d\n✈️ Reys: %s\n🆔 Mijoz kodi: %s",
		MsgEnterTrackingCode:       "🔎 Trek kodni kiriting:",
		MsgTrackNotFound:           "❌ %s trek kodi bo'yicha yuk topilmadi.",
		MsgWarehouseAddress:        "🇨🇳 XITOY SKLAD MANZILI\n\n收货人：%s\n电话：%s\n西安市 雁塔区 丈八沟街道\n高新区丈八六路49号103室中京仓库 (%s)",
		MsgWarehouseConfirm:        "⚠️ MUHIM OGOHLANTIRISH:\nManzilni to'g'ri kiritganingizga ishonch hosil qiling!\nAdmin tomonidan tasdiqlanmagan manzilga yuborilgan buyurtmalar uchun javobgarlik olinmaydi!\n\nManzilni to'g'ri kiritganingizni tasdiqlaysizmi?",
		MsgAddressConfirmed:        "✅ Manzil tasdiqlandi. Rahmat!",
		MsgAddressAlreadyConfirmed: "✅ Siz allaqachon manzilni tasdiqlagansiz!",
		MsgAddressRecheck:          "Qaytadan manzilni diqqat bilan ko'rib chiqing.",
		MsgEnterFeedback:           "💬 Xabaringizni yozing:",
		MsgFeedbackSent:            "✅ Xabaringiz yuborildi. Rahmat!",
		MsgFeedbackReply:           "📩 Xabaringizga javob:\n\n%s",
		MsgContacts:                "📞 Kontaktlar\n\nTelefon: %s\nTelegram: %s",
		MsgLogoutConfirm:           "🚪 Haqiqatan ham chiqmoqchimisiz?",
		MsgLogoutDone:              "👋 Siz tizimdan chiqdingiz. Qayta kirish uchun /start bosing.",

		MsgStaffNewApplicant:  "🆕 YANGI RO'YXATDAN O'TUVCHI\n\n👤 F.I.O: %s\n📱 Telefon: %s\n🆔 Pasport: %s\n📅 Tug'ilgan: %s\n🔢 PINFL: %s\n📍 Manzil: %s\n\n🔐 Mijoz kodi: %s\n📅 Ro'yxat: %s",
		MsgStaffFront:         "📸 Pasport (OLD)",
		MsgStaffBack:          "📸 Pasport (ORQA)",
		MsgStaffApprovedNote:  "✅ %s tasdiqlandi (admin %d)",
		MsgStaffRejectedNote:  "❌ %s rad etildi (admin %d)\nSabab: %s",
		MsgStaffEnterReason:   "✍️ %s uchun rad etish sababini yozing:",
		MsgStaffAlreadyDone:   "ℹ️ %s bo'yicha qaror allaqachon qabul qilingan: %s",
		MsgStaffUnknownEntry:  "⚠️ Bu xabar bo'yicha ariza topilmadi.",
		MsgStaffNewFeedback:   "💬 YANGI FEEDBACK\n\n👤 %s\n🆔 %s\n📱 %s\n\n📝 Xabar:\n%s",
		MsgStaffEnterReply:    "✍️ Javob matnini yozing:",
		MsgStaffReplySent:     "✅ Javob yuborildi.",
		MsgStaffApprovedCard:  "✅ TASDIQLANGAN MIJOZ\n\n👤 %s\n🆔 %s\n📱 %s",
		MsgStaffDeliveryError: "⚠️ Xabarni mijozga yetkazib bo'lmadi.",

		MsgAdminPanel:             "🛠 Admin panel",
		MsgAdminStats:             "📊 STATISTIKA\n\n👥 Jami: %d\n⏳ Kutilmoqda: %d\n✅ Tasdiqlangan: %d\n❌ Rad etilgan: %d\n📦 Yuklar: %d\n📨 Ochiq arizalar: %d",
		MsgAdminEnterSearch:       "🔍 Mijoz kodi yoki telefon raqamini kiriting:",
		MsgAdminSearchEmpty:       "❌ Hech narsa topilmadi.",
		MsgAdminCustomerCard:      "🆔 %s\n👤 %s\n📱 %s\n🪪 %s\n🔢 %s\n📋 %s\n🗓 %s",
		MsgAdminSendShipments:     "📥 Yuklar faylini yuboring (.xlsx, .xls yoki .csv):",
		MsgAdminSendCustomers:     "👥 Mijozlar Excel faylini yuboring (.xlsx):",
		MsgAdminWrongFile:         "❌ Faqat %s fayl yuborish mumkin!",
		MsgAdminImportStarted:     "⏳ Import boshlandi. Tugagach natijani yuboraman.",
		MsgAdminShipmentsImported: "✅ %d ta yuk import qilindi.",
		MsgAdminCustomersImported: "✅ Import yakunlandi.\n\nMuvaffaqiyatli: %d\nXatolik: %d",
		MsgAdminImportFailed:      "❌ Import xatosi: %s",
		MsgAdminMissingColumns:    "❌ Faylda ustunlar yetishmayapti: %s",
		MsgAdminFailedRows:        "📄 Xatolik bo'lgan qatorlar",
		MsgAdminBackup:            "💾 Ma'lumotlar bazasi nusxasi",
		MsgAdminEnterBroadcast:    "📢 Tasdiqlangan mijozlarga yuboriladigan xabarni yozing:",
		MsgAdminBroadcastStarted:  "⏳ Xabar tarqatilmoqda...",
		MsgAdminBroadcastDone:     "📢 Tarqatish yakunlandi.\n\nYuborildi: %d\nXatolik: %d",
		MsgAdminClearConfirm:      "⚠️ Barcha mijozlar o'chiriladi. Davom etasizmi?",
		MsgAdminCleared:           "🗑 %d ta mijoz o'chirildi.",
	},
	models.LanguageRu: {
		MsgWelcomeNew:        "👋 Добро пожаловать в бот AKB Cargo!\n\nЧтобы пользоваться услугами, зарегистрируйтесь или войдите по коду клиента.",
		MsgWelcomeRegistered: "👋 Добро пожаловать, %s!\n\n🆔 Код клиента: %s\n📱 Телефон: %s\n📋 Статус: %s\n\n%s",
		MsgStatusApproved:    "✅ Ваш аккаунт подтверждён. Все услуги доступны.",
		MsgStatusPending:     "⏳ Ваши данные проверяются. Мы сообщим, когда они будут подтверждены.",
		MsgStatusRejected:    "❌ Регистрация отклонена.\nПричина: %s\n\nВы можете зарегистрироваться заново.",
		MsgLabelPending:      "Ожидает",
		MsgLabelApproved:     "Подтверждён",
		MsgLabelRejected:     "Отклонён",

		MsgChooseLanguage:     "Iltimos, tilni tanlang / Пожалуйста, выберите язык:",
		MsgLanguageChanged:    "✅ Язык изменён: Русский",
		MsgOperationCancelled: "❌ Операция отменена.",
		MsgBackToMain:         "🏠 Главное меню",
		MsgInvalidCommand:     "❗️ Неверная команда. Пожалуйста, используйте кнопки.",
		MsgUseButtons:         "Пожалуйста, выберите одну из кнопок:",
		MsgErrorGeneral:       "⚠️ Произошла ошибка. Пожалуйста, попробуйте позже.",
		MsgErrorPhoto:         "📷 Пожалуйста, отправьте фотографию.",
		MsgNotApproved:        "⏳ Этот раздел доступен только подтверждённым клиентам.",

		MsgEnterFullName:         "👤 Введите ваше полное имя (Ф.И.О):",
		MsgEnterPhone:            "📱 Введите номер телефона (например: 90 123 45 67):",
		MsgSelectDocumentType:    "🪪 Выберите тип паспорта:",
		MsgUploadFront:           "📸 Отправьте фото лицевой стороны ID-карты:",
		MsgUploadBack:            "📸 Отправьте фото обратной стороны ID-карты:",
		MsgUploadBooklet:         "📸 Отправьте фото страницы паспорта с данными:",
		MsgEnterDocumentNumber:   "🔢 Введите серию и номер паспорта (например: AA1234567):",
		MsgDocumentTemplate:      "📸 Серия и номер паспорта ЗДЕСЬ",
		MsgEnterBirthDate:        "📅 Введите дату рождения (дд.мм.гггг):",
		MsgPinflTemplate:         "📸 ПИНФЛ ЗДЕСЬ",
		MsgEnterPinfl:            "🔢 Введите ПИНФЛ (14 цифр):",
		MsgEnterAddress:          "📍 Введите адрес проживания:",
		MsgConfirmRegistration:   "📋 Проверьте ваши данные:\n\n👤 Ф.И.О: %s\n📱 Телефон: %s\n🪪 Паспорт: %s\n📅 Дата рождения: %s\n🔢 ПИНФЛ: %s\n📍 Адрес: %s\n\nВсё верно?",
		MsgRegistrationSubmitted: "✅ Ваша заявка принята!\n\nДанные проверяются. Мы сообщим вам после подтверждения.",
		MsgAlreadyRegistered:     "ℹ️ Вы уже зарегистрированы.",
		MsgPassportExpired:       "⛔️ Срок действия паспорта истёк (%s). Пожалуйста, замените паспорт.",
		MsgPassportExpiring:      "⚠️ Срок действия паспорта истекает %s (осталось %d мес.). Не забудьте заменить его.",

		MsgEnterClientCode:  "🆔 Введите код клиента (например: AKB587):",
		MsgEnterPhoneVerify: "📱 Введите номер телефона, указанный при регистрации:",
		MsgLoginSuccess:     "✅ Добро пожаловать, %s!",
		MsgLoginFailed:      "❌ Неверный код клиента или номер телефона.",

		MsgApprovedNotice: "🎉 Поздравляем! Ваша регистрация подтверждена.\n\n🆔 Ваш код клиента: %s",
		MsgRejectedNotice: "❌ Ваша регистрация отклонена.\nПричина: %s\n\nИсправьте данные и зарегистрируйтесь заново.",

		MsgProfile:                 "👤 ПРОФИЛЬ\n\nФ.И.О: %s\n🆔 Код клиента: %s\n📱 Телефон: %s\n🪪 Паспорт: %s\n📅 Дата рождения: %s\n🔢 ПИНФЛ: %s\n📍 Адрес: %s\n📋 Статус: %s\n🗓 Зарегистрирован: %s",
		MsgNoParcels:               "📭 По вашему коду грузы не найдены.",
		MsgParcel:                  "📦 Трек-код: %s\n🏷 Название: %s\n📦 Пакет: %s\n⚖️ Вес: %.2f кг\n🔢 Количество: %d\n✈️ Рейс: %s\n🆔 Код клиента: %s",
		MsgEnterTrackingCode:       "🔎 Введите трек-код:",
		MsgTrackNotFound:           "❌ Груз с трек-кодом %s не найден.",
		MsgWarehouseAddress:        "🇨🇳 АДРЕС СКЛАДА В КИТАЕ\n\n收货人：%s\n电话：%s\n西安市 雁塔区 丈八沟街道\n高新区丈八六路49号103室中京仓库 (%s)",
		MsgWarehouseConfirm:        "⚠️ ВАЖНО:\nУбедитесь, что адрес указан правильно!\nЗа заказы, отправленные на неподтверждённый адрес, ответственность не несём!\n\nПодтверждаете, что указали адрес правильно?",
		MsgAddressConfirmed:        "✅ Адрес подтверждён. Спасибо!",
		MsgAddressAlreadyConfirmed: "✅ Вы уже подтвердили адрес!",
		MsgAddressRecheck:          "Пожалуйста, внимательно проверьте адрес еще раз.",
		MsgEnterFeedback:           "💬 Напишите ваше сообщение:",
		MsgFeedbackSent:            "✅ Ваше сообщение отправлено. Спасибо!",
		MsgFeedbackReply:           "📩 Ответ на ваше сообщение:\n\n%s",
		MsgContacts:                "📞 Контакты\n\nТелефон: %s\nTelegram: %s",
		MsgLogoutConfirm:           "🚪 Вы действительно хотите выйти?",
		MsgLogoutDone:              "👋 Вы вышли из системы. Нажмите /start, чтобы войти снова.",

		MsgStaffNewApplicant:  "🆕 НОВАЯ РЕГИСТРАЦИЯ\n\n👤 Ф.И.О: %s\n📱 Телефон: %s\n🆔 Паспорт: %s\n📅 Дата рождения: %s\n🔢 ПИНФЛ: %s\n📍 Адрес: %s\n\n🔐 Код клиента: %s\n📅 Регистрация: %s",
		MsgStaffFront:         "📸 Паспорт (ЛИЦЕВАЯ)",
		MsgStaffBack:          "📸 Паспорт (ОБРАТНАЯ)",
		MsgStaffApprovedNote:  "✅ %s подтверждён (админ %d)",
		MsgStaffRejectedNote:  "❌ %s отклонён (админ %d)\nПричина: %s",
		MsgStaffEnterReason:   "✍️ Напишите причину отказа для %s:",
		MsgStaffAlreadyDone:   "ℹ️ По %s решение уже принято: %s",
		MsgStaffUnknownEntry:  "⚠️ Заявка для этого сообщения не найдена.",
		MsgStaffNewFeedback:   "💬 НОВОЕ СООБЩЕНИЕ\n\n👤 %s\n🆔 %s\n📱 %s\n\n📝 Текст:\n%s",
		MsgStaffEnterReply:    "✍️ Напишите текст ответа:",
		MsgStaffReplySent:     "✅ Ответ отправлен.",
		MsgStaffApprovedCard:  "✅ ПОДТВЕРЖДЁННЫЙ КЛИЕНТ\n\n👤 %s\n🆔 %s\n📱 %s",
		MsgStaffDeliveryError: "⚠️ Не удалось доставить сообщение клиенту.",

		MsgAdminPanel:             "🛠 Панель администратора",
		MsgAdminStats:             "📊 СТАТИСТИКА\n\n👥 Всего: %d\n⏳ Ожидают: %d\n✅ Подтверждены: %d\n❌ Отклонены: %d\n📦 Грузы: %d\n📨 Открытые заявки: %d",
		MsgAdminEnterSearch:       "🔍 Введите код клиента или номер телефона:",
		MsgAdminSearchEmpty:       "❌ Ничего не найдено.",
		MsgAdminCustomerCard:      "🆔 %s\n👤 %s\n📱 %s\n🪪 %s\n🔢 %s\n📋 %s\n🗓 %s",
		MsgAdminSendShipments:     "📥 Отправьте файл грузов (.xlsx, .xls или .csv):",
		MsgAdminSendCustomers:     "👥 Отправьте Excel-файл клиентов (.xlsx):",
		MsgAdminWrongFile:         "❌ Можно отправить только файл %s!",
		MsgAdminImportStarted:     "⏳ Импорт начат. Пришлю результат по завершении.",
		MsgAdminShipmentsImported: "✅ Импортировано грузов: %d.",
		MsgAdminCustomersImported: "✅ Импорт завершён.\n\nУспешно: %d\nОшибок: %d",
		MsgAdminImportFailed:      "❌ Ошибка импорта: %s",
		MsgAdminMissingColumns:    "❌ В файле не хватает столбцов: %s",
		MsgAdminFailedRows:        "📄 Строки с ошибками",
		MsgAdminBackup:            "💾 Копия базы данных",
		MsgAdminEnterBroadcast:    "📢 Напишите сообщение для подтверждённых клиентов:",
		MsgAdminBroadcastStarted:  "⏳ Рассылка запущена...",
		MsgAdminBroadcastDone:     "📢 Рассылка завершена.\n\nОтправлено: %d\nОшибок: %d",
		MsgAdminClearConfirm:      "⚠️ Все клиенты будут удалены. Продолжить?",
		MsgAdminCleared:           "🗑 Удалено клиентов: %d.",
	},
}

// T renders key in lang. A key missing in lang falls back to Uzbek; an
// unknown key renders as itself.
func T(lang models.Language, key Key, args ...any) string {
	tmpl, ok := messages[lang][key]
	if !ok {
		tmpl, ok = messages[models.LanguageUz][key]
	}
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// StatusLabel is the short name of a verification status.
func StatusLabel(lang models.Language, status models.VerificationStatus) string {
	switch status {
	case models.StatusApproved:
		return T(lang, MsgLabelApproved)
	case models.StatusRejected:
		return T(lang, MsgLabelRejected)
	case models.StatusPending:
		return T(lang, MsgLabelPending)
	}
	return string(status)
}
