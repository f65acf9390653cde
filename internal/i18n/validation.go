package i18n

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/validators"
)

var validationTexts = map[models.Language]map[validators.Code]string{
	models.LanguageUz: {
		validators.CodeEmpty:           "Qiymat kiritilmagan.",
		validators.CodePhoneFormat:     "Telefon raqami noto'g'ri formatda. Masalan: 90 123 45 67",
		validators.CodePhoneLength:     "Telefon raqami %d ta raqamdan iborat bo'lishi kerak.",
		validators.CodePhoneMobile:     "Telefon raqami 9 bilan boshlanuvchi mobil raqam bo'lishi kerak.",
		validators.CodeDocumentLength:  "Pasport raqami %d ta belgidan iborat bo'lishi kerak.",
		validators.CodeDocumentPrefix:  "%s seriyasi qabul qilinmaydi. Ruxsat etilgan: %s yoki %s bilan boshlanuvchi seriyalar.",
		validators.CodeDocumentDigits:  "Seriyadan keyin 7 ta raqam bo'lishi kerak.",
		validators.CodeDocumentSeries:  "Pasport seriyasi ikki harf bilan boshlanishi kerak.",
		validators.CodePinflLength:     "PINFL %d ta raqamdan iborat bo'lishi kerak.",
		validators.CodePinflDigit:      "PINFLning uchinchi raqami %s bo'lishi mumkin emas. Ruxsat etilgan: %s.",
		validators.CodeDateFormat:      "Sana noto'g'ri. Format: kk.oo.yyyy",
		validators.CodeTooYoung:        "Ro'yxatdan o'tish uchun yoshingiz kamida %d bo'lishi kerak.",
		validators.CodeTooOld:          "Tug'ilgan sana noto'g'ri ko'rinadi.",
		validators.CodeNameTooShort:    "Ism kamida %d ta belgidan iborat bo'lishi kerak.",
		validators.CodeAddressTooShort: "Manzil kamida %d ta belgidan iborat bo'lishi kerak.",
	},
	models.LanguageRu: {
		validators.CodeEmpty:           "Значение не указано.",
		validators.CodePhoneFormat:     "Неверный формат номера. Например: 90 123 45 67",
		validators.CodePhoneLength:     "Номер телефона должен содержать %d цифр.",
		validators.CodePhoneMobile:     "Номер должен быть мобильным и начинаться с 9.",
		validators.CodeDocumentLength:  "Номер паспорта должен содержать %d символов.",
		validators.CodeDocumentPrefix:  "Серия %s не принимается. Допустимы: %s или серии, начинающиеся с %s.",
		validators.CodeDocumentDigits:  "После серии должно быть 7 цифр.",
		validators.CodeDocumentSeries:  "Серия паспорта должна начинаться с двух букв.",
		validators.CodePinflLength:     "ПИНФЛ должен содержать %d цифр.",
		validators.CodePinflDigit:      "Третья цифра ПИНФЛ не может быть %s. Допустимы: %s.",
		validators.CodeDateFormat:      "Неверная дата. Формат: дд.мм.гггг",
		validators.CodeTooYoung:        "Для регистрации вам должно быть не меньше %d лет.",
		validators.CodeTooOld:          "Дата рождения выглядит неверной.",
		validators.CodeNameTooShort:    "Имя должно содержать не менее %d символов.",
		validators.CodeAddressTooShort: "Адрес должен содержать не менее %d символов.",
	},
}

// ValidationMessage renders err for the user. Errors that are not
// validation failures render as the general error text.
func ValidationMessage(lang models.Language, err error) string {
	var verr *validators.Error
	if !errors.As(err, &verr) {
		return T(lang, MsgErrorGeneral)
	}

	tmpl, ok := validationTexts[lang][verr.Code]
	if !ok {
		tmpl, ok = validationTexts[models.LanguageUz][verr.Code]
	}
	if !ok {
		return verr.Error()
	}
	if len(verr.Args) == 0 {
		return "❌ " + tmpl
	}
	return "❌ " + fmt.Sprintf(tmpl, verr.Args...)
}
