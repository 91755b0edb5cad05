package agent

import (
	"fmt"

	"github.com/fwojciec/fatvo"
)

const (
	noticeConverted           = "Kiril yozuvga o'girildi: %s"
	noticeQuestionUnconverted = "Savolni kiril yozuvga o'girib bo'lmadi, u o'zgarishsiz yuborildi."
	noticeAnswerUnconverted   = "Javobni lotin yozuvga o'girib bo'lmadi, u asl yozuvda ko'rsatilmoqda."
)

var diagnostics = map[fatvo.Failure]string{
	fatvo.FailureCredentialMissing: "OPENAI_API_KEY yoki OPENAI_ASSISTANT_ID topilmadi. " +
		"Ularni .env faylida yoki secrets.toml da ko'rsating.",
	fatvo.FailureCredentialInvalid: "API kalit noto'g'ri yoki eskirgan. " +
		"Kalit sk- bilan boshlanishini va hali faolligini tekshiring, so'ng dasturni qayta ishga tushiring.",
	fatvo.FailureThreadCreation:    "Suhbat yaratib bo'lmadi. Iltimos, qayta urinib ko'ring.",
	fatvo.FailureRunFailed:         "Xatolik yuz berdi: %s",
	fatvo.FailureRunTimedOut:       "Javob kutish vaqti tugadi. Iltimos, biroz kuting va qayta urinib ko'ring.",
	fatvo.FailureRunRequiresAction: "Assistent qo'shimcha ma'lumot so'ramoqda. Iltimos, savolni qayta yuboring.",
	fatvo.FailureRemote:            "Xizmat bilan bog'lanishda xatolik: %s",
	fatvo.FailureCancelled:         "So'rov bekor qilindi.",
	fatvo.FailureInternal:          "Kutilmagan xatolik yuz berdi. Suhbatni davom ettirishingiz mumkin.",
}

// Diagnostic returns the user-facing text for a failure class. detail fills
// in the remote-reported reason where the class has one.
func Diagnostic(f fatvo.Failure, detail string) string {
	text, ok := diagnostics[f]
	if !ok {
		text = diagnostics[fatvo.FailureInternal]
	}
	switch f {
	case fatvo.FailureRunFailed, fatvo.FailureRemote:
		if detail == "" {
			detail = "noma'lum sabab"
		}
		return fmt.Sprintf(text, detail)
	}
	return text
}
