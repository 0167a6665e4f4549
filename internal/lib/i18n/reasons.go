package i18n

import (
	"strings"

	"lead_gen/internal/services/matching"
)

// Lang is a supported UI language.
type Lang string

const (
	LangEN Lang = "en"
	LangAR Lang = "ar"
)

// reasonMessages holds the localized warning text per mismatch reason. The
// wire codes themselves never change; only the rendered text does.
var reasonMessages = map[matching.ReasonCode]map[Lang]string{
	matching.ReasonBudgetExceeded: {
		LangEN: "This property is above your stated budget.",
		LangAR: "هذا العقار أعلى من الميزانية التي حددتها.",
	},
	matching.ReasonLocationMismatch: {
		LangEN: "This property is outside your preferred locations.",
		LangAR: "هذا العقار خارج المناطق المفضلة لديك.",
	},
	matching.ReasonTypeMismatch: {
		LangEN: "This property type does not match your preferences.",
		LangAR: "نوع هذا العقار لا يطابق تفضيلاتك.",
	},
}

// ReasonMessage resolves a mismatch reason to text in the requested language.
// Unknown codes and languages fall back to the raw code so the client always
// has something to render.
func ReasonMessage(code matching.ReasonCode, lang Lang) string {
	byLang, ok := reasonMessages[code]
	if !ok {
		return string(code)
	}
	if msg, ok := byLang[lang]; ok {
		return msg
	}
	if msg, ok := byLang[LangEN]; ok {
		return msg
	}
	return string(code)
}

// ReasonMessages resolves a list of reasons, preserving order.
func ReasonMessages(codes []matching.ReasonCode, lang Lang) []string {
	messages := make([]string, 0, len(codes))
	for _, code := range codes {
		messages = append(messages, ReasonMessage(code, lang))
	}
	return messages
}

// ParseLang maps an Accept-Language-ish value to a supported language,
// defaulting to English. Language tags are case-insensitive.
func ParseLang(s string) Lang {
	if len(s) >= 2 && strings.EqualFold(s[:2], "ar") {
		return LangAR
	}
	return LangEN
}
