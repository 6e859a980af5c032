// Package i18n provides internationalization support for the storefront service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":       "Invalid request",
			"error.invalid_request_body":  "Invalid request body",
			"error.internal_error":        "An unexpected error occurred",
			"error.unauthorized":          "Unauthorized",
			"error.invalid_credentials":   "Invalid email or password",
			"error.forbidden":             "Forbidden",
			"error.not_found":             "Not found",
			"error.rate_limit_exceeded":   "Too many requests, please try again later",
			"error.conflict":              "Conflict",
			"error.invalid_token":         "Invalid or expired token",
			"error.token_required":        "Authentication token is required",
			"error.timeout":               "Request timed out",
			"error.empty_cart":            "Your cart is empty",
			"error.payment_failed":        "Payment could not be initiated, please try again",
			"error.unknown_bonus_product": "This free gift is not available",
			"error.invalid_discount":      "Invalid discount type or value",

			// Success messages
			"success.order_placed":  "Your order has been placed",
			"success.offer_applied": "Offer applied to your cart",
		},
		"hi": {
			// Error messages
			"error.invalid_request":       "अमान्य अनुरोध",
			"error.invalid_request_body":  "अमान्य अनुरोध सामग्री",
			"error.internal_error":        "एक अप्रत्याशित त्रुटि हुई",
			"error.unauthorized":          "अनधिकृत",
			"error.invalid_credentials":   "ईमेल या पासवर्ड गलत है",
			"error.forbidden":             "निषिद्ध",
			"error.not_found":             "नहीं मिला",
			"error.rate_limit_exceeded":   "बहुत अधिक अनुरोध, कृपया बाद में पुनः प्रयास करें",
			"error.conflict":              "विरोध",
			"error.invalid_token":         "अमान्य या समाप्त टोकन",
			"error.token_required":        "प्रमाणीकरण टोकन आवश्यक है",
			"error.timeout":               "अनुरोध का समय समाप्त हो गया",
			"error.empty_cart":            "आपकी टोकरी खाली है",
			"error.payment_failed":        "भुगतान शुरू नहीं हो सका, कृपया पुनः प्रयास करें",
			"error.unknown_bonus_product": "यह मुफ़्त उपहार उपलब्ध नहीं है",
			"error.invalid_discount":      "अमान्य छूट प्रकार या मान",

			// Success messages
			"success.order_placed":  "आपका ऑर्डर दे दिया गया है",
			"success.offer_applied": "आपकी टोकरी पर ऑफ़र लागू किया गया",
		},
	}
}
