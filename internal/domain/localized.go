package domain

import (
	"encoding/json"
	"fmt"
)

const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"

	// EmptyCell is displayed wherever a value resolves to nothing.
	EmptyCell = "-"
)

// LocalizedText is a tagged variant over the two shapes localized values
// arrive in from upstream systems: a plain string, or a per-locale mapping
// such as {"en": "Supreme Court", "ar": "المحكمة العليا"}. Normalizing at the
// ingestion boundary keeps downstream code from ever branching on shape.
type LocalizedText struct {
	Plain        string
	Translations map[string]string
}

// PlainText wraps an untranslated string.
func PlainText(s string) LocalizedText {
	return LocalizedText{Plain: s}
}

// Translated builds a localized value from per-locale strings. Empty locale
// entries are dropped rather than stored as explicit empty strings.
func Translated(entries map[string]string) LocalizedText {
	cleaned := make(map[string]string, len(entries))
	for locale, value := range entries {
		if value == "" {
			continue
		}
		cleaned[locale] = value
	}
	if len(cleaned) == 0 {
		cleaned = nil
	}
	return LocalizedText{Translations: cleaned}
}

// IsZero reports whether the value carries no text in any locale.
func (t LocalizedText) IsZero() bool {
	return t.Plain == "" && len(t.Translations) == 0
}

// Resolve returns the display string for the requested locale, falling back
// through en, then ar, then the empty-cell placeholder. The fallback order is
// load-bearing: internationalized displays break silently if it changes.
func (t LocalizedText) Resolve(locale string) string {
	if t.Plain != "" {
		return t.Plain
	}
	if v := t.Translations[locale]; v != "" {
		return v
	}
	if v := t.Translations[LocaleEnglish]; v != "" {
		return v
	}
	if v := t.Translations[LocaleArabic]; v != "" {
		return v
	}
	return EmptyCell
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.Plain != "" {
		return json.Marshal(t.Plain)
	}
	if t.Translations == nil {
		return json.Marshal(map[string]string{})
	}
	return json.Marshal(t.Translations)
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	*t = LocalizedText{}
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		t.Plain = plain
		return nil
	}
	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("localized text must be a string or a locale mapping: %w", err)
	}
	*t = Translated(translations)
	return nil
}
