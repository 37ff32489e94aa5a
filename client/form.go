package client

import "github.com/praxislegal/praxis/internal/domain"

// FormAdapter translates between a record's nested JSON shape and the flat
// key space of a modal form. Localized fields expand into one input per
// locale ("name" becomes "name.en" and "name.ar") and collapse back on
// submit; the two directions are symmetric.
type FormAdapter struct {
	// LocalizedFields names the record fields holding per-locale objects.
	LocalizedFields []string
	// Locales defaults to English and Arabic when empty.
	Locales []string
}

func (a FormAdapter) locales() []string {
	if len(a.Locales) > 0 {
		return a.Locales
	}
	return []string{domain.LocaleEnglish, domain.LocaleArabic}
}

func (a FormAdapter) isLocalized(field string) bool {
	for _, name := range a.LocalizedFields {
		if name == field {
			return true
		}
	}
	return false
}

// Flatten expands a decoded record into flat form values. Localized fields
// contribute one entry per locale; a plain-string localized value seeds every
// locale input with that string. Non-string scalars pass through a display
// conversion identical to table cells, minus the placeholder.
func (a FormAdapter) Flatten(record map[string]any) map[string]string {
	flat := make(map[string]string, len(record))
	for field, value := range record {
		if !a.isLocalized(field) {
			if s, ok := value.(string); ok {
				flat[field] = s
			} else if value != nil {
				if rendered := (Table{}).display(value); rendered != domain.EmptyCell {
					flat[field] = rendered
				}
			}
			continue
		}

		translations := map[string]string{}
		switch v := value.(type) {
		case string:
			for _, locale := range a.locales() {
				translations[locale] = v
			}
		case map[string]any:
			for locale, raw := range v {
				if s, ok := raw.(string); ok {
					translations[locale] = s
				}
			}
		}
		for _, locale := range a.locales() {
			flat[field+"."+locale] = translations[locale]
		}
	}
	return flat
}

// Reassemble rebuilds the nested record from flat form values. A localized
// field whose every locale input is empty is omitted entirely, so the server
// sees "not provided" rather than an object of empty strings.
func (a FormAdapter) Reassemble(flat map[string]string) map[string]any {
	record := make(map[string]any, len(flat))

	for _, field := range a.LocalizedFields {
		translations := map[string]any{}
		for _, locale := range a.locales() {
			if value := flat[field+"."+locale]; value != "" {
				translations[locale] = value
			}
		}
		if len(translations) > 0 {
			record[field] = translations
		}
	}

	for key, value := range flat {
		if field, _, localized := cutLocaleSuffix(key, a); localized && a.isLocalized(field) {
			continue
		}
		record[key] = value
	}
	return record
}

// cutLocaleSuffix splits "name.en" into ("name", "en", true) when the suffix
// is one of the adapter's locales.
func cutLocaleSuffix(key string, a FormAdapter) (field string, locale string, ok bool) {
	for _, candidate := range a.locales() {
		suffix := "." + candidate
		if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
			return key[:len(key)-len(suffix)], candidate, true
		}
	}
	return key, "", false
}
