package report

import (
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// mondayLocales maps normalized locale strings to monday locales.
var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"de_de": monday.LocaleDeDE,
	"de_at": monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_fr": monday.LocaleFrFR,
	"fr_ca": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"es_es": monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"it_it": monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_br": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"nl_be": monday.LocaleNlBE,
	"sv":    monday.LocaleSvSE,
	"da":    monday.LocaleDaDK,
	"fi":    monday.LocaleFiFI,
	"nb":    monday.LocaleNbNO,
	"pl":    monday.LocalePlPL,
	"ru":    monday.LocaleRuRU,
	"ja":    monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_tw": monday.LocaleZhTW,
	"ko":    monday.LocaleKoKR,
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(locale, "-", "_"))
}

// mondayLocale returns the date locale for locale, falling back to the
// language part and then to US English.
func mondayLocale(locale string) monday.Locale {
	locale = normalizeLocale(locale)
	if loc, ok := mondayLocales[locale]; ok {
		return loc
	}
	if lang, _, found := strings.Cut(locale, "_"); found {
		if loc, ok := mondayLocales[lang]; ok {
			return loc
		}
	}
	return monday.LocaleEnUS
}

// timestampLayout is the history table's date layout for a monday locale.
func timestampLayout(loc monday.Locale) string {
	switch loc {
	case monday.LocaleEnUS:
		return "Jan 2, 2006 15:04"
	case monday.LocaleDeDE:
		return "2. Jan. 2006 15:04"
	case monday.LocaleJaJP, monday.LocaleZhCN, monday.LocaleZhTW, monday.LocaleKoKR:
		return "2006/01/02 15:04"
	default:
		return "2 Jan 2006 15:04"
	}
}

// numberPrinter returns a printer that groups digits for locale. Unknown
// locales fall back to English.
func numberPrinter(locale string) *message.Printer {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
