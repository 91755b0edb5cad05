package translit

import "unicode"

// Spellings of the Uzbek apostrophe found in typed Latin text. The first two
// are the official oʻ/gʻ sign and tutuq belgisi.
var apostrophes = []string{"ʻ", "ʼ", "'", "‘", "’", "`"}

// Uzbek returns an Engine with the Uzbek Latin and Cyrillic tables.
// Cyrillic→Latin copies Latin and Arabic letters unchanged, since answers
// quote Arabic sources and Latin names; Latin→Cyrillic copies Cyrillic and
// Arabic.
func Uzbek(opts ...Option) *Engine {
	return New(
		NewTable(latinToCyrillic(), unicode.Cyrillic, unicode.Arabic),
		NewTable(cyrillicToLatin(), unicode.Latin, unicode.Arabic),
		opts...,
	)
}

func latinToCyrillic() []Rule {
	var rules []Rule
	for _, a := range apostrophes {
		rules = append(rules,
			Rule{From: "yo" + a, To: "йў"},
			Rule{From: "s" + a + "h", To: "сҳ"},
			Rule{From: "o" + a, To: "ў"},
			Rule{From: "g" + a, To: "ғ"},
			Rule{From: a, To: "ъ", Position: WordInner},
		)
	}
	rules = append(rules,
		Rule{From: "sh", To: "ш"},
		Rule{From: "ch", To: "ч"},
		Rule{From: "yo", To: "ё"},
		Rule{From: "yu", To: "ю"},
		Rule{From: "ya", To: "я"},
		Rule{From: "ye", To: "е", Position: WordStart},
		Rule{From: "e", To: "э", Position: WordStart},
		Rule{From: "e", To: "е"},
		Rule{From: "a", To: "а"},
		Rule{From: "b", To: "б"},
		Rule{From: "d", To: "д"},
		Rule{From: "f", To: "ф"},
		Rule{From: "g", To: "г"},
		Rule{From: "h", To: "ҳ"},
		Rule{From: "i", To: "и"},
		Rule{From: "j", To: "ж"},
		Rule{From: "k", To: "к"},
		Rule{From: "l", To: "л"},
		Rule{From: "m", To: "м"},
		Rule{From: "n", To: "н"},
		Rule{From: "o", To: "о"},
		Rule{From: "p", To: "п"},
		Rule{From: "q", To: "қ"},
		Rule{From: "r", To: "р"},
		Rule{From: "s", To: "с"},
		Rule{From: "t", To: "т"},
		Rule{From: "u", To: "у"},
		Rule{From: "v", To: "в"},
		Rule{From: "x", To: "х"},
		Rule{From: "y", To: "й"},
		Rule{From: "z", To: "з"},
		// No letters of their own; both collapse on the way back.
		Rule{From: "c", To: "с"},
		Rule{From: "w", To: "в"},
	)
	return rules
}

func cyrillicToLatin() []Rule {
	return []Rule{
		{From: "сҳ", To: "sʼh"},
		{From: "ш", To: "sh"},
		{From: "ч", To: "ch"},
		{From: "ў", To: "oʻ"},
		{From: "ғ", To: "gʻ"},
		{From: "ё", To: "yo"},
		{From: "ю", To: "yu"},
		{From: "я", To: "ya"},
		{From: "е", To: "ye", Position: WordStart},
		{From: "е", To: "e"},
		{From: "э", To: "e"},
		{From: "ъ", To: "ʼ"},
		{From: "ь", To: ""},
		{From: "ц", To: "ts"},
		{From: "щ", To: "sh"},
		{From: "ы", To: "i"},
		{From: "а", To: "a"},
		{From: "б", To: "b"},
		{From: "в", To: "v"},
		{From: "г", To: "g"},
		{From: "д", To: "d"},
		{From: "ж", To: "j"},
		{From: "з", To: "z"},
		{From: "и", To: "i"},
		{From: "й", To: "y"},
		{From: "к", To: "k"},
		{From: "қ", To: "q"},
		{From: "л", To: "l"},
		{From: "м", To: "m"},
		{From: "н", To: "n"},
		{From: "о", To: "o"},
		{From: "п", To: "p"},
		{From: "р", To: "r"},
		{From: "с", To: "s"},
		{From: "т", To: "t"},
		{From: "у", To: "u"},
		{From: "ф", To: "f"},
		{From: "х", To: "x"},
		{From: "ҳ", To: "h"},
	}
}
