package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data provides the values substituted for {placeholders} in the message
// (for example "codec", "key" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"not_array":      "{codec} cannot deserialize something that is not an array.",
		"not_object":     "{codec} cannot deserialize something that is not an object.",
		"null":           "{codec} cannot deserialize null.",
		"missing_key":    "{codec} cannot {op} object without key {key}.",
		"unknown_key":    "{codec} does not allow unknown key {key}.",
		"field":          "{codec} encountered an error while {doing} value with key {key}:",
		"element":        "{codec} encountered an error while {doing} element at index {index}:",
		"invalid_type":   "{codec} can only {op} objects of type \"{expected}\", not {kind}.",
		"invalid_enum":   "{codec} (allowedValues: {allowed}) does not allow the value \"{value}\".",
		"invalid_format": "{codec} cannot {op} {value} into {expected}",
	},
	"ja": {
		"not_array":      "{codec} は配列以外をデシリアライズできません。",
		"not_object":     "{codec} はオブジェクト以外をデシリアライズできません。",
		"null":           "{codec} は null をデシリアライズできません。",
		"missing_key":    "{codec} はキー {key} のないオブジェクトを処理できません ({op})。",
		"unknown_key":    "{codec} は未知のキー {key} を許可しません。",
		"field":          "{codec} でキー {key} の値の処理中にエラーが発生しました ({op}):",
		"element":        "{codec} でインデックス {index} の要素の処理中にエラーが発生しました ({op}):",
		"invalid_type":   "{codec} は型 \"{expected}\" のみ処理できます ({kind} が渡されました)。",
		"invalid_enum":   "{codec} (許可値: {allowed}) は値 \"{value}\" を許可しません。",
		"invalid_format": "{codec} は {value} を {expected} に変換できません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return Expand(tmpl, data)
}

// Expand substitutes {name} placeholders in tmpl with values from data.
// Unknown placeholders are left as-is.
func Expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
