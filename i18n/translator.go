package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "min", "max" or "name").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			msg = "型が不正です"
		case "invalid_enum":
			msg = "未知のメタデータ種別です"
		case "invalid_format":
			msg = "形式が不正です"
		case "required":
			msg = "必須項目が不足しています"
		case "too_short":
			msg = "短すぎます (最小 {min})"
		case "too_long":
			msg = "長すぎます (最大 {max})"
		case "too_small":
			msg = "少なすぎます (最小 {min})"
		case "too_big":
			msg = "多すぎます (最大 {max})"
		case "pattern":
			msg = "a-z、0-9、_ のみ使用できます"
		case "overflow":
			msg = "値が範囲外です"
		case "duplicate":
			msg = "重複しています"
		case "reserved_name":
			msg = "予約された名前です"
		case "unknown_field":
			msg = "そのようなフィールドはありません ({name})"
		case "argument_conflict":
			msg = "マップとキーワード引数は同時に指定できません"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			msg = "invalid type"
		case "invalid_enum":
			msg = "unknown metadata type"
		case "invalid_format":
			msg = "invalid format"
		case "required":
			msg = "required value missing"
		case "too_short":
			msg = "must be at least {min} characters long"
		case "too_long":
			msg = "must be at most {max} characters long"
		case "too_small":
			msg = "at least {min} required"
		case "too_big":
			msg = "at most {max} allowed"
		case "pattern":
			msg = "only a-z, 0-9, or _ characters can be used"
		case "overflow":
			msg = "value out of range"
		case "duplicate":
			msg = "duplicate"
		case "reserved_name":
			msg = "reserved name"
		case "unknown_field":
			msg = "no such field ({name})"
		case "argument_conflict":
			msg = "only a mapping or keyword arguments can be provided, not both"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand substitutes {key} placeholders. Unknown placeholders are dropped
// together with a surrounding " (...)" group.
func expand(msg string, data map[string]string) string {
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	for {
		i := strings.IndexByte(msg, '{')
		if i < 0 {
			return msg
		}
		j := strings.IndexByte(msg[i:], '}')
		if j < 0 {
			return msg
		}
		if k := strings.LastIndex(msg[:i], " ("); k >= 0 && strings.HasPrefix(msg[i+j+1:], ")") {
			msg = msg[:k] + msg[i+j+2:]
			continue
		}
		msg = strings.Join(strings.Fields(msg[:i]+msg[i+j+1:]), " ")
	}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
