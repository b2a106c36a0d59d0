package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// LocalizedText многоязычный текст: отображение локаль -> строка.
// Сервер присылает либо объект {"en": "...", "fr": "..."}, либо простую строку.
type LocalizedText map[string]string

// Resolve возвращает текст для локали с цепочкой фолбэков:
// запрошенная локаль -> "en" -> первое доступное значение.
func (t LocalizedText) Resolve(locale string) string {
	if len(t) == 0 {
		return ""
	}
	if v, ok := t[locale]; ok && v != "" {
		return v
	}
	if v, ok := t["en"]; ok && v != "" {
		return v
	}
	// Сортируем ключи, чтобы выбор был детерминированным
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// UnmarshalJSON принимает как объект локалей, так и простую строку.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var asMap map[string]string
	if err := json.Unmarshal(data, &asMap); err == nil {
		*t = asMap
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}
	*t = LocalizedText{"en": asString}
	return nil
}

// BlockProperties свойства поля формы.
type BlockProperties struct {
	Label       LocalizedText `json:"label,omitempty"`
	IsRequired  bool          `json:"isRequired,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	HelpText    string        `json:"helpText,omitempty"`
}

// Block обобщённое поле формы: определение + собранное значение.
// Используется и в формах бронирования, и в чекауте магазина.
type Block struct {
	ID         string          `json:"id,omitempty"`
	Key        string          `json:"key"`
	Type       string          `json:"type"`
	Properties BlockProperties `json:"properties"`
	Value      any             `json:"value"`
}

// Label возвращает подпись поля для локали.
// Если подписи нет, ключ преобразуется в читаемый вид.
func (b Block) Label(locale string) string {
	if s := b.Properties.Label.Resolve(locale); s != "" {
		return s
	}
	words := strings.Split(strings.ReplaceAll(b.Key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// NormalizeValue заворачивает скалярное значение в массив из одного
// элемента: сервер ожидает единый массивный формат при отправке.
func (b Block) NormalizeValue() Block {
	switch v := b.Value.(type) {
	case nil:
		b.Value = []any{}
	case []any:
		b.Value = v
	default:
		b.Value = []any{v}
	}
	return b
}

// WrapBlockValues приводит значения всех блоков к массивному виду.
func WrapBlockValues(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.NormalizeValue())
	}
	return out
}
