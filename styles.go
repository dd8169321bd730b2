package addonpack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"
)

// Reset ends a styled run of text.
const Reset = "§r"

// Colors maps style names to their legacy formatting codes.
var Colors = map[string]string{
	"dark_red":      "§4",
	"red":           "§c",
	"gold":          "§6",
	"yellow":        "§e",
	"dark_green":    "§2",
	"green":         "§a",
	"aqua":          "§b",
	"dark_aqua":     "§3",
	"dark_blue":     "§1",
	"blue":          "§9",
	"light_purple":  "§d",
	"dark_purple":   "§5",
	"white":         "§f",
	"gray":          "§7",
	"dark_gray":     "§8",
	"black":         "§0",
	"obfuscated":    "§k",
	"bold":          "§l",
	"strikethrough": "§m",
	"underline":     "§n",
}

// ColorCode looks up a style by name. Names are matched in snake case, so
// "DarkRed", "dark-red" and "dark_red" are the same style.
func ColorCode(name string) (string, bool) {
	code, ok := Colors[strcase.SnakeCase(name)]
	return code, ok
}

// Segment is one run of text; Color is empty for plain text.
type Segment struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// Text is a pack name or description, either a plain string or a sequence
// of styled segments.
type Text []Segment

// Plain builds an unstyled Text.
func Plain(s string) Text {
	return Text{{Text: s}}
}

// Styled builds a Text from segments; strings become plain segments.
func Styled(parts ...any) Text {
	t := make(Text, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			t = append(t, Segment{Text: v})
		case Segment:
			t = append(t, v)
		default:
			t = append(t, Segment{Text: fmt.Sprint(v)})
		}
	}
	return t
}

func (t Text) IsZero() bool {
	return len(t) == 0
}

// Render returns the text with legacy color codes, each colored segment
// followed by a reset. Unknown colors render the text and the reset only.
func (t Text) Render() string {
	var sb strings.Builder
	for _, s := range t {
		if s.Color == "" {
			sb.WriteString(s.Text)
			continue
		}
		code, _ := ColorCode(s.Color)
		sb.WriteString(code)
		sb.WriteString(s.Text)
		sb.WriteString(Reset)
	}
	return sb.String()
}

// String returns the text without styling.
func (t Text) String() string {
	var sb strings.Builder
	for _, s := range t {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// UnmarshalJSON accepts "name" or ["plain ", {"text": "styled", "color": "gold"}].
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Plain(s)
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("text must be a string or an array of segments: %w", err)
	}
	out := make(Text, 0, len(raw))
	for _, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) > 0 && r[0] == '"' {
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				return err
			}
			out = append(out, Segment{Text: s})
			continue
		}
		var seg Segment
		if err := json.Unmarshal(r, &seg); err != nil {
			return fmt.Errorf("text segment: %w", err)
		}
		out = append(out, seg)
	}
	*t = out
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if len(t) == 1 && t[0].Color == "" {
		return json.Marshal(t[0].Text)
	}
	parts := make([]any, 0, len(t))
	for _, s := range t {
		if s.Color == "" {
			parts = append(parts, s.Text)
		} else {
			parts = append(parts, s)
		}
	}
	return json.Marshal(parts)
}
