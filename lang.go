package addonpack

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/boardzilla/boardzilla-addonpack/jsondoc"
)

// Translation is one key=value line of a lang file.
type Translation struct {
	Key   string
	Value string
}

// Lang holds entries for texts/<Path>.lang. Unless Replace is set they are
// appended to whatever the pack's lang sources already produced.
type Lang struct {
	Path    string
	Data    string
	Replace bool
}

func NewLang(path string, entries []Translation, replace bool) *Lang {
	return &Lang{Path: path, Data: langData(entries), Replace: replace}
}

// langData joins entries as key=value lines without a trailing newline.
func langData(entries []Translation) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Key)
		sb.WriteByte('=')
		sb.WriteString(e.Value)
	}
	return sb.String()
}

// merge applies the entry to existing file content.
func (l *Lang) merge(existing string, exists bool) string {
	if !exists || l.Replace {
		return l.Data
	}
	return existing + "\n" + l.Data
}

// langFileName maps a source name like "en_us.json" to "en_US.lang".
func langFileName(rel string) string {
	rel = strings.TrimSuffix(rel, ".json") + ".lang"
	i := strings.IndexByte(rel, '_')
	if i < 0 {
		return rel
	}
	j := i + 1
	for j < len(rel) && isASCIILetter(rel[j]) {
		j++
	}
	return rel[:i+1] + strings.ToUpper(rel[i+1:j]) + rel[j:]
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// readLangSource reads a flat {"key": "value"} lang source, keeping the
// order of its keys.
func readLangSource(b []byte) ([]Translation, error) {
	if !gjson.ValidBytes(b) {
		return nil, jsondoc.ErrInvalidJSON
	}
	var out []Translation
	gjson.ParseBytes(b).ForEach(func(k, v gjson.Result) bool {
		out = append(out, Translation{Key: k.String(), Value: v.String()})
		return true
	})
	return out, nil
}
