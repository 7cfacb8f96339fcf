package loader

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

var errMissingClosingDelimiter = errors.New("front matter opening delimiter found but closing delimiter is missing")

// SplitFrontMatter separates `---` delimited YAML front matter from the
// markdown body. If the document does not start with a delimiter, had is
// false and body is the full input. Both \n and \r\n newline styles are
// accepted.
func SplitFrontMatter(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, errMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// ParseFrontMatter parses raw YAML front matter (without delimiters) into a
// map. Empty input yields an empty map, never nil.
func ParseFrontMatter(fm []byte) (map[string]any, error) {
	if len(fm) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
