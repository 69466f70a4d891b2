package storage

import "encoding/json"

// configParser tries to read slot paths from one config shape
type configParser struct {
	name  string
	parse func(data []byte) ([]string, bool)
}

// configParsers are tried in order; the first match wins
var configParsers = []configParser{
	{name: "current", parse: objectArrayParser("lastOpenedFiles")},
	{name: "legacy-selected-files", parse: objectArrayParser("selected_files")},
	{name: "legacy-array", parse: parseBareArray},
	{name: "legacy-single", parse: parseSingleFile},
}

// objectArrayParser matches an object whose key holds an array of strings
func objectArrayParser(key string) func([]byte) ([]string, bool) {
	return func(data []byte) ([]string, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, false
		}
		raw, ok := obj[key]
		if !ok {
			return nil, false
		}
		var paths []string
		if err := json.Unmarshal(raw, &paths); err != nil || paths == nil {
			return nil, false
		}
		return paths, true
	}
}

func parseBareArray(data []byte) ([]string, bool) {
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil || paths == nil {
		return nil, false
	}
	return paths, true
}

// parseSingleFile reads the oldest format, a lone "selected_file" string
func parseSingleFile(data []byte) ([]string, bool) {
	var obj struct {
		SelectedFile *string `json:"selected_file"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.SelectedFile == nil {
		return nil, false
	}
	return []string{*obj.SelectedFile}, true
}

// parsePaths runs the parsers in order and reports which one matched
func parsePaths(data []byte) (paths []string, format string, ok bool) {
	for _, p := range configParsers {
		if paths, ok := p.parse(data); ok {
			return paths, p.name, true
		}
	}
	return nil, "", false
}
