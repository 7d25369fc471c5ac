// Package catalog reads and writes item definition files.
//
// Supported formats are YAML (.yaml, .yml), a JSON array or {"items": [...]}
// object (.json) and JSON lines (.jsonl). Any of them may carry a .zst
// suffix for zstd compression.
package catalog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file names without a known suffix.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Format is a catalog file encoding.
type Format string

const (
	YAML  Format = "yaml"
	JSON  Format = "json"
	JSONL Format = "jsonl"
)

// Detect returns the format of a file name and whether it is compressed.
func Detect(name string) (Format, bool, error) {
	lower := strings.ToLower(name)
	compressed := strings.HasSuffix(lower, ".zst")
	lower = strings.TrimSuffix(lower, ".zst")

	switch filepath.Ext(lower) {
	case ".yaml", ".yml":
		return YAML, compressed, nil
	case ".json":
		return JSON, compressed, nil
	case ".jsonl":
		return JSONL, compressed, nil
	}
	return "", false, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
}

// Entry is one item definition.
type Entry struct {
	ID       string   `yaml:"id"`
	Display  string   `yaml:"display,omitempty"`
	Category string   `yaml:"category,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Stack    int      `yaml:"stack,omitempty"`
}

// fill assigns an ID to entries without one: a name derived from the
// display text, or a random UUID when there is no display text either.
func (e *Entry) fill() {
	if e.ID != "" {
		return
	}
	if e.Display != "" {
		e.ID = strings.ToLower(strings.Join(strings.Fields(e.Display), "_"))
		return
	}
	e.ID = uuid.NewString()
}

// Decode reads entries in format f, decompressing first when compressed.
func Decode(r io.Reader, f Format, compressed bool) ([]Entry, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	switch f {
	case YAML:
		entries, err = decodeYAML(data)
	case JSON:
		entries, err = decodeJSON(data)
	case JSONL:
		entries, err = decodeJSONL(data)
	default:
		return nil, fmt.Errorf("%s: %w", f, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].fill()
	}
	return entries, nil
}

// decodeYAML accepts a sequence of entries or a mapping with an items key.
func decodeYAML(data []byte) ([]Entry, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var entries []Entry
	doc := node.Content[0]
	if doc.Kind == yaml.MappingNode {
		var wrapped struct {
			Items []Entry `yaml:"items"`
		}
		if err := doc.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return wrapped.Items, nil
	}
	if err := doc.Decode(&entries); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return entries, nil
}

// decodeJSON accepts an array of entries or an object with an items array.
func decodeJSON(data []byte) ([]Entry, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}

	var arr []*fastjson.Value
	switch v.Type() {
	case fastjson.TypeArray:
		arr, _ = v.Array()
	case fastjson.TypeObject:
		items := v.Get("items")
		if items == nil || items.Type() != fastjson.TypeArray {
			return nil, errors.New(`json: object has no "items" array`)
		}
		arr, _ = items.Array()
	default:
		return nil, fmt.Errorf("json: expected array or object, got %s", v.Type())
	}

	entries := make([]Entry, 0, len(arr))
	for i, item := range arr {
		e, err := entryFromJSON(item)
		if err != nil {
			return nil, fmt.Errorf("json: item %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// decodeJSONL reads one object per line. Blank lines are skipped.
func decodeJSONL(data []byte) ([]Entry, error) {
	var p fastjson.Parser
	var entries []Entry

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		v, err := p.ParseBytes(text)
		if err != nil {
			return nil, fmt.Errorf("jsonl: line %d: %w", line, err)
		}
		e, err := entryFromJSON(v)
		if err != nil {
			return nil, fmt.Errorf("jsonl: line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, sc.Err()
}

// entryFromJSON copies the fields out of v; v is only valid until the
// parser is reused.
func entryFromJSON(v *fastjson.Value) (Entry, error) {
	if v.Type() != fastjson.TypeObject {
		return Entry{}, fmt.Errorf("expected object, got %s", v.Type())
	}
	e := Entry{
		ID:       string(v.GetStringBytes("id")),
		Display:  string(v.GetStringBytes("display")),
		Category: string(v.GetStringBytes("category")),
		Stack:    v.GetInt("stack"),
	}
	for _, t := range v.GetArray("tags") {
		b, err := t.StringBytes()
		if err != nil {
			return Entry{}, fmt.Errorf("tags: %w", err)
		}
		e.Tags = append(e.Tags, string(b))
	}
	return e, nil
}

// Encode writes entries in format f, compressing when compressed is set.
func Encode(w io.Writer, entries []Entry, f Format, compressed bool) error {
	var data []byte
	switch f {
	case YAML:
		out, err := yaml.Marshal(struct {
			Items []Entry `yaml:"items"`
		}{entries})
		if err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
		data = out
	case JSON:
		var a fastjson.Arena
		arr := a.NewArray()
		for i, e := range entries {
			arr.SetArrayItem(i, entryToJSON(&a, e))
		}
		root := a.NewObject()
		root.Set("items", arr)
		data = append(root.MarshalTo(nil), '\n')
	case JSONL:
		var a fastjson.Arena
		for _, e := range entries {
			data = entryToJSON(&a, e).MarshalTo(data)
			data = append(data, '\n')
			a.Reset()
		}
	default:
		return fmt.Errorf("%s: %w", f, ErrUnsupportedFormat)
	}

	if !compressed {
		_, err := w.Write(data)
		return err
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("zstd: %w", err)
	}
	return enc.Close()
}

func entryToJSON(a *fastjson.Arena, e Entry) *fastjson.Value {
	o := a.NewObject()
	o.Set("id", a.NewString(e.ID))
	if e.Display != "" {
		o.Set("display", a.NewString(e.Display))
	}
	if e.Category != "" {
		o.Set("category", a.NewString(e.Category))
	}
	if len(e.Tags) > 0 {
		tags := a.NewArray()
		for i, t := range e.Tags {
			tags.SetArrayItem(i, a.NewString(t))
		}
		o.Set("tags", tags)
	}
	if e.Stack > 1 {
		o.Set("stack", a.NewNumberInt(e.Stack))
	}
	return o
}
