// Package decode unmarshals JSON while tracking the structural path of the
// first mismatch, so a schema error deep inside an envelope reports
// "Data.Operation[0].amount" instead of a bare type error.
package decode

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/boddenberg/tochka-go/internal/domain"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// JSON decodes data into v, which must be a non-nil pointer.
// Failures are returned as *domain.ErrDeserialize carrying the path,
// the inner message and the full raw body.
func JSON(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &domain.ErrDeserialize{Path: ".", Message: "decode target must be a non-nil pointer", Raw: string(data)}
	}

	if !json.Valid(data) {
		var syntaxErr error = json.Unmarshal(data, new(any))
		if syntaxErr == nil {
			syntaxErr = errors.New("invalid JSON")
		}
		return &domain.ErrDeserialize{Path: ".", Message: syntaxErr.Error(), Raw: string(data)}
	}

	if p, msg := walk(data, rv.Type().Elem(), path{}); msg != "" {
		return &domain.ErrDeserialize{Path: p.String(), Message: msg, Raw: string(data)}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &domain.ErrDeserialize{Path: ".", Message: err.Error(), Raw: string(data)}
	}
	return nil
}

// path is a chain of field names and slice indexes.
type path []string

func (p path) field(name string) path {
	return append(p[:len(p):len(p)], name)
}

func (p path) index(i int) path {
	return append(p[:len(p):len(p)], "["+strconv.Itoa(i)+"]")
}

func (p path) String() string {
	if len(p) == 0 {
		return "."
	}
	var b strings.Builder
	for i, seg := range p {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// walk checks raw against t and returns the failing path and message.
// An empty message means raw fits t.
func walk(raw []byte, t reflect.Type, p path) (path, string) {
	raw = bytes.TrimSpace(raw)
	isNull := bytes.Equal(raw, []byte("null"))

	if implementsUnmarshaler(t) {
		if isNull {
			return nil, ""
		}
		target := reflect.New(t)
		if err := json.Unmarshal(raw, target.Interface()); err != nil {
			return p, cleanMessage(err, raw, t)
		}
		return nil, ""
	}

	switch t.Kind() {
	case reflect.Pointer:
		if isNull {
			return nil, ""
		}
		return walk(raw, t.Elem(), p)

	case reflect.Interface:
		return nil, ""

	case reflect.Struct:
		if isNull || raw[0] != '{' {
			return p, fmt.Sprintf("invalid type: %s, expected struct %s", describe(raw), t.Name())
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return p, err.Error()
		}
		for _, f := range fieldsOf(t) {
			val, ok := lookup(obj, f.name)
			if !ok {
				if f.required {
					return p, fmt.Sprintf("missing field `%s`", f.name)
				}
				continue
			}
			ft := t.FieldByIndex(f.index).Type
			if bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
				if f.required {
					return p.field(f.name), fmt.Sprintf("invalid type: null, expected %s", ft)
				}
				continue
			}
			if fp, msg := walk(val, ft, p.field(f.name)); msg != "" {
				return fp, msg
			}
		}
		return nil, ""

	case reflect.Slice:
		if isNull {
			return nil, ""
		}
		if t.Elem().Kind() == reflect.Uint8 && raw[0] == '"' {
			return leaf(raw, t, p)
		}
		if raw[0] != '[' {
			return p, fmt.Sprintf("invalid type: %s, expected a sequence", describe(raw))
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return p, err.Error()
		}
		for i, item := range items {
			if ip, msg := walk(item, t.Elem(), p.index(i)); msg != "" {
				return ip, msg
			}
		}
		return nil, ""

	case reflect.Map:
		if isNull {
			return nil, ""
		}
		if raw[0] != '{' {
			return p, fmt.Sprintf("invalid type: %s, expected a map", describe(raw))
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return p, err.Error()
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if mp, msg := walk(obj[k], t.Elem(), p.field(k)); msg != "" {
				return mp, msg
			}
		}
		return nil, ""

	default:
		if isNull {
			return p, fmt.Sprintf("invalid type: null, expected %s", t.Kind())
		}
		return leaf(raw, t, p)
	}
}

func leaf(raw []byte, t reflect.Type, p path) (path, string) {
	target := reflect.New(t)
	if err := json.Unmarshal(raw, target.Interface()); err != nil {
		return p, cleanMessage(err, raw, t)
	}
	return nil, ""
}

func implementsUnmarshaler(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return pt.Implements(jsonUnmarshalerType) || pt.Implements(textUnmarshalerType)
}

// cleanMessage turns encoding/json errors into a short, path-free message.
func cleanMessage(err error, raw []byte, t reflect.Type) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("invalid type: %s, expected %s", describe(raw), t)
	}
	return strings.TrimPrefix(err.Error(), "json: ")
}

func describe(raw []byte) string {
	if len(raw) == 0 {
		return "empty input"
	}
	switch raw[0] {
	case '"':
		return "string " + string(raw)
	case '{':
		return "map"
	case '[':
		return "sequence"
	case 't', 'f':
		return "boolean `" + string(raw) + "`"
	case 'n':
		return "null"
	default:
		return "number `" + string(raw) + "`"
	}
}

// lookup prefers an exact key and falls back to a case-insensitive match,
// mirroring encoding/json.
func lookup(obj map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

type fieldInfo struct {
	name     string
	index    []int
	required bool
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// fieldsOf lists the JSON-visible fields of t. A field is required unless
// it is a pointer or interface, or its tag carries omitempty.
func fieldsOf(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			for _, inner := range fieldsOf(sf.Type) {
				inner.index = append([]int{i}, inner.index...)
				fields = append(fields, inner)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		kind := sf.Type.Kind()
		optional := strings.Contains(opts, "omitempty") || kind == reflect.Pointer || kind == reflect.Interface
		fields = append(fields, fieldInfo{name: name, index: []int{i}, required: !optional})
	}

	fieldCache.Store(t, fields)
	return fields
}
