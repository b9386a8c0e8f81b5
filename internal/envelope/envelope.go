// file: internal/envelope/envelope.go
// version: 1.1.0
// guid: 8d2f4a6b-1c3e-4d5f-9a7b-6e8c0d2f4a6b

package envelope

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// The backend wraps list payloads in several inconsistent envelope shapes,
// from `{"data":[[{"documents":[...],"count":n}]]}` down to a bare JSON array.
// Normalize tries the known shapes in a fixed precedence order and flattens
// the first one that matches. The order matters: the doubly-nested documents
// shape and the meta-bearing shapes look like prefixes of the plain flat
// shape, so the flat shape must be tried after them.

// Result is the flattened form of a list envelope. Data is always a valid
// JSON array (`[]` when nothing matched). Recognized reports whether any
// known shape matched; callers decide whether to log the raw envelope.
type Result struct {
	Data        json.RawMessage
	Total       int
	CurrentPage int
	LastPage    int
	Recognized  bool
}

var emptyArray = json.RawMessage("[]")

type shape struct {
	name    string
	match   func(env gjson.Result) bool
	extract func(env gjson.Result) Result
}

// Ordered per the precedence above. First match wins.
var listShapes = []shape{
	{"documents", matchDocuments, extractDocuments},
	{"nested-meta", matchNestedMeta, extractNestedMeta},
	{"flat-meta", matchFlatMeta, extractFlatMeta},
	{"flat", matchFlat, extractFlat},
	{"bare-list", matchBareList, extractBareList},
}

// Normalize flattens a raw response body into a Result. It is total over all
// inputs: invalid JSON, nulls, scalars, and unknown nesting all degrade to an
// empty unrecognized Result. It never panics and never mutates raw.
func Normalize(raw []byte) Result {
	if !gjson.ValidBytes(raw) {
		return Result{Data: emptyArray}
	}
	env := gjson.ParseBytes(raw)
	for _, s := range listShapes {
		if s.match(env) {
			return s.extract(env)
		}
	}
	return Result{Data: emptyArray}
}

// Shape 1: data[0][0] is an object carrying a documents list plus an
// optional count.
func matchDocuments(env gjson.Result) bool {
	outer := env.Get("data")
	if !outer.IsArray() || len(outer.Array()) == 0 {
		return false
	}
	inner := outer.Array()[0]
	if !inner.IsArray() || len(inner.Array()) == 0 {
		return false
	}
	first := inner.Array()[0]
	return first.IsObject() && first.Get("documents").IsArray()
}

func extractDocuments(env gjson.Result) Result {
	holder := env.Get("data").Array()[0].Array()[0]
	docs := holder.Get("documents")
	return Result{
		Data:        json.RawMessage(docs.Raw),
		Total:       intOr(holder.Get("count"), len(docs.Array())),
		CurrentPage: 1,
		LastPage:    1,
		Recognized:  true,
	}
}

// Shape 2: data.data list plus data.meta_data {count,page,limit}.
func matchNestedMeta(env gjson.Result) bool {
	return env.Get("data.data").IsArray() && env.Get("data.meta_data").Exists()
}

func extractNestedMeta(env gjson.Result) Result {
	items := env.Get("data.data")
	meta := env.Get("data.meta_data")
	total := intOr(meta.Get("count"), len(items.Array()))
	limit := intOr(meta.Get("limit"), 10)
	if limit <= 0 {
		limit = 10
	}
	return Result{
		Data:        json.RawMessage(items.Raw),
		Total:       total,
		CurrentPage: intOr(meta.Get("page"), 1),
		LastPage:    int(math.Ceil(float64(total) / float64(limit))),
		Recognized:  true,
	}
}

// Shape 3: top-level data list plus meta {total,current_page,last_page}.
func matchFlatMeta(env gjson.Result) bool {
	return env.Get("data").IsArray() && env.Get("meta").Exists()
}

func extractFlatMeta(env gjson.Result) Result {
	items := env.Get("data")
	meta := env.Get("meta")
	return Result{
		Data:        json.RawMessage(items.Raw),
		Total:       intOr(meta.Get("total"), len(items.Array())),
		CurrentPage: intOr(meta.Get("current_page"), 1),
		LastPage:    intOr(meta.Get("last_page"), 1),
		Recognized:  true,
	}
}

// Shape 4: top-level data list, no metadata at all.
func matchFlat(env gjson.Result) bool {
	return env.Get("data").IsArray()
}

func extractFlat(env gjson.Result) Result {
	items := env.Get("data")
	return Result{
		Data:        json.RawMessage(items.Raw),
		Total:       len(items.Array()),
		CurrentPage: 1,
		LastPage:    1,
		Recognized:  true,
	}
}

// Shape 5: the envelope itself is the list.
func matchBareList(env gjson.Result) bool {
	return env.IsArray()
}

func extractBareList(env gjson.Result) Result {
	return Result{
		Data:        json.RawMessage(env.Raw),
		Total:       len(env.Array()),
		CurrentPage: 1,
		LastPage:    1,
		Recognized:  true,
	}
}

// intOr mirrors the backend contract's "?? fallback" semantics: absent and
// null both defer to the fallback, anything else is coerced to an int.
func intOr(r gjson.Result, fallback int) int {
	if !r.Exists() || r.Type == gjson.Null {
		return fallback
	}
	return int(r.Int())
}

// One follows the fixed data[0][0][0] path used by single-record endpoints
// and returns the record's raw JSON, or nil when any step is not the
// expected kind.
func One(raw []byte) json.RawMessage {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	cur := gjson.ParseBytes(raw).Get("data")
	for i := 0; i < 2; i++ {
		if !cur.IsArray() || len(cur.Array()) == 0 {
			return nil
		}
		cur = cur.Array()[0]
	}
	if !cur.IsArray() || len(cur.Array()) == 0 {
		return nil
	}
	rec := cur.Array()[0]
	if !rec.IsObject() {
		return nil
	}
	return json.RawMessage(rec.Raw)
}

// NestedList follows data[0][0].data, a list nested one level differently
// than the documents shape. Mismatches yield an empty array, never an error.
func NestedList(raw []byte) json.RawMessage {
	if !gjson.ValidBytes(raw) {
		return emptyArray
	}
	outer := gjson.ParseBytes(raw).Get("data")
	if !outer.IsArray() || len(outer.Array()) == 0 {
		return emptyArray
	}
	inner := outer.Array()[0]
	if !inner.IsArray() || len(inner.Array()) == 0 {
		return emptyArray
	}
	holder := inner.Array()[0]
	if !holder.IsObject() {
		return emptyArray
	}
	items := holder.Get("data")
	if !items.IsArray() {
		return emptyArray
	}
	return json.RawMessage(items.Raw)
}

// DecodeList unmarshals a normalized Result's array into typed records.
// The returned slice is never nil.
func DecodeList[T any](res Result) ([]T, error) {
	if len(res.Data) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode normalized list: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// DecodeOne unmarshals a single extracted record. A nil record (path
// mismatch upstream) decodes to nil without error.
func DecodeOne[T any](raw json.RawMessage) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &out, nil
}
