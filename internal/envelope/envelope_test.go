// file: internal/envelope/envelope_test.go
// version: 1.1.0
// guid: 5b7d9f1a-3c5e-4a6b-8d0f-2a4c6e8b0d2f

package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func decode(t *testing.T, res Result) []record {
	t.Helper()
	out, err := DecodeList[record](res)
	require.NoError(t, err)
	return out
}

func TestNormalizeDocumentsShape(t *testing.T) {
	raw := []byte(`{"data":[[{"documents":[{"_id":"a"}],"count":5}]]}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 1, res.LastPage)

	items := decode(t, res)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestNormalizeDocumentsShapeCountFallback(t *testing.T) {
	raw := []byte(`{"data":[[{"documents":[{"_id":"a"},{"_id":"b"}]}]]}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 2, res.Total)
}

func TestNormalizeNestedMetaShape(t *testing.T) {
	raw := []byte(`{"data":{"data":[{"_id":"a"},{"_id":"b"}],"meta_data":{"count":25,"page":2,"limit":10}}}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, 3, res.LastPage)
	assert.Len(t, decode(t, res), 2)
}

func TestNormalizeNestedMetaDefaults(t *testing.T) {
	// Missing count falls back to list length, missing limit to 10,
	// missing page to 1.
	raw := []byte(`{"data":{"data":[{"_id":"a"}],"meta_data":{}}}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 1, res.LastPage)
}

func TestNormalizeNestedMetaZeroLimit(t *testing.T) {
	raw := []byte(`{"data":{"data":[{"_id":"a"}],"meta_data":{"count":30,"limit":0}}}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 3, res.LastPage)
}

func TestNormalizeFlatMetaShape(t *testing.T) {
	raw := []byte(`{"data":[{"_id":"a"}],"meta":{"total":40,"current_page":2,"last_page":4}}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 40, res.Total)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, 4, res.LastPage)
}

func TestNormalizeFlatMetaDefaults(t *testing.T) {
	raw := []byte(`{"data":[{"_id":"a"},{"_id":"b"}],"meta":{}}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 1, res.LastPage)
}

func TestNormalizeFlatShape(t *testing.T) {
	raw := []byte(`{"data":[{"_id":"a"},{"_id":"b"},{"_id":"c"}]}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 1, res.LastPage)
	assert.Len(t, decode(t, res), 3)
}

func TestNormalizeBareList(t *testing.T) {
	raw := []byte(`[{"_id":"a"},{"_id":"b"}]`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, decode(t, res), 2)
}

func TestNormalizePrecedence(t *testing.T) {
	// The documents shape also satisfies the flat predicate (data is a
	// list); it must win because it is tried first.
	raw := []byte(`{"data":[[{"documents":[{"_id":"a"}],"count":9}]]}`)
	res := Normalize(raw)

	require.True(t, res.Recognized)
	assert.Equal(t, 9, res.Total)
	items := decode(t, res)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	// data list + meta must resolve as flat-meta, not plain flat.
	raw = []byte(`{"data":[{"_id":"a"}],"meta":{"total":7}}`)
	res = Normalize(raw)
	assert.Equal(t, 7, res.Total)
}

func TestNormalizeUnrecognizedNeverPanics(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte(`null`),
		[]byte(`{}`),
		[]byte(`42`),
		[]byte(`"string"`),
		[]byte(`{"data":null}`),
		[]byte(`{"data":{"weird":true}}`),
		[]byte(`{"not even json`),
	}
	for _, raw := range inputs {
		res := Normalize(raw)
		assert.NotNil(t, res.Data, "input %q", raw)
		items, err := DecodeList[record](res)
		require.NoError(t, err)
		assert.NotNil(t, items)
	}

	// Fully unrecognized inputs degrade to the neutral empty result.
	res := Normalize([]byte(`{"data":{"weird":true}}`))
	assert.False(t, res.Recognized)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, json.RawMessage("[]"), res.Data)
}

func TestOne(t *testing.T) {
	raw := []byte(`{"data":[[[{"_id":"u1","name":"Alice"}]]]}`)
	rec, err := DecodeOne[record](One(raw))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "u1", rec.ID)
	assert.Equal(t, "Alice", rec.Name)
}

func TestOneMismatches(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte(`null`),
		[]byte(`{}`),
		[]byte(`{"data":{}}`),
		[]byte(`{"data":[]}`),
		[]byte(`{"data":[[]]}`),
		[]byte(`{"data":[[[]]]}`),
		[]byte(`{"data":[[["scalar"]]]}`),
		[]byte(`{"data":[[{"_id":"too shallow"}]]}`),
	}
	for _, raw := range inputs {
		assert.Nil(t, One(raw), "input %s", raw)
	}
}

func TestNestedList(t *testing.T) {
	raw := []byte(`{"data":[[{"data":[{"_id":"a"},{"_id":"b"}]}]]}`)
	var items []record
	require.NoError(t, json.Unmarshal(NestedList(raw), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].ID)
}

func TestNestedListMismatches(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte(`{}`),
		[]byte(`{"data":[]}`),
		[]byte(`{"data":[["scalar"]]}`),
		[]byte(`{"data":[[{"data":"not a list"}]]}`),
	}
	for _, raw := range inputs {
		assert.Equal(t, json.RawMessage("[]"), NestedList(raw), "input %s", raw)
	}
}

func TestDecodeListTypeMismatch(t *testing.T) {
	res := Normalize([]byte(`{"data":[42,43]}`))
	require.True(t, res.Recognized)
	_, err := DecodeList[record](res)
	assert.Error(t, err)
}
