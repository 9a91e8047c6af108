package results

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeepsInsertionOrder(t *testing.T) {
	obj := NewObject(3)
	obj.Set("zeta", 1)
	obj.Set("alpha", "two")
	obj.Set("mid", nil)

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"two","mid":null}`, string(data))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
}

func TestObjectOverwriteKeepsPosition(t *testing.T) {
	obj := NewObject(0)
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("a", 3)

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, string(data))
	assert.Equal(t, 2, obj.Len())

	v, ok := obj.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestObjectNestedAndEmpty(t *testing.T) {
	inner := NewObject(1)
	inner.Set("count", 5)
	outer := NewObject(2)
	outer.Set("Height", inner)
	outer.Set("empty", NewObject(0))

	data, err := json.Marshal(outer)
	require.NoError(t, err)
	assert.Equal(t, `{"Height":{"count":5},"empty":{}}`, string(data))
}

func TestObjectEscapesKeys(t *testing.T) {
	obj := NewObject(1)
	obj.Set(`we"ird`, true)

	data, err := json.Marshal(obj)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded[`we"ird`])
}

func TestEncodeRecords(t *testing.T) {
	payload, err := EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", payload)

	payload, err = EncodeRecords([]*Object{
		NewRecord([]string{"name", "n"}, []any{"x", int64(2)}),
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"x","n":2}]`, payload)
}

func TestEncodeSchemaResult(t *testing.T) {
	dtypes := NewObject(2)
	dtypes.Set("b", "int64")
	dtypes.Set("a", "object")

	payload, err := Encode(SchemaResult{Columns: []string{"b", "a"}, Dtypes: dtypes, Rows: 4})
	require.NoError(t, err)
	assert.Equal(t, `{"columns":["b","a"],"dtypes":{"b":"int64","a":"object"},"rows":4}`, payload)
}
