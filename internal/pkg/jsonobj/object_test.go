package jsonobj

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_KeepsDocumentOrder(t *testing.T) {
	obj, err := Decode([]byte(`{"z":1,"a":{"nested":[1,2]},"m":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())

	raw, ok := obj.Get("a")
	require.True(t, ok)
	assert.JSONEq(t, `{"nested":[1,2]}`, string(raw))

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"nested":[1,2]},"m":"x"}`, string(out))
}

func TestDecode_DuplicateKeysKeepFirstPositionLastValue(t *testing.T) {
	obj, err := Decode([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)

	out, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, string(out))
}

func TestDecode_RejectsNonObjects(t *testing.T) {
	for _, doc := range []string{`[]`, `null`, `"text"`, `42`, `true`} {
		t.Run(doc, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.ErrorIs(t, err, ErrNotObject)
		})
	}
}

func TestDecode_RejectsInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"a":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotObject)
}

func TestSet_ReplacesInPlace(t *testing.T) {
	obj := New()
	require.NoError(t, obj.Set("id", "first"))
	require.NoError(t, obj.Set("name", "Aave"))
	require.NoError(t, obj.Set("id", "second"))
	require.NoError(t, obj.Set("hash", "abc"))

	out, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"id":"second","name":"Aave","hash":"abc"}`, string(out))
}

func TestSet_UnencodableValue(t *testing.T) {
	obj := New()
	err := obj.Set("bad", make(chan int))
	require.Error(t, err)
	assert.Equal(t, 0, obj.Len())
}

func TestMerge(t *testing.T) {
	base := New()
	require.NoError(t, base.Set("id", "aave"))

	other, err := Decode([]byte(`{"name":"Aave","id":"override","icon":"logo.png"}`))
	require.NoError(t, err)

	base.Merge(other)

	assert.Equal(t, []string{"id", "name", "icon"}, base.Keys())
	id, ok := base.GetString("id")
	require.True(t, ok)
	assert.Equal(t, "override", id)
}

func TestGetString(t *testing.T) {
	obj, err := Decode([]byte(`{"s":"value","n":5}`))
	require.NoError(t, err)

	s, ok := obj.GetString("s")
	assert.True(t, ok)
	assert.Equal(t, "value", s)

	_, ok = obj.GetString("n")
	assert.False(t, ok)

	_, ok = obj.GetString("missing")
	assert.False(t, ok)
}

func TestZeroValue(t *testing.T) {
	var obj Object
	obj.SetRaw("k", json.RawMessage(`true`))

	out, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"k":true}`, string(out))

	empty, err := New().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}
