package qrcode_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrjson/pkg/qrcode"
)

func TestSerialize(t *testing.T) {
	t.Parallel()

	t.Run("map is encoded compactly without html escaping", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Serialize(map[string]any{"url": "https://x.io/?a=1&b=<2>", "n": 1})
		require.NoError(t, err)
		assert.Equal(t, `{"n":1,"url":"https://x.io/?a=1&b=<2>"}`, string(data))
	})

	t.Run("empty object is accepted", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Serialize(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("struct and pointer to struct", func(t *testing.T) {
		t.Parallel()
		type ticket struct {
			ID    int    `json:"id"`
			Owner string `json:"owner"`
		}
		data, err := qrcode.Serialize(ticket{ID: 7, Owner: "ann"})
		require.NoError(t, err)
		assert.Equal(t, `{"id":7,"owner":"ann"}`, string(data))

		data, err = qrcode.Serialize(&ticket{ID: 8})
		require.NoError(t, err)
		assert.Equal(t, `{"id":8,"owner":""}`, string(data))
	})

	t.Run("arrays are accepted", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Serialize([]int{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, "[1,2,3]", string(data))
	})

	t.Run("raw json is compacted", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Serialize(json.RawMessage(" { \"a\" : [1, 2] } "))
		require.NoError(t, err)
		assert.Equal(t, `{"a":[1,2]}`, string(data))

		raw := json.RawMessage(`{ "a": 1 }`)
		data, err = qrcode.Serialize(&raw)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(data))
	})

	t.Run("nil payloads are rejected", func(t *testing.T) {
		t.Parallel()
		var m map[string]any
		var p *struct{}
		var raw json.RawMessage
		var rawPtr *json.RawMessage
		for _, v := range []any{nil, m, p, raw, &raw, rawPtr} {
			_, err := qrcode.Serialize(v)
			assert.ErrorIs(t, err, qrcode.ErrInvalidPayload)
		}
	})

	t.Run("primitives are rejected", func(t *testing.T) {
		t.Parallel()
		for _, v := range []any{"text", 42, 3.5, true, []byte(`{"a":1}`), json.RawMessage(`"str"`)} {
			_, err := qrcode.Serialize(v)
			assert.ErrorIs(t, err, qrcode.ErrInvalidPayload, "%T should be rejected", v)
		}
	})

	t.Run("empty raw json", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Serialize(json.RawMessage("  "))
		assert.ErrorIs(t, err, qrcode.ErrEmptyPayload)
	})

	t.Run("unserializable values", func(t *testing.T) {
		t.Parallel()
		cyclic := map[string]any{}
		cyclic["self"] = cyclic

		cases := []any{
			map[string]any{"fn": func() {}},
			map[string]any{"ch": make(chan int)},
			map[string]any{"nan": math.NaN()},
			cyclic,
		}
		for _, v := range cases {
			_, err := qrcode.Serialize(v)
			assert.ErrorIs(t, err, qrcode.ErrSerialization)
		}
	})
}
