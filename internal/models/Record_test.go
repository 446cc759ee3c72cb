package models

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(float64(0)))
	assert.False(t, Truthy(math.NaN()))
	assert.False(t, Truthy(""))

	assert.True(t, Truthy(true))
	assert.True(t, Truthy(float64(-1)))
	assert.True(t, Truthy("0"))
	assert.True(t, Truthy(map[string]any{}))
	assert.True(t, Truthy([]any{}))
}

func TestRecord_Truthy(t *testing.T) {
	assert.False(t, Record(nil).Truthy())
	assert.False(t, Record(`null`).Truthy())
	assert.False(t, Record(`""`).Truthy())
	assert.False(t, Record(`0`).Truthy())
	assert.True(t, Record(`{}`).Truthy())
	assert.True(t, Record(`[]`).Truthy())
	assert.True(t, Record(`"x"`).Truthy())
}

func TestRecord_Field(t *testing.T) {
	r := Record(`{"file_id":"a1","n":3,"nested":{"x":1}}`)

	v, ok := r.Field("file_id")
	assert.True(t, ok)
	assert.Equal(t, "a1", v)

	v, ok = r.Field("n")
	assert.True(t, ok)
	assert.Equal(t, float64(3), v)

	_, ok = r.Field("missing")
	assert.False(t, ok)

	_, ok = Record(`[1,2]`).Field("file_id")
	assert.False(t, ok)
}

func TestStrictEqual(t *testing.T) {
	assert.True(t, StrictEqual("a", "a"))
	assert.True(t, StrictEqual(float64(1), float64(1)))
	assert.True(t, StrictEqual(true, true))
	assert.True(t, StrictEqual(nil, nil))

	assert.False(t, StrictEqual("1", float64(1)))
	assert.False(t, StrictEqual(true, "true"))
	assert.False(t, StrictEqual(map[string]any{}, map[string]any{}))
	assert.False(t, StrictEqual([]any{"a"}, []any{"a"}))
}

func TestRecord_MarshalKeepsKeyOrder(t *testing.T) {
	r := Record(`{"b":1,"a":2}`)
	out, err := json.Marshal([]Record{r})
	require.NoError(t, err)
	assert.Equal(t, `[{"b":1,"a":2}]`, string(out))

	var back []Record
	require.NoError(t, json.Unmarshal(out, &back))
	require.Len(t, back, 1)
	assert.JSONEq(t, string(r), string(back[0]))
}

func TestUpsert_ReplacesMatchingAndAppends(t *testing.T) {
	records := []Record{
		Record(`{"file_id":"a","v":1}`),
		Record(`{"file_id":"b","v":1}`),
		Record(`{"file_id":"a","v":0}`),
	}
	out := Upsert(records, Record(`{"file_id":"a","v":2}`), "file_id")

	require.Len(t, out, 2)
	assert.JSONEq(t, `{"file_id":"b","v":1}`, string(out[0]))
	assert.JSONEq(t, `{"file_id":"a","v":2}`, string(out[1]))
}

func TestUpsert_DistinctKeysAccumulate(t *testing.T) {
	var out []Record
	for _, id := range []string{"u1", "u2", "u3"} {
		out = Upsert(out, Record(`{"user_id":"`+id+`"}`), "user_id")
	}
	assert.Len(t, out, 3)
}

func TestUpsert_FalsyKeyOnlyAppends(t *testing.T) {
	records := []Record{Record(`{"group_id":""}`), Record(`{"group_id":0}`)}

	out := Upsert(records, Record(`{"group_id":""}`), "group_id")
	assert.Len(t, out, 3)

	out = Upsert(out, Record(`{"name":"no key"}`), "group_id")
	assert.Len(t, out, 4)
}

func TestUpsert_TypeSensitiveKeys(t *testing.T) {
	records := []Record{Record(`{"file_id":1}`)}
	out := Upsert(records, Record(`{"file_id":"1"}`), "file_id")
	assert.Len(t, out, 2)

	out = Upsert(out, Record(`{"file_id":1,"v":"new"}`), "file_id")
	require.Len(t, out, 2)
	assert.JSONEq(t, `{"file_id":"1"}`, string(out[0]))
	assert.JSONEq(t, `{"file_id":1,"v":"new"}`, string(out[1]))
}

func TestUpsert_ObjectKeysNeverMatch(t *testing.T) {
	records := []Record{Record(`{"file_id":{"x":1}}`)}
	out := Upsert(records, Record(`{"file_id":{"x":1}}`), "file_id")
	assert.Len(t, out, 2)
}

func TestUpsert_DoesNotMutateInput(t *testing.T) {
	records := []Record{Record(`{"file_id":"a"}`), Record(`{"file_id":"b"}`)}
	_ = Upsert(records, Record(`{"file_id":"a","v":2}`), "file_id")
	assert.JSONEq(t, `{"file_id":"a"}`, string(records[0]))
	assert.JSONEq(t, `{"file_id":"b"}`, string(records[1]))
}

func TestSaveRequest_HasRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"complete", `{"type":"video","data":{"file_id":"x"}}`, true},
		{"missing data", `{"type":"video"}`, false},
		{"missing type", `{"data":{}}`, false},
		{"null data", `{"type":"video","data":null}`, false},
		{"empty type", `{"type":"","data":{}}`, false},
		{"non-string type", `{"type":5,"data":{}}`, true},
		{"keys are case sensitive", `{"TYPE":"video","Data":{"file_id":"x"}}`, false},
		{"null body", `null`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseSaveRequest([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.HasRequiredFields())
		})
	}
}

func TestParseSaveRequest_Rejects(t *testing.T) {
	for _, body := range []string{
		`{"type":"video","data":{}} trailing`,
		`{"type":"video","data":{}}{}`,
		`[{"type":"video"}]`,
		`"video"`,
		``,
	} {
		_, err := ParseSaveRequest([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestResponse_DataOnlyWhenSet(t *testing.T) {
	out, err := json.Marshal(Failure(MsgInvalidType))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"Invalid data type"}`, string(out))

	out, err = json.Marshal(Success("Videos loaded", []Record{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","message":"Videos loaded","data":[]}`, string(out))

	out, err = json.Marshal(Success("Config loaded", Record("{}")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","message":"Config loaded","data":{}}`, string(out))
}

func TestResponse_DataIsNotHTMLEscaped(t *testing.T) {
	out, err := json.MarshalNoEscape(Success("Videos loaded", []Record{Record(`{"t":"<b>","n":1.50}`)}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `{"t":"<b>","n":1.5}`)
}
