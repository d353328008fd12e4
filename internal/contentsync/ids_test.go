package contentsync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildIDUnmarshal(t *testing.T) {
	cases := map[string]struct {
		in        string
		persisted uint
		token     string
	}{
		"number":         {in: `17`, persisted: 17},
		"numeric string": {in: `"17"`, persisted: 17},
		"client key":     {in: `"tmp-1699999"`, token: "tmp-1699999"},
		"null":           {in: `null`},
		"zero string":    {in: `"0"`, token: "0"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var id ChildID
			require.NoError(t, json.Unmarshal([]byte(tc.in), &id))

			n, ok := id.Persisted()
			assert.Equal(t, tc.persisted, n)
			assert.Equal(t, tc.persisted != 0, ok)
			assert.Equal(t, tc.token, id.Token())
		})
	}
}

func TestChildIDRejectsBadNumbers(t *testing.T) {
	for _, in := range []string{`0`, `-4`, `1.5`, `true`} {
		var id ChildID
		err := json.Unmarshal([]byte(in), &id)
		assert.Error(t, err, in)
	}
}

func TestChildIDMarshal(t *testing.T) {
	b, err := json.Marshal([]ChildID{Identified(3), Pending("new"), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `[3, "new", null]`, string(b))
}

func TestBadChildIDIsAFieldError(t *testing.T) {
	var doc AwardsDocument
	err := decodeDocument([]byte(`{"page_title":"A","achievements":[{"id":-1,"title":"x"}],"images":[]}`), &doc)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Contains(t, verr.Fields[0].Field, "id")
	assert.Equal(t, "must be a positive integer or a string", verr.Fields[0].Message)
}
