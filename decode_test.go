package jsonl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeField(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		invalid string
	}{
		{
			name: "plain value",
			line: `{"s": "hello world"}` + "\n",
			want: "hello world",
		},
		{
			name: "empty value",
			line: `{"s": ""}` + "\n",
			want: "",
		},
		{
			name: "known escapes",
			line: `{"s": "a\\b\nc\"d"}` + "\n",
			want: "a\\b\nc\"d",
		},
		{
			name: "other fields before and after",
			line: `{"id": 12, "s": "text", "t": "more"}` + "\n",
			want: "text",
		},
		{
			name: "first marker wins",
			line: `{"s": "one", "x": {"s": "two"}}` + "\n",
			want: "one",
		},
		{
			name:    "invalid escape dropped",
			line:    `{"s": "a\qb"}` + "\n",
			want:    "ab",
			invalid: "q",
		},
		{
			name:    "unicode escape is not decoded",
			line:    `{"s": "caf\u00e9"}` + "\n",
			want:    "caf00e9",
			invalid: "u",
		},
		{
			name:    "several invalid escapes",
			line:    `{"s": "\t\r\/"}` + "\n",
			want:    "",
			invalid: "tr/",
		},
		{
			name: "escaped backslash before quote",
			line: `{"s": "end\\"}` + "\n",
			want: "end\\",
		},
		{
			name: "utf-8 passes through",
			line: `{"s": "Grüße, 世界"}` + "\n",
			want: "Grüße, 世界",
		},
		{
			name: "unterminated value runs to end of line",
			line: `{"s": "open` + "\n",
			want: "open\n",
		},
		{
			name: "trailing backslash",
			line: `{"s": "x\`,
			want: "x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var invalid []byte
			got, err := DecodeField(nil, []byte(tt.line), FieldMarker, func(code byte) {
				invalid = append(invalid, code)
			})
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
			require.Equal(t, tt.invalid, string(invalid))
		})
	}
}

func TestDecodeFieldMissingMarker(t *testing.T) {
	for _, line := range []string{
		`{"t": "x"}` + "\n",
		`{"s":"no space"}` + "\n",
		"\n",
		"",
	} {
		_, err := DecodeField(nil, []byte(line), FieldMarker, nil)
		require.ErrorIs(t, err, ErrMissingMarker, "line %q", line)
	}
}

func TestDecodeFieldAppends(t *testing.T) {
	dst := []byte("prefix:")
	got, err := DecodeField(dst, []byte(`{"s": "v"}`), FieldMarker, nil)
	require.NoError(t, err)
	require.Equal(t, "prefix:v", string(got))
}

func TestDecodeFieldNilCallback(t *testing.T) {
	got, err := DecodeField(nil, []byte(`{"s": "a\zb"}`), FieldMarker, nil)
	require.NoError(t, err)
	require.Equal(t, "ab", string(got))
}

func TestDecodeFieldCustomMarker(t *testing.T) {
	got, err := DecodeField(nil, []byte(`{"text": "x\ny"}`), []byte(`"text": "`), nil)
	require.NoError(t, err)
	require.Equal(t, "x\ny", string(got))
}

func TestDecodeFieldNoUnescapedSpecials(t *testing.T) {
	// Whatever follows a backslash, the output only gets a backslash or a
	// quote when they were escaped.
	for c := 0; c < 256; c++ {
		line := `{"s": "\` + string([]byte{byte(c)}) + `"}`
		got, err := DecodeField(nil, []byte(line), FieldMarker, nil)
		require.NoError(t, err)
		switch byte(c) {
		case '\\':
			require.Equal(t, `\`, string(got))
		case '"':
			require.Equal(t, `"`, string(got))
		case 'n':
			require.Equal(t, "\n", string(got))
		default:
			require.False(t, strings.ContainsAny(string(got), `\"`), "code %q gave %q", c, got)
		}
	}
}
