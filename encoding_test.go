package go_fractional_index_test

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"testing"

	go_fractional_index "github.com/datnguyenzzz/nogodb/lib/go-fractional-index"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type item struct {
	A go_fractional_index.FractionalIndex `json:"a" yaml:"a" cbor:"a"`
	B go_fractional_index.FractionalIndex `json:"b" yaml:"b" cbor:"b"`
	C go_fractional_index.FractionalIndex `json:"c" yaml:"c" cbor:"c"`
}

func newItem(t *testing.T) item {
	a := go_fractional_index.Default()
	b := go_fractional_index.NewAfter(a)
	c, err := go_fractional_index.NewBetween(a, b)
	require.NoError(t, err)
	return item{A: a, B: b, C: c}
}

func TestJSON(t *testing.T) {
	it := newItem(t)

	data, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"80","b":"8180","c":"817f80"}`, string(data))

	var got item
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, it, got)

	err = json.Unmarshal([]byte(`{"a":"81"}`), &got)
	assert.ErrorIs(t, err, go_fractional_index.ErrMissingTerminator)
}

func TestYAML(t *testing.T) {
	it := newItem(t)

	data, err := yaml.Marshal(it)
	require.NoError(t, err)

	var got item
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, it, got)
}

func TestCBOR(t *testing.T) {
	it := newItem(t)

	data, err := cbor.Marshal(it)
	require.NoError(t, err)

	var got item
	require.NoError(t, cbor.Unmarshal(data, &got))
	assert.Equal(t, it, got)
}

func TestGob(t *testing.T) {
	it := newItem(t)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(it))

	var got item
	require.NoError(t, gob.NewDecoder(&buf).Decode(&got))
	assert.Equal(t, it, got)
}

func TestSQL(t *testing.T) {
	it := newItem(t)

	v, err := it.B.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x80}, v)

	tests := []struct {
		name    string
		src     any
		want    go_fractional_index.FractionalIndex
		wantErr error
	}{
		{name: "blob column", src: []byte{0x81, 0x7f, 0x80}, want: it.C},
		{name: "text column", src: "8180", want: it.B},
		{name: "null column", src: nil, want: go_fractional_index.Default()},
		{name: "unterminated blob", src: []byte{0x81}, wantErr: go_fractional_index.ErrMissingTerminator},
		{name: "integer column", src: int64(3), wantErr: go_fractional_index.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := go_fractional_index.NewAfter(it.B)
			err := got.Scan(tt.src)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "default", in: "80"},
		{name: "long", in: "00ff7f80"},
		{name: "empty", in: "", wantErr: go_fractional_index.ErrEmptyInput},
		{name: "odd length", in: "818", wantErr: go_fractional_index.ErrInvalidLength},
		{name: "uppercase", in: "FF80", wantErr: go_fractional_index.ErrInvalidHex},
		{name: "not hex", in: "zz80", wantErr: go_fractional_index.ErrInvalidHex},
		{name: "no terminator", in: "8081", wantErr: go_fractional_index.ErrMissingTerminator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := go_fractional_index.FromString(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, go_fractional_index.ErrDecode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestFromBytes(t *testing.T) {
	_, err := go_fractional_index.FromBytes(nil)
	assert.ErrorIs(t, err, go_fractional_index.ErrEmptyInput)

	src := []byte{0x10, 0x80}
	got, err := go_fractional_index.FromBytes(src)
	require.NoError(t, err)
	src[0] = 0x20
	assert.Equal(t, []byte{0x10, 0x80}, got.Bytes(), "decoded key must not alias its input")
}
