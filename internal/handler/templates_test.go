package handler

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRubles(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 ₽"},
		{299, "299 ₽"},
		{1499, "1 499 ₽"},
		{1234567, "1 234 567 ₽"},
		{-1000, "-1 000 ₽"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRubles(tt.in))
	}
}

func TestFormatRublesDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0 ₽"},
		{"908.6", "908.6 ₽"},
		{"1168.2", "1 168.2 ₽"},
		{"1349", "1 349 ₽"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRublesDecimal(decimal.RequireFromString(tt.in)))
	}
}

func TestRenderer(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html":  {Data: []byte(`{{define "base"}}<main>{{block "content" .}}{{end}}</main>{{template "_sig" .}}{{end}}`)},
		"_sig.html":    {Data: []byte(`{{define "_sig"}}-{{.}}{{end}}`)},
		"hello.html":   {Data: []byte(`{{define "content"}}hello {{rub 1500}}{{end}}`)},
		"goodbye.html": {Data: []byte(`{{define "content"}}bye{{end}}`)},
	}

	r, err := NewRenderer(fsys)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "hello", "x"))
	assert.Equal(t, "<main>hello 1 500 ₽</main>-x", buf.String())

	buf.Reset()
	require.NoError(t, r.Render(&buf, "goodbye", "y"))
	assert.Equal(t, "<main>bye</main>-y", buf.String(), "pages do not leak into each other")

	_, err = r.Execute("_sig")
	assert.Error(t, err, "partials are not pages")
	_, err = r.Execute("missing")
	assert.Error(t, err)
}
