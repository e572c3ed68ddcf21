package sheetimport

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRows(t *testing.T) {
	rows := [][]string{
		{"id", "name"},
		{"1", "Alice"},
		{"2", "Bob"},
	}

	records, err := MapRows(rows, Options{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	bs, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]`, string(bs))

	id, _ := records[0].Get("id")
	assert.Equal(t, int64(1), id)
	assert.Equal(t, []string{"id", "name"}, records[1].Keys())
}

func TestMapRowsFieldRules(t *testing.T) {
	rows := [][]string{
		{"id", "title", "modified", "price"},
		{"5.0", "Widget", "2024-02-01 10:00:00", "9.95"},
		{"7", "Gadget", "", "12"},
	}

	tests := []struct {
		name     string
		opts     Options
		wantKeys []string
		wantID   interface{}
	}{
		{"default coerces id", Options{}, []string{"id", "title", "price"}, int64(5)},
		{"append drops id", Options{Type: TypeAppend}, []string{"title", "price"}, nil},
		{"string values still coerce id", Options{StringValues: true}, []string{"id", "title", "price"}, int64(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := MapRows(rows, tt.opts)
			require.NoError(t, err)
			require.Len(t, records, 2)

			for _, r := range records {
				assert.Equal(t, tt.wantKeys, r.Keys())
				assert.False(t, r.Has(FieldModified))
			}

			id, ok := records[0].Get(FieldID)
			if tt.wantID == nil {
				assert.False(t, ok)
				return
			}
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestMapRowsCellTyping(t *testing.T) {
	rows := [][]string{
		{"code", "qty", "price", "note"},
		{"0042", "3", "1.5", ""},
	}

	records, err := MapRows(rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"code": "0042", "qty": int64(3), "price": 1.5, "note": nil,
	}, records[0].Map())

	records, err = MapRows(rows, Options{StringValues: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"code": "0042", "qty": "3", "price": "1.5", "note": nil,
	}, records[0].Map())
}

func TestMapRowsShape(t *testing.T) {
	t.Run("empty sheet", func(t *testing.T) {
		records, err := MapRows(nil, Options{})
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("header only", func(t *testing.T) {
		records, err := MapRows([][]string{{"id", "name"}}, Options{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("short rows are padded", func(t *testing.T) {
		records, err := MapRows([][]string{{"id", "name", "email"}, {"1"}}, Options{})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"id", "name", "email"}, records[0].Keys())
		email, ok := records[0].Get("email")
		assert.True(t, ok)
		assert.Nil(t, email)
	})

	t.Run("blank rows are skipped", func(t *testing.T) {
		records, err := MapRows([][]string{{"id"}, {}, {"1"}, {" "}, {"2"}}, Options{})
		require.NoError(t, err)
		require.Len(t, records, 2)
		id, _ := records[1].Get("id")
		assert.Equal(t, int64(2), id)
	})

	t.Run("trailing blank header cells", func(t *testing.T) {
		records, err := MapRows([][]string{{" id ", "name", "", ""}, {"1", "Alice", "", ""}}, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name"}, records[0].Keys())
	})

	t.Run("null id is kept", func(t *testing.T) {
		records, err := MapRows([][]string{{"id", "name"}, {"", "Alice"}}, Options{})
		require.NoError(t, err)
		id, ok := records[0].Get("id")
		assert.True(t, ok)
		assert.Nil(t, id)
	})
}

func TestMapRowsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		wantRow int
	}{
		{"duplicate header", [][]string{{"id", "name", "id"}, {"1", "a", "2"}}, 1},
		{"value without header", [][]string{{"id", "name"}, {"1", "a"}, {"2", "b", "extra"}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapRows(tt.rows, Options{})
			require.ErrorIs(t, err, ErrMalformedFile)

			var rowErr *RowError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, tt.wantRow, rowErr.Row)
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected int64
	}{
		{int64(5), 5},
		{7, 7},
		{5.0, 5},
		{5.9, 5},
		{-2.5, -2},
		{"12", 12},
		{" 3.7 ", 3},
		{"12abc", 12},
		{"-4x", -4},
		{"abc", 0},
		{"", 0},
		{true, 1},
		{false, 0},
		{uint8(9), 9},
	}

	for _, tt := range tests {
		if got := CoerceInt(tt.input); got != tt.expected {
			t.Errorf("CoerceInt(%#v) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
