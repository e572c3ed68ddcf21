package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenODS(t *testing.T) {
	content := odsHeader + `
<table:table table:name="Foo">
  <table:table-column table:number-columns-repeated="3"/>
  <table:table-row>
    <table:table-cell office:value-type="string"><text:p>id</text:p></table:table-cell>
    <table:table-cell office:value-type="string"><text:p>name</text:p></table:table-cell>
    <table:table-cell table:number-columns-repeated="1020"/>
  </table:table-row>
  <table:table-row>
    <table:table-cell office:value-type="float" office:value="5"><text:p>5.00</text:p></table:table-cell>
    <table:table-cell office:value-type="string"><text:p>Alice<text:s text:c="2"/>Smith</text:p><office:annotation><text:p>note</text:p></office:annotation></table:table-cell>
  </table:table-row>
  <table:table-row table:number-rows-repeated="2">
    <table:table-cell table:number-columns-repeated="2" office:value-type="string"><text:p>x</text:p></table:table-cell>
  </table:table-row>
  <table:table-row table:number-rows-repeated="1048570"><table:table-cell table:number-columns-repeated="1024"/></table:table-row>
</table:table>
<table:table table:name="Bar">
  <table:table-row><table:table-cell/><table:table-cell office:value-type="boolean" office:boolean-value="true"><text:p>TRUE</text:p></table:table-cell></table:table-row>
</table:table>` + odsFooter

	wb, err := Open(writeODS(t, content), OpenOptions{})
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, FormatODS, wb.Format())
	assert.Equal(t, []string{"Foo", "Bar"}, wb.SheetNames())

	rows, err := wb.Rows("Foo")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "name"},
		{"5", "Alice  Smith"},
		{"x", "x"},
		{"x", "x"},
	}, rows)

	rows, err = wb.Rows("Bar")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"", "true"}}, rows)

	_, err = wb.Rows("Baz")
	assert.Error(t, err)
}

func TestParseODSContentBlankRowsInside(t *testing.T) {
	content := odsHeader + `
<table:table table:name="S">
  <table:table-row><table:table-cell><text:p>a</text:p><text:p>b</text:p></table:table-cell></table:table-row>
  <table:table-row table:number-rows-repeated="2"><table:table-cell/></table:table-row>
  <table:table-row><table:table-cell/><table:table-cell><text:p>c</text:p></table:table-cell></table:table-row>
</table:table>` + odsFooter

	sheets, err := parseODSContent(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, [][]string{{"a\nb"}, nil, nil, {"", "c"}}, sheets[0].rows)
}

func TestParseODSContentBoundsRepeats(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{
			name: "blank cells before a value",
			table: `<table:table-row>
  <table:table-cell table:number-columns-repeated="5000000"/>
  <table:table-cell><text:p>id</text:p></table:table-cell>
</table:table-row>`,
		},
		{
			name: "blank rows before data",
			table: `<table:table-row><table:table-cell><text:p>id</text:p></table:table-cell></table:table-row>
<table:table-row table:number-rows-repeated="5000000"><table:table-cell/></table:table-row>
<table:table-row><table:table-cell><text:p>1</text:p></table:table-cell></table:table-row>`,
		},
		{
			name: "repeated data beyond the cell budget",
			table: `<table:table-row table:number-rows-repeated="100000">
  <table:table-cell table:number-columns-repeated="1000"><text:p>x</text:p></table:table-cell>
</table:table-row>`,
		},
		{
			name: "many wide cells in one row",
			table: `<table:table-row>` + strings.Repeat(`<table:table-cell table:number-columns-repeated="65536"><text:p>x</text:p></table:table-cell>`, 100) + `</table:table-row>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := odsHeader + `<table:table table:name="S">` + tt.table + `</table:table>` + odsFooter
			_, err := parseODSContent(strings.NewReader(content))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseODSContentAllowsBlankRunsUpToLimit(t *testing.T) {
	content := odsHeader + `<table:table table:name="S">
<table:table-row><table:table-cell table:number-columns-repeated="3"/><table:table-cell><text:p>id</text:p></table:table-cell></table:table-row>
<table:table-row table:number-rows-repeated="65536"><table:table-cell/></table:table-row>
<table:table-row><table:table-cell><text:p>1</text:p></table:table-cell></table:table-row>
<table:table-row table:number-rows-repeated="1000000000"><table:table-cell table:number-columns-repeated="16384"/></table:table-row>
</table:table>` + odsFooter

	sheets, err := parseODSContent(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	rows := sheets[0].rows
	require.Len(t, rows, 65538)
	assert.Equal(t, []string{"", "", "", "id"}, rows[0])
	assert.Nil(t, rows[1])
	assert.Equal(t, []string{"1"}, rows[65537])
}

func TestOpenODSWithoutContent(t *testing.T) {
	path := writeXLSX(t, testSheet{name: "Sheet1"})
	_, err := OpenFormat(path, FormatODS, OpenOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
