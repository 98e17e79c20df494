package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowGetTrims(t *testing.T) {
	r := Row{
		Columns: []string{"Date", "Amount"},
		Cells:   map[string]string{"Date": " 2024-01-01 ", "Amount": "100.00"},
	}
	assert.Equal(t, "2024-01-01", r.Get("Date"))
	assert.Equal(t, "", r.Get("Missing"))
}

func TestRowValuesSkipsEmpty(t *testing.T) {
	r := Row{
		Columns: []string{"Date", "Description", "Amount"},
		Cells:   map[string]string{"Date": "2024-01-01", "Description": "  ", "Amount": "100.00"},
	}
	assert.Equal(t, []string{"2024-01-01", "100.00"}, r.Values())
}

func TestTableColumns(t *testing.T) {
	tbl := Table{Rows: []Row{
		{},
		{Columns: []string{"Date", "Amount"}},
	}}
	assert.Equal(t, []string{"Date", "Amount"}, tbl.Columns())
	assert.Nil(t, Table{}.Columns())
}
