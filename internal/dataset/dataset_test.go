package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVInfersTypes(t *testing.T) {
	input := "id,score,active,seen,label\n" +
		"1,2.5,true,2024-01-02,a\n" +
		"2,3,False,2024-01-03 10:00:00,b\n" +
		"3,,TRUE,,\n"

	ds, err := ReadCSV(strings.NewReader(input), ',')
	require.NoError(t, err)

	assert.Equal(t, 3, ds.NumRows())
	assert.Equal(t, []string{"id", "score", "active", "seen", "label"}, ds.Names())

	expected := []ColumnType{TypeInt64, TypeFloat64, TypeBool, TypeDatetime, TypeObject}
	for i, colType := range expected {
		assert.Equal(t, colType, ds.Column(i).Type, "column %s", ds.Column(i).Name)
	}

	assert.Equal(t, []any{int64(3), nil, true, nil, nil}, ds.Row(2))
	assert.Equal(t, 3.0, ds.Column(1).Values[1])
	assert.Equal(t, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), ds.Column(3).Values[1])
}

func TestReadCSVMissingTokens(t *testing.T) {
	input := "a,b\nNA,1\nnull,N/A\nx,NaN\n"

	ds, err := ReadCSV(strings.NewReader(input), ',')
	require.NoError(t, err)

	assert.Equal(t, TypeObject, ds.Column(0).Type)
	assert.Equal(t, []any{nil, nil, "x"}, ds.Column(0).Values)
	assert.Equal(t, TypeInt64, ds.Column(1).Type)
	assert.Equal(t, []any{int64(1), nil, nil}, ds.Column(1).Values)
}

func TestReadCSVAllMissingColumnIsObject(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("a,b\n1,\n2,\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, TypeObject, ds.Column(1).Type)
}

func TestReadCSVPadsShortRows(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("a,b,c\n1,2\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), nil}, ds.Row(0))
}

func TestReadCSVRejectsLongRows(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n"), ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns")
}

func TestReadCSVHeaderOnly(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("a,b\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, 0, ds.NumRows())
	assert.Equal(t, 2, ds.NumColumns())
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		expected []string
	}{
		{
			name:     "Unique names",
			header:   []string{"a", "b"},
			expected: []string{"a", "b"},
		},
		{
			name:     "Byte order mark",
			header:   []string{"\ufeffname", "b"},
			expected: []string{"name", "b"},
		},
		{
			name:     "Blank names",
			header:   []string{"a", "", " "},
			expected: []string{"a", "Unnamed: 1", "Unnamed: 2"},
		},
		{
			name:     "Repeated names",
			header:   []string{"a", "a", "a"},
			expected: []string{"a", "a.1", "a.2"},
		},
		{
			name:     "Suffix already taken",
			header:   []string{"a", "a.1", "a"},
			expected: []string{"a", "a.1", "a.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeHeader(tt.header))
		})
	}
}

func TestNewRejectsMismatchedColumns(t *testing.T) {
	_, err := New([]Column{
		{Name: "a", Type: TypeInt64, Values: []any{int64(1)}},
		{Name: "b", Type: TypeInt64, Values: []any{}},
	})
	assert.Error(t, err)

	_, err = New([]Column{
		{Name: "a", Type: TypeInt64, Values: []any{}},
		{Name: "a", Type: TypeInt64, Values: []any{}},
	})
	assert.Error(t, err)
}

func TestLoadSensors(t *testing.T) {
	ds, err := Load(filepath.Join("..", "..", "testdata", "sensors.csv"))
	require.NoError(t, err)

	assert.Equal(t, 500, ds.NumRows())
	assert.Equal(t, []string{"name", "time", "Latitude", "Longitude", "Height", "source"}, ds.Names())
	assert.Equal(t, TypeObject, ds.Column(0).Type)
	assert.Equal(t, TypeDatetime, ds.Column(1).Type)
	assert.Equal(t, TypeFloat64, ds.Column(4).Type)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n1\tx,y\n"), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "x,y"}, ds.Row(0))
}

type parquetRow struct {
	City  string  `parquet:"city"`
	Pop   int64   `parquet:"pop"`
	Area  float64 `parquet:"area"`
	Coast bool    `parquet:"coast"`
}

func TestLoadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.parquet")
	rows := []parquetRow{
		{City: "Oslo", Pop: 709000, Area: 454.0, Coast: true},
		{City: "Bern", Pop: 134000, Area: 51.6, Coast: false},
	}
	require.NoError(t, parquet.WriteFile(path, rows))

	ds, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.NumRows())
	assert.Equal(t, []string{"city", "pop", "area", "coast"}, ds.Names())
	assert.Equal(t, TypeObject, ds.Column(0).Type)
	assert.Equal(t, TypeInt64, ds.Column(1).Type)
	assert.Equal(t, TypeFloat64, ds.Column(2).Type)
	assert.Equal(t, TypeBool, ds.Column(3).Type)
	assert.Equal(t, []any{"Bern", int64(134000), 51.6, false}, ds.Row(1))
}

func TestPromote(t *testing.T) {
	assert.Equal(t, TypeInt64, promote("", TypeInt64))
	assert.Equal(t, TypeFloat64, promote(TypeInt64, TypeFloat64))
	assert.Equal(t, TypeObject, promote(TypeInt64, TypeBool))
	assert.Equal(t, TypeBool, promote(TypeBool, ""))
}

func TestJSONValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	assert.Nil(t, JSONValue(math.NaN()))
	assert.Nil(t, JSONValue(math.Inf(1)))
	assert.Equal(t, 1.5, JSONValue(1.5))
	assert.Equal(t, "2024-03-01T12:30:00Z", JSONValue(ts))
	assert.Equal(t, int64(7), JSONValue(int64(7)))
	assert.Nil(t, JSONValue(nil))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "42", FormatValue(int64(42)))
	assert.Equal(t, "0.25", FormatValue(0.25))
	assert.Equal(t, "True", FormatValue(true))
	assert.Equal(t, "x", FormatValue("x"))
}
