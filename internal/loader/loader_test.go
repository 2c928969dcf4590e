package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSVTypesColumns(t *testing.T) {
	p := write(t, "dataset_ujian.csv", strings.Join([]string{
		"Nama,Gender,Matkul,Nilai,UTS,UAS,Umur,Tanggal",
		"Ani,F,Math,80,75,85,20,9/8/2023",
		"Budi,M,Phys,60.5,50,70,21,31/12/2023",
		"Citra,F,Math,,NA,90,19,2023-01-05",
	}, "\n"))
	tab, err := Load(p, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "dataset_ujian.csv", tab.Name)
	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, []string{"Nama", "Gender", "Matkul", "Nilai", "UTS", "UAS", "Umur", "Tanggal"}, tab.ColumnNames())
	assert.False(t, tab.Columns[0].Known, "unknown columns pass through")
	assert.Equal(t, dataset.KindString, tab.Columns[0].Kind)
	assert.Equal(t, dataset.KindNumber, tab.Columns[3].Kind)

	assert.Equal(t, []float64{80, 60.5}, tab.Floats("Nilai"))
	assert.True(t, tab.Rows[2][4].IsMissing(), "NA is a missing token")

	dates := tab.Values("Tanggal")
	assert.Equal(t, time.Date(2023, time.August, 9, 0, 0, 0, 0, time.UTC), dates[0].Time)
	assert.Equal(t, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), dates[1].Time)
	assert.True(t, dates[2].IsMissing(), "non day/month/year dates become missing")
	require.Len(t, tab.Notes, 1)
	assert.Contains(t, tab.Notes[0], "Tanggal")
}

func TestLoadToleratesMissingDateColumn(t *testing.T) {
	p := write(t, "a.csv", "Gender,Matkul,Nilai,UTS,UAS,Umur\nF,Math,80,75,85,20\n")
	tab, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Len())
	require.Len(t, tab.Notes, 1)
	assert.Contains(t, tab.Notes[0], `column "Tanggal" not found`)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())
	var target *dataset.NotFoundError
	require.True(t, errors.As(err, &target))
	assert.Contains(t, err.Error(), "missing.csv")

	_, err = Load(t.TempDir(), DefaultOptions())
	assert.True(t, errors.As(err, &target), "directories are not files")
}

func TestLoadParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		line    int
	}{
		{"empty", "", 0},
		{"too many fields", "Gender,Nilai\nF,80\nM,70,extra\n", 3},
		{"bad number", "Gender,Nilai\nF,80\nM,eighty\n", 3},
		{"bad quote", "Gender,Nilai\n\"F,80\n", 2},
		{"infinite", "Gender,Nilai\nF,80\nM,inf\n", 3},
		{"infinity word", "Gender,Nilai\nF,+Infinity\n", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tab, err := Load(write(t, "x.csv", c.content), DefaultOptions())
			assert.Nil(t, tab)
			var pe *dataset.ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			if c.line > 0 {
				assert.Equal(t, c.line, pe.Line)
			}
		})
	}
}

func TestLoadPadsShortRows(t *testing.T) {
	tab, err := Load(write(t, "short.csv", "Gender,Matkul,Nilai\nF\n,,\n"), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, tab.Len())
	assert.Equal(t, "F", tab.Rows[0][0].Str)
	assert.True(t, tab.Rows[0][2].IsMissing())
	assert.True(t, tab.Rows[1].AllMissing())
}

func TestLoadHeaderOnly(t *testing.T) {
	tab, err := Load(write(t, "h.csv", "Gender,Matkul,Nilai\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, tab.Len())
	assert.Len(t, tab.Columns, 3)
}

func TestLoadSniffsSemicolonAndLocaleNumbers(t *testing.T) {
	p := write(t, "eu.csv", "Gender;Nilai\nF;80,5\nM;1.000,25\n")
	tab, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []float64{80.5, 1000.25}, tab.Floats("Nilai"))

	opt := DefaultOptions()
	opt.Delimiter = ';'
	opt.DecimalSeparator = ','
	opt.ThousandsSeparator = '.'
	tab, err = Load(p, opt)
	require.NoError(t, err)
	assert.Equal(t, []float64{80.5, 1000.25}, tab.Floats("Nilai"))
}

func TestLoadDeduplicatesHeaderAndStripsBOM(t *testing.T) {
	tab, err := Load(write(t, "d.csv", "\ufeffGender,Nilai,Nilai\nF,1,2\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Gender", "Nilai", "Nilai.1"}, tab.ColumnNames())
}

func TestLoadMaxRows(t *testing.T) {
	opt := DefaultOptions()
	opt.MaxRows = 1
	tab, err := Load(write(t, "m.csv", "Gender,Nilai\nF,1\nM,2\n"), opt)
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Len())
	assert.Contains(t, strings.Join(tab.Notes, "\n"), "processed only 1/2 rows")
}

func TestLoadCustomSchema(t *testing.T) {
	opt := DefaultOptions()
	opt.Schema = dataset.Schema{
		Numeric:     []string{"Harga", "Jumlah"},
		Categories:  []string{"Produk"},
		ModeColumns: []string{"Produk"},
	}
	tab, err := Load(write(t, "sales.csv", "Produk,Harga,Jumlah\nApel,1.2,100\n"), opt)
	require.NoError(t, err)
	assert.Equal(t, []string{"Harga", "Jumlah"}, tab.NumericColumns())
	assert.Empty(t, tab.Notes)
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nilai.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	rows := [][]any{
		{"Gender", "Matkul", "Nilai", "UTS", "UAS", "Umur"},
		{"F", "Math", 80, 75, 85, 20},
		{"M", "Phys", 60, 50, 70, 21},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Data", cell, &r))
	}
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	tab, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, []float64{80, 60}, tab.Floats("Nilai"))

	opt := DefaultOptions()
	opt.SheetName = "missing"
	_, err = Load(p, opt)
	var pe *dataset.ParseError
	assert.True(t, errors.As(err, &pe))

	opt = DefaultOptions()
	opt.SheetIndex = 2
	_, err = Load(p, opt)
	assert.True(t, errors.As(err, &pe), "second sheet is empty")
}

func TestParseNumberRejectsNonFinite(t *testing.T) {
	for _, s := range []string{"inf", "+Inf", "-inf", "Infinity", "NaN"} {
		_, ok := ParseNumber(s, DefaultOptions())
		assert.False(t, ok, s)
	}
	x, ok := ParseNumber("1.234,5", DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, 1234.5, x)
}
