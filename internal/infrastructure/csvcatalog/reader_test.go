package csvcatalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestRead_Basico(t *testing.T) {
	in := "id,name,sell_price,buy_price,stock,min_stock\n" +
		"P1,Beras 5kg,65000,60000,10,3\n" +
		",Gula 1kg,15000,12000,,2\n" +
		",,,,,\n"

	rows, err := Read(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "P1", rows[0].Request.ID)
	assert.Equal(t, "65000", rows[0].Request.SellPrice.String())
	require.NotNil(t, rows[0].Request.Stock)
	assert.Equal(t, 10, *rows[0].Request.Stock)

	assert.Equal(t, "", rows[1].Request.ID)
	assert.Nil(t, rows[1].Request.Stock, "stock vacío conserva el actual")
	assert.Equal(t, 3, rows[1].Line)
}

func TestRead_PuntoYComaYFormatoRupia(t *testing.T) {
	in := "name;sell_price;min_stock\nMinyak 2L;Rp 35.000;4\nKopi;12.500,50;1\n"

	rows, err := Read(strings.NewReader(in), "utf-8")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "35000", rows[0].Request.SellPrice.String())
	assert.Equal(t, "12500.5", rows[1].Request.SellPrice.String())
}

func TestRead_Latin1(t *testing.T) {
	utf := "name,sell_price\nCafé molido,9000\n"
	var buf bytes.Buffer
	w := charmap.ISO8859_1.NewEncoder().Writer(&buf)
	_, err := w.Write([]byte(utf))
	require.NoError(t, err)

	rows, err := Read(&buf, "latin1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café molido", rows[0].Request.Name)
}

func TestRead_Errores(t *testing.T) {
	_, err := Read(strings.NewReader(""), "")
	assert.Error(t, err)

	_, err = Read(strings.NewReader("id,stock\nP1,3\n"), "")
	assert.ErrorContains(t, err, "name")

	_, err = Read(strings.NewReader("name,stock\nBeras,diez\n"), "")
	assert.ErrorContains(t, err, "línea 2")

	_, err = Read(strings.NewReader("name\nx\n"), "ebcdic")
	assert.Error(t, err)
}
