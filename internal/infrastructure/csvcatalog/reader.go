// Package csvcatalog lee el catálogo de productos exportado desde una hoja de cálculo.
//
// Columnas (la primera fila es la cabecera, en cualquier orden):
//
//	id, name, sell_price, buy_price, stock, min_stock
//
// Solo name es obligatoria. Sin columna stock (o con la celda vacía) el stock del producto
// existente se conserva.
package csvcatalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
)

// Charsets aceptados además de UTF-8.
const (
	CharsetUTF8    = "utf-8"
	CharsetLatin1  = "iso-8859-1"
	CharsetWindows = "windows-1252"
)

// Row una fila del archivo ya convertida, con su número de línea para los mensajes.
type Row struct {
	Line    int
	Request dto.UpsertProductRequest
}

// Read decodifica el CSV. El separador se detecta entre ',' y ';' (Excel en locales con coma decimal).
func Read(r io.Reader, charset string) ([]Row, error) {
	dec, err := decoder(r, charset)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("csv: leer: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectComma(text)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv: archivo vacío")
		}
		return nil, fmt.Errorf("csv: cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, errors.New("csv: falta la columna name")
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv: línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("name") == "" && get("id") == "" {
			continue
		}
		req, err := toRequest(get)
		if err != nil {
			return nil, fmt.Errorf("csv: línea %d: %w", line, err)
		}
		rows = append(rows, Row{Line: line, Request: req})
	}
	return rows, nil
}

func toRequest(get func(string) string) (dto.UpsertProductRequest, error) {
	req := dto.UpsertProductRequest{ID: get("id"), Name: get("name")}
	var err error
	if req.SellPrice, err = parseMoney(get("sell_price")); err != nil {
		return req, fmt.Errorf("sell_price: %w", err)
	}
	if req.BuyPrice, err = parseMoney(get("buy_price")); err != nil {
		return req, fmt.Errorf("buy_price: %w", err)
	}
	if s := get("stock"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return req, fmt.Errorf("stock: %w", err)
		}
		req.Stock = &n
	}
	if s := get("min_stock"); s != "" {
		if req.MinStock, err = strconv.Atoi(s); err != nil {
			return req, fmt.Errorf("min_stock: %w", err)
		}
	}
	return req, nil
}

// parseMoney acepta "15000", "15000.50", "15.000" y "15.000,50" (formato rupia).
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Rp"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Count(s, ".") > 1 || (strings.Count(s, ".") == 1 && len(s)-strings.Index(s, ".") == 4) {
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}

func decoder(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return r, nil
	case CharsetLatin1, "latin1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case CharsetWindows, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("csv: charset no soportado %q", charset)
	}
}

func detectComma(text string) rune {
	first := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}
