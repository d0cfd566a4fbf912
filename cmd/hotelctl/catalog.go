package main

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
)

// catalogItem fila del catálogo de productos.
type catalogItem struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    int
}

func defaultCatalog() []catalogItem {
	return []catalogItem{
		{Name: "Agua", Category: "Bebidas", Price: decimal.NewFromInt(2500), Stock: 48},
		{Name: "Gaseosa", Category: "Bebidas", Price: decimal.NewFromInt(3500), Stock: 36},
		{Name: "Cerveza", Category: "Bebidas", Price: decimal.NewFromInt(6000), Stock: 24},
		{Name: "Papas fritas", Category: "Snacks", Price: decimal.NewFromInt(4000), Stock: 20},
		{Name: "Chocolatina", Category: "Snacks", Price: decimal.NewFromInt(3000), Stock: 20},
	}
}

// readCatalog lee un CSV separado por ';' con encabezado nombre;categoria;precio;stock.
// El precio admite coma decimal. latin1 decodifica ISO-8859-1.
func readCatalog(r io.Reader, latin1 bool) ([]catalogItem, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	var items []catalogItem
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catálogo: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("catálogo línea %d: precio %q inválido", line, rec[2])
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			return nil, fmt.Errorf("catálogo línea %d: stock %q inválido", line, rec[3])
		}
		items = append(items, catalogItem{
			Name:     strings.TrimSpace(rec[0]),
			Category: strings.TrimSpace(rec[1]),
			Price:    price,
			Stock:    stock,
		})
	}
	return items, nil
}
