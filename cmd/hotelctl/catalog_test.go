package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalog_UTF8(t *testing.T) {
	in := "nombre;categoria;precio;stock\nAgua;Bebidas;2500;48\nManí;Snacks;3200,50;10\n"
	items, err := readCatalog(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Maní", items[1].Name)
	assert.True(t, decimal.RequireFromString("3200.50").Equal(items[1].Price))
	assert.Equal(t, 10, items[1].Stock)
}

func TestReadCatalog_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("Café;Bebidas;4000;12\n")
	require.NoError(t, err)

	items, err := readCatalog(bytes.NewBufferString(raw), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Café", items[0].Name)
}

func TestReadCatalog_Errors(t *testing.T) {
	_, err := readCatalog(strings.NewReader("Agua;Bebidas;gratis;1\n"), false)
	assert.Error(t, err)
	_, err = readCatalog(strings.NewReader("Agua;Bebidas;2500\n"), false)
	assert.Error(t, err)
}

func TestDefaultCatalog_Valid(t *testing.T) {
	for _, it := range defaultCatalog() {
		assert.GreaterOrEqual(t, len(it.Name), 3, it.Name)
		assert.True(t, it.Price.IsPositive(), it.Name)
	}
}
