package bank

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuditEntries(t *testing.T) {
	owned := map[uint]struct{}{1: {}, 2: {}, 3: {}}

	entries, err := ParseAuditEntries(map[string]string{
		"1": "1200.50",
		"2": "0",
		"3": "abc", // bozuk bakiye: satır atlanır, istek reddedilmez
	}, owned)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[1].Equal(decimal.RequireFromString("1200.50")))
	assert.True(t, entries[2].Equal(decimal.Zero))
	_, ok := entries[3]
	assert.False(t, ok)
}

func TestParseAuditEntries_UnknownBankRejected(t *testing.T) {
	owned := map[uint]struct{}{1: {}}

	_, err := ParseAuditEntries(map[string]string{
		"1": "100",
		"7": "50", // başka kullanıcının bankası olabilir
	}, owned)

	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestParseAuditEntries_BadIDRejected(t *testing.T) {
	owned := map[uint]struct{}{1: {}}

	_, err := ParseAuditEntries(map[string]string{"x1": "100"}, owned)
	require.Error(t, err)

	_, err = ParseAuditEntries(map[string]string{"0": "100"}, owned)
	require.Error(t, err)
}
