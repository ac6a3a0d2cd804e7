package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_InStock(t *testing.T) {
	p := Product{ID: 1, Name: "Phone Case", StockQuantity: 4, IsActive: true}
	assert.True(t, p.InStock())
}

func TestProduct_InStock_ZeroQuantity(t *testing.T) {
	p := Product{ID: 1, StockQuantity: 0, IsActive: true}
	assert.False(t, p.InStock())
}

func TestProduct_InStock_Inactive(t *testing.T) {
	// Deactivated products disappear from the storefront even with stock left.
	p := Product{ID: 1, StockQuantity: 10, IsActive: false}
	assert.False(t, p.InStock())
}

func TestValidCondition(t *testing.T) {
	assert.True(t, ValidCondition(ConditionNew))
	assert.True(t, ValidCondition(ConditionUsed))
	assert.False(t, ValidCondition("refurbished"))
	assert.False(t, ValidCondition(""))
	assert.False(t, ValidCondition("NEW"))
}
