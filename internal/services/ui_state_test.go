package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/delivery-storefront/internal/models"
)

func TestUIState_Defaults(t *testing.T) {
	ui := NewUIState()
	snap := ui.Snapshot()

	assert.Nil(t, snap.SelectedProduct)
	assert.False(t, snap.CartVisible)
	assert.False(t, snap.CheckoutVisible)
	assert.Equal(t, models.CategoryAll, snap.Category)
}

func TestUIState_Selection(t *testing.T) {
	ui := NewUIState()
	product := burgerProduct()

	ui.SelectProduct(product)
	snap := ui.Snapshot()
	require.NotNil(t, snap.SelectedProduct)
	assert.Equal(t, "b1", snap.SelectedProduct.ID)

	snap.SelectedProduct.Name = "changed"
	assert.Equal(t, "Burger", ui.Snapshot().SelectedProduct.Name, "snapshots are copies")

	ui.ClearSelection()
	assert.Nil(t, ui.Snapshot().SelectedProduct)
}

func TestUIState_CheckoutClosesCart(t *testing.T) {
	ui := NewUIState()

	ui.ShowCart()
	assert.True(t, ui.Snapshot().CartVisible)

	ui.ShowCheckout()
	snap := ui.Snapshot()
	assert.False(t, snap.CartVisible)
	assert.True(t, snap.CheckoutVisible)

	ui.HideCheckout()
	assert.False(t, ui.Snapshot().CheckoutVisible)

	ui.ShowCart()
	ui.HideCart()
	assert.False(t, ui.Snapshot().CartVisible)
}

func TestUIState_Category(t *testing.T) {
	ui := NewUIState()

	ui.SetCategory("Lanche")
	assert.Equal(t, "Lanche", ui.Category())

	ui.SetCategory("")
	assert.Equal(t, models.CategoryAll, ui.Category())

	ui.SetCategory("Bebidas")
	ui.ResetCategory()
	assert.Equal(t, models.CategoryAll, ui.Category())
}
