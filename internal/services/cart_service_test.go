package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/delivery-storefront/internal/models"
	"github.com/javajoker/delivery-storefront/internal/storage"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) models.Notification {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
	return models.Notification{Message: message}
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.messages...)
}

type CartServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *storage.MemoryStore
	repo     *storage.CartRepository
	notifier *recordingNotifier
	cart     *CartService
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = storage.NewMemoryStore()
	suite.repo = storage.NewCartRepository(suite.store, "deliveryAppCart:test")
	suite.notifier = &recordingNotifier{}
	suite.cart = NewCartService(suite.ctx, suite.repo, suite.notifier, "pt_BR")
}

func (suite *CartServiceTestSuite) assertTotalsConsistent() {
	lines := suite.cart.Lines()
	total, count := 0.0, 0
	for _, line := range lines {
		suite.Greater(line.Quantity, 0)
		total += line.UnitPrice * float64(line.Quantity)
		count += line.Quantity
	}
	suite.InDelta(total, suite.cart.Total(), 1e-9)
	suite.Equal(count, suite.cart.ItemCount())
	suite.Equal(lines, suite.repo.Load(suite.ctx), "storage mirrors memory after every mutation")
}

func (suite *CartServiceTestSuite) TestIdenticalConfigurationsMerge() {
	product := burgerProduct()
	opts := []models.SelectedOption{{Name: "Ponto", Value: "Bem passado"}}

	_, err := suite.cart.AddItem(suite.ctx, product, 1, opts)
	suite.Require().NoError(err)
	line, err := suite.cart.AddItem(suite.ctx, product, 2, opts)
	suite.Require().NoError(err)

	suite.Len(suite.cart.Lines(), 1)
	suite.Equal(3, line.Quantity)
	suite.Equal("b1-Ponto: Bem passado", line.Key)
	suite.Equal("Ponto: Bem passado", line.OptionsText)
	suite.assertTotalsConsistent()
}

func (suite *CartServiceTestSuite) TestDifferentOptionsMakeDistinctLines() {
	product := burgerProduct()

	_, err := suite.cart.AddItem(suite.ctx, product, 1, []models.SelectedOption{{Name: "Ponto", Value: "Bem passado"}})
	suite.Require().NoError(err)
	_, err = suite.cart.AddItem(suite.ctx, product, 1, []models.SelectedOption{{Name: "Ponto", Value: "Mal passado"}})
	suite.Require().NoError(err)
	_, err = suite.cart.AddItem(suite.ctx, product, 1, nil)
	suite.Require().NoError(err)

	lines := suite.cart.Lines()
	suite.Require().Len(lines, 3)
	suite.Equal("b1-Ponto: Bem passado", lines[0].Key, "insertion order is kept")
	suite.Equal("b1-", lines[2].Key)
	suite.assertTotalsConsistent()
}

func (suite *CartServiceTestSuite) TestPriceIsSnapshotAtAddTime() {
	product := burgerProduct()
	opts := []models.SelectedOption{{Name: "Adicionais", Value: "Extra cheese (+R$2,50)", PriceDelta: 2.5}}

	line, err := suite.cart.AddItem(suite.ctx, product, 1, opts)
	suite.Require().NoError(err)
	suite.Equal(12.5, line.UnitPrice)

	product.Price = 99
	line, err = suite.cart.AddItem(suite.ctx, product, 1, opts)
	suite.Require().NoError(err)
	suite.Equal(12.5, line.UnitPrice, "merging never reprices")
	suite.Equal(25.0, suite.cart.Total())
}

func (suite *CartServiceTestSuite) TestAddRejectsNonPositiveQuantity() {
	_, err := suite.cart.AddItem(suite.ctx, burgerProduct(), 0, nil)
	suite.ErrorIs(err, ErrInvalidQuantity)
	suite.Empty(suite.cart.Lines())
	suite.Empty(suite.notifier.Messages())
}

func (suite *CartServiceTestSuite) TestAddNotifies() {
	_, err := suite.cart.AddItem(suite.ctx, burgerProduct(), 1, nil)
	suite.Require().NoError(err)
	suite.Equal([]string{"Burger adicionado ao carrinho!"}, suite.notifier.Messages())
}

func (suite *CartServiceTestSuite) TestUpdateQuantity() {
	line, err := suite.cart.AddItem(suite.ctx, burgerProduct(), 2, nil)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.cart.UpdateQuantity(suite.ctx, line.Key, 3))
	suite.Equal(5, suite.cart.ItemCount())
	suite.assertTotalsConsistent()

	suite.Require().NoError(suite.cart.UpdateQuantity(suite.ctx, line.Key, -4))
	suite.Equal(1, suite.cart.ItemCount())

	suite.Require().NoError(suite.cart.UpdateQuantity(suite.ctx, line.Key, -10))
	suite.Empty(suite.cart.Lines(), "a line that drops to zero is removed")
	suite.assertTotalsConsistent()

	suite.ErrorIs(suite.cart.UpdateQuantity(suite.ctx, line.Key, 1), ErrLineNotFound)
}

func (suite *CartServiceTestSuite) TestRemoveAndClear() {
	soda := models.Product{ID: "s1", Name: "Soda", Price: 5}
	burger, err := suite.cart.AddItem(suite.ctx, burgerProduct(), 2, nil)
	suite.Require().NoError(err)
	_, err = suite.cart.AddItem(suite.ctx, soda, 1, nil)
	suite.Require().NoError(err)
	suite.Equal(25.0, suite.cart.Total())

	suite.cart.RemoveLine(suite.ctx, burger.Key)
	suite.Equal(5.0, suite.cart.Total())
	suite.assertTotalsConsistent()

	suite.cart.RemoveLine(suite.ctx, "missing")
	suite.Len(suite.cart.Lines(), 1)

	suite.cart.Clear(suite.ctx)
	suite.Empty(suite.cart.Lines())
	suite.Zero(suite.cart.Total())
	suite.assertTotalsConsistent()
}

func (suite *CartServiceTestSuite) TestLoadsStoredCartOnce() {
	_, err := suite.cart.AddItem(suite.ctx, burgerProduct(), 2, nil)
	suite.Require().NoError(err)

	reloaded := NewCartService(suite.ctx, suite.repo, nil, "pt_BR")
	suite.Equal(suite.cart.Lines(), reloaded.Lines())
	suite.Equal(20.0, reloaded.Total())
}

func (suite *CartServiceTestSuite) TestSnapshot() {
	_, err := suite.cart.AddItem(suite.ctx, burgerProduct(), 2, nil)
	suite.Require().NoError(err)

	snap := suite.cart.Snapshot()
	snap.Lines[0].Quantity = 100

	suite.Equal(2, suite.cart.Lines()[0].Quantity, "snapshots are copies")
	suite.Equal(20.0, snap.Total)
	suite.Equal(2, snap.ItemCount)
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func TestCartTotalExample(t *testing.T) {
	lines := []models.CartLine{
		{Key: "b-", Name: "Burger", Quantity: 2, UnitPrice: 10},
		{Key: "s-", Name: "Soda", Quantity: 1, UnitPrice: 5},
	}
	assert.Equal(t, 25.0, cartTotal(lines))
	assert.Equal(t, 3, itemCount(lines))
}

func TestCartService_CorruptStorageStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "k", `{"not":"a list"}`))

	cart := NewCartService(ctx, storage.NewCartRepository(store, "k"), nil, "pt_BR")

	assert.Empty(t, cart.Lines())
	healed, _, _ := store.Get(ctx, "k")
	assert.Equal(t, "[]", healed)
}
