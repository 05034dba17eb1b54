package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("pt_BR"))

	assert.Equal(t, "Burger adicionado ao carrinho!", T("pt_BR", KeyCartItemAdded, "Burger"))
	assert.Equal(t, "Burger added to cart!", T("en", KeyCartItemAdded, "Burger"))
	assert.Equal(t, "Seu carrinho está vazio!", T("fr", KeyCartEmpty), "unknown languages fall back to the default")
	assert.Equal(t, "missing.key", T("en", "missing.key"))
	assert.ElementsMatch(t, []string{"pt_BR", "en"}, GetSupportedLanguages())
	assert.Equal(t, "pt_BR", DefaultLang())
}

func TestLocalesDefineSameKeys(t *testing.T) {
	require.NoError(t, Initialize("pt_BR"))

	pt := instance.translations["pt_BR"]
	en := instance.translations["en"]
	for key := range pt {
		assert.Contains(t, en, key)
	}
	assert.Len(t, en, len(pt))
}
