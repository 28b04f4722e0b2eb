package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boycott-check/apierrors"
	"boycott-check/catalog"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return NewMatcher(c, nil)
}

func TestCheckRejectsEmptyInput(t *testing.T) {
	m := newTestMatcher(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := m.Check(q)
		require.Error(t, err, "query %q", q)
		assert.True(t, apierrors.IsInvalidInput(err))
	}
}

func TestCheckMatch(t *testing.T) {
	m := newTestMatcher(t)

	res, err := m.Check("Coca-Cola")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	require.NotNil(t, res.Entry)
	assert.Equal(t, "Coca-Cola", res.Entry.Name)
	assert.Equal(t, "Beverages", res.Entry.Category)
	assert.NotEmpty(t, res.Alternatives)
	assert.Equal(t, "Boga", res.Alternatives[0].Name)
}

func TestCheckIsCaseInsensitiveAndTrims(t *testing.T) {
	m := newTestMatcher(t)

	want, err := m.Check("Coca-Cola")
	require.NoError(t, err)

	for _, q := range []string{"cOcA-cOlA", "  COCA-COLA  "} {
		got, err := m.Check(q)
		require.NoError(t, err)
		assert.Equal(t, want.Entry, got.Entry)
		assert.Equal(t, want.Alternatives, got.Alternatives)
		assert.Equal(t, "coca-cola", got.Query)
	}
}

func TestCheckMatchesBrand(t *testing.T) {
	m := newTestMatcher(t)

	res, err := m.Check("yum! brands")
	require.NoError(t, err)
	require.True(t, res.Matched)
	assert.Equal(t, "KFC", res.Entry.Name)
	assert.Equal(t, "Fast Food", res.Entry.Category)
}

func TestCheckFirstMatchWins(t *testing.T) {
	m := newTestMatcher(t)

	// "co" steckt in Coca-Cola, PepsiCo, Starbucks Corporation, ... ; Coca-Cola steht zuerst
	res, err := m.Check("co")
	require.NoError(t, err)
	require.True(t, res.Matched)
	assert.Equal(t, "Coca-Cola", res.Entry.Name)
}

func TestCheckNoMatch(t *testing.T) {
	m := newTestMatcher(t)

	for _, q := range []string{"Random Product", "قهوة", strings.Repeat("x", 100000)} {
		res, err := m.Check(q)
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.Nil(t, res.Entry)
		assert.NotNil(t, res.Alternatives)
		assert.Empty(t, res.Alternatives)
	}
}

func TestCheckUnmappedCategoryYieldsEmptyAlternatives(t *testing.T) {
	c, err := catalog.Parse([]byte("entries:\n  - name: Acme\n    brand: Acme Corp\n    category: Toys\n"))
	require.NoError(t, err)
	m := NewMatcher(c, nil)

	res, err := m.Check("acme")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.NotNil(t, res.Alternatives)
	assert.Empty(t, res.Alternatives)
}

func TestCheckIsIdempotent(t *testing.T) {
	m := newTestMatcher(t)

	first, err := m.Check("Starbucks")
	require.NoError(t, err)
	first.Alternatives[0].Name = "mutated"

	second, err := m.Check("Starbucks")
	require.NoError(t, err)
	assert.Equal(t, "Café Bon", second.Alternatives[0].Name)

	third, err := m.Check("Starbucks")
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestNewCheckResponse(t *testing.T) {
	m := newTestMatcher(t)

	hit, err := m.Check("pepsi")
	require.NoError(t, err)
	resp := NewCheckResponse(hit)
	assert.True(t, resp.IsBoycott)
	assert.Equal(t, "Pepsi", resp.Product.Name)
	assert.Equal(t, "⚠️ Pepsi is on the boycott list!", resp.Message)
	assert.Len(t, resp.Alternatives, 4)

	miss, err := m.Check(" Local Bread ")
	require.NoError(t, err)
	resp = NewCheckResponse(miss)
	assert.False(t, resp.IsBoycott)
	assert.Nil(t, resp.Product)
	assert.Equal(t, "✓ 'local bread' is not on the boycott list.", resp.Message)
	assert.Empty(t, resp.Alternatives)
}
