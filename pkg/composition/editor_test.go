package composition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/christianolin/cellar-critiques-sub000/pkg/composition"
	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/taxonomy"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func testCatalog() *taxonomy.Catalog {
	grapes := []model.GrapeVariety{
		{Model: gormModel(1), Name: "Cabernet Sauvignon", Type: model.GrapeTypeRed},
		{Model: gormModel(2), Name: "Merlot", Type: model.GrapeTypeRed},
		{Model: gormModel(3), Name: "Cabernet Franc", Type: model.GrapeTypeRed},
		{Model: gormModel(4), Name: "Chardonnay", Type: model.GrapeTypeWhite},
	}

	return taxonomy.NewCatalog(nil, nil, nil, grapes)
}

func TestAddRebalancesEqually(t *testing.T) {
	editor := composition.NewEditor(testCatalog())

	require.True(t, editor.Add(1))
	assert.Equal(t, []composition.Entry{{GrapeVarietyID: 1, Percent: 100}}, editor.Entries())

	require.True(t, editor.Add(2))
	assert.Equal(t, []composition.Entry{
		{GrapeVarietyID: 1, Percent: 50},
		{GrapeVarietyID: 2, Percent: 50},
	}, editor.Entries())
}

// Three entries settle at 33/33/33; the missing point is intentional and
// never redistributed.
func TestThreeWayRebalanceLeavesSlack(t *testing.T) {
	editor := composition.NewEditor(testCatalog())

	for _, id := range []uint{1, 2, 3} {
		require.True(t, editor.Add(id))
	}

	for _, entry := range editor.Entries() {
		assert.Equal(t, int64(33), entry.Percent)
	}

	assert.Equal(t, int64(99), editor.Total())
}

func TestAddRejectsDuplicatesAndUnknownVarieties(t *testing.T) {
	editor := composition.NewEditor(testCatalog())

	require.True(t, editor.Add(1))
	assert.False(t, editor.Add(1))
	assert.False(t, editor.Add(99))
	assert.Equal(t, 1, editor.Len())
	assert.Equal(t, int64(100), editor.Total())
}

func TestRemoveRebalancesRemainderAndKeepsOrder(t *testing.T) {
	editor := composition.NewEditor(testCatalog())

	for _, id := range []uint{1, 2, 3} {
		require.True(t, editor.Add(id))
	}

	require.True(t, editor.Remove(2))

	entries := editor.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint(1), entries[0].GrapeVarietyID)
	assert.Equal(t, uint(3), entries[1].GrapeVarietyID)
	assert.Equal(t, int64(50), entries[0].Percent)
	assert.Equal(t, int64(50), entries[1].Percent)

	assert.False(t, editor.Remove(2))
}

func TestSetPercentTouchesOnlyItsEntry(t *testing.T) {
	editor := composition.NewEditor(testCatalog())

	require.True(t, editor.Add(1))
	require.True(t, editor.Add(2))

	require.True(t, editor.SetPercent(1, 70))

	entries := editor.Entries()
	assert.Equal(t, int64(70), entries[0].Percent)
	assert.Equal(t, int64(50), entries[1].Percent)
	assert.Equal(t, int64(120), editor.Total())
}

func TestSetPercentValidatesRange(t *testing.T) {
	editor := composition.NewEditor(testCatalog())

	require.True(t, editor.Add(1))

	assert.False(t, editor.SetPercent(1, -1))
	assert.False(t, editor.SetPercent(1, 101))
	assert.False(t, editor.SetPercent(99, 50))
	assert.Equal(t, int64(100), editor.Total())
}

// A later Add rebalances everything, discarding earlier manual overrides.
func TestAddAfterManualOverrideRebalances(t *testing.T) {
	editor := composition.NewEditor(testCatalog())

	require.True(t, editor.Add(1))
	require.True(t, editor.SetPercent(1, 80))
	require.True(t, editor.Add(2))

	for _, entry := range editor.Entries() {
		assert.Equal(t, int64(50), entry.Percent)
	}
}
