package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
	"github.com/christianolin/cellar-critiques-sub000/pkg/resolver"
)

type producerRepoMock struct {
	mock.Mock
}

func (m *producerRepoMock) FindProducerByName(ctx context.Context, name string) (*model.Producer, error) {
	args := m.Called(ctx, name)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Producer), args.Error(1)
}

func (m *producerRepoMock) AddProducer(ctx context.Context, name string) (*model.Producer, error) {
	args := m.Called(ctx, name)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Producer), args.Error(1)
}

type wineRepoMock struct {
	mock.Mock
}

func (m *wineRepoMock) AddWine(ctx context.Context, wine model.Wine) (*model.Wine, error) {
	args := m.Called(ctx, wine)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Wine), args.Error(1)
}

func newResolver(t *testing.T) (*resolver.Resolver, *producerRepoMock, *wineRepoMock) {
	t.Helper()

	producers := &producerRepoMock{}
	wines := &wineRepoMock{}

	return resolver.NewResolver(producers, wines, zaptest.NewLogger(t)), producers, wines
}

func validRequest() resolver.Request {
	return resolver.Request{
		WineName:     "Margaux",
		ProducerName: "Château Margaux",
		WineType:     model.WineTypeRed,
		CountryID:    pointy.Uint(1),
	}
}

func savedWine(id uint) *model.Wine {
	return &model.Wine{Model: gorm.Model{ID: id}}
}

// An existing id passes straight through with no lookups and no writes.
func TestResolveExistingIDPassesThrough(t *testing.T) {
	subject, producers, wines := newResolver(t)

	request := resolver.Request{ExistingWineID: pointy.Uint(42)}

	wineID, err := subject.Resolve(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, uint(42), wineID)

	producers.AssertNotCalled(t, "FindProducerByName", mock.Anything, mock.Anything)
	wines.AssertNotCalled(t, "AddWine", mock.Anything, mock.Anything)
}

func TestResolveValidatesRequiredFields(t *testing.T) {
	subject, producers, wines := newResolver(t)

	invalid := []resolver.Request{
		{ProducerName: "P", WineType: model.WineTypeRed, CountryID: pointy.Uint(1)},
		{WineName: "W", WineType: model.WineTypeRed, CountryID: pointy.Uint(1)},
		{WineName: "W", ProducerName: "P", WineType: model.WineTypeRed},
		{WineName: "W", ProducerName: "P", WineType: "pink", CountryID: pointy.Uint(1)},
	}

	for _, request := range invalid {
		_, err := subject.Resolve(context.Background(), request)
		assert.ErrorIs(t, err, resolver.ErrInvalidRequest)
	}

	producers.AssertNotCalled(t, "FindProducerByName", mock.Anything, mock.Anything)
	wines.AssertNotCalled(t, "AddWine", mock.Anything, mock.Anything)
}

func TestResolveReusesExistingProducer(t *testing.T) {
	subject, producers, wines := newResolver(t)

	producers.On("FindProducerByName", mock.Anything, "Château Margaux").
		Return(&model.Producer{Model: gorm.Model{ID: 5}, Name: "Château Margaux"}, nil)
	wines.On("AddWine", mock.Anything, mock.MatchedBy(func(wine model.Wine) bool {
		return wine.ProducerID == 5 && wine.Name == "Margaux"
	})).Return(savedWine(9), nil)

	wineID, err := subject.Resolve(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, uint(9), wineID)

	producers.AssertNotCalled(t, "AddProducer", mock.Anything, mock.Anything)
}

func TestResolveCreatesMissingProducer(t *testing.T) {
	subject, producers, wines := newResolver(t)

	producers.On("FindProducerByName", mock.Anything, "Château Margaux").
		Return(nil, repository.ErrProducerNotFound)
	producers.On("AddProducer", mock.Anything, "Château Margaux").
		Return(&model.Producer{Model: gorm.Model{ID: 6}, Name: "Château Margaux"}, nil)
	wines.On("AddWine", mock.Anything, mock.MatchedBy(func(wine model.Wine) bool {
		return wine.ProducerID == 6
	})).Return(savedWine(9), nil)

	wineID, err := subject.Resolve(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, uint(9), wineID)
}

// Submitting the same manual entry twice creates two distinct wine rows.
func TestResolveDuplicatesOnRepeatedManualEntry(t *testing.T) {
	subject, producers, wines := newResolver(t)

	producers.On("FindProducerByName", mock.Anything, "Château Margaux").
		Return(&model.Producer{Model: gorm.Model{ID: 5}}, nil)
	wines.On("AddWine", mock.Anything, mock.Anything).Return(savedWine(9), nil).Once()
	wines.On("AddWine", mock.Anything, mock.Anything).Return(savedWine(10), nil).Once()

	first, err := subject.Resolve(context.Background(), validRequest())
	require.NoError(t, err)

	second, err := subject.Resolve(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	wines.AssertNumberOfCalls(t, "AddWine", 2)
}

// A failing wine insert does not roll back a producer created on the way.
func TestResolveWineFailureLeavesCreatedProducer(t *testing.T) {
	subject, producers, wines := newResolver(t)

	producers.On("FindProducerByName", mock.Anything, "Château Margaux").
		Return(nil, repository.ErrProducerNotFound)
	producers.On("AddProducer", mock.Anything, "Château Margaux").
		Return(&model.Producer{Model: gorm.Model{ID: 6}}, nil)
	wines.On("AddWine", mock.Anything, mock.Anything).Return(nil, gorm.ErrInvalidData)

	_, err := subject.Resolve(context.Background(), validRequest())
	require.Error(t, err)

	producers.AssertCalled(t, "AddProducer", mock.Anything, "Château Margaux")
}

func TestResolvePropagatesLookupError(t *testing.T) {
	subject, producers, _ := newResolver(t)

	producers.On("FindProducerByName", mock.Anything, "Château Margaux").
		Return(nil, gorm.ErrInvalidDB)

	_, err := subject.Resolve(context.Background(), validRequest())
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
}
