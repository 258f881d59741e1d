// Package resolver turns free-text wine and producer names into canonical
// database rows. Several dialogs (wine creation, add-to-cellar, rating
// creation) share this one implementation.
package resolver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
)

var ErrInvalidRequest = errors.New("invalid wine")

type producerRepository interface {
	FindProducerByName(ctx context.Context, name string) (*model.Producer, error)
	AddProducer(ctx context.Context, name string) (*model.Producer, error)
}

type wineRepository interface {
	AddWine(ctx context.Context, wine model.Wine) (*model.Wine, error)
}

type Resolver struct {
	producers producerRepository
	wines     wineRepository
	logger    *zap.Logger
}

func NewResolver(producers producerRepository, wines wineRepository, logger *zap.Logger) *Resolver {
	return &Resolver{producers: producers, wines: wines, logger: logger}
}

// Request carries the fields of a manually entered wine. ExistingWineID is
// set when the user picked a wine from search or from their own cellar.
type Request struct {
	ExistingWineID *uint
	WineName       string
	ProducerName   string
	WineType       model.WineType
	CountryID      *uint
	RegionID       *uint
	AppellationID  *uint
	Grapes         []model.WineGrape
}

// Resolve returns the canonical wine id for a request.
//
// An existing id passes through untouched: no new row, no duplicate check.
// Otherwise the producer is matched case-insensitively by name (created when
// absent) and a new wine row is always inserted. Repeated manual entry of the
// same wine produces duplicate rows; only the explicit search-and-select path
// avoids that. The producer and wine writes are not transactional: a wine
// insert failure leaves an already-created producer in place.
func (r *Resolver) Resolve(ctx context.Context, request Request) (uint, error) {
	if request.ExistingWineID != nil {
		return *request.ExistingWineID, nil
	}

	if request.WineName == "" || request.ProducerName == "" || request.CountryID == nil || !request.WineType.Valid() {
		return 0, ErrInvalidRequest
	}

	producer, err := r.producers.FindProducerByName(ctx, request.ProducerName)
	if err != nil {
		if !errors.Is(err, repository.ErrProducerNotFound) {
			return 0, err
		}

		producer, err = r.producers.AddProducer(ctx, request.ProducerName)
		if err != nil {
			return 0, err
		}

		r.logger.Info("created producer", zap.Uint("id", producer.ID), zap.String("name", producer.Name))
	}

	wine := model.Wine{
		Name:          request.WineName,
		WineType:      request.WineType,
		ProducerID:    producer.ID,
		CountryID:     request.CountryID,
		RegionID:      request.RegionID,
		AppellationID: request.AppellationID,
		Grapes:        request.Grapes,
	}

	saved, err := r.wines.AddWine(ctx, wine)
	if err != nil {
		r.logger.Error("wine not created after producer resolve", zap.Uint("producer_id", producer.ID), zap.Error(err))

		return 0, err
	}

	return saved.ID, nil
}
