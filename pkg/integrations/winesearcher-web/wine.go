package winesearcherweb

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

type WineJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Brand       struct {
		Name string `json:"name"`
	} `json:"brand"`
	Image struct {
		ContentURL string `json:"contentUrl"`
	} `json:"image"`
	Category string `json:"category"`
}

type WineScraped struct {
	IDLink   string `attr:"href"            selector:"a.wine-card__link"`
	Name     string `selector:".wine-card__name"`
	Producer string `selector:".wine-card__producer"`
	Style    string `selector:".wine-card__style"`
	Origin   string `selector:".wine-card__region"`
}

func (w *WineSearcherWebIntegration) FindWine(name string) ([]model.Wine, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains("www.wine-searcher.com"),
		colly.UserAgent("Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"),
	)

	var (
		errs         error
		results      []model.Wine
		scrapedCards []WineScraped
	)

	collector.OnHTML(".wine-card", func(element *colly.HTMLElement) {
		scraped := WineScraped{}

		err := element.Unmarshal(&scraped)
		if multierr.AppendInto(&errs, err) {
			w.logger.Error("failed to unmarshal scraped wine", zap.Error(err))

			return
		}

		w.logger.Info("successfully scraped item from results", zap.String("name", scraped.Name))
		scrapedCards = append(scrapedCards, scraped)
	})

	collector.OnError(func(response *colly.Response, err error) {
		w.logger.Error("error while scraping wine search results", zap.String("url", response.Request.URL.String()), zap.Error(err))
	})

	w.logger.Info("scraping query results", zap.String("query", name))
	multierr.AppendInto(&errs, collector.Visit("https://www.wine-searcher.com/find/"+strings.ReplaceAll(name, " ", "+")))

	for _, scraped := range scrapedCards {
		wine, err := w.getWineData(collector.Clone(), scraped)
		if multierr.AppendInto(&errs, err) {
			continue
		}

		results = append(results, wine)
	}

	w.logger.Info("finished scraping query results", zap.Int("count", len(results)), zap.Error(errs))

	return results, errs
}

func (w *WineSearcherWebIntegration) getWineData(detailCollector *colly.Collector, scraped WineScraped) (model.Wine, error) {
	_, cleanName := ExtractVintage(scraped.Name)

	wine := model.Wine{
		Name:     cleanName,
		WineType: ParseWineType(scraped.Style),
		Producer: model.Producer{Name: scraped.Producer},
	}

	detailCollector.OnHTML("head script[type='application/ld+json']", func(element *colly.HTMLElement) {
		var wineJSON WineJSON
		_ = json.Unmarshal([]byte(element.Text), &wineJSON)

		wine.ImageURL = wineJSON.Image.ContentURL

		if wine.Producer.Name == "" {
			wine.Producer.Name = wineJSON.Brand.Name
		}

		if !wine.WineType.Valid() {
			wine.WineType = ParseWineType(wineJSON.Category)
		}
	})

	err := detailCollector.Visit("https://www.wine-searcher.com" + scraped.IDLink)

	return wine, err
}

// ExtractVintage splits a leading four digit vintage off a scraped wine
// name. Search results list wines as "2015 Chateau Margaux"; the vintage
// belongs on the cellar item or rating, not on the wine itself.
func ExtractVintage(name string) (*int64, string) {
	trimmed := strings.TrimSpace(name)

	fields := strings.Fields(trimmed)
	if len(fields) < 2 || len(fields[0]) != 4 {
		return nil, trimmed
	}

	vintage, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || vintage < 1800 || vintage > 2100 {
		return nil, trimmed
	}

	return &vintage, strings.Join(fields[1:], " ")
}

// ParseWineType maps a scraped style string onto a wine type. Unrecognized
// styles come back as an empty, invalid type.
func ParseWineType(style string) model.WineType {
	lowered := strings.ToLower(style)

	switch {
	case strings.Contains(lowered, "sparkling"), strings.Contains(lowered, "champagne"):
		return model.WineTypeSparkling
	case strings.Contains(lowered, "fortified"), strings.Contains(lowered, "port"), strings.Contains(lowered, "sherry"):
		return model.WineTypeFortified
	case strings.Contains(lowered, "dessert"), strings.Contains(lowered, "sweet"):
		return model.WineTypeDessert
	case strings.Contains(lowered, "ros"):
		return model.WineTypeRose
	case strings.Contains(lowered, "white"):
		return model.WineTypeWhite
	case strings.Contains(lowered, "red"):
		return model.WineTypeRed
	}

	return model.WineType("")
}
