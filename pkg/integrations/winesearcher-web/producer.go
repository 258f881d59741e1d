package winesearcherweb

import (
	"encoding/json"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.uber.org/multierr"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

type ProducerJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (w *WineSearcherWebIntegration) FindProducer(name string) ([]model.Producer, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains("www.wine-searcher.com"),
		colly.UserAgent("Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"),
	)

	var (
		errs    error
		results []model.Producer
		seen    = map[string]bool{}
	)

	collector.OnHTML(".wine-card__producer", func(element *colly.HTMLElement) {
		producerName := strings.TrimSpace(element.Text)
		if producerName == "" || seen[producerName] {
			return
		}

		seen[producerName] = true
		results = append(results, model.Producer{Name: producerName})
	})

	collector.OnHTML("head script[type='application/ld+json']", func(element *colly.HTMLElement) {
		var producerJSON ProducerJSON
		_ = json.Unmarshal([]byte(element.Text), &producerJSON)

		if producerJSON.Name == "" || seen[producerJSON.Name] {
			return
		}

		seen[producerJSON.Name] = true
		results = append(results, model.Producer{Name: producerJSON.Name})
	})

	multierr.AppendInto(&errs, collector.Visit("https://www.wine-searcher.com/find/"+strings.ReplaceAll(name, " ", "+")))

	return results, errs
}
