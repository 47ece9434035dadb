package series

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/xhhuango/json"

	"github.com/quantsim/optionsim/models"
	"github.com/quantsim/optionsim/volatility"
)

const (
	// Span replayed for synthetic symbols.
	DefaultStartDate = "2019-01-01"
	DefaultEndDate   = "2025-11-14"

	historicalBaseIV = 0.40
)

// Store owns the historical-data cache for one session. It is plain
// mutable state with a single logical writer; nothing here is safe for
// concurrent use and nothing needs to be.
type Store struct {
	dir   string
	cache map[string][]models.PriceBar
}

func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: make(map[string][]models.PriceBar),
	}
}

// Load reads <dir>/<symbol>_historical.json, refines every bar's IV
// through the dynamic estimator, and caches the result.
func (s *Store) Load(symbol string) ([]models.PriceBar, error) {
	if bars, ok := s.cache[symbol]; ok {
		return bars, nil
	}

	path := filepath.Join(s.dir, strings.ToLower(symbol)+"_historical.json")
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading historical data for %s: %w", symbol, err)
	}

	var bars []models.PriceBar
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, fmt.Errorf("decoding historical data for %s: %w", symbol, err)
	}

	// Pre-seeded IVs get refined, bare bars get built from scratch, so
	// every bar ends up stamped by the same estimator.
	params := models.ScenarioParams{BaseIV: historicalBaseIV}
	for i := range bars {
		bars[i].IV = volatility.DynamicIV(bars, i, params, nil)
	}

	s.cache[symbol] = bars
	return bars, nil
}

// Get returns the series for a symbol: synthetic generation for catalog
// (mock_*) symbols, the historical file otherwise.
func (s *Store) Get(symbol string) ([]models.PriceBar, error) {
	if strings.HasPrefix(symbol, "mock_") {
		if bars, ok := s.cache[symbol]; ok {
			return bars, nil
		}
		bars := Generate(ParamsFor(symbol, 0), DefaultStartDate, DefaultEndDate)
		s.cache[symbol] = bars
		return bars, nil
	}
	return s.Load(symbol)
}
