package series

import "github.com/quantsim/optionsim/models"

// The synthetic catalog: three extreme teaching scenarios.
// mock_1 grinds down through repeated bull traps, mock_2 whipsaws
// sideways under very high IV, mock_3 is a relentless bull market.
var scenarios = map[string]models.ScenarioParams{
	"mock_1": {
		StartPrice:      200,
		EndPrice:        50,
		DailyVolatility: 0.055,
		BaseIV:          0.70,
		Volume:          models.VolumeRange{Min: 50000000, Max: 150000000},
		Seed:            7001,
		Events: []models.MarketEvent{
			{Date: "2019-08-15", Drop: 0.18, IVSpike: 0.90},
			{Date: "2019-10-10", Jump: 0.08, IVSpike: 0.75},
			{Date: "2020-03-12", Drop: 0.30, IVSpike: 1.20},
			{Date: "2020-05-20", Jump: 0.06, IVSpike: 0.85},
			{Date: "2020-09-15", Drop: 0.22, IVSpike: 0.95},
			{Date: "2021-03-10", Jump: 0.10, IVSpike: 0.80},
			{Date: "2021-11-05", Drop: 0.15, IVSpike: 0.85},
			{Date: "2022-04-01", Jump: 0.05, IVSpike: 0.75},
			{Date: "2022-10-15", Drop: 0.25, IVSpike: 1.10},
			{Date: "2023-02-10", Jump: 0.07, IVSpike: 0.70},
			{Date: "2023-08-20", Drop: 0.12, IVSpike: 0.80},
			{Date: "2024-03-15", Jump: 0.04, IVSpike: 0.65},
			{Date: "2024-09-01", Drop: 0.20, IVSpike: 1.00},
		},
	},
	"mock_2": {
		StartPrice:      100.00,
		EndPrice:        110.00,
		DailyVolatility: 0.085,
		BaseIV:          1.10,
		Volume:          models.VolumeRange{Min: 80000000, Max: 200000000},
		Seed:            7002,
		Events: []models.MarketEvent{
			{Date: "2019-03-15", Jump: 0.15, IVSpike: 1.30},
			{Date: "2019-06-20", Drop: 0.18, IVSpike: 1.35},
			{Date: "2019-09-10", Jump: 0.20, IVSpike: 1.28},
			{Date: "2019-12-05", Drop: 0.12, IVSpike: 1.25},
			{Date: "2020-02-25", Drop: 0.25, IVSpike: 1.50},
			{Date: "2020-05-15", Jump: 0.22, IVSpike: 1.45},
			{Date: "2020-08-10", Drop: 0.15, IVSpike: 1.40},
			{Date: "2020-11-20", Jump: 0.18, IVSpike: 1.35},
			{Date: "2021-02-10", Drop: 0.20, IVSpike: 1.42},
			{Date: "2021-05-25", Jump: 0.16, IVSpike: 1.38},
			{Date: "2021-08-15", Drop: 0.14, IVSpike: 1.33},
			{Date: "2021-11-05", Jump: 0.19, IVSpike: 1.40},
			{Date: "2022-01-20", Drop: 0.22, IVSpike: 1.48},
			{Date: "2022-04-15", Jump: 0.17, IVSpike: 1.36},
			{Date: "2022-07-10", Drop: 0.16, IVSpike: 1.39},
			{Date: "2022-10-25", Jump: 0.21, IVSpike: 1.44},
			{Date: "2023-01-15", Drop: 0.13, IVSpike: 1.32},
			{Date: "2023-04-20", Jump: 0.15, IVSpike: 1.35},
			{Date: "2023-07-10", Drop: 0.19, IVSpike: 1.41},
			{Date: "2023-10-05", Jump: 0.18, IVSpike: 1.37},
			{Date: "2024-01-25", Drop: 0.14, IVSpike: 1.34},
			{Date: "2024-05-10", Jump: 0.16, IVSpike: 1.38},
			{Date: "2024-08-15", Drop: 0.17, IVSpike: 1.40},
			{Date: "2024-11-01", Jump: 0.12, IVSpike: 1.30},
		},
	},
	"mock_3": {
		StartPrice:      50.00,
		EndPrice:        300.00,
		DailyVolatility: 0.022,
		BaseIV:          0.25,
		Volume:          models.VolumeRange{Min: 20000000, Max: 60000000},
		Seed:            7003,
		Events: []models.MarketEvent{
			{Date: "2019-04-10", Jump: 0.12, IVSpike: 0.30},
			{Date: "2019-08-20", Jump: 0.10, IVSpike: 0.28},
			{Date: "2020-01-15", Jump: 0.15, IVSpike: 0.32},
			{Date: "2020-03-15", Drop: 0.05, IVSpike: 0.35},
			{Date: "2020-06-10", Jump: 0.18, IVSpike: 0.30},
			{Date: "2020-09-25", Jump: 0.14, IVSpike: 0.28},
			{Date: "2021-01-20", Jump: 0.20, IVSpike: 0.32},
			{Date: "2021-05-10", Drop: 0.03, IVSpike: 0.30},
			{Date: "2021-08-15", Jump: 0.16, IVSpike: 0.28},
			{Date: "2021-11-10", Jump: 0.22, IVSpike: 0.35},
			{Date: "2022-02-20", Jump: 0.15, IVSpike: 0.30},
			{Date: "2022-06-15", Jump: 0.18, IVSpike: 0.32},
			{Date: "2022-09-10", Drop: 0.04, IVSpike: 0.33},
			{Date: "2022-12-05", Jump: 0.17, IVSpike: 0.29},
			{Date: "2023-03-20", Jump: 0.25, IVSpike: 0.35},
			{Date: "2023-07-10", Jump: 0.19, IVSpike: 0.32},
			{Date: "2023-10-25", Jump: 0.21, IVSpike: 0.33},
			{Date: "2024-02-15", Jump: 0.16, IVSpike: 0.30},
			{Date: "2024-06-10", Jump: 0.23, IVSpike: 0.34},
			{Date: "2024-09-20", Jump: 0.20, IVSpike: 0.32},
		},
	},
}

// ParamsFor returns the catalog entry for a synthetic symbol, or a
// plain doubling random walk seeded from basePrice for anything else.
func ParamsFor(symbol string, basePrice float64) models.ScenarioParams {
	if params, ok := scenarios[symbol]; ok {
		return params
	}
	if basePrice == 0 {
		basePrice = 100
	}
	return models.ScenarioParams{
		StartPrice:      basePrice,
		EndPrice:        basePrice * 2,
		DailyVolatility: 0.022,
		BaseIV:          0.30,
		Volume:          models.VolumeRange{Min: 1000000, Max: 5000000},
		Seed:            1,
	}
}

// Scenarios lists the catalog's symbol names.
func Scenarios() []string {
	return []string{"mock_1", "mock_2", "mock_3"}
}
