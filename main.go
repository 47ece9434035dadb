package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/xhhuango/json"

	"github.com/quantsim/optionsim/chain"
	"github.com/quantsim/optionsim/indicators"
	"github.com/quantsim/optionsim/series"
	"github.com/quantsim/optionsim/simslack"
	"github.com/quantsim/optionsim/volatility"
)

const (
	defaultRiskFreeRate = 0.045
	strikeCount         = 21
	expirationCount     = 8
	reportFile          = "simulation_report.json"
)

type SymbolReport struct {
	Symbol      string                        `json:"symbol"`
	Days        int                           `json:"days"`
	FirstClose  float64                       `json:"first_close"`
	LastClose   float64                       `json:"last_close"`
	LastIV      float64                       `json:"last_iv"`
	IVRank      *float64                      `json:"iv_rank,omitempty"`
	Volatility  map[string]map[string]float64 `json:"volatility"`
	Expirations []series.Expiration           `json:"expirations"`
	Chains      map[string][]chain.Row        `json:"chains"`
	LastBar     indicators.AnnotatedBar       `json:"last_bar"`
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment")
	}

	symbols := []string{"mock_1", "mock_2", "mock_3"}
	if env := os.Getenv("SIM_SYMBOLS"); env != "" {
		symbols = strings.Split(env, ",")
	}

	dataDir := os.Getenv("SIM_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	rfr := defaultRiskFreeRate
	if env := os.Getenv("SIM_RISK_FREE_RATE"); env != "" {
		if parsed, err := strconv.ParseFloat(env, 64); err == nil {
			rfr = parsed
		}
	}

	fmt.Printf("Risk-free rate: %.4f\n", rfr)

	var reports []SymbolReport

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			store := series.NewStore(dataDir)
			bars, err := store.Get(symbol)
			if err != nil {
				fmt.Printf("Error loading series for %s: %s\n", symbol, err.Error())
				return
			}
			if len(bars) == 0 {
				fmt.Printf("Empty series for %s\n", symbol)
				return
			}

			last := len(bars) - 1
			lastBar := bars[last]
			fmt.Printf("Last close for %s: %.2f (%s, %d days)\n", symbol, lastBar.Close, lastBar.Date, len(bars))

			report := SymbolReport{
				Symbol:     symbol,
				Days:       len(bars),
				FirstClose: bars[0].Close,
				LastClose:  lastBar.Close,
				LastIV:     lastBar.IV,
				Volatility: volatility.Summary(bars),
			}

			if rank, ok := volatility.IVRank(bars, last, volatility.IVRankLookback); ok {
				report.IVRank = &rank
			}

			annotated := indicators.Annotate(bars)
			report.LastBar = annotated[last]

			strikes := series.StrikeLadder(lastBar.Close, strikeCount)
			expirations := series.ExpirationLadder(lastBar.Date, expirationCount)
			report.Expirations = expirations
			report.Chains = chain.Precompute(bars, last, strikes, expirations, rfr)

			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
		}(symbol)
	}

	wg.Wait()

	if len(reports) == 0 {
		fmt.Println("No reports generated. Check symbol names and data directory.")
		return
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Symbol < reports[j].Symbol
	})

	jreports, err := json.Marshal(reports)
	if err != nil {
		fmt.Printf("Error marshalling reports: %s\n", err.Error())
		return
	}

	err = ioutil.WriteFile(reportFile, jreports, 0644)
	if err != nil {
		fmt.Printf("Error writing to file %s: %s\n", reportFile, err.Error())
		return
	}

	fmt.Printf("Successfully wrote %d symbol reports to %s\n", len(reports), reportFile)

	appToken := os.Getenv("SLACK_APP_TOKEN")
	botToken := os.Getenv("SLACK_BOT_TOKEN")
	if appToken != "" && botToken != "" {
		fmt.Println("Starting Slack bot")
		bot := simslack.NewSlackBot(appToken, botToken, rfr)
		if err := bot.Start(); err != nil {
			log.Fatalf("Slack bot stopped: %s", err.Error())
		}
	}
}
