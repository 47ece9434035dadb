package chain

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/quantsim/optionsim/models"
	"github.com/quantsim/optionsim/pricing"
	"github.com/quantsim/optionsim/series"
)

const jobBatchSize = 1000

// Row pairs the call and put quote at one strike.
type Row struct {
	Strike float64            `json:"strike"`
	Call   models.OptionQuote `json:"call"`
	Put    models.OptionQuote `json:"put"`
}

// Snapshot prices the chain for one day of the series: every strike of
// the ladder at the selected expiration, quoted off the day's close and
// dynamic IV.
func Snapshot(bars []models.PriceBar, index int, strikes []float64, daysToExpiry int, riskFreeRate float64) []Row {
	spot := bars[index].Close
	iv := bars[index].IV

	rows := make([]Row, 0, len(strikes))
	for _, strike := range strikes {
		rows = append(rows, Row{
			Strike: strike,
			Call:   pricing.Metrics(spot, strike, daysToExpiry, riskFreeRate, iv, models.Call),
			Put:    pricing.Metrics(spot, strike, daysToExpiry, riskFreeRate, iv, models.Put),
		})
	}
	return rows
}

type job struct {
	expiration   string
	strike       float64
	daysToExpiry int
}

type result struct {
	expiration string
	row        Row
}

// Precompute prices the full ladder across every expiration on a worker
// pool, keyed by expiration date. Used for the batch report; the
// interactive path prices single snapshots on demand.
func Precompute(bars []models.PriceBar, index int, strikes []float64, expirations []series.Expiration, riskFreeRate float64) map[string][]Row {
	spot := bars[index].Close
	iv := bars[index].IV

	var jobs []job
	for _, exp := range expirations {
		for _, strike := range strikes {
			jobs = append(jobs, job{expiration: exp.Date, strike: strike, daysToExpiry: exp.DaysToExpiry})
		}
	}

	numCPU := runtime.NumCPU()
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		fmt.Printf("Pricing %d contracts on %d CPUs (%s)\n", 2*len(jobs), numCPU, info[0].ModelName)
	} else {
		fmt.Printf("Pricing %d contracts on %d CPUs\n", 2*len(jobs), numCPU)
	}

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(len(jobs)),
		mpb.PrependDecorators(
			decor.Name("Chain"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	start := time.Now()

	jobChan := make(chan job, jobBatchSize)
	resultChan := make(chan result, jobBatchSize)

	var wg sync.WaitGroup
	for i := 0; i < numCPU; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				resultChan <- result{
					expiration: j.expiration,
					row: Row{
						Strike: j.strike,
						Call:   pricing.Metrics(spot, j.strike, j.daysToExpiry, riskFreeRate, iv, models.Call),
						Put:    pricing.Metrics(spot, j.strike, j.daysToExpiry, riskFreeRate, iv, models.Put),
					},
				}
				bar.Increment()
			}
		}()
	}

	go func() {
		for _, j := range jobs {
			jobChan <- j
		}
		close(jobChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	byExpiration := make(map[string][]Row, len(expirations))
	for r := range resultChan {
		byExpiration[r.expiration] = append(byExpiration[r.expiration], r.row)
	}

	p.Wait()
	fmt.Printf("Chain precompute complete in %v\n", time.Since(start))

	// Workers deliver out of order; restore the ladder order.
	for exp := range byExpiration {
		rows := byExpiration[exp]
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Strike < rows[j].Strike
		})
	}

	return byExpiration
}
