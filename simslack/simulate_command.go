package simslack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/quantsim/optionsim/chain"
	"github.com/quantsim/optionsim/series"
	"github.com/quantsim/optionsim/volatility"
)

type SimulateHandler struct {
	riskFreeRate float64
}

func NewSimulateHandler(riskFreeRate float64) *SimulateHandler {
	return &SimulateHandler{riskFreeRate: riskFreeRate}
}

func (h *SimulateHandler) HandleCommand(evt *socketmode.Event, client *socketmode.Client) error {
	data := evt.Data.(slack.SlashCommand)
	args := strings.Fields(data.Text)

	if len(args) != 2 {
		_, _, err := client.PostMessage(data.ChannelID,
			slack.MsgOptionText("Invalid number of arguments. Usage: /simulate <scenario> <seed>", false))
		return err
	}

	scenario := args[0]
	seed, _ := strconv.ParseUint(args[1], 10, 64)

	// Send initial message
	_, ts, err := client.PostMessage(data.ChannelID,
		slack.MsgOptionText(fmt.Sprintf("Generating %s...", scenario), false))
	if err != nil {
		return err
	}

	go runSimulationWithProgress(client, data.ChannelID, ts, scenario, seed, h.riskFreeRate)

	return nil
}

func runSimulationWithProgress(client *socketmode.Client, channelID, timestamp, scenario string, seed uint64, riskFreeRate float64) {
	progressChan := make(chan int)
	resultChan := make(chan string)

	go func() {
		result := simulate(scenario, seed, riskFreeRate, progressChan)
		resultChan <- result
	}()

	for {
		select {
		case progress := <-progressChan:
			if progress == 25 || progress == 50 || progress == 75 {
				client.PostMessage(channelID,
					slack.MsgOptionText(fmt.Sprintf("Simulation %d%% complete...", progress), false),
					slack.MsgOptionTS(timestamp))
			}
		case result := <-resultChan:
			client.PostMessage(channelID,
				slack.MsgOptionText(result, false),
				slack.MsgOptionTS(timestamp))
			return
		}
	}
}

func simulate(scenario string, seed uint64, riskFreeRate float64, progressChan chan<- int) string {
	params := series.ParamsFor(scenario, 100)
	if seed > 0 {
		params.Seed = seed
	}

	bars := series.Generate(params, series.DefaultStartDate, series.DefaultEndDate)
	if len(bars) == 0 {
		return fmt.Sprintf("No trading days in range for %s", scenario)
	}
	progressChan <- 25

	summary := volatility.Summary(bars)
	progressChan <- 50

	last := len(bars) - 1
	rank, hasRank := volatility.IVRank(bars, last, volatility.IVRankLookback)
	progressChan <- 75

	first := bars[0]
	final := bars[last]
	totalReturn := (final.Close - first.Close) / first.Close * 100

	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s* (%d trading days, seed %d)\n", scenario, len(bars), params.Seed)
	fmt.Fprintf(&sb, "Close %.2f -> %.2f (%.1f%%), final IV %.2f", first.Close, final.Close, totalReturn, final.IV)
	if hasRank {
		fmt.Fprintf(&sb, ", IV rank %.2f", rank)
	}
	sb.WriteString("\n")
	for _, estimator := range []string{"garman_klass", "parkinson", "yang_zhang", "rogers_satchell"} {
		if vols, ok := summary[estimator]; ok {
			fmt.Fprintf(&sb, "%s: 1m %.4f, 3m %.4f, 1y %.4f\n", estimator, vols["1m"], vols["3m"], vols["1y"])
		}
	}

	atm := chain.Snapshot(bars, last, series.StrikeLadder(final.Close, 0), 30, riskFreeRate)
	if len(atm) > 0 {
		row := atm[0]
		fmt.Fprintf(&sb, "ATM %.0f, 30 DTE: call %.2f (delta %.4f), put %.2f (delta %.4f)\n",
			row.Strike, row.Call.Price, row.Call.Delta, row.Put.Price, row.Put.Delta)
	}
	return sb.String()
}
