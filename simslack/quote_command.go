package simslack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/quantsim/optionsim/models"
	"github.com/quantsim/optionsim/pricing"
)

type QuoteHandler struct {
	riskFreeRate float64
}

func NewQuoteHandler(riskFreeRate float64) *QuoteHandler {
	return &QuoteHandler{riskFreeRate: riskFreeRate}
}

func (h *QuoteHandler) HandleCommand(evt *socketmode.Event, client *socketmode.Client) error {
	data := evt.Data.(slack.SlashCommand)
	args := strings.Fields(data.Text)

	if len(args) != 4 {
		_, _, err := client.PostMessage(data.ChannelID,
			slack.MsgOptionText("Invalid number of arguments. Usage: /quote <spot> <strike> <dte> <iv>", false))
		return err
	}

	spot, _ := strconv.ParseFloat(args[0], 64)
	strike, _ := strconv.ParseFloat(args[1], 64)
	dte, _ := strconv.Atoi(args[2])
	iv, _ := strconv.ParseFloat(args[3], 64)

	call := pricing.Metrics(spot, strike, dte, h.riskFreeRate, iv, models.Call)
	put := pricing.Metrics(spot, strike, dte, h.riskFreeRate, iv, models.Put)

	text := fmt.Sprintf(
		"Spot %.2f, strike %.2f, %d DTE, IV %.2f, r %.3f\n"+
			"Call: %.2f (delta %.4f, gamma %.4f, theta %.4f, vega %.4f, rho %.4f)\n"+
			"Put: %.2f (delta %.4f, gamma %.4f, theta %.4f, vega %.4f, rho %.4f)",
		spot, strike, dte, iv, h.riskFreeRate,
		call.Price, call.Delta, call.Gamma, call.Theta, call.Vega, call.Rho,
		put.Price, put.Delta, put.Gamma, put.Theta, put.Vega, put.Rho)

	_, _, err := client.PostMessage(data.ChannelID,
		slack.MsgOptionText(text, false))
	return err
}
