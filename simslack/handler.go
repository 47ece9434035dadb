package simslack

import (
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

type Handler struct {
	helpHandler     *HelpHandler
	simulateHandler *SimulateHandler
	quoteHandler    *QuoteHandler
}

func NewHandler(riskFreeRate float64) *Handler {
	return &Handler{
		helpHandler:     NewHelpHandler(),
		simulateHandler: NewSimulateHandler(riskFreeRate),
		quoteHandler:    NewQuoteHandler(riskFreeRate),
	}
}

func (h *Handler) Handle(evt *socketmode.Event, client *socketmode.Client) error {
	data := evt.Data.(slack.SlashCommand)
	switch data.Command {
	case "/help":
		err := h.helpHandler.HandleCommand(evt, client)
		if err != nil {
			return err
		}
	case "/simulate":
		err := h.simulateHandler.HandleCommand(evt, client)
		if err != nil {
			return err
		}
	case "/quote":
		err := h.quoteHandler.HandleCommand(evt, client)
		if err != nil {
			return err
		}
	}

	client.Ack(*evt.Request)
	return nil
}
