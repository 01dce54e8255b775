package worker

// email_worker.go
// Processes notification jobs from QueueEmail: new catalog orders and
// due-boleto reminders, both addressed to the configured staff inbox.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the generic envelope pushed to QueueEmail. Kind selects
// the template; the remaining fields fill it in.
type EmailJobPayload struct {
	Kind         string `json:"kind"` // catalog_order | boleto_due
	OrderNumber  string `json:"order_number,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Total        string `json:"total,omitempty"`
	Description  string `json:"description,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	Amount       string `json:"amount,omitempty"`
}

type EmailWorker struct {
	mailer   *infra.Mailer
	notifyTo string
}

func NewEmailWorker(mailer *infra.Mailer, notifyTo string) *EmailWorker {
	return &EmailWorker{mailer: mailer, notifyTo: notifyTo}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed — retrying cannot help
	}
	if w.notifyTo == "" {
		log.Warn().Msg("email_worker: no notification address configured — skipping")
		return nil
	}

	var subject, body string
	switch payload.Kind {
	case "catalog_order":
		subject = "Novo pedido no catálogo: " + payload.OrderNumber
		body = fmt.Sprintf("Pedido %s recebido", payload.OrderNumber)
		if payload.CustomerName != "" {
			body += " de " + payload.CustomerName
		}
		if payload.Total != "" {
			body += fmt.Sprintf(".\nTotal: R$ %s", payload.Total)
		}
	case "boleto_due":
		subject = "Boleto vencendo: " + payload.Description
		body = fmt.Sprintf("Boleto %q vence em %s.\nValor: R$ %s",
			payload.Description, payload.DueDate, payload.Amount)
	default:
		log.Warn().Str("kind", payload.Kind).Msg("email_worker: unknown email kind")
		return nil
	}

	if err := w.mailer.Send([]string{w.notifyTo}, subject, body, ""); err != nil {
		log.Error().Err(err).Str("to", w.notifyTo).Msg("email_worker: failed to send")
		return errors.New("email send failed: " + err.Error())
	}
	log.Info().Str("kind", payload.Kind).Str("to", w.notifyTo).Msg("email_worker: notification sent")
	return nil
}
