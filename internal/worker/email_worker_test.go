package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Malformed payloads and unknown kinds must NOT return an error — an error
// means "retry", and retrying garbage just burns attempts into the DLQ.

func TestEmailWorkerSwallowsMalformedPayload(t *testing.T) {
	w := NewEmailWorker(nil, "avisos@crmestofados.com.br")
	err := w.Process(context.Background(), json.RawMessage(`{not json`))
	assert.NoError(t, err)
}

func TestEmailWorkerSwallowsUnknownKind(t *testing.T) {
	w := NewEmailWorker(nil, "avisos@crmestofados.com.br")
	err := w.Process(context.Background(), json.RawMessage(`{"kind":"sms"}`))
	assert.NoError(t, err)
}

func TestEmailWorkerSkipsWhenNoRecipient(t *testing.T) {
	w := NewEmailWorker(nil, "")
	err := w.Process(context.Background(), json.RawMessage(`{"kind":"catalog_order","order_number":"20260901-0001"}`))
	assert.NoError(t, err)
}
