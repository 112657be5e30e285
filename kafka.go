package hodlbank

import (
	"context"
	"encoding/json"

	"github.com/everFinance/hodlbank/schema"
	"github.com/segmentio/kafka-go"
)

const (
	LedgerTopic = "hodlbank_ledger"
)

type KWriter struct {
	w *kafka.Writer
}

func NewKWriter(topic string, uri string) (*KWriter, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(uri),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KWriter{
		w: w,
	}, nil
}

func (kw *KWriter) Write(body []byte) error {
	err := kw.w.WriteMessages(
		context.Background(),
		kafka.Message{
			Value: body,
		},
	)
	return err
}

func (kw *KWriter) Close() {
	kw.w.Close()
}

// publishEvent journals a committed ledger mutation to kafka through the
// event pool. Fire and forget: the journal never blocks or fails a
// ledger operation.
func (s *HodlBank) publishEvent(action, owner string, sym schema.Symbol, amount int64) {
	if s.eventPool == nil {
		return
	}
	ev := schema.LedgerEvent{
		Action:    action,
		Owner:     owner,
		Symbol:    sym.Code,
		Amount:    schema.FormatAmount(amount, sym.Precision),
		Timestamp: s.nowMs(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Error("json.Marshal(ev)", "err", err)
		return
	}
	if err = s.eventPool.Invoke(body); err != nil {
		log.Error("s.eventPool.Invoke(body)", "err", err)
	}
}
