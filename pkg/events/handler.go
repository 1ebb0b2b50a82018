package events

import "github.com/flaboy/aira-pay/pkg/types"

type EventHandler interface {
	OnPaymentCompleted(event *types.PaymentCompletedEvent) error
	OnPaymentFailed(event *types.PaymentFailedEvent) error
}

var handler EventHandler

func SetEventHandler(h EventHandler) {
	handler = h
}

func EmitPaymentCompleted(event *types.PaymentCompletedEvent) error {
	if handler != nil {
		return handler.OnPaymentCompleted(event)
	}
	return nil
}

func EmitPaymentFailed(event *types.PaymentFailedEvent) error {
	if handler != nil {
		return handler.OnPaymentFailed(event)
	}
	return nil
}

// Fanout 依次投递到多个下游，第一个失败即返回
type Fanout []EventHandler

func (f Fanout) OnPaymentCompleted(event *types.PaymentCompletedEvent) error {
	for _, h := range f {
		if err := h.OnPaymentCompleted(event); err != nil {
			return err
		}
	}
	return nil
}

func (f Fanout) OnPaymentFailed(event *types.PaymentFailedEvent) error {
	for _, h := range f {
		if err := h.OnPaymentFailed(event); err != nil {
			return err
		}
	}
	return nil
}
