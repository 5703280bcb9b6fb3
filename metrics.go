// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

type gatewayMetrics struct {
	signerRotations  prometheus.Counter
	messagesApproved prometheus.Counter
	messagesExecuted prometheus.Counter
	rejectedProofs   prometheus.Counter
}

func newGatewayMetrics(registerer prometheus.Registerer) *gatewayMetrics {
	m := gatewayMetrics{
		signerRotations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_signer_rotations",
				Help: "Number of successful signer rotations",
			},
		),
		messagesApproved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_messages_approved",
				Help: "Number of newly approved cross-chain messages",
			},
		),
		messagesExecuted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_messages_executed",
				Help: "Number of consumed cross-chain messages",
			},
		),
		rejectedProofs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_rejected_proofs",
				Help: "Number of proofs that failed verification",
			},
		),
	}
	registerer.MustRegister(m.signerRotations)
	registerer.MustRegister(m.messagesApproved)
	registerer.MustRegister(m.messagesExecuted)
	registerer.MustRegister(m.rejectedProofs)

	return &m
}
