package services

import (
	"context"
	"fmt"
	"time"

	"tripplanner/pkg/metrics"
	"tripplanner/pkg/utils"
)

// callOracle runs one generation and records its latency under purpose.
func callOracle(ctx context.Context, oracle utils.TextOracle, purpose string, req *utils.GenerationRequest) (string, error) {
	start := time.Now()
	out, err := oracle.Generate(ctx, req)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.OracleLatency.WithLabelValues(purpose, outcome).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrOracleUnavailable, err)
	}
	return out, nil
}
