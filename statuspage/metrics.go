package statuspage

import (
	"context"
	"fmt"
	"time"
)

// containerMetricData is the envelope key metric data points are wrapped under.
const containerMetricData = "data"

// Metric is a system metric displayed on the page.
type Metric struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Suffix        string    `json:"suffix"`
	Display       bool      `json:"display"`
	DecimalPlaces int       `json:"decimal_places"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MetricDataPoint is a single sample submitted for a metric.
type MetricDataPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// ListMetrics returns all metrics on the configured page.
func (c *Client) ListMetrics(ctx context.Context) ([]Metric, error) {
	path, err := c.pagePath("/metrics")
	if err != nil {
		return nil, err
	}

	resp, err := c.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}

	metrics, err := decodeList[Metric](resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode metrics: %w", err)
	}

	c.logger.Debug().Int("count", len(metrics)).Msg("Retrieved metrics")
	return metrics, nil
}

// SubmitMetricData submits one sample for a metric. The timestamp is
// truncated to whole seconds by the API.
func (c *Client) SubmitMetricData(ctx context.Context, metricID string, at time.Time, value float64) (*MetricDataPoint, error) {
	path, err := c.pagePath("/metrics/" + metricID + "/data")
	if err != nil {
		return nil, err
	}

	point := MetricDataPoint{Timestamp: at.Unix(), Value: value}
	resp, err := c.Post(ctx, path, point, &RequestOptions{Container: containerMetricData})
	if err != nil {
		return nil, fmt.Errorf("failed to submit metric data for %s: %w", metricID, err)
	}

	c.logger.Debug().Str("metric_id", metricID).Float64("value", value).Msg("Submitted metric data")
	return decodeOne[MetricDataPoint](resp)
}
