// Package websocket - websocket/metrics.go
// file: websocket/metrics.go

package websocket

import (
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	awssession "github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"ambica-decor/logger"
)

// Namespace for all AmbicaDecor metrics
var metricsNamespace = "AmbicaDecor"

var (
	metricsEnabled bool
	metricsMutex   sync.Mutex

	cwClient     *cloudwatch.CloudWatch
	cwClientOnce sync.Once
)

// EnableMetrics turns CloudWatch publication on. Off by default so local
// runs and tests never touch AWS.
func EnableMetrics(enabled bool) {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()
	metricsEnabled = enabled
}

// PublishGalleryViewers pushes the current viewer connection count.
func PublishGalleryViewers(count int) {
	putMetric("GalleryViewers", float64(count), "Count")
}

// PublishUploadLatency pushes one media-host upload duration (in ms).
func PublishUploadLatency(latencyMs float64) {
	putMetric("UploadLatencyMs", latencyMs, "Milliseconds")
}

// PublishBroadcastBacklog pushes a gauge for broadcast queue depth.
func PublishBroadcastBacklog(depth int) {
	putMetric("BroadcastQueueDepth", float64(depth), "Count")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string) {
	metricsMutex.Lock()
	enabled := metricsEnabled
	metricsMutex.Unlock()
	if !enabled {
		return
	}

	cwClientOnce.Do(func() {
		cwClient = cloudwatch.New(awssession.Must(awssession.NewSession()))
	})

	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(value),
				Unit:       aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
