package service

import (
	"strconv"

	"github.com/Gthulhu/cpupower/governor"
	"github.com/Gthulhu/cpupower/usage"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "cpupower"

// MetricCollector exports the sampler and session state on every scrape.
type MetricCollector struct {
	sampler  *usage.Sampler
	sessions *governor.SessionManager

	usageDesc   *prometheus.Desc
	overallDesc *prometheus.Desc
	samplesDesc *prometheus.Desc
	sessionDesc *prometheus.Desc
}

func NewMetricCollector(machineID string, sampler *usage.Sampler, sessions *governor.SessionManager) *MetricCollector {
	constLabels := prometheus.Labels{"machine_id": machineID}
	return &MetricCollector{
		sampler:  sampler,
		sessions: sessions,
		usageDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "cpu", "usage_percent"),
			"Latest cpu usage per channel; channel 0 is the aggregate, channel i is core i-1.",
			[]string{"channel"}, constLabels,
		),
		overallDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "overall_usage_percent"),
			"Latest aggregate cpu usage truncated to two decimals.",
			nil, constLabels,
		),
		samplesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "usage", "samples_total"),
			"Number of usage measurements recorded.",
			nil, constLabels,
		),
		sessionDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "governor", "session_open"),
			"1 while a governor edit session is open.",
			nil, constLabels,
		),
	}
}

func (c *MetricCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.usageDesc
	ch <- c.overallDesc
	ch <- c.samplesDesc
	ch <- c.sessionDesc
}

func (c *MetricCollector) Collect(ch chan<- prometheus.Metric) {
	for channel, v := range c.sampler.CurrentUsage() {
		ch <- prometheus.MustNewConstMetric(c.usageDesc, prometheus.GaugeValue, v, strconv.Itoa(channel))
	}
	ch <- prometheus.MustNewConstMetric(c.overallDesc, prometheus.GaugeValue, c.sampler.OverallPercentage())
	ch <- prometheus.MustNewConstMetric(c.samplesDesc, prometheus.CounterValue, float64(c.sampler.Samples()))

	open := 0.0
	if _, ok := c.sessions.Active(); ok {
		open = 1
	}
	ch <- prometheus.MustNewConstMetric(c.sessionDesc, prometheus.GaugeValue, open)
}
