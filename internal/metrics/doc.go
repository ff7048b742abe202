// Package metrics records observations about index generation runs.
//
// Components receive a Recorder and never check for nil: NoopRecorder is the
// default and costs nothing. PrometheusRecorder registers real collectors and
// can render them in the text exposition format, which is how a one-shot CLI
// run hands its numbers to node_exporter's textfile collector:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	gen := index.NewGenerator(cfg).WithRecorder(recorder)
//	...
//	data, err := recorder.Textfile()
package metrics
