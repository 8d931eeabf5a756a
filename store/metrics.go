package store

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Metrics-Instrumented Host
// --------------------------------------------------------------------------

// Instrumented wraps a Host with VictoriaMetrics counters and a value-size
// histogram, without changing any return value or error. This is the
// library's answer to the library's own "every read/write consumes a metered
// resource": the core collections package never instruments itself (it
// stays silent per §6.4), but any caller who wants call-volume and
// payload-size telemetry can wrap their real Host with this before handing
// it to store.NewAdapter.
//
// name identifies this host instance in metric labels, so that multiple
// instrumented hosts in the same process (e.g. one per contract in a
// simulator) report distinct series.
func Instrumented(h Host, name string) Host {
	return &instrumentedHost{
		inner: h,
		reads: metrics.GetOrCreateCounter(
			fmt.Sprintf(`store_host_calls_total{host=%q,op="read"}`, name)),
		writes: metrics.GetOrCreateCounter(
			fmt.Sprintf(`store_host_calls_total{host=%q,op="write"}`, name)),
		removes: metrics.GetOrCreateCounter(
			fmt.Sprintf(`store_host_calls_total{host=%q,op="remove"}`, name)),
		has: metrics.GetOrCreateCounter(
			fmt.Sprintf(`store_host_calls_total{host=%q,op="has"}`, name)),
		errs: metrics.GetOrCreateCounter(
			fmt.Sprintf(`store_host_errors_total{host=%q}`, name)),
		valueSize: metrics.GetOrCreateHistogram(
			fmt.Sprintf(`store_host_value_bytes{host=%q}`, name)),
	}
}

type instrumentedHost struct {
	inner Host

	reads     *metrics.Counter
	writes    *metrics.Counter
	removes   *metrics.Counter
	has       *metrics.Counter
	errs      *metrics.Counter
	valueSize *metrics.Histogram
}

func (h *instrumentedHost) Read(key []byte) ([]byte, bool, error) {
	h.reads.Inc()
	v, ok, err := h.inner.Read(key)
	if err != nil {
		h.errs.Inc()
		return v, ok, err
	}
	if ok {
		h.valueSize.Update(float64(len(v)))
	}
	return v, ok, err
}

func (h *instrumentedHost) Write(key, value []byte) (bool, error) {
	h.writes.Inc()
	h.valueSize.Update(float64(len(value)))
	prior, err := h.inner.Write(key, value)
	if err != nil {
		h.errs.Inc()
	}
	return prior, err
}

func (h *instrumentedHost) Remove(key []byte) ([]byte, bool, error) {
	h.removes.Inc()
	v, ok, err := h.inner.Remove(key)
	if err != nil {
		h.errs.Inc()
	}
	return v, ok, err
}

func (h *instrumentedHost) Has(key []byte) (bool, error) {
	h.has.Inc()
	ok, err := h.inner.Has(key)
	if err != nil {
		h.errs.Inc()
	}
	return ok, err
}
