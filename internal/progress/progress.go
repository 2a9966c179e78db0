// Package progress reports throughput of long dump walks.
package progress

import (
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// A Reporter logs a line every freq items.
type Reporter struct {
	log   *zap.SugaredLogger
	what  string
	freq  int64
	n     int64
	start time.Time
	prev  time.Time
}

// New gets a reporter counting the given kind of item ("pages",
// "records", ...).
func New(log *zap.SugaredLogger, what string, freq int64) *Reporter {
	if freq <= 0 {
		freq = 1000
	}
	now := time.Now()
	return &Reporter{log: log, what: what, freq: freq, start: now, prev: now}
}

// Add counts one item.
func (r *Reporter) Add() {
	r.n++
	if r.n%r.freq == 0 {
		now := time.Now()
		d := now.Sub(r.prev)
		r.log.Infof("Processed %s %s total (%.2f/s)",
			humanize.Comma(r.n), r.what, float64(r.freq)/d.Seconds())
		r.prev = now
	}
}

// Count gets the number of items counted so far.
func (r *Reporter) Count() int64 {
	return r.n
}

// Done logs the final tally.  err is the error that ended the walk,
// if any.
func (r *Reporter) Done(err error) {
	d := time.Since(r.start)
	if err != nil {
		r.log.Errorf("Ended with err after %v:  %v after %s %s",
			d, err, humanize.Comma(r.n), r.what)
		return
	}
	r.log.Infof("Finished after %v: %s %s (%.2f/s)",
		d, humanize.Comma(r.n), r.what, float64(r.n)/d.Seconds())
}
