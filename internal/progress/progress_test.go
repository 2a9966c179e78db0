package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReporter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := New(zap.New(core).Sugar(), "pages", 1000)

	for i := 0; i < 2500; i++ {
		r.Add()
	}
	assert.EqualValues(t, 2500, r.Count())

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Message, "Processed 1,000 pages total")
	assert.Contains(t, entries[1].Message, "Processed 2,000 pages total")

	r.Done(nil)
	assert.Contains(t, logs.All()[2].Message, "2,500 pages")
}

func TestReporterDoneWithError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := New(zap.New(core).Sugar(), "records", 0)
	r.Add()
	r.Done(errors.New("bzip2 data invalid"))

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "bzip2 data invalid")
	assert.Contains(t, entries[0].Message, "1 records")
}
