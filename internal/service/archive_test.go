package service

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"roadwatch.dev/backend/internal/model"
)

func TestSendToArchiverBailsWhenCollectorExits(t *testing.T) {
	writerCh := make(chan interface{})
	errCh := make(chan error, 1)
	errCh <- errors.New("gzip write failed")

	reports := []*model.Report{{ReportID: "a"}, {ReportID: "b"}}

	done := make(chan error, 1)
	go func() {
		done <- sendToArchiver(writerCh, errCh, reports)
	}()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "gzip write failed")
	case <-time.After(time.Second):
		t.Fatal("producer blocked after collector exit")
	}
}

func TestSendToArchiverDeliversAllReports(t *testing.T) {
	writerCh := make(chan interface{})
	errCh := make(chan error, 1)

	var got []string
	doneReading := make(chan struct{})
	go func() {
		for report := range writerCh {
			got = append(got, report.(*model.Report).ReportID)
		}
		close(doneReading)
	}()

	reports := []*model.Report{{ReportID: "a"}, {ReportID: "b"}, {ReportID: "c"}}
	assert.NoError(t, sendToArchiver(writerCh, errCh, reports))
	close(writerCh)
	<-doneReading

	assert.Equal(t, []string{"a", "b", "c"}, got)
}
