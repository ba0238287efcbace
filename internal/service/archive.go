package service

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"roadwatch.dev/backend/internal/app/appconfig"
	"roadwatch.dev/backend/internal/model"
	"roadwatch.dev/backend/internal/pkg/archiver"
	"roadwatch.dev/backend/internal/repo"
)

const archiveBatchSize = 500

var ErrArchiveDisabled = errors.New("archive exporter is disabled")

// Archive exports resolved reports older than a cutoff into gzipped JSON
// Lines files on S3, one file per cutoff day.
type Archive struct {
	Conf       *appconfig.Config
	ReportRepo *repo.Report
	S3Client   *s3.Client
}

func NewArchive(conf *appconfig.Config, reportRepo *repo.Report, s3Client *s3.Client) *Archive {
	return &Archive{
		Conf:       conf,
		ReportRepo: reportRepo,
		S3Client:   s3Client,
	}
}

// ArchiveResolvedBefore streams all resolved reports created before the given
// time into a single archive file named after that day.
func (s *Archive) ArchiveResolvedBefore(ctx context.Context, before time.Time) error {
	if !s.Conf.ArchiveEnabled || s.Conf.ArchiveS3Bucket == "" {
		return ErrArchiveDisabled
	}

	a := &archiver.Archiver{
		S3Client:  s.S3Client,
		S3Bucket:  s.Conf.ArchiveS3Bucket,
		S3Prefix:  s.Conf.ArchiveS3Prefix,
		RealmName: "reports",
	}

	if err := a.Prepare(ctx, before); err != nil {
		return errors.Wrap(err, "failed to prepare archiver")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Collect(ctx)
	}()

	writerCh := a.WriterCh()
	count := 0
	cursor := ""
	for {
		reports, err := s.ReportRepo.GetReportsForArchive(ctx, cursor, before, archiveBatchSize)
		if err != nil {
			close(writerCh)
			<-errCh
			return errors.Wrap(err, "failed to fetch reports for archive")
		}
		if len(reports) == 0 {
			break
		}
		if err := sendToArchiver(writerCh, errCh, reports); err != nil {
			close(writerCh)
			return errors.Wrap(err, "failed to collect archive")
		}
		count += len(reports)
		cursor = reports[len(reports)-1].ReportID
	}
	close(writerCh)

	if err := <-errCh; err != nil {
		return errors.Wrap(err, "failed to collect archive")
	}

	log.Info().
		Str("evt.name", "archive.completed").
		Int("count", count).
		Str("before", before.Format("2006-01-02")).
		Msg("archived resolved reports")

	return nil
}

// sendToArchiver forwards one batch to the collector, bailing out instead of
// blocking forever if the collector goroutine has already exited.
func sendToArchiver(writerCh chan<- interface{}, errCh <-chan error, reports []*model.Report) error {
	for _, report := range reports {
		select {
		case writerCh <- report:
		case err := <-errCh:
			if err == nil {
				err = errors.New("archive collector exited before all reports were written")
			}
			return err
		}
	}
	return nil
}
