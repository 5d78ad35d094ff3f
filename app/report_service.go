package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"incosedss/adapters/excel"
	"incosedss/internal"
	"incosedss/internal/config"
	"incosedss/internal/errors"
	"incosedss/internal/metrics"
	"incosedss/internal/report"
	"incosedss/internal/table"

	"golang.org/x/sync/semaphore"
)

// ReportService ingests survey uploads and renders reports from them
type ReportService struct {
	report  config.ReportConfig
	upload  config.UploadConfig
	parses  *semaphore.Weighted
	metrics *metrics.Metrics
	logger  *internal.Logger
}

// NewReportService creates a report service
func NewReportService(cfg *config.Config, m *metrics.Metrics, logger *internal.Logger) *ReportService {
	return &ReportService{
		report:  cfg.Report,
		upload:  cfg.Upload,
		parses:  semaphore.NewWeighted(cfg.Upload.MaxConcurrentParses),
		metrics: m,
		logger:  logger,
	}
}

// Upload is one received spreadsheet
type Upload struct {
	FileName string
	Size     int64
	Body     io.Reader
}

// Ingest parses an upload, normalizes it and resolves the survey roles. At most
// MaxConcurrentParses uploads are parsed at once; waiting ends with ctx.
func (s *ReportService) Ingest(ctx context.Context, up Upload) (*report.Dataset, error) {
	ds, err := s.ingest(ctx, up)
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
		code := errors.GetCode(err)
		s.metrics.UploadRejections.WithLabelValues(code).Inc()
		s.logger.Warn("[ReportService] Upload %q rejected (%s): %v", up.FileName, code, err)
	}
	s.metrics.Uploads.WithLabelValues(outcome).Inc()
	return ds, err
}

func (s *ReportService) ingest(ctx context.Context, up Upload) (*report.Dataset, error) {
	fileType, ok := excel.FileTypeOf(up.FileName)
	if !ok {
		return nil, errors.InvalidInput("Only .xlsx and .csv files are supported")
	}
	if up.Size > s.upload.MaxBytes {
		return nil, errors.InvalidInput(fmt.Sprintf("File too large (max %d MB)", s.upload.MaxBytes>>20))
	}

	if err := s.parses.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "upload cancelled while waiting to be parsed")
	}
	defer s.parses.Release(1)

	start := time.Now()
	data, err := excel.Read(io.LimitReader(up.Body, s.upload.MaxBytes), fileType, s.report.Reader)
	s.metrics.ParseDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse upload")
	}

	tbl, err := table.FromExcel(data, s.report.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load table")
	}

	ds, err := report.Prepare(tbl, s.report.Rules)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare dataset")
	}

	s.logger.Info("[ReportService] Loaded %q: %d rows, %d columns, %d domains in %.2fms",
		up.FileName, tbl.Len(), len(tbl.Columns()), len(ds.DomainOptions)-1,
		float64(time.Since(start).Nanoseconds())/1e6)
	return ds, nil
}

// Render builds a report for one request against a held dataset
func (s *ReportService) Render(ds *report.Dataset, req report.Request) (*report.Report, error) {
	start := time.Now()
	r, err := report.Build(ds, req, s.report.Thresholds)

	switch {
	case err == nil:
		s.metrics.Reports.WithLabelValues(metrics.OutcomeOK).Inc()
		s.logger.Debug("[ReportService] Report for domain %q built in %.2fms", r.Domain, float64(time.Since(start).Nanoseconds())/1e6)
	case errors.IsWarning(err):
		s.metrics.Reports.WithLabelValues(metrics.OutcomeWarning).Inc()
		s.logger.Info("[ReportService] %v", err)
	default:
		s.metrics.Reports.WithLabelValues(metrics.OutcomeError).Inc()
		s.logger.Error("[ReportService] Report failed: %v", err)
	}
	return r, err
}
