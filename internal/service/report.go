package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"roadwatch.dev/backend/internal/app/appconfig"
	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model"
	"roadwatch.dev/backend/internal/model/types"
	modelv1 "roadwatch.dev/backend/internal/model/v1"
	"roadwatch.dev/backend/internal/pkg/geo"
	"roadwatch.dev/backend/internal/pkg/observability"
	"roadwatch.dev/backend/internal/pkg/rwerr"
	"roadwatch.dev/backend/internal/repo"
	"roadwatch.dev/backend/internal/util/reportverifs"
)

const publishTimeout = time.Millisecond * 500

type Report struct {
	Conf            *appconfig.Config
	ReportRepo      *repo.Report
	ReportVerifiers *reportverifs.ReportVerifiers
	GeocodeService  *Geocode
	JS              nats.JetStreamContext
}

func NewReport(conf *appconfig.Config, reportRepo *repo.Report, reportVerifiers *reportverifs.ReportVerifiers, geocodeService *Geocode, js nats.JetStreamContext) *Report {
	return &Report{
		Conf:            conf,
		ReportRepo:      reportRepo,
		ReportVerifiers: reportVerifiers,
		GeocodeService:  geocodeService,
		JS:              js,
	}
}

// Submit verifies and persists a new report. Rejected submissions are kept as
// quarantined rows with a negative reliability so that moderators can review
// them, and the caller receives the rejection as an error.
func (s *Report) Submit(ctx context.Context, req *types.CreateReportRequest) (*model.Report, error) {
	start := time.Now()
	defer func() {
		observability.ReportSubmitDuration.
			WithLabelValues().
			Observe(time.Since(start).Seconds())
	}()

	violation := s.ReportVerifiers.Verify(ctx, req)

	reliability := constant.ReliabilityOK
	if violation != nil {
		reliability = violation.Reliability
	}

	location := strings.TrimSpace(req.Location.String)
	if location == "" && req.Latitude.Valid && req.Longitude.Valid {
		location = s.GeocodeService.Reverse(ctx, req.Latitude.Float64, req.Longitude.Float64)
	}

	now := time.Now()
	report := &model.Report{
		ReportID:      uuid.NewString(),
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Location:      location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Category:      req.Category,
		Severity:      req.Severity,
		Status:        constant.StatusActive,
		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		Reliability:   reliability,
		CreatedAt:     &now,
		UpdatedAt:     &now,
	}

	if err := s.ReportRepo.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	observability.ReportReliability.
		WithLabelValues(strconv.Itoa(reliability), report.Category).
		Inc()

	if violation != nil {
		log.Info().
			Str("evt.name", "report.submit.quarantined").
			Str("reportId", report.ReportID).
			Str("verifier", violation.Name).
			Int("reliability", violation.Reliability).
			Msg("report quarantined by verifier")
		return nil, rwerr.ErrInvalidReq.
			Msg("report rejected: %s", violation.Message).
			WithExtras(rwerr.Extras{"violation": violation})
	}

	s.publishEvent(ctx, constant.SubjectReportInserted, "INSERTED", report)

	return report, nil
}

func (s *Report) GetByID(ctx context.Context, reportId string) (*model.Report, error) {
	return s.ReportRepo.GetReportByID(ctx, reportId)
}

func (s *Report) List(ctx context.Context, queryCtx *model.ReportQueryContext) (*modelv1.ReportList, error) {
	items, total, err := s.ReportRepo.ListReports(ctx, queryCtx)
	if err != nil {
		return nil, err
	}
	return &modelv1.ReportList{
		Total: total,
		Items: items,
	}, nil
}

// allowedTransitions maps a current status to the actions valid on it.
var allowedTransitions = map[string]map[string]string{
	constant.StatusActive: {
		"resolve": constant.StatusResolved,
		"verify":  constant.StatusVerified,
	},
	constant.StatusVerified: {
		"resolve": constant.StatusResolved,
	},
	constant.StatusResolved: {
		"reactivate": constant.StatusActive,
	},
}

// UpdateStatus applies a status action to the report. Resolving is what
// deletion maps to: rows are never hard-deleted.
func (s *Report) UpdateStatus(ctx context.Context, reportId string, action string) (*model.Report, error) {
	report, err := s.ReportRepo.GetReportByID(ctx, reportId)
	if err != nil {
		return nil, err
	}

	action = strings.ToLower(action)
	next, ok := allowedTransitions[report.Status][action]
	if !ok {
		return nil, rwerr.ErrInvalidTransition.Msg("cannot %s a report in status %s", action, report.Status)
	}

	if err := s.ReportRepo.UpdateReportStatus(ctx, reportId, next); err != nil {
		return nil, err
	}

	report, err = s.ReportRepo.GetReportByID(ctx, reportId)
	if err != nil {
		return nil, err
	}

	if next == constant.StatusResolved {
		s.publishEvent(ctx, constant.SubjectReportResolved, "RESOLVED", report)
	} else {
		s.publishEvent(ctx, constant.SubjectReportUpdated, "UPDATED", report)
	}

	return report, nil
}

// Delete resolves the report. Kept as its own method since the HTTP DELETE
// verb maps here.
func (s *Report) Delete(ctx context.Context, reportId string) error {
	_, err := s.UpdateStatus(ctx, reportId, "resolve")
	return err
}

// Nearby returns public reports within radiusKm of the center, closest first.
// The bounding box prefilter runs in SQL, the exact distance check in Go.
func (s *Report) Nearby(ctx context.Context, req *types.NearbyRequest) (*modelv1.NearbyReports, error) {
	radius := req.RadiusKm
	if radius <= 0 {
		radius = 5
	}
	if radius > constant.MaxNearbyRadiusKm {
		radius = constant.MaxNearbyRadiusKm
	}

	limit := req.Limit
	if limit <= 0 {
		limit = constant.DefaultListLimit
	}

	box := geo.BoundingBox(req.Latitude, req.Longitude, radius)
	candidates, err := s.ReportRepo.ListLocated(ctx, box, nil)
	if err != nil {
		return nil, err
	}

	items := make([]*modelv1.ReportWithDistance, 0, len(candidates))
	for _, candidate := range candidates {
		d := geo.HaversineKm(req.Latitude, req.Longitude, candidate.Latitude.Float64, candidate.Longitude.Float64)
		if d > radius {
			continue
		}
		items = append(items, &modelv1.ReportWithDistance{
			Report:     candidate,
			DistanceKm: d,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].DistanceKm < items[j].DistanceKm
	})
	if len(items) > limit {
		items = items[:limit]
	}

	return &modelv1.NearbyReports{
		Center: modelv1.Coordinate{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		RadiusKm: radius,
		Items:    items,
	}, nil
}

// Clusters buckets all located public reports into map clusters for the
// requested zoom level.
func (s *Report) Clusters(ctx context.Context, req *types.ClustersRequest) (*modelv1.ReportClusters, error) {
	zoom := req.Zoom
	if zoom < constant.MinClusterZoom {
		zoom = constant.MinClusterZoom
	}
	if zoom > constant.MaxClusterZoom {
		zoom = constant.MaxClusterZoom
	}

	located, err := s.ReportRepo.ListLocated(ctx, geo.BBox{
		MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180,
	}, []string{constant.StatusActive, constant.StatusVerified})
	if err != nil {
		return nil, err
	}

	points := make([]geo.Point, 0, len(located))
	for _, report := range located {
		points = append(points, geo.Point{
			ID:  report.ReportID,
			Lat: report.Latitude.Float64,
			Lng: report.Longitude.Float64,
		})
	}

	return &modelv1.ReportClusters{
		Zoom:     zoom,
		Clusters: geo.GridCluster(points, zoom),
	}, nil
}

func (s *Report) publishEvent(ctx context.Context, subject string, op string, report *model.Report) {
	event := &types.ReportEvent{
		EventID:   ulid.Make().String(),
		Op:        op,
		Report:    report,
		EmittedAt: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().
			Str("evt.name", "report.event.marshal.failed").
			Err(err).
			Msg("failed to marshal report event")
		return
	}

	pub, err := s.JS.PublishAsync(subject, payload, nats.MsgId(event.EventID))
	if err != nil {
		log.Error().
			Str("evt.name", "report.event.publish.failed").
			Err(err).
			Str("subject", subject).
			Msg("failed to publish report event")
		return
	}

	select {
	case err := <-pub.Err():
		log.Error().
			Str("evt.name", "report.event.publish.failed").
			Err(err).
			Str("subject", subject).
			Msg("report event publish not acked")
	case <-pub.Ok():
	case <-ctx.Done():
	case <-time.After(publishTimeout):
		log.Warn().
			Str("evt.name", "report.event.publish.timeout").
			Str("subject", subject).
			Msg("timeout waiting for publish ack")
	}
}
