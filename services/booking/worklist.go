package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medlease/models"
	"medlease/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// worklistGenKey holds the cache generation counter. Every mutation that can
// change a worklist row bumps it, orphaning all previously cached pages.
const worklistGenKey = utils.WorklistCachePrefix + "gen"

// Worklist returns one page of the practitioner worklist, served from the
// Redis read-through cache when a fresh page exists for the current
// generation.
func (s *DefaultBookingService) Worklist(q models.WorklistQuery) (*models.WorklistPage, error) {
	q.Normalize()
	ctx := context.Background()

	gen := s.cacheGeneration(ctx)
	key := worklistCacheKey(gen, q)

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var page models.WorklistPage
			if err := json.Unmarshal([]byte(data), &page); err == nil {
				return &page, nil
			}
		}
	}

	bookings, total, err := s.Repo.Worklist(q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worklist: %w", err)
	}

	page := &models.WorklistPage{
		Items: make([]models.WorklistEntry, 0, len(bookings)),
		Pagination: models.Pagination{
			Page:    q.Page,
			PerPage: q.PerPage,
			Total:   total,
		},
	}
	names := map[string]string{}
	for _, b := range bookings {
		page.Items = append(page.Items, models.WorklistEntry{
			BookingID:     b.ID,
			BookingNumber: b.BookingNumber,
			PatientID:     b.PatientID,
			PatientName:   s.patientName(names, b.PatientID),
			FacilityID:    b.FacilityID,
			Date:          b.Date,
			Status:        b.Status,
			Consent:       b.ConsentObtained,
			Services:      b.Services,
		})
	}

	if s.Cache != nil {
		if data, err := json.Marshal(page); err == nil {
			if err := s.Cache.Set(ctx, key, data, utils.WorklistCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache worklist page", zap.Error(err))
			}
		}
	}
	return page, nil
}

// Sync returns full booking documents updated since the given instant, for
// client-side reconciliation. Never cached; callers poll it for freshness.
func (s *DefaultBookingService) Sync(q models.SyncQuery) (*models.SyncPage, error) {
	q.Normalize()

	var since time.Time
	if q.Since != "" {
		parsed, err := time.Parse(time.RFC3339, q.Since)
		if err != nil {
			return nil, fmt.Errorf("invalid since timestamp: %w", err)
		}
		since = parsed
	}

	bookings, total, err := s.Repo.UpdatedSince(since, q.Page, q.PerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sync page: %w", err)
	}
	return &models.SyncPage{
		Items: bookings,
		Pagination: models.Pagination{
			Page:    q.Page,
			PerPage: q.PerPage,
			Total:   total,
		},
	}, nil
}

// InvalidateWorklist bumps the generation counter, instantly orphaning every
// cached worklist page. The pages themselves expire via their TTL.
func (s *DefaultBookingService) InvalidateWorklist() error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Incr(context.Background(), worklistGenKey).Err()
}

func (s *DefaultBookingService) cacheGeneration(ctx context.Context) int64 {
	if s.Cache == nil {
		return 0
	}
	gen, err := s.Cache.Get(ctx, worklistGenKey).Int64()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("failed to read worklist cache generation", zap.Error(err))
		}
		return 0
	}
	return gen
}

func worklistCacheKey(gen int64, q models.WorklistQuery) string {
	return fmt.Sprintf("%sv%d:%d:%d:%s:%s:%s:%s",
		utils.WorklistCachePrefix, gen, q.Page, q.PerPage, q.Status, q.DateFrom, q.DateTo, q.Search)
}

func (s *DefaultBookingService) patientName(cache map[string]string, patientID string) string {
	if name, ok := cache[patientID]; ok {
		return name
	}
	name := ""
	if s.Patients != nil {
		if p, err := s.Patients.GetByID(patientID); err == nil && p != nil {
			name = p.FullName()
		}
	}
	cache[patientID] = name
	return name
}
