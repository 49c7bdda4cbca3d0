package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

// Options tunes the engine. Zero values fall back to the defaults below.
type Options struct {
	DefaultTimeZone string
	CacheTTL        time.Duration // materialization debounce window
	FetchTimeout    time.Duration // overall ceiling per fetch, retries included
	Logger          zerolog.Logger
}

const (
	defaultTimeZone     = "America/Chicago"
	defaultCacheTTL     = 30 * time.Second
	defaultFetchTimeout = 10 * time.Second
)

// Service aggregates the scheduling engine's sub-services over one DAO.
type Service struct {
	Availability *availabilityService
	Appointments *appointmentsService
	Clinicians   *cliniciansService
	Exceptions   *exceptionsService
	Events       *eventsService
}

func NewService(dao *data.DAO, opts Options) *Service {
	if opts.DefaultTimeZone == "" {
		opts.DefaultTimeZone = defaultTimeZone
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}

	availability := &availabilityService{
		dao:          dao,
		cache:        newRangeCache(opts.CacheTTL),
		logger:       opts.Logger,
		defaultZone:  opts.DefaultTimeZone,
		fetchTimeout: opts.FetchTimeout,
	}

	return &Service{
		Availability: availability,
		Appointments: &appointmentsService{
			dao:          dao,
			availability: availability,
			logger:       opts.Logger,
			defaultZone:  opts.DefaultTimeZone,
			fetchTimeout: opts.FetchTimeout,
		},
		Clinicians: &cliniciansService{
			dao:          dao,
			availability: availability,
			logger:       opts.Logger,
			fetchTimeout: opts.FetchTimeout,
		},
		Exceptions: &exceptionsService{
			dao:          dao,
			availability: availability,
			logger:       opts.Logger,
			fetchTimeout: opts.FetchTimeout,
		},
		Events: &eventsService{
			dao:          dao,
			availability: availability,
			logger:       opts.Logger,
			fetchTimeout: opts.FetchTimeout,
		},
	}
}
