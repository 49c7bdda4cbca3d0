package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
	"github.com/LPredmore/valorwell-clinician-portal-sub007/data"
)

type cliniciansService struct {
	dao          *data.DAO
	availability *availabilityService
	logger       zerolog.Logger

	fetchTimeout time.Duration
}

// List returns clinicians, optionally restricted to active ones.
func (s *cliniciansService) List(ctx context.Context, activeOnly bool) ([]data.Clinician, error) {
	var clinicians []data.Clinician
	err := withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		clinicians, err = s.dao.Clinicians.GetAll(activeOnly)
		return err
	})
	if err != nil {
		return nil, normalizeFetchErr("clinicians", err)
	}
	return clinicians, nil
}

func (s *cliniciansService) Get(ctx context.Context, id string) (data.Clinician, error) {
	var clinician data.Clinician
	err := withRetry(ctx, s.fetchTimeout, func(context.Context) error {
		var err error
		clinician, err = s.dao.Clinicians.GetOne(id)
		return err
	})
	if err != nil {
		return data.Clinician{}, normalizeFetchErr("clinician "+id, err)
	}
	return clinician, nil
}

// UpdateTimeZone stores a new zone for the clinician. Unlike the read path,
// which substitutes the default for a bad zone, a write with an unknown
// identifier is rejected outright.
func (s *cliniciansService) UpdateTimeZone(ctx context.Context, id, zone string) error {
	if _, err := common.LoadZone(zone); err != nil {
		return err
	}

	if err := s.dao.Clinicians.UpdateTimeZone(id, zone); err != nil {
		return normalizeFetchErr("clinician "+id, err)
	}

	s.availability.Invalidate(id)
	return nil
}
