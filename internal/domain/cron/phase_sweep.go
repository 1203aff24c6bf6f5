package cron

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/common"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/dateutil"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

// PhaseSweepCronJob drives the weekly tournament lifecycle. Every hour
// it makes sure each tier has a tournament for the current week, then
// applies the time-based status transitions, invoking settlement on the
// last one.
type PhaseSweepCronJob struct {
	tournamentRepo   repository.TournamentRepository
	settlementDomain domain.SettlementDomain
	publisher        pubsub.Publisher
}

func NewPhaseSweepCronJob(
	tournamentRepo repository.TournamentRepository,
	settlementDomain domain.SettlementDomain,
	publisher pubsub.Publisher,
) *PhaseSweepCronJob {
	return &PhaseSweepCronJob{
		tournamentRepo:   tournamentRepo,
		settlementDomain: settlementDomain,
		publisher:        publisher,
	}
}

func (job *PhaseSweepCronJob) Do(ctx context.Context) {
	now := time.Now()

	job.ensureWeeklyTournaments(ctx, now)

	tournaments, err := job.tournamentRepo.GetUnfinished(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get unfinished tournaments: %v", err)
		return
	}

	for i := range tournaments {
		if err := job.transition(ctx, &tournaments[i], now); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot transition tournament %s: %v",
				tournaments[i].ID, err)
		}
	}
}

func (job *PhaseSweepCronJob) RunNow() bool {
	return true
}

func (job *PhaseSweepCronJob) Next() time.Time {
	return dateutil.NextHour(time.Now())
}

func (job *PhaseSweepCronJob) ensureWeeklyTournaments(ctx context.Context, now time.Time) {
	weekStart := dateutil.CurrentWeek(now)
	cfg := xcontext.Configs(ctx).Tournament

	for _, tier := range cfg.Tiers {
		_, err := job.tournamentRepo.GetByTierAndWeek(ctx, tier.Name, weekStart)
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot check tournament of tier %s: %v", tier.Name, err)
			continue
		}

		tournament := &entity.Tournament{
			Base:          entity.Base{ID: uuid.NewString()},
			Tier:          tier.Name,
			WeekStart:     weekStart,
			WeekEnd:       dateutil.NextWeek(now),
			DraftDeadline: weekStart.Add(cfg.DraftWindow),
			Status:        entity.TournamentUpcoming,
			EntryFee:      tier.FeeLamports,
		}

		// The (tier, week_start) unique index makes creation idempotent
		// across overlapping sweeps.
		if err := job.tournamentRepo.Create(ctx, tournament); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot create tournament of tier %s: %v", tier.Name, err)
			continue
		}

		job.publish(ctx, common.EventTournamentCreated, model.ConvertTournament(tournament))
	}
}

func (job *PhaseSweepCronJob) transition(
	ctx context.Context, tournament *entity.Tournament, now time.Time,
) error {
	switch tournament.Status {
	case entity.TournamentUpcoming:
		if now.Before(tournament.WeekStart) {
			return nil
		}

		return job.setStatus(ctx, tournament, entity.TournamentDrafting)

	case entity.TournamentDrafting:
		if now.Before(tournament.DraftDeadline) {
			return nil
		}

		return job.setStatus(ctx, tournament, entity.TournamentActive)

	case entity.TournamentActive:
		if now.Before(tournament.WeekEnd) {
			return nil
		}

		if err := job.settlementDomain.Settle(ctx, tournament.ID); err != nil {
			return err
		}

		job.publish(ctx, common.EventTournamentStatusChanged, model.TournamentStatusChangedEvent{
			TournamentID: tournament.ID,
			Tier:         tournament.Tier,
			From:         string(entity.TournamentActive),
			To:           string(entity.TournamentCompleted),
		})
	}

	return nil
}

func (job *PhaseSweepCronJob) setStatus(
	ctx context.Context, tournament *entity.Tournament, to entity.TournamentStatus,
) error {
	err := job.tournamentRepo.UpdateStatus(ctx, tournament.ID, tournament.Status, to)
	if err != nil {
		// Another sweep already applied this transition.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}

	job.publish(ctx, common.EventTournamentStatusChanged, model.TournamentStatusChangedEvent{
		TournamentID: tournament.ID,
		Tier:         tournament.Tier,
		From:         string(tournament.Status),
		To:           string(to),
	})

	tournament.Status = to
	return nil
}

func (job *PhaseSweepCronJob) publish(ctx context.Context, event string, payload any) {
	publishEvent(ctx, job.publisher, event, payload)
}
