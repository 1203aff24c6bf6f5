package domain

import (
	"context"
	"errors"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/errorx"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

type TournamentDomain interface {
	Get(ctx context.Context, req *model.GetTournamentRequest) (*model.GetTournamentResponse, error)
	GetActive(ctx context.Context, req *model.GetActiveTournamentsRequest) (*model.GetActiveTournamentsResponse, error)
}

type tournamentDomain struct {
	tournamentRepo repository.TournamentRepository
}

func NewTournamentDomain(tournamentRepo repository.TournamentRepository) *tournamentDomain {
	return &tournamentDomain{tournamentRepo: tournamentRepo}
}

func (d *tournamentDomain) Get(
	ctx context.Context, req *model.GetTournamentRequest,
) (*model.GetTournamentResponse, error) {
	tournament, err := d.tournamentRepo.GetByID(ctx, req.TournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tournament: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetTournamentResponse{Tournament: model.ConvertTournament(tournament)}, nil
}

func (d *tournamentDomain) GetActive(
	ctx context.Context, req *model.GetActiveTournamentsRequest,
) (*model.GetActiveTournamentsResponse, error) {
	tournaments, err := d.tournamentRepo.GetByStatus(ctx, entity.TournamentActive)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active tournaments: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetActiveTournamentsResponse{}
	for i := range tournaments {
		resp.Tournaments = append(resp.Tournaments, model.ConvertTournament(&tournaments[i]))
	}

	return resp, nil
}
