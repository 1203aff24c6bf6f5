package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/common"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain/statistic"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/crypto"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/errorx"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

type DraftDomain interface {
	Enter(ctx context.Context, req *model.EnterTournamentRequest) (*model.EnterTournamentResponse, error)
	StartDraft(ctx context.Context, req *model.StartDraftRequest) (*model.StartDraftResponse, error)
	MakePick(ctx context.Context, req *model.MakePickRequest) (*model.MakePickResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetRank(ctx context.Context, req *model.GetRankRequest) (*model.GetRankResponse, error)
}

type draftDomain struct {
	tournamentRepo repository.TournamentRepository
	entryRepo      repository.EntryRepository
	pickRepo       repository.PickRepository
	leaderboard    statistic.Leaderboard
	priceCaller    client.PriceCaller
	fundsCaller    client.FundsCaller
	rewardCaller   client.RewardCaller
	publisher      pubsub.Publisher
	sessions       *sessionStore
}

func NewDraftDomain(
	tournamentRepo repository.TournamentRepository,
	entryRepo repository.EntryRepository,
	pickRepo repository.PickRepository,
	leaderboard statistic.Leaderboard,
	priceCaller client.PriceCaller,
	fundsCaller client.FundsCaller,
	rewardCaller client.RewardCaller,
	publisher pubsub.Publisher,
) *draftDomain {
	return &draftDomain{
		tournamentRepo: tournamentRepo,
		entryRepo:      entryRepo,
		pickRepo:       pickRepo,
		leaderboard:    leaderboard,
		priceCaller:    priceCaller,
		fundsCaller:    fundsCaller,
		rewardCaller:   rewardCaller,
		publisher:      publisher,
		sessions:       newSessionStore(),
	}
}

func (d *draftDomain) Enter(
	ctx context.Context, req *model.EnterTournamentRequest,
) (*model.EnterTournamentResponse, error) {
	wallet := xcontext.RequestWallet(ctx)
	if wallet == "" {
		return nil, errorx.New(errorx.Unauthenticated, "No wallet in request")
	}

	tournament, err := d.tournamentRepo.GetByID(ctx, req.TournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot get tournament: %v", err)
		return nil, errorx.Unknown
	}

	if !tournament.AcceptsEntries() {
		return nil, errorx.New(errorx.Unavailable, "Tournament is not open for entries")
	}

	_, err = d.entryRepo.GetByTournamentAndWallet(ctx, tournament.ID, wallet)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already entered this tournament")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing entry: %v", err)
		return nil, errorx.Unknown
	}

	sufficient, err := d.fundsCaller.HasSufficientBalance(ctx, wallet, tournament.EntryFee)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check balance: %v", err)
		return nil, errorx.Unknown
	}

	if !sufficient {
		return nil, errorx.New(errorx.Unavailable, "Insufficient balance for entry fee")
	}

	entry := &entity.Entry{
		Base:         entity.Base{ID: uuid.NewString()},
		TournamentID: tournament.ID,
		Wallet:       wallet,
		EntryFee:     tournament.EntryFee,
	}

	// The debit is held pending until the entry is durably recorded. An
	// unconfirmed pending debit expires on the custody side, so a crash
	// between these steps cannot take the fee without an entry.
	pendingID, err := d.fundsCaller.DebitPending(
		ctx, wallet, tournament.EntryFee, "tournament_entry", entry.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot debit entry fee: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.entryRepo.Create(ctx, entry); err != nil {
		// A concurrent enter can win the unique (tournament, wallet) index
		// between the pre-check and this insert. Re-read outside the failed
		// transaction to tell that apart from a real failure.
		xcontext.WithRollbackDBTransaction(ctx)
		_, dupErr := d.entryRepo.GetByTournamentAndWallet(ctx, tournament.ID, wallet)
		if dupErr == nil {
			return nil, errorx.New(errorx.AlreadyExists, "Already entered this tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot create entry: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.tournamentRepo.AddEntry(ctx, tournament.ID, tournament.EntryFee); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase prize pool: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.fundsCaller.ConfirmDebit(ctx, pendingID); err != nil {
		// The entry is already durable. The custody service re-drives
		// confirmation of pending debits with a persisted entry.
		xcontext.Logger(ctx).Errorf("Cannot confirm debit %s: %v", pendingID, err)
	}

	xpAmount := xcontext.Configs(ctx).Tournament.ParticipationXP
	err = d.rewardCaller.AwardXP(
		ctx, wallet, xpAmount, "tournament_entry", entry.ID, "Entered tournament")
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot award participation xp: %v", err)
	}

	d.publish(ctx, common.EventEntryCreated, model.EntryCreatedEvent{
		TournamentID: tournament.ID,
		EntryID:      entry.ID,
		Wallet:       wallet,
		EntryFee:     tournament.EntryFee,
	})

	return &model.EnterTournamentResponse{Entry: model.ConvertEntry(entry)}, nil
}

func (d *draftDomain) StartDraft(
	ctx context.Context, req *model.StartDraftRequest,
) (*model.StartDraftResponse, error) {
	entry, err := authorizedEntry(ctx, d.entryRepo, req.EntryID)
	if err != nil {
		return nil, err
	}

	if entry.DraftCompleted {
		return nil, errorx.New(errorx.Unavailable, "Draft is already completed")
	}

	tournament, err := d.tournamentRepo.GetByID(ctx, entry.TournamentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tournament: %v", err)
		return nil, errorx.Unknown
	}

	if !tournament.AcceptsEntries() {
		return nil, errorx.New(errorx.Unavailable, "Tournament is not in its draft window")
	}

	picks, err := d.pickRepo.GetByEntryID(ctx, entry.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get picks: %v", err)
		return nil, errorx.Unknown
	}

	owned := map[string]struct{}{}
	for _, pick := range picks {
		owned[pick.AssetID] = struct{}{}
	}

	options, err := d.randomOptions(ctx, owned)
	if err != nil {
		return nil, err
	}

	session := &DraftSession{
		EntryID:      entry.ID,
		TournamentID: entry.TournamentID,
		Round:        len(picks) + 1,
		Options:      options,
		Owned:        owned,
	}

	// A draft already in flight wins. Restarting returns the live round
	// instead of rerolling its options.
	if existing, loaded := d.sessions.loadOrStore(session); loaded {
		session = existing
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	resp := &model.StartDraftResponse{Round: session.Round}
	for _, option := range session.Options {
		resp.Options = append(resp.Options, convertAsset(option))
	}

	for i := range picks {
		resp.Picks = append(resp.Picks, model.ConvertPick(&picks[i]))
	}

	return resp, nil
}

func (d *draftDomain) MakePick(
	ctx context.Context, req *model.MakePickRequest,
) (*model.MakePickResponse, error) {
	entry, err := authorizedEntry(ctx, d.entryRepo, req.EntryID)
	if err != nil {
		return nil, err
	}

	session, ok := d.sessions.load(entry.ID)
	if !ok {
		return nil, errorx.New(errorx.NoSession, "No draft session, call start draft first")
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	if req.Round != session.Round {
		return nil, errorx.New(errorx.WrongRound,
			"Expected a pick for round %d", session.Round)
	}

	option, ok := session.hasOption(req.AssetID)
	if !ok {
		return nil, errorx.New(errorx.InvalidOption, "Asset was not offered this round")
	}

	price, err := d.priceCaller.GetPrice(ctx, option.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get price of %s: %v", option.ID, err)
		return nil, errorx.Unknown
	}

	pick := &entity.Pick{
		Base:            entity.Base{ID: uuid.NewString()},
		EntryID:         entry.ID,
		PickOrder:       session.Round,
		AssetID:         option.ID,
		Symbol:          option.Symbol,
		Name:            option.Name,
		Logo:            option.LogoURL,
		PriceAtDraft:    price,
		BoostMultiplier: 1,
	}

	picksPerEntry := xcontext.Configs(ctx).Tournament.PicksPerEntry
	completed := session.Round == picksPerEntry

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.pickRepo.Create(ctx, pick); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create pick: %v", err)
		return nil, errorx.Unknown
	}

	if completed {
		if err := d.entryRepo.MarkDraftCompleted(ctx, entry.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark draft completed: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.publish(ctx, common.EventPickMade, model.PickMadeEvent{
		EntryID:   entry.ID,
		PickOrder: pick.PickOrder,
		AssetID:   pick.AssetID,
	})

	resp := &model.MakePickResponse{Pick: model.ConvertPick(pick), Completed: completed}

	if completed {
		d.sessions.delete(entry.ID)
		d.publish(ctx, common.EventDraftCompleted, model.DraftCompletedEvent{
			TournamentID: entry.TournamentID,
			EntryID:      entry.ID,
			Wallet:       entry.Wallet,
		})

		return resp, nil
	}

	session.Owned[option.ID] = struct{}{}
	options, err := d.randomOptions(ctx, session.Owned)
	if err != nil {
		// The pick is committed. Drop the session so the next StartDraft
		// rebuilds it from the persisted picks instead of replaying this round.
		d.sessions.delete(entry.ID)
		return nil, err
	}

	session.Round++
	session.Options = options

	resp.NextRound = session.Round
	for _, next := range options {
		resp.NextOptions = append(resp.NextOptions, convertAsset(next))
	}

	return resp, nil
}

func (d *draftDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 100 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be in range [1, 100]")
	}

	entries, err := d.leaderboard.GetLeaderboard(ctx, req.TournamentID, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}

func (d *draftDomain) GetRank(
	ctx context.Context, req *model.GetRankRequest,
) (*model.GetRankResponse, error) {
	wallet := xcontext.RequestWallet(ctx)
	if wallet == "" {
		return nil, errorx.New(errorx.Unauthenticated, "No wallet in request")
	}

	rank, err := d.leaderboard.GetRank(ctx, req.TournamentID, wallet)
	if err != nil {
		return nil, err
	}

	entry, err := d.entryRepo.GetByTournamentAndWallet(ctx, req.TournamentID, wallet)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found entry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	score := entry.Score
	if entry.FinalScore.Valid {
		score = entry.FinalScore.Float64
	}

	return &model.GetRankResponse{Rank: int64(rank), Score: score}, nil
}

func (d *draftDomain) randomOptions(
	ctx context.Context, owned map[string]struct{},
) ([]client.Asset, error) {
	catalog, err := d.priceCaller.GetCatalog(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get asset catalog: %v", err)
		return nil, errorx.Unknown
	}

	pool := make([]client.Asset, 0, len(catalog))
	for _, asset := range catalog {
		if _, ok := owned[asset.ID]; !ok {
			pool = append(pool, asset)
		}
	}

	n := xcontext.Configs(ctx).Tournament.OptionsPerRound
	if len(pool) < n {
		xcontext.Logger(ctx).Errorf("Asset catalog is exhausted: %d left", len(pool))
		return nil, errorx.New(errorx.Unavailable, "Not enough assets to draft from")
	}

	crypto.Shuffle(pool)
	return pool[:n], nil
}

func (d *draftDomain) publish(ctx context.Context, event string, payload any) {
	publishEvent(ctx, d.publisher, event, payload)
}
