package service

import (
	"context"
	"time"

	"league-tracker/internal/domain"
	"league-tracker/internal/repository"
	"league-tracker/internal/riot"
)

type fakeRiot struct {
	pages     map[int][]string
	pageErr   error
	pageCalls []int

	matches    map[string]*riot.Match
	matchErr   map[string]error
	matchCalls map[string]int

	profile    *riot.SummonerProfile
	profileErr error
	entries    []riot.LeagueEntry
	entriesErr error

	champCatalog *riot.ChampionCatalog
	queueCatalog []riot.QueueInfo
}

func newFakeRiot() *fakeRiot {
	return &fakeRiot{
		pages:      make(map[int][]string),
		matches:    make(map[string]*riot.Match),
		matchErr:   make(map[string]error),
		matchCalls: make(map[string]int),
	}
}

func (f *fakeRiot) GetAccountByRiotID(ctx context.Context, gameName, tagLine, region string) (*riot.Account, error) {
	return &riot.Account{Puuid: "puuid-" + gameName, GameName: gameName, TagLine: tagLine}, nil
}

func (f *fakeRiot) GetSummonerServer(ctx context.Context, puuid string) (string, error) {
	return "euw1", nil
}

func (f *fakeRiot) GetMatchIDs(ctx context.Context, puuid, region string, start, count int) ([]string, error) {
	f.pageCalls = append(f.pageCalls, start)
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.pages[start], nil
}

func (f *fakeRiot) GetMatch(ctx context.Context, matchID, region string) (*riot.Match, error) {
	f.matchCalls[matchID]++
	if err := f.matchErr[matchID]; err != nil {
		return nil, err
	}
	m, ok := f.matches[matchID]
	if !ok {
		return nil, riot.ErrNotFound
	}
	return m, nil
}

func (f *fakeRiot) GetSummonerByPUUID(ctx context.Context, puuid, server string) (*riot.SummonerProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeRiot) GetLeagueEntries(ctx context.Context, summonerID, server string) ([]riot.LeagueEntry, error) {
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	return f.entries, nil
}

func (f *fakeRiot) GetChampionCatalog(ctx context.Context, version string) (*riot.ChampionCatalog, error) {
	return f.champCatalog, nil
}

func (f *fakeRiot) GetQueueCatalog(ctx context.Context) ([]riot.QueueInfo, error) {
	return f.queueCatalog, nil
}

type fakeMatchRepo struct {
	nextID       int64
	matches      map[string]*domain.Match
	participants []domain.Participant

	// queueExternalID maps local queue ids to external queue ids so the
	// by-queue listing can join like the real repository does.
	queueExternalID  map[int64]int
	queueDescription map[int64]string
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		matches:          make(map[string]*domain.Match),
		queueExternalID:  make(map[int64]int),
		queueDescription: make(map[int64]string),
	}
}

func (f *fakeMatchRepo) GetByMatchID(ctx context.Context, matchID string) (*domain.Match, error) {
	m, ok := f.matches[matchID]
	if !ok {
		return nil, repository.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMatchRepo) CreatePlaceholder(ctx context.Context, matchID string, ts time.Time) (*domain.Match, error) {
	f.nextID++
	m := &domain.Match{ID: f.nextID, MatchID: matchID, Timestamp: ts}
	f.matches[matchID] = m
	copied := *m
	return &copied, nil
}

func (f *fakeMatchRepo) Update(ctx context.Context, m *domain.Match) error {
	copied := *m
	f.matches[m.MatchID] = &copied
	return nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id int64) error {
	for matchID, m := range f.matches {
		if m.ID == id {
			delete(f.matches, matchID)
		}
	}
	var kept []domain.Participant
	for _, p := range f.participants {
		if p.MatchID != id {
			kept = append(kept, p)
		}
	}
	f.participants = kept
	return nil
}

func (f *fakeMatchRepo) CreateParticipant(ctx context.Context, p *domain.Participant) error {
	f.nextID++
	p.ID = f.nextID
	f.participants = append(f.participants, *p)
	return nil
}

func (f *fakeMatchRepo) DeleteParticipantsBySummoner(ctx context.Context, summonerID int64) error {
	var kept []domain.Participant
	for _, p := range f.participants {
		if p.SummonerID != summonerID {
			kept = append(kept, p)
		}
	}
	f.participants = kept
	return nil
}

func (f *fakeMatchRepo) HasParticipants(ctx context.Context, summonerID int64) (bool, error) {
	for _, p := range f.participants {
		if p.SummonerID == summonerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMatchRepo) ListParticipantsBySummoner(ctx context.Context, summonerID int64) ([]domain.Participant, error) {
	var result []domain.Participant
	for _, p := range f.participants {
		if p.SummonerID == summonerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeMatchRepo) ListParticipantsBySummonerAndQueue(ctx context.Context, summonerID int64, queueID int) ([]domain.Participant, error) {
	var result []domain.Participant
	for _, p := range f.participants {
		if p.SummonerID != summonerID {
			continue
		}
		m := f.matchByLocalID(p.MatchID)
		if m == nil || m.QueueID == nil {
			continue
		}
		if f.queueExternalID[*m.QueueID] == queueID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeMatchRepo) SumDurationByQueueDescription(ctx context.Context, summonerID int64, description string) (int, error) {
	total := 0
	for _, p := range f.participants {
		if p.SummonerID != summonerID {
			continue
		}
		m := f.matchByLocalID(p.MatchID)
		if m == nil || m.QueueID == nil {
			continue
		}
		if f.queueDescription[*m.QueueID] == description {
			total += m.GameDuration
		}
	}
	return total, nil
}

func (f *fakeMatchRepo) matchByLocalID(id int64) *domain.Match {
	for _, m := range f.matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

type fakeSummonerRepo struct {
	nextID    int64
	summoners map[string]*domain.Summoner
	updated   *domain.Summoner
}

func newFakeSummonerRepo() *fakeSummonerRepo {
	return &fakeSummonerRepo{summoners: make(map[string]*domain.Summoner)}
}

func (f *fakeSummonerRepo) GetByPuuid(ctx context.Context, puuid string) (*domain.Summoner, error) {
	s, ok := f.summoners[puuid]
	if !ok {
		return nil, repository.ErrSummonerNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSummonerRepo) GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Summoner, error) {
	for _, s := range f.summoners {
		if s.GameName == gameName && s.TagLine == tagLine {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrSummonerNotFound
}

func (f *fakeSummonerRepo) Create(ctx context.Context, s *domain.Summoner) error {
	f.nextID++
	s.ID = f.nextID
	copied := *s
	f.summoners[s.Puuid] = &copied
	return nil
}

func (f *fakeSummonerRepo) List(ctx context.Context, limit, offset int) ([]domain.Summoner, error) {
	var result []domain.Summoner
	for _, s := range f.summoners {
		result = append(result, *s)
	}
	return result, nil
}

func (f *fakeSummonerRepo) UpdateDerivedStats(ctx context.Context, s *domain.Summoner) error {
	copied := *s
	f.updated = &copied
	f.summoners[s.Puuid] = &copied
	return nil
}

func (f *fakeSummonerRepo) UpdateRankInfo(ctx context.Context, s *domain.Summoner) error {
	copied := *s
	f.updated = &copied
	f.summoners[s.Puuid] = &copied
	return nil
}

type fakeQueueRepo struct {
	nextID int64
	queues map[int]*domain.Queue
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{queues: make(map[int]*domain.Queue)}
}

func (f *fakeQueueRepo) GetOrCreate(ctx context.Context, queueID int, description string) (*domain.Queue, error) {
	if q, ok := f.queues[queueID]; ok {
		copied := *q
		return &copied, nil
	}
	f.nextID++
	q := &domain.Queue{ID: f.nextID, QueueID: queueID, Description: description}
	f.queues[queueID] = q
	copied := *q
	return &copied, nil
}

func (f *fakeQueueRepo) Upsert(ctx context.Context, q *domain.Queue) error {
	if existing, ok := f.queues[q.QueueID]; ok {
		existing.Description = q.Description
		return nil
	}
	f.nextID++
	q.ID = f.nextID
	copied := *q
	f.queues[q.QueueID] = &copied
	return nil
}

func (f *fakeQueueRepo) Count(ctx context.Context) (int, error) {
	return len(f.queues), nil
}

type fakeChampionRepo struct {
	nextID    int64
	champions map[int]*domain.Champion
}

func newFakeChampionRepo() *fakeChampionRepo {
	return &fakeChampionRepo{champions: make(map[int]*domain.Champion)}
}

func (f *fakeChampionRepo) GetByKey(ctx context.Context, key int) (*domain.Champion, error) {
	c, ok := f.champions[key]
	if !ok {
		return nil, repository.ErrChampionNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeChampionRepo) Upsert(ctx context.Context, c *domain.Champion) error {
	if existing, ok := f.champions[c.Key]; ok {
		existing.Name = c.Name
		existing.Icon = c.Icon
		return nil
	}
	f.nextID++
	c.ID = f.nextID
	copied := *c
	f.champions[c.Key] = &copied
	return nil
}

func (f *fakeChampionRepo) Count(ctx context.Context) (int, error) {
	return len(f.champions), nil
}

func (f *fakeChampionRepo) ListBySummoner(ctx context.Context, summonerID int64) (map[int64]domain.Champion, error) {
	result := make(map[int64]domain.Champion)
	for _, c := range f.champions {
		result[c.ID] = *c
	}
	return result, nil
}

type fakeSummonerChampionRepo struct {
	stored map[int64][]domain.SummonerChampion
}

func newFakeSummonerChampionRepo() *fakeSummonerChampionRepo {
	return &fakeSummonerChampionRepo{stored: make(map[int64][]domain.SummonerChampion)}
}

func (f *fakeSummonerChampionRepo) ReplaceForSummoner(ctx context.Context, summonerID int64, rows []domain.SummonerChampion) error {
	copied := make([]domain.SummonerChampion, len(rows))
	copy(copied, rows)
	f.stored[summonerID] = copied
	return nil
}

func (f *fakeSummonerChampionRepo) ListBySummoner(ctx context.Context, summonerID int64) ([]domain.SummonerChampion, error) {
	return f.stored[summonerID], nil
}
