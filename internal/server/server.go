package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"
	"league-tracker/internal/riot"
	"league-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server is the thin JSON boundary: handlers orchestrate services and map
// the error taxonomy onto status codes. Presentation beyond that lives
// elsewhere.
type Server struct {
	summonerSvc   *service.SummonerService
	ingestSvc     *service.IngestService
	statsSvc      *service.StatsService
	rankSvc       *service.RankService
	defaultRegion string
	logger        zerolog.Logger
}

func New(
	summonerSvc *service.SummonerService,
	ingestSvc *service.IngestService,
	statsSvc *service.StatsService,
	rankSvc *service.RankService,
	cfg *config.Config,
	logger zerolog.Logger,
) *Server {
	return &Server{
		summonerSvc:   summonerSvc,
		ingestSvc:     ingestSvc,
		statsSvc:      statsSvc,
		rankSvc:       rankSvc,
		defaultRegion: cfg.DefaultRegion,
		logger:        logger,
	}
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/summoners", func(r chi.Router) {
		r.Get("/", s.handleListSummoners)
		r.Get("/{gameName}/{tagLine}", s.handleGetSummoner)
		r.Post("/{gameName}/{tagLine}/refresh", s.handleRefreshSummoner)
		r.Get("/{gameName}/{tagLine}/champions", s.handleChampionStats)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListSummoners(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	summoners, err := s.summonerSvc.List(r.Context(), page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]summonerView, 0, len(summoners))
	for i := range summoners {
		views = append(views, toSummonerView(&summoners[i]))
	}
	s.writeJSON(w, http.StatusOK, views)
}

// handleGetSummoner is the main flow: resolve (or create) the summoner,
// ingest its history on first visit, recompute derived stats, and return
// the profile.
func (s *Server) handleGetSummoner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	summ, err := s.resolveSummoner(ctx, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	hasHistory, err := s.ingestSvc.HasHistory(ctx, summ)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !hasHistory {
		if err := s.ingestSvc.IngestRecentMatches(ctx, summ, false); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	if err := s.recalculate(ctx, summ); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSummonerView(summ))
}

// handleRefreshSummoner drops the summoner's stored participation,
// re-ingests with forced detail fetches, and recomputes everything
// including the ranked standing.
func (s *Server) handleRefreshSummoner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	summ, err := s.resolveSummoner(ctx, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.ingestSvc.Refresh(ctx, summ); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.recalculate(ctx, summ); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.rankSvc.SyncRankInfo(ctx, summ); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toSummonerView(summ))
}

func (s *Server) handleChampionStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	summ, err := s.resolveSummoner(ctx, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	stats, err := s.statsSvc.ListChampionStats(ctx, summ)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]championStatView, 0, len(stats))
	for _, stat := range stats {
		views = append(views, championStatView{
			ChampionName: stat.ChampionName,
			ChampionIcon: stat.ChampionIcon,
			Matches:      stat.MatchesNum,
			Winratio:     stat.Winratio,
			KDA:          stat.KDA,
		})
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) resolveSummoner(ctx context.Context, r *http.Request) (*domain.Summoner, error) {
	gameName := chi.URLParam(r, "gameName")
	tagLine := chi.URLParam(r, "tagLine")
	region := r.URL.Query().Get("region")
	if region == "" {
		region = s.defaultRegion
	}
	return s.summonerSvc.GetOrCreate(ctx, gameName, tagLine, region)
}

func (s *Server) recalculate(ctx context.Context, summ *domain.Summoner) error {
	if err := s.statsSvc.RecalculateQueueStats(ctx, summ); err != nil {
		return err
	}
	return s.statsSvc.RecalculateChampionStats(ctx, summ)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	switch {
	case errors.Is(err, riot.ErrNotFound), errors.Is(err, repository.ErrSummonerNotFound):
		status = http.StatusNotFound
		message = "summoner not found"
	case errors.Is(err, riot.ErrRateLimited):
		status = http.StatusTooManyRequests
		message = "rate limited upstream, try again later"
	}

	s.logger.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode response")
	}
}
