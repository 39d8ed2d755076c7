package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"league-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

// Distinguishable upstream conditions. Everything else surfaces as an
// unclassified error.
var (
	ErrNotFound    = errors.New("riot: not found")
	ErrRateLimited = errors.New("riot: rate limited")
)

const (
	ddragonBaseURL = "https://ddragon.leagueoflegends.com"
	staticBaseURL  = "https://static.developer.riotgames.com"
)

// Client talks to the Riot API. Rate limiting beyond surfacing 429 as
// ErrRateLimited is a caller concern.
type Client struct {
	apiKey string
	client *fasthttp.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey: cfg.RiotAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// GetAccountByRiotID resolves a game name + tag line to an account on the
// given routing region (europe, americas, asia).
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine, region string) (*Account, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/riot/account/v1/accounts/by-riot-id/%s/%s",
		region, url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[Account](ctx, c, u)
}

// GetSummonerServer resolves the shard (euw1, na1, ...) a puuid plays on.
func (c *Client) GetSummonerServer(ctx context.Context, puuid string) (string, error) {
	u := fmt.Sprintf("https://europe.api.riotgames.com/riot/account/v1/region/by-game/lol/by-puuid/%s", puuid)
	resp, err := doRequest[accountRegion](ctx, c, u)
	if err != nil {
		return "", err
	}
	return resp.Region, nil
}

// GetMatchIDs returns one page of the puuid's match-ID history, most
// recent first. An empty page signals the end of history.
func (c *Client) GetMatchIDs(ctx context.Context, puuid, region string, start, count int) ([]string, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		region, puuid, start, count)
	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

// GetMatch fetches full match detail. A 404 maps to ErrNotFound, which
// ingestion treats as the match having no payload.
func (c *Client) GetMatch(ctx context.Context, matchID, region string) (*Match, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/%s", region, matchID)
	return doRequest[Match](ctx, c, u)
}

// GetSummonerByPUUID fetches the summoner profile on its shard.
func (c *Client) GetSummonerByPUUID(ctx context.Context, puuid, server string) (*SummonerProfile, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/summoner/v4/summoners/by-puuid/%s", server, puuid)
	return doRequest[SummonerProfile](ctx, c, u)
}

// GetLeagueEntries fetches the ranked-ladder entries for an encrypted
// summoner id on its shard.
func (c *Client) GetLeagueEntries(ctx context.Context, summonerID, server string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/league/v4/entries/by-summoner/%s", server, summonerID)
	entries, err := doRequest[[]LeagueEntry](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

// GetChampionCatalog fetches the data-dragon champion catalog for the
// pinned patch version.
func (c *Client) GetChampionCatalog(ctx context.Context, version string) (*ChampionCatalog, error) {
	u := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", ddragonBaseURL, version)
	return doRequest[ChampionCatalog](ctx, c, u)
}

// GetQueueCatalog fetches the static queue-type catalog.
func (c *Client) GetQueueCatalog(ctx context.Context) ([]QueueInfo, error) {
	u := fmt.Sprintf("%s/docs/lol/queues.json", staticBaseURL)
	queues, err := doRequest[[]QueueInfo](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *queues, nil
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, ErrNotFound
	case fasthttp.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("riot: unexpected status %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
