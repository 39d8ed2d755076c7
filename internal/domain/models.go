package domain

import (
	"time"
)

// QueueStats bundles the derived per-queue fields of a summoner. All
// fields are nil until the first recomputation writes them.
type QueueStats struct {
	Rank          *string
	Wins          *int
	Losses        *int
	KDA           *float64
	MainRole      *string
	VisionAvg     *float64
	GoldPerMin    *int
	MinionsPerMin *float64
}

type Summoner struct {
	ID       int64
	Puuid    string
	GameName string
	TagLine  string
	Region   string // routing region: europe, americas, asia
	Server   string // shard: euw1, eun1, na1, ...

	// Populated by rank sync.
	SummonerID    *string
	SummonerLevel *int
	Icon          *string

	Solo QueueStats
	Flex QueueStats

	DateAdded time.Time
}

type Queue struct {
	ID          int64
	QueueID     int
	Description string
}

type Champion struct {
	ID   int64
	Key  int
	Name string
	Icon string
}

type Match struct {
	ID           int64
	MatchID      string
	QueueID      *int64 // local queues.id, nil for a fresh placeholder
	GameMode     string
	GameName     string
	GameDuration int // seconds
	Timestamp    time.Time

	Team0Kills   int
	Team0Deaths  int
	Team0Assists int
	Team1Kills   int
	Team1Deaths  int
	Team1Assists int
}

type Participant struct {
	ID         int64
	SummonerID int64
	MatchID    int64
	ChampionID int64

	TeamID            int // 100 - blue side, 200 - red side
	Lane              string
	Kills             int
	Deaths            int
	Assists           int
	Win               bool
	KillParticipation float64
	Farm              int
	Wards             int
	DoubleKills       int
	TripleKills       int
	QuadraKills       int
	PentaKills        int
	DamageDealt       int
	GoldEarned        int
}

// SummonerChampion is a fully derived per-(summoner, champion) summary
// row, rebuilt wholesale on every recomputation.
type SummonerChampion struct {
	ID         string // nanoid
	SummonerID int64
	ChampionID int64
	MatchesNum int
	Winratio   float64 // percent, 2 decimal places
	KDA        float64 // 2 decimal places
}
