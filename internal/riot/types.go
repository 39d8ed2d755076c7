package riot

// Account is the response from /riot/account/v1/accounts/by-riot-id.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type accountRegion struct {
	Puuid  string `json:"puuid"`
	Game   string `json:"game"`
	Region string `json:"region"`
}

// Match is the response from /lol/match/v5/matches/{matchId}.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // puuids
}

type MatchInfo struct {
	GameMode           string             `json:"gameMode"`
	GameDuration       int                `json:"gameDuration"` // seconds
	GameStartTimestamp int64              `json:"gameStartTimestamp"`
	QueueID            int                `json:"queueId"`
	QueueType          string             `json:"queueType"`
	Participants       []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	Puuid              string `json:"puuid"`
	ChampionID         int    `json:"championId"`
	TeamID             int    `json:"teamId"`
	Lane               string `json:"lane"`
	Kills              int    `json:"kills"`
	Deaths             int    `json:"deaths"`
	Assists            int    `json:"assists"`
	Win                bool   `json:"win"`
	TotalMinionsKilled int    `json:"totalMinionsKilled"`
	TotalDamageDealt   int    `json:"totalDamageDealt"`
	WardsPlaced        int    `json:"wardsPlaced"`
	GoldEarned         int    `json:"goldEarned"`
	DoubleKills        int    `json:"doubleKills"`
	TripleKills        int    `json:"tripleKills"`
	QuadraKills        int    `json:"quadraKills"`
	PentaKills         int    `json:"pentaKills"`
}

// SummonerProfile is the response from /lol/summoner/v4/summoners/by-puuid.
type SummonerProfile struct {
	ID            string `json:"id"` // encrypted summoner id
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
}

// LeagueEntry is one element of /lol/league/v4/entries/by-summoner.
type LeagueEntry struct {
	QueueType string `json:"queueType"` // RANKED_SOLO_5x5, RANKED_FLEX_SR
	Tier      string `json:"tier"`
	Rank      string `json:"rank"` // division: I..IV
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
}

// ChampionCatalog is the data-dragon champion.json payload. Champion keys
// arrive as numeric strings.
type ChampionCatalog struct {
	Data map[string]ChampionEntry `json:"data"`
}

type ChampionEntry struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Image struct {
		Full string `json:"full"`
	} `json:"image"`
}

// QueueInfo is one element of the static queues.json catalog.
type QueueInfo struct {
	QueueID     int    `json:"queueId"`
	Description string `json:"description"`
}
