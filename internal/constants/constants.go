package constants

import "time"

const (
	// MatchPageSize is the number of match IDs requested per history page.
	MatchPageSize = 30
	// MatchesLimit caps how far back ingestion walks a summoner's history.
	// With a page size of 30 only the pages at offsets 0 and 30 are ever
	// requested.
	MatchesLimit = 60
)

const (
	QueueIDSoloRanked = 420
	QueueIDFlexRanked = 440
	QueueIDQuickplay  = 480

	QueueTypeSolo = "RANKED_SOLO_5x5"
	QueueTypeFlex = "RANKED_FLEX_SR"

	QueueDescSolo = "5v5 Ranked Solo games"
	QueueDescFlex = "5v5 Ranked Flex games"
)

const (
	// TeamBlue and TeamRed are the two side identifiers used in match
	// detail payloads.
	TeamBlue = 100
	TeamRed  = 200
)

const DDragonVersion = "15.11.1"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 60 * time.Second
	BootstrapTimeout   = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SummonerListLimit = 30
)
