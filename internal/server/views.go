package server

import (
	"league-tracker/internal/domain"
)

type queueStatsView struct {
	Rank          *string  `json:"rank"`
	Wins          *int     `json:"wins"`
	Losses        *int     `json:"losses"`
	KDA           *float64 `json:"kda"`
	MainRole      *string  `json:"mainRole"`
	VisionAvg     *float64 `json:"visionAvg"`
	GoldPerMin    *int     `json:"goldPerMin"`
	MinionsPerMin *float64 `json:"minionsPerMin"`
}

type summonerView struct {
	Puuid         string         `json:"puuid"`
	GameName      string         `json:"gameName"`
	TagLine       string         `json:"tagLine"`
	Region        string         `json:"region"`
	Server        string         `json:"server"`
	SummonerLevel *int           `json:"summonerLevel"`
	Icon          *string        `json:"icon"`
	Solo          queueStatsView `json:"solo"`
	Flex          queueStatsView `json:"flex"`
}

type championStatView struct {
	ChampionName string  `json:"championName"`
	ChampionIcon string  `json:"championIcon"`
	Matches      int     `json:"matches"`
	Winratio     float64 `json:"winratio"`
	KDA          float64 `json:"kda"`
}

func toQueueStatsView(stats domain.QueueStats) queueStatsView {
	return queueStatsView{
		Rank:          stats.Rank,
		Wins:          stats.Wins,
		Losses:        stats.Losses,
		KDA:           stats.KDA,
		MainRole:      stats.MainRole,
		VisionAvg:     stats.VisionAvg,
		GoldPerMin:    stats.GoldPerMin,
		MinionsPerMin: stats.MinionsPerMin,
	}
}

func toSummonerView(s *domain.Summoner) summonerView {
	return summonerView{
		Puuid:         s.Puuid,
		GameName:      s.GameName,
		TagLine:       s.TagLine,
		Region:        s.Region,
		Server:        s.Server,
		SummonerLevel: s.SummonerLevel,
		Icon:          s.Icon,
		Solo:          toQueueStatsView(s.Solo),
		Flex:          toQueueStatsView(s.Flex),
	}
}
