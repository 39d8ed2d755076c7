package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

func TestComputeQueueAggregate(t *testing.T) {
	tests := []struct {
		name         string
		rows         []domain.Participant
		durationSecs int
		want         queueAggregate
		wantRole     string
	}{
		{
			name: "no rows yields zero values and no role",
			want: queueAggregate{},
		},
		{
			name: "zero deaths yields zero kda",
			rows: []domain.Participant{
				{Kills: 10, Deaths: 0, Assists: 5, Lane: "MIDDLE"},
			},
			durationSecs: 1800,
			want:         queueAggregate{KDA: 0, VisionAvg: 0, GoldPerMin: 0, MinionsPerMin: 0},
			wantRole:     "MIDDLE",
		},
		{
			name: "kda vision and per-minute rates",
			rows: []domain.Participant{
				{Kills: 4, Deaths: 2, Assists: 1, Wards: 10, GoldEarned: 5000, Farm: 120, Lane: "TOP"},
				{Kills: 6, Deaths: 3, Assists: 4, Wards: 20, GoldEarned: 4000, Farm: 120, Lane: "TOP"},
			},
			durationSecs: 1800,
			want: queueAggregate{
				KDA:           3,
				VisionAvg:     15,
				GoldPerMin:    300,
				MinionsPerMin: 8,
			},
			wantRole: "TOP",
		},
		{
			name: "kda rounds to two decimals",
			rows: []domain.Participant{
				{Kills: 1, Deaths: 3, Assists: 1, Lane: "JUNGLE"},
			},
			want:     queueAggregate{KDA: 0.67},
			wantRole: "JUNGLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeQueueAggregate(tt.rows, tt.durationSecs)

			if got.KDA != tt.want.KDA {
				t.Errorf("KDA = %v, want %v", got.KDA, tt.want.KDA)
			}
			if got.VisionAvg != tt.want.VisionAvg {
				t.Errorf("VisionAvg = %v, want %v", got.VisionAvg, tt.want.VisionAvg)
			}
			if got.GoldPerMin != tt.want.GoldPerMin {
				t.Errorf("GoldPerMin = %v, want %v", got.GoldPerMin, tt.want.GoldPerMin)
			}
			if got.MinionsPerMin != tt.want.MinionsPerMin {
				t.Errorf("MinionsPerMin = %v, want %v", got.MinionsPerMin, tt.want.MinionsPerMin)
			}

			if tt.wantRole == "" {
				if got.MainRole != nil {
					t.Errorf("MainRole = %q, want nil", *got.MainRole)
				}
			} else if got.MainRole == nil || *got.MainRole != tt.wantRole {
				t.Errorf("MainRole = %v, want %q", got.MainRole, tt.wantRole)
			}
		})
	}
}

func TestMainRole(t *testing.T) {
	tests := []struct {
		name  string
		lanes []string
		want  string
	}{
		{"clear majority", []string{"MIDDLE", "TOP", "MIDDLE"}, "MIDDLE"},
		{"tie goes to first encountered", []string{"TOP", "MIDDLE"}, "TOP"},
		{"single row", []string{"BOTTOM"}, "BOTTOM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]domain.Participant, len(tt.lanes))
			for i, lane := range tt.lanes {
				rows[i].Lane = lane
			}
			got := mainRole(rows)
			if got == nil || *got != tt.want {
				t.Errorf("mainRole(%v) = %v, want %q", tt.lanes, got, tt.want)
			}
		})
	}

	if got := mainRole(nil); got != nil {
		t.Errorf("mainRole(nil) = %q, want nil", *got)
	}
}

func TestComputeChampionSummaries(t *testing.T) {
	rows := []domain.Participant{
		{ChampionID: 1, Win: true, Kills: 5, Deaths: 2, Assists: 3},
		{ChampionID: 2, Win: true, Kills: 3, Deaths: 0, Assists: 2},
		{ChampionID: 1, Win: false, Kills: 1, Deaths: 4, Assists: 2},
		{ChampionID: 1, Win: false, Kills: 2, Deaths: 2, Assists: 1},
	}

	got := computeChampionSummaries(7, rows)

	want := []domain.SummonerChampion{
		{SummonerID: 7, ChampionID: 1, MatchesNum: 3, Winratio: 33.33, KDA: 1.75},
		{SummonerID: 7, ChampionID: 2, MatchesNum: 1, Winratio: 100, KDA: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("computeChampionSummaries() = %+v, want %+v", got, want)
	}
}

func TestComputeChampionSummariesZeroDeathsFloorsDenominator(t *testing.T) {
	rows := []domain.Participant{
		{ChampionID: 9, Win: true, Kills: 3, Deaths: 0, Assists: 2},
	}
	got := computeChampionSummaries(1, rows)
	if len(got) != 1 || got[0].KDA != 5 {
		t.Fatalf("got %+v, want single summary with KDA 5", got)
	}
}

func TestComputeChampionSummariesIdempotent(t *testing.T) {
	rows := []domain.Participant{
		{ChampionID: 1, Win: true, Kills: 5, Deaths: 2, Assists: 3},
		{ChampionID: 2, Win: false, Kills: 1, Deaths: 1, Assists: 1},
		{ChampionID: 1, Win: false, Kills: 2, Deaths: 3, Assists: 4},
	}

	first := computeChampionSummaries(3, rows)
	second := computeChampionSummaries(3, rows)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation changed output:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestRecalculateChampionStatsReplacesStoredSet(t *testing.T) {
	matchRepo := newFakeMatchRepo()
	summonerRepo := newFakeSummonerRepo()
	scRepo := newFakeSummonerChampionRepo()
	champRepo := newFakeChampionRepo()
	svc := NewStatsService(matchRepo, summonerRepo, scRepo, champRepo, zerolog.Nop())

	summ := &domain.Summoner{ID: 1, Puuid: "p1"}
	ctx := context.Background()

	m, _ := matchRepo.CreatePlaceholder(ctx, "EUW1_1", time.Now())
	matchRepo.CreateParticipant(ctx, &domain.Participant{SummonerID: 1, MatchID: m.ID, ChampionID: 4, Win: true, Kills: 2, Deaths: 1, Assists: 3})

	if err := svc.RecalculateChampionStats(ctx, summ); err != nil {
		t.Fatalf("RecalculateChampionStats() error = %v", err)
	}
	stored, _ := scRepo.ListBySummoner(ctx, 1)
	if len(stored) != 1 || stored[0].ChampionID != 4 || stored[0].MatchesNum != 1 {
		t.Fatalf("stored = %+v, want one summary for champion 4", stored)
	}

	// A second run over the same rows must replace, not append.
	if err := svc.RecalculateChampionStats(ctx, summ); err != nil {
		t.Fatalf("RecalculateChampionStats() error = %v", err)
	}
	stored, _ = scRepo.ListBySummoner(ctx, 1)
	if len(stored) != 1 {
		t.Fatalf("after second run stored %d summaries, want 1", len(stored))
	}
}

func TestRecalculateQueueStatsWritesZeroValuedFields(t *testing.T) {
	matchRepo := newFakeMatchRepo()
	summonerRepo := newFakeSummonerRepo()
	scRepo := newFakeSummonerChampionRepo()
	champRepo := newFakeChampionRepo()
	svc := NewStatsService(matchRepo, summonerRepo, scRepo, champRepo, zerolog.Nop())

	summ := &domain.Summoner{ID: 1, Puuid: "p1"}
	summonerRepo.summoners["p1"] = summ

	if err := svc.RecalculateQueueStats(context.Background(), summ); err != nil {
		t.Fatalf("RecalculateQueueStats() error = %v", err)
	}

	for _, stats := range []domain.QueueStats{summ.Solo, summ.Flex} {
		if stats.KDA == nil || *stats.KDA != 0 {
			t.Errorf("KDA = %v, want pointer to 0", stats.KDA)
		}
		if stats.VisionAvg == nil || *stats.VisionAvg != 0 {
			t.Errorf("VisionAvg = %v, want pointer to 0", stats.VisionAvg)
		}
		if stats.MainRole != nil {
			t.Errorf("MainRole = %q, want nil", *stats.MainRole)
		}
	}
	if summonerRepo.updated == nil {
		t.Error("derived stats were not persisted")
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.0 / 3.0 * 100, 33.33},
		{2.0 / 3.0 * 100, 66.67},
		{0.005, 0.01},
		{3, 3},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
