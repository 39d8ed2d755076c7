package service

import (
	"context"
	"strings"
	"testing"

	"league-tracker/internal/riot"

	"github.com/rs/zerolog"
)

func testChampionCatalog() *riot.ChampionCatalog {
	catalog := &riot.ChampionCatalog{Data: map[string]riot.ChampionEntry{}}
	aatrox := riot.ChampionEntry{Key: "266", Name: "Aatrox"}
	aatrox.Image.Full = "Aatrox.png"
	ahri := riot.ChampionEntry{Key: "103", Name: "Ahri"}
	ahri.Image.Full = "Ahri.png"
	catalog.Data["Aatrox"] = aatrox
	catalog.Data["Ahri"] = ahri
	return catalog
}

func TestBootstrap(t *testing.T) {
	riotClient := newFakeRiot()
	riotClient.champCatalog = testChampionCatalog()
	riotClient.queueCatalog = []riot.QueueInfo{
		{QueueID: 420, Description: "5v5 Ranked Solo games"},
		{QueueID: 440, Description: "5v5 Ranked Flex games"},
	}

	champRepo := newFakeChampionRepo()
	queueRepo := newFakeQueueRepo()
	svc := NewCatalogService(riotClient, champRepo, queueRepo, zerolog.Nop())

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	if n, _ := champRepo.Count(context.Background()); n != 2 {
		t.Errorf("champion count = %d, want 2", n)
	}
	champ, err := champRepo.GetByKey(context.Background(), 266)
	if err != nil {
		t.Fatalf("champion 266 missing: %v", err)
	}
	if champ.Name != "Aatrox" || !strings.Contains(champ.Icon, "/champion/Aatrox.png") {
		t.Errorf("champion = %+v", champ)
	}

	if n, _ := queueRepo.Count(context.Background()); n != 2 {
		t.Errorf("queue count = %d, want 2", n)
	}

	// Re-running keeps the catalogs stable.
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("second Bootstrap() error = %v", err)
	}
	if n, _ := champRepo.Count(context.Background()); n != 2 {
		t.Errorf("champion count after rerun = %d, want 2", n)
	}
	if n, _ := queueRepo.Count(context.Background()); n != 2 {
		t.Errorf("queue count after rerun = %d, want 2", n)
	}
}

func TestBootstrapRejectsMalformedChampionKey(t *testing.T) {
	riotClient := newFakeRiot()
	riotClient.champCatalog = &riot.ChampionCatalog{Data: map[string]riot.ChampionEntry{
		"Broken": {Key: "not-a-number", Name: "Broken"},
	}}

	svc := NewCatalogService(riotClient, newFakeChampionRepo(), newFakeQueueRepo(), zerolog.Nop())
	if err := svc.Bootstrap(context.Background()); err == nil {
		t.Fatal("Bootstrap() error = nil, want malformed-key failure")
	}
}
