//go:build integration

package eventsapi

import (
	"context"
	"testing"
	"time"

	"club-site/database"
	"club-site/internal/domain/admins"
	"club-site/internal/domain/events"
	"club-site/internal/infra/cache"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPostgresEventAggregate(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("club"),
		tcpostgres.WithUsername("club"),
		tcpostgres.WithPassword("club"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("skip: cannot start postgres: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}

	db, err := database.Open(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}

	admin := admins.AllowedAdmin{GithubID: "1001", GithubUsername: "ada", IsSuperAdmin: true}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatal(err)
	}
	s := NewService(db, cache.Noop{}, time.Minute)

	f := demoNight()
	f.Location = &LocationInput{City: strp("Modesto")}
	id, err := s.CreateEvent(ctx, &admin, f)
	if err != nil {
		t.Fatal(err)
	}

	ev, err := s.GetEventByID(ctx, id)
	if err != nil || ev == nil {
		t.Fatalf("get: %+v %v", ev, err)
	}
	if ev.Location == nil || *ev.Location.City != "Modesto" || len(ev.Timeline.Markers) != 1 {
		t.Fatalf("event=%+v", ev)
	}

	// resubmitting the same markers keeps the set stable
	f.Timeline.Markers[0].ID = strp(ev.Timeline.Markers[0].ID)
	for i := 0; i < 2; i++ {
		if err := s.UpdateEvent(ctx, &admin, id, f); err != nil {
			t.Fatal(err)
		}
	}
	var markers int64
	db.Model(&events.TimelineMarker{}).Where("event_id = ?", id).Count(&markers)
	if markers != 1 {
		t.Fatalf("markers=%d want 1", markers)
	}

	if err := s.DeleteEvent(ctx, &admin, id); err != nil {
		t.Fatal(err)
	}
	for _, model := range []any{&events.Location{}, &events.Timeline{}, &events.TimelineMarker{}} {
		var n int64
		db.Model(model).Where("event_id = ?", id).Count(&n)
		if n != 0 {
			t.Fatalf("%T rows left after delete: %d", model, n)
		}
	}
}
