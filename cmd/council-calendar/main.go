package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"council-calendar-backend/cmd/council-calendar/apis"
	"council-calendar-backend/cmd/council-calendar/auth"
	"council-calendar-backend/cmd/council-calendar/feed"
	"council-calendar-backend/cmd/council-calendar/model"
	"council-calendar-backend/cmd/council-calendar/repository"
)

type EnvCfg struct {
	DBHost         string `envconfig:"DB_HOST" required:"true"`
	DBPort         int    `envconfig:"DB_PORT" required:"true"`
	DBUser         string `envconfig:"DB_USER" required:"true"`
	DBPassword     string `envconfig:"DB_PASSWORD" required:"true"`
	DBName         string `envconfig:"DB_NAME" required:"true"`
	AdminSecretKey string `envconfig:"ADMIN_SECRET_KEY" required:"true"`
	EmergencyCode  string `envconfig:"EMERGENCY_CODE"`
}

const attendanceRetentionDays = 90

func main() {

	err := os.Setenv("TZ", "UTC")
	if err != nil {
		panic(err)
	}

	var cfg EnvCfg
	err = envconfig.Process("COUNCIL_CAL", &cfg)
	if err != nil {
		panic(err)
	}

	db, err := gorm.Open(
		postgres.Open(
			fmt.Sprintf(
				"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
				cfg.DBHost,
				cfg.DBPort,
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBName,
			),
		),
	)

	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&model.Event{},
		&model.Announcement{},
		&model.PushSubscription{},
		&model.RosterMember{},
		&model.AttendanceRecord{},
	)
	if err != nil {
		panic(err)
	}

	gate := auth.NewCodeGate(cfg.AdminSecretKey, cfg.EmergencyCode)
	bus := feed.NewBus()

	eventRepo := repository.NewEventRepo(db)
	annRepo := repository.NewAnnouncementRepo(db)
	pushRepo := repository.NewPushRepo(db)
	greetingRepo := repository.NewGreetingRepo(db)

	startHousekeeping(greetingRepo)

	e := echo.New()

	rootg := e.Group("")
	v1g := rootg.Group("/api/v1")

	apis.
		NewHealthCheckAPI(db).
		Setup(rootg)

	apis.
		NewICalAPI(eventRepo).
		Setup(rootg)

	apis.
		NewEventAPI(eventRepo, bus, gate.RequireAdmin).
		Setup(v1g)

	apis.
		NewFeedAPI(bus).
		Setup(v1g)

	apis.
		NewAuthAPI(gate).
		Setup(v1g)

	apis.
		NewAnnouncementAPI(annRepo, gate.RequireAdmin).
		Setup(v1g)

	apis.
		NewPushAPI(pushRepo).
		Setup(v1g)

	apis.
		NewGreetingAPI(greetingRepo, gate.RequireAdmin).
		Setup(v1g)

	e.Start(":8080")

}

// startHousekeeping purges aged attendance rows every night.
func startHousekeeping(greetingRepo *repository.GreetingRepo) {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		cutoff := time.Now().AddDate(0, 0, -attendanceRetentionDays)
		purged, err := greetingRepo.PurgeAttendanceBefore(ctx, cutoff)
		if err != nil {
			log.Printf("attendance purge failed: %v", err)
			return
		}
		log.Printf("attendance purge removed %d rows", purged)
	})
	if err != nil {
		panic(err)
	}

	c.Start()
}
