package main

import (
	"flag"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
)

func randStringBytes(n int) string {
	const letterBytes = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

func main() {
	a := flag.String("a", "http://localhost:8080", "Server address")
	n := flag.Int("n", 20, "Iterations per stage")
	flag.Parse()

	const (
		ping        = "/ping"
		syncUser    = "/api/auth/sync-user"
		capture     = "/api/screenshots/capture"
		screenshots = "/api/screenshots"
	)

	client := resty.New().SetBaseURL(*a)
	externalID := uuid.New().String()

	log.Println("Performing ping loading")
	for i := 0; i < *n; i++ {
		if _, err := client.R().Get(ping); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Signing in as", externalID)
	res, err := client.R().SetBody(modeldto.RequestSyncUser{
		ExternalID: externalID,
		Email:      externalID + "@loader.local",
	}).Post(syncUser)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Sign-in:", res.StatusCode(), string(res.Body()))

	log.Println("Performing capture loading")
	var ids []int64
	devices := []modelshot.DeviceType{modelshot.DeviceMobile, modelshot.DeviceDesktop}
	for i := 0; i < *n; i++ {
		var shot modelshot.Screenshot
		res, err := client.R().
			SetHeader(middleware.ExternalIDHeader, externalID).
			SetBody(modeldto.RequestCapture{
				URL:             "https://www." + randStringBytes(10) + ".com",
				DeviceType:      string(devices[i%len(devices)]),
				BackgroundColor: modelshot.SeedBackgroundColor,
				FrameStyle:      string(modelshot.SeedFrameStyle),
				FrameColor:      modelshot.SeedFrameColor,
			}).
			SetResult(&shot).
			Post(capture)
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() == 200 {
			ids = append(ids, shot.ID)
		} else {
			log.Println("Iteration", i, res.StatusCode(), string(res.Body()))
		}
	}
	time.Sleep(1 * time.Second)

	log.Println("Performing listing loading")
	for i := 0; i < *n; i++ {
		res, err := client.R().SetQueryParam("externalId", externalID).Get(screenshots)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("Iteration", i, res.StatusCode(), len(res.Body()), "bytes")
	}

	log.Println("Performing delete loading")
	for _, id := range ids {
		if _, err := client.R().Delete(screenshots + "/" + strconv.FormatInt(id, 10)); err != nil {
			log.Fatal(err)
		}
	}
}
