package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Drives a running server over its HTTP surface only. Stations are expected
// to be seeded with IDs 1..maxStations before the run; the server is expected
// to have been bootstrapped with the admin credentials below.

var maxStations int = 1000
var httpHostPort string = "127.0.0.1:1080"

var adminEmail string = "admin@example.dz"
var adminPassword string = "change-me-too"

var authToken string

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	authToken = login(adminEmail, adminPassword)

	fmt.Printf("logged in as %v\n", adminEmail)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxStations {
		wg.Add(1)
		go func() {
			createOperator(uint(i + 1))
			fmt.Printf("\rcreated operator for station %v", i+1)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated operators for %v stations: used time=%v seconds, throughput=%v action/second\n",
		maxStations, usedTime.Seconds(), float64(maxStations)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxStations {
		wg.Add(1)
		go func() {
			doAction(uint(i + 1))
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v stations: used time=%v seconds, throughput=%v action/second\n",
		maxStations, usedTime.Seconds(), float64(maxStations*3)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func login(email, password string) string {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/auth/login", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		log.Fatal("Failed to log in:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("login failed with status %v: %s", resp.StatusCode, body)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		log.Fatal("Failed to decode login response:", err)
	}
	return loginResp.Token
}

func doAuthed(method, url string, payload any) *http.Response {
	var body io.Reader
	if payload != nil {
		jsonData, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonData)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+authToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	return resp
}

func createOperator(stationID uint) {
	payload := map[string]any{
		"email":      fmt.Sprintf("operator-%s@bench.example.dz", uuid.NewString()),
		"password":   uuid.NewString(),
		"role":       "station_operator",
		"station_id": stationID,
	}
	resp := doAuthed("POST", fmt.Sprintf("http://%s/users", httpHostPort), payload)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("\nunexpected create user response status: %v\n", resp.StatusCode)
	}
}

func doAction(stationID uint) {
	actions := []func(){
		genPostStockAction(stationID),
		genGetAlertsAction(stationID),
		genGetSummaryAction(),
	}
	actionNames := []string{
		"PostStock",
		"GetAlerts",
		"GetSummary",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for station %v", actionNames[index], stationID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genPostStockAction(stationID uint) func() {
	return func() {
		payload := map[string]any{
			"timestamp":  time.Now().Format(time.RFC3339),
			"essence":    rndFloat64(0.0, 85000.0, 2),
			"gasoil":     rndFloat64(0.0, 85000.0, 2),
			"gpl":        rndFloat64(0.0, 20000.0, 2),
			"lubricants": rndFloat64(0.0, 5000.0, 2),
		}
		resp := doAuthed("POST", fmt.Sprintf("http://%s/stations/%v/stock", httpHostPort, stationID), payload)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound && resp.StatusCode != http.StatusTooManyRequests {
			fmt.Printf("\nunexpected stock response status: %v\n", resp.StatusCode)
		}
	}
}

func genGetAlertsAction(stationID uint) func() {
	return func() {
		resp := doAuthed("GET", fmt.Sprintf("http://%s/stations/%v/alerts", httpHostPort, stationID), nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
			fmt.Printf("\nunexpected alerts response status: %v\n", resp.StatusCode)
		}
	}
}

func genGetSummaryAction() func() {
	return func() {
		resp := doAuthed("GET", fmt.Sprintf("http://%s/summary", httpHostPort), nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nunexpected summary response status: %v\n", resp.StatusCode)
		}
	}
}
