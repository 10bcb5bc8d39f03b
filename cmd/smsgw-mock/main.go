// smsgw-mock is a stand-in for the SMS gateway so the full order flow
// can run locally without real credentials.
package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type message struct {
	SID        string    `json:"sid"`
	To         string    `json:"to"`
	From       string    `json:"from"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"received_at"`
}

type messageStore struct {
	messages []message
	mutex    sync.RWMutex
}

func (s *messageStore) add(m message) {
	s.mutex.Lock()
	s.messages = append(s.messages, m)
	s.mutex.Unlock()
}

func (s *messageStore) all() []message {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]message, len(s.messages))
	copy(out, s.messages)
	return out
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	failureRate := 0.0
	if v := os.Getenv("FAILURE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			failureRate = f
		}
	}

	store := &messageStore{}

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"smsgw-mock"}`))
	}).Methods("GET")

	router.HandleFunc("/Accounts/{sid}/Messages.json", func(w http.ResponseWriter, r *http.Request) {
		// Simulate gateway latency.
		time.Sleep(time.Duration(rand.Intn(200)+50) * time.Millisecond)

		if err := r.ParseForm(); err != nil {
			respondError(w, http.StatusBadRequest, 21602, "Invalid form body")
			return
		}

		to := r.PostFormValue("To")
		from := r.PostFormValue("From")
		body := r.PostFormValue("Body")

		if to == "" || body == "" {
			respondError(w, http.StatusBadRequest, 21604, "A 'To' number and 'Body' are required")
			return
		}

		if failureRate > 0 && rand.Float64() < failureRate {
			respondError(w, http.StatusServiceUnavailable, 20500, "Simulated gateway failure")
			return
		}

		m := message{
			SID:        "SM" + strings.ReplaceAll(uuid.New().String(), "-", ""),
			To:         to,
			From:       from,
			Body:       body,
			Status:     "queued",
			ReceivedAt: time.Now(),
		}
		store.add(m)

		logger.WithFields(logrus.Fields{
			"sid": m.SID,
			"to":  m.To,
		}).Info("Mock gateway accepted message")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"sid":    m.SID,
			"status": m.Status,
		})
	}).Methods("POST")

	router.HandleFunc("/messages", func(w http.ResponseWriter, r *http.Request) {
		messages := store.all()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"messages": messages,
			"count":    len(messages),
		})
	}).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	logger.WithFields(logrus.Fields{
		"port":         port,
		"failure_rate": failureRate,
	}).Info("Starting mock SMS gateway")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.WithError(err).Fatal("Mock gateway stopped")
	}
}

func respondError(w http.ResponseWriter, status, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": msg,
	})
}
