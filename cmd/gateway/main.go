package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"keephy-check/pkg/api"
	"keephy-check/pkg/db"
	"keephy-check/pkg/model"
	"keephy-check/pkg/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	storeType := flag.String("store", "memory", "store backend: memory|consul (requires build tag consul)")
	consulAddr := flag.String("consul-addr", "127.0.0.1:8500", "consul address (when store=consul)")
	noDB := flag.Bool("no-db", false, "skip MySQL; auth and submission persistence disabled")
	tlsCert := flag.String("tls-cert", "", "TLS cert path (enables HTTPS if set with --tls-key)")
	tlsKey := flag.String("tls-key", "", "TLS key path (enables HTTPS if set with --tls-cert)")
	seedDemo := flag.Bool("seed-demo", true, "seed a demo feedback form at startup")
	flag.Parse()

	var feedbackStore store.FeedbackStore
	switch *storeType {
	case "consul":
		feedbackStore = store.NewConsulStore(*consulAddr)
	case "memory":
		feedbackStore = store.NewMemoryStore()
	default:
		log.Fatalf("unsupported store type: %s", *storeType)
	}

	var gdb *gorm.DB
	if !*noDB {
		var err error
		gdb, err = db.Init()
		if err != nil {
			log.Printf("mysql unavailable (%v); auth and submission persistence disabled", err)
			gdb = nil
		}
	}

	if *seedDemo {
		seedDemoForm(feedbackStore)
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, feedbackStore, gdb)
	authHandler := &api.AuthHandler{DB: gdb}
	authHandler.RegisterRoutes(mux)
	hub := api.NewCheckHub()
	api.RegisterCheckRoutes(mux, feedbackStore, hub)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.Recover(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("gateway listening on %s", *addr)
	var err error
	if *tlsCert != "" && *tlsKey != "" {
		err = srv.ListenAndServeTLS(*tlsCert, *tlsKey)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// seedDemoForm installs the sample feedback form the marketing site links to,
// so render and submission endpoints work out of the box.
func seedDemoForm(st store.FeedbackStore) {
	form := model.Form{
		ID:          "demo",
		Title:       "How was your visit?",
		Description: "Tell us about your experience.",
		Questions: []model.Question{
			{ID: "q-rating", Type: model.QuestionRating, Text: "How would you rate your overall experience?", Required: true, Order: 1},
			{ID: "q-recommend", Type: model.QuestionYesNo, Text: "Would you recommend us to a friend?", Required: true, Order: 2},
			{ID: "q-visit", Type: model.QuestionMultipleChoice, Text: "What brought you in today?", Order: 3, Options: []model.Option{
				{Label: "Dining", Value: "dining"},
				{Label: "Takeaway", Value: "takeaway"},
				{Label: "Event", Value: "event"},
			}},
			{ID: "q-comments", Type: model.QuestionText, Text: "Anything else you'd like to share?", Order: 4},
		},
		Settings: model.FormSettings{
			AllowAnonymous:  true,
			CollectContact:  false,
			ThankYouMessage: "Thanks for your feedback!",
		},
	}
	if _, err := st.UpsertForm(form); err != nil {
		log.Printf("failed to seed demo form: %v", err)
	}
}
