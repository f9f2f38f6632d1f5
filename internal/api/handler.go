package api

import (
	"github.com/rs/zerolog"

	"talent-intake/internal/ingest"
	"talent-intake/internal/notify"
	"talent-intake/internal/storage"
)

type API struct {
	svc            *ingest.Service
	db             *storage.DB
	notifier       notify.Notifier
	log            zerolog.Logger
	maxConcurrency int
}

func NewAPI(svc *ingest.Service, db *storage.DB, notifier notify.Notifier, maxConcurrency int, log zerolog.Logger) *API {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &API{
		svc:            svc,
		db:             db,
		notifier:       notifier,
		log:            log,
		maxConcurrency: maxConcurrency,
	}
}
