// ABOUTME: Service owning the in-memory tracker document
// ABOUTME: Load/save against a single storage key, observers notified on save
package core

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/harper/vitus/internal/models"
	"github.com/harper/vitus/internal/storage"
)

// Lookup failures. No state is mutated when these are returned.
var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrCureNotFound       = errors.New("cure not found")
)

// ValidationError reports a rejected user input. No state is mutated when
// one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Service owns the single in-memory document and mirrors it to the store
// on every mutation. It is safe for concurrent use; operations are
// synchronous read-modify-write with last-writer-wins persistence.
type Service struct {
	store storage.Store
	log   zerolog.Logger
	now   func() time.Time

	mu          sync.Mutex
	doc         models.Document
	subscribers []func()
	collator    *collate.Collator
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source (tests move the calendar with it).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New builds a Service over the given store. Call Load before use.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		log:      zerolog.Nop(),
		now:      time.Now,
		collator: collate.New(language.Und),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = models.EmptyDocument(s.today())
	return s
}

// Load reads the document from the store. Missing, corrupt or wrongly
// shaped data yields a fresh empty document; Load never fails.
func (s *Service) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Get(storage.DocumentKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("reading document failed, starting fresh")
		data = nil
	}
	s.doc = models.DecodeDocument(data, s.today())
}

// Subscribe registers fn to run after every successful save. The signal
// carries no payload beyond "data changed".
func (s *Service) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Document returns a snapshot of the current document. The snapshot
// shares no collections with the live document.
func (s *Service) Document() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() models.Document {
	out := s.doc
	out.Meds = append([]models.Medication(nil), s.doc.Meds...)
	out.Cures = make([]models.Cure, 0, len(s.doc.Cures))
	for _, c := range s.doc.Cures {
		out.Cures = append(out.Cures, c.Clone())
	}
	out.DoseLogs = make(models.DoseLog, len(s.doc.DoseLogs))
	for k, v := range s.doc.DoseLogs {
		out.DoseLogs[k] = v
	}
	out.DoseMissed = append([]models.MissedDose(nil), s.doc.DoseMissed...)
	out.Archive = append([]models.ArchiveEntry(nil), s.doc.Archive...)
	return out
}

// today renders the current calendar date.
func (s *Service) today() string {
	return s.now().Format(models.DateLayout)
}

// Today returns the current calendar date as "YYYY-MM-DD".
func (s *Service) Today() string {
	return s.today()
}

// Yesterday returns the previous calendar date as "YYYY-MM-DD".
func (s *Service) Yesterday() string {
	return s.now().AddDate(0, 0, -1).Format(models.DateLayout)
}

// saveLocked stamps the document, writes it to the store and notifies
// subscribers. Write failures are swallowed: the in-memory document stays
// authoritative for the session. Callers must hold s.mu.
func (s *Service) saveLocked() {
	s.doc.UpdatedAt = s.today()

	data, err := json.Marshal(s.doc)
	if err != nil {
		s.log.Warn().Err(err).Msg("serializing document failed, keeping in-memory state")
	} else if err := s.store.Set(storage.DocumentKey, data); err != nil {
		s.log.Warn().Err(err).Msg("writing document failed, keeping in-memory state")
	}

	for _, fn := range s.subscribers {
		fn()
	}
}
