// Package directory implements the employee directory on top of a record
// store and an object store. Either store may be absent: without a record
// store the directory lists nothing and refuses additions, and without an
// object store photos are neither accepted nor linked.
package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/seantiz/directory/internal/model"
	"github.com/seantiz/directory/internal/objectstore"
	"github.com/seantiz/directory/internal/store"
)

// ErrNotEnabled is returned by Add when the record store or the object store
// is not configured.
var ErrNotEnabled = errors.New("record store or object store not enabled")

// Outcome classifies how a listing was produced.
type Outcome string

// Listing outcomes.
const (
	OutcomeOK           Outcome = "ok"
	OutcomeEmpty        Outcome = "empty"
	OutcomeDisabled     Outcome = "disabled"
	OutcomeTableMissing Outcome = "table_missing"
	OutcomeUnavailable  Outcome = "unavailable"
)

var allOutcomes = []Outcome{OutcomeOK, OutcomeEmpty, OutcomeDisabled, OutcomeTableMissing, OutcomeUnavailable}

// ListResult is the outcome of List. Employees is empty whenever Err is set.
type ListResult struct {
	Employees []model.Employee
	Outcome   Outcome
	Err       error
}

// Photo is an uploaded photo as received from a form.
type Photo struct {
	Filename string
	Body     io.Reader
}

// NewEmployee carries the submitted fields of an employee to add. Missing
// fields are simply empty.
type NewEmployee struct {
	Name     string
	Title    string
	Location string
	Badges   string
	Photo    *Photo
}

// Service lists and adds employees.
type Service struct {
	records   store.Store
	photos    objectstore.Store
	urlExpiry time.Duration
	logger    *slog.Logger
}

// New creates a Service. Pass a nil store to disable it.
func New(records store.Store, photos objectstore.Store, logger *slog.Logger) *Service {
	return &Service{
		records:   records,
		photos:    photos,
		urlExpiry: objectstore.DefaultURLExpiry,
		logger:    logger.With("component", "directory"),
	}
}

// RecordsEnabled reports whether a record store is configured.
func (s *Service) RecordsEnabled() bool { return s.records != nil }

// PhotosEnabled reports whether an object store is configured.
func (s *Service) PhotosEnabled() bool { return s.photos != nil }

// List returns every employee sorted by name, byte-wise ascending with empty
// names first. Employees with a photo key get a fresh presigned URL when the
// object store is enabled. Scan and presign failures are logged and collapse
// to an empty listing, so a listed photo key always carries a URL; the
// result's Outcome and Err keep the distinction.
func (s *Service) List(ctx context.Context) ListResult {
	if s.records == nil {
		return s.record(ListResult{Outcome: OutcomeDisabled})
	}

	employees, err := s.records.Scan(ctx)
	if err != nil {
		outcome := OutcomeUnavailable
		if errors.Is(err, store.ErrTableNotFound) {
			outcome = OutcomeTableMissing
		}
		s.logger.Error("error scanning employee table", "outcome", outcome, "error", err)
		return s.record(ListResult{Outcome: outcome, Err: err})
	}
	if len(employees) == 0 {
		return s.record(ListResult{Outcome: OutcomeEmpty})
	}

	if s.photos != nil {
		for i := range employees {
			e := &employees[i]
			if !e.HasPhoto() {
				continue
			}
			u, err := s.photos.PresignGet(ctx, e.ObjectKey, s.urlExpiry)
			if err != nil {
				s.logger.Error("error presigning photo url", "employee_id", e.ID, "key", e.ObjectKey, "error", err)
				return s.record(ListResult{Outcome: OutcomeUnavailable, Err: fmt.Errorf("presign %s: %w", e.ObjectKey, err)})
			}
			e.PhotoURL = u
		}
	}

	slices.SortStableFunc(employees, func(a, b model.Employee) int {
		return strings.Compare(a.Name, b.Name)
	})

	return s.record(ListResult{Employees: employees, Outcome: OutcomeOK})
}

func (s *Service) record(r ListResult) ListResult {
	scansTotal.WithLabelValues(string(r.Outcome)).Inc()
	return r
}

// Add creates an employee with a new id. A photo with a non-empty filename
// is uploaded first under photos/<id>-<filename>, then the record is
// written. Neither write is undone if the other fails.
func (s *Service) Add(ctx context.Context, in NewEmployee) (model.Employee, error) {
	if s.records == nil || s.photos == nil {
		return model.Employee{}, ErrNotEnabled
	}

	e := model.Employee{
		ID:       model.NewID(),
		Name:     in.Name,
		Title:    in.Title,
		Location: in.Location,
		Badges:   in.Badges,
	}

	if in.Photo != nil && in.Photo.Filename != "" {
		key := model.PhotoKey(e.ID, in.Photo.Filename)
		if err := s.photos.Upload(ctx, key, in.Photo.Body); err != nil {
			return model.Employee{}, fmt.Errorf("upload photo: %w", err)
		}
		e.ObjectKey = key
	}

	if err := s.records.Put(ctx, &e); err != nil {
		if e.HasPhoto() {
			s.logger.Warn("photo uploaded without employee record", "key", e.ObjectKey)
		}
		return model.Employee{}, fmt.Errorf("put employee: %w", err)
	}

	employeesCreated.WithLabelValues(boolLabel(e.HasPhoto())).Inc()
	s.logger.Info("employee added", "employee_id", e.ID, "photo", e.HasPhoto())
	return e, nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
