// Package state persists per-job status and manifest documents as JSON files
// under the job's output directory. The files are the snapshot source of
// truth polled by the web boundary; every write goes through a temp file and
// rename so pollers never observe a torn document.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"showcase/internal/domain"
)

// ErrNotFound is returned when a job has no status document yet.
var ErrNotFound = errors.New("state: job not found")

const (
	statusFile   = "status.json"
	manifestFile = "manifest.json"

	// ManifestType tags manifest documents.
	ManifestType = "project_showcase"
)

// HeroRef points the approval UI at the candidate hero image.
type HeroRef struct {
	ImagePath string `json:"imagePath"`
	Filename  string `json:"filename"`
}

// Status is the polled progress document for one job.
type Status struct {
	JobID            string                   `json:"job_id"`
	State            domain.State             `json:"status"`
	Flow             domain.Flow              `json:"flow,omitempty"`
	Progress         int                      `json:"progress"`
	CurrentImage     int                      `json:"currentImage"`
	TotalImages      int                      `json:"totalImages"`
	CurrentVariation string                   `json:"currentVariation,omitempty"`
	Message          string                   `json:"message,omitempty"`
	Error            string                   `json:"error,omitempty"`
	Prompt           string                   `json:"prompt,omitempty"`
	Model            string                   `json:"model,omitempty"`
	Hero             *HeroRef                 `json:"hero,omitempty"`
	RegenCount       int                      `json:"regenCount,omitempty"`
	Images           []domain.VariationResult `json:"images,omitempty"`
	CreatedAt        time.Time                `json:"created_at,omitempty"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// Manifest is the durable record of a job's inputs and deliverables.
type Manifest struct {
	JobID           string                   `json:"job_id"`
	Type            string                   `json:"type"`
	Prompt          string                   `json:"prompt,omitempty"`
	Parsed          *domain.Attributes       `json:"parsed,omitempty"`
	Suburb          string                   `json:"suburb,omitempty"`
	Model           string                   `json:"model,omitempty"`
	InspirationPath string                   `json:"inspiration_path,omitempty"`
	StyleAnalysis   *domain.StyleAnalysis    `json:"style_analysis,omitempty"`
	HeroDescription string                   `json:"hero_description,omitempty"`
	Images          []domain.VariationResult `json:"images"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at,omitempty"`
}

// Hero returns the manifest's hero entry, if any.
func (m *Manifest) Hero() (domain.VariationResult, bool) {
	for _, img := range m.Images {
		if img.IsHero {
			return img, true
		}
	}
	return domain.VariationResult{}, false
}

// Image returns the manifest entry for a variation name.
func (m *Manifest) Image(variationName string) (domain.VariationResult, bool) {
	for _, img := range m.Images {
		if img.VariationName == variationName {
			return img, true
		}
	}
	return domain.VariationResult{}, false
}

// Store reads and writes job documents under root/<jobID>/. A process-wide
// mutex per store serializes read-modify-write cycles; cross-process safety
// comes from single-writer task leasing.
type Store struct {
	root string
	mu   sync.Mutex
	now  func() time.Time
}

func NewStore(root string) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("state: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("state: ensure root: %w", err)
	}
	return &Store{root: root, now: time.Now}, nil
}

// JobDir resolves the directory for a job, rejecting traversal attempts.
func (s *Store) JobDir(jobID string) (string, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" || strings.ContainsAny(jobID, "/\\") || jobID == "." || jobID == ".." {
		return "", fmt.Errorf("state: invalid job id %q", jobID)
	}
	return filepath.Join(s.root, jobID), nil
}

// ReadStatus loads a job's status document.
func (s *Store) ReadStatus(jobID string) (Status, error) {
	var st Status
	if err := s.readDoc(jobID, statusFile, &st); err != nil {
		return Status{}, err
	}
	return st, nil
}

// UpdateStatus applies mutate to the current status (zero value when absent)
// and persists the result with a refreshed timestamp.
func (s *Store) UpdateStatus(jobID string, mutate func(*Status)) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.ReadStatus(jobID)
	if errors.Is(err, ErrNotFound) {
		st = Status{JobID: jobID, CreatedAt: s.now().UTC()}
	} else if err != nil {
		return Status{}, err
	}
	mutate(&st)
	st.JobID = jobID
	st.UpdatedAt = s.now().UTC()
	if err := s.writeDoc(jobID, statusFile, st); err != nil {
		return Status{}, err
	}
	return st, nil
}

// ReadManifest loads a job's manifest document.
func (s *Store) ReadManifest(jobID string) (Manifest, error) {
	var m Manifest
	if err := s.readDoc(jobID, manifestFile, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// WriteManifest persists a manifest wholesale, stamping type and timestamps.
func (s *Store) WriteManifest(jobID string, m Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeManifestLocked(jobID, m)
}

func (s *Store) writeManifestLocked(jobID string, m Manifest) error {
	m.JobID = jobID
	if m.Type == "" {
		m.Type = ManifestType
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now().UTC()
	}
	m.UpdatedAt = s.now().UTC()
	return s.writeDoc(jobID, manifestFile, m)
}

// UpdateManifest applies mutate to the current manifest (zero value when
// absent) and persists it.
func (s *Store) UpdateManifest(jobID string, mutate func(*Manifest)) (Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.ReadManifest(jobID)
	if errors.Is(err, ErrNotFound) {
		m = Manifest{JobID: jobID, Type: ManifestType, CreatedAt: s.now().UTC()}
	} else if err != nil {
		return Manifest{}, err
	}
	mutate(&m)
	if err := s.writeManifestLocked(jobID, m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// AppendImage records a deliverable in the manifest, replacing any previous
// entry for the same variation, and mirrors the image list into the status
// document so pollers see results without a second fetch.
func (s *Store) AppendImage(jobID string, img domain.VariationResult) error {
	m, err := s.UpdateManifest(jobID, func(m *Manifest) {
		for i, existing := range m.Images {
			if existing.VariationName == img.VariationName {
				m.Images[i] = img
				return
			}
		}
		m.Images = append(m.Images, img)
	})
	if err != nil {
		return err
	}
	_, err = s.UpdateStatus(jobID, func(st *Status) {
		st.Images = m.Images
	})
	return err
}

func (s *Store) readDoc(jobID, name string, out any) error {
	dir, err := s.JobDir(jobID)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("state: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("state: decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeDoc(jobID, name string, doc any) error {
	dir, err := s.JobDir(jobID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state: ensure job dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("state: encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("state: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("state: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: rename into place: %w", err)
	}
	return nil
}
