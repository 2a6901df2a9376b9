package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/deadlineai/remind-api/internal/domain"
	"github.com/deadlineai/remind-api/internal/platform/logger"
)

// Version is the snapshot document version this package reads and writes.
// Bump it when the record shape changes so old readers fail loudly instead
// of silently misparsing.
const Version = 1

// FileStore persists the full reminder set as a single JSON document on
// disk. Every Save rewrites the whole snapshot; there is no append mode.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a snapshot store writing to the given path.
// If logger is nil, a default logger will be used.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if path == "" {
		panic("snapshot path cannot be empty")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &FileStore{
		path:   path,
		logger: logger.With(slog.String("component", "snapshot_store")),
	}
}

// envelope is the on-disk document shape: a version tag, the save
// timestamp, and the reminder records.
type envelope struct {
	Version   int           `json:"version"`
	SavedAt   string        `json:"saved_at"`
	Reminders []reminderDTO `json:"reminders"`
}

// reminderDTO is the wire form of a reminder. All four timestamps are
// RFC 3339 strings so the file stays readable and language-neutral.
type reminderDTO struct {
	ID          string         `json:"id"`
	DeadlineID  string         `json:"deadline_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DeadlineAt  string         `json:"deadline_at"`
	TriggerAt   string         `json:"trigger_at"`
	Channel     string         `json:"channel"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Recipient   string         `json:"recipient"`
	LastError   string         `json:"last_error,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// toDTO converts a domain reminder to its wire form.
func toDTO(reminder *domain.Reminder) reminderDTO {
	return reminderDTO{
		ID:          reminder.ID.String(),
		DeadlineID:  reminder.DeadlineID.String(),
		Title:       reminder.Title,
		Description: reminder.Description,
		DeadlineAt:  reminder.DeadlineAt.UTC().Format(time.RFC3339Nano),
		TriggerAt:   reminder.TriggerAt.UTC().Format(time.RFC3339Nano),
		Channel:     string(reminder.Channel),
		Status:      string(reminder.Status),
		CreatedAt:   reminder.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   reminder.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Recipient:   reminder.Recipient,
		LastError:   reminder.LastError,
		Metadata:    reminder.Metadata,
	}
}

// fromDTO converts a wire record back to a domain reminder, validating the
// result so a corrupted file cannot smuggle invalid records into the store.
func fromDTO(dto reminderDTO) (*domain.Reminder, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder id %q: %w", dto.ID, err)
	}

	deadlineID, err := uuid.Parse(dto.DeadlineID)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline id %q: %w", dto.DeadlineID, err)
	}

	deadlineAt, err := parseTimestamp("deadline_at", dto.DeadlineAt)
	if err != nil {
		return nil, err
	}
	triggerAt, err := parseTimestamp("trigger_at", dto.TriggerAt)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTimestamp("created_at", dto.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTimestamp("updated_at", dto.UpdatedAt)
	if err != nil {
		return nil, err
	}

	reminder := &domain.Reminder{
		ID:          id,
		DeadlineID:  deadlineID,
		Title:       dto.Title,
		Description: dto.Description,
		DeadlineAt:  deadlineAt,
		TriggerAt:   triggerAt,
		Channel:     domain.Channel(dto.Channel),
		Status:      domain.ReminderStatus(dto.Status),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Recipient:   dto.Recipient,
		LastError:   dto.LastError,
		Metadata:    dto.Metadata,
	}

	if err := reminder.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reminder %s: %w", dto.ID, err)
	}

	return reminder, nil
}

// parseTimestamp decodes one RFC 3339 timestamp field.
func parseTimestamp(field, value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s timestamp %q: %w", field, value, err)
	}
	return parsed, nil
}

// Save serializes the given reminders to the snapshot file, replacing any
// previous snapshot. The document is written to a temporary file in the
// same directory and renamed into place, so a reader never observes a
// partially-written snapshot, and overlapping saves each land whole.
func (f *FileStore) Save(ctx context.Context, reminders []*domain.Reminder) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, f.logger)

	records := make([]reminderDTO, 0, len(reminders))
	for _, reminder := range reminders {
		records = append(records, toDTO(reminder))
	}

	// Stable record order keeps successive snapshots diffable
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})

	doc := envelope{
		Version:   Version,
		SavedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		Reminders: records,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Error("failed to encode snapshot",
			slog.String("error", err.Error()),
			slog.String("path", f.path))
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		log.Error("failed to create snapshot temp file",
			slog.String("error", err.Error()),
			slog.String("path", f.path))
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}

	if _, err := tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.Error("failed to write snapshot",
			slog.String("error", err.Error()),
			slog.String("path", f.path))
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		log.Error("failed to replace snapshot file",
			slog.String("error", err.Error()),
			slog.String("path", f.path))
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	log.Info("snapshot saved",
		slog.String("path", f.path),
		slog.Int("count", len(records)))
	return nil
}

// Load reads the snapshot file and reconstructs the reminder records.
// A missing file yields an empty result, not an error. A malformed file
// yields an error and no records at all, never a partial set.
func (f *FileStore) Load(ctx context.Context) ([]*domain.Reminder, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, f.logger)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("no snapshot file found, starting empty",
				slog.String("path", f.path))
			return []*domain.Reminder{}, nil
		}
		log.Error("failed to read snapshot file",
			slog.String("error", err.Error()),
			slog.String("path", f.path))
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var doc envelope
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Error("snapshot file is not valid JSON",
			slog.String("error", err.Error()),
			slog.String("path", f.path))
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	if doc.Version != Version {
		log.Error("snapshot version is not supported",
			slog.Int("version", doc.Version),
			slog.Int("supported", Version),
			slog.String("path", f.path))
		return nil, fmt.Errorf("%w: version %d (supported: %d)",
			ErrUnsupportedVersion, doc.Version, Version)
	}

	reminders := make([]*domain.Reminder, 0, len(doc.Reminders))
	for _, dto := range doc.Reminders {
		reminder, err := fromDTO(dto)
		if err != nil {
			log.Error("snapshot record is malformed",
				slog.String("error", err.Error()),
				slog.String("path", f.path))
			return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}
		reminders = append(reminders, reminder)
	}

	log.Info("snapshot loaded",
		slog.String("path", f.path),
		slog.Int("count", len(reminders)))
	return reminders, nil
}

// Path returns the snapshot file location.
func (f *FileStore) Path() string {
	return f.path
}
