package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"

	"golang.org/x/sync/errgroup"

	httpClient "github.com/iudanet/zennotes/internal/client/api"
	"github.com/iudanet/zennotes/internal/client/storage"
	"github.com/iudanet/zennotes/internal/models"
	"github.com/iudanet/zennotes/internal/policy"
	"github.com/iudanet/zennotes/pkg/api"
)

// DefaultPushConcurrency - сколько записей отправляется параллельно
const DefaultPushConcurrency = 4

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для sync.Service
type Service interface {
	// SyncWithRemote выполняет push, затем pull и агрегирует счётчики
	SyncWithRemote(ctx context.Context) Result

	// PushLocalChanges отправляет pending записи на сервер
	PushLocalChanges(ctx context.Context) Result

	// PullServerChanges забирает изменения с сервера
	PullServerChanges(ctx context.Context) Result

	// PendingCount возвращает количество записей, ожидающих синхронизации
	PendingCount(ctx context.Context) (int, error)
}

// Result contains sync operation results
type Result struct {
	Pushed    int  // количество записей, подтверждённых сервером
	Pulled    int  // количество применённых серверных записей
	Conflicts int  // количество конфликтов версий
	Success   bool // оба этапа завершились без ошибки запроса
}

// merge складывает счётчики; Success - логическое И
func (r Result) merge(other Result) Result {
	return Result{
		Pushed:    r.Pushed + other.Pushed,
		Pulled:    r.Pulled + other.Pulled,
		Conflicts: r.Conflicts + other.Conflicts,
		Success:   r.Success && other.Success,
	}
}

// service handles synchronization between client and server
type service struct {
	apiClient       httpClient.NoteAPI
	noteStorage     storage.NoteStorage
	metadataStorage storage.MetadataStorage
	logger          *slog.Logger
	concurrency     int
}

// Option настраивает service
type Option func(*service)

// WithConcurrency задаёт лимит параллельных push запросов
func WithConcurrency(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a new sync service
func NewService(
	apiClient httpClient.NoteAPI,
	noteStorage storage.NoteStorage,
	metadataStorage storage.MetadataStorage,
	logger *slog.Logger,
	opts ...Option,
) Service {
	s := &service{
		apiClient:       apiClient,
		noteStorage:     noteStorage,
		metadataStorage: metadataStorage,
		logger:          logger,
		concurrency:     DefaultPushConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncWithRemote performs push then pull.
// Pull начинается только после того, как push полностью завершён.
func (s *service) SyncWithRemote(ctx context.Context) Result {
	s.logger.Debug("Starting synchronization")

	push := s.PushLocalChanges(ctx)
	pull := s.PullServerChanges(ctx)
	result := push.merge(pull)

	s.logger.Info("Synchronization completed",
		"pushed", result.Pushed,
		"pulled", result.Pulled,
		"conflicts", result.Conflicts,
		"success", result.Success)

	return result
}

// counters - счётчики push фазы, общие для горутин fan-out
type counters struct {
	mu     gosync.Mutex
	result Result
}

func (c *counters) add(pushed, pulled, conflicts int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.Pushed += pushed
	c.result.Pulled += pulled
	c.result.Conflicts += conflicts
}

// PushLocalChanges pushes every pending record with bounded concurrency.
// Ошибка одной записи не прерывает остальные: запись остаётся pending.
func (s *service) PushLocalChanges(ctx context.Context) Result {
	notes, err := s.noteStorage.GetUnsynced(ctx)
	if err != nil {
		s.logger.Warn("Failed to get unsynced notes", "error", err)
		return Result{}
	}
	if len(notes) == 0 {
		return Result{Success: true}
	}

	s.logger.Debug("Pushing local changes", "count", len(notes))

	c := &counters{}
	g := &errgroup.Group{}
	g.SetLimit(s.concurrency)

	for _, note := range notes {
		g.Go(func() error {
			s.pushNote(ctx, note, c)
			return nil
		})
	}
	_ = g.Wait()

	c.result.Success = true
	return c.result
}

// pushNote обрабатывает одну запись: create, update, локальное стирание или delete
func (s *service) pushNote(ctx context.Context, note *models.LocalNote, c *counters) {
	log := s.logger.With("note_id", note.ID, "base_version", note.BaseVersion)

	deleted := policy.IsTombstoned(&note.Note)

	switch {
	case note.BaseVersion == 0 && deleted:
		// Запись никогда не была на сервере
		if err := s.noteStorage.Erase(ctx, note.ID); err != nil {
			log.Warn("Failed to erase never-synced note", "error", err)
			return
		}
		c.add(1, 0, 0)

	case note.BaseVersion == 0:
		remote, err := s.apiClient.Create(ctx, note.CreateRequest())
		s.handleWrite(ctx, log, note, remote, err, c, opCreate)

	case deleted:
		remote, err := s.apiClient.Remove(ctx, note.ID, note.BaseVersion)
		s.handleWrite(ctx, log, note, remote, err, c, opDelete)

	default:
		remote, err := s.apiClient.Patch(ctx, note.ID, note.UpdateRequest(note.BaseVersion))
		s.handleWrite(ctx, log, note, remote, err, c, opUpdate)
	}
}

type operation string

const (
	opCreate operation = "create"
	opUpdate operation = "update"
	opDelete operation = "delete"
)

// handleWrite разбирает результат create/update/delete
func (s *service) handleWrite(
	ctx context.Context,
	log *slog.Logger,
	note *models.LocalNote,
	remote *api.Note,
	err error,
	c *counters,
	op operation,
) {
	if err == nil {
		if s.apply(ctx, log, note, remote) != nil {
			c.add(1, 0, 0)
		}
		return
	}

	if conflict, ok := httpClient.AsConflict(err); ok {
		s.resolvePushConflict(ctx, log, note, conflict.Current, c, op)
		return
	}

	if httpClient.IsNotFound(err) {
		s.handleNotFound(ctx, log, note, c, op)
		return
	}

	// 5xx, сеть, некорректный ответ: запись остаётся pending до следующего цикла
	log.Debug("Push failed, leaving note pending", "op", op, "error", err)
}

// resolvePushConflict применяет LWW к ответу 409. Повтор выполняется не больше одного раза.
func (s *service) resolvePushConflict(
	ctx context.Context,
	log *slog.Logger,
	note *models.LocalNote,
	current *api.Note,
	c *counters,
	op operation,
) {
	c.add(0, 0, 1)

	serverNote := models.NoteFromAPI(current)
	winner := policy.ResolveConflict(note, serverNote)
	log.Debug("Version conflict", "op", op, "server_version", current.Version, "winner", winner)

	if winner == policy.WinnerRemote {
		// Правка, сделанная во время запроса, остаётся pending и в pulled не считается
		if applied := s.apply(ctx, log, note, current); applied != nil && !applied.IsPending() {
			c.add(0, 1, 0)
		}
		return
	}

	// Локальная версия победила: перезаписываем, используя серверную версию как токен
	if op == opDelete {
		retry, err := s.apiClient.Remove(ctx, note.ID, current.Version)
		if err != nil {
			log.Debug("Delete retry failed", "error", err)
		} else {
			s.apply(ctx, log, note, retry)
		}
		c.add(1, 0, 0)
		return
	}

	retry, err := s.apiClient.Patch(ctx, note.ID, note.UpdateRequest(current.Version))
	if err != nil {
		// Повторный конфликт или ошибка: остаётся pending
		log.Debug("Update retry failed, leaving note pending", "error", err)
		return
	}
	if s.apply(ctx, log, note, retry) != nil {
		c.add(1, 0, 0)
	}
}

// handleNotFound восстанавливает рассинхронизацию между клиентом и сервером
func (s *service) handleNotFound(
	ctx context.Context,
	log *slog.Logger,
	note *models.LocalNote,
	c *counters,
	op operation,
) {
	switch op {
	case opUpdate:
		// Сервер потерял запись: создаём её заново из локальных полей
		created, err := s.apiClient.Create(ctx, note.CreateRequest())
		if err != nil {
			log.Debug("Create fallback failed, leaving note pending", "error", err)
			return
		}
		if s.apply(ctx, log, note, created) != nil {
			c.add(1, 0, 0)
		}

	case opDelete:
		if err := s.noteStorage.Erase(ctx, note.ID); err != nil {
			log.Warn("Failed to erase note missing on server", "error", err)
			return
		}
		c.add(1, 0, 0)

	default:
		log.Debug("Create returned not found, leaving note pending")
	}
}

// apply записывает подтверждённое сервером состояние.
// seen - локальная запись, прочитанная перед запросом. Возвращает nil при ошибке.
func (s *service) apply(ctx context.Context, log *slog.Logger, seen *models.LocalNote, remote *api.Note) *models.LocalNote {
	applied, err := s.noteStorage.ApplyFromServer(ctx, models.NoteFromAPI(remote), seen)
	if err != nil {
		log.Warn("Failed to apply server note", "error", err)
		return nil
	}
	if applied.IsPending() {
		log.Debug("Note edited during sync, keeping local changes", "base_version", applied.BaseVersion)
	}
	return applied
}

// PullServerChanges pulls server changes since the stored cursor
func (s *service) PullServerChanges(ctx context.Context) Result {
	cursor, err := s.metadataStorage.GetPullCursor(ctx)
	if err != nil {
		s.logger.Warn("Failed to get pull cursor, doing full pull", "error", err)
		cursor = ""
	}

	list, err := s.fetch(ctx, cursor)
	if err != nil {
		s.logger.Warn("Failed to fetch server changes", "error", err)
		return Result{}
	}

	result := Result{Success: true}
	failed := 0

	for _, remote := range list.Notes {
		pulled, conflict, err := s.pullNote(ctx, remote)
		if err != nil {
			s.logger.Warn("Failed to reconcile server note", "note_id", remote.ID, "error", err)
			failed++
			continue
		}
		if pulled {
			result.Pulled++
		}
		if conflict {
			result.Conflicts++
		}
	}

	if failed > 0 {
		// Курсор не сдвигается за необработанные записи
		result.Success = false
		return result
	}

	if list.NextCursor != "" {
		if err := s.metadataStorage.SavePullCursor(ctx, list.NextCursor); err != nil {
			s.logger.Warn("Failed to save pull cursor", "error", err)
			result.Success = false
		}
	}

	return result
}

func (s *service) fetch(ctx context.Context, cursor string) (*httpClient.ListResult, error) {
	if cursor != "" {
		return s.apiClient.GetSince(ctx, cursor)
	}
	return s.apiClient.GetAll(ctx)
}

// pullNote сверяет одну серверную запись с локальной копией
func (s *service) pullNote(ctx context.Context, remote *api.Note) (pulled, conflict bool, err error) {
	serverNote := models.NoteFromAPI(remote)

	local, err := s.noteStorage.GetNote(ctx, remote.ID)
	if err != nil && !errors.Is(err, storage.ErrNoteNotFound) {
		return false, false, fmt.Errorf("failed to get local note: %w", err)
	}
	if errors.Is(err, storage.ErrNoteNotFound) {
		local = nil
	}

	if !policy.NeedsPull(local, serverNote) {
		return false, false, nil
	}

	if local != nil && local.IsPending() {
		if policy.ResolveConflict(local, serverNote) == policy.WinnerLocal {
			// Локальная правка уйдёт в следующем push
			return false, false, nil
		}
		conflict = true
	}

	applied, err := s.noteStorage.ApplyFromServer(ctx, serverNote, local)
	if err != nil {
		return false, false, fmt.Errorf("failed to apply server note: %w", err)
	}
	if applied.IsPending() {
		// Локальная правка пришла после чтения: её отправит следующий push
		return false, conflict, nil
	}

	return true, conflict, nil
}

// PendingCount возвращает количество записей, ожидающих синхронизации
func (s *service) PendingCount(ctx context.Context) (int, error) {
	count, err := s.noteStorage.CountUnsynced(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending notes: %w", err)
	}
	return count, nil
}
