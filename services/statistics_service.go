package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
	"golang.org/x/sync/errgroup"
)

// StatisticsService shows the quota of the user and the log of scheduled emails
type StatisticsService struct {
	inFlight
	api     *repository.APIClient
	session *SessionHolder

	mu    sync.RWMutex
	usage *types.EmailUsage
	logs  []types.EmailLog

	Selection *Selection
}

func NewStatisticsService(api *repository.APIClient, session *SessionHolder) *StatisticsService {
	return &StatisticsService{api: api, session: session, Selection: NewSelection()}
}

// Refresh fetches usage and logs concurrently. They populate disjoint state so
// whichever succeeds is kept; the first error is returned.
func (s *StatisticsService) Refresh(ctx context.Context) error {
	token, err := s.session.Token()
	if err != nil {
		return err
	}
	var g errgroup.Group
	g.Go(func() error {
		var usage types.EmailUsage
		if err := s.api.CallJSON(ctx, "/emails/usage", repository.CallOptions{Token: token}, &usage); err != nil {
			return err
		}
		s.mu.Lock()
		s.usage = &usage
		s.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		return s.fetchLogs(ctx, token)
	})
	return g.Wait()
}

// RefreshLogs re-fetches only the log list
func (s *StatisticsService) RefreshLogs(ctx context.Context) error {
	token, err := s.session.Token()
	if err != nil {
		return err
	}
	return s.fetchLogs(ctx, token)
}

func (s *StatisticsService) fetchLogs(ctx context.Context, token string) error {
	resp, err := s.api.Call(ctx, "/emails/logs", repository.CallOptions{Token: token})
	if err != nil {
		return err
	}
	logs, err := repository.MapToList[types.EmailLog](resp, "logs", "data")
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()
	s.Selection.Retain(logIDs(logs))
	return nil
}

func (s *StatisticsService) Usage() *types.EmailUsage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usage
}

func (s *StatisticsService) Logs() []types.EmailLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.EmailLog{}, s.logs...)
}

// LogIDs returns the ids of the loaded logs in display order
func (s *StatisticsService) LogIDs() []types.LogID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return logIDs(s.logs)
}

// ToggleAll selects every loaded log, or clears the selection when all are selected
func (s *StatisticsService) ToggleAll() {
	s.Selection.ToggleAll(s.LogIDs())
}

func (s *StatisticsService) findLog(id types.LogID) *types.EmailLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.logs {
		if l.ID == id {
			log := l
			return &log
		}
	}
	return nil
}

// DeleteLog removes one log after confirmation, then re-fetches the list
func (s *StatisticsService) DeleteLog(ctx context.Context, id types.LogID, confirmer Confirmer) error {
	if id == "" {
		return types.ErrNotFound
	}
	message := fmt.Sprintf("Delete log %s? This cannot be undone.", id)
	if l := s.findLog(id); l != nil {
		message = fmt.Sprintf("Delete the %s email from %s to %s (log %s)? This cannot be undone.", l.Status, l.Sender, l.Receiver, id)
	}
	return s.deleteAndRefresh(ctx, confirmer, message, "/emails/logs/{id}", repository.CallOptions{
		Method:     http.MethodDelete,
		PathParams: map[string]string{"id": id.String()},
	})
}

// DeleteSelected removes every selected log in one bulk call
func (s *StatisticsService) DeleteSelected(ctx context.Context, confirmer Confirmer) error {
	ids := s.Selection.IDs()
	if len(ids) == 0 {
		return types.NewValidationError("no logs selected")
	}
	message := fmt.Sprintf("Delete %d selected log(s)? This cannot be undone.", len(ids))
	err := s.deleteAndRefresh(ctx, confirmer, message, "/emails/logs/bulk-delete", repository.CallOptions{
		Method: http.MethodPost,
		Body:   types.InputBulkDelete{IDs: s.wireIDs(ids)},
	})
	if err == nil {
		s.Selection.Clear()
	}
	return err
}

// DeleteAll removes the whole log history of the user
func (s *StatisticsService) DeleteAll(ctx context.Context, confirmer Confirmer) error {
	message := "Delete ALL email logs? Every scheduled, sent and failed entry will be removed. This cannot be undone."
	err := s.deleteAndRefresh(ctx, confirmer, message, "/emails/logs/delete-all", repository.CallOptions{
		Method: http.MethodDelete,
	})
	if err == nil {
		s.Selection.Clear()
	}
	return err
}

// deleteAndRefresh fails closed: a declined confirmation or a failed call leaves the list untouched
func (s *StatisticsService) deleteAndRefresh(ctx context.Context, confirmer Confirmer, message, endpoint string, opts repository.CallOptions) error {
	if err := confirm(ctx, confirmer, message); err != nil {
		return err
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	token, err := s.session.Token()
	if err != nil {
		return err
	}
	opts.Token = token
	if _, err := s.api.Call(ctx, endpoint, opts); err != nil {
		return err
	}
	return s.fetchLogs(ctx, token)
}

// wireIDs maps ids to the JSON tokens of the loaded logs. Unknown ids use the default encoding.
func (s *StatisticsService) wireIDs(ids []types.LogID) []json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := make(map[types.LogID]json.RawMessage, len(s.logs))
	for _, l := range s.logs {
		byID[l.ID] = l.WireID()
	}
	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		if raw, ok := byID[id]; ok {
			out = append(out, raw)
			continue
		}
		raw, _ := id.MarshalJSON()
		out = append(out, raw)
	}
	return out
}

func logIDs(logs []types.EmailLog) []types.LogID {
	ids := make([]types.LogID, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	return ids
}

// Selection is the set of checked log ids
type Selection struct {
	mu       sync.Mutex
	selected map[types.LogID]struct{}
}

func NewSelection() *Selection {
	return &Selection{selected: make(map[types.LogID]struct{})}
}

func (s *Selection) Toggle(id types.LogID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

func (s *Selection) IsSelected(id types.LogID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// AllSelected is set equality between the selection and ids
func (s *Selection) AllSelected(ids []types.LogID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allSelected(ids)
}

func (s *Selection) allSelected(ids []types.LogID) bool {
	unique := make(map[types.LogID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 || len(unique) != len(s.selected) {
		return false
	}
	for id := range unique {
		if _, ok := s.selected[id]; !ok {
			return false
		}
	}
	return true
}

// ToggleAll selects all ids, or clears the selection if it already equals ids
func (s *Selection) ToggleAll(ids []types.LogID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allSelected(ids) {
		s.selected = make(map[types.LogID]struct{})
		return
	}
	s.selected = make(map[types.LogID]struct{}, len(ids))
	for _, id := range ids {
		s.selected[id] = struct{}{}
	}
}

// Retain drops the selected ids that are not in ids anymore
func (s *Selection) Retain(ids []types.LogID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keep := make(map[types.LogID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.selected[id]; ok {
			keep[id] = struct{}{}
		}
	}
	s.selected = keep
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[types.LogID]struct{})
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// IDs returns the selected ids, sorted
func (s *Selection) IDs() []types.LogID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]types.LogID, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
