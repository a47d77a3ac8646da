package services

import (
	"context"
	"strings"
	"sync"

	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
)

type Tab string

const (
	TabSchedule       Tab = "schedule"
	TabAutoSchedule   Tab = "auto-schedule"
	TabMasterSchedule Tab = "master-schedule"
	TabDomains        Tab = "domains"
	TabExtract        Tab = "extract"
	TabStats          Tab = "stats"
)

var tabTitles = map[Tab]string{
	TabSchedule:       "Schedule",
	TabAutoSchedule:   "Auto Schedule",
	TabMasterSchedule: "Master Schedule",
	TabDomains:        "Domains",
	TabExtract:        "Extract Emails",
	TabStats:          "My Stats",
}

func (t Tab) Title() string {
	return tabTitles[t]
}

// FeatureTabs are the campaign panels
func FeatureTabs() []Tab {
	return []Tab{TabSchedule, TabAutoSchedule, TabMasterSchedule, TabDomains, TabExtract}
}

// Tabs are all panels of the user console, stats last
func Tabs() []Tab {
	return append(FeatureTabs(), TabStats)
}

// ParseTab accepts a tab name or title
func ParseTab(s string) (Tab, error) {
	s = strings.TrimSpace(s)
	for _, t := range Tabs() {
		if strings.EqualFold(string(t), s) || strings.EqualFold(t.Title(), s) {
			return t, nil
		}
	}
	return "", types.ErrUnknownTab
}

// ShellService is the user console: a health indicator and one mounted panel at a time.
// Switching tabs discards the previous panel with its unsaved form state.
type ShellService struct {
	api     *repository.APIClient
	session *SessionHolder
	library *LibraryService

	mu     sync.RWMutex
	online bool
	active Tab
	panel  interface{}
}

func NewShellService(api *repository.APIClient, session *SessionHolder, library *LibraryService) *ShellService {
	return &ShellService{api: api, session: session, library: library}
}

// CheckHealth polls GET /health once. Any failure means offline.
func (s *ShellService) CheckHealth(ctx context.Context) bool {
	online := false
	resp, err := s.api.Call(ctx, "/health", repository.CallOptions{SilenceErrors: true})
	if err == nil {
		online = true
		if resp.IsJSON {
			var health types.OutputHealth
			if dErr := resp.Decode(&health); dErr == nil && health.Status != "" {
				switch strings.ToLower(health.Status) {
				case "ok", "healthy", "up", "online":
				default:
					online = false
				}
			}
		}
	}
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
	return online
}

func (s *ShellService) Online() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// Select mounts a fresh panel for tab and returns it: *ScheduleService,
// *AutoScheduleService, *MasterScheduleService, *DomainService, *ExtractService
// or *StatisticsService
func (s *ShellService) Select(tab Tab) (interface{}, error) {
	var panel interface{}
	switch tab {
	case TabSchedule:
		panel = NewScheduleService(s.api, s.session, s.library)
	case TabAutoSchedule:
		panel = NewAutoScheduleService(s.api, s.session, s.library)
	case TabMasterSchedule:
		panel = NewMasterScheduleService(s.api, s.session, s.library)
	case TabDomains:
		panel = NewDomainService(s.api, s.session)
	case TabExtract:
		panel = NewExtractService(s.api, s.session)
	case TabStats:
		panel = NewStatisticsService(s.api, s.session)
	default:
		return nil, types.ErrUnknownTab
	}
	s.mu.Lock()
	s.active = tab
	s.panel = panel
	s.mu.Unlock()
	return panel, nil
}

// Active returns the mounted tab and panel (empty before the first Select)
func (s *ShellService) Active() (Tab, interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.panel
}

// unmount drops the panel (logout)
func (s *ShellService) unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ""
	s.panel = nil
}
