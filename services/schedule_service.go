package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
)

const (
	minGapMinutes = 1
	maxGapMinutes = 60
)

// ScheduleService is the plain scheduler: every receiver has its own send time
type ScheduleService struct {
	inFlight
	api     *repository.APIClient
	session *SessionHolder
	library *LibraryService

	MessageForm
	SenderForm
	ReceiverForm

	Result *types.ScheduleResult
}

func NewScheduleService(api *repository.APIClient, session *SessionHolder, library *LibraryService) *ScheduleService {
	return &ScheduleService{api: api, session: session, library: library}
}

func (s *ScheduleService) Library() *LibraryService {
	return s.library
}

// Prepare validates the form and builds the payload, no network involved
func (s *ScheduleService) Prepare() (*types.InputSchedule, error) {
	if err := s.MessageForm.Validate(); err != nil {
		return nil, err
	}
	input := &types.InputSchedule{
		Subject: s.Subject,
		Body:    s.payloadBody(),
	}
	if s.UseCSV {
		csv, err := s.csvBase64()
		if err != nil {
			return nil, err
		}
		input.ReceiversCSVBase64 = csv
	} else {
		receivers, err := s.timedReceivers()
		if err != nil {
			return nil, err
		}
		input.Receivers = receivers
	}
	senders, err := s.validSenders()
	if err != nil {
		return nil, err
	}
	input.Senders = senders
	return input, nil
}

// Submit sends the campaign to POST /scheduleEmails
func (s *ScheduleService) Submit(ctx context.Context) (*types.ScheduleResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	input, err := s.Prepare()
	if err != nil {
		return nil, err
	}
	token, err := s.session.Token()
	if err != nil {
		return nil, err
	}
	resp, err := s.api.Call(ctx, "/scheduleEmails", repository.CallOptions{Method: http.MethodPost, Body: input, Token: token})
	if err != nil {
		return nil, err
	}
	result := &types.ScheduleResult{}
	if resp.IsJSON {
		if err := resp.Decode(result); err != nil {
			return nil, err
		}
	} else {
		result.Message = strings.TrimSpace(resp.Text())
	}
	s.Result = result
	return result, nil
}

// AutoScheduleService is the drip scheduler: one start time, a fixed gap between sends
type AutoScheduleService struct {
	inFlight
	api     *repository.APIClient
	session *SessionHolder
	library *LibraryService

	MessageForm
	SenderForm
	ReceiverForm

	// Mode is manual, csv (receivers only) or full_csv (senders, receivers and credentials)
	Mode       string
	StartTime  string
	GapMinutes int

	Result *types.BatchSummary
}

func NewAutoScheduleService(api *repository.APIClient, session *SessionHolder, library *LibraryService) *AutoScheduleService {
	return &AutoScheduleService{api: api, session: session, library: library, Mode: types.AutoModeManual, GapMinutes: 5}
}

func (s *AutoScheduleService) Library() *LibraryService {
	return s.library
}

// Prepare validates the form and builds the payload, no network involved.
// Rows of a full CSV are not checked for the public provider password rule.
func (s *AutoScheduleService) Prepare() (*types.InputAutoSchedule, error) {
	if strings.TrimSpace(s.StartTime) == "" {
		return nil, types.ErrMissingStartTime
	}
	startTime, err := util.NormalizeTimestamp(s.StartTime)
	if err != nil {
		return nil, err
	}
	if s.GapMinutes < minGapMinutes || s.GapMinutes > maxGapMinutes {
		return nil, types.ErrGapOutOfRange
	}
	input := &types.InputAutoSchedule{
		Mode:       s.Mode,
		StartTime:  startTime,
		GapMinutes: s.GapMinutes,
	}
	switch s.Mode {
	case types.AutoModeCSV:
		csv, err := s.csvBase64()
		if err != nil {
			return nil, err
		}
		input.ReceiversCSVBase64 = csv
	case types.AutoModeFullCSV:
		csv, err := s.csvBase64()
		if err != nil {
			return nil, err
		}
		input.CSVBase64 = csv
	case types.AutoModeManual, "":
		input.Mode = types.AutoModeManual
		receivers, err := s.emailReceivers()
		if err != nil {
			return nil, err
		}
		input.Receivers = receivers
	default:
		return nil, types.NewValidationError("unknown mode %q (manual, csv, full_csv)", s.Mode)
	}
	if err := s.MessageForm.Validate(); err != nil {
		return nil, err
	}
	input.Subject = s.Subject
	input.Body = s.payloadBody()
	if input.Mode != types.AutoModeFullCSV {
		senders, err := s.validSenders()
		if err != nil {
			return nil, err
		}
		input.Senders = senders
	}
	return input, nil
}

// Submit sends the drip campaign to POST /scheduleEmails/auto
func (s *AutoScheduleService) Submit(ctx context.Context) (*types.BatchSummary, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	input, err := s.Prepare()
	if err != nil {
		return nil, err
	}
	summary, err := submitBatch(ctx, s.api, s.session, "/scheduleEmails/auto", input)
	if err != nil {
		return nil, err
	}
	s.Result = summary
	return summary, nil
}

// MasterScheduleService submits a CSV of independent jobs, each with its own sender, receiver and time
type MasterScheduleService struct {
	inFlight
	api     *repository.APIClient
	session *SessionHolder
	library *LibraryService

	MessageForm
	CSVPath string

	Result *types.BatchSummary
}

func NewMasterScheduleService(api *repository.APIClient, session *SessionHolder, library *LibraryService) *MasterScheduleService {
	return &MasterScheduleService{api: api, session: session, library: library}
}

func (s *MasterScheduleService) Library() *LibraryService {
	return s.library
}

// Prepare validates the form and builds the payload, no network involved
func (s *MasterScheduleService) Prepare() (*types.InputMasterSchedule, error) {
	if strings.TrimSpace(s.CSVPath) == "" {
		return nil, types.ErrMissingCSV
	}
	if err := s.MessageForm.Validate(); err != nil {
		return nil, err
	}
	csv, err := util.ReadFileBase64(s.CSVPath)
	if err != nil {
		return nil, err
	}
	return &types.InputMasterSchedule{CSVBase64: csv, Subject: s.Subject, Body: s.payloadBody()}, nil
}

// Submit sends the batch to POST /scheduleEmails/master
func (s *MasterScheduleService) Submit(ctx context.Context) (*types.BatchSummary, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	input, err := s.Prepare()
	if err != nil {
		return nil, err
	}
	summary, err := submitBatch(ctx, s.api, s.session, "/scheduleEmails/master", input)
	if err != nil {
		return nil, err
	}
	s.Result = summary
	return summary, nil
}

// submitBatch posts input and returns the summary as the API sent it
func submitBatch(ctx context.Context, api *repository.APIClient, session *SessionHolder, endpoint string, input interface{}) (*types.BatchSummary, error) {
	token, err := session.Token()
	if err != nil {
		return nil, err
	}
	resp, err := api.Call(ctx, endpoint, repository.CallOptions{Method: http.MethodPost, Body: input, Token: token})
	if err != nil {
		return nil, err
	}
	summary := &types.BatchSummary{}
	if resp.IsJSON && len(resp.Body) > 0 {
		if err := resp.Decode(summary); err != nil {
			return nil, err
		}
		return summary, nil
	}
	summary.Message = strings.TrimSpace(resp.Text())
	return summary, nil
}
