package services

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
)

const (
	defaultExtractWorkers  = 10
	defaultExtractFilename = "extracted_emails.csv"
)

// ExtractService scrapes email addresses for the websites listed in one CSV column.
// The call is long running and has no progress reporting.
type ExtractService struct {
	inFlight
	api     *repository.APIClient
	session *SessionHolder

	CSVPath    string
	ColumnName string
	Workers    int
	// OutputPath of the downloaded result; a directory or empty uses the server's filename
	OutputPath string

	Result *types.OutputExtractEmails
}

func NewExtractService(api *repository.APIClient, session *SessionHolder) *ExtractService {
	return &ExtractService{api: api, session: session, Workers: defaultExtractWorkers}
}

// Prepare validates the form and builds the payload, no network involved
func (s *ExtractService) Prepare() (*types.InputExtractEmails, error) {
	if strings.TrimSpace(s.CSVPath) == "" {
		return nil, types.ErrMissingCSV
	}
	csv, err := util.ReadFileBase64(s.CSVPath)
	if err != nil {
		return nil, err
	}
	input := &types.InputExtractEmails{
		CSVBase64:  csv,
		ColumnName: strings.TrimSpace(s.ColumnName),
		Workers:    s.Workers,
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return input, nil
}

// Submit runs the extraction and writes the resulting CSV. It returns the path written.
func (s *ExtractService) Submit(ctx context.Context) (*types.OutputExtractEmails, string, error) {
	if err := s.begin(); err != nil {
		return nil, "", err
	}
	defer s.end()

	input, err := s.Prepare()
	if err != nil {
		return nil, "", err
	}
	token, err := s.session.Token()
	if err != nil {
		return nil, "", err
	}
	var out types.OutputExtractEmails
	err = s.api.CallJSON(ctx, "/extractEmails", repository.CallOptions{Method: http.MethodPost, Body: input, Token: token}, &out)
	if err != nil {
		return nil, "", err
	}
	s.Result = &out
	if out.CSVBase64 == "" {
		return &out, "", errors.New("the server returned no file")
	}
	path := s.outputPath(out.OutputFilename)
	size, err := util.WriteBase64File(out.CSVBase64, path)
	if err != nil {
		return &out, "", err
	}
	level.Info(global.Logger).Log("msg", "extracted emails written", "path", path, "bytes", size)
	return &out, path, nil
}

func (s *ExtractService) outputPath(serverFilename string) string {
	filename := filepath.Base(serverFilename)
	if filename == "." || filename == "/" || filename == "" {
		filename = defaultExtractFilename
	}
	if s.OutputPath == "" {
		return filename
	}
	if strings.HasSuffix(s.OutputPath, string(filepath.Separator)) || isDir(s.OutputPath) {
		return filepath.Join(s.OutputPath, filename)
	}
	return s.OutputPath
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
