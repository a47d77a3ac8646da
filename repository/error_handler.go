package repository

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mailio/go-campaign-console/types"
)

// handleError builds the error of a non-2xx response. The message is taken from
// (in order) the "error" field, the "message" field, a JSON string body, the raw text body, and is
// synthesized from the status otherwise.
func handleError(resp *Response) *types.ApiError {
	msg := ""
	if resp.IsJSON {
		var body map[string]interface{}
		if uErr := json.Unmarshal(resp.Body, &body); uErr == nil {
			if errDesc, ok := body["error"].(string); ok && errDesc != "" {
				msg = errDesc
			} else if message, ok := body["message"].(string); ok && message != "" {
				msg = message
			}
		} else {
			var text string
			if sErr := json.Unmarshal(resp.Body, &text); sErr == nil {
				msg = strings.TrimSpace(text)
			} else {
				// declared JSON but isn't, use it as text
				msg = strings.TrimSpace(resp.Text())
			}
		}
	} else {
		msg = strings.TrimSpace(resp.Text())
	}
	if msg == "" {
		msg = fmt.Sprintf("Server Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &types.ApiError{Code: resp.StatusCode, Message: msg}
}
