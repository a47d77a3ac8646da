package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
)

/**
* List mapper: the API returns lists either as a bare array or wrapped in an
* object under one of the given keys ({"users": [...]}, {"logs": [...]}, ...)
**/

func MapToList[T any](resp *Response, keys ...string) ([]T, error) {
	if resp == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return []T{}, nil
	}
	if !resp.IsJSON {
		return nil, fmt.Errorf("expected a JSON list, got: %s", resp.Text())
	}
	body := bytes.TrimSpace(resp.Body)
	if body[0] == '[' {
		var list []T
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("%s cannot be mapped to a list: %w", body, err)
		}
		return list, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("%s cannot be mapped to a list: %w", body, err)
	}
	for _, key := range keys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		var list []T
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return []T{}, nil
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%s cannot be mapped to a list: %w", raw, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("%s contains none of %v", body, keys)
}
