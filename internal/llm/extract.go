package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The models are instructed to answer with bare JSON but routinely wrap
// it in prose ("Here are the results: [...] Thanks!"). These helpers
// slice from the first opening bracket to the last closing one before
// decoding, so callers can treat any parse failure as "no result" and
// fall back to a default instead of surfacing the raw content.

// UnmarshalArray decodes a JSON array embedded anywhere in content.
func UnmarshalArray(content string, v interface{}) error {
	return unmarshalDelimited(content, '[', ']', v)
}

// UnmarshalObject decodes a JSON object embedded anywhere in content.
func UnmarshalObject(content string, v interface{}) error {
	return unmarshalDelimited(content, '{', '}', v)
}

func unmarshalDelimited(content string, open, closing byte, v interface{}) error {
	start := strings.IndexByte(content, open)
	end := strings.LastIndexByte(content, closing)
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no %c...%c found in content", open, closing)
	}
	return json.Unmarshal([]byte(content[start:end+1]), v)
}
