package models

import (
	"bytes"
	"strconv"
)

// Score is a display-only counter (stars, local and global score). Older
// payloads send these as strings; a value that does not parse decodes as 0
// instead of failing the snapshot.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	v, err := strconv.Atoi(string(data))
	if err != nil {
		*s = 0
		return nil
	}
	*s = Score(v)
	return nil
}
