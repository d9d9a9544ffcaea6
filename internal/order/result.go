package order

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// LeadsAssignedMessage is the exact message the assign-leads operation returns on success.
const LeadsAssignedMessage = "Leads Assigned Successfully"

const successMarker = "success"

var (
	ErrTransport = errors.New("order service transport failure")
	ErrDecode    = errors.New("order service payload not understood")
)

// Result is the typed outcome of a remote mutation. The legacy API signals success only
// through payload text, and this file is the only place that inspects it.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// parseMutation reads create/update/delete responses: success iff a word of the payload
// starts with "success". "Unsuccessful" and the like do not count.
func parseMutation(raw []byte) Result {
	msg := messageOf(unwrap(raw))
	return Result{
		OK:      reportsSuccess(msg),
		Message: msg,
	}
}

func reportsSuccess(msg string) bool {
	lower := strings.ToLower(msg)
	for i := 0; ; {
		j := strings.Index(lower[i:], successMarker)
		if j < 0 {
			return false
		}
		at := i + j
		if at == 0 || !unicode.IsLetter(rune(lower[at-1])) {
			return true
		}
		i = at + len(successMarker)
	}
}

// parseLeadAssignment reads assign-leads responses, which arrive as {"message": ...} or a bare string.
func parseLeadAssignment(raw []byte) Result {
	msg := messageOf(unwrap(raw))
	return Result{
		OK:      strings.TrimSpace(msg) == LeadsAssignedMessage,
		Message: msg,
	}
}

func decodeRecords(raw []byte) ([]Record, error) {
	var wire []wireRecord
	if err := decodeList(raw, &wire); err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toRecord())
	}
	return out, nil
}

func decodeVendors(raw []byte) ([]Vendor, error) {
	var wire []wireVendor
	if err := decodeList(raw, &wire); err != nil {
		return nil, err
	}
	out := make([]Vendor, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toVendor())
	}
	return out, nil
}

// decodeList accepts a JSON array, an ASMX {"d": [...]} object or an empty payload.
func decodeList(raw []byte, dst any) error {
	payload := bytes.TrimSpace([]byte(unwrap(raw)))
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil
	}
	if payload[0] == '{' {
		var wrapped struct {
			D json.RawMessage `json:"d"`
		}
		if err := json.Unmarshal(payload, &wrapped); err != nil || len(wrapped.D) == 0 {
			return fmt.Errorf("%w: expected list", ErrDecode)
		}
		payload = wrapped.D
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// unwrap strips the XML <string> envelope ASMX services put around JSON bodies.
func unwrap(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "<") {
		return s
	}

	dec := xml.NewDecoder(strings.NewReader(s))
	var sb strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// not well-formed XML, treat as text
			return s
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth > 0 {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// messageOf extracts the human message from a JSON object, a JSON string or plain text.
func messageOf(payload string) string {
	p := strings.TrimSpace(payload)
	if p == "" {
		return ""
	}
	switch p[0] {
	case '{':
		var obj map[string]any
		if err := json.Unmarshal([]byte(p), &obj); err == nil {
			for _, k := range []string{"message", "Message", "d"} {
				if v, ok := obj[k].(string); ok {
					return strings.TrimSpace(v)
				}
			}
		}
	case '"':
		var s string
		if err := json.Unmarshal([]byte(p), &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return p
}
