package domain

import "fmt"

// Endpoint names a relay operation.
type Endpoint string

const (
	EndpointSolve         Endpoint = "solve"
	EndpointWrite         Endpoint = "write"
	EndpointModify        Endpoint = "modify"
	EndpointExpandStep    Endpoint = "expand-step"
	EndpointChat          Endpoint = "chat"
	EndpointAnalyzeScreen Endpoint = "screen-analyze"
	EndpointScreenChat    Endpoint = "screen-chat"
)

// Mode selects between the local and cloud upstreams.
type Mode string

const (
	ModeLocal Mode = "local"
	ModeCloud Mode = "cloud"
)

// ProviderOCR is the route provider name for local screen analysis.
const ProviderOCR = "ocr"

// ParseMode validates a mode string. The empty string is accepted and means "default".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeLocal, ModeCloud:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}
