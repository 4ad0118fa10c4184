package enums

import "fmt"

type WorkerStatus string

const (
	WorkerStatusActive   WorkerStatus = "ACTIVE"
	WorkerStatusInactive WorkerStatus = "INACTIVE"
)

func (s WorkerStatus) String() string {
	return string(s)
}

func (s WorkerStatus) IsValid() bool {
	switch s {
	case WorkerStatusActive, WorkerStatusInactive:
		return true
	}
	return false
}

func ParseWorkerStatus(value string) (WorkerStatus, error) {
	s := WorkerStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid worker status: %q", value)
	}
	return s, nil
}
